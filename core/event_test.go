package core

import (
	"strings"
	"testing"
)

func TestCaptureOrigin(t *testing.T) {
	origin := CaptureOrigin(0)
	if !origin.Defined {
		t.Fatal("CaptureOrigin(0) returned an undefined Origin")
	}
	if origin.ShortFile != "event_test.go" {
		t.Errorf("ShortFile = %q, want %q", origin.ShortFile, "event_test.go")
	}
	if origin.Line == 0 {
		t.Error("Line = 0, want the call site line")
	}
	if !strings.Contains(origin.Function, "TestCaptureOrigin") {
		t.Errorf("Function = %q, want it to name the test", origin.Function)
	}
}

func TestCaptureOriginOutOfRange(t *testing.T) {
	if origin := CaptureOrigin(1 << 10); origin.Defined {
		t.Fatalf("CaptureOrigin far past the stack top = %+v, want zero Origin", origin)
	}
}

func TestCaptureStack(t *testing.T) {
	stack := CaptureStack(0)
	if len(stack) == 0 {
		t.Fatal("CaptureStack(0) returned no frames")
	}
	top := stack[0]
	if !strings.Contains(top.Function, "TestCaptureStack") {
		t.Errorf("top frame = %q, want the calling test", top.Function)
	}
	if top.Line == 0 || top.File == "" {
		t.Errorf("top frame missing position: %+v", top)
	}
	if len(stack) > maxStackDepth {
		t.Errorf("stack depth = %d, want at most %d", len(stack), maxStackDepth)
	}
}
