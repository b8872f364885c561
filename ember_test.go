package ember

import (
	"errors"
	"testing"
	"time"
)

func TestFieldHelpers(t *testing.T) {
	if f := String("user", "ada"); f.Key != "user" || f.Value != "ada" {
		t.Fatalf("String = %+v", f)
	}
	if f := Int("n", 3); f.Value != int64(3) {
		t.Fatalf("Int value = %#v, want int64", f.Value)
	}
	if f := Bool("ok", true); f.Text() != "true" {
		t.Fatalf("Bool text = %q", f.Text())
	}
	if f := Duration("took", 1500*time.Millisecond); f.Text() != "1.5s" {
		t.Fatalf("Duration text = %q", f.Text())
	}
	if f := Err(errors.New("boom")); f.Key != "error" || f.Text() != "boom" {
		t.Fatalf("Err = %+v", f)
	}
}

func TestParseLevelReexport(t *testing.T) {
	level, err := ParseLevel("warn")
	if err != nil {
		t.Fatal(err)
	}
	if level != WarnLevel {
		t.Fatalf("ParseLevel(warn) = %v", level)
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Fatal("ParseLevel accepted an unknown name")
	}
}

func TestLevelOrdering(t *testing.T) {
	levels := []Level{DebugLevel, InfoLevel, WarnLevel, ErrorLevel, FatalLevel}
	for i := 1; i < len(levels); i++ {
		if levels[i-1] >= levels[i] {
			t.Fatalf("%v not below %v", levels[i-1], levels[i])
		}
	}
}
