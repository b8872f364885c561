package core

import (
	"path/filepath"
	"runtime"
	"time"
)

// Event is one log record on its way through the pipeline. Formatters read
// it, decorators may consult it, and sinks receive its encoded form. Events
// are passed by pointer but never retained past the write that emits them.
type Event struct {
	Time    time.Time
	Level   Level
	Logger  string
	Message string
	Origin  Origin
	Err     error
	Stack   []Frame
	Fields  []Field
}

// Origin identifies the call site that produced an event.
type Origin struct {
	File      string
	ShortFile string
	Line      int
	Function  string
	Defined   bool
}

// Frame is one resolved stack frame.
type Frame struct {
	Function string
	File     string
	Line     int
}

// CaptureOrigin resolves the caller skip frames above the caller of
// CaptureOrigin. It returns a zero Origin when the stack cannot be read.
func CaptureOrigin(skip int) Origin {
	pc, file, line, ok := runtime.Caller(skip + 1)
	if !ok {
		return Origin{}
	}
	var function string
	if fn := runtime.FuncForPC(pc); fn != nil {
		function = fn.Name()
	}
	return Origin{
		File:      file,
		ShortFile: filepath.Base(file),
		Line:      line,
		Function:  function,
		Defined:   true,
	}
}

// maxStackDepth caps how many frames CaptureStack records.
const maxStackDepth = 32

// CaptureStack collects the call stack starting skip frames above the
// caller of CaptureStack, deepest frames dropped past maxStackDepth.
func CaptureStack(skip int) []Frame {
	pcs := make([]uintptr, maxStackDepth)
	n := runtime.Callers(skip+2, pcs)
	if n == 0 {
		return nil
	}
	frames := runtime.CallersFrames(pcs[:n])
	out := make([]Frame, 0, n)
	for {
		fr, more := frames.Next()
		out = append(out, Frame{Function: fr.Function, File: fr.File, Line: fr.Line})
		if !more {
			break
		}
	}
	return out
}
