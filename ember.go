// Package ember is a structured-logging pipeline built on a semantic
// document model. A formatter turns each event into a tree of styled,
// tagged nodes; decorators transform the tree; the layout engine folds it
// into fixed-width terminal lines, or a tree encoder consumes it directly;
// a sink delivers the bytes.
//
// This package ties the stages together. Logger fans events out to
// Destinations, and Config assembles the common pipelines from TOML. The
// stages themselves live in the subpackages (ir, layout, decor, format,
// encode, sink) and compose freely for custom pipelines.
package ember

import (
	"time"

	"github.com/emberlog/ember/core"
)

// Aliases for the event model, so callers import only ember.
type (
	Event  = core.Event
	Level  = core.Level
	Field  = core.Field
	Frame  = core.Frame
	Origin = core.Origin
)

// Levels, lowest to highest.
const (
	DebugLevel = core.DebugLevel
	InfoLevel  = core.InfoLevel
	WarnLevel  = core.WarnLevel
	ErrorLevel = core.ErrorLevel
	FatalLevel = core.FatalLevel
)

// ParseLevel reads a level name such as "debug" or "WARN".
func ParseLevel(s string) (Level, error) { return core.ParseLevel(s) }

// String creates a string field.
func String(key, val string) Field { return core.String(key, val) }

// Int creates an int field.
func Int(key string, val int) Field { return core.Int(key, val) }

// Int64 creates an int64 field.
func Int64(key string, val int64) Field { return core.Int64(key, val) }

// Float creates a float64 field.
func Float(key string, val float64) Field { return core.Float(key, val) }

// Bool creates a bool field.
func Bool(key string, val bool) Field { return core.Bool(key, val) }

// Duration creates a duration field.
func Duration(key string, val time.Duration) Field { return core.Duration(key, val) }

// Err creates an error field under the key "error". The Logger routes it
// to Event.Err, where formatters give it an error block of its own.
func Err(err error) Field { return core.Err(err) }

// Any creates a field with an arbitrary value.
func Any(key string, val any) Field { return core.Any(key, val) }
