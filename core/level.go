package core

import (
	"fmt"
	"strings"
)

// Level represents the severity of an event.
type Level int8

const (
	// DebugLevel for detailed diagnostic output.
	DebugLevel Level = iota
	// InfoLevel for general informational messages (default).
	InfoLevel
	// WarnLevel for conditions worth attention.
	WarnLevel
	// ErrorLevel for failures the program recovered from.
	ErrorLevel
	// FatalLevel for failures the program exits on.
	FatalLevel
)

// String returns the canonical upper-case name of the level.
func (l Level) String() string {
	switch l {
	case DebugLevel:
		return "DEBUG"
	case InfoLevel:
		return "INFO"
	case WarnLevel:
		return "WARN"
	case ErrorLevel:
		return "ERROR"
	case FatalLevel:
		return "FATAL"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel converts a level name to a Level, case-insensitively.
// "warning" is accepted as an alias for "warn" and the empty string
// means InfoLevel.
func ParseLevel(s string) (Level, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBUG":
		return DebugLevel, nil
	case "INFO", "":
		return InfoLevel, nil
	case "WARN", "WARNING":
		return WarnLevel, nil
	case "ERROR":
		return ErrorLevel, nil
	case "FATAL":
		return FatalLevel, nil
	default:
		return InfoLevel, fmt.Errorf("unknown level %q", s)
	}
}
