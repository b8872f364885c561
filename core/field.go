package core

import (
	"fmt"
	"strconv"
	"time"
)

// Field is one key/value attachment on an event. Values pass through the
// pipeline untyped; Text renders them for layout while tree encoders keep
// the underlying value.
type Field struct {
	Key   string
	Value any
}

// String creates a string field.
func String(key, val string) Field {
	return Field{Key: key, Value: val}
}

// Int creates an int field.
func Int(key string, val int) Field {
	return Field{Key: key, Value: int64(val)}
}

// Int64 creates an int64 field.
func Int64(key string, val int64) Field {
	return Field{Key: key, Value: val}
}

// Float creates a float64 field.
func Float(key string, val float64) Field {
	return Field{Key: key, Value: val}
}

// Bool creates a bool field.
func Bool(key string, val bool) Field {
	return Field{Key: key, Value: val}
}

// Duration creates a duration field.
func Duration(key string, val time.Duration) Field {
	return Field{Key: key, Value: val}
}

// Err creates an error field under the key "error". A nil error produces
// a field with a nil value.
func Err(err error) Field {
	if err == nil {
		return Field{Key: "error"}
	}
	return Field{Key: "error", Value: err}
}

// Any creates a field with an arbitrary value.
func Any(key string, val any) Field {
	return Field{Key: key, Value: val}
}

// Text renders the field value as display text.
func (f Field) Text() string {
	switch v := f.Value.(type) {
	case nil:
		return "null"
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case time.Duration:
		return v.String()
	case time.Time:
		return v.Format(time.RFC3339)
	case error:
		return v.Error()
	default:
		return fmt.Sprintf("%v", v)
	}
}
