package format

import (
	"fmt"
	"path/filepath"
	"sort"
	"time"

	"github.com/emberlog/ember/core"
	"github.com/emberlog/ember/ir"
)

// Formatter populates a freshly checked-out document from an event. The
// document and every node hooked into it must come from a, so the caller
// can return the whole tree with one ReleaseDocument.
type Formatter interface {
	Format(doc *ir.Document, ev *core.Event, a *ir.Arena)
}

// stampMeta records the small string facts decorators read after
// formatting.
func stampMeta(doc *ir.Document, ev *core.Event) {
	if doc.Meta == nil {
		return
	}
	doc.Meta["level"] = ev.Level.String()
	doc.Meta["logger"] = ev.Logger
	doc.Meta["time"] = ev.Time.Format(time.RFC3339)
}

// frameText renders one stack frame the way all formatters print it.
func frameText(fr core.Frame) string {
	return fmt.Sprintf("at %s (%s:%d)", fr.Function, filepath.Base(fr.File), fr.Line)
}

// originText renders the call site as file:line.
func originText(o core.Origin) string {
	return fmt.Sprintf("%s:%d", o.ShortFile, o.Line)
}

// treeValue converts a field value into the value domain carried by map and
// list nodes: string, bool, int64, float64, nil, *ir.MapNode, or
// *ir.ListNode. Go maps are sorted by key so the output is deterministic.
func treeValue(v any, a *ir.Arena) any {
	switch val := v.(type) {
	case nil:
		return nil
	case string:
		return val
	case bool:
		return val
	case int:
		return int64(val)
	case int8:
		return int64(val)
	case int16:
		return int64(val)
	case int32:
		return int64(val)
	case int64:
		return val
	case uint:
		return int64(val)
	case uint8:
		return int64(val)
	case uint16:
		return int64(val)
	case uint32:
		return int64(val)
	case float32:
		return float64(val)
	case float64:
		return val
	case time.Duration:
		return val.String()
	case time.Time:
		return val.Format(time.RFC3339Nano)
	case error:
		return val.Error()
	case map[string]any:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		m := a.Map()
		for _, k := range keys {
			m.Pairs = append(m.Pairs, ir.Pair{Key: k, Value: treeValue(val[k], a)})
		}
		return m
	case []any:
		l := a.List()
		for _, it := range val {
			l.Items = append(l.Items, treeValue(it, a))
		}
		return l
	default:
		return fmt.Sprintf("%v", val)
	}
}
