package format

import (
	"path/filepath"
	"time"

	"github.com/emberlog/ember/core"
	"github.com/emberlog/ember/ir"
)

// JSONTree builds the structured form of an event: a MapNode with ts,
// level, logger, msg, and optional origin, error, stack, and meta entries.
// Tree encoders serialize it directly; destinations without one fall back
// to the layout engine's generic key/value text. Stack frames render as
// preformatted strings.
type JSONTree struct{}

var _ Formatter = (*JSONTree)(nil)

// Format populates doc with a single MapNode root.
func (JSONTree) Format(doc *ir.Document, ev *core.Event, a *ir.Arena) {
	stampMeta(doc, ev)
	doc.Nodes = append(doc.Nodes, eventTree(ev, a, false))
}

// TOON builds the same structured form with stack frames as a uniform
// object list, the shape the TOON encoder folds into one tabular block.
type TOON struct{}

var _ Formatter = (*TOON)(nil)

// Format populates doc with a single MapNode root.
func (TOON) Format(doc *ir.Document, ev *core.Event, a *ir.Arena) {
	stampMeta(doc, ev)
	doc.Nodes = append(doc.Nodes, eventTree(ev, a, true))
}

func eventTree(ev *core.Event, a *ir.Arena, tabularStack bool) *ir.MapNode {
	m := a.Map()
	m.Pairs = append(m.Pairs,
		ir.Pair{Key: "ts", Value: ev.Time.Format(time.RFC3339Nano)},
		ir.Pair{Key: "level", Value: ev.Level.String()},
	)
	if ev.Logger != "" {
		m.Pairs = append(m.Pairs, ir.Pair{Key: "logger", Value: ev.Logger})
	}
	m.Pairs = append(m.Pairs, ir.Pair{Key: "msg", Value: ev.Message})
	if ev.Origin.Defined {
		o := a.Map()
		o.Pairs = append(o.Pairs,
			ir.Pair{Key: "file", Value: ev.Origin.ShortFile},
			ir.Pair{Key: "line", Value: int64(ev.Origin.Line)},
			ir.Pair{Key: "function", Value: ev.Origin.Function},
		)
		m.Pairs = append(m.Pairs, ir.Pair{Key: "origin", Value: o})
	}
	if ev.Err != nil {
		m.Pairs = append(m.Pairs, ir.Pair{Key: "error", Value: ev.Err.Error()})
	}
	if len(ev.Stack) > 0 {
		frames := a.List()
		for _, fr := range ev.Stack {
			if tabularStack {
				fm := a.Map()
				fm.Pairs = append(fm.Pairs,
					ir.Pair{Key: "function", Value: fr.Function},
					ir.Pair{Key: "file", Value: filepath.Base(fr.File)},
					ir.Pair{Key: "line", Value: int64(fr.Line)},
				)
				frames.Items = append(frames.Items, fm)
			} else {
				frames.Items = append(frames.Items, frameText(fr))
			}
		}
		m.Pairs = append(m.Pairs, ir.Pair{Key: "stack", Value: frames})
	}
	if len(ev.Fields) > 0 {
		meta := a.Map()
		for _, f := range ev.Fields {
			meta.Pairs = append(meta.Pairs, ir.Pair{Key: f.Key, Value: treeValue(f.Value, a)})
		}
		m.Pairs = append(m.Pairs, ir.Pair{Key: "meta", Value: meta})
	}
	return m
}
