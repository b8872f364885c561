package format

import (
	"time"

	"github.com/emberlog/ember/core"
	"github.com/emberlog/ember/ir"
)

// Plain is the single-line formatter for files and pipes: timestamp, level,
// logger, message, then key=value fields, with the error on a second line.
// It sets no decoration hints, so the output keeps its shape under any
// width.
type Plain struct {
	// Clock is the time layout. Empty means RFC 3339.
	Clock string
}

var _ Formatter = (*Plain)(nil)

// Format populates doc from ev.
func (p *Plain) Format(doc *ir.Document, ev *core.Event, a *ir.Arena) {
	stampMeta(doc, ev)

	line := a.Message()
	line.Tags = ir.TagMessage
	line.Segments = append(line.Segments,
		ir.Tagged(ev.Time.Format(p.clock())+" ", ir.TagTimestamp),
		ir.Tagged(ev.Level.String()+" ", ir.TagLevel),
	)
	if ev.Logger != "" {
		line.Segments = append(line.Segments, ir.Tagged(ev.Logger+": ", ir.TagLogger))
	}
	line.Segments = append(line.Segments, ir.Tagged(ev.Message, ir.TagMessage))
	for _, f := range ev.Fields {
		line.Segments = append(line.Segments,
			ir.Tagged(" "+f.Key+"=", ir.TagKey),
			ir.Tagged(f.Text(), ir.TagValue),
		)
	}
	if ev.Origin.Defined {
		line.Segments = append(line.Segments, ir.Tagged(" ("+originText(ev.Origin)+")", ir.TagOrigin))
	}
	doc.Nodes = append(doc.Nodes, line)

	if ev.Err != nil {
		errNode := a.Error()
		errNode.Tags = ir.TagError
		errNode.Segments = append(errNode.Segments,
			ir.Tagged("error: ", ir.TagError.With(ir.TagPunctuation)),
			ir.Tagged(ev.Err.Error(), ir.TagError),
		)
		doc.Nodes = append(doc.Nodes, errNode)
		for _, fr := range ev.Stack {
			frame := a.Meta()
			frame.Tags = ir.TagStackFrame
			frame.Segments = append(frame.Segments, ir.Tagged("  "+frameText(fr), ir.TagStackFrame))
			doc.Nodes = append(doc.Nodes, frame)
		}
	}
}

func (p *Plain) clock() string {
	if p.Clock == "" {
		return time.RFC3339
	}
	return p.Clock
}
