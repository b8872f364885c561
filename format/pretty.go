package format

import (
	"fmt"
	"strings"

	"github.com/emberlog/ember/core"
	"github.com/emberlog/ember/ir"
	"github.com/emberlog/ember/textwidth"
)

// defaultClock is the time layout formatters use unless configured.
const defaultClock = "15:04:05"

// Pretty is the terminal-first formatter. Each event becomes a card: an
// underlined header row with the logger name, then a level gutter carrying
// the message, the error with its stack frames, aligned key/value fields,
// and the call site, with the timestamp aligned to the right edge of the
// first line.
type Pretty struct {
	// Clock is the time layout for the aligned timestamp. Empty means
	// "15:04:05".
	Clock string
}

var _ Formatter = (*Pretty)(nil)

// Format populates doc from ev.
func (p *Pretty) Format(doc *ir.Document, ev *core.Event, a *ir.Arena) {
	stampMeta(doc, ev)

	doc.Nodes = append(doc.Nodes, p.headerRow(ev, a))

	block := a.Decorated()
	block.Leading = append(block.Leading,
		ir.Tagged(fmt.Sprintf("%-5s ", ev.Level.String()), ir.TagLevel),
		ir.Tagged("│ ", ir.TagBorder),
	)
	block.LeadingHint = ir.HintGutter
	block.Trailing = append(block.Trailing,
		ir.Tagged(" "+ev.Time.Format(p.clock()), ir.TagTimestamp),
	)
	block.AlignTrailing = true

	para := a.Paragraph()
	msg := a.Message()
	msg.Tags = ir.TagMessage
	msg.Segments = append(msg.Segments, ir.Tagged(ev.Message, ir.TagMessage))
	para.Children = append(para.Children, msg)
	block.Children = append(block.Children, para)

	if ev.Err != nil {
		block.Children = append(block.Children, p.errorBlock(ev, a))
	}
	for _, meta := range fieldMetas(ev.Fields, a) {
		block.Children = append(block.Children, meta)
	}
	if ev.Origin.Defined {
		footer := a.Footer()
		footer.Tags = ir.TagOrigin
		footer.Segments = append(footer.Segments, ir.Tagged(originText(ev.Origin), ir.TagOrigin))
		block.Children = append(block.Children, footer)
	}

	doc.Nodes = append(doc.Nodes, block)
}

func (p *Pretty) clock() string {
	if p.Clock == "" {
		return defaultClock
	}
	return p.Clock
}

// headerRow builds the underlined title line.
func (p *Pretty) headerRow(ev *core.Event, a *ir.Arena) *ir.RowNode {
	name := ev.Logger
	if name == "" {
		name = "ember"
	}
	header := a.Header()
	header.Tags = ir.TagHeader
	header.Segments = append(header.Segments,
		ir.Tagged(name, ir.TagHeader.With(ir.TagLogger)),
		ir.Tagged(" ", ir.TagHeader),
	)
	rule := a.Filler()
	rule.Char = '─'

	row := a.Row()
	row.Tags = ir.TagHeader
	row.Children = append(row.Children, header, rule)
	return row
}

// errorBlock indents the error line and its stack frames under the message.
func (p *Pretty) errorBlock(ev *core.Event, a *ir.Arena) *ir.IndentNode {
	errNode := a.Error()
	errNode.Tags = ir.TagError
	errNode.Segments = append(errNode.Segments,
		ir.Tagged("error: ", ir.TagError.With(ir.TagPunctuation)),
		ir.Tagged(ev.Err.Error(), ir.TagError),
	)

	ind := a.Indent()
	ind.Indent = "  "
	ind.Children = append(ind.Children, errNode)
	for _, fr := range ev.Stack {
		frame := a.Meta()
		frame.Tags = ir.TagStackFrame
		frame.Segments = append(frame.Segments, ir.Tagged(frameText(fr), ir.TagStackFrame))
		ind.Children = append(ind.Children, frame)
	}
	return ind
}

// fieldMetas renders fields as one MetaNode per key with the values
// aligned into a single column.
func fieldMetas(fields []core.Field, a *ir.Arena) []*ir.MetaNode {
	if len(fields) == 0 {
		return nil
	}
	maxKey := 0
	for _, f := range fields {
		if w := textwidth.Width(f.Key); w > maxKey {
			maxKey = w
		}
	}
	out := make([]*ir.MetaNode, 0, len(fields))
	for _, f := range fields {
		meta := a.Meta()
		meta.Tags = ir.TagKey.With(ir.TagValue)
		pad := maxKey - textwidth.Width(f.Key) + 1
		meta.Segments = append(meta.Segments,
			ir.Tagged(f.Key, ir.TagKey),
			ir.Tagged(":"+strings.Repeat(" ", pad), ir.TagPunctuation),
			ir.Tagged(f.Text(), ir.TagValue),
		)
		out = append(out, meta)
	}
	return out
}
