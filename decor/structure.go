package decor

import (
	"github.com/emberlog/ember/core"
	"github.com/emberlog/ember/ir"
)

// Box wraps the whole document in a bordered box. Applying two distinct Box
// decorators nests the later one outside the earlier one; the same instance
// registered twice collapses to a single box through Compose.
type Box struct {
	Border ir.BorderStyle
	Title  string
}

var _ Decorator = (*Box)(nil)

// Class returns ClassStructural.
func (b *Box) Class() Class { return ClassStructural }

// Apply wraps the document roots in a BoxNode.
func (b *Box) Apply(doc *ir.Document, _ *core.Event, a *ir.Arena) {
	box := a.Box()
	box.Border = b.Border
	box.Title = b.Title
	box.Tags = ir.TagBorder
	box.Children = append(box.Children, doc.Nodes...)
	doc.Nodes = append(doc.Nodes[:0], box)
}

// Indent shifts the whole document right by prefixing every line with
// Marker. Nested Indent decorators compose outermost first.
type Indent struct {
	Marker string
}

var _ Decorator = (*Indent)(nil)

// Class returns ClassStructural.
func (i *Indent) Class() Class { return ClassStructural }

// Apply wraps the document roots in an IndentNode.
func (i *Indent) Apply(doc *ir.Document, _ *core.Event, a *ir.Arena) {
	ind := a.Indent()
	ind.Indent = i.Marker
	ind.Children = append(ind.Children, doc.Nodes...)
	doc.Nodes = append(doc.Nodes[:0], ind)
}
