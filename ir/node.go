package ir

// BorderStyle selects the glyph set drawn around a BoxNode.
type BorderStyle uint8

const (
	BorderNone BorderStyle = iota
	BorderRounded
	BorderSharp
	BorderDouble
)

// Decoration hints carried by DecoratedNode. A hint tells the layout engine
// how to fill a reserved column on continuation lines when the column text
// is not repeated. Unknown hints behave like HintBlank, so formats can
// introduce new hints without breaking older engines.
const (
	// HintBlank fills continuation columns with spaces.
	HintBlank = ""
	// HintGutter keeps the final non-blank glyph of the column in place and
	// blanks everything before it, so a column such as "INFO │ " continues
	// as "     │ ".
	HintGutter = "gutter"
	// HintRule fills the column by repeating its first rune, so a header
	// underline keeps running beneath wrapped lines.
	HintRule = "rule"
)

// Node is one node of a document tree. The set of implementations is closed
// to this package; consumers dispatch with type switches and may treat the
// switch as exhaustive.
type Node interface {
	node()
}

// HeaderNode is a content leaf for the most prominent line of an event,
// typically the logger name, level, and timestamp.
type HeaderNode struct {
	Segments []StyledText
	Tags     Tag

	released bool
}

// MessageNode is a content leaf holding the event message.
type MessageNode struct {
	Segments []StyledText
	Tags     Tag

	released bool
}

// ErrorNode is a content leaf holding error text.
type ErrorNode struct {
	Segments []StyledText
	Tags     Tag

	released bool
}

// FooterNode is a content leaf for trailing detail such as the call site.
type FooterNode struct {
	Segments []StyledText
	Tags     Tag

	released bool
}

// MetaNode is a content leaf for one key/value attachment or one stack
// frame.
type MetaNode struct {
	Segments []StyledText
	Tags     Tag

	released bool
}

// BoxNode draws a border around its children and pads every interior line
// to a single width. With BorderNone no border lines or glyphs are emitted
// but the interior padding still applies.
type BoxNode struct {
	Children []Node
	Title    string
	Border   BorderStyle
	Tags     Tag
	Style    Style

	released bool
}

// IndentNode lays its children out narrower and prefixes every produced
// line with Indent. Nested indentation composes outermost first.
type IndentNode struct {
	Children []Node
	Indent   string
	Tags     Tag
	Style    Style

	released bool
}

// GroupNode concatenates its children with no effect on layout. It exists
// so formatters and decorators can hold subtrees together.
type GroupNode struct {
	Children []Node
	Tags     Tag

	released bool
}

// DecoratedNode reserves leading and trailing columns around its children.
// The first line shows the columns as given; continuation lines repeat them
// or blank them according to the flags, and blanked columns follow the
// decoration hint. AlignTrailing pushes the trailing column to the right
// edge of the reserved width.
type DecoratedNode struct {
	Children       []Node
	Leading        []StyledText
	Trailing       []StyledText
	RepeatLeading  bool
	RepeatTrailing bool
	AlignTrailing  bool
	LeadingHint    string
	TrailingHint   string
	Tags           Tag

	released bool
}

// ParagraphNode flattens the text of every content leaf beneath it into one
// stream and wraps the stream as a whole.
type ParagraphNode struct {
	Children []Node
	Tags     Tag

	released bool
}

// RowNode lays its children out on a single line, never wrapping. Filler
// children absorb the width its siblings leave unused.
type RowNode struct {
	Children []Node
	Tags     Tag

	released bool
}

// FillerNode expands to a run of Char wide enough to absorb the remaining
// width of the enclosing row, or of the full line when used on its own.
type FillerNode struct {
	Char  rune
	Tags  Tag
	Style Style

	released bool
}

// Pair is one ordered key/value entry of a MapNode. Value is one of
// string, bool, int64, float64, nil, *MapNode, or *ListNode.
type Pair struct {
	Key   string
	Value any
}

// MapNode carries ordered structured data through the pipeline untouched.
// Tree encoders serialize it directly; the layout engine falls back to
// generic key/value text.
type MapNode struct {
	Pairs []Pair
	Tags  Tag

	released bool
}

// ListNode carries a sequence of values, with the same value domain as
// Pair.Value.
type ListNode struct {
	Items []any
	Tags  Tag

	released bool
}

// Document is the root of one event's node tree. Documents are owned by
// the Arena that produced them and must be returned with ReleaseDocument
// once the encoded output has been handed to a sink.
type Document struct {
	Nodes []Node

	// Meta carries small string facts about the event ("level", "logger",
	// "time") for decorators that run after formatting.
	Meta map[string]string

	released bool
}

// HasTree reports whether any root node is a MapNode or ListNode, the kinds
// tree encoders consume directly.
func (d *Document) HasTree() bool {
	for _, n := range d.Nodes {
		switch n.(type) {
		case *MapNode, *ListNode:
			return true
		}
	}
	return false
}

func (*HeaderNode) node()    {}
func (*MessageNode) node()   {}
func (*ErrorNode) node()     {}
func (*FooterNode) node()    {}
func (*MetaNode) node()      {}
func (*BoxNode) node()       {}
func (*IndentNode) node()    {}
func (*GroupNode) node()     {}
func (*DecoratedNode) node() {}
func (*ParagraphNode) node() {}
func (*RowNode) node()       {}
func (*FillerNode) node()    {}
func (*MapNode) node()       {}
func (*ListNode) node()      {}

func (n *HeaderNode) reset() {
	n.Segments = n.Segments[:0]
	n.Tags = TagNone
}

func (n *MessageNode) reset() {
	n.Segments = n.Segments[:0]
	n.Tags = TagNone
}

func (n *ErrorNode) reset() {
	n.Segments = n.Segments[:0]
	n.Tags = TagNone
}

func (n *FooterNode) reset() {
	n.Segments = n.Segments[:0]
	n.Tags = TagNone
}

func (n *MetaNode) reset() {
	n.Segments = n.Segments[:0]
	n.Tags = TagNone
}

func (n *BoxNode) reset() {
	n.Children = n.Children[:0]
	n.Title = ""
	n.Border = BorderNone
	n.Tags = TagNone
	n.Style = Style{}
}

func (n *IndentNode) reset() {
	n.Children = n.Children[:0]
	n.Indent = ""
	n.Tags = TagNone
	n.Style = Style{}
}

func (n *GroupNode) reset() {
	n.Children = n.Children[:0]
	n.Tags = TagNone
}

func (n *DecoratedNode) reset() {
	n.Children = n.Children[:0]
	n.Leading = n.Leading[:0]
	n.Trailing = n.Trailing[:0]
	n.RepeatLeading = false
	n.RepeatTrailing = false
	n.AlignTrailing = false
	n.LeadingHint = ""
	n.TrailingHint = ""
	n.Tags = TagNone
}

func (n *ParagraphNode) reset() {
	n.Children = n.Children[:0]
	n.Tags = TagNone
}

func (n *RowNode) reset() {
	n.Children = n.Children[:0]
	n.Tags = TagNone
}

func (n *FillerNode) reset() {
	n.Char = 0
	n.Tags = TagNone
	n.Style = Style{}
}

func (n *MapNode) reset() {
	n.Pairs = n.Pairs[:0]
	n.Tags = TagNone
}

func (n *ListNode) reset() {
	n.Items = n.Items[:0]
	n.Tags = TagNone
}

// Walk calls visit for n and then for every node beneath it, depth first in
// document order. Values nested inside MapNode pairs and ListNode items are
// visited too.
func Walk(n Node, visit func(Node)) {
	if n == nil {
		return
	}
	visit(n)
	switch v := n.(type) {
	case *BoxNode:
		walkAll(v.Children, visit)
	case *IndentNode:
		walkAll(v.Children, visit)
	case *GroupNode:
		walkAll(v.Children, visit)
	case *DecoratedNode:
		walkAll(v.Children, visit)
	case *ParagraphNode:
		walkAll(v.Children, visit)
	case *RowNode:
		walkAll(v.Children, visit)
	case *MapNode:
		for _, p := range v.Pairs {
			if c, ok := p.Value.(Node); ok {
				Walk(c, visit)
			}
		}
	case *ListNode:
		for _, it := range v.Items {
			if c, ok := it.(Node); ok {
				Walk(c, visit)
			}
		}
	}
}

func walkAll(children []Node, visit func(Node)) {
	for _, c := range children {
		Walk(c, visit)
	}
}

// WalkDocument walks every root node of d.
func WalkDocument(d *Document, visit func(Node)) {
	for _, n := range d.Nodes {
		Walk(n, visit)
	}
}
