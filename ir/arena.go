package ir

// Arena recycles documents and nodes across log events. Checkout methods pop
// a reset instance from a per-kind stack, or allocate when the stack is
// empty, so the steady-state formatting path touches the allocator only
// while the arena warms up. Release pushes instances back; ReleaseDocument
// and ReleaseTree return whole subtrees and are the only sanctioned way to
// hand a tree back.
//
// The zero Arena is ready to use. An Arena is not safe for concurrent use;
// give each worker its own or serialize access externally.
type Arena struct {
	documents  []*Document
	headers    []*HeaderNode
	messages   []*MessageNode
	errNodes   []*ErrorNode
	footers    []*FooterNode
	metas      []*MetaNode
	boxes      []*BoxNode
	indents    []*IndentNode
	groups     []*GroupNode
	decorated  []*DecoratedNode
	paragraphs []*ParagraphNode
	rows       []*RowNode
	fillers    []*FillerNode
	maps       []*MapNode
	lists      []*ListNode
}

const (
	segmentCap = 4
	childCap   = 4
	rootCap    = 8
)

// Document checks out a document with empty roots and metadata.
func (a *Arena) Document() *Document {
	if n := len(a.documents); n > 0 {
		d := a.documents[n-1]
		a.documents = a.documents[:n-1]
		d.released = false
		return d
	}
	return &Document{
		Nodes: make([]Node, 0, rootCap),
		Meta:  make(map[string]string),
	}
}

// Header checks out a HeaderNode.
func (a *Arena) Header() *HeaderNode {
	if n := len(a.headers); n > 0 {
		h := a.headers[n-1]
		a.headers = a.headers[:n-1]
		h.released = false
		return h
	}
	return &HeaderNode{Segments: make([]StyledText, 0, segmentCap)}
}

// Message checks out a MessageNode.
func (a *Arena) Message() *MessageNode {
	if n := len(a.messages); n > 0 {
		m := a.messages[n-1]
		a.messages = a.messages[:n-1]
		m.released = false
		return m
	}
	return &MessageNode{Segments: make([]StyledText, 0, segmentCap)}
}

// Error checks out an ErrorNode.
func (a *Arena) Error() *ErrorNode {
	if n := len(a.errNodes); n > 0 {
		e := a.errNodes[n-1]
		a.errNodes = a.errNodes[:n-1]
		e.released = false
		return e
	}
	return &ErrorNode{Segments: make([]StyledText, 0, segmentCap)}
}

// Footer checks out a FooterNode.
func (a *Arena) Footer() *FooterNode {
	if n := len(a.footers); n > 0 {
		f := a.footers[n-1]
		a.footers = a.footers[:n-1]
		f.released = false
		return f
	}
	return &FooterNode{Segments: make([]StyledText, 0, segmentCap)}
}

// Meta checks out a MetaNode.
func (a *Arena) Meta() *MetaNode {
	if n := len(a.metas); n > 0 {
		m := a.metas[n-1]
		a.metas = a.metas[:n-1]
		m.released = false
		return m
	}
	return &MetaNode{Segments: make([]StyledText, 0, segmentCap)}
}

// Box checks out a BoxNode.
func (a *Arena) Box() *BoxNode {
	if n := len(a.boxes); n > 0 {
		b := a.boxes[n-1]
		a.boxes = a.boxes[:n-1]
		b.released = false
		return b
	}
	return &BoxNode{Children: make([]Node, 0, childCap)}
}

// Indent checks out an IndentNode.
func (a *Arena) Indent() *IndentNode {
	if n := len(a.indents); n > 0 {
		i := a.indents[n-1]
		a.indents = a.indents[:n-1]
		i.released = false
		return i
	}
	return &IndentNode{Children: make([]Node, 0, childCap)}
}

// Group checks out a GroupNode.
func (a *Arena) Group() *GroupNode {
	if n := len(a.groups); n > 0 {
		g := a.groups[n-1]
		a.groups = a.groups[:n-1]
		g.released = false
		return g
	}
	return &GroupNode{Children: make([]Node, 0, childCap)}
}

// Decorated checks out a DecoratedNode.
func (a *Arena) Decorated() *DecoratedNode {
	if n := len(a.decorated); n > 0 {
		d := a.decorated[n-1]
		a.decorated = a.decorated[:n-1]
		d.released = false
		return d
	}
	return &DecoratedNode{
		Children: make([]Node, 0, childCap),
		Leading:  make([]StyledText, 0, 2),
		Trailing: make([]StyledText, 0, 2),
	}
}

// Paragraph checks out a ParagraphNode.
func (a *Arena) Paragraph() *ParagraphNode {
	if n := len(a.paragraphs); n > 0 {
		p := a.paragraphs[n-1]
		a.paragraphs = a.paragraphs[:n-1]
		p.released = false
		return p
	}
	return &ParagraphNode{Children: make([]Node, 0, childCap)}
}

// Row checks out a RowNode.
func (a *Arena) Row() *RowNode {
	if n := len(a.rows); n > 0 {
		r := a.rows[n-1]
		a.rows = a.rows[:n-1]
		r.released = false
		return r
	}
	return &RowNode{Children: make([]Node, 0, childCap)}
}

// Filler checks out a FillerNode.
func (a *Arena) Filler() *FillerNode {
	if n := len(a.fillers); n > 0 {
		f := a.fillers[n-1]
		a.fillers = a.fillers[:n-1]
		f.released = false
		return f
	}
	return &FillerNode{}
}

// Map checks out a MapNode.
func (a *Arena) Map() *MapNode {
	if n := len(a.maps); n > 0 {
		m := a.maps[n-1]
		a.maps = a.maps[:n-1]
		m.released = false
		return m
	}
	return &MapNode{Pairs: make([]Pair, 0, childCap)}
}

// List checks out a ListNode.
func (a *Arena) List() *ListNode {
	if n := len(a.lists); n > 0 {
		l := a.lists[n-1]
		a.lists = a.lists[:n-1]
		l.released = false
		return l
	}
	return &ListNode{Items: make([]any, 0, childCap)}
}

// Release resets n and pushes it back onto its kind's stack. Children are
// not touched; use ReleaseTree to return a subtree. Releasing the same node
// twice panics.
func (a *Arena) Release(n Node) {
	switch v := n.(type) {
	case *HeaderNode:
		a.guard(&v.released)
		v.reset()
		a.headers = append(a.headers, v)
	case *MessageNode:
		a.guard(&v.released)
		v.reset()
		a.messages = append(a.messages, v)
	case *ErrorNode:
		a.guard(&v.released)
		v.reset()
		a.errNodes = append(a.errNodes, v)
	case *FooterNode:
		a.guard(&v.released)
		v.reset()
		a.footers = append(a.footers, v)
	case *MetaNode:
		a.guard(&v.released)
		v.reset()
		a.metas = append(a.metas, v)
	case *BoxNode:
		a.guard(&v.released)
		v.reset()
		a.boxes = append(a.boxes, v)
	case *IndentNode:
		a.guard(&v.released)
		v.reset()
		a.indents = append(a.indents, v)
	case *GroupNode:
		a.guard(&v.released)
		v.reset()
		a.groups = append(a.groups, v)
	case *DecoratedNode:
		a.guard(&v.released)
		v.reset()
		a.decorated = append(a.decorated, v)
	case *ParagraphNode:
		a.guard(&v.released)
		v.reset()
		a.paragraphs = append(a.paragraphs, v)
	case *RowNode:
		a.guard(&v.released)
		v.reset()
		a.rows = append(a.rows, v)
	case *FillerNode:
		a.guard(&v.released)
		v.reset()
		a.fillers = append(a.fillers, v)
	case *MapNode:
		a.guard(&v.released)
		v.reset()
		a.maps = append(a.maps, v)
	case *ListNode:
		a.guard(&v.released)
		v.reset()
		a.lists = append(a.lists, v)
	}
}

func (a *Arena) guard(released *bool) {
	if *released {
		panic("ir: node released twice")
	}
	*released = true
}

// ReleaseTree releases every node beneath n depth first and then n itself.
func (a *Arena) ReleaseTree(n Node) {
	if n == nil {
		return
	}
	switch v := n.(type) {
	case *BoxNode:
		a.releaseChildren(v.Children)
	case *IndentNode:
		a.releaseChildren(v.Children)
	case *GroupNode:
		a.releaseChildren(v.Children)
	case *DecoratedNode:
		a.releaseChildren(v.Children)
	case *ParagraphNode:
		a.releaseChildren(v.Children)
	case *RowNode:
		a.releaseChildren(v.Children)
	case *MapNode:
		for _, p := range v.Pairs {
			if c, ok := p.Value.(Node); ok {
				a.ReleaseTree(c)
			}
		}
	case *ListNode:
		for _, it := range v.Items {
			if c, ok := it.(Node); ok {
				a.ReleaseTree(c)
			}
		}
	}
	a.Release(n)
}

func (a *Arena) releaseChildren(children []Node) {
	for _, c := range children {
		a.ReleaseTree(c)
	}
}

// ReleaseDocument returns d and its whole tree to the arena. After the call
// the caller must drop every reference into the tree.
func (a *Arena) ReleaseDocument(d *Document) {
	if d == nil {
		return
	}
	if d.released {
		panic("ir: document released twice")
	}
	a.releaseChildren(d.Nodes)
	d.Nodes = d.Nodes[:0]
	clear(d.Meta)
	d.released = true
	a.documents = append(a.documents, d)
}

// Size reports how many instances are parked across all stacks. Together
// with a before/after comparison it makes pool leaks visible in tests.
func (a *Arena) Size() int {
	return len(a.documents) +
		len(a.headers) +
		len(a.messages) +
		len(a.errNodes) +
		len(a.footers) +
		len(a.metas) +
		len(a.boxes) +
		len(a.indents) +
		len(a.groups) +
		len(a.decorated) +
		len(a.paragraphs) +
		len(a.rows) +
		len(a.fillers) +
		len(a.maps) +
		len(a.lists)
}
