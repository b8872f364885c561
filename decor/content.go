package decor

import (
	"strings"

	"github.com/emberlog/ember/core"
	"github.com/emberlog/ember/ir"
)

// Prefix reserves a leading column in front of everything the formatter
// produced, such as a level gutter or a pipeline name. With Repeat the
// column is printed on every line; otherwise continuation lines follow
// Hint.
type Prefix struct {
	Column []ir.StyledText
	Repeat bool
	Hint   string
}

var _ Decorator = (*Prefix)(nil)

// Class returns ClassContent.
func (p *Prefix) Class() Class { return ClassContent }

// Apply wraps the document roots in a DecoratedNode carrying the column.
func (p *Prefix) Apply(doc *ir.Document, _ *core.Event, a *ir.Arena) {
	dec := a.Decorated()
	dec.Leading = append(dec.Leading, p.Column...)
	dec.RepeatLeading = p.Repeat
	dec.LeadingHint = p.Hint
	dec.Tags = ir.TagPrefix
	dec.Children = append(dec.Children, doc.Nodes...)
	doc.Nodes = append(doc.Nodes[:0], dec)
}

// Suffix reserves a trailing column after the formatted content, such as a
// timestamp or host marker. Aligned pushes the column to the right edge of
// the available width.
type Suffix struct {
	Column  []ir.StyledText
	Repeat  bool
	Aligned bool
	Hint    string
}

var _ Decorator = (*Suffix)(nil)

// Class returns ClassContent.
func (s *Suffix) Class() Class { return ClassContent }

// Apply wraps the document roots in a DecoratedNode carrying the column.
func (s *Suffix) Apply(doc *ir.Document, _ *core.Event, a *ir.Arena) {
	dec := a.Decorated()
	dec.Trailing = append(dec.Trailing, s.Column...)
	dec.RepeatTrailing = s.Repeat
	dec.AlignTrailing = s.Aligned
	dec.TrailingHint = s.Hint
	dec.Tags = ir.TagSuffix
	dec.Children = append(dec.Children, doc.Nodes...)
	doc.Nodes = append(doc.Nodes[:0], dec)
}

// Redact masks the values of matching keys wherever they appear: value
// segments following a key segment in content leaves, and raw values in
// map nodes. Matching is case-insensitive and ignores the ":" or "="
// punctuation formatters append to keys. Tags and tree shape are
// preserved.
type Redact struct {
	keys map[string]struct{}
	mask string
}

var _ Decorator = (*Redact)(nil)

// NewRedact builds a Redact decorator for the given key names.
func NewRedact(keys ...string) *Redact {
	r := &Redact{
		keys: make(map[string]struct{}, len(keys)),
		mask: "***",
	}
	for _, k := range keys {
		r.keys[normalizeKey(k)] = struct{}{}
	}
	return r
}

// WithMask overrides the replacement text and returns the decorator.
func (r *Redact) WithMask(mask string) *Redact {
	r.mask = mask
	return r
}

// Class returns ClassContent.
func (r *Redact) Class() Class { return ClassContent }

// Apply rewrites matching values across the whole tree.
func (r *Redact) Apply(doc *ir.Document, _ *core.Event, _ *ir.Arena) {
	ir.WalkDocument(doc, func(n ir.Node) {
		switch v := n.(type) {
		case *ir.HeaderNode:
			r.maskSegments(v.Segments)
		case *ir.MessageNode:
			r.maskSegments(v.Segments)
		case *ir.FooterNode:
			r.maskSegments(v.Segments)
		case *ir.MetaNode:
			r.maskSegments(v.Segments)
		case *ir.MapNode:
			for i := range v.Pairs {
				if _, ok := v.Pairs[i].Value.(ir.Node); ok {
					continue
				}
				if r.matches(v.Pairs[i].Key) {
					v.Pairs[i].Value = r.mask
				}
			}
		}
	})
}

// maskSegments replaces the text of TagValue segments that follow a
// matching TagKey segment. Punctuation between key and value is skipped.
func (r *Redact) maskSegments(segs []ir.StyledText) {
	armed := false
	for i := range segs {
		switch {
		case segs[i].Tags.Has(ir.TagKey):
			armed = r.matches(segs[i].Text)
		case segs[i].Tags.Has(ir.TagValue):
			if armed {
				segs[i].Text = r.mask
				armed = false
			}
		case segs[i].Tags.Has(ir.TagPunctuation):
			// keep scanning toward the value
		default:
			armed = false
		}
	}
}

func (r *Redact) matches(key string) bool {
	_, ok := r.keys[normalizeKey(key)]
	return ok
}

func normalizeKey(key string) string {
	key = strings.TrimSpace(key)
	key = strings.TrimRight(key, ":= ")
	return strings.ToLower(key)
}
