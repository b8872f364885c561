package decor

import (
	"sort"

	"github.com/emberlog/ember/core"
	"github.com/emberlog/ember/ir"
)

// Class ranks decorators by when they must run. Content decorators add or
// rewrite text, structural decorators reshape the tree, and visual
// decorators only assign styles.
type Class int

const (
	ClassContent Class = iota
	ClassStructural
	ClassVisual
)

// String returns the class name.
func (c Class) String() string {
	switch c {
	case ClassContent:
		return "content"
	case ClassStructural:
		return "structural"
	case ClassVisual:
		return "visual"
	default:
		return "unknown"
	}
}

// Decorator transforms a formatted document in place. Apply may check nodes
// out of the arena; released ownership stays with the document.
type Decorator interface {
	Apply(doc *ir.Document, ev *core.Event, a *ir.Arena)
	Class() Class
}

// Compose returns the decorators in mandatory application order: content
// first, then structural, then visual, keeping registration order within a
// class. Duplicate instances (same pointer) collapse to one application and
// nils are dropped.
func Compose(list ...Decorator) []Decorator {
	seen := make(map[Decorator]bool, len(list))
	out := make([]Decorator, 0, len(list))
	for _, d := range list {
		if d == nil || seen[d] {
			continue
		}
		seen[d] = true
		out = append(out, d)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Class() < out[j].Class()
	})
	return out
}
