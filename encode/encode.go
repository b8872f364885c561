package encode

import (
	"bytes"

	"github.com/emberlog/ember/ir"
	"github.com/emberlog/ember/layout"
)

// Encoder serializes one laid-out document. Implementations read the
// document and its segments read-only and terminate the output with a
// newline, so a sink can write the buffer as-is.
type Encoder interface {
	Encode(buf *bytes.Buffer, doc *layout.Document) error
}

// TreeEncoder is the optional capability of encoders that consume the
// semantic node tree directly. The pipeline checks for it and skips the
// layout engine when the document has a tree root.
type TreeEncoder interface {
	EncodeTree(buf *bytes.Buffer, doc *ir.Document) error
}

// treeRoots collects the map and list roots of a document.
func treeRoots(doc *ir.Document) []ir.Node {
	var roots []ir.Node
	for _, n := range doc.Nodes {
		switch n.(type) {
		case *ir.MapNode, *ir.ListNode:
			roots = append(roots, n)
		}
	}
	return roots
}
