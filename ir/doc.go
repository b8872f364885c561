// Package ir is the semantic document model that sits between log events
// and rendered output.
//
// # Model
//
// A formatted event is a tree of nodes rooted in a Document. Content leaves
// (HeaderNode, MessageNode, ErrorNode, FooterNode, MetaNode) hold runs of
// StyledText. Containers (BoxNode, IndentNode, GroupNode, DecoratedNode,
// ParagraphNode, RowNode) change how their children are arranged. FillerNode
// expands to absorb leftover width inside a row. MapNode and ListNode carry
// structured data untouched for encoders that want the tree rather than
// lines.
//
// Nodes say what a piece of output is, not what it looks like. Segments and
// nodes carry Tag bits; visual decorators translate tags into Style values
// late, just before encoding. The node set is closed: consumers dispatch
// with type switches and new output shapes are expressed through decoration
// hints, not new kinds.
//
// # Ownership
//
// Documents and nodes are owned by the Arena that produced them. The
// lifecycle of one event is checkout, format, decorate, lay out, encode,
// then ReleaseDocument, as a single unit. Releasing returns the whole
// subtree to the arena with capacity intact, so a warm arena formats events
// without allocating. Releasing a node twice panics. Using a node after
// release is undefined.
//
// # Concurrency
//
// An Arena is not safe for concurrent use. Give each goroutine its own
// arena or serialize access around it; the logger front end keeps a pool of
// workers, one arena each, for exactly this reason.
package ir
