// Package layout renders an ir.Document into physical terminal lines.
//
// Layout is a pure function of the tree and a target width. It wraps content
// at word boundaries, expands tabs against absolute columns, treats escape
// sequences as zero width, and keeps structural framing (boxes, indents,
// decorated columns) width-exact: every line of a box has the same visible
// width, continuation lines of a decorated column stay aligned, and wide
// glyphs are never split.
//
// The engine reads the tree and never mutates it; documents it produces are
// snapshots that encoders may walk but must not change.
package layout
