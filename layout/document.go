package layout

import (
	"strings"

	"github.com/emberlog/ember/ir"
	"github.com/emberlog/ember/textwidth"
	"github.com/rivo/uniseg"
)

// Document is the physical rendering of one event: a flat list of terminal
// rows in tree order, ready for an encoder.
type Document struct {
	Lines []Line
}

// Text joins all lines with newlines, without styling.
func (d *Document) Text() string {
	parts := make([]string, len(d.Lines))
	for i, ln := range d.Lines {
		parts[i] = ln.Text()
	}
	return strings.Join(parts, "\n")
}

// MaxWidth returns the widest line's visible width.
func (d *Document) MaxWidth() int {
	max := 0
	for _, ln := range d.Lines {
		if w := ln.VisibleWidth(); w > max {
			max = w
		}
	}
	return max
}

// Line is one terminal row: an ordered list of styled segments.
type Line struct {
	Segments []ir.StyledText
}

// Text concatenates the segment text without styling.
func (l Line) Text() string {
	var sb strings.Builder
	for _, s := range l.Segments {
		sb.WriteString(s.Text)
	}
	return sb.String()
}

// VisibleWidth returns the columns the line occupies on screen. Tab widths
// are resolved against the absolute column accumulated across segments, not
// per segment.
func (l Line) VisibleWidth() int {
	col := 0
	for _, s := range l.Segments {
		col += textwidth.WidthFrom(s.Text, col)
	}
	return col
}

// Truncate returns a copy of the line cut to at most width visible columns,
// measuring from absolute column startX. Whole segments are copied while they
// fit; the first segment that does not is split at a grapheme boundary and
// everything after it is dropped. A segment that cannot fit even one glyph is
// dropped entirely.
func (l Line) Truncate(width, startX int) Line {
	if width < 0 {
		width = 0
	}
	var out []ir.StyledText
	col := startX
	used := 0
	for _, seg := range l.Segments {
		w := textwidth.WidthFrom(seg.Text, col)
		if used+w <= width {
			out = append(out, seg)
			col += w
			used += w
			continue
		}
		if head, hw := cutCluster(seg.Text, col, width-used); head != "" {
			out = append(out, seg.WithText(head))
			used += hw
		}
		break
	}
	return Line{Segments: out}
}

// cutCluster returns the longest prefix of s that fits in budget columns when
// printing starts at column startX, along with the prefix's width. Escape
// sequences are kept with the text that precedes them.
func cutCluster(s string, startX, budget int) (string, int) {
	col := startX
	used := 0
	end := 0
	state := -1
	for end < len(s) {
		rest := s[end:]
		if n := textwidth.EscapeLen(rest); n > 0 {
			end += n
			state = -1
			continue
		}
		var w int
		if rest[0] == '\t' {
			w = textwidth.TabStop - col%textwidth.TabStop
			if used+w > budget {
				break
			}
			end++
			state = -1
		} else {
			var cluster string
			cluster, _, _, state = uniseg.FirstGraphemeClusterInString(rest, state)
			w = textwidth.ClusterWidth(cluster)
			if used+w > budget {
				break
			}
			end += len(cluster)
		}
		col += w
		used += w
	}
	return s[:end], used
}
