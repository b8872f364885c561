package layout

import (
	"strings"

	"github.com/emberlog/ember/ir"
	"github.com/emberlog/ember/textwidth"
	"github.com/rivo/uniseg"
)

// cluster is one indivisible unit of flattened segment text: a grapheme
// cluster, a breakable space or tab, a zero-width escape sequence, or a hard
// line break. seg indexes the source segment so styling survives wrapping.
type cluster struct {
	text string
	seg  int
	kind uint8
	w    int
}

const (
	kindText uint8 = iota
	kindSpace
	kindTab
	kindEscape
	kindBreak
)

// splitClusters flattens segments into the cluster stream the wrapper works
// on. Tabs keep width zero here; their width depends on the column they land
// on and is resolved at placement time.
func splitClusters(segs []ir.StyledText) []cluster {
	var out []cluster
	for i, seg := range segs {
		s := seg.Text
		state := -1
		for len(s) > 0 {
			if n := textwidth.EscapeLen(s); n > 0 {
				out = append(out, cluster{text: s[:n], seg: i, kind: kindEscape})
				s = s[n:]
				state = -1
				continue
			}
			var cl string
			cl, s, _, state = uniseg.FirstGraphemeClusterInString(s, state)
			switch cl {
			case "\n", "\r\n":
				out = append(out, cluster{seg: i, kind: kindBreak})
			case "\t":
				out = append(out, cluster{text: cl, seg: i, kind: kindTab})
			case " ":
				out = append(out, cluster{text: cl, seg: i, kind: kindSpace, w: 1})
			default:
				out = append(out, cluster{text: cl, seg: i, kind: kindText, w: textwidth.ClusterWidth(cl)})
			}
		}
	}
	return out
}

func isGap(c cluster) bool { return c.kind == kindSpace || c.kind == kindTab }

// wrapSegments word-wraps flattened segments to the given width. Breaks go at
// the last space or tab that fits; a word longer than the whole line is split
// at a grapheme boundary instead, so wide glyphs stay intact. Whitespace is
// collapsed only at the break point. Hard newlines always break; an empty
// input still yields one empty line.
func wrapSegments(segs []ir.StyledText, width int) []Line {
	if width < 1 {
		width = 1
	}
	clusters := splitClusters(segs)

	var (
		lines    []Line
		cur      []cluster
		col      int
		lastGap  = -1
		eatSpace bool
	)
	flush := func() {
		lines = append(lines, assemble(segs, cur))
		cur = nil
		col = 0
		lastGap = -1
	}

	for _, c := range clusters {
		if c.kind == kindBreak {
			flush()
			eatSpace = false
			continue
		}
		if eatSpace {
			if isGap(c) {
				continue
			}
			eatSpace = false
		}
		w := c.w
		if c.kind == kindTab {
			w = textwidth.TabStop - col%textwidth.TabStop
		}
		if col+w > width && len(cur) > 0 {
			if isGap(c) {
				// The whitespace itself is the break point.
				trimGaps(&cur)
				flush()
				eatSpace = true
				continue
			}
			if lastGap >= 0 {
				carry := append([]cluster(nil), cur[lastGap+1:]...)
				cur = cur[:lastGap]
				trimGaps(&cur)
				flush()
				cur = carry
				for _, cc := range carry {
					col += cc.w
				}
			}
			if col+w > width && len(cur) > 0 {
				// No break point fits: split the word itself.
				flush()
			}
		}
		cur = append(cur, c)
		col += w
		if isGap(c) {
			lastGap = len(cur) - 1
		}
	}
	if len(cur) > 0 || len(lines) == 0 {
		flush()
	}
	return lines
}

func trimGaps(cur *[]cluster) {
	cs := *cur
	for len(cs) > 0 && isGap(cs[len(cs)-1]) {
		cs = cs[:len(cs)-1]
	}
	*cur = cs
}

// assemble rebuilds a physical line from placed clusters, merging runs from
// the same source segment and expanding tabs against the line's own columns.
// The result carries no tabs, so later prefixing and padding cannot change
// its width.
func assemble(segs []ir.StyledText, placed []cluster) Line {
	if len(placed) == 0 {
		return Line{}
	}
	var (
		out  []ir.StyledText
		sb   strings.Builder
		prev = placed[0].seg
		col  int
	)
	emit := func() {
		if sb.Len() > 0 {
			src := segs[prev]
			out = append(out, ir.StyledText{Text: sb.String(), Tags: src.Tags, Style: src.Style})
			sb.Reset()
		}
	}
	for _, c := range placed {
		if c.seg != prev {
			emit()
			prev = c.seg
		}
		switch c.kind {
		case kindTab:
			n := textwidth.TabStop - col%textwidth.TabStop
			sb.WriteString(strings.Repeat(" ", n))
			col += n
		case kindEscape:
			sb.WriteString(c.text)
		default:
			sb.WriteString(c.text)
			col += c.w
		}
	}
	emit()
	return Line{Segments: out}
}

// flattenOneLine renders segments as a single row: tabs expand, hard breaks
// become single spaces. Rows and decoration columns use it for content that
// must not wrap.
func flattenOneLine(segs []ir.StyledText, startCol int) ([]ir.StyledText, int) {
	var (
		out []ir.StyledText
		sb  strings.Builder
		col = startCol
	)
	clusters := splitClusters(segs)
	prev := 0
	if len(clusters) > 0 {
		prev = clusters[0].seg
	}
	emit := func() {
		if sb.Len() > 0 {
			src := segs[prev]
			out = append(out, ir.StyledText{Text: sb.String(), Tags: src.Tags, Style: src.Style})
			sb.Reset()
		}
	}
	for _, c := range clusters {
		if c.seg != prev {
			emit()
			prev = c.seg
		}
		switch c.kind {
		case kindBreak:
			sb.WriteString(" ")
			col++
		case kindTab:
			n := textwidth.TabStop - col%textwidth.TabStop
			sb.WriteString(strings.Repeat(" ", n))
			col += n
		case kindEscape:
			sb.WriteString(c.text)
		default:
			sb.WriteString(c.text)
			col += c.w
		}
	}
	emit()
	return out, col - startCol
}
