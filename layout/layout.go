package layout

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rivo/uniseg"

	"github.com/emberlog/ember/ir"
	"github.com/emberlog/ember/textwidth"
)

// Layout renders doc into physical lines no wider than width, except where a
// single token or a row legitimately overflows. Width is clamped to at least
// one column; a nil or empty document produces an empty physical document.
// Layout never fails: impossible geometry degrades to clipping or odd wraps.
func Layout(doc *ir.Document, width int) *Document {
	if width < 1 {
		width = 1
	}
	out := &Document{}
	if doc == nil {
		return out
	}
	for _, n := range doc.Nodes {
		out.Lines = append(out.Lines, renderNode(n, width)...)
	}
	return out
}

func renderNode(n ir.Node, width int) []Line {
	switch v := n.(type) {
	case *ir.HeaderNode:
		return wrapSegments(v.Segments, width)
	case *ir.MessageNode:
		return wrapSegments(v.Segments, width)
	case *ir.ErrorNode:
		return wrapSegments(v.Segments, width)
	case *ir.FooterNode:
		return wrapSegments(v.Segments, width)
	case *ir.MetaNode:
		return wrapSegments(v.Segments, width)
	case *ir.BoxNode:
		return renderBox(v, width)
	case *ir.IndentNode:
		return renderIndent(v, width)
	case *ir.GroupNode:
		return renderChildren(v.Children, width)
	case *ir.DecoratedNode:
		return renderDecorated(v, width)
	case *ir.ParagraphNode:
		return wrapSegments(proseSegments(v.Children), width)
	case *ir.RowNode:
		return []Line{renderRow(v, width)}
	case *ir.FillerNode:
		return []Line{{Segments: []ir.StyledText{fillerRun(v, width)}}}
	case *ir.MapNode:
		return renderMapFallback(v, width)
	case *ir.ListNode:
		return wrapSegments(listFallbackSegments(v), width)
	default:
		return nil
	}
}

func renderChildren(children []ir.Node, width int) []Line {
	var lines []Line
	for _, c := range children {
		lines = append(lines, renderNode(c, width)...)
	}
	return lines
}

// renderBox frames its children. Children are laid out one column narrower on
// each side when a border is drawn; the interior then grows to the widest line
// actually produced, so an unbreakable token widens the box instead of being
// clipped. Every emitted line has the same visible width.
func renderBox(b *ir.BoxNode, width int) []Line {
	border, drawn := borderFor(b.Border)
	budget := width
	if drawn {
		budget -= 2
	}
	if budget < 1 {
		budget = 1
	}
	inner := renderChildren(b.Children, budget)

	interior := budget
	for _, ln := range inner {
		if w := ln.VisibleWidth(); w > interior {
			interior = w
		}
	}

	out := make([]Line, 0, len(inner)+2)
	if drawn {
		out = append(out, boxTop(b, border, interior))
	}
	for _, ln := range inner {
		segs := make([]ir.StyledText, 0, len(ln.Segments)+3)
		if drawn {
			segs = append(segs, borderSeg(border.Left, b.Style))
		}
		segs = append(segs, ln.Segments...)
		if pad := interior - ln.VisibleWidth(); pad > 0 {
			segs = append(segs, padSeg(pad, b.Style))
		}
		if drawn {
			segs = append(segs, borderSeg(border.Right, b.Style))
		}
		out = append(out, Line{Segments: segs})
	}
	if drawn {
		bottom := border.BottomLeft + strings.Repeat(border.Bottom, interior) + border.BottomRight
		out = append(out, Line{Segments: []ir.StyledText{borderSeg(bottom, b.Style)}})
	}
	return out
}

func boxTop(b *ir.BoxNode, border lipgloss.Border, interior int) Line {
	title := strings.TrimSpace(b.Title)
	if title == "" || interior < 4 {
		top := border.TopLeft + strings.Repeat(border.Top, interior) + border.TopRight
		return Line{Segments: []ir.StyledText{borderSeg(top, b.Style)}}
	}
	if textwidth.Width(title) > interior-3 {
		title, _ = cutCluster(title, 0, interior-3)
	}
	rest := interior - 3 - textwidth.Width(title)
	return Line{Segments: []ir.StyledText{
		borderSeg(border.TopLeft+border.Top+" ", b.Style),
		ir.Styled(title, ir.TagHeader, b.Style),
		borderSeg(" "+strings.Repeat(border.Top, rest)+border.TopRight, b.Style),
	}}
}

// renderIndent lays children out narrower by the indent's width and prefixes
// every produced line, blank ones included, so hierarchy markers run the full
// height of the subtree. Nested indents compose by repeated prefixing.
func renderIndent(n *ir.IndentNode, width int) []Line {
	prefix, pw := flattenOneLine([]ir.StyledText{ir.Styled(n.Indent, ir.TagBorder, n.Style)}, 0)
	if pw == 0 {
		return renderChildren(n.Children, width)
	}
	budget := width - pw
	if budget < 1 {
		budget = 1
	}
	inner := renderChildren(n.Children, budget)
	out := make([]Line, len(inner))
	for i, ln := range inner {
		segs := make([]ir.StyledText, 0, len(ln.Segments)+len(prefix))
		segs = append(segs, prefix...)
		segs = append(segs, ln.Segments...)
		out[i] = Line{Segments: segs}
	}
	return out
}

// renderDecorated reserves fixed-width columns on both sides of its children.
// The first line carries the columns as written; wrapped continuation lines
// repeat them, or stand in for them according to the column's hint, keeping
// later lines aligned with the first.
func renderDecorated(d *ir.DecoratedNode, width int) []Line {
	leading, leadW := flattenOneLine(d.Leading, 0)
	trailing, trailW := flattenOneLine(d.Trailing, 0)
	budget := width - leadW - trailW
	if budget < 1 {
		budget = 1
	}
	inner := renderChildren(d.Children, budget)
	if len(inner) == 0 {
		inner = []Line{{}}
	}
	out := make([]Line, len(inner))
	for i, ln := range inner {
		var segs []ir.StyledText
		switch {
		case leadW == 0:
		case i == 0 || d.RepeatLeading:
			segs = append(segs, leading...)
		default:
			segs = append(segs, continuationColumn(leading, leadW, d.LeadingHint)...)
		}
		segs = append(segs, ln.Segments...)
		if trailW > 0 {
			if d.AlignTrailing {
				if pad := budget - ln.VisibleWidth(); pad > 0 {
					segs = append(segs, ir.Text(strings.Repeat(" ", pad)))
				}
			}
			if i == 0 || d.RepeatTrailing {
				segs = append(segs, trailing...)
			} else {
				segs = append(segs, continuationColumn(trailing, trailW, d.TrailingHint)...)
			}
		}
		out[i] = Line{Segments: segs}
	}
	return out
}

// continuationColumn builds the stand-in for a non-repeated column on wrapped
// lines. Unknown hints blank the column, so formats that invent new hints
// degrade to aligned whitespace on engines that predate them.
func continuationColumn(column []ir.StyledText, width int, hint string) []ir.StyledText {
	switch hint {
	case ir.HintRule:
		return ruleColumn(column, width)
	case ir.HintGutter:
		return gutterColumn(column, width)
	default:
		return []ir.StyledText{ir.Text(strings.Repeat(" ", width))}
	}
}

// ruleColumn continues the column by repeating its first visible cluster, the
// way a header underline keeps running beneath its wrapped title.
func ruleColumn(column []ir.StyledText, width int) []ir.StyledText {
	for _, seg := range column {
		text := seg.Text
		state := -1
		for len(text) > 0 {
			if n := textwidth.EscapeLen(text); n > 0 {
				text = text[n:]
				state = -1
				continue
			}
			var cl string
			cl, text, _, state = uniseg.FirstGraphemeClusterInString(text, state)
			cw := textwidth.ClusterWidth(cl)
			if cw < 1 {
				continue
			}
			run := strings.Repeat(cl, width/cw)
			if pad := width - (width/cw)*cw; pad > 0 {
				run += strings.Repeat(" ", pad)
			}
			return []ir.StyledText{seg.WithText(run)}
		}
	}
	return []ir.StyledText{ir.Text(strings.Repeat(" ", width))}
}

// gutterColumn keeps the column's final visible glyph in place and blanks the
// rest, so "INFO │ " continues as "     │ ".
func gutterColumn(column []ir.StyledText, width int) []ir.StyledText {
	var (
		glyph    string
		glyphCol int
		glyphW   int
		src      ir.StyledText
		col      int
	)
	for _, seg := range column {
		text := seg.Text
		state := -1
		for len(text) > 0 {
			if n := textwidth.EscapeLen(text); n > 0 {
				text = text[n:]
				state = -1
				continue
			}
			var cl string
			cl, text, _, state = uniseg.FirstGraphemeClusterInString(text, state)
			cw := textwidth.ClusterWidth(cl)
			if strings.TrimSpace(cl) != "" {
				glyph, glyphCol, glyphW, src = cl, col, cw, seg
			}
			col += cw
		}
	}
	if glyph == "" {
		return []ir.StyledText{ir.Text(strings.Repeat(" ", width))}
	}
	var segs []ir.StyledText
	if glyphCol > 0 {
		segs = append(segs, ir.Text(strings.Repeat(" ", glyphCol)))
	}
	segs = append(segs, src.WithText(glyph))
	if tail := width - glyphCol - glyphW; tail > 0 {
		segs = append(segs, ir.Text(strings.Repeat(" ", tail)))
	}
	return segs
}

// renderRow concatenates its children onto one physical line. Fillers resolve
// after the other children's widths are known and absorb whatever is left,
// the uneven remainder included. A row that overflows the width is emitted
// as-is rather than wrapped.
func renderRow(r *ir.RowNode, width int) Line {
	widths := make([]int, len(r.Children))
	var fillerIdx []int
	col := 0
	for i, c := range r.Children {
		if _, ok := c.(*ir.FillerNode); ok {
			fillerIdx = append(fillerIdx, i)
			continue
		}
		_, w := flattenOneLine(inlineSegments(c), col)
		widths[i] = w
		col += w
	}
	if len(fillerIdx) > 0 {
		if remaining := width - col; remaining > 0 {
			for _, i := range fillerIdx {
				widths[i] = remaining / len(fillerIdx)
			}
			widths[fillerIdx[len(fillerIdx)-1]] += remaining % len(fillerIdx)
		}
	}

	var segs []ir.StyledText
	col = 0
	for i, c := range r.Children {
		if f, ok := c.(*ir.FillerNode); ok {
			if widths[i] > 0 {
				segs = append(segs, fillerRun(f, widths[i]))
			}
			col += widths[i]
			continue
		}
		flat, w := flattenOneLine(inlineSegments(c), col)
		segs = append(segs, flat...)
		col += w
	}
	return Line{Segments: segs}
}

// fillerRun expands a filler to exactly width columns. A wide fill rune that
// does not divide the width evenly leaves its final column as a space.
func fillerRun(f *ir.FillerNode, width int) ir.StyledText {
	if width < 0 {
		width = 0
	}
	ch := f.Char
	if ch == 0 {
		ch = ' '
	}
	cw := textwidth.ClusterWidth(string(ch))
	if cw < 1 {
		return ir.Styled(strings.Repeat(" ", width), f.Tags.With(ir.TagFill), f.Style)
	}
	run := strings.Repeat(string(ch), width/cw)
	if pad := width - (width/cw)*cw; pad > 0 {
		run += strings.Repeat(" ", pad)
	}
	return ir.Styled(run, f.Tags.With(ir.TagFill), f.Style)
}

func borderSeg(text string, style ir.Style) ir.StyledText {
	return ir.Styled(text, ir.TagBorder, style)
}

func padSeg(n int, style ir.Style) ir.StyledText {
	return ir.Styled(strings.Repeat(" ", n), ir.TagNone, style)
}
