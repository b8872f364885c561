package layout

import (
	"fmt"
	"strconv"

	"github.com/emberlog/ember/ir"
)

// renderMapFallback is the generic text rendering for structured data the
// engine was not bypassed for: one wrapped "key: value" line per pair, with
// nested values inlined in brackets. Encoders that understand MapNode
// intercept it before layout and never see this form.
func renderMapFallback(m *ir.MapNode, width int) []Line {
	if len(m.Pairs) == 0 {
		return wrapSegments([]ir.StyledText{ir.Tagged("{}", ir.TagPunctuation)}, width)
	}
	var lines []Line
	for _, p := range m.Pairs {
		segs := make([]ir.StyledText, 0, 4)
		segs = append(segs,
			ir.Tagged(p.Key, ir.TagKey),
			ir.Tagged(": ", ir.TagPunctuation),
		)
		segs = append(segs, valueSegments(p.Value)...)
		lines = append(lines, wrapSegments(segs, width)...)
	}
	return lines
}

func mapInlineSegments(m *ir.MapNode) []ir.StyledText {
	segs := []ir.StyledText{ir.Tagged("{", ir.TagPunctuation)}
	for i, p := range m.Pairs {
		if i > 0 {
			segs = append(segs, ir.Tagged(", ", ir.TagPunctuation))
		}
		segs = append(segs,
			ir.Tagged(p.Key, ir.TagKey),
			ir.Tagged(": ", ir.TagPunctuation),
		)
		segs = append(segs, valueSegments(p.Value)...)
	}
	return append(segs, ir.Tagged("}", ir.TagPunctuation))
}

func listFallbackSegments(l *ir.ListNode) []ir.StyledText {
	segs := []ir.StyledText{ir.Tagged("[", ir.TagPunctuation)}
	for i, item := range l.Items {
		if i > 0 {
			segs = append(segs, ir.Tagged(", ", ir.TagPunctuation))
		}
		segs = append(segs, valueSegments(item)...)
	}
	return append(segs, ir.Tagged("]", ir.TagPunctuation))
}

func valueSegments(v any) []ir.StyledText {
	switch t := v.(type) {
	case *ir.MapNode:
		return mapInlineSegments(t)
	case *ir.ListNode:
		return listFallbackSegments(t)
	default:
		return []ir.StyledText{ir.Tagged(scalarText(v), ir.TagValue)}
	}
}

func scalarText(v any) string {
	switch t := v.(type) {
	case nil:
		return "null"
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case float64:
		return strconv.FormatFloat(t, 'g', -1, 64)
	default:
		return fmt.Sprint(t)
	}
}

// inlineSegments flattens a subtree to the raw segment stream a row or a
// paragraph works with. Structural framing is ignored; decoration columns
// stay inline where the formatter put them.
func inlineSegments(n ir.Node) []ir.StyledText {
	var segs []ir.StyledText
	collectInline(n, &segs)
	return segs
}

func collectInline(n ir.Node, segs *[]ir.StyledText) {
	switch v := n.(type) {
	case *ir.HeaderNode:
		*segs = append(*segs, v.Segments...)
	case *ir.MessageNode:
		*segs = append(*segs, v.Segments...)
	case *ir.ErrorNode:
		*segs = append(*segs, v.Segments...)
	case *ir.FooterNode:
		*segs = append(*segs, v.Segments...)
	case *ir.MetaNode:
		*segs = append(*segs, v.Segments...)
	case *ir.BoxNode:
		collectInlineAll(v.Children, segs)
	case *ir.IndentNode:
		collectInlineAll(v.Children, segs)
	case *ir.GroupNode:
		collectInlineAll(v.Children, segs)
	case *ir.DecoratedNode:
		*segs = append(*segs, v.Leading...)
		collectInlineAll(v.Children, segs)
		*segs = append(*segs, v.Trailing...)
	case *ir.ParagraphNode:
		collectInlineAll(v.Children, segs)
	case *ir.RowNode:
		collectInlineAll(v.Children, segs)
	case *ir.MapNode:
		*segs = append(*segs, mapInlineSegments(v)...)
	case *ir.ListNode:
		*segs = append(*segs, listFallbackSegments(v)...)
	}
}

func collectInlineAll(children []ir.Node, segs *[]ir.StyledText) {
	for _, c := range children {
		collectInline(c, segs)
	}
}

// proseSegments joins children into one flowing stream with a single space
// between them, so a paragraph wraps across child boundaries instead of
// breaking at each one.
func proseSegments(children []ir.Node) []ir.StyledText {
	var segs []ir.StyledText
	for _, c := range children {
		leaf := inlineSegments(c)
		if len(leaf) == 0 {
			continue
		}
		if len(segs) > 0 {
			segs = append(segs, ir.Text(" "))
		}
		segs = append(segs, leaf...)
	}
	return segs
}
