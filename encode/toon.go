package encode

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/emberlog/ember/ir"
	"github.com/emberlog/ember/layout"
)

// TOON serializes tree documents as Token-Oriented Object Notation:
// indented key/value lines, scalar arrays folded onto one line as
// "key[n]: a,b,c", and uniform object arrays folded into a tabular
// "key[n]{f1,f2}:" block with one comma row per object. Laid-out documents
// degrade to a "lines[n]:" block.
type TOON struct{}

var (
	_ Encoder     = (*TOON)(nil)
	_ TreeEncoder = (*TOON)(nil)
)

// EncodeTree writes the tree roots of doc as TOON blocks.
func (TOON) EncodeTree(buf *bytes.Buffer, doc *ir.Document) error {
	roots := treeRoots(doc)
	if len(roots) == 0 {
		return ErrNoTree
	}
	for _, root := range roots {
		switch v := root.(type) {
		case *ir.MapNode:
			writeTOONMap(buf, v, 0)
		case *ir.ListNode:
			writeTOONList(buf, "", v, 0)
		}
	}
	return nil
}

// Encode writes the physical lines as a single lines[n] block.
func (TOON) Encode(buf *bytes.Buffer, doc *layout.Document) error {
	fmt.Fprintf(buf, "lines[%d]:\n", len(doc.Lines))
	for _, ln := range doc.Lines {
		buf.WriteString("  ")
		buf.WriteString(toonScalar(ln.Text()))
		buf.WriteByte('\n')
	}
	return nil
}

func writeTOONMap(buf *bytes.Buffer, m *ir.MapNode, depth int) {
	for _, p := range m.Pairs {
		writeTOONPair(buf, p.Key, p.Value, depth)
	}
}

func writeTOONPair(buf *bytes.Buffer, key string, v any, depth int) {
	switch val := v.(type) {
	case *ir.MapNode:
		writeIndent(buf, depth)
		buf.WriteString(toonScalar(key))
		buf.WriteString(":\n")
		writeTOONMap(buf, val, depth+1)
	case *ir.ListNode:
		writeTOONList(buf, key, val, depth)
	default:
		writeIndent(buf, depth)
		buf.WriteString(toonScalar(key))
		buf.WriteString(": ")
		buf.WriteString(toonValue(val))
		buf.WriteByte('\n')
	}
}

func writeTOONList(buf *bytes.Buffer, key string, l *ir.ListNode, depth int) {
	head := toonScalar(key) + "[" + strconv.Itoa(len(l.Items)) + "]"
	if key == "" {
		head = "[" + strconv.Itoa(len(l.Items)) + "]"
	}

	if fields, ok := uniformFields(l); ok {
		writeIndent(buf, depth)
		buf.WriteString(head)
		buf.WriteByte('{')
		buf.WriteString(strings.Join(fields, ","))
		buf.WriteString("}:\n")
		for _, item := range l.Items {
			writeIndent(buf, depth+1)
			row := item.(*ir.MapNode)
			for i, p := range row.Pairs {
				if i > 0 {
					buf.WriteByte(',')
				}
				buf.WriteString(toonValue(p.Value))
			}
			buf.WriteByte('\n')
		}
		return
	}

	if scalarItems(l) {
		writeIndent(buf, depth)
		buf.WriteString(head)
		buf.WriteByte(':')
		for i, item := range l.Items {
			if i > 0 {
				buf.WriteByte(',')
			} else {
				buf.WriteByte(' ')
			}
			buf.WriteString(toonValue(item))
		}
		buf.WriteByte('\n')
		return
	}

	writeIndent(buf, depth)
	buf.WriteString(head)
	buf.WriteString(":\n")
	for _, item := range l.Items {
		switch v := item.(type) {
		case *ir.MapNode:
			writeIndent(buf, depth+1)
			buf.WriteString("-\n")
			writeTOONMap(buf, v, depth+2)
		case *ir.ListNode:
			writeIndent(buf, depth+1)
			buf.WriteString("-\n")
			writeTOONList(buf, "", v, depth+2)
		default:
			writeIndent(buf, depth+1)
			buf.WriteString("- ")
			buf.WriteString(toonValue(v))
			buf.WriteByte('\n')
		}
	}
}

// uniformFields reports whether every item is a map with the same keys in
// the same order and only scalar values, the shape that folds into one
// tabular block.
func uniformFields(l *ir.ListNode) ([]string, bool) {
	if len(l.Items) == 0 {
		return nil, false
	}
	var fields []string
	for i, item := range l.Items {
		m, ok := item.(*ir.MapNode)
		if !ok {
			return nil, false
		}
		if i == 0 {
			fields = make([]string, len(m.Pairs))
			for j, p := range m.Pairs {
				fields[j] = p.Key
			}
		} else if len(m.Pairs) != len(fields) {
			return nil, false
		}
		for j, p := range m.Pairs {
			if p.Key != fields[j] {
				return nil, false
			}
			if _, isNode := p.Value.(ir.Node); isNode {
				return nil, false
			}
		}
	}
	return fields, true
}

func scalarItems(l *ir.ListNode) bool {
	for _, item := range l.Items {
		if _, isNode := item.(ir.Node); isNode {
			return false
		}
	}
	return true
}

func toonValue(v any) string {
	switch val := v.(type) {
	case nil:
		return "null"
	case string:
		return toonScalar(val)
	case bool:
		return strconv.FormatBool(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	default:
		return toonScalar(fmt.Sprintf("%v", val))
	}
}

// toonScalar quotes s when it would be ambiguous bare: empty, padded,
// or containing structural characters.
func toonScalar(s string) string {
	if s == "" || s != strings.TrimSpace(s) || strings.ContainsAny(s, ",:\"\n{}[]") {
		s = strings.ReplaceAll(s, `\`, `\\`)
		s = strings.ReplaceAll(s, `"`, `\"`)
		s = strings.ReplaceAll(s, "\n", `\n`)
		return `"` + s + `"`
	}
	return s
}

func writeIndent(buf *bytes.Buffer, depth int) {
	for i := 0; i < depth; i++ {
		buf.WriteString("  ")
	}
}
