package encode

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/emberlog/ember/ir"
	"github.com/emberlog/ember/layout"
)

// ErrNoTree reports a tree encode of a document without map or list roots.
var ErrNoTree = errors.New("encode: document has no tree root")

// JSON serializes tree documents as compact JSON, preserving pair order.
// Laid-out documents degrade to a JSON array of line strings, so a JSON
// destination keeps receiving valid payloads even for formatters that only
// produce text.
type JSON struct{}

var (
	_ Encoder     = (*JSON)(nil)
	_ TreeEncoder = (*JSON)(nil)
)

// EncodeTree writes the tree roots of doc: one root bare, several as an
// array.
func (JSON) EncodeTree(buf *bytes.Buffer, doc *ir.Document) error {
	roots := treeRoots(doc)
	if len(roots) == 0 {
		return ErrNoTree
	}
	if len(roots) == 1 {
		if err := writeJSONValue(buf, roots[0]); err != nil {
			return err
		}
		buf.WriteByte('\n')
		return nil
	}
	buf.WriteByte('[')
	for i, root := range roots {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeJSONValue(buf, root); err != nil {
			return err
		}
	}
	buf.WriteString("]\n")
	return nil
}

// Encode writes the physical lines as a JSON array of strings.
func (JSON) Encode(buf *bytes.Buffer, doc *layout.Document) error {
	buf.WriteByte('[')
	for i, ln := range doc.Lines {
		if i > 0 {
			buf.WriteByte(',')
		}
		writeJSONString(buf, ln.Text())
	}
	buf.WriteString("]\n")
	return nil
}

func writeJSONValue(buf *bytes.Buffer, v any) error {
	switch val := v.(type) {
	case nil:
		buf.WriteString("null")
	case *ir.MapNode:
		buf.WriteByte('{')
		for i, p := range val.Pairs {
			if i > 0 {
				buf.WriteByte(',')
			}
			writeJSONString(buf, p.Key)
			buf.WriteByte(':')
			if err := writeJSONValue(buf, p.Value); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	case *ir.ListNode:
		buf.WriteByte('[')
		for i, it := range val.Items {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeJSONValue(buf, it); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case string:
		writeJSONString(buf, val)
	case bool:
		buf.WriteString(strconv.FormatBool(val))
	case int64:
		buf.WriteString(strconv.FormatInt(val, 10))
	case float64:
		b, err := json.Marshal(val)
		if err != nil {
			return fmt.Errorf("encode float: %w", err)
		}
		buf.Write(b)
	default:
		writeJSONString(buf, fmt.Sprintf("%v", val))
	}
	return nil
}

// writeJSONString writes s quoted and escaped. Marshal of a string cannot
// fail.
func writeJSONString(buf *bytes.Buffer, s string) {
	b, _ := json.Marshal(s)
	buf.Write(b)
}
