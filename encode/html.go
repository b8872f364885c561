package encode

import (
	"bytes"
	"html"
	"strings"

	"github.com/emberlog/ember/ir"
	"github.com/emberlog/ember/layout"
)

// HTML renders documents as a <pre> block with one inline-styled <span>
// per styled segment. Text is HTML-escaped; unstyled segments stay bare so
// the output diffs cleanly.
type HTML struct{}

var _ Encoder = (*HTML)(nil)

// Encode writes the document into a <pre class="ember"> block.
func (HTML) Encode(buf *bytes.Buffer, doc *layout.Document) error {
	buf.WriteString("<pre class=\"ember\">\n")
	for _, ln := range doc.Lines {
		for _, seg := range ln.Segments {
			if seg.Style.IsZero() {
				buf.WriteString(html.EscapeString(seg.Text))
				continue
			}
			buf.WriteString(`<span style="`)
			buf.WriteString(cssFor(seg.Style))
			buf.WriteString(`">`)
			buf.WriteString(html.EscapeString(seg.Text))
			buf.WriteString("</span>")
		}
		buf.WriteByte('\n')
	}
	buf.WriteString("</pre>\n")
	return nil
}

// cssFor translates a style into inline CSS. Inverse swaps foreground and
// background the way a terminal would.
func cssFor(s ir.Style) string {
	fg, bg := s.Color, s.Background
	if s.Inverse {
		fg, bg = bg, fg
	}
	var b strings.Builder
	if fg != "" {
		b.WriteString("color:")
		b.WriteString(fg)
		b.WriteByte(';')
	}
	if bg != "" {
		b.WriteString("background-color:")
		b.WriteString(bg)
		b.WriteByte(';')
	}
	if s.Bold {
		b.WriteString("font-weight:bold;")
	}
	if s.Dim {
		b.WriteString("opacity:.7;")
	}
	if s.Italic {
		b.WriteString("font-style:italic;")
	}
	return strings.TrimSuffix(b.String(), ";")
}
