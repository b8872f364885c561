package encode

import (
	"bytes"
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/emberlog/ember/ir"
	"github.com/emberlog/ember/layout"
)

// ansiStyle is the pre-extracted escape pair for one style, so the hot
// path writes plain strings instead of going through lipgloss per segment.
type ansiStyle struct {
	prefix string
	suffix string
}

// ANSI renders documents as terminal output. Styles are translated through
// lipgloss at the encoder's color profile and cached per distinct style, so
// an event stream with a fixed theme settles into pure string writes. Safe
// for concurrent use.
type ANSI struct {
	ren *lipgloss.Renderer

	mu    sync.Mutex
	cache map[ir.Style]ansiStyle
}

var _ Encoder = (*ANSI)(nil)

// NewANSI builds an encoder for the given color profile. termenv.Ascii
// yields plain text with no escapes.
func NewANSI(profile termenv.Profile) *ANSI {
	ren := lipgloss.NewRenderer(io.Discard)
	ren.SetColorProfile(profile)
	return &ANSI{
		ren:   ren,
		cache: make(map[ir.Style]ansiStyle),
	}
}

// Encode writes every line wrapped in its segments' escape pairs.
func (e *ANSI) Encode(buf *bytes.Buffer, doc *layout.Document) error {
	for _, ln := range doc.Lines {
		for _, seg := range ln.Segments {
			st := e.styleFor(seg.Style)
			buf.WriteString(st.prefix)
			buf.WriteString(seg.Text)
			buf.WriteString(st.suffix)
		}
		buf.WriteByte('\n')
	}
	return nil
}

// styleFor returns the cached escape pair for s, building it on first use
// by rendering a marker and splitting around it.
func (e *ANSI) styleFor(s ir.Style) ansiStyle {
	if s.IsZero() {
		return ansiStyle{}
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if st, ok := e.cache[s]; ok {
		return st
	}

	style := e.ren.NewStyle()
	if s.Color != "" {
		style = style.Foreground(lipgloss.Color(s.Color))
	}
	if s.Background != "" {
		style = style.Background(lipgloss.Color(s.Background))
	}
	if s.Bold {
		style = style.Bold(true)
	}
	if s.Dim {
		style = style.Faint(true)
	}
	if s.Italic {
		style = style.Italic(true)
	}
	if s.Inverse {
		style = style.Reverse(true)
	}

	const marker = "\x00"
	rendered := style.Render(marker)
	var st ansiStyle
	if idx := strings.Index(rendered, marker); idx >= 0 {
		st = ansiStyle{prefix: rendered[:idx], suffix: rendered[idx+1:]}
	}
	e.cache[s] = st
	return st
}
