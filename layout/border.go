package layout

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/emberlog/ember/ir"
)

// borderFor maps a border style to its glyph set. The bool is false for
// BorderNone, which draws no frame.
func borderFor(s ir.BorderStyle) (lipgloss.Border, bool) {
	switch s {
	case ir.BorderRounded:
		return lipgloss.RoundedBorder(), true
	case ir.BorderSharp:
		return lipgloss.NormalBorder(), true
	case ir.BorderDouble:
		return lipgloss.DoubleBorder(), true
	default:
		return lipgloss.Border{}, false
	}
}
