package textwidth

import (
	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// TabStop is the distance between tab stops. Tabs advance to the next
// multiple of TabStop counted from where printing started, so a tab's width
// depends on its column.
const TabStop = 8

// Width returns the number of columns s occupies when printed starting at
// column zero.
func Width(s string) int { return WidthFrom(s, 0) }

// WidthFrom returns the number of columns s occupies when printing starts at
// column startX. The start column only matters for tab expansion; everything
// else is position independent.
func WidthFrom(s string, startX int) int {
	x := startX
	state := -1
	for len(s) > 0 {
		if n := EscapeLen(s); n > 0 {
			s = s[n:]
			state = -1
			continue
		}
		if s[0] == '\t' {
			x += TabStop - x%TabStop
			s = s[1:]
			state = -1
			continue
		}
		var cluster string
		cluster, s, _, state = uniseg.FirstGraphemeClusterInString(s, state)
		x += runewidth.StringWidth(cluster)
	}
	return x - startX
}

// ClusterWidth returns the columns one grapheme cluster occupies. Escape
// sequences and control characters measure zero.
func ClusterWidth(cluster string) int {
	if EscapeLen(cluster) > 0 {
		return 0
	}
	return runewidth.StringWidth(cluster)
}

// EscapeLen returns the byte length of the terminal escape sequence at the
// start of s, or zero when s does not begin with one. CSI sequences run to
// their final byte, OSC sequences to BEL or ST, and any other introducer is
// taken as a two byte sequence.
func EscapeLen(s string) int {
	if len(s) < 2 || s[0] != 0x1b {
		return 0
	}
	switch s[1] {
	case '[':
		for i := 2; i < len(s); i++ {
			if c := s[i]; c >= 0x40 && c <= 0x7e {
				return i + 1
			}
		}
		return len(s)
	case ']':
		for i := 2; i < len(s); i++ {
			if s[i] == 0x07 {
				return i + 1
			}
			if s[i] == 0x1b && i+1 < len(s) && s[i+1] == '\\' {
				return i + 2
			}
		}
		return len(s)
	default:
		return 2
	}
}
