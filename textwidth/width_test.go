package textwidth

import (
	"strings"
	"testing"
)

func TestWidth_Ascii(t *testing.T) {
	if got := Width("hello"); got != 5 {
		t.Fatalf("Width(%q) = %d, want 5", "hello", got)
	}
	if got := Width(""); got != 0 {
		t.Fatalf("Width of empty string = %d, want 0", got)
	}
}

func TestWidth_WideCharacters(t *testing.T) {
	s := strings.Repeat("漢", 10)
	if got := Width(s); got != 20 {
		t.Fatalf("Width of 10 wide chars = %d, want 20", got)
	}
	if got := Width("a漢b"); got != 4 {
		t.Fatalf("Width(%q) = %d, want 4", "a漢b", got)
	}
}

func TestWidth_GraphemeClusters(t *testing.T) {
	// Family emoji: many runes joined by ZWJ, one glyph two columns wide.
	fam := "\U0001F468‍\U0001F469‍\U0001F467"
	if got := Width(fam); got != 2 {
		t.Fatalf("Width of ZWJ emoji = %d, want 2", got)
	}
	// Combining acute over e: one column.
	if got := Width("é"); got != 1 {
		t.Fatalf("Width of combining sequence = %d, want 1", got)
	}
}

func TestWidth_EscapesAreZero(t *testing.T) {
	plain := "error"
	colored := "\x1b[31m" + plain + "\x1b[0m"
	if got := Width(colored); got != Width(plain) {
		t.Fatalf("Width with escapes = %d, want %d", got, Width(plain))
	}

	osc := "\x1b]8;;https://example.com\x07link\x1b]8;;\x07"
	if got := Width(osc); got != 4 {
		t.Fatalf("Width with OSC hyperlink = %d, want 4", got)
	}
}

func TestWidthFrom_TabsDependOnStart(t *testing.T) {
	// From column 0 a tab reaches column 8.
	if got := WidthFrom("\tX", 0); got != 9 {
		t.Fatalf("WidthFrom(tab, 0) = %d, want 9", got)
	}
	// From column 3 the same tab only spans 5 columns.
	if got := WidthFrom("\tX", 3); got != 6 {
		t.Fatalf("WidthFrom(tab, 3) = %d, want 6", got)
	}
	// A tab exactly on a stop advances a full stop.
	if got := WidthFrom("\t", 8); got != 8 {
		t.Fatalf("WidthFrom(tab, 8) = %d, want 8", got)
	}
}

func TestEscapeLen(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"", 0},
		{"plain", 0},
		{"\x1b", 0},
		{"\x1b[31m", 5},
		{"\x1b[0mrest", 4},
		{"\x1b[38;5;208mx", 11},
		{"\x1b]8;;u\x07x", 7},
		{"\x1b]0;title\x1b\\x", 11},
		{"\x1bc", 2},
	}
	for _, tt := range tests {
		if got := EscapeLen(tt.in); got != tt.want {
			t.Fatalf("EscapeLen(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestClusterWidth(t *testing.T) {
	if got := ClusterWidth("漢"); got != 2 {
		t.Fatalf("ClusterWidth(wide) = %d, want 2", got)
	}
	if got := ClusterWidth("\x1b[1m"); got != 0 {
		t.Fatalf("ClusterWidth(escape) = %d, want 0", got)
	}
	if got := ClusterWidth("a"); got != 1 {
		t.Fatalf("ClusterWidth(ascii) = %d, want 1", got)
	}
}
