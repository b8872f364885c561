package layout

import (
	"strings"
	"testing"

	"github.com/emberlog/ember/ir"
)

func TestLine_TextJoinsSegments(t *testing.T) {
	ln := Line{Segments: []ir.StyledText{
		ir.Tagged("INFO", ir.TagLevel),
		ir.Text(" "),
		ir.Tagged("ready", ir.TagMessage),
	}}
	if got := ln.Text(); got != "INFO ready" {
		t.Fatalf("Text = %q, want %q", got, "INFO ready")
	}
}

func TestLine_VisibleWidthAccumulatesAcrossSegments(t *testing.T) {
	// The tab lives in its own segment but must expand against the columns
	// the previous segment already used.
	ln := Line{Segments: []ir.StyledText{
		ir.Text("ab"),
		ir.Text("\tX"),
	}}
	if got := ln.VisibleWidth(); got != 9 {
		t.Fatalf("VisibleWidth = %d, want 9 (tab from column 2 reaches 8)", got)
	}
}

func TestLine_VisibleWidthIgnoresEscapes(t *testing.T) {
	ln := Line{Segments: []ir.StyledText{
		ir.Text("\x1b[31mred\x1b[0m"),
		ir.Text(" 漢"),
	}}
	if got := ln.VisibleWidth(); got != 6 {
		t.Fatalf("VisibleWidth = %d, want 6", got)
	}
}

func TestLine_TruncateKeepsWholeSegments(t *testing.T) {
	ln := Line{Segments: []ir.StyledText{
		ir.Tagged("abc", ir.TagKey),
		ir.Tagged("def", ir.TagValue),
	}}
	got := ln.Truncate(6, 0)
	if got.Text() != "abcdef" || len(got.Segments) != 2 {
		t.Fatalf("Truncate(6) = %+v, want both segments intact", got)
	}
}

func TestLine_TruncateSplitsOverflowingSegment(t *testing.T) {
	ln := Line{Segments: []ir.StyledText{
		ir.Tagged("abc", ir.TagKey),
		ir.Styled("defgh", ir.TagValue, ir.Style{Bold: true}),
	}}
	got := ln.Truncate(5, 0)
	if got.Text() != "abcde" {
		t.Fatalf("Truncate(5) text = %q, want %q", got.Text(), "abcde")
	}
	last := got.Segments[len(got.Segments)-1]
	if !last.Style.Bold || !last.Tags.Has(ir.TagValue) {
		t.Fatalf("split segment = %+v, want style and tags preserved", last)
	}
}

func TestLine_TruncateNeverSplitsWideGlyph(t *testing.T) {
	ln := Line{Segments: []ir.StyledText{ir.Text("a漢漢")}}
	got := ln.Truncate(4, 0)
	if got.Text() != "a漢" {
		t.Fatalf("Truncate(4) = %q, want %q (second glyph needs 2 columns)", got.Text(), "a漢")
	}
	if w := got.VisibleWidth(); w != 3 {
		t.Fatalf("truncated width = %d, want 3", w)
	}
}

func TestLine_TruncateRemeasuresTabsFromStartX(t *testing.T) {
	ln := Line{Segments: []ir.StyledText{ir.Text("\tabc")}}

	// From column 0 the tab alone takes all 8 columns.
	got := ln.Truncate(8, 0)
	if got.Text() != "\t" {
		t.Fatalf("Truncate(8, 0) = %q, want just the tab", got.Text())
	}

	// From column 6 the tab is 2 wide, leaving room for the text.
	got = ln.Truncate(5, 6)
	if got.Text() != "\tabc" {
		t.Fatalf("Truncate(5, 6) = %q, want %q", got.Text(), "\tabc")
	}
}

func TestLine_TruncateDropsSegmentThatCannotFit(t *testing.T) {
	ln := Line{Segments: []ir.StyledText{
		ir.Text("abcd"),
		ir.Text("漢"),
	}}
	got := ln.Truncate(5, 0)
	if got.Text() != "abcd" || len(got.Segments) != 1 {
		t.Fatalf("Truncate(5) = %+v, want wide glyph dropped", got)
	}
}

func TestLine_TruncateKeepsEscapesWithText(t *testing.T) {
	ln := Line{Segments: []ir.StyledText{ir.Text("\x1b[1mbold\x1b[0m text")}}
	got := ln.Truncate(4, 0)
	if !strings.Contains(got.Text(), "\x1b[1m") {
		t.Fatalf("Truncate dropped the escape: %q", got.Text())
	}
	if w := got.VisibleWidth(); w != 4 {
		t.Fatalf("truncated width = %d, want 4", w)
	}
}

func TestDocument_TextAndMaxWidth(t *testing.T) {
	d := &Document{Lines: []Line{
		{Segments: []ir.StyledText{ir.Text("one")}},
		{Segments: []ir.StyledText{ir.Text("longer 漢")}},
	}}
	if got := d.Text(); got != "one\nlonger 漢" {
		t.Fatalf("Text = %q", got)
	}
	if got := d.MaxWidth(); got != 9 {
		t.Fatalf("MaxWidth = %d, want 9", got)
	}
}
