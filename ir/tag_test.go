package ir

import "testing"

func TestTag_HasWithWithout(t *testing.T) {
	tag := TagNone.With(TagHeader).With(TagLevel)

	if !tag.Has(TagHeader) || !tag.Has(TagLevel) {
		t.Fatalf("tag %v missing bits it was built with", tag)
	}
	if tag.Has(TagError) {
		t.Fatalf("tag %v has a bit it was never given", tag)
	}

	tag = tag.Without(TagHeader)
	if tag.Has(TagHeader) {
		t.Fatalf("tag %v still has header after Without", tag)
	}
	if !tag.Has(TagLevel) {
		t.Fatalf("Without removed an unrelated bit")
	}
}

func TestTag_HasRequiresAllBits(t *testing.T) {
	tag := TagKey.With(TagValue)
	if !tag.Has(TagKey | TagValue) {
		t.Fatalf("Has should match a combined mask that is fully present")
	}
	if TagKey.Has(TagKey | TagValue) {
		t.Fatalf("Has matched a mask with an absent bit")
	}
}

func TestTag_String(t *testing.T) {
	if got := TagNone.String(); got != "none" {
		t.Fatalf("TagNone.String() = %q, want %q", got, "none")
	}
	if got := TagMessage.String(); got != "message" {
		t.Fatalf("TagMessage.String() = %q, want %q", got, "message")
	}

	got := (TagLevel | TagTimestamp).String()
	want := "level+timestamp"
	if got != want {
		t.Fatalf("combined String() = %q, want %q", got, want)
	}
}

func TestStyle_IsZero(t *testing.T) {
	var s Style
	if !s.IsZero() {
		t.Fatalf("zero style reported non-zero")
	}
	if (Style{Bold: true}).IsZero() {
		t.Fatalf("bold style reported zero")
	}
	if (Style{Color: "#d08770"}).IsZero() {
		t.Fatalf("colored style reported zero")
	}
}

func TestStyledText_With(t *testing.T) {
	seg := Tagged("ERROR", TagLevel)

	styled := seg.WithStyle(Style{Bold: true, Color: "red"})
	if styled.Text != "ERROR" || styled.Tags != TagLevel {
		t.Fatalf("WithStyle changed text or tags: %+v", styled)
	}
	if !styled.Style.Bold {
		t.Fatalf("WithStyle did not apply the style")
	}
	if seg.Style.Bold {
		t.Fatalf("WithStyle mutated the receiver")
	}

	renamed := styled.WithText("WARN")
	if renamed.Text != "WARN" || !renamed.Style.Bold {
		t.Fatalf("WithText = %+v, want same style with new text", renamed)
	}
}
