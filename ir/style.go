package ir

// Style is resolved visual styling for a run of text. Color values are
// whatever lipgloss accepts, hex strings such as "#50fa7b" or ANSI palette
// indexes such as "203". The zero Style renders unstyled.
type Style struct {
	Color      string
	Background string
	Bold       bool
	Dim        bool
	Italic     bool
	Inverse    bool
}

// IsZero reports whether s carries no styling at all.
func (s Style) IsZero() bool { return s == Style{} }

// StyledText is one run of text with its semantic tags and an optional
// resolved style. It is a plain value: two segments with equal text, tags,
// and style are interchangeable, and operations return new segments rather
// than mutating in place, so segments may be shared between lines freely.
type StyledText struct {
	Text  string
	Tags  Tag
	Style Style
}

// Text returns an untagged, unstyled segment.
func Text(s string) StyledText { return StyledText{Text: s} }

// Tagged returns a segment carrying semantic tags.
func Tagged(s string, tags Tag) StyledText { return StyledText{Text: s, Tags: tags} }

// Styled returns a segment with tags and a resolved style.
func Styled(s string, tags Tag, style Style) StyledText {
	return StyledText{Text: s, Tags: tags, Style: style}
}

// WithStyle returns a copy of st with the style replaced.
func (st StyledText) WithStyle(s Style) StyledText {
	st.Style = s
	return st
}

// WithText returns a copy of st with the text replaced, keeping tags and
// style.
func (st StyledText) WithText(s string) StyledText {
	st.Text = s
	return st
}

// IsZero reports whether st is the empty segment.
func (st StyledText) IsZero() bool { return st == StyledText{} }
