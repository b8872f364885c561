package ir

import "strings"

// Tag is a bitmask of semantic labels carried by segments and nodes. Tags
// describe what a piece of output is; how it looks is decided later by
// decorators and encoders.
type Tag uint32

const (
	TagHeader Tag = 1 << iota
	TagLevel
	TagTimestamp
	TagLogger
	TagMessage
	TagError
	TagBorder
	TagStackFrame
	TagPunctuation
	TagKey
	TagValue
	TagCollapsible
	TagPrefix
	TagSuffix
	TagOrigin
	TagFill
)

// TagNone marks plain untagged text.
const TagNone Tag = 0

// Has reports whether every bit of t is set in tg.
func (tg Tag) Has(t Tag) bool { return tg&t == t }

// With returns tg with the bits of t added.
func (tg Tag) With(t Tag) Tag { return tg | t }

// Without returns tg with the bits of t cleared.
func (tg Tag) Without(t Tag) Tag { return tg &^ t }

var tagNames = []struct {
	tag  Tag
	name string
}{
	{TagHeader, "header"},
	{TagLevel, "level"},
	{TagTimestamp, "timestamp"},
	{TagLogger, "logger"},
	{TagMessage, "message"},
	{TagError, "error"},
	{TagBorder, "border"},
	{TagStackFrame, "stackframe"},
	{TagPunctuation, "punctuation"},
	{TagKey, "key"},
	{TagValue, "value"},
	{TagCollapsible, "collapsible"},
	{TagPrefix, "prefix"},
	{TagSuffix, "suffix"},
	{TagOrigin, "origin"},
	{TagFill, "fill"},
}

// Names returns the names of the set bits in declaration order.
func (tg Tag) Names() []string {
	if tg == TagNone {
		return nil
	}
	var out []string
	for _, tn := range tagNames {
		if tg.Has(tn.tag) {
			out = append(out, tn.name)
		}
	}
	return out
}

// String renders the set bits joined by "+", or "none".
func (tg Tag) String() string {
	names := tg.Names()
	if len(names) == 0 {
		return "none"
	}
	return strings.Join(names, "+")
}
