// Package textwidth measures how many terminal columns a string occupies.
//
// Measurement is grapheme-cluster aware: emoji and combining sequences count
// as one glyph, East Asian wide characters count as two columns, ANSI escape
// sequences count as zero, and tabs advance to the next multiple of TabStop
// relative to the column where printing started.
package textwidth
