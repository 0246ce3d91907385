// Package linebreak implements the Unicode line breaking algorithm (UAX #14)
// over an M-text.
//
// The analyzer answers one question: given a cursor, where are the nearest
// legal break positions at-or-before and after it? Classification is driven
// by a caller-supplied codepoint-to-class mapping (DefaultClasses provides a
// batteries-included table) and a fixed pair-action matrix over the classes
// that can legitimately abut. Scripts written without word spaces (class SA)
// defer to a word segmenter, which fabricates a break-before opportunity at
// each word boundary.
//
// The analyzer is stateless between calls; the tables are immutable after
// construction and safe for concurrent readers.
package linebreak
