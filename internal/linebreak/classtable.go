package linebreak

import (
	"unicode"

	"golang.org/x/text/unicode/rangetable"
)

// ClassMap resolves a codepoint to its raw line breaking class, before
// any option-driven rewriting.
type ClassMap interface {
	Lookup(r rune) Class
}

// ClassMapFunc adapts a function to the ClassMap interface.
type ClassMapFunc func(r rune) Class

func (f ClassMapFunc) Lookup(r rune) Class { return f(r) }

// tableClassMap resolves classes through an ordered list of range tables
// with a handful of algorithmic special cases checked first.
type tableClassMap struct {
	entries []classRange
}

type classRange struct {
	table *unicode.RangeTable
	class Class
}

func (m *tableClassMap) Lookup(r rune) Class {
	switch {
	case r == '\n':
		return ClassLF
	case r == '\r':
		return ClassCR
	case r == ' ':
		return ClassSP
	case r == 0x85:
		return ClassNL
	case r == 0x2029:
		return ClassPS
	case r >= 0xAC00 && r <= 0xD7A3:
		// precomposed Hangul syllables: LV when the trailing jamo
		// index is zero, LVT otherwise
		if (r-0xAC00)%28 == 0 {
			return ClassH2
		}
		return ClassH3
	case r >= 0xD800 && r <= 0xDFFF:
		return ClassSG
	}
	for _, e := range m.entries {
		if unicode.Is(e.table, r) {
			return e.class
		}
	}
	if unicode.IsLetter(r) {
		return ClassAL
	}
	return ClassXX
}

// DefaultClasses returns a codepoint classifier covering the classes
// the analyzer distinguishes. It is not a full copy of the Unicode
// LineBreak.txt database; it covers the common scripts and punctuation
// and falls back to AL for letters and XX otherwise.
func DefaultClasses() ClassMap {
	r16 := func(runes ...rune) *unicode.RangeTable { return rangetable.New(runes...) }
	return &tableClassMap{entries: []classRange{
		{r16(0x0B, 0x0C, 0x2028), ClassBK},
		{r16(0x200B), ClassZW},
		{r16(0xA0, 0x2007, 0x2011, 0x202F), ClassGL},
		{r16(0x2060, 0xFEFF), ClassWJ},
		{r16('!', '?', 0x203C, 0x2049), ClassEX},
		{r16(',', '.', ':', ';', 0x037E, 0x0589), ClassIS},
		{r16('/', 0x2044), ClassSY},
		{r16('"', '\'', 0x2018, 0x2019, 0x201C, 0x201D, 0x00AB, 0x00BB), ClassQU},
		{r16('$', '+', 0xA3, 0xA5, 0x20AC, 0xB1), ClassPR},
		{r16('%', 0xA2, 0xB0, 0x2030, 0x2032, 0x2033), ClassPO},
		{r16('-'), ClassHY},
		{r16(0x2010, 0x2012, 0x2013, 0x00AD, 0x3001, 0x3002, 0xFF0C, 0xFF0E), ClassBA},
		{r16(0x00B4, 0x02C8, 0x02CC), ClassBB},
		{r16(0x2014), ClassB2},
		{r16(0x2024, 0x2025, 0x2026), ClassIN},
		{r16(0x3005, 0x301C, 0x309B, 0x309C, 0x30FB, 0x30FD, 0x30FE, 0xFF1A, 0xFF1B), ClassNS},
		{r16(0xFFFC), ClassCB},
		{rangetable.New('0', '1', '2', '3', '4', '5', '6', '7', '8', '9'), ClassNU},
		{rangetable.Merge(unicode.Ps, unicode.Pi), ClassOP},
		{rangetable.Merge(unicode.Pe, unicode.Pf), ClassCL},
		{rangetable.Merge(unicode.Mn, unicode.Me), ClassCM},
		{&unicode.RangeTable{R16: []unicode.Range16{{Lo: 0x1100, Hi: 0x115F, Stride: 1}}}, ClassJL},
		{&unicode.RangeTable{R16: []unicode.Range16{{Lo: 0x1160, Hi: 0x11A7, Stride: 1}}}, ClassJV},
		{&unicode.RangeTable{R16: []unicode.Range16{{Lo: 0x11A8, Hi: 0x11FF, Stride: 1}}}, ClassJT},
		{rangetable.Merge(unicode.Thai, unicode.Lao, unicode.Khmer, unicode.Myanmar), ClassSA},
		{rangetable.Merge(unicode.Han, unicode.Hiragana, unicode.Katakana, unicode.Bopomofo, unicode.Yi), ClassID},
	}}
}
