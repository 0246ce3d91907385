package mtext

import (
	"unicode"

	"golang.org/x/text/cases"
)

// Character searches [from, to) for c and returns its character position,
// or -1. When from > to the search runs backwards over [to, from), returning
// the last occurrence.
func (m *MText) Character(from, to int, c rune) (int, error) {
	if from <= to {
		if err := m.checkRange(from, to); err != nil {
			return -1, err
		}
		for i := from; i < to; i++ {
			if m.charAt(i) == c {
				return i, nil
			}
		}
		return -1, nil
	}
	if err := m.checkRange(to, from); err != nil {
		return -1, err
	}
	for i := from - 1; i >= to; i-- {
		if m.charAt(i) == c {
			return i, nil
		}
	}
	return -1, nil
}

// Chr returns the position of the first occurrence of c, or -1.
func (m *MText) Chr(c rune) int {
	pos, _ := m.Character(0, m.nchars, c)
	return pos
}

// Rchr returns the position of the last occurrence of c, or -1.
func (m *MText) Rchr(c rune) int {
	pos, _ := m.Character(m.nchars, 0, c)
	return pos
}

// Cmp compares two M-texts by scalar value, returning -1, 0, or 1.
func (m *MText) Cmp(other *MText) int {
	return compareRunes(m.Runes(), other.Runes())
}

// Ncmp compares the first n characters of two M-texts.
func (m *MText) Ncmp(other *MText, n int) int {
	a, b := m.Runes(), other.Runes()
	if len(a) > n {
		a = a[:n]
	}
	if len(b) > n {
		b = b[:n]
	}
	return compareRunes(a, b)
}

// CompareRanges compares characters [from, to) of m with [ofrom, oto) of
// other.
func (m *MText) CompareRanges(from, to int, other *MText, ofrom, oto int) (int, error) {
	if err := m.checkRange(from, to); err != nil {
		return 0, err
	}
	if err := other.checkRange(ofrom, oto); err != nil {
		return 0, err
	}
	return compareRunes(m.Runes()[from:to], other.Runes()[ofrom:oto]), nil
}

// CaseCmp compares two M-texts under Unicode simple case folding.
func (m *MText) CaseCmp(other *MText) int {
	return compareRunes(simpleFold(m.Runes()), simpleFold(other.Runes()))
}

// NCaseCmp compares the first n characters under simple case folding.
func (m *MText) NCaseCmp(other *MText, n int) int {
	a, b := m.Runes(), other.Runes()
	if len(a) > n {
		a = a[:n]
	}
	if len(b) > n {
		b = b[:n]
	}
	return compareRunes(simpleFold(a), simpleFold(b))
}

// CaseCompareRanges compares two ranges under full (complicated) case
// folding, so expansions like U+00DF folding to "ss" compare equal.
func (m *MText) CaseCompareRanges(from, to int, other *MText, ofrom, oto int) (int, error) {
	if err := m.checkRange(from, to); err != nil {
		return 0, err
	}
	if err := other.checkRange(ofrom, oto); err != nil {
		return 0, err
	}
	folder := cases.Fold()
	a := folder.String(string(m.Runes()[from:to]))
	b := folder.String(string(other.Runes()[ofrom:oto]))
	switch {
	case a < b:
		return -1, nil
	case a > b:
		return 1, nil
	}
	return 0, nil
}

func compareRunes(a, b []rune) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			if a[i] < b[i] {
				return -1
			}
			return 1
		}
	}
	switch {
	case len(a) < len(b):
		return -1
	case len(a) > len(b):
		return 1
	}
	return 0
}

// simpleFold maps each scalar to its canonical simple case fold: the
// smallest scalar in its SimpleFold orbit.
func simpleFold(rs []rune) []rune {
	out := make([]rune, len(rs))
	for i, r := range rs {
		out[i] = foldRune(r)
	}
	return out
}

func foldRune(r rune) rune {
	min := r
	for f := unicode.SimpleFold(r); f != r; f = unicode.SimpleFold(f) {
		if f < min {
			min = f
		}
	}
	return min
}
