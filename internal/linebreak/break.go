package linebreak

import (
	"github.com/textforge/mtext/internal/mtext"
)

// Options alter class resolution and the legacy space handling.
type Options uint8

const (
	// OptSpaceCM treats a combining mark after a space as the start of
	// an ideographic run (legacy Unicode 3.0 behaviour).
	OptSpaceCM Options = 1 << iota
	// OptKoreanSpace keeps the Hangul syllable classes live, allowing
	// breaks between syllable blocks. Without it Korean text breaks
	// only at spaces.
	OptKoreanSpace
	// OptAIAsID resolves ambiguous characters as ideographic instead
	// of alphabetic.
	OptAIAsID
)

// SegmentFunc reports the word containing pos: its bounds and whether
// the characters there form a word at all.
type SegmentFunc func(m *mtext.MText, pos int) (from, to int, inWord bool)

// Analyzer finds line break opportunities in an M-text.
type Analyzer struct {
	classes ClassMap
	pairs   *PairTable
	segment SegmentFunc
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithPairTable overrides the pair-action matrix.
func WithPairTable(t *PairTable) Option {
	return func(a *Analyzer) { a.pairs = t }
}

// WithSegmenter supplies the word segmenter consulted for complex
// context (SA) characters. Without one, SA resolves to AL everywhere.
func WithSegmenter(f SegmentFunc) Option {
	return func(a *Analyzer) { a.segment = f }
}

// New builds an Analyzer over the given classifier.
func New(classes ClassMap, opts ...Option) *Analyzer {
	a := &Analyzer{classes: classes, pairs: DefaultPairTable()}
	for _, o := range opts {
		o(a)
	}
	return a
}

// LineBreak returns the nearest legal break positions around pos: the
// largest at or before it and the smallest after it. Both ends of the
// text are always legal. pos is clamped to [0, len].
func (a *Analyzer) LineBreak(m *mtext.MText, pos int, opts Options) (before, after int) {
	n := m.Len()
	if n == 0 {
		return 0, 0
	}
	if pos >= n {
		return n, n
	}
	if pos < 0 {
		pos = 0
	}
	return a.findBefore(m, pos, opts), a.findAfter(m, pos, opts)
}

// resolve classifies the character at pos and applies the option-driven
// class rewrites.
func (a *Analyzer) resolve(m *mtext.MText, pos int, opts Options) Class {
	r, err := m.Char(pos)
	if err != nil {
		return ClassXX
	}
	c := a.classes.Lookup(r)
	switch c {
	case ClassAI:
		if opts&OptAIAsID != 0 {
			return ClassID
		}
		return ClassAL
	case ClassXX, ClassSG:
		return ClassAL
	case ClassNL, ClassPS:
		return ClassBK
	case ClassCB:
		return ClassB2
	case ClassH2, ClassH3, ClassJL, ClassJV, ClassJT:
		if opts&OptKoreanSpace == 0 {
			return ClassAL
		}
		return c
	case ClassSA:
		if a.segment == nil {
			return ClassAL
		}
		from, _, inWord := a.segment(m, pos)
		if inWord && pos == from {
			return ClassBB
		}
		return ClassAL
	}
	return c
}

// foldCM resolves a combining-mark run ending at pos to its base
// character per LB9/LB10, returning the base position and class.
func (a *Analyzer) foldCM(m *mtext.MText, pos int, opts Options) (int, Class) {
	i := pos
	for i > 0 {
		c := a.resolve(m, i-1, opts)
		if c != ClassCM {
			if c == ClassSP {
				if opts&OptSpaceCM != 0 {
					return i, ClassID
				}
				return i, ClassAL
			}
			if c.explicitBreak() || c == ClassCR || c == ClassZW {
				return i, ClassAL
			}
			return i - 1, c
		}
		i--
	}
	return i, ClassAL
}

// findBefore scans backwards for the largest legal break at or before
// pos. The A cursor holds the most recent non-space character at or
// after the candidate break, the scan walks the B side towards zero.
func (a *Analyzer) findBefore(m *mtext.MText, pos int, opts Options) int {
	albc := a.resolve(m, pos, opts)
	if albc == ClassSP {
		// wrapping exactly at the space boundary is always legal,
		// trailing spaces stay on the line being closed
		return pos
	}
	apos := pos
	sawSpace := false
	for bpos := pos - 1; bpos >= 0; bpos-- {
		blbc := a.resolve(m, bpos, opts)
		if blbc.explicitBreak() {
			return apos
		}
		if blbc == ClassCR {
			if albc != ClassLF {
				return apos
			}
			apos, albc = bpos, ClassCR
			sawSpace = false
			continue
		}
		if blbc == ClassSP {
			sawSpace = true
			continue
		}
		if blbc == ClassCM {
			bpos, blbc = a.foldCM(m, bpos, opts)
		}
		if albc == ClassLF || albc == ClassCR || albc.explicitBreak() {
			// no break directly before a line terminator
			apos, albc = bpos, blbc
			sawSpace = false
			continue
		}
		switch a.pairs.Action(blbc, albc) {
		case Direct:
			return apos
		case Indirect, CombiningIndirect:
			if sawSpace {
				return apos
			}
		}
		apos, albc = bpos, blbc
		sawSpace = false
	}
	return 0
}

// findAfter scans forwards for the smallest legal break after pos.
func (a *Analyzer) findAfter(m *mtext.MText, pos int, opts Options) int {
	n := m.Len()
	blbc := a.resolve(m, pos, opts)
	sawSpace := false
	if blbc == ClassSP {
		sawSpace = true
		j := pos - 1
		for j >= 0 && a.resolve(m, j, opts) == ClassSP {
			j--
		}
		if j < 0 {
			blbc = ClassAL
		} else if blbc = a.resolve(m, j, opts); blbc == ClassCM {
			_, blbc = a.foldCM(m, j, opts)
		}
	} else if blbc == ClassCM {
		_, blbc = a.foldCM(m, pos, opts)
	}
	for i := pos + 1; i < n; i++ {
		albc := a.resolve(m, i, opts)
		if blbc.explicitBreak() {
			return i
		}
		if blbc == ClassCR && albc != ClassLF {
			return i
		}
		switch {
		case albc == ClassSP:
			sawSpace = true
			continue
		case albc == ClassCR || albc == ClassLF || albc.explicitBreak():
			blbc, sawSpace = albc, false
			continue
		case albc == ClassCM:
			if !sawSpace {
				// the mark folds into its base, never a break here
				continue
			}
			if opts&OptSpaceCM != 0 {
				albc = ClassID
			} else {
				albc = ClassAL
			}
		}
		switch a.pairs.Action(blbc, albc) {
		case Direct:
			return i
		case Indirect, CombiningIndirect:
			if sawSpace {
				return i
			}
		}
		blbc, sawSpace = albc, false
	}
	return n
}
