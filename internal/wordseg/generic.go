package wordseg

import "github.com/textforge/mtext/internal/mtext"

// Generic segments by maximal runs of word characters (letters, marks,
// numbers). A run stops early at characters claimed by a more specific
// segmenter, so script-specific answers stay authoritative.
type Generic struct {
	foreign func(rune) bool
}

func (*Generic) Init() error { return nil }
func (*Generic) Fini()       {}

func (s *Generic) Segment(m *mtext.MText, pos int) (int, int, bool) {
	n := m.Len()
	cur, err := m.Char(pos)
	if err != nil {
		return pos, pos + 1, false
	}
	in := wordRune(cur)
	same := func(r rune) bool {
		if s.foreign != nil && s.foreign(r) {
			return false
		}
		return wordRune(r) == in
	}
	from, to := pos, pos+1
	for from > 0 {
		r, _ := m.Char(from - 1)
		if !same(r) {
			break
		}
		from--
	}
	for to < n {
		r, _ := m.Char(to)
		if !same(r) {
			break
		}
		to++
	}
	return from, to, in
}
