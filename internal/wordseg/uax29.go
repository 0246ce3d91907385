package wordseg

import (
	"unicode/utf8"

	"github.com/rivo/uniseg"

	"github.com/textforge/mtext/internal/mtext"
)

// UAX29 segments along default Unicode word boundaries. It is useful
// for scripts where those boundaries are trustworthy but the generic
// letter-run heuristic is too coarse, for example texts mixing digits,
// apostrophes and letters.
type UAX29 struct{}

func (UAX29) Init() error { return nil }
func (UAX29) Fini()       {}

func (UAX29) Segment(m *mtext.MText, pos int) (int, int, bool) {
	rest := m.String()
	off := 0
	state := -1
	for len(rest) > 0 {
		var word string
		word, rest, state = uniseg.FirstWordInString(rest, state)
		n := utf8.RuneCountInString(word)
		if pos < off+n {
			first, _ := utf8.DecodeRuneInString(word)
			return off, off + n, wordRune(first)
		}
		off += n
	}
	return pos, pos + 1, false
}
