package wordseg

import (
	"sync"
	"unicode"

	"github.com/textforge/mtext/internal/mtext"
	"github.com/textforge/mtext/internal/symbol"
)

// cacheKey tags segmentation results attached to the text. The
// properties are weak volatile, so edits shed stale answers.
var cacheKey = symbol.Internal("wordseg")

// Segmenter analyses the word structure around a cursor position.
// Init is called once before first use, Fini once on registry close.
type Segmenter interface {
	Init() error
	Fini()
	Segment(m *mtext.MText, pos int) (from, to int, inWord bool)
}

type registration struct {
	table *unicode.RangeTable
	seg   Segmenter
	ready bool
}

// Registry dispatches segmentation requests to the segmenter owning
// the script of the character under the cursor.
type Registry struct {
	mu      sync.Mutex
	entries []*registration
	generic *registration
}

// NewRegistry builds a registry whose fallback is the generic
// letter-run segmenter.
func NewRegistry() *Registry {
	g := &Registry{}
	g.generic = &registration{seg: &Generic{foreign: g.owned}}
	return g
}

// Register routes characters matched by table to seg. Later
// registrations win on overlap.
func (g *Registry) Register(table *unicode.RangeTable, seg Segmenter) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.entries = append([]*registration{{table: table, seg: seg}}, g.entries...)
}

// Close finalises every segmenter that was initialised.
func (g *Registry) Close() {
	g.mu.Lock()
	defer g.mu.Unlock()
	for _, e := range g.entries {
		if e.ready {
			e.seg.Fini()
			e.ready = false
		}
	}
	if g.generic.ready {
		g.generic.seg.Fini()
		g.generic.ready = false
	}
}

// owned reports whether a specific (non-generic) segmenter claims r.
func (g *Registry) owned(r rune) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	for _, e := range g.entries {
		if unicode.Is(e.table, r) {
			return true
		}
	}
	return false
}

func (g *Registry) dispatch(r rune) (Segmenter, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	reg := g.generic
	for _, e := range g.entries {
		if unicode.Is(e.table, r) {
			reg = e
			break
		}
	}
	if !reg.ready {
		if err := reg.seg.Init(); err != nil {
			return nil, err
		}
		reg.ready = true
	}
	return reg.seg, nil
}

// Segment reports the word containing pos: its bounds and whether the
// characters there form a word. Cached answers are served from the
// text's own properties.
func (g *Registry) Segment(m *mtext.MText, pos int) (from, to int, inWord bool, err error) {
	if p, perr := m.GetProperty(pos, cacheKey); perr == nil && p != nil {
		return p.Start(), p.End(), p.Value().(bool), nil
	}
	r, cerr := m.Char(pos)
	if cerr != nil {
		return 0, 0, false, cerr
	}
	seg, derr := g.dispatch(r)
	if derr != nil {
		return 0, 0, false, derr
	}
	from, to, inWord = seg.Segment(m, pos)
	if from < to && !m.IsReadOnly() {
		_ = m.PushPropFlags(from, to, cacheKey, inWord, mtext.VolatileWeak)
	}
	return from, to, inWord, nil
}

// Func adapts the registry to the callback shape the line break
// analyzer consumes, swallowing errors as "not a word".
func (g *Registry) Func() func(m *mtext.MText, pos int) (int, int, bool) {
	return func(m *mtext.MText, pos int) (int, int, bool) {
		from, to, inWord, err := g.Segment(m, pos)
		if err != nil {
			return pos, pos + 1, false
		}
		return from, to, inWord
	}
}

// wordRune reports whether r belongs to a word for the generic
// segmenter: letters, marks and numbers.
func wordRune(r rune) bool {
	return unicode.In(r, unicode.L, unicode.M, unicode.N)
}
