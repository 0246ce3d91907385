package wordseg

import (
	"os"
	"path/filepath"
	"testing"
	"unicode"

	"github.com/textforge/mtext/internal/mtext"
)

func writeDict(t *testing.T, words string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "words.yaml")
	if err := os.WriteFile(path, []byte(words), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestGenericSegment(t *testing.T) {
	g := NewRegistry()
	m := mtext.MustFromString("hello world")
	tests := []struct {
		pos      int
		from, to int
		inWord   bool
	}{
		{2, 0, 5, true},
		{0, 0, 5, true},
		{5, 5, 6, false},
		{8, 6, 11, true},
	}
	for _, tt := range tests {
		from, to, inWord, err := g.Segment(m, tt.pos)
		if err != nil {
			t.Fatalf("Segment(%d): %v", tt.pos, err)
		}
		if from != tt.from || to != tt.to || inWord != tt.inWord {
			t.Errorf("Segment(%d) = (%d, %d, %v), want (%d, %d, %v)",
				tt.pos, from, to, inWord, tt.from, tt.to, tt.inWord)
		}
	}
}

func TestSegmentCacheInvalidatedByEdit(t *testing.T) {
	g := NewRegistry()
	m := mtext.MustFromString("alpha beta")
	if _, _, _, err := g.Segment(m, 1); err != nil {
		t.Fatal(err)
	}
	if v, err := m.GetProp(1, cacheKey); err != nil || v != true {
		t.Fatalf("expected cached answer at 1, got %v, %v", v, err)
	}
	if err := m.Delete(2, 3); err != nil {
		t.Fatal(err)
	}
	if v, _ := m.GetProp(1, cacheKey); v != nil {
		t.Fatalf("cache survived an edit: %v", v)
	}
	// a fresh query re-segments the edited text
	from, to, inWord, err := g.Segment(m, 1)
	if err != nil {
		t.Fatal(err)
	}
	if from != 0 || to != 4 || !inWord {
		t.Fatalf("Segment after edit = (%d, %d, %v), want (0, 4, true)", from, to, inWord)
	}
}

func TestDictionarySegment(t *testing.T) {
	path := writeDict(t, "script: thai\nwords:\n  - กข\n  - คงจ\n")
	d := NewDictionary(path, unicode.Thai)
	if err := d.Init(); err != nil {
		t.Fatal(err)
	}
	defer d.Fini()

	m := mtext.MustFromString("กขคงจ")
	tests := []struct {
		pos      int
		from, to int
		inWord   bool
	}{
		{0, 0, 2, true},
		{1, 0, 2, true},
		{2, 2, 5, true},
		{4, 2, 5, true},
	}
	for _, tt := range tests {
		from, to, inWord := d.Segment(m, tt.pos)
		if from != tt.from || to != tt.to || inWord != tt.inWord {
			t.Errorf("Segment(%d) = (%d, %d, %v), want (%d, %d, %v)",
				tt.pos, from, to, inWord, tt.from, tt.to, tt.inWord)
		}
	}

	// unknown clusters come back one at a time, not words
	m2 := mtext.MustFromString("ชซ")
	from, to, inWord := d.Segment(m2, 0)
	if from != 0 || to != 1 || inWord {
		t.Errorf("Segment of unknown text = (%d, %d, %v), want (0, 1, false)", from, to, inWord)
	}
}

func TestDictionaryInitErrors(t *testing.T) {
	d := NewDictionary(filepath.Join(t.TempDir(), "missing.yaml"), unicode.Thai)
	if err := d.Init(); err == nil {
		t.Fatal("expected error for missing word list")
	}
	bad := writeDict(t, "words: {not: a list}\n")
	d = NewDictionary(bad, unicode.Thai)
	if err := d.Init(); err == nil {
		t.Fatal("expected error for malformed word list")
	}
}

func TestRegistryDispatch(t *testing.T) {
	path := writeDict(t, "words:\n  - กข\n")
	g := NewRegistry()
	g.Register(unicode.Thai, NewDictionary(path, unicode.Thai))
	defer g.Close()

	m := mtext.MustFromString("abกข")
	from, to, inWord, err := g.Segment(m, 0)
	if err != nil {
		t.Fatal(err)
	}
	// the generic run must stop where the dictionary's script begins
	if from != 0 || to != 2 || !inWord {
		t.Fatalf("Segment(0) = (%d, %d, %v), want (0, 2, true)", from, to, inWord)
	}
	from, to, inWord, err = g.Segment(m, 2)
	if err != nil {
		t.Fatal(err)
	}
	if from != 2 || to != 4 || !inWord {
		t.Fatalf("Segment(2) = (%d, %d, %v), want (2, 4, true)", from, to, inWord)
	}
}

func TestUAX29Segment(t *testing.T) {
	var s UAX29
	m := mtext.MustFromString("don't stop")
	from, to, inWord := s.Segment(m, 1)
	if from != 0 || to != 5 || !inWord {
		t.Fatalf("Segment(1) = (%d, %d, %v), want (0, 5, true)", from, to, inWord)
	}
	from, to, inWord = s.Segment(m, 5)
	if from != 5 || to != 6 || inWord {
		t.Fatalf("Segment(5) = (%d, %d, %v), want (5, 6, false)", from, to, inWord)
	}
}
