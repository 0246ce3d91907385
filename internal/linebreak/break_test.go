package linebreak

import (
	"testing"

	"github.com/textforge/mtext/internal/mtext"
)

func analyze(t *testing.T, s string, pos int, opts Options, aopts ...Option) (int, int) {
	t.Helper()
	m := mtext.MustFromString(s)
	a := New(DefaultClasses(), aopts...)
	before, after := a.LineBreak(m, pos, opts)
	return before, after
}

func TestLineBreakSpaces(t *testing.T) {
	tests := []struct {
		name          string
		text          string
		pos           int
		before, after int
	}{
		{"start of text", "Hello world", 0, 0, 6},
		{"inside second word", "Hello world", 7, 6, 11},
		{"cursor on the space", "Hello world", 5, 5, 6},
		{"end clamps to length", "Hello world", 11, 11, 11},
		{"word before cursor", "ab cd", 4, 3, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before, after := analyze(t, tt.text, tt.pos, 0)
			if before != tt.before || after != tt.after {
				t.Fatalf("LineBreak(%q, %d) = (%d, %d), want (%d, %d)",
					tt.text, tt.pos, before, after, tt.before, tt.after)
			}
		})
	}
}

func TestLineBreakEmpty(t *testing.T) {
	before, after := analyze(t, "", 0, 0)
	if before != 0 || after != 0 {
		t.Fatalf("LineBreak on empty text = (%d, %d), want (0, 0)", before, after)
	}
}

func TestLineBreakCRLF(t *testing.T) {
	// CR+LF is a single mandatory break, never split in the middle.
	before, after := analyze(t, "a\r\nb", 3, 0)
	if before != 3 || after != 4 {
		t.Fatalf("LineBreak = (%d, %d), want (3, 4)", before, after)
	}
	before, after = analyze(t, "a\r\nb", 0, 0)
	if before != 0 || after != 3 {
		t.Fatalf("LineBreak before CRLF = (%d, %d), want (0, 3)", before, after)
	}
}

func TestLineBreakBareCR(t *testing.T) {
	_, after := analyze(t, "a\rb", 0, 0)
	if after != 2 {
		t.Fatalf("after = %d, want mandatory break after bare CR at 2", after)
	}
}

func TestLineBreakHyphen(t *testing.T) {
	_, after := analyze(t, "foo-bar", 0, 0)
	if after != 4 {
		t.Fatalf("after = %d, want break after hyphen at 4", after)
	}
}

func TestLineBreakIdeographic(t *testing.T) {
	before, after := analyze(t, "日本語", 1, 0)
	if before != 1 || after != 2 {
		t.Fatalf("LineBreak = (%d, %d), want direct breaks (1, 2)", before, after)
	}
}

func TestLineBreakClosingPunct(t *testing.T) {
	// no break before a closing parenthesis
	_, after := analyze(t, "ab)c", 1, 0)
	if after != 3 {
		t.Fatalf("after = %d, want 3", after)
	}
}

func TestLineBreakZeroWidthSpace(t *testing.T) {
	_, after := analyze(t, "a​b", 0, 0)
	if after != 2 {
		t.Fatalf("after = %d, want break after ZWSP at 2", after)
	}
}

func TestLineBreakKoreanOption(t *testing.T) {
	text := "한국" // two precomposed syllable blocks
	_, after := analyze(t, text, 0, 0)
	if after != 2 {
		t.Fatalf("after = %d, want no internal break without the Korean option", after)
	}
	_, after = analyze(t, text, 0, OptKoreanSpace)
	if after != 1 {
		t.Fatalf("after = %d, want break between syllables with the Korean option", after)
	}
}

func TestLineBreakComplexContext(t *testing.T) {
	// Thai runs carry no spaces; the segmenter fabricates the break.
	text := "กขคง"
	seg := func(m *mtext.MText, pos int) (int, int, bool) {
		if pos < 2 {
			return 0, 2, true
		}
		return 2, 4, true
	}
	_, after := analyze(t, text, 0, 0, WithSegmenter(seg))
	if after != 2 {
		t.Fatalf("after = %d, want break at the word boundary 2", after)
	}
	// without a segmenter the run is unbreakable alphabetic text
	_, after = analyze(t, text, 0, 0)
	if after != 4 {
		t.Fatalf("after = %d, want 4 without a segmenter", after)
	}
}

func TestLineBreakCombiningMark(t *testing.T) {
	// the mark folds into its base, so the only break is at the space
	_, after := analyze(t, "éx yz", 0, 0)
	if after != 4 {
		t.Fatalf("after = %d, want 4", after)
	}
}

func TestDefaultClassesLookup(t *testing.T) {
	classes := DefaultClasses()
	tests := []struct {
		r    rune
		want Class
	}{
		{' ', ClassSP},
		{'\n', ClassLF},
		{'\r', ClassCR},
		{'a', ClassAL},
		{'7', ClassNU},
		{'-', ClassHY},
		{'(', ClassOP},
		{')', ClassCL},
		{0x0301, ClassCM},
		{0x200B, ClassZW},
		{0x65E5, ClassID},
		{0x0E01, ClassSA},
		{0x1100, ClassJL},
		{0xAC00, ClassH2},
		{0xAC01, ClassH3},
	}
	for _, tt := range tests {
		if got := classes.Lookup(tt.r); got != tt.want {
			t.Errorf("Lookup(%#x) = %v, want %v", tt.r, got, tt.want)
		}
	}
}
