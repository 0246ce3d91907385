package mtext

import (
	"errors"
	"testing"
)

func TestNewEmpty(t *testing.T) {
	m := New()
	if m.Len() != 0 || m.ByteLen() != 0 {
		t.Errorf("empty m-text: len %d, bytelen %d", m.Len(), m.ByteLen())
	}
	if m.Format() != FormatASCII {
		t.Errorf("empty m-text format = %v", m.Format())
	}
	if _, err := m.Char(0); !errors.Is(err, ErrBadRange) {
		t.Error("Char(0) on empty m-text should be out of range")
	}
}

func TestFromStringASCII(t *testing.T) {
	m := MustFromString("Hello")
	if m.Format() != FormatASCII {
		t.Errorf("format = %v, want ascii", m.Format())
	}
	if m.Len() != 5 || m.ByteLen() != 5 {
		t.Errorf("len %d bytelen %d", m.Len(), m.ByteLen())
	}
	if m.String() != "Hello" {
		t.Errorf("String = %q", m.String())
	}
}

func TestFromStringUTF8(t *testing.T) {
	m := MustFromString("a中b")
	if m.Format() != FormatUTF8 {
		t.Errorf("format = %v, want utf-8", m.Format())
	}
	if m.Len() != 3 {
		t.Errorf("len = %d, want 3", m.Len())
	}
	if m.ByteLen() != 5 {
		t.Errorf("bytelen = %d, want 5", m.ByteLen())
	}
	r, err := m.Char(1)
	if err != nil || r != 0x4E2D {
		t.Errorf("Char(1) = %#x, %v", r, err)
	}
}

func TestFromStringMalformed(t *testing.T) {
	if _, err := FromString("a\xffb"); !errors.Is(err, ErrMalformedInput) {
		t.Errorf("err = %v, want ErrMalformedInput", err)
	}
}

func TestFromDataValidation(t *testing.T) {
	tests := []struct {
		name   string
		data   []byte
		format Format
		wantCh int
		ok     bool
	}{
		{"ascii ok", []byte("abc"), FormatASCII, 3, true},
		{"ascii high byte", []byte{'a', 0x80}, FormatASCII, 0, false},
		{"utf8 ok", []byte("aé"), FormatUTF8, 2, true},
		{"utf8 overlong", []byte{0xC0, 0xAF}, FormatUTF8, 0, false},
		{"utf8 lone continuation", []byte{0x80}, FormatUTF8, 0, false},
		{"utf8 truncated", []byte{0xE4, 0xB8}, FormatUTF8, 0, false},
		{"utf16 odd length", []byte{0x00}, FormatUTF16, 0, false},
		{"utf32 bad scalar", FormatUTF32.encode(nil, 0), FormatUTF32, 1, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := FromData(tt.data, tt.format)
			if tt.ok {
				if err != nil {
					t.Fatalf("FromData: %v", err)
				}
				if m.Len() != tt.wantCh {
					t.Errorf("len = %d, want %d", m.Len(), tt.wantCh)
				}
			} else if !errors.Is(err, ErrMalformedInput) {
				t.Errorf("err = %v, want ErrMalformedInput", err)
			}
		})
	}
}

func TestFromDataUTF16(t *testing.T) {
	// "ab" as native-endian UTF-16.
	var data []byte
	data = FormatUTF16.encode(data, 'a')
	data = FormatUTF16.encode(data, 'b')
	m, err := FromData(data, FormatUTF16)
	if err != nil {
		t.Fatalf("FromData: %v", err)
	}
	if m.Format() != FormatUTF16 || m.Len() != 2 || m.ByteLen() != 2 {
		t.Errorf("format %v len %d bytelen %d", m.Format(), m.Len(), m.ByteLen())
	}
	if m.Coverage() != CoverageBMP {
		t.Errorf("coverage = %v, want BMP", m.Coverage())
	}
}

func TestFromDataUTF16LoneSurrogate(t *testing.T) {
	data := FormatUTF16.encode(nil, 0xD800)
	if _, err := FromData(data, FormatUTF16); !errors.Is(err, ErrMalformedInput) {
		t.Errorf("err = %v, want ErrMalformedInput", err)
	}
	// Low surrogate without a preceding high one.
	data = FormatUTF16.encode(nil, 0xDC00)
	if _, err := FromData(data, FormatUTF16); !errors.Is(err, ErrMalformedInput) {
		t.Errorf("err = %v, want ErrMalformedInput", err)
	}
}

func TestFromDataUTF16SurrogatePairWidens(t *testing.T) {
	// U+1F600 as a surrogate pair; the UTF-16 form is BMP-only so the
	// result widens to UTF-32.
	var data []byte
	data = FormatUTF16.encode(data, 0xD83D)
	data = FormatUTF16.encode(data, 0xDE00)
	m, err := FromData(data, FormatUTF16)
	if err != nil {
		t.Fatalf("FromData: %v", err)
	}
	if m.Format() != FormatUTF32 {
		t.Errorf("format = %v, want utf-32", m.Format())
	}
	if m.Len() != 1 {
		t.Errorf("len = %d, want 1", m.Len())
	}
	if r, _ := m.Char(0); r != 0x1F600 {
		t.Errorf("Char(0) = %#x", r)
	}
}

func TestCharPositions(t *testing.T) {
	m := MustFromString("aé中z")
	want := []rune{'a', 0x00E9, 0x4E2D, 'z'}
	// Forward, backward, then random access exercise the cache walk.
	for i := 0; i < len(want); i++ {
		if r, _ := m.Char(i); r != want[i] {
			t.Errorf("Char(%d) = %#x, want %#x", i, r, want[i])
		}
	}
	for i := len(want) - 1; i >= 0; i-- {
		if r, _ := m.Char(i); r != want[i] {
			t.Errorf("backward Char(%d) = %#x", i, r)
		}
	}
	if r, _ := m.Char(2); r != 0x4E2D {
		t.Errorf("random Char(2) = %#x", r)
	}
	if _, err := m.Char(m.Len()); !errors.Is(err, ErrBadRange) {
		t.Error("Char(len) must be out of range")
	}
}

func TestSetCharWidensASCII(t *testing.T) {
	m := MustFromString("abc")
	if err := m.SetChar(1, 0x00E9); err != nil {
		t.Fatalf("SetChar: %v", err)
	}
	if m.Format() != FormatUTF8 {
		t.Errorf("format = %v, want utf-8", m.Format())
	}
	if m.String() != "aéc" {
		t.Errorf("text = %q", m.String())
	}
	if m.Len() != 3 || m.ByteLen() != 4 {
		t.Errorf("len %d bytelen %d", m.Len(), m.ByteLen())
	}
}

func TestSetCharUTF16Widens(t *testing.T) {
	var data []byte
	data = FormatUTF16.encode(data, 'a')
	m, err := FromData(data, FormatUTF16)
	if err != nil {
		t.Fatal(err)
	}
	if err := m.SetChar(0, 0x1F600); err != nil {
		t.Fatalf("SetChar: %v", err)
	}
	if m.Format() != FormatUTF32 {
		t.Errorf("format = %v, want utf-32", m.Format())
	}
	if r, _ := m.Char(0); r != 0x1F600 {
		t.Errorf("Char(0) = %#x", r)
	}
}

func TestInsertDeleteText(t *testing.T) {
	m := MustFromString("Hello World")
	if err := m.InsertString(5, ","); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if m.String() != "Hello, World" {
		t.Errorf("text = %q", m.String())
	}
	if err := m.Delete(5, 6); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if m.String() != "Hello World" {
		t.Errorf("text = %q", m.String())
	}
}

func TestInsertWideningScenario(t *testing.T) {
	// ASCII host takes a UTF-8 insertion and must switch formats.
	m := MustFromString("abc")
	src := MustFromString("中")
	if err := m.Insert(1, src, 0, 1); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if m.Format() != FormatUTF8 {
		t.Errorf("format = %v, want utf-8", m.Format())
	}
	if m.Len() != 4 {
		t.Errorf("len = %d, want 4", m.Len())
	}
	if m.ByteLen() != 6 {
		t.Errorf("bytelen = %d, want 6", m.ByteLen())
	}
	if r, _ := m.Char(1); r != 0x4E2D {
		t.Errorf("Char(1) = %#x", r)
	}
}

func TestReplace(t *testing.T) {
	m := MustFromString("Hello World")
	src := MustFromString("there")
	if err := m.Replace(6, 11, src, 0, 5); err != nil {
		t.Fatalf("replace: %v", err)
	}
	if m.String() != "Hello there" {
		t.Errorf("text = %q", m.String())
	}
}

func TestReplaceIdenticalRangeNoop(t *testing.T) {
	m := MustFromString("abc")
	key := testKey(t, "noop-k")
	mustPush(t, m, 0, 3, key, "v")
	if err := m.Replace(1, 2, m, 1, 2); err != nil {
		t.Fatalf("replace: %v", err)
	}
	if m.String() != "abc" {
		t.Errorf("text = %q", m.String())
	}
	if v, _ := m.GetProp(1, key); v != "v" {
		t.Error("identical-range replace must not disturb properties")
	}
}

func TestDeleteOutOfRange(t *testing.T) {
	m := MustFromString("abc")
	if err := m.Delete(1, 9); !errors.Is(err, ErrBadRange) {
		t.Errorf("err = %v, want ErrBadRange", err)
	}
	if err := m.Delete(-1, 2); !errors.Is(err, ErrBadRange) {
		t.Errorf("err = %v, want ErrBadRange", err)
	}
}

func TestFreeze(t *testing.T) {
	m := MustFromString("abc")
	m.Freeze()
	if !m.IsReadOnly() {
		t.Fatal("IsReadOnly = false after Freeze")
	}
	if err := m.InsertString(0, "x"); !errors.Is(err, ErrReadOnly) {
		t.Errorf("insert on frozen: err = %v", err)
	}
	if err := m.SetChar(0, 'x'); !errors.Is(err, ErrReadOnly) {
		t.Errorf("setchar on frozen: err = %v", err)
	}
}

func TestSubstringAndCat(t *testing.T) {
	m := MustFromString("Hello World")
	sub, err := m.Substring(6, 11)
	if err != nil {
		t.Fatalf("substring: %v", err)
	}
	if sub.String() != "World" {
		t.Errorf("sub = %q", sub.String())
	}

	out := MustFromString("Big ")
	if err := out.Cat(sub); err != nil {
		t.Fatalf("cat: %v", err)
	}
	if out.String() != "Big World" {
		t.Errorf("cat = %q", out.String())
	}
}

func TestDupIsDeep(t *testing.T) {
	m := MustFromString("abc")
	key := testKey(t, "dup-k")
	mustPush(t, m, 0, 2, key, "v")

	dup := m.Dup()
	if err := dup.SetChar(0, 'z'); err != nil {
		t.Fatal(err)
	}
	if m.String() != "abc" {
		t.Error("mutating the dup changed the original text")
	}
	if v, _ := dup.GetProp(1, key); v != "v" {
		t.Error("dup lost properties")
	}
}

func TestSelfInsert(t *testing.T) {
	m := MustFromString("abcd")
	if err := m.Insert(1, m, 2, 4); err != nil {
		t.Fatalf("self insert: %v", err)
	}
	if m.String() != "acdbcd" {
		t.Errorf("text = %q", m.String())
	}
}

func TestSearchFamily(t *testing.T) {
	m := MustFromString("abcabc")
	if got := m.Chr('b'); got != 1 {
		t.Errorf("Chr = %d", got)
	}
	if got := m.Rchr('b'); got != 4 {
		t.Errorf("Rchr = %d", got)
	}
	if got := m.Chr('z'); got != -1 {
		t.Errorf("Chr(z) = %d", got)
	}
	if pos, _ := m.Character(2, 6, 'a'); pos != 3 {
		t.Errorf("forward Character = %d", pos)
	}
	if pos, _ := m.Character(6, 0, 'a'); pos != 3 {
		t.Errorf("backward Character = %d", pos)
	}
}

func TestCmpFamily(t *testing.T) {
	a := MustFromString("abc")
	b := MustFromString("abd")
	if a.Cmp(b) != -1 || b.Cmp(a) != 1 || a.Cmp(a.Dup()) != 0 {
		t.Error("Cmp ordering wrong")
	}
	if a.Ncmp(b, 2) != 0 {
		t.Error("Ncmp(2) should find equal prefixes")
	}
	if a.Ncmp(b, 3) != -1 {
		t.Error("Ncmp(3) should see the difference")
	}

	upper := MustFromString("ABC")
	if a.CaseCmp(upper) != 0 {
		t.Error("CaseCmp should fold simple case")
	}

	sharp := MustFromString("straße")
	double := MustFromString("strasse")
	c, err := sharp.CaseCompareRanges(0, sharp.Len(), double, 0, double.Len())
	if err != nil || c != 0 {
		t.Errorf("full folding: cmp = %d, err = %v", c, err)
	}
}

func TestRoundTripInsertDelete(t *testing.T) {
	m := MustFromString("Hello, world")
	key := testKey(t, "roundtrip-k")
	mustPush(t, m, 3, 9, key, "mark")

	p, q := 2, 7
	sub, err := m.Substring(p, q)
	if err != nil {
		t.Fatal(err)
	}
	if err := m.Insert(p, sub, 0, sub.Len()); err != nil {
		t.Fatal(err)
	}
	if err := m.Delete(q, q+(q-p)); err != nil {
		t.Fatal(err)
	}

	if m.String() != "Hello, world" {
		t.Errorf("text not restored: %q", m.String())
	}
	for pos := 0; pos < m.Len(); pos++ {
		v, _ := m.GetProp(pos, key)
		want := any(nil)
		if pos >= 3 && pos < 9 {
			want = "mark"
		}
		if v != want {
			t.Errorf("prop at %d = %v, want %v", pos, v, want)
		}
	}
	checkStores(t, m)
}
