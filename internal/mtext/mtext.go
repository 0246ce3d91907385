package mtext

import (
	"errors"
	"strings"
	"unicode/utf16"
	"unicode/utf8"
)

// Errors returned by M-text operations.
var (
	ErrBadRange       = errors.New("position out of range")
	ErrBadChar        = errors.New("invalid character")
	ErrBadMText       = errors.New("invalid m-text")
	ErrBadTextProp    = errors.New("invalid text property")
	ErrMalformedInput = errors.New("malformed input")
	ErrReadOnly       = errors.New("m-text is read-only")
)

// posCache is the one-slot (char position, unit position) cache. The zero
// value (0, 0) is always valid.
type posCache struct {
	char int
	unit int
}

// MText is a mutable sequence of Unicode scalars with attached text
// properties. The zero value is not usable; use New or a From constructor.
type MText struct {
	format   Format
	data     []byte // nbytes units of format.unitSize() bytes each
	nchars   int
	nbytes   int // unit count, not byte count
	cache    posCache
	stores   []*store // per-key partitions, lazily created
	readonly bool
}

// New returns an empty M-text in ASCII format.
func New() *MText {
	return &MText{format: FormatASCII}
}

// FromString returns an M-text holding the characters of s. The format is
// ASCII when s is pure ASCII, UTF-8 otherwise. Invalid UTF-8 in s is
// rejected.
func FromString(s string) (*MText, error) {
	if !utf8.ValidString(s) {
		return nil, ErrMalformedInput
	}
	m := New()
	for _, r := range s {
		if r >= 0x80 {
			m.format = FormatUTF8
			break
		}
	}
	m.data = []byte(s)
	m.nbytes = len(s)
	m.nchars = utf8.RuneCountInString(s)
	return m, nil
}

// MustFromString is FromString for known-good literals; it panics on
// malformed input.
func MustFromString(s string) *MText {
	m, err := FromString(s)
	if err != nil {
		panic(err)
	}
	return m
}

// FromRunes returns an M-text in UTF-32 format holding the given scalars.
func FromRunes(rs []rune) (*MText, error) {
	m := &MText{format: FormatUTF32}
	for _, r := range rs {
		if !utf8.ValidRune(r) {
			return nil, ErrMalformedInput
		}
		m.data = FormatUTF32.encode(m.data, r)
	}
	m.nchars = len(rs)
	m.nbytes = len(rs)
	return m, nil
}

// FromData copies raw units in the given format into a new M-text. UTF-8
// input is rejected on overlong sequences, surrogates, and truncation;
// UTF-16 input (native-endian byte pairs) is rejected on lone surrogates.
// UTF-16 input containing surrogate pairs is stored widened to UTF-32, since
// the UTF-16 form holds BMP scalars only.
func FromData(data []byte, format Format) (*MText, error) {
	switch format {
	case FormatASCII:
		for _, b := range data {
			if b >= 0x80 {
				return nil, ErrMalformedInput
			}
		}
		m := New()
		m.data = append([]byte(nil), data...)
		m.nbytes = len(data)
		m.nchars = len(data)
		return m, nil

	case FormatUTF8:
		if !utf8.Valid(data) {
			return nil, ErrMalformedInput
		}
		return FromString(string(data))

	case FormatUTF16:
		if len(data)%2 != 0 {
			return nil, ErrMalformedInput
		}
		units := make([]uint16, len(data)/2)
		for i := range units {
			r, _ := FormatUTF16.decode(data, i)
			units[i] = uint16(r)
		}
		wide := false
		for i := 0; i < len(units); i++ {
			u := rune(units[i])
			switch {
			case utf16.IsSurrogate(u) && u < 0xDC00:
				// High surrogate needs a following low surrogate.
				if i+1 >= len(units) || rune(units[i+1]) < 0xDC00 || rune(units[i+1]) > 0xDFFF {
					return nil, ErrMalformedInput
				}
				wide = true
				i++
			case utf16.IsSurrogate(u):
				return nil, ErrMalformedInput
			}
		}
		if wide {
			return FromRunes(utf16.Decode(units))
		}
		m := &MText{format: FormatUTF16}
		m.data = append([]byte(nil), data...)
		m.nbytes = len(units)
		m.nchars = len(units)
		return m, nil

	case FormatUTF32:
		if len(data)%4 != 0 {
			return nil, ErrMalformedInput
		}
		n := len(data) / 4
		for i := 0; i < n; i++ {
			r, _ := FormatUTF32.decode(data, i)
			if !utf8.ValidRune(r) {
				return nil, ErrMalformedInput
			}
		}
		m := &MText{format: FormatUTF32}
		m.data = append([]byte(nil), data...)
		m.nbytes = n
		m.nchars = n
		return m, nil
	}
	return nil, ErrBadMText
}

// Len returns the character count.
func (m *MText) Len() int { return m.nchars }

// ByteLen returns the unit count: bytes for ASCII and UTF-8, 16-bit units
// for UTF-16, 32-bit units for UTF-32.
func (m *MText) ByteLen() int { return m.nbytes }

// Format returns the current storage format.
func (m *MText) Format() Format { return m.format }

// Coverage returns the coverage summary implied by the storage format.
func (m *MText) Coverage() Coverage { return m.format.coverage() }

// Freeze marks the M-text read-only. Mutating operations fail with
// ErrReadOnly afterwards. Freezing is permanent.
func (m *MText) Freeze() { m.readonly = true }

// IsReadOnly reports whether the M-text has been frozen.
func (m *MText) IsReadOnly() bool { return m.readonly }

// Char returns the scalar at character position pos. pos == Len() is out of
// range.
func (m *MText) Char(pos int) (rune, error) {
	if pos < 0 || pos >= m.nchars {
		return 0, ErrBadRange
	}
	r, _ := m.format.decode(m.data, m.charToUnit(pos))
	return r, nil
}

// charAt is Char without the range check, for internal loops that already
// validated their bounds.
func (m *MText) charAt(pos int) rune {
	r, _ := m.format.decode(m.data, m.charToUnit(pos))
	return r
}

// String returns the text as a Go string.
func (m *MText) String() string {
	if m.format == FormatASCII || m.format == FormatUTF8 {
		return string(m.data)
	}
	var sb strings.Builder
	sb.Grow(m.nchars)
	for unit := 0; unit < m.nbytes; {
		r, n := m.format.decode(m.data, unit)
		sb.WriteRune(r)
		unit += n
	}
	return sb.String()
}

// Runes returns the scalars as a fresh slice.
func (m *MText) Runes() []rune {
	rs := make([]rune, 0, m.nchars)
	for unit := 0; unit < m.nbytes; {
		r, n := m.format.decode(m.data, unit)
		rs = append(rs, r)
		unit += n
	}
	return rs
}

// Bytes returns a copy of the raw storage in the current format.
func (m *MText) Bytes() []byte {
	out := make([]byte, len(m.data))
	copy(out, m.data)
	return out
}

// charToUnit converts a character position to a unit position using the
// one-slot cache. For fixed-width formats this is the identity.
func (m *MText) charToUnit(pos int) int {
	if m.format != FormatUTF8 {
		return pos
	}
	switch {
	case pos == m.cache.char:
		return m.cache.unit
	case pos == 0:
		return 0
	case pos == m.nchars:
		return m.nbytes
	}

	// Walk from the nearest known boundary and refresh the cache.
	char, unit := 0, 0
	if abs(pos-m.cache.char) < pos {
		char, unit = m.cache.char, m.cache.unit
	}
	if m.nchars-pos < abs(pos-char) {
		char, unit = m.nchars, m.nbytes
	}
	for char < pos {
		_, n := m.format.decode(m.data, unit)
		unit += n
		char++
	}
	for char > pos {
		_, n := m.format.decodeBefore(m.data, unit)
		unit -= n
		char--
	}
	m.cache = posCache{char: pos, unit: unit}
	return unit
}

// adjustCache applies the §position-cache shift rules for a mutation at
// character position start (unit position startUnit) replacing oldChars
// characters (oldUnits units) with newChars characters (newUnits units).
func (m *MText) adjustCache(start, startUnit, oldChars, oldUnits, newChars, newUnits int) {
	switch {
	case m.cache.char >= start+oldChars:
		m.cache.char += newChars - oldChars
		m.cache.unit += newUnits - oldUnits
	case m.cache.char > start:
		m.cache = posCache{char: start, unit: startUnit}
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
