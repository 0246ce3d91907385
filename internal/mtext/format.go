package mtext

import (
	"encoding/binary"
	"unicode/utf16"
	"unicode/utf8"
)

// Format identifies the storage format of an M-text's payload. A unit is one
// byte for ASCII and UTF-8, one native-endian uint16 for UTF-16, and one
// native-endian uint32 for UTF-32.
type Format uint8

const (
	FormatASCII Format = iota
	FormatUTF8
	FormatUTF16 // native endian, BMP scalars only
	FormatUTF32 // native endian
)

// String returns the format name.
func (f Format) String() string {
	switch f {
	case FormatASCII:
		return "us-ascii"
	case FormatUTF8:
		return "utf-8"
	case FormatUTF16:
		return "utf-16"
	case FormatUTF32:
		return "utf-32"
	default:
		return "unknown"
	}
}

// Coverage summarises what a format can store. It is a lower bound: every
// scalar in the buffer fits the coverage.
type Coverage uint8

const (
	CoverageASCII Coverage = iota
	CoverageBMP
	CoverageFull
)

func (f Format) coverage() Coverage {
	switch f {
	case FormatASCII:
		return CoverageASCII
	case FormatUTF16:
		return CoverageBMP
	default:
		return CoverageFull
	}
}

// unitSize returns the width of one unit in bytes.
func (f Format) unitSize() int {
	switch f {
	case FormatUTF16:
		return 2
	case FormatUTF32:
		return 4
	default:
		return 1
	}
}

// holds reports whether the format can store the scalar without widening.
func (f Format) holds(r rune) bool {
	switch f {
	case FormatASCII:
		return r < 0x80
	case FormatUTF16:
		return r <= 0xFFFF && !utf16.IsSurrogate(r)
	default:
		return true
	}
}

// widen returns the narrowest format at least as wide as f that holds r.
// ASCII widens to UTF-8, UTF-16 to UTF-32.
func (f Format) widen(r rune) Format {
	if f.holds(r) {
		return f
	}
	switch f {
	case FormatASCII:
		return FormatUTF8
	case FormatUTF16:
		return FormatUTF32
	default:
		return f
	}
}

// unitsFor returns the number of units needed to encode r in format f.
func (f Format) unitsFor(r rune) int {
	if f == FormatUTF8 {
		return utf8.RuneLen(r)
	}
	return 1
}

// decode reads the scalar starting at unit index, returning it and its unit
// width. The caller guarantees the index is a character boundary.
func (f Format) decode(data []byte, unit int) (rune, int) {
	switch f {
	case FormatASCII:
		return rune(data[unit]), 1
	case FormatUTF8:
		r, n := utf8.DecodeRune(data[unit:])
		return r, n
	case FormatUTF16:
		return rune(binary.NativeEndian.Uint16(data[unit*2:])), 1
	default:
		return rune(binary.NativeEndian.Uint32(data[unit*4:])), 1
	}
}

// decodeBefore reads the scalar ending just before unit index, returning it
// and its unit width.
func (f Format) decodeBefore(data []byte, unit int) (rune, int) {
	switch f {
	case FormatASCII:
		return rune(data[unit-1]), 1
	case FormatUTF8:
		r, n := utf8.DecodeLastRune(data[:unit])
		return r, n
	case FormatUTF16:
		return rune(binary.NativeEndian.Uint16(data[(unit-1)*2:])), 1
	default:
		return rune(binary.NativeEndian.Uint32(data[(unit-1)*4:])), 1
	}
}

// encode appends r to dst in format f and returns the extended slice.
func (f Format) encode(dst []byte, r rune) []byte {
	switch f {
	case FormatASCII:
		return append(dst, byte(r))
	case FormatUTF8:
		return utf8.AppendRune(dst, r)
	case FormatUTF16:
		return binary.NativeEndian.AppendUint16(dst, uint16(r))
	default:
		return binary.NativeEndian.AppendUint32(dst, uint32(r))
	}
}
