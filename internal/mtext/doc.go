// Package mtext implements the M-text type: a mutable sequence of Unicode
// scalar values carrying text properties attached to arbitrary substrings.
//
// The character payload lives in one of four storage formats (ASCII, UTF-8,
// UTF-16 native-endian, UTF-32 native-endian). Mutating operations widen the
// format as needed to hold the widest scalar involved, then work in that
// fixed format so offset arithmetic stays uniform. A one-slot position cache
// makes repeated adjacent character lookups O(1).
//
// Text properties are (key, value, flags) triples attached over character
// ranges. For each key the M-text keeps an ordered partition of [0, nchars)
// into intervals; each interval carries a stack of shared property objects.
// Every text mutation adjusts every per-key partition, honouring the sticky
// and volatile control flags.
//
// An M-text is single-goroutine: concurrent mutation of one M-text is
// undefined. Distinct M-texts are independent.
package mtext
