package mtext

import (
	"unicode/utf8"
)

// widenFor re-encodes the buffer into a format wide enough for every scalar
// in rs, so the mutation that follows works in one fixed format. Widening
// invalidates the position cache.
func (m *MText) widenFor(rs []rune) {
	target := m.format
	for _, r := range rs {
		target = target.widen(r)
	}
	if target == m.format {
		return
	}
	old := m.Runes()
	m.format = target
	m.data = m.data[:0]
	for _, r := range old {
		m.data = target.encode(m.data, r)
	}
	m.nbytes = len(m.data) / target.unitSize()
	m.cache = posCache{}
}

// spliceUnits replaces units [fromUnit, toUnit) with ins (already encoded in
// the current format) and refreshes nbytes.
func (m *MText) spliceUnits(fromUnit, toUnit int, ins []byte) {
	us := m.format.unitSize()
	a, b := fromUnit*us, toUnit*us
	out := make([]byte, 0, len(m.data)-(b-a)+len(ins))
	out = append(out, m.data[:a]...)
	out = append(out, ins...)
	out = append(out, m.data[b:]...)
	m.data = out
	m.nbytes = len(out) / us
}

func (m *MText) checkRange(from, to int) error {
	if from < 0 || to < from || to > m.nchars {
		return ErrBadRange
	}
	return nil
}

func (m *MText) checkMutable() error {
	if m.readonly {
		return ErrReadOnly
	}
	return nil
}

// Insert inserts characters [from, to) of src at position pos. The inserted
// range brings its text properties along: per-key runs graft into this
// M-text's stores, and properties bordering pos widen per their sticky
// flags.
func (m *MText) Insert(pos int, src *MText, from, to int) error {
	if err := m.checkMutable(); err != nil {
		return err
	}
	if pos < 0 || pos > m.nchars {
		return ErrBadRange
	}
	if err := src.checkRange(from, to); err != nil {
		return err
	}
	if from == to {
		return nil
	}
	if src == m {
		// Self-insertion works on a detached copy so the graft sources
		// stay stable while the host mutates.
		dup, err := src.Substring(from, to)
		if err != nil {
			return err
		}
		return m.Insert(pos, dup, 0, dup.nchars)
	}

	rs := src.Runes()[from:to]
	m.widenFor(rs)

	var enc []byte
	for _, r := range rs {
		enc = m.format.encode(enc, r)
	}
	n := to - from
	posUnit := m.charToUnit(pos)
	insUnits := len(enc) / m.format.unitSize()
	m.spliceUnits(posUnit, posUnit, enc)
	m.nchars += n
	m.adjustCache(pos, posUnit, 0, 0, n, insUnits)

	m.adjustForInsert(pos, n, src, from)
	return nil
}

// InsertString inserts the characters of s at pos.
func (m *MText) InsertString(pos int, s string) error {
	src, err := FromString(s)
	if err != nil {
		return err
	}
	return m.Insert(pos, src, 0, src.nchars)
}

// Delete removes characters [from, to). Weak- and strong-volatile
// properties whose range covers deleted text are dropped; properties
// straddling the range are truncated.
func (m *MText) Delete(from, to int) error {
	if err := m.checkMutable(); err != nil {
		return err
	}
	if err := m.checkRange(from, to); err != nil {
		return err
	}
	if from == to {
		return nil
	}

	m.dropVolatile(from, to, nil, true)

	fromUnit := m.charToUnit(from)
	toUnit := m.charToUnit(to)
	m.spliceUnits(fromUnit, toUnit, nil)
	n := to - from
	m.nchars -= n
	m.adjustCache(from, fromUnit, n, toUnit-fromUnit, 0, 0)

	m.adjustForDelete(from, to)
	return nil
}

// Replace replaces characters [from, to) with characters [sfrom, sto) of
// src. Replacing a range with the identical range of the same M-text is a
// no-op, properties included.
func (m *MText) Replace(from, to int, src *MText, sfrom, sto int) error {
	if err := m.checkMutable(); err != nil {
		return err
	}
	if err := m.checkRange(from, to); err != nil {
		return err
	}
	if err := src.checkRange(sfrom, sto); err != nil {
		return err
	}
	if src == m && from == sfrom && to == sto {
		return nil
	}
	if src == m {
		dup, err := src.Substring(sfrom, sto)
		if err != nil {
			return err
		}
		return m.Replace(from, to, dup, 0, dup.nchars)
	}

	if to > from {
		m.dropVolatile(from, to, nil, true)
	}

	rs := src.Runes()[sfrom:sto]
	m.widenFor(rs)
	var enc []byte
	for _, r := range rs {
		enc = m.format.encode(enc, r)
	}

	fromUnit := m.charToUnit(from)
	toUnit := m.charToUnit(to)
	insUnits := len(enc) / m.format.unitSize()
	m.spliceUnits(fromUnit, toUnit, enc)
	n := sto - sfrom
	m.nchars += n - (to - from)
	m.adjustCache(from, fromUnit, to-from, toUnit-fromUnit, n, insUnits)

	if to > from {
		m.adjustForDelete(from, to)
	}
	if n > 0 {
		m.adjustForInsert(from, n, src, sfrom)
	}
	return nil
}

// SetChar overwrites the character at pos with c, widening the storage
// format when needed. Property ranges are unchanged, but the overwrite is a
// modification of the range [pos, pos+1): volatile properties there are
// dropped.
func (m *MText) SetChar(pos int, c rune) error {
	if err := m.checkMutable(); err != nil {
		return err
	}
	if pos < 0 || pos >= m.nchars {
		return ErrBadRange
	}
	if !utf8.ValidRune(c) {
		return ErrBadChar
	}

	m.dropVolatile(pos, pos+1, nil, true)

	m.widenFor([]rune{c})
	unit := m.charToUnit(pos)
	_, oldUnits := m.format.decode(m.data, unit)
	enc := m.format.encode(nil, c)
	newUnits := len(enc) / m.format.unitSize()
	m.spliceUnits(unit, unit+oldUnits, enc)
	m.adjustCache(pos, unit, 1, oldUnits, 1, newUnits)
	return nil
}

// Dup returns a deep copy: text, format, and all text properties.
func (m *MText) Dup() *MText {
	dup, _ := m.Substring(0, m.nchars)
	return dup
}

// Substring returns a new M-text holding characters [from, to) together
// with cloned text properties clipped to the range.
func (m *MText) Substring(from, to int) (*MText, error) {
	if err := m.checkRange(from, to); err != nil {
		return nil, err
	}
	out := &MText{format: m.format}
	fromUnit := m.charToUnit(from)
	toUnit := m.charToUnit(to)
	us := m.format.unitSize()
	out.data = append([]byte(nil), m.data[fromUnit*us:toUnit*us]...)
	out.nbytes = toUnit - fromUnit
	out.nchars = to - from

	m.forEachStore(func(s *store) {
		run := cloneRun(s, from, to, -from, out)
		if run == nil {
			return
		}
		ns := &store{key: s.key, head: run[0]}
		ns.mergeAround(0, out.nchars)
		out.stores = append(out.stores, ns)
	})
	return out, nil
}

// Cat appends the whole of src, properties included.
func (m *MText) Cat(src *MText) error {
	return m.Insert(m.nchars, src, 0, src.nchars)
}
