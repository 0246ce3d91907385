package mtext

import (
	"github.com/textforge/mtext/internal/symbol"
)

// This file is the adjustment engine run by every mutation: phase 1 of the
// interval algorithms (volatile drops) and the per-store fixups for text
// insertion and deletion.

// dropVolatile is prepare-to-modify: for every store whose key differs from
// key, strong-volatile properties intersecting [from, to) are dropped, and
// weak-volatile ones too when the mutation deletes text. key == nil means a
// text mutation, which counts as "other" for every store. Stores emptied by
// the drops are freed.
func (m *MText) dropVolatile(from, to int, key *symbol.Symbol, deleting bool) {
	var emptied []*store
	m.forEachStore(func(s *store) {
		if key != nil && s.key == key {
			return
		}
		var doomed []*Property
		seen := make(map[*Property]bool)
		for iv := s.head; iv != nil && iv.start < to; iv = iv.next {
			if iv.end <= from {
				continue
			}
			for _, p := range iv.stack {
				if seen[p] {
					continue
				}
				seen[p] = true
				if p.start >= to || p.end <= from {
					continue
				}
				if p.volatileStrong() || (deleting && p.volatileWeak()) {
					doomed = append(doomed, p)
				}
			}
		}
		for _, p := range doomed {
			s.removeEverywhere(p)
		}
		if len(doomed) > 0 {
			s.mergeAround(0, m.nchars)
			if s.empty() {
				emptied = append(emptied, s)
			}
		}
	})
	for _, s := range emptied {
		m.dropStoreIfEmpty(s)
	}
}

// adjustForDelete fixes every store after characters [from, to) were removed
// from the payload. Properties fully inside the range die; properties
// straddling an edge are truncated; positions past the range shift left.
// Volatile policy has already run via dropVolatile.
func (m *MText) adjustForDelete(from, to int) {
	n := to - from
	var emptied []*store
	m.forEachStore(func(s *store) {
		s.splitAt(from)
		s.splitAt(to)

		affected := make(map[*Property]bool)

		// Remove the intervals inside the range.
		iv := s.find(from)
		for iv != nil && iv.start < to {
			next := iv.next
			for _, p := range iv.stack {
				affected[p] = true
				p.attach--
				if p.attach <= 0 {
					p.mt = nil
					p.Unref()
					delete(affected, p)
				}
			}
			if iv.prev != nil {
				iv.prev.next = iv.next
			} else {
				s.head = iv.next
			}
			if iv.next != nil {
				iv.next.prev = iv.prev
			}
			iv = next
		}

		// Shift everything past the range.
		for iv = s.head; iv != nil; iv = iv.next {
			if iv.start >= to {
				iv.start -= n
				iv.end -= n
			}
		}
		for iv = s.head; iv != nil; iv = iv.next {
			for _, p := range iv.stack {
				affected[p] = true
			}
		}
		for p := range affected {
			if p.start >= to {
				p.start -= n
			}
			if p.end >= to {
				p.end -= n
			}
			s.repairRange(p)
		}

		// The whole text may have been deleted.
		if s.head == nil {
			s.head = &interval{start: 0, end: 0}
		}

		s.mergeAround(from, from)
		if s.empty() {
			emptied = append(emptied, s)
		}
	})
	for _, s := range emptied {
		m.dropStoreIfEmpty(s)
	}
	if m.nchars == 0 {
		m.stores = nil
	}
}

// adjustForInsert fixes every store after n characters were inserted at pos.
// src, when non-nil, is the source M-text whose [sfrom, sfrom+n) range was
// inserted: its per-key stores graft in at pos with their stacks intact
// (property objects are cloned into the host). Properties bordering pos
// widen per their sticky flags; a property spanning pos is absorbed when
// sticky and split into two clones otherwise.
func (m *MText) adjustForInsert(pos, n int, src *MText, sfrom int) {
	oldLen := m.nchars - n // callers update nchars before adjusting

	grafts := make(map[*symbol.Symbol][]*interval)
	if src != nil && src != m {
		src.forEachStore(func(ss *store) {
			ivs := cloneRun(ss, sfrom, sfrom+n, pos-sfrom, m)
			if ivs != nil {
				grafts[ss.key] = ivs
			}
		})
	}

	m.forEachStore(func(s *store) {
		gap := grafts[s.key]
		delete(grafts, s.key)
		s.insertGap(pos, n, oldLen, gap)
	})

	// Keys the inserted text carries but the host does not.
	for key, ivs := range grafts {
		s := newStore(key, oldLen)
		m.stores = append(m.stores, s)
		s.insertGap(pos, n, oldLen, ivs)
	}
}

// cloneRun clones the intervals of s covering [from, to), shifted by delta,
// with every property cloned into fresh objects owned by owner. Returns nil
// when the run carries nothing.
func cloneRun(s *store, from, to, delta int, owner *MText) []*interval {
	carries := false
	clones := make(map[*Property]*Property)
	var out []*interval
	for iv := s.head; iv != nil; iv = iv.next {
		if iv.end <= from {
			continue
		}
		if iv.start >= to {
			break
		}
		start := max(iv.start, from)
		end := min(iv.end, to)
		ni := &interval{start: start + delta, end: end + delta}
		for _, p := range iv.stack {
			q, ok := clones[p]
			if !ok {
				q = p.clone()
				q.mt = owner
				q.start = max(p.start, from) + delta
				q.end = min(p.end, to) + delta
				clones[p] = q
			}
			ni.stack = append(ni.stack, q)
			q.attach++
			carries = true
		}
		if len(out) > 0 {
			out[len(out)-1].next = ni
			ni.prev = out[len(out)-1]
		}
		out = append(out, ni)
	}
	if !carries {
		return nil
	}
	return out
}

// insertGap opens an n-character gap at pos in the partition (whose old
// length was oldLen), fills it with the grafted run when given one, and
// applies sticky widening. Positions at or after pos shift right by n.
func (s *store) insertGap(pos, n, oldLen int, graft []*interval) {
	// Make pos an interval boundary, then deal with properties that span
	// it: absorb when sticky, otherwise split the property in two clones.
	var absorbed []*Property
	if pos > 0 && pos < oldLen {
		right := s.splitAt(pos)
		seen := make(map[*Property]bool)
		for _, p := range append([]*Property(nil), right.stack...) {
			if seen[p] || p.start >= pos || p.end <= pos {
				continue
			}
			seen[p] = true
			if p.flags&(FrontSticky|RearSticky) != 0 {
				absorbed = append(absorbed, p)
			} else {
				s.splitProp(p, pos)
			}
		}
	}

	// Collect the sticky boundary properties before shifting.
	var rearSticky, frontSticky []*Property
	for iv := s.head; iv != nil; iv = iv.next {
		for _, p := range iv.stack {
			if p.end == pos && p.flags&RearSticky != 0 && !containsProp(rearSticky, p) {
				rearSticky = append(rearSticky, p)
			}
			if p.start == pos && p.flags&FrontSticky != 0 && !containsProp(frontSticky, p) &&
				!containsProp(absorbed, p) {
				frontSticky = append(frontSticky, p)
			}
		}
	}

	// Shift intervals and properties at or after pos.
	shifted := make(map[*Property]bool)
	for iv := s.head; iv != nil; iv = iv.next {
		if iv.start >= pos {
			iv.start += n
			iv.end += n
		}
		for _, p := range iv.stack {
			if shifted[p] {
				continue
			}
			shifted[p] = true
			if containsProp(absorbed, p) {
				p.end += n
				continue
			}
			if p.start >= pos {
				p.start += n
			}
			if p.end > pos || (p.end == pos && p.flags&RearSticky != 0) {
				p.end += n
			}
		}
	}

	// Splice in the gap.
	var gapHead, gapTail *interval
	if graft != nil {
		gapHead, gapTail = graft[0], graft[len(graft)-1]
	} else {
		g := &interval{start: pos, end: pos + n}
		gapHead, gapTail = g, g
	}

	var before, after *interval
	for iv := s.head; iv != nil; iv = iv.next {
		if iv.end == pos {
			before = iv
		}
		if iv.start == pos+n && after == nil {
			after = iv
		}
	}
	if before != nil {
		before.next = gapHead
		gapHead.prev = before
	} else {
		s.head = gapHead
	}
	gapTail.next = after
	if after != nil {
		after.prev = gapTail
	}

	// Sticky widening into the gap: absorbed and rear-sticky properties
	// enter at the bottom in left-neighbour order, front-sticky ones after.
	for iv := gapHead; iv != nil && iv.start < pos+n; iv = iv.next {
		var add []*Property
		for _, p := range rearSticky {
			add = append(add, p)
		}
		for _, p := range absorbed {
			if !containsProp(add, p) {
				add = append(add, p)
			}
		}
		for _, p := range frontSticky {
			if !containsProp(add, p) {
				add = append(add, p)
			}
		}
		if len(add) > 0 {
			iv.stack = append(add, iv.stack...)
			for _, p := range add {
				p.attach++
			}
		}
	}
	for _, p := range frontSticky {
		p.start = pos
	}

	// Grafting into a previously empty partition leaves a zero-width
	// remnant; drop it.
	for iv := s.head; iv != nil; iv = iv.next {
		if iv.start == iv.end && len(iv.stack) == 0 {
			if iv.prev != nil {
				iv.prev.next = iv.next
			} else {
				s.head = iv.next
			}
			if iv.next != nil {
				iv.next.prev = iv.prev
			}
		}
	}

	s.mergeAround(pos, pos+n)
}

func containsProp(ps []*Property, p *Property) bool {
	for _, q := range ps {
		if q == p {
			return true
		}
	}
	return false
}
