package mtext

import (
	"github.com/textforge/mtext/internal/managed"
	"github.com/textforge/mtext/internal/symbol"
)

// Flags control how a text property reacts to mutations of its range.
type Flags uint8

const (
	// FrontSticky absorbs text inserted at the property's start or inside
	// its range.
	FrontSticky Flags = 1 << iota
	// RearSticky absorbs text inserted at the property's end or inside its
	// range.
	RearSticky
	// VolatileWeak drops the property when text inside its range is
	// deleted.
	VolatileWeak
	// VolatileStrong drops the property when any other property in its
	// range is modified, and on text deletion.
	VolatileStrong
	// NoMerge keeps adjacent intervals listing the property from being
	// fused during the merge pass.
	NoMerge
)

// Property is a (key, value, flags) triple attached to a character range of
// one M-text. Properties are shared by reference: one object may be listed
// by several consecutive intervals of its key's partition. Properties are
// managed objects; the store holds one reference while the property is
// attached.
type Property struct {
	managed.Object
	key    *symbol.Symbol
	val    any
	flags  Flags
	mt     *MText
	start  int
	end    int
	attach int // number of intervals listing this property
}

// NewProperty creates a detached property. The caller owns one reference.
// If key is a managing key, the property shares ownership of val.
func NewProperty(key *symbol.Symbol, val any, flags Flags) *Property {
	p := &Property{key: key, val: val, flags: flags}
	p.Init(p.release)
	managed.Register(&p.Object, "property")
	if key != nil && key.IsManaging() && val != nil {
		val.(managed.Value).Ref()
	}
	return p
}

func (p *Property) release() {
	if p.key != nil && p.key.IsManaging() && p.val != nil {
		p.val.(managed.Value).Unref()
	}
	p.mt = nil
	p.attach = 0
}

// Key returns the property's key symbol.
func (p *Property) Key() *symbol.Symbol { return p.key }

// Value returns the property's value.
func (p *Property) Value() any { return p.val }

// Flags returns the property's control flags.
func (p *Property) Flags() Flags { return p.flags }

// Start returns the property's current start position, or -1 if detached.
func (p *Property) Start() int {
	if p.mt == nil {
		return -1
	}
	return p.start
}

// End returns the property's current end position, or -1 if detached.
func (p *Property) End() int {
	if p.mt == nil {
		return -1
	}
	return p.end
}

// MText returns the owning M-text, or nil if detached.
func (p *Property) MText() *MText { return p.mt }

// clone returns a detached copy sharing key, value, and flags. The store
// owns the returned reference.
func (p *Property) clone() *Property {
	return NewProperty(p.key, p.val, p.flags)
}

func (p *Property) volatileWeak() bool   { return p.flags&(VolatileWeak|VolatileStrong) != 0 }
func (p *Property) volatileStrong() bool { return p.flags&VolatileStrong != 0 }

// interval is one segment of a per-key partition. Intervals form a doubly
// linked list covering [0, nchars) without gaps; each carries a stack of
// property pointers, bottom first.
type interval struct {
	start, end int
	stack      []*Property
	prev, next *interval
}

func (iv *interval) top() *Property {
	if len(iv.stack) == 0 {
		return nil
	}
	return iv.stack[len(iv.stack)-1]
}

func (iv *interval) lists(p *Property) bool {
	for _, q := range iv.stack {
		if q == p {
			return true
		}
	}
	return false
}

// store is the partition of one M-text's character range for one key.
type store struct {
	key  *symbol.Symbol
	head *interval
}

// newStore returns a store with a single empty interval spanning [0, n).
func newStore(key *symbol.Symbol, n int) *store {
	return &store{key: key, head: &interval{start: 0, end: n}}
}

// find returns the interval containing pos. pos must lie in [0, nchars).
func (s *store) find(pos int) *interval {
	iv := s.head
	for iv != nil && pos >= iv.end {
		iv = iv.next
	}
	return iv
}

// splitAt ensures an interval boundary exists at pos and returns the
// interval starting there (nil when pos is the partition's end). The
// straddling interval's stack is cloned; every listed property gains one
// listing.
func (s *store) splitAt(pos int) *interval {
	iv := s.find(pos)
	if iv == nil {
		return nil
	}
	if iv.start == pos {
		return iv
	}
	right := &interval{
		start: pos,
		end:   iv.end,
		stack: append([]*Property(nil), iv.stack...),
		prev:  iv,
		next:  iv.next,
	}
	for _, p := range right.stack {
		p.attach++
	}
	if iv.next != nil {
		iv.next.prev = right
	}
	iv.end = pos
	iv.next = right
	return right
}

// stacksEqual reports pointer equality of two stacks in order.
func stacksEqual(a, b []*Property) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func stackHasNoMerge(stack []*Property) bool {
	for _, p := range stack {
		if p.flags&NoMerge != 0 {
			return true
		}
	}
	return false
}

// mergeAround fuses adjacent intervals with pointer-equal stacks in the
// neighbourhood of [from, to]. NoMerge-tagged stacks are left split.
func (s *store) mergeAround(from, to int) {
	iv := s.head
	for iv != nil && iv.end < from {
		iv = iv.next
	}
	for iv != nil && iv.next != nil && iv.start <= to {
		next := iv.next
		if stacksEqual(iv.stack, next.stack) && !stackHasNoMerge(iv.stack) {
			for _, p := range next.stack {
				p.attach--
			}
			iv.end = next.end
			iv.next = next.next
			if next.next != nil {
				next.next.prev = iv
			}
			continue
		}
		iv = next
	}
}

// dropFromInterval removes one listing of p from iv's stack. It returns true
// if this was the property's last listing, in which case the store's
// reference has been released.
func (s *store) dropFromInterval(iv *interval, p *Property) bool {
	for i, q := range iv.stack {
		if q == p {
			iv.stack = append(iv.stack[:i], iv.stack[i+1:]...)
			break
		}
	}
	p.attach--
	if p.attach <= 0 {
		p.mt = nil
		p.Unref()
		return true
	}
	return false
}

// removeEverywhere strips p from every interval listing it and releases the
// store's reference.
func (s *store) removeEverywhere(p *Property) {
	for iv := s.head; iv != nil; iv = iv.next {
		if iv.start >= p.end {
			break
		}
		if iv.end <= p.start {
			continue
		}
		if iv.lists(p) {
			s.dropFromInterval(iv, p)
		}
	}
}

// splitProp clones p at boundary b (p.start < b < p.end). p keeps
// [p.start, b); the clone takes [b, p.end) and replaces p in every listing
// interval at or after b. The clone is owned by the store.
func (s *store) splitProp(p *Property, b int) *Property {
	q := p.clone()
	q.mt = p.mt
	q.start = b
	q.end = p.end
	for iv := s.head; iv != nil; iv = iv.next {
		if iv.end <= b {
			continue
		}
		if iv.start >= p.end {
			break
		}
		for i, r := range iv.stack {
			if r == p {
				iv.stack[i] = q
				q.attach++
				p.attach--
			}
		}
	}
	p.end = b
	return q
}

// clearInterval empties iv's stack. Listed properties extending past
// [from, to) are split first so only their in-range clones are dropped
// and the survivors keep ranges matching their listings. The caller must
// have split the partition at from and to already.
func (s *store) clearInterval(iv *interval, from, to int) {
	for _, q := range append([]*Property(nil), iv.stack...) {
		if q.start < from {
			q = s.splitProp(q, from)
		}
		if q.end > to {
			s.splitProp(q, to)
		}
		s.dropFromInterval(iv, q)
		s.repairRange(q)
	}
}

// repairRange recomputes p's start and end from its listing intervals.
// Call after removing listings from either edge.
func (s *store) repairRange(p *Property) {
	if p.attach <= 0 {
		return
	}
	first, last := -1, -1
	for iv := s.head; iv != nil; iv = iv.next {
		if iv.lists(p) {
			if first < 0 {
				first = iv.start
			}
			last = iv.end
		}
	}
	if first >= 0 {
		p.start = first
		p.end = last
	}
}

// empty reports whether every interval's stack is empty, meaning the store
// can be freed.
func (s *store) empty() bool {
	for iv := s.head; iv != nil; iv = iv.next {
		if len(iv.stack) > 0 {
			return false
		}
	}
	return true
}

// Store access on the M-text.

// storeFor returns the store for key, or nil. The index is a plain
// slice: stores are few, and the key symbols themselves must not be
// treated as plist keys here, or a managing key would try to adopt the
// store as a managed value.
func (m *MText) storeFor(key *symbol.Symbol) *store {
	for _, s := range m.stores {
		if s.key == key {
			return s
		}
	}
	return nil
}

// ensureStore returns the store for key, creating it lazily with one empty
// interval spanning the whole text.
func (m *MText) ensureStore(key *symbol.Symbol) *store {
	if s := m.storeFor(key); s != nil {
		return s
	}
	s := newStore(key, m.nchars)
	m.stores = append(m.stores, s)
	return s
}

// dropStoreIfEmpty frees the store when nothing is attached anywhere.
func (m *MText) dropStoreIfEmpty(s *store) {
	if s == nil || !s.empty() {
		return
	}
	for i, t := range m.stores {
		if t == s {
			m.stores = append(m.stores[:i], m.stores[i+1:]...)
			break
		}
	}
	if len(m.stores) == 0 {
		m.stores = nil
	}
}

// forEachStore visits every live store. It walks a snapshot so fn may
// drop stores while iterating.
func (m *MText) forEachStore(fn func(*store)) {
	for _, s := range append([]*store(nil), m.stores...) {
		fn(s)
	}
}
