package mtext

import (
	"github.com/textforge/mtext/internal/symbol"
)

// GetProp returns the value on top of the stack at pos for key, or nil when
// nothing is attached there.
func (m *MText) GetProp(pos int, key *symbol.Symbol) (any, error) {
	if pos < 0 || pos >= m.nchars {
		return nil, ErrBadRange
	}
	s := m.storeFor(key)
	if s == nil {
		return nil, nil
	}
	if p := s.find(pos).top(); p != nil {
		return p.val, nil
	}
	return nil, nil
}

// GetPropValues returns the values stacked at pos for key, bottom to top,
// at most max of them (max <= 0 means all).
func (m *MText) GetPropValues(pos int, key *symbol.Symbol, max int) ([]any, error) {
	if pos < 0 || pos >= m.nchars {
		return nil, ErrBadRange
	}
	s := m.storeFor(key)
	if s == nil {
		return nil, nil
	}
	stack := s.find(pos).stack
	n := len(stack)
	if max > 0 && max < n {
		n = max
	}
	vals := make([]any, 0, n)
	for _, p := range stack[:n] {
		vals = append(vals, p.val)
	}
	return vals, nil
}

// GetPropKeys returns every key whose store has a non-empty stack at pos.
func (m *MText) GetPropKeys(pos int) ([]*symbol.Symbol, error) {
	if pos < 0 || pos >= m.nchars {
		return nil, ErrBadRange
	}
	var keys []*symbol.Symbol
	m.forEachStore(func(s *store) {
		if len(s.find(pos).stack) > 0 {
			keys = append(keys, s.key)
		}
	})
	return keys, nil
}

// PutProp clears key's properties over [from, to) and attaches one fresh
// property of the given value spanning exactly that range.
func (m *MText) PutProp(from, to int, key *symbol.Symbol, val any) error {
	return m.putProp(from, to, key, val, 0)
}

// PutPropFlags is PutProp with explicit control flags on the new property.
func (m *MText) PutPropFlags(from, to int, key *symbol.Symbol, val any, flags Flags) error {
	return m.putProp(from, to, key, val, flags)
}

func (m *MText) putProp(from, to int, key *symbol.Symbol, val any, flags Flags) error {
	if err := m.propOpCheck(from, to, key); err != nil {
		return err
	}
	if from == to {
		return nil
	}
	m.dropVolatile(from, to, key, false)

	s := m.ensureStore(key)
	s.splitAt(from)
	s.splitAt(to)

	p := NewProperty(key, val, flags)
	p.mt = m
	p.start, p.end = from, to

	for iv := s.find(from); iv != nil && iv.start < to; iv = iv.next {
		s.clearInterval(iv, from, to)
		iv.stack = append(iv.stack, p)
		p.attach++
	}
	s.mergeAround(from, to)
	return nil
}

// PushProp adds a fresh property of the given value on top of whatever is
// already attached over [from, to).
func (m *MText) PushProp(from, to int, key *symbol.Symbol, val any) error {
	return m.pushProp(from, to, key, val, 0)
}

// PushPropFlags is PushProp with explicit control flags.
func (m *MText) PushPropFlags(from, to int, key *symbol.Symbol, val any, flags Flags) error {
	return m.pushProp(from, to, key, val, flags)
}

func (m *MText) pushProp(from, to int, key *symbol.Symbol, val any, flags Flags) error {
	if err := m.propOpCheck(from, to, key); err != nil {
		return err
	}
	if from == to {
		return nil
	}
	m.dropVolatile(from, to, key, false)

	s := m.ensureStore(key)
	s.splitAt(from)
	s.splitAt(to)

	p := NewProperty(key, val, flags)
	p.mt = m
	p.start, p.end = from, to
	for iv := s.find(from); iv != nil && iv.start < to; iv = iv.next {
		iv.stack = append(iv.stack, p)
		p.attach++
	}
	s.mergeAround(from, to)
	return nil
}

// PopProp removes the topmost property from every interval in [from, to).
// A topmost property extending past the range is split so only the in-range
// part is popped.
func (m *MText) PopProp(from, to int, key *symbol.Symbol) error {
	if err := m.propOpCheck(from, to, key); err != nil {
		return err
	}
	if from == to {
		return nil
	}
	s := m.storeFor(key)
	if s == nil {
		return nil
	}
	m.dropVolatile(from, to, key, false)

	s.splitAt(from)
	s.splitAt(to)

	for iv := s.find(from); iv != nil && iv.start < to; iv = iv.next {
		p := iv.top()
		if p == nil {
			continue
		}
		if p.start < from {
			p = s.splitProp(p, from)
		}
		if p.end > to {
			s.splitProp(p, to)
		}
		s.dropFromInterval(iv, p)
		s.repairRange(p)
	}
	s.mergeAround(from, to)
	m.dropStoreIfEmpty(s)
	return nil
}

// PropRange reports the maximal run around pos over which key's top
// property (or, when deeper is set, the entire stack) stays the same
// objects. It returns the run bounds and the stack depth at pos.
func (m *MText) PropRange(key *symbol.Symbol, pos int, deeper bool) (from, to, depth int, err error) {
	if pos < 0 || pos >= m.nchars {
		return 0, 0, 0, ErrBadRange
	}
	s := m.storeFor(key)
	if s == nil {
		return 0, m.nchars, 0, nil
	}
	iv := s.find(pos)
	depth = len(iv.stack)
	same := func(a, b *interval) bool {
		if deeper {
			return stacksEqual(a.stack, b.stack)
		}
		return a.top() == b.top()
	}
	lo, hi := iv, iv
	for lo.prev != nil && same(lo.prev, iv) {
		lo = lo.prev
	}
	for hi.next != nil && same(hi.next, iv) {
		hi = hi.next
	}
	return lo.start, hi.end, depth, nil
}

// GetProperty returns the topmost property object at pos for key, or nil.
// This is how a caller re-acquires a handle after splits cloned the object.
func (m *MText) GetProperty(pos int, key *symbol.Symbol) (*Property, error) {
	if pos < 0 || pos >= m.nchars {
		return nil, ErrBadRange
	}
	s := m.storeFor(key)
	if s == nil {
		return nil, nil
	}
	return s.find(pos).top(), nil
}

// AttachProperty attaches a detached property over [from, to), clearing
// everything previously attached there for its key. The store shares
// ownership of the property.
func (m *MText) AttachProperty(from, to int, p *Property) error {
	if p == nil || p.mt != nil {
		return ErrBadTextProp
	}
	if err := m.propOpCheck(from, to, p.key); err != nil {
		return err
	}
	if from == to {
		return ErrBadRange
	}
	m.dropVolatile(from, to, p.key, false)

	s := m.ensureStore(p.key)
	s.splitAt(from)
	s.splitAt(to)

	p.Ref()
	p.mt = m
	p.start, p.end = from, to
	for iv := s.find(from); iv != nil && iv.start < to; iv = iv.next {
		s.clearInterval(iv, from, to)
		iv.stack = append(iv.stack, p)
		p.attach++
	}
	s.mergeAround(from, to)
	return nil
}

// PushProperty pushes a detached property on top of the existing stacks
// over [from, to) without disturbing them.
func (m *MText) PushProperty(from, to int, p *Property) error {
	if p == nil || p.mt != nil {
		return ErrBadTextProp
	}
	if err := m.propOpCheck(from, to, p.key); err != nil {
		return err
	}
	if from == to {
		return ErrBadRange
	}
	m.dropVolatile(from, to, p.key, false)

	s := m.ensureStore(p.key)
	s.splitAt(from)
	s.splitAt(to)

	p.Ref()
	p.mt = m
	p.start, p.end = from, to
	for iv := s.find(from); iv != nil && iv.start < to; iv = iv.next {
		iv.stack = append(iv.stack, p)
		p.attach++
	}
	s.mergeAround(from, to)
	return nil
}

// DetachProperty removes the property from its M-text. The caller's handle
// stays valid and the object can be re-attached elsewhere. Detaching an
// already-detached property is a no-op.
func (m *MText) DetachProperty(p *Property) error {
	if p == nil {
		return ErrBadTextProp
	}
	if p.mt == nil {
		return nil
	}
	if p.mt != m {
		return ErrBadTextProp
	}
	s := m.storeFor(p.key)
	if s == nil {
		return ErrBadTextProp
	}
	from, to := p.start, p.end
	// Keep the caller's handle alive across the store's release.
	p.Ref()
	s.removeEverywhere(p)
	p.Unref()
	p.mt = nil
	p.attach = 0
	s.mergeAround(from, to)
	m.dropStoreIfEmpty(s)
	return nil
}

func (m *MText) propOpCheck(from, to int, key *symbol.Symbol) error {
	if err := m.checkMutable(); err != nil {
		return err
	}
	if key == nil || key == symbol.Nil {
		return ErrBadTextProp
	}
	return m.checkRange(from, to)
}
