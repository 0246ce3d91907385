package managed

import "math"

// Object is the common header of a reference-counted value. Embed it as the
// first field and call Init once before the first Ref.
//
// The count starts at 1 (the creator owns one reference). When the 16-bit
// count saturates, further references spill into an extended counter block so
// arbitrarily many holders stay exact.
type Object struct {
	count      uint16
	ext        *extCount
	destructor func()
}

// extCount holds the overflow beyond math.MaxUint16 references.
type extCount struct {
	extra uint64
}

// Init arms the object with a destructor and sets the count to 1.
// A nil destructor is allowed.
func (o *Object) Init(destructor func()) {
	o.count = 1
	o.ext = nil
	o.destructor = destructor
}

// Ref adds one reference.
func (o *Object) Ref() {
	if o.count == math.MaxUint16 {
		if o.ext == nil {
			o.ext = &extCount{}
		}
		o.ext.extra++
		return
	}
	o.count++
}

// Unref drops one reference. It returns true if this was the last reference,
// in which case the destructor has already run. Unref on a dead object
// (count zero) is a no-op returning false so teardown paths stay simple.
func (o *Object) Unref() bool {
	if o.ext != nil && o.ext.extra > 0 {
		o.ext.extra--
		return false
	}
	o.ext = nil
	switch o.count {
	case 0:
		return false
	case 1:
		o.count = 0
		if o.destructor != nil {
			o.destructor()
		}
		unregister(o)
		return true
	default:
		o.count--
		return false
	}
}

// Count returns the current reference count.
func (o *Object) Count() uint64 {
	n := uint64(o.count)
	if o.ext != nil {
		n += o.ext.extra
	}
	return n
}

// Alive reports whether the object still has at least one reference.
func (o *Object) Alive() bool {
	return o.count > 0
}
