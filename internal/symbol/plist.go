package symbol

import (
	"github.com/textforge/mtext/internal/managed"
)

// Func is a function value stored in a plist cell. Function values live in
// cells flagged value-is-function, kept apart from data values so a data
// entry and a function entry can coexist under one key.
type Func func(args ...any) any

// Cell is one (key, value) pair of a plist. A *Cell doubles as the cursor
// type: Next walks toward the tail.
type Cell struct {
	key    *Symbol
	val    any
	isFunc bool
	nested bool
	next   *Cell
}

// Key returns the cell's key. The tail cell's key is the Nil symbol.
func (c *Cell) Key() *Symbol { return c.key }

// Value returns the cell's data value.
func (c *Cell) Value() any { return c.val }

// IsTail reports whether the cell is the terminating tail cell.
func (c *Cell) IsTail() bool { return c.key == Nil }

// IsNested reports whether the cell's value is itself a plist.
func (c *Cell) IsNested() bool { return c.nested }

// Next returns the following cell, or nil past the tail.
func (c *Cell) Next() *Cell {
	if c == nil || c.next == nil {
		return nil
	}
	return c.next
}

// Plist is an ordered (key, value) sequence ending in a tail cell whose key
// is Nil. It is a managed object; the last Unref releases managing-key
// references held by its cells.
type Plist struct {
	managed.Object
	head *Cell
	n    int
}

// NewPlist returns an empty plist holding one reference for the caller.
func NewPlist() *Plist {
	pl := &Plist{head: &Cell{key: Nil}}
	pl.Init(pl.release)
	managed.Register(&pl.Object, "plist")
	return pl
}

func (pl *Plist) release() {
	for c := pl.head; c != nil && !c.IsTail(); c = c.next {
		dropValue(c)
	}
	pl.head = &Cell{key: Nil}
	pl.n = 0
}

// adoptValue takes a managing reference when the key demands one.
func adoptValue(k *Symbol, v any) {
	if k != nil && k.managing && v != nil {
		v.(managed.Value).Ref()
	}
}

func dropValue(c *Cell) {
	if c.key != nil && c.key.managing && c.val != nil {
		c.val.(managed.Value).Unref()
	}
}

// Len returns the number of non-tail cells.
func (pl *Plist) Len() int { return pl.n }

// First returns the first cell (the tail if the plist is empty).
func (pl *Plist) First() *Cell { return pl.head }

// Tail returns the terminating tail cell.
func (pl *Plist) Tail() *Cell {
	c := pl.head
	for !c.IsTail() {
		c = c.next
	}
	return c
}

// Add appends a (key, value) pair before the tail. If key is a managing key,
// the plist takes a shared reference on value.
func (pl *Plist) Add(k *Symbol, v any) *Cell {
	tail := pl.Tail()
	return pl.insertAt(tail, k, v)
}

// Push prepends a (key, value) pair. Same managing-key rule as Add.
func (pl *Plist) Push(k *Symbol, v any) *Cell {
	return pl.insertAt(pl.head, k, v)
}

// insertAt turns at into the new cell and pushes at's old contents one down.
// This keeps external cursors to earlier cells valid.
func (pl *Plist) insertAt(at *Cell, k *Symbol, v any) *Cell {
	adoptValue(k, v)
	moved := *at
	at.key = k
	at.val = v
	at.isFunc = false
	_, at.nested = v.(*Plist)
	at.next = &moved
	pl.n++
	return at
}

// Pop removes the first pair and returns its value. Ownership of a managing
// reference transfers to the caller. Pop of an empty plist returns nil.
func (pl *Plist) Pop() any {
	if pl.head.IsTail() {
		return nil
	}
	v := pl.head.val
	pl.head = pl.head.next
	pl.n--
	return v
}

// Put replaces the value of the first data cell with the given key, or
// appends a new pair if none exists. The old managing reference is dropped
// and a new one adopted.
func (pl *Plist) Put(k *Symbol, v any) *Cell {
	if k == nil || k == Nil {
		return nil
	}
	if c := pl.findData(k); c != nil {
		adoptValue(k, v)
		dropValue(c)
		c.val = v
		_, c.nested = v.(*Plist)
		return c
	}
	return pl.Add(k, v)
}

// Get returns the value of the first data cell with the given key, or nil.
// An absent key and a nil-valued entry are indistinguishable here; use
// FindByKey to tell them apart.
func (pl *Plist) Get(k *Symbol) any {
	if c := pl.findData(k); c != nil {
		return c.val
	}
	return nil
}

// PutFunc stores a function value under key in a value-is-function cell,
// replacing an existing function cell for the key if present.
func (pl *Plist) PutFunc(k *Symbol, fn Func) *Cell {
	if k == nil || k == Nil {
		return nil
	}
	for c := pl.head; !c.IsTail(); c = c.next {
		if c.key == k && c.isFunc {
			c.val = fn
			return c
		}
	}
	c := pl.Add(k, fn)
	c.isFunc = true
	c.nested = false
	return c
}

// GetFunc returns the function stored under key, walking past data cells
// with the same key, or nil.
func (pl *Plist) GetFunc(k *Symbol) Func {
	for c := pl.head; !c.IsTail(); c = c.next {
		if c.key == k && c.isFunc {
			return c.val.(Func)
		}
	}
	return nil
}

func (pl *Plist) findData(k *Symbol) *Cell {
	for c := pl.head; !c.IsTail(); c = c.next {
		if c.key == k && !c.isFunc {
			return c
		}
	}
	return nil
}

// FindByKey returns the first cell with the given key, or nil. A Nil key
// finds the tail.
func (pl *Plist) FindByKey(k *Symbol) *Cell {
	for c := pl.head; c != nil; c = c.next {
		if c.key == k {
			return c
		}
		if c.IsTail() {
			break
		}
	}
	return nil
}

// FindByValue returns the first data cell whose value equals v by identity,
// or nil. Function cells are skipped (function values have no identity).
func (pl *Plist) FindByValue(v any) *Cell {
	for c := pl.head; !c.IsTail(); c = c.next {
		if !c.isFunc && c.val == v {
			return c
		}
	}
	return nil
}

// Set overwrites a cell's key and value in place, releasing the old managing
// reference and adopting one for the new pair. Setting the tail cell grows
// the plist by one (the tail moves down), matching insertion semantics.
func (pl *Plist) Set(c *Cell, k *Symbol, v any) {
	if c.IsTail() {
		pl.insertAt(c, k, v)
		return
	}
	adoptValue(k, v)
	dropValue(c)
	c.key = k
	c.val = v
	c.isFunc = false
	_, c.nested = v.(*Plist)
}
