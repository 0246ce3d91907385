package symbol

import (
	"errors"
	"strings"
	"sync"
)

// Errors returned by symbol operations.
var (
	ErrBadSymbol = errors.New("bad symbol")
)

// Symbol is an interned name. Symbols are canonical: Intern returns the same
// pointer for bytewise-equal names, so == compares symbols.
//
// Names beginning with two spaces are reserved for library internals.
type Symbol struct {
	name     string
	managing bool
	props    *Plist
	next     *Symbol // hash chain
}

// Nil is the reserved nil symbol. It is a sentinel: it has the name "nil",
// carries no properties, and is not stored in the table.
var Nil = &Symbol{name: "nil"}

// Name returns the symbol's name.
func (s *Symbol) Name() string {
	return s.name
}

// IsManaging reports whether the symbol is a managing key.
func (s *Symbol) IsManaging() bool {
	return s.managing
}

// IsNil reports whether the symbol is the reserved nil symbol.
func (s *Symbol) IsNil() bool {
	return s == Nil
}

// Put sets a property on the symbol's own plist, replacing any existing
// entry for key. Managing-key values follow plist ownership rules.
func (s *Symbol) Put(key *Symbol, v any) {
	if s.props == nil {
		s.props = NewPlist()
	}
	s.props.Put(key, v)
}

// Get returns the first property stored under key, or nil.
func (s *Symbol) Get(key *Symbol) any {
	if s.props == nil {
		return nil
	}
	return s.props.Get(key)
}

func (s *Symbol) String() string {
	return s.name
}

// The table is a chained hash over a fixed bucket array. The hash folds case
// so that name variants land in one chain; lookup still compares exactly.
const numBuckets = 1024

var table struct {
	mu      sync.RWMutex
	buckets [numBuckets]*Symbol
}

func bucketFor(name string) uint32 {
	// FNV-1a over the lowercased bytes.
	const (
		offset = 2166136261
		prime  = 16777619
	)
	h := uint32(offset)
	for i := 0; i < len(name); i++ {
		c := name[i]
		if c >= 'A' && c <= 'Z' {
			c += 'a' - 'A'
		}
		h ^= uint32(c)
		h *= prime
	}
	return h % numBuckets
}

func lookup(name string) *Symbol {
	for s := table.buckets[bucketFor(name)]; s != nil; s = s.next {
		if s.name == name {
			return s
		}
	}
	return nil
}

// Intern returns the unique symbol of the given name, creating it as a
// non-managing key if absent. Interning "nil" returns the reserved Nil
// sentinel.
func Intern(name string) *Symbol {
	if name == "nil" {
		return Nil
	}

	table.mu.RLock()
	s := lookup(name)
	table.mu.RUnlock()
	if s != nil {
		return s
	}

	table.mu.Lock()
	defer table.mu.Unlock()
	if s = lookup(name); s != nil {
		return s
	}
	b := bucketFor(name)
	s = &Symbol{name: name, next: table.buckets[b]}
	table.buckets[b] = s
	return s
}

// InternManaging interns name as a managing key. It fails if the name is
// already interned (managing status is fixed at creation).
func InternManaging(name string) (*Symbol, error) {
	if name == "nil" {
		return nil, ErrBadSymbol
	}

	table.mu.Lock()
	defer table.mu.Unlock()
	if lookup(name) != nil {
		return nil, ErrBadSymbol
	}
	b := bucketFor(name)
	s := &Symbol{name: name, managing: true, next: table.buckets[b]}
	table.buckets[b] = s
	return s, nil
}

// Exists returns the symbol of the given name, or nil if it was never
// interned.
func Exists(name string) *Symbol {
	if name == "nil" {
		return Nil
	}
	table.mu.RLock()
	defer table.mu.RUnlock()
	return lookup(name)
}

// Internal interns a library-internal symbol: the name is prefixed with two
// spaces, the reserved namespace.
func Internal(name string) *Symbol {
	if strings.HasPrefix(name, "  ") {
		return Intern(name)
	}
	return Intern("  " + name)
}
