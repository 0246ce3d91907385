// Package symbol provides the process-global symbol table and the property
// list (plist) type built on symbols.
//
// A symbol is an interned name: two mentions of the same name yield the same
// *Symbol, so identity comparison replaces string comparison everywhere
// downstream. A symbol may be declared a managing key, meaning values stored
// under it are reference-counted managed objects whose ownership the store
// shares.
//
// A plist is an ordered sequence of (key, value) cells with first-match
// lookup. It is deliberately O(n): plists here are small (symbol properties,
// per-key stores, deserialised literals), and order is observable.
//
// Symbols and plists live in one package because each is defined in terms of
// the other: plist keys are symbols, and every symbol owns a plist of its own
// properties.
package symbol
