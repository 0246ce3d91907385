// Package plistio reads and writes the textual plist format.
//
// The syntax is Lisp-like: a stream of elements, each a symbol, an
// integer, a double-quoted text, or a parenthesised nested plist.
// Parsing yields a plist whose cells are keyed by the element's type
// symbol (KeySymbol, KeyInteger, KeyMText, KeyPlist) with the decoded
// value in the cell. Marshal is the exact inverse on such plists;
// Dump renders any plist for debugging without promising to parse
// back.
package plistio
