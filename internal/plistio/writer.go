package plistio

import (
	"errors"
	"fmt"
	"strings"

	"github.com/textforge/mtext/internal/mtext"
	"github.com/textforge/mtext/internal/symbol"
)

// ErrUnsupported reports a plist Marshal cannot represent: a cell whose
// key is not one of the four type keys, or a value of the wrong type.
var ErrUnsupported = errors.New("plistio: plist not marshalable")

// Marshal renders a typed plist back to its textual form. It is the
// inverse of Parse on plists whose cells carry the type keys.
func Marshal(pl *symbol.Plist) (string, error) {
	var b strings.Builder
	if err := marshalInto(&b, pl); err != nil {
		return "", err
	}
	return b.String(), nil
}

func marshalInto(b *strings.Builder, pl *symbol.Plist) error {
	first := true
	for c := pl.First(); !c.IsTail(); c = c.Next() {
		if !first {
			b.WriteByte(' ')
		}
		first = false
		if err := marshalCell(b, c); err != nil {
			return err
		}
	}
	return nil
}

func marshalCell(b *strings.Builder, c *symbol.Cell) error {
	switch c.Key() {
	case KeyInteger:
		n, ok := c.Value().(int)
		if !ok {
			return fmt.Errorf("%w: integer cell holds %T", ErrUnsupported, c.Value())
		}
		fmt.Fprintf(b, "%d", n)
	case KeySymbol:
		s, ok := c.Value().(*symbol.Symbol)
		if !ok {
			return fmt.Errorf("%w: symbol cell holds %T", ErrUnsupported, c.Value())
		}
		writeSymbol(b, s)
	case KeyMText:
		m, ok := c.Value().(*mtext.MText)
		if !ok {
			return fmt.Errorf("%w: mtext cell holds %T", ErrUnsupported, c.Value())
		}
		writeMText(b, m)
	case KeyPlist:
		inner, ok := c.Value().(*symbol.Plist)
		if !ok {
			return fmt.Errorf("%w: plist cell holds %T", ErrUnsupported, c.Value())
		}
		b.WriteByte('(')
		if err := marshalInto(b, inner); err != nil {
			return err
		}
		b.WriteByte(')')
	default:
		return fmt.Errorf("%w: key %s", ErrUnsupported, c.Key())
	}
	return nil
}

func writeSymbol(b *strings.Builder, s *symbol.Symbol) {
	if _, ok := parseInteger(s.Name()); ok {
		// a numeric-looking name must not read back as an integer
		b.WriteByte('\\')
	}
	for _, r := range s.Name() {
		switch r {
		case ' ', '\t', '\n', '\r', '\f', '(', ')', '"', ';', '\\', '?':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
}

func writeMText(b *strings.Builder, m *mtext.MText) {
	b.WriteByte('"')
	for _, r := range m.Runes() {
		switch {
		case r == '"':
			b.WriteString(`\"`)
		case r == '\\':
			b.WriteString(`\\`)
		case r == '\n':
			b.WriteString(`\n`)
		case r == '\r':
			b.WriteString(`\r`)
		case r == '\t':
			b.WriteString(`\t`)
		case r == '\b':
			b.WriteString(`\b`)
		case r == '\f':
			b.WriteString(`\f`)
		case r == 0x1B:
			b.WriteString(`\e`)
		case r < 0x20:
			// trailing space closes the escape unambiguously
			fmt.Fprintf(b, `\x%02X `, r)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
}

// Dump renders any plist for debugging. Cells with unknown keys come
// out as key:value pairs; the output is not meant to parse back.
func Dump(pl *symbol.Plist) string {
	var b strings.Builder
	dumpInto(&b, pl)
	return b.String()
}

func dumpInto(b *strings.Builder, pl *symbol.Plist) {
	b.WriteByte('(')
	first := true
	for c := pl.First(); !c.IsTail(); c = c.Next() {
		if !first {
			b.WriteByte(' ')
		}
		first = false
		switch c.Key() {
		case KeyInteger, KeySymbol, KeyMText, KeyPlist:
			var cell strings.Builder
			if marshalCell(&cell, c) == nil {
				b.WriteString(cell.String())
				continue
			}
		}
		fmt.Fprintf(b, "%s:", c.Key())
		switch v := c.Value().(type) {
		case *symbol.Plist:
			dumpInto(b, v)
		case *mtext.MText:
			writeMText(b, v)
		case *symbol.Symbol:
			writeSymbol(b, v)
		default:
			fmt.Fprintf(b, "%v", v)
		}
	}
	b.WriteByte(')')
}
