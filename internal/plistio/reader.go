package plistio

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/textforge/mtext/internal/mtext"
	"github.com/textforge/mtext/internal/symbol"
)

// Type keys of parsed elements.
var (
	KeyInteger = symbol.Intern("integer")
	KeySymbol  = symbol.Intern("symbol")
	KeyMText   = symbol.Intern("mtext")
	KeyPlist   = symbol.Intern("plist")
)

// ErrMalformed reports input the parser cannot make sense of.
var ErrMalformed = errors.New("plistio: malformed input")

// Parse reads a stream of elements into a plist. Elements are keyed by
// their type symbol; nested parenthesised groups become nested plists.
func Parse(data []byte) (*symbol.Plist, error) {
	p := &parser{data: data}
	pl, err := p.elements(false)
	if err != nil {
		return nil, err
	}
	return pl, nil
}

// ParseString is Parse over a string.
func ParseString(s string) (*symbol.Plist, error) {
	return Parse([]byte(s))
}

// ParseFile parses the file at path.
func ParseFile(path string) (*symbol.Plist, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("plistio: %w", err)
	}
	return Parse(data)
}

type parser struct {
	data []byte
	pos  int
}

func (p *parser) errf(format string, args ...any) error {
	return fmt.Errorf("%w: at byte %d: %s", ErrMalformed, p.pos, fmt.Sprintf(format, args...))
}

func (p *parser) eof() bool { return p.pos >= len(p.data) }

func (p *parser) peek() byte { return p.data[p.pos] }

// skipSpace advances over whitespace and comments.
func (p *parser) skipSpace() {
	for !p.eof() {
		c := p.peek()
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f':
			p.pos++
		case c == ';':
			for !p.eof() && p.peek() != '\n' {
				p.pos++
			}
		default:
			return
		}
	}
}

// elements parses until EOF, or until the closing paren when nested.
func (p *parser) elements(nested bool) (*symbol.Plist, error) {
	pl := symbol.NewPlist()
	for {
		p.skipSpace()
		if p.eof() {
			if nested {
				return nil, p.errf("unterminated plist")
			}
			return pl, nil
		}
		if p.peek() == ')' {
			if !nested {
				return nil, p.errf("unbalanced close paren")
			}
			p.pos++
			return pl, nil
		}
		key, val, err := p.element()
		if err != nil {
			return nil, err
		}
		pl.Add(key, val)
	}
}

func (p *parser) element() (*symbol.Symbol, any, error) {
	switch c := p.peek(); {
	case c == '(':
		p.pos++
		inner, err := p.elements(true)
		if err != nil {
			return nil, nil, err
		}
		return KeyPlist, inner, nil
	case c == '"':
		p.pos++
		m, err := p.mtext()
		if err != nil {
			return nil, nil, err
		}
		return KeyMText, m, nil
	case c == '?':
		p.pos++
		n, err := p.charLiteral()
		if err != nil {
			return nil, nil, err
		}
		return KeyInteger, n, nil
	default:
		return p.token()
	}
}

// charLiteral decodes the rune after '?', honouring a backslash escape.
func (p *parser) charLiteral() (int, error) {
	if p.eof() {
		return 0, p.errf("dangling character literal")
	}
	if p.peek() == '\\' {
		p.pos++
		if p.eof() {
			return 0, p.errf("dangling escape in character literal")
		}
	}
	r, size := utf8.DecodeRune(p.data[p.pos:])
	p.pos += size
	return int(r), nil
}

func tokenEnd(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '\f', '(', ')', '"', ';':
		return true
	}
	return false
}

// token reads a symbol or integer element.
func (p *parser) token() (*symbol.Symbol, any, error) {
	var b strings.Builder
	escaped := false
	for !p.eof() && !tokenEnd(p.peek()) {
		c := p.peek()
		if c == '\\' {
			escaped = true
			p.pos++
			if p.eof() {
				return nil, nil, p.errf("dangling escape in symbol")
			}
			c = p.peek()
		}
		b.WriteByte(c)
		p.pos++
	}
	tok := b.String()
	if tok == "" {
		return nil, nil, p.errf("empty element")
	}
	if !escaped {
		if n, ok := parseInteger(tok); ok {
			return KeyInteger, n, nil
		}
	}
	return KeySymbol, symbol.Intern(tok), nil
}

// parseInteger recognises the decimal and the 0x / #x hexadecimal
// spellings.
func parseInteger(tok string) (int, bool) {
	if strings.HasPrefix(tok, "0x") || strings.HasPrefix(tok, "#x") {
		n, err := strconv.ParseInt(tok[2:], 16, 64)
		if err != nil {
			return 0, false
		}
		return int(n), true
	}
	n, err := strconv.Atoi(tok)
	if err != nil {
		return 0, false
	}
	return n, true
}

func hexDigit(c byte) bool {
	return c >= '0' && c <= '9' || c >= 'a' && c <= 'f' || c >= 'A' && c <= 'F'
}

// mtext decodes a quoted literal. The opening quote is consumed.
func (p *parser) mtext() (*mtext.MText, error) {
	var rs []rune
	for {
		if p.eof() {
			return nil, p.errf("unterminated string")
		}
		c := p.peek()
		if c == '"' {
			p.pos++
			return mtext.FromRunes(rs)
		}
		if c != '\\' {
			r, size := utf8.DecodeRune(p.data[p.pos:])
			p.pos += size
			rs = append(rs, r)
			continue
		}
		p.pos++
		if p.eof() {
			return nil, p.errf("dangling escape in string")
		}
		e := p.peek()
		p.pos++
		switch e {
		case 'n':
			rs = append(rs, '\n')
		case 'r':
			rs = append(rs, '\r')
		case 't':
			rs = append(rs, '\t')
		case 'b':
			rs = append(rs, '\b')
		case 'f':
			rs = append(rs, '\f')
		case 'e':
			rs = append(rs, 0x1B)
		case '\n':
			// line continuation
		case 'x', 'u':
			start := p.pos
			for !p.eof() && hexDigit(p.peek()) {
				p.pos++
			}
			if p.pos == start {
				return nil, p.errf("empty hex escape")
			}
			n, err := strconv.ParseUint(string(p.data[start:p.pos]), 16, 32)
			if err != nil || n > utf8.MaxRune {
				return nil, p.errf("bad hex escape")
			}
			// a single space closes the escape before a hex digit
			if !p.eof() && p.peek() == ' ' {
				p.pos++
			}
			rs = append(rs, rune(n))
		default:
			rs = append(rs, rune(e))
		}
	}
}
