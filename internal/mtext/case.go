package mtext

import (
	"unicode"

	"golang.org/x/text/unicode/norm"

	"github.com/textforge/mtext/internal/symbol"
)

// KeyLanguage is the text-property key carrying per-range language tags
// ("tr", "az", "lt", ...) that steer the language-specific casing rules.
var KeyLanguage = symbol.Intern("language")

// Lowercase converts the text to lowercase in place, applying the
// final-sigma rule and the Turkish, Azeri, and Lithuanian special rules for
// ranges tagged with the language property. Text properties are preserved;
// multi-character expansions inherit the source character's stacks.
func (m *MText) Lowercase() error {
	return m.convertCase(lowerMapping)
}

// Uppercase converts the text to uppercase in place, with the same
// language-rule and property-preservation behaviour as Lowercase.
func (m *MText) Uppercase() error {
	return m.convertCase(upperMapping)
}

// Titlecase converts the text in place: the first cased character of each
// word takes its titlecase mapping, every other cased character lowercases.
func (m *MText) Titlecase() error {
	wordStart := true
	return m.convertCase(func(m *MText, pos int, r rune, lang string) []rune {
		if !isCased(r) {
			if !isCaseIgnorable(r) {
				wordStart = true
			}
			return nil
		}
		if wordStart {
			wordStart = false
			return titleMapping(m, pos, r, lang)
		}
		return lowerMapping(m, pos, r, lang)
	})
}

// caseMapping returns the replacement scalars for the character at pos, or
// nil when it is unchanged. An empty non-nil slice deletes the character.
type caseMapping func(m *MText, pos int, r rune, lang string) []rune

func (m *MText) convertCase(mapping caseMapping) error {
	if err := m.checkMutable(); err != nil {
		return err
	}
	for pos := 0; pos < m.nchars; {
		r := m.charAt(pos)
		mapped := mapping(m, pos, r, m.languageAt(pos))
		if mapped == nil || (len(mapped) == 1 && mapped[0] == r) {
			pos++
			continue
		}
		if err := m.spliceMapped(pos, mapped); err != nil {
			return err
		}
		pos += len(mapped)
	}
	return nil
}

// spliceMapped replaces the single character at pos with the mapped scalars,
// re-attaching the character's property stacks over the whole expansion.
func (m *MText) spliceMapped(pos int, mapped []rune) error {
	if len(mapped) == 0 {
		return m.Delete(pos, pos+1)
	}
	repl, err := FromRunes(mapped)
	if err != nil {
		return err
	}
	keys, err := m.GetPropKeys(pos)
	if err != nil {
		return err
	}
	for _, key := range keys {
		vals, err := m.GetPropValues(pos, key, 0)
		if err != nil {
			return err
		}
		p, _ := m.GetProperty(pos, key)
		for i, v := range vals {
			flags := Flags(0)
			if i == len(vals)-1 && p != nil {
				flags = p.Flags()
			}
			if err := repl.PushPropFlags(0, repl.nchars, key, v, flags); err != nil {
				return err
			}
		}
	}
	return m.Replace(pos, pos+1, repl, 0, repl.nchars)
}

func (m *MText) languageAt(pos int) string {
	v, err := m.GetProp(pos, KeyLanguage)
	if err != nil || v == nil {
		return ""
	}
	switch lang := v.(type) {
	case *symbol.Symbol:
		return lang.Name()
	case string:
		return lang
	}
	return ""
}

func lowerMapping(m *MText, pos int, r rune, lang string) []rune {
	switch lang {
	case "tr", "az":
		switch r {
		case 'I':
			if m.beforeDot(pos) {
				// I + combining dot above lowers to plain i; the dot is
				// consumed here rather than at its own position.
				for i := pos + 1; i < m.nchars; i++ {
					if m.charAt(i) == 0x0307 {
						_ = m.Delete(i, i+1)
						break
					}
				}
				return []rune{'i'}
			}
			return []rune{0x0131} // dotless i
		case 0x0130: // I with dot above
			return []rune{'i'}
		case 0x0307:
			if m.afterI(pos) {
				return []rune{}
			}
		}
	case "lt":
		if m.moreAbove(pos) {
			switch r {
			case 'I':
				return []rune{'i', 0x0307}
			case 'J':
				return []rune{'j', 0x0307}
			case 0x012E: // I with ogonek
				return []rune{0x012F, 0x0307}
			}
		}
	}
	switch r {
	case 0x03A3: // capital sigma
		if m.finalSigma(pos) {
			return []rune{0x03C2}
		}
		return []rune{0x03C3}
	case 0x0130:
		// Outside tr/az, I-dot lowers to i + combining dot above.
		return []rune{'i', 0x0307}
	}
	if l := unicode.ToLower(r); l != r {
		return []rune{l}
	}
	return nil
}

func upperMapping(m *MText, pos int, r rune, lang string) []rune {
	switch lang {
	case "tr", "az":
		if r == 'i' {
			return []rune{0x0130}
		}
	case "lt":
		if r == 0x0307 && m.afterSoftDotted(pos) {
			return []rune{} // the dot above disappears on uppercasing
		}
	}
	switch r {
	case 0x00DF: // sharp s
		return []rune{'S', 'S'}
	case 0x0149: // n preceded by apostrophe
		return []rune{0x02BC, 'N'}
	case 0x01F0: // j with caron
		return []rune{'J', 0x030C}
	}
	if u := unicode.ToUpper(r); u != r {
		return []rune{u}
	}
	return nil
}

func titleMapping(m *MText, pos int, r rune, lang string) []rune {
	if lang == "tr" || lang == "az" {
		if r == 'i' {
			return []rune{0x0130}
		}
	}
	if r == 0x00DF {
		return []rune{'S', 's'}
	}
	if t := unicode.ToTitle(r); t != r {
		return []rune{t}
	}
	return nil
}

// Casing contexts, per the Unicode SpecialCasing conditions.

// finalSigma: a cased character precedes pos within the case-ignorable run,
// and no cased character follows within it.
func (m *MText) finalSigma(pos int) bool {
	before := false
	for i := pos - 1; i >= 0; i-- {
		r := m.charAt(i)
		if isCaseIgnorable(r) {
			continue
		}
		before = isCased(r)
		break
	}
	if !before {
		return false
	}
	for i := pos + 1; i < m.nchars; i++ {
		r := m.charAt(i)
		if isCaseIgnorable(r) {
			continue
		}
		return !isCased(r)
	}
	return true
}

// afterSoftDotted: the last character before pos with combining class 0 or
// 230 is soft-dotted.
func (m *MText) afterSoftDotted(pos int) bool {
	for i := pos - 1; i >= 0; i-- {
		r := m.charAt(i)
		c := ccc(r)
		if c == 0 || c == 230 {
			return isSoftDotted(r)
		}
	}
	return false
}

// moreAbove: a combining-class-230 character follows before the next
// class-0 character.
func (m *MText) moreAbove(pos int) bool {
	for i := pos + 1; i < m.nchars; i++ {
		c := ccc(m.charAt(i))
		if c == 230 {
			return true
		}
		if c == 0 {
			return false
		}
	}
	return false
}

// beforeDot: U+0307 follows before the next class-0 or class-230 character.
func (m *MText) beforeDot(pos int) bool {
	for i := pos + 1; i < m.nchars; i++ {
		r := m.charAt(i)
		if r == 0x0307 {
			return true
		}
		c := ccc(r)
		if c == 0 || c == 230 {
			return false
		}
	}
	return false
}

// afterI: the last character before pos with combining class 0 or 230 is
// a capital I.
func (m *MText) afterI(pos int) bool {
	for i := pos - 1; i >= 0; i-- {
		r := m.charAt(i)
		if r == 'I' {
			return true
		}
		c := ccc(r)
		if c == 0 || c == 230 {
			return false
		}
	}
	return false
}

func ccc(r rune) uint8 {
	return norm.NFD.PropertiesString(string(r)).CCC()
}

func isCased(r rune) bool {
	return unicode.In(r, unicode.Lu, unicode.Ll, unicode.Lt) ||
		unicode.SimpleFold(r) != r
}

func isCaseIgnorable(r rune) bool {
	if unicode.In(r, unicode.Mn, unicode.Me, unicode.Cf, unicode.Lm, unicode.Sk) {
		return true
	}
	switch r {
	case '\'', 0x00AD, 0x2019, 0x00B7, 0x05F4, 0x2027:
		return true
	}
	return false
}

var softDottedRunes = map[rune]bool{
	'i': true, 'j': true,
	0x012F: true, 0x0249: true, 0x0268: true, 0x029D: true, 0x02B2: true,
	0x03F3: true, 0x0456: true, 0x0458: true, 0x1D62: true, 0x1D96: true,
	0x1DA4: true, 0x1DA8: true, 0x1E2D: true, 0x1ECB: true, 0x2071: true,
	0x2C7C: true,
}

func isSoftDotted(r rune) bool {
	return softDottedRunes[r]
}
