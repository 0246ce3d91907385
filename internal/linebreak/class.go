package linebreak

// Class is a UAX #14 line breaking class.
//
// The first pairTableClasses values index the pair-action table. The
// remaining classes never reach the table: they are rewritten during
// resolution (AI, XX, SA, NL, PS, CB, SG) or handled by explicit rules
// before any pair lookup (SP, BK, CR, LF).
type Class uint8

const (
	ClassOP Class = iota // opening punctuation
	ClassCL              // closing punctuation
	ClassQU              // ambiguous quotation
	ClassGL              // non-breaking glue
	ClassNS              // nonstarters
	ClassEX              // exclamation, interrogation
	ClassSY              // symbols allowing break after
	ClassIS              // infix numeric separator
	ClassPR              // prefix numeric
	ClassPO              // postfix numeric
	ClassNU              // numeric
	ClassAL              // ordinary alphabetic
	ClassID              // ideographic
	ClassIN              // inseparable
	ClassHY              // hyphen
	ClassBA              // break after
	ClassBB              // break before
	ClassB2              // break on either side
	ClassZW              // zero width space
	ClassCM              // combining mark
	ClassWJ              // word joiner
	ClassH2              // Hangul LV syllable
	ClassH3              // Hangul LVT syllable
	ClassJL              // Hangul leading jamo
	ClassJV              // Hangul vowel jamo
	ClassJT              // Hangul trailing jamo

	ClassSA // complex context (South East Asian)
	ClassSP // space
	ClassPS // paragraph separator
	ClassBK // mandatory break
	ClassCR // carriage return
	ClassLF // line feed
	ClassNL // next line
	ClassCB // contingent break
	ClassSG // surrogate
	ClassAI // ambiguous
	ClassXX // unknown
)

// pairTableClasses is the number of classes that index the pair table.
const pairTableClasses = int(ClassJT) + 1

var classNames = [...]string{
	ClassOP: "OP", ClassCL: "CL", ClassQU: "QU", ClassGL: "GL",
	ClassNS: "NS", ClassEX: "EX", ClassSY: "SY", ClassIS: "IS",
	ClassPR: "PR", ClassPO: "PO", ClassNU: "NU", ClassAL: "AL",
	ClassID: "ID", ClassIN: "IN", ClassHY: "HY", ClassBA: "BA",
	ClassBB: "BB", ClassB2: "B2", ClassZW: "ZW", ClassCM: "CM",
	ClassWJ: "WJ", ClassH2: "H2", ClassH3: "H3", ClassJL: "JL",
	ClassJV: "JV", ClassJT: "JT", ClassSA: "SA", ClassSP: "SP",
	ClassPS: "PS", ClassBK: "BK", ClassCR: "CR", ClassLF: "LF",
	ClassNL: "NL", ClassCB: "CB", ClassSG: "SG", ClassAI: "AI",
	ClassXX: "XX",
}

func (c Class) String() string {
	if int(c) < len(classNames) {
		return classNames[c]
	}
	return "??"
}

// explicitBreak reports whether c forces a break after the character.
func (c Class) explicitBreak() bool {
	return c == ClassBK || c == ClassLF || c == ClassNL
}
