package linebreak

// Action is the outcome of a pair-table lookup between two adjacent
// line breaking classes.
type Action uint8

const (
	// Prohibited forbids a break between the pair.
	Prohibited Action = iota
	// Direct permits a break between the pair unconditionally.
	Direct
	// Indirect permits a break only when at least one space separates
	// the pair.
	Indirect
	// CombiningIndirect is Indirect for a combining mark following a
	// space.
	CombiningIndirect
	// CombiningProhibited forbids a break before a combining mark even
	// after a space.
	CombiningProhibited
)

var actionNames = [...]string{"^", "_", "%", "#", "@"}

func (a Action) String() string {
	if int(a) < len(actionNames) {
		return actionNames[a]
	}
	return "?"
}

// PairTable maps an ordered pair of classes to a break action. Both
// classes must be below pairTableClasses; anything else is Prohibited.
type PairTable struct {
	actions [pairTableClasses][pairTableClasses]Action
}

// Action looks up the break action for the class pair (before, after).
func (t *PairTable) Action(before, after Class) Action {
	if int(before) >= pairTableClasses || int(after) >= pairTableClasses {
		return Prohibited
	}
	return t.actions[before][after]
}

// abbreviated action names keep the table readable.
const (
	di = Direct
	in = Indirect
	pr = Prohibited
	ci = CombiningIndirect
	cp = CombiningProhibited
)

// DefaultPairTable returns the standard UAX #14 pair-action matrix.
// Row is the class before the candidate break, column the class after.
func DefaultPairTable() *PairTable {
	return &PairTable{actions: [pairTableClasses][pairTableClasses]Action{
		//        OP  CL  QU  GL  NS  EX  SY  IS  PR  PO  NU  AL  ID  IN  HY  BA  BB  B2  ZW  CM  WJ  H2  H3  JL  JV  JT
		/*OP*/ {pr, pr, pr, pr, pr, pr, pr, pr, pr, pr, pr, pr, pr, pr, pr, pr, pr, pr, pr, cp, pr, pr, pr, pr, pr, pr},
		/*CL*/ {di, pr, in, in, pr, pr, pr, pr, in, in, di, di, di, di, in, in, di, di, pr, ci, pr, di, di, di, di, di},
		/*QU*/ {pr, pr, in, in, in, pr, pr, pr, in, in, in, in, in, in, in, in, in, in, pr, ci, pr, in, in, in, in, in},
		/*GL*/ {in, pr, in, in, in, pr, pr, pr, in, in, in, in, in, in, in, in, in, in, pr, ci, pr, in, in, in, in, in},
		/*NS*/ {di, pr, in, in, in, pr, pr, pr, di, di, di, di, di, di, in, in, di, di, pr, ci, pr, di, di, di, di, di},
		/*EX*/ {di, pr, in, in, in, pr, pr, pr, di, di, di, di, di, di, in, in, di, di, pr, ci, pr, di, di, di, di, di},
		/*SY*/ {di, pr, in, in, in, pr, pr, pr, di, di, in, di, di, di, in, in, di, di, pr, ci, pr, di, di, di, di, di},
		/*IS*/ {di, pr, in, in, in, pr, pr, pr, di, di, in, in, di, di, in, in, di, di, pr, ci, pr, di, di, di, di, di},
		/*PR*/ {in, pr, in, in, in, pr, pr, pr, di, di, in, in, in, di, in, in, di, di, pr, ci, pr, in, in, in, in, in},
		/*PO*/ {in, pr, in, in, in, pr, pr, pr, di, di, in, in, di, di, in, in, di, di, pr, ci, pr, di, di, di, di, di},
		/*NU*/ {in, pr, in, in, in, pr, pr, pr, in, in, in, in, di, in, in, in, di, di, pr, ci, pr, di, di, di, di, di},
		/*AL*/ {in, pr, in, in, in, pr, pr, pr, di, di, in, in, di, in, in, in, di, di, pr, ci, pr, di, di, di, di, di},
		/*ID*/ {di, pr, in, in, in, pr, pr, pr, di, in, di, di, di, in, in, in, di, di, pr, ci, pr, di, di, di, di, di},
		/*IN*/ {di, pr, in, in, in, pr, pr, pr, di, di, di, di, di, in, in, in, di, di, pr, ci, pr, di, di, di, di, di},
		/*HY*/ {di, pr, in, di, in, pr, pr, pr, di, di, in, di, di, di, in, in, di, di, pr, ci, pr, di, di, di, di, di},
		/*BA*/ {di, pr, in, di, in, pr, pr, pr, di, di, di, di, di, di, in, in, di, di, pr, ci, pr, di, di, di, di, di},
		/*BB*/ {in, pr, in, in, in, pr, pr, pr, in, in, in, in, in, in, in, in, in, in, pr, ci, pr, in, in, in, in, in},
		/*B2*/ {di, pr, in, in, in, pr, pr, pr, di, di, di, di, di, di, in, in, di, pr, pr, ci, pr, di, di, di, di, di},
		/*ZW*/ {di, di, di, di, di, di, di, di, di, di, di, di, di, di, di, di, di, di, pr, di, di, di, di, di, di, di},
		/*CM*/ {in, pr, in, in, in, pr, pr, pr, di, di, in, in, di, in, in, in, di, di, pr, ci, pr, di, di, di, di, di},
		/*WJ*/ {in, pr, in, in, in, pr, pr, pr, in, in, in, in, in, in, in, in, in, in, pr, ci, pr, in, in, in, in, in},
		/*H2*/ {di, pr, in, in, in, pr, pr, pr, di, in, di, di, di, in, in, in, di, di, pr, ci, pr, di, di, di, in, in},
		/*H3*/ {di, pr, in, in, in, pr, pr, pr, di, in, di, di, di, in, in, in, di, di, pr, ci, pr, di, di, di, di, in},
		/*JL*/ {di, pr, in, in, in, pr, pr, pr, di, in, di, di, di, in, in, in, di, di, pr, ci, pr, in, in, in, in, di},
		/*JV*/ {di, pr, in, in, in, pr, pr, pr, di, in, di, di, di, in, in, in, di, di, pr, ci, pr, di, di, di, in, in},
		/*JT*/ {di, pr, in, in, in, pr, pr, pr, di, in, di, di, di, in, in, in, di, di, pr, ci, pr, di, di, di, di, in},
	}}
}
