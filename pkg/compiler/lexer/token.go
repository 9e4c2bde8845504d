package lexer

// Kind represents the type of token identified by the scanner.
type Kind uint8

const (
	KindEOF Kind = iota
	KindError
	KindIdentifier
	KindNumber
	KindAssign // :=
	KindPrint  // @
	KindNeg    // _
	KindSqrt   // #
	KindAdd    // +
	KindSub    // -
	KindMul    // *
	KindDiv    // /
)

var kindNames = [...]string{
	KindEOF:        "EOF",
	KindError:      "ERROR",
	KindIdentifier: "IDENT",
	KindNumber:     "NUMBER",
	KindAssign:     ":=",
	KindPrint:      "@",
	KindNeg:        "_",
	KindSqrt:       "#",
	KindAdd:        "+",
	KindSub:        "-",
	KindMul:        "*",
	KindDiv:        "/",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "?"
}

// IsUnary reports whether k is an operator taking one operand.
func (k Kind) IsUnary() bool {
	return k == KindNeg || k == KindSqrt
}

// IsBinary reports whether k is an operator taking two operands.
func (k Kind) IsBinary() bool {
	return k >= KindAdd && k <= KindDiv
}

// IsKeyword reports whether k starts a statement.
func (k Kind) IsKeyword() bool {
	return k == KindAssign || k == KindPrint
}

// Token represents a lexical unit pointing back to the source.
type Token struct {
	Kind   Kind
	Offset uint32
	Length uint32
	Line   uint32
}

var operators = map[string]Kind{
	":=": KindAssign,
	"@":  KindPrint,
	"_":  KindNeg,
	"#":  KindSqrt,
	"+":  KindAdd,
	"-":  KindSub,
	"*":  KindMul,
	"/":  KindDiv,
}
