package diag

import (
	"errors"
	"fmt"
	"strings"
)

// Kind classifies a compile-time or run-time failure.
type Kind uint8

const (
	KindNone Kind = iota

	// Compile-time
	KindUninitialized
	KindIllegalValue
	KindUnknownStatement
	KindArityMismatch

	// Run-time
	KindStackUnderflow
	KindUndefinedVariable
	KindDivideByZero
	KindNegativeSqrt

	KindInternal
)

var kindNames = [...]string{
	KindNone:              "NONE",
	KindUninitialized:     "UNINITIALIZED",
	KindIllegalValue:      "ILLEGAL_VALUE",
	KindUnknownStatement:  "UNKNOWN_STATEMENT",
	KindArityMismatch:     "ARITY_MISMATCH",
	KindStackUnderflow:    "STACK_UNDERFLOW",
	KindUndefinedVariable: "UNDEFINED_VARIABLE",
	KindDivideByZero:      "DIVIDE_BY_ZERO",
	KindNegativeSqrt:      "NEGATIVE_SQRT",
	KindInternal:          "INTERNAL",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// Runtime reports whether the kind is raised by execution rather than compilation.
func (k Kind) Runtime() bool {
	return k >= KindStackUnderflow && k <= KindNegativeSqrt
}

// Sentinels, one per kind. errors.Is(err, ErrDivideByZero) matches any
// *Error of that kind.
var (
	ErrUninitialized     = &Error{Kind: KindUninitialized}
	ErrIllegalValue      = &Error{Kind: KindIllegalValue}
	ErrUnknownStatement  = &Error{Kind: KindUnknownStatement}
	ErrArityMismatch     = &Error{Kind: KindArityMismatch}
	ErrStackUnderflow    = &Error{Kind: KindStackUnderflow}
	ErrUndefinedVariable = &Error{Kind: KindUndefinedVariable}
	ErrDivideByZero      = &Error{Kind: KindDivideByZero}
	ErrNegativeSqrt      = &Error{Kind: KindNegativeSqrt}
)

// Error carries the kind of a failure and whatever context the raising
// component had: the source line and statement for compile errors, the
// program counter and opcode for run-time errors.
type Error struct {
	Kind      Kind
	Msg       string
	Line      int    // 1-based source line, 0 if unknown
	Statement string // statement text
	Token     string // offending token
	PC        int    // instruction index, -1 if not executing
	Op        string // instruction text
	Depth     int    // stack depth at the fault
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Kind.String())
	if e.Msg != "" {
		b.WriteString(": ")
		b.WriteString(e.Msg)
	}
	if e.Token != "" {
		fmt.Fprintf(&b, " (token %q)", e.Token)
	}
	if e.Line > 0 {
		fmt.Fprintf(&b, " at line %d", e.Line)
	}
	if e.Statement != "" {
		fmt.Fprintf(&b, ": %s", e.Statement)
	}
	if e.Op != "" {
		fmt.Fprintf(&b, " [pc %d: %s, stack depth %d]", e.PC, e.Op, e.Depth)
	}
	return b.String()
}

// Is matches on Kind so the package sentinels work with errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// New creates an error of the given kind.
func New(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...), PC: -1}
}

// KindOf returns the Kind of the first *Error in err's chain, or KindNone.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindNone
}
