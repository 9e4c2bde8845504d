package emitter

import (
	"errors"

	"github.com/agenthands/dendron/pkg/compiler/lexer"
	"github.com/agenthands/dendron/pkg/core/diag"
	"github.com/agenthands/dendron/pkg/core/value"
	"github.com/agenthands/dendron/pkg/symtab"
	"github.com/agenthands/dendron/pkg/vm"
)

var binaryOps = map[lexer.Kind]vm.Opcode{
	lexer.KindAdd: vm.OP_ADD,
	lexer.KindSub: vm.OP_SUB,
	lexer.KindMul: vm.OP_MUL,
	lexer.KindDiv: vm.OP_DIV,
}

var unaryOps = map[lexer.Kind]vm.Opcode{
	lexer.KindNeg:  vm.OP_NEG,
	lexer.KindSqrt: vm.OP_SQRT,
}

// Emitter compiles Dendron statements straight into machine instructions
// by recursive descent over each statement's tokens. It keeps a
// compile-time symbol table of the names assigned so far.
type Emitter struct {
	program  vm.Program
	symbols  *symtab.Table
	unfolded map[string]bool // names whose last value faults at run time

	// per-statement state
	stmt lexer.Statement
	pos  int
	buf  []vm.Instruction
}

func NewEmitter() *Emitter {
	return &Emitter{
		symbols:  symtab.New(),
		unfolded: make(map[string]bool),
	}
}

// Compile builds one program from stmts. Nothing is returned on error.
func Compile(stmts []lexer.Statement) (vm.Program, error) {
	e := NewEmitter()
	if err := e.EmitAll(stmts); err != nil {
		return nil, err
	}
	return e.Program(), nil
}

// EmitAll compiles stmts in order, stopping at the first error.
func (e *Emitter) EmitAll(stmts []lexer.Statement) error {
	for _, st := range stmts {
		if _, err := e.Emit(st); err != nil {
			return err
		}
	}
	return nil
}

// Emit compiles one statement and appends its instructions to the
// program. It returns just the instructions added. On error the program
// and symbol table are left untouched.
func (e *Emitter) Emit(st lexer.Statement) ([]vm.Instruction, error) {
	e.stmt = st
	e.pos = 0
	e.buf = e.buf[:0]

	tok, ok := e.next()
	if !ok {
		return nil, st.Errorf(diag.KindArityMismatch, nil, "empty statement")
	}

	var (
		target    string
		assigning bool
	)
	switch tok.Kind {
	case lexer.KindAssign:
		nameTok, ok := e.next()
		if !ok {
			return nil, st.Errorf(diag.KindArityMismatch, nil, "assignment has no target")
		}
		if nameTok.Kind != lexer.KindIdentifier {
			return nil, st.Errorf(diag.KindIllegalValue, &nameTok, "assignment target is not a name")
		}
		target = st.Text(nameTok)
		assigning = true
	case lexer.KindPrint:
	default:
		return nil, st.Errorf(diag.KindUnknownStatement, &tok, "statement must start with := or @")
	}

	v, known, err := e.emitExpr()
	if err != nil {
		return nil, err
	}
	if e.pos < len(st.Tokens) {
		extra := st.Tokens[e.pos]
		return nil, st.Errorf(diag.KindArityMismatch, &extra, "unexpected token after expression")
	}

	if assigning {
		e.buf = append(e.buf, vm.Store(target))
	} else {
		e.buf = append(e.buf, vm.Op(vm.OP_PRINT))
	}

	// Commit.
	start := len(e.program)
	e.program = append(e.program, e.buf...)
	if assigning {
		e.symbols.Declare(target, v)
		if known {
			delete(e.unfolded, target)
		} else {
			e.unfolded[target] = true
		}
	}
	return e.program[start:len(e.program):len(e.program)], nil
}

func (e *Emitter) next() (lexer.Token, bool) {
	if e.pos >= len(e.stmt.Tokens) {
		return lexer.Token{}, false
	}
	tok := e.stmt.Tokens[e.pos]
	e.pos++
	return tok, true
}

// emitExpr compiles one prefix expression and returns its folded value.
// known is false when evaluating it would fault at run time; the
// instructions are emitted either way.
func (e *Emitter) emitExpr() (v int64, known bool, err error) {
	tok, ok := e.next()
	if !ok {
		return 0, false, e.stmt.Errorf(diag.KindArityMismatch, nil, "missing operand")
	}

	switch {
	case tok.Kind == lexer.KindNumber:
		n, err := value.Parse(e.stmt.Text(tok))
		if err != nil {
			return 0, false, e.stmt.Errorf(diag.KindIllegalValue, &tok, "bad integer: %v", err)
		}
		e.buf = append(e.buf, vm.Push(n))
		return n, true, nil

	case tok.Kind == lexer.KindIdentifier:
		name := e.stmt.Text(tok)
		n, ok := e.symbols.Lookup(name)
		if !ok {
			return 0, false, e.stmt.Errorf(diag.KindUninitialized, &tok, "variable read before assignment")
		}
		e.buf = append(e.buf, vm.Load(name))
		return n, !e.unfolded[name], nil

	case tok.Kind.IsUnary():
		a, aKnown, err := e.emitExpr()
		if err != nil {
			return 0, false, err
		}
		op := unaryOps[tok.Kind]
		e.buf = append(e.buf, vm.Op(op))
		if !aKnown {
			return 0, false, nil
		}
		if op == vm.OP_NEG {
			return value.Neg(a), true, nil
		}
		r, err := value.Sqrt(a)
		return r, err == nil, nil

	case tok.Kind.IsBinary():
		a, aKnown, err := e.emitExpr()
		if err != nil {
			return 0, false, err
		}
		b, bKnown, err := e.emitExpr()
		if err != nil {
			return 0, false, err
		}
		op := binaryOps[tok.Kind]
		e.buf = append(e.buf, vm.Op(op))
		if !aKnown || !bKnown {
			return 0, false, nil
		}
		return fold(op, a, b)
	}

	return 0, false, e.stmt.Errorf(diag.KindIllegalValue, &tok, "expected a number, a name or an operator")
}

func fold(op vm.Opcode, a, b int64) (int64, bool, error) {
	switch op {
	case vm.OP_ADD:
		return value.Add(a, b), true, nil
	case vm.OP_SUB:
		return value.Sub(a, b), true, nil
	case vm.OP_MUL:
		return value.Mul(a, b), true, nil
	case vm.OP_DIV:
		q, err := value.Div(a, b)
		if errors.Is(err, value.ErrDivideByZero) {
			return 0, false, nil
		}
		return q, true, nil
	}
	return 0, false, nil
}

// Program returns the instructions emitted so far.
func (e *Emitter) Program() vm.Program {
	return e.program
}

// Symbols returns the compile-time symbol table.
func (e *Emitter) Symbols() *symtab.Table {
	return e.symbols
}

// Constant returns the value name is known to hold after the statements
// compiled so far. ok is false for unassigned names and for names whose
// value faults at run time.
func (e *Emitter) Constant(name string) (int64, bool) {
	v, ok := e.symbols.Lookup(name)
	if !ok || e.unfolded[name] {
		return 0, false
	}
	return v, true
}
