// Package interp evaluates Dendron parse trees directly, without compiling
// them to machine instructions.
package interp

import (
	"fmt"
	"io"

	"github.com/agenthands/dendron/pkg/compiler/ast"
	"github.com/agenthands/dendron/pkg/compiler/lexer"
	"github.com/agenthands/dendron/pkg/compiler/parser"
	"github.com/agenthands/dendron/pkg/core/diag"
	"github.com/agenthands/dendron/pkg/core/value"
	"github.com/agenthands/dendron/pkg/symtab"
)

type Interpreter struct {
	// Out receives one "=== <value>" line per print when non-nil.
	Out io.Writer

	table   *symtab.Table
	printed []int64
}

func New(out io.Writer) *Interpreter {
	return &Interpreter{Out: out}
}

// Run parses and evaluates stmts from an empty table. The table reached so
// far is returned even on error.
func (it *Interpreter) Run(stmts []lexer.Statement) (*symtab.Table, error) {
	it.table = symtab.New()
	it.printed = nil

	p := parser.NewParser()
	for _, st := range stmts {
		node, err := p.ParseStatement(st)
		if err != nil {
			return it.table, err
		}
		if err := it.exec(st, node); err != nil {
			return it.table, err
		}
	}
	return it.table, nil
}

// Printed returns the values printed by the last Run.
func (it *Interpreter) Printed() []int64 {
	return it.printed
}

func (it *Interpreter) exec(st lexer.Statement, node ast.Statement) error {
	switch n := node.(type) {
	case *ast.Assignment:
		v, err := it.eval(st, n.Value)
		if err != nil {
			return err
		}
		it.table.Declare(n.Target.Name, v)
	case *ast.Print:
		v, err := it.eval(st, n.Value)
		if err != nil {
			return err
		}
		it.printed = append(it.printed, v)
		if it.Out != nil {
			if _, err := fmt.Fprintf(it.Out, "=== %d\n", v); err != nil {
				return fmt.Errorf("interp: print: %w", err)
			}
		}
	default:
		return st.Errorf(diag.KindInternal, nil, "unexpected node %T", node)
	}
	return nil
}

func (it *Interpreter) eval(st lexer.Statement, e ast.Expr) (int64, error) {
	switch n := e.(type) {
	case *ast.NumberLiteral:
		return n.Value, nil

	case *ast.Identifier:
		v, ok := it.table.Lookup(n.Name)
		if !ok {
			return 0, st.Errorf(diag.KindUninitialized, &n.Token, "variable read before assignment")
		}
		return v, nil

	case *ast.UnaryExpr:
		a, err := it.eval(st, n.Operand)
		if err != nil {
			return 0, err
		}
		if n.Op == lexer.KindNeg {
			return value.Neg(a), nil
		}
		r, err := value.Sqrt(a)
		if err != nil {
			return 0, st.Errorf(diag.KindNegativeSqrt, &n.Token, "sqrt of %d", a)
		}
		return r, nil

	case *ast.BinaryExpr:
		a, err := it.eval(st, n.Left)
		if err != nil {
			return 0, err
		}
		b, err := it.eval(st, n.Right)
		if err != nil {
			return 0, err
		}
		switch n.Op {
		case lexer.KindAdd:
			return value.Add(a, b), nil
		case lexer.KindSub:
			return value.Sub(a, b), nil
		case lexer.KindMul:
			return value.Mul(a, b), nil
		case lexer.KindDiv:
			q, err := value.Div(a, b)
			if err != nil {
				return 0, st.Errorf(diag.KindDivideByZero, &n.Token, "%d / 0", a)
			}
			return q, nil
		}
	}
	return 0, st.Errorf(diag.KindInternal, nil, "unexpected expression %T", e)
}
