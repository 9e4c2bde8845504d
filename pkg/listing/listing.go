// Package listing renders programs for people: compiled instructions one
// per line, and source statements in infix form.
package listing

import (
	"fmt"
	"strings"

	"github.com/agenthands/dendron/pkg/compiler/ast"
	"github.com/agenthands/dendron/pkg/compiler/lexer"
	"github.com/agenthands/dendron/pkg/compiler/parser"
	"github.com/agenthands/dendron/pkg/core/value"
	"github.com/agenthands/dendron/pkg/vm"
)

// Instructions renders prog one instruction per line.
func Instructions(prog vm.Program) string {
	var b strings.Builder
	for _, in := range prog {
		b.WriteString(in.String())
		b.WriteByte('\n')
	}
	return b.String()
}

// Infix parses stmts and renders each as one infix line. It shares no
// state with the compiler.
func Infix(stmts []lexer.Statement) (string, error) {
	prog, err := parser.NewParser().Parse(stmts)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	for _, st := range prog.Statements {
		b.WriteString(Statement(st))
		b.WriteByte('\n')
	}
	return b.String(), nil
}

// Statement renders one statement: "x := expr" or "PRINT expr".
func Statement(st ast.Statement) string {
	switch n := st.(type) {
	case *ast.Assignment:
		return n.Target.Name + " := " + Expr(n.Value)
	case *ast.Print:
		return "PRINT " + Expr(n.Value)
	}
	return fmt.Sprintf("<%T>", st)
}

// Expr renders e with every binary operation parenthesised.
func Expr(e ast.Expr) string {
	switch n := e.(type) {
	case *ast.NumberLiteral:
		return value.Format(n.Value)
	case *ast.Identifier:
		return n.Name
	case *ast.UnaryExpr:
		if n.Op == lexer.KindSqrt {
			return "sqrt(" + Expr(n.Operand) + ")"
		}
		if bare(n.Operand) {
			return "-" + Expr(n.Operand)
		}
		return "-(" + Expr(n.Operand) + ")"
	case *ast.BinaryExpr:
		return "(" + Expr(n.Left) + " " + n.Op.String() + " " + Expr(n.Right) + ")"
	}
	return fmt.Sprintf("<%T>", e)
}

// bare reports whether a negation can be written directly in front of e.
func bare(e ast.Expr) bool {
	switch n := e.(type) {
	case *ast.Identifier, *ast.BinaryExpr:
		return true
	case *ast.NumberLiteral:
		return n.Value >= 0
	case *ast.UnaryExpr:
		return n.Op == lexer.KindSqrt
	}
	return false
}
