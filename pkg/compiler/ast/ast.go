package ast

import "github.com/agenthands/dendron/pkg/compiler/lexer"

// Node represents any node in the parse tree.
type Node interface {
	Pos() lexer.Token
}

// Expr represents an expression that yields a value.
type Expr interface {
	Node
	exprNode()
}

// Statement represents one Dendron statement.
type Statement interface {
	Node
	stmtNode()
}

// Program is the root node.
type Program struct {
	Statements []Statement
}

// Assignment: := NAME EXPR
type Assignment struct {
	Token  lexer.Token
	Target *Identifier
	Value  Expr
}

func (a *Assignment) Pos() lexer.Token { return a.Token }
func (a *Assignment) stmtNode()        {}

// Print: @ EXPR
type Print struct {
	Token lexer.Token
	Value Expr
}

func (p *Print) Pos() lexer.Token { return p.Token }
func (p *Print) stmtNode()        {}

type NumberLiteral struct {
	Token lexer.Token
	Value int64
}

func (n *NumberLiteral) Pos() lexer.Token { return n.Token }
func (n *NumberLiteral) exprNode()        {}

type Identifier struct {
	Token lexer.Token
	Name  string
}

func (i *Identifier) Pos() lexer.Token { return i.Token }
func (i *Identifier) exprNode()        {}

// UnaryExpr: _ EXPR or # EXPR
type UnaryExpr struct {
	Token   lexer.Token
	Op      lexer.Kind
	Operand Expr
}

func (u *UnaryExpr) Pos() lexer.Token { return u.Token }
func (u *UnaryExpr) exprNode()        {}

// BinaryExpr: OP LEFT RIGHT, with LEFT evaluated first.
type BinaryExpr struct {
	Token lexer.Token
	Op    lexer.Kind
	Left  Expr
	Right Expr
}

func (b *BinaryExpr) Pos() lexer.Token { return b.Token }
func (b *BinaryExpr) exprNode()        {}

// Walk calls fn for e and each sub-expression in source order.
func Walk(e Expr, fn func(Expr)) {
	fn(e)
	switch n := e.(type) {
	case *UnaryExpr:
		Walk(n.Operand, fn)
	case *BinaryExpr:
		Walk(n.Left, fn)
		Walk(n.Right, fn)
	}
}
