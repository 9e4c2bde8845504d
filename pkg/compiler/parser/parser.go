package parser

import (
	"errors"

	"github.com/agenthands/dendron/pkg/compiler/ast"
	"github.com/agenthands/dendron/pkg/compiler/lexer"
	"github.com/agenthands/dendron/pkg/core/diag"
	"github.com/agenthands/dendron/pkg/core/value"
)

// Parser builds parse trees from Dendron statements. It does not know
// which variables are defined; consumers check that against their own
// symbol table.
type Parser struct {
	stmt lexer.Statement
	pos  int
}

func NewParser() *Parser {
	return &Parser{}
}

// Parse builds the tree for every statement, stopping at the first error.
func (p *Parser) Parse(stmts []lexer.Statement) (*ast.Program, error) {
	program := &ast.Program{}
	for _, st := range stmts {
		node, err := p.ParseStatement(st)
		if err != nil {
			return nil, err
		}
		program.Statements = append(program.Statements, node)
	}
	return program, nil
}

// ParseStatement builds the tree for a single statement. Every token must
// be consumed.
func (p *Parser) ParseStatement(st lexer.Statement) (ast.Statement, error) {
	p.stmt = st
	p.pos = 0

	tok, ok := p.next()
	if !ok {
		return nil, st.Errorf(diag.KindArityMismatch, nil, "empty statement")
	}

	var node ast.Statement
	switch tok.Kind {
	case lexer.KindAssign:
		target, ok := p.next()
		if !ok {
			return nil, st.Errorf(diag.KindArityMismatch, nil, "assignment has no target")
		}
		if target.Kind != lexer.KindIdentifier {
			return nil, st.Errorf(diag.KindIllegalValue, &target, "assignment target is not a name")
		}
		expr, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		node = &ast.Assignment{
			Token:  tok,
			Target: &ast.Identifier{Token: target, Name: st.Text(target)},
			Value:  expr,
		}

	case lexer.KindPrint:
		expr, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		node = &ast.Print{Token: tok, Value: expr}

	default:
		return nil, st.Errorf(diag.KindUnknownStatement, &tok, "statement must start with := or @")
	}

	if p.pos < len(st.Tokens) {
		extra := st.Tokens[p.pos]
		return nil, st.Errorf(diag.KindArityMismatch, &extra, "unexpected token after expression")
	}
	return node, nil
}

func (p *Parser) next() (lexer.Token, bool) {
	if p.pos >= len(p.stmt.Tokens) {
		return lexer.Token{}, false
	}
	tok := p.stmt.Tokens[p.pos]
	p.pos++
	return tok, true
}

func (p *Parser) parseExpr() (ast.Expr, error) {
	tok, ok := p.next()
	if !ok {
		return nil, p.stmt.Errorf(diag.KindArityMismatch, nil, "missing operand")
	}

	switch {
	case tok.Kind == lexer.KindNumber:
		n, err := value.Parse(p.stmt.Text(tok))
		if err != nil {
			if errors.Is(err, value.ErrOutOfRange) {
				return nil, p.stmt.Errorf(diag.KindIllegalValue, &tok, "integer out of range")
			}
			return nil, p.stmt.Errorf(diag.KindIllegalValue, &tok, "malformed integer")
		}
		return &ast.NumberLiteral{Token: tok, Value: n}, nil

	case tok.Kind == lexer.KindIdentifier:
		return &ast.Identifier{Token: tok, Name: p.stmt.Text(tok)}, nil

	case tok.Kind.IsUnary():
		operand, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		return &ast.UnaryExpr{Token: tok, Op: tok.Kind, Operand: operand}, nil

	case tok.Kind.IsBinary():
		left, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		right, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		return &ast.BinaryExpr{Token: tok, Op: tok.Kind, Left: left, Right: right}, nil
	}

	return nil, p.stmt.Errorf(diag.KindIllegalValue, &tok, "expected a number, a name or an operator")
}
