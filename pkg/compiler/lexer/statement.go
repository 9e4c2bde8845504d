package lexer

import (
	"fmt"
	"strings"

	"github.com/agenthands/dendron/pkg/core/diag"
)

// Statement is the flat token list of one source line.
type Statement struct {
	Line   int
	Tokens []Token
	src    []byte
}

// Text returns the source text of tok.
func (s Statement) Text(tok Token) string {
	return string(s.src[tok.Offset : tok.Offset+tok.Length])
}

// String joins the statement's words with single spaces.
func (s Statement) String() string {
	words := make([]string, len(s.Tokens))
	for i, tok := range s.Tokens {
		words[i] = s.Text(tok)
	}
	return strings.Join(words, " ")
}

// Errorf builds a compile error located at tok, or at the end of the
// statement when tok is nil.
func (s Statement) Errorf(kind diag.Kind, tok *Token, format string, args ...any) *diag.Error {
	e := &diag.Error{
		Kind:      kind,
		Msg:       fmt.Sprintf(format, args...),
		Line:      s.Line,
		Statement: s.String(),
		PC:        -1,
	}
	if tok != nil {
		e.Token = s.Text(*tok)
	}
	return e
}

// Split tokenizes a whole program, one statement per non-blank line.
func Split(src []byte) []Statement {
	var (
		stmts []Statement
		cur   Statement
	)
	s := NewScanner(src)
	for {
		tok := s.Next()
		if tok.Kind == KindEOF {
			break
		}
		if len(cur.Tokens) > 0 && int(tok.Line) != cur.Line {
			stmts = append(stmts, cur)
			cur = Statement{}
		}
		if len(cur.Tokens) == 0 {
			cur = Statement{Line: int(tok.Line), src: src}
		}
		cur.Tokens = append(cur.Tokens, tok)
	}
	if len(cur.Tokens) > 0 {
		stmts = append(stmts, cur)
	}
	return stmts
}

// SplitLines tokenizes each element of lines as one statement. Blank
// elements are skipped but still count toward line numbers.
func SplitLines(lines []string) []Statement {
	var stmts []Statement
	for i, line := range lines {
		st := NewStatement(line)
		if len(st.Tokens) == 0 {
			continue
		}
		st.Line = i + 1
		stmts = append(stmts, st)
	}
	return stmts
}

// NewStatement tokenizes a single line.
func NewStatement(line string) Statement {
	src := []byte(line)
	st := Statement{Line: 1, src: src}
	s := NewScanner(src)
	for {
		tok := s.Next()
		if tok.Kind == KindEOF {
			break
		}
		st.Tokens = append(st.Tokens, tok)
	}
	return st
}
