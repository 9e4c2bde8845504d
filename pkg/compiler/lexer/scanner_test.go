package lexer_test

import (
	"testing"

	"github.com/agenthands/dendron/pkg/compiler/lexer"
)

func TestScannerZeroAlloc(t *testing.T) {
	src := []byte(":= y + 2 * 3 -4 ; y is fourteen minus eight")
	s := lexer.NewScanner(src)

	allocs := testing.AllocsPerRun(10, func() {
		s.Reset(src)
		for {
			tok := s.Next()
			if tok.Kind == lexer.KindEOF {
				break
			}
		}
	})

	if allocs > 0 {
		t.Errorf("expected 0 allocations, got %f", allocs)
	}
}

func TestScannerKinds(t *testing.T) {
	src := []byte(":= x1 @ _ # + - * / 42 -7 total_2 $ 4a - 3")
	s := lexer.NewScanner(src)

	expected := []lexer.Kind{
		lexer.KindAssign,
		lexer.KindIdentifier,
		lexer.KindPrint,
		lexer.KindNeg,
		lexer.KindSqrt,
		lexer.KindAdd,
		lexer.KindSub,
		lexer.KindMul,
		lexer.KindDiv,
		lexer.KindNumber,
		lexer.KindNumber,
		lexer.KindIdentifier,
		lexer.KindError,
		lexer.KindError,
		lexer.KindSub,
		lexer.KindNumber,
		lexer.KindEOF,
	}

	for i, exp := range expected {
		tok := s.Next()
		if tok.Kind != exp {
			t.Errorf("token %d: expected kind %v, got %v", i, exp, tok.Kind)
		}
	}
}

func TestSplit(t *testing.T) {
	src := []byte(":= x 5\n\n; comment line\n@ + x   1\n:= y _ x ; trailing\n")
	stmts := lexer.Split(src)

	want := []struct {
		line int
		text string
	}{
		{1, ":= x 5"},
		{4, "@ + x 1"},
		{5, ":= y _ x"},
	}
	if len(stmts) != len(want) {
		t.Fatalf("expected %d statements, got %d", len(want), len(stmts))
	}
	for i, w := range want {
		if stmts[i].Line != w.line {
			t.Errorf("stmt %d: line %d, want %d", i, stmts[i].Line, w.line)
		}
		if got := stmts[i].String(); got != w.text {
			t.Errorf("stmt %d: %q, want %q", i, got, w.text)
		}
	}
}

func TestSplitLines(t *testing.T) {
	stmts := lexer.SplitLines([]string{":= x 1", "   ", "@ x"})
	if len(stmts) != 2 {
		t.Fatalf("expected 2 statements, got %d", len(stmts))
	}
	if stmts[1].Line != 3 {
		t.Errorf("expected second statement on line 3, got %d", stmts[1].Line)
	}
	if got := stmts[1].Text(stmts[1].Tokens[1]); got != "x" {
		t.Errorf("Text = %q", got)
	}
}
