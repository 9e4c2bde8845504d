package listing_test

import (
	"testing"

	"github.com/agenthands/dendron/pkg/compiler/emitter"
	"github.com/agenthands/dendron/pkg/compiler/lexer"
	"github.com/agenthands/dendron/pkg/core/diag"
	"github.com/agenthands/dendron/pkg/listing"
)

var program = []string{
	":= x 5",
	":= y + 2 * 3 4",
	"@ - y x",
	":= z _ # * y y",
	"@ _ -3",
	"@ _ _ x",
	"@ _ + x 1",
	"@ / z -2",
}

func TestInstructions(t *testing.T) {
	prog, err := emitter.Compile(lexer.SplitLines(program[:3]))
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	want := "PUSH 5\nSTORE x\nPUSH 2\nPUSH 3\nPUSH 4\nMUL\nADD\nSTORE y\nLOAD y\nLOAD x\nSUB\nPRINT\n"
	if got := listing.Instructions(prog); got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestInfix(t *testing.T) {
	got, err := listing.Infix(lexer.SplitLines(program))
	if err != nil {
		t.Fatalf("Infix: %v", err)
	}
	want := "x := 5\n" +
		"y := (2 + (3 * 4))\n" +
		"PRINT (y - x)\n" +
		"z := -sqrt((y * y))\n" +
		"PRINT -(-3)\n" +
		"PRINT -(-x)\n" +
		"PRINT -(x + 1)\n" +
		"PRINT (z / -2)\n"
	if got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestRenderingIsIdempotent(t *testing.T) {
	stmts := lexer.SplitLines(program)
	first, err := listing.Infix(stmts)
	if err != nil {
		t.Fatal(err)
	}
	second, err := listing.Infix(stmts)
	if err != nil {
		t.Fatal(err)
	}
	if first != second {
		t.Errorf("infix rendering differs between calls")
	}

	prog, err := emitter.Compile(stmts)
	if err != nil {
		t.Fatal(err)
	}
	if listing.Instructions(prog) != listing.Instructions(prog) {
		t.Errorf("instruction listing differs between calls")
	}
}

func TestInfixReportsParseErrors(t *testing.T) {
	_, err := listing.Infix(lexer.SplitLines([]string{"@ + 1"}))
	if diag.KindOf(err) != diag.KindArityMismatch {
		t.Errorf("expected ARITY_MISMATCH, got %v", err)
	}
}
