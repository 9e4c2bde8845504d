package interp_test

import (
	"bytes"
	"reflect"
	"testing"

	"github.com/agenthands/dendron/pkg/compiler/emitter"
	"github.com/agenthands/dendron/pkg/compiler/lexer"
	"github.com/agenthands/dendron/pkg/core/diag"
	"github.com/agenthands/dendron/pkg/interp"
	"github.com/agenthands/dendron/pkg/vm"
)

func TestInterpreterOutput(t *testing.T) {
	var out bytes.Buffer
	it := interp.New(&out)
	table, err := it.Run(lexer.SplitLines([]string{
		":= x 5",
		"@ x",
		"@ - 3 10",
		"@ # 16",
	}))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if out.String() != "=== 5\n=== -7\n=== 4\n" {
		t.Errorf("output %q", out.String())
	}
	if table.String() != "{x=5}" {
		t.Errorf("table %s", table)
	}
}

func TestInterpreterErrors(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
		kind  diag.Kind
	}{
		{"Uninitialized", []string{"@ x"}, diag.KindUninitialized},
		{"Divide By Zero", []string{"@ / 10 0"}, diag.KindDivideByZero},
		{"Negative Sqrt", []string{"@ # -4"}, diag.KindNegativeSqrt},
		{"Parse Error", []string{"@ + 1"}, diag.KindArityMismatch},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			_, err := interp.New(&out).Run(lexer.SplitLines(tt.lines))
			if got := diag.KindOf(err); got != tt.kind {
				t.Errorf("kind = %v, want %v (%v)", got, tt.kind, err)
			}
			if out.Len() != 0 {
				t.Errorf("failed statement printed %q", out.String())
			}
		})
	}
}

// The tree interpreter and the compiled program must agree.
func TestInterpreterMatchesMachine(t *testing.T) {
	programs := [][]string{
		{":= x 5", "@ x"},
		{"@ + 3 4", "@ - 10 3", "@ - 3 10"},
		{":= y + 2 * 3 4", "@ y"},
		{":= x 1", ":= x + x 1", "@ x"},
		{":= a -9", ":= b _ a", "@ # b", "@ / a 2", "@ * a _ b"},
		{":= n 1000000", ":= n * n n", "@ # n", "@ / n -7"},
	}

	for _, lines := range programs {
		stmts := lexer.SplitLines(lines)

		it := interp.New(nil)
		table, err := it.Run(stmts)
		if err != nil {
			t.Fatalf("%v: interpret: %v", lines, err)
		}

		prog, err := emitter.Compile(stmts)
		if err != nil {
			t.Fatalf("%v: compile: %v", lines, err)
		}
		res, err := vm.NewMachine(nil).Execute(prog)
		if err != nil {
			t.Fatalf("%v: execute: %v", lines, err)
		}

		if !reflect.DeepEqual(it.Printed(), res.Printed) {
			t.Errorf("%v: interpreter printed %v, machine printed %v", lines, it.Printed(), res.Printed)
		}
		if table.String() != res.Table.String() {
			t.Errorf("%v: tables differ: %s vs %s", lines, table, res.Table)
		}
	}
}
