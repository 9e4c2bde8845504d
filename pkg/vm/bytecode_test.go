package vm_test

import (
	"reflect"
	"strings"
	"testing"

	"github.com/agenthands/dendron/pkg/vm"
)

func TestInstructionString(t *testing.T) {
	tests := []struct {
		in   vm.Instruction
		want string
	}{
		{vm.Push(3), "PUSH 3"},
		{vm.Push(-4), "PUSH -4"},
		{vm.Load("x"), "LOAD x"},
		{vm.Store("total"), "STORE total"},
		{vm.Op(vm.OP_ADD), "ADD"},
		{vm.Op(vm.OP_SUB), "SUB"},
		{vm.Op(vm.OP_MUL), "MUL"},
		{vm.Op(vm.OP_DIV), "DIV"},
		{vm.Op(vm.OP_NEG), "NEG"},
		{vm.Op(vm.OP_SQRT), "SQRT"},
		{vm.Op(vm.OP_PRINT), "PRINT"},
	}
	for _, tt := range tests {
		if got := tt.in.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestParseProgramReadsListing(t *testing.T) {
	prog := vm.Program{
		vm.Push(2),
		vm.Push(3),
		vm.Push(4),
		vm.Op(vm.OP_MUL),
		vm.Op(vm.OP_ADD),
		vm.Store("y"),
		vm.Load("y"),
		vm.Op(vm.OP_PRINT),
	}

	var lines []string
	for _, in := range prog {
		lines = append(lines, in.String())
	}
	text := "; y := (2 + (3 * 4))\n" + strings.Join(lines, "\n") + "\n\n"

	got, err := vm.ParseProgram(text)
	if err != nil {
		t.Fatalf("ParseProgram: %v", err)
	}
	if !reflect.DeepEqual(got, prog) {
		t.Errorf("got %v, want %v", got, prog)
	}
}

func TestParseInstructionErrors(t *testing.T) {
	bad := []string{
		"",
		"JUMP 3",
		"PUSH",
		"PUSH x",
		"ADD 1",
		"LOAD",
		"STORE a b",
	}
	for _, line := range bad {
		if _, err := vm.ParseInstruction(line); err == nil {
			t.Errorf("ParseInstruction(%q) expected error", line)
		}
	}
	if _, err := vm.ParseProgram("PUSH 1\nBOGUS\n"); err == nil || !strings.Contains(err.Error(), "line 2") {
		t.Errorf("expected error naming line 2, got %v", err)
	}
}

func TestOpcodeTable(t *testing.T) {
	ops := []vm.Opcode{
		vm.OP_PUSH, vm.OP_LOAD, vm.OP_STORE,
		vm.OP_ADD, vm.OP_SUB, vm.OP_MUL, vm.OP_DIV,
		vm.OP_NEG, vm.OP_SQRT, vm.OP_PRINT,
	}
	for _, op := range ops {
		if !op.Valid() {
			t.Errorf("%v should be valid", op)
		}
	}
	if vm.Opcode(0).Valid() || vm.Opcode(0).String() != "UNKNOWN" {
		t.Errorf("opcode 0 must not be part of the set")
	}
}
