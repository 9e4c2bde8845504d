package vm_test

import (
	"testing"

	"github.com/agenthands/dendron/pkg/vm"
)

func BenchmarkVMArithmetic(b *testing.B) {
	// := x + 2 * 3 4
	// := x # * x x
	// @ / x _ 3
	prog := vm.Program{
		vm.Push(2),
		vm.Push(3),
		vm.Push(4),
		vm.Op(vm.OP_MUL),
		vm.Op(vm.OP_ADD),
		vm.Store("x"),
		vm.Load("x"),
		vm.Load("x"),
		vm.Op(vm.OP_MUL),
		vm.Op(vm.OP_SQRT),
		vm.Store("x"),
		vm.Load("x"),
		vm.Push(3),
		vm.Op(vm.OP_NEG),
		vm.Op(vm.OP_DIV),
		vm.Op(vm.OP_PRINT),
	}

	m := vm.NewMachine(nil)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := m.Execute(prog); err != nil {
			b.Fatal(err)
		}
	}
}
