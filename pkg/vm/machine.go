package vm

import (
	"errors"
	"fmt"
	"io"

	"github.com/agenthands/dendron/pkg/core/diag"
	"github.com/agenthands/dendron/pkg/core/value"
	"github.com/agenthands/dendron/pkg/symtab"
)

// ErrStackUnderflow is returned by Pop on an empty stack.
var ErrStackUnderflow = diag.ErrStackUnderflow

// Result is what a run leaves behind. It is filled in even when the run
// halts on an error.
type Result struct {
	Depth   int
	Table   *symtab.Table
	Printed []int64
}

// Machine is the execution state for one program: an operand stack and a
// variable table. A Machine must not be shared between goroutines.
type Machine struct {
	// Out receives one "*** <value>" line per PRINT when non-nil.
	Out io.Writer

	stack   []int64
	table   *symtab.Table
	printed []int64
}

func NewMachine(out io.Writer) *Machine {
	return &Machine{Out: out, table: symtab.New()}
}

// Reset clears the stack, the table and the print log.
func (m *Machine) Reset() {
	m.stack = m.stack[:0]
	if m.table == nil {
		m.table = symtab.New()
	} else {
		m.table.Reset()
	}
	m.printed = nil
}

// Push adds a value to the stack.
func (m *Machine) Push(v int64) {
	m.stack = append(m.stack, v)
}

// Pop removes and returns the top value from the stack.
func (m *Machine) Pop() (int64, error) {
	n := len(m.stack)
	if n == 0 {
		return 0, ErrStackUnderflow
	}
	v := m.stack[n-1]
	m.stack = m.stack[:n-1]
	return v, nil
}

// Depth is the current number of values on the stack.
func (m *Machine) Depth() int {
	return len(m.stack)
}

// Table is the run-time variable table.
func (m *Machine) Table() *symtab.Table {
	if m.table == nil {
		m.table = symtab.New()
	}
	return m.table
}

// Printed returns the values emitted by PRINT since the last Reset.
func (m *Machine) Printed() []int64 {
	return m.printed
}

// Execute runs prog from a fresh state.
func (m *Machine) Execute(prog Program) (Result, error) {
	m.Reset()
	err := m.Run(prog)
	return m.result(), err
}

func (m *Machine) result() Result {
	return Result{
		Depth:   len(m.stack),
		Table:   m.Table().Clone(),
		Printed: append([]int64(nil), m.printed...),
	}
}

// Run executes instrs against the current state without resetting it.
// It stops at the first failing instruction.
func (m *Machine) Run(instrs []Instruction) error {
	table := m.Table()
	for pc, in := range instrs {
		if err := m.step(pc, in, table); err != nil {
			return err
		}
	}
	return nil
}

func (m *Machine) step(pc int, in Instruction, table *symtab.Table) error {
	need, _ := in.Op.StackEffect()
	if len(m.stack) < need {
		return m.fault(pc, in, diag.KindStackUnderflow, "needs %d operand(s), stack has %d", need, len(m.stack))
	}

	sp := len(m.stack)
	switch in.Op {
	case OP_PUSH:
		m.stack = append(m.stack, in.Const)

	case OP_LOAD:
		v, ok := table.Lookup(in.Name)
		if !ok {
			return m.fault(pc, in, diag.KindUndefinedVariable, "variable %s has no value", in.Name)
		}
		m.stack = append(m.stack, v)

	case OP_STORE:
		table.Declare(in.Name, m.stack[sp-1])
		m.stack = m.stack[:sp-1]

	case OP_ADD:
		m.stack[sp-2] = value.Add(m.stack[sp-2], m.stack[sp-1])
		m.stack = m.stack[:sp-1]

	case OP_SUB:
		m.stack[sp-2] = value.Sub(m.stack[sp-2], m.stack[sp-1])
		m.stack = m.stack[:sp-1]

	case OP_MUL:
		m.stack[sp-2] = value.Mul(m.stack[sp-2], m.stack[sp-1])
		m.stack = m.stack[:sp-1]

	case OP_DIV:
		q, err := value.Div(m.stack[sp-2], m.stack[sp-1])
		if errors.Is(err, value.ErrDivideByZero) {
			return m.fault(pc, in, diag.KindDivideByZero, "%d / 0", m.stack[sp-2])
		}
		m.stack[sp-2] = q
		m.stack = m.stack[:sp-1]

	case OP_NEG:
		m.stack[sp-1] = value.Neg(m.stack[sp-1])

	case OP_SQRT:
		r, err := value.Sqrt(m.stack[sp-1])
		if errors.Is(err, value.ErrNegativeSqrt) {
			return m.fault(pc, in, diag.KindNegativeSqrt, "sqrt of %d", m.stack[sp-1])
		}
		m.stack[sp-1] = r

	case OP_PRINT:
		v := m.stack[sp-1]
		m.stack = m.stack[:sp-1]
		m.printed = append(m.printed, v)
		if m.Out != nil {
			if _, err := fmt.Fprintf(m.Out, "*** %d\n", v); err != nil {
				return fmt.Errorf("vm: print: %w", err)
			}
		}

	default:
		return m.fault(pc, in, diag.KindInternal, "unknown opcode 0x%02x", uint8(in.Op))
	}
	return nil
}

func (m *Machine) fault(pc int, in Instruction, kind diag.Kind, format string, args ...any) error {
	e := diag.New(kind, format, args...)
	e.PC = pc
	e.Op = in.String()
	e.Depth = len(m.stack)
	return e
}
