package vm

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/agenthands/dendron/pkg/core/value"
)

// Instruction is one opcode plus its immediate operand. Const is used by
// PUSH, Name by LOAD and STORE; the other opcodes carry nothing.
type Instruction struct {
	Op    Opcode
	Const int64
	Name  string
}

func Push(c int64) Instruction      { return Instruction{Op: OP_PUSH, Const: c} }
func Load(name string) Instruction  { return Instruction{Op: OP_LOAD, Name: name} }
func Store(name string) Instruction { return Instruction{Op: OP_STORE, Name: name} }
func Op(op Opcode) Instruction      { return Instruction{Op: op} }

// String renders the listing form: "OPCODE" or "OPCODE operand".
func (in Instruction) String() string {
	switch in.Op {
	case OP_PUSH:
		return "PUSH " + value.Format(in.Const)
	case OP_LOAD, OP_STORE:
		return in.Op.String() + " " + in.Name
	}
	return in.Op.String()
}

// Program is the compiled output: instructions in execution order.
type Program []Instruction

// ParseInstruction reads one line of listing text back into an Instruction.
func ParseInstruction(line string) (Instruction, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return Instruction{}, fmt.Errorf("vm: empty instruction")
	}
	op, ok := opByName[fields[0]]
	if !ok {
		return Instruction{}, fmt.Errorf("vm: unknown opcode %q", fields[0])
	}

	wantArgs := 0
	if op == OP_PUSH || op == OP_LOAD || op == OP_STORE {
		wantArgs = 1
	}
	if len(fields)-1 != wantArgs {
		return Instruction{}, fmt.Errorf("vm: %s takes %d operand(s), got %d", op, wantArgs, len(fields)-1)
	}

	switch op {
	case OP_PUSH:
		c, err := value.Parse(fields[1])
		if err != nil {
			return Instruction{}, fmt.Errorf("vm: bad PUSH operand %q: %w", fields[1], err)
		}
		return Push(c), nil
	case OP_LOAD:
		return Load(fields[1]), nil
	case OP_STORE:
		return Store(fields[1]), nil
	}
	return Op(op), nil
}

// ParseProgram reads a listing, one instruction per line. Blank lines and
// lines starting with ';' are skipped.
func ParseProgram(text string) (Program, error) {
	var prog Program
	sc := bufio.NewScanner(strings.NewReader(text))
	line := 0
	for sc.Scan() {
		line++
		s := strings.TrimSpace(sc.Text())
		if s == "" || strings.HasPrefix(s, ";") {
			continue
		}
		in, err := ParseInstruction(s)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		prog = append(prog, in)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return prog, nil
}
