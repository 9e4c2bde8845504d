package vm

// Opcode identifies an instruction. The set is closed; the machine's step
// function and the emitter both switch over every value below.
type Opcode uint8

const (
	OP_PUSH  Opcode = 0x01
	OP_LOAD  Opcode = 0x02
	OP_STORE Opcode = 0x03
	OP_ADD   Opcode = 0x10
	OP_SUB   Opcode = 0x11
	OP_MUL   Opcode = 0x12
	OP_DIV   Opcode = 0x13
	OP_NEG   Opcode = 0x14
	OP_SQRT  Opcode = 0x15
	OP_PRINT Opcode = 0x20
)

var opNames = map[Opcode]string{
	OP_PUSH:  "PUSH",
	OP_LOAD:  "LOAD",
	OP_STORE: "STORE",
	OP_ADD:   "ADD",
	OP_SUB:   "SUB",
	OP_MUL:   "MUL",
	OP_DIV:   "DIV",
	OP_NEG:   "NEG",
	OP_SQRT:  "SQRT",
	OP_PRINT: "PRINT",
}

var opByName = func() map[string]Opcode {
	m := make(map[string]Opcode, len(opNames))
	for op, name := range opNames {
		m[name] = op
	}
	return m
}()

func (op Opcode) String() string {
	if name, ok := opNames[op]; ok {
		return name
	}
	return "UNKNOWN"
}

// Valid reports whether op belongs to the instruction set.
func (op Opcode) Valid() bool {
	_, ok := opNames[op]
	return ok
}

// StackEffect returns how many values op pops and pushes.
func (op Opcode) StackEffect() (in, out int) {
	switch op {
	case OP_PUSH, OP_LOAD:
		return 0, 1
	case OP_STORE, OP_PRINT:
		return 1, 0
	case OP_ADD, OP_SUB, OP_MUL, OP_DIV:
		return 2, 1
	case OP_NEG, OP_SQRT:
		return 1, 1
	}
	return 0, 0
}
