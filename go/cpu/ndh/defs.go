package ndh

// registers
const (
	R0 = iota
	R1
	R2
	R3
	R4
	R5
	R6
	R7
	PC
	BP
	SP
)

const (
	OP_PUSH    = 0x01
	OP_NOP     = 0x02
	OP_POP     = 0x03
	OP_MOV     = 0x04
	OP_ADD     = 0x06
	OP_SUB     = 0x07
	OP_MUL     = 0x08
	OP_DIV     = 0x09
	OP_INC     = 0x0a
	OP_DEC     = 0x0b
	OP_OR      = 0x0c
	OP_AND     = 0x0d
	OP_XOR     = 0x0e
	OP_NOT     = 0x0f
	OP_JZ      = 0x10
	OP_JNZ     = 0x11
	OP_JMPS    = 0x16
	OP_TEST    = 0x17
	OP_CMP     = 0x18
	OP_CALL    = 0x19
	OP_RET     = 0x1a
	OP_JMPL    = 0x1b
	OP_END     = 0x1c
	OP_XCHG    = 0x1d
	OP_JA      = 0x1e
	OP_JB      = 0x1f
	OP_SYSCALL = 0x30
)

// operand encodings, selected by a flag byte for flagged opcodes
type operand int

const (
	oReg operand = iota
	oU8
	oU16
	oInd
)

// operand lists keyed by flag byte
var flagOperands = map[byte][]operand{
	0x00: {oReg, oReg},
	0x01: {oReg, oU8},
	0x02: {oReg, oU16},
	0x03: {oReg},
	0x04: {oU16},
	0x05: {oU8},
	0x06: {oInd},
	0x07: {oInd, oU8},
	0x08: {oInd, oU16},
	0x09: {oInd, oInd},
	0x0a: {oReg, oInd},
}

type opInfo struct {
	name string
	// flagged opcodes read their operand list from the next byte
	flagged  bool
	operands []operand
}

var opTable = map[byte]opInfo{
	OP_PUSH:    {name: "push", flagged: true},
	OP_NOP:     {name: "nop"},
	OP_POP:     {name: "pop", operands: []operand{oReg}},
	OP_MOV:     {name: "mov", flagged: true},
	OP_ADD:     {name: "add", flagged: true},
	OP_SUB:     {name: "sub", flagged: true},
	OP_MUL:     {name: "mul", flagged: true},
	OP_DIV:     {name: "div", flagged: true},
	OP_INC:     {name: "inc", operands: []operand{oReg}},
	OP_DEC:     {name: "dec", operands: []operand{oReg}},
	OP_OR:      {name: "or", flagged: true},
	OP_AND:     {name: "and", flagged: true},
	OP_XOR:     {name: "xor", flagged: true},
	OP_NOT:     {name: "not", operands: []operand{oReg}},
	OP_JZ:      {name: "jz", operands: []operand{oU16}},
	OP_JNZ:     {name: "jnz", operands: []operand{oU16}},
	OP_JMPS:    {name: "jmps", operands: []operand{oU8}},
	OP_TEST:    {name: "test", operands: []operand{oReg, oReg}},
	OP_CMP:     {name: "cmp", flagged: true},
	OP_CALL:    {name: "call", flagged: true},
	OP_RET:     {name: "ret"},
	OP_JMPL:    {name: "jmpl", operands: []operand{oU16}},
	OP_END:     {name: "end"},
	OP_XCHG:    {name: "xchg", operands: []operand{oReg, oReg}},
	OP_JA:      {name: "ja", operands: []operand{oU16}},
	OP_JB:      {name: "jb", operands: []operand{oU16}},
	OP_SYSCALL: {name: "syscall"},
}
