package bpf

// classic BPF instruction fields, see linux/filter.h
const (
	CLASS_LD   = 0x00
	CLASS_LDX  = 0x01
	CLASS_ST   = 0x02
	CLASS_STX  = 0x03
	CLASS_ALU  = 0x04
	CLASS_JMP  = 0x05
	CLASS_RET  = 0x06
	CLASS_MISC = 0x07

	SIZE_W = 0x00
	SIZE_H = 0x08
	SIZE_B = 0x10

	MODE_IMM = 0x00
	MODE_ABS = 0x20
	MODE_IND = 0x40
	MODE_MEM = 0x60
	MODE_LEN = 0x80
	MODE_MSH = 0xa0

	SRC_K = 0x00
	SRC_X = 0x08
	// RET only
	SRC_A = 0x10

	MISC_TAX = 0x00
	MISC_TXA = 0x80

	JMP_JA   = 0x00
	JMP_JEQ  = 0x10
	JMP_JGT  = 0x20
	JMP_JGE  = 0x30
	JMP_JSET = 0x40
)

func class(code uint16) uint16 { return code & 0x07 }
func size(code uint16) uint16  { return code & 0x18 }
func mode(code uint16) uint16  { return code & 0xe0 }
func op(code uint16) uint16    { return code & 0xf0 }
func src(code uint16) uint16   { return code & 0x08 }

var sizeSuffix = map[uint16]string{SIZE_W: "", SIZE_H: "h", SIZE_B: "b"}

var aluNames = map[uint16]string{
	0x00: "add",
	0x10: "sub",
	0x20: "mul",
	0x30: "div",
	0x40: "or",
	0x50: "and",
	0x60: "lsh",
	0x70: "rsh",
	0x80: "neg",
	0x90: "mod",
	0xa0: "xor",
}

var jmpNames = map[uint16]string{
	JMP_JA:   "jmp",
	JMP_JEQ:  "jeq",
	JMP_JGT:  "jgt",
	JMP_JGE:  "jge",
	JMP_JSET: "jset",
}
