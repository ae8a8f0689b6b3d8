package bpf

import (
	"encoding/binary"
	"fmt"

	"github.com/pkg/errors"

	"github.com/lunixbochs/bgo/go/models"
)

// InsSize is the fixed width of a classic BPF instruction.
const InsSize = 8

var ErrBadOpcode = errors.New("invalid bpf opcode")

func decode(p []byte, addr uint64) (models.Instruction, error) {
	code := binary.LittleEndian.Uint16(p)
	jt, jf := p[2], p[3]
	k := binary.LittleEndian.Uint32(p[4:])
	ins := models.Instruction{Address: addr, Raw: append([]byte(nil), p[:InsSize]...)}

	bad := func() (models.Instruction, error) {
		return ins, errors.Wrapf(ErrBadOpcode, "%#04x at %#x", code, addr)
	}
	operand := func() string {
		if src(code) == SRC_X {
			return "x"
		}
		return fmt.Sprintf("#%#x", k)
	}
	switch class(code) {
	case CLASS_LD, CLASS_LDX:
		name := "ld"
		if class(code) == CLASS_LDX {
			name = "ldx"
		}
		suffix, ok := sizeSuffix[size(code)]
		if !ok {
			return bad()
		}
		switch mode(code) {
		case MODE_IMM:
			ins.Mnem, ins.Ops = name+"i", fmt.Sprintf("#%#x", k)
		case MODE_ABS:
			ins.Mnem, ins.Ops = name+suffix, fmt.Sprintf("[%d]", k)
		case MODE_IND:
			ins.Mnem, ins.Ops = name+suffix, fmt.Sprintf("[x + %d]", k)
		case MODE_MEM:
			ins.Mnem, ins.Ops = name, fmt.Sprintf("M[%d]", k)
		case MODE_LEN:
			ins.Mnem, ins.Ops = name, "#len"
		case MODE_MSH:
			if class(code) != CLASS_LDX {
				return bad()
			}
			ins.Mnem, ins.Ops = "ldxb", fmt.Sprintf("4*([%d]&0xf)", k)
		default:
			return bad()
		}
		if class(code) == CLASS_LDX && (mode(code) == MODE_ABS || mode(code) == MODE_IND) {
			return bad()
		}
	case CLASS_ST:
		ins.Mnem, ins.Ops = "st", fmt.Sprintf("M[%d]", k)
	case CLASS_STX:
		ins.Mnem, ins.Ops = "stx", fmt.Sprintf("M[%d]", k)
	case CLASS_ALU:
		name, ok := aluNames[op(code)]
		if !ok {
			return bad()
		}
		ins.Mnem = name
		if name != "neg" {
			ins.Ops = operand()
		}
	case CLASS_JMP:
		name, ok := jmpNames[op(code)]
		if !ok {
			return bad()
		}
		next := addr + InsSize
		ins.Mnem = name
		if name == "jmp" {
			ins.Ops = fmt.Sprintf("%#x", next+uint64(k)*InsSize)
		} else {
			ins.Ops = fmt.Sprintf("%s, %#x, %#x", operand(), next+uint64(jt)*InsSize, next+uint64(jf)*InsSize)
		}
	case CLASS_RET:
		ins.Mnem = "ret"
		switch code &^ 0x07 {
		case SRC_K:
			ins.Ops = fmt.Sprintf("#%#x", k)
		case SRC_X:
			ins.Ops = "x"
		case SRC_A:
			ins.Ops = "a"
		default:
			return bad()
		}
	case CLASS_MISC:
		switch code &^ 0x07 {
		case MISC_TAX:
			ins.Mnem = "tax"
		case MISC_TXA:
			ins.Mnem = "txa"
		default:
			return bad()
		}
	}
	return ins, nil
}

// Dis decodes classic BPF programs.
type Dis struct{}

// Dis stops at the first undecodable instruction and returns what came
// before it. An error is only returned when nothing could be decoded.
func (d *Dis) Dis(mem []byte, addr uint64) ([]models.Ins, error) {
	var ret []models.Ins
	for off := 0; off+InsSize <= len(mem); off += InsSize {
		ins, err := decode(mem[off:], addr+uint64(off))
		if err != nil {
			if len(ret) == 0 {
				return nil, err
			}
			break
		}
		ret = append(ret, ins)
	}
	return ret, nil
}
