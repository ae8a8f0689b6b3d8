package ndh

import (
	"encoding/binary"
	"fmt"
	"strings"

	"github.com/pkg/errors"

	"github.com/lunixbochs/bgo/go/models"
)

var (
	ErrBadOpcode = errors.New("invalid ndh opcode")
	ErrTruncated = errors.New("truncated ndh instruction")
)

func regName(n byte) string {
	switch n {
	case PC:
		return "pc"
	case SP:
		return "sp"
	case BP:
		return "bp"
	default:
		return fmt.Sprintf("r%d", n)
	}
}

type insReader struct {
	mem []byte
	pos int
}

func (r *insReader) take(n int) ([]byte, error) {
	if r.pos+n > len(r.mem) {
		return nil, ErrTruncated
	}
	p := r.mem[r.pos : r.pos+n]
	r.pos += n
	return p, nil
}

func (r *insReader) operand(o operand) (string, error) {
	switch o {
	case oU16:
		p, err := r.take(2)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%#x", binary.LittleEndian.Uint16(p)), nil
	default:
		p, err := r.take(1)
		if err != nil {
			return "", err
		}
		switch o {
		case oReg:
			return regName(p[0]), nil
		case oInd:
			return "[" + regName(p[0]) + "]", nil
		default:
			return fmt.Sprintf("%#x", p[0]), nil
		}
	}
}

func decode(mem []byte, addr uint64) (models.Instruction, error) {
	r := &insReader{mem: mem}
	ins := models.Instruction{Address: addr}
	code, err := r.take(1)
	if err != nil {
		return ins, err
	}
	info, ok := opTable[code[0]]
	if !ok {
		return ins, errors.Wrapf(ErrBadOpcode, "%#02x at %#x", code[0], addr)
	}
	operands := info.operands
	if info.flagged {
		flag, err := r.take(1)
		if err != nil {
			return ins, err
		}
		if operands, ok = flagOperands[flag[0]]; !ok {
			return ins, errors.Wrapf(ErrBadOpcode, "%s flag %#02x at %#x", info.name, flag[0], addr)
		}
	}
	args := make([]string, 0, len(operands))
	for _, o := range operands {
		s, err := r.operand(o)
		if err != nil {
			return ins, err
		}
		args = append(args, s)
	}
	ins.Raw = append([]byte(nil), mem[:r.pos]...)
	ins.Mnem = info.name
	ins.Ops = strings.Join(args, ", ")
	return ins, nil
}

// Dis decodes NDH virtual machine code.
type Dis struct{}

// Dis stops at the first undecodable or truncated instruction. An error is
// only returned when nothing could be decoded.
func (d *Dis) Dis(mem []byte, addr uint64) ([]models.Ins, error) {
	var ret []models.Ins
	for off := 0; off < len(mem); {
		ins, err := decode(mem[off:], addr+uint64(off))
		if err != nil {
			if len(ret) == 0 {
				return nil, errors.Wrapf(err, "at %#x", addr+uint64(off))
			}
			break
		}
		ret = append(ret, ins)
		off += len(ins.Raw)
	}
	return ret, nil
}
