package bpf

import (
	"encoding/binary"
	"testing"

	"github.com/pkg/errors"

	"github.com/lunixbochs/bgo/go/models"
)

func prog(ins ...[4]uint32) []byte {
	out := make([]byte, 0, len(ins)*InsSize)
	for _, v := range ins {
		var p [InsSize]byte
		binary.LittleEndian.PutUint16(p[:], uint16(v[0]))
		p[2], p[3] = byte(v[1]), byte(v[2])
		binary.LittleEndian.PutUint32(p[4:], v[3])
		out = append(out, p[:]...)
	}
	return out
}

var disTable = []struct {
	code     [4]uint32
	mnemonic string
	ops      string
}{
	{[4]uint32{0x20, 0, 0, 12}, "ld", "[12]"},
	{[4]uint32{0x28, 0, 0, 12}, "ldh", "[12]"},
	{[4]uint32{0x50, 0, 0, 2}, "ldb", "[x + 2]"},
	{[4]uint32{0x00, 0, 0, 0x10}, "ldi", "#0x10"},
	{[4]uint32{0x61, 0, 0, 3}, "ldx", "M[3]"},
	{[4]uint32{0xb1, 0, 0, 14}, "ldxb", "4*([14]&0xf)"},
	{[4]uint32{0x02, 0, 0, 1}, "st", "M[1]"},
	{[4]uint32{0x04, 0, 0, 1}, "add", "#0x1"},
	{[4]uint32{0x0c, 0, 0, 0}, "add", "x"},
	{[4]uint32{0x84, 0, 0, 0}, "neg", ""},
	{[4]uint32{0x05, 0, 0, 2}, "jmp", "0x1018"},
	{[4]uint32{0x15, 0, 1, 0x800}, "jeq", "#0x800, 0x1008, 0x1010"},
	{[4]uint32{0x1d, 1, 0, 0}, "jeq", "x, 0x1010, 0x1008"},
	{[4]uint32{0x06, 0, 0, 0xffff}, "ret", "#0xffff"},
	{[4]uint32{0x16, 0, 0, 0}, "ret", "a"},
	{[4]uint32{0x07, 0, 0, 0}, "tax", ""},
	{[4]uint32{0x87, 0, 0, 0}, "txa", ""},
}

func TestDis(t *testing.T) {
	for _, v := range disTable {
		ins, err := (&Dis{}).Dis(prog(v.code), 0x1000)
		if err != nil {
			t.Errorf("%#x: %v", v.code[0], err)
			continue
		}
		if len(ins) != 1 {
			t.Errorf("%#x: decoded %d instructions", v.code[0], len(ins))
			continue
		}
		if ins[0].Mnemonic() != v.mnemonic || ins[0].OpStr() != v.ops {
			t.Errorf("%#x: got %q %q, want %q %q", v.code[0], ins[0].Mnemonic(), ins[0].OpStr(), v.mnemonic, v.ops)
		}
	}
}

func TestDisProgram(t *testing.T) {
	code := prog(
		[4]uint32{0x28, 0, 0, 12},
		[4]uint32{0x15, 0, 1, 0x800},
		[4]uint32{0x06, 0, 0, 0xffff},
		[4]uint32{0x06, 0, 0, 0},
		[4]uint32{0xffff, 0, 0, 0},
	)
	// trailing partial instruction
	code = append(code, 1, 2, 3)
	ins, err := (&Dis{}).Dis(code, 0x4000)
	if err != nil {
		t.Fatal(err)
	}
	if len(ins) != 4 {
		t.Fatalf("decoded %d instructions, want 4", len(ins))
	}
	for i, in := range ins {
		if in.Addr() != 0x4000+uint64(i*InsSize) || len(in.Bytes()) != InsSize {
			t.Errorf("instruction %d at %#x with %d bytes", i, in.Addr(), len(in.Bytes()))
		}
	}
	for _, line := range models.InsLines(ins) {
		t.Log(line)
	}

	if _, err := (&Dis{}).Dis(prog([4]uint32{0xffff, 0, 0, 0}), 0); !errors.Is(err, ErrBadOpcode) {
		t.Errorf("bad first opcode: got %v", err)
	}
	if ins, err := (&Dis{}).Dis([]byte{1, 2, 3}, 0); err != nil || len(ins) != 0 {
		t.Errorf("short input: %v, %v", ins, err)
	}
}
