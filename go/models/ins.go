package models

import (
	"bytes"
	"fmt"
)

type Ins interface {
	Addr() uint64
	Bytes() []byte
	Mnemonic() string
	OpStr() string
}

type Disassembler interface {
	Dis(mem []byte, addr uint64) ([]Ins, error)
}

type Assembler interface {
	Asm(asm string, addr uint64) ([]byte, error)
}

// Instruction is a decoded instruction detached from the decoder that produced it.
type Instruction struct {
	Address uint64
	Raw     []byte
	Mnem    string
	Ops     string
}

func NewInstruction(ins Ins) Instruction {
	raw := make([]byte, len(ins.Bytes()))
	copy(raw, ins.Bytes())
	return Instruction{
		Address: ins.Addr(),
		Raw:     raw,
		Mnem:    ins.Mnemonic(),
		Ops:     ins.OpStr(),
	}
}

func (i Instruction) Addr() uint64     { return i.Address }
func (i Instruction) Bytes() []byte    { return i.Raw }
func (i Instruction) Mnemonic() string { return i.Mnem }
func (i Instruction) OpStr() string    { return i.Ops }

func (i Instruction) String() string {
	if i.Ops == "" {
		return i.Mnem
	}
	return fmt.Sprintf("%s %s", i.Mnem, i.Ops)
}

func (i Instruction) Equal(o Instruction) bool {
	return i.Address == o.Address && i.Mnem == o.Mnem && i.Ops == o.Ops && bytes.Equal(i.Raw, o.Raw)
}
