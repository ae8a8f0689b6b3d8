package models

import "fmt"

// Arch pairs a decoder with an optional assembler for one instruction set.
type Arch struct {
	Name string
	Bits int

	Dis Disassembler
	Asm Assembler
}

func (a *Arch) String() string {
	return fmt.Sprintf("%s (%d-bit)", a.Name, a.Bits)
}

// CanAsm reports whether source can be assembled for this arch.
func (a *Arch) CanAsm() bool {
	return a.Asm != nil
}
