package shell

import (
	"github.com/pkg/errors"

	"github.com/lunixbochs/bgo/go/models"
)

var ErrNoArch = errors.New("project has no arch (set -arch)")

var DisCmd = cmd(&Command{
	Name:    "dis",
	Desc:    "Decode a range as code and record the instructions.",
	Args:    "<vma> <len>",
	Mutates: true,
	Run: func(c *Context, vma, size uint64) error {
		if c.Arch == nil {
			return errors.WithStack(ErrNoArch)
		}
		ivs, err := c.C.Decode(c.Arch.Dis, vma, size, c.Rev())
		if err != nil {
			return err
		}
		ins := make([]models.Ins, 0, len(ivs))
		for _, iv := range ivs {
			if code, ok := iv.Content.(models.CodeContent); ok {
				ins = append(ins, code.Ins)
			}
		}
		for _, line := range models.InsLines(ins) {
			c.Printf("  %s\n", c.color(line, typeColors[models.Code]))
		}
		return nil
	},
})

var AsmCmd = cmd(&Command{
	Name:    "asm",
	Desc:    "Assemble source and patch it in at an address.",
	Args:    "<vma> <source>",
	Mutates: true,
	Run: func(c *Context, vma uint64, src string) error {
		if c.Arch == nil {
			return errors.WithStack(ErrNoArch)
		}
		if !c.Arch.CanAsm() {
			return errors.Errorf("no assembler for %s", c.Arch.Name)
		}
		p, err := c.Arch.Asm.Asm(src, vma)
		if err != nil {
			return err
		}
		ok, err := c.C.PatchBytes(vma, p, c.Rev())
		if err != nil {
			return err
		}
		if !ok {
			return errors.Wrap(models.ErrNotPatchable, "revision 0 (fork first)")
		}
		c.Printf("  %#x: % x\n", vma, p)
		return nil
	},
})
