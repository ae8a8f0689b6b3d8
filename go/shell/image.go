package shell

import (
	"github.com/pkg/errors"

	"github.com/lunixbochs/bgo/go/models"
)

var InfoCmd = cmd(&Command{
	Name: "info",
	Desc: "Show the image window and revision summary.",
	Run: func(c *Context) error {
		c.Printf("image    %s\n", c.C.Source().Ident())
		c.Printf("window   %#x-%#x (%#x bytes)\n", c.C.Base(), c.C.Base()+c.C.Size(), c.C.Size())
		c.Printf("revision %d of %d\n", c.C.CurrentRevision(), len(c.C.Revisions())-1)
		if c.Arch != nil {
			c.Printf("arch     %s\n", c.Arch)
		}
		return nil
	},
})

var LsCmd = cmd(&Command{
	Name: "ls",
	Desc: "List intervals over a range, with unclaimed bytes shown as raw runs.",
	Args: "<vma> <len>",
	Run: func(c *Context, vma, size uint64) error {
		ivs, err := c.C.ContiguousRange(vma, size, c.Rev(), false)
		if err != nil {
			return err
		}
		for _, iv := range ivs {
			c.Printf("  %s\n", c.interval(iv))
		}
		return nil
	},
})

var ResolveCmd = cmd(&Command{
	Name: "resolve",
	Desc: "List the intervals wholly inside a range.",
	Args: "<vma> <len>",
	Run: func(c *Context, vma, size uint64) error {
		ivs, err := c.C.ResolveRange(vma, size, c.Rev(), true)
		if err != nil {
			return err
		}
		for _, iv := range ivs {
			c.Printf("  %s\n", c.interval(iv))
		}
		return nil
	},
})

var ExistsCmd = cmd(&Command{
	Name: "exists",
	Desc: "Report whether an interval covers an address.",
	Args: "<vma>",
	Run: func(c *Context, vma uint64) error {
		c.Printf("%v\n", c.C.Exists(vma, true, c.Rev()))
		return nil
	},
})

var AddCmd = cmd(&Command{
	Name:    "add",
	Desc:    "Claim a range as raw bytes.",
	Args:    "<vma> <size>",
	Mutates: true,
	Run: func(c *Context, vma, size uint64) error {
		iv, err := c.C.AddInterval(vma, size, c.Rev(), false, nil)
		if err != nil {
			return err
		}
		c.Printf("  %s\n", c.interval(iv))
		return nil
	},
})

var DataCmd = cmd(&Command{
	Name:    "data",
	Desc:    "Claim a range as typed data.",
	Args:    "<vma> <size> <kind>",
	Mutates: true,
	Run: func(c *Context, vma, size uint64, kind string) error {
		iv, err := c.C.AddInterval(vma, size, c.Rev(), false, models.DataContent{Kind: kind})
		if err != nil {
			return err
		}
		c.Printf("  %s\n", c.interval(iv))
		return nil
	},
})

var RmCmd = cmd(&Command{
	Name:    "rm",
	Desc:    "Remove the interval starting at an address.",
	Args:    "<vma>",
	Mutates: true,
	Run: func(c *Context, vma uint64) error {
		if !c.C.RemoveInterval(vma, c.Rev()) {
			return errors.Errorf("no interval at %#x", vma)
		}
		return nil
	},
})

var PatchCmd = cmd(&Command{
	Name:    "patch",
	Desc:    "Overwrite bytes in the current revision.",
	Args:    "<vma> <hex>",
	Mutates: true,
	Run: func(c *Context, vma uint64, p []byte) error {
		ok, err := c.C.PatchBytes(vma, p, c.Rev())
		if err != nil {
			return err
		}
		if !ok {
			return errors.Wrap(models.ErrNotPatchable, "revision 0 (fork first)")
		}
		return nil
	},
})

var HexdumpCmd = cmd(&Command{
	Name: "hexdump",
	Desc: "Dump bytes of the composed image.",
	Args: "<vma> <len>",
	Run: func(c *Context, vma, size uint64) error {
		mem, err := c.C.Bytes(vma, size, c.Rev())
		if err != nil {
			return err
		}
		for _, line := range models.HexDump(vma, mem, c.bits()) {
			c.Printf("  %s\n", line)
		}
		return nil
	},
})
