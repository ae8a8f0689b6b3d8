package shell

import "github.com/pkg/errors"

var RevsCmd = cmd(&Command{
	Name: "revs",
	Desc: "List revisions.",
	Run: func(c *Context) error {
		cur := c.C.CurrentRevision()
		for _, r := range c.C.Revisions() {
			mark := " "
			if r.Ident() == cur {
				mark = "*"
			}
			c.Printf("%s %3d  %d intervals, %d patched bytes\n", mark, r.Ident(), r.Len(), len(r.ChangedBytes()))
		}
		return nil
	},
})

var RevCmd = cmd(&Command{
	Name: "rev",
	Desc: "Show the current revision.",
	Run: func(c *Context) error {
		c.Printf("%d\n", c.C.CurrentRevision())
		return nil
	},
})

var ForkCmd = cmd(&Command{
	Name:    "fork",
	Desc:    "Start a new revision on top of the stack.",
	Mutates: true,
	Run: func(c *Context) error {
		r := c.C.AddRevision()
		c.Printf("%d\n", r.Ident())
		return nil
	},
})

var DropCmd = cmd(&Command{
	Name:    "drop",
	Desc:    "Remove a revision. Revisions in the middle are emptied in place.",
	Args:    "<id>",
	Mutates: true,
	Run: func(c *Context, id uint32) error {
		if !c.C.RemoveRevision(id) {
			return errors.Errorf("cannot drop revision %d", id)
		}
		return nil
	},
})

var CheckoutCmd = cmd(&Command{
	Name:    "checkout",
	Desc:    "Select the current revision.",
	Args:    "<id>",
	Mutates: true,
	Run: func(c *Context, id uint32) error {
		return c.C.SetCurrentRevision(id)
	},
})

var HelpCmd = cmd(&Command{
	Name: "help",
	Desc: "List commands.",
	Run: func(c *Context) error {
		width := 0
		for _, cmd := range Sorted() {
			if n := len(cmd.Usage()); n > width {
				width = n
			}
		}
		for _, cmd := range Sorted() {
			c.Printf("  %-*s  %s\n", width, cmd.Usage(), cmd.Desc)
		}
		return nil
	},
})
