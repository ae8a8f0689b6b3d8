package create

import (
	"fmt"
	"os"

	"github.com/lunixbochs/bgo/go/cmd"
	"github.com/lunixbochs/bgo/go/store"
)

func Main(argv []string) {
	c := cmd.NewBgoCmd("<image>")
	var base, size *uint64
	var out *string
	c.SetupFlags = func() error {
		base = c.Flags.Uint64("base", 0, "address the image is mapped at")
		size = c.Flags.Uint64("size", 0, "mapped length (default whole file)")
		out = c.Flags.String("o", "", "project path (default <image>.bgo)")
		return nil
	}
	args, err := c.Parse(argv)
	if err != nil {
		c.PrintError(err)
		os.Exit(1)
	}
	if len(args) != 1 {
		c.Flags.Usage()
		os.Exit(1)
	}
	if err := c.SetArch(c.Config.Arch); err != nil {
		c.PrintError(err)
		os.Exit(1)
	}
	p, err := store.Create(args[0], *base, *size, c.Config)
	if err != nil {
		c.PrintError(err)
		os.Exit(1)
	}
	defer p.Close()
	path := *out
	if path == "" {
		path = args[0] + ".bgo"
	}
	if err := p.Save(path); err != nil {
		c.PrintError(err)
		os.Exit(1)
	}
	fmt.Fprintf(c.Stdout, "%s: %#x-%#x %s\n", path, p.Base(), p.Base()+p.Size(), p.Source().Ident())
}

func init() { cmd.Register("create", "create a project from an image file", Main) }
