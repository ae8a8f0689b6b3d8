package run

import (
	"os"
	"strings"

	"github.com/lunixbochs/bgo/go/cmd"
	"github.com/lunixbochs/bgo/go/shell"
)

// Main runs one shell command against a project file.
func Main(name string, argv []string) int {
	sc := shell.Commands[name]
	c := cmd.NewBgoCmd(strings.TrimSpace("<project> " + sc.Args))
	args, err := c.Parse(argv)
	if err != nil {
		c.PrintError(err)
		return 1
	}
	if len(args) < 1 {
		c.Flags.Usage()
		return 1
	}
	return c.Session(args[0], func(ctx *shell.Context) error {
		return shell.Exec(ctx, name, args[1:])
	})
}

func init() {
	for _, sc := range shell.Sorted() {
		name := sc.Name
		cmd.Register(name, sc.Desc, func(argv []string) { os.Exit(Main(name, argv)) })
	}
}
