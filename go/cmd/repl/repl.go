package repl

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/chzyer/readline"
	"github.com/shibukawa/configdir"

	"github.com/lunixbochs/bgo/go/cmd"
	"github.com/lunixbochs/bgo/go/shell"
)

func historyPath() string {
	cache := configdir.New("bgo", "repl").QueryCacheFolder()
	if err := cache.MkdirAll(); err != nil {
		return ""
	}
	return filepath.Join(cache.Path, "history")
}

func completer() readline.AutoCompleter {
	var items []readline.PrefixCompleterInterface
	for _, sc := range shell.Sorted() {
		items = append(items, readline.PcItem(sc.Name))
	}
	items = append(items, readline.PcItem("save"), readline.PcItem("quit"))
	return readline.NewPrefixCompleter(items...)
}

func prompt(ctx *shell.Context) string {
	mark := ""
	if ctx.Dirty {
		mark = "*"
	}
	return fmt.Sprintf("bgo r%d%s> ", ctx.C.CurrentRevision(), mark)
}

// Loop reads commands until EOF or quit. save writes the project.
func Loop(c *cmd.BgoCmd, ctx *shell.Context) error {
	rl, err := readline.NewEx(&readline.Config{
		InterruptPrompt: "^C",
		HistoryFile:     historyPath(),
		AutoComplete:    completer(),
	})
	if err != nil {
		return err
	}
	defer rl.Close()
	ctx.Writer = rl.Stdout()
	c.Stderr = rl.Stderr()
	for {
		rl.SetPrompt(prompt(ctx))
		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			continue
		} else if err == io.EOF {
			return nil
		} else if err != nil {
			return err
		}
		switch line {
		case "quit", "exit":
			return nil
		case "save":
			if err := c.Project.Save(""); err != nil {
				c.PrintError(err)
			} else {
				ctx.Dirty = false
			}
			continue
		}
		if err := shell.Run(ctx, line); err != nil {
			c.PrintError(err)
		}
	}
}

func Main(argv []string) {
	c := cmd.NewBgoCmd("<project>")
	args, err := c.Parse(argv)
	if err != nil {
		c.PrintError(err)
		os.Exit(1)
	}
	if len(args) != 1 {
		c.Flags.Usage()
		os.Exit(1)
	}
	os.Exit(c.Session(args[0], func(ctx *shell.Context) error { return Loop(c, ctx) }))
}

func init() { cmd.Register("repl", "interactive session on a project", Main) }
