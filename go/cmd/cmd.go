package cmd

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"

	"github.com/lunixbochs/bgo/go/arch"
	"github.com/lunixbochs/bgo/go/models"
	"github.com/lunixbochs/bgo/go/shell"
	"github.com/lunixbochs/bgo/go/store"
)

// BgoCmd holds the flags and state shared by every subcommand that works on
// a project file.
type BgoCmd struct {
	Config *models.Config
	Flags  *flag.FlagSet
	// positional argument usage, printed after [options]
	Args string

	Project *store.Project
	Arch    *models.Arch

	SetupFlags func() error

	Stdout, Stderr io.Writer
}

func NewBgoCmd(args string) *BgoCmd {
	return &BgoCmd{
		Flags:  flag.NewFlagSet("bgo", flag.ExitOnError),
		Args:   args,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}

type stackTracer interface {
	StackTrace() errors.StackTrace
}

// PrintError prints err, with a stack trace when running verbose.
func (c *BgoCmd) PrintError(err error) {
	w := c.Stderr
	fmt.Fprintf(w, "Error: %s\n", err)
	if c.Config == nil || !c.Config.Verbose {
		return
	}
	var st stackTracer
	if !errors.As(err, &st) {
		return
	}
	var frames [][2]string
	width := 0
	for _, f := range st.StackTrace() {
		fileline := fmt.Sprintf("%s:%d", f, f)
		method := fmt.Sprintf("%n", f)
		frames = append(frames, [2]string{fileline, method})
		if len(fileline) > width {
			width = len(fileline)
		}
		if method == "main" {
			break
		}
	}
	fmt.Fprintln(w, strings.Repeat("-", 40))
	for _, f := range frames {
		fmt.Fprintf(w, "%-*s | %s()\n", width, f[0], f[1])
	}
}

// Parse parses argv[1:] into Config and returns the positional arguments.
func (c *BgoCmd) Parse(argv []string) ([]string, error) {
	fs := c.Flags
	verbose := fs.Bool("v", false, "verbose output")
	color := fs.Bool("color", false, "colorize output")
	rev := fs.Int("rev", -1, "revision to act on (-1 for current)")
	maxDepth := fs.Int("maxdepth", 0, "revision walk limit (0 for none)")
	archName := fs.String("arch", "", "override project architecture ("+strings.Join(arch.Names(), ", ")+")")
	logfile := fs.String("log", "", "redirect debugging output to file (default stderr)")
	fs.Usage = func() {
		fmt.Fprintf(c.Stderr, "Usage: %s [options] %s\n\nOptions:\n", argv[0], c.Args)
		var flags []*flag.Flag
		fs.VisitAll(func(f *flag.Flag) { flags = append(flags, f) })
		models.PrintFlags(c.Stderr, flags)
	}
	if c.SetupFlags != nil {
		if err := c.SetupFlags(); err != nil {
			return nil, err
		}
	}
	fs.Parse(argv[1:])

	config := models.NewConfig()
	config.Verbose = *verbose
	config.Color = *color
	config.Rev = *rev
	config.MaxDepth = *maxDepth
	config.Arch = *archName
	if *logfile != "" {
		out, err := os.OpenFile(*logfile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, errors.Wrap(err, "failed to open log")
		}
		config.Output = out
	}
	c.Config = config
	return fs.Args(), nil
}

// SetArch looks up the project's architecture. No arch is not an error.
func (c *BgoCmd) SetArch(name string) error {
	if name == "" {
		c.Arch = nil
		return nil
	}
	a, err := arch.GetArch(name)
	if err != nil {
		return err
	}
	c.Arch = a
	return nil
}

// Open loads the project at path.
func (c *BgoCmd) Open(path string) error {
	p, err := store.Open(path, c.Config)
	if err != nil {
		return err
	}
	if c.Config.Arch != "" {
		p.Arch = c.Config.Arch
	}
	if err := c.SetArch(p.Arch); err != nil {
		p.Close()
		return err
	}
	c.Project = p
	c.Config.Debugf("loaded %s: %#x+%#x, %d revisions\n", path, p.Base(), p.Size(), len(p.Revisions()))
	return nil
}

func (c *BgoCmd) Context() *shell.Context {
	return shell.NewContext(c.Stdout, c.Project.Container, c.Arch)
}

// Finish saves the project if ctx was dirtied, then closes it.
func (c *BgoCmd) Finish(ctx *shell.Context) error {
	p := c.Project
	defer p.Close()
	if ctx != nil && ctx.Dirty {
		if err := p.Save(p.Path); err != nil {
			return err
		}
		c.Config.Debugf("saved %s\n", p.Path)
	}
	return nil
}

// Session opens the project at path, runs fn and saves on change. It
// returns the process exit status.
func (c *BgoCmd) Session(path string, fn func(ctx *shell.Context) error) int {
	if err := c.Open(path); err != nil {
		c.PrintError(err)
		return 1
	}
	ctx := c.Context()
	err := fn(ctx)
	if ferr := c.Finish(ctx); ferr != nil {
		c.PrintError(ferr)
		return 1
	}
	if err != nil {
		c.PrintError(err)
		return 1
	}
	return 0
}
