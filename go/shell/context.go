package shell

import (
	"fmt"
	"io"

	"github.com/mgutz/ansi"

	"github.com/lunixbochs/bgo/go/image"
	"github.com/lunixbochs/bgo/go/models"
)

type Context struct {
	io.Writer
	C *image.Container
	// nil when the project has no arch
	Arch   *models.Arch
	Config *models.Config

	// Dirty is set once a mutating command succeeds.
	Dirty bool
}

func NewContext(w io.Writer, c *image.Container, arch *models.Arch) *Context {
	return &Context{Writer: w, C: c, Arch: arch, Config: c.Config()}
}

func (c *Context) Printf(format string, a ...interface{}) (n int, err error) {
	return fmt.Fprintf(c, format, a...)
}

// Rev is the revision commands act on: the configured one, else current.
func (c *Context) Rev() int {
	return c.Config.Rev
}

func (c *Context) bits() int {
	if c.Arch != nil && c.Arch.Bits > 0 {
		return c.Arch.Bits
	}
	if c.C.Base()+c.C.Size() > 1<<32 {
		return 64
	}
	return 32
}

var typeColors = map[models.ContentType]string{
	models.Code: "green",
	models.Data: "cyan",
}

func (c *Context) color(s, style string) string {
	if !c.Config.Color || style == "" {
		return s
	}
	return ansi.Color(s, style)
}

func (c *Context) interval(iv *models.Interval) string {
	return c.color(iv.String(), typeColors[iv.Type()])
}
