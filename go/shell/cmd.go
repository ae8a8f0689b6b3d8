package shell

import (
	"encoding/hex"
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"

	"github.com/lunixbochs/argjoy"
	"github.com/lunixbochs/fvbommel-util/sortorder"
	"github.com/mattn/go-shellwords"
	"github.com/pkg/errors"
)

var (
	ErrNoCommand = errors.New("command not found")
	ErrUsage     = errors.New("usage")
)

type Command struct {
	Name string
	Desc string
	// argument names for usage, in order
	Args string
	// Mutates reports whether a successful run changes the project.
	Mutates bool
	Run     interface{}
}

func (c *Command) Usage() string {
	if c.Args == "" {
		return c.Name
	}
	return c.Name + " " + c.Args
}

var Commands = make(map[string]*Command)

func cmd(c *Command) *Command {
	fn := reflect.ValueOf(c.Run)
	if !fn.IsValid() || fn.Kind() != reflect.Func {
		panic(fmt.Sprintf("Command.Run must be a func: got (%T) %#v\n", c.Run, c.Run))
	}
	if fn.Type().NumIn() == 0 || fn.Type().In(0) != reflect.TypeOf(&Context{}) {
		panic(fmt.Sprintf("command %s must take *Context first", c.Name))
	}
	Commands[c.Name] = c
	return c
}

// Sorted lists the commands in natural name order.
func Sorted() []*Command {
	out := make([]*Command, 0, len(Commands))
	for _, c := range Commands {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return sortorder.NaturalLess(out[i].Name, out[j].Name) })
	return out
}

func parseUint(s string, bits int) (uint64, error) {
	n, err := strconv.ParseUint(strings.Replace(s, "_", "", -1), 0, bits)
	return n, errors.Wrapf(err, "bad number %q", s)
}

// argCodec converts command line words to the Run func's parameter types.
func argCodec(arg interface{}, vals []interface{}) error {
	if v, ok := arg.(**Context); ok {
		if c, ok := vals[0].(*Context); ok {
			*v = c
			return nil
		}
		return argjoy.NoMatch
	}
	s, ok := vals[0].(string)
	if !ok {
		return argjoy.NoMatch
	}
	var err error
	switch v := arg.(type) {
	case *string:
		*v = s
	case *uint64:
		*v, err = parseUint(s, 64)
	case *uint32:
		var n uint64
		n, err = parseUint(s, 32)
		*v = uint32(n)
	case *int:
		var n int64
		n, err = strconv.ParseInt(s, 0, 64)
		err = errors.Wrapf(err, "bad number %q", s)
		*v = int(n)
	case *[]byte:
		*v, err = hex.DecodeString(strings.Replace(s, " ", "", -1))
		err = errors.Wrapf(err, "bad hex %q", s)
	default:
		return argjoy.NoMatch
	}
	return err
}

var aj = argjoy.NewArgjoy()

func init() { aj.Register(argCodec) }

// Exec runs a command with already split arguments.
func Exec(c *Context, name string, args []string) error {
	cmd, ok := Commands[name]
	if !ok {
		return errors.Wrapf(ErrNoCommand, "%q", name)
	}
	if reflect.TypeOf(cmd.Run).NumIn()-1 != len(args) {
		return errors.Wrapf(ErrUsage, "%s", cmd.Usage())
	}
	vals := make([]interface{}, 0, len(args)+1)
	vals = append(vals, c)
	for _, a := range args {
		vals = append(vals, a)
	}
	out, err := aj.Call(cmd.Run, vals...)
	if err != nil {
		return errors.Wrapf(err, "%s", cmd.Usage())
	}
	if len(out) > 0 {
		if err, ok := out[0].(error); ok && err != nil {
			return err
		}
	}
	if cmd.Mutates {
		c.Dirty = true
	}
	return nil
}

// Run splits a command line and runs it. Blank lines do nothing.
func Run(c *Context, line string) error {
	args, err := shellwords.Parse(line)
	if err != nil {
		return errors.Wrap(err, "parse error")
	}
	if len(args) == 0 {
		return nil
	}
	return Exec(c, args[0], args[1:])
}
