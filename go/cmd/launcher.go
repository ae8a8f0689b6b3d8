package cmd

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/lunixbochs/fvbommel-util/sortorder"
)

type command struct {
	name, desc string
	main       func(args []string)
}

var commands = make(map[string]*command)
var pad int

// Register adds a top level command. main receives argv with argv[0] set to
// "<prog> <name>".
func Register(name, desc string, main func(args []string)) {
	if len(name) > pad {
		pad = len(name)
	}
	commands[name] = &command{name, desc, main}
}

func usage() {
	fmt.Fprintln(os.Stderr, "Commands:")
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool { return sortorder.NaturalLess(names[i], names[j]) })
	fstr := fmt.Sprintf("  %%-%ds | %%s\n", pad)
	for _, name := range names {
		fmt.Fprintf(os.Stderr, fstr, name, commands[name].desc)
	}
	fmt.Fprintf(os.Stderr, "\nExample:\n  %s create -base 0x400000 -arch x86_64 firmware.bin\n", os.Args[0])
	fmt.Fprintf(os.Stderr, "  %s ls firmware.bin.bgo 0x400000 0x100\n\n", os.Args[0])
}

func Main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}
	cmd, ok := commands[os.Args[1]]
	if !ok {
		fmt.Fprintf(os.Stderr, "Command '%s' not found.\n\n", os.Args[1])
		usage()
		os.Exit(1)
	}
	args := append([]string{strings.Join(os.Args[:2], " ")}, os.Args[2:]...)
	cmd.main(args)
}
