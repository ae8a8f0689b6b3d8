package models

import (
	"flag"
	"fmt"
	"io"
	"strings"
)

const usageWidth = 80

func wrapWords(s string, width int) []string {
	var lines []string
	var cur string
	for _, word := range strings.Fields(s) {
		if cur != "" && len(cur)+1+len(word) > width {
			lines = append(lines, cur)
			cur = ""
		}
		if cur == "" {
			cur = word
		} else {
			cur += " " + word
		}
	}
	if cur != "" || len(lines) == 0 {
		lines = append(lines, cur)
	}
	return lines
}

// PrintFlags prints flags in aligned name, default and usage columns,
// wrapping usage text to the terminal width.
func PrintFlags(w io.Writer, flags []*flag.Flag) {
	var nameW, defW int
	defs := make([]string, len(flags))
	for i, f := range flags {
		if f.DefValue != "" && f.DefValue != "[]" {
			defs[i] = "(" + f.DefValue + ")"
		}
		if len(f.Name) > nameW {
			nameW = len(f.Name)
		}
		if len(defs[i]) > defW {
			defW = len(defs[i])
		}
	}
	indent := 2 + 1 + nameW + 1 + defW + 1
	usageW := usageWidth - indent
	if usageW < 20 {
		usageW = 20
	}
	for i, f := range flags {
		for j, line := range wrapWords(f.Usage, usageW) {
			if j == 0 {
				fmt.Fprintf(w, "  -%-*s %-*s %s\n", nameW, f.Name, defW, defs[i], line)
			} else {
				fmt.Fprintf(w, "%s%s\n", strings.Repeat(" ", indent), line)
			}
		}
	}
}
