package models

import (
	"encoding/hex"
	"fmt"
	"strings"
)

// InsLines formats instructions one per line, padding the byte column to the
// longest instruction (or pad[0], if larger).
func InsLines(dis []Ins, pad ...int) []string {
	var width int
	if len(pad) > 0 {
		width = pad[0]
	}
	for _, ins := range dis {
		if len(ins.Bytes()) > width {
			width = len(ins.Bytes())
		}
	}
	out := make([]string, 0, len(dis))
	for _, ins := range dis {
		pad := strings.Repeat(" ", (width-len(ins.Bytes()))*2)
		data := pad + hex.EncodeToString(ins.Bytes())
		out = append(out, fmt.Sprintf("0x%x: %s %s %s", ins.Addr(), data, ins.Mnemonic(), ins.OpStr()))
	}
	return out
}

func printable(c byte) byte {
	if c >= 0x20 && c <= 0x7e {
		return c
	}
	return '.'
}

// HexDump formats mem as lines of 16 bytes, grouped into words of the given
// bit width, followed by the printable characters.
func HexDump(base uint64, mem []byte, bits int) []string {
	const lineSize = 16
	word := bits / 8
	if word <= 0 || word > lineSize {
		word = 1
	}
	addrFmt := fmt.Sprintf("%%#0%dx:", word*2+2)
	var out []string
	for off := 0; off < len(mem); off += lineSize {
		end := off + lineSize
		if end > len(mem) {
			end = len(mem)
		}
		chunk := mem[off:end]
		var b strings.Builder
		fmt.Fprintf(&b, addrFmt, base+uint64(off))
		for w := 0; w < lineSize; w += word {
			b.WriteByte(' ')
			var h string
			if w < len(chunk) {
				we := w + word
				if we > len(chunk) {
					we = len(chunk)
				}
				h = hex.EncodeToString(chunk[w:we])
			}
			b.WriteString(h + strings.Repeat(" ", word*2-len(h)))
		}
		b.WriteString("  |")
		for _, c := range chunk {
			b.WriteByte(printable(c))
		}
		b.WriteString("|")
		out = append(out, b.String())
	}
	return out
}
