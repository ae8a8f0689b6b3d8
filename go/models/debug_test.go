package models

import (
	"bytes"
	"flag"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestHexDump(t *testing.T) {
	mem := []byte("ABCDEFGHIJKLMNOP\x00\x01\xff")
	got := HexDump(0x1000, mem, 32)
	want := []string{
		"0x00001000: 41424344 45464748 494a4b4c 4d4e4f50  |ABCDEFGHIJKLMNOP|",
		"0x00001010: 0001ff                               |...|",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("HexDump mismatch (-want +got):\n%s", diff)
	}
}

func TestInsLines(t *testing.T) {
	dis := []Ins{
		Instruction{Address: 0x10, Raw: []byte{0x90}, Mnem: "nop"},
		Instruction{Address: 0x11, Raw: []byte{0x48, 0x31, 0xc0}, Mnem: "xor", Ops: "rax, rax"},
	}
	got := InsLines(dis)
	want := []string{
		"0x10:     90 nop ",
		"0x11: 4831c0 xor rax, rax",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("InsLines mismatch (-want +got):\n%s", diff)
	}
}

func TestPrintFlags(t *testing.T) {
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	fs.Bool("v", false, "verbose output")
	fs.String("arch", "", strings.Repeat("word ", 20))
	var flags []*flag.Flag
	fs.VisitAll(func(f *flag.Flag) { flags = append(flags, f) })

	var buf bytes.Buffer
	PrintFlags(&buf, flags)
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected a wrapped usage line, got %q", lines)
	}
	if !strings.HasPrefix(lines[0], "  -arch         word") {
		t.Errorf("first line %q", lines[0])
	}
	if got, want := lines[2], "  -v    (false) verbose output"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
	for _, l := range lines {
		if len(l) > usageWidth {
			t.Errorf("line exceeds width: %q", l)
		}
	}
}

func TestDiscache(t *testing.T) {
	d := NewDiscache()
	mem := []byte{1, 2, 3}
	d.Put(0x10, mem, []Ins{Instruction{Address: 0x10, Raw: mem, Mnem: "x"}})
	mem[0] = 9
	if d.Get(0x10, []byte{1, 2, 3}) == nil {
		t.Fatal("cached entry missing")
	}
	if d.Get(0x10, mem) != nil {
		t.Fatal("patched bytes hit the cache")
	}
	if d.Len() != 1 {
		t.Fatalf("Len = %d", d.Len())
	}
}
