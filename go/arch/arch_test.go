package arch

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/pkg/errors"
)

func TestNames(t *testing.T) {
	want := []string{"arm", "arm64", "bpf", "ndh", "thumb", "x86", "x86_16", "x86_64"}
	if diff := cmp.Diff(want, Names()); diff != "" {
		t.Errorf("names (-want +got):\n%s", diff)
	}
}

func TestGetArch(t *testing.T) {
	for _, name := range Names() {
		a, err := GetArch(name)
		if err != nil {
			t.Fatal(err)
		}
		if a.Name != name || a.Dis == nil || a.Bits == 0 {
			t.Errorf("%s: %v", name, a)
		}
	}
	a, _ := GetArch("bpf")
	b, _ := GetArch("bpf")
	if a == b {
		t.Error("arch instances are shared")
	}
	if a.CanAsm() {
		t.Error("bpf claims an assembler")
	}
	if _, err := GetArch("z80"); !errors.Is(err, ErrNoArch) {
		t.Errorf("unknown arch: got %v", err)
	}
}

func TestPureDecoders(t *testing.T) {
	a, _ := GetArch("ndh")
	ins, err := a.Dis.Dis([]byte{0x02, 0x1c}, 0x8000)
	if err != nil {
		t.Fatal(err)
	}
	if len(ins) != 2 || ins[0].Mnemonic() != "nop" || ins[1].Mnemonic() != "end" {
		t.Errorf("ndh decode: %v", ins)
	}
}
