package arch

import (
	"sort"

	ks "github.com/keystone-engine/keystone/bindings/go/keystone"
	cs "github.com/lunixbochs/capstr"
	"github.com/lunixbochs/fvbommel-util/sortorder"
	"github.com/pkg/errors"

	"github.com/lunixbochs/bgo/go/cpu"
	"github.com/lunixbochs/bgo/go/cpu/bpf"
	"github.com/lunixbochs/bgo/go/cpu/ndh"
	"github.com/lunixbochs/bgo/go/models"
)

var ErrNoArch = errors.New("unknown arch")

func native(name string, bits, csArch, csMode int, ksArch ks.Architecture, ksMode ks.Mode) func() *models.Arch {
	return func() *models.Arch {
		return &models.Arch{
			Name: name,
			Bits: bits,
			Dis:  &cpu.Capstr{Arch: csArch, Mode: csMode},
			Asm:  &cpu.Keystone{Arch: ksArch, Mode: ksMode},
		}
	}
}

// each lookup builds fresh decoder state
var archMap = map[string]func() *models.Arch{
	"x86_16": native("x86_16", 16, cs.ARCH_X86, cs.MODE_16, ks.ARCH_X86, ks.MODE_16),
	"x86":    native("x86", 32, cs.ARCH_X86, cs.MODE_32, ks.ARCH_X86, ks.MODE_32),
	"x86_64": native("x86_64", 64, cs.ARCH_X86, cs.MODE_64, ks.ARCH_X86, ks.MODE_64),
	"arm":    native("arm", 32, cs.ARCH_ARM, cs.MODE_ARM, ks.ARCH_ARM, ks.MODE_ARM),
	"thumb":  native("thumb", 32, cs.ARCH_ARM, cs.MODE_THUMB, ks.ARCH_ARM, ks.MODE_THUMB),
	"arm64":  native("arm64", 64, cs.ARCH_ARM64, cs.MODE_ARM, ks.ARCH_ARM64, ks.MODE_LITTLE_ENDIAN),
	"bpf": func() *models.Arch {
		return &models.Arch{Name: "bpf", Bits: 32, Dis: &bpf.Dis{}}
	},
	"ndh": func() *models.Arch {
		return &models.Arch{Name: "ndh", Bits: 16, Dis: &ndh.Dis{}}
	},
}

func GetArch(name string) (*models.Arch, error) {
	fn, ok := archMap[name]
	if !ok {
		return nil, errors.Wrapf(ErrNoArch, "%q", name)
	}
	return fn(), nil
}

// Names lists the known arches in natural order.
func Names() []string {
	names := make([]string, 0, len(archMap))
	for name := range archMap {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool { return sortorder.NaturalLess(names[i], names[j]) })
	return names
}
