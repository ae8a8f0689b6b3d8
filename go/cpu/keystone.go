package cpu

import (
	ks "github.com/keystone-engine/keystone/bindings/go/keystone"
	"github.com/pkg/errors"
)

// Keystone assembles source for patches. Syntax is only applied when set.
type Keystone struct {
	Arch   ks.Architecture
	Mode   ks.Mode
	Syntax ks.OptionValue

	ks *ks.Keystone
}

func (k *Keystone) Open() (err error) {
	k.ks, err = ks.New(k.Arch, k.Mode)
	if err != nil {
		return errors.Wrap(err, "ks.New() failed")
	}
	if k.Syntax != 0 {
		if err := k.ks.Option(ks.OPT_SYNTAX, k.Syntax); err != nil {
			return errors.Wrap(err, "ks.Option() failed")
		}
	}
	return nil
}

func (k *Keystone) Asm(asm string, addr uint64) ([]byte, error) {
	if k.ks == nil {
		if err := k.Open(); err != nil {
			return nil, err
		}
	}
	out, _, ok := k.ks.Assemble(asm, addr)
	if !ok {
		return nil, errors.Wrapf(k.ks.LastError(), "ks.Assemble(%q) failed", asm)
	}
	if len(out) == 0 {
		return nil, errors.Errorf("%q assembled to nothing", asm)
	}
	return out, nil
}

func (k *Keystone) Close() error {
	if k.ks == nil {
		return nil
	}
	err := k.ks.Close()
	k.ks = nil
	return err
}
