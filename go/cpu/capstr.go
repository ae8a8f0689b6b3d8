package cpu

import (
	cs "github.com/lunixbochs/capstr"
	"github.com/pkg/errors"

	"github.com/lunixbochs/bgo/go/models"
)

// Capstr disassembles through capstone. Results are cached per address and
// byte string, so repeated decodes of an unchanged range are free.
type Capstr struct {
	Arch, Mode int

	cs *cs.Engine
	dc *models.Discache
}

func (c *Capstr) Open() error {
	engine, err := cs.New(c.Arch, c.Mode)
	if err != nil {
		return errors.Wrap(err, "cs.New() failed")
	}
	c.cs = engine
	c.dc = models.NewDiscache()
	return nil
}

func (c *Capstr) Dis(mem []byte, addr uint64) ([]models.Ins, error) {
	if c.cs == nil {
		if err := c.Open(); err != nil {
			return nil, err
		}
	}
	if ent := c.dc.Get(addr, mem); ent != nil {
		return ent.Dis, nil
	}
	dis, err := c.cs.Dis(mem, addr, 0)
	if err != nil {
		return nil, errors.Wrap(err, "capstone disassembly failed")
	}
	ret := make([]models.Ins, len(dis))
	for i, v := range dis {
		ret[i] = models.NewInstruction(v)
	}
	c.dc.Put(addr, mem, ret)
	return ret, nil
}
