package image

import (
	"github.com/pkg/errors"

	"github.com/lunixbochs/bgo/go/models"
)

// Decode disassembles [vma, vma+length) of the image as of rev and records
// each instruction as a code interval. Instructions that collide with
// existing intervals land in a new revision; later instructions of the same
// call follow them there.
func (c *Container) Decode(dis models.Disassembler, vma, length uint64, rev int) (models.Intervals, error) {
	r, max, err := c.chain.query(vma, length, rev)
	if err != nil {
		return nil, err
	}
	mem, err := c.Bytes(vma, max-vma+1, int(r))
	if err != nil {
		return nil, err
	}
	ins, err := dis.Dis(mem, vma)
	if err != nil {
		return nil, errors.Wrapf(err, "decode %#x(%d)", vma, len(mem))
	}
	target := int(r)
	var out models.Intervals
	for _, in := range ins {
		size := uint64(len(in.Bytes()))
		if size == 0 {
			continue
		}
		iv := models.NewInterval(in.Addr(), size, models.CodeContent{Ins: models.NewInstruction(in)})
		before := c.chain.Len()
		obj, err := c.AddIntervalObject(iv, target)
		if err != nil {
			return out, err
		}
		if c.chain.Len() > before {
			target = int(obj.Rev)
		}
		out = append(out, obj)
	}
	c.config.Debugf("decoded %d instructions at %#x\n", len(out), vma)
	return out, nil
}
