package image

import (
	"fmt"

	"golang.org/x/exp/slices"

	"github.com/lunixbochs/bgo/go/models"
)

// View is the image as of a revision: the base bytes with the patches of
// revisions 1..rev applied in order. The merged patch set is built on first use.
type View struct {
	chain *Changeset
	rev   uint32

	built   bool
	patches map[uint64]byte
	ident   string
}

func (v *View) Rev() uint32 { return v.rev }

// Size is the container window size. Offsets past the end of the base source
// read as zero unless patched.
func (v *View) Size() uint64 { return v.chain.size }

func (v *View) build() {
	if v.built {
		return
	}
	v.patches = make(map[uint64]byte)
	for i := uint32(1); i <= v.rev; i++ {
		for off, b := range v.chain.revisions[i].patches {
			v.patches[off] = b
		}
	}
	// identity covers the base digest and the effective patch set
	offs := make([]uint64, 0, len(v.patches))
	for off := range v.patches {
		offs = append(offs, off)
	}
	slices.Sort(offs)
	desc := make([]byte, 0, len(offs)*9+64)
	desc = append(desc, v.chain.base.Ident()...)
	for _, off := range offs {
		desc = append(desc, fmt.Sprintf(";%x=%02x", off, v.patches[off])...)
	}
	v.ident = models.Digest(desc)
	v.built = true
}

func (v *View) Ident() string {
	if v.rev == 0 {
		return v.chain.base.Ident()
	}
	v.build()
	return v.ident
}

func (v *View) Read(off, n uint64) ([]byte, error) {
	if err := models.CheckRead(v, off, n); err != nil {
		return nil, err
	}
	out := make([]byte, n)
	base := v.chain.base
	if off < base.Size() {
		avail := base.Size() - off
		if avail > n {
			avail = n
		}
		p, err := base.Read(off, avail)
		if err != nil {
			return nil, err
		}
		copy(out, p)
	}
	if v.rev == 0 {
		return out, nil
	}
	v.build()
	if uint64(len(v.patches)) < n {
		for o, b := range v.patches {
			if o >= off && o < off+n {
				out[o-off] = b
			}
		}
	} else {
		for i := uint64(0); i < n; i++ {
			if b, ok := v.patches[off+i]; ok {
				out[i] = b
			}
		}
	}
	return out, nil
}
