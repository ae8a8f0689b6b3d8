package image

import (
	"github.com/pkg/errors"

	"github.com/lunixbochs/bgo/go/models"
)

// CurrentRev selects the changeset's current revision wherever a revision
// index is taken as an int.
const CurrentRev = -1

// DefaultMaxDepth bounds how many revisions a single range query may descend.
const DefaultMaxDepth = 1 << 16

// Changeset is the ordered stack of revisions over a base image. Revision 0
// always exists. Revision indices never change once assigned: removing a
// revision from the middle leaves an empty revision in its slot.
type Changeset struct {
	base    models.ByteSource
	baseVma uint64
	size    uint64

	revisions []*Revision
	current   uint32
	views     map[uint32]*View

	MaxDepth int
}

func NewChangeset(base models.ByteSource, baseVma, size uint64) *Changeset {
	c := &Changeset{
		base:     base,
		baseVma:  baseVma,
		size:     size,
		views:    make(map[uint32]*View),
		MaxDepth: DefaultMaxDepth,
	}
	c.revisions = []*Revision{c.newRevision(0, false)}
	return c
}

func (c *Changeset) newRevision(ident uint32, patchable bool) *Revision {
	r := NewRevision(ident, patchable)
	r.onChange = c.invalidate
	return r
}

func (c *Changeset) Base() models.ByteSource { return c.base }
func (c *Changeset) BaseVma() uint64         { return c.baseVma }
func (c *Changeset) Size() uint64            { return c.size }
func (c *Changeset) Len() int                { return len(c.revisions) }
func (c *Changeset) Current() uint32         { return c.current }

func (c *Changeset) SetCurrent(id uint32) error {
	if int(id) >= len(c.revisions) {
		return errors.Wrapf(models.ErrNoSuchRevision, "revision %d (have %d)", id, len(c.revisions))
	}
	c.current = id
	return nil
}

// index resolves rev (negative selects current) to a valid revision index.
func (c *Changeset) index(rev int) (uint32, error) {
	if rev < 0 {
		return c.current, nil
	}
	if rev >= len(c.revisions) {
		return 0, errors.Wrapf(models.ErrNoSuchRevision, "revision %d (have %d)", rev, len(c.revisions))
	}
	return uint32(rev), nil
}

func (c *Changeset) Revision(rev int) (*Revision, error) {
	i, err := c.index(rev)
	if err != nil {
		return nil, err
	}
	return c.revisions[i], nil
}

func (c *Changeset) Revisions() []*Revision {
	out := make([]*Revision, len(c.revisions))
	copy(out, c.revisions)
	return out
}

// AddRevision appends an empty patchable revision and makes it current.
func (c *Changeset) AddRevision() *Revision {
	r := c.newRevision(uint32(len(c.revisions)), true)
	c.revisions = append(c.revisions, r)
	c.current = r.ident
	return r
}

// RemoveRevision pops the tail revision, or empties a revision in the middle
// of the stack. Revision 0 cannot be removed.
func (c *Changeset) RemoveRevision(id uint32) bool {
	if id == 0 || int(id) >= len(c.revisions) {
		return false
	}
	if int(id) == len(c.revisions)-1 {
		c.revisions[id].onChange = nil
		c.revisions = c.revisions[:id]
	} else {
		c.revisions[id].onChange = nil
		c.revisions[id] = c.newRevision(id, true)
	}
	if c.current == id {
		c.current = id - 1
	}
	c.invalidate(id)
	return true
}

// ImportRevision copies src's intervals and patches into the changeset.
// A patchable src becomes a new tail revision and its intervals are rebound
// to it. A non-patchable src is merged into revision 0; vmas already present
// there are kept.
func (c *Changeset) ImportRevision(src *Revision) *Revision {
	var dst *Revision
	if src.patchable {
		dst = c.AddRevision()
	} else {
		dst = c.revisions[0]
	}
	for _, vma := range src.vmas {
		if dst.Interval(vma) != nil {
			continue
		}
		if err := dst.insert(src.intervals[vma].Copy(dst.ident)); err != nil {
			continue
		}
	}
	if dst.patchable && len(src.patches) > 0 {
		for off, b := range src.patches {
			dst.patches[off] = b
		}
		c.invalidate(dst.ident)
	}
	return dst
}

// Image returns the composed image as of rev.
func (c *Changeset) Image(rev int) (*View, error) {
	i, err := c.index(rev)
	if err != nil {
		return nil, err
	}
	if v, ok := c.views[i]; ok {
		return v, nil
	}
	v := &View{chain: c, rev: i}
	c.views[i] = v
	return v, nil
}

// invalidate drops cached views that include revision id.
func (c *Changeset) invalidate(id uint32) {
	for rev := range c.views {
		if rev >= id {
			delete(c.views, rev)
		}
	}
}
