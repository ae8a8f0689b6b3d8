package image

import (
	"github.com/pkg/errors"

	"github.com/lunixbochs/bgo/go/models"
)

// Container maps an image at a base address and tracks the intervals and
// patches layered over it. It is not safe for concurrent use.
type Container struct {
	chain  *Changeset
	base   uint64
	size   uint64
	config *models.Config
}

// New maps src at base. A zero size uses the size of src.
func New(src models.ByteSource, base, size uint64, config *models.Config) *Container {
	if size == 0 {
		size = src.Size()
	}
	config = config.Init()
	chain := NewChangeset(src, base, size)
	if config.MaxDepth > 0 {
		chain.MaxDepth = config.MaxDepth
	}
	return &Container{chain: chain, base: base, size: size, config: config}
}

func (c *Container) Base() uint64              { return c.base }
func (c *Container) Size() uint64              { return c.size }
func (c *Container) Source() models.ByteSource { return c.chain.base }
func (c *Container) Changeset() *Changeset     { return c.chain }
func (c *Container) Config() *models.Config    { return c.config }
func (c *Container) CurrentRevision() uint32   { return c.chain.Current() }
func (c *Container) Revisions() []*Revision    { return c.chain.Revisions() }
func (c *Container) SetCurrentRevision(id uint32) error {
	return c.chain.SetCurrent(id)
}

func (c *Container) Revision(rev int) (*Revision, error) {
	return c.chain.Revision(rev)
}

// InBounds reports whether [vma, vma+size) lies inside the container.
func (c *Container) InBounds(vma, size uint64) bool {
	if vma < c.base {
		return false
	}
	off := vma - c.base
	return off <= c.size && size <= c.size-off
}

func (c *Container) boundsErr(vma, size uint64, rev int) error {
	return errors.WithStack(&models.RangeError{Err: models.ErrBoundsExceeded, Vma: vma, Size: size, Rev: rev})
}

// Exists reports whether any interval covers vma. Without recurse only the
// selected revision's own intervals are checked.
func (c *Container) Exists(vma uint64, recurse bool, rev int) bool {
	if !recurse {
		r, err := c.chain.Revision(rev)
		if err != nil {
			return false
		}
		return r.Containing(vma) != nil
	}
	ivs, err := Resolve(c.chain, vma, 1, rev, false, false)
	return err == nil && len(ivs) > 0
}

func (c *Container) RangeExists(start, length uint64, rev int, recurse, strict bool) (bool, error) {
	var ivs models.Intervals
	var err error
	if recurse {
		ivs, err = Resolve(c.chain, start, length, rev, strict, strict)
	} else {
		ivs, err = LocalRange(c.chain, start, length, rev, strict)
	}
	if err != nil {
		return false, err
	}
	return len(ivs) > 0, nil
}

func (c *Container) Resolve(start, length uint64, rev int, strictStart, strictEnd bool) (models.Intervals, error) {
	return Resolve(c.chain, start, length, rev, strictStart, strictEnd)
}

func (c *Container) ResolveRange(start, length uint64, rev int, strict bool) (models.Intervals, error) {
	return Resolve(c.chain, start, length, rev, strict, strict)
}

// ContiguousRange is ResolveRange with every hole in [start, start+length)
// covered by a raw filler interval, so the result has no gaps. With strict
// set the result tiles the range exactly; otherwise intervals containing
// either bound are returned whole.
func (c *Container) ContiguousRange(start, length uint64, rev int, strict bool) (models.Intervals, error) {
	r, max, err := c.chain.query(start, length, rev)
	if err != nil {
		return nil, err
	}
	ivs, err := c.chain.walk(start, max, r, strict, strict, true)
	if err != nil {
		return nil, err
	}
	filler := func(vma, end uint64) *models.Interval {
		return &models.Interval{Vma: vma, Size: end - vma + 1, Content: models.RawContent{}, Rev: r}
	}
	out := make(models.Intervals, 0, len(ivs)*2+1)
	pos, done := start, false
	for _, iv := range ivs {
		if !done && iv.Vma > pos {
			out = append(out, filler(pos, iv.Vma-1))
		}
		out = append(out, iv)
		if iv.End() >= max {
			done = true
		} else if iv.End()+1 > pos {
			pos = iv.End() + 1
		}
	}
	if !done {
		out = append(out, filler(pos, max))
	}
	return out, nil
}

// AddInterval creates an interval in rev. It fails if the range leaves the
// container or if rev already has an interval on any byte of the range.
// With strict set, intervals inherited from older revisions also collide.
func (c *Container) AddInterval(vma, size uint64, rev int, strict bool, content models.Content) (*models.Interval, error) {
	if size == 0 {
		return nil, errors.WithStack(&models.RangeError{Err: models.ErrInvalidRange, Vma: vma, Rev: rev})
	}
	if !c.InBounds(vma, size) {
		return nil, c.boundsErr(vma, size, rev)
	}
	r, err := c.chain.Revision(rev)
	if err != nil {
		return nil, err
	}
	// a non-strict walk sees every interval touching the range
	exists, err := c.RangeExists(vma, size, int(r.ident), false, false)
	if err == nil && !exists && strict {
		exists, err = c.RangeExists(vma, size, int(r.ident), true, false)
	}
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, errors.WithStack(&models.RangeError{Err: models.ErrIntervalExists, Vma: vma, Size: size, Rev: int(r.ident)})
	}
	iv, err := r.AddInterval(vma, size, content)
	if err != nil {
		return nil, err
	}
	c.config.Debugf("add %v\n", iv)
	return iv, nil
}

// AddIntervalObject inserts iv unless an equal interval already exists at
// iv.Vma in any revision, in which case the oldest such interval is returned.
// If rev has a conflicting interval, a new revision is created and iv goes
// there.
func (c *Container) AddIntervalObject(iv *models.Interval, rev int) (*models.Interval, error) {
	if iv.Size == 0 {
		return nil, errors.WithStack(&models.RangeError{Err: models.ErrInvalidRange, Vma: iv.Vma, Rev: rev})
	}
	if !c.InBounds(iv.Vma, iv.Size) {
		return nil, c.boundsErr(iv.Vma, iv.Size, rev)
	}
	r, err := c.chain.Revision(rev)
	if err != nil {
		return nil, err
	}
	for i := 0; i < len(c.chain.revisions); i++ {
		if have := c.chain.revisions[i].Interval(iv.Vma); have != nil && have.Equal(iv) {
			return have, nil
		}
	}
	conflict, err := c.RangeExists(iv.Vma, iv.Size, int(r.ident), false, false)
	if err != nil {
		return nil, err
	}
	if conflict {
		r = c.chain.AddRevision()
		c.config.Debugf("conflict at %#x, forked revision %d\n", iv.Vma, r.ident)
	}
	obj := iv.Copy(r.ident)
	if err := r.insert(obj); err != nil {
		return nil, err
	}
	return obj, nil
}

func (c *Container) RemoveInterval(vma uint64, rev int) bool {
	r, err := c.chain.Revision(rev)
	if err != nil {
		return false
	}
	return r.RemoveInterval(vma)
}

func (c *Container) AddRevision() *Revision {
	return c.chain.AddRevision()
}

func (c *Container) RemoveRevision(id uint32) bool {
	return c.chain.RemoveRevision(id)
}

func (c *Container) ImportRevision(src *Revision) *Revision {
	return c.chain.ImportRevision(src)
}

// PatchBytes overwrites bytes at vma in rev. It returns false for a revision
// that cannot be patched.
func (c *Container) PatchBytes(vma uint64, p []byte, rev int) (bool, error) {
	if !c.InBounds(vma, uint64(len(p))) {
		return false, c.boundsErr(vma, uint64(len(p)), rev)
	}
	r, err := c.chain.Revision(rev)
	if err != nil {
		return false, err
	}
	return r.PatchBytes(vma-c.base, p), nil
}

// Image returns the composed image as of rev.
func (c *Container) Image(rev int) (*View, error) {
	return c.chain.Image(rev)
}

// Bytes reads n bytes at vma from the composed image as of rev.
func (c *Container) Bytes(vma, n uint64, rev int) ([]byte, error) {
	if !c.InBounds(vma, n) {
		return nil, c.boundsErr(vma, n, rev)
	}
	v, err := c.chain.Image(rev)
	if err != nil {
		return nil, err
	}
	return v.Read(vma-c.base, n)
}

// IntervalBytes reads an interval's bytes from the revision it belongs to.
func (c *Container) IntervalBytes(iv *models.Interval) ([]byte, error) {
	return c.Bytes(iv.Vma, iv.Size, int(iv.Rev))
}
