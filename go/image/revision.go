package image

import (
	"github.com/pkg/errors"
	"golang.org/x/exp/slices"

	"github.com/lunixbochs/bgo/go/models"
)

// Revision is one layer of interval definitions and byte patches.
// Revision 0 holds intervals but never accepts byte patches.
type Revision struct {
	ident     uint32
	patchable bool

	intervals map[uint64]*models.Interval
	// sorted keys of intervals
	vmas    []uint64
	patches map[uint64]byte

	// called with ident after the revision's bytes change
	onChange func(ident uint32)
}

func NewRevision(ident uint32, patchable bool) *Revision {
	return &Revision{
		ident:     ident,
		patchable: patchable,
		intervals: make(map[uint64]*models.Interval),
		patches:   make(map[uint64]byte),
	}
}

func (r *Revision) Ident() uint32   { return r.ident }
func (r *Revision) Patchable() bool { return r.patchable }
func (r *Revision) Len() int        { return len(r.vmas) }

func (r *Revision) Empty() bool {
	return len(r.intervals) == 0 && len(r.patches) == 0
}

// AddInterval fails if vma is already a key in this revision. Overlap with
// other intervals is not checked here.
func (r *Revision) AddInterval(vma, size uint64, content models.Content) (*models.Interval, error) {
	iv := models.NewInterval(vma, size, content)
	if err := r.insert(iv); err != nil {
		return nil, err
	}
	return iv, nil
}

func (r *Revision) insert(iv *models.Interval) error {
	if iv.Size == 0 {
		return errors.Wrapf(models.ErrInvalidRange, "zero-length interval at %#x", iv.Vma)
	}
	if iv.Vma+iv.Size-1 < iv.Vma {
		return errors.Wrapf(models.ErrInvalidRange, "interval at %#x(%d) wraps", iv.Vma, iv.Size)
	}
	if _, ok := r.intervals[iv.Vma]; ok {
		return errors.Wrapf(models.ErrIntervalExists, "%#x in revision %d", iv.Vma, r.ident)
	}
	iv.Rev = r.ident
	r.intervals[iv.Vma] = iv
	i, _ := slices.BinarySearch(r.vmas, iv.Vma)
	r.vmas = slices.Insert(r.vmas, i, iv.Vma)
	return nil
}

func (r *Revision) RemoveInterval(vma uint64) bool {
	if _, ok := r.intervals[vma]; !ok {
		return false
	}
	delete(r.intervals, vma)
	if i, ok := slices.BinarySearch(r.vmas, vma); ok {
		r.vmas = slices.Delete(r.vmas, i, i+1)
	}
	return true
}

// Interval returns the interval starting exactly at vma.
func (r *Revision) Interval(vma uint64) *models.Interval {
	return r.intervals[vma]
}

// Containing returns the interval covering vma, if any.
func (r *Revision) Containing(vma uint64) *models.Interval {
	// last key <= vma
	i, ok := slices.BinarySearch(r.vmas, vma)
	if !ok {
		if i == 0 {
			return nil
		}
		i--
	}
	iv := r.intervals[r.vmas[i]]
	if iv.Contains(vma) {
		return iv
	}
	return nil
}

// Vmas returns the interval keys in ascending order. The slice must not be modified.
func (r *Revision) Vmas() []uint64 {
	return r.vmas
}

func (r *Revision) Intervals() models.Intervals {
	out := make(models.Intervals, len(r.vmas))
	for i, vma := range r.vmas {
		out[i] = r.intervals[vma]
	}
	return out
}

// PatchBytes overwrites bytes at image offset off. Later writes to an offset
// replace earlier ones. Returns false on a revision that is not patchable.
func (r *Revision) PatchBytes(off uint64, p []byte) bool {
	if !r.patchable {
		return false
	}
	for i, b := range p {
		r.patches[off+uint64(i)] = b
	}
	if len(p) > 0 {
		r.changed()
	}
	return true
}

// ChangedBytes returns a copy of the patched offsets.
func (r *Revision) ChangedBytes() map[uint64]byte {
	out := make(map[uint64]byte, len(r.patches))
	for k, v := range r.patches {
		out[k] = v
	}
	return out
}

func (r *Revision) Patched(off uint64) (byte, bool) {
	b, ok := r.patches[off]
	return b, ok
}

func (r *Revision) Clear() {
	hadPatches := len(r.patches) > 0
	r.intervals = make(map[uint64]*models.Interval)
	r.vmas = nil
	r.patches = make(map[uint64]byte)
	if hadPatches {
		r.changed()
	}
}

func (r *Revision) changed() {
	if r.onChange != nil {
		r.onChange(r.ident)
	}
}
