package image

import (
	"github.com/pkg/errors"

	"github.com/lunixbochs/bgo/go/models"
)

// A frame is one pending range query against a single revision. Gaps it
// cannot cover are pushed as frames against the previous revision, so the
// stack depth is bounded by the revision index rather than the Go stack.
type frame struct {
	start, max             uint64
	rev                    uint32
	strictStart, strictEnd bool

	cands []*models.Interval
	next  int
	// gap before cands[next] has been handled
	gapDone bool
	// first address in [start, max] not yet covered
	pos  uint64
	done bool
	tail bool

	depth int
}

// query validates a request and clamps its length to the changeset window.
func (c *Changeset) query(start, length uint64, rev int) (uint32, uint64, error) {
	r, err := c.index(rev)
	if err != nil {
		return 0, 0, err
	}
	if length == 0 {
		return 0, 0, errors.WithStack(&models.RangeError{Err: models.ErrInvalidRange, Vma: start, Rev: rev})
	}
	if start < c.baseVma || start-c.baseVma >= c.size {
		return 0, 0, errors.WithStack(&models.RangeError{Err: models.ErrBoundsExceeded, Vma: start, Size: length, Rev: rev})
	}
	if off := start - c.baseVma; length > c.size-off {
		length = c.size - off
	}
	return r, start + length - 1, nil
}

// candidates selects the intervals of rev visible to a query on [start, max].
// With clip set, addresses below start are already covered by newer output,
// so no interval starting there is selected.
func (c *Changeset) candidates(rev uint32, start, max uint64, strictStart, strictEnd, clip bool) []*models.Interval {
	r := c.revisions[rev]
	var cands []*models.Interval
	for _, vma := range r.vmas {
		if vma < start {
			continue
		}
		if vma > max {
			break
		}
		if iv := r.intervals[vma]; iv.End() <= max {
			cands = append(cands, iv)
		}
	}
	if !strictStart && (len(cands) == 0 || cands[0].Vma != start) {
		if iv := r.Containing(start); iv != nil {
			cands = append([]*models.Interval{iv}, cands...)
		}
	}
	if !strictEnd {
		// the two cases are kept apart: nothing found at all, or the found
		// intervals stop short of max
		var want bool
		if len(cands) == 0 {
			want = true
		} else if cands[len(cands)-1].End() < max {
			want = true
		}
		if want {
			if iv := r.Containing(max); iv != nil && !(clip && iv.Vma < start) && (len(cands) == 0 || cands[len(cands)-1] != iv) {
				cands = append(cands, iv)
			}
		}
	}
	return cands
}

func (c *Changeset) frame(start, max uint64, rev uint32, strictStart, strictEnd, clip bool, depth int) *frame {
	return &frame{
		start: start, max: max, rev: rev,
		strictStart: strictStart, strictEnd: strictEnd,
		cands: c.candidates(rev, start, max, strictStart, strictEnd, clip),
		pos:   start,
		depth: depth,
	}
}

// advance marks everything up to and including end as handled.
func (f *frame) advance(end uint64) {
	if end >= f.max {
		f.done = true
	} else if end+1 > f.pos {
		f.pos = end + 1
	}
}

// walk runs the query. When recurse is false, only rev itself is consulted.
func (c *Changeset) walk(start, max uint64, rev uint32, strictStart, strictEnd, recurse bool) (models.Intervals, error) {
	var out models.Intervals
	top := start
	stack := []*frame{c.frame(start, max, rev, strictStart, strictEnd, false, 0)}
	push := func(parent *frame, start, max uint64, strictStart, strictEnd bool) error {
		depth := parent.depth + 1
		if c.MaxDepth > 0 && depth > c.MaxDepth {
			return errors.Wrapf(models.ErrTooManyRevisions, "range query from revision %d exceeds depth %d", rev, c.MaxDepth)
		}
		stack = append(stack, c.frame(start, max, parent.rev-1, strictStart, strictEnd, start != top, depth))
		return nil
	}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		if f.next < len(f.cands) {
			iv := f.cands[f.next]
			if !f.gapDone {
				f.gapDone = true
				// gaps between intervals are always filled strictly; only the
				// leading gap keeps the caller's start semantics
				if recurse && f.rev > 0 && !f.done && iv.Vma > f.pos {
					strict := f.strictStart || f.pos != f.start
					if err := push(f, f.pos, iv.Vma-1, strict, true); err != nil {
						return nil, err
					}
					continue
				}
			}
			if !f.strictEnd || iv.End() <= f.max {
				out = append(out, iv)
			}
			// a dropped overhanging interval still shadows older revisions
			f.advance(iv.End())
			f.next++
			f.gapDone = false
			continue
		}
		if !f.tail {
			f.tail = true
			if recurse && f.rev > 0 && !f.done {
				strict := f.strictStart || f.pos != f.start
				if err := push(f, f.pos, f.max, strict, f.strictEnd); err != nil {
					return nil, err
				}
				continue
			}
		}
		stack = stack[:len(stack)-1]
	}
	return out, nil
}

// Resolve lists the intervals visible in [start, start+length) as of rev,
// filling gaps left by each revision from the revisions below it. The result
// is ascending and non-overlapping but may have holes. Non-strict bounds
// include intervals that merely contain start or the last requested address;
// past the first returned interval, an older interval containing the last
// address is only included if it starts inside the gap it fills.
func Resolve(c *Changeset, start, length uint64, rev int, strictStart, strictEnd bool) (models.Intervals, error) {
	r, max, err := c.query(start, length, rev)
	if err != nil {
		return nil, err
	}
	return c.walk(start, max, r, strictStart, strictEnd, true)
}

// LocalRange is Resolve restricted to the intervals defined by rev itself.
func LocalRange(c *Changeset, start, length uint64, rev int, strict bool) (models.Intervals, error) {
	r, max, err := c.query(start, length, rev)
	if err != nil {
		return nil, err
	}
	return c.walk(start, max, r, strict, strict, false)
}
