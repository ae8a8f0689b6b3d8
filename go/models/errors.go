package models

import (
	"fmt"

	"github.com/pkg/errors"
)

// Range errors
var (
	ErrBoundsExceeded = errors.New("bounds exceeded")
	ErrInvalidRange   = errors.New("invalid range")
	ErrOutOfBounds    = errors.New("read out of bounds")
)

// Interval errors
var (
	ErrIntervalExists = errors.New("interval exists")
)

// Revision errors
var (
	ErrNoSuchRevision   = errors.New("no such revision")
	ErrNotPatchable     = errors.New("revision is not patchable")
	ErrTooManyRevisions = errors.New("too many revisions")
)

// RangeError reports the range that triggered one of the errors above.
type RangeError struct {
	Err       error
	Vma, Size uint64
	Rev       int
}

func (r *RangeError) Error() string {
	return fmt.Sprintf("%v at %#x(%d) in revision %d", r.Err, r.Vma, r.Size, r.Rev)
}

func (r *RangeError) Unwrap() error { return r.Err }
