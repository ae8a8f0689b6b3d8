package models

import (
	"fmt"
)

// Interval is a run of addresses [Vma, Vma+Size) and what lives there.
// Rev is the revision whose composed image the interval's bytes are read from.
type Interval struct {
	Vma, Size uint64
	Content   Content
	Rev       uint32
}

func NewInterval(vma, size uint64, content Content) *Interval {
	if content == nil {
		content = RawContent{}
	}
	return &Interval{Vma: vma, Size: size, Content: content}
}

func (i *Interval) Type() ContentType {
	if i.Content == nil {
		return Unknown
	}
	return i.Content.Type()
}

// End returns the last address covered by the interval.
func (i *Interval) End() uint64 {
	return i.Vma + i.Size - 1
}

func (i *Interval) Contains(vma uint64) bool {
	return i.Vma <= vma && vma <= i.End()
}

func (i *Interval) Overlaps(vma, size uint64) bool {
	if size == 0 {
		return false
	}
	return i.Vma <= vma+size-1 && vma <= i.End()
}

// Equal compares position, type and payload. The revision binding is ignored.
func (i *Interval) Equal(o *Interval) bool {
	if i == nil || o == nil {
		return i == o
	}
	if i.Vma != o.Vma || i.Size != o.Size || i.Type() != o.Type() {
		return false
	}
	if i.Content == nil || o.Content == nil {
		return i.Content == nil && o.Content == nil
	}
	return i.Content.Equal(o.Content)
}

// Copy returns a shallow copy bound to rev.
func (i *Interval) Copy(rev uint32) *Interval {
	c := *i
	c.Rev = rev
	return &c
}

func (i *Interval) String() string {
	return fmt.Sprintf("0x%x-0x%x %-7s r%d %s", i.Vma, i.Vma+i.Size, i.Type(), i.Rev, i.Content)
}

type Intervals []*Interval

func (s Intervals) Len() int           { return len(s) }
func (s Intervals) Less(i, j int) bool { return s[i].Vma < s[j].Vma }
func (s Intervals) Swap(i, j int)      { s[i], s[j] = s[j], s[i] }

// Size returns the sum of the interval sizes.
func (s Intervals) Size() uint64 {
	var total uint64
	for _, iv := range s {
		total += iv.Size
	}
	return total
}
