package image

import (
	"encoding/hex"

	"github.com/pkg/errors"

	"github.com/lunixbochs/bgo/go/models"
)

// RevisionRecord is the persisted form of a Revision.
type RevisionRecord struct {
	Ident        uint32           `json:"ident"`
	IsEmpty      bool             `json:"is_empty"`
	ChangedBytes map[uint64]byte  `json:"changed_bytes"`
	Intervals    []IntervalRecord `json:"intervals"`
}

type InsRecord struct {
	Addr     uint64 `json:"addr"`
	Bytes    string `json:"bytes"`
	Mnemonic string `json:"mnemonic"`
	OpStr    string `json:"op_str,omitempty"`
}

type DataRecord struct {
	Kind    string `json:"kind,omitempty"`
	Comment string `json:"comment,omitempty"`
}

type IntervalRecord struct {
	Vma  uint64      `json:"vma"`
	Size uint64      `json:"size"`
	Type string      `json:"type"`
	Rev  uint32      `json:"rev"`
	Ins  *InsRecord  `json:"ins,omitempty"`
	Data *DataRecord `json:"data,omitempty"`
}

func NewIntervalRecord(iv *models.Interval) IntervalRecord {
	rec := IntervalRecord{Vma: iv.Vma, Size: iv.Size, Type: iv.Type().String(), Rev: iv.Rev}
	switch c := iv.Content.(type) {
	case models.CodeContent:
		rec.Ins = &InsRecord{
			Addr:     c.Ins.Address,
			Bytes:    hex.EncodeToString(c.Ins.Raw),
			Mnemonic: c.Ins.Mnem,
			OpStr:    c.Ins.Ops,
		}
	case models.DataContent:
		rec.Data = &DataRecord{Kind: c.Kind, Comment: c.Comment}
	}
	return rec
}

func (r IntervalRecord) Interval() (*models.Interval, error) {
	typ, err := models.ParseContentType(r.Type)
	if err != nil {
		return nil, err
	}
	var content models.Content
	switch typ {
	case models.Code:
		if r.Ins == nil {
			return nil, errors.Errorf("code interval at %#x has no instruction", r.Vma)
		}
		raw, err := hex.DecodeString(r.Ins.Bytes)
		if err != nil {
			return nil, errors.Wrapf(err, "instruction bytes at %#x", r.Vma)
		}
		content = models.CodeContent{Ins: models.Instruction{
			Address: r.Ins.Addr,
			Raw:     raw,
			Mnem:    r.Ins.Mnemonic,
			Ops:     r.Ins.OpStr,
		}}
	case models.Data:
		content = models.DataContent{}
		if r.Data != nil {
			content = models.DataContent{Kind: r.Data.Kind, Comment: r.Data.Comment}
		}
	default:
		content = models.RawContent{}
	}
	return &models.Interval{Vma: r.Vma, Size: r.Size, Content: content, Rev: r.Rev}, nil
}

func (r *Revision) Record() RevisionRecord {
	rec := RevisionRecord{
		Ident:        r.ident,
		IsEmpty:      !r.patchable,
		ChangedBytes: r.ChangedBytes(),
		Intervals:    make([]IntervalRecord, 0, len(r.vmas)),
	}
	for _, vma := range r.vmas {
		rec.Intervals = append(rec.Intervals, NewIntervalRecord(r.intervals[vma]))
	}
	return rec
}

// RevisionFromRecord rebuilds a detached revision, suitable for ImportRevision.
func RevisionFromRecord(rec RevisionRecord) (*Revision, error) {
	r := NewRevision(rec.Ident, !rec.IsEmpty)
	for _, irec := range rec.Intervals {
		iv, err := irec.Interval()
		if err != nil {
			return nil, err
		}
		if err := r.insert(iv); err != nil {
			return nil, errors.Wrapf(err, "revision %d", rec.Ident)
		}
	}
	if r.patchable {
		for off, b := range rec.ChangedBytes {
			r.patches[off] = b
		}
	} else if len(rec.ChangedBytes) > 0 {
		return nil, errors.Wrapf(models.ErrNotPatchable, "revision %d has changed bytes", rec.Ident)
	}
	return r, nil
}

func (c *Changeset) Records() []RevisionRecord {
	out := make([]RevisionRecord, len(c.revisions))
	for i, r := range c.revisions {
		out[i] = r.Record()
	}
	return out
}

// Restore loads revision records, in ident order, into a container that has
// no revisions beyond 0, then selects current. Every record is checked before
// any is loaded, so a failed Restore leaves the container unchanged.
func (c *Container) Restore(recs []RevisionRecord, current uint32) error {
	if c.chain.Len() != 1 {
		return errors.Errorf("restore into container with %d revisions", c.chain.Len())
	}
	if n := len(recs); current > 0 && int(current) >= n {
		return errors.Wrapf(models.ErrNoSuchRevision, "current revision %d of %d records", current, n)
	}
	revs := make([]*Revision, len(recs))
	for i, rec := range recs {
		if rec.Ident != uint32(i) {
			return errors.Errorf("revision record %d has ident %d", i, rec.Ident)
		}
		if (i == 0) != rec.IsEmpty {
			return errors.Errorf("revision record %d: is_empty=%v", i, rec.IsEmpty)
		}
		r, err := RevisionFromRecord(rec)
		if err != nil {
			return err
		}
		for _, iv := range r.Intervals() {
			if !c.InBounds(iv.Vma, iv.Size) {
				return c.boundsErr(iv.Vma, iv.Size, i)
			}
		}
		revs[i] = r
	}
	for _, r := range revs {
		c.chain.ImportRevision(r)
	}
	return c.chain.SetCurrent(current)
}
