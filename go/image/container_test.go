package image

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/pkg/errors"

	"github.com/lunixbochs/bgo/go/models"
)

func TestAddIntervalErrors(t *testing.T) {
	c := testContainer(nil)
	mustAdd(t, c, 0, 0x1010, 0x10)
	table := []struct {
		vma, size uint64
		rev       int
		strict    bool
		err       error
	}{
		{0x1000, 0, 0, false, models.ErrInvalidRange},
		{0xff0, 0x20, 0, false, models.ErrBoundsExceeded},
		{0x1ff0, 0x20, 0, false, models.ErrBoundsExceeded},
		{0x1000, 4, 3, false, models.ErrNoSuchRevision},
		{0x1010, 4, 0, false, models.ErrIntervalExists},
		{0x1018, 0x10, 0, false, models.ErrIntervalExists},
		{0x1008, 0x10, 0, false, models.ErrIntervalExists},
		{0x1000, 0x40, 0, true, models.ErrIntervalExists},
		{0x1018, 0x10, 0, true, models.ErrIntervalExists},
		{0x1008, 0x10, 0, true, models.ErrIntervalExists},
		{0x1014, 4, 0, true, models.ErrIntervalExists},
		{0x1014, 4, 0, false, models.ErrIntervalExists},
	}
	for _, v := range table {
		_, err := c.AddInterval(v.vma, v.size, v.rev, v.strict, nil)
		if !errors.Is(err, v.err) {
			t.Errorf("AddInterval(%#x, %#x, %d, %v): got %v, want %v", v.vma, v.size, v.rev, v.strict, err, v.err)
		}
	}
	ivs, err := c.ResolveRange(0x1000, 0x40, 0, true)
	if err != nil {
		t.Fatal(err)
	}
	if len(ivs) != 1 || ivs[0].Vma != 0x1010 {
		t.Errorf("failed adds changed revision 0: %v", ivs)
	}
	if _, err := c.AddInterval(0x1020, 0x10, 0, true, nil); err != nil {
		t.Errorf("strict add next to an interval: %v", err)
	}
	if _, err := c.AddInterval(0x1ff0, 0x10, 0, false, nil); err != nil {
		t.Errorf("add at the window end: %v", err)
	}
}

func TestAddIntervalStrictInherited(t *testing.T) {
	c := testContainer(nil)
	mustAdd(t, c, 0, 0x1000, 16)
	c.AddRevision()
	for _, v := range []struct{ vma, size uint64 }{{0x1000, 16}, {0x1008, 16}, {0x1004, 4}} {
		if _, err := c.AddInterval(v.vma, v.size, 1, true, nil); !errors.Is(err, models.ErrIntervalExists) {
			t.Errorf("strict add %#x(%#x) over inherited interval: got %v", v.vma, v.size, err)
		}
	}
	if _, err := c.AddInterval(0x1010, 8, 1, true, nil); err != nil {
		t.Errorf("strict add past the inherited interval: %v", err)
	}
	if _, err := c.AddInterval(0x1008, 8, 1, false, nil); err != nil {
		t.Errorf("non-strict add over inherited interval: %v", err)
	}
}

func TestAddIntervalObject(t *testing.T) {
	c := testContainer(nil)
	base := mustAdd(t, c, 0, 0x1000, 16)
	c.AddRevision()

	// a local add in revision 1 ignores the inherited interval
	if _, err := c.AddInterval(0x1000, 16, 1, false, nil); err != nil {
		t.Fatalf("local add over inherited interval: %v", err)
	}
	got, err := c.AddIntervalObject(models.NewInterval(0x1000, 16, nil), 1)
	if err != nil {
		t.Fatal(err)
	}
	if got != base {
		t.Errorf("got %v, want the revision 0 interval", got)
	}
	if c.Changeset().Len() != 2 {
		t.Errorf("equal object created a revision")
	}

	data := models.NewInterval(0x1000, 4, models.DataContent{Kind: "u32"})
	first, err := c.AddIntervalObject(data, 1)
	if err != nil {
		t.Fatal(err)
	}
	if first.Rev != 2 || c.Changeset().Len() != 3 || c.CurrentRevision() != 2 {
		t.Fatalf("conflicting object went to revision %d (len %d)", first.Rev, c.Changeset().Len())
	}
	if first == data {
		t.Error("caller's interval was stored directly")
	}
	again, err := c.AddIntervalObject(models.NewInterval(0x1000, 4, models.DataContent{Kind: "u32"}), CurrentRev)
	if err != nil {
		t.Fatal(err)
	}
	if again != first || c.Changeset().Len() != 3 {
		t.Error("second add of an equal object was not a no-op")
	}
	other := models.NewInterval(0x1000, 4, models.DataContent{Kind: "i32"})
	if iv, _ := c.AddIntervalObject(other, 0); iv == first || iv.Rev != 3 {
		t.Errorf("different payload matched an existing interval: %v", iv)
	}

	if _, err := c.AddIntervalObject(models.NewInterval(0x2000, 1, nil), 0); !errors.Is(err, models.ErrBoundsExceeded) {
		t.Errorf("out of bounds object: got %v", err)
	}
}

func TestRemoveInterval(t *testing.T) {
	c := testContainer(nil)
	mustAdd(t, c, 0, 0x1000, 4)
	if c.RemoveInterval(0x1001, 0) {
		t.Error("removed by a non-key address")
	}
	if c.RemoveInterval(0x1000, 7) {
		t.Error("removed from a missing revision")
	}
	if !c.RemoveInterval(0x1000, 0) || c.Exists(0x1000, true, 0) {
		t.Error("interval still present")
	}
}

func TestPatchBytes(t *testing.T) {
	c := testContainer(nil)
	if ok, err := c.PatchBytes(0x1005, []byte{0xff}, 0); ok || err != nil {
		t.Errorf("patch of revision 0: %v, %v", ok, err)
	}
	c.AddRevision()
	if ok, err := c.PatchBytes(0x1005, []byte{0xff}, 1); !ok || err != nil {
		t.Fatalf("patch of revision 1: %v, %v", ok, err)
	}
	if _, err := c.PatchBytes(0x1fff, []byte{1, 2}, 1); !errors.Is(err, models.ErrBoundsExceeded) {
		t.Errorf("patch past the end: got %v", err)
	}
	table := []struct {
		rev  int
		want byte
	}{{0, 0}, {1, 0xff}}
	for _, v := range table {
		p, err := c.Bytes(0x1004, 2, v.rev)
		if err != nil {
			t.Fatal(err)
		}
		if p[1] != v.want {
			t.Errorf("rev %d: byte at 0x1005 = %#x, want %#x", v.rev, p[1], v.want)
		}
	}
}

func TestRemoveTailRevision(t *testing.T) {
	c := testContainer(nil)
	c.AddRevision()
	if !c.RemoveRevision(1) {
		t.Fatal("RemoveRevision(1) failed")
	}
	if c.CurrentRevision() != 0 || len(c.Revisions()) != 1 {
		t.Errorf("current %d with %d revisions", c.CurrentRevision(), len(c.Revisions()))
	}
	if c.RemoveRevision(0) {
		t.Error("removed revision 0")
	}
}

func TestIntervalBytes(t *testing.T) {
	data := []byte("0123456789abcdef")
	c := New(models.NewMemSource(data), 0x400000, 0, nil)
	if c.Size() != 16 {
		t.Fatalf("size %d, want the source size", c.Size())
	}
	c.AddRevision()
	c.PatchBytes(0x400004, []byte("XY"), 1)
	iv, err := c.AddInterval(0x400002, 4, 1, true, nil)
	if err != nil {
		t.Fatal(err)
	}
	p, err := c.IntervalBytes(iv)
	if err != nil {
		t.Fatal(err)
	}
	if string(p) != "23XY" {
		t.Errorf("got %q", p)
	}
}

// fixedDis decodes every width bytes as one instruction.
type fixedDis struct{ width int }

func (f fixedDis) Dis(mem []byte, addr uint64) ([]models.Ins, error) {
	var out []models.Ins
	for i := 0; i+f.width <= len(mem); i += f.width {
		raw := mem[i : i+f.width]
		out = append(out, models.Instruction{
			Address: addr + uint64(i),
			Raw:     raw,
			Mnem:    "db",
			Ops:     fmt.Sprintf("%x", raw),
		})
	}
	return out, nil
}

type brokenDis struct{}

func (brokenDis) Dis(mem []byte, addr uint64) ([]models.Ins, error) {
	return nil, errors.New("bad opcode")
}

func TestDecode(t *testing.T) {
	c := New(models.NewMemSource(bytes.Repeat([]byte{0x90}, 0x20)), 0x1000, 0, nil)
	ivs, err := c.Decode(fixedDis{4}, 0x1000, 0x10, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(ivs) != 4 {
		t.Fatalf("decoded %d instructions", len(ivs))
	}
	for i, iv := range ivs {
		if iv.Type() != models.Code || iv.Vma != 0x1000+uint64(i*4) || iv.Rev != 0 {
			t.Errorf("instruction %d: %v", i, iv)
		}
	}

	// same bytes again: nothing new
	again, err := c.Decode(fixedDis{4}, 0x1000, 0x10, 0)
	if err != nil {
		t.Fatal(err)
	}
	if again[0] != ivs[0] || c.Changeset().Len() != 1 {
		t.Error("redecode was not idempotent")
	}

	// a different width collides and moves into a fresh revision
	ivs, err = c.Decode(fixedDis{2}, 0x1000, 0x8, 0)
	if err != nil {
		t.Fatal(err)
	}
	if c.Changeset().Len() != 2 {
		t.Fatalf("collision left %d revisions", c.Changeset().Len())
	}
	for _, iv := range ivs {
		if iv.Rev != 1 {
			t.Errorf("%v not in revision 1", iv)
		}
	}

	if _, err := c.Decode(brokenDis{}, 0x1000, 4, 0); err == nil {
		t.Error("decoder error was dropped")
	}
}
