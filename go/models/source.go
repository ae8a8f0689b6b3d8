package models

import (
	"crypto/sha256"
	"encoding/hex"

	"github.com/pkg/errors"
)

// ByteSource is an immutable blob of bytes identified by a content digest.
type ByteSource interface {
	Size() uint64
	// Read fails with ErrOutOfBounds if off+n > Size().
	Read(off, n uint64) ([]byte, error)
	Ident() string
}

func Digest(p []byte) string {
	sum := sha256.Sum256(p)
	return hex.EncodeToString(sum[:])
}

func CheckRead(src ByteSource, off, n uint64) error {
	size := src.Size()
	if off > size || n > size-off {
		return errors.Wrapf(ErrOutOfBounds, "read %#x(%d) from %d byte source", off, n, size)
	}
	return nil
}

// MemSource is a ByteSource over a resident byte slice.
type MemSource struct {
	data  []byte
	ident string
}

func NewMemSource(data []byte) *MemSource {
	return &MemSource{data: data, ident: Digest(data)}
}

func (m *MemSource) Size() uint64  { return uint64(len(m.data)) }
func (m *MemSource) Ident() string { return m.ident }

func (m *MemSource) Read(off, n uint64) ([]byte, error) {
	if err := CheckRead(m, off, n); err != nil {
		return nil, err
	}
	out := make([]byte, n)
	copy(out, m.data[off:off+n])
	return out, nil
}
