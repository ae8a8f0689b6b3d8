package store

import (
	"crypto/sha256"
	"encoding/hex"
	"io"

	"github.com/pkg/errors"
	"golang.org/x/exp/mmap"

	"github.com/lunixbochs/bgo/go/models"
)

// FileSource is a read-only memory-mapped image file.
type FileSource struct {
	r     *mmap.ReaderAt
	path  string
	ident string
}

func OpenFile(path string) (*FileSource, error) {
	r, err := mmap.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to map %s", path)
	}
	h := sha256.New()
	if _, err := io.Copy(h, io.NewSectionReader(r, 0, int64(r.Len()))); err != nil {
		r.Close()
		return nil, errors.Wrapf(err, "failed to hash %s", path)
	}
	return &FileSource{r: r, path: path, ident: hex.EncodeToString(h.Sum(nil))}, nil
}

func (f *FileSource) Path() string  { return f.path }
func (f *FileSource) Ident() string { return f.ident }
func (f *FileSource) Size() uint64  { return uint64(f.r.Len()) }

func (f *FileSource) Read(off, n uint64) ([]byte, error) {
	if err := models.CheckRead(f, off, n); err != nil {
		return nil, err
	}
	p := make([]byte, n)
	if n == 0 {
		return p, nil
	}
	if _, err := f.r.ReadAt(p, int64(off)); err != nil && err != io.EOF {
		return nil, errors.Wrapf(err, "read %s at %#x", f.path, off)
	}
	return p, nil
}

func (f *FileSource) Close() error {
	return f.r.Close()
}
