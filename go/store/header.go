package store

import (
	"io"
	"strings"

	"github.com/lunixbochs/struc"
	"github.com/pkg/errors"
)

const (
	Magic   = "BGOP"
	Version = 1
)

var (
	ErrBadMagic       = errors.New("not a bgo project file")
	ErrBadVersion     = errors.New("unsupported project version")
	ErrSourceMismatch = errors.New("image does not match project digest")
)

// Header precedes the snappy-compressed revision records in a project file.
type Header struct {
	// MAGIC ("BGOP")
	Magic   string `struc:"[4]byte"`
	Version uint32

	// Where the image is mapped and how much of it.
	Base uint64
	Size uint64
	// Revision selected when the project was saved.
	Current uint32

	// Decoder architecture name, right-null-padded.
	Arch string `struc:"[32]byte"`
	// Hex sha256 of the image file.
	Digest string `struc:"[64]byte"`

	PathLen uint16 `struc:"sizeof=Path"`
	// Image path, relative paths are relative to the project file.
	Path string
}

func (h *Header) Pack(w io.Writer) error {
	h.Magic = Magic
	h.Version = Version
	if err := struc.Pack(w, h); err != nil {
		return errors.Wrap(err, "failed to pack header")
	}
	return nil
}

func UnpackHeader(r io.Reader) (*Header, error) {
	var h Header
	if err := struc.Unpack(r, &h); err != nil {
		return nil, errors.Wrap(err, "failed to unpack header")
	}
	if h.Magic != Magic {
		return nil, errors.WithStack(ErrBadMagic)
	}
	if h.Version != Version {
		return nil, errors.Wrapf(ErrBadVersion, "version %d", h.Version)
	}
	h.Arch = strings.TrimRight(h.Arch, "\x00")
	h.Digest = strings.TrimRight(h.Digest, "\x00")
	return &h, nil
}
