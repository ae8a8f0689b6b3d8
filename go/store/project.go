package store

import (
	"bufio"
	"encoding/json"
	"io"
	"os"
	"path/filepath"

	"github.com/golang/snappy"
	"github.com/pkg/errors"

	"github.com/lunixbochs/bgo/go/image"
	"github.com/lunixbochs/bgo/go/models"
)

// Project is a container over an image file plus where it is saved.
type Project struct {
	*image.Container

	Arch string
	// project file path, empty until saved
	Path string
	// image path as recorded in the header
	ImagePath string
}

// Opener maps an image path from a project header to a byte source.
type Opener func(path string) (models.ByteSource, error)

func openFile(path string) (models.ByteSource, error) {
	return OpenFile(path)
}

type body struct {
	Revisions []image.RevisionRecord `json:"revisions"`
}

// Create maps the image at imagePath at base. A zero size covers the file.
// The absolute image path is recorded in the project.
func Create(imagePath string, base, size uint64, config *models.Config) (*Project, error) {
	imagePath, err := filepath.Abs(imagePath)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	src, err := OpenFile(imagePath)
	if err != nil {
		return nil, err
	}
	if size > src.Size() {
		src.Close()
		return nil, errors.Errorf("size %#x exceeds %s (%#x bytes)", size, imagePath, src.Size())
	}
	config = config.Init()
	return &Project{
		Container: image.New(src, base, size, config),
		Arch:      config.Arch,
		ImagePath: imagePath,
	}, nil
}

// Write stores the project header and its compressed revision records.
func (p *Project) Write(w io.Writer) error {
	h := &Header{
		Base:    p.Base(),
		Size:    p.Size(),
		Current: p.CurrentRevision(),
		Arch:    p.Arch,
		Digest:  p.Source().Ident(),
		Path:    p.ImagePath,
	}
	if err := h.Pack(w); err != nil {
		return err
	}
	zw := snappy.NewBufferedWriter(w)
	if err := json.NewEncoder(zw).Encode(body{Revisions: p.Changeset().Records()}); err != nil {
		return errors.Wrap(err, "failed to encode revisions")
	}
	return errors.Wrap(zw.Close(), "failed to flush revisions")
}

// Save writes the project to path, replacing any existing file.
func (p *Project) Save(path string) error {
	if path == "" {
		path = p.Path
	}
	if path == "" {
		return errors.New("project has no path")
	}
	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return errors.Wrap(err, "failed to create project file")
	}
	bw := bufio.NewWriter(f)
	if err := p.Write(bw); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := bw.Flush(); err != nil {
		f.Close()
		os.Remove(tmp)
		return errors.Wrap(err, "failed to write project file")
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return errors.Wrap(err, "failed to write project file")
	}
	if err := os.Rename(tmp, path); err != nil {
		return errors.Wrap(err, "failed to replace project file")
	}
	p.Path = path
	return nil
}

// Read loads a project, mapping its image through open. The image must
// match the digest recorded when the project was saved.
func Read(r io.Reader, open Opener, config *models.Config) (*Project, error) {
	h, err := UnpackHeader(r)
	if err != nil {
		return nil, err
	}
	src, err := open(h.Path)
	if err != nil {
		return nil, err
	}
	fail := func(err error) (*Project, error) {
		if c, ok := src.(io.Closer); ok {
			c.Close()
		}
		return nil, err
	}
	if src.Ident() != h.Digest {
		return fail(errors.Wrapf(ErrSourceMismatch, "%s", h.Path))
	}
	if h.Size > src.Size() {
		return fail(errors.Errorf("project size %#x exceeds image size %#x", h.Size, src.Size()))
	}
	config = config.Init()
	if config.Arch == "" {
		config.Arch = h.Arch
	}
	var b body
	if err := json.NewDecoder(snappy.NewReader(r)).Decode(&b); err != nil {
		return fail(errors.Wrap(err, "failed to decode revisions"))
	}
	c := image.New(src, h.Base, h.Size, config)
	if len(b.Revisions) > 0 {
		if err := c.Restore(b.Revisions, h.Current); err != nil {
			return fail(err)
		}
	}
	return &Project{Container: c, Arch: h.Arch, ImagePath: h.Path}, nil
}

// Open loads the project file at path. Relative image paths are resolved
// against the project file's directory.
func Open(path string, config *models.Config) (*Project, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open project")
	}
	defer f.Close()
	dir := filepath.Dir(path)
	open := func(name string) (models.ByteSource, error) {
		if !filepath.IsAbs(name) {
			name = filepath.Join(dir, name)
		}
		return openFile(name)
	}
	p, err := Read(bufio.NewReader(f), open, config)
	if err != nil {
		return nil, errors.Wrapf(err, "load %s", path)
	}
	p.Path = path
	return p, nil
}

// Close releases the image mapping.
func (p *Project) Close() error {
	if c, ok := p.Source().(io.Closer); ok {
		return c.Close()
	}
	return nil
}
