package backend

import (
	"io"
	"os"

	"github.com/cockroachdb/errors"
)

// File is what the plain backend needs from its storage.
type File interface {
	io.ReadWriteSeeker
	io.Closer
}

// PlainFile is an uncompressed positional stream.
type PlainFile struct {
	f File
}

// NewPlain wraps f.
func NewPlain(f File) *PlainFile {
	return &PlainFile{f: f}
}

// OpenPlain opens path for reading, or creates/truncates it for writing.
func OpenPlain(path string, write bool) (*PlainFile, error) {
	var (
		f   *os.File
		err error
	)
	if write {
		f, err = os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0644)
	} else {
		f, err = os.Open(path)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "opening %s", path)
	}
	return NewPlain(f), nil
}

func (p *PlainFile) Read(b []byte) (int, error)  { return p.f.Read(b) }
func (p *PlainFile) Write(b []byte) (int, error) { return p.f.Write(b) }

// Seek repositions the file.
func (p *PlainFile) Seek(offset int64, whence int) (int64, error) {
	return p.f.Seek(offset, whence)
}

// Flush is a no-op unless the file itself buffers.
func (p *PlainFile) Flush() error {
	if fl, ok := p.f.(interface{ Flush() error }); ok {
		return fl.Flush()
	}
	return nil
}

// Close closes the file.
func (p *PlainFile) Close() error {
	return p.f.Close()
}

// Kind returns Plain.
func (p *PlainFile) Kind() Kind { return Plain }
