// Package backend implements the byte-stream transports a dataset can be
// written through: a plain positional file, a gzip stream and an xz stream.
//
// Exactly one backend is active per dataset and it is chosen when the
// dataset is opened. All three reproduce the same byte sequence; the
// compressed ones only differ in which seeks they can honour.
package backend

import (
	"io"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
)

// ErrNotSeekable is returned by compressed transports for seeks they cannot
// perform (anything other than a position query or a forward skip on read).
var ErrNotSeekable = errors.New("backend does not support this seek")

// Backend is the capability set the page codec needs from a transport.
type Backend interface {
	io.Reader
	io.Writer
	io.Seeker
	// Flush pushes any transport-level buffering to the underlying file.
	Flush() error
	// Close flushes and releases the transport and the file beneath it.
	Close() error
	// Kind reports which transport this is.
	Kind() Kind
}

// Kind identifies a transport.
type Kind int

const (
	// Plain is an uncompressed positional stream.
	Plain Kind = iota
	// Gzip is a gzip-compressed stream.
	Gzip
	// XZ is an xz/LZMA2-compressed stream.
	XZ
)

func (k Kind) String() string {
	switch k {
	case Plain:
		return "plain"
	case Gzip:
		return "gzip"
	case XZ:
		return "xz"
	default:
		return "unknown"
	}
}

// ParseKind maps a config string to a Kind.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none", "plain":
		return Plain, nil
	case "gzip", "gz":
		return Gzip, nil
	case "xz", "lzma":
		return XZ, nil
	default:
		return Plain, errors.Newf("unknown compression %q", s)
	}
}

// KindFromPath infers the transport from a file extension.
func KindFromPath(path string) Kind {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".gz":
		return Gzip
	case ".xz", ".lzma":
		return XZ
	default:
		return Plain
	}
}

// Position returns the current stream position of b.
func Position(b Backend) (int64, error) {
	return b.Seek(0, io.SeekCurrent)
}

// Open opens path through the transport kind. For writing the file is
// created or truncated; level only applies to gzip.
func Open(path string, kind Kind, write bool, level int) (Backend, error) {
	p, err := OpenPlain(path, write)
	if err != nil {
		return nil, err
	}
	var b Backend
	switch kind {
	case Plain:
		return p, nil
	case Gzip:
		if write {
			b, err = NewGzipWriter(p.f, level)
		} else {
			b, err = NewGzipReader(p.f)
		}
	case XZ:
		if write {
			b, err = NewXZWriter(p.f)
		} else {
			b, err = NewXZReader(p.f)
		}
	default:
		err = errors.Newf("unknown backend kind %d", kind)
	}
	if err != nil {
		p.Close()
		return nil, errors.Wrapf(err, "opening %s as %s", path, kind)
	}
	return b, nil
}
