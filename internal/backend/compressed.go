package backend

import (
	"io"

	"github.com/cockroachdb/errors"
)

// Compressed is a one-directional compressed stream. The uncompressed
// position is tracked so the codec can record offsets, but only forward
// skips on read can be honoured.
type Compressed struct {
	kind  Kind
	file  io.Closer
	r     io.Reader
	w     io.WriteCloser
	flush func() error
	pos   int64
}

func (c *Compressed) Read(b []byte) (int, error) {
	if c.r == nil {
		return 0, errors.Newf("%s backend opened for writing", c.kind)
	}
	n, err := c.r.Read(b)
	c.pos += int64(n)
	return n, err
}

func (c *Compressed) Write(b []byte) (int, error) {
	if c.w == nil {
		return 0, errors.Newf("%s backend opened for reading", c.kind)
	}
	n, err := c.w.Write(b)
	c.pos += int64(n)
	return n, err
}

// Seek answers position queries and performs forward skips while reading.
func (c *Compressed) Seek(offset int64, whence int) (int64, error) {
	var target int64
	switch whence {
	case io.SeekCurrent:
		target = c.pos + offset
	case io.SeekStart:
		target = offset
	default:
		return c.pos, ErrNotSeekable
	}
	if target == c.pos {
		return c.pos, nil
	}
	if c.r == nil || target < c.pos {
		return c.pos, errors.Wrapf(ErrNotSeekable, "%s seek from %d to %d", c.kind, c.pos, target)
	}
	n, err := io.CopyN(io.Discard, c.r, target-c.pos)
	c.pos += n
	if err == io.EOF {
		err = io.ErrUnexpectedEOF
	}
	return c.pos, err
}

// Flush pushes pending compressed output to the file.
func (c *Compressed) Flush() error {
	if c.flush == nil {
		return nil
	}
	return c.flush()
}

// Close finishes the compressed stream and closes the file.
func (c *Compressed) Close() error {
	var err error
	if c.w != nil {
		err = c.w.Close()
	} else if rc, ok := c.r.(io.Closer); ok {
		err = rc.Close()
	}
	if cerr := c.file.Close(); err == nil {
		err = cerr
	}
	return err
}

// Kind returns the transport kind.
func (c *Compressed) Kind() Kind { return c.kind }
