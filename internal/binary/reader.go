// Package binary provides the buffered byte stream the page codec reads and
// writes through, together with the small framing primitives (32/64-bit
// integers, length-prefixed strings, dimension vectors) built on it.
package binary

import (
	"encoding/binary"
	"io"
	"slices"

	"github.com/cockroachdb/errors"
)

// ErrNegativeLength is returned when a string length prefix is negative.
var ErrNegativeLength = errors.New("negative string length")

// ChunkSize bounds a single allocation made on behalf of a length read from
// the stream.
const ChunkSize = 1 << 16

// Source is what a Reader pulls bytes from.
type Source interface {
	io.Reader
	io.Seeker
}

// Reader is a buffered reader over a Source. A zero capacity disables
// buffering and every call goes straight to the source.
type Reader struct {
	src    Source
	buf    []byte
	cursor int
	left   int // unread bytes in buf, always in [0, len(buf)]
	order  binary.ByteOrder
	pos    int64
}

// NewReader creates a reader with the given buffer capacity and byte order
// for framing integers.
func NewReader(src Source, capacity int, order binary.ByteOrder) *Reader {
	if capacity < 0 {
		capacity = 0
	}
	return &Reader{
		src:   src,
		buf:   make([]byte, capacity),
		order: order,
	}
}

// Pos returns the number of bytes consumed so far.
func (r *Reader) Pos() int64 {
	return r.pos
}

// ByteOrder returns the configured byte order.
func (r *Reader) ByteOrder() binary.ByteOrder {
	return r.order
}

// Capacity returns the buffer capacity.
func (r *Reader) Capacity() int {
	return len(r.buf)
}

// ReadInto fills dst completely.
func (r *Reader) ReadInto(dst []byte) error {
	return r.read(dst, len(dst))
}

// ReadBytes reads exactly n bytes. The result grows in chunks as bytes
// arrive, so a corrupt length costs at most what the stream holds.
func (r *Reader) ReadBytes(n int) ([]byte, error) {
	if n < 0 {
		return nil, errors.Wrapf(ErrNegativeLength, "length %d", n)
	}
	if n == 0 {
		return nil, nil
	}
	buf := make([]byte, 0, min(n, ChunkSize))
	for len(buf) < n {
		c := min(n-len(buf), ChunkSize)
		buf = slices.Grow(buf, c)
		if err := r.read(buf[len(buf):len(buf)+c], c); err != nil {
			if len(buf) > 0 {
				err = shortRead(len(buf), err)
			}
			return nil, err
		}
		buf = buf[:len(buf)+c]
	}
	return buf, nil
}

// Skip discards n bytes.
func (r *Reader) Skip(n int) error {
	return r.read(nil, n)
}

// read moves n bytes into target, or discards them when target is nil.
// It returns io.EOF when no byte at all was available and
// io.ErrUnexpectedEOF when the stream ended part way through.
func (r *Reader) read(target []byte, n int) error {
	if n <= 0 {
		return nil
	}

	if len(r.buf) == 0 {
		got, err := r.direct(target, n)
		r.pos += int64(got)
		return shortRead(got, err)
	}

	if r.left >= n {
		if target != nil {
			copy(target, r.buf[r.cursor:r.cursor+n])
		}
		r.cursor += n
		r.left -= n
		r.pos += int64(n)
		return nil
	}

	// Drain what is buffered.
	offset := r.left
	if offset > 0 && target != nil {
		copy(target, r.buf[r.cursor:r.cursor+offset])
	}
	r.pos += int64(offset)
	r.cursor, r.left = 0, 0
	residual := n - offset

	// Larger than a refill: go around the buffer.
	if residual > len(r.buf) {
		var dst []byte
		if target != nil {
			dst = target[offset:n]
		}
		got, err := r.direct(dst, residual)
		r.pos += int64(got)
		if err != nil {
			return shortRead(offset+got, err)
		}
		return nil
	}

	got, err := io.ReadFull(r.src, r.buf)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return errors.Wrap(err, "refilling read buffer")
	}
	if got < residual {
		r.pos += int64(got)
		return shortRead(offset+got, io.ErrUnexpectedEOF)
	}
	if target != nil {
		copy(target[offset:n], r.buf[:residual])
	}
	r.cursor = residual
	r.left = got - residual
	r.pos += int64(residual)
	return nil
}

// direct reads or skips n bytes on the source without buffering.
func (r *Reader) direct(target []byte, n int) (int, error) {
	if target != nil {
		return io.ReadFull(r.src, target[:n])
	}
	// Compressed sources report short skips; plain files happily seek past
	// the end, which surfaces on the next read instead.
	if _, err := r.src.Seek(int64(n), io.SeekCurrent); err != nil {
		return 0, err
	}
	return n, nil
}

func shortRead(delivered int, err error) error {
	switch {
	case err == nil:
		return nil
	case delivered == 0 && (err == io.EOF || err == io.ErrUnexpectedEOF):
		return io.EOF
	case err == io.EOF:
		return io.ErrUnexpectedEOF
	default:
		return err
	}
}

// ReadInt32 reads a signed 32-bit integer in the reader's byte order.
func (r *Reader) ReadInt32() (int32, error) {
	var b [4]byte
	if err := r.read(b[:], 4); err != nil {
		return 0, err
	}
	return int32(r.order.Uint32(b[:])), nil
}

// ReadInt64 reads a signed 64-bit integer in the reader's byte order.
func (r *Reader) ReadInt64() (int64, error) {
	var b [8]byte
	if err := r.read(b[:], 8); err != nil {
		return 0, err
	}
	return int64(r.order.Uint64(b[:])), nil
}

// ReadString reads a 32-bit length followed by that many raw bytes.
func (r *Reader) ReadString() (string, error) {
	n, err := r.ReadInt32()
	if err != nil {
		return "", err
	}
	if n < 0 {
		return "", errors.Wrapf(ErrNegativeLength, "length %d", n)
	}
	if n == 0 {
		return "", nil
	}
	b, err := r.ReadBytes(int(n))
	if err != nil {
		return "", shortRead(1, err)
	}
	return string(b), nil
}

// SkipString discards a length-prefixed string.
func (r *Reader) SkipString() error {
	n, err := r.ReadInt32()
	if err != nil {
		return err
	}
	if n < 0 {
		return errors.Wrapf(ErrNegativeLength, "length %d", n)
	}
	return shortRead(1, r.Skip(int(n)))
}

// ReadDims reads one 32-bit dimension per declared dimension.
func (r *Reader) ReadDims(n int) ([]int32, error) {
	dims := make([]int32, n)
	for i := range dims {
		d, err := r.ReadInt32()
		if err != nil {
			return nil, err
		}
		dims[i] = d
	}
	return dims, nil
}
