package binary

import (
	"encoding/binary"
	"io"

	"github.com/cockroachdb/errors"
)

// Sink is what a Writer pushes bytes to.
type Sink interface {
	io.Writer
	Flush() error
}

// Writer is a buffered writer over a Sink. A zero capacity disables
// buffering and every call goes straight to the sink.
type Writer struct {
	dst    Sink
	buf    []byte
	cursor int
	left   int // free bytes in buf, always in [0, len(buf)]
	order  binary.ByteOrder
	pos    int64
}

// NewWriter creates a writer with the given buffer capacity, starting at
// logical stream offset start.
func NewWriter(dst Sink, capacity int, order binary.ByteOrder, start int64) *Writer {
	if capacity < 0 {
		capacity = 0
	}
	return &Writer{
		dst:   dst,
		buf:   make([]byte, capacity),
		left:  capacity,
		order: order,
		pos:   start,
	}
}

// Pos returns the logical stream offset, including bytes still buffered.
func (w *Writer) Pos() int64 {
	return w.pos
}

// ByteOrder returns the configured byte order.
func (w *Writer) ByteOrder() binary.ByteOrder {
	return w.order
}

// Capacity returns the buffer capacity.
func (w *Writer) Capacity() int {
	return len(w.buf)
}

// Buffered returns the number of bytes waiting for Flush.
func (w *Writer) Buffered() int {
	return len(w.buf) - w.left
}

// WriteBytes writes data through the buffer.
func (w *Writer) WriteBytes(data []byte) error {
	n := len(data)
	if n == 0 {
		return nil
	}

	if len(w.buf) == 0 {
		if err := w.direct(data); err != nil {
			return err
		}
		w.pos += int64(n)
		return nil
	}

	if n < w.left {
		copy(w.buf[w.cursor:], data)
		w.cursor += n
		w.left -= n
		w.pos += int64(n)
		return nil
	}

	// Top the buffer up and push it out whole.
	fill := w.left
	copy(w.buf[w.cursor:], data[:fill])
	if err := w.direct(w.buf); err != nil {
		return err
	}
	w.cursor, w.left = 0, len(w.buf)

	residual := data[fill:]
	if len(residual) > len(w.buf) {
		if err := w.direct(residual); err != nil {
			return err
		}
	} else {
		copy(w.buf, residual)
		w.cursor = len(residual)
		w.left = len(w.buf) - len(residual)
	}
	w.pos += int64(n)
	return nil
}

func (w *Writer) direct(data []byte) error {
	n, err := w.dst.Write(data)
	if err != nil {
		return errors.Wrap(err, "writing to backend")
	}
	if n != len(data) {
		return errors.Wrapf(io.ErrShortWrite, "wrote %d of %d bytes", n, len(data))
	}
	return nil
}

// Rewind drops the bytes written at or after stream offset mark. It reports
// false, and changes nothing, when some of them already reached the sink.
func (w *Writer) Rewind(mark int64) bool {
	drop := w.pos - mark
	if drop < 0 || drop > int64(w.Buffered()) {
		return false
	}
	w.cursor -= int(drop)
	w.left += int(drop)
	w.pos = mark
	return true
}

// Flush writes the buffered bytes and flushes the sink.
func (w *Writer) Flush() error {
	if used := len(w.buf) - w.left; used > 0 {
		if err := w.direct(w.buf[:used]); err != nil {
			return err
		}
	}
	w.cursor, w.left = 0, len(w.buf)
	return w.dst.Flush()
}

// WriteInt32 writes a signed 32-bit integer in the writer's byte order.
func (w *Writer) WriteInt32(v int32) error {
	var b [4]byte
	w.order.PutUint32(b[:], uint32(v))
	return w.WriteBytes(b[:])
}

// WriteInt64 writes a signed 64-bit integer in the writer's byte order.
func (w *Writer) WriteInt64(v int64) error {
	var b [8]byte
	w.order.PutUint64(b[:], uint64(v))
	return w.WriteBytes(b[:])
}

// WriteString writes a 32-bit length followed by the raw bytes of s, with
// no terminator. The empty string is written as length 0.
func (w *Writer) WriteString(s string) error {
	if err := w.WriteInt32(int32(len(s))); err != nil {
		return err
	}
	if len(s) == 0 {
		return nil
	}
	return w.WriteBytes([]byte(s))
}

// WriteDims writes one 32-bit integer per declared dimension. A nil dims
// writes n zeros.
func (w *Writer) WriteDims(dims []int32, n int) error {
	for i := 0; i < n; i++ {
		var d int32
		if i < len(dims) {
			d = dims[i]
		}
		if err := w.WriteInt32(d); err != nil {
			return err
		}
	}
	return nil
}
