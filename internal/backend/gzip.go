package backend

import (
	"bytes"
	"io"

	"github.com/cockroachdb/errors"
	"github.com/klauspost/compress/gzip"
)

// Injectable constructors for testing.
var (
	gzipNewReader      = gzip.NewReader
	gzipNewWriterLevel = gzip.NewWriterLevel
)

// NewGzipReader decompresses f. An empty file reads as an empty stream.
func NewGzipReader(f io.ReadCloser) (*Compressed, error) {
	zr, err := gzipNewReader(f)
	if err == io.EOF {
		return &Compressed{kind: Gzip, file: f, r: bytes.NewReader(nil)}, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "gzip reader")
	}
	return &Compressed{kind: Gzip, file: f, r: zr}, nil
}

// NewGzipWriter compresses into f at the given level (gzip.DefaultCompression
// when level is 0).
func NewGzipWriter(f io.WriteCloser, level int) (*Compressed, error) {
	if level == 0 {
		level = gzip.DefaultCompression
	}
	zw, err := gzipNewWriterLevel(f, level)
	if err != nil {
		return nil, errors.Wrap(err, "gzip writer")
	}
	return &Compressed{kind: Gzip, file: f, w: zw, flush: zw.Flush}, nil
}
