package backend

import (
	"io"

	"github.com/cockroachdb/errors"
	"github.com/ulikunitz/xz"
)

// Injectable constructors for testing.
var (
	xzNewReader = xz.NewReader
	xzNewWriter = xz.NewWriter
)

// NewXZReader decompresses f.
func NewXZReader(f io.ReadCloser) (*Compressed, error) {
	zr, err := xzNewReader(f)
	if err != nil {
		return nil, errors.Wrap(err, "xz reader")
	}
	return &Compressed{kind: XZ, file: f, r: zr}, nil
}

// NewXZWriter compresses into f. The xz writer emits blocks on Close, so
// Flush is a no-op for this transport.
func NewXZWriter(f io.WriteCloser) (*Compressed, error) {
	zw, err := xzNewWriter(f)
	if err != nil {
		return nil, errors.Wrap(err, "xz writer")
	}
	return &Compressed{kind: XZ, file: f, w: zw}, nil
}
