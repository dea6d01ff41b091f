// Package rowcount encodes the row-count field that leads every page.
//
// A count that fits in the positive range of an int32 is written as a single
// 32-bit integer. Anything larger is written as the sentinel math.MinInt32
// followed by the count as a 64-bit integer. Fixed-row-count pages store a
// padded count instead of the real one so the field can be patched in place
// as rows are appended without changing its width.
package rowcount

import (
	"math"

	"github.com/cockroachdb/errors"

	"github.com/rtsoliday/sddsTest-sub000/internal/binary"
)

// Sentinel marks a 64-bit row count.
const Sentinel int32 = math.MinInt32

// DefaultIncrement is the fixed-row-count increment used when none is given.
const DefaultIncrement int64 = 500

// ErrNegative is returned when a decoded row count is negative.
var ErrNegative = errors.New("negative row count")

// Fits32 reports whether v can be written as a single 32-bit field.
func Fits32(v int64) bool {
	return v >= 0 && v <= math.MaxInt32
}

// Size returns the encoded size of a row-count field.
func Size(wide bool) int {
	if wide {
		return 4 + 8
	}
	return 4
}

// Padded returns the value stored for r rows in fixed-row-count mode.
func Padded(r, increment int64) int64 {
	if increment <= 0 {
		increment = DefaultIncrement
	}
	return (r/increment + 2) * increment
}

// Encode writes v and reports whether the wide (sentinel + 64-bit) form was
// used.
func Encode(w *binary.Writer, v int64) (wide bool, err error) {
	wide = !Fits32(v)
	return wide, EncodeWidth(w, v, wide)
}

// EncodeWidth writes v in the requested form. Forcing the wide form is
// always legal; the narrow form requires Fits32(v).
func EncodeWidth(w *binary.Writer, v int64, wide bool) error {
	if !wide {
		if !Fits32(v) {
			return errors.Newf("row count %d does not fit a 32-bit field", v)
		}
		return w.WriteInt32(int32(v))
	}
	if err := w.WriteInt32(Sentinel); err != nil {
		return err
	}
	return w.WriteInt64(v)
}

// Decode reads a row-count field, returning the count and whether it was
// stored in the wide form.
func Decode(r *binary.Reader) (count int64, wide bool, err error) {
	v32, err := r.ReadInt32()
	if err != nil {
		return 0, false, err
	}
	if v32 != Sentinel {
		if v32 < 0 {
			return 0, false, errors.Wrapf(ErrNegative, "row count %d", v32)
		}
		return int64(v32), false, nil
	}
	v64, err := r.ReadInt64()
	if err != nil {
		return 0, true, err
	}
	if v64 < 0 {
		return 0, true, errors.Wrapf(ErrNegative, "row count %d", v64)
	}
	return v64, true, nil
}
