package dtype

import (
	"encoding/binary"
	"math"

	"github.com/cockroachdb/errors"
)

// ErrVariableWidth is returned when a String vector is handed to the
// fixed-width block codec. Strings are length-prefixed one by one.
var ErrVariableWidth = errors.New("string values are length-prefixed, not block encoded")

// AppendElement appends value i of v to dst in host byte order.
func AppendElement(dst []byte, v Vector, i int, ext Extended) ([]byte, error) {
	ne := binary.NativeEndian
	switch d := v.Data.(type) {
	case []float64:
		if v.Type == LongDouble && ext == Extended80 {
			raw := Float64ToFloat80(d[i])
			if !HostLittleEndian() {
				reverse(raw[:extendedSwapUnit])
			}
			return append(dst, raw[:]...), nil
		}
		return ne.AppendUint64(dst, math.Float64bits(d[i])), nil
	case []float32:
		return ne.AppendUint32(dst, math.Float32bits(d[i])), nil
	case []int64:
		return ne.AppendUint64(dst, uint64(d[i])), nil
	case []uint64:
		return ne.AppendUint64(dst, d[i]), nil
	case []int32:
		return ne.AppendUint32(dst, uint32(d[i])), nil
	case []uint32:
		return ne.AppendUint32(dst, d[i]), nil
	case []int16:
		return ne.AppendUint16(dst, uint16(d[i])), nil
	case []uint16:
		return ne.AppendUint16(dst, d[i]), nil
	case []byte:
		return append(dst, d[i]), nil
	case []string:
		return dst, ErrVariableWidth
	}
	return dst, errors.Wrapf(ErrTypeMismatch, "%s vector holding %T", v.Type, v.Data)
}

// Encode returns the raw host-order bytes of every value in v. The caller
// swaps the block afterwards if the declared order differs from the host.
func Encode(v Vector, ext Extended) ([]byte, error) {
	if err := v.Validate(); err != nil {
		return nil, err
	}
	if v.Type == String {
		return nil, ErrVariableWidth
	}
	n := v.Len()
	out := make([]byte, 0, n*v.Type.Size(ext))
	var err error
	for i := 0; i < n; i++ {
		if out, err = AppendElement(out, v, i, ext); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// EncodeRows is Encode restricted to the rows whose flag is set. A nil
// flags slice selects every row.
func EncodeRows(v Vector, flags []bool, ext Extended) ([]byte, error) {
	if flags == nil {
		return Encode(v, ext)
	}
	if err := v.Validate(); err != nil {
		return nil, err
	}
	out := make([]byte, 0, v.Len()*v.Type.Size(ext))
	var err error
	for i := 0; i < v.Len(); i++ {
		if i < len(flags) && !flags[i] {
			continue
		}
		if out, err = AppendElement(out, v, i, ext); err != nil {
			return nil, err
		}
	}
	return out, nil
}
