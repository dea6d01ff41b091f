package dtype

import (
	"encoding/binary"
	"math"

	"github.com/cockroachdb/errors"
)

// DecodeElement stores the host-order raw value in index i of v. raw must
// hold at least v.Type.Size(ext) bytes.
func DecodeElement(v Vector, i int, raw []byte, ext Extended) error {
	ne := binary.NativeEndian
	switch d := v.Data.(type) {
	case []float64:
		if v.Type == LongDouble && ext == Extended80 {
			d[i] = Float80ToFloat64(raw[:Float80Size], !HostLittleEndian())
			return nil
		}
		d[i] = math.Float64frombits(ne.Uint64(raw))
	case []float32:
		d[i] = math.Float32frombits(ne.Uint32(raw))
	case []int64:
		d[i] = int64(ne.Uint64(raw))
	case []uint64:
		d[i] = ne.Uint64(raw)
	case []int32:
		d[i] = int32(ne.Uint32(raw))
	case []uint32:
		d[i] = ne.Uint32(raw)
	case []int16:
		d[i] = int16(ne.Uint16(raw))
	case []uint16:
		d[i] = ne.Uint16(raw)
	case []byte:
		d[i] = raw[0]
	case []string:
		return ErrVariableWidth
	default:
		return errors.Wrapf(ErrTypeMismatch, "%s vector holding %T", v.Type, v.Data)
	}
	return nil
}

// Decode turns n host-order raw values of type t into a vector.
func Decode(t Type, raw []byte, n int, ext Extended) (Vector, error) {
	if t == String {
		return Vector{}, ErrVariableWidth
	}
	if !t.Valid() {
		return Vector{}, errors.Wrapf(ErrUnknownType, "code %d", int32(t))
	}
	size := t.Size(ext)
	if len(raw) < n*size {
		return Vector{}, errors.Newf("decoding %d %s values: have %d bytes, need %d", n, t, len(raw), n*size)
	}
	v := NewVector(t, n)
	for i := 0; i < n; i++ {
		if err := DecodeElement(v, i, raw[i*size:(i+1)*size], ext); err != nil {
			return Vector{}, err
		}
	}
	return v, nil
}
