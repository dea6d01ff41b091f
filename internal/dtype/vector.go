package dtype

import (
	"math"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
)

// Vector is a run of values of one Type. Data holds the Go slice for the
// type: []float64 for LongDouble and Double, []float32 for Float, []int64,
// []uint64, []int32, []uint32, []int16, []uint16 for the integer kinds,
// []string for String and []byte for Character.
type Vector struct {
	Type Type
	Data any
}

// NewVector allocates a zeroed vector of n values.
func NewVector(t Type, n int) Vector {
	var data any
	switch t {
	case LongDouble, Double:
		data = make([]float64, n)
	case Float:
		data = make([]float32, n)
	case Long64:
		data = make([]int64, n)
	case ULong64:
		data = make([]uint64, n)
	case Long:
		data = make([]int32, n)
	case ULong:
		data = make([]uint32, n)
	case Short:
		data = make([]int16, n)
	case UShort:
		data = make([]uint16, n)
	case String:
		data = make([]string, n)
	case Character:
		data = make([]byte, n)
	}
	return Vector{Type: t, Data: data}
}

// Validate checks that Data is the slice type declared by Type.
func (v Vector) Validate() error {
	ok := false
	switch v.Data.(type) {
	case []float64:
		ok = v.Type == LongDouble || v.Type == Double
	case []float32:
		ok = v.Type == Float
	case []int64:
		ok = v.Type == Long64
	case []uint64:
		ok = v.Type == ULong64
	case []int32:
		ok = v.Type == Long
	case []uint32:
		ok = v.Type == ULong
	case []int16:
		ok = v.Type == Short
	case []uint16:
		ok = v.Type == UShort
	case []string:
		ok = v.Type == String
	case []byte:
		ok = v.Type == Character
	}
	if !ok {
		return errors.Wrapf(ErrTypeMismatch, "%s vector holding %T", v.Type, v.Data)
	}
	return nil
}

// Len returns the number of values.
func (v Vector) Len() int {
	switch d := v.Data.(type) {
	case []float64:
		return len(d)
	case []float32:
		return len(d)
	case []int64:
		return len(d)
	case []uint64:
		return len(d)
	case []int32:
		return len(d)
	case []uint32:
		return len(d)
	case []int16:
		return len(d)
	case []uint16:
		return len(d)
	case []string:
		return len(d)
	case []byte:
		return len(d)
	}
	return 0
}

// At returns value i as its Go type.
func (v Vector) At(i int) any {
	switch d := v.Data.(type) {
	case []float64:
		return d[i]
	case []float32:
		return d[i]
	case []int64:
		return d[i]
	case []uint64:
		return d[i]
	case []int32:
		return d[i]
	case []uint32:
		return d[i]
	case []int16:
		return d[i]
	case []uint16:
		return d[i]
	case []string:
		return d[i]
	case []byte:
		return d[i]
	}
	return nil
}

// Set stores x at index i, converting numeric Go values to the vector type.
func (v Vector) Set(i int, x any) error {
	x, err := Coerce(v.Type, x)
	if err != nil {
		return err
	}
	switch d := v.Data.(type) {
	case []float64:
		d[i] = x.(float64)
	case []float32:
		d[i] = x.(float32)
	case []int64:
		d[i] = x.(int64)
	case []uint64:
		d[i] = x.(uint64)
	case []int32:
		d[i] = x.(int32)
	case []uint32:
		d[i] = x.(uint32)
	case []int16:
		d[i] = x.(int16)
	case []uint16:
		d[i] = x.(uint16)
	case []string:
		d[i] = x.(string)
	case []byte:
		d[i] = x.(byte)
	default:
		return errors.Wrapf(ErrTypeMismatch, "%s vector holding %T", v.Type, v.Data)
	}
	return nil
}

// Float returns value i as a float64 for floating vectors.
func (v Vector) Float(i int) (float64, bool) {
	switch d := v.Data.(type) {
	case []float64:
		return d[i], true
	case []float32:
		return float64(d[i]), true
	}
	return 0, false
}

// SetFloat stores f at index i of a floating vector.
func (v Vector) SetFloat(i int, f float64) {
	switch d := v.Data.(type) {
	case []float64:
		d[i] = f
	case []float32:
		d[i] = float32(f)
	}
}

// Slice returns values [i, j) sharing storage with v.
func (v Vector) Slice(i, j int) Vector {
	out := Vector{Type: v.Type}
	switch d := v.Data.(type) {
	case []float64:
		out.Data = d[i:j]
	case []float32:
		out.Data = d[i:j]
	case []int64:
		out.Data = d[i:j]
	case []uint64:
		out.Data = d[i:j]
	case []int32:
		out.Data = d[i:j]
	case []uint32:
		out.Data = d[i:j]
	case []int16:
		out.Data = d[i:j]
	case []uint16:
		out.Data = d[i:j]
	case []string:
		out.Data = d[i:j]
	case []byte:
		out.Data = d[i:j]
	}
	return out
}

// CopyAt copies value i of src into index j of v. Both must share a Type.
func (v Vector) CopyAt(j int, src Vector, i int) {
	switch d := v.Data.(type) {
	case []float64:
		d[j] = src.Data.([]float64)[i]
	case []float32:
		d[j] = src.Data.([]float32)[i]
	case []int64:
		d[j] = src.Data.([]int64)[i]
	case []uint64:
		d[j] = src.Data.([]uint64)[i]
	case []int32:
		d[j] = src.Data.([]int32)[i]
	case []uint32:
		d[j] = src.Data.([]uint32)[i]
	case []int16:
		d[j] = src.Data.([]int16)[i]
	case []uint16:
		d[j] = src.Data.([]uint16)[i]
	case []string:
		d[j] = src.Data.([]string)[i]
	case []byte:
		d[j] = src.Data.([]byte)[i]
	}
}

// Append returns v with x appended.
func (v Vector) Append(x any) (Vector, error) {
	x, err := Coerce(v.Type, x)
	if err != nil {
		return v, err
	}
	switch d := v.Data.(type) {
	case []float64:
		v.Data = append(d, x.(float64))
	case []float32:
		v.Data = append(d, x.(float32))
	case []int64:
		v.Data = append(d, x.(int64))
	case []uint64:
		v.Data = append(d, x.(uint64))
	case []int32:
		v.Data = append(d, x.(int32))
	case []uint32:
		v.Data = append(d, x.(uint32))
	case []int16:
		v.Data = append(d, x.(int16))
	case []uint16:
		v.Data = append(d, x.(uint16))
	case []string:
		v.Data = append(d, x.(string))
	case []byte:
		v.Data = append(d, x.(byte))
	case nil:
		fresh := NewVector(v.Type, 0)
		if fresh.Data == nil {
			return v, errors.Wrapf(ErrUnknownType, "code %d", int32(v.Type))
		}
		return fresh.Append(x)
	default:
		return v, errors.Wrapf(ErrTypeMismatch, "%s vector holding %T", v.Type, v.Data)
	}
	return v, nil
}

// VectorOf wraps a single scalar.
func VectorOf(t Type, x any) (Vector, error) {
	return NewVector(t, 0).Append(x)
}

// Coerce converts a Go scalar to the Go type backing t. Numeric kinds
// convert between each other; strings and characters must already be
// strings, bytes or runes.
func Coerce(t Type, x any) (any, error) {
	if t == String {
		if s, ok := x.(string); ok {
			return s, nil
		}
		return nil, errors.Wrapf(ErrTypeMismatch, "%T for %s", x, t)
	}
	if t == Character {
		switch c := x.(type) {
		case byte:
			return c, nil
		case rune:
			if c < 0 || c > math.MaxUint8 {
				return nil, errors.Wrapf(ErrTypeMismatch, "rune %q for %s", c, t)
			}
			return byte(c), nil
		case string:
			if len(c) == 1 {
				return c[0], nil
			}
		}
		return nil, errors.Wrapf(ErrTypeMismatch, "%T for %s", x, t)
	}

	var (
		f       float64
		i       int64
		u       uint64
		isFloat bool
		isUint  bool
	)
	switch n := x.(type) {
	case float64:
		f, isFloat = n, true
	case float32:
		f, isFloat = float64(n), true
	case int:
		i = int64(n)
	case int64:
		i = n
	case int32:
		i = int64(n)
	case int16:
		i = int64(n)
	case int8:
		i = int64(n)
	case uint:
		u, isUint = uint64(n), true
	case uint64:
		u, isUint = n, true
	case uint32:
		u, isUint = uint64(n), true
	case uint16:
		u, isUint = uint64(n), true
	case uint8:
		u, isUint = uint64(n), true
	default:
		return nil, errors.Wrapf(ErrTypeMismatch, "%T for %s", x, t)
	}
	if !isFloat {
		if isUint {
			f = float64(u)
			i = int64(u)
		} else {
			f = float64(i)
			u = uint64(i)
		}
	}

	switch t {
	case LongDouble, Double:
		return f, nil
	case Float:
		return float32(f), nil
	}
	if isFloat {
		i, u = int64(f), uint64(f)
	}
	switch t {
	case Long64:
		return i, nil
	case ULong64:
		return u, nil
	case Long:
		return int32(i), nil
	case ULong:
		return uint32(u), nil
	case Short:
		return int16(i), nil
	case UShort:
		return uint16(u), nil
	}
	return nil, errors.Wrapf(ErrUnknownType, "code %d", int32(t))
}

// ParseScalar parses the text form of a scalar of type t, as used for
// fixed-value parameters.
func ParseScalar(t Type, text string) (any, error) {
	switch t {
	case String:
		return text, nil
	case Character:
		if len(text) == 0 {
			return byte(0), nil
		}
		return text[0], nil
	case LongDouble, Double, Float:
		f, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
		if err != nil {
			return nil, errors.Wrapf(err, "parsing %s", t)
		}
		return Coerce(t, f)
	case ULong64, ULong, UShort:
		u, err := strconv.ParseUint(strings.TrimSpace(text), 10, t.Size(Extended80)*8)
		if err != nil {
			return nil, errors.Wrapf(err, "parsing %s", t)
		}
		return Coerce(t, u)
	case Long64, Long, Short:
		i, err := strconv.ParseInt(strings.TrimSpace(text), 10, t.Size(Extended80)*8)
		if err != nil {
			return nil, errors.Wrapf(err, "parsing %s", t)
		}
		return Coerce(t, i)
	}
	return nil, errors.Wrapf(ErrUnknownType, "code %d", int32(t))
}

// Resize returns a vector of length n holding the first values of v,
// zero-filled past the old length. Storage is reused when it is large
// enough.
func (v Vector) Resize(n int) Vector {
	out := Vector{Type: v.Type}
	switch d := v.Data.(type) {
	case []float64:
		out.Data = resize(d, n)
	case []float32:
		out.Data = resize(d, n)
	case []int64:
		out.Data = resize(d, n)
	case []uint64:
		out.Data = resize(d, n)
	case []int32:
		out.Data = resize(d, n)
	case []uint32:
		out.Data = resize(d, n)
	case []int16:
		out.Data = resize(d, n)
	case []uint16:
		out.Data = resize(d, n)
	case []string:
		out.Data = resize(d, n)
	case []byte:
		out.Data = resize(d, n)
	default:
		return NewVector(v.Type, n)
	}
	return out
}

func resize[T any](s []T, n int) []T {
	if n <= len(s) {
		return s[:n]
	}
	if n <= cap(s) {
		old := len(s)
		s = s[:n]
		clear(s[old:])
		return s
	}
	grown := make([]T, n)
	copy(grown, s)
	return grown
}

// Concat returns v followed by the values of o. Both must have the same
// type; v's storage may be reused.
func (v Vector) Concat(o Vector) (Vector, error) {
	if v.Type != o.Type {
		return Vector{}, errors.Wrapf(ErrTypeMismatch, "appending %s to %s", o.Type, v.Type)
	}
	if v.Data == nil {
		return o, nil
	}
	out := Vector{Type: v.Type}
	ok := true
	switch d := v.Data.(type) {
	case []float64:
		out.Data, ok = concat(d, o.Data)
	case []float32:
		out.Data, ok = concat(d, o.Data)
	case []int64:
		out.Data, ok = concat(d, o.Data)
	case []uint64:
		out.Data, ok = concat(d, o.Data)
	case []int32:
		out.Data, ok = concat(d, o.Data)
	case []uint32:
		out.Data, ok = concat(d, o.Data)
	case []int16:
		out.Data, ok = concat(d, o.Data)
	case []uint16:
		out.Data, ok = concat(d, o.Data)
	case []string:
		out.Data, ok = concat(d, o.Data)
	case []byte:
		out.Data, ok = concat(d, o.Data)
	default:
		ok = false
	}
	if !ok {
		return Vector{}, errors.Wrapf(ErrTypeMismatch, "%T and %T", v.Data, o.Data)
	}
	return out, nil
}

func concat[T any](s []T, data any) ([]T, bool) {
	tail, ok := data.([]T)
	if !ok {
		return nil, false
	}
	return append(s, tail...), true
}
