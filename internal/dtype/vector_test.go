package dtype

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewVectorValidates(t *testing.T) {
	for typ := LongDouble; typ <= Character; typ++ {
		v := NewVector(typ, 3)
		require.NoError(t, v.Validate(), typ.String())
		assert.Equal(t, 3, v.Len())
	}
}

func TestValidateMismatch(t *testing.T) {
	v := Vector{Type: Long, Data: []int64{1}}
	assert.ErrorIs(t, v.Validate(), ErrTypeMismatch)

	v = Vector{Type: Double, Data: nil}
	assert.ErrorIs(t, v.Validate(), ErrTypeMismatch)
}

func TestSetCoerces(t *testing.T) {
	v := NewVector(Short, 2)
	require.NoError(t, v.Set(0, 7))
	require.NoError(t, v.Set(1, 2.9))
	assert.Equal(t, []int16{7, 2}, v.Data)

	f := NewVector(Float, 1)
	require.NoError(t, f.Set(0, int64(3)))
	assert.Equal(t, []float32{3}, f.Data)

	s := NewVector(String, 1)
	assert.ErrorIs(t, s.Set(0, 5), ErrTypeMismatch)
	require.NoError(t, s.Set(0, "x"))
	assert.Equal(t, "x", s.At(0))
}

func TestCharacterCoercion(t *testing.T) {
	c := NewVector(Character, 3)
	require.NoError(t, c.Set(0, byte('a')))
	require.NoError(t, c.Set(1, 'b'))
	require.NoError(t, c.Set(2, "c"))
	assert.Equal(t, []byte("abc"), c.Data)

	assert.Error(t, c.Set(0, "too long"))
	assert.Error(t, c.Set(0, 'é'+1000))
}

func TestAppendAndVectorOf(t *testing.T) {
	v, err := VectorOf(ULong64, 9)
	require.NoError(t, err)
	v, err = v.Append(uint32(10))
	require.NoError(t, err)
	assert.Equal(t, []uint64{9, 10}, v.Data)

	var empty Vector
	empty.Type = Double
	empty, err = empty.Append(1.5)
	require.NoError(t, err)
	assert.Equal(t, []float64{1.5}, empty.Data)
}

func TestSliceAndCopyAt(t *testing.T) {
	v := Vector{Type: Long, Data: []int32{1, 2, 3, 4}}
	s := v.Slice(1, 3)
	assert.Equal(t, []int32{2, 3}, s.Data)

	dst := NewVector(Long, 2)
	dst.CopyAt(1, v, 3)
	assert.Equal(t, []int32{0, 4}, dst.Data)
}

func TestFloatAccess(t *testing.T) {
	v := Vector{Type: Float, Data: []float32{1.5}}
	f, ok := v.Float(0)
	assert.True(t, ok)
	assert.Equal(t, 1.5, f)
	v.SetFloat(0, 2.5)
	assert.Equal(t, []float32{2.5}, v.Data)

	_, ok = Vector{Type: Long, Data: []int32{1}}.Float(0)
	assert.False(t, ok)
}

func TestParseScalar(t *testing.T) {
	tests := []struct {
		typ  Type
		text string
		want any
	}{
		{Double, " 2.5 ", 2.5},
		{Float, "1.25", float32(1.25)},
		{Long, "-12", int32(-12)},
		{ULong64, "18446744073709551615", uint64(18446744073709551615)},
		{Short, "300", int16(300)},
		{UShort, "65535", uint16(65535)},
		{String, "hello world", "hello world"},
		{Character, "xyz", byte('x')},
		{Character, "", byte(0)},
	}
	for _, tt := range tests {
		t.Run(tt.typ.String(), func(t *testing.T) {
			got, err := ParseScalar(tt.typ, tt.text)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ParseScalar(Short, "70000")
	assert.Error(t, err)
	_, err = ParseScalar(Double, "abc")
	assert.Error(t, err)
}

func TestResize(t *testing.T) {
	v := Vector{Type: Double, Data: []float64{1, 2, 3}}
	assert.Equal(t, []float64{1, 2}, v.Resize(2).Data)
	assert.Equal(t, []float64{1, 2, 3, 0, 0}, v.Resize(5).Data)

	var empty Vector
	empty.Type = String
	assert.Equal(t, []string{"", ""}, empty.Resize(2).Data)
}

func TestConcat(t *testing.T) {
	a := Vector{Type: Long, Data: []int32{1, 2}}
	got, err := a.Concat(Vector{Type: Long, Data: []int32{3}})
	require.NoError(t, err)
	assert.Equal(t, []int32{1, 2, 3}, got.Data)

	empty := Vector{Type: String}
	got, err = empty.Concat(Vector{Type: String, Data: []string{"x"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"x"}, got.Data)

	_, err = a.Concat(Vector{Type: Double, Data: []float64{1}})
	assert.ErrorIs(t, err, ErrTypeMismatch)
	_, err = a.Concat(Vector{Type: Long, Data: []int64{1}})
	assert.ErrorIs(t, err, ErrTypeMismatch)
}
