package dtype

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleVectors() []Vector {
	return []Vector{
		{Type: LongDouble, Data: []float64{0, 1, -1, math.Pi, 1e-310, math.Inf(-1)}},
		{Type: Double, Data: []float64{0, -2.5, math.MaxFloat64}},
		{Type: Float, Data: []float32{1.5, -3}},
		{Type: Long64, Data: []int64{math.MinInt64, 0, 42}},
		{Type: ULong64, Data: []uint64{math.MaxUint64, 1}},
		{Type: Long, Data: []int32{-1, 0x01020304}},
		{Type: ULong, Data: []uint32{0xDEADBEEF}},
		{Type: Short, Data: []int16{-300, 7}},
		{Type: UShort, Data: []uint16{0xBEEF}},
		{Type: Character, Data: []byte("xyz")},
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	for _, ext := range []Extended{Extended80, Extended64} {
		for _, v := range sampleVectors() {
			t.Run(v.Type.String()+"/"+ext.String(), func(t *testing.T) {
				raw, err := Encode(v, ext)
				require.NoError(t, err)
				require.Len(t, raw, v.Len()*v.Type.Size(ext))

				got, err := Decode(v.Type, raw, v.Len(), ext)
				require.NoError(t, err)
				assert.Equal(t, v, got)
			})
		}
	}
}

func TestSwapRoundTrip(t *testing.T) {
	for _, ext := range []Extended{Extended80, Extended64} {
		for _, v := range sampleVectors() {
			raw, err := Encode(v, ext)
			require.NoError(t, err)

			SwapBlock(v.Type, raw, ext)
			SwapBlock(v.Type, raw, ext)

			got, err := Decode(v.Type, raw, v.Len(), ext)
			require.NoError(t, err)
			assert.Equal(t, v, got, "%s/%s", v.Type, ext)
		}
	}
}

func TestSwapMatchesForeignOrder(t *testing.T) {
	v := Vector{Type: Long, Data: []int32{0x01020304, -2}}
	raw, err := Encode(v, Extended80)
	require.NoError(t, err)

	var foreign binary.ByteOrder = binary.BigEndian
	if !HostLittleEndian() {
		foreign = binary.LittleEndian
	}
	SwapBlock(Long, raw, Extended80)
	assert.Equal(t, uint32(0x01020304), foreign.Uint32(raw[0:4]))
	assert.Equal(t, uint32(0xFFFFFFFE), foreign.Uint32(raw[4:8]))
}

func TestSwapSkipsBytes(t *testing.T) {
	raw := []byte("abcd")
	SwapBlock(Character, raw, Extended80)
	assert.Equal(t, []byte("abcd"), raw)
	SwapBlock(String, raw, Extended80)
	assert.Equal(t, []byte("abcd"), raw)
}

func TestSwapWidths(t *testing.T) {
	b := []byte{1, 2}
	Swap16(b)
	assert.Equal(t, []byte{2, 1}, b)

	b = []byte{1, 2, 3, 4}
	Swap32(b)
	assert.Equal(t, []byte{4, 3, 2, 1}, b)

	b = []byte{1, 2, 3, 4, 5, 6, 7, 8}
	Swap64(b)
	assert.Equal(t, []byte{8, 7, 6, 5, 4, 3, 2, 1}, b)

	b = []byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16}
	SwapExtended(b, Extended80)
	assert.Equal(t, []byte{12, 11, 10, 9, 8, 7, 6, 5, 4, 3, 2, 1, 13, 14, 15, 16}, b)
}

func TestEncodeRows(t *testing.T) {
	v := Vector{Type: Short, Data: []int16{1, 2, 3}}
	raw, err := EncodeRows(v, []bool{true, false, true}, Extended80)
	require.NoError(t, err)
	got, err := Decode(Short, raw, 2, Extended80)
	require.NoError(t, err)
	assert.Equal(t, []int16{1, 3}, got.Data)
}

func TestStringsAreNotBlockEncoded(t *testing.T) {
	_, err := Encode(Vector{Type: String, Data: []string{"a"}}, Extended80)
	assert.ErrorIs(t, err, ErrVariableWidth)
	_, err = Decode(String, nil, 0, Extended80)
	assert.ErrorIs(t, err, ErrVariableWidth)
}

func TestDecodeShortInput(t *testing.T) {
	_, err := Decode(Double, make([]byte, 7), 1, Extended80)
	assert.Error(t, err)
}
