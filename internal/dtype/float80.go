package dtype

import (
	"encoding/binary"
	"math"
	"math/bits"
)

// Float80 layout (little-endian, padded to 16 bytes):
//
//	bytes 0-7   64-bit mantissa with an explicit integer bit (bit 63)
//	bytes 8-9   bits 0-14 biased exponent (bias 0x3FFF), bit 15 sign
//	bytes 10-15 padding
//
// The big-endian form is the 12-byte swap unit reversed, so bytes 12-15
// stay padding in both orders.

const (
	float80Bias = 0x3FFF
	float64Bias = 0x3FF
	// Float80Size is the padded wire width of an extended value.
	Float80Size = 16
	// extendedSwapUnit is how many leading bytes of an extended value are
	// reversed when its byte order changes.
	extendedSwapUnit = 12
)

// Float80ToFloat64 downconverts a 16-byte extended value in the given byte
// order. Denormal extended values become signed zero; values beyond the
// double range saturate to infinity.
func Float80ToFloat64(b []byte, bigEndian bool) float64 {
	var le [Float80Size]byte
	copy(le[:], b)
	if bigEndian {
		reverse(le[:extendedSwapUnit])
	}

	mantissa := binary.LittleEndian.Uint64(le[0:8])
	se := binary.LittleEndian.Uint16(le[8:10])
	sign := uint64(se>>15) << 63
	exponent := int(se & 0x7FFF)

	switch exponent {
	case 0x7FFF:
		if mantissa<<1 == 0 {
			return math.Float64frombits(sign | 0x7FF<<52)
		}
		return math.Float64frombits(sign | 0x7FF<<52 | 1<<51)
	case 0:
		return math.Float64frombits(sign)
	}

	e := exponent - float80Bias + float64Bias
	if e >= 0x7FF {
		return math.Float64frombits(sign | 0x7FF<<52)
	}

	m := mantissa >> 11
	if e <= 0 {
		shift := uint(1 - e)
		if shift > 63 {
			return math.Float64frombits(sign)
		}
		return math.Float64frombits(sign | m>>shift)
	}
	return math.Float64frombits(sign | uint64(e)<<52 | m&(1<<52-1))
}

// Float64ToFloat80 widens f into the little-endian 16-byte extended layout.
// The conversion is exact: the result carries the double's precision.
func Float64ToFloat80(f float64) [Float80Size]byte {
	var out [Float80Size]byte
	u := math.Float64bits(f)
	sign := uint16(u>>63) << 15
	exp := int((u >> 52) & 0x7FF)
	frac := u & (1<<52 - 1)

	var (
		e80      uint16
		mantissa uint64
	)
	switch {
	case exp == 0x7FF:
		e80 = 0x7FFF
		mantissa = 1 << 63
		if frac != 0 {
			mantissa |= 1 << 62
		}
	case exp == 0 && frac == 0:
		// signed zero
	case exp == 0:
		// Double denormal: normalise into the wider exponent range.
		shift := bits.LeadingZeros64(frac) // frac < 2^52, so shift >= 12
		mantissa = frac << uint(shift)
		e80 = uint16(1 - float64Bias + float80Bias - (shift - 11))
	default:
		e80 = uint16(exp - float64Bias + float80Bias)
		mantissa = 1<<63 | frac<<11
	}

	binary.LittleEndian.PutUint64(out[0:8], mantissa)
	binary.LittleEndian.PutUint16(out[8:10], sign|e80)
	return out
}
