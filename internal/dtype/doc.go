// Package dtype describes the element types a page can carry and converts
// between Go values and their raw wire bytes.
//
// # Type Mapping
//
//	Type       | Wire width        | Go storage
//	-----------|-------------------|-----------
//	LongDouble | 16 (or 8)         | []float64
//	Double     | 8                 | []float64
//	Float      | 4                 | []float32
//	Long64     | 8                 | []int64
//	ULong64    | 8                 | []uint64
//	Long       | 4                 | []int32
//	ULong      | 4                 | []uint32
//	Short      | 2                 | []int16
//	UShort     | 2                 | []uint16
//	String     | 4 + len           | []string
//	Character  | 1                 | []byte
//
// # Value Codec
//
// [Encode] and [Decode] move fixed-width values between a [Vector] and raw
// bytes in host byte order. Strings never pass through the block codec;
// they are written one at a time with a 32-bit length prefix by the
// internal/binary package.
//
// # Endian Conversion
//
// [SwapBlock] and [SwapValue] reverse raw values in place. The page layer
// swaps a block after encoding it (before writing) or after reading it
// (before decoding) when the declared order differs from the host order.
// String and Character data is never swapped.
//
// # Extended Precision
//
// Go has no 80-bit float. In [Extended80] mode a LongDouble occupies 16
// bytes on the wire: [Float80ToFloat64] downconverts on read and
// [Float64ToFloat80] widens a double, exactly, on write. Setting the
// SDDS_LONGDOUBLE_64BITS environment variable selects [Extended64], where a
// LongDouble is a plain 8-byte double.
package dtype
