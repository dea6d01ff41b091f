package dtype

// Endian conversion. These routines reverse raw value bytes in place and
// are only called by the page writer and reader, once per block, when the
// declared byte order differs from the host's.

// Swap16 reverses a 2-byte value.
func Swap16(b []byte) {
	b[0], b[1] = b[1], b[0]
}

// Swap32 reverses a 4-byte value.
func Swap32(b []byte) {
	b[0], b[1], b[2], b[3] = b[3], b[2], b[1], b[0]
}

// Swap64 reverses an 8-byte value.
func Swap64(b []byte) {
	b[0], b[1], b[2], b[3], b[4], b[5], b[6], b[7] =
		b[7], b[6], b[5], b[4], b[3], b[2], b[1], b[0]
}

// SwapExtended reverses a LongDouble value: the 12-byte unit of the
// 80-bit layout, or 8 bytes when LongDouble is a plain double.
func SwapExtended(b []byte, ext Extended) {
	if ext == Extended64 {
		Swap64(b)
		return
	}
	reverse(b[:extendedSwapUnit])
}

func reverse(b []byte) {
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
}

// SwapValue reverses one raw value of type t. Strings and characters are
// left alone.
func SwapValue(t Type, b []byte, ext Extended) {
	switch t {
	case LongDouble:
		SwapExtended(b, ext)
	case Double, Long64, ULong64:
		Swap64(b)
	case Float, Long, ULong:
		Swap32(b)
	case Short, UShort:
		Swap16(b)
	}
}

// SwapBlock reverses every value in a raw block of type t.
func SwapBlock(t Type, b []byte, ext Extended) {
	if !t.Swappable() {
		return
	}
	size := t.Size(ext)
	for i := 0; i+size <= len(b); i += size {
		SwapValue(t, b[i:i+size], ext)
	}
}
