package sdds

import (
	"encoding/binary"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/rtsoliday/sddsTest-sub000/internal/backend"
	"github.com/rtsoliday/sddsTest-sub000/internal/dtype"
	"github.com/rtsoliday/sddsTest-sub000/internal/stats"
)

// Type is the element kind of a parameter, array or column.
type Type = dtype.Type

// Element kinds.
const (
	LongDouble = dtype.LongDouble
	Double     = dtype.Double
	Float      = dtype.Float
	Long64     = dtype.Long64
	ULong64    = dtype.ULong64
	Long       = dtype.Long
	ULong      = dtype.ULong
	Short      = dtype.Short
	UShort     = dtype.UShort
	String     = dtype.String
	Character  = dtype.Character
)

// Vector is a typed run of values.
type Vector = dtype.Vector

// NewVector allocates a zeroed vector of n values of type t.
func NewVector(t Type, n int) Vector {
	return dtype.NewVector(t, n)
}

// Extended selects the wire layout of LongDouble values.
type Extended = dtype.Extended

// Extended-precision modes.
const (
	Extended80 = dtype.Extended80
	Extended64 = dtype.Extended64
)

// Compression selects the byte-stream transport.
type Compression = backend.Kind

// Transports.
const (
	CompressionNone = backend.Plain
	CompressionGzip = backend.Gzip
	CompressionXZ   = backend.XZ
)

// Statistic is the reduction applied to each window by statistical reads.
type Statistic = stats.Mode

// Reductions.
const (
	StatNone    = stats.None
	StatAverage = stats.Average
	StatMedian  = stats.Median
	StatMinimum = stats.Minimum
	StatMaximum = stats.Maximum
)

// ParseStatistic parses a reduction name such as "average" or "max". The
// empty string is StatNone.
func ParseStatistic(s string) (Statistic, error) {
	return stats.ParseMode(s)
}

// ByteOrder is the declared byte order of a dataset.
type ByteOrder int

const (
	// OrderUnknown decodes in host order and treats implausibly large row
	// counts as the end of the stream.
	OrderUnknown ByteOrder = iota
	OrderLittleEndian
	OrderBigEndian
)

// HostOrder returns the byte order of the running machine.
func HostOrder() ByteOrder {
	if dtype.HostLittleEndian() {
		return OrderLittleEndian
	}
	return OrderBigEndian
}

func (o ByteOrder) String() string {
	switch o {
	case OrderLittleEndian:
		return "little"
	case OrderBigEndian:
		return "big"
	default:
		return "unknown"
	}
}

// ParseByteOrder maps "little", "big" or "unknown" (and common spellings)
// to a ByteOrder.
func ParseByteOrder(s string) (ByteOrder, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "unknown", "native":
		return OrderUnknown, nil
	case "little", "littleendian", "little-endian", "le":
		return OrderLittleEndian, nil
	case "big", "bigendian", "big-endian", "be":
		return OrderBigEndian, nil
	}
	return OrderUnknown, errors.Newf("unknown byte order %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (o ByteOrder) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (o *ByteOrder) UnmarshalText(b []byte) error {
	parsed, err := ParseByteOrder(string(b))
	if err != nil {
		return err
	}
	*o = parsed
	return nil
}

// resolved maps OrderUnknown to the host order.
func (o ByteOrder) resolved() ByteOrder {
	if o == OrderUnknown {
		return HostOrder()
	}
	return o
}

// binaryOrder returns the encoding/binary order used for framing integers.
func (o ByteOrder) binaryOrder() binary.ByteOrder {
	if o.resolved() == OrderBigEndian {
		return binary.BigEndian
	}
	return binary.LittleEndian
}

// swaps reports whether value blocks need byte reversal on this host.
func (o ByteOrder) swaps() bool {
	return o.resolved() != HostOrder()
}
