package dtype

import (
	"encoding/binary"
	"os"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
)

// Type is the closed set of element kinds a page can carry. The numeric
// values are the classic on-disk type codes.
type Type int32

const (
	LongDouble Type = iota + 1
	Double
	Float
	Long64
	ULong64
	Long
	ULong
	Short
	UShort
	String
	Character
)

var typeNames = map[Type]string{
	LongDouble: "longdouble",
	Double:     "double",
	Float:      "float",
	Long64:     "long64",
	ULong64:    "ulong64",
	Long:       "long",
	ULong:      "ulong",
	Short:      "short",
	UShort:     "ushort",
	String:     "string",
	Character:  "character",
}

// ErrUnknownType is returned for type codes or names outside the closed set.
var ErrUnknownType = errors.New("unknown element type")

// ErrTypeMismatch is returned when Go data does not match its declared Type.
var ErrTypeMismatch = errors.New("value does not match element type")

// Valid reports whether t is one of the known kinds.
func (t Type) Valid() bool {
	_, ok := typeNames[t]
	return ok
}

func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return "type(" + strconv.Itoa(int(t)) + ")"
}

// ParseType maps a type name to a Type.
func ParseType(name string) (Type, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for t, n := range typeNames {
		if n == name {
			return t, nil
		}
	}
	return 0, errors.Wrapf(ErrUnknownType, "%q", name)
}

// MarshalText implements encoding.TextMarshaler.
func (t Type) MarshalText() ([]byte, error) {
	if !t.Valid() {
		return nil, errors.Wrapf(ErrUnknownType, "code %d", int32(t))
	}
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *Type) UnmarshalText(b []byte) error {
	parsed, err := ParseType(string(b))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// IsFloating reports whether t is one of the floating-point kinds.
func (t Type) IsFloating() bool {
	return t == LongDouble || t == Double || t == Float
}

// IsInteger reports whether t is one of the integer kinds.
func (t Type) IsInteger() bool {
	switch t {
	case Long64, ULong64, Long, ULong, Short, UShort:
		return true
	}
	return false
}

// Swappable reports whether the endian layer touches values of type t.
// Strings and characters are byte sequences and never swapped.
func (t Type) Swappable() bool {
	return t.Valid() && t != String && t != Character
}

// Extended selects how LongDouble values are laid out on the wire.
type Extended int

const (
	// Extended80 stores LongDouble as the 80-bit extended layout padded to
	// 16 bytes and downconverts it to float64 on read.
	Extended80 Extended = iota
	// Extended64 stores LongDouble as a plain 8-byte IEEE double.
	Extended64
)

// LongDouble64Env disables the 80-bit layout when set to any non-empty value.
const LongDouble64Env = "SDDS_LONGDOUBLE_64BITS"

// ExtendedFromEnv returns Extended64 when the opt-out is set.
func ExtendedFromEnv() Extended {
	if os.Getenv(LongDouble64Env) != "" {
		return Extended64
	}
	return Extended80
}

func (e Extended) String() string {
	if e == Extended64 {
		return "64"
	}
	return "80"
}

// Size returns the fixed wire width of t, or 0 for String.
func (t Type) Size(ext Extended) int {
	switch t {
	case LongDouble:
		if ext == Extended64 {
			return 8
		}
		return 16
	case Double, Long64, ULong64:
		return 8
	case Float, Long, ULong:
		return 4
	case Short, UShort:
		return 2
	case Character:
		return 1
	default:
		return 0
	}
}

// HostLittleEndian reports the host byte order.
func HostLittleEndian() bool {
	var b [2]byte
	binary.NativeEndian.PutUint16(b[:], 1)
	return b[0] == 1
}
