// Package stats reduces a window of floating-point samples to one value for
// statistical decimation on read.
package stats

import (
	"slices"
	"strings"

	"github.com/cockroachdb/errors"
	"golang.org/x/exp/constraints"
)

// Mode selects the reduction applied to each decimation window.
type Mode int

const (
	// None keeps one row per window without reducing.
	None Mode = iota
	Average
	Median
	Minimum
	Maximum
)

func (m Mode) String() string {
	switch m {
	case None:
		return "none"
	case Average:
		return "average"
	case Median:
		return "median"
	case Minimum:
		return "minimum"
	case Maximum:
		return "maximum"
	default:
		return "unknown"
	}
}

// ParseMode maps a name (or its common abbreviation) to a Mode.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return None, nil
	case "average", "avg", "mean":
		return Average, nil
	case "median":
		return Median, nil
	case "minimum", "min":
		return Minimum, nil
	case "maximum", "max":
		return Maximum, nil
	}
	return None, errors.Newf("unknown statistic %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Mode) UnmarshalText(b []byte) error {
	parsed, err := ParseMode(string(b))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// Reduce applies m to xs. Median sorts xs in place, so callers pass scratch
// they own. An empty window reduces to zero.
func Reduce[T constraints.Float](m Mode, xs []T) T {
	if len(xs) == 0 {
		return 0
	}
	switch m {
	case Average:
		return Mean(xs)
	case Median:
		return MedianInPlace(xs)
	case Minimum:
		return slices.Min(xs)
	case Maximum:
		return slices.Max(xs)
	default:
		return xs[len(xs)-1]
	}
}

// Mean returns the arithmetic mean of xs, accumulated in float64.
func Mean[T constraints.Float](xs []T) T {
	if len(xs) == 0 {
		return 0
	}
	var sum float64
	for _, x := range xs {
		sum += float64(x)
	}
	return T(sum / float64(len(xs)))
}

// MedianInPlace sorts xs and returns its median. An even count yields the
// mean of the two middle values.
func MedianInPlace[T constraints.Float](xs []T) T {
	n := len(xs)
	if n == 0 {
		return 0
	}
	slices.Sort(xs)
	if n%2 == 1 {
		return xs[n/2]
	}
	return T((float64(xs[n/2-1]) + float64(xs[n/2])) / 2)
}
