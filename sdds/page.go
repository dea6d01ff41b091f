package sdds

import (
	"github.com/cockroachdb/errors"

	"github.com/rtsoliday/sddsTest-sub000/internal/dtype"
)

// ArrayValue is one array of a page. A nil Dims means the array has no
// data: zero is written for every dimension and no elements follow.
type ArrayValue struct {
	Dims   []int32
	Values Vector
}

// Elements returns the number of elements described by Dims.
func (a ArrayValue) Elements() int {
	if a.Dims == nil {
		return 0
	}
	n := 1
	for _, d := range a.Dims {
		n *= int(d)
	}
	return n
}

// Page is one frame of data: a value per parameter, a value per array and
// a column per table column, all in layout order.
type Page struct {
	Number     int
	Parameters []any
	Arrays     []ArrayValue
	Columns    []Vector
	// RowFlags marks the rows of interest. Nil selects every row.
	RowFlags []bool
}

// newPage allocates an empty page for layout with zero-valued parameters.
func newPage(l *Layout, rows int) *Page {
	p := &Page{
		Parameters: make([]any, len(l.Parameters)),
		Arrays:     make([]ArrayValue, len(l.Arrays)),
		Columns:    make([]Vector, len(l.Columns)),
	}
	for i, def := range l.Parameters {
		p.Parameters[i] = dtype.NewVector(def.Type, 1).At(0)
	}
	for i, def := range l.Arrays {
		p.Arrays[i] = ArrayValue{Values: dtype.NewVector(def.Type, 0)}
	}
	for i, def := range l.Columns {
		p.Columns[i] = dtype.NewVector(def.Type, rows)
	}
	return p
}

// Rows returns the number of rows in the table.
func (p *Page) Rows() int {
	if len(p.Columns) == 0 {
		return 0
	}
	return p.Columns[0].Len()
}

// interesting reports whether row i is a row of interest.
func (p *Page) interesting(i int) bool {
	return p.RowFlags == nil || i >= len(p.RowFlags) || p.RowFlags[i]
}

// RowsOfInterest counts the flagged rows.
func (p *Page) RowsOfInterest() int64 {
	n := p.Rows()
	if p.RowFlags == nil {
		return int64(n)
	}
	var count int64
	for i := 0; i < n; i++ {
		if p.interesting(i) {
			count++
		}
	}
	return count
}

// allRowsOfInterest reports whether no row is filtered out.
func (p *Page) allRowsOfInterest() bool {
	for i := 0; i < p.Rows(); i++ {
		if !p.interesting(i) {
			return false
		}
	}
	return true
}

// validate checks that p can be written with layout l.
func (p *Page) validate(l *Layout) error {
	if len(p.Parameters) != len(l.Parameters) || len(p.Arrays) != len(l.Arrays) ||
		len(p.Columns) != len(l.Columns) {
		return errors.Wrapf(ErrSchema, "page has %d/%d/%d parameters/arrays/columns, layout has %d/%d/%d",
			len(p.Parameters), len(p.Arrays), len(p.Columns),
			len(l.Parameters), len(l.Arrays), len(l.Columns))
	}
	for i, def := range l.Parameters {
		if def.FixedValue != nil {
			continue
		}
		if _, err := dtype.Coerce(def.Type, p.Parameters[i]); err != nil {
			return errors.Mark(errors.Wrapf(err, "parameter %q", def.Name), ErrSchema)
		}
	}
	for i, def := range l.Arrays {
		a := p.Arrays[i]
		if a.Dims == nil {
			continue
		}
		if len(a.Dims) != def.Dimensions {
			return errors.Wrapf(ErrSchema, "array %q has %d dimensions, layout declares %d",
				def.Name, len(a.Dims), def.Dimensions)
		}
		if a.Values.Type != def.Type {
			return errors.Wrapf(ErrSchema, "array %q is %s, layout declares %s", def.Name, a.Values.Type, def.Type)
		}
		if err := a.Values.Validate(); err != nil {
			return errors.Mark(errors.Wrapf(err, "array %q", def.Name), ErrSchema)
		}
		if n := a.Elements(); n < 0 || a.Values.Len() < n {
			return errors.Wrapf(ErrSchema, "array %q needs %d elements, has %d", def.Name, n, a.Values.Len())
		}
	}
	rows := p.Rows()
	for i, def := range l.Columns {
		c := p.Columns[i]
		if c.Type != def.Type {
			return errors.Wrapf(ErrSchema, "column %q is %s, layout declares %s", def.Name, c.Type, def.Type)
		}
		if err := c.Validate(); err != nil {
			return errors.Mark(errors.Wrapf(err, "column %q", def.Name), ErrSchema)
		}
		if c.Len() != rows {
			return errors.Wrapf(ErrSchema, "column %q has %d rows, expected %d", def.Name, c.Len(), rows)
		}
	}
	if p.RowFlags != nil && len(p.RowFlags) != rows {
		return errors.Wrapf(ErrSchema, "%d row flags for %d rows", len(p.RowFlags), rows)
	}
	return nil
}
