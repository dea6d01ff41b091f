package sdds

import (
	"github.com/cockroachdb/errors"

	"github.com/rtsoliday/sddsTest-sub000/internal/dtype"
	"github.com/rtsoliday/sddsTest-sub000/internal/rowcount"
)

// StartPage finishes any page still open for updates and begins a fresh
// in-memory page. rows preallocates that many zeroed rows.
func (d *Dataset) StartPage(rows int) error {
	if err := d.checkOpen(true); err != nil {
		return err
	}
	if err := d.finishPage(); err != nil {
		return err
	}
	if rows < 0 {
		rows = 0
	}
	d.page = newPage(d.layout, rows)
	d.state = NotStarted
	d.rowsWritten = 0
	d.lastRowWritten = -1
	d.firstRowInMem = 0
	return nil
}

// Page returns the in-memory page being populated.
func (d *Dataset) Page() *Page {
	return d.page
}

// SetParameter stores the value of the named parameter.
func (d *Dataset) SetParameter(name string, value any) error {
	i := d.layout.ParameterIndex(name)
	if i < 0 {
		return errors.Wrapf(ErrSchema, "no parameter %q", name)
	}
	v, err := dtype.Coerce(d.layout.Parameters[i].Type, value)
	if err != nil {
		return errors.Mark(errors.Wrapf(err, "parameter %q", name), ErrSchema)
	}
	d.page.Parameters[i] = v
	return nil
}

// SetArray stores the named array. values must hold at least the product
// of dims elements. A nil dims stores an array without data.
func (d *Dataset) SetArray(name string, dims []int32, values Vector) error {
	i := d.layout.ArrayIndex(name)
	if i < 0 {
		return errors.Wrapf(ErrSchema, "no array %q", name)
	}
	def := d.layout.Arrays[i]
	if values.Data == nil {
		values = dtype.NewVector(def.Type, 0)
	}
	a := ArrayValue{Dims: dims, Values: values}
	if dims != nil && len(dims) != def.Dimensions {
		return errors.Wrapf(ErrSchema, "array %q: %d dimensions given, %d declared", name, len(dims), def.Dimensions)
	}
	if values.Type != def.Type {
		return errors.Wrapf(ErrSchema, "array %q is %s, got %s", name, def.Type, values.Type)
	}
	if err := values.Validate(); err != nil {
		return errors.Mark(errors.Wrapf(err, "array %q", name), ErrSchema)
	}
	if n := a.Elements(); values.Len() < n {
		return errors.Wrapf(ErrSchema, "array %q: %d elements for dims %v", name, values.Len(), dims)
	}
	d.page.Arrays[i] = a
	return nil
}

// SetColumn replaces the named column. Every column must end up with the
// same number of rows before the page is written.
func (d *Dataset) SetColumn(name string, values Vector) error {
	i := d.layout.ColumnIndex(name)
	if i < 0 {
		return errors.Wrapf(ErrSchema, "no column %q", name)
	}
	if values.Type != d.layout.Columns[i].Type {
		return errors.Wrapf(ErrSchema, "column %q is %s, got %s", name, d.layout.Columns[i].Type, values.Type)
	}
	if err := values.Validate(); err != nil {
		return errors.Mark(errors.Wrapf(err, "column %q", name), ErrSchema)
	}
	d.page.Columns[i] = values
	return nil
}

// AppendRow appends one row, one value per column in layout order.
func (d *Dataset) AppendRow(values ...any) error {
	if len(values) != len(d.layout.Columns) {
		return errors.Wrapf(ErrSchema, "%d values for %d columns", len(values), len(d.layout.Columns))
	}
	coerced := make([]any, len(values))
	for i, v := range values {
		c, err := dtype.Coerce(d.layout.Columns[i].Type, v)
		if err != nil {
			return errors.Mark(errors.Wrapf(err, "column %q", d.layout.Columns[i].Name), ErrSchema)
		}
		coerced[i] = c
	}
	for i, c := range coerced {
		col, err := d.page.Columns[i].Append(c)
		if err != nil {
			return errors.Mark(err, ErrSchema)
		}
		d.page.Columns[i] = col
	}
	if d.page.RowFlags != nil {
		d.page.RowFlags = append(d.page.RowFlags, true)
	}
	return nil
}

// SetRowFlags marks the rows of interest. Nil selects every row.
func (d *Dataset) SetRowFlags(flags []bool) {
	d.page.RowFlags = flags
}

// WritePage writes the in-memory page as a new page. The page stays open
// for UpdatePage until the next StartPage or Close.
func (d *Dataset) WritePage() (err error) {
	if err := d.checkOpen(true); err != nil {
		return err
	}
	if err := d.finishPage(); err != nil {
		return err
	}
	d.state = NotStarted
	d.pageNumber++
	start := d.writer.Pos()
	defer func() {
		if err != nil {
			d.abortPage(start, err)
		}
	}()
	if err := d.page.validate(d.layout); err != nil {
		return d.pageError(SectionRowCount, "", -1, err)
	}

	rows := d.page.RowsOfInterest()
	value := rows
	if d.opts.fixedRowCount {
		value = rowcount.Padded(rows, d.opts.increment)
	}
	wide, err := rowcount.Encode(d.writer, value)
	if err != nil {
		return d.pageError(SectionRowCount, "", -1, err)
	}
	d.state = HeaderWritten

	if err := d.writeParameters(); err != nil {
		return err
	}
	d.state = ParametersWritten
	if err := d.writeArrays(); err != nil {
		return err
	}
	d.state = ArraysWritten

	n := d.page.Rows()
	if d.layout.DataMode.ColumnMajor {
		err = d.writeColumnMajor()
	} else {
		err = d.writeRows(0, n)
	}
	if err != nil {
		return err
	}
	if err := d.writer.Flush(); err != nil {
		return d.pageError(SectionColumns, "", -1, err)
	}
	d.state = ColumnsWritten

	d.rowcountOffset = start
	d.wide = wide
	d.rowsWritten = rows
	d.lastRowWritten = int64(n) - 1
	d.firstRowInMem = 0
	d.writingPage = true
	d.page.Number = d.pageNumber
	d.metrics.PageWritten(rows)
	d.log.Debug("page written",
		"page", d.pageNumber, "rows", rows, "rowcount", value, "offset", d.rowcountOffset, "wide", wide)
	return nil
}

// abortPage undoes a failed WritePage. Bytes still in the write buffer are
// dropped; once part of the page has reached the backend the stream can no
// longer be framed and the dataset refuses further writes.
func (d *Dataset) abortPage(start int64, cause error) {
	d.pageNumber--
	d.state = NotStarted
	if d.writer.Rewind(start) {
		return
	}
	d.failed = errors.Mark(errors.Wrapf(cause, "page %d partially written", d.pageNumber+1), ErrIO)
	d.log.Error("page partially written, dataset is no longer writable",
		"page", d.pageNumber+1, "offset", start, "error", cause)
}

func (d *Dataset) writeParameters() error {
	for i, def := range d.layout.Parameters {
		if def.FixedValue != nil {
			continue
		}
		value := d.page.Parameters[i]
		if def.Type == dtype.String {
			s, ok := value.(string)
			if !ok {
				return d.pageError(SectionParameters, def.Name, -1,
					errors.Wrapf(ErrSchema, "%T for a string parameter", value))
			}
			if err := d.writer.WriteString(s); err != nil {
				return d.pageError(SectionParameters, def.Name, -1, err)
			}
			continue
		}
		v, err := dtype.VectorOf(def.Type, value)
		if err != nil {
			return d.pageError(SectionParameters, def.Name, -1, err)
		}
		if err := d.writeBlock(v, nil); err != nil {
			return d.pageError(SectionParameters, def.Name, -1, err)
		}
	}
	return nil
}

func (d *Dataset) writeArrays() error {
	for i, def := range d.layout.Arrays {
		a := d.page.Arrays[i]
		if err := d.writer.WriteDims(a.Dims, def.Dimensions); err != nil {
			return d.pageError(SectionArrays, def.Name, -1, err)
		}
		n := a.Elements()
		if n == 0 {
			continue
		}
		values := a.Values.Slice(0, n)
		var err error
		if def.Type == dtype.String {
			err = d.writeStrings(values, nil)
		} else {
			err = d.writeBlock(values, nil)
		}
		if err != nil {
			return d.pageError(SectionArrays, def.Name, -1, err)
		}
	}
	return nil
}

// writeColumnMajor writes each column as one run of rows.
func (d *Dataset) writeColumnMajor() error {
	var flags []bool
	if !d.page.allRowsOfInterest() {
		flags = d.page.RowFlags
	}
	for i, def := range d.layout.Columns {
		var err error
		if def.Type == dtype.String {
			err = d.writeStrings(d.page.Columns[i], flags)
		} else {
			err = d.writeBlock(d.page.Columns[i], flags)
		}
		if err != nil {
			return d.pageError(SectionColumns, def.Name, -1, err)
		}
	}
	return nil
}

// writeRows writes rows [from, to) one row at a time, skipping rows that
// are not of interest.
func (d *Dataset) writeRows(from, to int) error {
	scratch := make([]byte, 0, 16)
	for row := from; row < to; row++ {
		if !d.page.interesting(row) {
			continue
		}
		for c, def := range d.layout.Columns {
			col := d.page.Columns[c]
			var err error
			if def.Type == dtype.String {
				err = d.writer.WriteString(col.Data.([]string)[row])
			} else {
				scratch, err = dtype.AppendElement(scratch[:0], col, row, d.ext)
				if err == nil {
					if d.swap {
						dtype.SwapValue(def.Type, scratch, d.ext)
					}
					err = d.writer.WriteBytes(scratch)
				}
			}
			if err != nil {
				return d.pageError(SectionColumns, def.Name, int64(row), err)
			}
		}
	}
	return nil
}

// writeBlock encodes the flagged values of v in host order, swaps the block
// when the declared order differs, and writes it.
func (d *Dataset) writeBlock(v Vector, flags []bool) error {
	raw, err := dtype.EncodeRows(v, flags, d.ext)
	if err != nil {
		return err
	}
	if d.swap {
		dtype.SwapBlock(v.Type, raw, d.ext)
	}
	return d.writer.WriteBytes(raw)
}

func (d *Dataset) writeStrings(v Vector, flags []bool) error {
	for i, s := range v.Data.([]string) {
		if flags != nil && i < len(flags) && !flags[i] {
			continue
		}
		if err := d.writer.WriteString(s); err != nil {
			return err
		}
	}
	return nil
}
