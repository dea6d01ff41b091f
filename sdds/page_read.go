package sdds

import (
	"io"
	"math"

	"github.com/cockroachdb/errors"

	"github.com/rtsoliday/sddsTest-sub000/internal/dtype"
	"github.com/rtsoliday/sddsTest-sub000/internal/rowcount"
	"github.com/rtsoliday/sddsTest-sub000/internal/stats"
)

// maxInitialRows caps the up-front row allocation; columns grow past it as
// rows actually arrive.
const maxInitialRows = 1 << 16

// ReadOptions selects which rows of a page are kept.
type ReadOptions struct {
	// Interval keeps one row per window of Interval rows. Values below 2
	// keep every row.
	Interval int64
	// Offset skips that many rows before the first window.
	Offset int64
	// LastRows, when positive, keeps only the final LastRows rows and
	// overrides Interval and Offset.
	LastRows int64
	// Statistics replaces each kept row's floating-point values with a
	// reduction over its window.
	Statistics Statistic
}

// ReadPage reads the next page with every row.
func (d *Dataset) ReadPage() (*Page, error) {
	return d.ReadPageDetailed(ReadOptions{})
}

// ReadPageSparse keeps the first row of every interval-row window after
// skipping offset rows.
func (d *Dataset) ReadPageSparse(interval, offset int64) (*Page, error) {
	return d.ReadPageDetailed(ReadOptions{Interval: interval, Offset: offset})
}

// ReadPageLastRows keeps the final n rows.
func (d *Dataset) ReadPageLastRows(n int64) (*Page, error) {
	return d.ReadPageDetailed(ReadOptions{LastRows: n})
}

// ReadPageStatistics reduces every interval-row window after offset to one
// row using stat.
func (d *Dataset) ReadPageStatistics(interval, offset int64, stat Statistic) (*Page, error) {
	return d.ReadPageDetailed(ReadOptions{Interval: interval, Offset: offset, Statistics: stat})
}

// ReadPageDetailed reads the next page. At the end of the stream it
// returns ErrNoMorePages.
func (d *Dataset) ReadPageDetailed(ro ReadOptions) (*Page, error) {
	if err := d.checkOpen(false); err != nil {
		return nil, err
	}
	if d.exhausted {
		return nil, ErrNoMorePages
	}
	if d.layout.DataMode.ColumnMajor && (ro.Interval > 1 || ro.Offset > 0 || ro.LastRows > 0) {
		return nil, errors.Wrap(ErrUnsupported, "sparse reads of column-major pages")
	}
	d.recoveryPossible = false

	count, wide, err := rowcount.Decode(d.reader)
	if err != nil {
		if errors.Is(err, io.EOF) && !wide {
			d.exhausted = true
			return nil, ErrNoMorePages
		}
		return nil, d.pageError(SectionRowCount, "", -1, err)
	}
	if d.order == OrderUnknown && count > MaxPlausibleRows {
		d.log.Warn("implausible row count, treating as end of data", "count", count)
		d.exhausted = true
		return nil, ErrNoMorePages
	}
	d.pageNumber++

	interval, offset := ro.Interval, ro.Offset
	if ro.LastRows > 0 {
		interval, offset = 1, max(count-ro.LastRows, 0)
	}
	interval = max(interval, 1)
	offset = max(offset, 0)

	hint := int64(0)
	if count > offset {
		hint = (count-offset)/interval + 2
	}
	page := newPage(d.layout, int(min(hint, maxInitialRows)))
	page.Number = d.pageNumber

	if err := d.readParameters(page); err != nil {
		return nil, err
	}
	if err := d.readArrays(page); err != nil {
		return nil, err
	}

	var kept int64
	switch {
	case d.layout.DataMode.ColumnMajor:
		err = d.readColumnMajor(page, count)
		kept = count
	case interval == 1 && offset == 0:
		kept, err = d.readAllRows(page, count)
	default:
		kept, err = d.readDecimated(page, count, interval, offset, ro.Statistics)
	}
	if err != nil {
		var pe *PageError
		if !errors.As(err, &pe) || pe.Row < 0 || !errors.Is(err, ErrIO) {
			return nil, err
		}
		if !d.opts.autoRecover {
			d.recoveryPossible = true
			return nil, err
		}
		d.recovered = true
		d.exhausted = true
		d.metrics.Recovered()
		d.log.Warn("page truncated, keeping rows read so far",
			"page", d.pageNumber, "rows", kept, "declared", count, "error", err)
	}

	for i := range page.Columns {
		page.Columns[i] = page.Columns[i].Resize(int(kept))
	}
	d.metrics.PageRead(kept)
	d.log.Debug("page read", "page", d.pageNumber, "rows", kept, "declared", count)
	return page, nil
}

func (d *Dataset) readParameters(page *Page) error {
	for i, def := range d.layout.Parameters {
		if def.FixedValue != nil {
			v, err := dtype.ParseScalar(def.Type, *def.FixedValue)
			if err != nil {
				return d.pageError(SectionParameters, def.Name, -1, err)
			}
			page.Parameters[i] = v
			continue
		}
		v, err := d.readValues(def.Type, 1)
		if err != nil {
			return d.pageError(SectionParameters, def.Name, -1, err)
		}
		page.Parameters[i] = v.At(0)
	}
	return nil
}

func (d *Dataset) readArrays(page *Page) error {
	for i, def := range d.layout.Arrays {
		dims, err := d.reader.ReadDims(def.Dimensions)
		if err != nil {
			return d.pageError(SectionArrays, def.Name, -1, err)
		}
		a := ArrayValue{Dims: dims}
		n := a.Elements()
		if n < 0 {
			return d.pageError(SectionArrays, def.Name, -1,
				errors.Mark(errors.Newf("negative dimensions %v", dims), ErrFraming))
		}
		if n == 0 {
			a.Values = dtype.NewVector(def.Type, 0)
			page.Arrays[i] = a
			continue
		}
		if a.Values, err = d.readValues(def.Type, int64(n)); err != nil {
			return d.pageError(SectionArrays, def.Name, -1, err)
		}
		page.Arrays[i] = a
	}
	return nil
}

// readValues reads n values of type t in blocks of at most maxInitialRows
// values. A count larger than the stream fails on the missing bytes.
func (d *Dataset) readValues(t Type, n int64) (Vector, error) {
	size := int64(t.Size(d.ext))
	if n < 0 || (size > 0 && n > math.MaxInt64/size) {
		return Vector{}, errors.Mark(errors.Newf("%d values of %s", n, t), ErrFraming)
	}
	if n == 0 {
		return dtype.NewVector(t, 0), nil
	}
	v := Vector{Type: t}
	for done := int64(0); done < n; {
		c := int(min(n-done, maxInitialRows))
		block, err := d.readBlock(t, c)
		if err != nil {
			return Vector{}, err
		}
		if v, err = v.Concat(block); err != nil {
			return Vector{}, err
		}
		done += int64(c)
	}
	return v, nil
}

// readBlock reads n values of type t as one block.
func (d *Dataset) readBlock(t Type, n int) (Vector, error) {
	if t == dtype.String {
		v := dtype.NewVector(t, n)
		s := v.Data.([]string)
		for i := range s {
			var err error
			if s[i], err = d.reader.ReadString(); err != nil {
				return Vector{}, err
			}
		}
		return v, nil
	}
	raw, err := d.reader.ReadBytes(n * t.Size(d.ext))
	if err != nil {
		return Vector{}, err
	}
	if d.swap {
		dtype.SwapBlock(t, raw, d.ext)
	}
	return dtype.Decode(t, raw, n, d.ext)
}

func (d *Dataset) readColumnMajor(page *Page, count int64) error {
	for i, def := range d.layout.Columns {
		v, err := d.readValues(def.Type, count)
		if err != nil {
			return d.pageError(SectionColumns, def.Name, -1, err)
		}
		page.Columns[i] = v
	}
	return nil
}

// rowReader decodes row-major rows into page columns.
type rowReader struct {
	d       *Dataset
	page    *Page
	scratch []byte
}

// readInto decodes the next row into index k, growing columns as needed.
func (r *rowReader) readInto(k int64, source int64) error {
	cols := r.page.Columns
	if n := cols[0].Len(); int(k) >= n {
		grown := max(2*n, int(k)+1)
		for i := range cols {
			cols[i] = cols[i].Resize(grown)
		}
	}
	for c, def := range r.d.layout.Columns {
		if err := r.readValue(cols[c], int(k), def.Type); err != nil {
			return r.d.pageError(SectionColumns, def.Name, source, err)
		}
	}
	return nil
}

func (r *rowReader) readValue(v Vector, k int, t Type) error {
	if t == dtype.String {
		s, err := r.d.reader.ReadString()
		if err != nil {
			return err
		}
		v.Data.([]string)[k] = s
		return nil
	}
	raw := r.scratch[:t.Size(r.d.ext)]
	if err := r.d.reader.ReadInto(raw); err != nil {
		return err
	}
	if r.d.swap {
		dtype.SwapValue(t, raw, r.d.ext)
	}
	return dtype.DecodeElement(v, k, raw, r.d.ext)
}

// skip discards the next row.
func (r *rowReader) skip(source int64) error {
	for _, def := range r.d.layout.Columns {
		var err error
		if def.Type == dtype.String {
			err = r.d.reader.SkipString()
		} else {
			err = r.d.reader.Skip(def.Type.Size(r.d.ext))
		}
		if err != nil {
			return r.d.pageError(SectionColumns, def.Name, source, err)
		}
	}
	return nil
}

func (d *Dataset) newRowReader(page *Page) *rowReader {
	return &rowReader{d: d, page: page, scratch: make([]byte, dtype.Float80Size)}
}

func (d *Dataset) readAllRows(page *Page, count int64) (int64, error) {
	if len(d.layout.Columns) == 0 {
		return 0, nil
	}
	r := d.newRowReader(page)
	for row := int64(0); row < count; row++ {
		if err := r.readInto(row, row); err != nil {
			return row, err
		}
	}
	return count, nil
}

// readDecimated skips offset rows and then keeps one row per window of
// interval rows. Without statistics the first row of each window is kept;
// with statistics every row of the window is read, non-floating columns
// keep the window's last row and floating columns are reduced over it. A
// trailing partial window is kept.
func (d *Dataset) readDecimated(page *Page, count, interval, offset int64, stat Statistic) (int64, error) {
	if len(d.layout.Columns) == 0 {
		return 0, nil
	}
	r := d.newRowReader(page)
	row := int64(0)
	for ; row < offset && row < count; row++ {
		if err := r.skip(row); err != nil {
			return 0, err
		}
	}

	var window [][]float64
	if stat != stats.None {
		window = make([][]float64, len(d.layout.Columns))
		for c, def := range d.layout.Columns {
			if def.Type.IsFloating() {
				window[c] = make([]float64, 0, interval)
			}
		}
	}

	var kept int64
	for ; row < count; row++ {
		pos := (row - offset) % interval
		last := pos == interval-1 || row == count-1

		if window == nil {
			var err error
			if pos == 0 {
				if err = r.readInto(kept, row); err == nil {
					kept++
				}
			} else {
				err = r.skip(row)
			}
			if err != nil {
				return kept, err
			}
			continue
		}

		if err := r.readInto(kept, row); err != nil {
			return kept, err
		}
		for c, col := range page.Columns {
			if window[c] != nil {
				f, _ := col.Float(int(kept))
				window[c] = append(window[c], f)
			}
		}
		if !last {
			continue
		}
		for c, col := range page.Columns {
			if window[c] != nil {
				col.SetFloat(int(kept), stats.Reduce(stat, window[c]))
				window[c] = window[c][:0]
			}
		}
		kept++
	}
	return kept, nil
}
