package sdds

import (
	"github.com/cockroachdb/errors"

	"github.com/rtsoliday/sddsTest-sub000/internal/dtype"
	"github.com/rtsoliday/sddsTest-sub000/internal/rowcount"
)

// UpdateFlags modify UpdatePage.
type UpdateFlags int

const (
	// FlushTable drops the in-memory rows once they are on disk. Later
	// rows are appended from row zero of the in-memory table.
	FlushTable UpdateFlags = 1 << iota
)

// UpdatePage brings the page on disk up to date with the in-memory page.
// The first call writes the page in full; later calls patch the row-count
// field in place and append only the rows written since.
func (d *Dataset) UpdatePage(flags UpdateFlags) error {
	if err := d.checkOpen(true); err != nil {
		return err
	}
	if !d.writingPage {
		if err := d.WritePage(); err != nil {
			return err
		}
		if flags&FlushTable != 0 {
			d.dropRows()
		}
		return nil
	}

	if err := d.writer.Flush(); err != nil {
		return d.pageError(SectionUpdate, "", -1, err)
	}
	total := d.page.RowsOfInterest() + d.firstRowInMem
	switch {
	case total == d.rowsWritten:
		return nil
	case total < d.rowsWritten:
		return d.pageError(SectionUpdate, "", -1,
			errors.Wrapf(ErrRowCountDecreased, "%d rows on disk, %d now", d.rowsWritten, total))
	case d.layout.DataMode.ColumnMajor:
		return d.pageError(SectionUpdate, "", -1,
			errors.Wrap(ErrUnsupported, "incremental update of a column-major page"))
	}

	if value, ok := d.rowCountChange(total); ok {
		if err := d.patchRowCount(value); err != nil {
			return d.pageError(SectionUpdate, "", -1, err)
		}
	}

	from := int(d.lastRowWritten + 1)
	n := d.page.Rows()
	if err := d.writeRows(from, n); err != nil {
		return err
	}
	if err := d.writer.Flush(); err != nil {
		return d.pageError(SectionUpdate, "", -1, err)
	}

	d.metrics.RowsAppended(total - d.rowsWritten)
	d.log.Debug("page updated", "page", d.pageNumber, "rows", total, "appended", total-d.rowsWritten)
	d.rowsWritten = total
	d.lastRowWritten = int64(n) - 1
	if flags&FlushTable != 0 {
		d.dropRows()
	}
	return nil
}

// rowCountChange returns the value the row-count field must hold for total
// rows, and whether it differs from what is on disk.
func (d *Dataset) rowCountChange(total int64) (int64, bool) {
	if !d.opts.fixedRowCount {
		return total, true
	}
	inc := d.opts.increment
	if total/inc == d.rowsWritten/inc {
		return 0, false
	}
	return rowcount.Padded(total, inc), true
}

// dropRows discards in-memory rows that are already on disk.
func (d *Dataset) dropRows() {
	for i, def := range d.layout.Columns {
		d.page.Columns[i] = dtype.NewVector(def.Type, 0)
	}
	d.page.RowFlags = nil
	d.firstRowInMem = d.rowsWritten
	d.lastRowWritten = -1
}
