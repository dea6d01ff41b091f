package sdds

import (
	"fmt"
	"io"

	"github.com/cockroachdb/errors"

	"github.com/rtsoliday/sddsTest-sub000/internal/backend"
	"github.com/rtsoliday/sddsTest-sub000/internal/binary"
	"github.com/rtsoliday/sddsTest-sub000/internal/dtype"
	"github.com/rtsoliday/sddsTest-sub000/internal/rowcount"
)

// Error kinds. Errors returned by a Dataset are marked with one of these;
// test for them with errors.Is from github.com/cockroachdb/errors.
var (
	ErrIO                = errors.New("i/o failure")
	ErrFraming           = errors.New("framing error")
	ErrRowCountDecreased = errors.New("row count decreased since last update")
	ErrRowCountPromotion = errors.New("row count no longer fits the 32-bit field already written")
	ErrUnsupported       = errors.New("unsupported feature")
	ErrNoMorePages       = errors.New("no more pages")
	ErrClosed            = errors.New("dataset is closed")
	ErrSchema            = errors.New("page does not match layout")
)

// MaxPlausibleRows bounds the row count accepted from a dataset whose byte
// order is unknown. Larger counts are taken to mean the stream was written
// in the other byte order and are reported as ErrNoMorePages.
const MaxPlausibleRows = 10_000_000

// Page sections named by PageError.
const (
	SectionRowCount   = "rowcount"
	SectionParameters = "parameters"
	SectionArrays     = "arrays"
	SectionColumns    = "columns"
	SectionUpdate     = "update"
)

// PageError records where in a page an operation failed.
type PageError struct {
	Page    int    // 1-based page number
	Section string // one of the Section constants
	Name    string // parameter, array or column name, if any
	Row     int64  // source row, -1 when not row-specific
	Err     error
}

func (e *PageError) Error() string {
	msg := fmt.Sprintf("page %d: %s", e.Page, e.Section)
	if e.Name != "" {
		msg += fmt.Sprintf(" %q", e.Name)
	}
	if e.Row >= 0 {
		msg += fmt.Sprintf(" row %d", e.Row)
	}
	return msg + ": " + e.Err.Error()
}

func (e *PageError) Unwrap() error {
	return e.Err
}

// classify marks a low-level error with its kind.
func classify(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.IsAny(err, ErrIO, ErrFraming, ErrRowCountDecreased, ErrRowCountPromotion,
		ErrUnsupported, ErrNoMorePages, ErrClosed, ErrSchema):
		return err
	case errors.Is(err, backend.ErrNotSeekable):
		return errors.Mark(err, ErrUnsupported)
	case errors.Is(err, rowcount.ErrNegative),
		errors.Is(err, binary.ErrNegativeLength):
		return errors.Mark(err, ErrFraming)
	case errors.Is(err, dtype.ErrTypeMismatch),
		errors.Is(err, dtype.ErrUnknownType):
		return errors.Mark(err, ErrSchema)
	case errors.Is(err, io.EOF):
		// A page that ends early is truncated, not finished.
		return errors.Mark(errors.Wrap(io.ErrUnexpectedEOF, err.Error()), ErrIO)
	default:
		return errors.Mark(err, ErrIO)
	}
}

func (d *Dataset) pageError(section, name string, row int64, err error) error {
	return &PageError{
		Page:    d.pageNumber,
		Section: section,
		Name:    name,
		Row:     row,
		Err:     classify(err),
	}
}
