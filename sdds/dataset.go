package sdds

import (
	"io"
	"log/slog"

	"github.com/cockroachdb/errors"

	"github.com/rtsoliday/sddsTest-sub000/internal/backend"
	"github.com/rtsoliday/sddsTest-sub000/internal/binary"
	"github.com/rtsoliday/sddsTest-sub000/internal/dtype"
	"github.com/rtsoliday/sddsTest-sub000/internal/logging"
	"github.com/rtsoliday/sddsTest-sub000/internal/metrics"
	"github.com/rtsoliday/sddsTest-sub000/internal/rowcount"
)

// WriteState tracks how far the current page write has progressed.
type WriteState int

const (
	NotStarted WriteState = iota
	HeaderWritten
	ParametersWritten
	ArraysWritten
	ColumnsWritten
)

func (s WriteState) String() string {
	switch s {
	case HeaderWritten:
		return "header written"
	case ParametersWritten:
		return "parameters written"
	case ArraysWritten:
		return "arrays written"
	case ColumnsWritten:
		return "columns written"
	default:
		return "not started"
	}
}

// Dataset is an open stream of pages. It is not safe for concurrent use.
type Dataset struct {
	path     string
	layout   *Layout
	opts     *options
	be       backend.Backend
	writer   *binary.Writer
	reader   *binary.Reader
	order    ByteOrder
	swap     bool
	ext      dtype.Extended
	writable bool
	closed   bool
	log      *slog.Logger
	metrics  *metrics.Metrics

	page       *Page
	pageNumber int
	state      WriteState

	// Incremental-update bookkeeping for the last written page.
	rowcountOffset int64
	wide           bool
	rowsWritten    int64
	lastRowWritten int64
	firstRowInMem  int64
	writingPage    bool

	recoveryPossible bool
	recovered        bool
	exhausted        bool

	// failed is set when a page reached the backend only in part.
	failed error
}

// Create creates (or truncates) path and opens it for writing pages with
// layout.
func Create(path string, layout *Layout, opts ...Option) (*Dataset, error) {
	d, err := newDataset(path, layout, true, opts)
	if err != nil {
		return nil, err
	}
	if d.opts.fixedRowCount && d.be.Kind() != backend.Plain {
		d.be.Close()
		return nil, errors.Wrapf(ErrUnsupported, "fixed row count needs a seekable file, %s is not", d.be.Kind())
	}
	d.writer = binary.NewWriter(d.be, d.opts.bufferSize, d.order.binaryOrder(), 0)
	d.page = newPage(layout, 0)
	return d, nil
}

// Open opens path for reading pages with layout.
func Open(path string, layout *Layout, opts ...Option) (*Dataset, error) {
	d, err := newDataset(path, layout, false, opts)
	if err != nil {
		return nil, err
	}
	d.reader = binary.NewReader(d.be, d.opts.bufferSize, d.order.binaryOrder())
	return d, nil
}

func newDataset(path string, layout *Layout, write bool, opts []Option) (*Dataset, error) {
	if layout == nil {
		return nil, errors.Wrap(ErrSchema, "nil layout")
	}
	if err := layout.Validate(); err != nil {
		return nil, err
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	if o.err != nil {
		return nil, errors.Wrap(o.err, "invalid option")
	}

	m, err := metrics.New(o.registerer)
	if err != nil {
		return nil, errors.Wrap(err, "registering metrics")
	}

	kind := backend.KindFromPath(path)
	if o.compressSet {
		kind = o.compression
	}
	be, err := backend.Open(path, kind, write, o.level)
	if err != nil {
		return nil, errors.Mark(err, ErrIO)
	}

	order := layout.DataMode.ByteOrder
	if o.orderSet {
		order = o.order
	}
	d := &Dataset{
		path:           path,
		layout:         layout,
		opts:           o,
		be:             be,
		order:          order,
		swap:           order.swaps(),
		ext:            o.extended,
		writable:       write,
		log:            logging.Or(o.logger).With("path", path),
		metrics:        m,
		lastRowWritten: -1,
	}
	d.log.Debug("dataset opened",
		"write", write, "backend", kind.String(), "order", order.String(), "longdouble_bits", o.extended.String())
	return d, nil
}

// Close finishes the open page, flushes and releases the backend.
func (d *Dataset) Close() error {
	if d.closed {
		return nil
	}
	var err error
	if d.writable {
		err = d.failed
		if err == nil {
			err = d.finishPage()
		}
		if ferr := d.writer.Flush(); ferr != nil && err == nil {
			err = classify(ferr)
		}
	}
	d.closed = true
	if cerr := d.be.Close(); cerr != nil {
		err = errors.CombineErrors(err, errors.Mark(cerr, ErrIO))
	}
	return err
}

// Layout returns the dataset schema.
func (d *Dataset) Layout() *Layout {
	return d.layout
}

// Path returns the file path.
func (d *Dataset) Path() string {
	return d.path
}

// ByteOrder returns the declared byte order.
func (d *Dataset) ByteOrder() ByteOrder {
	return d.order
}

// Compression returns the active transport.
func (d *Dataset) Compression() Compression {
	return d.be.Kind()
}

// State returns the progress of the most recent page write.
func (d *Dataset) State() WriteState {
	return d.state
}

// PageNumber returns the number of the last page written or read.
func (d *Dataset) PageNumber() int {
	return d.pageNumber
}

// RowsWritten returns the rows of interest of the current page already on
// disk.
func (d *Dataset) RowsWritten() int64 {
	return d.rowsWritten
}

// ReadRecoveryPossible reports whether the last failed read left a short
// page that auto-recovery would have accepted. Querying clears the flag.
func (d *Dataset) ReadRecoveryPossible() bool {
	possible := d.recoveryPossible
	d.recoveryPossible = false
	return possible
}

// Recovered reports whether any read on this dataset was cut short and
// accepted by auto-recovery.
func (d *Dataset) Recovered() bool {
	return d.recovered
}

func (d *Dataset) checkOpen(write bool) error {
	if d.closed {
		return ErrClosed
	}
	if write && d.failed != nil {
		return d.failed
	}
	if d.writable != write {
		if write {
			return errors.Wrap(ErrUnsupported, "dataset is open for reading")
		}
		return errors.Wrap(ErrUnsupported, "dataset is open for writing")
	}
	return nil
}

func (d *Dataset) retryPolicy() backend.RetryPolicy {
	p := d.opts.retry
	p.Logger = d.log
	p.OnRetry = d.metrics.SeekRetried
	return p
}

// patchRowCount rewrites the row-count field of the open page with v,
// keeping the field width already on disk, and restores the stream
// position. The write buffer must be flushed.
func (d *Dataset) patchRowCount(v int64) error {
	if !d.wide && !rowcount.Fits32(v) {
		return errors.Wrapf(ErrRowCountPromotion, "row count %d at offset %d", v, d.rowcountOffset)
	}
	if d.be.Kind() != backend.Plain {
		return errors.Wrapf(ErrUnsupported, "patching the row count of a %s stream", d.be.Kind())
	}

	saved, err := backend.Position(d.be)
	if err != nil {
		return errors.Mark(errors.Wrap(err, "saving position"), ErrIO)
	}
	policy := d.retryPolicy()
	if _, err := backend.SeekRetry(d.be, d.rowcountOffset, io.SeekStart, policy); err != nil {
		return errors.Mark(err, ErrIO)
	}
	direct := binary.NewWriter(d.be, 0, d.order.binaryOrder(), d.rowcountOffset)
	if err := rowcount.EncodeWidth(direct, v, d.wide); err != nil {
		return classify(err)
	}
	if _, err := backend.SeekRetry(d.be, saved, io.SeekStart, policy); err != nil {
		return errors.Mark(err, ErrIO)
	}
	d.log.Debug("row count patched", "page", d.pageNumber, "offset", d.rowcountOffset, "value", v)
	return nil
}

// finishPage closes the open page for incremental updates. In fixed-row
// mode the padded count is replaced with the exact count.
func (d *Dataset) finishPage() error {
	if !d.writingPage {
		return nil
	}
	d.writingPage = false
	if !d.opts.fixedRowCount {
		return nil
	}
	return d.FinalizeRowCount()
}

// FinalizeRowCount writes the exact row count of the last written page
// over its padded fixed-row-count value. It is a no-op in other modes.
func (d *Dataset) FinalizeRowCount() error {
	if err := d.checkOpen(true); err != nil {
		return err
	}
	if !d.opts.fixedRowCount || d.pageNumber == 0 {
		return nil
	}
	if err := d.writer.Flush(); err != nil {
		return d.pageError(SectionUpdate, "", -1, err)
	}
	if err := d.patchRowCount(d.rowsWritten); err != nil {
		return d.pageError(SectionUpdate, "", -1, err)
	}
	return nil
}
