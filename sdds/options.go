package sdds

import (
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/rtsoliday/sddsTest-sub000/internal/backend"
	"github.com/rtsoliday/sddsTest-sub000/internal/dtype"
	"github.com/rtsoliday/sddsTest-sub000/internal/rowcount"
)

// DefaultBufferSize is the byte-stream buffer capacity used when none is
// configured.
const DefaultBufferSize = 256 * 1024

// Option configures a Dataset at open time.
type Option func(*options)

type options struct {
	bufferSize  int
	compression Compression
	compressSet bool
	level       int

	fixedRowCount bool
	increment     int64

	autoRecover bool
	extended    dtype.Extended
	order       ByteOrder
	orderSet    bool
	retry       backend.RetryPolicy

	logger     *slog.Logger
	registerer prometheus.Registerer

	err error
}

func defaultOptions() *options {
	return &options{
		bufferSize: DefaultBufferSize,
		extended:   dtype.ExtendedFromEnv(),
		retry:      backend.DefaultRetryPolicy(),
	}
}

// WithBufferSize sets the byte-stream buffer capacity. Zero disables
// buffering.
func WithBufferSize(n int) Option {
	return func(o *options) {
		if n >= 0 {
			o.bufferSize = n
		}
	}
}

// WithCompression selects the transport instead of inferring it from the
// file extension. level applies to gzip only (1-9, 0 = default).
func WithCompression(c Compression, level int) Option {
	return func(o *options) {
		o.compression = c
		o.compressSet = true
		if level >= 0 && level <= 9 {
			o.level = level
		}
	}
}

// WithFixedRowCount makes written pages store a padded row count that
// grows in steps of increment, so the field can be patched in place.
// Zero selects the default increment of 500.
func WithFixedRowCount(increment int64) Option {
	return func(o *options) {
		if increment <= 0 {
			increment = rowcount.DefaultIncrement
		}
		o.fixedRowCount = true
		o.increment = increment
	}
}

// WithAutoRecover accepts a page that ends part way through its rows as a
// short page instead of failing the read.
func WithAutoRecover() Option {
	return func(o *options) {
		o.autoRecover = true
	}
}

// WithExtended selects the LongDouble wire layout, overriding the
// SDDS_LONGDOUBLE_64BITS environment variable.
func WithExtended(e Extended) Option {
	return func(o *options) {
		o.extended = e
	}
}

// WithByteOrder overrides the byte order declared by the layout.
func WithByteOrder(order ByteOrder) Option {
	return func(o *options) {
		o.order = order
		o.orderSet = true
	}
}

// WithSeekRetry bounds the retries of positional seeks used to patch row
// counts. The default is 10 attempts one second apart.
func WithSeekRetry(attempts int, delay time.Duration) Option {
	return func(o *options) {
		if attempts > 0 {
			o.retry.Attempts = attempts
		}
		if delay >= 0 {
			o.retry.Delay = delay
		}
	}
}

// WithLogger sets the structured logger. The package default logger is used
// otherwise.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithMetrics registers codec counters on reg.
func WithMetrics(reg prometheus.Registerer) Option {
	return func(o *options) {
		o.registerer = reg
	}
}
