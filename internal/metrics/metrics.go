// Package metrics exposes Prometheus counters for page codec activity.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the codec counters. A nil *Metrics is valid and records
// nothing.
type Metrics struct {
	PagesWritten   prometheus.Counter
	PagesRead      prometheus.Counter
	RowsWritten    prometheus.Counter
	RowsRead       prometheus.Counter
	ReadRecoveries prometheus.Counter
	SeekRetries    prometheus.Counter
}

// New creates the counters and registers them on reg. A nil reg yields nil.
func New(reg prometheus.Registerer) (*Metrics, error) {
	if reg == nil {
		return nil, nil
	}
	m := &Metrics{
		PagesWritten: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "sdds_pages_written_total",
			Help: "Pages fully written",
		}),
		PagesRead: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "sdds_pages_read_total",
			Help: "Pages decoded",
		}),
		RowsWritten: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "sdds_rows_written_total",
			Help: "Rows physically written, including incremental updates",
		}),
		RowsRead: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "sdds_rows_read_total",
			Help: "Rows kept after decimation",
		}),
		ReadRecoveries: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "sdds_read_recoveries_total",
			Help: "Truncated pages accepted by auto-recovery",
		}),
		SeekRetries: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "sdds_seek_retries_total",
			Help: "Failed positional seek attempts that were retried",
		}),
	}
	for _, c := range []prometheus.Collector{
		m.PagesWritten, m.PagesRead, m.RowsWritten, m.RowsRead, m.ReadRecoveries, m.SeekRetries,
	} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// PageWritten records one written page of rows rows.
func (m *Metrics) PageWritten(rows int64) {
	if m == nil {
		return
	}
	m.PagesWritten.Inc()
	m.RowsWritten.Add(float64(rows))
}

// RowsAppended records rows written by an incremental update.
func (m *Metrics) RowsAppended(rows int64) {
	if m == nil {
		return
	}
	m.RowsWritten.Add(float64(rows))
}

// PageRead records one decoded page of rows rows.
func (m *Metrics) PageRead(rows int64) {
	if m == nil {
		return
	}
	m.PagesRead.Inc()
	m.RowsRead.Add(float64(rows))
}

// Recovered records an auto-recovered read.
func (m *Metrics) Recovered() {
	if m == nil {
		return
	}
	m.ReadRecoveries.Inc()
}

// SeekRetried records a failed seek attempt.
func (m *Metrics) SeekRetried() {
	if m == nil {
		return
	}
	m.SeekRetries.Inc()
}
