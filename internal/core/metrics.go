package core

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics aggregates the bulk-run counters on a private prometheus
// registry, exposed over HTTP when the command enables the endpoint.
type Metrics struct {
	registry       *prometheus.Registry
	rowsAnalyzed   prometheus.Counter
	batchesStored  prometheus.Counter
	insertFailures prometheus.Counter
	batchSeconds   prometheus.Histogram
}

// NewMetrics constructs and registers the bulk-run collectors.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		rowsAnalyzed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "rowcore_rows_analyzed_total",
			Help: "Tone rows fully analyzed across all granularities.",
		}),
		batchesStored: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "rowcore_batches_stored_total",
			Help: "Record batches committed to the analysis store.",
		}),
		insertFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "rowcore_insert_failures_total",
			Help: "Batch inserts that failed and aborted the run.",
		}),
		batchSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "rowcore_batch_store_seconds",
			Help:    "Wall time per committed batch insert.",
			Buckets: prometheus.DefBuckets,
		}),
	}
	m.registry.MustRegister(m.rowsAnalyzed, m.batchesStored, m.insertFailures, m.batchSeconds)
	return m
}

// Handler serves the registry in prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) observeRows(n int) {
	if m != nil {
		m.rowsAnalyzed.Add(float64(n))
	}
}

func (m *Metrics) observeBatch(seconds float64) {
	if m != nil {
		m.batchesStored.Inc()
		m.batchSeconds.Observe(seconds)
	}
}

func (m *Metrics) observeInsertFailure() {
	if m != nil {
		m.insertFailures.Inc()
	}
}
