package metrics

import (
	"time"

	"tabworks/pxtab/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
)

// FetchMetrics tracks metrics related to document retrieval.
//
// Metrics:
//   - pxtab_fetch_total: Total fetch count by scheme and status
//   - pxtab_fetch_duration_seconds: Fetch duration histogram by scheme
//   - pxtab_fetch_bytes_total: Total decoded bytes retrieved by scheme
type FetchMetrics struct {
	// Total fetch count
	fetchesTotal *prometheus.CounterVec

	// Fetch duration histogram
	fetchDuration *prometheus.HistogramVec

	// Decoded document bytes
	bytesTotal *prometheus.CounterVec
}

// NewFetchMetrics creates and registers fetch metrics with the provided registry.
func NewFetchMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *FetchMetrics {
	fm := &FetchMetrics{
		fetchesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Name:      "fetch_total",
				Help:      "Total number of document fetches",
			},
			[]string{"scheme", "status"},
		),

		fetchDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Name:      "fetch_duration_seconds",
				Help:      "Duration of document fetches in seconds",
				Buckets:   cfg.DurationBuckets,
			},
			[]string{"scheme"},
		),

		bytesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Name:      "fetch_bytes_total",
				Help:      "Total decoded document bytes retrieved",
			},
			[]string{"scheme"},
		),
	}

	registry.MustRegister(
		fm.fetchesTotal,
		fm.fetchDuration,
		fm.bytesTotal,
	)

	return fm
}

// RecordFetch records metrics for a document retrieval.
//
// Parameters:
//   - scheme: locator scheme ("https", "http", "ftp", "file")
//   - status: "success" or "error"
//   - duration: fetch duration
//   - sizeBytes: decoded document size
func (fm *FetchMetrics) RecordFetch(scheme, status string, duration time.Duration, sizeBytes int64) {
	fm.fetchesTotal.WithLabelValues(scheme, status).Inc()
	fm.fetchDuration.WithLabelValues(scheme).Observe(duration.Seconds())

	if sizeBytes > 0 {
		fm.bytesTotal.WithLabelValues(scheme).Add(float64(sizeBytes))
	}
}
