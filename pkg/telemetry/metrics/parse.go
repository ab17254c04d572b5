package metrics

import (
	"time"

	"tabworks/pxtab/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
)

// ParseMetrics tracks metrics related to PX document parsing.
//
// Metrics:
//   - pxtab_parses_total: Total parse count by source and status
//   - pxtab_parse_duration_seconds: Parse duration histogram by source
//   - pxtab_rows_expanded_total: Total expanded data rows by source
//   - pxtab_parse_errors_total: Parse failures by source and stage
type ParseMetrics struct {
	// Total parse count
	parsesTotal *prometheus.CounterVec

	// Parse duration histogram
	parseDuration *prometheus.HistogramVec

	// Expanded row counts
	rowsExpanded *prometheus.CounterVec

	// Parse failures by pipeline stage
	errorsTotal *prometheus.CounterVec
}

// NewParseMetrics creates and registers parse metrics with the provided registry.
func NewParseMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *ParseMetrics {
	pm := &ParseMetrics{
		parsesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Name:      "parses_total",
				Help:      "Total number of PX documents parsed",
			},
			[]string{"source", "status"},
		),

		parseDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Name:      "parse_duration_seconds",
				Help:      "Duration of PX document parses in seconds",
				Buckets:   cfg.DurationBuckets,
			},
			[]string{"source"},
		),

		rowsExpanded: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Name:      "rows_expanded_total",
				Help:      "Total number of data rows produced by cartesian expansion",
			},
			[]string{"source"},
		),

		errorsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Name:      "parse_errors_total",
				Help:      "Total number of parse failures by pipeline stage",
			},
			[]string{"source", "stage"},
		),
	}

	registry.MustRegister(
		pm.parsesTotal,
		pm.parseDuration,
		pm.rowsExpanded,
		pm.errorsTotal,
	)

	return pm
}

// RecordParse records metrics for a completed parse.
//
// Parameters:
//   - source: catalog source name
//   - status: "success" or "error"
//   - duration: parse duration
//   - rows: number of expanded rows
func (pm *ParseMetrics) RecordParse(source, status string, duration time.Duration, rows int) {
	pm.parsesTotal.WithLabelValues(source, status).Inc()
	pm.parseDuration.WithLabelValues(source).Observe(duration.Seconds())

	if rows > 0 {
		pm.rowsExpanded.WithLabelValues(source).Add(float64(rows))
	}
}

// RecordError records a parse failure attributed to a pipeline stage.
func (pm *ParseMetrics) RecordError(source, stage string) {
	pm.errorsTotal.WithLabelValues(source, stage).Inc()
}
