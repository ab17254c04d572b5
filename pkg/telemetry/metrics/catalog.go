package metrics

import (
	"time"

	"tabworks/pxtab/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
)

// CatalogMetrics tracks metrics related to the source catalog.
//
// Metrics:
//   - pxtab_catalog_refreshes_total: Source refresh count by source and status
//   - pxtab_catalog_datasets: Number of datasets currently held
//   - pxtab_catalog_last_refresh_timestamp_seconds: Unix time of the last
//     successful refresh per source
type CatalogMetrics struct {
	// Refresh outcomes
	refreshesTotal *prometheus.CounterVec

	// Datasets currently held by the catalog
	datasets prometheus.Gauge

	// Last successful refresh per source
	lastRefresh *prometheus.GaugeVec
}

// NewCatalogMetrics creates and registers catalog metrics with the provided registry.
func NewCatalogMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *CatalogMetrics {
	cm := &CatalogMetrics{
		refreshesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Name:      "catalog_refreshes_total",
				Help:      "Total number of catalog source refreshes",
			},
			[]string{"source", "status"},
		),

		datasets: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: cfg.Namespace,
				Name:      "catalog_datasets",
				Help:      "Number of datasets currently held by the catalog",
			},
		),

		lastRefresh: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: cfg.Namespace,
				Name:      "catalog_last_refresh_timestamp_seconds",
				Help:      "Unix timestamp of the last successful refresh per source",
			},
			[]string{"source"},
		),
	}

	registry.MustRegister(
		cm.refreshesTotal,
		cm.datasets,
		cm.lastRefresh,
	)

	return cm
}

// RecordRefresh records the outcome of a source refresh.
func (cm *CatalogMetrics) RecordRefresh(source, status string) {
	cm.refreshesTotal.WithLabelValues(source, status).Inc()
}

// SetDatasets updates the dataset count gauge.
func (cm *CatalogMetrics) SetDatasets(n int) {
	cm.datasets.Set(float64(n))
}

// SetLastRefresh records when a source was last refreshed successfully.
func (cm *CatalogMetrics) SetLastRefresh(source string, ts time.Time) {
	cm.lastRefresh.WithLabelValues(source).Set(float64(ts.Unix()))
}
