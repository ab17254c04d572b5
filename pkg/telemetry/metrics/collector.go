package metrics

import (
	"sync"
	"time"

	"tabworks/pxtab/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
)

// Status label values shared by all counters.
const (
	// StatusSuccess marks a completed operation.
	StatusSuccess = "success"
	// StatusError marks a failed operation.
	StatusError = "error"
)

// maxSourceCardinality caps the number of distinct source label values.
// Sources normally come from a bounded catalog, but ad-hoc locators
// must not be able to grow the metric space without limit.
const maxSourceCardinality = 1000

// Collector is the orchestrator for all Prometheus metrics in pxtab.
// It owns the registry, registers the metric families on construction
// and provides a unified recording interface for the catalog and the
// CLI service mode.
type Collector struct {
	config   *config.MetricsConfig
	registry *prometheus.Registry

	// Parse metrics
	parseMetrics *ParseMetrics

	// Fetch metrics
	fetchMetrics *FetchMetrics

	// Catalog metrics
	catalogMetrics *CatalogMetrics

	// Cardinality tracking for the source label
	sourceLimiter *CardinalityLimiter
}

// NewCollector creates a new metrics collector with the specified
// configuration and Prometheus registry. If registry is nil, a fresh
// registry is created.
//
// Example:
//
//	cfg := &config.MetricsConfig{
//		Enabled:   true,
//		Namespace: "pxtab",
//	}
//	collector := metrics.NewCollector(cfg, nil)
func NewCollector(cfg *config.MetricsConfig, registry *prometheus.Registry) *Collector {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	// Set defaults if not specified
	if cfg.Namespace == "" {
		cfg.Namespace = config.DefaultMetricsNamespace
	}
	if len(cfg.DurationBuckets) == 0 {
		cfg.DurationBuckets = config.DefaultDurationBuckets
	}

	c := &Collector{
		config:        cfg,
		registry:      registry,
		sourceLimiter: NewCardinalityLimiter(maxSourceCardinality),
	}

	c.parseMetrics = NewParseMetrics(cfg, registry)
	c.fetchMetrics = NewFetchMetrics(cfg, registry)
	c.catalogMetrics = NewCatalogMetrics(cfg, registry)

	return c
}

// RecordParse records metrics for a completed parse.
//
// Parameters:
//   - source: catalog source name, or "adhoc" for one-shot CLI parses
//   - status: "success" or "error"
//   - duration: wall time spent parsing
//   - rows: number of expanded rows (0 when the parse failed)
func (c *Collector) RecordParse(source, status string, duration time.Duration, rows int) {
	if !c.config.Enabled {
		return
	}

	c.parseMetrics.RecordParse(c.boundSource(source), status, duration, rows)
}

// RecordParseError records a parse failure attributed to a pipeline
// stage ("malformed_document", "missing_dimension_values",
// "count_mismatch" or "other").
func (c *Collector) RecordParseError(source, stage string) {
	if !c.config.Enabled {
		return
	}

	c.parseMetrics.RecordError(c.boundSource(source), stage)
}

// RecordFetch records metrics for a document retrieval.
//
// Parameters:
//   - scheme: locator scheme ("https", "http", "ftp", "file")
//   - status: "success" or "error"
//   - duration: wall time spent fetching
//   - sizeBytes: decoded document size (0 when the fetch failed)
func (c *Collector) RecordFetch(scheme, status string, duration time.Duration, sizeBytes int64) {
	if !c.config.Enabled {
		return
	}

	c.fetchMetrics.RecordFetch(scheme, status, duration, sizeBytes)
}

// RecordRefresh records the outcome of a catalog source refresh.
func (c *Collector) RecordRefresh(source, status string) {
	if !c.config.Enabled {
		return
	}

	c.catalogMetrics.RecordRefresh(c.boundSource(source), status)
}

// SetCatalogSize updates the gauge tracking how many datasets the
// catalog currently holds.
func (c *Collector) SetCatalogSize(n int) {
	if !c.config.Enabled {
		return
	}

	c.catalogMetrics.SetDatasets(n)
}

// SetLastRefresh updates the per-source gauge recording when the
// source was last refreshed successfully.
func (c *Collector) SetLastRefresh(source string, ts time.Time) {
	if !c.config.Enabled {
		return
	}

	c.catalogMetrics.SetLastRefresh(c.boundSource(source), ts)
}

// boundSource returns the source label to record under. Once the
// cardinality limit is reached, new source values aggregate into
// "other" so the metric space stays bounded.
func (c *Collector) boundSource(source string) string {
	if !c.sourceLimiter.Allow(source) {
		return "other"
	}
	return source
}

// Registry returns the Prometheus registry used by this collector.
// This can be used to create an HTTP handler for the /metrics endpoint:
//
//	http.Handle("/metrics", promhttp.HandlerFor(
//		collector.Registry(),
//		promhttp.HandlerOpts{},
//	))
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// CardinalityLimiter prevents metric cardinality explosion by limiting
// the number of unique label values it has seen.
type CardinalityLimiter struct {
	maxCardinality int
	current        map[string]struct{}
	mu             sync.RWMutex
}

// NewCardinalityLimiter creates a new cardinality limiter with the
// specified maximum cardinality.
func NewCardinalityLimiter(maxCardinality int) *CardinalityLimiter {
	return &CardinalityLimiter{
		maxCardinality: maxCardinality,
		current:        make(map[string]struct{}),
	}
}

// Allow reports whether the label value may be recorded as-is. Known
// values are always allowed; new values are allowed until the limit is
// reached.
func (cl *CardinalityLimiter) Allow(value string) bool {
	cl.mu.RLock()
	if _, exists := cl.current[value]; exists {
		cl.mu.RUnlock()
		return true
	}
	cl.mu.RUnlock()

	cl.mu.Lock()
	defer cl.mu.Unlock()

	// Double-check after acquiring write lock
	if _, exists := cl.current[value]; exists {
		return true
	}

	if len(cl.current) >= cl.maxCardinality {
		return false
	}

	cl.current[value] = struct{}{}
	return true
}

// Count returns the current cardinality.
func (cl *CardinalityLimiter) Count() int {
	cl.mu.RLock()
	defer cl.mu.RUnlock()
	return len(cl.current)
}
