package config

import "time"

// Default values for configuration fields.
const (
	// Fetch defaults
	DefaultFetchTimeout     = 30 * time.Second
	DefaultFetchMaxBodySize = int64(64 * 1024 * 1024) // 64MB
	DefaultFetchUserAgent   = "pxtab"

	// Parser defaults
	DefaultParserMaxDocumentSize = 64 * 1024 * 1024 // 64MB

	// Store defaults
	DefaultStorePath         = "data/pxtab.db"
	DefaultStoreMaxOpenConns = 10
	DefaultStoreMaxIdleConns = 5
	DefaultStoreWALMode      = true
	DefaultStoreBusyTimeout  = 5 * time.Second
	DefaultRetentionSchedule = "0 3 * * *"

	// Catalog defaults
	DefaultCatalogRefreshSchedule = "0 6 * * *"
	DefaultCatalogDebounceDelay   = 500 * time.Millisecond

	// Telemetry defaults
	DefaultLoggingLevel      = "info"
	DefaultLoggingFormat     = "text"
	DefaultMetricsListenAddr = "127.0.0.1:9090"
	DefaultMetricsPath       = "/metrics"
	DefaultMetricsNamespace  = "pxtab"
)

// DefaultDurationBuckets are the histogram buckets for parse and fetch
// durations, in seconds.
var DefaultDurationBuckets = []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1.0, 5.0, 30.0}

// ApplyDefaults applies default values to a Config struct.
// It sets defaults for any fields that have zero values.
// This function is idempotent and safe to call multiple times.
func ApplyDefaults(cfg *Config) {
	// Fetch defaults
	if cfg.Fetch.Timeout == 0 {
		cfg.Fetch.Timeout = DefaultFetchTimeout
	}
	if cfg.Fetch.MaxBodySize == 0 {
		cfg.Fetch.MaxBodySize = DefaultFetchMaxBodySize
	}
	if cfg.Fetch.UserAgent == "" {
		cfg.Fetch.UserAgent = DefaultFetchUserAgent
	}

	// Parser defaults
	if cfg.Parser.MaxDocumentSize == 0 {
		cfg.Parser.MaxDocumentSize = DefaultParserMaxDocumentSize
	}

	// Store defaults
	if cfg.Store.Path == "" {
		cfg.Store.Path = DefaultStorePath
	}
	if cfg.Store.MaxOpenConns == 0 {
		cfg.Store.MaxOpenConns = DefaultStoreMaxOpenConns
	}
	if cfg.Store.MaxIdleConns == 0 {
		cfg.Store.MaxIdleConns = DefaultStoreMaxIdleConns
	}
	if !cfg.Store.WALMode {
		cfg.Store.WALMode = DefaultStoreWALMode
	}
	if cfg.Store.BusyTimeout == 0 {
		cfg.Store.BusyTimeout = DefaultStoreBusyTimeout
	}
	if cfg.Store.Retention.Schedule == "" {
		cfg.Store.Retention.Schedule = DefaultRetentionSchedule
	}

	// Catalog defaults
	if cfg.Catalog.RefreshSchedule == "" {
		cfg.Catalog.RefreshSchedule = DefaultCatalogRefreshSchedule
	}
	if cfg.Catalog.DebounceDelay == 0 {
		cfg.Catalog.DebounceDelay = DefaultCatalogDebounceDelay
	}

	// Telemetry defaults
	if cfg.Telemetry.Logging.Level == "" {
		cfg.Telemetry.Logging.Level = DefaultLoggingLevel
	}
	if cfg.Telemetry.Logging.Format == "" {
		cfg.Telemetry.Logging.Format = DefaultLoggingFormat
	}
	if cfg.Telemetry.Metrics.ListenAddress == "" {
		cfg.Telemetry.Metrics.ListenAddress = DefaultMetricsListenAddr
	}
	if cfg.Telemetry.Metrics.Path == "" {
		cfg.Telemetry.Metrics.Path = DefaultMetricsPath
	}
	if cfg.Telemetry.Metrics.Namespace == "" {
		cfg.Telemetry.Metrics.Namespace = DefaultMetricsNamespace
	}
	if cfg.Telemetry.Metrics.DurationBuckets == nil {
		cfg.Telemetry.Metrics.DurationBuckets = DefaultDurationBuckets
	}
}
