package config

import "time"

// Config is the root configuration structure for pxtab.
// It contains all configuration sections for document fetching, parsing,
// dataset storage, the source catalog, and telemetry.
type Config struct {
	// Fetch contains configuration for document acquisition over HTTP and
	// from the filesystem.
	Fetch FetchConfig `yaml:"fetch"`

	// Parser contains configuration for the PX parser.
	Parser ParserConfig `yaml:"parser"`

	// Store contains configuration for the dataset store.
	Store StoreConfig `yaml:"store"`

	// Catalog contains configuration for the source catalog, including
	// registered PX sources, the refresh schedule, and watch mode.
	Catalog CatalogConfig `yaml:"catalog"`

	// Telemetry contains configuration for observability including logging
	// and metrics.
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// FetchConfig contains configuration for document acquisition.
type FetchConfig struct {
	// Timeout is the maximum duration for a network fetch, connect through
	// body. A zero value uses the default.
	// Default: 30s
	Timeout time.Duration `yaml:"timeout"`

	// MaxBodySize caps the accepted document size in bytes for both network
	// and filesystem reads. Zero disables the cap.
	// Default: 67108864 (64MB)
	MaxBodySize int64 `yaml:"max_body_size"`

	// UserAgent is sent with every HTTP request.
	// Default: "pxtab"
	UserAgent string `yaml:"user_agent"`

	// DefaultEncoding is the charset assumed for sources that do not name
	// one. Empty means the bytes are treated as UTF-8.
	// Most PX publishers still use "ISO-8859-15" or "windows-1252".
	// Default: "" (UTF-8)
	DefaultEncoding string `yaml:"default_encoding"`
}

// ParserConfig contains configuration for the PX parser.
type ParserConfig struct {
	// MaxDocumentSize is the maximum accepted document size in bytes.
	// Zero disables the limit.
	// Default: 67108864 (64MB)
	MaxDocumentSize int `yaml:"max_document_size"`
}

// StoreConfig contains configuration for the SQLite dataset store.
type StoreConfig struct {
	// Enabled controls whether parsed datasets are persisted.
	// Default: false
	Enabled bool `yaml:"enabled"`

	// Path is the file path for the SQLite database.
	// Default: "data/pxtab.db"
	Path string `yaml:"path"`

	// MaxOpenConns is the maximum number of open database connections.
	// Default: 10
	MaxOpenConns int `yaml:"max_open_conns"`

	// MaxIdleConns is the maximum number of idle database connections.
	// Default: 5
	MaxIdleConns int `yaml:"max_idle_conns"`

	// WALMode enables Write-Ahead Logging mode for better concurrency.
	// Default: true
	WALMode bool `yaml:"wal_mode"`

	// BusyTimeout is the duration to wait when the database is locked.
	// Default: 5s
	BusyTimeout time.Duration `yaml:"busy_timeout"`

	// Retention controls pruning of stored datasets.
	Retention RetentionConfig `yaml:"retention"`
}

// RetentionConfig contains configuration for dataset retention pruning.
// Every refresh stores a new dataset record, so a long-running service
// accumulates history until a retention limit is set.
type RetentionConfig struct {
	// MaxAgeDays is how many days to keep stored datasets.
	// 0 keeps datasets forever.
	// Default: 0
	MaxAgeDays int `yaml:"max_age_days"`

	// MaxPerSource caps how many datasets each source keeps, newest
	// first. 0 means unlimited history.
	// Default: 0
	MaxPerSource int `yaml:"max_per_source"`

	// Schedule is a cron expression for automatic pruning. Pruning only
	// runs when a limit above is set.
	// Default: "0 3 * * *" (daily at 3 AM)
	Schedule string `yaml:"schedule"`
}

// CatalogConfig contains configuration for the source catalog.
type CatalogConfig struct {
	// RefreshSchedule is a cron expression for the periodic refresh of all
	// registered sources. Empty disables scheduled refreshes.
	// Default: "0 6 * * *" (daily at 6 AM)
	RefreshSchedule string `yaml:"refresh_schedule"`

	// Watch enables automatic re-parsing when a file-based source changes
	// on disk.
	// Default: false
	Watch bool `yaml:"watch"`

	// DebounceDelay is how long to wait after a file change before
	// re-parsing, so editors that write in bursts trigger one refresh.
	// Default: 500ms
	DebounceDelay time.Duration `yaml:"debounce_delay"`

	// Sources is the list of registered PX sources.
	Sources []SourceConfig `yaml:"sources"`
}

// SourceConfig describes one registered PX source.
type SourceConfig struct {
	// Name identifies the source. Must be unique within the catalog.
	Name string `yaml:"name"`

	// Locator is the source document's URL or filesystem path.
	Locator string `yaml:"locator"`

	// Encoding is the document charset by IANA name. Empty falls back to
	// fetch.default_encoding.
	Encoding string `yaml:"encoding"`

	// Schedule is an optional per-source cron expression that overrides
	// catalog.refresh_schedule for this source.
	Schedule string `yaml:"schedule"`
}

// TelemetryConfig contains configuration for observability.
type TelemetryConfig struct {
	// Logging contains logging configuration.
	Logging LoggingConfig `yaml:"logging"`

	// Metrics contains metrics collection configuration.
	Metrics MetricsConfig `yaml:"metrics"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	// Level is the minimum log level to emit.
	// Options: "debug", "info", "warn", "error"
	// Default: "info"
	Level string `yaml:"level"`

	// Format controls the log output format.
	// Options: "json", "text"
	// Default: "text"
	Format string `yaml:"format"`

	// AddSource includes file and line number in log entries.
	// Default: false
	AddSource bool `yaml:"add_source"`
}

// MetricsConfig contains metrics collection configuration.
type MetricsConfig struct {
	// Enabled controls whether the Prometheus endpoint is served in run
	// mode.
	// Default: false
	Enabled bool `yaml:"enabled"`

	// ListenAddress is the address and port for the metrics endpoint.
	// Default: "127.0.0.1:9090"
	ListenAddress string `yaml:"listen_address"`

	// Path is the HTTP path for the Prometheus metrics endpoint.
	// Default: "/metrics"
	Path string `yaml:"path"`

	// Namespace is the metric name prefix.
	// Default: "pxtab"
	Namespace string `yaml:"namespace"`

	// DurationBuckets defines histogram buckets for parse and fetch
	// durations (seconds).
	// Default: [0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1.0, 5.0, 30.0]
	DurationBuckets []float64 `yaml:"duration_buckets"`
}
