package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// LoadConfig loads configuration from a YAML file at the specified path.
// It applies default values, validates the configuration, and returns any
// errors. An empty path skips the file and yields the built-in defaults.
// The configuration is not modified by environment variables; use
// LoadConfigWithEnvOverrides for that functionality.
func LoadConfig(path string) (*Config, error) {
	var cfg Config

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read configuration file %q: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse configuration file %q: %w", path, err)
		}
	}

	// Apply defaults
	ApplyDefaults(&cfg)

	// Validate
	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

// LoadConfigWithEnvOverrides loads configuration from a YAML file and applies
// environment variable overrides. Environment variables follow the naming
// convention PXTAB_SECTION_FIELD (e.g., PXTAB_STORE_PATH).
// Environment variables always take precedence over file-based configuration.
//
// The loading sequence is:
// 1. Load YAML from file
// 2. Apply default values
// 3. Apply environment variable overrides
// 4. Validate final configuration
func LoadConfigWithEnvOverrides(path string) (*Config, error) {
	// First load from file (this already applies defaults)
	cfg, err := LoadConfig(path)
	if err != nil {
		return nil, err
	}

	// Apply environment variable overrides
	applyEnvOverrides(cfg)

	// Re-validate after overrides
	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed after environment overrides: %w", err)
	}

	return cfg, nil
}

// applyEnvOverrides applies environment variable overrides to the configuration.
// Environment variables use the format PXTAB_SECTION_FIELD.
func applyEnvOverrides(cfg *Config) {
	// Fetch overrides
	if val := os.Getenv("PXTAB_FETCH_TIMEOUT"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.Fetch.Timeout = d
		}
	}
	if val := os.Getenv("PXTAB_FETCH_MAX_BODY_SIZE"); val != "" {
		if i, err := strconv.ParseInt(val, 10, 64); err == nil {
			cfg.Fetch.MaxBodySize = i
		}
	}
	if val := os.Getenv("PXTAB_FETCH_USER_AGENT"); val != "" {
		cfg.Fetch.UserAgent = val
	}
	if val := os.Getenv("PXTAB_FETCH_DEFAULT_ENCODING"); val != "" {
		cfg.Fetch.DefaultEncoding = val
	}

	// Parser overrides
	if val := os.Getenv("PXTAB_PARSER_MAX_DOCUMENT_SIZE"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			cfg.Parser.MaxDocumentSize = i
		}
	}

	// Store overrides
	if val := os.Getenv("PXTAB_STORE_ENABLED"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Store.Enabled = b
		}
	}
	if val := os.Getenv("PXTAB_STORE_PATH"); val != "" {
		cfg.Store.Path = val
	}
	if val := os.Getenv("PXTAB_STORE_MAX_OPEN_CONNS"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			cfg.Store.MaxOpenConns = i
		}
	}
	if val := os.Getenv("PXTAB_STORE_BUSY_TIMEOUT"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.Store.BusyTimeout = d
		}
	}
	if val := os.Getenv("PXTAB_STORE_RETENTION_MAX_AGE_DAYS"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			cfg.Store.Retention.MaxAgeDays = i
		}
	}
	if val := os.Getenv("PXTAB_STORE_RETENTION_MAX_PER_SOURCE"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			cfg.Store.Retention.MaxPerSource = i
		}
	}

	// Catalog overrides
	if val := os.Getenv("PXTAB_CATALOG_REFRESH_SCHEDULE"); val != "" {
		cfg.Catalog.RefreshSchedule = val
	}
	if val := os.Getenv("PXTAB_CATALOG_WATCH"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Catalog.Watch = b
		}
	}
	if val := os.Getenv("PXTAB_CATALOG_DEBOUNCE_DELAY"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.Catalog.DebounceDelay = d
		}
	}

	// Telemetry overrides
	if val := os.Getenv("PXTAB_TELEMETRY_LOGGING_LEVEL"); val != "" {
		cfg.Telemetry.Logging.Level = val
	}
	if val := os.Getenv("PXTAB_TELEMETRY_LOGGING_FORMAT"); val != "" {
		cfg.Telemetry.Logging.Format = val
	}
	if val := os.Getenv("PXTAB_TELEMETRY_METRICS_ENABLED"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Telemetry.Metrics.Enabled = b
		}
	}
	if val := os.Getenv("PXTAB_TELEMETRY_METRICS_LISTEN_ADDRESS"); val != "" {
		cfg.Telemetry.Metrics.ListenAddress = val
	}
	if val := os.Getenv("PXTAB_TELEMETRY_METRICS_PATH"); val != "" {
		cfg.Telemetry.Metrics.Path = val
	}
}
