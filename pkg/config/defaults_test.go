package config

import "testing"

func TestApplyDefaults_ZeroConfig(t *testing.T) {
	cfg := &Config{}
	ApplyDefaults(cfg)

	if cfg.Fetch.Timeout != DefaultFetchTimeout {
		t.Errorf("Fetch.Timeout = %v, want %v", cfg.Fetch.Timeout, DefaultFetchTimeout)
	}
	if cfg.Fetch.MaxBodySize != DefaultFetchMaxBodySize {
		t.Errorf("Fetch.MaxBodySize = %d, want %d", cfg.Fetch.MaxBodySize, DefaultFetchMaxBodySize)
	}
	if cfg.Fetch.UserAgent != DefaultFetchUserAgent {
		t.Errorf("Fetch.UserAgent = %q, want %q", cfg.Fetch.UserAgent, DefaultFetchUserAgent)
	}
	if cfg.Parser.MaxDocumentSize != DefaultParserMaxDocumentSize {
		t.Errorf("Parser.MaxDocumentSize = %d, want %d", cfg.Parser.MaxDocumentSize, DefaultParserMaxDocumentSize)
	}
	if cfg.Store.Path != DefaultStorePath {
		t.Errorf("Store.Path = %q, want %q", cfg.Store.Path, DefaultStorePath)
	}
	if !cfg.Store.WALMode {
		t.Error("Store.WALMode = false, want true")
	}
	if cfg.Store.Retention.Schedule != DefaultRetentionSchedule {
		t.Errorf("Store.Retention.Schedule = %q, want %q", cfg.Store.Retention.Schedule, DefaultRetentionSchedule)
	}
	if cfg.Store.Retention.MaxAgeDays != 0 {
		t.Errorf("Store.Retention.MaxAgeDays = %d, want 0", cfg.Store.Retention.MaxAgeDays)
	}
	if cfg.Catalog.RefreshSchedule != DefaultCatalogRefreshSchedule {
		t.Errorf("Catalog.RefreshSchedule = %q, want %q", cfg.Catalog.RefreshSchedule, DefaultCatalogRefreshSchedule)
	}
	if cfg.Telemetry.Logging.Level != DefaultLoggingLevel {
		t.Errorf("Logging.Level = %q, want %q", cfg.Telemetry.Logging.Level, DefaultLoggingLevel)
	}
	if cfg.Telemetry.Metrics.Namespace != DefaultMetricsNamespace {
		t.Errorf("Metrics.Namespace = %q, want %q", cfg.Telemetry.Metrics.Namespace, DefaultMetricsNamespace)
	}
	if len(cfg.Telemetry.Metrics.DurationBuckets) == 0 {
		t.Error("Metrics.DurationBuckets is empty")
	}
}

func TestApplyDefaults_PreservesExplicitValues(t *testing.T) {
	cfg := &Config{}
	cfg.Fetch.UserAgent = "custom-agent"
	cfg.Store.Path = "/custom/path.db"
	cfg.Telemetry.Logging.Level = "warn"

	ApplyDefaults(cfg)

	if cfg.Fetch.UserAgent != "custom-agent" {
		t.Errorf("Fetch.UserAgent = %q, want %q", cfg.Fetch.UserAgent, "custom-agent")
	}
	if cfg.Store.Path != "/custom/path.db" {
		t.Errorf("Store.Path = %q, want %q", cfg.Store.Path, "/custom/path.db")
	}
	if cfg.Telemetry.Logging.Level != "warn" {
		t.Errorf("Logging.Level = %q, want %q", cfg.Telemetry.Logging.Level, "warn")
	}
}

func TestApplyDefaults_Idempotent(t *testing.T) {
	cfg := &Config{}
	ApplyDefaults(cfg)
	first := *cfg

	ApplyDefaults(cfg)

	if cfg.Fetch != first.Fetch {
		t.Errorf("Fetch changed on second apply: %+v != %+v", cfg.Fetch, first.Fetch)
	}
	if cfg.Store != first.Store {
		t.Errorf("Store changed on second apply: %+v != %+v", cfg.Store, first.Store)
	}
}
