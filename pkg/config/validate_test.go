package config

import (
	"strings"
	"testing"
)

// validConfig returns a configuration that passes validation, for tests to
// break one field at a time.
func validConfig() *Config {
	cfg := &Config{}
	ApplyDefaults(cfg)
	return cfg
}

func TestValidate_Defaults(t *testing.T) {
	if err := Validate(validConfig()); err != nil {
		t.Errorf("default config failed validation: %v", err)
	}
}

func TestValidate_NegativeFetchTimeout(t *testing.T) {
	cfg := validConfig()
	cfg.Fetch.Timeout = -1

	err := Validate(cfg)
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !strings.Contains(err.Error(), "fetch.timeout") {
		t.Errorf("error should name fetch.timeout: %v", err)
	}
}

func TestValidate_UnknownDefaultEncoding(t *testing.T) {
	cfg := validConfig()
	cfg.Fetch.DefaultEncoding = "klingon-8"

	err := Validate(cfg)
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !strings.Contains(err.Error(), "fetch.default_encoding") {
		t.Errorf("error should name fetch.default_encoding: %v", err)
	}
}

func TestValidate_StoreDisabledSkipsChecks(t *testing.T) {
	cfg := validConfig()
	cfg.Store.Enabled = false
	cfg.Store.Path = ""

	if err := Validate(cfg); err != nil {
		t.Errorf("disabled store should skip validation: %v", err)
	}
}

func TestValidate_StoreEnabledRequiresPath(t *testing.T) {
	cfg := validConfig()
	cfg.Store.Enabled = true
	cfg.Store.Path = ""

	err := Validate(cfg)
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !strings.Contains(err.Error(), "store.path") {
		t.Errorf("error should name store.path: %v", err)
	}
}

func TestValidate_BadRetentionSchedule(t *testing.T) {
	cfg := validConfig()
	cfg.Store.Enabled = true
	cfg.Store.Retention.Schedule = "every other thursday"

	err := Validate(cfg)
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !strings.Contains(err.Error(), "store.retention.schedule") {
		t.Errorf("error should name store.retention.schedule: %v", err)
	}
}

func TestValidate_NegativeRetentionLimits(t *testing.T) {
	cfg := validConfig()
	cfg.Store.Enabled = true
	cfg.Store.Retention.MaxAgeDays = -1
	cfg.Store.Retention.MaxPerSource = -1

	err := Validate(cfg)
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !strings.Contains(err.Error(), "store.retention.max_age_days") {
		t.Errorf("error should name store.retention.max_age_days: %v", err)
	}
	if !strings.Contains(err.Error(), "store.retention.max_per_source") {
		t.Errorf("error should name store.retention.max_per_source: %v", err)
	}
}

func TestValidate_BadRefreshSchedule(t *testing.T) {
	cfg := validConfig()
	cfg.Catalog.RefreshSchedule = "99 99 * * *"

	err := Validate(cfg)
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !strings.Contains(err.Error(), "catalog.refresh_schedule") {
		t.Errorf("error should name catalog.refresh_schedule: %v", err)
	}
}

func TestValidate_Sources(t *testing.T) {
	tests := []struct {
		name      string
		sources   []SourceConfig
		wantField string
	}{
		{
			name: "missing name",
			sources: []SourceConfig{
				{Locator: "/data/a.px"},
			},
			wantField: "catalog.sources[0].name",
		},
		{
			name: "missing locator",
			sources: []SourceConfig{
				{Name: "a"},
			},
			wantField: "catalog.sources[0].locator",
		},
		{
			name: "duplicate names",
			sources: []SourceConfig{
				{Name: "a", Locator: "/data/a.px"},
				{Name: "a", Locator: "/data/b.px"},
			},
			wantField: "catalog.sources[1].name",
		},
		{
			name: "bad encoding",
			sources: []SourceConfig{
				{Name: "a", Locator: "/data/a.px", Encoding: "not-a-charset"},
			},
			wantField: "catalog.sources[0].encoding",
		},
		{
			name: "bad schedule",
			sources: []SourceConfig{
				{Name: "a", Locator: "/data/a.px", Schedule: "whenever"},
			},
			wantField: "catalog.sources[0].schedule",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			cfg.Catalog.Sources = tt.sources

			err := Validate(cfg)
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.wantField) {
				t.Errorf("error should name %s: %v", tt.wantField, err)
			}
		})
	}
}

func TestValidate_ValidSources(t *testing.T) {
	cfg := validConfig()
	cfg.Catalog.Sources = []SourceConfig{
		{Name: "population", Locator: "https://pxweb.example.org/population.px", Encoding: "ISO-8859-15"},
		{Name: "employment", Locator: "/data/employment.px", Schedule: "0 7 * * 1"},
	}

	if err := Validate(cfg); err != nil {
		t.Errorf("valid sources failed validation: %v", err)
	}
}

func TestValidate_BadLoggingLevel(t *testing.T) {
	cfg := validConfig()
	cfg.Telemetry.Logging.Level = "loud"

	err := Validate(cfg)
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !strings.Contains(err.Error(), "telemetry.logging.level") {
		t.Errorf("error should name telemetry.logging.level: %v", err)
	}
}

func TestValidate_MetricsEnabledRequiresAddress(t *testing.T) {
	cfg := validConfig()
	cfg.Telemetry.Metrics.Enabled = true
	cfg.Telemetry.Metrics.ListenAddress = ""

	err := Validate(cfg)
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !strings.Contains(err.Error(), "telemetry.metrics.listen_address") {
		t.Errorf("error should name telemetry.metrics.listen_address: %v", err)
	}
}

func TestValidationError_MultipleErrors(t *testing.T) {
	cfg := validConfig()
	cfg.Fetch.Timeout = -1
	cfg.Telemetry.Logging.Format = "xml"

	err := Validate(cfg)
	if err == nil {
		t.Fatal("expected validation error")
	}

	verr, ok := err.(ValidationError)
	if !ok {
		t.Fatalf("error is %T, want ValidationError", err)
	}
	if len(verr.Errors) != 2 {
		t.Errorf("len(Errors) = %d, want 2", len(verr.Errors))
	}
	if !strings.Contains(err.Error(), "2 errors") {
		t.Errorf("message should count errors: %v", err)
	}
}
