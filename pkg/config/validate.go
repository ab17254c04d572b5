package config

import (
	"fmt"
	"strings"

	"github.com/robfig/cron/v3"
	"golang.org/x/text/encoding/ianaindex"
)

// FieldError represents a validation error for a specific configuration field.
type FieldError struct {
	// Field is the dotted path to the configuration field (e.g., "store.path").
	Field string

	// Message is a human-readable error message.
	Message string
}

// Error returns the error message for this field error.
func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationError represents one or more validation errors in a configuration.
// It implements the error interface and provides access to all field errors.
type ValidationError struct {
	// Errors contains all validation errors found in the configuration.
	Errors []FieldError
}

// Error returns a formatted string containing all validation errors.
func (e ValidationError) Error() string {
	if len(e.Errors) == 0 {
		return "configuration validation failed"
	}
	if len(e.Errors) == 1 {
		return fmt.Sprintf("configuration validation failed: %s", e.Errors[0].Error())
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("configuration validation failed with %d errors:\n", len(e.Errors)))
	for _, err := range e.Errors {
		sb.WriteString(fmt.Sprintf("  - %s\n", err.Error()))
	}
	return sb.String()
}

// Validate validates the entire configuration and returns a ValidationError
// if any validation rules fail. It returns nil if the configuration is valid.
// All validation errors are collected and returned together.
func Validate(cfg *Config) error {
	var errs []FieldError

	errs = append(errs, validateFetch(&cfg.Fetch)...)
	errs = append(errs, validateParser(&cfg.Parser)...)
	errs = append(errs, validateStore(&cfg.Store)...)
	errs = append(errs, validateCatalog(&cfg.Catalog)...)
	errs = append(errs, validateTelemetry(&cfg.Telemetry)...)

	if len(errs) > 0 {
		return ValidationError{Errors: errs}
	}

	return nil
}

// validateFetch validates fetch configuration.
func validateFetch(cfg *FetchConfig) []FieldError {
	var errs []FieldError

	if cfg.Timeout < 0 {
		errs = append(errs, FieldError{
			Field:   "fetch.timeout",
			Message: "timeout must be non-negative",
		})
	}
	if cfg.MaxBodySize < 0 {
		errs = append(errs, FieldError{
			Field:   "fetch.max_body_size",
			Message: "max body size must be non-negative",
		})
	}
	if cfg.DefaultEncoding != "" {
		errs = append(errs, validateCharset("fetch.default_encoding", cfg.DefaultEncoding)...)
	}

	return errs
}

// validateParser validates parser configuration.
func validateParser(cfg *ParserConfig) []FieldError {
	var errs []FieldError

	if cfg.MaxDocumentSize < 0 {
		errs = append(errs, FieldError{
			Field:   "parser.max_document_size",
			Message: "max document size must be non-negative",
		})
	}

	return errs
}

// validateStore validates store configuration.
func validateStore(cfg *StoreConfig) []FieldError {
	var errs []FieldError

	// If the store is disabled, skip validation
	if !cfg.Enabled {
		return errs
	}

	if cfg.Path == "" {
		errs = append(errs, FieldError{
			Field:   "store.path",
			Message: "path is required when the store is enabled",
		})
	}
	if cfg.MaxOpenConns < 0 {
		errs = append(errs, FieldError{
			Field:   "store.max_open_conns",
			Message: "max open connections must be non-negative",
		})
	}
	if cfg.MaxIdleConns < 0 {
		errs = append(errs, FieldError{
			Field:   "store.max_idle_conns",
			Message: "max idle connections must be non-negative",
		})
	}
	if cfg.BusyTimeout < 0 {
		errs = append(errs, FieldError{
			Field:   "store.busy_timeout",
			Message: "busy timeout must be non-negative",
		})
	}
	if cfg.Retention.MaxAgeDays < 0 {
		errs = append(errs, FieldError{
			Field:   "store.retention.max_age_days",
			Message: "max age must be non-negative",
		})
	}
	if cfg.Retention.MaxPerSource < 0 {
		errs = append(errs, FieldError{
			Field:   "store.retention.max_per_source",
			Message: "max per source must be non-negative",
		})
	}
	if cfg.Retention.Schedule != "" {
		errs = append(errs, validateSchedule("store.retention.schedule", cfg.Retention.Schedule)...)
	}

	return errs
}

// validateCatalog validates catalog configuration.
func validateCatalog(cfg *CatalogConfig) []FieldError {
	var errs []FieldError

	if cfg.RefreshSchedule != "" {
		errs = append(errs, validateSchedule("catalog.refresh_schedule", cfg.RefreshSchedule)...)
	}
	if cfg.DebounceDelay < 0 {
		errs = append(errs, FieldError{
			Field:   "catalog.debounce_delay",
			Message: "debounce delay must be non-negative",
		})
	}

	seen := make(map[string]bool)
	for i, source := range cfg.Sources {
		prefix := fmt.Sprintf("catalog.sources[%d]", i)

		if source.Name == "" {
			errs = append(errs, FieldError{
				Field:   prefix + ".name",
				Message: "name is required",
			})
		} else if seen[source.Name] {
			errs = append(errs, FieldError{
				Field:   prefix + ".name",
				Message: fmt.Sprintf("duplicate source name %q", source.Name),
			})
		}
		seen[source.Name] = true

		if source.Locator == "" {
			errs = append(errs, FieldError{
				Field:   prefix + ".locator",
				Message: "locator is required",
			})
		}
		if source.Encoding != "" {
			errs = append(errs, validateCharset(prefix+".encoding", source.Encoding)...)
		}
		if source.Schedule != "" {
			errs = append(errs, validateSchedule(prefix+".schedule", source.Schedule)...)
		}
	}

	return errs
}

// validateTelemetry validates telemetry configuration.
func validateTelemetry(cfg *TelemetryConfig) []FieldError {
	var errs []FieldError

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[strings.ToLower(cfg.Logging.Level)] {
		errs = append(errs, FieldError{
			Field:   "telemetry.logging.level",
			Message: fmt.Sprintf("invalid level %q: must be 'debug', 'info', 'warn', or 'error'", cfg.Logging.Level),
		})
	}

	validFormats := map[string]bool{"json": true, "text": true}
	if !validFormats[strings.ToLower(cfg.Logging.Format)] {
		errs = append(errs, FieldError{
			Field:   "telemetry.logging.format",
			Message: fmt.Sprintf("invalid format %q: must be 'json' or 'text'", cfg.Logging.Format),
		})
	}

	if cfg.Metrics.Enabled {
		if cfg.Metrics.ListenAddress == "" {
			errs = append(errs, FieldError{
				Field:   "telemetry.metrics.listen_address",
				Message: "listen address is required when metrics are enabled",
			})
		}
		if cfg.Metrics.Path == "" {
			errs = append(errs, FieldError{
				Field:   "telemetry.metrics.path",
				Message: "path is required when metrics are enabled",
			})
		}
	}

	return errs
}

// validateSchedule checks a cron expression using the standard five-field
// format.
func validateSchedule(field, schedule string) []FieldError {
	if _, err := cron.ParseStandard(schedule); err != nil {
		return []FieldError{{
			Field:   field,
			Message: fmt.Sprintf("invalid cron expression %q: %v", schedule, err),
		}}
	}
	return nil
}

// validateCharset checks that a charset name resolves to a usable decoder.
func validateCharset(field, charset string) []FieldError {
	enc, err := ianaindex.IANA.Encoding(charset)
	if err != nil || enc == nil {
		return []FieldError{{
			Field:   field,
			Message: fmt.Sprintf("unknown charset %q", charset),
		}}
	}
	return nil
}
