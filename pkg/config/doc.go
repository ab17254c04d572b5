// Package config provides configuration management for pxtab.
//
// This package handles loading, validating, and managing configuration from
// YAML files with environment variable overrides. It provides a type-safe
// configuration system with validation and sensible defaults.
//
// # Configuration Loading
//
// Configuration can be loaded in two ways:
//
//  1. From a YAML file only:
//     cfg, err := config.LoadConfig("pxtab.yaml")
//
//  2. From a YAML file with environment variable overrides:
//     cfg, err := config.LoadConfigWithEnvOverrides("pxtab.yaml")
//
// An empty path is allowed and yields the built-in defaults, so the CLI
// works without any configuration file at all.
//
// # Environment Variable Overrides
//
// Environment variables follow the naming convention PXTAB_SECTION_FIELD.
// For example:
//
//   - PXTAB_FETCH_TIMEOUT overrides fetch.timeout
//   - PXTAB_STORE_PATH overrides store.path
//   - PXTAB_TELEMETRY_LOGGING_LEVEL overrides telemetry.logging.level
//
// Environment variables always take precedence over file-based configuration.
//
// # Configuration Precedence
//
// Configuration values are applied in the following order (later overrides earlier):
//
//  1. Default values (defined in defaults.go)
//  2. Values from YAML file
//  3. Environment variable overrides
//  4. Validation (fails fast if invalid)
//
// # Singleton Pattern
//
// For application-wide configuration access, use the singleton pattern:
//
//	// At application startup
//	if err := config.Initialize("pxtab.yaml"); err != nil {
//	    log.Fatal(err)
//	}
//
//	// Anywhere in the application
//	cfg := config.GetConfig()
//	fmt.Println(cfg.Store.Path)
//
// For testing, prefer dependency injection with explicit Config instances
// rather than the global singleton.
//
// # Validation
//
// All configuration is validated automatically during loading. Validation includes:
//
//   - Required field checks (e.g., catalog source names and locators)
//   - Range validation (e.g., timeouts must be non-negative)
//   - Format validation (e.g., cron schedules, charset names)
//
// Validation errors include field paths and helpful messages:
//
//	configuration validation failed with 2 errors:
//	  - catalog.sources[0].locator: locator is required
//	  - catalog.refresh_schedule: invalid cron expression
//
// # Example Configuration
//
// Here is a small configuration file:
//
//	fetch:
//	  timeout: 30s
//	  default_encoding: "ISO-8859-15"
//
//	store:
//	  enabled: true
//	  path: "data/pxtab.db"
//	  retention:
//	    max_age_days: 90
//	    max_per_source: 10
//
//	catalog:
//	  refresh_schedule: "0 6 * * *"
//	  watch: true
//	  sources:
//	    - name: "population"
//	      locator: "https://pxweb.example.org/population.px"
//	      encoding: "ISO-8859-15"
//
//	telemetry:
//	  logging:
//	    level: "info"
//	    format: "text"
//
// # Thread Safety
//
// All configuration access is thread-safe. The singleton pattern uses read-write
// locks to allow concurrent reads while protecting against concurrent writes during
// reload operations.
package config
