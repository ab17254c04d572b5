// Package telemetry groups the observability packages for pxtab.
//
// # Overview
//
// Telemetry is split into three subpackages that the run command wires
// together. Each can also be used on its own:
//
//   - logging: structured log/slog logging with locator redaction
//   - metrics: Prometheus metrics for parse, fetch and catalog activity
//   - health: liveness and readiness probes plus a version endpoint
//
// # Usage
//
//	// Install the configured logger as the process default.
//	logger, err := logging.Setup(logging.Config{Level: "info", Format: "text"})
//	if err != nil {
//	    return err
//	}
//
//	// Create the metrics collector and serve it.
//	collector := metrics.NewCollector(&cfg.Telemetry.Metrics, nil)
//	mux := http.NewServeMux()
//	mux.Handle(cfg.Telemetry.Metrics.Path, collector.Handler())
//
//	// Mount probes on the same mux.
//	checker := health.New(0)
//	checker.RegisterCheck("store", st.Ping)
//	checker.Register(mux, health.BuildInfo{Version: version})
//
// In one-shot CLI mode only logging is active; metrics and probes are
// served in service mode when telemetry.metrics.enabled is set.
package telemetry
