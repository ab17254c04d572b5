// Package health serves liveness and readiness probes for service mode.
//
// # Overview
//
// A Checker holds named component checks (store reachability, catalog
// refresh state) and aggregates them into one service status:
//
//   - /health answers 200 whenever the process can answer at all.
//   - /ready answers 200 when every registered check passes and 503
//     with per-component detail when one fails.
//   - /version reports build information.
//
// Readiness checks run concurrently, each bounded by the checker's
// timeout, so one stuck component cannot hang the probe.
//
// # Usage
//
//	checker := health.New(0)
//	checker.RegisterCheck("store", func(ctx context.Context) error {
//	    return st.Ping(ctx)
//	})
//	checker.Register(mux, health.BuildInfo{
//	    Version: Version,
//	    Commit:  GitCommit,
//	})
//
// # Example Responses
//
// Readiness, all checks passing:
//
//	{
//	    "status": "ready",
//	    "checks": {
//	        "store":   {"status": "ok", "duration_ms": 0.4},
//	        "catalog": {"status": "ok", "duration_ms": 0.1}
//	    },
//	    "timestamp": "2026-08-24T10:30:00Z"
//	}
//
// Readiness, store unreachable (HTTP 503):
//
//	{
//	    "status": "degraded",
//	    "checks": {
//	        "store":   {"status": "unhealthy", "message": "[storage:ping] database is locked", "duration_ms": 5000.2},
//	        "catalog": {"status": "ok", "duration_ms": 0.1}
//	    },
//	    "timestamp": "2026-08-24T10:30:00Z"
//	}
package health
