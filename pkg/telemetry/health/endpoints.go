package health

import (
	"encoding/json"
	"net/http"
	"runtime"
)

// BuildInfo is served by the version endpoint. GoVersion is filled in
// by the handler.
type BuildInfo struct {
	// Version is the release version, e.g. "0.3.0".
	Version string `json:"version"`

	// Commit is the git commit the binary was built from.
	Commit string `json:"commit"`

	// BuildDate is when the binary was built.
	BuildDate string `json:"build_date"`

	// GoVersion is the Go release that built the binary.
	GoVersion string `json:"go_version"`
}

// LivenessHandler serves the liveness probe. It answers 200 whenever
// the process can answer at all; component state never affects it.
func (c *Checker) LivenessHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !probeMethod(w, r) {
			return
		}
		writeJSON(w, r, http.StatusOK, c.CheckLiveness(r.Context()))
	}
}

// ReadinessHandler serves the readiness probe: 200 when every component
// check passes, 503 with per-component detail when one fails.
func (c *Checker) ReadinessHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !probeMethod(w, r) {
			return
		}

		status := c.CheckReadiness(r.Context())
		code := http.StatusOK
		if status.Status != StatusReady {
			code = http.StatusServiceUnavailable
		}
		writeJSON(w, r, code, status)
	}
}

// VersionHandler serves static build information.
func VersionHandler(info BuildInfo) http.HandlerFunc {
	info.GoVersion = runtime.Version()

	return func(w http.ResponseWriter, r *http.Request) {
		if !probeMethod(w, r) {
			return
		}
		writeJSON(w, r, http.StatusOK, info)
	}
}

// Register mounts the probe endpoints on mux under the conventional
// paths:
//
//	/health   liveness
//	/ready    readiness
//	/version  build information
func (c *Checker) Register(mux *http.ServeMux, info BuildInfo) {
	mux.HandleFunc("/health", c.LivenessHandler())
	mux.HandleFunc("/ready", c.ReadinessHandler())
	mux.HandleFunc("/version", VersionHandler(info))
}

// probeMethod admits GET and HEAD and rejects everything else.
func probeMethod(w http.ResponseWriter, r *http.Request) bool {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return false
	}
	return true
}

// writeJSON writes the probe response, omitting the body for HEAD.
func writeJSON(w http.ResponseWriter, r *http.Request, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if r.Method != http.MethodHead {
		_ = json.NewEncoder(w).Encode(v)
	}
}
