package metrics

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"tabworks/pxtab/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

// Helper function to create test config
func testConfig() *config.MetricsConfig {
	return &config.MetricsConfig{
		Enabled:         true,
		Namespace:       "test",
		DurationBuckets: []float64{0.001, 0.01, 0.1, 1.0},
	}
}

func TestCollector_NewCollector(t *testing.T) {
	cfg := testConfig()
	registry := prometheus.NewRegistry()

	collector := NewCollector(cfg, registry)

	if collector == nil {
		t.Fatal("Expected non-nil collector")
	}
	if collector.config != cfg {
		t.Error("Collector config not set correctly")
	}
	if collector.registry != registry {
		t.Error("Collector registry not set correctly")
	}
}

func TestCollector_NewCollector_Defaults(t *testing.T) {
	cfg := &config.MetricsConfig{Enabled: true}

	collector := NewCollector(cfg, nil)

	if collector.registry == nil {
		t.Fatal("Expected collector to create its own registry")
	}
	if cfg.Namespace != config.DefaultMetricsNamespace {
		t.Errorf("Namespace default = %q, want %q", cfg.Namespace, config.DefaultMetricsNamespace)
	}
	if len(cfg.DurationBuckets) == 0 {
		t.Error("Expected default duration buckets to be applied")
	}
}

func TestCollector_RecordParse(t *testing.T) {
	cfg := testConfig()
	registry := prometheus.NewRegistry()
	collector := NewCollector(cfg, registry)

	tests := []struct {
		name     string
		source   string
		status   string
		duration time.Duration
		rows     int
	}{
		{
			name:     "successful parse",
			source:   "population",
			status:   StatusSuccess,
			duration: 12 * time.Millisecond,
			rows:     1280,
		},
		{
			name:     "failed parse",
			source:   "employment",
			status:   StatusError,
			duration: 2 * time.Millisecond,
			rows:     0,
		},
		{
			name:     "adhoc parse",
			source:   "adhoc",
			status:   StatusSuccess,
			duration: 5 * time.Millisecond,
			rows:     4,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			collector.RecordParse(tt.source, tt.status, tt.duration, tt.rows)

			count := testutil.ToFloat64(collector.parseMetrics.parsesTotal.WithLabelValues(tt.source, tt.status))
			if count < 1 {
				t.Errorf("Expected parse counter >= 1, got %f", count)
			}

			if tt.rows > 0 {
				rows := testutil.ToFloat64(collector.parseMetrics.rowsExpanded.WithLabelValues(tt.source))
				if rows != float64(tt.rows) {
					t.Errorf("Expected rows counter = %d, got %f", tt.rows, rows)
				}
			}
		})
	}
}

func TestCollector_RecordParseError(t *testing.T) {
	cfg := testConfig()
	registry := prometheus.NewRegistry()
	collector := NewCollector(cfg, registry)

	collector.RecordParseError("population", "count_mismatch")

	count := testutil.ToFloat64(collector.parseMetrics.errorsTotal.WithLabelValues("population", "count_mismatch"))
	if count != 1 {
		t.Errorf("Expected error counter = 1, got %f", count)
	}
}

func TestCollector_RecordFetch(t *testing.T) {
	cfg := testConfig()
	registry := prometheus.NewRegistry()
	collector := NewCollector(cfg, registry)

	t.Run("successful fetch", func(t *testing.T) {
		collector.RecordFetch("https", StatusSuccess, 300*time.Millisecond, 48210)

		count := testutil.ToFloat64(collector.fetchMetrics.fetchesTotal.WithLabelValues("https", StatusSuccess))
		if count != 1 {
			t.Errorf("Expected fetch counter = 1, got %f", count)
		}

		bytes := testutil.ToFloat64(collector.fetchMetrics.bytesTotal.WithLabelValues("https"))
		if bytes != 48210 {
			t.Errorf("Expected bytes counter = 48210, got %f", bytes)
		}
	})

	t.Run("failed fetch records no bytes", func(t *testing.T) {
		collector.RecordFetch("file", StatusError, time.Millisecond, 0)

		count := testutil.ToFloat64(collector.fetchMetrics.fetchesTotal.WithLabelValues("file", StatusError))
		if count != 1 {
			t.Errorf("Expected fetch counter = 1, got %f", count)
		}

		bytes := testutil.ToFloat64(collector.fetchMetrics.bytesTotal.WithLabelValues("file"))
		if bytes != 0 {
			t.Errorf("Expected bytes counter = 0, got %f", bytes)
		}
	})
}

func TestCollector_CatalogMetrics(t *testing.T) {
	cfg := testConfig()
	registry := prometheus.NewRegistry()
	collector := NewCollector(cfg, registry)

	t.Run("record refresh", func(t *testing.T) {
		collector.RecordRefresh("population", StatusSuccess)

		count := testutil.ToFloat64(collector.catalogMetrics.refreshesTotal.WithLabelValues("population", StatusSuccess))
		if count != 1 {
			t.Errorf("Expected refresh counter = 1, got %f", count)
		}
	})

	t.Run("set catalog size", func(t *testing.T) {
		collector.SetCatalogSize(4)

		size := testutil.ToFloat64(collector.catalogMetrics.datasets)
		if size != 4 {
			t.Errorf("Expected datasets gauge = 4, got %f", size)
		}
	})

	t.Run("set last refresh", func(t *testing.T) {
		ts := time.Date(2025, 6, 1, 6, 0, 0, 0, time.UTC)
		collector.SetLastRefresh("population", ts)

		got := testutil.ToFloat64(collector.catalogMetrics.lastRefresh.WithLabelValues("population"))
		if got != float64(ts.Unix()) {
			t.Errorf("Expected last refresh = %d, got %f", ts.Unix(), got)
		}
	})
}

func TestCollector_Disabled(t *testing.T) {
	cfg := testConfig()
	cfg.Enabled = false
	registry := prometheus.NewRegistry()
	collector := NewCollector(cfg, registry)

	collector.RecordParse("population", StatusSuccess, time.Millisecond, 100)
	collector.RecordFetch("https", StatusSuccess, time.Millisecond, 100)
	collector.RecordRefresh("population", StatusSuccess)
	collector.SetCatalogSize(4)

	count := testutil.ToFloat64(collector.parseMetrics.parsesTotal.WithLabelValues("population", StatusSuccess))
	if count != 0 {
		t.Errorf("Disabled collector recorded parse count %f", count)
	}

	size := testutil.ToFloat64(collector.catalogMetrics.datasets)
	if size != 0 {
		t.Errorf("Disabled collector recorded catalog size %f", size)
	}
}

func TestCollector_SourceCardinalityLimit(t *testing.T) {
	cfg := testConfig()
	registry := prometheus.NewRegistry()
	collector := NewCollector(cfg, registry)
	collector.sourceLimiter = NewCardinalityLimiter(1)

	collector.RecordParse("population", StatusSuccess, time.Millisecond, 1)
	collector.RecordParse("employment", StatusSuccess, time.Millisecond, 1)
	collector.RecordParse("population", StatusSuccess, time.Millisecond, 1)

	known := testutil.ToFloat64(collector.parseMetrics.parsesTotal.WithLabelValues("population", StatusSuccess))
	if known != 2 {
		t.Errorf("Expected known source count = 2, got %f", known)
	}

	other := testutil.ToFloat64(collector.parseMetrics.parsesTotal.WithLabelValues("other", StatusSuccess))
	if other != 1 {
		t.Errorf("Expected overflow source count = 1, got %f", other)
	}
}

func TestCardinalityLimiter(t *testing.T) {
	limiter := NewCardinalityLimiter(2)

	if !limiter.Allow("a") {
		t.Error("Expected first value to be allowed")
	}
	if !limiter.Allow("b") {
		t.Error("Expected second value to be allowed")
	}
	if limiter.Allow("c") {
		t.Error("Expected third value to be rejected at limit 2")
	}
	if !limiter.Allow("a") {
		t.Error("Expected known value to stay allowed at limit")
	}
	if limiter.Count() != 2 {
		t.Errorf("Count() = %d, want 2", limiter.Count())
	}
}

func TestCollector_Handler(t *testing.T) {
	cfg := testConfig()
	registry := prometheus.NewRegistry()
	collector := NewCollector(cfg, registry)

	collector.RecordParse("population", StatusSuccess, time.Millisecond, 12)

	req := httptest.NewRequest("GET", "/metrics", nil)
	rec := httptest.NewRecorder()
	collector.Handler().ServeHTTP(rec, req)

	if rec.Code != 200 {
		t.Fatalf("Handler status = %d, want 200", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "test_parses_total") {
		t.Errorf("Exposition missing parse counter:\n%s", body)
	}
	if !strings.Contains(body, `source="population"`) {
		t.Errorf("Exposition missing source label:\n%s", body)
	}
}
