// Package metrics provides Prometheus metrics collection for pxtab.
//
// # Overview
//
// The metrics package implements Prometheus metrics for monitoring PX
// document parsing, document retrieval and catalog refreshes in service
// mode. The Collector owns a registry, registers every metric family on
// construction and exposes them through a promhttp handler.
//
// # Metrics Categories
//
//   - Parse Metrics: Parse count, duration, expanded rows, failure stages
//   - Fetch Metrics: Fetch count, duration and bytes by locator scheme
//   - Catalog Metrics: Refresh outcomes, dataset count, last refresh times
//
// # Usage
//
//	// Create collector
//	collector := metrics.NewCollector(cfg, registry)
//
//	// Record parse metrics
//	collector.RecordParse(
//	    "population",         // source
//	    metrics.StatusSuccess, // status
//	    12*time.Millisecond,  // duration
//	    1280,                 // expanded rows
//	)
//
//	// Record fetch metrics
//	collector.RecordFetch("https", metrics.StatusSuccess, 300*time.Millisecond, 48210)
//
//	// Record catalog metrics
//	collector.RecordRefresh("population", metrics.StatusSuccess)
//	collector.SetCatalogSize(4)
//
// # Prometheus Endpoint
//
// All metrics are exposed through Collector.Handler in the standard
// exposition format:
//
//	# HELP pxtab_parses_total Total number of PX documents parsed
//	# TYPE pxtab_parses_total counter
//	pxtab_parses_total{source="population",status="success"} 1234
//
// # Cardinality Management
//
// The source label is bounded: after 1000 distinct values, new sources
// aggregate into "other". Catalog sources are finite by construction,
// so the limit only matters for ad-hoc locators.
package metrics
