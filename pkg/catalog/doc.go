// Package catalog keeps a set of named PX sources fresh.
//
// # Overview
//
// A catalog is built from configured sources (name, locator, charset,
// optional cron schedule). Refreshing a source runs the full pipeline:
// the document is fetched, parsed, persisted when a store is
// configured, and the source's snapshot entry is replaced. Readers get
// snapshots through GetEntry and Entries; a failed refresh keeps the
// previous snapshot.
//
// # Scheduling
//
// Start registers one cron job per schedulable source. A source's own
// Schedule wins over the catalog-wide RefreshSchedule; sources with
// neither are refreshed only manually or through watch mode.
//
//	cat, err := catalog.New(&cfg.Catalog, fetcher, nil, st, collector)
//	if err != nil {
//	    return err
//	}
//	if err := cat.RefreshAll(ctx); err != nil {
//	    log.Warn("initial refresh incomplete", "error", err)
//	}
//	if err := cat.Start(ctx); err != nil {
//	    return err
//	}
//	defer cat.Stop()
//
// # Watch Mode
//
// With watch enabled, file-backed sources are re-parsed when their file
// changes on disk. Events are debounced per source so editors that
// write in bursts trigger one refresh, not one per write.
//
// # Metrics and Logging
//
// Each refresh carries one request ID through its fetch, parse and
// store log lines, and records fetch, parse and refresh metrics on the
// collector. Parse failures are attributed to the failing pipeline
// stage in parse_errors_total.
package catalog
