// Package retention prunes old datasets from the store.
//
// Every catalog refresh appends a new dataset record, so a long-running
// service accumulates history without bound. The Pruner enforces two
// independent limits:
//
//   - MaxAgeDays: datasets stored more than N days ago are deleted.
//   - MaxPerSource: each source keeps only its newest N datasets.
//
// A limit set to 0 is disabled; with both disabled the pruner does
// nothing. Pruning runs on a cron schedule through the Scheduler, or on
// demand through Prune:
//
//	pruner := retention.NewPruner(st, &retention.Config{
//	    MaxAgeDays:   90,
//	    MaxPerSource: 10,
//	    Schedule:     "0 3 * * *",
//	})
//	if _, err := pruner.Prune(ctx); err != nil {
//	    return err
//	}
//	if err := pruner.Start(ctx); err != nil {
//	    return err
//	}
//	defer pruner.Stop()
package retention
