package retention

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"tabworks/pxtab/pkg/store"
)

// Config controls how stored datasets are pruned.
type Config struct {
	// MaxAgeDays is how many days to keep stored datasets.
	// 0 keeps datasets forever.
	MaxAgeDays int

	// MaxPerSource caps how many datasets each source keeps, newest
	// first. 0 means unlimited history.
	MaxPerSource int

	// Schedule is a cron expression for automatic pruning. Empty
	// disables the scheduler; Prune can still be called directly.
	Schedule string
}

// DefaultConfig returns the default retention configuration: both
// limits disabled, daily pruning at 3 AM once a limit is set.
func DefaultConfig() *Config {
	return &Config{
		MaxAgeDays:   0,
		MaxPerSource: 0,
		Schedule:     "0 3 * * *",
	}
}

// Enabled reports whether any retention limit is configured.
func (c *Config) Enabled() bool {
	return c.MaxAgeDays > 0 || c.MaxPerSource > 0
}

// Pruner enforces retention limits on the dataset store.
type Pruner struct {
	store     *store.Store
	config    *Config
	logger    *slog.Logger
	scheduler *Scheduler
}

// NewPruner creates a pruner over the given store. A nil config uses
// the defaults.
func NewPruner(st *store.Store, config *Config) *Pruner {
	if config == nil {
		config = DefaultConfig()
	}

	p := &Pruner{
		store:  st,
		config: config,
		logger: slog.Default().With("component", "store.retention"),
	}
	p.scheduler = NewScheduler(p)
	return p
}

// Prune applies the configured retention limits and returns how many
// datasets were deleted.
//
// Pruning runs in two phases:
//  1. Age: datasets stored more than MaxAgeDays ago are deleted.
//  2. History: each source keeps only its newest MaxPerSource datasets.
//
// A phase whose limit is 0 is skipped; both phases may delete in the
// same cycle.
func (p *Pruner) Prune(ctx context.Context) (int64, error) {
	var total int64

	if p.config.MaxAgeDays > 0 {
		deleted, err := p.pruneByAge(ctx)
		if err != nil {
			return total, fmt.Errorf("prune by age: %w", err)
		}
		total += deleted
	}

	if p.config.MaxPerSource > 0 {
		deleted, err := p.pruneHistory(ctx)
		if err != nil {
			return total, fmt.Errorf("prune history: %w", err)
		}
		total += deleted
	}

	if total > 0 {
		p.logger.Info("retention pruning completed",
			"deleted", total,
			"max_age_days", p.config.MaxAgeDays,
			"max_per_source", p.config.MaxPerSource,
		)
	} else {
		p.logger.Debug("retention pruning completed, nothing to delete")
	}

	return total, nil
}

// pruneByAge deletes datasets stored before the retention cutoff.
func (p *Pruner) pruneByAge(ctx context.Context) (int64, error) {
	cutoff := time.Now().AddDate(0, 0, -p.config.MaxAgeDays)

	deleted, err := p.store.DeleteBefore(ctx, cutoff)
	if err != nil {
		return 0, err
	}
	if deleted > 0 {
		p.logger.Info("expired datasets deleted",
			"deleted", deleted,
			"cutoff", cutoff,
		)
	}
	return deleted, nil
}

// pruneHistory trims each source to its newest MaxPerSource datasets.
func (p *Pruner) pruneHistory(ctx context.Context) (int64, error) {
	summaries, err := p.store.ListDatasets(ctx)
	if err != nil {
		return 0, err
	}

	// Summaries are newest first, so once a source has filled its quota
	// every later summary for it is older history.
	var deleted int64
	kept := make(map[string]int)
	for _, sm := range summaries {
		kept[sm.Source]++
		if kept[sm.Source] <= p.config.MaxPerSource {
			continue
		}
		if err := p.store.DeleteDataset(ctx, sm.ID); err != nil {
			return deleted, fmt.Errorf("delete dataset %s: %w", sm.ID, err)
		}
		deleted++
	}

	if deleted > 0 {
		p.logger.Info("dataset history trimmed",
			"deleted", deleted,
			"max_per_source", p.config.MaxPerSource,
		)
	}
	return deleted, nil
}

// Start begins scheduled pruning; see Scheduler.Start.
func (p *Pruner) Start(ctx context.Context) error {
	return p.scheduler.Start(ctx)
}

// Stop stops scheduled pruning and waits for a running cycle.
func (p *Pruner) Stop() {
	p.scheduler.Stop()
}

// NextPruning returns when the next scheduled pruning runs, or nil when
// the scheduler is not running.
func (p *Pruner) NextPruning() *time.Time {
	return p.scheduler.NextRun()
}
