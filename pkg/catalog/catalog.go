package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"tabworks/pxtab/pkg/config"
	"tabworks/pxtab/pkg/fetch"
	pxerrors "tabworks/pxtab/pkg/pcaxis/errors"
	"tabworks/pxtab/pkg/pcaxis/parser"
	"tabworks/pxtab/pkg/pcaxis/table"
	"tabworks/pxtab/pkg/store"
	"tabworks/pxtab/pkg/telemetry/logging"
	"tabworks/pxtab/pkg/telemetry/metrics"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
)

// Source describes one registered PX document.
type Source struct {
	// Name identifies the source within the catalog.
	Name string

	// Locator is the document's URL or filesystem path.
	Locator string

	// Encoding is the document charset by IANA name. Empty means the
	// bytes are treated as UTF-8.
	Encoding string

	// Schedule is an optional cron expression overriding the catalog-wide
	// refresh schedule for this source.
	Schedule string
}

// sourceFromConfig converts a configured source entry.
func sourceFromConfig(sc config.SourceConfig) Source {
	return Source{
		Name:     sc.Name,
		Locator:  sc.Locator,
		Encoding: sc.Encoding,
		Schedule: sc.Schedule,
	}
}

// Entry is the catalog's current snapshot for one source: the most
// recently parsed dataset and when it was produced. Entries are replaced
// wholesale on refresh and never mutated afterwards, so an Entry handed
// out by GetEntry stays valid while later refreshes run.
type Entry struct {
	// Source is the registration the entry was refreshed for.
	Source Source

	// Dataset is the parse result of the last successful refresh.
	Dataset *table.Dataset

	// DatasetID is the store record ID, or "" when persistence is
	// disabled.
	DatasetID string

	// RefreshedAt is when the last successful refresh completed.
	RefreshedAt time.Time
}

// Catalog keeps a set of named PX sources fresh. Refresh runs the
// fetch → parse → store pipeline for one source and replaces its
// snapshot; Start wires the cron schedules and the file watcher that
// call Refresh automatically. A Catalog is safe for concurrent use.
type Catalog struct {
	config    *config.CatalogConfig
	fetcher   *fetch.Fetcher
	parser    *parser.Parser
	store     *store.Store
	collector *metrics.Collector
	logger    *slog.Logger
	cron      *cron.Cron

	// Snapshot state
	mu      sync.RWMutex
	sources map[string]Source
	order   []string
	entries map[string]*Entry

	// Lifecycle state
	lifecycleMu sync.Mutex
	running     bool
	watcher     *Watcher
}

// New creates a catalog over the configured sources. A nil fetcher or
// parser falls back to the package defaults; a nil store disables
// persistence; a nil collector disables metrics.
func New(cfg *config.CatalogConfig, fetcher *fetch.Fetcher, px *parser.Parser, st *store.Store, collector *metrics.Collector) (*Catalog, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	if fetcher == nil {
		fetcher = fetch.New(fetch.DefaultConfig())
	}
	if px == nil {
		px = parser.NewParser()
	}
	if collector == nil {
		collector = metrics.NewCollector(&config.MetricsConfig{}, nil)
	}

	c := &Catalog{
		config:    cfg,
		fetcher:   fetcher,
		parser:    px,
		store:     st,
		collector: collector,
		logger:    slog.Default().With("component", "catalog"),
		cron:      cron.New(),
		sources:   make(map[string]Source),
		entries:   make(map[string]*Entry),
	}

	for _, sc := range cfg.Sources {
		if err := c.Register(sourceFromConfig(sc)); err != nil {
			return nil, err
		}
	}

	return c, nil
}

// Register adds a source to the catalog. Registration must happen
// before Start; schedules and the watcher are wired when the catalog
// starts.
func (c *Catalog) Register(src Source) error {
	if src.Name == "" {
		return fmt.Errorf("source name cannot be empty")
	}
	if src.Locator == "" {
		return fmt.Errorf("source %q: locator cannot be empty", src.Name)
	}

	c.lifecycleMu.Lock()
	running := c.running
	c.lifecycleMu.Unlock()
	if running {
		return fmt.Errorf("cannot register %q: catalog already started", src.Name)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.sources[src.Name]; exists {
		return fmt.Errorf("source %q is already registered", src.Name)
	}
	c.sources[src.Name] = src
	c.order = append(c.order, src.Name)
	return nil
}

// Sources returns the registered sources in registration order.
func (c *Catalog) Sources() []Source {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]Source, 0, len(c.order))
	for _, name := range c.order {
		out = append(out, c.sources[name])
	}
	return out
}

// GetEntry returns the current snapshot for a source. The second return
// is false when the source has never been refreshed successfully.
func (c *Catalog) GetEntry(name string) (*Entry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.entries[name]
	return entry, ok
}

// Entries returns the current snapshots in registration order, skipping
// sources that have never been refreshed.
func (c *Catalog) Entries() []*Entry {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]*Entry, 0, len(c.order))
	for _, name := range c.order {
		if entry, ok := c.entries[name]; ok {
			out = append(out, entry)
		}
	}
	return out
}

// Refresh fetches, parses and (when a store is configured) persists one
// source, then replaces its snapshot. On any failure the previous
// snapshot is kept, so readers never observe a half-refreshed source.
func (c *Catalog) Refresh(ctx context.Context, name string) (*Entry, error) {
	c.mu.RLock()
	src, ok := c.sources[name]
	c.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("source %q is not registered", name)
	}

	// One request ID for the whole refresh; the fetcher picks it up from
	// the context so its log lines correlate with these.
	ctx = logging.WithRequestID(ctx, uuid.NewString())
	ctx = logging.WithSource(ctx, name)

	log := c.logger.With(
		"request_id", logging.GetRequestID(ctx),
		"source", name,
		"locator", logging.RedactLocator(src.Locator),
	)
	log.Debug("refreshing source")

	scheme := fetch.Scheme(src.Locator)

	fetchStart := time.Now()
	text, err := c.fetcher.Fetch(ctx, src.Locator, src.Encoding)
	fetchDuration := time.Since(fetchStart)
	if err != nil {
		c.collector.RecordFetch(scheme, metrics.StatusError, fetchDuration, 0)
		c.collector.RecordRefresh(name, metrics.StatusError)
		log.Error("fetch failed", "error", err)
		return nil, fmt.Errorf("refresh %q: %w", name, err)
	}
	c.collector.RecordFetch(scheme, metrics.StatusSuccess, fetchDuration, int64(len(text)))

	parseStart := time.Now()
	ds, err := c.parser.Parse(text)
	parseDuration := time.Since(parseStart)
	if err != nil {
		c.collector.RecordParse(name, metrics.StatusError, parseDuration, 0)
		c.collector.RecordParseError(name, errorStage(err))
		c.collector.RecordRefresh(name, metrics.StatusError)
		log.Error("parse failed", "error", err)
		return nil, fmt.Errorf("refresh %q: %w", name, err)
	}
	c.collector.RecordParse(name, metrics.StatusSuccess, parseDuration, len(ds.Rows))

	entry := &Entry{
		Source:      src,
		Dataset:     ds,
		RefreshedAt: time.Now().UTC(),
	}

	if c.store != nil {
		id, err := c.store.SaveDataset(ctx, name, src.Locator, ds)
		if err != nil {
			c.collector.RecordRefresh(name, metrics.StatusError)
			log.Error("store failed", "error", err)
			return nil, fmt.Errorf("refresh %q: %w", name, err)
		}
		entry.DatasetID = id
	}

	c.mu.Lock()
	c.entries[name] = entry
	size := len(c.entries)
	c.mu.Unlock()

	c.collector.RecordRefresh(name, metrics.StatusSuccess)
	c.collector.SetCatalogSize(size)
	c.collector.SetLastRefresh(name, entry.RefreshedAt)

	log.Info("source refreshed",
		"rows", len(ds.Rows),
		"missing", ds.MissingCount(),
		"fetch_duration_ms", fetchDuration.Milliseconds(),
		"parse_duration_ms", parseDuration.Milliseconds(),
	)
	return entry, nil
}

// RefreshAll refreshes every registered source in registration order.
// Failures do not stop the pass; the joined errors are returned after
// every source has been attempted.
func (c *Catalog) RefreshAll(ctx context.Context) error {
	var errs []error
	for _, src := range c.Sources() {
		if _, err := c.Refresh(ctx, src.Name); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Start wires the refresh schedules and, when watch mode is enabled,
// the file watcher for file-backed sources. It returns after the
// background work is set up; cancelling ctx stops the catalog.
//
// Sources use their own Schedule when set, the catalog-wide
// RefreshSchedule otherwise. An empty schedule leaves the source
// unscheduled (watch mode and manual Refresh still apply).
func (c *Catalog) Start(ctx context.Context) error {
	c.lifecycleMu.Lock()
	defer c.lifecycleMu.Unlock()

	if c.running {
		return fmt.Errorf("catalog already started")
	}

	scheduled := 0
	for _, src := range c.Sources() {
		schedule := src.Schedule
		if schedule == "" {
			schedule = c.config.RefreshSchedule
		}
		if schedule == "" {
			continue
		}

		if _, err := cron.ParseStandard(schedule); err != nil {
			return fmt.Errorf("invalid cron schedule %q for source %q: %w", schedule, src.Name, err)
		}

		name := src.Name
		if _, err := c.cron.AddFunc(schedule, func() {
			c.refreshScheduled(ctx, name)
		}); err != nil {
			return fmt.Errorf("schedule source %q: %w", name, err)
		}
		scheduled++
	}
	if scheduled > 0 {
		c.cron.Start()
	}

	watching := 0
	if c.config.Watch {
		n, err := c.startWatcher(ctx)
		if err != nil {
			return err
		}
		watching = n
	}

	c.running = true

	c.logger.Info("catalog started",
		"sources", len(c.order),
		"scheduled", scheduled,
		"watching", watching,
	)

	// Stop with the context so callers can tie the catalog's lifetime
	// to their own.
	go func() {
		<-ctx.Done()
		c.Stop()
	}()

	return nil
}

// startWatcher creates the file watcher for file-backed sources and
// starts its event loop. Returns how many sources are being watched.
func (c *Catalog) startWatcher(ctx context.Context) (int, error) {
	watcher, err := NewWatcher(c.config.DebounceDelay)
	if err != nil {
		return 0, fmt.Errorf("create watcher: %w", err)
	}

	watching := 0
	for _, src := range c.Sources() {
		if fetch.Classify(src.Locator) != fetch.KindFile {
			continue
		}
		if err := watcher.Add(src.Name, src.Locator); err != nil {
			watcher.Stop()
			return 0, fmt.Errorf("watch source %q: %w", src.Name, err)
		}
		watching++
	}

	if watching == 0 {
		watcher.Stop()
		return 0, nil
	}

	c.watcher = watcher
	go func() {
		if err := watcher.Watch(ctx, func(source string) {
			c.refreshWatched(ctx, source)
		}); err != nil {
			c.logger.Error("file watcher stopped", "error", err)
		}
	}()
	return watching, nil
}

// Stop stops the schedules and the watcher and waits for any running
// refresh jobs to complete. Stopping a catalog that never started is a
// no-op.
func (c *Catalog) Stop() {
	c.lifecycleMu.Lock()
	defer c.lifecycleMu.Unlock()

	if !c.running {
		return
	}

	cronCtx := c.cron.Stop()
	<-cronCtx.Done() // Wait for running jobs to finish

	if c.watcher != nil {
		if err := c.watcher.Stop(); err != nil {
			c.logger.Error("failed to stop file watcher", "error", err)
		}
		c.watcher = nil
	}

	c.running = false
	c.logger.Info("catalog stopped")
}

// IsRunning returns true if the catalog has been started and not yet
// stopped.
func (c *Catalog) IsRunning() bool {
	c.lifecycleMu.Lock()
	defer c.lifecycleMu.Unlock()

	return c.running
}

// NextRun returns the next scheduled refresh time across all sources,
// or nil when nothing is scheduled.
func (c *Catalog) NextRun() *time.Time {
	entries := c.cron.Entries()
	if len(entries) == 0 {
		return nil
	}

	next := entries[0].Next
	for _, e := range entries[1:] {
		if e.Next.Before(next) {
			next = e.Next
		}
	}
	return &next
}

// refreshScheduled runs one scheduled refresh. Cron jobs cannot return
// errors, so failures are logged and carried by the refresh metrics.
func (c *Catalog) refreshScheduled(ctx context.Context, name string) {
	if _, err := c.Refresh(ctx, name); err != nil {
		c.logger.Error("scheduled refresh failed", "source", name, "error", err)
	}
}

// refreshWatched runs the refresh triggered by a file change.
func (c *Catalog) refreshWatched(ctx context.Context, name string) {
	c.logger.Info("file change detected", "source", name)
	if _, err := c.Refresh(ctx, name); err != nil {
		c.logger.Error("refresh after file change failed", "source", name, "error", err)
	}
}

// errorStage maps a parse error to its parse_errors_total stage label.
func errorStage(err error) string {
	if t := pxerrors.TypeOf(err); t != "" {
		return string(t)
	}
	return "other"
}
