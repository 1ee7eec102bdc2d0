package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/cardwall/pkg/cache"
	"github.com/matzehuels/cardwall/pkg/collection"
	"github.com/matzehuels/cardwall/pkg/layout"
	"github.com/matzehuels/cardwall/pkg/observability"
	"github.com/matzehuels/cardwall/pkg/snapshot"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API can use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store build results. Multiple goroutines can safely use the same Runner
// with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete items → layout → snapshot pipeline with caching.
func (r *Runner) Execute(ctx context.Context, col collection.Collection, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	r.applyLogger(&opts)

	result := &Result{
		ItemsHash: ItemsHash(col),
	}
	result.Stats.ItemCount = col.Len()

	buildStart := time.Now()
	snap, hit, err := r.BuildSnapshotWithCacheInfo(ctx, col, opts)
	if err != nil {
		return nil, fmt.Errorf("build: %w", err)
	}
	result.Snapshot = snap
	result.Stats.BuildTime = time.Since(buildStart)
	result.Stats.EntryCount = len(snap.Entries)
	result.Stats.Columns = snap.NumColumns
	result.CacheInfo.SnapshotHit = hit

	r.Logger.Info("built layout",
		"engine", opts.Engine,
		"items", result.Stats.ItemCount,
		"entries", result.Stats.EntryCount,
		"columns", result.Stats.Columns,
		"cache_hit", hit,
		"duration", result.Stats.BuildTime)

	return result, nil
}

// BuildSnapshotWithCacheInfo builds a snapshot with caching and returns
// cache hit info.
func (r *Runner) BuildSnapshotWithCacheInfo(ctx context.Context, col collection.Collection, opts Options) (snapshot.Snapshot, bool, error) {
	if err := opts.ValidateForLayout(); err != nil {
		return snapshot.Snapshot{}, false, err
	}
	r.applyLogger(&opts)

	// Compute cache key. An unhashable collection is built uncached.
	itemsHash := ItemsHash(col)
	cacheKey := ""
	if itemsHash != "" {
		cacheKey = r.Keyer.SnapshotKey(itemsHash, opts.SnapshotKeyOpts())
	}

	// Try cache first (unless refresh requested)
	if cacheKey != "" && !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			if cached, err := snapshot.UnmarshalSnapshot(data); err == nil {
				observability.Cache().OnCacheHit(ctx, "snapshot")
				return cached, true, nil // Cache hit
			}
			// If deserialization fails, fall through to rebuild
		}
		observability.Cache().OnCacheMiss(ctx, "snapshot")
	}

	// Build
	buildStart := time.Now()
	observability.Pipeline().OnBuildStart(ctx, opts.Engine, col.Len())
	snap, err := r.build(col, opts)
	observability.Pipeline().OnBuildComplete(ctx, opts.Engine, len(snap.Entries), time.Since(buildStart), err)
	if err != nil {
		return snapshot.Snapshot{}, false, err
	}

	// Cache the result
	if cacheKey != "" {
		if data, err := snapshot.MarshalSnapshot(snap); err == nil {
			_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLSnapshot)
			observability.Cache().OnCacheSet(ctx, "snapshot", len(data))
		}
	}

	return snap, false, nil // Cache miss
}

// BuildSnapshot is a convenience wrapper that calls
// BuildSnapshotWithCacheInfo and discards the cache hit info.
func (r *Runner) BuildSnapshot(ctx context.Context, col collection.Collection, opts Options) (snapshot.Snapshot, error) {
	snap, _, err := r.BuildSnapshotWithCacheInfo(ctx, col, opts)
	return snap, err
}

// build constructs the engine, runs one layout pass, and exports it.
func (r *Runner) build(col collection.Collection, opts Options) (snapshot.Snapshot, error) {
	eng, err := opts.NewEngine()
	if err != nil {
		return snapshot.Snapshot{}, err
	}
	eng.Validate(opts.Input(col), layout.Invalidation{})
	return eng.Export(), nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
