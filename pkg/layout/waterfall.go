package layout

import (
	"math"
	"slices"

	"github.com/matzehuels/cardwall/pkg/collection"
	"github.com/matzehuels/cardwall/pkg/geometry"
	"github.com/matzehuels/cardwall/pkg/snapshot"
)

// =============================================================================
// Waterfall Engine
// =============================================================================

// Waterfall balances variable-height cards across the minimum number of
// columns that fit the viewport. Each card lands in the currently
// shortest column, so columns stay near-equal in height regardless of
// the height distribution.
//
// Heights start as estimates (from the item's intrinsic size when known,
// a square fallback otherwise) and converge to truth as measured sizes
// arrive through UpdateItemSize. Cached heights survive rebuilds; a
// viewport resize only downgrades them back to estimates.
//
// Waterfall is not safe for concurrent use.
type Waterfall struct {
	cfg   Config
	cache *entryCache

	metrics     columnMetrics
	viewport    geometry.Size
	loading     bool
	contentSize geometry.Size
	direction   Direction
}

// Compile-time interface checks.
var (
	_ Layout    = (*Waterfall)(nil)
	_ Measurer  = (*Waterfall)(nil)
	_ Navigator = (*Waterfall)(nil)
)

// NewWaterfall creates a waterfall engine. Zero cfg fields select the
// package defaults.
func NewWaterfall(cfg Config) (*Waterfall, error) {
	cfg = cfg.withDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Waterfall{cfg: cfg, cache: newEntryCache()}, nil
}

// Kind returns the engine discriminator used in serialized snapshots.
func (w *Waterfall) Kind() string { return snapshot.EngineWaterfall }

// Config returns the engine's effective configuration, defaults applied.
func (w *Waterfall) Config() Config { return w.cfg }

// Validate reconciles the cache against the input and rebuilds every
// entry. Repeated calls with identical input produce identical entries
// and content size.
func (w *Waterfall) Validate(in Input, inv Invalidation) {
	col := in.collection()
	w.cache.reconcile(col, in.Loading)
	w.metrics = computeColumns(w.cfg, in.Viewport.Width)

	heights := make([]float64, w.metrics.numColumns)
	for i := range heights {
		heights[i] = Margin
	}

	keys := col.Keys()
	for _, key := range keys {
		item, _ := col.Item(key)
		height, estimated := w.itemHeight(key, item, inv)

		column := shortestColumn(heights)
		rect := geometry.Rect{
			X:      Margin + float64(column)*(w.metrics.itemWidth+w.metrics.spacing),
			Y:      heights[column],
			Width:  w.metrics.itemWidth,
			Height: height,
		}
		w.cache.put(Entry{Key: key, Rect: rect, Estimated: estimated})
		heights[column] += height + w.cfg.MinSpace.Height
	}

	maxHeight := slices.Max(heights) - w.cfg.MinSpace.Height + Margin
	finalY := w.cache.appendStateEntries(in, len(keys), maxHeight)

	w.contentSize = geometry.Size{Width: in.Viewport.Width, Height: finalY}
	w.cache.remember(keys)
	w.viewport = in.Viewport
	w.loading = in.Loading
	w.direction = in.Direction
}

// itemHeight resolves the display height for one item. A prior cache
// entry wins so cards keep their measured or previously estimated height
// across rebuilds; a resize downgrades the reused height back to an
// estimate. Without a prior entry, a known intrinsic size is scaled to
// the card width, padded for chrome, and clamped; anything else falls
// back to a square card.
func (w *Waterfall) itemHeight(key collection.Key, item collection.Item, inv Invalidation) (height float64, estimated bool) {
	if prior, ok := w.cache.get(key); ok {
		return prior.Rect.Height, inv.SizeChanged || prior.Estimated
	}
	if item.HasSize() {
		scaled := math.Round(item.Size.Width * w.metrics.itemWidth / item.Size.Height)
		return clamp(scaled, w.cfg.MinItemSize.Height, w.cfg.maxItemHeight()) + w.cfg.ItemPadding, true
	}
	return w.metrics.itemWidth, true
}

// Entry returns the cached entry for key.
func (w *Waterfall) Entry(key collection.Key) (Entry, bool) {
	return w.cache.get(key)
}

// Entries returns every cached entry in display order, synthetic entries
// last.
func (w *Waterfall) Entries() []Entry {
	return w.cache.ordered()
}

// UpdateItemSize applies a measured size to one card. The correction is
// O(1) and does not move other cards; it reports whether the entry
// changed, in which case the caller owes a Validate to re-balance the
// columns below.
func (w *Waterfall) UpdateItemSize(key collection.Key, size geometry.Size) bool {
	return w.cache.updateHeight(key, size)
}

// ContentSize returns the scrollable extent of the last build.
func (w *Waterfall) ContentSize() geometry.Size { return w.contentSize }

// NumColumns returns the column count of the last build.
func (w *Waterfall) NumColumns() int { return w.metrics.numColumns }

// ItemWidth returns the card width of the last build.
func (w *Waterfall) ItemWidth() float64 { return w.metrics.itemWidth }

// HorizontalSpacing returns the column gap of the last build.
func (w *Waterfall) HorizontalSpacing() float64 { return w.metrics.spacing }

// Direction returns the text direction of the last build.
func (w *Waterfall) Direction() Direction { return w.direction }
