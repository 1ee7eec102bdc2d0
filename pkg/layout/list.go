package layout

import (
	"math"

	"github.com/matzehuels/cardwall/pkg/collection"
	"github.com/matzehuels/cardwall/pkg/geometry"
	"github.com/matzehuels/cardwall/pkg/snapshot"
)

// =============================================================================
// List Engine
// =============================================================================

// List stacks items in a single full-width column. Row heights start from
// the configured minimum item height and are corrected by measurement, so
// the list keeps the waterfall's estimate lifecycle without its column
// balancing. Rows reflow with the viewport, which is why a resize
// downgrades cached heights back to estimates.
//
// List is not safe for concurrent use.
type List struct {
	cfg   Config
	cache *entryCache

	metrics     columnMetrics
	viewport    geometry.Size
	loading     bool
	contentSize geometry.Size
	direction   Direction
}

var (
	_ Layout   = (*List)(nil)
	_ Measurer = (*List)(nil)
)

// NewList creates a list engine. Zero cfg fields select the package
// defaults.
func NewList(cfg Config) (*List, error) {
	cfg = cfg.withDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &List{cfg: cfg, cache: newEntryCache()}, nil
}

// Kind returns the engine discriminator used in serialized snapshots.
func (l *List) Kind() string { return snapshot.EngineList }

// Config returns the engine's effective configuration, defaults applied.
func (l *List) Config() Config { return l.cfg }

// Validate reconciles the cache against the input and rebuilds every row.
func (l *List) Validate(in Input, inv Invalidation) {
	col := in.collection()
	l.cache.reconcile(col, in.Loading)

	width := math.Max(in.Viewport.Width-2*Margin, 0)
	l.metrics = columnMetrics{numColumns: 1, itemWidth: width}

	y := Margin
	keys := col.Keys()
	for _, key := range keys {
		height, estimated := l.rowHeight(key, inv)
		rect := geometry.Rect{X: Margin, Y: y, Width: width, Height: height}
		l.cache.put(Entry{Key: key, Rect: rect, Estimated: estimated})
		y += height + l.cfg.MinSpace.Height
	}

	maxHeight := Margin
	if len(keys) > 0 {
		maxHeight = y - l.cfg.MinSpace.Height + Margin
	}
	finalY := l.cache.appendStateEntries(in, len(keys), maxHeight)

	l.contentSize = geometry.Size{Width: in.Viewport.Width, Height: finalY}
	l.cache.remember(keys)
	l.viewport = in.Viewport
	l.loading = in.Loading
	l.direction = in.Direction
}

// rowHeight resolves the height for one row, reusing the cached height
// when present and falling back to the configured minimum as an estimate.
func (l *List) rowHeight(key collection.Key, inv Invalidation) (height float64, estimated bool) {
	if prior, ok := l.cache.get(key); ok {
		return prior.Rect.Height, inv.SizeChanged || prior.Estimated
	}
	return l.cfg.MinItemSize.Height, true
}

// Entry returns the cached entry for key.
func (l *List) Entry(key collection.Key) (Entry, bool) {
	return l.cache.get(key)
}

// Entries returns every cached entry in display order, synthetic entries
// last.
func (l *List) Entries() []Entry {
	return l.cache.ordered()
}

// UpdateItemSize applies a measured size to one row. It reports whether
// the entry changed, in which case rows below it are stale until the
// next Validate.
func (l *List) UpdateItemSize(key collection.Key, size geometry.Size) bool {
	return l.cache.updateHeight(key, size)
}

// ContentSize returns the scrollable extent of the last build.
func (l *List) ContentSize() geometry.Size { return l.contentSize }

// RowWidth returns the row width of the last build.
func (l *List) RowWidth() float64 { return l.metrics.itemWidth }

// Direction returns the text direction of the last build.
func (l *List) Direction() Direction { return l.direction }
