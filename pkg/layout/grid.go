package layout

import (
	"math"

	"github.com/matzehuels/cardwall/pkg/collection"
	"github.com/matzehuels/cardwall/pkg/geometry"
	"github.com/matzehuels/cardwall/pkg/snapshot"
)

// =============================================================================
// Grid Engine
// =============================================================================

// Grid places uniform cells in rows, filling left to right in collection
// order. Column metrics follow the waterfall rules, but every cell shares
// one height derived from the configured minimum aspect ratio, so entries
// are never estimates and measured sizes are not consumed.
//
// Grid is not safe for concurrent use.
type Grid struct {
	cfg   Config
	cache *entryCache

	metrics     columnMetrics
	cellHeight  float64
	viewport    geometry.Size
	loading     bool
	contentSize geometry.Size
	direction   Direction
}

var (
	_ Layout    = (*Grid)(nil)
	_ Navigator = (*Grid)(nil)
)

// NewGrid creates a grid engine. Zero cfg fields select the package
// defaults.
func NewGrid(cfg Config) (*Grid, error) {
	cfg = cfg.withDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Grid{cfg: cfg, cache: newEntryCache()}, nil
}

// Kind returns the engine discriminator used in serialized snapshots.
func (g *Grid) Kind() string { return snapshot.EngineGrid }

// Config returns the engine's effective configuration, defaults applied.
func (g *Grid) Config() Config { return g.cfg }

// Validate reconciles the cache against the input and rebuilds every
// cell. The Invalidation argument is accepted for interface parity but
// carries no information a uniform grid can use.
func (g *Grid) Validate(in Input, _ Invalidation) {
	col := in.collection()
	g.cache.reconcile(col, in.Loading)
	g.metrics = computeColumns(g.cfg, in.Viewport.Width)

	aspect := math.Round(g.metrics.itemWidth * g.cfg.MinItemSize.Height / g.cfg.MinItemSize.Width)
	g.cellHeight = clamp(aspect, g.cfg.MinItemSize.Height, g.cfg.maxItemHeight()) + g.cfg.ItemPadding

	keys := col.Keys()
	for i, key := range keys {
		row, column := i/g.metrics.numColumns, i%g.metrics.numColumns
		rect := geometry.Rect{
			X:      Margin + float64(column)*(g.metrics.itemWidth+g.metrics.spacing),
			Y:      Margin + float64(row)*(g.cellHeight+g.cfg.MinSpace.Height),
			Width:  g.metrics.itemWidth,
			Height: g.cellHeight,
		}
		g.cache.put(Entry{Key: key, Rect: rect})
	}

	maxHeight := Margin
	if n := len(keys); n > 0 {
		rows := (n + g.metrics.numColumns - 1) / g.metrics.numColumns
		maxHeight = Margin + float64(rows)*(g.cellHeight+g.cfg.MinSpace.Height) - g.cfg.MinSpace.Height + Margin
	}
	finalY := g.cache.appendStateEntries(in, len(keys), maxHeight)

	g.contentSize = geometry.Size{Width: in.Viewport.Width, Height: finalY}
	g.cache.remember(keys)
	g.viewport = in.Viewport
	g.loading = in.Loading
	g.direction = in.Direction
}

// Entry returns the cached entry for key.
func (g *Grid) Entry(key collection.Key) (Entry, bool) {
	return g.cache.get(key)
}

// Entries returns every cached entry in display order, synthetic entries
// last.
func (g *Grid) Entries() []Entry {
	return g.cache.ordered()
}

// ContentSize returns the scrollable extent of the last build.
func (g *Grid) ContentSize() geometry.Size { return g.contentSize }

// NumColumns returns the column count of the last build.
func (g *Grid) NumColumns() int { return g.metrics.numColumns }

// ItemWidth returns the cell width of the last build.
func (g *Grid) ItemWidth() float64 { return g.metrics.itemWidth }

// HorizontalSpacing returns the column gap of the last build.
func (g *Grid) HorizontalSpacing() float64 { return g.metrics.spacing }

// Direction returns the text direction of the last build.
func (g *Grid) Direction() Direction { return g.direction }

// KeyRightOf returns the key after key in collection order, or the one
// before it under RTL. Uniform cells make reading order and visual order
// agree, so no spatial search is needed.
func (g *Grid) KeyRightOf(key collection.Key) (collection.Key, bool) {
	if g.direction.IsRTL() {
		return g.keyBefore(key)
	}
	return g.keyAfter(key)
}

// KeyLeftOf returns the key before key in collection order, or the one
// after it under RTL.
func (g *Grid) KeyLeftOf(key collection.Key) (collection.Key, bool) {
	if g.direction.IsRTL() {
		return g.keyAfter(key)
	}
	return g.keyBefore(key)
}

func (g *Grid) keyAfter(key collection.Key) (collection.Key, bool) {
	for i, k := range g.cache.order {
		if k == key && i+1 < len(g.cache.order) {
			return g.cache.order[i+1], true
		}
	}
	return "", false
}

func (g *Grid) keyBefore(key collection.Key) (collection.Key, bool) {
	for i, k := range g.cache.order {
		if k == key && i > 0 {
			return g.cache.order[i-1], true
		}
	}
	return "", false
}
