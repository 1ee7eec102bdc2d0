// Package pipeline provides the core layout pipeline for Cardwall.
//
// This package implements the items → layout → snapshot pipeline that can
// be used by CLI and API components. By centralizing this logic, we ensure
// consistent behavior across all entry points and avoid code duplication.
//
// # Architecture
//
// A build takes an item collection and a set of options, runs the chosen
// layout engine over a viewport, and exports the result as a snapshot.
// Snapshots are cached by a hash of the items plus the options that shaped
// them, so repeated builds of an unchanged wall are free.
//
// # Usage
//
// Create a Runner and build a snapshot:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Engine: "waterfall",
//	    Width:  1280,
//	    Height: 800,
//	}
//	result, err := runner.Execute(ctx, items, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	snap := result.Snapshot
package pipeline

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/cardwall/pkg/cache"
	"github.com/matzehuels/cardwall/pkg/collection"
	"github.com/matzehuels/cardwall/pkg/geometry"
	"github.com/matzehuels/cardwall/pkg/layout"
	"github.com/matzehuels/cardwall/pkg/snapshot"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultWidth is the default viewport width in pixels.
	DefaultWidth = 800.0

	// DefaultHeight is the default viewport height in pixels.
	DefaultHeight = 600.0
)

// DefaultEngine is the default layout engine.
const DefaultEngine = snapshot.EngineWaterfall

// ValidEngines is the set of supported layout engines.
var ValidEngines = map[string]bool{
	snapshot.EngineWaterfall: true,
	snapshot.EngineGrid:      true,
	snapshot.EngineList:      true,
}

// ValidDirections is the set of supported flow directions.
// The empty string means left-to-right.
var ValidDirections = map[string]bool{
	"":                          true,
	string(layout.DirectionLTR): true,
	string(layout.DirectionRTL): true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the layout pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Layout options
	Engine    string  `json:"engine,omitempty"`
	Width     float64 `json:"width,omitempty"`
	Height    float64 `json:"height,omitempty"`
	Direction string  `json:"direction,omitempty"`
	Loading   bool    `json:"loading,omitempty"`

	// Item sizing options. Zero values fall back to the engine defaults.
	MinItemWidth  float64 `json:"min_item_width,omitempty"`
	MinItemHeight float64 `json:"min_item_height,omitempty"`
	MaxItemWidth  float64 `json:"max_item_width,omitempty"`
	MaxItemHeight float64 `json:"max_item_height,omitempty"`
	SpaceWidth    float64 `json:"space_width,omitempty"`
	SpaceHeight   float64 `json:"space_height,omitempty"`
	MaxColumns    int     `json:"max_columns,omitempty"`
	ItemPadding   float64 `json:"item_padding,omitempty"`

	// Refresh skips the snapshot cache and rebuilds from scratch.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Engine is the full surface the pipeline drives: a layout plus snapshot
// round-tripping. All three engines in pkg/layout implement it.
type Engine interface {
	layout.Layout
	Export() snapshot.Snapshot
	Restore(snapshot.Snapshot) error
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Snapshot is the built layout.
	Snapshot snapshot.Snapshot

	// ItemsHash is the content hash of the item collection.
	ItemsHash string

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks whether the snapshot came from cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	ItemCount  int
	EntryCount int
	Columns    int
	BuildTime  time.Duration
}

// CacheInfo tracks cache hits for the pipeline.
type CacheInfo struct {
	SnapshotHit bool // Whether the snapshot came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateEngine checks that a layout engine name is valid.
func ValidateEngine(engine string) error {
	if !ValidEngines[engine] {
		return fmt.Errorf("invalid engine: %q (must be one of: waterfall, grid, list)", engine)
	}
	return nil
}

// ValidateDirection checks that a flow direction is valid.
func ValidateDirection(direction string) error {
	if !ValidDirections[direction] {
		return fmt.Errorf("invalid direction: %q (must be one of: ltr, rtl)", direction)
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks fields and applies defaults for the pipeline.
// This method is idempotent - calling it multiple times has the same effect
// as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForLayout(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// SetLayoutDefaults sets default values for layout computation.
func (o *Options) SetLayoutDefaults() {
	if o.Engine == "" {
		o.Engine = DefaultEngine
	}
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Height == 0 {
		o.Height = DefaultHeight
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForLayout validates and sets defaults for layout computation.
func (o *Options) ValidateForLayout() error {
	o.SetLayoutDefaults()
	if err := ValidateEngine(o.Engine); err != nil {
		return err
	}
	return ValidateDirection(o.Direction)
}

// IsWaterfall returns true if this is a waterfall layout.
func (o *Options) IsWaterfall() bool {
	return o.Engine == "" || o.Engine == snapshot.EngineWaterfall
}

// LayoutConfig returns the engine configuration for these options.
func (o *Options) LayoutConfig() layout.Config {
	return layout.Config{
		MinItemSize: geometry.Size{Width: o.MinItemWidth, Height: o.MinItemHeight},
		MaxItemSize: geometry.Size{Width: o.MaxItemWidth, Height: o.MaxItemHeight},
		MinSpace:    geometry.Size{Width: o.SpaceWidth, Height: o.SpaceHeight},
		MaxColumns:  o.MaxColumns,
		ItemPadding: o.ItemPadding,
	}
}

// Input returns the layout input for the given collection.
func (o *Options) Input(col collection.Collection) layout.Input {
	return layout.Input{
		Collection: col,
		Viewport:   geometry.Size{Width: o.Width, Height: o.Height},
		Loading:    o.Loading,
		Direction:  layout.Direction(o.Direction),
	}
}

// NewEngine constructs the layout engine these options select.
func (o *Options) NewEngine() (Engine, error) {
	cfg := o.LayoutConfig()
	switch o.Engine {
	case "", snapshot.EngineWaterfall:
		return layout.NewWaterfall(cfg)
	case snapshot.EngineGrid:
		return layout.NewGrid(cfg)
	case snapshot.EngineList:
		return layout.NewList(cfg)
	default:
		return nil, ValidateEngine(o.Engine)
	}
}

// SnapshotKeyOpts returns cache key options for snapshot builds.
func (o *Options) SnapshotKeyOpts() cache.SnapshotKeyOpts {
	return cache.SnapshotKeyOpts{
		Engine:        o.Engine,
		Width:         o.Width,
		Height:        o.Height,
		Direction:     o.Direction,
		Loading:       o.Loading,
		MinItemWidth:  o.MinItemWidth,
		MinItemHeight: o.MinItemHeight,
		MaxItemWidth:  o.MaxItemWidth,
		MaxItemHeight: o.MaxItemHeight,
		SpaceWidth:    o.SpaceWidth,
		SpaceHeight:   o.SpaceHeight,
		MaxColumns:    o.MaxColumns,
		ItemPadding:   o.ItemPadding,
	}
}

// ItemsHash returns the content hash of a collection, covering item order,
// keys, intrinsic sizes, and metadata. It returns "" when the collection
// cannot be serialized; such collections are built uncached.
func ItemsHash(col collection.Collection) string {
	items := make([]collection.Item, 0, col.Len())
	for _, key := range col.Keys() {
		if it, ok := col.Item(key); ok {
			items = append(items, it)
		}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return ""
	}
	return cache.Hash(data)
}
