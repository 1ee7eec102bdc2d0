// Package layout computes card positions for scrollable collection views.
//
// Three engines share one contract: Waterfall balances variable-height
// cards across columns, Grid places uniform cells in rows, and List
// stacks full-width rows. An engine consumes an immutable Input (the
// collection plus viewport state), fills an internal entry cache, and
// serves per-key rectangles until the next Validate.
//
// Entries are value types. The cache hands out copies, so a caller can
// never mutate a cached rectangle in place; corrections go through
// UpdateItemSize, which replaces the entry wholesale.
package layout

import (
	"github.com/matzehuels/cardwall/pkg/collection"
	"github.com/matzehuels/cardwall/pkg/geometry"
)

// =============================================================================
// Constants
// =============================================================================

// Margin is the outer gutter around the item area, applied on all four
// sides. It is structural rather than configurable: column bookkeeping
// starts every column at Margin and the balancer assumes it when
// distributing horizontal space.
const Margin = 24.0

// loaderHeight is the height of the loader band appended below the last
// row while more items are loading. When the collection is still empty
// the loader grows to the viewport height instead.
const loaderHeight = 60.0

// Synthetic entry keys. These never collide with item keys supplied by
// callers; collection views render them as chrome rather than cards.
const (
	// KeyLoader identifies the loading indicator entry.
	KeyLoader collection.Key = "loader"
	// KeyPlaceholder identifies the empty-state placeholder entry.
	KeyPlaceholder collection.Key = "placeholder"
)

// IsSynthetic reports whether key names a loader or placeholder entry
// rather than an item.
func IsSynthetic(key collection.Key) bool {
	return key == KeyLoader || key == KeyPlaceholder
}

// =============================================================================
// Direction
// =============================================================================

// Direction is the text direction of the surrounding UI. It only affects
// directional navigation: under RTL the visual meaning of left and right
// swaps while geometry stays in LTR coordinates.
type Direction string

const (
	// DirectionLTR is left-to-right, the zero-value default.
	DirectionLTR Direction = "ltr"
	// DirectionRTL is right-to-left.
	DirectionRTL Direction = "rtl"
)

// IsRTL reports whether d is right-to-left. The empty string counts as LTR.
func (d Direction) IsRTL() bool { return d == DirectionRTL }

// =============================================================================
// Build Inputs
// =============================================================================

// Input carries everything a build reads. Engines hold no reference to it
// after Validate returns, so callers may reuse or mutate their collection
// between builds.
type Input struct {
	// Collection is the ordered item set to lay out. Nil is treated as empty.
	Collection collection.Collection
	// Viewport is the visible area of the scroll view.
	Viewport geometry.Size
	// Loading indicates more items are on the way; a loader entry is
	// appended below the content while set.
	Loading bool
	// Direction is the UI text direction, consumed by navigation.
	Direction Direction
}

func (in Input) collection() collection.Collection {
	if in.Collection == nil {
		return emptyCollection
	}
	return in.Collection
}

var emptyCollection collection.Collection = &collection.List{}

// Invalidation describes why a build was requested, letting the engine
// decide how much cached state to trust.
type Invalidation struct {
	// SizeChanged marks a viewport resize. Cached heights are still
	// reused for stability, but they are downgraded to estimates so a
	// later measurement pass corrects them.
	SizeChanged bool
}

// =============================================================================
// Entries
// =============================================================================

// Entry is one positioned cell: an item's key, its frame in content
// coordinates, and whether the height is still an estimate awaiting
// measurement. Synthetic loader and placeholder entries always report
// Estimated false.
type Entry struct {
	Key       collection.Key `json:"key"`
	Rect      geometry.Rect  `json:"rect"`
	Estimated bool           `json:"estimated,omitempty"`
}

// =============================================================================
// Engine Interfaces
// =============================================================================

// Layout is the capability every engine provides: building entries for a
// collection and serving the computed geometry.
type Layout interface {
	// Validate reconciles cached entries against the input and rebuilds
	// the layout. It is idempotent: repeated calls with identical input
	// yield identical entries and content size.
	Validate(in Input, inv Invalidation)
	// Entry returns the cached entry for key.
	Entry(key collection.Key) (Entry, bool)
	// Entries returns every cached entry in display order, synthetic
	// entries last.
	Entries() []Entry
	// ContentSize is the scrollable extent of the last build.
	ContentSize() geometry.Size
	// Kind is the engine discriminator used in serialized snapshots.
	Kind() string
}

// Measurer is implemented by engines whose heights begin as estimates and
// are corrected by out-of-band cell measurement.
type Measurer interface {
	// UpdateItemSize applies a measured size to one entry. It reports
	// whether the entry changed; true means positions downstream of the
	// entry are stale and the caller owes a Validate.
	UpdateItemSize(key collection.Key, size geometry.Size) bool
}

// Navigator is implemented by engines that support directional key
// traversal, e.g. moving focus between columns with arrow keys.
type Navigator interface {
	// KeyRightOf returns the key visually to the right of key.
	KeyRightOf(key collection.Key) (collection.Key, bool)
	// KeyLeftOf returns the key visually to the left of key.
	KeyLeftOf(key collection.Key) (collection.Key, bool)
}
