package layout

import (
	"math"

	"github.com/matzehuels/cardwall/pkg/errors"
	"github.com/matzehuels/cardwall/pkg/geometry"
)

// =============================================================================
// Engine Configuration
// =============================================================================

// Defaults applied by the engine constructors when a Config field is zero.
const (
	// DefaultMinItemWidth is the narrowest card the balancer will produce.
	DefaultMinItemWidth = 240.0
	// DefaultMinItemHeight is the floor for derived card heights and the
	// estimated row height of list layouts.
	DefaultMinItemHeight = 136.0
	// DefaultSpace is the minimum gap between adjacent cards, both axes.
	DefaultSpace = 24.0
	// DefaultItemPadding is the chrome allowance added to aspect-derived
	// heights, reserving room below the media area.
	DefaultItemPadding = 56.0
)

// Config tunes an engine's sizing rules. The zero value selects the
// defaults above; zero MaxItemSize dimensions and a zero MaxColumns mean
// unbounded. Config is immutable after the engine is constructed and
// serializes with sessions, so the same geometry can be rebuilt later.
type Config struct {
	// MinItemSize is the smallest card footprint. Its width drives the
	// column count; its height floors derived heights.
	MinItemSize geometry.Size `json:"min_item_size" bson:"min_item_size"`

	// MaxItemSize caps card dimensions. A zero dimension is unbounded.
	MaxItemSize geometry.Size `json:"max_item_size,omitempty" bson:"max_item_size,omitempty"`

	// MinSpace is the minimum gap between adjacent cards. The horizontal
	// gap may grow when leftover width is distributed; the vertical gap
	// is used as-is.
	MinSpace geometry.Size `json:"min_space" bson:"min_space"`

	// MaxColumns caps the column count. Zero is unbounded.
	MaxColumns int `json:"max_columns,omitempty" bson:"max_columns,omitempty"`

	// ItemPadding is extra height added to aspect-derived card heights.
	ItemPadding float64 `json:"item_padding" bson:"item_padding"`
}

// withDefaults fills zero fields with the package defaults. MaxItemSize
// and MaxColumns keep their zero values; the build math treats those as
// unbounded.
func (c Config) withDefaults() Config {
	if c.MinItemSize.Width == 0 {
		c.MinItemSize.Width = DefaultMinItemWidth
	}
	if c.MinItemSize.Height == 0 {
		c.MinItemSize.Height = DefaultMinItemHeight
	}
	if c.MinSpace.Width == 0 {
		c.MinSpace.Width = DefaultSpace
	}
	if c.MinSpace.Height == 0 {
		c.MinSpace.Height = DefaultSpace
	}
	if c.ItemPadding == 0 {
		c.ItemPadding = DefaultItemPadding
	}
	return c
}

// Validate checks the configuration for contradictions. The engine
// constructors run it after applying defaults, so a cap below a defaulted
// minimum is also rejected.
func (c Config) Validate() error {
	if c.MinItemSize.Width < 0 || c.MinItemSize.Height < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "min item size cannot be negative: %gx%g", c.MinItemSize.Width, c.MinItemSize.Height)
	}
	if c.MaxItemSize.Width < 0 || c.MaxItemSize.Height < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "max item size cannot be negative: %gx%g", c.MaxItemSize.Width, c.MaxItemSize.Height)
	}
	if c.MaxItemSize.Width > 0 && c.MaxItemSize.Width < c.MinItemSize.Width {
		return errors.New(errors.ErrCodeInvalidConfig, "max item width %g below min item width %g", c.MaxItemSize.Width, c.MinItemSize.Width)
	}
	if c.MaxItemSize.Height > 0 && c.MaxItemSize.Height < c.MinItemSize.Height {
		return errors.New(errors.ErrCodeInvalidConfig, "max item height %g below min item height %g", c.MaxItemSize.Height, c.MinItemSize.Height)
	}
	if c.MinSpace.Width < 0 || c.MinSpace.Height < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "min space cannot be negative: %gx%g", c.MinSpace.Width, c.MinSpace.Height)
	}
	if c.MaxColumns < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "max columns cannot be negative: %d", c.MaxColumns)
	}
	if c.ItemPadding < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "item padding cannot be negative: %g", c.ItemPadding)
	}
	return nil
}

// maxItemWidth returns the width cap as a usable bound.
func (c Config) maxItemWidth() float64 {
	if c.MaxItemSize.Width <= 0 {
		return math.Inf(1)
	}
	return c.MaxItemSize.Width
}

// maxItemHeight returns the height cap as a usable bound.
func (c Config) maxItemHeight() float64 {
	if c.MaxItemSize.Height <= 0 {
		return math.Inf(1)
	}
	return c.MaxItemSize.Height
}

// clamp bounds v to [lo, hi].
func clamp(v, lo, hi float64) float64 {
	return math.Min(math.Max(v, lo), hi)
}
