// Package profile loads layout profiles from TOML files.
//
// A profile bundles an engine choice with the sizing options that shape a
// build, so a set of views can share one tuned configuration:
//
//	engine = "waterfall"
//	direction = "ltr"
//	max_columns = 4
//
//	[item]
//	min_width = 240
//	min_height = 136
//	padding = 56
//
//	[space]
//	horizontal = 24
//	vertical = 24
//
// Zero values defer to the layout package defaults, so a profile only
// needs the fields it wants to change. CLI flags override profile values.
package profile

import (
	"os"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/cardwall/pkg/errors"
	"github.com/matzehuels/cardwall/pkg/geometry"
	"github.com/matzehuels/cardwall/pkg/layout"
	"github.com/matzehuels/cardwall/pkg/snapshot"
)

// Profile is a named layout configuration.
type Profile struct {
	Engine     string `toml:"engine"`
	Direction  string `toml:"direction"`
	MaxColumns int    `toml:"max_columns"`
	Item       Item   `toml:"item"`
	Space      Space  `toml:"space"`
}

// Item holds the card sizing options.
type Item struct {
	MinWidth  float64 `toml:"min_width"`
	MinHeight float64 `toml:"min_height"`
	MaxWidth  float64 `toml:"max_width"`
	MaxHeight float64 `toml:"max_height"`
	Padding   float64 `toml:"padding"`
}

// Space holds the gap options.
type Space struct {
	Horizontal float64 `toml:"horizontal"`
	Vertical   float64 `toml:"vertical"`
}

// Default returns the profile used when no file is given: a waterfall
// layout with the package defaults.
func Default() Profile {
	return Profile{Engine: snapshot.EngineWaterfall}
}

// Load reads and validates a profile from a TOML file.
func Load(path string) (Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Profile{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "read profile %s", path)
	}
	return Parse(data)
}

// Parse decodes and validates a TOML profile.
func Parse(data []byte) (Profile, error) {
	p := Default()
	if err := toml.Unmarshal(data, &p); err != nil {
		return Profile{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse profile")
	}
	if err := p.Validate(); err != nil {
		return Profile{}, err
	}
	return p, nil
}

// Validate checks the engine and direction names. Sizing fields are
// validated later by the engine constructor.
func (p Profile) Validate() error {
	if p.Engine != "" && !snapshot.ValidEngine(p.Engine) {
		return errors.New(errors.ErrCodeInvalidEngine, "unknown engine: %s", p.Engine)
	}
	switch layout.Direction(p.Direction) {
	case "", layout.DirectionLTR, layout.DirectionRTL:
	default:
		return errors.New(errors.ErrCodeInvalidDirection, "unknown direction: %s", p.Direction)
	}
	return nil
}

// Config converts the profile to an engine configuration.
func (p Profile) Config() layout.Config {
	return layout.Config{
		MinItemSize: geometry.Size{Width: p.Item.MinWidth, Height: p.Item.MinHeight},
		MaxItemSize: geometry.Size{Width: p.Item.MaxWidth, Height: p.Item.MaxHeight},
		MinSpace:    geometry.Size{Width: p.Space.Horizontal, Height: p.Space.Vertical},
		MaxColumns:  p.MaxColumns,
		ItemPadding: p.Item.Padding,
	}
}
