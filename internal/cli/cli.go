// Package cli implements the cardwall command-line interface.
package cli

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/cardwall/pkg/buildinfo"
	"github.com/matzehuels/cardwall/pkg/cache"
	"github.com/matzehuels/cardwall/pkg/pipeline"
	"github.com/matzehuels/cardwall/pkg/profile"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "cardwall"

	// defaultSeed is the random seed for reproducible sample generation
	// and simulated measurements.
	defaultSeed = 42
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "cardwall",
		Short:        "Cardwall computes waterfall layouts for card collections",
		Long:         `Cardwall is a CLI tool for computing and exploring waterfall grid layouts: variable-height cards balanced across columns, the way photo walls and masonry feeds arrange their content.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	// Register all subcommands
	root.AddCommand(c.generateCommand())
	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.previewCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(noCache bool) (*pipeline.Runner, error) {
	cache, err := newCache(noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(cache, nil, c.Logger), nil
}

func newCache(noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/cardwall/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// defaultOutputPath derives an output path from input by swapping its
// extension for suffix: "items.json" with ".layout.json" becomes
// "items.layout.json".
func defaultOutputPath(input, suffix string) string {
	return strings.TrimSuffix(input, filepath.Ext(input)) + suffix
}

// =============================================================================
// Options Helpers
// =============================================================================

// layoutFlags registers the engine and sizing flags shared by the commands
// that build layouts. Zero sizing values fall back to the engine defaults.
func layoutFlags(cmd *cobra.Command, opts *pipeline.Options) {
	cmd.Flags().StringVarP(&opts.Engine, "engine", "e", opts.Engine, "layout engine: waterfall (default), grid, list")
	cmd.Flags().Float64Var(&opts.Width, "width", opts.Width, "viewport width")
	cmd.Flags().Float64Var(&opts.Height, "height", opts.Height, "viewport height")
	cmd.Flags().StringVar(&opts.Direction, "direction", opts.Direction, "text direction: ltr (default), rtl")
	cmd.Flags().BoolVar(&opts.Loading, "loading", opts.Loading, "append a loading indicator below the content")
	cmd.Flags().Float64Var(&opts.MinItemWidth, "min-item-width", opts.MinItemWidth, "minimum card width")
	cmd.Flags().Float64Var(&opts.MinItemHeight, "min-item-height", opts.MinItemHeight, "minimum card height")
	cmd.Flags().Float64Var(&opts.MaxItemWidth, "max-item-width", opts.MaxItemWidth, "maximum card width")
	cmd.Flags().Float64Var(&opts.MaxItemHeight, "max-item-height", opts.MaxItemHeight, "maximum card height")
	cmd.Flags().Float64Var(&opts.SpaceWidth, "space-width", opts.SpaceWidth, "minimum horizontal gap between cards")
	cmd.Flags().Float64Var(&opts.SpaceHeight, "space-height", opts.SpaceHeight, "vertical gap between cards")
	cmd.Flags().IntVar(&opts.MaxColumns, "max-columns", opts.MaxColumns, "column count cap")
	cmd.Flags().Float64Var(&opts.ItemPadding, "item-padding", opts.ItemPadding, "padding added to estimated heights")
}

// applyProfile copies profile values into opts for every flag the user did
// not set explicitly, so CLI flags win over profile values.
func applyProfile(cmd *cobra.Command, p profile.Profile, opts *pipeline.Options) {
	changed := cmd.Flags().Changed
	if !changed("engine") && p.Engine != "" {
		opts.Engine = p.Engine
	}
	if !changed("direction") && p.Direction != "" {
		opts.Direction = p.Direction
	}
	if !changed("max-columns") && p.MaxColumns != 0 {
		opts.MaxColumns = p.MaxColumns
	}
	if !changed("min-item-width") && p.Item.MinWidth != 0 {
		opts.MinItemWidth = p.Item.MinWidth
	}
	if !changed("min-item-height") && p.Item.MinHeight != 0 {
		opts.MinItemHeight = p.Item.MinHeight
	}
	if !changed("max-item-width") && p.Item.MaxWidth != 0 {
		opts.MaxItemWidth = p.Item.MaxWidth
	}
	if !changed("max-item-height") && p.Item.MaxHeight != 0 {
		opts.MaxItemHeight = p.Item.MaxHeight
	}
	if !changed("item-padding") && p.Item.Padding != 0 {
		opts.ItemPadding = p.Item.Padding
	}
	if !changed("space-width") && p.Space.Horizontal != 0 {
		opts.SpaceWidth = p.Space.Horizontal
	}
	if !changed("space-height") && p.Space.Vertical != 0 {
		opts.SpaceHeight = p.Space.Vertical
	}
}
