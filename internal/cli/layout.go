package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/cardwall/pkg/collection"
	"github.com/matzehuels/cardwall/pkg/pipeline"
	"github.com/matzehuels/cardwall/pkg/profile"
	"github.com/matzehuels/cardwall/pkg/snapshot"
)

// layoutCommand creates the layout command for computing snapshots.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output      string
		profilePath string
		noCache     bool
	)
	opts := pipeline.Options{}
	opts.SetLayoutDefaults()

	cmd := &cobra.Command{
		Use:   "layout [items.json]",
		Short: "Compute a layout snapshot from an item collection",
		Long: `Compute a layout snapshot from an item collection.

The layout command takes an items.json file (produced by 'generate' or by
hand) and runs the chosen engine over it. The output is a layout.json
snapshot holding every positioned entry, ready for 'inspect' and for
clients that render the wall.

Supports the waterfall (-e waterfall), grid (-e grid), and list (-e list)
engines. Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if profilePath != "" {
				p, err := profile.Load(profilePath)
				if err != nil {
					return err
				}
				applyProfile(cmd, p, &opts)
			}
			return c.runLayout(cmd.Context(), args[0], opts, output, noCache)
		},
	}

	// Common flags
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.layout.json)")
	cmd.Flags().StringVar(&profilePath, "profile", "", "TOML profile with engine and sizing options")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", opts.Refresh, "rebuild even when a cached snapshot exists")

	// Layout flags
	layoutFlags(cmd, &opts)

	return cmd
}

// runLayout loads the collection, builds the snapshot, and writes output.
func (c *CLI) runLayout(ctx context.Context, input string, opts pipeline.Options, output string, noCache bool) error {
	col, err := collection.ImportJSON(input)
	if err != nil {
		return fmt.Errorf("load items %s: %w", input, err)
	}

	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = c.Logger

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Computing %s layout...", opts.Engine))
	spinner.Start()

	result, err := runner.Execute(ctx, col, opts)
	if err != nil {
		spinner.StopWithError("Layout failed")
		return fmt.Errorf("compute layout: %w", err)
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	outputPath := output
	if outputPath == "" {
		outputPath = defaultOutputPath(input, ".layout.json")
	}

	if err := snapshot.WriteSnapshotFile(result.Snapshot, outputPath); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	printSuccess("Layout complete")
	printFile(outputPath)
	printStats(result.Stats.ItemCount, result.Stats.EntryCount, result.Stats.Columns, result.CacheInfo.SnapshotHit)
	if n := estimatedCount(result.Snapshot); n > 0 {
		printWarning("%d entries carry estimated heights; 'preview' simulates measurement", n)
	}
	printNewline()
	printNextStep("Inspect", "cardwall inspect "+outputPath)
	printNextStep("Preview", "cardwall preview "+input)

	return nil
}

// estimatedCount counts entries whose heights are still estimates.
func estimatedCount(snap snapshot.Snapshot) int {
	n := 0
	for _, e := range snap.Entries {
		if e.Estimated {
			n++
		}
	}
	return n
}
