package cli

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/spf13/cobra"

	"github.com/matzehuels/cardwall/pkg/collection"
	"github.com/matzehuels/cardwall/pkg/geometry"
)

// defaultItemCount is the number of items generate produces by default.
const defaultItemCount = 40

// generateCommand creates the generate command for producing sample collections.
func (c *CLI) generateCommand() *cobra.Command {
	var (
		output string
		count  int
		seed   int64
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a sample item collection",
		Long: `Generate a sample item collection for trying out the layout pipeline.

Items get stable keys (card-001, card-002, ...) and intrinsic sizes drawn
from a seeded generator, so the same seed always produces the same
collection. Every fifth item is emitted without a size to exercise the
height estimation path.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runGenerate(output, count, seed)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "items.json", "output file")
	cmd.Flags().IntVarP(&count, "count", "n", defaultItemCount, "number of items")
	cmd.Flags().Int64Var(&seed, "seed", defaultSeed, "random seed")

	return cmd
}

// runGenerate builds the sample collection and writes it as JSON.
func (c *CLI) runGenerate(output string, count int, seed int64) error {
	if count <= 0 {
		return fmt.Errorf("invalid count: %d (must be positive)", count)
	}

	prog := newProgress(c.Logger)
	col, err := collection.NewList(sampleItems(count, seed)...)
	if err != nil {
		return fmt.Errorf("build collection: %w", err)
	}

	if err := collection.ExportJSON(col, output); err != nil {
		return fmt.Errorf("write output %s: %w", output, err)
	}
	prog.done(fmt.Sprintf("Generated %d items", count))

	printSuccess("Collection ready")
	printFile(output)
	printNewline()
	printNextStep("Compute a layout", "cardwall layout "+output)

	return nil
}

// sampleItems builds count deterministic items from seed. Intrinsic widths
// fall in [240, 480] and heights in [160, 640]; every fifth item carries no
// size so generated walls keep some estimated heights.
func sampleItems(count int, seed int64) []collection.Item {
	rng := rand.New(rand.NewSource(seed))
	items := make([]collection.Item, count)
	for i := range items {
		items[i] = collection.Item{
			Key:  collection.Key(fmt.Sprintf("card-%03d", i+1)),
			Meta: collection.Metadata{"title": fmt.Sprintf("Card %d", i+1)},
		}
		w := 240 + math.Round(rng.Float64()*240)
		h := 160 + math.Round(rng.Float64()*480)
		if (i+1)%5 != 0 {
			items[i].Size = &geometry.Size{Width: w, Height: h}
		}
	}
	return items
}
