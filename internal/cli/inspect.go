package cli

import (
	"fmt"
	"math"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/cardwall/pkg/collection"
	"github.com/matzehuels/cardwall/pkg/layout"
	"github.com/matzehuels/cardwall/pkg/snapshot"
)

// inspectCommand creates the inspect command for examining snapshots.
func (c *CLI) inspectCommand() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "inspect [layout.json]",
		Short: "Show the entries and column metrics of a snapshot",
		Long: `Show the entries and column metrics of a snapshot.

The inspect command takes a layout.json file (produced by 'layout') and
prints the build inputs, the computed column geometry, per-column fill
statistics, and the positioned entries. Estimated heights are marked
with ~ until a measurement corrects them.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(args[0], limit)
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 0, "maximum entries to list (0 = all)")

	return cmd
}

// runInspect loads the snapshot and prints its geometry.
func runInspect(input string, limit int) error {
	snap, err := snapshot.ReadSnapshotFile(input)
	if err != nil {
		return fmt.Errorf("load snapshot %s: %w", input, err)
	}

	fmt.Println(StyleTitle.Render("Layout snapshot"))
	printNewline()

	printKeyValue("engine", snap.Engine)
	printKeyValue("viewport", formatSize(snap.Viewport.Width, snap.Viewport.Height))
	if snap.Direction != "" {
		printKeyValue("direction", snap.Direction)
	}
	if snap.Loading {
		printKeyValue("loading", "yes")
	}
	printKeyValue("columns", fmt.Sprintf("%d", snap.NumColumns))
	printKeyValue("item width", fmt.Sprintf("%.0f", snap.ItemWidth))
	printKeyValue("spacing", fmt.Sprintf("%.0f", snap.HorizontalSpacing))
	printKeyValue("content", formatSize(snap.ContentSize.Width, snap.ContentSize.Height))

	entryLabel := fmt.Sprintf("%d", len(snap.Entries))
	if n := estimatedCount(snap); n > 0 {
		entryLabel += fmt.Sprintf(" (%d estimated)", n)
	}
	printKeyValue("entries", entryLabel)
	printNewline()

	printColumnTable(snap)
	printNewline()
	printEntryTable(snap, limit)

	return nil
}

// formatSize renders a width/height pair for display.
func formatSize(w, h float64) string {
	return fmt.Sprintf("%.0f × %.0f", w, h)
}

// =============================================================================
// Column Metrics
// =============================================================================

// columnStat summarizes one column's fill: how many entries it holds and
// the bottom edge of its lowest entry.
type columnStat struct {
	entries int
	bottom  float64
}

// columnIndex maps an entry's x position to its column. Entries are laid
// on a fixed stride of item width plus spacing starting at the margin.
func columnIndex(snap snapshot.Snapshot, e snapshot.Entry) int {
	if snap.NumColumns <= 1 {
		return 0
	}
	stride := snap.ItemWidth + snap.HorizontalSpacing
	if stride <= 0 {
		return 0
	}
	i := int(math.Round((e.X - layout.Margin) / stride))
	if i < 0 {
		i = 0
	}
	if i >= snap.NumColumns {
		i = snap.NumColumns - 1
	}
	return i
}

// columnStats groups the item entries of a snapshot by column. Synthetic
// loader and placeholder entries span the full width and are skipped.
func columnStats(snap snapshot.Snapshot) []columnStat {
	n := snap.NumColumns
	if n < 1 {
		n = 1
	}
	stats := make([]columnStat, n)
	for _, e := range snap.Entries {
		if layout.IsSynthetic(collection.Key(e.Key)) {
			continue
		}
		i := columnIndex(snap, e)
		stats[i].entries++
		if bottom := e.Y + e.Height; bottom > stats[i].bottom {
			stats[i].bottom = bottom
		}
	}
	return stats
}

// =============================================================================
// Tables
// =============================================================================

var (
	tableHeaderStyle = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	tableBorderStyle = lipgloss.NewStyle().Foreground(colorDim)
)

// printColumnTable prints per-column entry counts and bottom edges.
func printColumnTable(snap snapshot.Snapshot) {
	rows := [][]string{}
	for i, st := range columnStats(snap) {
		rows = append(rows, []string{
			fmt.Sprintf("%d", i+1),
			fmt.Sprintf("%d", st.entries),
			fmt.Sprintf("%.0f", st.bottom),
		})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(tableBorderStyle).
		Headers("Col", "Entries", "Bottom").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return tableHeaderStyle
			}
			return StyleNumber
		})

	fmt.Println(t.Render())
}

// printEntryTable prints the positioned entries, at most limit rows when
// limit is positive.
func printEntryTable(snap snapshot.Snapshot, limit int) {
	shown := snap.Entries
	if limit > 0 && len(shown) > limit {
		shown = shown[:limit]
	}

	rows := [][]string{}
	estimated := make([]bool, 0, len(shown))
	for _, e := range shown {
		marker := ""
		if e.Estimated {
			marker = "~"
		}
		rows = append(rows, []string{
			e.Key,
			fmt.Sprintf("%.0f", e.X),
			fmt.Sprintf("%.0f", e.Y),
			fmt.Sprintf("%.0f", e.Width),
			fmt.Sprintf("%.0f", e.Height),
			marker,
		})
		estimated = append(estimated, e.Estimated)
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(tableBorderStyle).
		Headers("Key", "X", "Y", "W", "H", "").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return tableHeaderStyle
			}
			if row >= 0 && row < len(estimated) && estimated[row] {
				return StyleDim
			}
			return lipgloss.NewStyle()
		})

	fmt.Println(t.Render())

	if rest := len(snap.Entries) - len(shown); rest > 0 {
		printDetail("+%d more entries", rest)
	}
}
