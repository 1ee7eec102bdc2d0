package layout

import "math"

// =============================================================================
// Column Sizing
// =============================================================================

// columnMetrics is the horizontal geometry of one build: how many columns
// fit the viewport, how wide each card is, and the resulting gap between
// columns. List layouts degenerate to a single column with zero spacing.
type columnMetrics struct {
	numColumns int
	itemWidth  float64
	spacing    float64
}

// computeColumns sizes the column grid for a viewport width. The column
// count is how many minimum-width cards plus gaps fit the raw viewport,
// clamped to at least one and at most cfg.MaxColumns. Cards then grow to
// share the margin-adjusted span, and whatever width the growth cannot
// absorb (when the card cap bites) is distributed back into the gaps.
//
// Spacing can come out below cfg.MinSpace.Width when the rounded card
// width slightly overshoots the span; the layout trades exact gap width
// for cards that tile the full row.
func computeColumns(cfg Config, viewportWidth float64) columnMetrics {
	fit := int(math.Floor(viewportWidth / (cfg.MinItemSize.Width + cfg.MinSpace.Width)))
	maxColumns := cfg.MaxColumns
	if maxColumns <= 0 {
		maxColumns = math.MaxInt
	}
	numColumns := min(max(fit, 1), maxColumns)

	available := viewportWidth - 2*Margin
	width := available - cfg.MinSpace.Width*float64(numColumns-1)
	itemWidth := clamp(math.Round(width/float64(numColumns)), cfg.MinItemSize.Width, cfg.maxItemWidth())
	spacing := math.Round((available - float64(numColumns)*itemWidth) / math.Max(1, float64(numColumns-1)))

	return columnMetrics{numColumns: numColumns, itemWidth: itemWidth, spacing: spacing}
}

// shortestColumn returns the index of the lowest column, preferring the
// leftmost on ties so repeated builds fill deterministically.
func shortestColumn(heights []float64) int {
	best := 0
	for i, h := range heights {
		if h < heights[best] {
			best = i
		}
	}
	return best
}
