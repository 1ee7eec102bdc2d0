package cli

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/cardwall/pkg/collection"
	"github.com/matzehuels/cardwall/pkg/geometry"
	"github.com/matzehuels/cardwall/pkg/layout"
	"github.com/matzehuels/cardwall/pkg/pipeline"
	"github.com/matzehuels/cardwall/pkg/profile"
	"github.com/matzehuels/cardwall/pkg/snapshot"
)

// measureInterval is the delay between simulated measurements.
const measureInterval = 150 * time.Millisecond

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// previewCommand creates the preview command, an interactive explorer for
// a collection's layout.
func (c *CLI) previewCommand() *cobra.Command {
	var (
		profilePath string
		seed        int64
	)
	opts := pipeline.Options{}
	opts.SetLayoutDefaults()

	cmd := &cobra.Command{
		Use:   "preview [items.json]",
		Short: "Explore a collection's layout interactively",
		Long: `Explore a collection's layout interactively.

The preview command builds the layout in memory and opens a terminal
explorer. Arrow keys move focus between cards the way a real collection
view would: left and right follow the visual columns (mirrored under
RTL), up and down follow collection order. Measurement can be simulated
to watch estimated heights settle into their final positions.

Keys:
  left/right  move focus between columns
  up/down     move focus in collection order
  m           toggle simulated measurement
  r           toggle text direction (ltr/rtl)
  l           toggle the loading indicator
  q           quit`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if profilePath != "" {
				p, err := profile.Load(profilePath)
				if err != nil {
					return err
				}
				applyProfile(cmd, p, &opts)
			}
			return c.runPreview(cmd.Context(), args[0], opts, seed)
		},
	}

	cmd.Flags().StringVar(&profilePath, "profile", "", "TOML profile with engine and sizing options")
	cmd.Flags().Int64Var(&seed, "seed", defaultSeed, "random seed for simulated measurements")
	layoutFlags(cmd, &opts)

	return cmd
}

// runPreview builds the engine and hands it to the terminal explorer.
func (c *CLI) runPreview(ctx context.Context, input string, opts pipeline.Options, seed int64) error {
	col, err := collection.ImportJSON(input)
	if err != nil {
		return fmt.Errorf("load items %s: %w", input, err)
	}
	if err := opts.ValidateForLayout(); err != nil {
		return err
	}

	eng, err := opts.NewEngine()
	if err != nil {
		return err
	}
	eng.Validate(opts.Input(col), layout.Invalidation{})

	p := tea.NewProgram(newPreviewModel(eng, col, opts, seed), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("preview: %w", err)
	}
	return nil
}

// =============================================================================
// previewModel - Interactive Layout Explorer
// =============================================================================

// measureTickMsg drives the simulated measurement loop.
type measureTickMsg struct{}

// previewModel is the bubbletea model for the layout explorer.
type previewModel struct {
	engine pipeline.Engine
	col    *collection.List
	opts   pipeline.Options

	focus     collection.Key
	measuring bool
	measured  int
	rng       *rand.Rand
	height    int
}

// newPreviewModel creates the explorer model with focus on the first item.
func newPreviewModel(eng pipeline.Engine, col *collection.List, opts pipeline.Options, seed int64) previewModel {
	m := previewModel{
		engine: eng,
		col:    col,
		opts:   opts,
		rng:    rand.New(rand.NewSource(seed)),
		height: 24,
	}
	if keys := col.Keys(); len(keys) > 0 {
		m.focus = keys[0]
	}
	return m
}

func (m previewModel) Init() tea.Cmd {
	return nil
}

func (m previewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "left":
			if nav, ok := m.engine.(layout.Navigator); ok {
				if key, ok := nav.KeyLeftOf(m.focus); ok {
					m.focus = key
				}
			}
		case "right":
			if nav, ok := m.engine.(layout.Navigator); ok {
				if key, ok := nav.KeyRightOf(m.focus); ok {
					m.focus = key
				}
			}
		case "up", "k":
			m.moveOrder(-1)
		case "down", "j":
			m.moveOrder(1)
		case "m":
			m.measuring = !m.measuring
			if m.measuring {
				return m, m.tick()
			}
		case "r":
			if m.opts.Direction == string(layout.DirectionRTL) {
				m.opts.Direction = string(layout.DirectionLTR)
			} else {
				m.opts.Direction = string(layout.DirectionRTL)
			}
			m.revalidate(layout.Invalidation{})
		case "l":
			m.opts.Loading = !m.opts.Loading
			m.revalidate(layout.Invalidation{})
		}
	case tea.WindowSizeMsg:
		m.height = msg.Height
	case measureTickMsg:
		if !m.measuring {
			return m, nil
		}
		if m.measureNext() {
			return m, m.tick()
		}
		m.measuring = false
	}
	return m, nil
}

// revalidate rebuilds the layout after an input change.
func (m *previewModel) revalidate(inv layout.Invalidation) {
	m.engine.Validate(m.opts.Input(m.col), inv)
}

// moveOrder moves focus by delta in collection order, clamped at the ends.
func (m *previewModel) moveOrder(delta int) {
	keys := m.col.Keys()
	if len(keys) == 0 {
		return
	}
	i := 0
	for j, k := range keys {
		if k == m.focus {
			i = j
			break
		}
	}
	i += delta
	if i < 0 {
		i = 0
	}
	if i >= len(keys) {
		i = len(keys) - 1
	}
	m.focus = keys[i]
}

// measureNext applies a simulated measurement to the first entry whose
// height is still an estimate. It reports whether one was attempted; the
// loop stops once every entry is measured.
func (m *previewModel) measureNext() bool {
	meas, ok := m.engine.(layout.Measurer)
	if !ok {
		return false
	}
	for _, e := range m.engine.Entries() {
		if !e.Estimated || layout.IsSynthetic(e.Key) {
			continue
		}
		h := math.Round(e.Rect.Height * (0.6 + m.rng.Float64()))
		if meas.UpdateItemSize(e.Key, geometry.Size{Width: e.Rect.Width, Height: h}) {
			m.revalidate(layout.Invalidation{})
		}
		m.measured++
		return true
	}
	return false
}

func (m previewModel) tick() tea.Cmd {
	return tea.Tick(measureInterval, func(time.Time) tea.Msg {
		return measureTickMsg{}
	})
}

// =============================================================================
// View
// =============================================================================

func (m previewModel) View() string {
	snap := m.engine.Export()

	var b strings.Builder
	b.WriteString(StyleTitle.Render("cardwall preview · " + snap.Engine))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(m.statusLine(snap)))
	b.WriteString("\n\n")

	b.WriteString(m.renderColumns(snap))
	b.WriteString("\n")

	if entry, ok := m.engine.Entry(m.focus); ok {
		b.WriteString(StyleHighlight.Render("▸ " + string(m.focus)))
		b.WriteString(StyleDim.Render(fmt.Sprintf("  x=%.0f y=%.0f  %s", entry.Rect.X, entry.Rect.Y, formatSize(entry.Rect.Width, entry.Rect.Height))))
		if entry.Estimated {
			b.WriteString("  " + StyleWarning.Render("estimated"))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("←/→ columns  ↑/↓ order  m measure  r direction  l loading  q quit"))
	return b.String()
}

// statusLine summarizes the current build inputs and measurement progress.
func (m previewModel) statusLine(snap snapshot.Snapshot) string {
	direction := m.opts.Direction
	if direction == "" {
		direction = string(layout.DirectionLTR)
	}

	parts := []string{
		direction,
		fmt.Sprintf("content %s", formatSize(snap.ContentSize.Width, snap.ContentSize.Height)),
	}
	if m.opts.Loading {
		parts = append(parts, "loading")
	}
	if m.measuring {
		parts = append(parts, "measuring…")
	}
	if m.measured > 0 {
		parts = append(parts, fmt.Sprintf("%d measured", m.measured))
	}
	if n := estimatedCount(snap); n > 0 {
		parts = append(parts, fmt.Sprintf("%d estimated", n))
	}
	return strings.Join(parts, " · ")
}

// renderColumns draws each column as a stack of card lines, the focused
// card highlighted, synthetic entries listed below the columns.
func (m previewModel) renderColumns(snap snapshot.Snapshot) string {
	numCols := snap.NumColumns
	if numCols < 1 {
		numCols = 1
	}
	cols := make([][]snapshot.Entry, numCols)
	var synthetic []snapshot.Entry
	for _, e := range snap.Entries {
		if layout.IsSynthetic(collection.Key(e.Key)) {
			synthetic = append(synthetic, e)
			continue
		}
		i := columnIndex(snap, e)
		cols[i] = append(cols[i], e)
	}

	maxRows := m.height - 10
	if maxRows < 5 {
		maxRows = 5
	}

	rendered := make([]string, 0, len(cols))
	for i, entries := range cols {
		var cb strings.Builder
		cb.WriteString(listDimStyle.Render(fmt.Sprintf("col %d", i+1)))
		cb.WriteString("\n")
		for j, e := range entries {
			if j == maxRows {
				cb.WriteString(listDimStyle.Render(fmt.Sprintf("+%d more", len(entries)-j)))
				cb.WriteString("\n")
				break
			}
			cb.WriteString(m.cardLine(e))
			cb.WriteString("\n")
		}
		rendered = append(rendered, lipgloss.NewStyle().MarginRight(2).Render(cb.String()))
	}
	out := lipgloss.JoinHorizontal(lipgloss.Top, rendered...)

	for _, e := range synthetic {
		out += "\n" + listDimStyle.Render(fmt.Sprintf("%s · h=%.0f", e.Key, e.Height))
	}
	return out
}

// cardLine formats one card as "key height", ~ marking estimated heights.
func (m previewModel) cardLine(e snapshot.Entry) string {
	marker := " "
	if e.Estimated {
		marker = "~"
	}
	line := fmt.Sprintf("%s%s %.0f", marker, e.Key, e.Height)
	if collection.Key(e.Key) == m.focus {
		return listSelectedStyle.Render(line)
	}
	if e.Estimated {
		return listDimStyle.Render(line)
	}
	return listNormalStyle.Render(line)
}
