package layout

import (
	"github.com/matzehuels/cardwall/pkg/collection"
	"github.com/matzehuels/cardwall/pkg/errors"
	"github.com/matzehuels/cardwall/pkg/geometry"
	"github.com/matzehuels/cardwall/pkg/snapshot"
)

// =============================================================================
// Snapshot Export / Restore
// =============================================================================

// Export captures the waterfall's current cache as a serializable
// snapshot.
func (w *Waterfall) Export() snapshot.Snapshot {
	return exportSnapshot(w.Kind(), w.direction, w.viewport, w.loading, w.metrics, w.contentSize, w.cache.ordered())
}

// Restore replaces the waterfall's cache with the contents of a
// previously exported snapshot, so a later Validate reuses its heights.
// Snapshots from another engine kind are rejected.
func (w *Waterfall) Restore(s snapshot.Snapshot) error {
	if err := checkEngine(s, snapshot.EngineWaterfall); err != nil {
		return err
	}
	w.metrics, w.viewport, w.loading, w.contentSize, w.direction = restoreCache(w.cache, s)
	return nil
}

// Export captures the grid's current cache as a serializable snapshot.
func (g *Grid) Export() snapshot.Snapshot {
	return exportSnapshot(g.Kind(), g.direction, g.viewport, g.loading, g.metrics, g.contentSize, g.cache.ordered())
}

// Restore replaces the grid's cache with the contents of a previously
// exported snapshot.
func (g *Grid) Restore(s snapshot.Snapshot) error {
	if err := checkEngine(s, snapshot.EngineGrid); err != nil {
		return err
	}
	g.metrics, g.viewport, g.loading, g.contentSize, g.direction = restoreCache(g.cache, s)
	return nil
}

// Export captures the list's current cache as a serializable snapshot.
func (l *List) Export() snapshot.Snapshot {
	return exportSnapshot(l.Kind(), l.direction, l.viewport, l.loading, l.metrics, l.contentSize, l.cache.ordered())
}

// Restore replaces the list's cache with the contents of a previously
// exported snapshot.
func (l *List) Restore(s snapshot.Snapshot) error {
	if err := checkEngine(s, snapshot.EngineList); err != nil {
		return err
	}
	l.metrics, l.viewport, l.loading, l.contentSize, l.direction = restoreCache(l.cache, s)
	return nil
}

func checkEngine(s snapshot.Snapshot, want string) error {
	if s.Engine != "" && s.Engine != want {
		return errors.New(errors.ErrCodeInvalidEngine, "snapshot engine %q does not match %q", s.Engine, want)
	}
	return nil
}

func exportSnapshot(kind string, dir Direction, viewport geometry.Size, loading bool, m columnMetrics, content geometry.Size, entries []Entry) snapshot.Snapshot {
	s := snapshot.Snapshot{
		Engine:            kind,
		Direction:         string(dir),
		Viewport:          snapshot.Size{Width: viewport.Width, Height: viewport.Height},
		Loading:           loading,
		NumColumns:        m.numColumns,
		ItemWidth:         m.itemWidth,
		HorizontalSpacing: m.spacing,
		ContentSize:       snapshot.Size{Width: content.Width, Height: content.Height},
		Entries:           make([]snapshot.Entry, len(entries)),
	}
	for i, e := range entries {
		s.Entries[i] = snapshot.Entry{
			Key:       string(e.Key),
			X:         e.Rect.X,
			Y:         e.Rect.Y,
			Width:     e.Rect.Width,
			Height:    e.Rect.Height,
			Estimated: e.Estimated,
		}
	}
	return s
}

func restoreCache(c *entryCache, s snapshot.Snapshot) (columnMetrics, geometry.Size, bool, geometry.Size, Direction) {
	c.reset()
	keys := make([]collection.Key, 0, len(s.Entries))
	for _, e := range s.Entries {
		key := collection.Key(e.Key)
		c.put(Entry{
			Key:       key,
			Rect:      geometry.Rect{X: e.X, Y: e.Y, Width: e.Width, Height: e.Height},
			Estimated: e.Estimated,
		})
		if !IsSynthetic(key) {
			keys = append(keys, key)
		}
	}
	c.remember(keys)

	m := columnMetrics{numColumns: s.NumColumns, itemWidth: s.ItemWidth, spacing: s.HorizontalSpacing}
	viewport := geometry.Size{Width: s.Viewport.Width, Height: s.Viewport.Height}
	content := geometry.Size{Width: s.ContentSize.Width, Height: s.ContentSize.Height}
	return m, viewport, s.Loading, content, Direction(s.Direction)
}
