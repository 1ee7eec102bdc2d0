package layout

import (
	"github.com/matzehuels/cardwall/pkg/collection"
	"github.com/matzehuels/cardwall/pkg/geometry"
)

// =============================================================================
// Directional Navigation
// =============================================================================

// KeyRightOf returns the key visually to the right of key. Under RTL the
// visual right is the reading-order left, so the spatial search mirrors.
func (w *Waterfall) KeyRightOf(key collection.Key) (collection.Key, bool) {
	if w.direction.IsRTL() {
		return w.closestLeft(key)
	}
	return w.closestRight(key)
}

// KeyLeftOf returns the key visually to the left of key.
func (w *Waterfall) KeyLeftOf(key collection.Key) (collection.Key, bool) {
	if w.direction.IsRTL() {
		return w.closestRight(key)
	}
	return w.closestLeft(key)
}

// closestRight finds the nearest card in the column to the right of key.
// A band one column wide is probed at the source's own vertical position
// first; only if that column has no card overlapping the source's rows
// does the probe widen to the full content height. The narrow first pass
// keeps navigation in the adjacent column even when a short card there
// sits far below the source.
func (w *Waterfall) closestRight(key collection.Key) (collection.Key, bool) {
	src, ok := w.cache.get(key)
	if !ok {
		return "", false
	}
	span := w.metrics.itemWidth + w.metrics.spacing
	probe := geometry.Rect{X: src.Rect.MaxX() + 1, Y: src.Rect.Y, Width: span, Height: src.Rect.Height}
	if found, ok := w.closestTo(src, probe); ok {
		return found, true
	}
	probe.Y = 0
	probe.Height = w.contentSize.Height
	return w.closestTo(src, probe)
}

// closestLeft mirrors closestRight on the other side of the source.
func (w *Waterfall) closestLeft(key collection.Key) (collection.Key, bool) {
	src, ok := w.cache.get(key)
	if !ok {
		return "", false
	}
	span := w.metrics.itemWidth + w.metrics.spacing
	probe := geometry.Rect{X: src.Rect.X - span - 1, Y: src.Rect.Y, Width: span, Height: src.Rect.Height}
	if found, ok := w.closestTo(src, probe); ok {
		return found, true
	}
	probe.Y = 0
	probe.Height = w.contentSize.Height
	return w.closestTo(src, probe)
}

// closestTo returns the card nearest to src among those intersecting the
// probe, measured between top-left corners. The source itself and
// synthetic entries never match. Equal distances resolve to the smaller
// key so searches stay deterministic.
func (w *Waterfall) closestTo(src Entry, probe geometry.Rect) (collection.Key, bool) {
	var (
		bestKey  collection.Key
		bestDist float64
		found    bool
	)
	origin := src.Rect.Origin()
	for key, e := range w.cache.entries {
		if key == src.Key || IsSynthetic(key) {
			continue
		}
		if !e.Rect.Intersects(probe) {
			continue
		}
		d := origin.DistanceSquared(e.Rect.Origin())
		if !found || d < bestDist || (d == bestDist && key < bestKey) {
			bestKey, bestDist, found = key, d, true
		}
	}
	return bestKey, found
}
