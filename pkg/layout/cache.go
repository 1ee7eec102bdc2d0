package layout

import (
	"github.com/matzehuels/cardwall/pkg/collection"
	"github.com/matzehuels/cardwall/pkg/geometry"
)

// =============================================================================
// Entry Cache
// =============================================================================

// entryCache is the layout cache shared by all engines: computed entries
// addressed by key, plus the key order of the previous build. The order
// drives both display-order iteration and eviction of entries whose items
// have left the collection.
type entryCache struct {
	entries map[collection.Key]Entry
	order   []collection.Key
}

func newEntryCache() *entryCache {
	return &entryCache{entries: make(map[collection.Key]Entry)}
}

func (c *entryCache) get(key collection.Key) (Entry, bool) {
	e, ok := c.entries[key]
	return e, ok
}

func (c *entryCache) put(e Entry) {
	c.entries[e.Key] = e
}

func (c *entryCache) len() int {
	return len(c.entries)
}

// reconcile evicts entries invalidated by a state change: entries whose
// keys left the collection since the previous build, the loader once
// loading has stopped, and the placeholder once the collection is
// non-empty or loading again. It runs before a build repopulates the
// cache, so a removed key can never serve a stale rectangle.
func (c *entryCache) reconcile(next collection.Collection, loading bool) {
	for _, key := range collection.Diff(c.order, next) {
		delete(c.entries, key)
	}
	if !loading {
		delete(c.entries, KeyLoader)
	}
	if next.Len() > 0 || loading {
		delete(c.entries, KeyPlaceholder)
	}
}

// remember records the collection's key order after a build, for the next
// reconcile and for ordered iteration.
func (c *entryCache) remember(keys []collection.Key) {
	c.order = keys
}

// reset drops all cached state. Used when restoring from a snapshot.
func (c *entryCache) reset() {
	c.entries = make(map[collection.Key]Entry)
	c.order = nil
}

// ordered returns all entries in display order, synthetic entries last.
func (c *entryCache) ordered() []Entry {
	out := make([]Entry, 0, len(c.entries))
	for _, key := range c.order {
		if e, ok := c.entries[key]; ok {
			out = append(out, e)
		}
	}
	if e, ok := c.entries[KeyLoader]; ok {
		out = append(out, e)
	}
	if e, ok := c.entries[KeyPlaceholder]; ok {
		out = append(out, e)
	}
	return out
}

// updateHeight applies a measured height to one entry. Unknown keys and
// absent sizes are ignored, and a measurement equal to the cached height
// leaves the entry untouched, estimate flag included. A differing height
// replaces the entry wholesale with the estimate flag cleared. It reports
// whether the entry changed; true means column heights downstream are
// stale and the caller owes a rebuild.
func (c *entryCache) updateHeight(key collection.Key, size geometry.Size) bool {
	entry, ok := c.entries[key]
	if !ok || size.IsZero() {
		return false
	}
	if entry.Rect.Height == size.Height {
		return false
	}
	entry.Rect.Height = size.Height
	entry.Estimated = false
	c.entries[key] = entry
	return true
}

// appendStateEntries publishes the synthetic loader and placeholder
// entries for the current state and returns the content bottom edge.
// While loading, a loader band sits below the items, growing to the full
// viewport height when there are no items yet. An empty idle collection
// gets a single viewport-sized placeholder instead.
func (c *entryCache) appendStateEntries(in Input, itemCount int, maxHeight float64) float64 {
	switch {
	case in.Loading:
		rect := geometry.Rect{X: 0, Y: maxHeight, Width: in.Viewport.Width, Height: loaderHeight}
		if itemCount == 0 {
			rect.Y = 0
			rect.Height = in.Viewport.Height
			if rect.Height == 0 {
				rect.Height = loaderHeight
			}
		}
		c.put(Entry{Key: KeyLoader, Rect: rect})
		return rect.MaxY()

	case itemCount == 0:
		rect := geometry.Rect{X: 0, Y: 0, Width: in.Viewport.Width, Height: in.Viewport.Height}
		c.put(Entry{Key: KeyPlaceholder, Rect: rect})
		return rect.MaxY()

	default:
		return maxHeight
	}
}
