// Package collection defines the ordered item collections consumed by the
// layout engines.
//
// A collection is an ordered set of items with stable keys. The order is
// the display order; the keys address the layout cache across rebuilds.
// Items optionally carry an intrinsic size hint, used to estimate display
// height before the item has been measured, and an opaque metadata payload
// the engines never read.
package collection

import (
	"errors"
	"fmt"
	"slices"

	"github.com/matzehuels/cardwall/pkg/geometry"
)

// Sentinel errors for collection mutation.
var (
	// ErrEmptyKey is returned by [NewList] and [List.Append] when an item
	// has no key.
	ErrEmptyKey = errors.New("empty item key")

	// ErrDuplicateKey is returned by [NewList] and [List.Append] when an
	// item key is already present.
	ErrDuplicateKey = errors.New("duplicate item key")
)

// Key uniquely identifies an item within a collection.
// Keys must be stable across rebuilds: the layout cache is addressed by them.
type Key string

// Metadata holds arbitrary presentation payload attached to an item.
type Metadata map[string]any

// Item is one member of a collection.
type Item struct {
	// Key is the item's stable identity.
	Key Key `json:"key"`

	// Size is the item's intrinsic size when known ahead of layout.
	// Engines use it to estimate display height before measurement.
	// Nil means unknown.
	Size *geometry.Size `json:"size,omitempty"`

	// Meta carries opaque payload through to consumers.
	Meta Metadata `json:"meta,omitempty"`
}

// HasSize reports whether the item carries a usable intrinsic size.
// Sizes with a non-positive dimension are treated as unknown.
func (it Item) HasSize() bool {
	return it.Size != nil && it.Size.Width > 0 && it.Size.Height > 0
}

// Collection is an ordered set of items with stable keys.
// Implementations must return keys in display order from Keys.
type Collection interface {
	// Len returns the number of items.
	Len() int

	// Keys returns the item keys in display order.
	Keys() []Key

	// Item returns the item for key, if present.
	Item(key Key) (Item, bool)
}

// List is a slice-backed [Collection] with O(1) key lookup.
// The zero value is an empty list ready for use.
//
// List is not safe for concurrent mutation. Item values are shared between
// a list and its clones; treat them as immutable.
type List struct {
	items []Item
	index map[Key]int
}

// NewList creates a list holding items in the given display order.
// It returns [ErrEmptyKey] or [ErrDuplicateKey] if the items are invalid.
func NewList(items ...Item) (*List, error) {
	l := &List{}
	if err := l.Append(items...); err != nil {
		return nil, err
	}
	return l, nil
}

// Append adds items to the end of the list.
// The batch is validated up front: on error the list is unchanged.
func (l *List) Append(items ...Item) error {
	seen := make(map[Key]struct{}, len(items))
	for _, it := range items {
		if it.Key == "" {
			return ErrEmptyKey
		}
		if _, ok := l.index[it.Key]; ok {
			return fmt.Errorf("item %s: %w", it.Key, ErrDuplicateKey)
		}
		if _, ok := seen[it.Key]; ok {
			return fmt.Errorf("item %s: %w", it.Key, ErrDuplicateKey)
		}
		seen[it.Key] = struct{}{}
	}

	if l.index == nil {
		l.index = make(map[Key]int, len(items))
	}
	for _, it := range items {
		l.index[it.Key] = len(l.items)
		l.items = append(l.items, it)
	}
	return nil
}

// Remove deletes the item with key, preserving the order of the rest.
// It reports whether the key was present.
func (l *List) Remove(key Key) bool {
	i, ok := l.index[key]
	if !ok {
		return false
	}
	l.items = slices.Delete(l.items, i, i+1)
	delete(l.index, key)
	for j := i; j < len(l.items); j++ {
		l.index[l.items[j].Key] = j
	}
	return true
}

// Len returns the number of items.
func (l *List) Len() int { return len(l.items) }

// Keys returns the item keys in display order.
func (l *List) Keys() []Key {
	keys := make([]Key, len(l.items))
	for i, it := range l.items {
		keys[i] = it.Key
	}
	return keys
}

// Item returns the item for key, if present.
func (l *List) Item(key Key) (Item, bool) {
	i, ok := l.index[key]
	if !ok {
		return Item{}, false
	}
	return l.items[i], true
}

// Items returns a copy of the items in display order.
func (l *List) Items() []Item {
	return slices.Clone(l.items)
}

// Clone returns an independent list holding the same items.
func (l *List) Clone() *List {
	c := &List{
		items: slices.Clone(l.items),
		index: make(map[Key]int, len(l.index)),
	}
	for k, i := range l.index {
		c.index[k] = i
	}
	return c
}

// Diff returns the keys present in prev but absent from next, in prev
// order. The layout cache evicts exactly these before a rebuild.
func Diff(prev []Key, next Collection) []Key {
	var removed []Key
	for _, k := range prev {
		if _, ok := next.Item(k); !ok {
			removed = append(removed, k)
		}
	}
	return removed
}
