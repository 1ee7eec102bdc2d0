package cache

// Keyer generates cache keys for pipeline artifacts.
// Implementations must be deterministic: identical inputs always produce
// the identical key.
type Keyer interface {
	// SnapshotKey generates a key for a computed layout snapshot.
	// itemsHash is the content hash of the serialized item collection.
	SnapshotKey(itemsHash string, opts SnapshotKeyOpts) string
}

// SnapshotKeyOpts are the build options that shape a snapshot. Every
// field participates in the key, so any option change addresses a fresh
// entry rather than serving a stale layout.
type SnapshotKeyOpts struct {
	Engine        string  `json:"engine"`
	Width         float64 `json:"width"`
	Height        float64 `json:"height"`
	Direction     string  `json:"direction"`
	Loading       bool    `json:"loading"`
	MinItemWidth  float64 `json:"min_item_width"`
	MinItemHeight float64 `json:"min_item_height"`
	MaxItemWidth  float64 `json:"max_item_width"`
	MaxItemHeight float64 `json:"max_item_height"`
	SpaceWidth    float64 `json:"space_width"`
	SpaceHeight   float64 `json:"space_height"`
	MaxColumns    int     `json:"max_columns"`
	ItemPadding   float64 `json:"item_padding"`
}

// DefaultKeyer is the standard Keyer implementation.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// SnapshotKey generates a key of the form snapshot:hash(inputs).
func (k *DefaultKeyer) SnapshotKey(itemsHash string, opts SnapshotKeyOpts) string {
	return hashKey("snapshot", itemsHash, opts)
}
