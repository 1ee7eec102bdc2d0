package cache

// ScopedKeyer wraps a Keyer with a prefix, giving separate deployments or
// format revisions isolated cache namespaces. The server scopes its keys
// so a wire-format change cannot surface entries written by an older
// binary.
//
//	keyer := cache.NewScopedKeyer(cache.NewDefaultKeyer(), "api:v1:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer that prepends prefix to all generated
// keys. A nil inner falls back to the default keyer.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// SnapshotKey generates a prefixed key for a layout snapshot.
func (k *ScopedKeyer) SnapshotKey(itemsHash string, opts SnapshotKeyOpts) string {
	return k.prefix + k.inner.SnapshotKey(itemsHash, opts)
}
