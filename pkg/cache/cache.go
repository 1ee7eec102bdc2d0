// Package cache provides byte-level caching for pipeline results.
//
// The cache stores serialized layout snapshots keyed by a content hash of
// the item collection plus the options that shaped the build. Backends
// are interchangeable behind the Cache interface: a file cache for CLI
// and server usage, and a null cache when caching is disabled.
package cache

import (
	"context"
	"time"
)

// TTLs for cached artifacts.
const (
	// TTLSnapshot is how long computed layout snapshots stay valid.
	// Snapshots are pure functions of their inputs, so the TTL only
	// bounds disk growth.
	TTLSnapshot = 24 * time.Hour
)

// Cache is a byte-level cache with per-entry TTL.
type Cache interface {
	// Get retrieves a value from the cache. The bool reports a hit;
	// a miss is not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value in the cache. A ttl of zero or less stores the
	// value without expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value from the cache. Deleting a missing key is
	// not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}
