// Package store provides session storage for the layout API.
//
// A session captures everything the API needs to rebuild a layout between
// requests: the item collection, the engine choice and its configuration,
// the current viewport, and the most recent snapshot. Implementations
// cover different deployment shapes:
//   - memory: In-memory storage for development/testing
//   - redis: Redis-backed storage for multi-instance deployments
//   - mongo: MongoDB-backed storage when sessions must survive restarts
//
// # Architecture
//
// Sessions expire after a TTL. The Store interface supports:
//   - Get/Set/Delete operations
//   - Automatic expiration checking
//   - Cleanup of expired sessions
//
// Backends report their operations through observability store hooks, so
// deployments can meter session churn without wrapping the store.
//
// # Usage
//
// Create a session store:
//
//	// Development
//	st := store.NewMemoryStore()
//
//	// Multi-instance
//	st, err := store.NewRedisStore(ctx, store.RedisConfig{
//	    Addr: "localhost:6379",
//	})
//
//	// Durable
//	st, err := store.NewMongoStore(ctx, store.MongoConfig{
//	    URI: "mongodb://localhost:27017",
//	})
//
// Manage sessions:
//
//	sess := store.New(snapshot.EngineWaterfall, cfg, store.DefaultTTL)
//	st.Set(ctx, sess)
//
//	sess, err := st.Get(ctx, sessionID)
//	if err != nil {
//	    return err // includes ErrExpired
//	}
//	if sess == nil {
//	    // Session not found
//	}
package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/cardwall/pkg/collection"
	"github.com/matzehuels/cardwall/pkg/geometry"
	"github.com/matzehuels/cardwall/pkg/layout"
	"github.com/matzehuels/cardwall/pkg/snapshot"
)

// ErrExpired is returned when a session has exceeded its TTL.
var ErrExpired = errors.New("expired")

// DefaultTTL is the default session duration.
const DefaultTTL = 24 * time.Hour

// Session stores the layout state for one API client.
type Session struct {
	ID        string    `json:"id" bson:"_id"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
	ExpiresAt time.Time `json:"expires_at" bson:"expires_at"`

	Engine    string             `json:"engine" bson:"engine"`
	Direction string             `json:"direction,omitempty" bson:"direction,omitempty"`
	Loading   bool               `json:"loading" bson:"loading"`
	Viewport  geometry.Size      `json:"viewport" bson:"viewport"`
	Config    layout.Config      `json:"config" bson:"config"`
	Items     []collection.Item  `json:"items" bson:"items"`
	Snapshot  *snapshot.Snapshot `json:"snapshot,omitempty" bson:"snapshot,omitempty"`
}

// IsExpired returns true if the session has expired.
func (s *Session) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}

// Touch refreshes the session's update time and extends its expiry.
func (s *Session) Touch(ttl time.Duration) {
	now := time.Now()
	s.UpdatedAt = now
	s.ExpiresAt = now.Add(ttl)
}

// Collection rebuilds the session's item collection in display order.
func (s *Session) Collection() (*collection.List, error) {
	return collection.NewList(s.Items...)
}

// Store is the interface for session storage backends.
type Store interface {
	// Get retrieves a session by ID.
	// Returns nil, nil if the session doesn't exist.
	// Returns nil, ErrExpired if the session exists but has expired.
	Get(ctx context.Context, sessionID string) (*Session, error)

	// Set stores a session.
	Set(ctx context.Context, session *Session) error

	// Delete removes a session.
	Delete(ctx context.Context, sessionID string) error

	// Cleanup removes expired sessions (may be a no-op when the backend
	// expires entries itself).
	Cleanup(ctx context.Context) error

	// Close releases backend resources.
	Close() error
}

// New creates a session for the given engine and configuration.
func New(engine string, cfg layout.Config, ttl time.Duration) *Session {
	now := time.Now()
	return &Session{
		ID:        uuid.NewString(),
		CreatedAt: now,
		UpdatedAt: now,
		ExpiresAt: now.Add(ttl),
		Engine:    engine,
		Config:    cfg,
	}
}
