package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/matzehuels/cardwall/pkg/cache"
	"github.com/matzehuels/cardwall/pkg/observability"
)

const (
	mongoBackend           = "mongo"
	defaultMongoDatabase   = "cardwall"
	defaultMongoCollection = "sessions"
)

// MongoConfig holds MongoDB connection settings.
type MongoConfig struct {
	// URI is the MongoDB connection string.
	URI string

	// Database is the database name. Defaults to "cardwall".
	Database string

	// Collection is the collection name. Defaults to "sessions".
	Collection string
}

// MongoStore is a MongoDB-backed session store for deployments where
// sessions must survive restarts. Sessions are upserted by ID, and a TTL
// index on expires_at lets MongoDB remove lapsed sessions on its own.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// NewMongoStore connects to MongoDB, verifies the connection, and ensures
// the session TTL index. Transient connection failures are retried with
// backoff.
func NewMongoStore(ctx context.Context, cfg MongoConfig) (*MongoStore, error) {
	if cfg.Database == "" {
		cfg.Database = defaultMongoDatabase
	}
	if cfg.Collection == "" {
		cfg.Collection = defaultMongoCollection
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}

	err = cache.RetryWithBackoff(ctx, func() error {
		if err := client.Ping(ctx, nil); err != nil {
			return cache.Retryable(fmt.Errorf("%w: %v", cache.ErrNetwork, err))
		}
		return nil
	})
	if err != nil {
		client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	coll := client.Database(cfg.Database).Collection(cfg.Collection)
	_, err = coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "expires_at", Value: 1}},
		Options: options.Index().SetExpireAfterSeconds(0),
	})
	if err != nil {
		client.Disconnect(ctx)
		return nil, fmt.Errorf("create ttl index: %w", err)
	}

	return &MongoStore{client: client, coll: coll}, nil
}

func (s *MongoStore) Get(ctx context.Context, sessionID string) (*Session, error) {
	var sess Session
	err := s.coll.FindOne(ctx, bson.M{"_id": sessionID}).Decode(&sess)
	if errors.Is(err, mongo.ErrNoDocuments) {
		observability.Store().OnSessionGet(ctx, mongoBackend, false)
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}

	// The TTL monitor sweeps on its own schedule; a lapsed session can
	// still be present between sweeps.
	if sess.IsExpired() {
		s.coll.DeleteOne(ctx, bson.M{"_id": sessionID})
		observability.Store().OnSessionGet(ctx, mongoBackend, false)
		return nil, ErrExpired
	}

	observability.Store().OnSessionGet(ctx, mongoBackend, true)
	return &sess, nil
}

func (s *MongoStore) Set(ctx context.Context, sess *Session) error {
	opts := options.Replace().SetUpsert(true)
	_, err := s.coll.ReplaceOne(ctx, bson.M{"_id": sess.ID}, sess, opts)
	if err != nil {
		observability.Store().OnSessionSet(ctx, mongoBackend, err)
		return fmt.Errorf("set session: %w", err)
	}

	observability.Store().OnSessionSet(ctx, mongoBackend, nil)
	return nil
}

func (s *MongoStore) Delete(ctx context.Context, sessionID string) error {
	if _, err := s.coll.DeleteOne(ctx, bson.M{"_id": sessionID}); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}

	observability.Store().OnSessionDelete(ctx, mongoBackend)
	return nil
}

func (s *MongoStore) Cleanup(ctx context.Context) error {
	res, err := s.coll.DeleteMany(ctx, bson.M{"expires_at": bson.M{"$lt": time.Now()}})
	if err != nil {
		return fmt.Errorf("cleanup sessions: %w", err)
	}

	observability.Store().OnCleanup(ctx, mongoBackend, int(res.DeletedCount))
	return nil
}

func (s *MongoStore) Close() error {
	return s.client.Disconnect(context.Background())
}

var _ Store = (*MongoStore)(nil)
