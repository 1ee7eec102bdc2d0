package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/matzehuels/cardwall/pkg/cache"
	"github.com/matzehuels/cardwall/pkg/observability"
)

const (
	redisBackend   = "redis"
	redisKeyPrefix = "cardwall:session:"
)

// RedisConfig holds Redis connection settings.
type RedisConfig struct {
	// Addr is the Redis server address (host:port).
	Addr string

	// Password is the Redis password (empty for no auth).
	Password string

	// DB is the Redis database number.
	DB int
}

// RedisStore is a Redis-backed session store for multi-instance deployments.
// Sessions are stored as JSON values with server-side TTL, so Redis expires
// them without an explicit sweep.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore connects to Redis and verifies the connection.
// Transient connection failures are retried with backoff.
func NewRedisStore(ctx context.Context, cfg RedisConfig) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	err := cache.RetryWithBackoff(ctx, func() error {
		if err := client.Ping(ctx).Err(); err != nil {
			return cache.Retryable(fmt.Errorf("%w: %v", cache.ErrNetwork, err))
		}
		return nil
	})
	if err != nil {
		client.Close()
		return nil, fmt.Errorf("connect redis: %w", err)
	}

	return &RedisStore{client: client}, nil
}

func redisKey(sessionID string) string {
	return redisKeyPrefix + sessionID
}

func (s *RedisStore) Get(ctx context.Context, sessionID string) (*Session, error) {
	data, err := s.client.Get(ctx, redisKey(sessionID)).Bytes()
	if errors.Is(err, redis.Nil) {
		observability.Store().OnSessionGet(ctx, redisBackend, false)
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}

	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, fmt.Errorf("parse session: %w", err)
	}

	// Redis expires keys itself; this guards against clock skew.
	if sess.IsExpired() {
		s.client.Del(ctx, redisKey(sessionID))
		observability.Store().OnSessionGet(ctx, redisBackend, false)
		return nil, ErrExpired
	}

	observability.Store().OnSessionGet(ctx, redisBackend, true)
	return &sess, nil
}

func (s *RedisStore) Set(ctx context.Context, sess *Session) error {
	ttl := time.Until(sess.ExpiresAt)
	if ttl <= 0 {
		return s.Delete(ctx, sess.ID)
	}

	data, err := json.Marshal(sess)
	if err != nil {
		observability.Store().OnSessionSet(ctx, redisBackend, err)
		return fmt.Errorf("marshal session: %w", err)
	}

	if err := s.client.Set(ctx, redisKey(sess.ID), data, ttl).Err(); err != nil {
		observability.Store().OnSessionSet(ctx, redisBackend, err)
		return fmt.Errorf("set session: %w", err)
	}

	observability.Store().OnSessionSet(ctx, redisBackend, nil)
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, redisKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}

	observability.Store().OnSessionDelete(ctx, redisBackend)
	return nil
}

// Cleanup is a no-op: Redis expires sessions via per-key TTL.
func (s *RedisStore) Cleanup(ctx context.Context) error {
	observability.Store().OnCleanup(ctx, redisBackend, 0)
	return nil
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}

var _ Store = (*RedisStore)(nil)
