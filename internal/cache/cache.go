// Package cache keeps derived read models (currently the dashboard summary)
// out of the database hot path.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/alfredjeanlab/issueboard/internal/model"
)

// ErrMiss is returned by Cache.Summary when nothing is cached.
var ErrMiss = errors.New("cache miss")

// Cache stores the issue summary.
type Cache interface {
	Summary(ctx context.Context) (*model.Summary, error)
	SetSummary(ctx context.Context, s *model.Summary) error
	Invalidate(ctx context.Context) error
	Close() error
}

// RedisCache implements Cache on a Redis string key.
type RedisCache struct {
	rdb *redis.Client
	key string
	ttl time.Duration
}

var _ Cache = (*RedisCache)(nil)

// NewRedisCache connects to the Redis server at url (redis://host:port/db).
// Keys are namespaced under prefix.
func NewRedisCache(ctx context.Context, url, prefix string, ttl time.Duration) (*RedisCache, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	rdb := redis.NewClient(opts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return &RedisCache{rdb: rdb, key: prefix + ":summary", ttl: ttl}, nil
}

func (c *RedisCache) Summary(ctx context.Context) (*model.Summary, error) {
	raw, err := c.rdb.Get(ctx, c.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrMiss
	}
	if err != nil {
		return nil, fmt.Errorf("get summary: %w", err)
	}
	var s model.Summary
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("decode summary: %w", err)
	}
	return &s, nil
}

func (c *RedisCache) SetSummary(ctx context.Context, s *model.Summary) error {
	raw, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode summary: %w", err)
	}
	return c.rdb.Set(ctx, c.key, raw, c.ttl).Err()
}

func (c *RedisCache) Invalidate(ctx context.Context) error {
	return c.rdb.Del(ctx, c.key).Err()
}

func (c *RedisCache) Close() error {
	return c.rdb.Close()
}

// NoopCache never holds anything (used when Redis is not configured).
type NoopCache struct{}

var _ Cache = NoopCache{}

func (NoopCache) Summary(context.Context) (*model.Summary, error)  { return nil, ErrMiss }
func (NoopCache) SetSummary(context.Context, *model.Summary) error { return nil }
func (NoopCache) Invalidate(context.Context) error                 { return nil }
func (NoopCache) Close() error                                     { return nil }
