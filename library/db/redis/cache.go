package redis

import (
	"context"
	"time"

	"github.com/Laisky/errors/v2"
)

// ActorCache stores Actor result sequences in redis.
type ActorCache struct {
	db *DB
}

// NewActorCache constructs a redis-backed Actor cache.
func NewActorCache(db *DB) *ActorCache {
	if db == nil {
		return nil
	}
	return &ActorCache{db: db}
}

// Store writes the encoded results with TTL.
func (c *ActorCache) Store(ctx context.Context, key, payload string, ttl time.Duration) error {
	if c == nil || c.db == nil {
		return errors.New("redis client is required")
	}
	if err := c.db.db.SetItem(ctx, actorKey(key), payload, ttl); err != nil {
		return errors.Wrapf(err, "set actor cache %q", key)
	}
	return nil
}

// Load retrieves the encoded results.
func (c *ActorCache) Load(ctx context.Context, key string) (string, error) {
	if c == nil || c.db == nil {
		return "", errors.New("redis client is required")
	}
	payload, err := c.db.db.GetItem(ctx, actorKey(key))
	if err != nil {
		return "", errors.Wrapf(err, "get actor cache %q", key)
	}
	return payload, nil
}

// Delete evicts a cached result sequence.
func (c *ActorCache) Delete(ctx context.Context, key string) error {
	if c == nil || c.db == nil {
		return errors.New("redis client is required")
	}
	if err := c.db.rdb.Del(ctx, actorKey(key)).Err(); err != nil {
		return errors.Wrapf(err, "delete actor cache %q", key)
	}
	return nil
}

func actorKey(key string) string {
	return KeyPrefixActorSearch + key
}
