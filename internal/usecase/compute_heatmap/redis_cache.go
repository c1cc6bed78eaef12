package compute_heatmap

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultKeyPrefix = "heatmap"

// RedisCache кеш в Redis: одна JSON-запись на сессию клиента с TTL
type RedisCache struct {
	rdb    *redis.Client
	ttl    time.Duration
	prefix string
}

// NewRedisCache создает кеш поверх клиента Redis
func NewRedisCache(rdb *redis.Client, ttl time.Duration, prefix string) *RedisCache {
	if prefix == "" {
		prefix = defaultKeyPrefix
	}
	return &RedisCache{rdb: rdb, ttl: ttl, prefix: prefix}
}

// Load читает запись сессии; отсутствие ключа - ErrCacheMiss
func (c *RedisCache) Load(ctx context.Context, sessionID string) (*Entry, error) {
	raw, err := c.rdb.Get(ctx, c.key(sessionID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrCacheMiss
		}
		return nil, fmt.Errorf("redis cache: get: %w", err)
	}

	var entry Entry
	if err := json.Unmarshal(raw, &entry); err != nil {
		return nil, fmt.Errorf("redis cache: decode: %w", err)
	}
	if entry.Days == nil {
		entry.Days = make(map[string]bool)
	}
	return &entry, nil
}

// Store перезаписывает запись сессии
func (c *RedisCache) Store(ctx context.Context, sessionID string, entry *Entry) error {
	raw, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("redis cache: encode: %w", err)
	}
	if err := c.rdb.Set(ctx, c.key(sessionID), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis cache: set: %w", err)
	}
	return nil
}

func (c *RedisCache) key(sessionID string) string {
	return c.prefix + ":" + sessionID
}
