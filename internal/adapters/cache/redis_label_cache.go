package cache

import (
	"context"
	"errors"
	"flare-label-service/internal/platform/obs"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/vmihailenco/msgpack/v5"
)

const defaultKeyPrefix = "flare:label"

// cachedLabel is the msgpack value stored under each Redis key.
type cachedLabel struct {
	Label    string `msgpack:"label"`
	CachedAt int64  `msgpack:"cached_at"`
}

// RedisLabelCache stores rendered labels in Redis with an optional TTL.
type RedisLabelCache struct {
	client    redis.UniversalClient
	keyPrefix string
	ttl       time.Duration
}

type RedisLabelCacheOptions struct {
	Client    redis.UniversalClient
	KeyPrefix string
	// TTL <= 0 keeps entries until evicted.
	TTL time.Duration
}

func NewRedisLabelCache(opts RedisLabelCacheOptions) *RedisLabelCache {
	prefix := strings.TrimSpace(opts.KeyPrefix)
	if prefix == "" {
		prefix = defaultKeyPrefix
	}
	return &RedisLabelCache{client: opts.Client, keyPrefix: prefix, ttl: opts.TTL}
}

func (c *RedisLabelCache) key(k string) string {
	return c.keyPrefix + ":" + k
}

// Fetch cached labels for the given keys with a single MGET.
func (c *RedisLabelCache) GetMany(ctx context.Context, keys []string) (_ map[string]string, err error) {
	defer obs.Time(ctx, "label.cache.redis.GetMany")(&err)

	if c.client == nil {
		return nil, errors.New("label cache: redis client is nil")
	}

	uniq := uniqueKeys(keys)
	if len(uniq) == 0 {
		return map[string]string{}, nil
	}

	redisKeys := make([]string, len(uniq))
	for i, k := range uniq {
		redisKeys[i] = c.key(k)
	}

	vals, err := c.client.MGet(ctx, redisKeys...).Result()
	if err != nil {
		return nil, fmt.Errorf("get label cache: redis mget: %w", err)
	}

	out := make(map[string]string, len(uniq))
	for i, v := range vals {
		s, ok := v.(string)
		if !ok {
			continue
		}

		var entry cachedLabel
		if err := msgpack.Unmarshal([]byte(s), &entry); err != nil {
			return nil, fmt.Errorf("get label cache: decode key=%q: %w", uniq[i], err)
		}
		out[uniq[i]] = entry.Label
	}

	return out, nil
}

// Store key -> label mappings in one pipeline.
func (c *RedisLabelCache) PutMany(ctx context.Context, labels map[string]string) error {
	if c.client == nil {
		return errors.New("label cache: redis client is nil")
	}

	if len(labels) == 0 {
		return nil
	}

	now := time.Now().Unix()
	pipe := c.client.Pipeline()
	for key, label := range labels {
		if strings.TrimSpace(key) == "" {
			return fmt.Errorf("insert label cache: empty cache key")
		}

		b, err := msgpack.Marshal(cachedLabel{Label: label, CachedAt: now})
		if err != nil {
			return fmt.Errorf("insert label cache: encode key=%q: %w", key, err)
		}

		ttl := c.ttl
		if ttl < 0 {
			ttl = 0
		}
		pipe.Set(ctx, c.key(key), b, ttl)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("insert label cache: redis pipeline: %w", err)
	}

	return nil
}
