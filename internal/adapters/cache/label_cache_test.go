package cache

import (
	"context"
	"flare-label-service/internal/platform/db"
	"flare-label-service/internal/ports"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

var (
	_ ports.LabelCache = (*SqliteLabelCache)(nil)
	_ ports.LabelCache = (*SQLLabelCache)(nil)
	_ ports.LabelCache = (*RedisLabelCache)(nil)
)

func newSqliteCache(t *testing.T) *SqliteLabelCache {
	t.Helper()
	conn, err := db.OpenSQLite(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	_, err = conn.Exec(`CREATE TABLE label_cache (cache_key TEXT PRIMARY KEY, label TEXT NOT NULL);`)
	require.NoError(t, err)

	return NewSqliteLabelCache(conn)
}

func newRedisCache(t *testing.T, ttl time.Duration) (*RedisLabelCache, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewRedisLabelCache(RedisLabelCacheOptions{Client: client, TTL: ttl}), mr
}

func exerciseCache(t *testing.T, c ports.LabelCache) {
	t.Helper()
	ctx := context.Background()

	got, err := c.GetMany(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, got)

	require.NoError(t, c.PutMany(ctx, map[string]string{
		"1:4:2:3": "n51p5072_w000p1276",
		"2:4:2:3": "s33p8688_e151p2093",
	}))

	got, err = c.GetMany(ctx, []string{"1:4:2:3", " 1:4:2:3 ", "", "2:4:2:3", "9:4:2:3"})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"1:4:2:3": "n51p5072_w000p1276",
		"2:4:2:3": "s33p8688_e151p2093",
	}, got)

	require.NoError(t, c.PutMany(ctx, map[string]string{"1:4:2:3": "n00p0000_e000p0000"}))
	got, err = c.GetMany(ctx, []string{"1:4:2:3"})
	require.NoError(t, err)
	assert.Equal(t, "n00p0000_e000p0000", got["1:4:2:3"])

	require.Error(t, c.PutMany(ctx, map[string]string{" ": "x"}))
}

func TestSqliteLabelCache(t *testing.T) {
	exerciseCache(t, newSqliteCache(t))
}

func TestRedisLabelCache(t *testing.T) {
	c, _ := newRedisCache(t, 0)
	exerciseCache(t, c)
}

func TestRedisLabelCache_TTLExpires(t *testing.T) {
	ctx := context.Background()
	c, mr := newRedisCache(t, time.Minute)

	require.NoError(t, c.PutMany(ctx, map[string]string{"1:0:2:3": "n12_e045"}))
	assert.True(t, mr.Exists("flare:label:1:0:2:3"))

	mr.FastForward(2 * time.Minute)

	got, err := c.GetMany(ctx, []string{"1:0:2:3"})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestRedisLabelCache_CorruptValue(t *testing.T) {
	ctx := context.Background()
	c, mr := newRedisCache(t, 0)

	require.NoError(t, mr.Set("flare:label:bad", "\xc1"))

	_, err := c.GetMany(ctx, []string{"bad"})
	require.Error(t, err)
}

func TestNilBackends(t *testing.T) {
	ctx := context.Background()

	_, err := NewSqliteLabelCache(nil).GetMany(ctx, []string{"a"})
	require.Error(t, err)
	_, err = NewSQLLabelCache(nil).GetMany(ctx, []string{"a"})
	require.Error(t, err)
	_, err = NewRedisLabelCache(RedisLabelCacheOptions{}).GetMany(ctx, []string{"a"})
	require.Error(t, err)
}
