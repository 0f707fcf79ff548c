package reporting

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func testCache(t *testing.T) (*Cache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewCache(client, time.Minute), mr
}

func TestFetchJSONPopulatesAndHits(t *testing.T) {
	cache, mr := testCache(t)
	ctx := context.Background()

	calls := 0
	loader := func(context.Context) (any, error) {
		calls++
		return map[string]int{"total": 7}, nil
	}

	var first map[string]int
	require.NoError(t, cache.FetchJSON(ctx, "reports:test", &first, loader))
	require.Equal(t, 7, first["total"])
	require.Equal(t, 1, calls)
	require.True(t, mr.Exists("reports:test"))

	var second map[string]int
	require.NoError(t, cache.FetchJSON(ctx, "reports:test", &second, loader))
	require.Equal(t, 7, second["total"])
	require.Equal(t, 1, calls, "second fetch must be served from cache")
}

func TestFetchJSONExpiry(t *testing.T) {
	cache, mr := testCache(t)
	ctx := context.Background()

	calls := 0
	loader := func(context.Context) (any, error) {
		calls++
		return calls, nil
	}

	var v int
	require.NoError(t, cache.FetchJSON(ctx, "reports:ttl", &v, loader))
	require.Equal(t, 1, v)

	mr.FastForward(2 * time.Minute)

	require.NoError(t, cache.FetchJSON(ctx, "reports:ttl", &v, loader))
	require.Equal(t, 2, v)
}

func TestFetchJSONNilCacheDegradesToLoader(t *testing.T) {
	var cache *Cache

	var v int
	err := cache.FetchJSON(context.Background(), "unused", &v, func(context.Context) (any, error) {
		return 42, nil
	})
	require.NoError(t, err)
	require.Equal(t, 42, v)
}
