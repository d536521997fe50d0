package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/tour-microservice/internal/repository/cache"
)

func getTestRedis(t *testing.T) *cache.Redis {
	client := redis.NewClient(&redis.Options{
		Addr: "localhost:6379",
		DB:   2,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		t.Skipf("Redis not available for integration tests: %v", err)
	}
	require.NoError(t, client.FlushDB(ctx).Err())
	t.Cleanup(func() { client.Close() })

	return cache.NewRedisFromClient(client, zap.NewNop())
}

func TestCacheRepository_GetSetDelete(t *testing.T) {
	repo := cache.NewCacheRepository(getTestRedis(t))
	ctx := context.Background()

	val, err := repo.Get(ctx, "tour:slug:riviera-maya")
	require.NoError(t, err)
	assert.Nil(t, val, "miss returns nil without error")

	require.NoError(t, repo.Set(ctx, "tour:slug:riviera-maya", []byte(`{"id":1}`), time.Minute))

	val, err = repo.Get(ctx, "tour:slug:riviera-maya")
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":1}`, string(val))

	exists, err := repo.Exists(ctx, "tour:slug:riviera-maya")
	require.NoError(t, err)
	assert.True(t, exists)

	require.NoError(t, repo.Delete(ctx, "tour:slug:riviera-maya"))
	exists, err = repo.Exists(ctx, "tour:slug:riviera-maya")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestCacheRepository_DeleteByPrefix(t *testing.T) {
	repo := cache.NewCacheRepository(getTestRedis(t))
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, "tours:list:a", []byte("1"), time.Minute))
	require.NoError(t, repo.Set(ctx, "tours:list:b", []byte("2"), time.Minute))
	require.NoError(t, repo.Set(ctx, "tour:id:7", []byte("3"), time.Minute))

	require.NoError(t, repo.DeleteByPrefix(ctx, "tours:list:"))

	for _, key := range []string{"tours:list:a", "tours:list:b"} {
		exists, err := repo.Exists(ctx, key)
		require.NoError(t, err)
		assert.False(t, exists, key)
	}

	exists, err := repo.Exists(ctx, "tour:id:7")
	require.NoError(t, err)
	assert.True(t, exists)
}
