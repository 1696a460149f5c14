package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedisRepository(t *testing.T) (CacheRepository, *miniredis.Miniredis) {
	t.Helper()

	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewRedisCacheRepository(client), server
}

func TestRedisCacheRepository_SetGetExpire(t *testing.T) {
	ctx := context.Background()
	repo, server := newTestRedisRepository(t)

	require.NoError(t, repo.Set(ctx, 1, "insights_ad_last_30d_{}", []byte(`[]`), 30*time.Minute))

	data, found, err := repo.Get(ctx, 1, "insights_ad_last_30d_{}")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, `[]`, string(data))

	_, found, err = repo.Get(ctx, 2, "insights_ad_last_30d_{}")
	require.NoError(t, err)
	assert.False(t, found)

	server.FastForward(31 * time.Minute)

	_, found, err = repo.Get(ctx, 1, "insights_ad_last_30d_{}")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestRedisCacheRepository_DeleteByUser(t *testing.T) {
	ctx := context.Background()
	repo, server := newTestRedisRepository(t)

	require.NoError(t, repo.Set(ctx, 1, "a", []byte(`1`), time.Hour))
	require.NoError(t, repo.Set(ctx, 1, "b", []byte(`2`), time.Hour))
	require.NoError(t, repo.Set(ctx, 10, "a", []byte(`3`), time.Hour))

	deleted, err := repo.DeleteByUser(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(2), deleted)

	assert.True(t, server.Exists("meta_ads_cache:10:a"))

	deleted, err = repo.DeleteExpired(ctx)
	require.NoError(t, err)
	assert.Zero(t, deleted)
}

func TestRedisCacheRepository_ErrorOnClosedServer(t *testing.T) {
	ctx := context.Background()
	repo, server := newTestRedisRepository(t)
	server.Close()

	_, found, err := repo.Get(ctx, 1, "a")
	assert.Error(t, err)
	assert.False(t, found)
}
