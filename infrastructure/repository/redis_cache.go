package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisCachePrefix = "meta_ads_cache"

type redisCacheRepository struct {
	client *redis.Client
}

// NewRedisCacheRepository usa o TTL nativo do Redis; o prefixo por usuário
// mantém as chaves de usuários diferentes separadas.
func NewRedisCacheRepository(client *redis.Client) CacheRepository {
	return &redisCacheRepository{client: client}
}

func redisKey(userID int, key string) string {
	return fmt.Sprintf("%s:%d:%s", redisCachePrefix, userID, key)
}

func (r *redisCacheRepository) Get(ctx context.Context, userID int, key string) ([]byte, bool, error) {
	data, err := r.client.Get(ctx, redisKey(userID, key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("cache get: redis: %w", err)
	}

	return data, true, nil
}

func (r *redisCacheRepository) Set(ctx context.Context, userID int, key string, data []byte, ttl time.Duration) error {
	if err := r.client.Set(ctx, redisKey(userID, key), data, ttl).Err(); err != nil {
		return fmt.Errorf("cache set: redis: %w", err)
	}

	return nil
}

func (r *redisCacheRepository) DeleteByUser(ctx context.Context, userID int) (int64, error) {
	pattern := fmt.Sprintf("%s:%d:*", redisCachePrefix, userID)

	var deleted int64
	iter := r.client.Scan(ctx, 0, pattern, 100).Iterator()
	for iter.Next(ctx) {
		n, err := r.client.Del(ctx, iter.Val()).Result()
		if err != nil {
			return deleted, fmt.Errorf("cache delete by user: redis: %w", err)
		}
		deleted += n
	}

	if err := iter.Err(); err != nil {
		return deleted, fmt.Errorf("cache delete by user: redis scan: %w", err)
	}

	return deleted, nil
}

// DeleteExpired não tem trabalho a fazer: o Redis expira as chaves sozinho
func (r *redisCacheRepository) DeleteExpired(context.Context) (int64, error) {
	return 0, nil
}
