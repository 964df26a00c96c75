package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/anjiri1684/study_platform/models"
)

type RedisRoleCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisRoleCache(rdb *redis.Client, ttl time.Duration) *RedisRoleCache {
	return &RedisRoleCache{rdb: rdb, ttl: ttl}
}

func (r *RedisRoleCache) key(email string) string { return "role:" + email }

func (r *RedisRoleCache) Get(ctx context.Context, email string) (models.Role, error) {
	v, err := r.rdb.Get(ctx, r.key(email)).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrMiss
	}
	if err != nil {
		return "", err
	}
	return models.Role(v), nil
}

func (r *RedisRoleCache) Set(ctx context.Context, email string, role models.Role) error {
	return r.rdb.Set(ctx, r.key(email), string(role), r.ttl).Err()
}

func (r *RedisRoleCache) Invalidate(ctx context.Context, email string) error {
	return r.rdb.Del(ctx, r.key(email)).Err()
}
