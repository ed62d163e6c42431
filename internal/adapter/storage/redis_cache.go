package storage

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	availabilityKeyPrefix = "availability:"
	availabilityTTL       = 30 * time.Second
)

type RedisAvailabilityCache struct {
	client *redis.Client
}

func NewRedisAvailabilityCache(client *redis.Client) *RedisAvailabilityCache {
	return &RedisAvailabilityCache{client: client}
}

func (r *RedisAvailabilityCache) GetAvailability(ctx context.Context, productID string) (int, bool, error) {
	key := availabilityKeyPrefix + productID

	val, err := r.client.Get(ctx, key).Int()
	if errors.Is(err, redis.Nil) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}

	return val, true, nil
}

func (r *RedisAvailabilityCache) SetAvailability(ctx context.Context, productID string, quantity int) error {
	key := availabilityKeyPrefix + productID
	return r.client.Set(ctx, key, quantity, availabilityTTL).Err()
}

func (r *RedisAvailabilityCache) InvalidateAvailability(ctx context.Context, productID string) error {
	key := availabilityKeyPrefix + productID
	return r.client.Del(ctx, key).Err()
}
