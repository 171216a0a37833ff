package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/Domenick1991/carbooking/config"
	"github.com/Domenick1991/carbooking/internal/domain"
	"github.com/redis/go-redis/v9"
)

type RedisCache struct {
	client    *redis.Client
	recentTTL time.Duration
}

func NewRedisCache(cfg config.RedisConfig, recentTTL time.Duration) *RedisCache {
	return &RedisCache{
		client:    redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB}),
		recentTTL: recentTTL,
	}
}

func (c *RedisCache) GetRecentCars(ctx context.Context) ([]domain.Car, error) {
	data, err := c.client.Get(ctx, recentCarsKey()).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	var cars []domain.Car
	if err := json.Unmarshal(data, &cars); err != nil {
		return nil, err
	}
	return cars, nil
}

func (c *RedisCache) SetRecentCars(ctx context.Context, cars []domain.Car) error {
	payload, err := json.Marshal(cars)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, recentCarsKey(), payload, c.recentTTL).Err()
}

// InvalidateRecentCars drops the cached page after any car write.
func (c *RedisCache) InvalidateRecentCars(ctx context.Context) error {
	return c.client.Del(ctx, recentCarsKey()).Err()
}

func recentCarsKey() string {
	return "cache:recent_cars"
}
