package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Domenick1991/pingo/config"
	"github.com/Domenick1991/pingo/internal/domain"
	"github.com/redis/go-redis/v9"
)

type RedisCache struct {
	client     *redis.Client
	flightsTTL time.Duration
}

func NewRedisCache(cfg config.RedisConfig, flightsTTL time.Duration) *RedisCache {
	return NewRedisCacheFromClient(
		redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB}),
		flightsTTL,
	)
}

func NewRedisCacheFromClient(client *redis.Client, flightsTTL time.Duration) *RedisCache {
	return &RedisCache{client: client, flightsTTL: flightsTTL}
}

func (c *RedisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}

// GetDefaultFlights returns nil, nil on a cache miss.
func (c *RedisCache) GetDefaultFlights(ctx context.Context, limit int) ([]domain.Flight, error) {
	data, err := c.client.Get(ctx, defaultFlightsKey(limit)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var flights []domain.Flight
	if err := json.Unmarshal(data, &flights); err != nil {
		return nil, err
	}
	return flights, nil
}

func (c *RedisCache) SetDefaultFlights(ctx context.Context, limit int, flights []domain.Flight) error {
	payload, err := json.Marshal(flights)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, defaultFlightsKey(limit), payload, c.flightsTTL).Err()
}

// RevokeToken marks a session token as signed out until it would have expired anyway.
func (c *RedisCache) RevokeToken(ctx context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	return c.client.Set(ctx, revokedTokenKey(tokenID), "1", ttl).Err()
}

func (c *RedisCache) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	n, err := c.client.Exists(ctx, revokedTokenKey(tokenID)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// AcquireActionLock reports false when another request already holds key.
func (c *RedisCache) AcquireActionLock(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	return c.client.SetNX(ctx, actionLockKey(key), "locked", ttl).Result()
}

func (c *RedisCache) ReleaseActionLock(ctx context.Context, key string) error {
	return c.client.Del(ctx, actionLockKey(key)).Err()
}

func defaultFlightsKey(limit int) string {
	return fmt.Sprintf("cache:flights:default:%d", limit)
}

func revokedTokenKey(tokenID string) string {
	return "session:revoked:" + tokenID
}

func actionLockKey(key string) string {
	return "lock:action:" + key
}
