package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultFailureWindow = time.Hour

// RedisClient keeps per client IP login failure counters.
type RedisClient struct {
	client *redis.Client
	window time.Duration
}

func NewRedisClient(addr, password string, db int, window time.Duration) (*RedisClient, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	// Test the connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return NewRedisClientFromClient(client, window), nil
}

// NewRedisClientFromClient wraps an already configured client. A window <= 0 falls back to one hour.
func NewRedisClientFromClient(client *redis.Client, window time.Duration) *RedisClient {
	if window <= 0 {
		window = defaultFailureWindow
	}
	return &RedisClient{client: client, window: window}
}

func loginFailuresKey(ip string) string {
	return fmt.Sprintf("login_failures:%s", ip)
}

func (rc *RedisClient) IncrementLoginFailures(ctx context.Context, ip string) (int64, error) {
	key := loginFailuresKey(ip)
	count, err := rc.client.Incr(ctx, key).Result()
	if err != nil {
		return 0, err
	}

	// The window starts at the first failure
	if count == 1 {
		if err = rc.client.Expire(ctx, key, rc.window).Err(); err != nil {
			return count, err
		}
	}
	return count, nil
}

func (rc *RedisClient) GetLoginFailures(ctx context.Context, ip string) (int64, error) {
	count, err := rc.client.Get(ctx, loginFailuresKey(ip)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return count, err
}

func (rc *RedisClient) ResetLoginFailures(ctx context.Context, ip string) error {
	return rc.client.Del(ctx, loginFailuresKey(ip)).Err()
}

func (rc *RedisClient) Ping(ctx context.Context) error {
	return rc.client.Ping(ctx).Err()
}

func (rc *RedisClient) Close() error {
	return rc.client.Close()
}
