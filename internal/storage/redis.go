package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/jwebster45206/mobkc/pkg/settings"
	"github.com/redis/go-redis/v9"
)

// RedisStore implements settings.Store with one redis hash per group
type RedisStore struct {
	client *redis.Client
	logger *slog.Logger
}

// Ensure RedisStore implements settings.Store interface
var _ settings.Store = (*RedisStore)(nil)

// NewRedisStore connects lazily to redisURL, which may be a bare
// host:port or a redis:// URL
func NewRedisStore(redisURL string, logger *slog.Logger) (*RedisStore, error) {
	opt := &redis.Options{Addr: redisURL}
	if strings.Contains(redisURL, "://") {
		parsed, err := redis.ParseURL(redisURL)
		if err != nil {
			return nil, fmt.Errorf("failed to parse redis URL: %w", err)
		}
		opt = parsed
	}

	return &RedisStore{
		client: redis.NewClient(opt),
		logger: logger,
	}, nil
}

func groupKey(group string) string {
	return "settings:" + group
}

// Health and lifecycle methods

func (r *RedisStore) Ping(ctx context.Context) error {
	if err := r.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

func (r *RedisStore) Close() error {
	if err := r.client.Close(); err != nil {
		r.logger.Error("Failed to close Redis connection", "error", err)
		return err
	}
	r.logger.Info("Redis connection closed")
	return nil
}

// Client exposes the connection so the event broadcaster can share it
func (r *RedisStore) Client() *redis.Client {
	return r.client
}

// WaitForConnection waits for Redis to become available (used during startup)
func (r *RedisStore) WaitForConnection(ctx context.Context, maxRetries int, retryDelay time.Duration) error {
	for i := 0; i < maxRetries; i++ {
		if err := r.Ping(ctx); err != nil {
			r.logger.Debug("Redis not ready yet", "error", err, "attempt", i+1)

			select {
			case <-ctx.Done():
				return fmt.Errorf("context cancelled while waiting for redis: %w", ctx.Err())
			case <-time.After(retryDelay):
				continue
			}
		}

		r.logger.Info("Redis connection established")
		return nil
	}

	return fmt.Errorf("redis did not become available after %d attempts", maxRetries)
}

// Settings operations

func (r *RedisStore) Get(ctx context.Context, group, key string) (string, bool, error) {
	val, err := r.client.HGet(ctx, groupKey(group), key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		r.logger.Error("Redis HGET failed", "group", group, "key", key, "error", err)
		return "", false, fmt.Errorf("failed to get setting %s.%s: %w", group, key, err)
	}
	return val, true, nil
}

func (r *RedisStore) Set(ctx context.Context, group, key, value string) error {
	if err := r.client.HSet(ctx, groupKey(group), key, value).Err(); err != nil {
		r.logger.Error("Redis HSET failed", "group", group, "key", key, "error", err)
		return fmt.Errorf("failed to set setting %s.%s: %w", group, key, err)
	}
	r.logger.Debug("Redis HSET successful", "group", group, "key", key)
	return nil
}

func (r *RedisStore) Unset(ctx context.Context, group, key string) error {
	if err := r.client.HDel(ctx, groupKey(group), key).Err(); err != nil {
		r.logger.Error("Redis HDEL failed", "group", group, "key", key, "error", err)
		return fmt.Errorf("failed to unset setting %s.%s: %w", group, key, err)
	}
	return nil
}

// All returns every key in a group, e.g. to list persisted counters
func (r *RedisStore) All(ctx context.Context, group string) (map[string]string, error) {
	vals, err := r.client.HGetAll(ctx, groupKey(group)).Result()
	if err != nil {
		r.logger.Error("Redis HGETALL failed", "group", group, "error", err)
		return nil, fmt.Errorf("failed to list settings for %s: %w", group, err)
	}
	return vals, nil
}
