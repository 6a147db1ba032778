package adapter

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-api-gateway/internal/config"
	"github.com/MKhiriev/go-api-gateway/internal/logger"
	"github.com/redis/go-redis/v9"
)

type redisCache struct {
	client *redis.Client

	logger *logger.Logger
}

// NewRedisCache constructs a [Cache] backed by a native Redis connection.
// cfg.Token becomes the password when cfg.URL carries none, and
// cfg.RequestTimeout bounds dialing, reads and writes.
func NewRedisCache(cfg config.Cache, logger *logger.Logger) (Cache, error) {
	opts, err := redisOptions(cfg)
	if err != nil {
		return nil, err
	}

	return &redisCache{client: redis.NewClient(opts), logger: logger}, nil
}

func redisOptions(cfg config.Cache) (*redis.Options, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}

	if opts.Password == "" {
		opts.Password = cfg.Token
	}
	if cfg.RequestTimeout > 0 {
		opts.DialTimeout = cfg.RequestTimeout
		opts.ReadTimeout = cfg.RequestTimeout
		opts.WriteTimeout = cfg.RequestTimeout
	}

	return opts, nil
}

func (c *redisCache) Get(ctx context.Context, key string) (string, error) {
	value, err := c.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", fmt.Errorf("%w: %s", ErrCacheMiss, key)
	}
	if err != nil {
		return "", mapRedisError("GET", err)
	}
	return value, nil
}

func (c *redisCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if ttl < 0 {
		ttl = 0
	}
	if err := c.client.Set(ctx, key, value, ttl).Err(); err != nil {
		return mapRedisError("SET", err)
	}
	return nil
}

func (c *redisCache) Expire(ctx context.Context, key string, ttl time.Duration) error {
	updated, err := c.client.Expire(ctx, key, time.Duration(ttlSeconds(ttl))*time.Second).Result()
	if err != nil {
		return mapRedisError("EXPIRE", err)
	}
	if !updated {
		return fmt.Errorf("%w: %s", ErrCacheMiss, key)
	}
	return nil
}

func (c *redisCache) Delete(ctx context.Context, key string) error {
	if err := c.client.Del(ctx, key).Err(); err != nil {
		return mapRedisError("DEL", err)
	}
	return nil
}

func (c *redisCache) Ping(ctx context.Context) error {
	if err := c.client.Ping(ctx).Err(); err != nil {
		return mapRedisError("PING", err)
	}
	return nil
}

func (c *redisCache) Close() error {
	return c.client.Close()
}

// mapRedisError separates server-side command errors from connectivity
// failures.
func mapRedisError(command string, err error) error {
	var redisErr redis.Error
	if errors.As(err, &redisErr) {
		return fmt.Errorf("%w: %s: %w", ErrCacheCommand, command, err)
	}
	return fmt.Errorf("%w: %s: %w", ErrCacheUnavailable, command, err)
}
