// Package redis wraps the go-redis client behind the view cache and the
// health endpoint. Construction is optional: an empty URL means the registry
// runs without a cache.
package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"devdeck/internal/platform/config"
)

// Pool defaults applied when the config leaves a setting zero. Sized for the
// cache's small read-mostly workload, not for a general-purpose client.
const (
	defaultPoolSize     = 10
	defaultMinIdleConns = 2
	defaultDialTimeout  = 5 * time.Second
	defaultReadTimeout  = 3 * time.Second
	defaultWriteTimeout = 3 * time.Second
)

// Client wraps the go-redis client with health checking capabilities.
type Client struct {
	*redis.Client
}

// New creates a Redis client from the provided configuration, pinging once so
// a misconfigured cache fails at startup rather than on the first read.
// Returns nil when no URL is configured.
func New(cfg config.RedisConfig) (*Client, error) {
	if cfg.URL == "" {
		return nil, nil
	}

	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse redis URL: %w", err)
	}

	opts.PoolSize = orDefault(cfg.PoolSize, defaultPoolSize)
	opts.MinIdleConns = orDefault(cfg.MinIdleConns, defaultMinIdleConns)
	opts.DialTimeout = orDefaultDuration(cfg.DialTimeout, defaultDialTimeout)
	opts.ReadTimeout = orDefaultDuration(cfg.ReadTimeout, defaultReadTimeout)
	opts.WriteTimeout = orDefaultDuration(cfg.WriteTimeout, defaultWriteTimeout)

	client := redis.NewClient(opts)

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return &Client{Client: client}, nil
}

// Health checks if the Redis connection is healthy.
func (c *Client) Health(ctx context.Context) error {
	return c.Ping(ctx).Err()
}

// Close closes the Redis connection.
func (c *Client) Close() error {
	return c.Client.Close()
}

func orDefault(v, def int) int {
	if v > 0 {
		return v
	}
	return def
}

func orDefaultDuration(v, def time.Duration) time.Duration {
	if v > 0 {
		return v
	}
	return def
}
