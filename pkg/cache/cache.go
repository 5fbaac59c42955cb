// Package cache stores rendered artifacts keyed by string.
// Redis backs the cache when enabled; otherwise every lookup misses.
package cache

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/JaimeStill/dataset-lab/pkg/lifecycle"
)

// System defines cache operations. A miss is reported as ok == false with a nil error.
type System interface {
	Get(ctx context.Context, key string) (data []byte, ok bool, err error)
	Set(ctx context.Context, key string, data []byte) error
	Delete(ctx context.Context, keys ...string) error
	Start(lc *lifecycle.Coordinator) error
}

// New returns a redis-backed System when cfg.Enabled, otherwise a no-op System.
func New(cfg *Config, logger *slog.Logger) System {
	logger = logger.With("system", "cache")
	if !cfg.Enabled {
		return &noop{logger: logger}
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	return &redisCache{
		client: client,
		addr:   cfg.Addr,
		prefix: cfg.Prefix,
		ttl:    cfg.TTLDuration(),
		logger: logger,
	}
}

type redisCache struct {
	client *redis.Client
	addr   string
	prefix string
	ttl    time.Duration
	logger *slog.Logger
}

func (c *redisCache) Start(lc *lifecycle.Coordinator) error {
	c.logger.Info("starting cache system", "addr", c.addr)

	lc.OnStartup(func() {
		ctx, cancel := context.WithTimeout(lc.Context(), 5*time.Second)
		defer cancel()

		if err := c.client.Ping(ctx).Err(); err != nil {
			c.logger.Error("cache ping failed", "error", err)
			return
		}
		c.logger.Info("cache connection established")
	})

	lc.OnShutdown(func() {
		<-lc.Context().Done()
		if err := c.client.Close(); err != nil {
			c.logger.Error("cache close failed", "error", err)
			return
		}
		c.logger.Info("cache connection closed")
	})

	return nil
}

func (c *redisCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("cache get: %w", err)
	}
	return data, true, nil
}

func (c *redisCache) Set(ctx context.Context, key string, data []byte) error {
	if err := c.client.Set(ctx, c.prefix+key, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache set: %w", err)
	}
	return nil
}

func (c *redisCache) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}

	prefixed := make([]string, len(keys))
	for i, k := range keys {
		prefixed[i] = c.prefix + k
	}

	if err := c.client.Del(ctx, prefixed...).Err(); err != nil {
		return fmt.Errorf("cache delete: %w", err)
	}
	return nil
}

type noop struct {
	logger *slog.Logger
}

func (n *noop) Start(lc *lifecycle.Coordinator) error {
	n.logger.Info("cache disabled")
	return nil
}

func (n *noop) Get(context.Context, string) ([]byte, bool, error) { return nil, false, nil }
func (n *noop) Set(context.Context, string, []byte) error { return nil }
func (n *noop) Delete(context.Context, ...string) error { return nil }
