package redis

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/lk2023060901/portfolio-chat/internal/pkg/logger"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Client wraps a go-redis universal client
type Client struct {
	config *Config
	logger *logger.Logger
	client redis.UniversalClient
	closed atomic.Bool
}

// New creates the client and pings it once
func New(cfg *Config, log *logger.Logger) (*Client, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = logger.L()
	}

	client := &Client{
		config: cfg,
		logger: log.Named("redis"),
		client: redis.NewUniversalClient(&redis.UniversalOptions{
			Addrs:        cfg.Addrs,
			MasterName:   cfg.MasterName,
			Username:     cfg.Username,
			Password:     cfg.Password,
			DB:           cfg.DB,
			PoolSize:     cfg.PoolSize,
			DialTimeout:  cfg.DialTimeout,
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
		}),
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	client.logger.Info("redis client initialized successfully",
		zap.Strings("addrs", cfg.Addrs),
		zap.String("master_name", cfg.MasterName),
	)

	return client, nil
}

// Ping checks the connection
func (c *Client) Ping(ctx context.Context) error {
	if c.closed.Load() {
		return ErrClosed
	}
	return c.client.Ping(ctx).Err()
}

// Eval runs a Lua script
func (c *Client) Eval(ctx context.Context, script string, keys []string, args ...interface{}) (interface{}, error) {
	if c.closed.Load() {
		return nil, ErrClosed
	}
	result, err := c.client.Eval(ctx, script, keys, args...).Result()
	if err != nil {
		c.logger.Error("redis eval failed",
			zap.Strings("keys", keys),
			zap.Error(err),
		)
	}
	return result, err
}

// Close closes the connection pool; calling it twice is a no-op
func (c *Client) Close() error {
	if !c.closed.CompareAndSwap(false, true) {
		return nil
	}
	c.logger.Info("closing redis client")
	return c.client.Close()
}
