package redis

import (
	"context"

	"github.com/lumenmarkets/matching-core/pkg/errors"
	"github.com/lumenmarkets/matching-core/pkg/logger"
	"github.com/redis/go-redis/v9"
)

type client struct {
	logger  *logger.Logger
	config  *Config
	cmdable redis.Cmdable
}

// NewClient creates a new Redis client with the provided logger and configuration.
func NewClient(logger *logger.Logger, config *Config) Client {
	return &client{
		logger: logger,
		config: config,
	}
}

func (c *client) Connect(ctx context.Context) error {
	var cmdable redis.Cmdable
	if c.config == nil {
		return errors.NewErrorDetails("Redis config is nil", string(errors.RedisConnectionError), "connect")
	}

	if len(c.config.Addrs) == 0 {
		return errors.NewErrorDetails("Redis addresses are empty", string(errors.RedisConnectionError), "connect")
	}

	if c.config.Mode != Standalone && c.config.Mode != Cluster {
		return errors.NewErrorDetails("Invalid Redis mode", string(errors.RedisConnectionError), "connect")
	}

	switch c.config.Mode {
	case Standalone:
		cmdable = redis.NewClient(&redis.Options{
			Addr:            c.config.Addrs[0],
			Username:        c.config.Username,
			Password:        c.config.Password,
			DB:              c.config.DB,
			MaxRetries:      c.config.MaxRetries,
			MinRetryBackoff: c.config.MinRetryBackoff,
			MaxRetryBackoff: c.config.MaxRetryBackoff,
			DialTimeout:     c.config.ConnectTimeout,
			ReadTimeout:     c.config.ConnectTimeout,
			WriteTimeout:    c.config.ConnectTimeout,
			PoolSize:        c.config.PoolSize,
			MinIdleConns:    c.config.MinIdleConns,
			MaxIdleConns:    c.config.MaxIdleConns,
			ConnMaxLifetime: c.config.ConnMaxLifetime,
			ConnMaxIdleTime: c.config.ConnMaxIdleTime,
			PoolTimeout:     c.config.PoolTimeout,
		})
	case Cluster:
		cmdable = redis.NewClusterClient(&redis.ClusterOptions{
			Addrs:           c.config.Addrs,
			Username:        c.config.Username,
			Password:        c.config.Password,
			MaxRetries:      c.config.MaxRetries,
			MinRetryBackoff: c.config.MinRetryBackoff,
			MaxRetryBackoff: c.config.MaxRetryBackoff,
			DialTimeout:     c.config.ConnectTimeout,
			ReadTimeout:     c.config.ConnectTimeout,
			WriteTimeout:    c.config.ConnectTimeout,
			PoolSize:        c.config.PoolSize,
			MinIdleConns:    c.config.MinIdleConns,
			MaxIdleConns:    c.config.MaxIdleConns,
			ConnMaxLifetime: c.config.ConnMaxLifetime,
			ConnMaxIdleTime: c.config.ConnMaxIdleTime,
			PoolTimeout:     c.config.PoolTimeout,
		})
	}

	c.cmdable = cmdable

	return c.cmdable.Ping(ctx).Err()
}

func (c *client) Disconnect(ctx context.Context) error {
	switch c.config.Mode {
	case Standalone:
		return c.cmdable.(*redis.Client).Close()
	case Cluster:
		return c.cmdable.(*redis.ClusterClient).Close()
	default:
		return errors.NewErrorDetails("Unsupported Redis mode for disconnect", string(errors.RedisConnectionError), "disconnect")
	}
}

func (c *client) Ping(ctx context.Context) error {
	if err := c.cmdable.Ping(ctx).Err(); err != nil {
		return errors.NewErrorDetails("Failed to ping Redis", string(errors.RedisConnectionError), "ping")
	}
	return nil
}

func (c *client) Publish(ctx context.Context, channel string, message any) (int64, error) {
	published, err := c.cmdable.Publish(ctx, channel, message).Result()
	if err != nil {
		return 0, errors.NewErrorDetails("Failed to publish message to Redis", string(errors.RedisPublishError), "publish")
	}
	return published, nil
}
