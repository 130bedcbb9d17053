package redis

import (
	"context"
)

// Client defines the interface for a Redis client.
type Client interface {
	Connect(ctx context.Context) error
	Disconnect(ctx context.Context) error
	Ping(ctx context.Context) error

	Publish(ctx context.Context, channel string, message any) (int64, error)
}
