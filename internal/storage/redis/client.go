package storage

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const pingTimeout = 3 * time.Second

type Client struct {
	*redis.Client
}

func NewClient(addr, password string, db int) *Client {
	return &Client{
		Client: redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: password,
			DB:       db,
		}),
	}
}

// Wrap is used by tests to put a mocked client behind the same type.
func Wrap(c *redis.Client) *Client {
	return &Client{Client: c}
}

func (c *Client) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	return c.Ping(ctx).Err()
}

func (c *Client) Close() error {
	return c.Client.Close()
}
