package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Client wraps redis.Client but fails safe: an unreachable Redis behaves
// like an empty cache instead of failing the caller.
type Client struct {
	client *redis.Client
}

func New(addr, password string, db int) *Client {
	return NewWithOptions(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
}

func NewWithOptions(opts *redis.Options) *Client {
	return &Client{client: redis.NewClient(opts)}
}

// Set stores value with ttl, ignoring redis errors.
func (c *Client) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if c == nil || c.client == nil {
		return nil
	}
	_ = c.client.Set(ctx, key, value, ttl).Err()
	return nil
}

// Exists reports whether key is present. Errors count as absent.
func (c *Client) Exists(ctx context.Context, key string) bool {
	if c == nil || c.client == nil {
		return false
	}
	n, err := c.client.Exists(ctx, key).Result()
	return err == nil && n > 0
}

func (c *Client) Ping(ctx context.Context) error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Ping(ctx).Err()
}

func (c *Client) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}
