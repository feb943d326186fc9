package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	backend "github.com/redis/go-redis/v9"

	"github.com/aretw0/timescript/pkg/domain"
)

// DefaultPrefix namespaces cache keys.
const DefaultPrefix = "timescript:compilation:"

// Cache implements ports.DocumentCache using Redis.
type Cache struct {
	client *backend.Client
	prefix string
	ttl    time.Duration
}

type Option func(*Cache)

// WithTTL sets the expiration for cached compilations.
func WithTTL(ttl time.Duration) Option {
	return func(c *Cache) {
		c.ttl = ttl
	}
}

// WithPrefix sets the key prefix.
func WithPrefix(prefix string) Option {
	return func(c *Cache) {
		c.prefix = prefix
	}
}

// New creates a Redis cache connected to address.
func New(address, password string, db int, opts ...Option) *Cache {
	rdb := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewFromClient(rdb, opts...)
}

// NewFromClient creates a Redis cache from an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Cache {
	cache := &Cache{
		client: client,
		prefix: DefaultPrefix,
		ttl:    0, // No expiration by default
	}

	for _, opt := range opts {
		opt(cache)
	}

	return cache
}

func (c *Cache) key(k string) string {
	return c.prefix + k
}

// Get retrieves a compilation from Redis.
func (c *Cache) Get(ctx context.Context, key string) (*domain.Compilation, error) {
	val, err := c.client.Get(ctx, c.key(key)).Bytes()
	if err != nil {
		if errors.Is(err, backend.Nil) {
			return nil, domain.ErrCacheMiss
		}
		return nil, fmt.Errorf("failed to get from redis: %w", err)
	}

	var out domain.Compilation
	if err := json.Unmarshal(val, &out); err != nil {
		return nil, fmt.Errorf("failed to unmarshal compilation: %w", err)
	}
	return &out, nil
}

// Put stores a compilation with the configured TTL.
func (c *Cache) Put(ctx context.Context, key string, comp *domain.Compilation) error {
	data, err := json.Marshal(comp)
	if err != nil {
		return fmt.Errorf("failed to marshal compilation: %w", err)
	}
	if err := c.client.Set(ctx, c.key(key), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save to redis: %w", err)
	}
	return nil
}

// Delete removes a compilation.
func (c *Cache) Delete(ctx context.Context, key string) error {
	if err := c.client.Del(ctx, c.key(key)).Err(); err != nil {
		return fmt.Errorf("failed to delete from redis: %w", err)
	}
	return nil
}

// Ping checks the connection.
func (c *Cache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Close closes the redis client.
func (c *Cache) Close() error {
	return c.client.Close()
}
