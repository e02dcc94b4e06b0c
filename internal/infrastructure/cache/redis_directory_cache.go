package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rentops/backend/internal/domain/org"
	"github.com/rentops/backend/internal/domain/shared"
	"github.com/rentops/backend/internal/infrastructure/config"
)

const directoryKeyPrefix = "directory:slug:"

// RedisDirectoryCache caches slug to organization lookups in Redis so
// tenant resolution does not hit the database on every request.
type RedisDirectoryCache struct {
	client    *redis.Client
	keyPrefix string
}

// NewRedisDirectoryCache creates a cache with its own Redis client
func NewRedisDirectoryCache(cfg config.RedisConfig) (*RedisDirectoryCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisDirectoryCache{
		client:    client,
		keyPrefix: directoryKeyPrefix,
	}, nil
}

// NewRedisDirectoryCacheWithClient creates a cache with an existing client.
// Useful for testing or when sharing a client across components.
func NewRedisDirectoryCacheWithClient(client *redis.Client) *RedisDirectoryCache {
	return &RedisDirectoryCache{
		client:    client,
		keyPrefix: directoryKeyPrefix,
	}
}

// Get returns the cached organization for a slug, or shared.ErrNotFound
// on a cache miss
func (c *RedisDirectoryCache) Get(ctx context.Context, slug string) (*org.Organization, error) {
	payload, err := c.client.Get(ctx, c.keyPrefix+slug).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, shared.ErrNotFound
		}
		return nil, fmt.Errorf("failed to read directory entry: %w", err)
	}

	var organization org.Organization
	if err := json.Unmarshal(payload, &organization); err != nil {
		return nil, fmt.Errorf("failed to decode directory entry: %w", err)
	}
	return &organization, nil
}

// Set stores an organization under its slug with the given TTL
func (c *RedisDirectoryCache) Set(ctx context.Context, slug string, organization *org.Organization, ttl time.Duration) error {
	payload, err := json.Marshal(organization)
	if err != nil {
		return fmt.Errorf("failed to encode directory entry: %w", err)
	}
	if err := c.client.Set(ctx, c.keyPrefix+slug, payload, ttl).Err(); err != nil {
		return fmt.Errorf("failed to write directory entry: %w", err)
	}
	return nil
}

// Delete evicts the cached entry for a slug
func (c *RedisDirectoryCache) Delete(ctx context.Context, slug string) error {
	if err := c.client.Del(ctx, c.keyPrefix+slug).Err(); err != nil {
		return fmt.Errorf("failed to evict directory entry: %w", err)
	}
	return nil
}

// Close closes the Redis client
func (c *RedisDirectoryCache) Close() error {
	return c.client.Close()
}
