// Package cache holds read caches for the public catalog.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	appcatalog "github.com/secondhandshop/backend/internal/application/catalog"
	"go.uber.org/zap"
)

const (
	// DefaultKeyPrefix namespaces every catalog entry
	DefaultKeyPrefix = "catalog:"
	// DefaultTTL applies when no TTL is configured
	DefaultTTL = 5 * time.Minute

	scanBatchSize = 100
)

// RedisCatalogCache implements CatalogCache on Redis.
// Values are JSON encoded and expire after ttl.
type RedisCatalogCache struct {
	client    redis.UniversalClient
	keyPrefix string
	ttl       time.Duration
	logger    *zap.Logger
}

// RedisCatalogCacheOption configures a RedisCatalogCache
type RedisCatalogCacheOption func(*RedisCatalogCache)

// WithKeyPrefix overrides the "catalog:" key prefix
func WithKeyPrefix(prefix string) RedisCatalogCacheOption {
	return func(c *RedisCatalogCache) {
		if prefix != "" {
			c.keyPrefix = prefix
		}
	}
}

// WithTTL sets the expiry of cached lists
func WithTTL(ttl time.Duration) RedisCatalogCacheOption {
	return func(c *RedisCatalogCache) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

// WithCacheLogger sets the logger
func WithCacheLogger(logger *zap.Logger) RedisCatalogCacheOption {
	return func(c *RedisCatalogCache) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewRedisCatalogCache wraps an existing Redis client
func NewRedisCatalogCache(client redis.UniversalClient, opts ...RedisCatalogCacheOption) *RedisCatalogCache {
	c := &RedisCatalogCache{
		client:    client,
		keyPrefix: DefaultKeyPrefix,
		ttl:       DefaultTTL,
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// CategoriesKey is the key of the active category list
func (c *RedisCatalogCache) CategoriesKey() string {
	return c.keyPrefix + "categories"
}

// ProductsKey is the key of a public product list. key is a category ID or "all".
func (c *RedisCatalogCache) ProductsKey(key string) string {
	return c.keyPrefix + "products:" + key
}

// GetCategories returns the cached category list
func (c *RedisCatalogCache) GetCategories(ctx context.Context) ([]appcatalog.CategoryDTO, bool, error) {
	var out []appcatalog.CategoryDTO
	ok, err := c.get(ctx, c.CategoriesKey(), &out)
	return out, ok, err
}

// SetCategories caches the category list
func (c *RedisCatalogCache) SetCategories(ctx context.Context, categories []appcatalog.CategoryDTO) error {
	return c.set(ctx, c.CategoriesKey(), categories)
}

// GetProducts returns a cached product list
func (c *RedisCatalogCache) GetProducts(ctx context.Context, key string) ([]appcatalog.ProductDTO, bool, error) {
	var out []appcatalog.ProductDTO
	ok, err := c.get(ctx, c.ProductsKey(key), &out)
	return out, ok, err
}

// SetProducts caches a product list
func (c *RedisCatalogCache) SetProducts(ctx context.Context, key string, products []appcatalog.ProductDTO) error {
	return c.set(ctx, c.ProductsKey(key), products)
}

// Invalidate drops every catalog entry
func (c *RedisCatalogCache) Invalidate(ctx context.Context) error {
	var (
		cursor  uint64
		deleted int64
	)
	for {
		keys, next, err := c.client.Scan(ctx, cursor, c.keyPrefix+"*", scanBatchSize).Result()
		if err != nil {
			return fmt.Errorf("failed to scan catalog cache keys: %w", err)
		}
		if len(keys) > 0 {
			n, err := c.client.Del(ctx, keys...).Result()
			if err != nil {
				return fmt.Errorf("failed to delete catalog cache keys: %w", err)
			}
			deleted += n
		}
		cursor = next
		if cursor == 0 {
			break
		}
	}
	c.logger.Debug("Catalog cache invalidated", zap.Int64("deleted_keys", deleted))
	return nil
}

// Ping checks the Redis connection
func (c *RedisCatalogCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Close closes the Redis client
func (c *RedisCatalogCache) Close() error {
	return c.client.Close()
}

func (c *RedisCatalogCache) get(ctx context.Context, key string, dest any) (bool, error) {
	raw, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read catalog cache key %s: %w", key, err)
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		// A corrupt entry is treated as a miss and dropped.
		c.logger.Warn("Discarding undecodable catalog cache entry", zap.String("key", key), zap.Error(err))
		_ = c.client.Del(ctx, key).Err()
		return false, nil
	}
	return true, nil
}

func (c *RedisCatalogCache) set(ctx context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode catalog cache entry: %w", err)
	}
	if err := c.client.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write catalog cache key %s: %w", key, err)
	}
	return nil
}

var _ appcatalog.CatalogCache = (*RedisCatalogCache)(nil)
