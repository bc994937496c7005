package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	appcatalog "github.com/secondhandshop/backend/internal/application/catalog"
	"github.com/secondhandshop/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

const pingTimeout = 5 * time.Second

// CatalogCacheFactory creates the catalog cache from configuration
type CatalogCacheFactory struct {
	redisConfig           config.RedisConfig
	logger                *zap.Logger
	allowInMemoryFallback bool
}

// CatalogCacheFactoryOption is a functional option for configuring the factory
type CatalogCacheFactoryOption func(*CatalogCacheFactory)

// WithLogger sets the logger for the factory
func WithLogger(logger *zap.Logger) CatalogCacheFactoryOption {
	return func(f *CatalogCacheFactory) {
		f.logger = logger
	}
}

// WithInMemoryFallback controls whether an unreachable Redis degrades to an
// in-process cache. Default is true.
func WithInMemoryFallback(allow bool) CatalogCacheFactoryOption {
	return func(f *CatalogCacheFactory) {
		f.allowInMemoryFallback = allow
	}
}

// NewCatalogCacheFactory creates a new factory
func NewCatalogCacheFactory(cfg config.RedisConfig, opts ...CatalogCacheFactoryOption) *CatalogCacheFactory {
	f := &CatalogCacheFactory{
		redisConfig:           cfg,
		logger:                zap.NewNop(),
		allowInMemoryFallback: true,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// CreateRedisCache connects to Redis and returns a cache on top of it
func (f *CatalogCacheFactory) CreateRedisCache(ctx context.Context) (*RedisCatalogCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     f.redisConfig.Addr(),
		Password: f.redisConfig.Password,
		DB:       f.redisConfig.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return NewRedisCatalogCache(client,
		WithTTL(f.redisConfig.CacheTTL),
		WithCacheLogger(f.logger),
	), nil
}

// CreateCache returns the configured catalog cache, or nil when caching is
// disabled. An unreachable Redis falls back to an in-memory cache unless
// the fallback is turned off.
func (f *CatalogCacheFactory) CreateCache(ctx context.Context) (appcatalog.CatalogCache, error) {
	if !f.redisConfig.Enabled {
		f.logger.Info("Catalog cache disabled")
		return nil, nil
	}

	c, err := f.CreateRedisCache(ctx)
	if err == nil {
		f.logger.Info("Using Redis catalog cache", zap.String("addr", f.redisConfig.Addr()))
		return c, nil
	}

	if !f.allowInMemoryFallback {
		return nil, fmt.Errorf("redis required for catalog cache but unavailable: %w", err)
	}

	f.logger.Warn("Redis unavailable, falling back to in-memory catalog cache",
		zap.String("addr", f.redisConfig.Addr()),
		zap.Error(err))
	return NewInMemoryCatalogCache(f.redisConfig.CacheTTL), nil
}
