package cache

import (
	"context"
	"sync"
	"time"

	appcatalog "github.com/secondhandshop/backend/internal/application/catalog"
)

// InMemoryCatalogCache implements CatalogCache inside the process.
// It backs single-instance deployments when Redis is unreachable.
type InMemoryCatalogCache struct {
	mu         sync.RWMutex
	categories *cacheEntry[[]appcatalog.CategoryDTO]
	products   map[string]*cacheEntry[[]appcatalog.ProductDTO]
	ttl        time.Duration
	now        func() time.Time
}

type cacheEntry[T any] struct {
	value     T
	expiresAt time.Time
}

func (e *cacheEntry[T]) isExpired(now time.Time) bool {
	return !now.Before(e.expiresAt)
}

// NewInMemoryCatalogCache creates an empty cache. A non-positive ttl uses DefaultTTL.
func NewInMemoryCatalogCache(ttl time.Duration) *InMemoryCatalogCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &InMemoryCatalogCache{
		products: make(map[string]*cacheEntry[[]appcatalog.ProductDTO]),
		ttl:      ttl,
		now:      time.Now,
	}
}

// GetCategories returns the cached category list
func (c *InMemoryCatalogCache) GetCategories(_ context.Context) ([]appcatalog.CategoryDTO, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.categories == nil || c.categories.isExpired(c.now()) {
		return nil, false, nil
	}
	return cloneSlice(c.categories.value), true, nil
}

// SetCategories caches the category list
func (c *InMemoryCatalogCache) SetCategories(_ context.Context, categories []appcatalog.CategoryDTO) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.categories = &cacheEntry[[]appcatalog.CategoryDTO]{
		value:     cloneSlice(categories),
		expiresAt: c.now().Add(c.ttl),
	}
	return nil
}

// GetProducts returns a cached product list
func (c *InMemoryCatalogCache) GetProducts(_ context.Context, key string) ([]appcatalog.ProductDTO, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	entry, ok := c.products[key]
	if !ok || entry.isExpired(c.now()) {
		return nil, false, nil
	}
	return cloneSlice(entry.value), true, nil
}

// SetProducts caches a product list
func (c *InMemoryCatalogCache) SetProducts(_ context.Context, key string, products []appcatalog.ProductDTO) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.products[key] = &cacheEntry[[]appcatalog.ProductDTO]{
		value:     cloneSlice(products),
		expiresAt: c.now().Add(c.ttl),
	}
	return nil
}

// Invalidate drops every entry
func (c *InMemoryCatalogCache) Invalidate(_ context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.categories = nil
	c.products = make(map[string]*cacheEntry[[]appcatalog.ProductDTO])
	return nil
}

func cloneSlice[T any](in []T) []T {
	if in == nil {
		return nil
	}
	out := make([]T, len(in))
	copy(out, in)
	return out
}

var _ appcatalog.CatalogCache = (*InMemoryCatalogCache)(nil)
