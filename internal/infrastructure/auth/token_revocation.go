package auth

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// TokenRevocationList invalidates access tokens before they expire (logout)
type TokenRevocationList interface {
	// Revoke marks a token's JTI as revoked for ttl
	Revoke(ctx context.Context, jti string, ttl time.Duration) error
	// IsRevoked checks whether a token's JTI was revoked
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

// RedisTokenRevocationList implements TokenRevocationList using Redis
type RedisTokenRevocationList struct {
	client    redis.UniversalClient
	keyPrefix string
}

// NewRedisTokenRevocationList creates a revocation list on an existing Redis client
func NewRedisTokenRevocationList(client redis.UniversalClient) *RedisTokenRevocationList {
	return &RedisTokenRevocationList{
		client:    client,
		keyPrefix: "auth:revoked:",
	}
}

// Revoke stores the JTI with a TTL matching the token's remaining lifetime
func (l *RedisTokenRevocationList) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	if err := l.client.Set(ctx, l.keyPrefix+jti, "1", ttl).Err(); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	return nil
}

// IsRevoked checks whether the JTI is present
func (l *RedisTokenRevocationList) IsRevoked(ctx context.Context, jti string) (bool, error) {
	exists, err := l.client.Exists(ctx, l.keyPrefix+jti).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check token revocation: %w", err)
	}
	return exists > 0, nil
}

var _ TokenRevocationList = (*RedisTokenRevocationList)(nil)

// InMemoryTokenRevocationList is used when Redis is disabled.
// Revocations are local to the process.
type InMemoryTokenRevocationList struct {
	mu      sync.Mutex
	revoked map[string]time.Time
	now     func() time.Time
}

// NewInMemoryTokenRevocationList creates an empty in-memory revocation list
func NewInMemoryTokenRevocationList() *InMemoryTokenRevocationList {
	return &InMemoryTokenRevocationList{
		revoked: make(map[string]time.Time),
		now:     time.Now,
	}
}

// Revoke marks the JTI as revoked until ttl elapses
func (l *InMemoryTokenRevocationList) Revoke(_ context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.revoked[jti] = l.now().Add(ttl)
	return nil
}

// IsRevoked checks the JTI and drops it once expired
func (l *InMemoryTokenRevocationList) IsRevoked(_ context.Context, jti string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	expiresAt, ok := l.revoked[jti]
	if !ok {
		return false, nil
	}
	if l.now().After(expiresAt) {
		delete(l.revoked, jti)
		return false, nil
	}
	return true, nil
}

var _ TokenRevocationList = (*InMemoryTokenRevocationList)(nil)
