package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newTestLimiter(t *testing.T, limit int, window time.Duration) (*RateLimiter, *time.Time) {
	t.Helper()
	rl := NewRateLimiter(limit, window)
	t.Cleanup(rl.Stop)
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }
	return rl, &now
}

func TestRateLimiter_Allow(t *testing.T) {
	rl, now := newTestLimiter(t, 2, time.Minute)

	ok, remaining := rl.Allow("1.2.3.4")
	assert.True(t, ok)
	assert.Equal(t, 1, remaining)

	ok, remaining = rl.Allow("1.2.3.4")
	assert.True(t, ok)
	assert.Equal(t, 0, remaining)

	ok, _ = rl.Allow("1.2.3.4")
	assert.False(t, ok)

	ok, _ = rl.Allow("5.6.7.8")
	assert.True(t, ok, "other clients have their own window")

	*now = now.Add(time.Minute)
	ok, _ = rl.Allow("1.2.3.4")
	assert.True(t, ok, "window resets")
}

func TestRateLimiter_Sweep(t *testing.T) {
	rl, now := newTestLimiter(t, 1, time.Minute)
	rl.Allow("1.2.3.4")

	*now = now.Add(3 * time.Minute)
	rl.sweep()

	rl.mu.Lock()
	defer rl.mu.Unlock()
	assert.Empty(t, rl.clients)
}

func TestRateLimit_Middleware(t *testing.T) {
	rl, _ := newTestLimiter(t, 1, time.Minute)

	r := gin.New()
	r.Use(RateLimit(rl))
	r.GET("/", okHandler)

	rec := serve(r, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "1", rec.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "0", rec.Header().Get("X-RateLimit-Remaining"))

	rec = serve(r, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "60", rec.Header().Get("Retry-After"))
	assert.Contains(t, rec.Body.String(), "RATE_LIMIT_EXCEEDED")
}
