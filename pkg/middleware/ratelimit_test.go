package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateLimiterAllow(t *testing.T) {
	limiter := NewRateLimiter(&RateLimitConfig{
		RequestsPerWindow: 3,
		WindowDuration:    time.Minute,
		BurstSize:         0,
	})

	for i := 0; i < 3; i++ {
		assert.True(t, limiter.Allow("session:sess-1"), "request %d should pass", i)
	}
	assert.False(t, limiter.Allow("session:sess-1"))

	// A different key has its own bucket.
	assert.True(t, limiter.Allow("session:sess-2"))
}

func TestRateLimiterRemaining(t *testing.T) {
	limiter := NewRateLimiter(&RateLimitConfig{
		RequestsPerWindow: 5,
		WindowDuration:    time.Minute,
		BurstSize:         1,
	})

	assert.Equal(t, 6, limiter.Remaining("session:sess-1"))
	limiter.Allow("session:sess-1")
	assert.Equal(t, 5, limiter.Remaining("session:sess-1"))
}

func TestRateLimitMiddleware(t *testing.T) {
	limiter := NewRateLimiter(&RateLimitConfig{
		RequestsPerWindow: 1,
		WindowDuration:    time.Minute,
		BurstSize:         0,
	})
	handler := RateLimitMiddleware(limiter)(okHandler())

	req := httptest.NewRequest("POST", "/api/v1/impersonation", nil)
	req.Header.Set(SessionHeader, "sess-1")

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "1", w.Header().Get("X-RateLimit-Limit"))

	w = httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))
}

func TestImpersonationRateLimitConfig(t *testing.T) {
	cfg := ImpersonationRateLimitConfig()
	assert.Equal(t, 10, cfg.RequestsPerWindow)
	assert.Equal(t, time.Minute, cfg.WindowDuration)
}

func TestDistributedRateLimiter(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	ctx := context.Background()

	limiter := NewDistributedRateLimiter(client, &RateLimitConfig{
		RequestsPerWindow: 2,
		WindowDuration:    time.Minute,
	}, "")

	for i := 0; i < 2; i++ {
		allowed, err := limiter.Allow(ctx, "session:sess-1")
		require.NoError(t, err)
		assert.True(t, allowed)
	}

	allowed, err := limiter.Allow(ctx, "session:sess-1")
	require.NoError(t, err)
	assert.False(t, allowed)

	remaining, err := limiter.Remaining(ctx, "session:sess-1")
	require.NoError(t, err)
	assert.Equal(t, 0, remaining)

	require.NoError(t, limiter.Reset(ctx, "session:sess-1"))
	allowed, err = limiter.Allow(ctx, "session:sess-1")
	require.NoError(t, err)
	assert.True(t, allowed)
}

func TestDistributedRateLimiterFailsOpen(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	mr.Close()

	limiter := NewDistributedRateLimiter(client, nil, "")

	allowed, err := limiter.Allow(context.Background(), "session:sess-1")
	assert.Error(t, err)
	assert.True(t, allowed)
}

func TestDistributedRateLimitMiddleware(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	limiter := NewDistributedRateLimiter(client, &RateLimitConfig{
		RequestsPerWindow: 1,
		WindowDuration:    time.Minute,
	}, "")
	handler := DistributedRateLimitMiddleware(limiter)(okHandler())

	req := httptest.NewRequest("POST", "/api/v1/impersonation", nil)
	req.Header.Set(SessionHeader, "sess-1")

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
}
