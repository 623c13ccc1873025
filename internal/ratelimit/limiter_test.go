package ratelimit_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	redis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/promolab-cl/backend-promolab/internal/ratelimit"
)

func newLimiter(t *testing.T) (ratelimit.Limiter, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return ratelimit.Limiter{Client: client, Prefix: "rl:"}, mr
}

func TestLimiterSlidingWindow(t *testing.T) {
	limiter, mr := newLimiter(t)
	ctx := context.Background()
	window := 2 * time.Second

	for i := 0; i < 2; i++ {
		allowed, remaining, _, err := limiter.Allow(ctx, "ip", window, 2)
		require.NoError(t, err)
		require.True(t, allowed, "hit %d", i)
		require.Equal(t, 1-i, remaining)
	}

	allowed, remaining, _, err := limiter.Allow(ctx, "ip", window, 2)
	require.NoError(t, err)
	require.False(t, allowed)
	require.Zero(t, remaining)

	mr.FastForward(window)
	allowed, _, _, err = limiter.Allow(ctx, "ip", window, 2)
	require.NoError(t, err)
	require.True(t, allowed, "window rolled over")
}

func TestLimiterNilClientAllowsEverything(t *testing.T) {
	limiter := ratelimit.Limiter{}
	allowed, _, _, err := limiter.Allow(context.Background(), "ip", time.Second, 1)
	require.NoError(t, err)
	require.True(t, allowed)
}

func TestMiddlewareEnforcesLimit(t *testing.T) {
	limiter, _ := newLimiter(t)
	handler := ratelimit.Handler{
		Limiter: limiter,
		Config: ratelimit.Config{
			Key:    func(*http.Request) string { return "static" },
			Window: time.Second,
			Max:    1,
		},
	}.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products", nil)
	first := httptest.NewRecorder()
	handler.ServeHTTP(first, req.Clone(req.Context()))
	require.Equal(t, http.StatusOK, first.Code)

	second := httptest.NewRecorder()
	handler.ServeHTTP(second, req.Clone(req.Context()))
	require.Equal(t, http.StatusTooManyRequests, second.Code)
	require.Equal(t, "1", second.Header().Get("X-RateLimit-Limit"))
	require.NotEmpty(t, second.Header().Get("Retry-After"))
}

func TestMiddlewareFailsOpenOnRedisError(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"})
	t.Cleanup(func() { _ = client.Close() })

	var gotErr error
	handler := ratelimit.Handler{
		Limiter: ratelimit.Limiter{Client: client, Prefix: "rl:"},
		Config: ratelimit.Config{
			Key:    func(*http.Request) string { return "static" },
			Window: time.Second,
			Max:    1,
		},
		OnError: func(err error) { gotErr = err },
	}.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Error(t, gotErr)
}
