package http

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/trattoria-labs/restaurant-service/internal/config"
)

func limitedApp(limiter *RateLimiter) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler(zap.NewNop())})
	app.Post("/users/signin", limiter.Handle, func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	return app
}

func testLimitConfig() config.RateLimitConfig {
	return config.RateLimitConfig{
		Enabled:        true,
		Capacity:       2,
		RefillTokens:   1,
		RefillInterval: time.Minute,
		TTL:            10 * time.Minute,
		Prefix:         "rl:test",
	}
}

func TestRateLimiterRejectsAfterCapacity(t *testing.T) {
	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	limiter := NewRateLimiter(testLimitConfig(), client, zap.NewNop())
	start := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	limiter.now = func() time.Time { return start }
	app := limitedApp(limiter)

	for i := 0; i < 2; i++ {
		resp, err := app.Test(httptest.NewRequest(fiber.MethodPost, "/users/signin", nil), -1)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.Equal(t, "2", resp.Header.Get("X-RateLimit-Limit"))
	}

	resp, err := app.Test(httptest.NewRequest(fiber.MethodPost, "/users/signin", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, fiber.StatusTooManyRequests, resp.StatusCode)
	assert.Equal(t, "60", resp.Header.Get(fiber.HeaderRetryAfter))
	assert.Equal(t, "0", resp.Header.Get("X-RateLimit-Remaining"))

	limiter.now = func() time.Time { return start.Add(time.Minute) }
	resp, err = app.Test(httptest.NewRequest(fiber.MethodPost, "/users/signin", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestRateLimiterFailsOpen(t *testing.T) {
	disabled := testLimitConfig()
	disabled.Enabled = false

	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	down := miniredis.RunT(t)
	unreachable := redis.NewClient(&redis.Options{Addr: down.Addr(), MaxRetries: -1})
	t.Cleanup(func() { _ = unreachable.Close() })
	down.Close()

	cases := map[string]*RateLimiter{
		"disabled":    NewRateLimiter(disabled, client, zap.NewNop()),
		"nil client":  NewRateLimiter(testLimitConfig(), nil, zap.NewNop()),
		"redis error": NewRateLimiter(testLimitConfig(), unreachable, zap.NewNop()),
	}
	for name, limiter := range cases {
		t.Run(name, func(t *testing.T) {
			app := limitedApp(limiter)
			for i := 0; i < 4; i++ {
				resp, err := app.Test(httptest.NewRequest(fiber.MethodPost, "/users/signin", nil), -1)
				require.NoError(t, err)
				assert.Equal(t, fiber.StatusOK, resp.StatusCode)
			}
		})
	}
}

func TestRateLimiterThrottlesOutageWarnings(t *testing.T) {
	down := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: down.Addr(), MaxRetries: -1})
	t.Cleanup(func() { _ = client.Close() })
	down.Close()

	core, logs := observer.New(zap.WarnLevel)
	app := limitedApp(NewRateLimiter(testLimitConfig(), client, zap.New(core)))

	for i := 0; i < 5; i++ {
		resp, err := app.Test(httptest.NewRequest(fiber.MethodPost, "/users/signin", nil), -1)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	}
	assert.Equal(t, 1, logs.FilterMessage("rate limiter unavailable, failing open").Len())
}
