package http

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/trattoria-labs/restaurant-service/internal/config"
	apperrors "github.com/trattoria-labs/restaurant-service/pkg/util"
)

// tokenBucketScript refills the bucket by whole intervals, takes one token if
// available and returns {allowed, remaining, retry_after_ms}.
var tokenBucketScript = redis.NewScript(`
    local key = KEYS[1]
    local now_ms = tonumber(ARGV[1])
    local capacity = tonumber(ARGV[2])
    local refill_tokens = tonumber(ARGV[3])
    local interval_ms = tonumber(ARGV[4])
    local ttl_seconds = tonumber(ARGV[5])

    local state = redis.call('HMGET', key, 'tokens', 'last_refill_ms')
    local tokens = tonumber(state[1])
    local last_refill = tonumber(state[2])

    if tokens == nil or last_refill == nil then
        tokens = capacity
        last_refill = now_ms
    end

    local elapsed = math.max(0, now_ms - last_refill)
    local intervals = math.floor(elapsed / interval_ms)
    if intervals > 0 then
        tokens = math.min(capacity, tokens + (intervals * refill_tokens))
        last_refill = last_refill + (intervals * interval_ms)
    end

    local allowed = 0
    local retry_after_ms = 0
    if tokens > 0 then
        allowed = 1
        tokens = tokens - 1
    else
        retry_after_ms = math.max(0, interval_ms - (now_ms - last_refill))
    end

    redis.call('HSET', key, 'tokens', tokens, 'last_refill_ms', last_refill)
    redis.call('EXPIRE', key, ttl_seconds)

    return { allowed, tokens, retry_after_ms }
`)

// RateLimiter is a Redis token bucket keyed by client IP and route. It fails
// open when disabled or when Redis is unavailable.
type RateLimiter struct {
	cfg    config.RateLimitConfig
	client *redis.Client
	logger *zap.Logger
	now    func() time.Time
	// warn keeps an outage from logging on every sign-in attempt.
	warn *rate.Sometimes
}

// NewRateLimiter builds the limiter. A nil client disables limiting.
func NewRateLimiter(cfg config.RateLimitConfig, client *redis.Client, logger *zap.Logger) *RateLimiter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RateLimiter{
		cfg:    cfg,
		client: client,
		logger: logger,
		now:    time.Now,
		warn:   &rate.Sometimes{First: 1, Interval: 30 * time.Second},
	}
}

// Handle enforces the limit for the current request.
func (l *RateLimiter) Handle(c *fiber.Ctx) error {
	if !l.cfg.Enabled || l.client == nil {
		return c.Next()
	}

	key := l.key(c)
	vals, err := tokenBucketScript.Run(c.UserContext(), l.client, []string{key},
		l.now().UnixMilli(),
		l.cfg.Capacity,
		l.cfg.RefillTokens,
		l.cfg.RefillInterval.Milliseconds(),
		int64(l.cfg.TTL/time.Second),
	).Int64Slice()
	if err != nil || len(vals) != 3 {
		l.warn.Do(func() {
			l.logger.Warn("rate limiter unavailable, failing open", zap.String("key", key), zap.Error(err))
		})
		return c.Next()
	}

	allowed, remaining, retryMs := vals[0] == 1, vals[1], vals[2]
	c.Set("X-RateLimit-Limit", strconv.Itoa(l.cfg.Capacity))
	c.Set("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))

	if !allowed {
		secs := int(math.Ceil(float64(retryMs) / 1000.0))
		c.Set(fiber.HeaderRetryAfter, strconv.Itoa(secs))
		return apperrors.NewRateLimited()
	}
	return c.Next()
}

func (l *RateLimiter) key(c *fiber.Ctx) string {
	ip := c.IP()
	if ip == "" {
		ip = "unknown"
	}
	route := fmt.Sprintf("%s %s", c.Method(), c.Route().Path)
	return strings.Join([]string{l.cfg.Prefix, "ip", ip, "route", route}, ":")
}
