package middleware

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"lumarise-backend/apperrors"
	"lumarise-backend/logger"
	"lumarise-backend/utils"
)

// RateStore counts hits per key within a TTL window.
type RateStore interface {
	IncrWithTTL(ctx context.Context, key string, ttl time.Duration) (int64, error)
}

// RedisCounter is a fixed-window counter store.
type RedisCounter struct {
	client  *redis.Client
	timeout time.Duration
}

func NewRedisCounter(client *redis.Client, timeout time.Duration) *RedisCounter {
	return &RedisCounter{client: client, timeout: timeout}
}

// incrWithTTL bumps the counter and restores a missing expiry in one atomic
// step, so a key can never outlive its window.
var incrWithTTL = redis.NewScript(`
local n = redis.call("INCR", KEYS[1])
local ttl = tonumber(ARGV[1])
if ttl > 0 and redis.call("PTTL", KEYS[1]) < 0 then
	redis.call("PEXPIRE", KEYS[1], ttl)
end
return n
`)

// IncrWithTTL increments key and makes sure it expires after ttl.
func (r *RedisCounter) IncrWithTTL(ctx context.Context, key string, ttl time.Duration) (int64, error) {
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}
	return incrWithTTL.Run(ctx, r.client, []string{key}, ttl.Milliseconds()).Int64()
}

// RateLimitPolicy limits requests per client IP within a window.
type RateLimitPolicy struct {
	Name   string
	Window time.Duration
	Limit  int
}

func (p RateLimitPolicy) enabled() bool {
	return p.Window > 0 && p.Limit > 0
}

func (p RateLimitPolicy) key(ip string) string {
	return fmt.Sprintf("rl:ip:%s:%s", strings.ToLower(p.Name), ip)
}

// RateLimit rejects a client with 429 once it exceeds the policy. A store
// error lets the request through.
func RateLimit(policy RateLimitPolicy, store RateStore, logg *logger.Logger) gin.HandlerFunc {
	if !policy.enabled() || store == nil {
		return func(c *gin.Context) { c.Next() }
	}
	if logg == nil {
		logg = logger.Nop()
	}
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		ip := c.ClientIP()

		count, err := store.IncrWithTTL(ctx, policy.key(ip), policy.Window)
		if err != nil {
			logg.Warn(logg.WithField(ctx, "policy", policy.Name), "rate_limit.store_failed", err)
			c.Next()
			return
		}
		if count > int64(policy.Limit) {
			logg.Warn(logg.WithFields(ctx, map[string]any{
				"policy":         policy.Name,
				"ip":             ip,
				"attempts":       count,
				"limit":          policy.Limit,
				"window_seconds": int(policy.Window.Seconds()),
			}), "rate_limit.blocked", nil)
			utils.RespondError(c, logg, apperrors.New(apperrors.CodeRateLimit, "rate limit exceeded"))
			return
		}
		c.Next()
	}
}
