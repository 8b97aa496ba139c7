package middleware

import (
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"talent-pool-backend/internal/delivery/http/response"
	"talent-pool-backend/pkg/logger"

	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
)

// RateLimitConfig holds configuration for rate limiting
type RateLimitConfig struct {
	// Requests per window
	Limit int
	// Time window duration
	Window time.Duration
	// Key prefix for Redis counters
	KeyPrefix string
}

// rateLimitEntry tracks request count for a key (in-memory fallback)
type rateLimitEntry struct {
	mu      sync.Mutex
	count   int
	resetAt time.Time
}

// Lua script for atomic increment with TTL set on first increment.
// KEYS[1] = counter key, ARGV[1] = TTL in seconds. Returns current count.
const rateLimitLuaScript = `
local count = redis.call('INCR', KEYS[1])
if count == 1 then
    redis.call('EXPIRE', KEYS[1], ARGV[1])
end
return count
`

// RateLimit limits requests per client IP within a sliding window. When the
// Redis client is nil or unreachable the limiter falls back to an in-memory
// counter, which is per-process only.
func RateLimit(client *goredis.Client, cfg RateLimitConfig) gin.HandlerFunc {
	memStore := &sync.Map{}

	return func(c *gin.Context) {
		key := fmt.Sprintf("%s%s", cfg.KeyPrefix, c.ClientIP())

		var count int
		if client != nil {
			n, err := client.Eval(c.Request.Context(), rateLimitLuaScript,
				[]string{key}, int(cfg.Window.Seconds())).Int()
			if err != nil {
				logger.Log.Warn("Rate limit Redis error, using in-memory fallback", "error", err)
				count = memoryIncrement(memStore, key, cfg.Window)
			} else {
				count = n
			}
		} else {
			count = memoryIncrement(memStore, key, cfg.Window)
		}

		if count > cfg.Limit {
			c.Header("Retry-After", strconv.Itoa(int(cfg.Window.Seconds())))
			response.Error(c, http.StatusTooManyRequests, "",
				"Too many requests. Please try again later.", nil)
			c.Abort()
			return
		}

		c.Next()
	}
}

func memoryIncrement(store *sync.Map, key string, window time.Duration) int {
	val, _ := store.LoadOrStore(key, &rateLimitEntry{resetAt: time.Now().Add(window)})
	entry := val.(*rateLimitEntry)

	entry.mu.Lock()
	defer entry.mu.Unlock()

	if time.Now().After(entry.resetAt) {
		entry.count = 0
		entry.resetAt = time.Now().Add(window)
	}
	entry.count++
	return entry.count
}
