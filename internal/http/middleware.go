package http

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/TejasJagadale/backendofficial/internal/metrics"
	"github.com/TejasJagadale/backendofficial/internal/repo"
	"github.com/TejasJagadale/backendofficial/internal/security"
	"github.com/TejasJagadale/backendofficial/pkg/clientip"
)

const (
	requestIDKey = "X-Request-ID"
	authUserKey  = "authUser"
)

type AuthUser struct {
	UID   string
	Email string
}

func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDKey)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Writer.Header().Set(requestIDKey, id)
		c.Next()
	}
}

func reqID(c *gin.Context) string {
	if v, ok := c.Get(requestIDKey); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		metrics.InFlight.Inc()
		start := time.Now()
		c.Next()
		metrics.InFlight.Dec()
		metrics.ReqDuration.WithLabelValues(route, c.Request.Method).
			Observe(time.Since(start).Seconds())
		metrics.RequestsTotal.WithLabelValues(route, c.Request.Method,
			strconv.Itoa(c.Writer.Status())).Inc()
	}
}

// AuthJWT validates the bearer token and puts the caller's identity on the
// context.
func AuthJWT(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.GetHeader("Authorization")
		if !strings.HasPrefix(strings.ToLower(h), "bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}
		tok := strings.TrimSpace(h[len("Bearer "):])
		claims, err := security.ParseAccess(secret, tok)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}
		c.Set(authUserKey, AuthUser{UID: claims.UID, Email: claims.Email})
		c.Next()
	}
}

// RateLimiter is the per-IP quota check for like toggles.
type RateLimiter interface {
	Allow(ctx context.Context, ip string) bool
}

type bucket struct {
	tokens  int
	updated time.Time
}

// MemoryLimiter is a fixed-window counter kept in process memory. Used when
// Redis is not configured. Expired buckets are swept at most once per window
// so the map does not grow with every IP ever seen.
type MemoryLimiter struct {
	mu      sync.Mutex
	buckets map[string]*bucket
	rate    int
	window  time.Duration
	swept   time.Time
}

func NewMemoryLimiter(rate int, window time.Duration) *MemoryLimiter {
	return &MemoryLimiter{buckets: make(map[string]*bucket), rate: rate, window: window, swept: time.Now()}
}

func (rl *MemoryLimiter) Allow(_ context.Context, ip string) bool {
	now := time.Now()
	rl.mu.Lock()
	defer rl.mu.Unlock()
	if now.Sub(rl.swept) > rl.window {
		for k, b := range rl.buckets {
			if now.Sub(b.updated) > rl.window {
				delete(rl.buckets, k)
			}
		}
		rl.swept = now
	}
	b, ok := rl.buckets[ip]
	if !ok || now.Sub(b.updated) > rl.window {
		rl.buckets[ip] = &bucket{tokens: 1, updated: now}
		return true
	}
	if b.tokens < rl.rate {
		b.tokens++
		return true
	}
	return false
}

// RedisLimiter is a fixed window shared across instances. Fails open: a Redis
// outage must not take the like endpoint down with it.
type RedisLimiter struct {
	R      *repo.Redis
	Rate   int
	Window time.Duration
	Prefix string
}

func NewRedisLimiter(r *repo.Redis, rate int, window time.Duration) *RedisLimiter {
	return &RedisLimiter{R: r, Rate: rate, Window: window, Prefix: "ratelimit:likes:"}
}

func (rl *RedisLimiter) Allow(ctx context.Context, ip string) bool {
	key := rl.Prefix + ip
	n, err := rl.R.C.Incr(ctx, key).Result()
	if err != nil {
		return true
	}
	if n == 1 {
		rl.R.C.Expire(ctx, key, rl.Window)
	}
	return n <= int64(rl.Rate)
}

func RateLimit(rl RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := clientip.FromRequest(c.Request)
		if !rl.Allow(c.Request.Context(), ip) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "too many requests"})
			return
		}
		c.Next()
	}
}
