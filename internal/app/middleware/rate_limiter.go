package middleware

import (
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"binreminder-http-service/internal/error/code"
	"binreminder-http-service/internal/error/response"
)

// 简单的令牌桶限流器
type TokenBucket struct {
	rate       float64   // 每秒填充的令牌数
	capacity   int       // 桶的容量
	tokens     float64   // 当前令牌数
	lastRefill time.Time // 上次填充时间
	lastSeen   time.Time // 最近一次请求时间，用于清理
	mu         sync.Mutex
}

// NewTokenBucket 创建新的令牌桶限流器
func NewTokenBucket(rate float64, capacity int) *TokenBucket {
	now := time.Now()
	return &TokenBucket{
		rate:       rate,
		capacity:   capacity,
		tokens:     float64(capacity),
		lastRefill: now,
		lastSeen:   now,
	}
}

// Allow 尝试获取令牌
func (tb *TokenBucket) Allow() bool {
	tb.mu.Lock()
	defer tb.mu.Unlock()

	now := time.Now()
	elapsed := now.Sub(tb.lastRefill).Seconds()
	tb.lastRefill = now
	tb.lastSeen = now

	// 填充令牌
	tb.tokens += elapsed * tb.rate
	if tb.tokens > float64(tb.capacity) {
		tb.tokens = float64(tb.capacity)
	}

	if tb.tokens >= 1 {
		tb.tokens--
		return true
	}
	return false
}

var (
	ipLimiters   = make(map[string]*TokenBucket)
	ipLimitersMu sync.Mutex
)

func getIPLimiter(key string, rate float64, burst int) *TokenBucket {
	ipLimitersMu.Lock()
	defer ipLimitersMu.Unlock()

	limiter, exists := ipLimiters[key]
	if !exists {
		limiter = NewTokenBucket(rate, burst)
		ipLimiters[key] = limiter
	}
	return limiter
}

// IPRateLimiter 按客户端IP限流，主要用于公开接口（报修提交、登录）
func IPRateLimiter(rate float64, burst int) gin.HandlerFunc {
	return func(c *gin.Context) {
		limiter := getIPLimiter(c.ClientIP()+":"+c.FullPath(), rate, burst)
		if !limiter.Allow() {
			response.FailWithMessage(c, code.ErrTooManyRequests, "请求频率过高，请稍后再试", nil)
			c.Abort()
			return
		}
		c.Next()
	}
}

// 定期清理长时间未活跃的限流器
func init() {
	go func() {
		ticker := time.NewTicker(30 * time.Minute)
		defer ticker.Stop()

		for range ticker.C {
			cleanIdleLimiters(1 * time.Hour)
		}
	}()
}

func cleanIdleLimiters(idle time.Duration) {
	cutoff := time.Now().Add(-idle)

	ipLimitersMu.Lock()
	defer ipLimitersMu.Unlock()

	for key, limiter := range ipLimiters {
		limiter.mu.Lock()
		stale := limiter.lastSeen.Before(cutoff)
		limiter.mu.Unlock()
		if stale {
			delete(ipLimiters, key)
		}
	}
}
