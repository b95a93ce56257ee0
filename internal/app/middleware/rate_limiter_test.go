package middleware

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTokenBucketExhaustsBurst(t *testing.T) {
	tb := NewTokenBucket(1, 3)

	for i := 0; i < 3; i++ {
		assert.True(t, tb.Allow(), "request %d within burst should pass", i)
	}
	assert.False(t, tb.Allow(), "request beyond burst should be rejected")
}

func TestTokenBucketRefills(t *testing.T) {
	tb := NewTokenBucket(100, 1)

	assert.True(t, tb.Allow())
	assert.False(t, tb.Allow())

	// 100 tokens/s，等20ms应该补充出至少一个令牌
	time.Sleep(20 * time.Millisecond)
	assert.True(t, tb.Allow())
}

func TestTokenBucketCapsAtCapacity(t *testing.T) {
	tb := NewTokenBucket(1000, 2)

	time.Sleep(20 * time.Millisecond)
	assert.True(t, tb.Allow())
	assert.True(t, tb.Allow())
	// 即使填充速率很高，容量之外的请求仍然被拒绝
	assert.False(t, tb.Allow())
}

func TestCleanIdleLimitersRemovesStale(t *testing.T) {
	ipLimitersMu.Lock()
	ipLimiters["stale-key"] = &TokenBucket{lastSeen: time.Now().Add(-2 * time.Hour)}
	ipLimiters["fresh-key"] = NewTokenBucket(1, 1)
	ipLimitersMu.Unlock()

	cleanIdleLimiters(1 * time.Hour)

	ipLimitersMu.Lock()
	defer ipLimitersMu.Unlock()
	assert.NotContains(t, ipLimiters, "stale-key")
	assert.Contains(t, ipLimiters, "fresh-key")
}
