package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTokenBucketExhaustion(t *testing.T) {
	bucket := NewTokenBucket(3, 1, time.Hour)

	for i := 0; i < 3; i++ {
		allowed, _ := bucket.Allow()
		assert.True(t, allowed, "request %d should be allowed", i)
	}

	allowed, wait := bucket.Allow()
	assert.False(t, allowed)
	assert.Greater(t, wait, time.Duration(0))
}

func TestTokenBucketRefill(t *testing.T) {
	bucket := NewTokenBucket(1, 1, 10*time.Millisecond)

	allowed, _ := bucket.Allow()
	assert.True(t, allowed)
	allowed, _ = bucket.Allow()
	assert.False(t, allowed)

	time.Sleep(20 * time.Millisecond)
	allowed, _ = bucket.Allow()
	assert.True(t, allowed)
}

func TestRateLimiterIsolatesUsersAndActions(t *testing.T) {
	limiter := NewRateLimiter()

	// Drain alice's initiate_chat budget.
	for i := 0; i < 10; i++ {
		allowed, _ := limiter.Allow("alice", "initiate_chat")
		assert.True(t, allowed)
	}
	allowed, _ := limiter.Allow("alice", "initiate_chat")
	assert.False(t, allowed)

	// Other users and other actions keep their own budgets.
	allowed, _ = limiter.Allow("bob", "initiate_chat")
	assert.True(t, allowed)
	allowed, _ = limiter.Allow("alice", "send_message")
	assert.True(t, allowed)
}
