package api

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAttemptLimiterCountsCreationsInsideWindow(t *testing.T) {
	t.Parallel()

	limiter := newAttemptLimiter()
	key := "client-a"
	window := time.Hour
	now := time.Date(2026, time.March, 10, 9, 0, 0, 0, time.UTC)

	limiter.record(key, now.Add(-2*time.Hour), window)
	assert.False(t, limiter.tooManyRecent(key, now, 1, window), "old attempt is outside the window")

	limiter.record(key, now.Add(-30*time.Minute), window)
	assert.True(t, limiter.tooManyRecent(key, now, 1, window))
	assert.False(t, limiter.tooManyRecent("client-b", now, 1, window))
	assert.False(t, limiter.tooManyRecent(key, now.Add(31*time.Minute), 1, window), "attempt ages out of the window")
}

func TestAttemptLimiterSweepDropsIdleKeys(t *testing.T) {
	t.Parallel()

	limiter := newAttemptLimiter()
	now := time.Date(2026, time.March, 10, 9, 0, 0, 0, time.UTC)
	limiter.record("stale", now.Add(-2*time.Minute), time.Minute)
	limiter.record("fresh", now, time.Minute)

	limiter.sweep(now, time.Minute)
	assert.NotContains(t, limiter.attempts, "stale")
	assert.Contains(t, limiter.attempts, "fresh")
}
