package api

import (
	"strings"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
)

// attemptLimiter throttles intake session creation. It keeps the creation
// times of each client inside a sliding window; CreateIntake refuses with 429
// once the window holds intakeCreateLimit entries, and the purge schedule
// sweeps clients whose window has emptied.
type attemptLimiter struct {
	mu       sync.Mutex
	attempts map[string][]time.Time
}

func newAttemptLimiter() *attemptLimiter {
	return &attemptLimiter{
		attempts: make(map[string][]time.Time),
	}
}

// tooManyRecent reports whether key already created limit intakes inside window.
func (limiter *attemptLimiter) tooManyRecent(key string, now time.Time, limit int, window time.Duration) bool {
	limiter.mu.Lock()
	defer limiter.mu.Unlock()

	pruned := limiter.pruneLocked(key, now, window)
	return len(pruned) >= limit
}

func (limiter *attemptLimiter) record(key string, now time.Time, window time.Duration) {
	limiter.mu.Lock()
	defer limiter.mu.Unlock()

	pruned := limiter.pruneLocked(key, now, window)
	limiter.attempts[key] = append(pruned, now)
}

// sweep drops every key without attempts inside window.
func (limiter *attemptLimiter) sweep(now time.Time, window time.Duration) {
	limiter.mu.Lock()
	defer limiter.mu.Unlock()
	for key := range limiter.attempts {
		limiter.pruneLocked(key, now, window)
	}
}

func (limiter *attemptLimiter) pruneLocked(key string, now time.Time, window time.Duration) []time.Time {
	values := limiter.attempts[key]
	if len(values) == 0 {
		return []time.Time{}
	}

	threshold := now.Add(-window)
	pruned := make([]time.Time, 0, len(values))
	for _, value := range values {
		if value.After(threshold) {
			pruned = append(pruned, value)
		}
	}

	if len(pruned) == 0 {
		delete(limiter.attempts, key)
		return []time.Time{}
	}

	limiter.attempts[key] = pruned
	return pruned
}

// requestLimiterKey throttles by anonymous client, falling back to the remote IP
// for requests that carry no client cookie.
func requestLimiterKey(c *fiber.Ctx) string {
	if clientID := currentClientID(c); clientID != "" {
		return clientID
	}
	key := strings.TrimSpace(c.IP())
	if key == "" {
		return "unknown"
	}
	return key
}

// PruneLimiters forgets clients without recent intake creations.
func (handler *Handler) PruneLimiters() {
	handler.intakeLimiter.sweep(handler.clock.Now(), handler.intakeCreateWindow)
}
