package worker

import (
	"sync"

	"golang.org/x/time/rate"
)

// ClientLimiter rate-limits requests per client address. Each client gets an
// independent token bucket so one noisy caller cannot starve the rest.
type ClientLimiter struct {
	limiters     map[string]*rate.Limiter
	mu           sync.RWMutex
	defaultRate  rate.Limit
	defaultBurst int
}

// NewClientLimiter creates a limiter allowing requestsPerSecond per client
// with the given burst (minimum 1).
func NewClientLimiter(requestsPerSecond float64, burst int) *ClientLimiter {
	if burst <= 0 {
		burst = 1
	}

	return &ClientLimiter{
		limiters:     make(map[string]*rate.Limiter),
		defaultRate:  rate.Limit(requestsPerSecond),
		defaultBurst: burst,
	}
}

// Allow reports whether the client may proceed without waiting.
func (l *ClientLimiter) Allow(client string) bool {
	return l.getLimiter(client).Allow()
}

func (l *ClientLimiter) getLimiter(client string) *rate.Limiter {
	l.mu.RLock()
	limiter, exists := l.limiters[client]
	l.mu.RUnlock()

	if exists {
		return limiter
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	// Double-check after acquiring write lock
	if limiter, exists := l.limiters[client]; exists {
		return limiter
	}

	limiter = rate.NewLimiter(l.defaultRate, l.defaultBurst)
	l.limiters[client] = limiter

	return limiter
}
