package ratelimit

import (
	"context"
	"sync"

	"golang.org/x/time/rate"

	"github.com/dharmasatrya/flightvalue/internal/models"
)

// ModeLimiter paces calls to the upstream site, one bucket per search mode
// plus one for session acquisition.
type ModeLimiter struct {
	limiters map[string]*rate.Limiter
	mu       sync.RWMutex
	defaults Config
}

type Config struct {
	RequestsPerSecond float64
	BurstSize         int
}

// acquireKey is the bucket used for session acquisition.
const acquireKey = "acquire"

// DefaultConfig allows one search every five seconds. The airline site
// challenges bursts from a single session.
func DefaultConfig() Config {
	return Config{
		RequestsPerSecond: 0.2,
		BurstSize:         1,
	}
}

func NewModeLimiter(config Config) *ModeLimiter {
	if config.RequestsPerSecond <= 0 {
		config.RequestsPerSecond = DefaultConfig().RequestsPerSecond
	}
	if config.BurstSize <= 0 {
		config.BurstSize = DefaultConfig().BurstSize
	}
	return &ModeLimiter{
		limiters: make(map[string]*rate.Limiter),
		defaults: config,
	}
}

func NewModeLimiterWithDefaults() *ModeLimiter {
	return NewModeLimiter(DefaultConfig())
}

// Unlimited never blocks; used by tests and file replays.
func Unlimited() *ModeLimiter {
	return NewModeLimiter(Config{RequestsPerSecond: float64(rate.Inf), BurstSize: 1})
}

func (l *ModeLimiter) limiter(key string) *rate.Limiter {
	l.mu.RLock()
	limiter, exists := l.limiters[key]
	l.mu.RUnlock()

	if exists {
		return limiter
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if limiter, exists = l.limiters[key]; exists {
		return limiter
	}

	limiter = rate.NewLimiter(rate.Limit(l.defaults.RequestsPerSecond), l.defaults.BurstSize)
	l.limiters[key] = limiter
	return limiter
}

func (l *ModeLimiter) SetModeLimit(mode models.SearchMode, rps float64, burst int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.limiters[string(mode)] = rate.NewLimiter(rate.Limit(rps), burst)
}

func (l *ModeLimiter) Wait(ctx context.Context, mode models.SearchMode) error {
	return l.limiter(string(mode)).Wait(ctx)
}

func (l *ModeLimiter) WaitAcquire(ctx context.Context) error {
	return l.limiter(acquireKey).Wait(ctx)
}
