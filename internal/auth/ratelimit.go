package auth

import (
	"net/http"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
)

// LoginLimiter throttles login attempts per client IP
type LoginLimiter struct {
	mu       sync.Mutex
	attempts map[string]*attemptInfo

	maxAttempts int
	window      time.Duration
	blockTime   time.Duration
}

type attemptInfo struct {
	count     int
	firstTry  time.Time
	blockedAt time.Time
}

// NewLoginLimiter creates a limiter allowing maxAttempts per window,
// blocking for blockTime once exceeded.
func NewLoginLimiter(maxAttempts int, window, blockTime time.Duration) *LoginLimiter {
	l := &LoginLimiter{
		attempts:    make(map[string]*attemptInfo),
		maxAttempts: maxAttempts,
		window:      window,
		blockTime:   blockTime,
	}
	go l.cleanup()
	return l
}

// DefaultLoginLimiter allows 5 attempts per 15 minutes
func DefaultLoginLimiter() *LoginLimiter {
	return NewLoginLimiter(5, 15*time.Minute, 15*time.Minute)
}

// Allow reports whether the given key may attempt a login now
func (l *LoginLimiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	info, ok := l.attempts[key]
	if !ok {
		l.attempts[key] = &attemptInfo{count: 1, firstTry: now}
		return true
	}

	if !info.blockedAt.IsZero() {
		if now.Sub(info.blockedAt) < l.blockTime {
			return false
		}
		*info = attemptInfo{count: 1, firstTry: now}
		return true
	}

	if now.Sub(info.firstTry) > l.window {
		*info = attemptInfo{count: 1, firstTry: now}
		return true
	}

	info.count++
	if info.count > l.maxAttempts {
		info.blockedAt = now
		return false
	}
	return true
}

// RecordSuccess clears the key's attempt history after a successful
// login, so only consecutive failures count against the budget.
func (l *LoginLimiter) RecordSuccess(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.attempts, key)
}

// Middleware rejects over-limit callers before the handler runs
func (l *LoginLimiter) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !l.Allow(c.RealIP()) {
				return c.JSON(http.StatusTooManyRequests, map[string]string{
					"error": "too many login attempts, try again later",
				})
			}
			return next(c)
		}
	}
}

func (l *LoginLimiter) cleanup() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()
	for range ticker.C {
		l.mu.Lock()
		now := time.Now()
		for key, info := range l.attempts {
			stale := now.Sub(info.firstTry) > l.window &&
				(info.blockedAt.IsZero() || now.Sub(info.blockedAt) > l.blockTime)
			if stale {
				delete(l.attempts, key)
			}
		}
		l.mu.Unlock()
	}
}
