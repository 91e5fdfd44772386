/*
Package limiter provides request rate limiting keyed by caller identity.

It uses the Token Bucket algorithm (rate.Limiter) to control how often a caller
may hit expensive routes such as roadmap-generation requests and onboarding
submission. Authenticated callers are keyed by their account id; anonymous
callers fall back to their IP address. A cleanup goroutine periodically removes
idle limiters to keep memory bounded.
*/
package limiter

import (
	"net"
	"net/http"
	"sync"
	"time"

	"learnloop/internal/pkg/auth/jwt"
	"learnloop/internal/pkg/errs"
	"learnloop/internal/pkg/logx"
	"learnloop/internal/pkg/resp"

	"golang.org/x/time/rate"
)

// cleanupInterval controls how often idle limiter buckets are reclaimed.
const cleanupInterval = 3 * time.Minute

// CallerRateLimiter implements a per-caller token-bucket rate limiter.
type CallerRateLimiter struct {
	// mu protects concurrent access to the limits map.
	mu sync.RWMutex

	// limits maps a caller key (account id or IP) to its *rate.Limiter.
	limits map[string]*rate.Limiter

	// r is the sustained rate, in events per second.
	r rate.Limit

	// b is the burst size (token bucket capacity).
	b int
}

// NewCallerRateLimiter creates a CallerRateLimiter with rate r and burst b and
// starts the background cleanup goroutine.
func NewCallerRateLimiter(r rate.Limit, b int) *CallerRateLimiter {
	l := &CallerRateLimiter{
		limits: make(map[string]*rate.Limiter),
		r:      r,
		b:      b,
	}

	go l.cleanUpIdle()

	return l
}

// GetLimiter returns the rate limiter for the given caller key, creating one if
// needed. Double-checked locking keeps creation concurrent-safe without holding
// the write lock on the hot path.
func (l *CallerRateLimiter) GetLimiter(key string) *rate.Limiter {
	l.mu.RLock()
	limiter, exists := l.limits[key]
	l.mu.RUnlock()

	if !exists {
		l.mu.Lock()
		limiter, exists = l.limits[key]
		if !exists {
			limiter = rate.NewLimiter(l.r, l.b)
			l.limits[key] = limiter
		}
		l.mu.Unlock()
	}

	return limiter
}

// cleanUpIdle periodically removes limiters whose buckets have refilled
// completely, meaning the caller has been quiet for a while.
func (l *CallerRateLimiter) cleanUpIdle() {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	for range ticker.C {
		l.mu.Lock()
		removed := 0
		for key, limiter := range l.limits {
			if limiter.TokensAt(time.Now()) >= float64(limiter.Burst()) {
				delete(l.limits, key)
				removed++
			}
		}
		remaining := len(l.limits)
		l.mu.Unlock()

		logx.Debug("Rate limiter cleanup finished", "removed", removed, "remaining", remaining)
	}
}

// callerKey derives the limiter key for a request: the authenticated account id
// when present, otherwise the client IP.
func callerKey(r *http.Request) string {
	if payload := jwt.GetPayloadFromContext(r); payload != nil {
		return "user:" + payload.UserID()
	}

	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		ip = r.RemoteAddr
	}
	if ip == "" {
		ip = "unknown_ip"
	}
	return "ip:" + ip
}

// Middleware returns an HTTP middleware enforcing the rate limit. Requests over
// the limit receive a 429 response with the standard error envelope.
func (l *CallerRateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := callerKey(r)

		if !l.GetLimiter(key).Allow() {
			resp.RespondError(w, r, errs.NewError(errs.ErrRateLimitExceeded))
			return
		}

		next.ServeHTTP(w, r)
	})
}
