package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"
)

// Defaults when the profile leaves the limits unset.
const (
	DefaultRate  = 10
	DefaultBurst = 20
	// idleTTL is how long a client's limiter survives without requests.
	idleTTL = 10 * time.Minute
)

type entry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter provides per-client rate limiting.
type RateLimiter struct {
	mu     sync.Mutex
	limits map[string]*entry
	rate   rate.Limit
	burst  int
	now    func() time.Time
}

// NewRateLimiter creates a rate limiter allowing perSecond requests per
// client with the given burst. Non-positive values use the defaults.
func NewRateLimiter(perSecond float64, burst int) *RateLimiter {
	if perSecond <= 0 {
		perSecond = DefaultRate
	}
	if burst <= 0 {
		burst = DefaultBurst
	}
	return &RateLimiter{
		limits: make(map[string]*entry),
		rate:   rate.Limit(perSecond),
		burst:  burst,
		now:    time.Now,
	}
}

// getLimiter gets or creates a limiter for the given key and evicts idle ones.
func (rl *RateLimiter) getLimiter(key string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	if e, ok := rl.limits[key]; ok {
		e.lastSeen = now
		return e.limiter
	}
	for k, e := range rl.limits {
		if now.Sub(e.lastSeen) > idleTTL {
			delete(rl.limits, k)
		}
	}
	limiter := rate.NewLimiter(rl.rate, rl.burst)
	rl.limits[key] = &entry{limiter: limiter, lastSeen: now}
	return limiter
}

// Allow checks if a request is allowed for the given key.
func (rl *RateLimiter) Allow(key string) bool {
	return rl.getLimiter(key).Allow()
}

// Middleware rejects requests over the client's budget. Clients are keyed by
// echo's RealIP. onReject renders the rejection; nil sends a bare 429.
func (rl *RateLimiter) Middleware(onReject func(c echo.Context) error) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if rl.Allow(c.RealIP()) {
				return next(c)
			}
			if onReject != nil {
				return onReject(c)
			}
			return c.NoContent(http.StatusTooManyRequests)
		}
	}
}
