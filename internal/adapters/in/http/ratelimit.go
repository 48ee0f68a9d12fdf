package http

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"
)

const (
	limiterIdleTTL       = 30 * time.Minute
	limiterSweepInterval = 5 * time.Minute
)

type actorLimiter struct {
	limiter *rate.Limiter
	mu      sync.Mutex
	last    time.Time
}

// ActorLimiter throttles code confirmations per authenticated actor so a
// four digit code cannot be brute forced.
type ActorLimiter struct {
	limit    rate.Limit
	burst    int
	limiters sync.Map // actor id -> *actorLimiter
}

// NewActorLimiter allows perMinute requests per actor with the given burst.
func NewActorLimiter(perMinute, burst int) *ActorLimiter {
	return &ActorLimiter{
		limit: rate.Limit(float64(perMinute) / 60),
		burst: burst,
	}
}

func (l *ActorLimiter) allow(key string, now time.Time) bool {
	v, _ := l.limiters.LoadOrStore(key, &actorLimiter{
		limiter: rate.NewLimiter(l.limit, l.burst),
	})
	al := v.(*actorLimiter)
	al.mu.Lock()
	al.last = now
	al.mu.Unlock()
	return al.limiter.AllowN(now, 1)
}

func (l *ActorLimiter) sweep(now time.Time) {
	l.limiters.Range(func(key, val any) bool {
		al := val.(*actorLimiter)
		al.mu.Lock()
		idle := now.Sub(al.last) > limiterIdleTTL
		al.mu.Unlock()
		if idle {
			l.limiters.Delete(key)
		}
		return true
	})
}

// Run drops idle limiters until ctx is done.
func (l *ActorLimiter) Run(ctx context.Context) error {
	t := time.NewTicker(limiterSweepInterval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case now := <-t.C:
			l.sweep(now)
		}
	}
}

// Middleware must run after Authenticator.Middleware.
func (l *ActorLimiter) Middleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		caller := actorFrom(c)
		if !l.allow(caller.ID().String(), time.Now()) {
			return c.JSON(http.StatusTooManyRequests, ErrorResponse{
				Code:    "rate_limited",
				Message: "too many confirmation attempts, try again later",
			})
		}
		return next(c)
	}
}
