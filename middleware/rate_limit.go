package middleware

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/mangrove-one/MangroveMarkets/domain"
	"github.com/mangrove-one/MangroveMarkets/log"
)

const (
	// maxTrackedClients bounds the number of per-client limiters kept in memory.
	maxTrackedClients = 10_000
	// idleClientTTL is how long the limiter of an idle client is kept.
	idleClientTTL = 10 * time.Minute
)

// RateLimiter limits the request rate per client IP.
type RateLimiter struct {
	limiters *expirable.LRU[string, *rate.Limiter]
	rate     rate.Limit
	burst    int

	logger log.Logger
}

// NewRateLimiter creates a per-client rate limiter.
// Returns nil if config is nil or has a non-positive rate; a nil limiter lets every request through.
func NewRateLimiter(config *domain.RateLimitConfig, logger log.Logger) *RateLimiter {
	if config == nil || config.RequestsPerSecond <= 0 {
		return nil
	}

	burst := config.Burst
	if burst < 1 {
		burst = 1
	}

	return &RateLimiter{
		limiters: expirable.NewLRU[string, *rate.Limiter](maxTrackedClients, nil, idleClientTTL),
		rate:     rate.Limit(config.RequestsPerSecond),
		burst:    burst,
		logger:   logger,
	}
}

// getLimiter returns the limiter for key, creating it on first use.
// Two concurrent first requests may each create one; the later Add wins, which only
// grants that client one extra burst.
func (rl *RateLimiter) getLimiter(key string) *rate.Limiter {
	if limiter, ok := rl.limiters.Get(key); ok {
		return limiter
	}

	limiter := rate.NewLimiter(rl.rate, rl.burst)
	rl.limiters.Add(key, limiter)
	return limiter
}

// Middleware rejects requests over the client's rate with 429 and the failure payload.
func (rl *RateLimiter) Middleware(next echo.HandlerFunc) echo.HandlerFunc {
	if rl == nil {
		return next
	}

	return func(c echo.Context) error {
		key := c.RealIP()

		if !rl.getLimiter(key).Allow() {
			rl.logger.Debug("rate limit exceeded",
				zap.String("client", key),
				zap.String("path", c.Request().URL.Path),
			)

			err := domain.RateLimitedError()
			return c.JSON(domain.GetStatusCode(err), domain.NewErrorResponse(err))
		}

		return next(c)
	}
}
