package middleware

import (
	"time"

	"github.com/deppfellow/portfolio-api/internal/errs"
	"github.com/deppfellow/portfolio-api/internal/server"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"
)

// RateLimitMiddleware throttles public submission routes per client IP.
type RateLimitMiddleware struct {
	server *server.Server
	store  middleware.RateLimiterStore
}

func NewRateLimitMiddleware(s *server.Server) *RateLimitMiddleware {
	cfg := s.Config.RateLimit
	return &RateLimitMiddleware{
		server: s,
		store: middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
			Rate:      rate.Limit(cfg.Rate),
			Burst:     cfg.Burst,
			ExpiresIn: 3 * time.Minute,
		}),
	}
}

// Limit returns the limiter for one route. endpoint labels rejected calls
// in logs and New Relic. Disabled limiting is a pass-through.
func (r *RateLimitMiddleware) Limit(endpoint string) echo.MiddlewareFunc {
	if !r.server.Config.RateLimit.Enabled {
		return func(next echo.HandlerFunc) echo.HandlerFunc { return next }
	}

	return middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Store: r.store,
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return errs.NewBadRequestError("Could not identify client", false, nil, nil, nil).WithCause(err)
		},
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			r.RecordRateLimitHit(c, endpoint)
			return errs.NewTooManyRequestsError("Too many requests, please try again later")
		},
	})
}

// RecordRateLimitHit logs a rejected call and records a RateLimitHit event.
func (r *RateLimitMiddleware) RecordRateLimitHit(c echo.Context, endpoint string) {
	GetLogger(c).Warn().
		Str("endpoint", endpoint).
		Str("ip", c.RealIP()).
		Msg("rate limit exceeded")

	r.server.LoggerService.RecordEvent("RateLimitHit", map[string]any{
		"endpoint": endpoint,
		"ip":       c.RealIP(),
	})
}
