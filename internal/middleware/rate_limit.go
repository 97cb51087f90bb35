package middleware

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"

	"github.com/link2cory/echo-hello-world/internal/errs"
	"github.com/link2cory/echo-hello-world/internal/server"
)

// RateLimitMiddleware enforces a per-client request rate (keyed by real IP)
// and reports every rejection as a log line and a New Relic event.
type RateLimitMiddleware struct {
	server *server.Server
}

func NewRateLimitMiddleware(s *server.Server) *RateLimitMiddleware {
	return &RateLimitMiddleware{
		server: s,
	}
}

// Enabled reports whether server.rate_limit.enabled is set.
func (r *RateLimitMiddleware) Enabled() bool {
	return r.server.Config.Server.RateLimit.Enabled
}

// Limit returns the limiter middleware backed by an in-memory token bucket store.
func (r *RateLimitMiddleware) Limit() echo.MiddlewareFunc {
	cfg := r.server.Config.Server.RateLimit

	store := middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
		Rate:      rate.Limit(cfg.RequestsPerSecond),
		Burst:     cfg.Burst,
		ExpiresIn: time.Duration(cfg.ExpiresIn) * time.Second,
	})

	return middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Store: store,
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return errs.NewHTTPError(http.StatusForbidden, "")
		},
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			r.RecordRateLimitHit(c, identifier)

			tooMany := errs.NewHTTPError(http.StatusTooManyRequests, "")
			tooMany.Headers = map[string]string{"Retry-After": "1"}
			return tooMany
		},
	})
}

// RecordRateLimitHit logs a rejected request and records a RateLimitHit event.
func (r *RateLimitMiddleware) RecordRateLimitHit(c echo.Context, identifier string) {
	GetLogger(c).Warn().
		Str("client", identifier).
		Str("endpoint", c.Path()).
		Msg("rate limit exceeded")

	r.server.LoggerService.RecordEvent("RateLimitHit", map[string]interface{}{
		"endpoint": c.Path(),
		"method":   c.Request().Method,
	})
}
