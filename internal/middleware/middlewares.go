package middleware

import (
	"github.com/newrelic/go-agent/v3/newrelic"

	"github.com/link2cory/echo-hello-world/internal/server"
)

// Middlewares is a lightweight container that groups all middleware components
// used by the HTTP server, built once from the application container.
type Middlewares struct {
	// Global holds CORS, request logging, recovery, secure headers, body limit
	// and the global error handler.
	Global *GlobalMiddlewares

	// ContextEnhancer enriches each request with a request-scoped logger.
	ContextEnhancer *ContextEnhancer

	// Tracing provides New Relic middleware (no-op when the agent is disabled).
	Tracing *TracingMiddleware

	// Metrics records Prometheus request metrics and serves the registry.
	Metrics *MetricsMiddleware

	// RateLimit enforces the per-client request rate when enabled.
	RateLimit *RateLimitMiddleware
}

// NewMiddlewares constructs all middleware components using the application container.
func NewMiddlewares(s *server.Server) *Middlewares {
	var nrApp *newrelic.Application
	if s.LoggerService != nil {
		nrApp = s.LoggerService.GetApplication()
	}

	return &Middlewares{
		Global:          NewGlobalMiddlewares(s),
		ContextEnhancer: NewContextEnhancer(s),
		Tracing:         NewTracingMiddleware(s, nrApp),
		Metrics:         NewMetricsMiddleware(s),
		RateLimit:       NewRateLimitMiddleware(s),
	}
}
