package router

import (
	"github.com/labstack/echo/v4"

	"github.com/link2cory/echo-hello-world/internal/handler"
	"github.com/link2cory/echo-hello-world/internal/middleware"
)

// registerSystemRoutes registers "system" endpoints that are not part of the
// example catalog: health, the route contract and Prometheus metrics.
func registerSystemRoutes(r *echo.Echo, h *handler.Handlers, m *middleware.Middlewares) {
	// Health status endpoint (used by Kubernetes/monitors).
	r.GET("/status", h.Health.CheckHealth)

	r.GET("/docs", h.Docs.ServeDocs)

	if m.Metrics.Enabled() {
		r.GET(m.Metrics.Path(), m.Metrics.Handler())
	}
}
