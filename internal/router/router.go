// Package router initializes the HTTP router (using Echo).
//
// It registers the middlewares and the route table, mapping specific paths
// to their corresponding handlers.
package router

import (
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/link2cory/echo-hello-world/internal/handler"
	"github.com/link2cory/echo-hello-world/internal/middleware"
	"github.com/link2cory/echo-hello-world/internal/server"
)

// NewRouter builds the echo instance serving the whole application.
// A malformed endpoint declaration fails here rather than at request time.
func NewRouter(s *server.Server, h *handler.Handlers) (*echo.Echo, error) {
	middlewares := middleware.NewMiddlewares(s)

	router := echo.New()
	router.HideBanner = true
	router.HidePort = true

	router.HTTPErrorHandler = middlewares.Global.GlobalErrorHandler

	// global middlewares
	router.Use(
		middleware.RequestID(),
		middlewares.Tracing.NewRelicMiddleware(),
		middlewares.Tracing.EnhanceTracing(),
		middlewares.ContextEnhancer.EnhanceContext(),
		middlewares.Metrics.Collect(),
		middlewares.Global.RequestLogger(),
		middlewares.Global.CORS(),
		middlewares.Global.Secure(),
		middlewares.Global.BodyLimit(),
		middlewares.Global.Recover(),
	)

	if middlewares.RateLimit.Enabled() {
		router.Use(middlewares.RateLimit.Limit())
	}

	registerSystemRoutes(router, h, middlewares)

	if err := registerExampleRoutes(router, h); err != nil {
		return nil, err
	}

	return router, nil
}

// registerExampleRoutes mounts the showcase endpoints and records each one
// for the docs endpoint.
func registerExampleRoutes(r *echo.Echo, h *handler.Handlers) error {
	for _, endpoint := range h.Examples.Endpoints() {
		fn, route, err := handler.Handle(h.Examples.Handler, endpoint)
		if err != nil {
			return errors.Wrap(err, "failed to register route")
		}

		r.Add(endpoint.Method, endpoint.Path, fn).Name = endpoint.Name
		h.Docs.Register(route)
	}

	return nil
}
