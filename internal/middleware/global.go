package middleware

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/link2cory/echo-hello-world/internal/errs"
	"github.com/link2cory/echo-hello-world/internal/server"
)

// GlobalMiddlewares groups global middleware and the global error handler.
type GlobalMiddlewares struct {
	server *server.Server
}

func NewGlobalMiddlewares(s *server.Server) *GlobalMiddlewares {
	return &GlobalMiddlewares{
		server: s,
	}
}

// CORS returns Echo's CORS middleware configured by server.cors_allowed_origins.
func (global *GlobalMiddlewares) CORS() echo.MiddlewareFunc {
	return middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: global.server.Config.Server.CORSAllowedOrigins,
	})
}

// RequestLogger produces one "API" log line per request, with severity based on status.
func (global *GlobalMiddlewares) RequestLogger() echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:     true,
		LogStatus:  true,
		LogError:   true,
		LogLatency: true,
		LogHost:    true,
		LogMethod:  true,
		LogURIPath: true,

		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			statusCode := v.Status

			// When a handler returns an error the global error handler has not
			// written the response yet, so derive the status from the error.
			// Reference: https://github.com/labstack/echo/issues/2310#issuecomment-1288196898
			if v.Error != nil {
				statusCode = StatusFromError(v.Error)
			}

			logger := GetLogger(c)

			var e *zerolog.Event
			switch {
			case statusCode >= 500:
				e = logger.Error().Err(v.Error)
			case statusCode >= 400:
				e = logger.Warn()
			default:
				e = logger.Info()
			}

			e.
				Dur("latency", v.Latency).
				Int("status", statusCode).
				Str("method", v.Method).
				Str("uri", v.URI).
				Str("host", v.Host).
				Str("ip", c.RealIP()).
				Str("user_agent", c.Request().UserAgent()).
				Msg("API")

			return nil
		},
	})
}

// Recover turns handler panics into errors for the global error handler (500).
func (global *GlobalMiddlewares) Recover() echo.MiddlewareFunc {
	return middleware.RecoverWithConfig(middleware.RecoverConfig{
		LogErrorFunc: func(c echo.Context, err error, stack []byte) error {
			GetLogger(c).Error().
				Err(err).
				Str("stack", string(stack)).
				Msg("recovered from panic")
			return err
		},
	})
}

// Secure returns Echo's secure headers middleware.
func (global *GlobalMiddlewares) Secure() echo.MiddlewareFunc {
	return middleware.Secure()
}

// BodyLimit caps request bodies at server.body_limit (e.g. "32M").
func (global *GlobalMiddlewares) BodyLimit() echo.MiddlewareFunc {
	return middleware.BodyLimit(global.server.Config.Server.BodyLimit)
}

// StatusFromError returns the status the global error handler will answer with.
func StatusFromError(err error) int {
	var httpErr *errs.HTTPError
	var validationErr *errs.ValidationError
	var echoErr *echo.HTTPError

	switch {
	case errors.As(err, &httpErr):
		return httpErr.Status
	case errors.As(err, &validationErr):
		return errs.ValidationStatus
	case errors.As(err, &echoErr):
		return echoErr.Code
	}
	return http.StatusInternalServerError
}

// GlobalErrorHandler is the final error funnel for the entire HTTP server.
//
// Every error is answered with a {"detail": ...} body:
//   - *errs.ValidationError: 422 with the list of field errors.
//   - *errs.HTTPError: its status, headers and detail, verbatim.
//   - *echo.HTTPError (no route, wrong method, body too large, ...): its code and message.
//   - anything else: 500 "Internal Server Error"; the real error only goes to the log.
func (global *GlobalMiddlewares) GlobalErrorHandler(err error, c echo.Context) {
	var (
		httpErr       *errs.HTTPError
		validationErr *errs.ValidationError
		echoErr       *echo.HTTPError
	)

	status := StatusFromError(err)
	var body any

	switch {
	case errors.As(err, &validationErr):
		body = validationErr

	case errors.As(err, &httpErr):
		for k, v := range httpErr.Headers {
			c.Response().Header().Set(k, v)
		}
		body = httpErr

	case errors.As(err, &echoErr):
		detail := http.StatusText(echoErr.Code)
		if msg, ok := echoErr.Message.(string); ok && msg != "" {
			detail = msg
		} else if echoErr.Message != nil {
			detail = fmt.Sprint(echoErr.Message)
		}
		body = errs.NewHTTPError(echoErr.Code, detail)

	default:
		body = errs.NewInternalServerError()
	}

	logger := GetLogger(c)

	var e *zerolog.Event
	if status >= 500 {
		e = logger.Error().Stack()
	} else {
		e = logger.Debug()
	}
	e.Err(err).
		Int("status", status).
		Str("error_code", errs.MakeUpperCaseWithUnderscores(http.StatusText(status))).
		Msg("request failed")

	if c.Response().Committed {
		return
	}

	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(status)
		return
	}
	_ = c.JSON(status, body)
}
