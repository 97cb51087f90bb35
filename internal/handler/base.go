package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/pkg/errors"

	"github.com/link2cory/echo-hello-world/internal/errs"
	"github.com/link2cory/echo-hello-world/internal/middleware"
	"github.com/link2cory/echo-hello-world/internal/params"
	"github.com/link2cory/echo-hello-world/internal/schema"
	"github.com/link2cory/echo-hello-world/internal/server"
)

// Handler is the base handler type that holds shared application dependencies.
//
// It is embedded by concrete handlers (ExamplesHandler, HealthHandler, ...)
// so they can reach config and logging through *server.Server.
type Handler struct {
	server *server.Server
}

// NewHandler constructs a base Handler.
func NewHandler(s *server.Server) Handler {
	return Handler{server: s}
}

// EndpointFunc is the body of an endpoint. It receives the bound, coerced and
// validated parameters and returns the value to serialize or an error.
//
// Returning *errs.HTTPError aborts with that status and detail; any other
// error becomes a 500.
type EndpointFunc func(c echo.Context, in *params.Values) (any, error)

// Endpoint is one entry of the route table.
type Endpoint struct {
	Method  string
	Path    string
	Name    string
	Summary string

	// Params are classified at registration; declaration order does not matter.
	Params []params.Param

	// Response, when set, projects the return value before serialization.
	Response *schema.Model

	// Status is the success status, 200 when zero.
	Status int

	Handler EndpointFunc
}

// Route is a registered endpoint together with its resolved signature.
type Route struct {
	Endpoint
	Signature *params.Signature
}

// ResponseHandler defines how a successful handler result is written to the
// HTTP response and which observability attributes go with it.
type ResponseHandler interface {
	// Handle writes the HTTP response for the given result.
	Handle(c echo.Context, result interface{}) error

	// GetOperation returns an operation name used for structured logging.
	GetOperation() string

	// AddAttributes attaches New Relic attributes based on response type and/or result.
	AddAttributes(txn *newrelic.Transaction, result interface{})
}

// JSONResponseHandler serializes the result as-is: records keep their
// declared field order, everything else goes through encoding/json.
type JSONResponseHandler struct {
	status int
}

func (h JSONResponseHandler) Handle(c echo.Context, result interface{}) error {
	return c.JSON(h.status, schema.Render(result))
}

func (h JSONResponseHandler) GetOperation() string {
	return "handler"
}

func (h JSONResponseHandler) AddAttributes(txn *newrelic.Transaction, result interface{}) {
	// http.status_code is already set by tracing middleware (EnhanceTracing).
}

// ModelResponseHandler projects the result onto a declared response model.
type ModelResponseHandler struct {
	status int
	model  schema.Model
}

func (h ModelResponseHandler) Handle(c echo.Context, result interface{}) error {
	shaped, fieldErrors := h.model.Shape(result)
	if len(fieldErrors) > 0 {
		return errors.WithStack(&errs.ResponseValidationError{
			Model:  h.model.Type.String(),
			Errors: fieldErrors,
		})
	}
	return c.JSON(h.status, shaped)
}

func (h ModelResponseHandler) GetOperation() string {
	return "handler_model"
}

func (h ModelResponseHandler) AddAttributes(txn *newrelic.Transaction, result interface{}) {
	if txn != nil {
		txn.AddAttribute("response.model", h.model.Type.String())
	}
}

// handleRequest is the shared execution pipeline for all endpoints:
//
// - parameter binding + validation (timed)
// - handler execution (timed)
// - response projection and writing
// - structured logging with the request-scoped logger
// - New Relic attributes and error reporting
//
// Temporary upload files are released on every exit path.
func handleRequest(
	c echo.Context,
	h Handler,
	sig *params.Signature,
	handler EndpointFunc,
	responseHandler ResponseHandler,
) error {
	start := time.Now()
	route := c.Path()

	txn := newrelic.FromContext(c.Request().Context())
	if txn != nil {
		txn.AddAttribute("handler.name", route)
		responseHandler.AddAttributes(txn, nil)
	}

	logger := middleware.GetLogger(c).With().
		Str("operation", responseHandler.GetOperation()).
		Str("route", route).
		Logger()

	logger.Debug().Msg("handling request")

	// ---------------- Binding phase ------------------------------------------
	bindStart := time.Now()

	in, cleanup, err := sig.Bind(c, params.BindOptions{
		MemoryThreshold: h.server.Config.Upload.MemoryThreshold,
	})
	defer cleanup()

	bindDuration := time.Since(bindStart)

	if err != nil {
		logger.Warn().
			Err(err).
			Dur("validation_duration", bindDuration).
			Msg("request validation failed")

		if txn != nil {
			txn.AddAttribute("validation.status", "failed")
			txn.AddAttribute("validation.duration_ms", bindDuration.Milliseconds())
		}

		return err
	}

	if txn != nil {
		txn.AddAttribute("validation.status", "success")
		txn.AddAttribute("validation.duration_ms", bindDuration.Milliseconds())
	}

	// ---------------- Handler execution phase --------------------------------
	handlerStart := time.Now()
	result, err := handler(c, in)
	handlerDuration := time.Since(handlerStart)

	if err != nil {
		totalDuration := time.Since(start)

		var httpErr *errs.HTTPError
		event := logger.Error().Stack()
		if errors.As(err, &httpErr) && httpErr.Status < http.StatusInternalServerError {
			event = logger.Info()
		}
		event.
			Err(err).
			Dur("handler_duration", handlerDuration).
			Dur("total_duration", totalDuration).
			Msg("handler execution failed")

		if txn != nil {
			txn.AddAttribute("handler.status", "error")
			txn.AddAttribute("handler.duration_ms", handlerDuration.Milliseconds())
			txn.AddAttribute("total.duration_ms", totalDuration.Milliseconds())
		}
		return err
	}

	// ---------------- Response phase -----------------------------------------
	if err := responseHandler.Handle(c, result); err != nil {
		logger.Error().
			Stack().
			Err(err).
			Msg("response serialization failed")
		return err
	}

	totalDuration := time.Since(start)

	if txn != nil {
		txn.AddAttribute("handler.status", "success")
		txn.AddAttribute("handler.duration_ms", handlerDuration.Milliseconds())
		txn.AddAttribute("total.duration_ms", totalDuration.Milliseconds())
		responseHandler.AddAttributes(txn, result)
	}

	logger.Info().
		Dur("handler_duration", handlerDuration).
		Dur("validation_duration", bindDuration).
		Dur("total_duration", totalDuration).
		Msg("request completed successfully")

	return nil
}

// Handle resolves the endpoint's parameter signature and wraps it into the
// shared pipeline. Declaration mistakes surface here, at startup.
//
// Usage pattern:
//
//	fn, route, err := handler.Handle(h, handler.Endpoint{Method: http.MethodGet, Path: "/items/:item_id", ...})
func Handle(h Handler, e Endpoint) (echo.HandlerFunc, *Route, error) {
	sig, err := params.NewSignature(e.Path, e.Params...)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "%s %s", e.Method, e.Path)
	}
	if e.Handler == nil {
		return nil, nil, errors.Errorf("%s %s: no handler", e.Method, e.Path)
	}

	status := e.Status
	if status == 0 {
		status = http.StatusOK
	}

	var responseHandler ResponseHandler = JSONResponseHandler{status: status}
	if e.Response != nil {
		responseHandler = ModelResponseHandler{status: status, model: *e.Response}
	}

	fn := func(c echo.Context) error {
		return handleRequest(c, h, sig, e.Handler, responseHandler)
	}

	e.Status = status
	return fn, &Route{Endpoint: e, Signature: sig}, nil
}
