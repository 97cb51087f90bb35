package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/link2cory/echo-hello-world/internal/config"
	"github.com/link2cory/echo-hello-world/internal/errs"
	"github.com/link2cory/echo-hello-world/internal/middleware"
	"github.com/link2cory/echo-hello-world/internal/params"
	"github.com/link2cory/echo-hello-world/internal/schema"
	"github.com/link2cory/echo-hello-world/internal/server"
)

var testOut = schema.New("TestOut",
	schema.Required("id", schema.Int()),
	schema.Nullable("note", schema.String()),
)

func newTestServer(t *testing.T) *server.Server {
	t.Helper()

	logger := zerolog.Nop()
	srv, err := server.New(config.Default(), &logger, nil)
	require.NoError(t, err)
	return srv
}

// serve mounts a single endpoint behind the global error handler.
func serve(t *testing.T, e Endpoint, target string) *httptest.ResponseRecorder {
	t.Helper()

	srv := newTestServer(t)
	fn, _, err := Handle(NewHandler(srv), e)
	require.NoError(t, err)

	router := echo.New()
	router.HTTPErrorHandler = middleware.NewGlobalMiddlewares(srv).GlobalErrorHandler
	router.Add(e.Method, e.Path, fn)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(e.Method, target, nil))
	return rec
}

func TestHandle_DefaultStatus(t *testing.T) {
	_, route, err := Handle(NewHandler(newTestServer(t)), Endpoint{
		Method:  http.MethodGet,
		Path:    "/",
		Handler: func(c echo.Context, in *params.Values) (any, error) { return nil, nil },
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, route.Status)
}

func TestHandle_RejectsBadDeclarations(t *testing.T) {
	h := NewHandler(newTestServer(t))

	_, _, err := Handle(h, Endpoint{Method: http.MethodGet, Path: "/"})
	assert.ErrorContains(t, err, "no handler")

	_, _, err = Handle(h, Endpoint{
		Method:  http.MethodGet,
		Path:    "/items/:item_id",
		Handler: func(c echo.Context, in *params.Values) (any, error) { return nil, nil },
	})
	assert.ErrorContains(t, err, "item_id")
}

func TestHandle_ModelShapesResponse(t *testing.T) {
	rec := serve(t, Endpoint{
		Method:   http.MethodGet,
		Path:     "/thing",
		Response: &schema.Model{Type: schema.Object(testOut)},
		Handler: func(c echo.Context, in *params.Values) (any, error) {
			return map[string]any{"id": 7, "secret": "dropped"}, nil
		},
	}, "/thing")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"id":7,"note":null}`, rec.Body.String())
}

func TestHandle_ResponseValidationFailureIsServerError(t *testing.T) {
	rec := serve(t, Endpoint{
		Method:   http.MethodGet,
		Path:     "/broken",
		Response: &schema.Model{Type: schema.Object(testOut)},
		Handler: func(c echo.Context, in *params.Values) (any, error) {
			return map[string]any{"id": "not a number"}, nil
		},
	}, "/broken")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"detail":"Internal Server Error"}`, rec.Body.String())
}

func TestHandle_HandlerErrors(t *testing.T) {
	rec := serve(t, Endpoint{
		Method: http.MethodGet,
		Path:   "/teapot",
		Handler: func(c echo.Context, in *params.Values) (any, error) {
			err := errs.NewHTTPError(http.StatusTeapot, "short and stout")
			err.Headers = map[string]string{"X-Kettle": "on"}
			return nil, err
		},
	}, "/teapot")

	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.Equal(t, "on", rec.Header().Get("X-Kettle"))
	assert.JSONEq(t, `{"detail":"short and stout"}`, rec.Body.String())

	rec = serve(t, Endpoint{
		Method: http.MethodGet,
		Path:   "/boom",
		Handler: func(c echo.Context, in *params.Values) (any, error) {
			return nil, errors.New("database exploded")
		},
	}, "/boom")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "exploded")
}

func TestHandle_CustomStatus(t *testing.T) {
	rec := serve(t, Endpoint{
		Method: http.MethodPost,
		Path:   "/things",
		Status: http.StatusCreated,
		Handler: func(c echo.Context, in *params.Values) (any, error) {
			return map[string]any{"ok": true}, nil
		},
	}, "/things")

	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestDocs_DescribesRoutes(t *testing.T) {
	srv := newTestServer(t)
	docs := NewDocsHandler(srv)

	_, route, err := Handle(NewHandler(srv), Endpoint{
		Method: http.MethodGet,
		Path:   "/items/:item_id",
		Name:   "read_item",
		Params: []params.Param{
			params.Infer("item_id", schema.Int()),
			params.Header("x_token", schema.ListOf(schema.String()), params.Optional()),
			params.Query("limit", schema.Int(), params.Default(int64(10))),
		},
		Response: &schema.Model{Type: schema.Object(testOut), ExcludeUnset: true},
		Handler:  func(c echo.Context, in *params.Values) (any, error) { return nil, nil },
	})
	require.NoError(t, err)
	docs.Register(route)

	rec := httptest.NewRecorder()
	c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/docs", nil), rec)
	require.NoError(t, docs.ServeDocs(c))

	var body struct {
		Service string `json:"service"`
		Routes  []struct {
			Path       string           `json:"path"`
			StatusCode int              `json:"status_code"`
			Parameters []map[string]any `json:"parameters"`
			Response   map[string]any   `json:"response_model"`
		} `json:"routes"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Routes, 1)

	r := body.Routes[0]
	assert.Equal(t, "/items/:item_id", r.Path)
	assert.Equal(t, http.StatusOK, r.StatusCode)
	require.Len(t, r.Parameters, 3)
	assert.Equal(t, "path", r.Parameters[0]["in"])
	assert.Equal(t, "x-token", r.Parameters[1]["name"])
	assert.Equal(t, "array[string]", r.Parameters[1]["type"])
	assert.Equal(t, float64(10), r.Parameters[2]["default"])
	assert.Equal(t, "TestOut", r.Response["type"])
	assert.Equal(t, true, r.Response["exclude_unset"])
}
