package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/link2cory/echo-hello-world/internal/config"
	"github.com/link2cory/echo-hello-world/internal/errs"
	"github.com/link2cory/echo-hello-world/internal/server"
)

func newTestServer(t *testing.T) *server.Server {
	t.Helper()

	logger := zerolog.Nop()
	srv, err := server.New(config.Default(), &logger, nil)
	require.NoError(t, err)
	return srv
}

func handleError(t *testing.T, method string, err error) *httptest.ResponseRecorder {
	t.Helper()

	global := NewGlobalMiddlewares(newTestServer(t))
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(httptest.NewRequest(method, "/", nil), rec)

	global.GlobalErrorHandler(err, c)
	return rec
}

func TestStatusFromError(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, StatusFromError(errs.NewNotFoundError("x")))
	assert.Equal(t, http.StatusUnprocessableEntity, StatusFromError(errs.NewValidationError([]errs.FieldError{{Msg: "x"}})))
	assert.Equal(t, http.StatusRequestEntityTooLarge, StatusFromError(echo.ErrStatusRequestEntityTooLarge))
	assert.Equal(t, http.StatusInternalServerError, StatusFromError(errors.New("boom")))
	assert.Equal(t, http.StatusNotFound, StatusFromError(errors.Wrap(errs.NewNotFoundError("x"), "wrapped")))
}

func TestGlobalErrorHandler(t *testing.T) {
	rec := handleError(t, http.MethodGet, errs.NewValidationError([]errs.FieldError{
		{Loc: []any{"query", "q"}, Msg: "field required", Type: "value_error.missing"},
	}))
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.JSONEq(t, `{"detail":[{"loc":["query","q"],"msg":"field required","type":"value_error.missing","input":null}]}`, rec.Body.String())

	rec = handleError(t, http.MethodGet, echo.ErrStatusRequestEntityTooLarge)
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	assert.JSONEq(t, `{"detail":"Request Entity Too Large"}`, rec.Body.String())

	rec = handleError(t, http.MethodGet, errors.WithStack(&errs.ResponseValidationError{Model: "X"}))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"detail":"Internal Server Error"}`, rec.Body.String())

	rec = handleError(t, http.MethodHead, errs.NewNotFoundError("Item not found"))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestRequestID(t *testing.T) {
	e := echo.New()
	var seen string
	handler := RequestID()(func(c echo.Context) error {
		seen = GetRequestID(c)
		return nil
	})

	rec := httptest.NewRecorder()
	require.NoError(t, handler(e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)))
	assert.Len(t, seen, 36)
	assert.Equal(t, seen, rec.Header().Get(RequestIDHeader))
}

func TestRequestID_Incoming(t *testing.T) {
	tests := []struct {
		name   string
		header string
		reused bool
	}{
		{"reused", "abc-123", true},
		{"at length cap", strings.Repeat("a", maxRequestIDLength), true},
		{"over length cap", strings.Repeat("a", maxRequestIDLength+1), false},
		{"control character", "abc\x01def", false},
		{"inner space", "abc def", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var seen string
			handler := RequestID()(func(c echo.Context) error {
				seen = GetRequestID(c)
				return nil
			})

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Header.Set(RequestIDHeader, tt.header)
			rec := httptest.NewRecorder()
			require.NoError(t, handler(echo.New().NewContext(req, rec)))

			if tt.reused {
				assert.Equal(t, tt.header, seen)
			} else {
				assert.NotEqual(t, tt.header, seen)
				_, err := uuid.Parse(seen)
				assert.NoError(t, err)
			}
			assert.Equal(t, seen, rec.Header().Get(RequestIDHeader))
		})
	}
}

func TestGetLogger_WithoutEnhancer(t *testing.T) {
	c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	assert.NotNil(t, GetLogger(c))
	assert.NotNil(t, LoggerFromContext(c.Request().Context()))
}
