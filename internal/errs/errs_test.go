package errs

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewHTTPError(t *testing.T) {
	err := NewNotFoundError("Item not found")
	assert.Equal(t, http.StatusNotFound, err.Status)
	assert.Equal(t, "NOT_FOUND", err.Code)
	assert.Equal(t, "Item not found", err.Error())

	err = NewHTTPError(http.StatusTeapot, "")
	assert.Equal(t, "I'm a teapot", err.Detail)
	assert.Equal(t, "I'M_A_TEAPOT", err.Code)

	assert.Equal(t, "Internal Server Error", NewInternalServerError().Detail)
	assert.Equal(t, http.StatusMethodNotAllowed, NewMethodNotAllowedError().Status)
}

func TestHTTPError_JSON(t *testing.T) {
	err := NewBadRequestError("There was an error parsing the body")
	err.Headers = map[string]string{"X-Error": "1"}

	out, marshalErr := json.Marshal(err)
	require.NoError(t, marshalErr)
	assert.JSONEq(t, `{"detail":"There was an error parsing the body"}`, string(out))
}

func TestHTTPError_WithDetail(t *testing.T) {
	base := NewNotFoundError("")
	derived := base.WithDetail("Vehicle not found")

	assert.Equal(t, "Not Found", base.Detail)
	assert.Equal(t, "Vehicle not found", derived.Detail)
	assert.Equal(t, base.Status, derived.Status)
}

func TestErrorsAsThroughWrapping(t *testing.T) {
	wrapped := errors.Wrap(NewNotFoundError("Item not found"), "lookup")

	var httpErr *HTTPError
	require.True(t, errors.As(wrapped, &httpErr))
	assert.Equal(t, http.StatusNotFound, httpErr.Status)
	assert.True(t, errors.Is(wrapped, &HTTPError{}))
}

func TestValidationError(t *testing.T) {
	assert.Nil(t, NewValidationError(nil))

	err := NewValidationError([]FieldError{
		{Loc: []any{"path", "item_id"}, Msg: "value is not a valid integer", Type: "type_error.integer", Input: "abc"},
		{Loc: []any{"body", "bodys", 0, "price"}, Msg: "field required", Type: "value_error.missing"},
	})
	require.NotNil(t, err)

	assert.Equal(t, "validation failed: path.item_id: value is not a valid integer; body.bodys.0.price: field required", err.Error())

	out, marshalErr := json.Marshal(err)
	require.NoError(t, marshalErr)
	assert.JSONEq(t, `{"detail":[
		{"loc":["path","item_id"],"msg":"value is not a valid integer","type":"type_error.integer","input":"abc"},
		{"loc":["body","bodys",0,"price"],"msg":"field required","type":"value_error.missing","input":null}
	]}`, string(out))
}

func TestResponseValidationError(t *testing.T) {
	err := &ResponseValidationError{
		Model:  "UserOut",
		Errors: []FieldError{{Loc: []any{"response", "email"}, Msg: "field required"}},
	}
	assert.Equal(t, "response does not match UserOut: response.email: field required", err.Error())
}
