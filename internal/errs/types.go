package errs

import (
	"net/http"
)

// NewHTTPError creates an HTTPError for an arbitrary status.
// The code is derived from the status text, e.g. 418 -> "I'M_A_TEAPOT".
func NewHTTPError(status int, detail string) *HTTPError {
	if detail == "" {
		detail = http.StatusText(status)
	}

	return &HTTPError{
		Code:   MakeUpperCaseWithUnderscores(http.StatusText(status)),
		Detail: detail,
		Status: status,
	}
}

// NewBadRequestError creates a 400 Bad Request HTTPError.
func NewBadRequestError(detail string) *HTTPError {
	return NewHTTPError(http.StatusBadRequest, detail)
}

// NewNotFoundError creates a 404 Not Found HTTPError.
//
// Handlers use it for "lookup missed" and the binder uses it for enum path
// segments that are not a member, which is a routing failure rather than a
// validation failure.
func NewNotFoundError(detail string) *HTTPError {
	return NewHTTPError(http.StatusNotFound, detail)
}

// NewMethodNotAllowedError creates a 405 HTTPError.
func NewMethodNotAllowedError() *HTTPError {
	return NewHTTPError(http.StatusMethodNotAllowed, "")
}

// NewInternalServerError creates a 500 Internal Server Error HTTPError.
//
// Note:
//   - detail is the generic status text, not the real internal error message.
//   - clients don't need your stack traces; the original error is logged instead.
func NewInternalServerError() *HTTPError {
	return NewHTTPError(http.StatusInternalServerError, "")
}

// NewValidationError wraps field errors into a 422 ValidationError.
// It returns nil when there is nothing to report so callers can write:
//
//	if err := errs.NewValidationError(fieldErrs); err != nil { return err }
func NewValidationError(fieldErrors []FieldError) *ValidationError {
	if len(fieldErrors) == 0 {
		return nil
	}
	return &ValidationError{Errors: fieldErrors}
}

// ValidationStatus is the status used for ValidationError responses.
const ValidationStatus = http.StatusUnprocessableEntity
