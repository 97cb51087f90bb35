package errs

import (
	"fmt"
	"strings"
)

// FieldError represents a single offending input value.
// Example:
//
//	{ "loc": ["query", "limit"], "msg": "ensure this value is less than or equal to 100",
//	  "type": "value_error.number.not_le", "ctx": {"limit_value": 100}, "input": 150 }
type FieldError struct {
	// Loc is the path to the value: the source ("path", "query", "header", "cookie", "body")
	// followed by field names and list indexes.
	Loc []any `json:"loc"`

	// Msg is the human-readable error message.
	Msg string `json:"msg"`

	// Type is a stable machine-readable identifier (e.g. "value_error.missing").
	Type string `json:"type"`

	// Ctx carries the constraint parameters, when a constraint was violated.
	Ctx map[string]any `json:"ctx,omitempty"`

	// Input is the offending value as it was received.
	Input any `json:"input"`
}

// Field renders Loc as a dotted path, e.g. "body.body_1.price".
func (f FieldError) Field() string {
	parts := make([]string, 0, len(f.Loc))
	for _, p := range f.Loc {
		parts = append(parts, fmt.Sprint(p))
	}
	return strings.Join(parts, ".")
}

// HTTPError is the error a handler returns to abort with a status code and detail.
//
// It implements the `error` interface via Error().
// Only Detail is serialized: {"detail": "Item not found"}.
// Fields:
//   - Code: machine-friendly error code (e.g. "NOT_FOUND"), used in logs.
//   - Detail: human-friendly message sent to the client verbatim.
//   - Status: HTTP status code.
//   - Headers: extra response headers (optional).
type HTTPError struct {
	Code    string            `json:"-"`
	Detail  string            `json:"detail"`
	Status  int               `json:"-"`
	Headers map[string]string `json:"-"`
}

// Error makes *HTTPError satisfy the built-in `error` interface.
func (e *HTTPError) Error() string {
	return e.Detail
}

// Is customizes how errors.Is(...) treats HTTPError.
//
// It only checks whether the other thing is the same *type* (*HTTPError).
// It does NOT compare Code/Status/Detail.
func (e *HTTPError) Is(target error) bool {
	_, ok := target.(*HTTPError)
	return ok
}

// WithDetail returns a *copy* of this HTTPError with Detail replaced.
func (e *HTTPError) WithDetail(detail string) *HTTPError {
	return &HTTPError{
		Code:    e.Code,
		Detail:  detail,
		Status:  e.Status,
		Headers: e.Headers,
	}
}

// ValidationError is raised before a handler runs when request input is missing,
// cannot be coerced, or violates a declared constraint.
//
// It enumerates every offending field:
//
//	{ "detail": [ {"loc": [...], "msg": "...", "type": "..."}, ... ] }
type ValidationError struct {
	Errors []FieldError `json:"detail"`
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Errors))
	for _, fe := range e.Errors {
		msgs = append(msgs, fmt.Sprintf("%s: %s", fe.Field(), fe.Msg))
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// Is reports whether target is also a *ValidationError.
func (e *ValidationError) Is(target error) bool {
	_, ok := target.(*ValidationError)
	return ok
}

// MakeUpperCaseWithUnderscores converts a string into an UPPER_CASE_WITH_UNDERSCORES format.
//
// Example:
//
//	"Bad Request" -> "BAD_REQUEST"
//
// Used to create stable machine-readable error codes from HTTP status text.
func MakeUpperCaseWithUnderscores(str string) string {
	return strings.ToUpper(strings.ReplaceAll(str, " ", "_"))
}

// ResponseValidationError means a handler returned a value its declared
// response model cannot describe. It is a server fault: the client gets a
// plain 500 and the field errors only go to the log.
type ResponseValidationError struct {
	Model  string
	Errors []FieldError
}

func (e *ResponseValidationError) Error() string {
	msgs := make([]string, 0, len(e.Errors))
	for _, fe := range e.Errors {
		msgs = append(msgs, fmt.Sprintf("%s: %s", fe.Field(), fe.Msg))
	}
	return fmt.Sprintf("response does not match %s: %s", e.Model, strings.Join(msgs, "; "))
}
