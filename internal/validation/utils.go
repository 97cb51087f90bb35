package validation

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/link2cory/echo-hello-world/internal/errs"
)

// truthy is the fixed token set parsed as true from text input.
var truthy = map[string]bool{
	"1":    true,
	"true": true,
	"on":   true,
	"yes":  true,
}

// falsy is only consulted for JSON string input, where an unknown token is an error.
var falsy = map[string]bool{
	"0":     true,
	"false": true,
	"off":   true,
	"no":    true,
}

// ParseBool parses text input (query, path, header, cookie, form values).
// "1", "true", "on" and "yes" (any case) are true; everything else is false.
func ParseBool(s string) bool {
	return truthy[strings.ToLower(strings.TrimSpace(s))]
}

// ParseStrictBool parses a boolean sent as a JSON string and reports whether the
// token was recognised at all.
func ParseStrictBool(s string) (value bool, ok bool) {
	token := strings.ToLower(strings.TrimSpace(s))
	switch {
	case truthy[token]:
		return true, true
	case falsy[token]:
		return false, true
	}
	return false, false
}

// ParseInt parses a base-10 integer.
func ParseInt(s string) (int64, error) {
	return strconv.ParseInt(strings.TrimSpace(s), 10, 64)
}

// ParseFloat parses a decimal floating point number.
func ParseFloat(s string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(s), 64)
}

// Loc builds a location by appending parts to a copy of base.
func Loc(base []any, parts ...any) []any {
	loc := make([]any, 0, len(base)+len(parts))
	loc = append(loc, base...)
	return append(loc, parts...)
}

// CopyLoc returns a copy of loc so stored errors never alias a caller's slice.
func CopyLoc(loc []any) []any {
	return Loc(loc)
}

// Missing reports a required value that was not supplied.
func Missing(loc []any) errs.FieldError {
	return errs.FieldError{
		Loc:  CopyLoc(loc),
		Msg:  "field required",
		Type: "value_error.missing",
	}
}

// NoneNotAllowed reports an explicit null for a field that is not nullable.
func NoneNotAllowed(loc []any) errs.FieldError {
	return errs.FieldError{
		Loc:  CopyLoc(loc),
		Msg:  "none is not an allowed value",
		Type: "type_error.none.not_allowed",
	}
}

// InvalidType reports a value that could not be coerced to the expected type.
//
// expected is one of: "integer", "float", "boolean", "string", "list", "dict".
func InvalidType(expected string, input any, loc []any) errs.FieldError {
	msg := fmt.Sprintf("value is not a valid %s", expected)
	switch expected {
	case "boolean":
		msg = "value could not be parsed to a boolean"
		expected = "bool"
	case "string":
		msg = "str type expected"
		expected = "str"
	}

	return errs.FieldError{
		Loc:   CopyLoc(loc),
		Msg:   msg,
		Type:  "type_error." + expected,
		Input: input,
	}
}

// NotAMember reports a value outside a closed enumeration.
func NotAMember(input any, permitted []string, loc []any) errs.FieldError {
	quoted := make([]string, 0, len(permitted))
	for _, p := range permitted {
		quoted = append(quoted, "'"+p+"'")
	}

	return errs.FieldError{
		Loc:   CopyLoc(loc),
		Msg:   "value is not a valid enumeration member; permitted: " + strings.Join(quoted, ", "),
		Type:  "type_error.enum",
		Ctx:   map[string]any{"enum_values": permitted},
		Input: input,
	}
}

// InvalidJSON reports a request body that is not valid JSON.
func InvalidJSON(err error, loc []any) errs.FieldError {
	return errs.FieldError{
		Loc:  CopyLoc(loc),
		Msg:  err.Error(),
		Type: "value_error.jsondecode",
	}
}
