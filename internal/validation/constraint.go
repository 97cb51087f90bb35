package validation

import (
	"fmt"
	"reflect"
	"regexp"
	"strconv"

	"github.com/go-playground/validator/v10"

	"github.com/link2cory/echo-hello-world/internal/errs"
)

// validate is shared: validator caches struct metadata and is safe for concurrent use.
var validate = validator.New()

// Constraint is a single declared rule on a value.
//
// Numeric constraints (gt, ge, lt, le) apply to int and float values, length
// constraints (min_length, max_length) to strings and lists, pattern to strings.
// A constraint that does not apply to the value's kind is skipped.
type Constraint struct {
	// Name is the declared constraint name (e.g. "ge", "max_length").
	Name string

	// Limit is the bound (float64 for numeric, int for length, string for pattern).
	Limit any

	// tag is the go-playground/validator tag evaluating this constraint.
	tag string
	re  *regexp.Regexp
}

// Gt requires value > limit.
func Gt(limit float64) Constraint { return numeric("gt", "gt", limit) }

// Ge requires value >= limit.
func Ge(limit float64) Constraint { return numeric("ge", "gte", limit) }

// Lt requires value < limit.
func Lt(limit float64) Constraint { return numeric("lt", "lt", limit) }

// Le requires value <= limit.
func Le(limit float64) Constraint { return numeric("le", "lte", limit) }

// MinLength requires at least n characters (strings) or items (lists).
func MinLength(n int) Constraint {
	return Constraint{Name: "min_length", Limit: n, tag: "min=" + strconv.Itoa(n)}
}

// MaxLength requires at most n characters (strings) or items (lists).
func MaxLength(n int) Constraint {
	return Constraint{Name: "max_length", Limit: n, tag: "max=" + strconv.Itoa(n)}
}

// Pattern requires a string to match expr. It panics on an invalid expression,
// like regexp.MustCompile, since constraints are declared at startup.
func Pattern(expr string) Constraint {
	return Constraint{Name: "pattern", Limit: expr, re: regexp.MustCompile(expr)}
}

func numeric(name, tag string, limit float64) Constraint {
	return Constraint{
		Name:  name,
		Limit: limit,
		tag:   tag + "=" + strconv.FormatFloat(limit, 'f', -1, 64),
	}
}

// Check evaluates constraints against value in declaration order and returns the
// first violation, or nil when value satisfies all of them.
func Check(value any, loc []any, constraints []Constraint) *errs.FieldError {
	for _, c := range constraints {
		if c.satisfiedBy(value) {
			continue
		}
		fe := c.violation(value, loc)
		return &fe
	}
	return nil
}

func (c Constraint) satisfiedBy(value any) bool {
	switch c.Name {
	case "pattern":
		s, ok := value.(string)
		if !ok {
			return true
		}
		return c.re.MatchString(s)

	case "min_length", "max_length":
		if !hasLength(value) {
			return true
		}
		return validate.Var(value, c.tag) == nil

	default:
		n, ok := asFloat(value)
		if !ok {
			return true
		}
		// Numbers are compared as float64 so an int value never meets a float param
		// the validator would fail to parse as an integer.
		return validate.Var(n, c.tag) == nil
	}
}

func (c Constraint) violation(value any, loc []any) errs.FieldError {
	fe := errs.FieldError{
		Loc:   CopyLoc(loc),
		Input: value,
		Ctx:   map[string]any{"limit_value": c.Limit},
	}

	switch c.Name {
	case "gt":
		fe.Msg = fmt.Sprintf("ensure this value is greater than %s", formatLimit(c.Limit))
		fe.Type = "value_error.number.not_gt"
	case "ge":
		fe.Msg = fmt.Sprintf("ensure this value is greater than or equal to %s", formatLimit(c.Limit))
		fe.Type = "value_error.number.not_ge"
	case "lt":
		fe.Msg = fmt.Sprintf("ensure this value is less than %s", formatLimit(c.Limit))
		fe.Type = "value_error.number.not_lt"
	case "le":
		fe.Msg = fmt.Sprintf("ensure this value is less than or equal to %s", formatLimit(c.Limit))
		fe.Type = "value_error.number.not_le"
	case "min_length":
		if _, isString := value.(string); isString {
			fe.Msg = fmt.Sprintf("ensure this value has at least %d characters", c.Limit)
			fe.Type = "value_error.any_str.min_length"
		} else {
			fe.Msg = fmt.Sprintf("ensure this value has at least %d items", c.Limit)
			fe.Type = "value_error.list.min_items"
		}
	case "max_length":
		if _, isString := value.(string); isString {
			fe.Msg = fmt.Sprintf("ensure this value has at most %d characters", c.Limit)
			fe.Type = "value_error.any_str.max_length"
		} else {
			fe.Msg = fmt.Sprintf("ensure this value has at most %d items", c.Limit)
			fe.Type = "value_error.list.max_items"
		}
	case "pattern":
		fe.Msg = fmt.Sprintf("string does not match regex %q", c.Limit)
		fe.Type = "value_error.str.regex"
		fe.Ctx = map[string]any{"pattern": c.Limit}
	}

	return fe
}

func formatLimit(limit any) string {
	if f, ok := limit.(float64); ok {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	return fmt.Sprint(limit)
}

func hasLength(value any) bool {
	if value == nil {
		return false
	}
	switch reflect.TypeOf(value).Kind() {
	case reflect.String, reflect.Slice, reflect.Map:
		return true
	}
	return false
}

func asFloat(value any) (float64, bool) {
	switch n := value.(type) {
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}
