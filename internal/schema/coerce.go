package schema

import (
	"encoding/json"
	"math"
	"reflect"
	"strconv"

	"github.com/link2cory/echo-hello-world/internal/errs"
	"github.com/link2cory/echo-hello-world/internal/validation"
)

// Coerce converts a decoded JSON value (or a Go value built by a handler)
// into the canonical representation of t. All offending nested values are
// reported, each with its own location.
func (t Type) Coerce(raw any, loc []any) (any, []errs.FieldError) {
	if raw == nil {
		if t.Kind == KindAny {
			return nil, nil
		}
		return nil, []errs.FieldError{validation.NoneNotAllowed(loc)}
	}

	switch t.Kind {
	case KindAny:
		return raw, nil
	case KindString:
		return coerceString(raw, loc)
	case KindInt:
		return coerceInt(raw, loc)
	case KindFloat:
		return coerceFloat(raw, loc)
	case KindBool:
		return coerceBool(raw, loc)
	case KindEnum:
		s, ok := raw.(string)
		if !ok || !t.Enum.Contains(s) {
			return nil, []errs.FieldError{validation.NotAMember(raw, t.Enum.Members(), loc)}
		}
		return s, nil
	case KindList:
		return t.coerceList(raw, loc)
	case KindMap:
		return t.coerceMap(raw, loc)
	case KindObject:
		return t.Schema.coerce(raw, loc)
	case KindUnion:
		return t.coerceUnion(raw, loc)
	}
	return raw, nil
}

// CoerceText converts a single text value (path segment, query string, header,
// cookie or form field) into t, which must be primitive.
func (t Type) CoerceText(s string, loc []any) (any, *errs.FieldError) {
	switch t.Kind {
	case KindString, KindAny:
		return s, nil
	case KindInt:
		n, err := validation.ParseInt(s)
		if err != nil {
			fe := validation.InvalidType("integer", s, loc)
			return nil, &fe
		}
		return n, nil
	case KindFloat:
		f, err := validation.ParseFloat(s)
		if err != nil {
			fe := validation.InvalidType("float", s, loc)
			return nil, &fe
		}
		return f, nil
	case KindBool:
		return validation.ParseBool(s), nil
	case KindEnum:
		if !t.Enum.Contains(s) {
			fe := validation.NotAMember(s, t.Enum.Members(), loc)
			return nil, &fe
		}
		return s, nil
	}

	fe := validation.InvalidType(t.String(), s, loc)
	return nil, &fe
}

func coerceString(raw any, loc []any) (any, []errs.FieldError) {
	switch v := raw.(type) {
	case string:
		return v, nil
	case json.Number:
		return v.String(), nil
	case int, int64, float64:
		return number(v), nil
	}
	return nil, []errs.FieldError{validation.InvalidType("string", raw, loc)}
}

func number(v any) string {
	switch n := v.(type) {
	case int:
		return strconv.Itoa(n)
	case int64:
		return strconv.FormatInt(n, 10)
	case float64:
		return strconv.FormatFloat(n, 'f', -1, 64)
	}
	return ""
}

func coerceInt(raw any, loc []any) (any, []errs.FieldError) {
	invalid := []errs.FieldError{validation.InvalidType("integer", raw, loc)}

	switch v := raw.(type) {
	case int:
		return int64(v), nil
	case int64:
		return v, nil
	case float64:
		if !integral(v) {
			return nil, invalid
		}
		return int64(v), nil
	case json.Number:
		if n, err := v.Int64(); err == nil {
			return n, nil
		}
		f, err := v.Float64()
		if err != nil || !integral(f) {
			return nil, invalid
		}
		return int64(f), nil
	case string:
		n, err := validation.ParseInt(v)
		if err != nil {
			return nil, invalid
		}
		return n, nil
	}
	return nil, invalid
}

// integral reports whether f is a whole number that fits in an int64.
// NaN fails the first comparison; infinities fail the range check.
func integral(f float64) bool {
	return f == math.Trunc(f) && f >= math.MinInt64 && f < math.MaxInt64
}

func coerceFloat(raw any, loc []any) (any, []errs.FieldError) {
	invalid := []errs.FieldError{validation.InvalidType("float", raw, loc)}

	switch v := raw.(type) {
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case float64:
		return v, nil
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return nil, invalid
		}
		return f, nil
	case string:
		f, err := validation.ParseFloat(v)
		if err != nil {
			return nil, invalid
		}
		return f, nil
	}
	return nil, invalid
}

func coerceBool(raw any, loc []any) (any, []errs.FieldError) {
	invalid := []errs.FieldError{validation.InvalidType("boolean", raw, loc)}

	switch v := raw.(type) {
	case bool:
		return v, nil
	case json.Number:
		switch v.String() {
		case "0":
			return false, nil
		case "1":
			return true, nil
		}
	case int, int64:
		switch number(v) {
		case "0":
			return false, nil
		case "1":
			return true, nil
		}
	case string:
		if b, ok := validation.ParseStrictBool(v); ok {
			return b, nil
		}
	}
	return nil, invalid
}

func (t Type) coerceList(raw any, loc []any) (any, []errs.FieldError) {
	var items []any
	switch v := raw.(type) {
	case []any:
		items = v
	default:
		rv := reflect.ValueOf(raw)
		if rv.Kind() != reflect.Slice || rv.Type().Elem().Kind() == reflect.Uint8 {
			return nil, []errs.FieldError{validation.InvalidType("list", raw, loc)}
		}
		items = make([]any, rv.Len())
		for i := range items {
			items[i] = rv.Index(i).Interface()
		}
	}

	out := make([]any, 0, len(items))
	var fieldErrors []errs.FieldError
	for i, item := range items {
		v, fes := t.Elem.Coerce(item, validation.Loc(loc, i))
		if len(fes) > 0 {
			fieldErrors = append(fieldErrors, fes...)
			continue
		}
		out = append(out, v)
	}
	if len(fieldErrors) > 0 {
		return nil, fieldErrors
	}
	return out, nil
}

func (t Type) coerceMap(raw any, loc []any) (any, []errs.FieldError) {
	entries := map[string]any{}
	switch v := raw.(type) {
	case map[string]any:
		entries = v
	default:
		rv := reflect.ValueOf(raw)
		if rv.Kind() != reflect.Map {
			return nil, []errs.FieldError{validation.InvalidType("dict", raw, loc)}
		}
		iter := rv.MapRange()
		for iter.Next() {
			k := iter.Key().Interface()
			if s, ok := k.(string); ok {
				entries[s] = iter.Value().Interface()
			} else {
				entries[number(k)] = iter.Value().Interface()
			}
		}
	}

	var fieldErrors []errs.FieldError
	byString := make(map[string]any, len(entries))
	byInt := make(map[int64]any, len(entries))

	for key, value := range entries {
		k, fe := t.Key.CoerceText(key, validation.Loc(loc, key, "__key__"))
		if fe != nil {
			fieldErrors = append(fieldErrors, *fe)
			continue
		}
		v, fes := t.Elem.Coerce(value, validation.Loc(loc, key))
		if len(fes) > 0 {
			fieldErrors = append(fieldErrors, fes...)
			continue
		}
		if n, ok := k.(int64); ok {
			byInt[n] = v
		} else {
			byString[key] = v
		}
	}

	if len(fieldErrors) > 0 {
		sortFieldErrors(fieldErrors)
		return nil, fieldErrors
	}
	if t.Key.Kind == KindInt {
		return byInt, nil
	}
	return byString, nil
}

func (t Type) coerceUnion(raw any, loc []any) (any, []errs.FieldError) {
	var fieldErrors []errs.FieldError
	for _, variant := range t.Variants {
		v, fes := variant.coerce(raw, loc)
		if len(fes) == 0 {
			return v, nil
		}
		fieldErrors = append(fieldErrors, fes...)
	}
	return nil, fieldErrors
}
