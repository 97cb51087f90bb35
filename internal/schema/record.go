package schema

import (
	"encoding/json"
	"sort"

	"github.com/iancoleman/orderedmap"
	"github.com/pkg/errors"

	"github.com/link2cory/echo-hello-world/internal/errs"
	"github.com/link2cory/echo-hello-world/internal/validation"
)

// Record is an immutable instance of a Schema.
//
// Every declared field has a value (possibly nil for nullable fields), and a
// provenance flag telling whether the value was explicitly supplied. The flag
// is fixed when the record is decoded or built and never recomputed.
type Record struct {
	schema *Schema
	values map[string]any
	set    map[string]bool
}

// Decode validates raw (usually a decoded JSON object) against s.
// loc is the location prefix used for error reporting, e.g. ["body"].
func (s *Schema) Decode(raw any, loc []any) (*Record, []errs.FieldError) {
	v, fieldErrors := s.coerce(raw, loc)
	if len(fieldErrors) > 0 {
		return nil, fieldErrors
	}
	return v.(*Record), nil
}

// Build constructs a record from Go values. Fields present in values are
// marked as explicitly set, absent ones take their default.
func (s *Schema) Build(values map[string]any) (*Record, error) {
	r, fieldErrors := s.decode(values, nil, nil)
	if len(fieldErrors) > 0 {
		return nil, errors.Wrapf(errs.NewValidationError(fieldErrors), "build %s", s.Name)
	}
	return r, nil
}

// MustBuild is Build for static tables declared at init.
func (s *Schema) MustBuild(values map[string]any) *Record {
	r, err := s.Build(values)
	if err != nil {
		panic(err)
	}
	return r
}

func (s *Schema) coerce(raw any, loc []any) (any, []errs.FieldError) {
	switch v := raw.(type) {
	case *Record:
		if v.schema == s {
			return v, nil
		}
		return s.decode(v.values, loc, v.IsSet)
	case map[string]any:
		return s.decode(v, loc, nil)
	}
	return nil, []errs.FieldError{validation.InvalidType("dict", raw, loc)}
}

// decode walks the declared fields in order. provenance, when non-nil, decides
// the set flag of present fields (used when converting one record into another
// schema); otherwise every present field counts as set.
func (s *Schema) decode(entries map[string]any, loc []any, provenance func(string) bool) (*Record, []errs.FieldError) {
	r := &Record{
		schema: s,
		values: make(map[string]any, len(s.fields)),
		set:    make(map[string]bool, len(s.fields)),
	}

	var fieldErrors []errs.FieldError
	for _, f := range s.fields {
		fieldLoc := validation.Loc(loc, f.Name)

		raw, present := entries[f.Name]
		if !present {
			if f.Required {
				fieldErrors = append(fieldErrors, validation.Missing(fieldLoc))
				continue
			}
			r.values[f.Name] = clone(f.Default)
			continue
		}

		r.set[f.Name] = provenance == nil || provenance(f.Name)

		if raw == nil && f.Nullable {
			r.values[f.Name] = nil
			continue
		}

		v, fes := f.Type.Coerce(raw, fieldLoc)
		if len(fes) > 0 {
			fieldErrors = append(fieldErrors, fes...)
			continue
		}
		if fe := validation.Check(v, fieldLoc, f.Constraints); fe != nil {
			fieldErrors = append(fieldErrors, *fe)
			continue
		}
		r.values[f.Name] = v
	}

	if len(fieldErrors) > 0 {
		return nil, fieldErrors
	}
	return r, nil
}

// Schema returns the schema the record was decoded against.
func (r *Record) Schema() *Schema { return r.schema }

// Get returns the value of a field, nil when unknown.
func (r *Record) Get(name string) any { return r.values[name] }

// IsSet reports whether name was explicitly supplied.
func (r *Record) IsSet(name string) bool { return r.set[name] }

// SetFields lists the explicitly supplied fields in declaration order.
func (r *Record) SetFields() []string {
	names := make([]string, 0, len(r.set))
	for _, f := range r.schema.fields {
		if r.set[f.Name] {
			names = append(names, f.Name)
		}
	}
	return names
}

func (r *Record) String(name string) string {
	s, _ := r.values[name].(string)
	return s
}

func (r *Record) Int(name string) int64 {
	n, _ := r.values[name].(int64)
	return n
}

func (r *Record) Float(name string) float64 {
	f, _ := r.values[name].(float64)
	return f
}

func (r *Record) Bool(name string) bool {
	b, _ := r.values[name].(bool)
	return b
}

func (r *Record) List(name string) []any {
	l, _ := r.values[name].([]any)
	return append([]any(nil), l...)
}

func (r *Record) Record(name string) *Record {
	nested, _ := r.values[name].(*Record)
	return nested
}

// Map renders the record as an ordered map with every field.
func (r *Record) Map() *orderedmap.OrderedMap {
	return render(r, projection{}, false).(*orderedmap.OrderedMap)
}

// MarshalJSON writes every field in declaration order.
func (r *Record) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.Map())
}

// clone copies slices and maps so defaults and table rows are never shared.
func clone(v any) any {
	switch t := v.(type) {
	case []any:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = clone(item)
		}
		return out
	case []string:
		out := make([]any, len(t))
		for i, s := range t {
			out[i] = s
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, item := range t {
			out[k] = clone(item)
		}
		return out
	}
	return v
}

func sortFieldErrors(fieldErrors []errs.FieldError) {
	sort.SliceStable(fieldErrors, func(i, j int) bool {
		return fieldErrors[i].Field() < fieldErrors[j].Field()
	})
}

// Clone deep-copies the list and map containers of a decoded value.
func Clone(v any) any {
	return clone(v)
}
