package schema

import (
	"github.com/iancoleman/orderedmap"

	"github.com/link2cory/echo-hello-world/internal/errs"
)

// Model is a declared response model.
//
// The handler's return value is coerced into Type (so fields outside the
// model are dropped), then filtered: with ExcludeUnset only explicitly
// supplied fields survive, and Include/Exclude name sets are applied to the
// top-level record, or to each element of a top-level list.
type Model struct {
	Type         Type
	Include      []string
	Exclude      []string
	ExcludeUnset bool
}

// ModelOf is the common case of a single record schema.
func ModelOf(s *Schema) Model { return Model{Type: Object(s)} }

// Shape coerces value into the model and renders it for serialization.
// Errors mean the handler returned something the model cannot describe.
func (m Model) Shape(value any) (any, []errs.FieldError) {
	coerced, fieldErrors := m.Type.Coerce(value, []any{"response"})
	if len(fieldErrors) > 0 {
		return nil, fieldErrors
	}

	p := projection{excludeUnset: m.ExcludeUnset}
	if len(m.Include) > 0 {
		p.include = toSet(m.Include)
	}
	if len(m.Exclude) > 0 {
		p.exclude = toSet(m.Exclude)
	}

	return render(coerced, p, true), nil
}

// Render serializes a value without a model: records keep declaration order.
func Render(value any) any {
	return render(value, projection{}, false)
}

type projection struct {
	include      map[string]bool
	exclude      map[string]bool
	excludeUnset bool
}

func (p projection) keep(r *Record, name string, top bool) bool {
	if p.excludeUnset && !r.IsSet(name) {
		return false
	}
	if !top {
		return true
	}
	if p.include != nil && !p.include[name] {
		return false
	}
	return !p.exclude[name]
}

func render(value any, p projection, top bool) any {
	switch v := value.(type) {
	case *Record:
		out := orderedmap.New()
		out.SetEscapeHTML(false)
		for _, f := range v.schema.fields {
			if !p.keep(v, f.Name, top) {
				continue
			}
			out.Set(f.Name, render(v.values[f.Name], p, false))
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			// A top-level list passes the name sets on to its elements.
			out[i] = render(item, p, top)
		}
		return out
	case []*Record:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = render(item, p, top)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(v))
		for k, item := range v {
			out[k] = render(item, p, false)
		}
		return out
	case map[int64]any:
		out := make(map[int64]any, len(v))
		for k, item := range v {
			out[k] = render(item, p, false)
		}
		return out
	}
	return value
}

func toSet(names []string) map[string]bool {
	set := make(map[string]bool, len(names))
	for _, n := range names {
		set[n] = true
	}
	return set
}
