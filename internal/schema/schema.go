// Package schema describes the shape of request and response records.
//
// A Schema is an ordered list of Fields. Decoding raw input against a Schema
// produces an immutable Record that remembers, per field, whether the value
// was explicitly supplied or filled in from the field default. Response
// models use that provenance to drop unset fields.
package schema

import (
	"fmt"

	"github.com/link2cory/echo-hello-world/internal/validation"
)

// Field declares one named value of a Schema.
type Field struct {
	Name        string
	Type        Type
	Required    bool
	Nullable    bool
	Default     any
	Constraints []validation.Constraint
	Title       string
	Description string
}

// Required declares a field that must be present.
func Required(name string, t Type) Field {
	return Field{Name: name, Type: t, Required: true}
}

// Optional declares a field that falls back to def when absent.
func Optional(name string, t Type, def any) Field {
	return Field{Name: name, Type: t, Default: def}
}

// Nullable declares an optional field that accepts null and defaults to null.
func Nullable(name string, t Type) Field {
	return Field{Name: name, Type: t, Nullable: true}
}

// With returns a copy of f carrying the given constraints.
func (f Field) With(constraints ...validation.Constraint) Field {
	f.Constraints = append(append([]validation.Constraint(nil), f.Constraints...), constraints...)
	return f
}

// Titled returns a copy of f with a title and description.
func (f Field) Titled(title, description string) Field {
	f.Title = title
	f.Description = description
	return f
}

// Schema is a named, ordered set of fields.
type Schema struct {
	Name   string
	fields []Field
	index  map[string]int
}

// New builds a schema. It panics on duplicate field names since schemas are
// declared once at package init.
func New(name string, fields ...Field) *Schema {
	s := &Schema{
		Name:   name,
		fields: make([]Field, 0, len(fields)),
		index:  make(map[string]int, len(fields)),
	}
	for _, f := range fields {
		s.add(f)
	}
	return s
}

// Extend derives a new schema from s: parent fields come first, in order,
// followed by fields. A field with a parent's name replaces it in place.
func (s *Schema) Extend(name string, fields ...Field) *Schema {
	child := New(name, s.fields...)
	for _, f := range fields {
		if i, ok := child.index[f.Name]; ok {
			child.fields[i] = f
			continue
		}
		child.add(f)
	}
	return child
}

func (s *Schema) add(f Field) {
	if _, dup := s.index[f.Name]; dup {
		panic(fmt.Sprintf("schema %s: duplicate field %q", s.Name, f.Name))
	}
	s.index[f.Name] = len(s.fields)
	s.fields = append(s.fields, f)
}

// Fields returns the fields in declaration order.
func (s *Schema) Fields() []Field {
	return append([]Field(nil), s.fields...)
}

// Field looks a field up by name.
func (s *Schema) Field(name string) (Field, bool) {
	i, ok := s.index[name]
	if !ok {
		return Field{}, false
	}
	return s.fields[i], true
}
