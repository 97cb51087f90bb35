package schema

import (
	"fmt"
	"strings"
)

// Kind enumerates the value kinds a Type can describe.
type Kind int

const (
	KindAny Kind = iota
	KindString
	KindInt
	KindFloat
	KindBool
	KindEnum
	KindList
	KindMap
	KindObject
	KindUnion
)

// Type describes the expected shape of a value.
//
// Decoded values use a fixed set of Go representations:
// string, int64, float64, bool, []any, map[string]any or map[int64]any,
// and *Record for objects.
type Type struct {
	Kind     Kind
	Elem     *Type
	Key      *Type
	Enum     *Enum
	Schema   *Schema
	Variants []*Schema
}

func Any() Type    { return Type{Kind: KindAny} }
func String() Type { return Type{Kind: KindString} }
func Int() Type    { return Type{Kind: KindInt} }
func Float() Type  { return Type{Kind: KindFloat} }
func Bool() Type   { return Type{Kind: KindBool} }

// EnumOf is a closed set of string members.
func EnumOf(e *Enum) Type { return Type{Kind: KindEnum, Enum: e} }

// ListOf is a homogeneous list.
func ListOf(elem Type) Type { return Type{Kind: KindList, Elem: &elem} }

// MapOf is a mapping; key must be a primitive type.
func MapOf(key, value Type) Type { return Type{Kind: KindMap, Key: &key, Elem: &value} }

// Object is a record of the given schema.
func Object(s *Schema) Type { return Type{Kind: KindObject, Schema: s} }

// OneOf is a union of record schemas. The first variant a value validates
// against wins, so order matters.
func OneOf(variants ...*Schema) Type { return Type{Kind: KindUnion, Variants: variants} }

// IsPrimitive reports whether values of t can be read from a single text value.
func (t Type) IsPrimitive() bool {
	switch t.Kind {
	case KindString, KindInt, KindFloat, KindBool, KindEnum:
		return true
	}
	return false
}

// IsPrimitiveList reports whether t is a list of primitives.
func (t Type) IsPrimitiveList() bool {
	return t.Kind == KindList && t.Elem.IsPrimitive()
}

// IsStructured reports whether t is read from a JSON body.
func (t Type) IsStructured() bool {
	switch t.Kind {
	case KindObject, KindUnion, KindMap:
		return true
	case KindList:
		return !t.Elem.IsPrimitive()
	}
	return false
}

func (t Type) String() string {
	switch t.Kind {
	case KindString:
		return "string"
	case KindInt:
		return "integer"
	case KindFloat:
		return "number"
	case KindBool:
		return "boolean"
	case KindEnum:
		return t.Enum.Name
	case KindList:
		return "array[" + t.Elem.String() + "]"
	case KindMap:
		return "object[" + t.Key.String() + "]" + t.Elem.String()
	case KindObject:
		return t.Schema.Name
	case KindUnion:
		names := make([]string, 0, len(t.Variants))
		for _, v := range t.Variants {
			names = append(names, v.Name)
		}
		return strings.Join(names, " | ")
	}
	return "any"
}

// Enum is a closed set of string values.
type Enum struct {
	Name    string
	members []string
}

// NewEnum declares an enumeration. Member order is kept for error messages.
func NewEnum(name string, members ...string) *Enum {
	if len(members) == 0 {
		panic(fmt.Sprintf("enum %s: no members", name))
	}
	return &Enum{Name: name, members: append([]string(nil), members...)}
}

// Contains reports whether v is a member.
func (e *Enum) Contains(v string) bool {
	for _, m := range e.members {
		if m == v {
			return true
		}
	}
	return false
}

// Members returns the members in declaration order.
func (e *Enum) Members() []string {
	return append([]string(nil), e.members...)
}
