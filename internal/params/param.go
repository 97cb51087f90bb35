// Package params classifies endpoint parameters and binds them from requests.
//
// Every parameter carries an explicit source tag (path, query, header,
// cookie, body, form, file). The tag is either given by the constructor used
// to declare the parameter or inferred once, when the route is registered.
package params

import (
	"strings"

	"github.com/link2cory/echo-hello-world/internal/schema"
	"github.com/link2cory/echo-hello-world/internal/validation"
)

// Source tells where a parameter is read from.
type Source int

const (
	sourceUnresolved Source = iota
	SourcePath
	SourceQuery
	SourceHeader
	SourceCookie
	SourceBody
	SourceForm
	SourceFile
)

func (s Source) String() string {
	switch s {
	case SourcePath:
		return "path"
	case SourceQuery:
		return "query"
	case SourceHeader:
		return "header"
	case SourceCookie:
		return "cookie"
	case SourceBody, SourceForm, SourceFile:
		return "body"
	}
	return "unresolved"
}

// FileKind selects how an uploaded part is handed to the handler.
type FileKind int

const (
	// FileBytesKind reads the whole part into memory.
	FileBytesKind FileKind = iota + 1
	// UploadKind hands over a spooled file handle with metadata.
	UploadKind
)

// Param declares one input of an endpoint.
type Param struct {
	Name   string
	Source Source
	Type   schema.Type

	Required   bool
	Default    any
	Alias      string
	Embed      bool
	Multiple   bool
	File       FileKind
	Deprecated bool

	// ConvertUnderscores maps "user_agent" to the "user-agent" header.
	ConvertUnderscores bool

	Constraints []validation.Constraint
	Title       string
	Description string
}

// Option customizes a Param.
type Option func(*Param)

// Default makes the parameter optional with the given fallback value.
func Default(v any) Option {
	return func(p *Param) {
		p.Required = false
		p.Default = v
	}
}

// Optional makes the parameter optional with a null fallback.
func Optional() Option {
	return Default(nil)
}

// Alias reads the parameter from a different external name.
func Alias(name string) Option {
	return func(p *Param) { p.Alias = name }
}

// Embed keys the body by the parameter name even when it is the only body parameter.
func Embed() Option {
	return func(p *Param) { p.Embed = true }
}

// NoUnderscoreConversion keeps underscores in a header name.
func NoUnderscoreConversion() Option {
	return func(p *Param) { p.ConvertUnderscores = false }
}

// Constraints appends declared constraints, checked in order.
func Constraints(c ...validation.Constraint) Option {
	return func(p *Param) { p.Constraints = append(p.Constraints, c...) }
}

// Describe sets documentation metadata.
func Describe(title, description string) Option {
	return func(p *Param) {
		p.Title = title
		p.Description = description
	}
}

// Deprecated marks the parameter as deprecated in the route contract.
func Deprecated() Option {
	return func(p *Param) { p.Deprecated = true }
}

func newParam(name string, source Source, t schema.Type, opts []Option) Param {
	p := Param{
		Name:               name,
		Source:             source,
		Type:               t,
		Required:           true,
		ConvertUnderscores: true,
	}
	for _, opt := range opts {
		opt(&p)
	}
	return p
}

// Path declares a path placeholder. Path parameters are always required.
func Path(name string, t schema.Type, opts ...Option) Param {
	p := newParam(name, SourcePath, t, opts)
	p.Required = true
	return p
}

func Query(name string, t schema.Type, opts ...Option) Param {
	return newParam(name, SourceQuery, t, opts)
}

func Header(name string, t schema.Type, opts ...Option) Param {
	return newParam(name, SourceHeader, t, opts)
}

func Cookie(name string, t schema.Type, opts ...Option) Param {
	return newParam(name, SourceCookie, t, opts)
}

func Body(name string, t schema.Type, opts ...Option) Param {
	return newParam(name, SourceBody, t, opts)
}

func Form(name string, t schema.Type, opts ...Option) Param {
	return newParam(name, SourceForm, t, opts)
}

// FileBytes reads one uploaded part fully into memory.
func FileBytes(name string, opts ...Option) Param {
	p := newParam(name, SourceFile, schema.Any(), opts)
	p.File = FileBytesKind
	return p
}

// FileBytesList reads every part sent under name.
func FileBytesList(name string, opts ...Option) Param {
	p := FileBytes(name, opts...)
	p.Multiple = true
	return p
}

// Upload hands over one uploaded part as an *UploadFile.
func Upload(name string, opts ...Option) Param {
	p := newParam(name, SourceFile, schema.Any(), opts)
	p.File = UploadKind
	return p
}

// UploadList hands over every part sent under name.
func UploadList(name string, opts ...Option) Param {
	p := Upload(name, opts...)
	p.Multiple = true
	return p
}

// Infer declares a parameter whose source is decided at registration:
// a path placeholder of the same name makes it a path parameter, a primitive
// (or list of primitives) a query parameter, and a record, list of records
// or mapping makes it a body parameter.
func Infer(name string, t schema.Type, opts ...Option) Param {
	return newParam(name, sourceUnresolved, t, opts)
}

// externalName is the key the parameter is read from.
func (p Param) externalName() string {
	if p.Alias != "" {
		return p.Alias
	}
	if p.Source == SourceHeader && p.ConvertUnderscores {
		return strings.ReplaceAll(p.Name, "_", "-")
	}
	return p.Name
}

// ExternalName is the name clients use for the parameter.
func (p Param) ExternalName() string {
	return p.externalName()
}
