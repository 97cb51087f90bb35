package params

import (
	"strings"

	"github.com/pkg/errors"
)

// Signature is the resolved parameter list of one route.
// It is built once at registration and shared by every request.
type Signature struct {
	Pattern string
	Params  []Param

	placeholders []string
	body         []Param
	form         []Param
	embedBody    bool
}

// NewSignature resolves inferred sources and checks the declaration against
// the route pattern. Any mistake is reported here, at startup, rather than
// per request.
func NewSignature(pattern string, params ...Param) (*Signature, error) {
	s := &Signature{
		Pattern:      pattern,
		Params:       make([]Param, 0, len(params)),
		placeholders: Placeholders(pattern),
	}

	isPlaceholder := make(map[string]bool, len(s.placeholders))
	for _, name := range s.placeholders {
		isPlaceholder[name] = true
	}

	seen := make(map[string]bool, len(params))
	boundPlaceholders := make(map[string]bool, len(s.placeholders))

	for _, p := range params {
		if seen[p.Name] {
			return nil, errors.Errorf("%s: duplicate parameter %q", pattern, p.Name)
		}
		seen[p.Name] = true

		if p.Source == sourceUnresolved {
			source, err := infer(p, isPlaceholder[p.Name])
			if err != nil {
				return nil, errors.Wrap(err, pattern)
			}
			p.Source = source
			if source == SourcePath {
				p.Required = true
			}
		}

		if err := check(p, isPlaceholder); err != nil {
			return nil, errors.Wrap(err, pattern)
		}

		switch p.Source {
		case SourcePath:
			boundPlaceholders[p.Name] = true
		case SourceBody:
			s.body = append(s.body, p)
			if p.Embed {
				s.embedBody = true
			}
		case SourceForm, SourceFile:
			s.form = append(s.form, p)
		}

		s.Params = append(s.Params, p)
	}

	for _, name := range s.placeholders {
		if !boundPlaceholders[name] {
			return nil, errors.Errorf("%s: placeholder %q has no path parameter", pattern, name)
		}
	}

	if len(s.body) > 0 && len(s.form) > 0 {
		return nil, errors.Errorf("%s: a JSON body cannot be combined with form or file parameters", pattern)
	}
	if len(s.body) > 1 {
		s.embedBody = true
	}

	return s, nil
}

func infer(p Param, isPlaceholder bool) (Source, error) {
	switch {
	case isPlaceholder:
		return SourcePath, nil
	case p.Type.IsPrimitive(), p.Type.IsPrimitiveList():
		return SourceQuery, nil
	case p.Type.IsStructured():
		return SourceBody, nil
	}
	return sourceUnresolved, errors.Errorf("cannot infer the source of %q (%s)", p.Name, p.Type)
}

func check(p Param, isPlaceholder map[string]bool) error {
	switch p.Source {
	case SourcePath:
		if !isPlaceholder[p.Name] {
			return errors.Errorf("path parameter %q is not a placeholder", p.Name)
		}
		if !p.Type.IsPrimitive() {
			return errors.Errorf("path parameter %q must be a primitive, got %s", p.Name, p.Type)
		}
	case SourceQuery, SourceHeader:
		if !p.Type.IsPrimitive() && !p.Type.IsPrimitiveList() {
			return errors.Errorf("%s parameter %q must be a primitive or a list of primitives, got %s", p.Source, p.Name, p.Type)
		}
	case SourceCookie, SourceForm:
		if !p.Type.IsPrimitive() {
			return errors.Errorf("%s parameter %q must be a primitive, got %s", p.Source, p.Name, p.Type)
		}
	}

	if p.Source != SourcePath && isPlaceholder[p.Name] {
		return errors.Errorf("parameter %q shadows a path placeholder", p.Name)
	}
	return nil
}

// Placeholders lists the ":name" segments of an echo route pattern.
func Placeholders(pattern string) []string {
	var names []string
	for _, segment := range strings.Split(pattern, "/") {
		if strings.HasPrefix(segment, ":") && len(segment) > 1 {
			names = append(names, segment[1:])
		}
	}
	return names
}

// EmbedsBody reports whether the JSON body is an object keyed by parameter name.
func (s *Signature) EmbedsBody() bool {
	return s.embedBody
}
