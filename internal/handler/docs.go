package handler

import (
	"net/http"
	"sort"

	"github.com/iancoleman/orderedmap"
	"github.com/labstack/echo/v4"

	"github.com/link2cory/echo-hello-world/internal/params"
	"github.com/link2cory/echo-hello-world/internal/schema"
	"github.com/link2cory/echo-hello-world/internal/server"
)

// DocsHandler serves the contract of every registered route as JSON:
// method, path, parameters with their source, type, default and constraints,
// response model and success status.
type DocsHandler struct {
	Handler
	routes []*Route
}

func NewDocsHandler(s *server.Server) *DocsHandler {
	return &DocsHandler{
		Handler: NewHandler(s),
	}
}

// Register records a route for the contract listing.
func (h *DocsHandler) Register(route *Route) {
	h.routes = append(h.routes, route)
}

// ServeDocs lists routes sorted by path, then method.
func (h *DocsHandler) ServeDocs(c echo.Context) error {
	routes := append([]*Route(nil), h.routes...)
	sort.SliceStable(routes, func(i, j int) bool {
		if routes[i].Path != routes[j].Path {
			return routes[i].Path < routes[j].Path
		}
		return routes[i].Method < routes[j].Method
	})

	out := make([]any, 0, len(routes))
	for _, r := range routes {
		out = append(out, describeRoute(r))
	}

	c.Response().Header().Set("Cache-Control", "no-cache")

	doc := orderedmap.New()
	doc.Set("service", h.server.Config.Observability.ServiceName)
	doc.Set("routes", out)
	return c.JSON(http.StatusOK, doc)
}

func describeRoute(r *Route) *orderedmap.OrderedMap {
	route := orderedmap.New()
	route.Set("method", r.Method)
	route.Set("path", r.Path)
	route.Set("name", r.Name)
	if r.Summary != "" {
		route.Set("summary", r.Summary)
	}
	route.Set("status_code", r.Status)

	ps := make([]any, 0, len(r.Signature.Params))
	for _, p := range r.Signature.Params {
		ps = append(ps, describeParam(p))
	}
	route.Set("parameters", ps)

	if r.Signature.EmbedsBody() {
		route.Set("embedded_body", true)
	}
	if r.Response != nil {
		route.Set("response_model", describeModel(*r.Response))
	}
	return route
}

func describeParam(p params.Param) *orderedmap.OrderedMap {
	out := orderedmap.New()
	out.Set("name", p.ExternalName())
	out.Set("in", sourceName(p))
	out.Set("type", typeName(p))
	out.Set("required", p.Required)
	if !p.Required && p.Source != params.SourcePath {
		out.Set("default", p.Default)
	}
	if len(p.Constraints) > 0 {
		constraints := orderedmap.New()
		for _, c := range p.Constraints {
			constraints.Set(c.Name, c.Limit)
		}
		out.Set("constraints", constraints)
	}
	if p.Title != "" {
		out.Set("title", p.Title)
	}
	if p.Description != "" {
		out.Set("description", p.Description)
	}
	if p.Deprecated {
		out.Set("deprecated", true)
	}
	if p.Type.Kind == schema.KindEnum {
		out.Set("enum", p.Type.Enum.Members())
	}
	return out
}

func sourceName(p params.Param) string {
	switch p.Source {
	case params.SourceForm:
		return "form"
	case params.SourceFile:
		return "file"
	}
	return p.Source.String()
}

func typeName(p params.Param) string {
	if p.Source != params.SourceFile {
		return p.Type.String()
	}
	name := "binary"
	if p.File == params.UploadKind {
		name = "upload"
	}
	if p.Multiple {
		name = "array[" + name + "]"
	}
	return name
}

func describeModel(m schema.Model) *orderedmap.OrderedMap {
	out := orderedmap.New()
	out.Set("type", m.Type.String())
	if len(m.Include) > 0 {
		out.Set("include", m.Include)
	}
	if len(m.Exclude) > 0 {
		out.Set("exclude", m.Exclude)
	}
	if m.ExcludeUnset {
		out.Set("exclude_unset", true)
	}
	return out
}
