package handler

import (
	"github.com/link2cory/echo-hello-world/internal/server"
	"github.com/link2cory/echo-hello-world/internal/service"
)

// Handlers is a container that groups all HTTP handlers, so router setup
// passes one object around instead of many.
type Handlers struct {
	Health   *HealthHandler   // Health serves the liveness endpoint.
	Docs     *DocsHandler     // Docs serves the registered route contract.
	Examples *ExamplesHandler // Examples is the request-handling showcase.
}

// NewHandlers constructs the handler container.
func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Health:   NewHealthHandler(s),
		Docs:     NewDocsHandler(s),
		Examples: NewExamplesHandler(s, services.Catalog),
	}
}
