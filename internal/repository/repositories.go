package repository

import (
	"github.com/link2cory/echo-hello-world/internal/server"
)

// Repositories is a container for all repository instances.
type Repositories struct {
	Catalog *CatalogRepository
}

// NewRepositories constructs the repository container.
func NewRepositories(s *server.Server) *Repositories {
	return &Repositories{
		Catalog: NewCatalogRepository(s.Logger),
	}
}
