// Package service contains the business logic.
//
// It sits between the handler and repository layers. It receives
// validated data from the handler and turns repository misses into
// application errors.
package service

import (
	"github.com/link2cory/echo-hello-world/internal/repository"
	"github.com/link2cory/echo-hello-world/internal/server"
)

type Services struct {
	Catalog *CatalogService
}

func NewServices(s *server.Server, repos *repository.Repositories) (*Services, error) {
	return &Services{
		Catalog: NewCatalogService(s, repos.Catalog),
	}, nil
}
