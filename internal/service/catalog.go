package service

import (
	"github.com/link2cory/echo-hello-world/internal/errs"
	"github.com/link2cory/echo-hello-world/internal/model"
	"github.com/link2cory/echo-hello-world/internal/repository"
	"github.com/link2cory/echo-hello-world/internal/schema"
	"github.com/link2cory/echo-hello-world/internal/server"
)

// CatalogService answers the lookup endpoints.
type CatalogService struct {
	server *server.Server
	repo   *repository.CatalogRepository
}

func NewCatalogService(s *server.Server, repo *repository.CatalogRepository) *CatalogService {
	return &CatalogService{server: s, repo: repo}
}

// ListItems returns every catalog item.
func (s *CatalogService) ListItems() []*schema.Record {
	return s.repo.ListItems()
}

// GetItem returns the label of an item or a 404 "Item not found".
func (s *CatalogService) GetItem(key string) (string, error) {
	item, ok := s.repo.GetItem(key)
	if !ok {
		return "", errs.NewNotFoundError("Item not found")
	}
	return item, nil
}

// GetVehicle returns a vehicle row or a 404 "Vehicle not found".
func (s *CatalogService) GetVehicle(key string) (map[string]any, error) {
	vehicle, ok := s.repo.GetVehicle(key)
	if !ok {
		return nil, errs.NewNotFoundError("Vehicle not found")
	}
	return vehicle, nil
}

// ModelMessage is the blurb shown for a model name.
func (s *CatalogService) ModelMessage(name string) string {
	switch name {
	case model.AlexNet:
		return "Deep Learning FTW!"
	case model.LeNet:
		return "LeCNN all the images"
	}
	return "Have some residuals"
}
