package repository

import (
	"github.com/rs/zerolog"

	"github.com/link2cory/echo-hello-world/internal/model"
	"github.com/link2cory/echo-hello-world/internal/schema"
)

// CatalogRepository serves the static item and vehicle tables.
type CatalogRepository struct {
	logger *zerolog.Logger

	items         []*schema.Record
	itemsByKey    map[string]string
	vehiclesByKey map[string]map[string]any
}

func NewCatalogRepository(logger *zerolog.Logger) *CatalogRepository {
	return &CatalogRepository{
		logger: logger,
		items: []*schema.Record{
			model.Item.MustBuild(map[string]any{"name": "Foo", "description": "There comes my hero"}),
			model.Item.MustBuild(map[string]any{"name": "Red", "description": "It's my aeroplane"}),
		},
		itemsByKey: map[string]string{
			"foo": "The Foo Wrestlers",
		},
		vehiclesByKey: map[string]map[string]any{
			"vehicles1": {
				"description": "All my friends drive a low rider",
				"type":        "car",
			},
			"vehicles2": {
				"description": "Music is my aeroplane, it's my aeroplane",
				"type":        "plane",
				"size":        5,
			},
		},
	}
}

// ListItems returns the catalog in table order. Records are immutable, only
// the slice is copied.
func (r *CatalogRepository) ListItems() []*schema.Record {
	return append([]*schema.Record(nil), r.items...)
}

// GetItem looks up an item label by key.
func (r *CatalogRepository) GetItem(key string) (string, bool) {
	item, ok := r.itemsByKey[key]
	if !ok {
		r.logger.Debug().Str("item_id", key).Msg("item not in catalog")
	}
	return item, ok
}

// GetVehicle returns a copy of the raw vehicle row.
func (r *CatalogRepository) GetVehicle(key string) (map[string]any, bool) {
	row, ok := r.vehiclesByKey[key]
	if !ok {
		r.logger.Debug().Str("vehicle_id", key).Msg("vehicle not in catalog")
		return nil, false
	}
	return schema.Clone(row).(map[string]any), true
}
