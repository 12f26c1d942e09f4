// internal/catalog/domain.go
package catalog

import (
	"context"

	"greengrove/internal/plant"
)

// Fetcher is the remote catalog boundary: three read operations against the
// plant API. Implementations return canonical records only; wire-shape
// normalization happens on their side of this interface.
type Fetcher interface {
	ListCategories(ctx context.Context) ([]plant.Category, error)
	ListPlants(ctx context.Context) ([]plant.Plant, error)
	ListPlantsByCategory(ctx context.Context, id plant.ID) ([]plant.Plant, error)
	GetPlant(ctx context.Context, id plant.ID) (*plant.Plant, error)
}

// Snapshot is a read-only copy of the catalog state for rendering. Loading
// flags and error strings are scoped per render area, matching the
// categories sidebar and the cards grid.
type Snapshot struct {
	Categories        []plant.Category
	Plants            []plant.Plant
	ActiveCategory    plant.ID
	CategoriesLoading bool
	PlantsLoading     bool
	CategoriesError   string
	PlantsError       string
}
