// internal/catalog/state.go
package catalog

import (
	"context"
	"sync"

	"greengrove/internal/plant"
)

// State holds the loaded catalog: the category list, the current plant
// listing, and which category filter produced it. Listings are replaced
// wholesale on every successful load; a failed load keeps the previous
// good state and records an inline error for its render area.
//
// Overlapping loads resolve last-request-wins: each load takes a sequence
// number per scope, and a response whose number has been overtaken is
// discarded instead of overwriting newer state.
type State struct {
	fetcher Fetcher

	mu                sync.RWMutex
	categories        []plant.Category
	plants            []plant.Plant
	activeCategory    plant.ID
	categoriesLoading bool
	plantsLoading     bool
	categoriesErr     string
	plantsErr         string
	categoriesSeq     uint64
	plantsSeq         uint64
}

// NewState creates an empty catalog state backed by the given fetcher.
func NewState(fetcher Fetcher) *State {
	return &State{fetcher: fetcher}
}

// LoadCategories replaces the category list. On failure the previous list
// is kept and an inline error is recorded.
func (s *State) LoadCategories(ctx context.Context) error {
	s.mu.Lock()
	s.categoriesSeq++
	seq := s.categoriesSeq
	s.categoriesLoading = true
	s.mu.Unlock()

	list, err := s.fetcher.ListCategories(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if seq != s.categoriesSeq {
		// Overtaken by a newer load; that one owns the list now.
		return nil
	}
	s.categoriesLoading = false
	if err != nil {
		s.categoriesErr = "Failed to load categories."
		return err
	}
	s.categories = list
	s.categoriesErr = ""
	return nil
}

// LoadAll replaces the plant listing with the full catalog and clears the
// active-category marker.
func (s *State) LoadAll(ctx context.Context) error {
	return s.loadPlants(ctx, "", s.fetcher.ListPlants)
}

// LoadByCategory replaces the plant listing with one category's entries and
// marks that category active.
func (s *State) LoadByCategory(ctx context.Context, id plant.ID) error {
	return s.loadPlants(ctx, id, func(ctx context.Context) ([]plant.Plant, error) {
		return s.fetcher.ListPlantsByCategory(ctx, id)
	})
}

func (s *State) loadPlants(ctx context.Context, category plant.ID, fetch func(context.Context) ([]plant.Plant, error)) error {
	s.mu.Lock()
	s.plantsSeq++
	seq := s.plantsSeq
	s.plantsLoading = true
	s.mu.Unlock()

	list, err := fetch(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if seq != s.plantsSeq {
		return nil
	}
	s.plantsLoading = false
	if err != nil {
		// Previous listing and active marker stay in place.
		s.plantsErr = "Failed to load plants."
		return err
	}
	s.plants = list
	s.activeCategory = category
	s.plantsErr = ""
	return nil
}

// FindPlant looks up a plant in the current listing by id.
func (s *State) FindPlant(id plant.ID) (plant.Plant, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, p := range s.plants {
		if p.ID == id {
			return p, true
		}
	}
	return plant.Plant{}, false
}

// Snapshot returns a copy of the current state for rendering.
func (s *State) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := Snapshot{
		Categories:        make([]plant.Category, len(s.categories)),
		Plants:            make([]plant.Plant, len(s.plants)),
		ActiveCategory:    s.activeCategory,
		CategoriesLoading: s.categoriesLoading,
		PlantsLoading:     s.plantsLoading,
		CategoriesError:   s.categoriesErr,
		PlantsError:       s.plantsErr,
	}
	copy(snap.Categories, s.categories)
	copy(snap.Plants, s.plants)
	return snap
}
