// internal/storefront/domain.go
package storefront

import (
	"errors"

	"greengrove/internal/cart"
	"greengrove/internal/plant"
)

var (
	ErrSessionNotFound = errors.New("storefront: session not found")
	ErrUnknownIntent   = errors.New("storefront: unknown intent")
)

// IntentType enumerates the user actions the rendered page can emit.
type IntentType string

const (
	IntentSelectCategory IntentType = "select_category"
	IntentAddToCart      IntentType = "add_to_cart"
	IntentRemoveFromCart IntentType = "remove_from_cart"
	IntentShowDetail     IntentType = "show_detail"
	IntentCloseDetail    IntentType = "close_detail"
)

// Intent is one user action. SelectCategory with an empty Category means
// "show the whole catalog".
type Intent struct {
	Type     IntentType `json:"type"`
	Category plant.ID   `json:"category,omitempty"`
	Plant    plant.ID   `json:"plant,omitempty"`
}

// View is the render target contract: everything the page needs to draw
// itself after any mutation.
type View struct {
	Categories        []CategoryView `json:"categories"`
	AllActive         bool           `json:"all_active"`
	CategoriesLoading bool           `json:"categories_loading"`
	CategoriesError   string         `json:"categories_error,omitempty"`

	Plants        []plant.Plant `json:"plants"`
	PlantCount    int           `json:"plant_count"`
	PlantsLoading bool          `json:"plants_loading"`
	PlantsError   string        `json:"plants_error,omitempty"`

	Cart   CartView    `json:"cart"`
	Detail *DetailView `json:"detail,omitempty"`
}

// CategoryView is a category plus its active-filter marker. Fields are
// spelled out rather than embedding plant.Category: the embedded type's
// custom decoder would be promoted and swallow the marker on round trips.
type CategoryView struct {
	ID     plant.ID `json:"id"`
	Name   string   `json:"name"`
	Active bool     `json:"active"`
}

// CartView is the cart entries plus the running total.
type CartView struct {
	Entries []cart.Entry `json:"entries"`
	Total   plant.Price  `json:"total"`
}

// DetailView is the open detail modal: present only while a detail is
// showing, with its own loading and error states.
type DetailView struct {
	Plant   *plant.Plant `json:"plant,omitempty"`
	Loading bool         `json:"loading"`
	Error   string       `json:"error,omitempty"`
}
