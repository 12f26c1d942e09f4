// internal/storefront/implementation.go
package storefront

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"greengrove/internal/cart"
	"greengrove/internal/catalog"
	"greengrove/internal/plant"
)

// service implements the Service interface.
type service struct {
	fetcher catalog.Fetcher

	mu       sync.RWMutex
	sessions map[uuid.UUID]*Session
}

// NewService creates a session registry backed by the given fetcher.
func NewService(fetcher catalog.Fetcher) Service {
	return &service{
		fetcher:  fetcher,
		sessions: make(map[uuid.UUID]*Session),
	}
}

// OpenSession creates a session and performs the initial page load:
// categories and the full plant listing. Load failures are not fatal here,
// they surface as inline errors in the first view.
func (s *service) OpenSession(ctx context.Context) *Session {
	sess := &Session{
		ID:      uuid.New(),
		catalog: catalog.NewState(s.fetcher),
		cart:    cart.NewLedger(),
		fetcher: s.fetcher,
	}
	_ = sess.catalog.LoadCategories(ctx)
	_ = sess.catalog.LoadAll(ctx)

	s.mu.Lock()
	s.sessions[sess.ID] = sess
	s.mu.Unlock()
	return sess
}

func (s *service) Session(id uuid.UUID) (*Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[id]
	return sess, ok
}

func (s *service) CloseSession(id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
}

// Session is one shopper's storefront: catalog state, cart ledger, and the
// detail modal. Intents are dispatched one at a time per session, which is
// the server-side rendition of the page's single event loop.
type Session struct {
	ID uuid.UUID

	mu      sync.Mutex
	catalog *catalog.State
	cart    *cart.Ledger
	fetcher catalog.Fetcher

	detailMu      sync.RWMutex
	detail        *plant.Plant
	detailOpen    bool
	detailLoading bool
	detailErr     string
}

// Dispatch applies one intent. Fetch failures are returned so callers can
// log them, but the session stays usable: the failure is also recorded as
// an inline error in the view.
func (s *Session) Dispatch(ctx context.Context, in Intent) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch in.Type {
	case IntentSelectCategory:
		if in.Category.IsZero() {
			return s.catalog.LoadAll(ctx)
		}
		return s.catalog.LoadByCategory(ctx, in.Category)
	case IntentAddToCart:
		s.addToCart(in.Plant)
		return nil
	case IntentRemoveFromCart:
		s.cart.Remove(in.Plant)
		return nil
	case IntentShowDetail:
		return s.showDetail(ctx, in.Plant)
	case IntentCloseDetail:
		s.closeDetail()
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownIntent, in.Type)
	}
}

// addToCart resolves the plant from the current listing first, then from
// the open detail. An id matching neither is a silent no-op, as is a
// missing id.
func (s *Session) addToCart(id plant.ID) {
	if id.IsZero() {
		return
	}
	if p, ok := s.catalog.FindPlant(id); ok {
		s.cart.Add(cart.Entry{ID: p.ID, Name: p.Name, Price: p.Price})
		return
	}

	s.detailMu.RLock()
	d := s.detail
	s.detailMu.RUnlock()
	if d != nil && d.ID == id {
		s.cart.Add(cart.Entry{ID: d.ID, Name: d.Name, Price: d.Price})
	}
}

// showDetail opens the modal immediately in its loading state, then fills
// it in. The list state is untouched either way.
func (s *Session) showDetail(ctx context.Context, id plant.ID) error {
	s.detailMu.Lock()
	s.detailOpen = true
	s.detailLoading = true
	s.detailErr = ""
	s.detail = nil
	s.detailMu.Unlock()

	p, err := s.fetcher.GetPlant(ctx, id)

	s.detailMu.Lock()
	defer s.detailMu.Unlock()
	s.detailLoading = false
	if err != nil {
		s.detailErr = "Failed to load details."
		return err
	}
	s.detail = p
	return nil
}

func (s *Session) closeDetail() {
	s.detailMu.Lock()
	defer s.detailMu.Unlock()
	s.detailOpen = false
	s.detailLoading = false
	s.detailErr = ""
	s.detail = nil
}

// View projects the session into the render target contract. It only
// reads; the renderer never mutates state through it.
func (s *Session) View() View {
	snap := s.catalog.Snapshot()

	categories := make([]CategoryView, 0, len(snap.Categories))
	for _, c := range snap.Categories {
		categories = append(categories, CategoryView{
			ID:     c.ID,
			Name:   c.Name,
			Active: c.ID == snap.ActiveCategory,
		})
	}

	v := View{
		Categories:        categories,
		AllActive:         snap.ActiveCategory.IsZero(),
		CategoriesLoading: snap.CategoriesLoading,
		CategoriesError:   snap.CategoriesError,
		Plants:            snap.Plants,
		PlantCount:        len(snap.Plants),
		PlantsLoading:     snap.PlantsLoading,
		PlantsError:       snap.PlantsError,
		Cart: CartView{
			Entries: s.cart.Entries(),
			Total:   s.cart.Total(),
		},
	}

	s.detailMu.RLock()
	if s.detailOpen {
		v.Detail = &DetailView{
			Plant:   s.detail,
			Loading: s.detailLoading,
			Error:   s.detailErr,
		}
	}
	s.detailMu.RUnlock()

	return v
}
