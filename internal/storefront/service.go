// internal/storefront/service.go
package storefront

import (
	"context"

	"github.com/google/uuid"
)

// Service manages shopper sessions. One session corresponds to one open
// page: it owns its own catalog state and cart ledger and dies with the
// session, never touching disk.
type Service interface {
	OpenSession(ctx context.Context) *Session
	Session(id uuid.UUID) (*Session, bool)
	CloseSession(id uuid.UUID)
}
