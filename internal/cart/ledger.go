// internal/cart/ledger.go
package cart

import (
	"sync"

	"greengrove/internal/plant"
)

// Entry is one cart line. Name and price are snapshots taken when the entry
// was added; later catalog reloads do not flow back into the cart.
type Entry struct {
	ID    plant.ID    `json:"id"`
	Name  string      `json:"name"`
	Price plant.Price `json:"price"`
}

// Ledger accumulates cart entries for one shopper. At most one entry exists
// per id: adding an id that is already present is a no-op rather than a
// quantity increment.
type Ledger struct {
	mu      sync.RWMutex
	entries []Entry
}

// NewLedger creates an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{}
}

// Add appends a new entry unless the id is absent or already present.
// It reports whether the ledger changed.
func (l *Ledger) Add(e Entry) bool {
	if e.ID.IsZero() {
		return false
	}
	if e.Name == "" {
		e.Name = "Tree"
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	for _, have := range l.entries {
		if have.ID == e.ID {
			return false
		}
	}
	l.entries = append(l.entries, e)
	return true
}

// Remove deletes the entry with the given id, if any, and reports whether
// the ledger changed. Removing an absent id is a no-op.
func (l *Ledger) Remove(id plant.ID) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	for i, e := range l.entries {
		if e.ID == id {
			l.entries = append(l.entries[:i], l.entries[i+1:]...)
			return true
		}
	}
	return false
}

// Entries returns a copy of the current entries in insertion order.
func (l *Ledger) Entries() []Entry {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Total sums the snapshot prices of all entries.
func (l *Ledger) Total() plant.Price {
	l.mu.RLock()
	defer l.mu.RUnlock()

	var total plant.Price
	for _, e := range l.entries {
		total += e.Price
	}
	return total
}

// Len reports the number of entries.
func (l *Ledger) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.entries)
}
