// Package store holds the process-wide application state: the order list
// and the KDS settings. Both stores are owned by the composition root and
// passed to the handlers that need them; there are no package-level
// singletons. Every mutation replaces the underlying structure instead of
// editing it in place, so snapshots handed out earlier stay consistent.
package store

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/chapa-pos/api/internal/pos"
)

// Errors returned by the order store.
var (
	ErrOrderNotFound = errors.New("order not found")
	ErrItemNotFound  = errors.New("order item not found")
)

// Persister mirrors order mutations to durable storage. Implementations are
// best-effort: a persist failure is logged by the store and leaves the
// in-memory state, which stays authoritative, unchanged in outcome.
type Persister interface {
	SaveOrder(ctx context.Context, o pos.Order) error
	UpdateOrder(ctx context.Context, o pos.Order) error
	DeleteAllOrders(ctx context.Context) error
}

// OrderStore owns the list of orders for the running venue. All mutations
// are copy-on-write: the slice and any touched order are rebuilt, never
// edited, so List snapshots can be read without further locking.
type OrderStore struct {
	mu      sync.RWMutex
	orders  []pos.Order
	persist Persister
}

// NewOrderStore creates an empty store. persist may be nil for a purely
// in-memory store (tests, degraded mode).
func NewOrderStore(persist Persister) *OrderStore {
	return &OrderStore{persist: persist}
}

// Load seeds the store from persisted state. Called once at startup before
// the store is first used.
func (s *OrderStore) Load(orders []pos.Order) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orders = orders
}

// List returns the current snapshot, oldest first.
func (s *OrderStore) List() []pos.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.orders
}

// Get returns the order with the given id.
func (s *OrderStore) Get(id uuid.UUID) (pos.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, o := range s.orders {
		if o.ID == id {
			return o, nil
		}
	}
	return pos.Order{}, ErrOrderNotFound
}

// Add appends a new order and mirrors it to storage.
func (s *OrderStore) Add(ctx context.Context, o pos.Order) {
	s.mu.Lock()
	next := make([]pos.Order, len(s.orders), len(s.orders)+1)
	copy(next, s.orders)
	s.orders = append(next, o)
	s.mu.Unlock()

	if s.persist != nil {
		if err := s.persist.SaveOrder(ctx, o); err != nil {
			log.Printf("ERROR: persist order %s: %v", o.ID, err)
		}
	}
}

// UpdateStatus sets the order-level status.
func (s *OrderStore) UpdateStatus(ctx context.Context, id uuid.UUID, status pos.Status) (pos.Order, error) {
	return s.mutate(ctx, id, func(o *pos.Order) error {
		o.Status = status
		return nil
	})
}

// UpdateItemStatus sets one item's own status and stamps its LastModified,
// leaving the rest of the order untouched.
func (s *OrderStore) UpdateItemStatus(ctx context.Context, id uuid.UUID, itemIndex int, status pos.Status) (pos.Order, error) {
	return s.mutate(ctx, id, func(o *pos.Order) error {
		if itemIndex < 0 || itemIndex >= len(o.Items) {
			return ErrItemNotFound
		}
		o.Items[itemIndex].Status = status
		o.Items[itemIndex].LastModified = time.Now()
		return nil
	})
}

// AdvanceItem moves one item to the next status in the preparation
// sequence. The item's effective status falls back to the order-level
// status when the item was never individually advanced.
func (s *OrderStore) AdvanceItem(ctx context.Context, id uuid.UUID, itemIndex int) (pos.Order, error) {
	return s.mutate(ctx, id, func(o *pos.Order) error {
		if itemIndex < 0 || itemIndex >= len(o.Items) {
			return ErrItemNotFound
		}
		next := pos.NextStatus(o.ItemStatus(itemIndex))
		o.Items[itemIndex].Status = next
		o.Items[itemIndex].LastModified = time.Now()
		return nil
	})
}

// AdvanceOrder moves the order and every kitchen-relevant item to the next
// status together. This is the SINGLE-mode advance: one tap moves the whole
// ticket, atomically with respect to any other mutation.
func (s *OrderStore) AdvanceOrder(ctx context.Context, id uuid.UUID) (pos.Order, error) {
	return s.mutate(ctx, id, func(o *pos.Order) error {
		next := pos.NextStatus(o.Status)
		now := time.Now()
		o.Status = next
		for i := range o.Items {
			if !pos.KitchenRelevant(o.Items[i].Category) {
				continue
			}
			o.Items[i].Status = next
			o.Items[i].LastModified = now
		}
		return nil
	})
}

// Clear drops every order, in memory and in storage.
func (s *OrderStore) Clear(ctx context.Context) {
	s.mu.Lock()
	s.orders = nil
	s.mu.Unlock()

	if s.persist != nil {
		if err := s.persist.DeleteAllOrders(ctx); err != nil {
			log.Printf("ERROR: clear persisted orders: %v", err)
		}
	}
}

// mutate applies fn to a deep copy of the order with the given id, swaps
// the rebuilt slice in, and mirrors the updated order to storage.
func (s *OrderStore) mutate(ctx context.Context, id uuid.UUID, fn func(o *pos.Order) error) (pos.Order, error) {
	s.mu.Lock()
	idx := -1
	for i, o := range s.orders {
		if o.ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		s.mu.Unlock()
		return pos.Order{}, ErrOrderNotFound
	}

	updated := s.orders[idx]
	updated.Items = make([]pos.OrderItem, len(s.orders[idx].Items))
	copy(updated.Items, s.orders[idx].Items)

	if err := fn(&updated); err != nil {
		s.mu.Unlock()
		return pos.Order{}, err
	}
	updated.UpdatedAt = time.Now()

	next := make([]pos.Order, len(s.orders))
	copy(next, s.orders)
	next[idx] = updated
	s.orders = next
	s.mu.Unlock()

	if s.persist != nil {
		if err := s.persist.UpdateOrder(ctx, updated); err != nil {
			log.Printf("ERROR: persist order %s: %v", updated.ID, err)
		}
	}
	return updated, nil
}
