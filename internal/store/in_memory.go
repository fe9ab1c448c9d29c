package store

import (
	"context"
	"sync"

	"github.com/abgdnv/storefront/internal/domain"
	"github.com/abgdnv/storefront/internal/errors"
)

// inMemory implements OrderStore using an in-memory map. Orders live until the process exits.
type inMemory struct {
	mu     sync.RWMutex
	orders map[string]domain.Order
}

// NewInMemoryOrderStore creates a new, empty instance of OrderStore.
func NewInMemoryOrderStore() OrderStore {
	return &inMemory{
		orders: make(map[string]domain.Order),
	}
}

// Save stores a copy of the order under its ID.
func (s *inMemory) Save(_ context.Context, order domain.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.orders[order.ID] = order.Clone()
	return nil
}

// FindByID retrieves an order by its ID.
func (s *inMemory) FindByID(_ context.Context, id string) (*domain.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	o, ok := s.orders[id]
	if !ok {
		return nil, errors.ErrOrderNotFound
	}
	c := o.Clone()
	return &c, nil
}
