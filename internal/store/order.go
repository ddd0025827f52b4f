package store

import (
	"sync"

	"github.com/lfreire/tokendex/internal/domain"
)

// OrderStore is a thread-safe in-memory archive of every order the
// engine has accepted, with a primary index by order id and a
// secondary index by trader. Orders in books are shared pointers, so
// reads observe fills as they happen.
type OrderStore struct {
	mu           sync.RWMutex
	orders       map[uint64]*domain.Order
	traderOrders map[string][]*domain.Order // trader → orders (append-only)
}

// NewOrderStore creates an empty OrderStore.
func NewOrderStore() *OrderStore {
	return &OrderStore{
		orders:       make(map[uint64]*domain.Order),
		traderOrders: make(map[string][]*domain.Order),
	}
}

// Create adds an order to the store and appends it to the trader's
// secondary index.
func (s *OrderStore) Create(o *domain.Order) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.orders[o.ID] = o
	s.traderOrders[o.Trader] = append(s.traderOrders[o.Trader], o)
}

// Get retrieves an order by id. It returns domain.ErrOrderNotFound if
// the order does not exist.
func (s *OrderStore) Get(id uint64) (*domain.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	o, ok := s.orders[id]
	if !ok {
		return nil, domain.ErrOrderNotFound
	}
	return o, nil
}

// ListByTrader returns the trader's orders newest first, as copies.
func (s *OrderStore) ListByTrader(trader string) []domain.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()

	all := s.traderOrders[trader]
	out := make([]domain.Order, 0, len(all))
	for i := len(all) - 1; i >= 0; i-- {
		out = append(out, *all[i])
	}
	return out
}
