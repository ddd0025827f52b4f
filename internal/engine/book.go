package engine

import (
	"sync"

	"github.com/lfreire/tokendex/internal/domain"
)

// Book is the ordered sequence of resting orders for one
// (instrument, side) pair. Positions are explicit indices with the
// best-priority order at index 0. The book itself holds no lock; the
// engine serializes every operation that touches it.
type Book struct {
	instrument domain.Asset
	side       domain.Side
	orders     []*domain.Order
}

// NewBook creates an empty book for the given instrument and side.
func NewBook(instrument domain.Asset, side domain.Side) *Book {
	return &Book{
		instrument: instrument,
		side:       side,
	}
}

// Side returns the side this book holds.
func (b *Book) Side() domain.Side {
	return b.side
}

// Instrument returns the instrument this book belongs to.
func (b *Book) Instrument() domain.Asset {
	return b.instrument
}

// Len returns the number of resting orders.
func (b *Book) Len() int {
	return len(b.orders)
}

// Front returns the best-priority resting order, or nil when the book
// is empty.
func (b *Book) Front() *domain.Order {
	if len(b.orders) == 0 {
		return nil
	}
	return b.orders[0]
}

// Append adds an order at the tail without regard to price ordering.
func (b *Book) Append(o *domain.Order) {
	b.orders = append(b.orders, o)
}

// SpliceAt inserts an order at index i, pushing orders at i and beyond
// one position back.
func (b *Book) SpliceAt(i int, o *domain.Order) {
	b.orders = append(b.orders, nil)
	copy(b.orders[i+1:], b.orders[i:])
	b.orders[i] = o
}

// RemoveFront removes the best-priority order. It is a no-op on an
// empty book.
func (b *Book) RemoveFront() {
	if len(b.orders) == 0 {
		return
	}
	b.orders[0] = nil
	b.orders = b.orders[1:]
}

// PositionFor returns the index at which o must be spliced in to
// preserve this side's price-time ordering.
func (b *Book) PositionFor(o *domain.Order) int {
	return PositionToPlace(b.Orders(), *o, b.side)
}

// Orders returns a front-to-back snapshot of the resting orders.
func (b *Book) Orders() []domain.Order {
	snapshot := make([]domain.Order, len(b.orders))
	for i, o := range b.orders {
		snapshot[i] = *o
	}
	return snapshot
}

// bookKey identifies one side of one instrument's book.
type bookKey struct {
	instrument domain.Asset
	side       domain.Side
}

// BookManager is a thread-safe map of (instrument, side) → Book. Books
// are created lazily on first use and persist for the engine's
// lifetime.
type BookManager struct {
	mu    sync.RWMutex
	books map[bookKey]*Book
}

// NewBookManager creates a new BookManager.
func NewBookManager() *BookManager {
	return &BookManager{
		books: make(map[bookKey]*Book),
	}
}

// GetOrCreate returns the book for the given instrument and side,
// creating one if it doesn't already exist.
func (bm *BookManager) GetOrCreate(instrument domain.Asset, side domain.Side) *Book {
	key := bookKey{instrument: instrument, side: side}

	bm.mu.RLock()
	book, ok := bm.books[key]
	bm.mu.RUnlock()
	if ok {
		return book
	}

	bm.mu.Lock()
	defer bm.mu.Unlock()
	// Double-check after acquiring write lock.
	if book, ok = bm.books[key]; ok {
		return book
	}
	book = NewBook(instrument, side)
	bm.books[key] = book
	return book
}

// Get returns the book for the given instrument and side, or nil if no
// order has ever been placed on it.
func (bm *BookManager) Get(instrument domain.Asset, side domain.Side) *Book {
	bm.mu.RLock()
	defer bm.mu.RUnlock()
	return bm.books[bookKey{instrument: instrument, side: side}]
}
