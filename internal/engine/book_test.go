package engine

import (
	"testing"

	"github.com/lfreire/tokendex/internal/domain"
)

func restingOrder(id uint64, price int64) *domain.Order {
	return &domain.Order{
		ID:         id,
		Trader:     "t",
		Side:       domain.SideBuy,
		Instrument: "LINK",
		Amount:     10,
		Price:      price,
		Sequence:   id,
	}
}

func TestBook_AppendAndFront(t *testing.T) {
	b := NewBook("LINK", domain.SideBuy)
	if b.Len() != 0 {
		t.Fatalf("expected empty book, got len %d", b.Len())
	}
	if b.Front() != nil {
		t.Fatal("expected nil front on empty book")
	}

	b.Append(restingOrder(1, 50))
	b.Append(restingOrder(2, 60))

	if b.Len() != 2 {
		t.Fatalf("expected len 2, got %d", b.Len())
	}
	// Append does not reorder: front is insertion order, not price order.
	if b.Front().ID != 1 {
		t.Errorf("expected front id 1, got %d", b.Front().ID)
	}
}

func TestBook_SpliceAt(t *testing.T) {
	b := NewBook("LINK", domain.SideBuy)
	b.Append(restingOrder(1, 50))
	b.Append(restingOrder(2, 30))

	mid := restingOrder(3, 40)
	b.SpliceAt(b.PositionFor(mid), mid)

	want := []int64{50, 40, 30}
	orders := b.Orders()
	if len(orders) != 3 {
		t.Fatalf("expected 3 orders, got %d", len(orders))
	}
	for i, price := range want {
		if orders[i].Price != price {
			t.Errorf("position %d: expected price %d, got %d", i, price, orders[i].Price)
		}
	}
}

func TestBook_SpliceAtFront(t *testing.T) {
	b := NewBook("LINK", domain.SideBuy)
	b.Append(restingOrder(1, 50))

	best := restingOrder(2, 55)
	b.SpliceAt(b.PositionFor(best), best)

	if b.Front().ID != 2 {
		t.Errorf("expected best-priced order at front, got id %d", b.Front().ID)
	}
}

func TestBook_RemoveFront(t *testing.T) {
	b := NewBook("LINK", domain.SideSell)
	b.Append(restingOrder(1, 10))
	b.Append(restingOrder(2, 20))

	b.RemoveFront()
	if b.Len() != 1 {
		t.Fatalf("expected len 1, got %d", b.Len())
	}
	if b.Front().ID != 2 {
		t.Errorf("expected front id 2, got %d", b.Front().ID)
	}

	b.RemoveFront()
	b.RemoveFront() // no-op on empty book
	if b.Len() != 0 {
		t.Errorf("expected empty book, got len %d", b.Len())
	}
}

func TestBook_OrdersIsASnapshot(t *testing.T) {
	b := NewBook("LINK", domain.SideBuy)
	b.Append(restingOrder(1, 50))

	snapshot := b.Orders()
	snapshot[0].Amount = 1

	if b.Front().Amount != 10 {
		t.Error("mutating the snapshot must not affect the book")
	}
}

func TestBookManager_GetOrCreate(t *testing.T) {
	bm := NewBookManager()

	if bm.Get("LINK", domain.SideBuy) != nil {
		t.Fatal("expected nil for a book that was never created")
	}

	b1 := bm.GetOrCreate("LINK", domain.SideBuy)
	b2 := bm.GetOrCreate("LINK", domain.SideBuy)
	if b1 != b2 {
		t.Error("expected the same book instance for the same key")
	}

	sell := bm.GetOrCreate("LINK", domain.SideSell)
	if sell == b1 {
		t.Error("expected distinct books per side")
	}
	if bm.Get("LINK", domain.SideBuy) != b1 {
		t.Error("Get should return the created book")
	}
}
