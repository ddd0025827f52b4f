package engine

import (
	"github.com/google/btree"

	"github.com/lfreire/tokendex/internal/domain"
)

// Level is an aggregated price level on one side of a book.
type Level struct {
	Price    int64
	Quantity int64
	Orders   int
}

// DepthTracker maintains aggregated price levels per (instrument, side)
// so depth queries don't walk the books. Levels are kept in a B-tree
// ordered best price first: descending for buys, ascending for sells.
// The engine serializes all access.
type DepthTracker struct {
	sides map[bookKey]*btree.BTreeG[Level]
}

// NewDepthTracker creates an empty DepthTracker.
func NewDepthTracker() *DepthTracker {
	return &DepthTracker{
		sides: make(map[bookKey]*btree.BTreeG[Level]),
	}
}

func (d *DepthTracker) tree(instrument domain.Asset, side domain.Side) *btree.BTreeG[Level] {
	key := bookKey{instrument: instrument, side: side}
	t, ok := d.sides[key]
	if !ok {
		const degree = 32
		less := func(a, b Level) bool {
			return side.Beats(a.Price, b.Price)
		}
		t = btree.NewG[Level](degree, less)
		d.sides[key] = t
	}
	return t
}

// Add records a newly resting order at the given price level.
func (d *DepthTracker) Add(instrument domain.Asset, side domain.Side, price, qty int64) {
	t := d.tree(instrument, side)
	level, ok := t.Get(Level{Price: price})
	if !ok {
		level = Level{Price: price}
	}
	level.Quantity += qty
	level.Orders++
	t.ReplaceOrInsert(level)
}

// Reduce shrinks a price level after a fill. removed indicates the
// resting order was fully filled and left the book; a level whose last
// order leaves is deleted.
func (d *DepthTracker) Reduce(instrument domain.Asset, side domain.Side, price, qty int64, removed bool) {
	t := d.tree(instrument, side)
	level, ok := t.Get(Level{Price: price})
	if !ok {
		return
	}
	level.Quantity -= qty
	if removed {
		level.Orders--
	}
	if level.Orders <= 0 {
		t.Delete(level)
		return
	}
	t.ReplaceOrInsert(level)
}

// Levels returns up to n aggregated price levels for the given
// instrument and side, best price first.
func (d *DepthTracker) Levels(instrument domain.Asset, side domain.Side, n int) []Level {
	if n <= 0 {
		return nil
	}
	t, ok := d.sides[bookKey{instrument: instrument, side: side}]
	if !ok {
		return nil
	}
	levels := make([]Level, 0, n)
	t.Ascend(func(level Level) bool {
		levels = append(levels, level)
		return len(levels) < n
	})
	return levels
}
