package domain

import "time"

// Fill represents a quantity matched between a taker and one maker
// order at the maker's price.
type Fill struct {
	FillID       string
	Instrument   Asset
	Price        int64 // ticks; always the maker's limit price
	Quantity     int64
	Maker        string // trader of the resting order
	Taker        string
	TakerSide    Side
	MakerOrderID uint64
	TakerOrderID uint64
	ExecutedAt   time.Time
}
