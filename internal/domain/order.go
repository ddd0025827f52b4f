package domain

// Side indicates whether an order buys or sells the instrument.
type Side string

const (
	SideBuy  Side = "buy"
	SideSell Side = "sell"
)

// Valid reports whether s is a known side.
func (s Side) Valid() bool {
	return s == SideBuy || s == SideSell
}

// Opposite returns the side an incoming order matches against.
func (s Side) Opposite() Side {
	if s == SideBuy {
		return SideSell
	}
	return SideBuy
}

// Beats reports whether price a has strictly better priority than
// price b on this side: higher for buys, lower for sells. Equal prices
// never beat, which is what keeps earlier orders ahead at a level.
func (s Side) Beats(a, b int64) bool {
	if s == SideBuy {
		return a > b
	}
	return a < b
}

// Order represents a single resting or incoming order.
type Order struct {
	ID         uint64
	Trader     string
	Side       Side
	Instrument Asset
	Amount     int64 // remaining unfilled quantity; > 0 while on a book
	Price      int64 // limit price in ticks; 0 for market orders
	Sequence   uint64
}
