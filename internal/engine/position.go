package engine

import "github.com/lfreire/tokendex/internal/domain"

// IsMiddlePosition reports whether candidate fits between upper and
// lower, inclusive on both boundaries. upper must carry the
// higher-or-equal price of the two references.
func IsMiddlePosition(upper, candidate, lower domain.Order) bool {
	return candidate.Price <= upper.Price && candidate.Price >= lower.Price
}

// PositionToPlace returns the index at which candidate must be spliced
// into orders to preserve price-time priority for the given side.
//
// The scan returns the index of the first resting order the candidate
// strictly beats (higher price for buys, lower for sells). A candidate
// that beats none goes to the tail; a candidate better than every
// resting order lands at the front. Equal prices never beat, so a
// candidate at an existing level lands behind it. An empty book yields
// index 0.
func PositionToPlace(orders []domain.Order, candidate domain.Order, side domain.Side) int {
	for i := range orders {
		if side.Beats(candidate.Price, orders[i].Price) {
			return i
		}
	}
	return len(orders)
}
