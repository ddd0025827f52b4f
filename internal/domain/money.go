package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// ParsePrice converts a decimal price string to int64 ticks (one tick
// is a hundredth of the settlement currency unit). At most 2 decimal
// places are accepted.
func ParsePrice(s string) (int64, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("invalid price %q", s)
	}
	shifted := d.Shift(2)
	if !shifted.IsInteger() {
		return 0, fmt.Errorf("prices must have at most 2 decimal places")
	}
	return shifted.IntPart(), nil
}

// FormatPrice converts ticks back to a decimal price string.
func FormatPrice(ticks int64) string {
	return decimal.New(ticks, -2).String()
}
