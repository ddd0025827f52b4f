package domain

import "errors"

// Sentinel errors for domain-level error handling.
// The handler layer maps these to HTTP status codes.
var (
	ErrInsufficientBalance = errors.New("insufficient_balance")
	ErrEmptyBook           = errors.New("empty_book")
	ErrUnknownInstrument   = errors.New("unknown_instrument")
	ErrInstrumentExists    = errors.New("instrument_exists")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrOrderNotFound       = errors.New("order_not_found")
)

// ValidationError represents a request validation failure.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}
