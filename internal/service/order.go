package service

import (
	"fmt"
	"math"

	"github.com/lfreire/tokendex/internal/domain"
	"github.com/lfreire/tokendex/internal/engine"
	"github.com/lfreire/tokendex/internal/store"
)

// Order type values accepted in submissions.
const (
	OrderTypeLimit  = "limit"
	OrderTypeMarket = "market"
)

// SubmitOrderRequest represents the input for order submission.
type SubmitOrderRequest struct {
	Type       string
	Trader     string
	Side       domain.Side
	Instrument string
	Amount     int64
	Price      *string // decimal string; required for limit, must be nil for market
	Sorted     bool    // limit only: use the position-preserving insert path
}

// SubmitOrderResult holds the outcome of a submission: the resting
// order's id for limit orders, or the executed fills for market orders.
type SubmitOrderResult struct {
	OrderID uint64
	Fills   []domain.Fill
}

// OrderService handles order submission and retrieval.
type OrderService struct {
	engine *engine.Engine
	orders *store.OrderStore
}

// NewOrderService creates a new OrderService.
func NewOrderService(eng *engine.Engine, orders *store.OrderStore) *OrderService {
	return &OrderService{engine: eng, orders: orders}
}

// Submit validates the request and routes it to the limit or market
// path.
func (s *OrderService) Submit(req SubmitOrderRequest) (*SubmitOrderResult, error) {
	if req.Type != OrderTypeLimit && req.Type != OrderTypeMarket {
		return nil, &domain.ValidationError{
			Message: fmt.Sprintf("Unknown order type: %s. Must be one of: limit, market", req.Type),
		}
	}
	if err := validateTrader(req.Trader); err != nil {
		return nil, err
	}
	if !req.Side.Valid() {
		return nil, &domain.ValidationError{
			Message: "side must be 'buy' or 'sell'",
		}
	}
	if err := validateInstrument(req.Instrument); err != nil {
		return nil, err
	}
	if req.Amount <= 0 && req.Type == OrderTypeLimit {
		return nil, &domain.ValidationError{
			Message: "amount must be a positive integer",
		}
	}
	if req.Amount < 0 {
		return nil, &domain.ValidationError{
			Message: "amount must not be negative",
		}
	}

	if req.Type == OrderTypeLimit {
		return s.submitLimit(req)
	}
	return s.submitMarket(req)
}

func (s *OrderService) submitLimit(req SubmitOrderRequest) (*SubmitOrderResult, error) {
	if req.Price == nil {
		return nil, &domain.ValidationError{
			Message: "price is required for limit orders",
		}
	}
	price, err := domain.ParsePrice(*req.Price)
	if err != nil {
		return nil, &domain.ValidationError{Message: err.Error()}
	}
	if price <= 0 {
		return nil, &domain.ValidationError{
			Message: "price must be greater than 0",
		}
	}
	// The funding check and fill loop multiply amount by price; reject
	// pairs whose notional would not fit in int64.
	if req.Amount > math.MaxInt64/price {
		return nil, &domain.ValidationError{
			Message: "amount times price exceeds the representable range",
		}
	}

	instrument := domain.Asset(req.Instrument)
	var id uint64
	if req.Sorted {
		id, err = s.engine.CreateSortedLimitOrder(req.Trader, req.Side, instrument, req.Amount, price)
	} else {
		id, err = s.engine.CreateLimitOrder(req.Trader, req.Side, instrument, req.Amount, price)
	}
	if err != nil {
		return nil, err
	}
	return &SubmitOrderResult{OrderID: id}, nil
}

func (s *OrderService) submitMarket(req SubmitOrderRequest) (*SubmitOrderResult, error) {
	if req.Price != nil {
		return nil, &domain.ValidationError{
			Message: "market orders must not include price",
		}
	}
	if req.Sorted {
		return nil, &domain.ValidationError{
			Message: "market orders must not set sorted",
		}
	}

	fills, err := s.engine.CreateMarketOrder(req.Trader, req.Side, domain.Asset(req.Instrument), req.Amount)
	if err != nil && len(fills) == 0 {
		return nil, err
	}
	// A mid-match funding failure still reports the committed fills.
	return &SubmitOrderResult{Fills: fills}, err
}

// GetOrder retrieves an order by id.
func (s *OrderService) GetOrder(id uint64) (*domain.Order, error) {
	return s.orders.Get(id)
}

// ListByTrader returns the trader's orders newest first.
func (s *OrderService) ListByTrader(trader string) ([]domain.Order, error) {
	if err := validateTrader(trader); err != nil {
		return nil, err
	}
	return s.orders.ListByTrader(trader), nil
}
