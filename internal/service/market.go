package service

import (
	"github.com/lfreire/tokendex/internal/domain"
	"github.com/lfreire/tokendex/internal/engine"
	"github.com/lfreire/tokendex/internal/store"
)

// MarketService handles read-only book, depth and fill-history queries.
type MarketService struct {
	engine *engine.Engine
	fills  *store.FillStore
}

// NewMarketService creates a new MarketService.
func NewMarketService(eng *engine.Engine, fills *store.FillStore) *MarketService {
	return &MarketService{engine: eng, fills: fills}
}

func parseSide(side string) (domain.Side, error) {
	s := domain.Side(side)
	if !s.Valid() {
		return "", &domain.ValidationError{
			Message: "side must be 'buy' or 'sell'",
		}
	}
	return s, nil
}

// Book returns the resting orders for an instrument's side,
// front-to-back in the side's priority order.
func (s *MarketService) Book(instrument, side string) ([]domain.Order, error) {
	if err := validateInstrument(instrument); err != nil {
		return nil, err
	}
	sd, err := parseSide(side)
	if err != nil {
		return nil, err
	}
	return s.engine.OrderBook(domain.Asset(instrument), sd)
}

// Depth returns up to levels aggregated price levels for an
// instrument's side, best price first.
func (s *MarketService) Depth(instrument, side string, levels int) ([]engine.Level, error) {
	if err := validateInstrument(instrument); err != nil {
		return nil, err
	}
	sd, err := parseSide(side)
	if err != nil {
		return nil, err
	}
	if levels < 1 || levels > 100 {
		return nil, &domain.ValidationError{
			Message: "levels must be between 1 and 100",
		}
	}
	return s.engine.Depth(domain.Asset(instrument), sd, levels)
}

// Fills returns all executed fills for an instrument in chronological
// order.
func (s *MarketService) Fills(instrument string) ([]domain.Fill, error) {
	if err := validateInstrument(instrument); err != nil {
		return nil, err
	}
	return s.fills.ByInstrument(domain.Asset(instrument)), nil
}
