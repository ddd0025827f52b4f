package service

import (
	"regexp"

	"github.com/lfreire/tokendex/internal/domain"
	"github.com/lfreire/tokendex/internal/engine"
)

var (
	traderIDRegex   = regexp.MustCompile(`^[a-zA-Z0-9_-]{1,64}$`)
	instrumentRegex = regexp.MustCompile(`^[A-Z]{1,10}$`)
)

func validateTrader(trader string) error {
	if !traderIDRegex.MatchString(trader) {
		return &domain.ValidationError{
			Message: "trader must match ^[a-zA-Z0-9_-]{1,64}$",
		}
	}
	return nil
}

func validateInstrument(instrument string) error {
	if !instrumentRegex.MatchString(instrument) {
		return &domain.ValidationError{
			Message: "instrument must match ^[A-Z]{1,10}$",
		}
	}
	return nil
}

// RegisterInstrumentRequest represents the input for instrument
// registration.
type RegisterInstrumentRequest struct {
	Caller      string
	Instrument  string
	ExternalRef string
}

// CustodyRequest represents the input for deposits and withdrawals.
// Instrument is empty for settlement-currency movements.
type CustodyRequest struct {
	Trader     string
	Instrument string
	Amount     int64
}

// AssetService handles instrument registration, custody movements and
// balance queries.
type AssetService struct {
	engine *engine.Engine
}

// NewAssetService creates a new AssetService.
func NewAssetService(eng *engine.Engine) *AssetService {
	return &AssetService{engine: eng}
}

// RegisterInstrument validates the request and registers an instrument.
func (s *AssetService) RegisterInstrument(req RegisterInstrumentRequest) error {
	if err := validateTrader(req.Caller); err != nil {
		return err
	}
	if err := validateInstrument(req.Instrument); err != nil {
		return err
	}
	if req.ExternalRef == "" || len(req.ExternalRef) > 128 {
		return &domain.ValidationError{
			Message: "external_ref must be 1-128 characters",
		}
	}
	return s.engine.AddInstrument(req.Caller, domain.Asset(req.Instrument), req.ExternalRef)
}

// Instruments returns all registered instruments.
func (s *AssetService) Instruments() []domain.InstrumentInfo {
	return s.engine.Instruments()
}

// Deposit validates the request and credits the trader's balance. An
// empty instrument deposits settlement currency.
func (s *AssetService) Deposit(req CustodyRequest) error {
	if err := s.validateCustody(req); err != nil {
		return err
	}
	if req.Instrument == "" {
		s.engine.DepositCurrency(req.Trader, req.Amount)
		return nil
	}
	return s.engine.Deposit(req.Trader, domain.Asset(req.Instrument), req.Amount)
}

// Withdraw validates the request and debits the trader's balance. An
// empty instrument withdraws settlement currency.
func (s *AssetService) Withdraw(req CustodyRequest) error {
	if err := s.validateCustody(req); err != nil {
		return err
	}
	if req.Instrument == "" {
		return s.engine.WithdrawCurrency(req.Trader, req.Amount)
	}
	return s.engine.Withdraw(req.Trader, domain.Asset(req.Instrument), req.Amount)
}

func (s *AssetService) validateCustody(req CustodyRequest) error {
	if err := validateTrader(req.Trader); err != nil {
		return err
	}
	if req.Instrument != "" {
		if err := validateInstrument(req.Instrument); err != nil {
			return err
		}
	}
	if req.Amount <= 0 {
		return &domain.ValidationError{
			Message: "amount must be a positive integer",
		}
	}
	return nil
}

// Balances returns every non-zero balance the trader holds.
func (s *AssetService) Balances(trader string) (map[domain.Asset]int64, error) {
	if err := validateTrader(trader); err != nil {
		return nil, err
	}
	return s.engine.Balances(trader), nil
}

// Balance returns the trader's balance of a single asset. An empty
// instrument queries the settlement currency.
func (s *AssetService) Balance(trader, instrument string) (int64, error) {
	if err := validateTrader(trader); err != nil {
		return 0, err
	}
	asset := domain.Currency
	if instrument != "" {
		if err := validateInstrument(instrument); err != nil {
			return 0, err
		}
		asset = domain.Asset(instrument)
	}
	return s.engine.Balance(trader, asset), nil
}
