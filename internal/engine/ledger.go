package engine

import "github.com/lfreire/tokendex/internal/domain"

// Ledger tracks each trader's available quantity of every asset: the
// settlement currency and every registered instrument. Balances are
// never negative; any mutation that would drive one negative is
// rejected before any state change. The engine serializes all access,
// so the ledger itself holds no lock.
type Ledger struct {
	balances map[string]map[domain.Asset]int64
}

// NewLedger creates an empty Ledger.
func NewLedger() *Ledger {
	return &Ledger{
		balances: make(map[string]map[domain.Asset]int64),
	}
}

// Balance returns the trader's available quantity of the given asset.
// Unknown traders and assets hold zero.
func (l *Ledger) Balance(trader string, asset domain.Asset) int64 {
	return l.balances[trader][asset]
}

// Snapshot returns a copy of every non-zero balance the trader holds.
func (l *Ledger) Snapshot(trader string) map[domain.Asset]int64 {
	out := make(map[domain.Asset]int64, len(l.balances[trader]))
	for asset, qty := range l.balances[trader] {
		if qty != 0 {
			out[asset] = qty
		}
	}
	return out
}

// Credit increases the trader's balance unconditionally. Used for
// deposits and for the receiving side of a fill.
func (l *Ledger) Credit(trader string, asset domain.Asset, qty int64) {
	held, ok := l.balances[trader]
	if !ok {
		held = make(map[domain.Asset]int64)
		l.balances[trader] = held
	}
	held[asset] += qty
}

// Debit decreases the trader's balance. It returns
// domain.ErrInsufficientBalance without mutating anything if the
// current balance is smaller than qty.
func (l *Ledger) Debit(trader string, asset domain.Asset, qty int64) error {
	held, ok := l.balances[trader]
	if !ok {
		held = make(map[domain.Asset]int64)
		l.balances[trader] = held
	}
	if held[asset] < qty {
		return domain.ErrInsufficientBalance
	}
	held[asset] -= qty
	return nil
}

// Transfer moves qty of an asset from one trader to another. If the
// debit fails, no credit occurs and the ledger is left unmodified;
// this pairing is what conserves each asset's total supply across all
// balances.
func (l *Ledger) Transfer(from, to string, asset domain.Asset, qty int64) error {
	if err := l.Debit(from, asset, qty); err != nil {
		return err
	}
	l.Credit(to, asset, qty)
	return nil
}
