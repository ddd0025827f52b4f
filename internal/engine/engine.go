package engine

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/lfreire/tokendex/internal/domain"
	"github.com/lfreire/tokendex/internal/store"
)

// Publisher receives every executed fill. Implementations must not
// block: PublishFill is called while the engine lock is held.
type Publisher interface {
	PublishFill(f domain.Fill)
}

// Engine is the matching engine. It owns the books, the balance
// ledger, the instrument registry and the order/fill archives, and
// serializes every public operation behind a single mutex: each call
// runs to completion before the next is admitted, so no caller ever
// observes a partially applied mutation from another call.
//
// Within one market-order call the fill loop commits each step as it
// goes; a funding failure after the first step keeps the committed
// prefix (see CreateMarketOrder).
type Engine struct {
	mu       sync.Mutex
	owner    string
	books    *BookManager
	ledger   *Ledger
	registry *domain.InstrumentRegistry
	depth    *DepthTracker
	orders   *store.OrderStore
	fills    *store.FillStore
	feed     Publisher // optional; nil disables publishing

	lastOrderID uint64
	lastSeq     uint64
}

// NewEngine creates an Engine with the given dependencies. owner is
// the only identity allowed to register instruments. feed may be nil.
func NewEngine(
	owner string,
	books *BookManager,
	ledger *Ledger,
	registry *domain.InstrumentRegistry,
	depth *DepthTracker,
	orders *store.OrderStore,
	fills *store.FillStore,
	feed Publisher,
) *Engine {
	return &Engine{
		owner:    owner,
		books:    books,
		ledger:   ledger,
		registry: registry,
		depth:    depth,
		orders:   orders,
		fills:    fills,
		feed:     feed,
	}
}

// nextOrderID returns a fresh order id. Ids are monotonically
// increasing and never reused; every order, market orders included,
// consumes one.
func (e *Engine) nextOrderID() uint64 {
	e.lastOrderID++
	return e.lastOrderID
}

// nextSeq returns a fresh sequence number, the time-priority tiebreaker
// among equal prices. Only orders that can rest draw one.
func (e *Engine) nextSeq() uint64 {
	e.lastSeq++
	return e.lastSeq
}

// AddInstrument registers an instrument mapped to an external asset
// reference. Only the engine owner may call it.
func (e *Engine) AddInstrument(caller string, id domain.Asset, externalRef string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if caller != e.owner {
		return domain.ErrUnauthorized
	}
	return e.registry.Register(id, externalRef)
}

// Instruments returns all registered instruments.
func (e *Engine) Instruments() []domain.InstrumentInfo {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.registry.List()
}

// DepositCurrency moves custody of the settlement currency into the
// ledger for the given trader.
func (e *Engine) DepositCurrency(trader string, amount int64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.ledger.Credit(trader, domain.Currency, amount)
}

// Deposit moves custody of an instrument into the ledger. It fails if
// the instrument is not registered.
func (e *Engine) Deposit(trader string, instrument domain.Asset, amount int64) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.registry.Exists(instrument) {
		return domain.ErrUnknownInstrument
	}
	e.ledger.Credit(trader, instrument, amount)
	return nil
}

// WithdrawCurrency moves settlement currency out of the ledger. It
// fails with domain.ErrInsufficientBalance if the trader holds less
// than amount.
func (e *Engine) WithdrawCurrency(trader string, amount int64) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.ledger.Debit(trader, domain.Currency, amount)
}

// Withdraw moves an instrument out of the ledger.
func (e *Engine) Withdraw(trader string, instrument domain.Asset, amount int64) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.registry.Exists(instrument) {
		return domain.ErrUnknownInstrument
	}
	return e.ledger.Debit(trader, instrument, amount)
}

// Balance returns the trader's available quantity of the given asset.
func (e *Engine) Balance(trader string, asset domain.Asset) int64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.ledger.Balance(trader, asset)
}

// Balances returns every non-zero balance the trader holds.
func (e *Engine) Balances(trader string) map[domain.Asset]int64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.ledger.Snapshot(trader)
}

// checkFunding validates that the trader can cover a limit order:
// buys need settlement currency for amount × price, sells need the
// instrument itself. Nothing is reserved; funding is re-checked per
// step when the order eventually matches.
func (e *Engine) checkFunding(trader string, side domain.Side, instrument domain.Asset, amount, price int64) error {
	if side == domain.SideBuy {
		if e.ledger.Balance(trader, domain.Currency) < amount*price {
			return domain.ErrInsufficientBalance
		}
		return nil
	}
	if e.ledger.Balance(trader, instrument) < amount {
		return domain.ErrInsufficientBalance
	}
	return nil
}

// CreateLimitOrder validates funding and appends a new resting order
// at the tail of the relevant book, without regard to price ordering.
// It returns the new order's id.
func (e *Engine) CreateLimitOrder(trader string, side domain.Side, instrument domain.Asset, amount, price int64) (uint64, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	o, err := e.newLimitOrder(trader, side, instrument, amount, price)
	if err != nil {
		return 0, err
	}
	e.books.GetOrCreate(instrument, side).Append(o)
	e.afterRest(o)
	return o.ID, nil
}

// CreateSortedLimitOrder validates funding and splices a new resting
// order at the position that preserves the book side's price-time
// ordering. It returns the new order's id.
func (e *Engine) CreateSortedLimitOrder(trader string, side domain.Side, instrument domain.Asset, amount, price int64) (uint64, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	o, err := e.newLimitOrder(trader, side, instrument, amount, price)
	if err != nil {
		return 0, err
	}
	book := e.books.GetOrCreate(instrument, side)
	book.SpliceAt(book.PositionFor(o), o)
	e.afterRest(o)
	return o.ID, nil
}

func (e *Engine) newLimitOrder(trader string, side domain.Side, instrument domain.Asset, amount, price int64) (*domain.Order, error) {
	if !e.registry.Exists(instrument) {
		return nil, domain.ErrUnknownInstrument
	}
	if err := e.checkFunding(trader, side, instrument, amount, price); err != nil {
		return nil, err
	}
	return &domain.Order{
		ID:         e.nextOrderID(),
		Trader:     trader,
		Side:       side,
		Instrument: instrument,
		Amount:     amount,
		Price:      price,
		Sequence:   e.nextSeq(),
	}, nil
}

func (e *Engine) afterRest(o *domain.Order) {
	e.depth.Add(o.Instrument, o.Side, o.Price, o.Amount)
	e.orders.Create(o)
}

// CreateMarketOrder consumes resting liquidity on the opposite side of
// the book, best price first, until amount is fully filled or the side
// is empty. Every fill executes at the resting order's price.
//
// An amount of 0 is a no-op: no funding check, no fills, no error. An
// empty opposite side fails with domain.ErrEmptyBook. A funding
// failure on the first step mutates nothing; a failure on a later step
// returns the fills already committed together with
// domain.ErrInsufficientBalance — the prefix is never rolled back. A
// book exhausted before amount is filled is not an error; the
// remainder is discarded.
func (e *Engine) CreateMarketOrder(trader string, side domain.Side, instrument domain.Asset, amount int64) ([]domain.Fill, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if amount == 0 {
		return nil, nil
	}
	if !e.registry.Exists(instrument) {
		return nil, domain.ErrUnknownInstrument
	}

	book := e.books.Get(instrument, side.Opposite())
	if book == nil || book.Len() == 0 {
		return nil, domain.ErrEmptyBook
	}

	taker := &domain.Order{
		ID:         e.nextOrderID(),
		Trader:     trader,
		Side:       side,
		Instrument: instrument,
		Amount:     amount,
	}

	var fills []domain.Fill
	var stepErr error

	for taker.Amount > 0 && book.Len() > 0 {
		top := book.Front()

		fillQty := taker.Amount
		if top.Amount < fillQty {
			fillQty = top.Amount
		}
		cost := fillQty * top.Price

		// Both legs are checked before either moves, so a step either
		// fully settles or stops the loop with the ledger untouched.
		if side == domain.SideBuy {
			if e.ledger.Balance(trader, domain.Currency) < cost ||
				e.ledger.Balance(top.Trader, instrument) < fillQty {
				stepErr = domain.ErrInsufficientBalance
				break
			}
			_ = e.ledger.Transfer(trader, top.Trader, domain.Currency, cost)
			_ = e.ledger.Transfer(top.Trader, trader, instrument, fillQty)
		} else {
			if e.ledger.Balance(trader, instrument) < fillQty ||
				e.ledger.Balance(top.Trader, domain.Currency) < cost {
				stepErr = domain.ErrInsufficientBalance
				break
			}
			_ = e.ledger.Transfer(trader, top.Trader, instrument, fillQty)
			_ = e.ledger.Transfer(top.Trader, trader, domain.Currency, cost)
		}

		taker.Amount -= fillQty
		top.Amount -= fillQty
		e.depth.Reduce(instrument, top.Side, top.Price, fillQty, top.Amount == 0)
		if top.Amount == 0 {
			book.RemoveFront()
		}

		f := domain.Fill{
			FillID:       uuid.New().String(),
			Instrument:   instrument,
			Price:        top.Price,
			Quantity:     fillQty,
			Maker:        top.Trader,
			Taker:        trader,
			TakerSide:    side,
			MakerOrderID: top.ID,
			TakerOrderID: taker.ID,
			ExecutedAt:   time.Now(),
		}
		fills = append(fills, f)
		e.fills.Append(f)
		if e.feed != nil {
			e.feed.PublishFill(f)
		}
	}

	if len(fills) == 0 && stepErr != nil {
		return nil, stepErr
	}
	if len(fills) > 0 {
		e.orders.Create(taker)
	}
	return fills, stepErr
}

// OrderBook returns a front-to-back snapshot of the resting orders for
// an instrument's side, in the side's priority order for books built
// through the sorted path.
func (e *Engine) OrderBook(instrument domain.Asset, side domain.Side) ([]domain.Order, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.registry.Exists(instrument) {
		return nil, domain.ErrUnknownInstrument
	}
	book := e.books.Get(instrument, side)
	if book == nil {
		return []domain.Order{}, nil
	}
	return book.Orders(), nil
}

// Depth returns up to n aggregated price levels for an instrument's
// side, best price first.
func (e *Engine) Depth(instrument domain.Asset, side domain.Side, n int) ([]Level, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.registry.Exists(instrument) {
		return nil, domain.ErrUnknownInstrument
	}
	levels := e.depth.Levels(instrument, side, n)
	if levels == nil {
		levels = []Level{}
	}
	return levels, nil
}

// PositionToPlace reports where a candidate order would be spliced into
// the current book without mutating any state.
func (e *Engine) PositionToPlace(instrument domain.Asset, side domain.Side, candidate domain.Order) (int, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.registry.Exists(instrument) {
		return 0, domain.ErrUnknownInstrument
	}
	book := e.books.Get(instrument, side)
	if book == nil {
		return 0, nil
	}
	return PositionToPlace(book.Orders(), candidate, side), nil
}
