package engine

import (
	"errors"
	"testing"

	"github.com/lfreire/tokendex/internal/domain"
)

func TestLedger_CreditAndBalance(t *testing.T) {
	l := NewLedger()

	if got := l.Balance("alice", domain.Currency); got != 0 {
		t.Fatalf("expected zero balance for unknown trader, got %d", got)
	}

	l.Credit("alice", domain.Currency, 100)
	l.Credit("alice", domain.Currency, 50)
	if got := l.Balance("alice", domain.Currency); got != 150 {
		t.Errorf("expected 150, got %d", got)
	}
}

func TestLedger_Debit(t *testing.T) {
	l := NewLedger()
	l.Credit("alice", "LINK", 10)

	if err := l.Debit("alice", "LINK", 4); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := l.Balance("alice", "LINK"); got != 6 {
		t.Errorf("expected 6, got %d", got)
	}

	err := l.Debit("alice", "LINK", 7)
	if !errors.Is(err, domain.ErrInsufficientBalance) {
		t.Fatalf("expected ErrInsufficientBalance, got %v", err)
	}
	// Failed debit must not mutate.
	if got := l.Balance("alice", "LINK"); got != 6 {
		t.Errorf("expected 6 after failed debit, got %d", got)
	}
}

func TestLedger_DebitUnknownTrader(t *testing.T) {
	l := NewLedger()
	if err := l.Debit("ghost", domain.Currency, 1); !errors.Is(err, domain.ErrInsufficientBalance) {
		t.Errorf("expected ErrInsufficientBalance, got %v", err)
	}
}

func TestLedger_DebitZeroFromUnknownTrader(t *testing.T) {
	// A zero-quantity debit never exceeds the balance, so it must
	// succeed even for a trader the ledger has never seen.
	l := NewLedger()
	if err := l.Debit("ghost", domain.Currency, 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := l.Balance("ghost", domain.Currency); got != 0 {
		t.Errorf("expected 0, got %d", got)
	}
}

func TestLedger_Transfer(t *testing.T) {
	l := NewLedger()
	l.Credit("alice", domain.Currency, 100)

	if err := l.Transfer("alice", "bob", domain.Currency, 60); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := l.Balance("alice", domain.Currency); got != 40 {
		t.Errorf("expected alice 40, got %d", got)
	}
	if got := l.Balance("bob", domain.Currency); got != 60 {
		t.Errorf("expected bob 60, got %d", got)
	}
}

func TestLedger_TransferFailureLeavesLedgerUnmodified(t *testing.T) {
	l := NewLedger()
	l.Credit("alice", domain.Currency, 10)

	err := l.Transfer("alice", "bob", domain.Currency, 11)
	if !errors.Is(err, domain.ErrInsufficientBalance) {
		t.Fatalf("expected ErrInsufficientBalance, got %v", err)
	}
	if got := l.Balance("alice", domain.Currency); got != 10 {
		t.Errorf("expected alice 10, got %d", got)
	}
	if got := l.Balance("bob", domain.Currency); got != 0 {
		t.Errorf("expected bob 0, got %d", got)
	}
}

func TestLedger_Snapshot(t *testing.T) {
	l := NewLedger()
	l.Credit("alice", domain.Currency, 100)
	l.Credit("alice", "LINK", 5)
	l.Credit("alice", "WETH", 3)
	_ = l.Debit("alice", "WETH", 3)

	snap := l.Snapshot("alice")
	if len(snap) != 2 {
		t.Fatalf("expected 2 non-zero balances, got %d", len(snap))
	}
	if snap[domain.Currency] != 100 || snap["LINK"] != 5 {
		t.Errorf("unexpected snapshot: %v", snap)
	}

	// Snapshot is a copy.
	snap["LINK"] = 999
	if got := l.Balance("alice", "LINK"); got != 5 {
		t.Errorf("expected 5 after snapshot mutation, got %d", got)
	}
}
