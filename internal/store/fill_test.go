package store

import (
	"testing"
	"time"

	"github.com/lfreire/tokendex/internal/domain"
)

func testFill(id string, instrument domain.Asset, qty int64) domain.Fill {
	return domain.Fill{
		FillID:     id,
		Instrument: instrument,
		Price:      100,
		Quantity:   qty,
		Maker:      "seller",
		Taker:      "buyer",
		TakerSide:  domain.SideBuy,
		ExecutedAt: time.Now(),
	}
}

func TestFillStore_AppendAndList(t *testing.T) {
	s := NewFillStore()

	if got := s.ByInstrument("LINK"); len(got) != 0 {
		t.Fatalf("expected empty slice for unknown instrument, got %d", len(got))
	}

	s.Append(testFill("f1", "LINK", 2))
	s.Append(testFill("f2", "LINK", 3))
	s.Append(testFill("f3", "WETH", 1))

	link := s.ByInstrument("LINK")
	if len(link) != 2 {
		t.Fatalf("expected 2 LINK fills, got %d", len(link))
	}
	// Chronological order.
	if link[0].FillID != "f1" || link[1].FillID != "f2" {
		t.Errorf("unexpected order: %s, %s", link[0].FillID, link[1].FillID)
	}

	if got := s.ByInstrument("WETH"); len(got) != 1 {
		t.Errorf("expected 1 WETH fill, got %d", len(got))
	}
}

func TestFillStore_ListIsACopy(t *testing.T) {
	s := NewFillStore()
	s.Append(testFill("f1", "LINK", 2))

	fills := s.ByInstrument("LINK")
	fills[0].Quantity = 999

	if got := s.ByInstrument("LINK"); got[0].Quantity != 2 {
		t.Error("mutating the returned slice must not affect the store")
	}
}
