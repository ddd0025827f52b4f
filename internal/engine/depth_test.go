package engine

import (
	"testing"

	"github.com/lfreire/tokendex/internal/domain"
)

func TestDepthTracker_AddAggregatesLevels(t *testing.T) {
	d := NewDepthTracker()
	d.Add("LINK", domain.SideBuy, 50, 10)
	d.Add("LINK", domain.SideBuy, 50, 5)
	d.Add("LINK", domain.SideBuy, 40, 7)

	levels := d.Levels("LINK", domain.SideBuy, 10)
	if len(levels) != 2 {
		t.Fatalf("expected 2 levels, got %d", len(levels))
	}
	if levels[0].Price != 50 || levels[0].Quantity != 15 || levels[0].Orders != 2 {
		t.Errorf("unexpected top level: %+v", levels[0])
	}
	if levels[1].Price != 40 || levels[1].Quantity != 7 || levels[1].Orders != 1 {
		t.Errorf("unexpected second level: %+v", levels[1])
	}
}

func TestDepthTracker_SidesOrderedBestFirst(t *testing.T) {
	d := NewDepthTracker()
	for _, price := range []int64{30, 50, 40} {
		d.Add("LINK", domain.SideBuy, price, 1)
		d.Add("LINK", domain.SideSell, price, 1)
	}

	buys := d.Levels("LINK", domain.SideBuy, 10)
	if buys[0].Price != 50 || buys[1].Price != 40 || buys[2].Price != 30 {
		t.Errorf("buy levels not descending: %+v", buys)
	}

	sells := d.Levels("LINK", domain.SideSell, 10)
	if sells[0].Price != 30 || sells[1].Price != 40 || sells[2].Price != 50 {
		t.Errorf("sell levels not ascending: %+v", sells)
	}
}

func TestDepthTracker_Reduce(t *testing.T) {
	d := NewDepthTracker()
	d.Add("LINK", domain.SideSell, 100, 90)

	// Partial fill keeps the level.
	d.Reduce("LINK", domain.SideSell, 100, 2, false)
	levels := d.Levels("LINK", domain.SideSell, 10)
	if len(levels) != 1 || levels[0].Quantity != 88 || levels[0].Orders != 1 {
		t.Fatalf("unexpected levels after partial fill: %+v", levels)
	}

	// Full fill of the level's only order removes it.
	d.Reduce("LINK", domain.SideSell, 100, 88, true)
	if got := d.Levels("LINK", domain.SideSell, 10); len(got) != 0 {
		t.Errorf("expected empty depth, got %+v", got)
	}
}

func TestDepthTracker_LevelsLimit(t *testing.T) {
	d := NewDepthTracker()
	for price := int64(1); price <= 5; price++ {
		d.Add("LINK", domain.SideSell, price, 1)
	}

	if got := d.Levels("LINK", domain.SideSell, 3); len(got) != 3 {
		t.Errorf("expected 3 levels, got %d", len(got))
	}
	if got := d.Levels("LINK", domain.SideSell, 0); got != nil {
		t.Errorf("expected nil for n <= 0, got %+v", got)
	}
	if got := d.Levels("WETH", domain.SideSell, 3); got != nil {
		t.Errorf("expected nil for unknown instrument, got %+v", got)
	}
}
