package domain

import (
	"errors"
	"testing"
)

func TestInstrumentRegistry_Register(t *testing.T) {
	r := NewInstrumentRegistry()

	if r.Exists("LINK") {
		t.Fatal("expected LINK to be unknown")
	}
	if err := r.Register("LINK", "0xlink"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !r.Exists("LINK") {
		t.Error("expected LINK to exist after registration")
	}

	if err := r.Register("LINK", "0xother"); !errors.Is(err, ErrInstrumentExists) {
		t.Errorf("expected ErrInstrumentExists for duplicate, got %v", err)
	}
}

func TestInstrumentRegistry_CurrencyIsReserved(t *testing.T) {
	r := NewInstrumentRegistry()
	if err := r.Register(Currency, "0xcash"); !errors.Is(err, ErrInstrumentExists) {
		t.Errorf("expected ErrInstrumentExists for reserved asset, got %v", err)
	}
}

func TestInstrumentRegistry_ExternalRef(t *testing.T) {
	r := NewInstrumentRegistry()
	if _, err := r.ExternalRef("LINK"); !errors.Is(err, ErrUnknownInstrument) {
		t.Errorf("expected ErrUnknownInstrument, got %v", err)
	}

	if err := r.Register("LINK", "0xlink"); err != nil {
		t.Fatal(err)
	}
	ref, err := r.ExternalRef("LINK")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ref != "0xlink" {
		t.Errorf("expected 0xlink, got %s", ref)
	}
}

func TestInstrumentRegistry_ListSorted(t *testing.T) {
	r := NewInstrumentRegistry()
	for _, id := range []Asset{"WETH", "AAVE", "LINK"} {
		if err := r.Register(id, "0x"+string(id)); err != nil {
			t.Fatal(err)
		}
	}

	infos := r.List()
	if len(infos) != 3 {
		t.Fatalf("expected 3 instruments, got %d", len(infos))
	}
	want := []Asset{"AAVE", "LINK", "WETH"}
	for i, id := range want {
		if infos[i].ID != id {
			t.Errorf("position %d: expected %s, got %s", i, id, infos[i].ID)
		}
	}
}
