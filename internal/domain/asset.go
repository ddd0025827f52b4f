package domain

import (
	"sort"
	"sync"
)

// Asset identifies anything the ledger can hold: the settlement
// currency or a registered instrument.
type Asset string

// Currency is the settlement-currency asset. Every trade's cash leg
// settles in it. It is reserved and can never be registered as an
// instrument.
const Currency Asset = "CASH"

// InstrumentInfo describes a registered instrument.
type InstrumentInfo struct {
	ID          Asset
	ExternalRef string
}

// InstrumentRegistry maps instrument identifiers to the external asset
// they represent. Registration is one-shot per instrument; instruments
// are never removed.
type InstrumentRegistry struct {
	mu          sync.RWMutex
	instruments map[Asset]string // instrument → external asset reference
}

// NewInstrumentRegistry creates an empty InstrumentRegistry.
func NewInstrumentRegistry() *InstrumentRegistry {
	return &InstrumentRegistry{
		instruments: make(map[Asset]string),
	}
}

// Register adds an instrument. It returns ErrInstrumentExists if the
// identifier is already registered or reserved.
func (r *InstrumentRegistry) Register(id Asset, externalRef string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if id == Currency {
		return ErrInstrumentExists
	}
	if _, exists := r.instruments[id]; exists {
		return ErrInstrumentExists
	}
	r.instruments[id] = externalRef
	return nil
}

// Exists returns true if the instrument has been registered.
func (r *InstrumentRegistry) Exists(id Asset) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.instruments[id]
	return ok
}

// ExternalRef returns the external asset reference for an instrument.
// It returns ErrUnknownInstrument if the instrument is not registered.
func (r *InstrumentRegistry) ExternalRef(id Asset) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ref, ok := r.instruments[id]
	if !ok {
		return "", ErrUnknownInstrument
	}
	return ref, nil
}

// List returns all registered instruments sorted by identifier.
func (r *InstrumentRegistry) List() []InstrumentInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()

	infos := make([]InstrumentInfo, 0, len(r.instruments))
	for id, ref := range r.instruments {
		infos = append(infos, InstrumentInfo{ID: id, ExternalRef: ref})
	}
	sort.Slice(infos, func(i, j int) bool {
		return infos[i].ID < infos[j].ID
	})
	return infos
}
