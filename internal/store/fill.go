package store

import (
	"sync"

	"github.com/lfreire/tokendex/internal/domain"
)

// FillStore is a thread-safe in-memory store for executed fills, keyed
// by instrument. Fills are append-only and chronological.
type FillStore struct {
	mu    sync.RWMutex
	fills map[domain.Asset][]domain.Fill // instrument → fills (chronological)
}

// NewFillStore creates an empty FillStore.
func NewFillStore() *FillStore {
	return &FillStore{
		fills: make(map[domain.Asset][]domain.Fill),
	}
}

// Append adds a fill to its instrument's chronological list.
func (s *FillStore) Append(f domain.Fill) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.fills[f.Instrument] = append(s.fills[f.Instrument], f)
}

// ByInstrument returns all fills for an instrument in chronological
// order. Returns an empty slice if none exist.
func (s *FillStore) ByInstrument(instrument domain.Asset) []domain.Fill {
	s.mu.RLock()
	defer s.mu.RUnlock()

	fills := s.fills[instrument]
	if fills == nil {
		return []domain.Fill{}
	}

	// Return a copy to avoid callers mutating the internal slice.
	out := make([]domain.Fill, len(fills))
	copy(out, fills)
	return out
}
