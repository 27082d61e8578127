package store

import (
	"context"
	"log"
	"sync"

	"github.com/chapa-pos/api/internal/pos"
)

// SettingsPersister mirrors settings writes to durable storage.
type SettingsPersister interface {
	SaveGrouping(ctx context.Context, mode pos.GroupingMode) error
}

// SettingsStore holds the KDS configuration. Readers call Grouping at
// render time; the value is never cached by consumers, so a change takes
// effect on the next projection.
type SettingsStore struct {
	mu       sync.RWMutex
	grouping pos.GroupingMode
	persist  SettingsPersister
}

// NewSettingsStore creates a store with the SINGLE default, matching a
// fresh installation. persist may be nil.
func NewSettingsStore(persist SettingsPersister) *SettingsStore {
	return &SettingsStore{grouping: pos.GroupingSingle, persist: persist}
}

// Load seeds the store from persisted state at startup.
func (s *SettingsStore) Load(mode pos.GroupingMode) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if mode.Valid() {
		s.grouping = mode
	}
}

// Grouping returns the current KDS grouping mode.
func (s *SettingsStore) Grouping() pos.GroupingMode {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.grouping
}

// SetGrouping switches the grouping mode and mirrors it to storage.
func (s *SettingsStore) SetGrouping(ctx context.Context, mode pos.GroupingMode) {
	s.mu.Lock()
	s.grouping = mode
	s.mu.Unlock()

	if s.persist != nil {
		if err := s.persist.SaveGrouping(ctx, mode); err != nil {
			log.Printf("ERROR: persist grouping setting: %v", err)
		}
	}
}
