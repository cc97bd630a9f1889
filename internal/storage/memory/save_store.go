package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"city-stats/internal/domain"
	"city-stats/internal/storage"
)

type savedState struct {
	blob             []byte
	turns            int
	reportsGenerated int
	updatedAt        time.Time
}

// SaveStore is an in-memory implementation of storage.SaveStore. States are
// held as encoded blobs so loads never alias the caller's data.
type SaveStore struct {
	mu    sync.RWMutex
	slots map[string]savedState
	now   func() time.Time
}

// NewSaveStore creates a new in-memory save store.
func NewSaveStore() *SaveStore {
	return &SaveStore{
		slots: make(map[string]savedState),
		now:   func() time.Time { return time.Now().UTC() },
	}
}

// Compile-time interface check.
var _ storage.SaveStore = (*SaveStore)(nil)

// Save stores state under slot, replacing any previous state.
func (s *SaveStore) Save(_ context.Context, slot string, state domain.ReportState) error {
	if slot == "" {
		return storage.ErrInvalidInput
	}
	blob, err := storage.EncodeState(state)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.slots[slot] = savedState{
		blob:             blob,
		turns:            len(state.HistoricalData),
		reportsGenerated: state.ReportsGenerated,
		updatedAt:        s.now(),
	}
	return nil
}

// Load retrieves the state stored under slot.
func (s *SaveStore) Load(_ context.Context, slot string) (domain.ReportState, error) {
	s.mu.RLock()
	saved, ok := s.slots[slot]
	s.mu.RUnlock()

	if !ok {
		return domain.ReportState{}, storage.ErrNotFound
	}
	return storage.DecodeState(saved.blob)
}

// List returns all slots ordered by name.
func (s *SaveStore) List(_ context.Context) ([]storage.SaveSlot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]storage.SaveSlot, 0, len(s.slots))
	for name, saved := range s.slots {
		out = append(out, storage.SaveSlot{
			Slot:             name,
			Turns:            saved.turns,
			ReportsGenerated: saved.reportsGenerated,
			SizeBytes:        len(saved.blob),
			UpdatedAt:        saved.updatedAt,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Slot < out[j].Slot })
	return out, nil
}

// Delete removes slot.
func (s *SaveStore) Delete(_ context.Context, slot string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.slots[slot]; !ok {
		return storage.ErrNotFound
	}
	delete(s.slots, slot)
	return nil
}
