package memory

import (
	"context"
	"sort"
	"sync"

	"city-stats/internal/domain"
	"city-stats/internal/storage"
)

// SnapshotArchive is an in-memory implementation of storage.SnapshotArchive.
type SnapshotArchive struct {
	mu       sync.RWMutex
	sessions map[string][]domain.TurnSnapshot
}

// NewSnapshotArchive creates a new in-memory snapshot archive.
func NewSnapshotArchive() *SnapshotArchive {
	return &SnapshotArchive{
		sessions: make(map[string][]domain.TurnSnapshot),
	}
}

// Compile-time interface check.
var _ storage.SnapshotArchive = (*SnapshotArchive)(nil)

// Append adds snapshots to the session's archive.
func (a *SnapshotArchive) Append(_ context.Context, sessionID string, snapshots []domain.TurnSnapshot) error {
	if sessionID == "" {
		return storage.ErrInvalidInput
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	a.sessions[sessionID] = append(a.sessions[sessionID], snapshots...)
	return nil
}

// Turns returns the session's archived snapshots ordered by turn ASC.
func (a *SnapshotArchive) Turns(_ context.Context, sessionID string) ([]domain.TurnSnapshot, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	out := make([]domain.TurnSnapshot, len(a.sessions[sessionID]))
	copy(out, a.sessions[sessionID])
	sort.SliceStable(out, func(i, j int) bool { return out[i].Turn < out[j].Turn })
	return out, nil
}
