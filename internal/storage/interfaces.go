package storage

import (
	"context"
	"time"

	"city-stats/internal/domain"
)

// SaveSlot describes one stored report state.
type SaveSlot struct {
	Slot             string    `json:"slot"`
	Turns            int       `json:"turns"` // number of persisted turn records
	ReportsGenerated int       `json:"reports_generated"`
	SizeBytes        int       `json:"size_bytes"` // compressed blob size
	UpdatedAt        time.Time `json:"updated_at"`
}

// SaveStore persists report states under named save slots.
type SaveStore interface {
	// Save stores state under slot, replacing any previous state.
	// Returns ErrInvalidInput for an empty slot name.
	Save(ctx context.Context, slot string, state domain.ReportState) error

	// Load retrieves the state stored under slot. Returns ErrNotFound if
	// the slot does not exist and ErrCorruptState if its blob is unreadable.
	Load(ctx context.Context, slot string) (domain.ReportState, error)

	// List returns all slots ordered by name.
	List(ctx context.Context) ([]SaveSlot, error)

	// Delete removes slot. Returns ErrNotFound if it does not exist.
	Delete(ctx context.Context, slot string) error
}

// SnapshotArchive appends recorded turns per session for offline analysis.
type SnapshotArchive interface {
	// Append adds snapshots to the session's archive.
	Append(ctx context.Context, sessionID string, snapshots []domain.TurnSnapshot) error

	// Turns returns the session's archived snapshots ordered by turn ASC.
	Turns(ctx context.Context, sessionID string) ([]domain.TurnSnapshot, error)
}
