package postgres

import (
	"context"
	"fmt"
	"time"

	"city-stats/internal/domain"
	"city-stats/internal/storage"
)

// SaveStore is a PostgreSQL implementation of storage.SaveStore.
// Each slot is one row of save_slots holding the compressed state blob.
type SaveStore struct {
	pool *Pool
}

// NewSaveStore creates a new PostgreSQL save store.
func NewSaveStore(pool *Pool) *SaveStore {
	return &SaveStore{pool: pool}
}

// Compile-time interface check.
var _ storage.SaveStore = (*SaveStore)(nil)

// Save stores state under slot. Uses upsert to replace a previous state.
func (s *SaveStore) Save(ctx context.Context, slot string, state domain.ReportState) (err error) {
	if slot == "" {
		return storage.ErrInvalidInput
	}
	blob, err := storage.EncodeState(state)
	if err != nil {
		return err
	}

	defer func(start time.Time) { observe("save", start, err) }(time.Now())
	_, err = s.pool.Exec(ctx, `
		INSERT INTO save_slots (slot, state, turns, reports_generated, size_bytes, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		ON CONFLICT (slot) DO UPDATE
		SET state = EXCLUDED.state,
		    turns = EXCLUDED.turns,
		    reports_generated = EXCLUDED.reports_generated,
		    size_bytes = EXCLUDED.size_bytes,
		    updated_at = NOW()
	`, slot, blob, len(state.HistoricalData), state.ReportsGenerated, len(blob))
	if err != nil {
		return fmt.Errorf("save slot %s: %w", slot, err)
	}
	return nil
}

// Load retrieves the state stored under slot.
func (s *SaveStore) Load(ctx context.Context, slot string) (state domain.ReportState, err error) {
	defer func(start time.Time) { observe("load", start, err) }(time.Now())

	var blob []byte
	err = s.pool.QueryRow(ctx, `
		SELECT state FROM save_slots WHERE slot = $1
	`, slot).Scan(&blob)
	if err != nil {
		if isNotFoundError(err) {
			return domain.ReportState{}, storage.ErrNotFound
		}
		return domain.ReportState{}, err
	}

	return storage.DecodeState(blob)
}

// List returns all slots ordered by name.
func (s *SaveStore) List(ctx context.Context) ([]storage.SaveSlot, error) {
	start := time.Now()
	rows, err := s.pool.Query(ctx, `
		SELECT slot, turns, reports_generated, size_bytes, updated_at
		FROM save_slots
		ORDER BY slot ASC
	`)
	if err != nil {
		observe("list", start, err)
		return nil, err
	}
	defer rows.Close()

	var out []storage.SaveSlot
	for rows.Next() {
		var slot storage.SaveSlot
		if err := rows.Scan(&slot.Slot, &slot.Turns, &slot.ReportsGenerated, &slot.SizeBytes, &slot.UpdatedAt); err != nil {
			observe("list", start, err)
			return nil, err
		}
		slot.UpdatedAt = slot.UpdatedAt.UTC()
		out = append(out, slot)
	}

	observe("list", start, rows.Err())
	return out, rows.Err()
}

// Delete removes slot.
func (s *SaveStore) Delete(ctx context.Context, slot string) error {
	start := time.Now()
	tag, err := s.pool.Exec(ctx, `DELETE FROM save_slots WHERE slot = $1`, slot)
	observe("delete", start, err)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}
