package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"city-stats/internal/domain"
	"city-stats/internal/storage"
)

// SaveStore is a SQLite implementation of storage.SaveStore.
type SaveStore struct {
	db  *DB
	now func() time.Time
}

// NewSaveStore creates a save store over db.
func NewSaveStore(db *DB) *SaveStore {
	return &SaveStore{
		db:  db,
		now: func() time.Time { return time.Now().UTC() },
	}
}

// WithClock sets the clock used for updated_at.
func (s *SaveStore) WithClock(now func() time.Time) *SaveStore {
	s.now = now
	return s
}

// Compile-time interface check.
var _ storage.SaveStore = (*SaveStore)(nil)

// slotRow maps a save_slots row without the state blob.
type slotRow struct {
	Slot             string `db:"slot"`
	Turns            int    `db:"turns"`
	ReportsGenerated int    `db:"reports_generated"`
	SizeBytes        int    `db:"size_bytes"`
	UpdatedAt        string `db:"updated_at"`
}

// Save stores state under slot, replacing any previous state.
func (s *SaveStore) Save(ctx context.Context, slot string, state domain.ReportState) (err error) {
	if slot == "" {
		return storage.ErrInvalidInput
	}
	blob, err := storage.EncodeState(state)
	if err != nil {
		return err
	}

	defer func(start time.Time) { observe("save", start, err) }(time.Now())
	_, err = s.db.conn.ExecContext(ctx, `
		INSERT INTO save_slots (slot, state, turns, reports_generated, size_bytes, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (slot) DO UPDATE SET
			state = excluded.state,
			turns = excluded.turns,
			reports_generated = excluded.reports_generated,
			size_bytes = excluded.size_bytes,
			updated_at = excluded.updated_at
	`, slot, blob, len(state.HistoricalData), state.ReportsGenerated, len(blob), s.now().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("save slot %s: %w", slot, err)
	}
	return nil
}

// Load retrieves the state stored under slot.
func (s *SaveStore) Load(ctx context.Context, slot string) (domain.ReportState, error) {
	start := time.Now()
	var blob []byte
	err := s.db.conn.GetContext(ctx, &blob, `SELECT state FROM save_slots WHERE slot = ?`, slot)
	if errors.Is(err, sql.ErrNoRows) {
		observe("load", start, nil)
		return domain.ReportState{}, storage.ErrNotFound
	}
	observe("load", start, err)
	if err != nil {
		return domain.ReportState{}, err
	}
	return storage.DecodeState(blob)
}

// List returns all slots ordered by name.
func (s *SaveStore) List(ctx context.Context) (out []storage.SaveSlot, err error) {
	defer func(start time.Time) { observe("list", start, err) }(time.Now())

	var rows []slotRow
	err = s.db.conn.SelectContext(ctx, &rows, `
		SELECT slot, turns, reports_generated, size_bytes, updated_at
		FROM save_slots
		ORDER BY slot ASC
	`)
	if err != nil {
		return nil, err
	}

	for _, r := range rows {
		updated, perr := time.Parse(time.RFC3339Nano, r.UpdatedAt)
		if perr != nil {
			return nil, fmt.Errorf("%w: slot %s updated_at: %v", storage.ErrCorruptState, r.Slot, perr)
		}
		out = append(out, storage.SaveSlot{
			Slot:             r.Slot,
			Turns:            r.Turns,
			ReportsGenerated: r.ReportsGenerated,
			SizeBytes:        r.SizeBytes,
			UpdatedAt:        updated,
		})
	}
	return out, nil
}

// Delete removes slot.
func (s *SaveStore) Delete(ctx context.Context, slot string) error {
	start := time.Now()
	res, err := s.db.conn.ExecContext(ctx, `DELETE FROM save_slots WHERE slot = ?`, slot)
	observe("delete", start, err)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return storage.ErrNotFound
	}
	return nil
}
