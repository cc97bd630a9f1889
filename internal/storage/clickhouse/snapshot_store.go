package clickhouse

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"city-stats/internal/domain"
	"city-stats/internal/observability"
	"city-stats/internal/storage"
)

// SnapshotStore implements storage.SnapshotArchive using ClickHouse.
// Rows are append-only; re-archiving a turn adds a second row.
type SnapshotStore struct {
	conn *Conn
}

// NewSnapshotStore creates a new SnapshotStore.
func NewSnapshotStore(conn *Conn) *SnapshotStore {
	return &SnapshotStore{conn: conn}
}

// Compile-time interface check.
var _ storage.SnapshotArchive = (*SnapshotStore)(nil)

// Append adds snapshots to the session's archive in one batch.
func (s *SnapshotStore) Append(ctx context.Context, sessionID string, snapshots []domain.TurnSnapshot) (err error) {
	if sessionID == "" {
		return storage.ErrInvalidInput
	}
	if len(snapshots) == 0 {
		return nil
	}
	defer func(start time.Time) {
		observability.RecordStoreQuery("clickhouse", "append", time.Since(start).Seconds(), err)
	}(time.Now())

	batch, err := s.conn.PrepareBatch(ctx, `
		INSERT INTO turn_snapshots (
			session, turn, recorded_at, population, satisfaction,
			money, net_income, total_debt, buildings_count, payload
		)
	`)
	if err != nil {
		return fmt.Errorf("prepare batch: %w", err)
	}

	for _, snap := range snapshots {
		snap = snap.Normalize()
		payload, err := json.Marshal(snap)
		if err != nil {
			return fmt.Errorf("encode turn %d: %w", snap.Turn, err)
		}
		err = batch.Append(
			sessionID, int32(snap.Turn), snap.Timestamp.UTC(), int64(snap.Population), snap.Satisfaction,
			snap.Money, snap.NetIncome, snap.TotalDebt, int32(snap.BuildingsCount), string(payload),
		)
		if err != nil {
			return fmt.Errorf("append to batch: %w", err)
		}
	}

	if err := batch.Send(); err != nil {
		return fmt.Errorf("send batch: %w", err)
	}

	return nil
}

// Turns returns the session's archived snapshots ordered by turn ASC.
func (s *SnapshotStore) Turns(ctx context.Context, sessionID string) (out []domain.TurnSnapshot, err error) {
	defer func(start time.Time) {
		observability.RecordStoreQuery("clickhouse", "turns", time.Since(start).Seconds(), err)
	}(time.Now())

	rows, err := s.conn.Query(ctx, `
		SELECT payload
		FROM turn_snapshots
		WHERE session = ?
		ORDER BY turn ASC, recorded_at ASC
	`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		var snap domain.TurnSnapshot
		if err := json.Unmarshal([]byte(payload), &snap); err != nil {
			return nil, fmt.Errorf("%w: %v", storage.ErrCorruptState, err)
		}
		out = append(out, snap)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}

	return out, nil
}
