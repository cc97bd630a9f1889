package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"city-stats/internal/domain"
	"city-stats/internal/storage"
)

func openTestStore(t *testing.T) *SaveStore {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "saves.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	clock := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	return NewSaveStore(db).WithClock(func() time.Time { return clock })
}

func testState(turns ...int) domain.ReportState {
	state := domain.ReportState{ReportsGenerated: 4}
	for _, turn := range turns {
		state.HistoricalData = append(state.HistoricalData, domain.TurnSnapshot{
			Turn:       turn,
			Population: 1000 + turn*10,
			Income:     800,
			Expenses:   300,
			NetIncome:  500,
		})
	}
	return state
}

func TestSaveStore_RoundTrip(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	state := testState(1, 2)
	require.NoError(t, store.Save(ctx, "autosave", state))

	got, err := store.Load(ctx, "autosave")
	require.NoError(t, err)
	assert.Equal(t, state, got)
}

func TestSaveStore_Upsert(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "slot", testState(1)))
	require.NoError(t, store.Save(ctx, "slot", testState(1, 2, 3)))

	slots, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, slots, 1)
	assert.Equal(t, "slot", slots[0].Slot)
	assert.Equal(t, 3, slots[0].Turns)
	assert.Equal(t, 4, slots[0].ReportsGenerated)
	assert.Positive(t, slots[0].SizeBytes)
	assert.Equal(t, time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC), slots[0].UpdatedAt)
}

func TestSaveStore_Errors(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	_, err := store.Load(ctx, "missing")
	assert.ErrorIs(t, err, storage.ErrNotFound)

	assert.ErrorIs(t, store.Delete(ctx, "missing"), storage.ErrNotFound)
	assert.ErrorIs(t, store.Save(ctx, "", testState()), storage.ErrInvalidInput)
}

func TestSaveStore_DeleteAndList(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	for _, slot := range []string{"b", "a", "c"} {
		require.NoError(t, store.Save(ctx, slot, testState(1)))
	}
	require.NoError(t, store.Delete(ctx, "c"))

	slots, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, slots, 2)
	assert.Equal(t, "a", slots[0].Slot)
	assert.Equal(t, "b", slots[1].Slot)
}
