package memory

import (
	"context"
	"errors"
	"testing"

	"city-stats/internal/domain"
	"city-stats/internal/storage"
)

func testState(turns int) domain.ReportState {
	state := domain.ReportState{ReportsGenerated: 3}
	for i := 1; i <= turns; i++ {
		state.HistoricalData = append(state.HistoricalData, domain.TurnSnapshot{
			Turn:       i,
			Population: 1000 * i,
			Income:     500,
			Expenses:   300,
			NetIncome:  200,
		})
	}
	return state
}

func TestSaveStore_SaveAndLoad(t *testing.T) {
	store := NewSaveStore()
	ctx := context.Background()

	if err := store.Save(ctx, "autosave", testState(3)); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	got, err := store.Load(ctx, "autosave")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(got.HistoricalData) != 3 {
		t.Fatalf("expected 3 turns, got %d", len(got.HistoricalData))
	}
	if got.ReportsGenerated != 3 {
		t.Errorf("ReportsGenerated mismatch: got %d, want 3", got.ReportsGenerated)
	}
	if got.HistoricalData[2].Population != 3000 {
		t.Errorf("Population mismatch: got %d, want 3000", got.HistoricalData[2].Population)
	}
}

func TestSaveStore_SaveReplaces(t *testing.T) {
	store := NewSaveStore()
	ctx := context.Background()

	_ = store.Save(ctx, "slot", testState(5))
	_ = store.Save(ctx, "slot", testState(1))

	got, err := store.Load(ctx, "slot")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(got.HistoricalData) != 1 {
		t.Errorf("expected replaced state with 1 turn, got %d", len(got.HistoricalData))
	}
}

func TestSaveStore_Errors(t *testing.T) {
	store := NewSaveStore()
	ctx := context.Background()

	if err := store.Save(ctx, "", testState(1)); !errors.Is(err, storage.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
	if _, err := store.Load(ctx, "missing"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if err := store.Delete(ctx, "missing"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestSaveStore_ListAndDelete(t *testing.T) {
	store := NewSaveStore()
	ctx := context.Background()

	_ = store.Save(ctx, "b", testState(2))
	_ = store.Save(ctx, "a", testState(4))

	slots, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(slots) != 2 || slots[0].Slot != "a" || slots[1].Slot != "b" {
		t.Fatalf("unexpected slots: %+v", slots)
	}
	if slots[0].Turns != 4 || slots[0].SizeBytes == 0 {
		t.Errorf("unexpected slot metadata: %+v", slots[0])
	}

	if err := store.Delete(ctx, "a"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	slots, _ = store.List(ctx)
	if len(slots) != 1 {
		t.Errorf("expected 1 slot after delete, got %d", len(slots))
	}
}

func TestSnapshotArchive_AppendAndTurns(t *testing.T) {
	archive := NewSnapshotArchive()
	ctx := context.Background()

	state := testState(3)
	if err := archive.Append(ctx, "session-1", state.HistoricalData[1:]); err != nil {
		t.Fatalf("Append failed: %v", err)
	}
	if err := archive.Append(ctx, "session-1", state.HistoricalData[:1]); err != nil {
		t.Fatalf("Append failed: %v", err)
	}

	got, err := archive.Turns(ctx, "session-1")
	if err != nil {
		t.Fatalf("Turns failed: %v", err)
	}
	if len(got) != 3 || got[0].Turn != 1 || got[2].Turn != 3 {
		t.Errorf("unexpected archived turns: %+v", got)
	}

	if err := archive.Append(ctx, "", nil); !errors.Is(err, storage.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
	other, _ := archive.Turns(ctx, "other")
	if len(other) != 0 {
		t.Errorf("expected empty archive for unknown session, got %d", len(other))
	}
}
