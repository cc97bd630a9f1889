// Package history keeps the bounded per-turn snapshot buffer.
package history

import (
	"sync"
	"time"

	"city-stats/internal/domain"
)

const (
	// DefaultCapacity is the number of turns retained before eviction.
	DefaultCapacity = 200

	// DefaultPersistLimit is the number of most recent turns written by ToState.
	DefaultPersistLimit = 50
)

// Store is a fixed-capacity ring buffer of turn snapshots. Once full, each
// record evicts the oldest snapshot.
type Store struct {
	mu sync.RWMutex

	buf  []domain.TurnSnapshot
	head int // index of the oldest snapshot
	size int

	persistLimit     int
	reportsGenerated int

	now      func() time.Time
	onRecord func(evicted bool, size int)
}

// NewStore creates a store with the given capacity. Non-positive values
// fall back to DefaultCapacity.
func NewStore(capacity int) *Store {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Store{
		buf:          make([]domain.TurnSnapshot, capacity),
		persistLimit: DefaultPersistLimit,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

// WithClock sets the clock used to timestamp recorded snapshots.
func (s *Store) WithClock(now func() time.Time) *Store {
	s.now = now
	return s
}

// WithPersistLimit sets how many recent snapshots ToState keeps.
func (s *Store) WithPersistLimit(n int) *Store {
	if n > 0 {
		s.persistLimit = n
	}
	return s
}

// OnRecord registers a hook invoked after every insert with whether an
// eviction happened and the resulting buffer length.
func (s *Store) OnRecord(fn func(evicted bool, size int)) *Store {
	s.onRecord = fn
	return s
}

// Capacity returns the maximum number of retained snapshots.
func (s *Store) Capacity() int {
	return len(s.buf)
}

// Record builds a snapshot from the turn state and appends it.
// Missing or malformed state keys degrade to defaults; it never fails.
func (s *Store) Record(turn int, state domain.TurnState) domain.TurnSnapshot {
	snap := domain.NewTurnSnapshot(turn, s.now(), state)
	s.Append(snap)
	return snap
}

// Append stores an already-built snapshot, recomputing derived fields.
func (s *Store) Append(snap domain.TurnSnapshot) {
	s.mu.Lock()
	evicted := s.pushLocked(snap.Normalize())
	size := s.size
	hook := s.onRecord
	s.mu.Unlock()

	if hook != nil {
		hook(evicted, size)
	}
}

func (s *Store) pushLocked(snap domain.TurnSnapshot) bool {
	capacity := len(s.buf)
	if s.size < capacity {
		s.buf[(s.head+s.size)%capacity] = snap
		s.size++
		return false
	}
	// Full: overwrite the oldest slot and advance head.
	s.buf[s.head] = snap
	s.head = (s.head + 1) % capacity
	return true
}

// Len returns the number of retained snapshots.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.size
}

// Snapshots returns a copy of the retained snapshots, oldest first.
func (s *Store) Snapshots() []domain.TurnSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tailLocked(s.size)
}

// Latest returns the most recent snapshot.
func (s *Store) Latest() (domain.TurnSnapshot, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.size == 0 {
		return domain.TurnSnapshot{}, false
	}
	return s.buf[(s.head+s.size-1)%len(s.buf)], true
}

// Series extracts metric m over the retained snapshots, oldest first.
func (s *Store) Series(m domain.Metric) []float64 {
	return domain.SeriesOf(s.Snapshots(), m)
}

// Turns returns the turn axis of the retained snapshots.
func (s *Store) Turns() []int {
	return domain.TurnsOf(s.Snapshots())
}

// tailLocked copies the last n snapshots, oldest first.
func (s *Store) tailLocked(n int) []domain.TurnSnapshot {
	if n > s.size {
		n = s.size
	}
	out := make([]domain.TurnSnapshot, n)
	start := s.head + s.size - n
	for i := 0; i < n; i++ {
		out[i] = s.buf[(start+i)%len(s.buf)]
	}
	return out
}

// IncrementReports bumps the reports-generated counter and returns the new value.
func (s *Store) IncrementReports() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reportsGenerated++
	return s.reportsGenerated
}

// ReportsGenerated returns the reports-generated counter.
func (s *Store) ReportsGenerated() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.reportsGenerated
}

// ToState returns the persisted form: the most recent snapshots up to the
// persist limit plus the reports-generated counter.
func (s *Store) ToState() domain.ReportState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return domain.ReportState{
		HistoricalData:   s.tailLocked(s.persistLimit),
		ReportsGenerated: s.reportsGenerated,
	}
}

// LoadState replaces the buffer and counter wholesale with the given state.
// Snapshots beyond capacity are dropped oldest-first.
func (s *Store) LoadState(state domain.ReportState) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.buf {
		s.buf[i] = domain.TurnSnapshot{}
	}
	s.head = 0
	s.size = 0
	for _, snap := range state.HistoricalData {
		s.pushLocked(snap.Normalize())
	}
	s.reportsGenerated = state.ReportsGenerated
	if s.reportsGenerated < 0 {
		s.reportsGenerated = 0
	}
}
