// Package memstore provides an in-memory implementation of the store interfaces.
// This implementation is designed for fast unit testing and does not persist data.
package memstore

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/yiblet/tail/internal/store"
)

// MemoryStore is an in-memory implementation of store.Store.
// It is thread-safe via mutexes. Data exists only for the lifetime of the process.
type MemoryStore struct {
	runs *memoryRunStore
}

// NewMemoryStore creates a new in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		runs: newMemoryRunStore(),
	}
}

// Runs returns the run store.
func (m *MemoryStore) Runs() store.RunStore {
	return m.runs
}

// Close releases resources (no-op for memory store).
func (m *MemoryStore) Close() error {
	return nil
}

// memoryRunStore implements store.RunStore using an in-memory map.
type memoryRunStore struct {
	mu     sync.RWMutex
	runs   map[uint]*store.Run
	nextID uint
}

func newMemoryRunStore() *memoryRunStore {
	return &memoryRunStore{
		runs:   make(map[uint]*store.Run),
		nextID: 1,
	}
}

// Create stores a copy of the run and its outcomes.
func (m *memoryRunStore) Create(input *store.CreateRunInput) (*store.Run, error) {
	timestamp := input.Timestamp
	if timestamp.IsZero() {
		timestamp = time.Now()
	}

	outcomes := make([]store.Outcome, len(input.Outcomes))
	for i, o := range input.Outcomes {
		o.Position = i
		outcomes[i] = o
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	run := &store.Run{
		ID:        m.nextID,
		Timestamp: timestamp,
		Count:     input.Count,
		Direction: input.Direction,
		Headers:   input.Headers,
		Failed:    input.HasFailure(),
		Outcomes:  outcomes,
		CreatedAt: time.Now(),
	}
	m.nextID++
	m.runs[run.ID] = run

	return clone(run), nil
}

// List returns runs sorted by timestamp descending (newest first).
func (m *memoryRunStore) List(limit int) ([]*store.Run, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	runs := m.sorted()
	// newest first
	for i, j := 0, len(runs)-1; i < j; i, j = i+1, j-1 {
		runs[i], runs[j] = runs[j], runs[i]
	}

	if limit > 0 && len(runs) > limit {
		runs = runs[:limit]
	}

	result := make([]*store.Run, len(runs))
	for i, run := range runs {
		result[i] = clone(run)
	}
	return result, nil
}

// Get retrieves a single run by ID.
func (m *memoryRunStore) Get(id uint) (*store.Run, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	run, exists := m.runs[id]
	if !exists {
		return nil, fmt.Errorf("run not found: %d", id)
	}
	return clone(run), nil
}

// Delete removes a run by ID.
func (m *memoryRunStore) Delete(id uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.runs[id]; !exists {
		return fmt.Errorf("run not found: %d", id)
	}
	delete(m.runs, id)
	return nil
}

// DeleteOldest removes the N oldest runs by timestamp.
func (m *memoryRunStore) DeleteOldest(count int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	runs := m.sorted()
	toDelete := min(count, len(runs))
	for i := 0; i < toDelete; i++ {
		delete(m.runs, runs[i].ID)
	}
	return nil
}

// Count returns the total number of runs.
func (m *memoryRunStore) Count() (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.runs), nil
}

// Clear removes all runs.
func (m *memoryRunStore) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.runs = make(map[uint]*store.Run)
	return nil
}

// Close releases resources (no-op).
func (m *memoryRunStore) Close() error {
	return nil
}

// sorted returns runs oldest first; ties are broken by ID. Callers hold the lock.
func (m *memoryRunStore) sorted() []*store.Run {
	runs := make([]*store.Run, 0, len(m.runs))
	for _, run := range m.runs {
		runs = append(runs, run)
	}
	sort.Slice(runs, func(i, j int) bool {
		if runs[i].Timestamp.Equal(runs[j].Timestamp) {
			return runs[i].ID < runs[j].ID
		}
		return runs[i].Timestamp.Before(runs[j].Timestamp)
	})
	return runs
}

func clone(run *store.Run) *store.Run {
	c := *run
	c.Outcomes = append([]store.Outcome(nil), run.Outcomes...)
	return &c
}
