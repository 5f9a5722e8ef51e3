// Package journal keeps a bounded history of tail runs.
package journal

import (
	"fmt"
	"time"

	"github.com/yiblet/tail/internal/logging"
	"github.com/yiblet/tail/internal/store"
	"github.com/yiblet/tail/internal/tail"
)

const (
	DefaultLimit = 100
)

// Manager records runs into a store and evicts the oldest ones once the
// journal grows past its limit.
type Manager struct {
	store store.Store
	limit int
	now   func() time.Time
}

// NewManager creates a journal manager with the default limit.
func NewManager(s store.Store) *Manager {
	return NewManagerWithLimit(s, DefaultLimit)
}

// NewManagerWithLimit creates a journal manager keeping at most limit runs.
func NewManagerWithLimit(s store.Store, limit int) *Manager {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &Manager{
		store: s,
		limit: limit,
		now:   time.Now,
	}
}

// Record stores one run with an outcome per result.
func (m *Manager) Record(cfg tail.Config, results []tail.Result) (*store.Run, error) {
	input := &store.CreateRunInput{
		Timestamp: m.now(),
		Count:     cfg.Count,
		Direction: cfg.Direction.String(),
		Headers:   cfg.ShowHeaders,
		Outcomes:  make([]store.Outcome, len(results)),
	}
	for i, res := range results {
		outcome := store.Outcome{
			Source:   res.Source,
			Strategy: res.Strategy.String(),
			Bytes:    res.Bytes,
		}
		if res.Err != nil {
			outcome.Error = logging.FormatSourceError(res.Err)
		}
		input.Outcomes[i] = outcome
	}

	run, err := m.store.Runs().Create(input)
	if err != nil {
		return nil, fmt.Errorf("failed to record run: %w", err)
	}

	if err := m.cleanupOldRuns(); err != nil {
		return nil, fmt.Errorf("failed to cleanup: %w", err)
	}

	return run, nil
}

// List returns up to n runs, newest first. n <= 0 lists the whole journal.
func (m *Manager) List(n int) ([]*store.Run, error) {
	if n <= 0 || n > m.limit {
		n = m.limit
	}
	return m.store.Runs().List(n)
}

// Clear removes every run.
func (m *Manager) Clear() error {
	return m.store.Runs().Clear()
}

// Size returns the number of recorded runs.
func (m *Manager) Size() (int, error) {
	return m.store.Runs().Count()
}

// Limit returns the configured run limit.
func (m *Manager) Limit() int {
	return m.limit
}

// Close releases store resources.
func (m *Manager) Close() error {
	return m.store.Close()
}

// cleanupOldRuns removes runs exceeding the limit.
func (m *Manager) cleanupOldRuns() error {
	count, err := m.store.Runs().Count()
	if err != nil {
		return err
	}

	if count > m.limit {
		return m.store.Runs().DeleteOldest(count - m.limit)
	}

	return nil
}
