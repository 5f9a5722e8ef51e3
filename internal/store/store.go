// Package store defines the storage interfaces for tail's run journal.
package store

// RunStore manages journal run persistence.
// Each run carries the outcomes of every source it processed.
type RunStore interface {
	// Create stores a new run with its outcomes.
	// Returns the created run with generated ID.
	Create(run *CreateRunInput) (*Run, error)

	// List returns runs ordered by timestamp (newest first).
	// If limit is 0, all runs are returned. If limit > 0, at most limit runs are returned.
	List(limit int) ([]*Run, error)

	// Get retrieves a single run by ID.
	Get(id uint) (*Run, error)

	// Delete removes a run by ID.
	// Returns an error if the run does not exist.
	Delete(id uint) error

	// DeleteOldest removes the N oldest runs based on timestamp.
	// If count exceeds the number of runs, all runs are deleted.
	DeleteOldest(count int) error

	// Count returns the total number of runs in the store.
	Count() (int, error)

	// Clear removes all runs from the store.
	Clear() error

	// Close releases any resources.
	Close() error
}

// Store gives access to the run store and manages its lifecycle.
type Store interface {
	// Runs returns the run store.
	Runs() RunStore

	// Close releases all resources.
	Close() error
}
