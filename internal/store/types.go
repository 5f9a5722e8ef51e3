package store

import (
	"time"
)

// Run is one recorded invocation of tail.
type Run struct {
	// ID is the unique identifier for this run.
	ID uint

	// Timestamp is when the run finished. Newer runs are listed first.
	Timestamp time.Time

	// Count is the requested line count.
	Count uint64

	// Direction is "bottom" or "top".
	Direction string

	// Headers records whether headers were written.
	Headers bool

	// Failed is true when any outcome carries an error.
	Failed bool

	// Outcomes holds one entry per source, in processing order.
	Outcomes []Outcome

	// CreatedAt is managed by the storage layer.
	CreatedAt time.Time
}

// Outcome is the recorded result of a single source.
type Outcome struct {
	// Position is the source's index in the run.
	Position int

	// Source is the display name of the source.
	Source string

	// Strategy is the algorithm used: "scan", "window", "skip" or "none".
	Strategy string

	// Bytes counts the source bytes written to the output.
	Bytes int64

	// Error is the diagnostic text, empty on success.
	Error string
}

// CreateRunInput contains the data needed to record a run.
type CreateRunInput struct {
	// Timestamp of the run. If zero, the storage layer uses the current time.
	Timestamp time.Time

	Count     uint64
	Direction string
	Headers   bool

	// Outcomes are stored in slice order; Position is assigned from the index.
	Outcomes []Outcome
}

// HasFailure reports whether any outcome carries an error.
func (in *CreateRunInput) HasFailure() bool {
	for _, o := range in.Outcomes {
		if o.Error != "" {
			return true
		}
	}
	return false
}
