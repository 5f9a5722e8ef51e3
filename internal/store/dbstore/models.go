package dbstore

import (
	"math"
	"time"

	"github.com/yiblet/tail/internal/store"
)

// RunModel represents a journal run in the database.
type RunModel struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"`
	Timestamp time.Time `gorm:"not null;index"` // Run time for newest-first ordering
	Count     int64     `gorm:"not null"`       // Requested line count, clamped to int64
	Direction string    `gorm:"size:8;not null"`
	Headers   bool      `gorm:"not null;default:false"`
	Failed    bool      `gorm:"not null;default:false;index"`
	CreatedAt time.Time `gorm:"autoCreateTime"` // GORM managed timestamp

	// One-to-many relationship with per-source outcomes
	Outcomes []OutcomeModel `gorm:"foreignKey:RunID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for RunModel
func (RunModel) TableName() string {
	return "runs"
}

// ToRun converts the GORM model to a store.Run
func (m *RunModel) ToRun() *store.Run {
	outcomes := make([]store.Outcome, len(m.Outcomes))
	for i, o := range m.Outcomes {
		outcomes[i] = store.Outcome{
			Position: o.Position,
			Source:   o.Source,
			Strategy: o.Strategy,
			Bytes:    o.Bytes,
			Error:    o.Error,
		}
	}
	return &store.Run{
		ID:        m.ID,
		Timestamp: m.Timestamp,
		Count:     uint64(m.Count),
		Direction: m.Direction,
		Headers:   m.Headers,
		Failed:    m.Failed,
		Outcomes:  outcomes,
		CreatedAt: m.CreatedAt,
	}
}

// OutcomeModel represents the result of one source within a run.
type OutcomeModel struct {
	ID       uint   `gorm:"primaryKey;autoIncrement"`
	RunID    uint   `gorm:"not null;index:idx_run_position"` // Foreign key to runs
	Position int    `gorm:"not null;index:idx_run_position"` // Source order (0, 1, 2, ...)
	Source   string `gorm:"type:text;not null"`
	Strategy string `gorm:"size:8;not null"`
	Bytes    int64  `gorm:"not null;default:0"`
	Error    string `gorm:"type:text"`
}

// TableName returns the table name for OutcomeModel
func (OutcomeModel) TableName() string {
	return "outcomes"
}

func newRunModel(input *store.CreateRunInput) *RunModel {
	count := int64(math.MaxInt64)
	if input.Count < math.MaxInt64 {
		count = int64(input.Count)
	}

	model := &RunModel{
		Timestamp: input.Timestamp,
		Count:     count,
		Direction: input.Direction,
		Headers:   input.Headers,
		Failed:    input.HasFailure(),
		Outcomes:  make([]OutcomeModel, len(input.Outcomes)),
	}
	for i, o := range input.Outcomes {
		model.Outcomes[i] = OutcomeModel{
			Position: i,
			Source:   o.Source,
			Strategy: o.Strategy,
			Bytes:    o.Bytes,
			Error:    o.Error,
		}
	}
	return model
}
