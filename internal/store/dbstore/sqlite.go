package dbstore

import (
	"errors"
	"fmt"
	"time"

	"github.com/yiblet/tail/internal/store"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SQLiteStore is a SQLite-backed implementation of store.Store
type SQLiteStore struct {
	db     *gorm.DB
	dbPath string
}

// NewSQLiteStore creates a new SQLite-backed store at the specified path
// and initializes the database schema.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Enable foreign key constraints in SQLite
	if err := db.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	if err := db.AutoMigrate(&RunModel{}, &OutcomeModel{}); err != nil {
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}

	return &SQLiteStore{
		db:     db,
		dbPath: dbPath,
	}, nil
}

// Runs returns the run store
func (s *SQLiteStore) Runs() store.RunStore {
	return &sqliteRunStore{db: s.db}
}

// Path returns the database file path
func (s *SQLiteStore) Path() string {
	return s.dbPath
}

// Close closes the database connection
func (s *SQLiteStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// sqliteRunStore implements store.RunStore using SQLite
type sqliteRunStore struct {
	db *gorm.DB
}

// Create stores a run and its outcomes in one insert
func (s *sqliteRunStore) Create(input *store.CreateRunInput) (*store.Run, error) {
	model := newRunModel(input)
	if model.Timestamp.IsZero() {
		model.Timestamp = time.Now()
	}

	if err := s.db.Create(model).Error; err != nil {
		return nil, fmt.Errorf("failed to create run: %w", err)
	}

	return model.ToRun(), nil
}

// List returns runs ordered by timestamp (newest first) with their outcomes
func (s *sqliteRunStore) List(limit int) ([]*store.Run, error) {
	var models []*RunModel

	query := s.db.
		Preload("Outcomes", orderByPosition).
		Order("timestamp DESC").
		Order("id DESC")

	if limit > 0 {
		query = query.Limit(limit)
	}

	if err := query.Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}

	runs := make([]*store.Run, len(models))
	for i, model := range models {
		runs[i] = model.ToRun()
	}
	return runs, nil
}

// Get retrieves a single run by ID
func (s *sqliteRunStore) Get(id uint) (*store.Run, error) {
	var model RunModel
	if err := s.db.Preload("Outcomes", orderByPosition).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("run not found: %d", id)
		}
		return nil, fmt.Errorf("failed to get run: %w", err)
	}
	return model.ToRun(), nil
}

// Delete removes a run by ID together with its outcomes
func (s *sqliteRunStore) Delete(id uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Delete(&RunModel{}, id)
		if result.Error != nil {
			return fmt.Errorf("failed to delete run: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("run not found: %d", id)
		}
		return deleteOutcomes(tx, []uint{id})
	})
}

// DeleteOldest removes the N oldest runs based on timestamp
func (s *sqliteRunStore) DeleteOldest(count int) error {
	if count <= 0 {
		return nil
	}

	var ids []uint
	err := s.db.Model(&RunModel{}).
		Order("timestamp ASC").
		Order("id ASC").
		Limit(count).
		Pluck("id", &ids).Error
	if err != nil {
		return fmt.Errorf("failed to find oldest runs: %w", err)
	}

	if len(ids) == 0 {
		return nil
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&RunModel{}, ids).Error; err != nil {
			return fmt.Errorf("failed to delete runs: %w", err)
		}
		return deleteOutcomes(tx, ids)
	})
}

// Count returns the total number of runs
func (s *sqliteRunStore) Count() (int, error) {
	var count int64
	if err := s.db.Model(&RunModel{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count runs: %w", err)
	}
	return int(count), nil
}

// Clear removes all runs
func (s *sqliteRunStore) Clear() error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		tx = tx.Session(&gorm.Session{AllowGlobalUpdate: true})
		if err := tx.Delete(&OutcomeModel{}).Error; err != nil {
			return fmt.Errorf("failed to clear outcomes: %w", err)
		}
		if err := tx.Delete(&RunModel{}).Error; err != nil {
			return fmt.Errorf("failed to clear runs: %w", err)
		}
		return nil
	})
}

// Close releases any resources
func (s *sqliteRunStore) Close() error {
	return nil // No-op, parent store handles DB closing
}

// deleteOutcomes removes outcome rows explicitly; the foreign key pragma
// only covers the connection it was issued on.
func deleteOutcomes(tx *gorm.DB, runIDs []uint) error {
	if err := tx.Where("run_id IN ?", runIDs).Delete(&OutcomeModel{}).Error; err != nil {
		return fmt.Errorf("failed to delete outcomes: %w", err)
	}
	return nil
}

func orderByPosition(db *gorm.DB) *gorm.DB {
	return db.Order("position ASC")
}
