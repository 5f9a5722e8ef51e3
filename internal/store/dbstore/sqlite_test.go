package dbstore

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/yiblet/tail/internal/store"
)

// setupTestDB creates a temporary database for testing
func setupTestDB(t *testing.T) (*SQLiteStore, func()) {
	t.Helper()

	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	st, err := NewSQLiteStore(dbPath)
	if err != nil {
		t.Fatalf("failed to create test store: %v", err)
	}

	cleanup := func() {
		st.Close()
	}

	return st, cleanup
}

func sampleRun(ts time.Time, sources ...string) *store.CreateRunInput {
	input := &store.CreateRunInput{
		Timestamp: ts,
		Count:     10,
		Direction: "bottom",
		Headers:   len(sources) > 1,
	}
	for _, src := range sources {
		input.Outcomes = append(input.Outcomes, store.Outcome{Source: src, Strategy: "scan", Bytes: int64(len(src))})
	}
	return input
}

func TestNewSQLiteStore(t *testing.T) {
	st, cleanup := setupTestDB(t)
	defer cleanup()

	if st == nil {
		t.Fatal("expected store to be created")
	}

	count, err := st.Runs().Count()
	if err != nil {
		t.Fatalf("Count() error = %v", err)
	}
	if count != 0 {
		t.Errorf("expected empty journal, got %d runs", count)
	}
}

func TestDatabaseFile(t *testing.T) {
	st, cleanup := setupTestDB(t)
	defer cleanup()

	if _, err := os.Stat(st.Path()); err != nil {
		t.Errorf("expected database file at %s: %v", st.Path(), err)
	}
}

func TestRunStore_Create(t *testing.T) {
	st, cleanup := setupTestDB(t)
	defer cleanup()

	input := sampleRun(time.Now(), "a.log", "b.log")
	input.Outcomes[1].Strategy = "none"
	input.Outcomes[1].Error = "cannot open 'b.log' for reading: no such file or directory"

	run, err := st.Runs().Create(input)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if run.ID == 0 {
		t.Error("expected generated ID")
	}
	if !run.Failed {
		t.Error("expected run to be marked failed")
	}
	if !run.Headers {
		t.Error("expected headers flag to be stored")
	}
	if len(run.Outcomes) != 2 || run.Outcomes[1].Position != 1 {
		t.Errorf("unexpected outcomes %+v", run.Outcomes)
	}
}

func TestRunStore_CreateDefaultsTimestamp(t *testing.T) {
	st, cleanup := setupTestDB(t)
	defer cleanup()

	run, err := st.Runs().Create(sampleRun(time.Time{}, "a"))
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if run.Timestamp.IsZero() {
		t.Error("expected timestamp to default to now")
	}
}

func TestRunStore_CountClamped(t *testing.T) {
	st, cleanup := setupTestDB(t)
	defer cleanup()

	input := sampleRun(time.Now(), "a")
	input.Count = math.MaxUint64

	run, err := st.Runs().Create(input)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	got, err := st.Runs().Get(run.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.Count != math.MaxInt64 {
		t.Errorf("expected count clamped to %d, got %d", int64(math.MaxInt64), got.Count)
	}
}

func TestRunStore_Get(t *testing.T) {
	st, cleanup := setupTestDB(t)
	defer cleanup()

	created, err := st.Runs().Create(sampleRun(time.Now(), "one", "two", "three"))
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	run, err := st.Runs().Get(created.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if run.Direction != "bottom" || run.Count != 10 {
		t.Errorf("unexpected run %+v", run)
	}
	for i, want := range []string{"one", "two", "three"} {
		if run.Outcomes[i].Source != want || run.Outcomes[i].Position != i {
			t.Errorf("outcome %d = %+v, want source %s", i, run.Outcomes[i], want)
		}
	}

	if _, err := st.Runs().Get(9999); err == nil {
		t.Error("expected error for missing run")
	}
}

func TestRunStore_List(t *testing.T) {
	st, cleanup := setupTestDB(t)
	defer cleanup()

	base := time.Now()
	for i := 0; i < 5; i++ {
		if _, err := st.Runs().Create(sampleRun(base.Add(time.Duration(i)*time.Second), fmt.Sprintf("run-%d", i))); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
	}

	runs, err := st.Runs().List(0)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(runs) != 5 {
		t.Fatalf("expected 5 runs, got %d", len(runs))
	}
	if runs[0].Outcomes[0].Source != "run-4" || runs[4].Outcomes[0].Source != "run-0" {
		t.Errorf("expected newest first, got %s ... %s", runs[0].Outcomes[0].Source, runs[4].Outcomes[0].Source)
	}

	limited, err := st.Runs().List(3)
	if err != nil {
		t.Fatalf("List(3) error = %v", err)
	}
	if len(limited) != 3 {
		t.Errorf("expected 3 runs, got %d", len(limited))
	}
}

func TestRunStore_Delete(t *testing.T) {
	st, cleanup := setupTestDB(t)
	defer cleanup()

	run, err := st.Runs().Create(sampleRun(time.Now(), "a", "b"))
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if err := st.Runs().Delete(run.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := st.Runs().Get(run.ID); err == nil {
		t.Error("expected run to be gone")
	}

	var outcomes int64
	st.db.Model(&OutcomeModel{}).Count(&outcomes)
	if outcomes != 0 {
		t.Errorf("expected outcomes to be deleted, %d remain", outcomes)
	}

	if err := st.Runs().Delete(run.ID); err == nil {
		t.Error("expected error deleting a missing run")
	}
}

func TestRunStore_DeleteOldest(t *testing.T) {
	st, cleanup := setupTestDB(t)
	defer cleanup()

	base := time.Now()
	for i := 0; i < 5; i++ {
		if _, err := st.Runs().Create(sampleRun(base.Add(time.Duration(i)*time.Second), fmt.Sprintf("run-%d", i))); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
	}

	if err := st.Runs().DeleteOldest(2); err != nil {
		t.Fatalf("DeleteOldest() error = %v", err)
	}

	runs, err := st.Runs().List(0)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(runs) != 3 {
		t.Fatalf("expected 3 runs, got %d", len(runs))
	}
	if runs[2].Outcomes[0].Source != "run-2" {
		t.Errorf("expected run-2 to be oldest remaining, got %s", runs[2].Outcomes[0].Source)
	}

	if err := st.Runs().DeleteOldest(0); err != nil {
		t.Errorf("DeleteOldest(0) error = %v", err)
	}
	if err := st.Runs().DeleteOldest(100); err != nil {
		t.Fatalf("DeleteOldest(100) error = %v", err)
	}
	if count, _ := st.Runs().Count(); count != 0 {
		t.Errorf("expected empty journal, got %d", count)
	}
}

func TestRunStore_Clear(t *testing.T) {
	st, cleanup := setupTestDB(t)
	defer cleanup()

	for i := 0; i < 3; i++ {
		if _, err := st.Runs().Create(sampleRun(time.Now(), "a", "b")); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
	}

	if err := st.Runs().Clear(); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	if count, _ := st.Runs().Count(); count != 0 {
		t.Errorf("expected 0 runs, got %d", count)
	}

	var outcomes int64
	st.db.Model(&OutcomeModel{}).Count(&outcomes)
	if outcomes != 0 {
		t.Errorf("expected outcomes to be cleared, %d remain", outcomes)
	}
}

func TestPersistenceAcrossReopen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "journal.db")

	st, err := NewSQLiteStore(dbPath)
	if err != nil {
		t.Fatalf("NewSQLiteStore() error = %v", err)
	}
	if _, err := st.Runs().Create(sampleRun(time.Now(), "kept.log")); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	st.Close()

	st, err = NewSQLiteStore(dbPath)
	if err != nil {
		t.Fatalf("reopen error = %v", err)
	}
	defer st.Close()

	runs, err := st.Runs().List(0)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(runs) != 1 || runs[0].Outcomes[0].Source != "kept.log" {
		t.Errorf("unexpected runs after reopen %+v", runs)
	}
}

// TestConcurrentAccess reads one run from several goroutines
func TestConcurrentAccess(t *testing.T) {
	st, cleanup := setupTestDB(t)
	defer cleanup()

	run, err := st.Runs().Create(sampleRun(time.Now(), "shared.log"))
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := st.Runs().Get(run.ID)
			if err != nil {
				t.Errorf("Get() error = %v", err)
				return
			}
			if got.Outcomes[0].Source != "shared.log" {
				t.Errorf("unexpected source %s", got.Outcomes[0].Source)
			}
		}()
	}
	wg.Wait()
}
