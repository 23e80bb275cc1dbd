package history

import (
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/wtf-sh/wtf/internal/domain"
)

func newTestStore(t *testing.T, depth int) *SQLiteStore {
	t.Helper()
	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "history.db"), depth)
	if err != nil {
		t.Fatalf("NewSQLiteStore error: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func record(command string) domain.ExecutionRecord {
	return domain.ExecutionRecord{
		ID:        uuid.NewString(),
		Command:   command,
		StartedAt: time.Now().UTC(),
	}
}

func TestSaveAndRecentOrdering(t *testing.T) {
	store := newTestStore(t, 10)
	for i := 0; i < 3; i++ {
		if err := store.Save(record(fmt.Sprintf("echo %d", i))); err != nil {
			t.Fatalf("Save error: %v", err)
		}
	}
	records, err := store.Recent(0)
	if err != nil {
		t.Fatalf("Recent error: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("got %d records, want 3", len(records))
	}
	if records[0].Command != "echo 2" || records[2].Command != "echo 0" {
		t.Fatalf("records not newest-first: %+v", records)
	}
}

func TestDepthCapEvictsOldest(t *testing.T) {
	store := newTestStore(t, 3)
	for i := 0; i < 5; i++ {
		if err := store.Save(record(fmt.Sprintf("echo %d", i))); err != nil {
			t.Fatalf("Save error: %v", err)
		}
	}
	records, err := store.Recent(0)
	if err != nil {
		t.Fatalf("Recent error: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("got %d records, want cap of 3", len(records))
	}
	if records[len(records)-1].Command != "echo 2" {
		t.Fatalf("oldest surviving record = %s, want echo 2", records[len(records)-1].Command)
	}
}

func TestMarkInverseApplied(t *testing.T) {
	store := newTestStore(t, 10)
	rec := record("git commit -m x")
	rec.Inverse = "git reset --soft HEAD~1"
	if err := store.Save(rec); err != nil {
		t.Fatalf("Save error: %v", err)
	}
	if err := store.MarkInverseApplied(rec.ID); err != nil {
		t.Fatalf("MarkInverseApplied error: %v", err)
	}
	records, err := store.Recent(1)
	if err != nil {
		t.Fatalf("Recent error: %v", err)
	}
	if !records[0].InverseApplied {
		t.Fatal("inverse_applied not persisted")
	}
	if err := store.MarkInverseApplied("no-such-id"); err == nil {
		t.Fatal("expected error for unknown record id")
	}
}

func TestClear(t *testing.T) {
	store := newTestStore(t, 10)
	if err := store.Save(record("ls")); err != nil {
		t.Fatalf("Save error: %v", err)
	}
	if err := store.Clear(); err != nil {
		t.Fatalf("Clear error: %v", err)
	}
	records, err := store.Recent(0)
	if err != nil {
		t.Fatalf("Recent error: %v", err)
	}
	if len(records) != 0 {
		t.Fatalf("expected empty history, got %d", len(records))
	}
}
