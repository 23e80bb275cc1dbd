// Package history persists the bounded execution history backing undo.
package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/wtf-sh/wtf/internal/domain"
	"github.com/wtf-sh/wtf/internal/ports"
)

// SQLiteStore persists execution records in a SQLite database. History is
// append-only and capped; the oldest records are evicted silently.
type SQLiteStore struct {
	db    *sql.DB
	path  string
	depth int
	mu    sync.Mutex
}

// NewSQLiteStore creates (or opens) the database at path. A zero depth uses
// the default cap.
func NewSQLiteStore(path string, depth int) (*SQLiteStore, error) {
	if depth <= 0 {
		depth = domain.DefaultHistoryDepth
	}
	if err := os.MkdirAll(filepath.Dir(path), domain.DirectoryPermissions); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", domain.ErrStoreUnavailable, path, err)
	}
	store := &SQLiteStore{db: db, path: path, depth: depth}
	if err := store.init(); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: init %s: %v", domain.ErrStoreUnavailable, path, err)
	}
	return store, nil
}

func (s *SQLiteStore) init() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS execution_records (
		seq INTEGER PRIMARY KEY AUTOINCREMENT,
		id TEXT NOT NULL UNIQUE,
		command TEXT NOT NULL,
		cwd TEXT,
		started_at TEXT NOT NULL,
		exit_code INTEGER,
		stdout_digest TEXT,
		stderr_digest TEXT,
		inverse TEXT,
		inverse_applied INTEGER NOT NULL DEFAULT 0
	);`)
	return err
}

// Save appends a record and evicts anything beyond the cap.
func (s *SQLiteStore) Save(record domain.ExecutionRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.db.Exec(`INSERT INTO execution_records
		(id, command, cwd, started_at, exit_code, stdout_digest, stderr_digest, inverse, inverse_applied)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		record.ID,
		record.Command,
		record.WorkingDir,
		record.StartedAt.Format(time.RFC3339Nano),
		record.ExitCode,
		record.StdoutDigest,
		record.StderrDigest,
		record.Inverse,
		boolToInt(record.InverseApplied),
	)
	if err != nil {
		return fmt.Errorf("%w: save record: %v", domain.ErrStoreUnavailable, err)
	}
	_, err = s.db.Exec(`DELETE FROM execution_records WHERE seq <= (
		SELECT seq FROM execution_records ORDER BY seq DESC LIMIT 1 OFFSET ?
	)`, s.depth)
	if err != nil {
		return fmt.Errorf("%w: evict records: %v", domain.ErrStoreUnavailable, err)
	}
	return nil
}

// Recent returns records newest-first. A non-positive limit returns all
// retained records.
func (s *SQLiteStore) Recent(limit int) ([]domain.ExecutionRecord, error) {
	query := `SELECT id, command, cwd, started_at, exit_code, stdout_digest, stderr_digest, inverse, inverse_applied
		FROM execution_records ORDER BY seq DESC`
	var args []interface{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: query records: %v", domain.ErrStoreUnavailable, err)
	}
	defer rows.Close()

	var records []domain.ExecutionRecord
	for rows.Next() {
		var rec domain.ExecutionRecord
		var ts string
		var applied int
		if err := rows.Scan(&rec.ID, &rec.Command, &rec.WorkingDir, &ts, &rec.ExitCode,
			&rec.StdoutDigest, &rec.StderrDigest, &rec.Inverse, &applied); err != nil {
			return nil, fmt.Errorf("%w: scan record: %v", domain.ErrStoreUnavailable, err)
		}
		if t, err := time.Parse(time.RFC3339Nano, ts); err == nil {
			rec.StartedAt = t
		}
		rec.InverseApplied = applied == 1
		records = append(records, rec)
	}
	return records, rows.Err()
}

// MarkInverseApplied flips the inverse_applied flag. The record is never
// otherwise mutated after that point.
func (s *SQLiteStore) MarkInverseApplied(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	res, err := s.db.Exec(`UPDATE execution_records SET inverse_applied = 1 WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("%w: mark inverse applied: %v", domain.ErrStoreUnavailable, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("record %s not found", id)
	}
	return nil
}

// Clear deletes all records.
func (s *SQLiteStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.db.Exec("DELETE FROM execution_records"); err != nil {
		return fmt.Errorf("%w: clear history: %v", domain.ErrStoreUnavailable, err)
	}
	return nil
}

// Close releases the database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Path returns the database path.
func (s *SQLiteStore) Path() string {
	return s.path
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

var _ ports.HistoryStore = (*SQLiteStore)(nil)
