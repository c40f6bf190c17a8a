// Package history keeps a local log of finished placement attempts so
// results remain visible even when the backend save was best-effort only.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	// Pure Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"
)

// Record is one finished placement attempt.
type Record struct {
	AttemptID    string
	Language     string
	Level        string
	Grade        float64
	NumCorrect   int
	NumQuestions int
	Saved        bool // whether the backend accepted the result
	TakenAt      time.Time
}

// Store is the SQLite-backed attempt log.
type Store struct {
	db *sql.DB
}

// Open creates a Store connected to the SQLite database at dsn. It applies
// recommended pragmas and creates the schema when missing.
func Open(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply pragmas: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &Store{db: db}, nil
}

const schema = `
CREATE TABLE IF NOT EXISTS attempts (
	attempt_id    TEXT PRIMARY KEY,
	language      TEXT NOT NULL,
	level         TEXT NOT NULL,
	grade         REAL NOT NULL,
	num_correct   INTEGER NOT NULL,
	num_questions INTEGER NOT NULL,
	saved         INTEGER NOT NULL DEFAULT 0,
	taken_at      TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_attempts_taken_at ON attempts (taken_at);
`

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Append records a finished attempt.
func (s *Store) Append(ctx context.Context, r Record) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO attempts (attempt_id, language, level, grade, num_correct, num_questions, saved, taken_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		r.AttemptID, r.Language, r.Level, r.Grade, r.NumCorrect, r.NumQuestions,
		boolToInt(r.Saved), r.TakenAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("append attempt: %w", err)
	}
	return nil
}

// MarkSaved flips the saved flag once the backend accepts the result.
func (s *Store) MarkSaved(ctx context.Context, attemptID string) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE attempts SET saved = 1 WHERE attempt_id = ?`, attemptID)
	if err != nil {
		return fmt.Errorf("mark attempt saved: %w", err)
	}
	return nil
}

// List returns attempts newest first.
func (s *Store) List(ctx context.Context) ([]Record, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT attempt_id, language, level, grade, num_correct, num_questions, saved, taken_at
		FROM attempts ORDER BY taken_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list attempts: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var r Record
		var saved int
		var takenAt string
		if err := rows.Scan(&r.AttemptID, &r.Language, &r.Level, &r.Grade,
			&r.NumCorrect, &r.NumQuestions, &saved, &takenAt); err != nil {
			return nil, fmt.Errorf("scan attempt: %w", err)
		}
		r.Saved = saved != 0
		if t, err := time.Parse(time.RFC3339, takenAt); err == nil {
			r.TakenAt = t
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// applyPragmas configures SQLite for single-user performance.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
	}
	return nil
}

// DefaultDBPath resolves the database file path in priority order:
// 1. LINGO_DB environment variable
// 2. $XDG_DATA_HOME/lingo/lingo.db
// 3. ~/.local/share/lingo/lingo.db
func DefaultDBPath() (string, error) {
	if p := os.Getenv("LINGO_DB"); p != "" {
		return p, EnsureDir(p)
	}

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}

	p := filepath.Join(dataHome, "lingo", "lingo.db")
	return p, EnsureDir(p)
}

// EnsureDir creates the parent directory of path if it doesn't exist.
func EnsureDir(path string) error {
	dir := filepath.Dir(path)
	return os.MkdirAll(dir, 0o755)
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
