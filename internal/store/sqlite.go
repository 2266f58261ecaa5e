package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	// Pure Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"
)

// SQLiteStore is an optional persistent UserStore backend. Records are
// stored as one JSON document per user.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite creates a SQLiteStore at dsn, applying recommended pragmas
// and creating the schema if needed.
func OpenSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply pragmas: %w", err)
	}

	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS user_records (
			user_id    TEXT PRIMARY KEY,
			record     TEXT NOT NULL,
			updated_at TIMESTAMP NOT NULL
		)`); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Get(ctx context.Context, id string) (UserRecord, bool, error) {
	var raw string
	err := s.db.QueryRowContext(ctx,
		`SELECT record FROM user_records WHERE user_id = ?`, id).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return UserRecord{}, false, nil
	}
	if err != nil {
		return UserRecord{}, false, fmt.Errorf("load record %q: %w", id, err)
	}

	var rec UserRecord
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		return UserRecord{}, false, fmt.Errorf("decode record %q: %w", id, err)
	}
	if rec.LessonsCompleted == nil {
		rec.LessonsCompleted = map[string]int{}
	}
	return rec, true, nil
}

func (s *SQLiteStore) Put(ctx context.Context, id string, record UserRecord) error {
	raw, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("encode record %q: %w", id, err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO user_records (user_id, record, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT (user_id) DO UPDATE SET record = excluded.record, updated_at = excluded.updated_at`,
		id, string(raw), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("save record %q: %w", id, err)
	}
	return nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// applyPragmas configures SQLite for single-writer service use.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
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
// 1. BEELEARN_DB environment variable
// 2. $XDG_DATA_HOME/beelearn/beelearn.db
// 3. ~/.local/share/beelearn/beelearn.db
func DefaultDBPath() (string, error) {
	if p := os.Getenv("BEELEARN_DB"); p != "" {
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

	p := filepath.Join(dataHome, "beelearn", "beelearn.db")
	return p, EnsureDir(p)
}

// EnsureDir creates the parent directory of path if it doesn't exist.
func EnsureDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), 0o755)
}
