// SPDX-License-Identifier: MIT

// Package store persists households and assignment rounds in SQLite.
//
// The store hands the engine plain household.Household snapshots and writes
// a finished round back in a single transaction: every assigned chore gets
// its new assignee and due date, and the round itself is recorded.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/katalvlaran/chorewheel/assign"
)

// openDB is a package-level var to allow test injection.
var openDB = sql.Open

// Sentinel errors.
var (
	// ErrNotFound indicates an unknown household, user or chore.
	ErrNotFound = errors.New("store: not found")

	// ErrInvalid indicates input the store refuses to persist.
	ErrInvalid = errors.New("store: invalid input")
)

// timeLayout is how timestamps are stored: sortable UTC text.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

// Config holds store configuration.
type Config struct {
	// DataDir is created if missing and holds chorewheel.db.
	DataDir string
}

// Round is a persisted assignment round.
type Round struct {
	ID          string              `json:"id"`
	HouseholdID string              `json:"householdId"`
	Flow        int64               `json:"flow"`
	Cost        int64               `json:"cost"`
	DueAt       time.Time           `json:"dueAt"`
	CreatedAt   time.Time           `json:"createdAt"`
	Assignments []assign.Assignment `json:"assignments"`
}

// Store is the SQLite-backed persistence layer. Safe for concurrent use.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// New creates a Store in cfg.DataDir, opens SQLite with WAL mode and runs
// migrations.
func New(cfg Config) (*Store, error) {
	if cfg.DataDir == "" {
		return nil, fmt.Errorf("%w: empty data dir", ErrInvalid)
	}
	if err := os.MkdirAll(cfg.DataDir, 0o700); err != nil {
		return nil, fmt.Errorf("store: create data dir: %w", err)
	}

	// Pragmas go in the DSN so every pooled connection gets them.
	pragmas := []string{
		"journal_mode(WAL)",
		"busy_timeout(5000)",
		"synchronous(NORMAL)",
		"foreign_keys(1)",
	}
	q := url.Values{}
	for _, p := range pragmas {
		q.Add("_pragma", p)
	}
	dsn := "file:" + filepath.Join(cfg.DataDir, "chorewheel.db") + "?" + q.Encode()

	db, err := openDB("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("store: open database: %w", err)
	}

	s := &Store{db: db, now: time.Now}
	if err = s.migrate(); err != nil {
		_ = db.Close()

		return nil, fmt.Errorf("store: migration: %w", err)
	}

	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS households (
			id         TEXT PRIMARY KEY,
			name       TEXT NOT NULL,
			created_at TEXT NOT NULL
		);

		CREATE TABLE IF NOT EXISTS users (
			household_id TEXT NOT NULL,
			id           TEXT NOT NULL,
			name         TEXT NOT NULL,
			PRIMARY KEY (household_id, id),
			FOREIGN KEY (household_id) REFERENCES households(id) ON DELETE CASCADE
		);

		CREATE TABLE IF NOT EXISTS chores (
			household_id TEXT NOT NULL,
			id           TEXT NOT NULL,
			name         TEXT NOT NULL,
			assigned_to  TEXT,
			due_at       TEXT,
			PRIMARY KEY (household_id, id),
			FOREIGN KEY (household_id) REFERENCES households(id) ON DELETE CASCADE
		);

		CREATE TABLE IF NOT EXISTS preferences (
			household_id TEXT NOT NULL,
			user_id      TEXT NOT NULL,
			chore_id     TEXT NOT NULL,
			preference   TEXT NOT NULL,
			PRIMARY KEY (household_id, user_id, chore_id),
			FOREIGN KEY (household_id, user_id) REFERENCES users(household_id, id) ON DELETE CASCADE
		);

		CREATE TABLE IF NOT EXISTS rounds (
			id           TEXT PRIMARY KEY,
			household_id TEXT    NOT NULL,
			flow         INTEGER NOT NULL,
			cost         INTEGER NOT NULL,
			due_at       TEXT    NOT NULL,
			created_at   TEXT    NOT NULL,
			FOREIGN KEY (household_id) REFERENCES households(id) ON DELETE CASCADE
		);

		CREATE INDEX IF NOT EXISTS idx_rounds_household ON rounds(household_id, created_at DESC);

		CREATE TABLE IF NOT EXISTS round_assignments (
			round_id       TEXT    NOT NULL,
			position       INTEGER NOT NULL,
			user_id        TEXT    NOT NULL,
			chore_id       TEXT    NOT NULL,
			cost           INTEGER NOT NULL,
			low_confidence INTEGER NOT NULL DEFAULT 0,
			PRIMARY KEY (round_id, position),
			FOREIGN KEY (round_id) REFERENCES rounds(id) ON DELETE CASCADE
		);
	`
	_, err := s.db.Exec(schema)

	return err
}

// withTx runs fn in a transaction, committing on success.
func (s *Store) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("store: begin tx: %w", err)
	}
	if err = fn(tx); err != nil {
		_ = tx.Rollback()

		return err
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("store: commit: %w", err)
	}

	return nil
}

type queryRower interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func householdExists(ctx context.Context, q queryRower, id string) error {
	var one int
	err := q.QueryRowContext(ctx, `SELECT 1 FROM households WHERE id = ?`, id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: household %q", ErrNotFound, id)
	}

	return err
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) (time.Time, error) {
	return time.Parse(timeLayout, s)
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
