/*
Package sqlite persists work-entry records and settings.

PURPOSE:
  The engine is pure; this store is the collaborator that keeps the raw day
  records it computes from and the single settings document it computes
  under. Records are stored as JSON payloads keyed by date, settings as one
  singleton row.

KEY TABLES:
  work_entries: one row per calendar date, JSON payload of the raw record
  settings:     singleton row, JSON payload of the merged settings

WAL MODE:
  SQLite is opened with WAL for better read concurrency under the HTTP
  boundary.
*/
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/warp/payroll-engine/engine"
)

// Store is the SQLite-backed persistence boundary.
type Store struct {
	db *sql.DB
}

// New creates a store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error { return s.db.Close() }

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS work_entries (
		id TEXT PRIMARY KEY,
		entry_date TEXT NOT NULL UNIQUE,
		payload TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_work_entries_date ON work_entries(entry_date);

	CREATE TABLE IF NOT EXISTS settings (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		payload TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// WORK ENTRIES
// =============================================================================

// SaveEntry upserts the raw record for a date ("2006-01-02").
func (s *Store) SaveEntry(ctx context.Context, date string, payload map[string]any) error {
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return fmt.Errorf("invalid entry date %q: %w", date, err)
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode entry payload: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO work_entries (id, entry_date, payload, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(entry_date) DO UPDATE SET
			payload = excluded.payload,
			updated_at = excluded.updated_at
	`, uuid.NewString(), date, string(raw), time.Now().UTC().Format(time.RFC3339))
	return err
}

// GetEntry loads the raw record for a date. Missing dates report ok=false.
func (s *Store) GetEntry(ctx context.Context, date string) (map[string]any, bool, error) {
	var raw string
	err := s.db.QueryRowContext(ctx,
		`SELECT payload FROM work_entries WHERE entry_date = ?`, date).Scan(&raw)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var payload map[string]any
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return nil, false, fmt.Errorf("corrupt entry payload for %s: %w", date, err)
	}
	return payload, true, nil
}

// ListMonth loads every raw record of a month in date order.
func (s *Store) ListMonth(ctx context.Context, year int, month time.Month) ([]map[string]any, error) {
	prefix := fmt.Sprintf("%04d-%02d-", year, int(month))
	rows, err := s.db.QueryContext(ctx, `
		SELECT payload FROM work_entries
		WHERE entry_date LIKE ? || '%'
		ORDER BY entry_date
	`, prefix)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []map[string]any
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, err
		}
		var payload map[string]any
		if err := json.Unmarshal([]byte(raw), &payload); err != nil {
			// One corrupt row must not sink the month.
			continue
		}
		records = append(records, payload)
	}
	return records, rows.Err()
}

// DeleteEntry removes the record for a date. Deleting a missing date is not
// an error.
func (s *Store) DeleteEntry(ctx context.Context, date string) error {
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM work_entries WHERE entry_date = ?`, date)
	return err
}

// =============================================================================
// SETTINGS
// =============================================================================

// SaveSettings stores the settings document.
func (s *Store) SaveSettings(ctx context.Context, settings engine.Settings) error {
	raw, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO settings (id, payload, updated_at)
		VALUES (1, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			payload = excluded.payload,
			updated_at = excluded.updated_at
	`, string(raw), time.Now().UTC().Format(time.RFC3339))
	return err
}

// LoadSettings returns the stored settings merged against the documented
// defaults. When nothing is stored yet, the defaults are returned.
func (s *Store) LoadSettings(ctx context.Context) (engine.Settings, error) {
	var raw string
	err := s.db.QueryRowContext(ctx, `SELECT payload FROM settings WHERE id = 1`).Scan(&raw)
	if err == sql.ErrNoRows {
		return engine.DefaultSettings(), nil
	}
	if err != nil {
		return engine.Settings{}, err
	}

	var settings engine.Settings
	if err := json.Unmarshal([]byte(raw), &settings); err != nil {
		return engine.Settings{}, fmt.Errorf("corrupt settings payload: %w", err)
	}
	return engine.Merge(settings), nil
}
