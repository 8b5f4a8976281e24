// Package sqlite persists the publish history ledger.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that
// requires no CGO, enabling easy cross-compilation. Only publish metadata is
// stored; document content never touches disk.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/inkwell-labs/inkwell-cli/internal/core/domain"
	"github.com/inkwell-labs/inkwell-cli/internal/core/ports/driven"
)

// Ensure HistoryStore implements the interface.
var _ driven.HistoryStore = (*HistoryStore)(nil)

const schema = `
CREATE TABLE IF NOT EXISTS publish_history (
	id           TEXT PRIMARY KEY,
	action       TEXT NOT NULL,
	page_id      TEXT NOT NULL,
	title        TEXT NOT NULL,
	url          TEXT NOT NULL,
	instructions INTEGER NOT NULL DEFAULT 0,
	created_at   TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_publish_history_created_at
	ON publish_history (created_at DESC);
`

// HistoryStore is a SQLite-backed publish history ledger.
type HistoryStore struct {
	db   *sql.DB
	path string
}

// NewHistoryStore opens (creating if needed) the ledger at the specified
// data directory. If dataDir is empty, defaults to ~/.inkwell/data/history.db.
func NewHistoryStore(dataDir string) (*HistoryStore, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".inkwell", "data")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "history.db")

	// WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing schema: %w", err)
	}

	return &HistoryStore{db: db, path: dbPath}, nil
}

// Path returns the database file path.
func (s *HistoryStore) Path() string {
	return s.path
}

// Record inserts a ledger entry.
func (s *HistoryStore) Record(ctx context.Context, entry domain.HistoryEntry) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO publish_history (id, action, page_id, title, url, instructions, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		entry.ID, string(entry.Action), entry.PageID, entry.Title, entry.URL,
		entry.Instructions, entry.CreatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("recording history entry: %w", err)
	}
	return nil
}

// List returns up to limit entries, newest first. limit <= 0 returns all.
func (s *HistoryStore) List(ctx context.Context, limit int) ([]domain.HistoryEntry, error) {
	query := `SELECT id, action, page_id, title, url, instructions, created_at
		FROM publish_history ORDER BY created_at DESC`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing history: %w", err)
	}
	defer rows.Close()

	var entries []domain.HistoryEntry
	for rows.Next() {
		var entry domain.HistoryEntry
		var action, createdAt string
		if err := rows.Scan(&entry.ID, &action, &entry.PageID, &entry.Title,
			&entry.URL, &entry.Instructions, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning history entry: %w", err)
		}
		entry.Action = domain.HistoryAction(action)
		if ts, err := time.Parse(time.RFC3339, createdAt); err == nil {
			entry.CreatedAt = ts
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading history rows: %w", err)
	}
	return entries, nil
}

// Close closes the database connection.
func (s *HistoryStore) Close() error {
	return s.db.Close()
}
