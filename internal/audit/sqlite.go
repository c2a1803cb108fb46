package audit

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a new SQLite audit store.
func NewSQLiteStore(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// For in-memory SQLite, multiple connections create separate databases.
	// Keep a single connection to avoid schema/data disappearing across goroutines.
	if dsn == ":memory:" || strings.Contains(dsn, "mode=memory") {
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
	}

	store := &SQLiteStore{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return store, nil
}

func (s *SQLiteStore) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS tool_dispatches (
			dispatch_id TEXT PRIMARY KEY,
			tool_name TEXT NOT NULL,
			user_id TEXT,
			args TEXT,
			success INTEGER NOT NULL,
			result_snippet TEXT,
			status_code INTEGER,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE INDEX IF NOT EXISTS idx_dispatches_tool ON tool_dispatches(tool_name, created_at)`,
		`CREATE INDEX IF NOT EXISTS idx_dispatches_user ON tool_dispatches(user_id, created_at)`,
	}
	for _, m := range migrations {
		if _, err := s.db.Exec(m); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}
	return nil
}

// RecordDispatch inserts one dispatch record.
func (s *SQLiteStore) RecordDispatch(ctx context.Context, d *Dispatch) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO tool_dispatches (dispatch_id, tool_name, user_id, args, success, result_snippet, status_code, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		d.DispatchID, d.ToolName, d.UserID, d.Args, d.Success, d.ResultSnippet, d.StatusCode, d.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to record dispatch: %w", err)
	}
	return nil
}

// ListDispatches returns the most recent dispatches, newest first.
func (s *SQLiteStore) ListDispatches(ctx context.Context, limit int) ([]Dispatch, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT dispatch_id, tool_name, user_id, args, success, result_snippet, status_code, created_at
		 FROM tool_dispatches ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query dispatches: %w", err)
	}
	defer rows.Close()

	var out []Dispatch
	for rows.Next() {
		var d Dispatch
		if err := rows.Scan(&d.DispatchID, &d.ToolName, &d.UserID, &d.Args, &d.Success, &d.ResultSnippet, &d.StatusCode, &d.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan dispatch: %w", err)
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
