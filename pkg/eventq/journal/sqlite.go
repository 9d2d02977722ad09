package journal

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// SQLiteStore persists failed events to SQLite.
// It is suitable for single-process production use.
type SQLiteStore struct {
	db     *sql.DB
	mu     sync.RWMutex
	closed bool
}

// NewSQLiteStore creates a new SQLite journal store.
// The path should be a file path (e.g., "./journal.db") or ":memory:" for testing.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// Enable WAL mode for better concurrent read performance
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable WAL mode: %w", err)
	}

	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS failed_events (
			event_id TEXT PRIMARY KEY,
			event_type TEXT NOT NULL,
			payload BLOB,
			code TEXT NOT NULL DEFAULT '',
			message TEXT NOT NULL,
			details TEXT NOT NULL DEFAULT '',
			failed_at TEXT NOT NULL
		)
	`); err != nil {
		db.Close()
		return nil, fmt.Errorf("create table: %w", err)
	}

	if _, err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_failed_events_type
		ON failed_events(event_type)
	`); err != nil {
		db.Close()
		return nil, fmt.Errorf("create index: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Record appends a failed event to the journal.
// Recording the same event ID again replaces the previous record.
func (s *SQLiteStore) Record(ctx context.Context, failed *FailedEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStoreClosed
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO failed_events (event_id, event_type, payload, code, message, details, failed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(event_id) DO UPDATE SET
			event_type = excluded.event_type,
			payload = excluded.payload,
			code = excluded.code,
			message = excluded.message,
			details = excluded.details,
			failed_at = excluded.failed_at
	`, failed.EventID, failed.EventType, failed.Payload,
		failed.Code, failed.Message, failed.Details,
		failed.FailedAt.UTC().Format(time.RFC3339Nano))

	if err != nil {
		return fmt.Errorf("record failed event: %w", err)
	}
	return nil
}

// Get retrieves the record for an event ID.
func (s *SQLiteStore) Get(ctx context.Context, eventID string) (*FailedEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, ErrStoreClosed
	}

	row := s.db.QueryRowContext(ctx, `
		SELECT event_id, event_type, payload, code, message, details, failed_at
		FROM failed_events WHERE event_id = ?
	`, eventID)

	failed, err := scanFailedEvent(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get failed event: %w", err)
	}
	return failed, nil
}

// List returns up to limit records in recording order.
func (s *SQLiteStore) List(ctx context.Context, limit int) ([]*FailedEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, ErrStoreClosed
	}

	query := `
		SELECT event_id, event_type, payload, code, message, details, failed_at
		FROM failed_events ORDER BY rowid
	`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list failed events: %w", err)
	}
	defer rows.Close()

	var records []*FailedEvent
	for rows.Next() {
		failed, err := scanFailedEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("scan failed event: %w", err)
		}
		records = append(records, failed)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list failed events: %w", err)
	}
	return records, nil
}

// Count returns the number of records.
func (s *SQLiteStore) Count(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return 0, ErrStoreClosed
	}

	var count int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM failed_events`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count failed events: %w", err)
	}
	return count, nil
}

// Delete removes the record for an event ID.
func (s *SQLiteStore) Delete(ctx context.Context, eventID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStoreClosed
	}

	res, err := s.db.ExecContext(ctx, `DELETE FROM failed_events WHERE event_id = ?`, eventID)
	if err != nil {
		return fmt.Errorf("delete failed event: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete failed event: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true
	return s.db.Close()
}

// scanner abstracts sql.Row and sql.Rows for scanFailedEvent.
type scanner interface {
	Scan(dest ...any) error
}

func scanFailedEvent(row scanner) (*FailedEvent, error) {
	var failed FailedEvent
	var failedAt string

	err := row.Scan(&failed.EventID, &failed.EventType, &failed.Payload,
		&failed.Code, &failed.Message, &failed.Details, &failedAt)
	if err != nil {
		return nil, err
	}

	ts, err := time.Parse(time.RFC3339Nano, failedAt)
	if err != nil {
		return nil, fmt.Errorf("parse failed_at: %w", err)
	}
	failed.FailedAt = ts
	return &failed, nil
}
