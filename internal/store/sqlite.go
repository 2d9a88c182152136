package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// SQLiteStore implements AuditStore using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a new SQLite-based audit store.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Configure connection pool for concurrent access
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Hour)

	s := &SQLiteStore{db: db}

	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return s, nil
}

func (s *SQLiteStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS parse_events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		endpoint TEXT NOT NULL,
		input_text TEXT NOT NULL,
		structured TEXT,
		algo TEXT,
		confidence REAL,
		llm_path INTEGER NOT NULL DEFAULT 0,
		created_at DATETIME NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_parse_events_created_at
		ON parse_events(created_at);
	CREATE INDEX IF NOT EXISTS idx_parse_events_endpoint
		ON parse_events(endpoint);
	`

	_, err := s.db.Exec(schema)
	return err
}

// SaveParseEvent appends one event to the trail.
func (s *SQLiteStore) SaveParseEvent(ctx context.Context, event ParseEvent) error {
	createdAt := event.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO parse_events (endpoint, input_text, structured, algo, confidence, llm_path, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		event.Endpoint, event.InputText, event.Structured, event.Algo,
		event.Confidence, event.LLMPath, createdAt,
	)
	if err != nil {
		return fmt.Errorf("inserting parse event: %w", err)
	}
	return nil
}

// Recent returns up to limit events, newest first.
func (s *SQLiteStore) Recent(ctx context.Context, limit int) ([]ParseEvent, error) {
	if limit <= 0 {
		limit = 100
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, endpoint, input_text, structured, algo, confidence, llm_path, created_at
		FROM parse_events
		ORDER BY created_at DESC, id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying parse events: %w", err)
	}
	defer rows.Close()

	var events []ParseEvent
	for rows.Next() {
		var e ParseEvent
		if err := rows.Scan(&e.ID, &e.Endpoint, &e.InputText, &e.Structured,
			&e.Algo, &e.Confidence, &e.LLMPath, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning parse event: %w", err)
		}
		events = append(events, e)
	}

	return events, rows.Err()
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
