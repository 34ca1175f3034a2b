// Package history keeps a SQLite record of detected haiku and the running
// "haikus detected" tally shown after each detection.
package history

import (
	"context"
	"database/sql"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/harrison/haiku/internal/models"
)

//go:embed schema.sql
var schemaSQL string

// Store manages the SQLite database of detections
type Store struct {
	db     *sql.DB
	dbPath string
}

// NewStore creates a new Store instance and initializes the database
func NewStore(dbPath string) (*Store, error) {
	if dbPath == ":memory:" {
		return openAndInitStore(dbPath)
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create database directory: %w", err)
	}

	return openAndInitStore(dbPath)
}

// openAndInitStore opens the database connection and initializes schema
func openAndInitStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// Every connection to :memory: is a separate database
	if dbPath == ":memory:" {
		db.SetMaxOpenConns(1)
	}

	// busy_timeout first so the rest wait on locks held by other processes
	pragmas := []string{
		"PRAGMA busy_timeout=5000",
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
	}
	for _, pragma := range pragmas {
		if err := execWithRetry(db, pragma, 5, 10*time.Millisecond); err != nil {
			db.Close()
			return nil, fmt.Errorf("set %s: %w", pragma, err)
		}
	}

	if err := execWithRetry(db, schemaSQL, 5, 10*time.Millisecond); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	return &Store{db: db, dbPath: dbPath}, nil
}

// execWithRetry executes a SQL statement with exponential backoff retry on lock errors.
func execWithRetry(db *sql.DB, stmt string, maxRetries int, baseDelay time.Duration) error {
	var lastErr error
	for attempt := 0; attempt < maxRetries; attempt++ {
		_, err := db.Exec(stmt)
		if err == nil {
			return nil
		}
		if !strings.Contains(err.Error(), "database is locked") {
			return err
		}

		lastErr = err
		time.Sleep(baseDelay * time.Duration(1<<attempt))
	}
	return lastErr
}

// Path returns the database path the store was opened with
func (s *Store) Path() string {
	return s.dbPath
}

// Close closes the database connection
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Record stores a detection
func (s *Store) Record(ctx context.Context, d *models.Detection) error {
	if d == nil {
		return fmt.Errorf("record detection: nil detection")
	}

	linesJSON, err := json.Marshal(d.Lines)
	if err != nil {
		return fmt.Errorf("marshal lines: %w", err)
	}
	countsJSON, err := json.Marshal(d.Counts)
	if err != nil {
		return fmt.Errorf("marshal counts: %w", err)
	}

	query := `INSERT INTO detections (id, source, lines, counts, window_start, detected_at)
		VALUES (?, ?, ?, ?, ?, ?)`
	if _, err := s.db.ExecContext(ctx, query,
		d.ID,
		d.Source,
		string(linesJSON),
		string(countsJSON),
		d.WindowStart,
		d.DetectedAt.UTC(),
	); err != nil {
		return fmt.Errorf("insert detection: %w", err)
	}

	return nil
}

// List returns recorded detections, newest first.
// A limit of 0 or less returns everything.
func (s *Store) List(ctx context.Context, limit int) ([]models.Detection, error) {
	query := `SELECT id, source, lines, counts, window_start, detected_at
		FROM detections
		ORDER BY detected_at DESC, rowid DESC`
	args := []interface{}{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query detections: %w", err)
	}
	defer rows.Close()

	var detections []models.Detection
	for rows.Next() {
		var d models.Detection
		var linesJSON, countsJSON string
		if err := rows.Scan(&d.ID, &d.Source, &linesJSON, &countsJSON, &d.WindowStart, &d.DetectedAt); err != nil {
			return nil, fmt.Errorf("scan detection: %w", err)
		}
		if err := json.Unmarshal([]byte(linesJSON), &d.Lines); err != nil {
			return nil, fmt.Errorf("unmarshal lines for %s: %w", d.ID, err)
		}
		if err := json.Unmarshal([]byte(countsJSON), &d.Counts); err != nil {
			return nil, fmt.Errorf("unmarshal counts for %s: %w", d.ID, err)
		}
		detections = append(detections, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate detections: %w", err)
	}

	return detections, nil
}

// Count returns the number of recorded detections
func (s *Store) Count(ctx context.Context) (int, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM detections`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count detections: %w", err)
	}
	return count, nil
}

// Tally returns the "haikus detected" figure: the configured seed plus
// every recorded detection.
func (s *Store) Tally(ctx context.Context, initial int) (int, error) {
	count, err := s.Count(ctx)
	if err != nil {
		return 0, err
	}
	return initial + count, nil
}

// Clear deletes all recorded detections and returns how many were removed
func (s *Store) Clear(ctx context.Context) (int64, error) {
	result, err := s.db.ExecContext(ctx, `DELETE FROM detections`)
	if err != nil {
		return 0, fmt.Errorf("clear detections: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	return n, nil
}
