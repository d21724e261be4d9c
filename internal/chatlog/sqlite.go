// Package chatlog records finished dialog turns for later review.
package chatlog

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Turn is one recorded question/answer pair.
type Turn struct {
	SessionID  string    `json:"session_id"`
	Question   string    `json:"question"`
	Intent     string    `json:"intent"`
	Confidence float64   `json:"confidence"`
	Entities   string    `json:"entities"`
	ReplyKind  string    `json:"reply_kind"`
	ReplyText  string    `json:"reply_text"`
	At         time.Time `json:"at"`
}

// Recorder persists dialog turns. A nil *SQLiteRecorder is a valid no-op
// recorder, so callers don't have to branch on whether logging is configured.
type Recorder interface {
	Record(ctx context.Context, t Turn) error
	Recent(ctx context.Context, limit int) ([]Turn, error)
	Close() error
}

// SQLiteRecorder implements Recorder on a local sqlite database.
type SQLiteRecorder struct {
	db *sql.DB
}

// NewSQLite opens (creating if needed) the turn log at dbPath.
func NewSQLite(dbPath string) (*SQLiteRecorder, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create database directory: %w", err)
	}

	dsn := dbPath + "?_journal=WAL&_busy_timeout=5000"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.initSchema(); err != nil {
		return nil, fmt.Errorf("initialize schema: %w", err)
	}
	return r, nil
}

func (r *SQLiteRecorder) initSchema() error {
	query := `
	CREATE TABLE IF NOT EXISTS turns (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		session_id TEXT NOT NULL,
		question TEXT NOT NULL,
		intent TEXT,
		confidence REAL,
		entities TEXT,
		reply_kind TEXT NOT NULL,
		reply_text TEXT NOT NULL,
		at INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_turns_at ON turns(at);
	`
	if _, err := r.db.Exec(query); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// Record appends one turn.
func (r *SQLiteRecorder) Record(ctx context.Context, t Turn) error {
	if r == nil {
		return nil
	}
	if t.At.IsZero() {
		t.At = time.Now()
	}

	query := `
	INSERT INTO turns (session_id, question, intent, confidence, entities, reply_kind, reply_text, at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query,
		t.SessionID, t.Question, t.Intent, t.Confidence, t.Entities, t.ReplyKind, t.ReplyText, t.At.Unix())
	if err != nil {
		return fmt.Errorf("insert turn: %w", err)
	}
	return nil
}

// Recent returns up to limit turns, oldest first.
func (r *SQLiteRecorder) Recent(ctx context.Context, limit int) ([]Turn, error) {
	if r == nil {
		return nil, nil
	}
	if limit <= 0 {
		limit = 500
	}

	query := `
	SELECT session_id, question, intent, confidence, entities, reply_kind, reply_text, at
	FROM (
		SELECT * FROM turns ORDER BY at DESC, id DESC LIMIT ?
	) ORDER BY at ASC, id ASC`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("query turns: %w", err)
	}
	defer rows.Close()

	var turns []Turn
	for rows.Next() {
		var t Turn
		var intent, entities sql.NullString
		var confidence sql.NullFloat64
		var at int64

		err := rows.Scan(&t.SessionID, &t.Question, &intent, &confidence, &entities, &t.ReplyKind, &t.ReplyText, &at)
		if err != nil {
			return nil, fmt.Errorf("scan turn row: %w", err)
		}

		t.Intent = intent.String
		t.Confidence = confidence.Float64
		t.Entities = entities.String
		t.At = time.Unix(at, 0).UTC()
		turns = append(turns, t)
	}
	return turns, rows.Err()
}

// Close releases the database handle.
func (r *SQLiteRecorder) Close() error {
	if r == nil {
		return nil
	}
	return r.db.Close()
}
