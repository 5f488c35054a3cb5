package leaderboard

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// SQLite is a file-backed Store shared by all sessions of a server.
type SQLite struct {
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS scores (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL,
	score INTEGER NOT NULL,
	destruction REAL NOT NULL,
	play_time REAL NOT NULL,
	recorded_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS scores_by_score ON scores(score DESC);
`

// OpenSQLite opens (creating if needed) the score database at path.
func OpenSQLite(path string) (*SQLite, error) {
	if path == "" {
		return nil, fmt.Errorf("leaderboard: empty db path")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("leaderboard: %w", err)
		}
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("leaderboard: init schema: %w", err)
	}

	return &SQLite{db: db}, nil
}

// Submit inserts the entry and computes its rank among all recorded
// scores. Ties rank by earlier submission.
func (s *SQLite) Submit(ctx context.Context, e Entry) (Result, error) {
	if e.RecordedAt.IsZero() {
		e.RecordedAt = time.Now()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Result{}, err
	}
	defer tx.Rollback()

	var better int
	if err := tx.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM scores WHERE score >= ?", e.Score,
	).Scan(&better); err != nil {
		return Result{}, err
	}

	if _, err := tx.ExecContext(ctx,
		"INSERT INTO scores(name, score, destruction, play_time, recorded_at) VALUES(?, ?, ?, ?, ?)",
		e.Name, e.Score, e.DestructionRate, e.PlayTime, e.RecordedAt.UTC().Format(time.RFC3339),
	); err != nil {
		return Result{}, err
	}
	if err := tx.Commit(); err != nil {
		return Result{}, err
	}

	return Result{Rank: better + 1, IsNewHighScore: better == 0}, nil
}

// Top returns the n best entries, best first.
func (s *SQLite) Top(ctx context.Context, n int) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT name, score, destruction, play_time, recorded_at FROM scores ORDER BY score DESC, id ASC LIMIT ?", n)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var e Entry
		var recorded string
		if err := rows.Scan(&e.Name, &e.Score, &e.DestructionRate, &e.PlayTime, &recorded); err != nil {
			return nil, err
		}
		if ts, err := time.Parse(time.RFC3339, recorded); err == nil {
			e.RecordedAt = ts
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// Close closes the underlying database.
func (s *SQLite) Close() error {
	return s.db.Close()
}
