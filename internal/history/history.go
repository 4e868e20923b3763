// Package history is an optional run-history store for the parahpf CLI
// (SPEC_FULL.md §2.7), backed by modernc.org/sqlite - a pure Go driver, so
// the CLI stays a single static binary. Scaled down from the retrieved
// logistics-platform pack's history-svc repository (a Calculation record
// persisted via parameterized INSERT/SELECT over database/sql) from
// Postgres/pgx down to a single local sqlite file and a single Run record.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	run_id TEXT NOT NULL,
	source TEXT NOT NULL,
	num_nodes INTEGER NOT NULL,
	num_arcs INTEGER NOT NULL,
	lambda_low REAL NOT NULL,
	lambda_high REAL NOT NULL,
	breakpoints INTEGER NOT NULL,
	read_seconds REAL NOT NULL,
	init_seconds REAL NOT NULL,
	solve_seconds REAL NOT NULL,
	error TEXT,
	created_at DATETIME NOT NULL
)`

// Run is one persisted solve invocation.
type Run struct {
	ID                                      int64
	RunID, Source                           string
	NumNodes, NumArcs                       int
	LambdaLow, LambdaHigh                   float64
	Breakpoints                             int
	ReadSeconds, InitSeconds, SolveSeconds  float64
	Error                                   string
	CreatedAt                               time.Time
}

// Store wraps a sqlite-backed *sql.DB.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the sqlite file at path and ensures the
// schema exists.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening history store %s: %w", path, err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating history schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database handle.
func (s *Store) Close() error { return s.db.Close() }

// Record inserts one Run. CreatedAt is stamped by the caller.
func (s *Store) Record(ctx context.Context, r *Run) error {
	const query = `
		INSERT INTO runs (
			run_id, source, num_nodes, num_arcs, lambda_low, lambda_high,
			breakpoints, read_seconds, init_seconds, solve_seconds, error, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := s.db.ExecContext(ctx, query,
		r.RunID, r.Source, r.NumNodes, r.NumArcs, r.LambdaLow, r.LambdaHigh,
		r.Breakpoints, r.ReadSeconds, r.InitSeconds, r.SolveSeconds, r.Error, r.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("recording run: %w", err)
	}
	return nil
}

// Recent returns the most recent n runs, newest first.
func (s *Store) Recent(ctx context.Context, n int) ([]Run, error) {
	const query = `
		SELECT id, run_id, source, num_nodes, num_arcs, lambda_low, lambda_high,
		       breakpoints, read_seconds, init_seconds, solve_seconds,
		       COALESCE(error, ''), created_at
		FROM runs ORDER BY id DESC LIMIT ?
	`
	rows, err := s.db.QueryContext(ctx, query, n)
	if err != nil {
		return nil, fmt.Errorf("querying recent runs: %w", err)
	}
	defer rows.Close()

	var out []Run
	for rows.Next() {
		var r Run
		if err := rows.Scan(
			&r.ID, &r.RunID, &r.Source, &r.NumNodes, &r.NumArcs, &r.LambdaLow, &r.LambdaHigh,
			&r.Breakpoints, &r.ReadSeconds, &r.InitSeconds, &r.SolveSeconds, &r.Error, &r.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning run row: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
