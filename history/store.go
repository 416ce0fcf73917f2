// Package history persists completed pricing runs to an embedded SQLite
// database so past valuations can be reviewed from the CLI.
package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver
)

// Run is one recorded pricing run.
type Run struct {
	ID          string
	CreatedAt   time.Time
	FaceValue   float64
	CouponRate  float64
	Years       int
	Frequency   int
	Trials      int
	StaticPrice float64
	MeanPrice   float64
	StdDev      float64
}

// Store wraps the SQL handle for easier swapping/testing.
type Store struct {
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id           TEXT PRIMARY KEY,
	created_at   TIMESTAMP NOT NULL,
	face_value   REAL NOT NULL,
	coupon_rate  REAL NOT NULL,
	years        INTEGER NOT NULL,
	frequency    INTEGER NOT NULL,
	trials       INTEGER NOT NULL,
	static_price REAL NOT NULL,
	mean_price   REAL NOT NULL,
	std_dev      REAL NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_runs_created_at ON runs(created_at DESC);
`

// Open opens (and creates if needed) the run store at path.
func Open(path string) (*Store, error) {
	if path == "" {
		return nil, errors.New("history: database path is empty")
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("history: create db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("history: open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1) // SQLite prefers single writer.
	db.SetConnMaxLifetime(time.Hour)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("history: create schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Record inserts one completed run.
func (s *Store) Record(ctx context.Context, r Run) error {
	if r.ID == "" {
		return errors.New("history: run id is empty")
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs
			(id, created_at, face_value, coupon_rate, years, frequency, trials, static_price, mean_price, std_dev)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.CreatedAt, r.FaceValue, r.CouponRate, r.Years, r.Frequency,
		r.Trials, r.StaticPrice, r.MeanPrice, r.StdDev,
	)
	if err != nil {
		return fmt.Errorf("history: insert run %s: %w", r.ID, err)
	}
	return nil
}

// Recent returns up to n runs, newest first.
func (s *Store) Recent(ctx context.Context, n int) ([]Run, error) {
	if n <= 0 {
		n = 10
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, created_at, face_value, coupon_rate, years, frequency, trials, static_price, mean_price, std_dev
		 FROM runs ORDER BY created_at DESC LIMIT ?`, n)
	if err != nil {
		return nil, fmt.Errorf("history: query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		if err := rows.Scan(&r.ID, &r.CreatedAt, &r.FaceValue, &r.CouponRate,
			&r.Years, &r.Frequency, &r.Trials, &r.StaticPrice, &r.MeanPrice, &r.StdDev); err != nil {
			return nil, fmt.Errorf("history: scan run: %w", err)
		}
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("history: iterate runs: %w", err)
	}
	return runs, nil
}

// Close releases the underlying DB handle.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}
