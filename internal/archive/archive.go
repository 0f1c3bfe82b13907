// Package archive copies candidate report runs into PostgreSQL.
//
// Each run is written inside one transaction with the COPY protocol and
// tagged with the run's UUID, so a run is either fully archived or absent.
package archive

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/JonMunkholm/candidates/internal/core"
	"github.com/JonMunkholm/candidates/internal/logging"
)

// Columns are the archive table columns filled by COPY, in row order.
var Columns = []string{"run_id", "position", "name", "job", "age", "region"}

// beginner is satisfied by *pgxpool.Pool and *pgx.Conn.
type beginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// Store archives runs into a single table.
//
// A Store built by New does not touch the database until the first
// Archive call.
type Store struct {
	db      beginner
	pool    *pgxpool.Pool // nil until connected, or when built over another beginner
	connect func(ctx context.Context) (beginner, error)
	table   string
	timeout time.Duration
}

// Options configures a Store.
type Options struct {
	URL      string
	MaxConns int
	Table    string
	Timeout  time.Duration
}

// New validates the database URL and returns a Store that connects on
// first use.
func New(opts Options) (*Store, error) {
	poolConfig, err := pgxpool.ParseConfig(opts.URL)
	if err != nil {
		return nil, fmt.Errorf("parse database URL: %w", err)
	}
	poolConfig.MaxConns = int32(opts.MaxConns)

	s := newStore(nil, opts.Table, opts.Timeout)
	s.connect = func(ctx context.Context) (beginner, error) {
		pool, err := open(ctx, poolConfig)
		if err != nil {
			return nil, err
		}
		s.pool = pool
		return pool, nil
	}
	return s, nil
}

// open connects to the database and verifies the connection.
func open(ctx context.Context, poolConfig *pgxpool.Config) (*pgxpool.Pool, error) {
	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return pool, nil
}

func newStore(db beginner, table string, timeout time.Duration) *Store {
	return &Store{db: db, table: table, timeout: timeout}
}

// Close releases the connection pool, if one was opened.
func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// ensureDB opens the pool on first use.
func (s *Store) ensureDB(ctx context.Context) error {
	if s.db != nil {
		return nil
	}
	if s.connect == nil {
		return errors.New("archive store has no database")
	}

	db, err := s.connect(ctx)
	if err != nil {
		return err
	}
	s.db = db
	return nil
}

// createTableSQL returns the DDL for the archive table.
func createTableSQL(table string) string {
	return fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
	run_id      uuid        NOT NULL,
	position    integer     NOT NULL,
	name        text        NOT NULL,
	job         text        NOT NULL,
	age         text        NOT NULL,
	region      text        NOT NULL,
	archived_at timestamptz NOT NULL DEFAULT now(),
	PRIMARY KEY (run_id, position)
)`, pgx.Identifier{table}.Sanitize())
}

// Archive writes records, in input order, under runID. Position is the
// 1-based index of the record in the loaded file. Returns rows copied.
func (s *Store) Archive(ctx context.Context, runID string, records []core.Record) (int64, error) {
	id, err := uuid.Parse(runID)
	if err != nil {
		return 0, fmt.Errorf("run id %q: %w", runID, err)
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	if err := s.ensureDB(ctx); err != nil {
		return 0, err
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx) // No-op if already committed

	if _, err := tx.Exec(ctx, createTableSQL(s.table)); err != nil {
		return 0, fmt.Errorf("create archive table: %w", err)
	}

	pgID := pgtype.UUID{Bytes: id, Valid: true}
	n, err := tx.CopyFrom(ctx, pgx.Identifier{s.table}, Columns,
		pgx.CopyFromSlice(len(records), func(i int) ([]any, error) {
			r := records[i]
			return []any{pgID, int32(i + 1), r.Name, r.Job, r.Age, r.Region}, nil
		}),
	)
	if err != nil {
		return 0, fmt.Errorf("copy candidates: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}

	logging.FromContext(ctx).Debug("archive committed", "table", s.table, "rows", n)

	return n, nil
}
