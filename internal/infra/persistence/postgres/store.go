// Package postgres provides a PostgreSQL-backed analysis store plus the
// connectivity validator run before long bulk analyses.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	"rowcore/internal/analysis"

	_ "github.com/jackc/pgx/v5/stdlib" // register pgx as a database/sql driver
)

// Compile-time contract assertion.
var _ analysis.Store = (*Store)(nil)

const defaultDriver = "pgx"

var (
	sqlOpen = sql.Open
	openMu  sync.Mutex
)

// Store writes analysis records to a PostgreSQL table.
type Store struct {
	db *sql.DB
}

// NewStore opens a connection for the given DSN, pings it, and ensures the
// schema exists.
func NewStore(ctx context.Context, dsn string) (*Store, error) {
	openMu.Lock()
	db, err := sqlOpen(defaultDriver, dsn)
	openMu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	s := &Store{db: db}
	if err := s.EnsureSchema(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// EnsureSchema creates the combinatorials table when missing.
func (s *Store) EnsureSchema(ctx context.Context) error {
	ddl := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
		tone_row TEXT PRIMARY KEY,
		hexachordal_combinatorials TEXT NOT NULL,
		tetrachordal_combinatorials TEXT NOT NULL,
		trichordal_combinatorials TEXT NOT NULL
	)`, analysis.TableName)
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create %s: %w", analysis.TableName, err)
	}
	return nil
}

// InsertBatch writes the records inside a single transaction.
func (s *Store) InsertBatch(ctx context.Context, records []analysis.Record) error {
	if len(records) == 0 {
		return nil
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()
	stmt, err := tx.PrepareContext(ctx, fmt.Sprintf(
		`INSERT INTO %s (tone_row, hexachordal_combinatorials, tetrachordal_combinatorials, trichordal_combinatorials) VALUES ($1, $2, $3, $4)`,
		analysis.TableName))
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()
	for _, rec := range records {
		if _, err := stmt.ExecContext(ctx, rec.PrimeRow, rec.Hexachordal, rec.Tetrachordal, rec.Trichordal); err != nil {
			return fmt.Errorf("insert %q: %w", rec.PrimeRow, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	committed = true
	return nil
}

// Count reports the number of stored records.
func (s *Store) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := s.db.QueryRowContext(ctx, fmt.Sprintf(`SELECT COUNT(*) FROM %s`, analysis.TableName)).Scan(&n); err != nil {
		return 0, fmt.Errorf("count: %w", err)
	}
	return n, nil
}

// Close releases the database handle.
func (s *Store) Close() error { return s.db.Close() }

// DB exposes the underlying sql.DB for integration testing hooks.
func (s *Store) DB() *sql.DB { return s.db }

// OverrideSQLOpen swaps the sqlOpen function for tests and returns a
// restore function.
func OverrideSQLOpen(fn func(driverName, dataSourceName string) (*sql.DB, error)) func() {
	openMu.Lock()
	defer openMu.Unlock()
	prev := sqlOpen
	sqlOpen = fn
	return func() {
		openMu.Lock()
		defer openMu.Unlock()
		sqlOpen = prev
	}
}
