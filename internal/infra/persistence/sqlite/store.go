// Package sqlite provides an embedded SQLite-backed analysis store.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"rowcore/internal/analysis"

	_ "modernc.org/sqlite" // pure go sqlite driver
)

// Compile-time contract assertion.
var _ analysis.Store = (*Store)(nil)

// Store writes analysis records to a single SQLite table, one row per
// analyzed tone row.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore opens (creating if needed) the SQLite database at path and
// ensures the schema exists.
func NewStore(path string) (*Store, error) {
	if path == "" {
		path = "rowcore.db"
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil && !errors.Is(err, os.ErrExist) {
			return nil, fmt.Errorf("create dirs: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	s := &Store{db: db, path: path}
	if err := s.EnsureSchema(context.Background()); err != nil {
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
		`INSERT INTO %s (tone_row, hexachordal_combinatorials, tetrachordal_combinatorials, trichordal_combinatorials) VALUES (?, ?, ?, ?)`,
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

// Path returns the configured database path.
func (s *Store) Path() string { return s.path }
