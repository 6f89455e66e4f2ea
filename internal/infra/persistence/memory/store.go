// Package memory provides an in-memory implementation of the analysis
// store used for tests and ephemeral runs.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"rowcore/internal/analysis"
)

// Compile-time contract assertion.
var _ analysis.Store = (*Store)(nil)

// Store keeps analysis records in a map keyed by prime-row string.
type Store struct {
	mu      sync.Mutex
	records map[string]analysis.Record
}

// NewStore returns an empty in-memory store.
func NewStore() *Store {
	return &Store{records: make(map[string]analysis.Record)}
}

// EnsureSchema is a no-op for the in-memory store.
func (s *Store) EnsureSchema(context.Context) error { return nil }

// InsertBatch stores the batch. Duplicate prime rows are rejected to mirror
// the relational primary-key constraint.
func (s *Store) InsertBatch(_ context.Context, records []analysis.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, rec := range records {
		if _, exists := s.records[rec.PrimeRow]; exists {
			return fmt.Errorf("duplicate prime row %q", rec.PrimeRow)
		}
		s.records[rec.PrimeRow] = rec
	}
	return nil
}

// Count reports the number of stored records.
func (s *Store) Count(context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return int64(len(s.records)), nil
}

// Close is a no-op.
func (s *Store) Close() error { return nil }

// Records returns a copy of all stored records sorted by prime row, for
// test inspection.
func (s *Store) Records() []analysis.Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]analysis.Record, 0, len(s.records))
	for _, rec := range s.records {
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PrimeRow < out[j].PrimeRow })
	return out
}

// Get looks up the record for a prime-row string.
func (s *Store) Get(primeRow string) (analysis.Record, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.records[primeRow]
	return rec, ok
}
