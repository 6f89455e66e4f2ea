package memory

import (
	"context"
	"strings"
	"testing"

	"rowcore/internal/analysis"
)

func record(primeRow string) analysis.Record {
	return analysis.Record{
		PrimeRow:    primeRow,
		Hexachordal: "P6",
	}
}

func TestInsertBatchAndCount(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	if err := s.EnsureSchema(ctx); err != nil {
		t.Fatalf("ensure schema: %v", err)
	}
	batch := []analysis.Record{record("0 1 2"), record("0 2 1")}
	if err := s.InsertBatch(ctx, batch); err != nil {
		t.Fatalf("insert: %v", err)
	}
	n, err := s.Count(ctx)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 2 {
		t.Fatalf("count = %d, want 2", n)
	}
	rec, ok := s.Get("0 2 1")
	if !ok || rec.Hexachordal != "P6" {
		t.Fatalf("get returned %+v, %v", rec, ok)
	}
}

func TestInsertBatchRejectsDuplicatePrimeRow(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	if err := s.InsertBatch(ctx, []analysis.Record{record("0 1 2")}); err != nil {
		t.Fatalf("first insert: %v", err)
	}
	err := s.InsertBatch(ctx, []analysis.Record{record("0 1 2")})
	if err == nil || !strings.Contains(err.Error(), "duplicate prime row") {
		t.Fatalf("expected duplicate error, got %v", err)
	}
}

func TestRecordsSortedByPrimeRow(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	if err := s.InsertBatch(ctx, []analysis.Record{record("0 2 1"), record("0 1 2")}); err != nil {
		t.Fatalf("insert: %v", err)
	}
	got := s.Records()
	if len(got) != 2 || got[0].PrimeRow != "0 1 2" || got[1].PrimeRow != "0 2 1" {
		t.Fatalf("records %+v", got)
	}
}
