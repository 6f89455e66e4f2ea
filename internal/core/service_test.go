package core

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"io"
	"strings"
	"testing"

	"rowcore/internal/analysis"
	"rowcore/internal/blob"
	"rowcore/internal/infra/persistence/memory"
)

func TestRunBatchesAndCounts(t *testing.T) {
	store := memory.NewStore()
	svc := NewService(store, nil, io.Discard)

	summary, err := svc.Run(context.Background(), RunOptions{Limit: 250, BatchSize: 100, Workers: 4})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if summary.Rows != 250 {
		t.Fatalf("rows = %d, want 250", summary.Rows)
	}
	if summary.Batches != 3 {
		t.Fatalf("batches = %d, want 3", summary.Batches)
	}
	n, err := store.Count(context.Background())
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 250 {
		t.Fatalf("stored %d records, want 250", n)
	}
	rec, ok := store.Get("0 1 2 3 4 5 6 7 8 9 10 11")
	if !ok {
		t.Fatalf("identity row missing from store")
	}
	if rec.Hexachordal != "I11 P6 RI5" {
		t.Fatalf("identity hexachordal %q", rec.Hexachordal)
	}
}

func TestRunProgressReporting(t *testing.T) {
	store := memory.NewStore()
	var out bytes.Buffer
	svc := NewService(store, NewMetrics(), &out)

	summary, err := svc.Run(context.Background(), RunOptions{Limit: 300, BatchSize: 100, Workers: 2, ProgressEvery: 100})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if summary.Rows != 300 {
		t.Fatalf("rows = %d, want 300", summary.Rows)
	}
	if !strings.Contains(out.String(), "(100/300 rows)") {
		t.Fatalf("missing first progress line in %q", out.String())
	}
	if !strings.Contains(out.String(), "done: 300 rows in 3 batches") {
		t.Fatalf("missing completion line in %q", out.String())
	}
}

// failingStore aborts the first insert to exercise the error path.
type failingStore struct{ err error }

func (f *failingStore) EnsureSchema(context.Context) error                  { return nil }
func (f *failingStore) InsertBatch(context.Context, []analysis.Record) error { return f.err }
func (f *failingStore) Count(context.Context) (int64, error)                { return 0, nil }
func (f *failingStore) Close() error                                        { return nil }

func TestRunAbortsOnStoreError(t *testing.T) {
	boom := errors.New("disk full")
	svc := NewService(&failingStore{err: boom}, nil, io.Discard)

	_, err := svc.Run(context.Background(), RunOptions{Limit: 50, BatchSize: 10, Workers: 2})
	if !errors.Is(err, boom) {
		t.Fatalf("expected store error, got %v", err)
	}
	if !strings.Contains(err.Error(), "store batch") {
		t.Fatalf("error %q missing batch context", err)
	}
}

// cancellingStore cancels the run's context from inside the first insert.
type cancellingStore struct {
	cancel context.CancelFunc
}

func (c *cancellingStore) EnsureSchema(context.Context) error { return nil }
func (c *cancellingStore) InsertBatch(ctx context.Context, _ []analysis.Record) error {
	c.cancel()
	<-ctx.Done()
	return ctx.Err()
}
func (c *cancellingStore) Count(context.Context) (int64, error) { return 0, nil }
func (c *cancellingStore) Close() error                         { return nil }

func TestRunStopsOnCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	svc := NewService(&cancellingStore{cancel: cancel}, nil, io.Discard)

	_, err := svc.Run(ctx, RunOptions{Limit: 1000, BatchSize: 10, Workers: 2})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestExportCSV(t *testing.T) {
	svc := NewService(memory.NewStore(), nil, io.Discard)
	bs := blob.NewMemory()

	info, err := svc.ExportCSV(context.Background(), bs, "exports/first3.csv", 3)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if info.ContentType != "text/csv" {
		t.Fatalf("content type %q", info.ContentType)
	}

	_, rc, err := bs.Get(context.Background(), "exports/first3.csv")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer func() { _ = rc.Close() }()
	rows, err := csv.NewReader(rc).ReadAll()
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}
	if len(rows) != 4 {
		t.Fatalf("expected header plus 3 records, got %d rows", len(rows))
	}
	if rows[1][0] != "0 1 2 3 4 5 6 7 8 9 10 11" {
		t.Fatalf("first exported prime row %q", rows[1][0])
	}
	if rows[2][0] != "0 1 2 3 4 5 6 7 8 9 11 10" {
		t.Fatalf("second exported prime row %q", rows[2][0])
	}
}

func TestExportCSVRequiresPositiveLimit(t *testing.T) {
	svc := NewService(memory.NewStore(), nil, io.Discard)
	if _, err := svc.ExportCSV(context.Background(), blob.NewMemory(), "exports/none.csv", 0); err == nil {
		t.Fatalf("expected error for non-positive limit")
	}
}
