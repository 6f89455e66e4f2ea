package core

import (
	"context"
	"fmt"
	"io"
	"runtime"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"rowcore/internal/analysis"
	"rowcore/internal/blob"
	"rowcore/pkg/row"
)

// Service is the bulk driver: it enumerates tone rows, analyzes them on a
// worker pool, and commits the resulting records to the analysis store in
// batches. Row analyses are independent and side-effect-free, so no
// ordering is promised between workers.
type Service struct {
	store    analysis.Store
	metrics  *Metrics
	progress io.Writer
}

// NewService wires the driver. metrics may be nil; progress may be nil to
// silence reporting.
func NewService(store analysis.Store, metrics *Metrics, progress io.Writer) *Service {
	if progress == nil {
		progress = io.Discard
	}
	return &Service{store: store, metrics: metrics, progress: progress}
}

// RunOptions bound a bulk run.
type RunOptions struct {
	// Limit caps the number of rows analyzed; 0 means the full 11! set.
	Limit int
	// BatchSize is the number of records per insert transaction (default 100).
	BatchSize int
	// Workers is the analysis pool size (default GOMAXPROCS).
	Workers int
	// ProgressEvery is the row interval between progress lines (default 100000).
	ProgressEvery int
}

func (o RunOptions) withDefaults() RunOptions {
	if o.Limit <= 0 || o.Limit > row.TotalRows {
		o.Limit = row.TotalRows
	}
	if o.BatchSize <= 0 {
		o.BatchSize = 100
	}
	if o.Workers <= 0 {
		o.Workers = runtime.GOMAXPROCS(0)
	}
	if o.ProgressEvery <= 0 {
		o.ProgressEvery = 100000
	}
	return o
}

// Summary reports what a bulk run accomplished.
type Summary struct {
	Rows    int64
	Batches int64
	Elapsed time.Duration
}

// Run executes the bulk analysis until the row limit is reached, the
// context is cancelled, or a storage error aborts the run.
func (s *Service) Run(ctx context.Context, opts RunOptions) (Summary, error) {
	opts = opts.withDefaults()
	start := time.Now()

	if err := s.store.EnsureSchema(ctx); err != nil {
		return Summary{}, err
	}

	g, gctx := errgroup.WithContext(ctx)
	rows := make(chan row.Row, opts.BatchSize)
	records := make(chan analysis.Record, opts.BatchSize)

	g.Go(func() error {
		defer close(rows)
		enum := row.NewEnumerator()
		for produced := 0; produced < opts.Limit; produced++ {
			r, ok := enum.Next()
			if !ok {
				return nil
			}
			select {
			case rows <- r:
			case <-gctx.Done():
				return gctx.Err()
			}
		}
		return nil
	})

	var workers sync.WaitGroup
	for i := 0; i < opts.Workers; i++ {
		workers.Add(1)
		g.Go(func() error {
			defer workers.Done()
			for r := range rows {
				tr, err := row.New(r)
				if err != nil {
					return fmt.Errorf("construct tone row %s: %w", r, err)
				}
				select {
				case records <- analysis.Analyze(tr):
				case <-gctx.Done():
					return gctx.Err()
				}
			}
			return nil
		})
	}
	go func() {
		workers.Wait()
		close(records)
	}()

	var summary Summary
	g.Go(func() error {
		batch := make([]analysis.Record, 0, opts.BatchSize)
		flush := func() error {
			if len(batch) == 0 {
				return nil
			}
			began := time.Now()
			if err := s.store.InsertBatch(gctx, batch); err != nil {
				s.metrics.observeInsertFailure()
				return fmt.Errorf("store batch: %w", err)
			}
			s.metrics.observeBatch(time.Since(began).Seconds())
			s.metrics.observeRows(len(batch))
			summary.Rows += int64(len(batch))
			summary.Batches++
			batch = batch[:0]
			return nil
		}
		nextReport := int64(opts.ProgressEvery)
		for rec := range records {
			batch = append(batch, rec)
			if len(batch) >= opts.BatchSize {
				if err := flush(); err != nil {
					return err
				}
				if summary.Rows >= nextReport {
					pct := float64(summary.Rows) / float64(opts.Limit) * 100
					fmt.Fprintf(s.progress, "progress: %.1f%% (%d/%d rows)\n", pct, summary.Rows, opts.Limit)
					nextReport += int64(opts.ProgressEvery)
				}
			}
		}
		return flush()
	})

	if err := g.Wait(); err != nil {
		return summary, err
	}
	summary.Elapsed = time.Since(start)
	fmt.Fprintf(s.progress, "done: %d rows in %d batches (%s)\n", summary.Rows, summary.Batches, summary.Elapsed.Round(time.Millisecond))
	return summary, nil
}

// ExportCSV analyzes the first limit rows in enumeration order and stores
// them as a CSV blob under key. Export runs serially; it is meant for
// bounded result sets, not the full enumeration.
func (s *Service) ExportCSV(ctx context.Context, bs blob.Store, key string, limit int) (blob.Info, error) {
	if limit <= 0 {
		return blob.Info{}, fmt.Errorf("export requires a positive row limit")
	}
	enum := row.NewEnumerator()
	recs := make([]analysis.Record, 0, limit)
	for len(recs) < limit {
		if err := ctx.Err(); err != nil {
			return blob.Info{}, err
		}
		r, ok := enum.Next()
		if !ok {
			break
		}
		tr, err := row.New(r)
		if err != nil {
			return blob.Info{}, fmt.Errorf("construct tone row %s: %w", r, err)
		}
		recs = append(recs, analysis.Analyze(tr))
	}
	return analysis.ExportCSV(ctx, bs, key, recs)
}
