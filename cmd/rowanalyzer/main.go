// Command rowanalyzer runs the bulk twelve-tone combinatoriality analysis:
// it enumerates tone rows beginning on pitch class 0, detects the
// hexachordal, tetrachordal, and trichordal combinatorial transformations
// of each, and persists the results to the configured store.
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"rowcore/internal/blob"
	"rowcore/internal/config"
	"rowcore/internal/core"
	"rowcore/internal/infra/persistence/postgres"
)

var exitFunc = os.Exit

func main() {
	exitFunc(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("rowanalyzer", flag.ContinueOnError)
	limit := fs.Int("limit", 0, "analyze only the first N rows (0 = all 39916800)")
	batch := fs.Int("batch", 100, "records per insert transaction")
	workers := fs.Int("workers", 0, "analysis worker count (0 = GOMAXPROCS)")
	export := fs.String("export", "", "export analyzed rows as CSV to this blob key instead of storing")
	validate := fs.Bool("validate", false, "run the postgres connectivity check and exit")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if *validate {
		if cfg.Storage != config.StoragePostgres {
			fmt.Fprintln(os.Stderr, "validate requires ROWCORE_STORAGE_DRIVER=postgres")
			return 1
		}
		if err := postgres.Validate(ctx, cfg.Postgres, os.Stdout); err != nil {
			fmt.Fprintf(os.Stderr, "validate: %v\n", err)
			return 1
		}
		return 0
	}

	metrics := core.NewMetrics()
	if cfg.MetricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", metrics.Handler())
		srv := &http.Server{Addr: cfg.MetricsAddr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
		go func() {
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				fmt.Fprintf(os.Stderr, "metrics endpoint: %v\n", err)
			}
		}()
		defer func() { _ = srv.Close() }()
	}

	if *export != "" {
		bs, err := blob.Open(ctx, cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "open blob store: %v\n", err)
			return 1
		}
		svc := core.NewService(nil, metrics, os.Stdout)
		info, err := svc.ExportCSV(ctx, bs, *export, *limit)
		if err != nil {
			fmt.Fprintf(os.Stderr, "export: %v\n", err)
			return 1
		}
		fmt.Printf("exported %s (%d bytes)\n", info.Key, info.Size)
		return 0
	}

	store, err := core.OpenStore(ctx, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open store: %v\n", err)
		return 1
	}
	defer func() { _ = store.Close() }()

	svc := core.NewService(store, metrics, os.Stdout)
	summary, err := svc.Run(ctx, core.RunOptions{Limit: *limit, BatchSize: *batch, Workers: *workers})
	if err != nil {
		fmt.Fprintf(os.Stderr, "run: %v\n", err)
		return 1
	}
	fmt.Printf("stored %d rows in %d batches (%s)\n", summary.Rows, summary.Batches, summary.Elapsed.Round(time.Millisecond))
	return 0
}
