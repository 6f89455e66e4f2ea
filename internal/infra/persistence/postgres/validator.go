package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"net"
	"time"

	"rowcore/internal/config"
)

const reachabilityTimeout = 5 * time.Second

// Validate runs the pre-flight connectivity checks for a postgres target:
// TCP reachability of the server, an authenticated connection, and a
// scratch-table write round-trip. Progress is reported line by line on out.
// The first failing check aborts with its error.
func Validate(ctx context.Context, cfg config.Postgres, out io.Writer) error {
	fmt.Fprintf(out, "database connectivity check: %s:%s/%s\n", cfg.Host, cfg.Port, cfg.Database)

	if err := checkReachable(cfg); err != nil {
		fmt.Fprintln(out, "[FAIL] server unreachable")
		return err
	}
	fmt.Fprintln(out, "[ OK ] server reachable")

	openMu.Lock()
	db, err := sqlOpen(defaultDriver, cfg.DSN())
	openMu.Unlock()
	if err != nil {
		return fmt.Errorf("open postgres: %w", err)
	}
	defer func() { _ = db.Close() }()
	if err := db.PingContext(ctx); err != nil {
		fmt.Fprintln(out, "[FAIL] connection refused")
		return fmt.Errorf("connect %s: %w", cfg.Host, err)
	}
	fmt.Fprintln(out, "[ OK ] connection established")

	if err := checkWritable(ctx, db); err != nil {
		fmt.Fprintln(out, "[FAIL] write test")
		return err
	}
	fmt.Fprintln(out, "[ OK ] write round-trip")
	return nil
}

// checkReachable dials the configured host and port with a short timeout.
func checkReachable(cfg config.Postgres) error {
	conn, err := net.DialTimeout("tcp", net.JoinHostPort(cfg.Host, cfg.Port), reachabilityTimeout)
	if err != nil {
		return fmt.Errorf("reach %s:%s: %w", cfg.Host, cfg.Port, err)
	}
	return conn.Close()
}

// checkWritable creates a scratch table, writes one row, reads it back, and
// drops the table again.
func checkWritable(ctx context.Context, db *sql.DB) error {
	const scratch = "rowcore_connectivity_check"
	if _, err := db.ExecContext(ctx, fmt.Sprintf(`DROP TABLE IF EXISTS %s`, scratch)); err != nil {
		return fmt.Errorf("drop scratch table: %w", err)
	}
	if _, err := db.ExecContext(ctx, fmt.Sprintf(`CREATE TABLE %s (id INT PRIMARY KEY, note TEXT)`, scratch)); err != nil {
		return fmt.Errorf("create scratch table: %w", err)
	}
	defer func() { _, _ = db.ExecContext(ctx, fmt.Sprintf(`DROP TABLE IF EXISTS %s`, scratch)) }()
	if _, err := db.ExecContext(ctx, fmt.Sprintf(`INSERT INTO %s (id, note) VALUES ($1, $2)`, scratch), 1, "probe"); err != nil {
		return fmt.Errorf("insert probe row: %w", err)
	}
	var note string
	if err := db.QueryRowContext(ctx, fmt.Sprintf(`SELECT note FROM %s WHERE id = $1`, scratch), 1).Scan(&note); err != nil {
		return fmt.Errorf("read probe row: %w", err)
	}
	if note != "probe" {
		return fmt.Errorf("probe row mismatch: %q", note)
	}
	return nil
}
