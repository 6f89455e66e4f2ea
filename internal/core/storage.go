// Package core wires configuration, persistence, metrics, and the analysis
// engine into the bulk tone-row driver.
package core

import (
	"context"
	"fmt"

	"rowcore/internal/analysis"
	"rowcore/internal/config"
	"rowcore/internal/infra/persistence/memory"
	"rowcore/internal/infra/persistence/postgres"
	"rowcore/internal/infra/persistence/sqlite"
)

// OpenStore selects an analysis store from the loaded configuration.
func OpenStore(ctx context.Context, cfg config.Config) (analysis.Store, error) {
	switch cfg.Storage {
	case config.StorageMemory:
		return memory.NewStore(), nil
	case config.StorageSQLite:
		return sqlite.NewStore(cfg.SQLitePath)
	case config.StoragePostgres:
		return postgres.NewStore(ctx, cfg.Postgres.DSN())
	default:
		return nil, fmt.Errorf("unknown storage driver %s", cfg.Storage)
	}
}
