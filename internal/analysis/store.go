package analysis

import "context"

// TableName is the relational table analysis records are written to.
const TableName = "twelvetone_combinatorials"

// Store is the persistence contract consumed by the bulk driver. A store
// keeps one row per analyzed tone row, keyed by the prime-row string.
type Store interface {
	// EnsureSchema creates the combinatorials table when missing.
	EnsureSchema(ctx context.Context) error
	// InsertBatch writes a batch of records atomically.
	InsertBatch(ctx context.Context, records []Record) error
	// Count reports the number of stored records.
	Count(ctx context.Context) (int64, error)
	// Close releases the underlying connection resources.
	Close() error
}
