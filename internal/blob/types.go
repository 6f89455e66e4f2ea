// Package blob abstracts the object storage backends used for exported
// analysis artifacts (CSV result sets).
package blob

import (
	"context"
	"errors"
	"io"
	"time"
)

// Driver identifies a blob backend driver.
type Driver string

// Supported drivers.
const (
	// DriverFilesystem is the local filesystem driver.
	DriverFilesystem Driver = "fs"
	// DriverS3 is the S3-compatible driver.
	DriverS3 Driver = "s3"
	// DriverMemory is the in-memory test driver.
	DriverMemory Driver = "memory"
)

// ErrNotFound reports a missing blob key.
var ErrNotFound = errors.New("blob not found")

// PutOptions configures a blob write.
type PutOptions struct {
	ContentType string
}

// Info describes stored blob metadata.
type Info struct {
	Key         string
	Size        int64
	ContentType string
	UpdatedAt   time.Time
}

// Store is the interface for blob storage backends. Put fails when the key
// already exists; exports never overwrite.
type Store interface {
	Driver() Driver
	Put(ctx context.Context, key string, r io.Reader, opts PutOptions) (Info, error)
	Get(ctx context.Context, key string) (Info, io.ReadCloser, error)
	Head(ctx context.Context, key string) (Info, error)
	List(ctx context.Context, prefix string) ([]Info, error)
	Delete(ctx context.Context, key string) error
}
