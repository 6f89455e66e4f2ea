package blob

import (
	"context"
	"fmt"

	"rowcore/internal/config"
)

// Open selects a Store implementation from the loaded configuration.
func Open(ctx context.Context, cfg config.Config) (Store, error) {
	switch cfg.Blob {
	case config.BlobFilesystem:
		return NewFilesystem(cfg.FSRoot)
	case config.BlobS3:
		return NewS3(ctx, cfg.S3)
	case config.BlobMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("unknown blob driver %s", cfg.Blob)
	}
}
