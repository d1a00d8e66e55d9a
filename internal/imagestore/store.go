// Package imagestore keeps employee photos in write-once object storage.
package imagestore

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/Behnamfe76/directory-console/internal/config"
)

// Driver identifies a storage backend.
type Driver string

const (
	DriverMemory Driver = "memory"
	DriverS3     Driver = "s3"
)

// ErrExists is returned when a key has already been written.
var ErrExists = errors.New("object already exists")

// Store is a create-only object store.
type Store interface {
	Driver() Driver
	Put(ctx context.Context, key string, r io.Reader, contentType string) error
}

// Open selects a Store implementation from configuration.
func Open(ctx context.Context, cfg config.ImageConfig) (Store, error) {
	switch Driver(cfg.Driver) {
	case DriverMemory, "":
		return NewMemory(), nil
	case DriverS3:
		return NewS3(ctx, S3Config{
			Bucket:    cfg.S3Bucket,
			Region:    cfg.S3Region,
			Endpoint:  cfg.S3Endpoint,
			PathStyle: cfg.S3PathStyle,
		})
	default:
		return nil, fmt.Errorf("unknown image driver %s", cfg.Driver)
	}
}
