package storage

import (
	"context"
	"io"
)

// Storage abstracts whole-file reads and writes of PNG files.
type Storage interface {
	Open(ctx context.Context, path string) (io.ReadCloser, error)
	Create(ctx context.Context, path string) (io.WriteCloser, error)
}
