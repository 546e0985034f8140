package storage

import (
	"context"
	"io"
)

// BlobStore persists opaque blobs under relative paths.
type BlobStore interface {
	// Save writes content under path, creating parent directories as needed.
	Save(ctx context.Context, path string, content io.Reader) error

	// Open returns a reader for the blob at path.
	Open(ctx context.Context, path string) (io.ReadCloser, error)

	// Remove deletes the blob at path. Removing a missing blob is not an error.
	Remove(ctx context.Context, path string) error
}
