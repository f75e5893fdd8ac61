package fsx

import (
	"context"
	"errors"
	"io"
)

// ErrNotFound is returned when the requested object does not exist in the
// backing store. Callers rely on it to drive legacy-key fallback logic.
var ErrNotFound = errors.New("fsx: object not found")

// FileReader is the read-only subset of FileSystem.
type FileReader interface {
	ReadFile(ctx context.Context, path string) ([]byte, error)
}

// FileSystem abstracts an object store (S3, GCS, local disk).
type FileSystem interface {
	FileReader

	// WriteFile stores the full contents at path, overwriting any existing
	// object, and returns the effective object key. Implementations may root
	// writes under a base prefix; the returned key is the one a later
	// explicit-bucket read resolves, so callers must persist it, not path.
	WriteFile(ctx context.Context, path string, data []byte) (string, error)

	// WriteFileStream stores streamed contents at path and returns the
	// effective object key.
	WriteFileStream(ctx context.Context, path string, r io.Reader) (string, error)

	// DeleteFile removes the object at path. Deleting a missing object is not an error.
	DeleteFile(ctx context.Context, path string) error

	// Join builds a storage path from segments using the store's separator.
	Join(parts ...string) string
}

// BucketFileSystem extends FileSystem with explicit-bucket reads, needed by
// callers that must resolve records written under historical bucket layouts.
type BucketFileSystem interface {
	FileSystem

	// ReadFileFromBucket reads an object from a specific bucket, bypassing
	// the default bucket and base prefix.
	ReadFileFromBucket(ctx context.Context, bucket, path string) ([]byte, error)

	// DefaultBucket returns the bucket new objects are written to.
	DefaultBucket() string
}
