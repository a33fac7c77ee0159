// Package blobstore provides storage for opaque cached artifacts, such as
// serialized term-document matrices.
//
// Artifacts are small enough to be read and written whole, so the interface
// is deliberately coarse: Get returns the full payload, Put replaces it
// atomically. Implementations must be safe for concurrent use.
//
// # Built-in Implementations
//
//   - Local: local filesystem with atomic renames
//   - Memory: in-memory store for tests
//   - s3.Store: Amazon S3 with multipart uploads
//   - minio.Store: MinIO and other S3-compatible storage
package blobstore

import (
	"context"
	"errors"
)

// ErrNotFound is returned when an artifact does not exist.
//
// Implementations must return an error satisfying
// errors.Is(err, ErrNotFound) for missing artifacts, so callers can treat a
// miss as "recompute" rather than a failure.
var ErrNotFound = errors.New("blobstore: not found")

// Store reads and writes named artifacts.
type Store interface {
	// Get returns the full contents of the named artifact.
	Get(ctx context.Context, name string) ([]byte, error)
	// Put atomically writes the named artifact.
	Put(ctx context.Context, name string, data []byte) error
	// Delete removes the named artifact. Deleting a missing artifact is
	// not an error.
	Delete(ctx context.Context, name string) error
	// List returns the names of all artifacts with the given prefix,
	// sorted lexicographically.
	List(ctx context.Context, prefix string) ([]string, error)
}
