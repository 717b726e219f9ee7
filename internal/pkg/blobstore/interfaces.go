// Package blobstore persists whole JSON documents keyed by feature name, the way the
// dashboard keeps one local-storage entry per screen.
package blobstore

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when no document is stored under the key
var ErrNotFound = errors.New("blob not found")

// BlobStore reads and writes whole documents. Writes replace the previous document.
type BlobStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, data []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}
