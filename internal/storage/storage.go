// Package storage defines the interface for object storage operations.
// Swap implementations by changing the concrete type injected at startup;
// the MinIO implementation works with any S3-compatible provider.
package storage

import (
	"context"
	"errors"
	"io"
	"iter"
	"time"
)

// ErrBucketNotFound is returned when the addressed bucket does not exist.
var ErrBucketNotFound = errors.New("bucket not found")

// ErrObjectNotFound is returned when the addressed key does not exist.
var ErrObjectNotFound = errors.New("object not found")

// ObjectInfo describes a stored object as observed through the store API.
type ObjectInfo struct {
	Key          string
	Size         int64
	ContentType  string
	LastModified time.Time
}

// BucketInfo describes a bucket returned by ListBuckets.
type BucketInfo struct {
	Name      string
	CreatedAt time.Time
}

// ObjectStore is the capability every file service depends on.
type ObjectStore interface {
	// Put writes size bytes from r under bucket/key, replacing any existing object.
	Put(ctx context.Context, bucket, key string, r io.Reader, size int64, contentType string) error
	// Get opens a stream over the object's bytes. The caller must close it.
	Get(ctx context.Context, bucket, key string) (io.ReadCloser, error)
	// List lazily enumerates every key starting with prefix, recursively.
	// Iteration stops at the first error.
	List(ctx context.Context, bucket, prefix string) iter.Seq2[ObjectInfo, error]
	// Remove deletes bucket/key. Removing a missing key is not an error.
	Remove(ctx context.Context, bucket, key string) error
	// Stat returns metadata for bucket/key.
	Stat(ctx context.Context, bucket, key string) (ObjectInfo, error)
	BucketExists(ctx context.Context, bucket string) (bool, error)
	MakeBucket(ctx context.Context, bucket string) error
	ListBuckets(ctx context.Context) ([]BucketInfo, error)
}

// IsNotFound reports whether err means the bucket or the object is missing.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrObjectNotFound) || errors.Is(err, ErrBucketNotFound)
}
