package storage

import (
	"context"
	"fmt"
	"io"
	"iter"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// MinioStore implements ObjectStore using a MinIO (or any S3-compatible) backend.
type MinioStore struct {
	client  *minio.Client
	timeout time.Duration
}

// NewMinioStore creates a MinIO client for endpoint ("host:port"). Every call
// except reads of an open object stream is bounded by timeout; zero disables it.
// No network round trip happens here, so an unreachable store only shows up in
// the first request or health probe.
func NewMinioStore(endpoint, accessKey, secretKey string, useSSL bool, timeout time.Duration) (*MinioStore, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client: %w", err)
	}
	return &MinioStore{client: client, timeout: timeout}, nil
}

func (s *MinioStore) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.timeout)
}

// Put streams r to MinIO under key. size must be the exact byte count
// (pass -1 only if the size is genuinely unknown, MinIO will buffer it).
func (s *MinioStore) Put(ctx context.Context, bucket, key string, r io.Reader, size int64, contentType string) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	_, err := s.client.PutObject(ctx, bucket, key, r, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return fmt.Errorf("put object %q: %w", key, classify(err))
	}
	return nil
}

// Get opens the object and forces the first request so a missing key is
// reported here rather than on the first Read.
func (s *MinioStore) Get(ctx context.Context, bucket, key string) (io.ReadCloser, error) {
	obj, err := s.client.GetObject(ctx, bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("get object %q: %w", key, classify(err))
	}
	if _, err := obj.Stat(); err != nil {
		_ = obj.Close()
		return nil, fmt.Errorf("get object %q: %w", key, classify(err))
	}
	return obj, nil
}

// List enumerates keys with ListObjectsV2. Breaking out of the loop cancels
// the underlying listing goroutine.
func (s *MinioStore) List(ctx context.Context, bucket, prefix string) iter.Seq2[ObjectInfo, error] {
	return func(yield func(ObjectInfo, error) bool) {
		ctx, cancel := s.withTimeout(ctx)
		defer cancel()

		for obj := range s.client.ListObjects(ctx, bucket, minio.ListObjectsOptions{
			Prefix:    prefix,
			Recursive: true,
		}) {
			if obj.Err != nil {
				yield(ObjectInfo{}, fmt.Errorf("list objects in %q: %w", bucket, classify(obj.Err)))
				return
			}
			if !yield(toObjectInfo(obj), nil) {
				return
			}
		}
	}
}

// Remove deletes the object at key from bucket.
func (s *MinioStore) Remove(ctx context.Context, bucket, key string) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	if err := s.client.RemoveObject(ctx, bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("remove object %q: %w", key, classify(err))
	}
	return nil
}

func (s *MinioStore) Stat(ctx context.Context, bucket, key string) (ObjectInfo, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	obj, err := s.client.StatObject(ctx, bucket, key, minio.StatObjectOptions{})
	if err != nil {
		return ObjectInfo{}, fmt.Errorf("stat object %q: %w", key, classify(err))
	}
	return toObjectInfo(obj), nil
}

func (s *MinioStore) BucketExists(ctx context.Context, bucket string) (bool, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	exists, err := s.client.BucketExists(ctx, bucket)
	if err != nil {
		return false, fmt.Errorf("check bucket existence: %w", err)
	}
	return exists, nil
}

func (s *MinioStore) MakeBucket(ctx context.Context, bucket string) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	if err := s.client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("create bucket %q: %w", bucket, err)
	}
	return nil
}

func (s *MinioStore) ListBuckets(ctx context.Context) ([]BucketInfo, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	buckets, err := s.client.ListBuckets(ctx)
	if err != nil {
		return nil, fmt.Errorf("list buckets: %w", err)
	}

	out := make([]BucketInfo, 0, len(buckets))
	for _, b := range buckets {
		out = append(out, BucketInfo{Name: b.Name, CreatedAt: b.CreationDate})
	}
	return out, nil
}

func toObjectInfo(obj minio.ObjectInfo) ObjectInfo {
	return ObjectInfo{
		Key:          obj.Key,
		Size:         obj.Size,
		ContentType:  obj.ContentType,
		LastModified: obj.LastModified,
	}
}

// classify maps S3 error codes onto the package sentinels, keeping the
// original error text for operators.
func classify(err error) error {
	switch minio.ToErrorResponse(err).Code {
	case "NoSuchKey":
		return fmt.Errorf("%w: %v", ErrObjectNotFound, err)
	case "NoSuchBucket":
		return fmt.Errorf("%w: %v", ErrBucketNotFound, err)
	}
	return err
}
