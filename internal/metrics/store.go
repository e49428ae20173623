package metrics

import (
	"context"
	"io"
	"iter"
	"time"

	"github.com/umangsailor/bucket-gateway/internal/storage"
)

// otherBucket is the bytes-written label for every bucket except the default.
const otherBucket = "other"

// instrumentedStore decorates an ObjectStore with call counters and latency.
type instrumentedStore struct {
	next          storage.ObjectStore
	m             *Metrics
	defaultBucket string
}

// InstrumentStore wraps store so every call is recorded in m. Bytes written
// are labelled with defaultBucket or "other", keeping the series count fixed
// whatever bucket names clients send.
func InstrumentStore(store storage.ObjectStore, m *Metrics, defaultBucket string) storage.ObjectStore {
	return &instrumentedStore{next: store, m: m, defaultBucket: defaultBucket}
}

func (s *instrumentedStore) bucketLabel(bucket string) string {
	if bucket == s.defaultBucket {
		return bucket
	}
	return otherBucket
}

func (s *instrumentedStore) Put(ctx context.Context, bucket, key string, r io.Reader, size int64, contentType string) error {
	start := time.Now()
	err := s.next.Put(ctx, bucket, key, r, size, contentType)
	s.m.observeStore("put", start, err)
	if err == nil && size > 0 {
		s.m.storeBytes.WithLabelValues(s.bucketLabel(bucket)).Add(float64(size))
	}
	return err
}

func (s *instrumentedStore) Get(ctx context.Context, bucket, key string) (io.ReadCloser, error) {
	start := time.Now()
	rc, err := s.next.Get(ctx, bucket, key)
	s.m.observeStore("get", start, err)
	return rc, err
}

// List records one observation per enumeration, not per entry.
func (s *instrumentedStore) List(ctx context.Context, bucket, prefix string) iter.Seq2[storage.ObjectInfo, error] {
	return func(yield func(storage.ObjectInfo, error) bool) {
		start := time.Now()
		var failed error
		defer func() { s.m.observeStore("list", start, failed) }()

		for info, err := range s.next.List(ctx, bucket, prefix) {
			if err != nil {
				failed = err
			}
			if !yield(info, err) {
				return
			}
		}
	}
}

func (s *instrumentedStore) Remove(ctx context.Context, bucket, key string) error {
	start := time.Now()
	err := s.next.Remove(ctx, bucket, key)
	s.m.observeStore("remove", start, err)
	return err
}

func (s *instrumentedStore) Stat(ctx context.Context, bucket, key string) (storage.ObjectInfo, error) {
	start := time.Now()
	info, err := s.next.Stat(ctx, bucket, key)
	s.m.observeStore("stat", start, err)
	return info, err
}

func (s *instrumentedStore) BucketExists(ctx context.Context, bucket string) (bool, error) {
	start := time.Now()
	ok, err := s.next.BucketExists(ctx, bucket)
	s.m.observeStore("bucket_exists", start, err)
	return ok, err
}

func (s *instrumentedStore) MakeBucket(ctx context.Context, bucket string) error {
	start := time.Now()
	err := s.next.MakeBucket(ctx, bucket)
	s.m.observeStore("make_bucket", start, err)
	return err
}

func (s *instrumentedStore) ListBuckets(ctx context.Context) ([]storage.BucketInfo, error) {
	start := time.Now()
	buckets, err := s.next.ListBuckets(ctx)
	s.m.observeStore("list_buckets", start, err)
	return buckets, err
}
