package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"iter"
	"sort"
	"strings"
	"sync"
	"time"
)

// Op names a store operation for failure injection on MemoryStore.
type Op string

const (
	OpPut         Op = "put"
	OpGet         Op = "get"
	OpList        Op = "list"
	OpRemove      Op = "remove"
	OpMakeBucket  Op = "makeBucket"
	OpListBuckets Op = "listBuckets"
)

type memObject struct {
	data        []byte
	contentType string
	modified    time.Time
}

// MemoryStore is an in-process ObjectStore. It follows S3 semantics where the
// gateway observes them: writing to a missing bucket fails, removing a
// missing key succeeds, and listing is ordered by key.
type MemoryStore struct {
	mu       sync.RWMutex
	buckets  map[string]map[string]memObject
	created  map[string]time.Time
	failures map[string]error
}

// NewMemoryStore returns an empty store holding the given buckets.
func NewMemoryStore(buckets ...string) *MemoryStore {
	m := &MemoryStore{
		buckets:  make(map[string]map[string]memObject),
		created:  make(map[string]time.Time),
		failures: make(map[string]error),
	}
	for _, b := range buckets {
		m.buckets[b] = make(map[string]memObject)
		m.created[b] = time.Now().UTC()
	}
	return m
}

// Fail makes every later op on bucket/key return err. An empty key applies to
// bucket-level ops (list, makeBucket); an empty bucket to listBuckets.
func (m *MemoryStore) Fail(op Op, bucket, key string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failures[failureKey(op, bucket, key)] = err
}

func failureKey(op Op, bucket, key string) string {
	return string(op) + ":" + bucket + "/" + key
}

func (m *MemoryStore) failure(op Op, bucket, key string) error {
	return m.failures[failureKey(op, bucket, key)]
}

func (m *MemoryStore) Put(_ context.Context, bucket, key string, r io.Reader, size int64, contentType string) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("put object %q: %w", key, err)
	}
	if size >= 0 && int64(len(data)) != size {
		return fmt.Errorf("put object %q: size mismatch: declared %d, read %d", key, size, len(data))
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.failure(OpPut, bucket, key); err != nil {
		return fmt.Errorf("put object %q: %w", key, err)
	}
	objects, ok := m.buckets[bucket]
	if !ok {
		return fmt.Errorf("put object %q: %w", key, ErrBucketNotFound)
	}
	objects[key] = memObject{data: data, contentType: contentType, modified: time.Now().UTC()}
	return nil
}

func (m *MemoryStore) Get(_ context.Context, bucket, key string) (io.ReadCloser, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if err := m.failure(OpGet, bucket, key); err != nil {
		return nil, fmt.Errorf("get object %q: %w", key, err)
	}
	obj, err := m.lookup(bucket, key)
	if err != nil {
		return nil, fmt.Errorf("get object %q: %w", key, err)
	}
	return io.NopCloser(bytes.NewReader(obj.data)), nil
}

// List snapshots matching keys under the read lock, then yields them.
func (m *MemoryStore) List(_ context.Context, bucket, prefix string) iter.Seq2[ObjectInfo, error] {
	return func(yield func(ObjectInfo, error) bool) {
		m.mu.RLock()
		if err := m.failure(OpList, bucket, ""); err != nil {
			m.mu.RUnlock()
			yield(ObjectInfo{}, fmt.Errorf("list objects in %q: %w", bucket, err))
			return
		}
		objects, ok := m.buckets[bucket]
		if !ok {
			m.mu.RUnlock()
			yield(ObjectInfo{}, fmt.Errorf("list objects in %q: %w", bucket, ErrBucketNotFound))
			return
		}
		var infos []ObjectInfo
		for key, obj := range objects {
			if strings.HasPrefix(key, prefix) {
				infos = append(infos, obj.info(key))
			}
		}
		m.mu.RUnlock()

		sort.Slice(infos, func(i, j int) bool { return infos[i].Key < infos[j].Key })
		for _, info := range infos {
			if !yield(info, nil) {
				return
			}
		}
	}
}

func (m *MemoryStore) Remove(_ context.Context, bucket, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.failure(OpRemove, bucket, key); err != nil {
		return fmt.Errorf("remove object %q: %w", key, err)
	}
	objects, ok := m.buckets[bucket]
	if !ok {
		return fmt.Errorf("remove object %q: %w", key, ErrBucketNotFound)
	}
	delete(objects, key)
	return nil
}

func (m *MemoryStore) Stat(_ context.Context, bucket, key string) (ObjectInfo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	obj, err := m.lookup(bucket, key)
	if err != nil {
		return ObjectInfo{}, fmt.Errorf("stat object %q: %w", key, err)
	}
	return obj.info(key), nil
}

func (m *MemoryStore) BucketExists(_ context.Context, bucket string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.buckets[bucket]
	return ok, nil
}

func (m *MemoryStore) MakeBucket(_ context.Context, bucket string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.failure(OpMakeBucket, bucket, ""); err != nil {
		return fmt.Errorf("create bucket %q: %w", bucket, err)
	}
	if _, ok := m.buckets[bucket]; ok {
		return fmt.Errorf("create bucket %q: already exists", bucket)
	}
	m.buckets[bucket] = make(map[string]memObject)
	m.created[bucket] = time.Now().UTC()
	return nil
}

func (m *MemoryStore) ListBuckets(_ context.Context) ([]BucketInfo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if err := m.failure(OpListBuckets, "", ""); err != nil {
		return nil, fmt.Errorf("list buckets: %w", err)
	}
	out := make([]BucketInfo, 0, len(m.buckets))
	for name := range m.buckets {
		out = append(out, BucketInfo{Name: name, CreatedAt: m.created[name]})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *MemoryStore) lookup(bucket, key string) (memObject, error) {
	objects, ok := m.buckets[bucket]
	if !ok {
		return memObject{}, ErrBucketNotFound
	}
	obj, ok := objects[key]
	if !ok {
		return memObject{}, ErrObjectNotFound
	}
	return obj, nil
}

func (o memObject) info(key string) ObjectInfo {
	return ObjectInfo{
		Key:          key,
		Size:         int64(len(o.data)),
		ContentType:  o.contentType,
		LastModified: o.modified,
	}
}
