// Package file implements the gateway's object operations: upload, replace,
// list, preview and bulk delete.
package file

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/umangsailor/bucket-gateway/internal/config"
	"github.com/umangsailor/bucket-gateway/internal/storage"
)

// isoMillis matches the ISO-8601 form clients already parse ("...T12:00:00.000Z").
const isoMillis = "2006-01-02T15:04:05.000Z07:00"

// deleteConcurrency bounds in-flight removals per bulk delete request.
const deleteConcurrency = 8

var (
	ErrNoFiles         = errors.New("no files uploaded")
	ErrFileRequired    = errors.New("no file provided")
	ErrNameRequired    = errors.New("file name is required")
	ErrNoNames         = errors.New("no file names provided")
	ErrInvalidForm     = errors.New("invalid multipart form")
	ErrUnexpectedField = errors.New("unexpected file field")
	ErrTooManyParts    = errors.New("too many files")
	ErrFileTooLarge    = errors.New("file too large")
	// ErrUploadFailed is returned when every accepted part failed to store.
	ErrUploadFailed = errors.New("upload failed")
)

// UploadResult describes one stored part.
type UploadResult struct {
	OriginalName string `json:"originalName" example:"report.pdf"`
	Name         string `json:"name"         example:"1718000000000_report.pdf"`
	Key          string `json:"key"          example:"invoices/1718000000000_report.pdf"`
	URL          string `json:"url"          example:"https://bucket.example.com/storage/testing/invoices/1718000000000_report.pdf"`
	Size         int64  `json:"size"         example:"3"`
	Time         string `json:"time"         example:"2026-10-14T09:30:00.000Z"`
}

// ItemError records a per-item failure inside a batch.
type ItemError struct {
	Name  string `json:"name"`
	Error string `json:"error"`
}

// UploadRequest is the input of Upload.
type UploadRequest struct {
	Bucket     string
	Folder     string
	RandomName bool
	Parts      []Part
}

// UploadOutcome is the output of Upload.
type UploadOutcome struct {
	Files  []UploadResult
	Errors []ItemError
	// Limit is set only when parts were discarded by the count cap.
	Limit *LimitReport
}

// ReplaceRequest is the input of Replace.
type ReplaceRequest struct {
	Bucket string
	Folder string
	Name   string
	Part   *Part
}

// Entry is one listed object.
type Entry struct {
	Name string    `json:"name" example:"invoices/report.pdf"`
	URL  string    `json:"url"  example:"https://bucket.example.com/storage/testing/invoices/report.pdf"`
	Size int64     `json:"size" example:"3"`
	Time time.Time `json:"time" example:"2026-10-14T09:30:00Z"`
}

// Object is an open object stream plus its metadata. Close releases the stream.
type Object struct {
	io.ReadCloser
	Info storage.ObjectInfo
}

// DeleteRequest is the input of Delete.
type DeleteRequest struct {
	Bucket string
	Folder string
	Names  []string
}

// DeleteOutcome lists per-key results of a bulk delete in request order.
type DeleteOutcome struct {
	Deleted []string
	Errors  []ItemError
}

// Service contains the gateway's object operations.
type Service struct {
	store          storage.ObjectStore
	urls           *URLBuilder
	defaultBucket  string
	maxUploadFiles int
	now            func() time.Time
	log            *slog.Logger
}

// NewService creates a file Service over store using cfg's bucket default,
// upload cap and public endpoint.
func NewService(store storage.ObjectStore, cfg *config.Config) *Service {
	return &Service{
		store:          store,
		urls:           NewURLBuilder(cfg.PublicProtocol(), cfg.APIEndpoint),
		defaultBucket:  cfg.DefaultBucket,
		maxUploadFiles: cfg.MaxUploadFiles,
		now:            time.Now,
		log:            slog.Default().With("component", "file"),
	}
}

// MaxUploadFiles returns the per-request accepted-part cap.
func (s *Service) MaxUploadFiles() int {
	return s.maxUploadFiles
}

// URL returns the public URL of bucket/key.
func (s *Service) URL(bucket, key string) string {
	return s.urls.URL(bucket, key)
}

func (s *Service) bucketOrDefault(bucket string) string {
	if bucket == "" {
		return s.defaultBucket
	}
	return bucket
}

// ensureBucket creates bucket when it is missing. Failures are logged and
// swallowed; the caller's own store call reports a bucket that truly is absent.
func (s *Service) ensureBucket(ctx context.Context, bucket string) {
	exists, err := s.store.BucketExists(ctx, bucket)
	if err != nil {
		s.log.Warn("bucket existence check failed", "bucket", bucket, "err", err)
		return
	}
	if exists {
		return
	}
	if err := s.store.MakeBucket(ctx, bucket); err != nil {
		s.log.Warn("bucket creation failed", "bucket", bucket, "err", err)
		return
	}
	s.log.Info("created bucket", "bucket", bucket)
}

// Upload stores every accepted part. Parts beyond the count cap are dropped
// and reported in the outcome's Limit. A failed write is recorded in Errors
// without stopping the remaining parts; ErrUploadFailed is returned only when
// nothing was stored.
func (s *Service) Upload(ctx context.Context, req UploadRequest) (*UploadOutcome, error) {
	if len(req.Parts) == 0 {
		return nil, ErrNoFiles
	}

	bucket := s.bucketOrDefault(req.Bucket)
	parts, limit := applyLimit(req.Parts, s.maxUploadFiles)
	if limit != nil {
		s.log.Warn("upload count cap reached",
			"bucket", bucket, "received", limit.TotalReceived, "discarded", limit.Discarded)
	}

	s.ensureBucket(ctx, bucket)

	out := &UploadOutcome{Files: []UploadResult{}, Limit: limit}
	var names namer
	for _, p := range parts {
		started := s.now().UTC()

		name := p.OriginalName
		if req.RandomName {
			name = names.next(p.OriginalName, started)
		}
		key := objectKey(req.Folder, name)

		if err := s.store.Put(ctx, bucket, key, bytes.NewReader(p.Data), p.Size(), p.ContentType); err != nil {
			s.log.Error("upload part failed", "bucket", bucket, "key", key, "err", err)
			out.Errors = append(out.Errors, ItemError{Name: p.OriginalName, Error: err.Error()})
			continue
		}

		out.Files = append(out.Files, UploadResult{
			OriginalName: p.OriginalName,
			Name:         name,
			Key:          key,
			URL:          s.urls.URL(bucket, key),
			Size:         p.Size(),
			Time:         started.Format(isoMillis),
		})
	}

	if len(out.Files) == 0 {
		return out, fmt.Errorf("%w: %s", ErrUploadFailed, out.Errors[0].Error)
	}
	return out, nil
}

// Replace overwrites (or creates) folder/name unconditionally and returns its
// public URL.
func (s *Service) Replace(ctx context.Context, req ReplaceRequest) (string, error) {
	if req.Part == nil {
		return "", ErrFileRequired
	}
	if req.Name == "" {
		return "", ErrNameRequired
	}

	bucket := s.bucketOrDefault(req.Bucket)
	s.ensureBucket(ctx, bucket)

	key := objectKey(req.Folder, req.Name)
	if err := s.store.Put(ctx, bucket, key, bytes.NewReader(req.Part.Data), req.Part.Size(), req.Part.ContentType); err != nil {
		return "", fmt.Errorf("replace %q: %w", key, err)
	}
	return s.urls.URL(bucket, key), nil
}

// List drains the store listing of every key under folder.
func (s *Service) List(ctx context.Context, bucket, folder string) ([]Entry, error) {
	bucket = s.bucketOrDefault(bucket)
	s.ensureBucket(ctx, bucket)

	entries := []Entry{}
	for info, err := range s.store.List(ctx, bucket, folder) {
		if err != nil {
			return nil, err
		}
		entries = append(entries, Entry{
			Name: info.Key,
			URL:  s.urls.URL(bucket, info.Key),
			Size: info.Size,
			Time: info.LastModified,
		})
	}
	return entries, nil
}

// Open checks that bucket and key exist, then opens the object stream.
// Missing buckets and keys surface as storage.ErrBucketNotFound and
// storage.ErrObjectNotFound.
func (s *Service) Open(ctx context.Context, bucket, key string) (*Object, error) {
	exists, err := s.store.BucketExists(ctx, bucket)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, storage.ErrBucketNotFound
	}

	info, err := s.store.Stat(ctx, bucket, key)
	if err != nil {
		if storage.IsNotFound(err) {
			return nil, storage.ErrObjectNotFound
		}
		return nil, err
	}

	rc, err := s.store.Get(ctx, bucket, key)
	if err != nil {
		if storage.IsNotFound(err) {
			return nil, storage.ErrObjectNotFound
		}
		return nil, err
	}
	return &Object{ReadCloser: rc, Info: info}, nil
}

// Delete removes every folder/name independently. One failure never stops
// the others; results keep the order of req.Names.
func (s *Service) Delete(ctx context.Context, req DeleteRequest) (*DeleteOutcome, error) {
	if len(req.Names) == 0 {
		return nil, ErrNoNames
	}

	bucket := s.bucketOrDefault(req.Bucket)
	s.ensureBucket(ctx, bucket)

	keys := make([]string, len(req.Names))
	results := make([]error, len(req.Names))

	var g errgroup.Group
	g.SetLimit(deleteConcurrency)
	for i, name := range req.Names {
		keys[i] = objectKey(req.Folder, name)
		if name == "" {
			results[i] = ErrNameRequired
			continue
		}
		g.Go(func() error {
			results[i] = s.store.Remove(ctx, bucket, keys[i])
			return nil
		})
	}
	_ = g.Wait()

	out := &DeleteOutcome{Deleted: []string{}, Errors: []ItemError{}}
	for i, err := range results {
		if err != nil {
			s.log.Warn("delete failed", "bucket", bucket, "key", keys[i], "err", err)
			out.Errors = append(out.Errors, ItemError{Name: keys[i], Error: err.Error()})
			continue
		}
		out.Deleted = append(out.Deleted, keys[i])
	}
	return out, nil
}
