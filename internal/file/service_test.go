package file

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/umangsailor/bucket-gateway/internal/config"
	"github.com/umangsailor/bucket-gateway/internal/storage"
)

var fixedTime = time.Date(2026, 10, 14, 9, 30, 0, 123_000_000, time.UTC)

func newTestService(t *testing.T, store storage.ObjectStore, maxUpload int) *Service {
	t.Helper()

	svc := NewService(store, &config.Config{
		DefaultBucket:  "testing",
		APIEndpoint:    "localhost:4000",
		MaxUploadFiles: maxUpload,
	})
	svc.now = func() time.Time { return fixedTime }
	return svc
}

func part(name, data string) Part {
	return Part{OriginalName: name, ContentType: "text/plain", Data: []byte(data)}
}

func readObject(t *testing.T, store storage.ObjectStore, bucket, key string) string {
	t.Helper()

	rc, err := store.Get(context.Background(), bucket, key)
	require.NoErrorf(t, err, "get %s/%s", bucket, key)
	defer rc.Close()
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	return string(data)
}

func TestUploadRandomNamesNeverCollide(t *testing.T) {
	store := storage.NewMemoryStore("testing")
	svc := newTestService(t, store, 20)

	out, err := svc.Upload(context.Background(), UploadRequest{
		RandomName: true,
		Parts:      []Part{part("a.txt", "one"), part("a.txt", "two")},
	})
	require.NoError(t, err)
	require.Len(t, out.Files, 2)
	require.Nil(t, out.Limit)

	first, second := out.Files[0], out.Files[1]
	require.NotEqual(t, first.Key, second.Key)
	require.Equal(t, "1791970200123_a.txt", first.Name)
	require.Equal(t, "1791970200124_a.txt", second.Name)
	require.Equal(t, "a.txt", first.OriginalName)
	require.Equal(t, "2026-10-14T09:30:00.123Z", first.Time)

	require.Equal(t, "one", readObject(t, store, "testing", first.Key))
	require.Equal(t, "two", readObject(t, store, "testing", second.Key))
}

func TestUploadKeepsNamesUnderFolder(t *testing.T) {
	store := storage.NewMemoryStore("media")
	svc := newTestService(t, store, 20)

	out, err := svc.Upload(context.Background(), UploadRequest{
		Bucket: "media",
		Folder: "avatars",
		Parts:  []Part{part("me.png", "png")},
	})
	require.NoError(t, err)
	require.Equal(t, UploadResult{
		OriginalName: "me.png",
		Name:         "me.png",
		Key:          "avatars/me.png",
		URL:          "http://localhost:4000/storage/media/avatars/me.png",
		Size:         3,
		Time:         "2026-10-14T09:30:00.123Z",
	}, out.Files[0])
}

func TestUploadDiscardsPartsOverCap(t *testing.T) {
	store := storage.NewMemoryStore("testing")
	svc := newTestService(t, store, 3)

	parts := []Part{part("1", "a"), part("2", "b"), part("3", "c"), part("4", "d"), part("5", "e")}
	out, err := svc.Upload(context.Background(), UploadRequest{Parts: parts})
	require.NoError(t, err)

	require.Len(t, out.Files, 3)
	require.Equal(t, &LimitReport{TotalReceived: 5, Uploaded: 3, Discarded: 2}, out.Limit)

	_, err = store.Stat(context.Background(), "testing", "4")
	require.ErrorIs(t, err, storage.ErrObjectNotFound)
}

func TestUploadRejectsEmptyRequest(t *testing.T) {
	svc := newTestService(t, storage.NewMemoryStore("testing"), 20)

	_, err := svc.Upload(context.Background(), UploadRequest{})
	require.ErrorIs(t, err, ErrNoFiles)
}

func TestUploadIsolatesFailedParts(t *testing.T) {
	store := storage.NewMemoryStore("testing")
	store.Fail(storage.OpPut, "testing", "b.txt", errors.New("disk full"))
	svc := newTestService(t, store, 20)

	out, err := svc.Upload(context.Background(), UploadRequest{
		Parts: []Part{part("a.txt", "a"), part("b.txt", "b"), part("c.txt", "c")},
	})
	require.NoError(t, err)
	require.Len(t, out.Files, 2)
	require.Equal(t, "a.txt", out.Files[0].Key)
	require.Equal(t, "c.txt", out.Files[1].Key)
	require.Len(t, out.Errors, 1)
	require.Equal(t, "b.txt", out.Errors[0].Name)
	require.Contains(t, out.Errors[0].Error, "disk full")
}

func TestUploadFailsWhenNothingStored(t *testing.T) {
	store := storage.NewMemoryStore()
	store.Fail(storage.OpMakeBucket, "testing", "", errors.New("access denied"))
	svc := newTestService(t, store, 20)

	out, err := svc.Upload(context.Background(), UploadRequest{Parts: []Part{part("a.txt", "a")}})
	require.ErrorIs(t, err, ErrUploadFailed)
	require.Len(t, out.Errors, 1)
}

func TestUploadCreatesMissingBucket(t *testing.T) {
	store := storage.NewMemoryStore()
	svc := newTestService(t, store, 20)

	_, err := svc.Upload(context.Background(), UploadRequest{Bucket: "fresh", Parts: []Part{part("a.txt", "a")}})
	require.NoError(t, err)

	exists, err := store.BucketExists(context.Background(), "fresh")
	require.NoError(t, err)
	require.True(t, exists)
}

func TestReplaceOverwritesWithStableURL(t *testing.T) {
	store := storage.NewMemoryStore("testing")
	svc := newTestService(t, store, 20)
	ctx := context.Background()

	first := part("ignored.txt", "first")
	u1, err := svc.Replace(ctx, ReplaceRequest{Folder: "docs", Name: "note.txt", Part: &first})
	require.NoError(t, err)

	second := part("ignored.txt", "second")
	u2, err := svc.Replace(ctx, ReplaceRequest{Folder: "docs", Name: "note.txt", Part: &second})
	require.NoError(t, err)

	require.Equal(t, u1, u2)
	require.Equal(t, "http://localhost:4000/storage/testing/docs/note.txt", u1)
	require.Equal(t, "second", readObject(t, store, "testing", "docs/note.txt"))
}

func TestReplaceValidation(t *testing.T) {
	svc := newTestService(t, storage.NewMemoryStore("testing"), 20)
	ctx := context.Background()

	_, err := svc.Replace(ctx, ReplaceRequest{Name: "x"})
	require.ErrorIs(t, err, ErrFileRequired)

	p := part("x", "x")
	_, err = svc.Replace(ctx, ReplaceRequest{Part: &p})
	require.ErrorIs(t, err, ErrNameRequired)
}

func TestListFiltersByPrefix(t *testing.T) {
	store := storage.NewMemoryStore("testing")
	ctx := context.Background()
	for _, key := range []string{"a/1.txt", "a/b/2.txt", "ab.txt", "z.txt"} {
		require.NoError(t, store.Put(ctx, "testing", key, strings.NewReader(""), 0, ""))
	}
	svc := newTestService(t, store, 20)

	entries, err := svc.List(ctx, "", "a/")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	for _, e := range entries {
		require.Regexp(t, `^a/`, e.Name)
		require.Equal(t, "http://localhost:4000/storage/testing/"+e.Name, e.URL)
	}

	all, err := svc.List(ctx, "", "")
	require.NoError(t, err)
	require.Len(t, all, 4)
}

func TestListStoreErrorAborts(t *testing.T) {
	store := storage.NewMemoryStore("testing")
	store.Fail(storage.OpList, "testing", "", errors.New("timeout"))
	svc := newTestService(t, store, 20)

	_, err := svc.List(context.Background(), "", "")
	require.ErrorContains(t, err, "timeout")
}

func TestOpenDistinguishesMissingBucketAndKey(t *testing.T) {
	store := storage.NewMemoryStore("testing")
	svc := newTestService(t, store, 20)
	ctx := context.Background()

	_, err := svc.Open(ctx, "nope", "a.txt")
	require.ErrorIs(t, err, storage.ErrBucketNotFound)

	_, err = svc.Open(ctx, "testing", "a.txt")
	require.ErrorIs(t, err, storage.ErrObjectNotFound)

	p := part("a.txt", "hello")
	_, err = svc.Replace(ctx, ReplaceRequest{Name: "a.txt", Part: &p})
	require.NoError(t, err)

	obj, err := svc.Open(ctx, "testing", "a.txt")
	require.NoError(t, err)
	defer obj.Close()
	require.Equal(t, int64(5), obj.Info.Size)
	data, err := io.ReadAll(obj)
	require.NoError(t, err)
	require.Equal(t, "hello", string(data))
}

func TestDeleteIsolatesFailures(t *testing.T) {
	store := storage.NewMemoryStore("testing")
	ctx := context.Background()
	for _, key := range []string{"docs/a", "docs/b", "docs/c"} {
		require.NoError(t, store.Put(ctx, "testing", key, strings.NewReader(""), 0, ""))
	}
	store.Fail(storage.OpRemove, "testing", "docs/b", errors.New("locked"))
	svc := newTestService(t, store, 20)

	out, err := svc.Delete(ctx, DeleteRequest{Folder: "docs", Names: []string{"a", "b", "c", "never-uploaded"}})
	require.NoError(t, err)
	require.Equal(t, []string{"docs/a", "docs/c", "docs/never-uploaded"}, out.Deleted)
	require.Len(t, out.Errors, 1)
	require.Equal(t, "docs/b", out.Errors[0].Name)
	require.Contains(t, out.Errors[0].Error, "locked")

	_, err = store.Stat(ctx, "testing", "docs/a")
	require.ErrorIs(t, err, storage.ErrObjectNotFound)
	_, err = store.Stat(ctx, "testing", "docs/b")
	require.NoError(t, err)
}

func TestDeleteRejectsEmptyNames(t *testing.T) {
	svc := newTestService(t, storage.NewMemoryStore("testing"), 20)

	_, err := svc.Delete(context.Background(), DeleteRequest{})
	require.ErrorIs(t, err, ErrNoNames)

	out, err := svc.Delete(context.Background(), DeleteRequest{Names: []string{""}})
	require.NoError(t, err)
	require.Empty(t, out.Deleted)
	require.Len(t, out.Errors, 1)
}
