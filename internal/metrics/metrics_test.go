package metrics

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"github.com/umangsailor/bucket-gateway/internal/storage"
)

func TestMiddlewareCountsRequests(t *testing.T) {
	m := New()
	h := m.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing" {
			w.WriteHeader(http.StatusNotFound)
		}
	}))

	for _, p := range []string{"/", "/", "/missing"} {
		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, p, nil))
	}

	require.Equal(t, 2.0, testutil.ToFloat64(m.requests.WithLabelValues("200", "GET")))
	require.Equal(t, 1.0, testutil.ToFloat64(m.requests.WithLabelValues("404", "GET")))
	require.Equal(t, 0.0, testutil.ToFloat64(m.inflight))
}

func TestInstrumentStore(t *testing.T) {
	m := New()
	mem := storage.NewMemoryStore("b")
	mem.Fail(storage.OpRemove, "b", "locked", errors.New("locked"))
	store := InstrumentStore(mem, m, "b")
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "b", "k", strings.NewReader("hello"), 5, ""))
	require.Error(t, store.Remove(ctx, "b", "locked"))

	rc, err := store.Get(ctx, "b", "k")
	require.NoError(t, err)
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	require.Equal(t, "hello", string(data))

	n := 0
	for _, err := range store.List(ctx, "b", "") {
		require.NoError(t, err)
		n++
	}
	require.Equal(t, 1, n)

	require.Equal(t, 1.0, testutil.ToFloat64(m.storeOps.WithLabelValues("put", "ok")))
	require.Equal(t, 1.0, testutil.ToFloat64(m.storeOps.WithLabelValues("remove", "error")))
	require.Equal(t, 1.0, testutil.ToFloat64(m.storeOps.WithLabelValues("list", "ok")))
	require.Equal(t, 5.0, testutil.ToFloat64(m.storeBytes.WithLabelValues("b")))
}

func TestHandlerServesRegistry(t *testing.T) {
	m := New()
	m.requests.WithLabelValues("200", "GET").Inc()

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "bucket_gateway_http_requests_total")
}

func TestBytesWrittenLabelIsBounded(t *testing.T) {
	m := New()
	store := InstrumentStore(storage.NewMemoryStore("testing", "tenant-a", "tenant-b"), m, "testing")
	ctx := context.Background()

	for _, bucket := range []string{"testing", "tenant-a", "tenant-b"} {
		require.NoError(t, store.Put(ctx, bucket, "k", strings.NewReader("abcd"), 4, ""))
	}

	require.Equal(t, 4.0, testutil.ToFloat64(m.storeBytes.WithLabelValues("testing")))
	require.Equal(t, 8.0, testutil.ToFloat64(m.storeBytes.WithLabelValues("other")))
	require.Equal(t, 2, testutil.CollectAndCount(m.storeBytes))
}
