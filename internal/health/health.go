// Package health reports gateway and object-store reachability.
package health

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/umangsailor/bucket-gateway/internal/response"
	"github.com/umangsailor/bucket-gateway/internal/storage"
)

// probeTimeout bounds the store probe so a hung backend still yields a report.
const probeTimeout = 5 * time.Second

// Status is the overall health verdict.
type Status string

const (
	StatusHealthy   Status = "healthy"
	StatusDegraded  Status = "degraded"
	StatusUnhealthy Status = "unhealthy"
)

// Component is the status of one dependency.
type Component struct {
	Status   string `json:"status" example:"up"`
	Message  string `json:"message" example:"MinIO connection successful"`
	Endpoint string `json:"endpoint,omitempty" example:"http://localhost:9000"`
}

// Components groups the reported dependencies.
type Components struct {
	API     Component `json:"api"`
	MinIO   Component `json:"minio"`
}

// Report is the health payload.
type Report struct {
	Status    Status     `json:"status" example:"healthy"`
	Timestamp time.Time  `json:"timestamp"`
	Message   string     `json:"message" example:"All services are operational"`
	Services  Components `json:"services"`
}

// HTTPStatus maps the verdict to 200 (healthy) or 503.
func (r Report) HTTPStatus() int {
	if r.Status == StatusHealthy {
		return http.StatusOK
	}
	return http.StatusServiceUnavailable
}

// Reporter probes the store by listing buckets.
type Reporter struct {
	store    storage.ObjectStore
	endpoint string
	now      func() time.Time
}

// NewReporter creates a Reporter. endpoint is echoed in reports only.
func NewReporter(store storage.ObjectStore, endpoint string) *Reporter {
	return &Reporter{store: store, endpoint: endpoint, now: time.Now}
}

// Check never fails: probe errors and panics are folded into the report.
func (r *Reporter) Check(ctx context.Context) (rep Report) {
	rep = Report{
		Status:    StatusHealthy,
		Timestamp: r.now().UTC(),
		Services: Components{
			API:     Component{Status: "up", Message: "API is running"},
			MinIO:   Component{Status: "down", Message: "Not checked", Endpoint: r.endpoint},
		},
	}

	defer func() {
		if p := recover(); p != nil {
			slog.Error("health probe panicked", "panic", p)
			rep.Status = StatusUnhealthy
			rep.Services.MinIO.Status = "down"
			rep.Services.MinIO.Message = fmt.Sprintf("MinIO probe crashed: %v", p)
			rep.Message = "Health probe failed"
		}
	}()

	if r.store == nil {
		rep.Status = StatusUnhealthy
		rep.Services.MinIO.Message = "MinIO client not configured"
		rep.Message = "MinIO service is unavailable"
		return rep
	}

	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	if _, err := r.store.ListBuckets(ctx); err != nil {
		slog.Warn("storage health probe failed", "endpoint", r.endpoint, "err", err)
		rep.Status = StatusDegraded
		rep.Services.MinIO.Message = "MinIO connection failed: " + err.Error()
		rep.Message = "MinIO service is down"
		return rep
	}

	rep.Services.MinIO.Status = "up"
	rep.Services.MinIO.Message = "MinIO connection successful"
	rep.Message = "All services are operational"
	return rep
}

// Handler serves the health endpoint.
type Handler struct {
	reporter *Reporter
}

// NewHandler creates a new health Handler.
func NewHandler(reporter *Reporter) *Handler {
	return &Handler{reporter: reporter}
}

// Health godoc
//
//	@Summary		Health check
//	@Description	Reports API and storage status. 200 when healthy, 503 otherwise.
//	@Tags			health
//	@Produce		json
//	@Success		200	{object}	Report
//	@Failure		503	{object}	Report
//	@Router			/health [get]
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	rep := h.reporter.Check(r.Context())
	response.JSON(w, rep.HTTPStatus(), rep)
}
