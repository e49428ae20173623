// Package server assembles the gateway's HTTP router.
package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/umangsailor/bucket-gateway/internal/file"
	"github.com/umangsailor/bucket-gateway/internal/health"
	"github.com/umangsailor/bucket-gateway/internal/metrics"
	appMiddleware "github.com/umangsailor/bucket-gateway/internal/middleware"
)

// Deps are the handlers and collaborators the router mounts.
type Deps struct {
	Files   *file.Handler
	Health  *health.Handler
	Metrics *metrics.Metrics
	Docs    appMiddleware.DocsCredentials
}

// NewRouter builds the chi router with the gateway's middleware chain and routes.
func NewRouter(d Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(appMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	if d.Metrics != nil {
		r.Use(d.Metrics.Middleware)
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		MaxAge:         300,
	}))

	r.Get("/health", d.Health.Health)
	if d.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", d.Metrics.Handler())
	}

	// Swagger UI at /api/index.html
	r.Group(func(r chi.Router) {
		r.Use(appMiddleware.RequireDocsAuth(d.Docs))
		r.Get("/api", func(w http.ResponseWriter, r *http.Request) {
			http.Redirect(w, r, "/api/index.html", http.StatusMovedPermanently)
		})
		r.Get("/api/*", httpSwagger.Handler(
			httpSwagger.URL("/api/doc.json"),
		))
	})

	r.Post("/upload", d.Files.Upload)
	r.Put("/upload", d.Files.Replace)
	r.Get("/files", d.Files.List)
	r.Delete("/files", d.Files.Delete)
	r.Get("/storage/{bucket}/*", d.Files.Preview)

	return r
}
