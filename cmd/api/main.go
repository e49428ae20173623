//	@title			Bucket Gateway API
//	@version		1.0
//	@description	HTTP gateway over an S3-compatible object store: upload, replace, list, preview and delete files.
//
//	@host		localhost:4000
//	@BasePath	/

package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"

	"github.com/umangsailor/bucket-gateway/docs/swagger"
	"github.com/umangsailor/bucket-gateway/internal/config"
	"github.com/umangsailor/bucket-gateway/internal/file"
	"github.com/umangsailor/bucket-gateway/internal/health"
	"github.com/umangsailor/bucket-gateway/internal/metrics"
	appMiddleware "github.com/umangsailor/bucket-gateway/internal/middleware"
	"github.com/umangsailor/bucket-gateway/internal/server"
	"github.com/umangsailor/bucket-gateway/internal/storage"
)

func main() {
	cfg := config.Load()
	setupLogging(cfg)
	for _, n := range cfg.Notices() {
		slog.LogAttrs(context.Background(), n.Level, n.Msg, n.Attrs...)
	}

	minioStore, err := storage.NewMinioStore(
		cfg.StoreAddress(),
		cfg.StoreAccessKey,
		cfg.StoreSecretKey,
		cfg.StoreUseSSL,
		cfg.StoreTimeout,
	)
	if err != nil {
		slog.Error("object storage init failed", "endpoint", cfg.StoreURL(), "err", err)
		os.Exit(1)
	}

	m := metrics.New()
	store := metrics.InstrumentStore(minioStore, m, cfg.DefaultBucket)

	// Wire dependencies: store → service → handler
	fileSvc := file.NewService(store, cfg)
	fileHandler := file.NewHandler(fileSvc, file.FormLimits{
		MaxFileSize: cfg.MaxFileSizeBytes,
		MaxFiles:    cfg.MaxMultipartFiles,
	})
	healthHandler := health.NewHandler(health.NewReporter(store, cfg.StoreURL()))

	swagger.SwaggerInfo.Host = cfg.APIEndpoint

	router := server.NewRouter(server.Deps{
		Files:   fileHandler,
		Health:  healthHandler,
		Metrics: m,
		Docs: appMiddleware.DocsCredentials{
			User:      cfg.DocsUser,
			Password:  cfg.DocsPassword,
			JWTSecret: cfg.DocsJWTSecret,
		},
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine; wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server listening", "port", cfg.Port, "env", cfg.AppEnv, "storage", cfg.StoreURL(), "bucket", cfg.DefaultBucket)
		slog.Info("swagger UI available", "url", cfg.PublicProtocol()+"://"+cfg.APIEndpoint+"/api/index.html")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "err", err)
			os.Exit(1)
		}
	}()

	<-quit
	slog.Info("shutting down gracefully...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("forced shutdown", "err", err)
		os.Exit(1)
	}

	slog.Info("server stopped")
}

// setupLogging installs a charmbracelet/log handler as the slog default.
// Production emits JSON; other environments get human-readable text.
func setupLogging(cfg *config.Config) {
	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = log.InfoLevel
	}

	formatter := log.TextFormatter
	if cfg.IsProduction() {
		formatter = log.JSONFormatter
	}

	handler := log.NewWithOptions(os.Stdout, log.Options{
		Level:           level,
		TimeFormat:      time.RFC3339,
		ReportTimestamp: true,
		TimeFunction:    log.NowUTC,
		Formatter:       formatter,
	})

	slog.SetDefault(slog.New(handler))
}
