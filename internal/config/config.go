// Package config loads application configuration from environment variables.
package config

import (
	"log/slog"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all runtime configuration for the gateway. It is built once at
// startup and never mutated afterwards.
type Config struct {
	Port   string
	AppEnv string

	// Object storage (any S3-compatible provider reachable through MinIO's client)
	StoreHost      string
	StorePort      int
	StoreUseSSL    bool
	StoreAccessKey string
	StoreSecretKey string
	StoreTimeout   time.Duration
	DefaultBucket  string

	// APIEndpoint is the public host (and optional port) clients use to reach
	// this gateway, e.g. "bucket.example.com" or "localhost:4000".
	APIEndpoint string

	MaxUploadFiles    int
	MaxFileSizeBytes  int64
	MaxMultipartFiles int

	ReadTimeout  time.Duration
	WriteTimeout time.Duration

	DocsUser      string
	DocsPassword  string
	DocsJWTSecret string

	LogLevel string

	notices []Notice
}

// Notice is a log line produced while loading, held until the process
// logger is installed.
type Notice struct {
	Level slog.Level
	Msg   string
	Attrs []slog.Attr
}

// Load reads configuration from a .env file (if present) and environment
// variables. It does not log; problems are kept in Notices.
func Load() *Config {
	var env envReader
	if err := godotenv.Load(); err != nil {
		env.note(slog.LevelInfo, "no .env file found, reading from environment")
	}

	cfg := &Config{
		Port:   getEnv("PORT", "4000"),
		AppEnv: getEnv("APP_ENV", "development"),

		StoreHost:      getEnv("MINIO_ENDPOINT", "localhost"),
		StorePort:      env.getInt("MINIO_PORT", 9000),
		StoreUseSSL:    getEnv("MINIO_USE_SSL", "false") == "true",
		StoreAccessKey: getEnv("MINIO_ACCESS_KEY", "admin"),
		StoreSecretKey: getEnv("MINIO_SECRET_KEY", "admin12345"),
		StoreTimeout:   env.getDuration("STORE_TIMEOUT", 30*time.Second),
		DefaultBucket:  getEnv("BUCKET_NAME", "testing"),

		APIEndpoint: getEnv("API_ENDPOINT", "bucket.umangsailor.com"),

		MaxUploadFiles:    env.getInt("MAX_UPLOAD_FILES", 20),
		MaxFileSizeBytes:  int64(env.getInt("MAX_FILE_SIZE_MB", 1024)) * 1024 * 1024,
		MaxMultipartFiles: env.getInt("MAX_MULTIPART_FILES", 100),

		ReadTimeout:  env.getDuration("HTTP_READ_TIMEOUT", 10*time.Minute),
		WriteTimeout: env.getDuration("HTTP_WRITE_TIMEOUT", 10*time.Minute),

		DocsUser:      getEnv("SWAGGER_USER", "admin"),
		DocsPassword:  getEnv("SWAGGER_PASS", "password"),
		DocsJWTSecret: getEnv("DOCS_JWT_SECRET", ""),

		LogLevel: getEnv("LOG_LEVEL", "info"),
	}
	cfg.notices = env.notices
	return cfg
}

// Notices returns the messages collected by Load, in order.
func (c *Config) Notices() []Notice {
	return c.notices
}

// IsProduction returns true when the app is running in production mode.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// StoreAddress returns the host:port the store client dials.
func (c *Config) StoreAddress() string {
	return net.JoinHostPort(c.StoreHost, strconv.Itoa(c.StorePort))
}

// StoreURL returns the store endpoint as reported by the health check,
// e.g. "http://localhost:9000".
func (c *Config) StoreURL() string {
	scheme := "http"
	if c.StoreUseSSL {
		scheme = "https"
	}
	return scheme + "://" + c.StoreAddress()
}

// PublicProtocol infers the scheme of APIEndpoint: plain http for localhost,
// loopback and private-network hosts, https for everything else.
func (c *Config) PublicProtocol() string {
	host := c.APIEndpoint
	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	}
	host = strings.Trim(host, "[]")

	if strings.EqualFold(host, "localhost") {
		return "http"
	}
	if ip := net.ParseIP(host); ip != nil && (ip.IsLoopback() || ip.IsPrivate()) {
		return "http"
	}
	return "https"
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// envReader parses typed values and records fallbacks as notices.
type envReader struct {
	notices []Notice
}

func (e *envReader) note(level slog.Level, msg string, attrs ...slog.Attr) {
	e.notices = append(e.notices, Notice{Level: level, Msg: msg, Attrs: attrs})
}

func (e *envReader) getInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		e.note(slog.LevelWarn, "invalid integer in environment, using default",
			slog.String("key", key), slog.String("value", v), slog.Int("default", fallback))
		return fallback
	}
	return n
}

func (e *envReader) getDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		e.note(slog.LevelWarn, "invalid duration in environment, using default",
			slog.String("key", key), slog.String("value", v), slog.Duration("default", fallback))
		return fallback
	}
	return d
}
