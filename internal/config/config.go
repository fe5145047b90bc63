// Package config loads the API configuration from environment variables,
// optionally seeded from a .env file.
package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Storage backend selectors for uploaded attachments.
const (
	BackendLocal = "local"
	BackendGCS   = "gcs"
)

// Config holds everything the API process needs to start.
type Config struct {
	Port        string // HTTP listen port
	DatabaseURL string // Postgres connection string (lib/pq format)

	StorageBackend string // "local" or "gcs"
	UploadsDir     string // root directory for the local backend
	GCSBucket      string // bucket name for the gcs backend

	GeminiModel string // vision model used for invoice extraction
}

// Load reads configuration from the environment. A .env file in the working
// directory is applied first when present; real environment variables win.
func Load() (*Config, error) {
	// Missing .env is fine: production sets real env vars.
	_ = godotenv.Load()

	cfg := &Config{
		Port:           getenv("PORT", "8080"),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		StorageBackend: getenv("STORAGE_BACKEND", BackendLocal),
		UploadsDir:     getenv("UPLOADS_DIR", "uploads"),
		GCSBucket:      os.Getenv("GCS_BUCKET"),
		GeminiModel:    getenv("GEMINI_MODEL", "gemini-2.5-flash"),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("config: DATABASE_URL is required")
	}
	if cfg.StorageBackend != BackendLocal && cfg.StorageBackend != BackendGCS {
		return nil, fmt.Errorf("config: unknown STORAGE_BACKEND %q", cfg.StorageBackend)
	}
	if cfg.StorageBackend == BackendGCS && cfg.GCSBucket == "" {
		return nil, fmt.Errorf("config: GCS_BUCKET is required when STORAGE_BACKEND=gcs")
	}

	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
