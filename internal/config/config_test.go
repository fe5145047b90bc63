package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/menuda?sslmode=disable")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, BackendLocal, cfg.StorageBackend)
	assert.Equal(t, "uploads", cfg.UploadsDir)
	assert.Equal(t, "gemini-2.5-flash", cfg.GeminiModel)
}

func TestMissingDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATABASE_URL")
}

func TestGCSRequiresBucket(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/menuda?sslmode=disable")
	t.Setenv("STORAGE_BACKEND", BackendGCS)
	t.Setenv("GCS_BUCKET", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GCS_BUCKET")
}

func TestUnknownBackendRejected(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/menuda?sslmode=disable")
	t.Setenv("STORAGE_BACKEND", "ftp")

	_, err := Load()
	require.Error(t, err)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/menuda?sslmode=disable")
	t.Setenv("PORT", "9000")
	t.Setenv("GEMINI_MODEL", "gemini-2.5-pro")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, "gemini-2.5-pro", cfg.GeminiModel)
}
