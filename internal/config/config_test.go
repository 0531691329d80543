package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"scadaval/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	for _, key := range []string{
		"CONFIG_FILE", "PORT", "GIN_MODE", "SHUTDOWN_TIMEOUT", "EXCEL_FILE", "EXCEL_SHEET",
		"ENGINE_WORKERS", "ENGINE_CHUNK_SIZE", "MAX_UPLOAD_MB", "DATASET_TTL", "LOG_LEVEL",
	} {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "release", cfg.Server.GinMode)
	assert.Equal(t, 4096, cfg.Engine.ChunkSize)
	assert.Positive(t, cfg.Engine.Workers)
	assert.Equal(t, int64(32<<20), cfg.Upload.MaxBytes())
	assert.Equal(t, 30*time.Minute, cfg.Upload.DatasetTTL)
	assert.Equal(t, "INFO", cfg.Logging.Level)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "scadaval.yaml")
	yamlDoc := `
server:
  port: "9000"
data:
  excel_file: plant.xlsx
  sheet: Readings
engine:
  workers: 2
  chunk_size: 128
upload:
  dataset_ttl: 5m
`
	require.NoError(t, os.WriteFile(path, []byte(yamlDoc), 0o600))

	t.Setenv("CONFIG_FILE", path)
	t.Setenv("ENGINE_WORKERS", "6")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Server.Port)
	assert.Equal(t, "plant.xlsx", cfg.Data.ExcelFile)
	assert.Equal(t, "Readings", cfg.Data.Sheet)
	assert.Equal(t, 6, cfg.Engine.Workers)
	assert.Equal(t, 128, cfg.Engine.ChunkSize)
	assert.Equal(t, 5*time.Minute, cfg.Upload.DatasetTTL)
	// untouched values keep their defaults
	assert.Equal(t, int64(32), cfg.Upload.MaxMB)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		key, value string
	}{
		{"PORT", "http"},
		{"GIN_MODE", "loud"},
		{"ENGINE_WORKERS", "0"},
		{"ENGINE_CHUNK_SIZE", "-5"},
		{"MAX_UPLOAD_MB", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.value)

			_, err := Load()
			require.Error(t, err)
			assert.Equal(t, errors.CodeConfigInvalid, errors.GetCode(err))
		})
	}
}

func TestLoad_BadYAML(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "broken.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server: [unterminated"), 0o600))
	t.Setenv("CONFIG_FILE", path)

	_, err := Load()
	require.Error(t, err)
	assert.Equal(t, errors.CodeConfigInvalid, errors.GetCode(err))
}
