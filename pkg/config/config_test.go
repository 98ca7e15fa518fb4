package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadLayersFileThenEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
port: "9090"
database_url: postgres://file/db
redis_url: redis://localhost:6379/0
max_upload_mb: 5
log_json: true
`), 0o600))
	chdir(t, dir)
	t.Setenv("PORT", "")
	t.Setenv("DATABASE_URL", "postgres://env/db")
	t.Setenv("JWT_TTL_MINUTES", "15")
	t.Setenv("DEBUG", "true")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "postgres://env/db", cfg.DatabaseURL)
	assert.Equal(t, "redis://localhost:6379/0", cfg.RedisURL)
	assert.Equal(t, 15, cfg.JWTTTLMinutes)
	assert.Equal(t, 5, cfg.MaxUploadMB)
	assert.Equal(t, 9, cfg.DefaultPageSize)
	assert.Equal(t, 10, cfg.DBMaxConns)
	assert.True(t, cfg.LogJSON)
	assert.True(t, cfg.Debug)
}

func TestLoadRequiresDatabaseURL(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("DATABASE_URL", "")
	_, err := Load("")
	assert.ErrorContains(t, err, "DATABASE_URL is required")
}

func TestLoadBadFile(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://x")
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("port: [1, 2"), 0o600))
	_, err = Load(path)
	assert.ErrorContains(t, err, "parse config")
}

func TestValidateCollectsAllProblems(t *testing.T) {
	err := Config{}.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATABASE_URL")
	assert.Contains(t, err.Error(), "JWT_TTL_MINUTES")
	assert.Contains(t, err.Error(), "MAX_UPLOAD_MB")
}

// chdir changes the working directory for the duration of the test,
// mirroring testing.T.Chdir (Go 1.24+) for older toolchains.
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
}
