package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "storefront.db", cfg.DBDSN)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 120, cfg.RateLimit)
	assert.Equal(t, ":8080", cfg.Addr())
	assert.Equal(t, 30*time.Minute, cfg.SessionTTL)
}

func TestLoadEnvOverrides(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("STOREFRONT_PORT", "9090")
	t.Setenv("STOREFRONT_DB_DSN", ":memory:")
	t.Setenv("STOREFRONT_RATE_LIMIT", "10")
	t.Setenv("STOREFRONT_SESSION_TTL", "5m")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, ":memory:", cfg.DBDSN)
	assert.Equal(t, 10, cfg.RateLimit)
	assert.Equal(t, 5*time.Minute, cfg.SessionTTL)
}

func TestLoadFileThenEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.toml")
	require.NoError(t, os.WriteFile(path, []byte("port = \"7000\"\nlog_level = \"debug\"\n"), 0o644))
	t.Setenv("STOREFRONT_LOG_LEVEL", "warn")

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "7000", cfg.Port)
	assert.Equal(t, "warn", cfg.LogLevel)
}

func TestLoadRejectsBadRateLimit(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("STOREFRONT_RATE_LIMIT", "0")
	_, err := Load()
	require.Error(t, err)
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.toml"))
	require.Error(t, err)
}

func TestLoadRejectsBadSessionTTL(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("STOREFRONT_SESSION_TTL", "-1m")
	_, err := Load()
	require.Error(t, err)
}

// chdir changes the working directory for the duration of the test
// (equivalent of testing.T.Chdir, which needs Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(old) })
}
