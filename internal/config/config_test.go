package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	for _, k := range []string{"PORT", "CLIENT_ORIGIN", "STORE", "DB_PATH", "JWT_SECRET", "WORDS_ALLOWED_FILE",
		"WORDS_VIABLE_FILE", "DAILY_SALT", "LOG_LEVEL", "JWT_EXPIRES_DAYS"} {
		t.Setenv(k, "")
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "sqlite", cfg.Store.Driver)
	assert.Equal(t, 6, cfg.Game.Rows)
	assert.Equal(t, 10*time.Second, cfg.RequestTimeout())
	assert.Equal(t, 48*time.Hour, cfg.PruneAfter())
	assert.True(t, cfg.InsecureSecret())
}

func TestLoad_MissingFile(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_FileAndEnv(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "pickword.yaml")
	yml := `
server:
  port: "9000"
store:
  driver: memory
game:
  rows: 8
log:
  level: debug
  pretty: true
`
	require.NoError(t, os.WriteFile(path, []byte(yml), 0o644))
	t.Setenv("PORT", "7000")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("JWT_EXPIRES_DAYS", "2")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "7000", cfg.Server.Port)
	assert.Equal(t, "memory", cfg.Store.Driver)
	assert.Equal(t, 8, cfg.Game.Rows)
	assert.True(t, cfg.Log.Pretty)
	assert.Equal(t, "s3cret", cfg.Auth.JWTSecret)
	assert.Equal(t, 48*time.Hour, cfg.TokenTTL())
	assert.False(t, cfg.InsecureSecret())
	// untouched sections keep defaults
	assert.Equal(t, "10s", cfg.Server.RequestTimeout)

	out, err := cfg.Redacted()
	require.NoError(t, err)
	assert.NotContains(t, string(out), "s3cret")
	assert.Equal(t, "s3cret", cfg.Auth.JWTSecret)
}

func TestLoad_Invalid(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("server: [1, 2"), 0o644))
	_, err := Load(bad)
	assert.Error(t, err)

	driver := filepath.Join(dir, "driver.yaml")
	require.NoError(t, os.WriteFile(driver, []byte("store:\n  driver: postgres\n"), 0o644))
	_, err = Load(driver)
	assert.ErrorContains(t, err, "unknown driver")

	rows := filepath.Join(dir, "rows.yaml")
	require.NoError(t, os.WriteFile(rows, []byte("game:\n  rows: 0\n"), 0o644))
	_, err = Load(rows)
	assert.ErrorContains(t, err, "game.rows")
}
