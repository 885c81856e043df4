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
	t.Setenv("HEALTHAI_CONFIG", "")
	t.Setenv("ENV", "")
	chdir(t, t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, 2*time.Second, cfg.TypingDelay)
	assert.Equal(t, 60, cfg.RateLimitRequests)
	assert.False(t, cfg.AuthEnabled)
	assert.Empty(t, cfg.NATSURL)
	assert.Equal(t, "production", cfg.Environment)
}

func TestLoadEnvironment(t *testing.T) {
	t.Setenv("HEALTHAI_CONFIG", "")
	chdir(t, t.TempDir())
	t.Setenv("ENV", "development")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "development", cfg.Environment)
}

func TestLoadYAMLThenEnv(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	path := filepath.Join(dir, "healthai.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
port: "9090"
typing_delay: 500ms
rate_limit_requests: 10
allowed_origins:
  - https://clinic.example
`), 0o600))

	t.Setenv("RATE_LIMIT_REQUESTS", "25")
	t.Setenv("TYPING_DELAY", "")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.ServerPort)
	assert.Equal(t, 500*time.Millisecond, cfg.TypingDelay)
	assert.Equal(t, 25, cfg.RateLimitRequests)
	assert.Equal(t, []string{"https://clinic.example"}, cfg.AllowedOrigins)
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	t.Setenv("HEALTHAI_CONFIG", "")
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("LOG_LEVEL=debug\n"), 0o600))
	// Setenv registers cleanup so the value loaded from .env does not leak.
	t.Setenv("LOG_LEVEL", "")
	require.NoError(t, os.Unsetenv("LOG_LEVEL"))

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := Defaults()
	require.NoError(t, cfg.Validate())

	cfg.TypingDelay = -time.Second
	cfg.RateLimitRequests = 0
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "typing_delay")
	assert.Contains(t, err.Error(), "rate_limit_requests")

	cfg = Defaults()
	cfg.AuthEnabled = true
	cfg.JWTSecret = ""
	assert.Error(t, cfg.Validate())
}

func TestGetListEnv(t *testing.T) {
	t.Setenv("ORIGINS_TEST", " https://a.example , ,https://b.example")
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, getListEnv("ORIGINS_TEST", nil))
	assert.Equal(t, []string{"x"}, getListEnv("ORIGINS_UNSET_TEST", []string{"x"}))
}

// chdir changes the working directory for the duration of the test
// (equivalent of testing.T.Chdir, which requires Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(old) })
}
