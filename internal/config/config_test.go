package config

import (
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// allConfigKeys lists every env var that Load() and LoadStub() read.
var allConfigKeys = []string{
	"TRAINERPANEL_API_BASE_URL",
	"TRAINERPANEL_LISTEN_ADDR",
	"TRAINERPANEL_REQUEST_TIMEOUT",
	"TRAINERPANEL_SAMPLE_FALLBACK",
	"TRAINERPANEL_EDIT_SESSION_TTL",
	"TRAINERPANEL_LOG_LEVEL",
	"TRAINERPANEL_LOG_FORMAT",
	"TRAINERSTUB_LISTEN_ADDR",
	"TRAINERSTUB_BASE_PATH",
	"TRAINERSTUB_DB_PATH",
	"TRAINERSTUB_SEED",
	"TRAINERSTUB_LOG_LEVEL",
	"TRAINERSTUB_LOG_FORMAT",
}

// isolateConfigEnv saves and unsets all config env vars so tests don't
// inherit values from the host environment (e.g. a running dev server).
// t.Cleanup restores original values after the test.
func isolateConfigEnv(t *testing.T) {
	t.Helper()
	for _, key := range allConfigKeys {
		if orig, ok := os.LookupEnv(key); ok {
			t.Cleanup(func() { os.Setenv(key, orig) })
		} else {
			t.Cleanup(func() { os.Unsetenv(key) })
		}
		os.Unsetenv(key)
	}
}

func TestLoad_Success(t *testing.T) {
	isolateConfigEnv(t)
	t.Setenv("TRAINERPANEL_API_BASE_URL", "https://api.example.com/svc/trainer")
	t.Setenv("TRAINERPANEL_LISTEN_ADDR", "0.0.0.0:9090")
	t.Setenv("TRAINERPANEL_REQUEST_TIMEOUT", "3s")
	t.Setenv("TRAINERPANEL_SAMPLE_FALLBACK", "false")
	t.Setenv("TRAINERPANEL_EDIT_SESSION_TTL", "90s")
	t.Setenv("TRAINERPANEL_LOG_LEVEL", "debug")
	t.Setenv("TRAINERPANEL_LOG_FORMAT", "json")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "https://api.example.com/svc/trainer", cfg.APIBaseURL)
	assert.Equal(t, "0.0.0.0:9090", cfg.ListenAddr)
	assert.Equal(t, 3*time.Second, cfg.RequestTimeout)
	assert.False(t, cfg.SampleFallback)
	assert.Equal(t, 90*time.Second, cfg.EditSessionTTL)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
}

func TestLoad_Defaults(t *testing.T) {
	isolateConfigEnv(t)

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/APIRestTrainer/trainer", cfg.APIBaseURL)
	assert.Equal(t, "127.0.0.1:8090", cfg.ListenAddr)
	assert.Equal(t, 10*time.Second, cfg.RequestTimeout)
	assert.True(t, cfg.SampleFallback)
	assert.Equal(t, 10*time.Minute, cfg.EditSessionTTL)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
}

func TestLoad_InvalidDuration(t *testing.T) {
	isolateConfigEnv(t)
	t.Setenv("TRAINERPANEL_REQUEST_TIMEOUT", "soon")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_NonPositiveTimeout(t *testing.T) {
	isolateConfigEnv(t)
	t.Setenv("TRAINERPANEL_REQUEST_TIMEOUT", "0s")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_InvalidBaseURL(t *testing.T) {
	isolateConfigEnv(t)

	for _, raw := range []string{"localhost:8080/trainer", "ftp://host/trainer", "http://"} {
		t.Setenv("TRAINERPANEL_API_BASE_URL", raw)
		_, err := Load()
		assert.Error(t, err, raw)
	}
}

func TestLoad_InvalidLogLevel(t *testing.T) {
	isolateConfigEnv(t)
	t.Setenv("TRAINERPANEL_LOG_LEVEL", "loud")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadStub_Defaults(t *testing.T) {
	isolateConfigEnv(t)

	cfg, err := LoadStub()

	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:8080", cfg.ListenAddr)
	assert.Equal(t, "/APIRestTrainer/trainer", cfg.BasePath)
	assert.Equal(t, "trainerstub.db", cfg.DBPath)
	assert.False(t, cfg.Seed)
}

func TestLoadStub_NormalizesBasePath(t *testing.T) {
	isolateConfigEnv(t)
	t.Setenv("TRAINERSTUB_BASE_PATH", "svc/trainer/")
	t.Setenv("TRAINERSTUB_SEED", "true")

	cfg, err := LoadStub()

	require.NoError(t, err)
	assert.Equal(t, "/svc/trainer", cfg.BasePath)
	assert.True(t, cfg.Seed)
}

func TestLoadStub_EmptyBasePath(t *testing.T) {
	isolateConfigEnv(t)
	t.Setenv("TRAINERSTUB_BASE_PATH", "/")

	_, err := LoadStub()
	assert.Error(t, err)
}

func TestParseLogLevel(t *testing.T) {
	level, err := ParseLogLevel("warn")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelWarn, level)

	_, err = ParseLogLevel("verbose")
	assert.Error(t, err)
}
