package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// unsetForTest clears key for the duration of the test and restores it afterwards
func unsetForTest(t *testing.T, key string) {
	t.Helper()
	t.Setenv(key, "")
	require.NoError(t, os.Unsetenv(key))
}

func TestGetEnvHelpers(t *testing.T) {
	t.Setenv("TEST_HS_INT", "42")
	t.Setenv("TEST_HS_BAD_INT", "forty-two")
	t.Setenv("TEST_HS_BOOL", "false")
	t.Setenv("TEST_HS_DURATION", "250ms")
	t.Setenv("TEST_HS_LIST", " a | b |# skipped| |c ")
	t.Setenv("TEST_HS_EMPTY_LIST", " | ")

	assert.Equal(t, 42, getEnvInt("TEST_HS_INT", 1))
	assert.Equal(t, 1, getEnvInt("TEST_HS_BAD_INT", 1))
	assert.Equal(t, 7, getEnvInt("TEST_HS_MISSING", 7))
	assert.False(t, getEnvBool("TEST_HS_BOOL", true))
	assert.Equal(t, 250*time.Millisecond, getEnvDuration("TEST_HS_DURATION", time.Second))
	assert.Equal(t, "fallback", getEnvString("TEST_HS_MISSING", "fallback"))
	assert.Equal(t, []string{"a", "b", "c"}, getEnvList("TEST_HS_LIST", nil))
	assert.Equal(t, []string{"x"}, getEnvList("TEST_HS_EMPTY_LIST", []string{"x"}))
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"none", slog.Level(9999)},
		{"bogus", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseLogLevel(tt.input))
		})
	}
}

func TestLoadFromEnvDefaults(t *testing.T) {
	unsetForTest(t, "ENV_FILE_PATH")
	unsetForTest(t, "HEALTHSEARCH_API_ENDPOINT")
	unsetForTest(t, "HEALTHSEARCH_API_MAX_RETRIES")
	unsetForTest(t, "HEALTHSEARCH_UI_SUGGESTIONS")
	unsetForTest(t, "HEALTHSEARCH_LOG_OUTPUT")

	dir := t.TempDir()
	cfg, err := LoadFromEnv(dir, "")
	require.NoError(t, err)

	assert.Equal(t, DefaultEndpoint, cfg.API.Endpoint)
	assert.Equal(t, 0, cfg.API.MaxRetries)
	assert.Equal(t, 0, cfg.API.RequestsPerMinute)
	assert.Equal(t, 3, cfg.UI.PageSize)
	assert.Equal(t, 150*time.Millisecond, cfg.UI.FadeDelay)
	assert.Equal(t, 2*time.Second, cfg.UI.CopiedFlash)
	assert.Equal(t, DefaultSuggestions, cfg.UI.Suggestions)
	assert.Equal(t, filepath.Join(dir, "healthsearch.log"), cfg.Logging.Output)
	assert.Equal(t, dir, cfg.ConfigDir())
}

func TestLoadFromEnvFile(t *testing.T) {
	unsetForTest(t, "HEALTHSEARCH_API_ENDPOINT")
	unsetForTest(t, "HEALTHSEARCH_UI_SUGGESTIONS")
	unsetForTest(t, "HEALTHSEARCH_API_MAX_RETRIES")

	dir := t.TempDir()
	envFile := filepath.Join(dir, "custom.env")
	content := "HEALTHSEARCH_API_ENDPOINT=https://search.example.com\n" +
		"HEALTHSEARCH_API_MAX_RETRIES=2\n" +
		"HEALTHSEARCH_UI_SUGGESTIONS=one|two\n"
	require.NoError(t, os.WriteFile(envFile, []byte(content), 0644))
	t.Setenv("ENV_FILE_PATH", envFile)

	cfg, err := LoadFromEnv(dir, "")
	require.NoError(t, err)

	assert.Equal(t, "https://search.example.com", cfg.API.Endpoint)
	assert.Equal(t, 2, cfg.API.MaxRetries)
	assert.Equal(t, []string{"one", "two"}, cfg.UI.Suggestions)
}

func TestLoadFromEnvMissingFile(t *testing.T) {
	t.Setenv("ENV_FILE_PATH", filepath.Join(t.TempDir(), "nope.env"))

	_, err := LoadFromEnv(t.TempDir(), "")
	assert.Error(t, err)
}

func validConfig(t *testing.T) *Config {
	return &Config{
		API:     APIConfig{Endpoint: DefaultEndpoint, Timeout: time.Second},
		UI:      UIConfig{PageSize: 3, Suggestions: DefaultSuggestions},
		Logging: LoggingConfig{Level: "info", Format: "text", Output: filepath.Join(t.TempDir(), "x.log")},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"valid", func(c *Config) {}, ""},
		{"empty endpoint", func(c *Config) { c.API.Endpoint = "" }, "API config: endpoint cannot be empty"},
		{"bad scheme", func(c *Config) { c.API.Endpoint = "ftp://host" }, "API config: endpoint must be http or https"},
		{"no host", func(c *Config) { c.API.Endpoint = "http://" }, "API config: endpoint has no host"},
		{"zero timeout", func(c *Config) { c.API.Timeout = 0 }, "API config: timeout must be positive"},
		{"negative retries", func(c *Config) { c.API.MaxRetries = -1 }, "API config: max retries cannot be negative"},
		{"zero page size", func(c *Config) { c.UI.PageSize = 0 }, "UI config: page size must be positive"},
		{"no suggestions", func(c *Config) { c.UI.Suggestions = nil }, "UI config: at least one suggestion is required"},
		{"bad level", func(c *Config) { c.Logging.Level = "loud" }, "logging config: invalid log level: loud"},
		{"bad format", func(c *Config) { c.Logging.Format = "xml" }, "logging config: invalid log format: xml"},
		{"stderr output", func(c *Config) { c.Logging.Output = "stderr" }, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig(t)
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestGlobalConfig(t *testing.T) {
	Set(nil)
	_, err := Get()
	assert.ErrorIs(t, err, ErrNotInitialized)

	cfg := New()
	Set(cfg)
	got, err := Get()
	require.NoError(t, err)
	assert.Same(t, cfg, got)
}

func TestSetupConfigDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested")

	envPath, err := SetupConfigDirectory(dir, false)
	require.NoError(t, err)
	data, err := os.ReadFile(envPath)
	require.NoError(t, err)
	assert.Equal(t, SampleEnv(), data)
	assert.Contains(t, string(data), "HEALTHSEARCH_API_ENDPOINT=")

	require.NoError(t, os.WriteFile(envPath, []byte("CUSTOM=1\n"), 0644))

	_, err = SetupConfigDirectory(dir, false)
	require.NoError(t, err)
	data, _ = os.ReadFile(envPath)
	assert.Equal(t, "CUSTOM=1\n", string(data), "existing file is kept without backup flag")

	_, err = SetupConfigDirectory(dir, true)
	require.NoError(t, err)
	backups, _ := filepath.Glob(envPath + ".*.bak")
	require.Len(t, backups, 1)
	backup, _ := os.ReadFile(backups[0])
	assert.Equal(t, "CUSTOM=1\n", string(backup))
}
