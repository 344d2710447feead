package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
)

// DirName is the config directory created under the user's home
const DirName = ".healthsearch"

// DefaultEndpoint is the backend address used when none is configured
const DefaultEndpoint = "http://localhost:8000"

// DefaultDir returns ~/.healthsearch
func DefaultDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(homeDir, DirName), nil
}

// LoadFromEnv loads configuration from environment variables.
// Parameters:
// - configDir: directory holding the .env file and the log (empty for ~/.healthsearch)
// - configFilePath: path to a .env file (empty for <configDir>/.env)
//
// ENV_FILE_PATH, when set, takes precedence over both. Without it the .env in
// the config directory is tried first, then one in the working directory.
func LoadFromEnv(configDir string, configFilePath string) (*Config, error) {
	cfg := New()

	if configDir == "" {
		dir, err := DefaultDir()
		if err != nil {
			return nil, err
		}
		configDir = dir
	}
	cfg.configDir = configDir

	if configFilePath == "" {
		configFilePath = filepath.Join(configDir, ".env")
	}

	if envFilePath := getEnvString("ENV_FILE_PATH", ""); envFilePath != "" {
		if err := godotenv.Load(envFilePath); err != nil {
			return nil, fmt.Errorf("failed to load env file from %s: %w", envFilePath, err)
		}
	} else if err := godotenv.Load(configFilePath); err != nil {
		_ = godotenv.Load() // Ignore errors if file doesn't exist
	}

	cfg.API = APIConfig{
		Endpoint:            getEnvString("HEALTHSEARCH_API_ENDPOINT", DefaultEndpoint),
		Timeout:             getEnvDuration("HEALTHSEARCH_API_TIMEOUT", 60*time.Second),
		MaxRetries:          getEnvInt("HEALTHSEARCH_API_MAX_RETRIES", 0),
		RequestsPerMinute:   getEnvInt("HEALTHSEARCH_API_REQUESTS_PER_MINUTE", 0),
		BurstLimit:          getEnvInt("HEALTHSEARCH_API_BURST_LIMIT", 1),
		MaxIdleConns:        getEnvInt("HEALTHSEARCH_API_MAX_IDLE_CONNS", 10),
		MaxIdleConnsPerHost: getEnvInt("HEALTHSEARCH_API_MAX_IDLE_CONNS_PER_HOST", 10),
		IdleConnTimeout:     getEnvDuration("HEALTHSEARCH_API_IDLE_CONN_TIMEOUT", 90*time.Second),
	}

	cfg.UI = UIConfig{
		PageSize:       getEnvInt("HEALTHSEARCH_UI_PAGE_SIZE", 3),
		FadeDelay:      getEnvDuration("HEALTHSEARCH_UI_FADE_DELAY", 150*time.Millisecond),
		CopiedFlash:    getEnvDuration("HEALTHSEARCH_UI_COPIED_FLASH", 2*time.Second),
		Suggestions:    getEnvList("HEALTHSEARCH_UI_SUGGESTIONS", DefaultSuggestions),
		GlamourStyle:   getEnvString("HEALTHSEARCH_UI_GLAMOUR_STYLE", "auto"),
		WordWrap:       getEnvInt("HEALTHSEARCH_UI_WORD_WRAP", 80),
		ShowDisclaimer: getEnvBool("HEALTHSEARCH_UI_SHOW_DISCLAIMER", true),
		ReviewCache:    getEnvInt("HEALTHSEARCH_UI_REVIEW_CACHE", 512),
	}

	cfg.Logging = LoggingConfig{
		Level:      getEnvString("HEALTHSEARCH_LOG_LEVEL", "info"),
		Format:     getEnvString("HEALTHSEARCH_LOG_FORMAT", "text"),
		Output:     getEnvString("HEALTHSEARCH_LOG_OUTPUT", filepath.Join(configDir, "healthsearch.log")),
		AddSource:  getEnvBool("HEALTHSEARCH_LOG_ADD_SOURCE", true),
		TimeFormat: getEnvString("HEALTHSEARCH_LOG_TIME_FORMAT", time.RFC3339),
	}

	cfg.Demo = DemoConfig{
		Addr: getEnvString("HEALTHSEARCH_DEMO_ADDR", ":8000"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}
