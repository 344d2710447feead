package config

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"
)

var (
	// Global configuration instance
	globalConfig *Config
	configMutex  sync.RWMutex
)

// ErrNotInitialized is returned by Get before Set has been called
var ErrNotInitialized = errors.New("configuration not initialized")

// Get returns the global configuration instance
func Get() (*Config, error) {
	configMutex.RLock()
	defer configMutex.RUnlock()

	if globalConfig == nil {
		return nil, ErrNotInitialized
	}

	return globalConfig, nil
}

// Set sets the global configuration instance
func Set(cfg *Config) {
	configMutex.Lock()
	defer configMutex.Unlock()

	globalConfig = cfg
}

// Config represents the complete application configuration
type Config struct {
	API       APIConfig
	UI        UIConfig
	Logging   LoggingConfig
	Demo      DemoConfig
	configDir string // Directory where config was loaded from
}

// APIConfig holds configuration for the search backend client
type APIConfig struct {
	// Connection settings
	Endpoint            string        // Base URL of the search backend
	MaxIdleConns        int           // Maximum number of idle connections
	MaxIdleConnsPerHost int           // Maximum number of idle connections per host
	IdleConnTimeout     time.Duration // How long to keep idle connections alive

	// Request settings
	Timeout    time.Duration // Request timeout
	MaxRetries int           // Retries after the first attempt (0 means a single attempt)

	// Rate limiting
	RequestsPerMinute int // 0 disables the limiter
	BurstLimit        int
}

// UIConfig holds presentation settings for the interactive client
type UIConfig struct {
	PageSize       int           // Suggestions per carousel page
	FadeDelay      time.Duration // Carousel fade transition length
	CopiedFlash    time.Duration // How long "Copied to clipboard" stays visible
	Suggestions    []string      // Built-in query suggestions
	GlamourStyle   string        // "auto", "dark", "light", "notty" ...
	WordWrap       int           // Wrap width for rendered cards
	ShowDisclaimer bool          // Show the disclaimer modal on start
	ReviewCache    int           // Parsed reviews kept in memory
}

// LoggingConfig represents logging configuration
type LoggingConfig struct {
	Level      string // debug, info, warn, error, none
	Format     string // text or json
	Output     string // stdout, stderr, discard or file path
	AddSource  bool   // Include source code position in logs
	TimeFormat string // Time format for logs (empty uses RFC3339)
}

// DemoConfig holds settings for the bundled fixture backend
type DemoConfig struct {
	Addr string // Listen address for demo-server
}

// DefaultSuggestions are offered in the carousel when none are configured
var DefaultSuggestions = []string{
	"Helpful for joint pain",
	"Products for sleep from the Now Foods brand",
	"Best rated product for energy",
	"Supplements that help with anxiety",
	"Good for digestion and bloating",
	"Vitamins for healthy skin",
}

// New returns a new empty Config
func New() *Config {
	return &Config{}
}

// ConfigDir returns the directory the configuration was loaded from
func (c *Config) ConfigDir() string {
	return c.configDir
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if err := c.validateAPI(); err != nil {
		return fmt.Errorf("API config: %w", err)
	}

	if err := c.validateUI(); err != nil {
		return fmt.Errorf("UI config: %w", err)
	}

	if err := c.validateLogging(); err != nil {
		return fmt.Errorf("logging config: %w", err)
	}

	return nil
}

// ParseLogLevel parses a log level string to a slog.Level
func ParseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	case "none":
		return slog.Level(9999)
	default:
		return slog.LevelInfo
	}
}

func (c *Config) validateAPI() error {
	if c.API.Endpoint == "" {
		return fmt.Errorf("endpoint cannot be empty")
	}

	u, err := url.Parse(c.API.Endpoint)
	if err != nil {
		return fmt.Errorf("invalid endpoint %q: %w", c.API.Endpoint, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("endpoint must be http or https, got %q", c.API.Endpoint)
	}
	if u.Host == "" {
		return fmt.Errorf("endpoint has no host: %q", c.API.Endpoint)
	}

	if c.API.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}

	if c.API.MaxRetries < 0 {
		return fmt.Errorf("max retries cannot be negative")
	}

	if c.API.RequestsPerMinute < 0 {
		return fmt.Errorf("requests per minute cannot be negative")
	}

	return nil
}

func (c *Config) validateUI() error {
	if c.UI.PageSize <= 0 {
		return fmt.Errorf("page size must be positive")
	}

	if c.UI.FadeDelay < 0 {
		return fmt.Errorf("fade delay cannot be negative")
	}

	if len(c.UI.Suggestions) == 0 {
		return fmt.Errorf("at least one suggestion is required")
	}

	return nil
}

func (c *Config) validateLogging() error {
	level := strings.ToLower(c.Logging.Level)
	if level != "debug" && level != "info" && level != "warn" && level != "error" && level != "none" {
		return fmt.Errorf("invalid log level: %s", c.Logging.Level)
	}

	format := strings.ToLower(c.Logging.Format)
	if format != "text" && format != "json" {
		return fmt.Errorf("invalid log format: %s", c.Logging.Format)
	}

	if out := c.Logging.Output; out != "stdout" && out != "stderr" && out != "discard" {
		if err := checkDirectoryWritable(filepath.Dir(out)); err != nil {
			return fmt.Errorf("log output: %w", err)
		}
	}

	return nil
}

func checkDirectoryWritable(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	f, err := os.CreateTemp(dir, ".write-test-*")
	if err != nil {
		return fmt.Errorf("directory %s is not writable: %w", dir, err)
	}
	name := f.Name()
	f.Close()
	return os.Remove(name)
}

// getEnvString returns a string from the environment variable
func getEnvString(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvInt returns an int from the environment variable
func getEnvInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvBool returns a bool from the environment variable
func getEnvBool(key string, defaultValue bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

// getEnvDuration returns a time.Duration from the environment variable
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// getEnvList returns a "|"-separated list from the environment variable.
// Empty entries and entries starting with "#" are dropped.
func getEnvList(key string, defaultValue []string) []string {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}

	var out []string
	for _, item := range strings.Split(value, "|") {
		item = strings.TrimSpace(item)
		if item != "" && !strings.HasPrefix(item, "#") {
			out = append(out, item)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
