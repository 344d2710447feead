// Package app provides the application initialization and lifecycle management
package app

import (
	"fmt"
	"os"

	"github.com/tildaslashalef/healthsearch/internal/annotation"
	"github.com/tildaslashalef/healthsearch/internal/config"
	"github.com/tildaslashalef/healthsearch/internal/healthsearch"
	"github.com/tildaslashalef/healthsearch/internal/loggy"
	"github.com/urfave/cli/v2"
)

// App represents the application instance with its dependencies
type App struct {
	Config  *config.Config
	Client  *healthsearch.Client
	Parser  *annotation.Parser
	Version string
}

// Options tweak application startup
type Options struct {
	// Endpoint overrides HEALTHSEARCH_API_ENDPOINT when not empty
	Endpoint string
	Version  string
}

// New initializes a new application instance with all its dependencies
func New(opts Options) (*App, error) {
	// Initialize configuration
	cfg, err := initConfig(opts.Endpoint)
	if err != nil {
		return nil, err
	}

	// Initialize logger
	if err := initLogger(cfg); err != nil {
		return nil, err
	}

	loggy.Info("Application initializing",
		"version", opts.Version,
		"log_level", cfg.Logging.Level,
		"endpoint", cfg.API.Endpoint,
	)

	app := initServices(cfg)
	app.Version = opts.Version

	loggy.Info("Application initialized successfully")
	return app, nil
}

// initConfig loads and sets up the application configuration
func initConfig(endpoint string) (*config.Config, error) {
	cfg, err := config.LoadFromEnv("", "")
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	if endpoint != "" {
		cfg.API.Endpoint = endpoint
		if err := cfg.Validate(); err != nil {
			return nil, fmt.Errorf("invalid endpoint override: %w", err)
		}
	}

	// Set the global configuration
	config.Set(cfg)
	return cfg, nil
}

// initLogger initializes the logging system
func initLogger(cfg *config.Config) error {
	err := loggy.Init(loggy.Config{
		Level:      config.ParseLogLevel(cfg.Logging.Level),
		Format:     cfg.Logging.Format,
		Output:     cfg.Logging.Output,
		AddSource:  cfg.Logging.AddSource,
		TimeFormat: cfg.Logging.TimeFormat,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	return nil
}

// initServices builds the services shared by every command
func initServices(cfg *config.Config) *App {
	return &App{
		Config: cfg,
		Client: healthsearch.NewClient(cfg.API),
		Parser: annotation.NewParser(cfg.UI.ReviewCache),
	}
}

// NewWithConfig builds an App around an already loaded configuration
func NewWithConfig(cfg *config.Config) *App {
	return initServices(cfg)
}

// Shutdown gracefully shuts down the application
func (app *App) Shutdown() error {
	loggy.Info("Shutting down application")

	if app.Parser != nil {
		hits, misses := app.Parser.Stats()
		loggy.Debug("Review parser stats", "hits", hits, "misses", misses, "entries", app.Parser.Len())
	}

	if err := loggy.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to close log file: %v\n", err)
	}

	return nil
}

// FromContext retrieves the App instance from the CLI context
func FromContext(c *cli.Context) (*App, error) {
	if c.App.Metadata == nil {
		return nil, fmt.Errorf("app metadata not found in context")
	}

	app, ok := c.App.Metadata["app"].(*App)
	if !ok {
		return nil, fmt.Errorf("app instance not found in context")
	}

	return app, nil
}
