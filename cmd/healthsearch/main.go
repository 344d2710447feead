package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/tildaslashalef/healthsearch/internal/app"
	"github.com/tildaslashalef/healthsearch/internal/commands"
)

// Version information - populated at build time
var (
	Version    = "dev"
	BuildTime  = "unknown"
	CommitHash = "unknown"
	Author     = "unknown"
	Email      = "unknown"
)

var (
	globalFlags = []cli.Flag{
		&cli.StringFlag{
			Name:    "endpoint",
			Aliases: []string{"e"},
			Usage:   "Search backend base URL (overrides HEALTHSEARCH_API_ENDPOINT)",
		},
	}
)

func main() {
	cliApp := &cli.App{
		Name:  "healthsearch",
		Usage: "Search supplements by health effect, based on user reviews",
		Description: "Healthsearch turns a natural language question into a structured product query, " +
			"shows a generated summary and lets you browse matching products and their annotated reviews.\n\n" +
			"When run without subcommands, Healthsearch starts the interactive interface (default action).\n" +
			"Healthsearch is NOT intended to give any health advice.",
		Version: Version,
		Compiled: func() time.Time {
			t, err := time.Parse(time.RFC3339, BuildTime)
			if err != nil {
				return time.Now()
			}
			return t
		}(),
		Authors: []*cli.Author{
			{
				Name:  Author,
				Email: Email,
			},
		},
		Flags: globalFlags,
		Before: func(c *cli.Context) error {
			// Initialize the application
			application, err := app.New(app.Options{
				Endpoint: c.String("endpoint"),
				Version:  Version,
			})
			if err != nil {
				return fmt.Errorf("failed to initialize application: %w", err)
			}

			// Store the app instance in the context for later use
			c.App.Metadata = map[string]interface{}{
				"app": application,
			}

			return nil
		},
		After: func(c *cli.Context) error {
			// Gracefully shutdown the application
			if app, ok := c.App.Metadata["app"].(*app.App); ok {
				return app.Shutdown()
			}
			return nil
		},
		Commands: []*cli.Command{
			commands.SearchCommand(),
			commands.HealthCommand(),
			commands.QueryCommand(),
			commands.SuggestionsCommand(),
			commands.DemoServerCommand(),
			commands.InitCommand(),
		},
		Action: func(c *cli.Context) error {
			// Default action is to run the search interface
			return commands.SearchCommand().Action(c)
		},
	}

	if err := cliApp.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
