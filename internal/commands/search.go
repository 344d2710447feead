package commands

import (
	"github.com/urfave/cli/v2"

	"github.com/tildaslashalef/healthsearch/internal/app"
	"github.com/tildaslashalef/healthsearch/internal/loggy"
	"github.com/tildaslashalef/healthsearch/internal/tui"
)

// SearchCommand returns the CLI command for the TUI interface
func SearchCommand() *cli.Command {
	return &cli.Command{
		Name:        "search",
		Usage:       "Start the interactive search interface",
		Description: "Launch Healthsearch in interactive TUI mode (default action)",
		Action:      searchAction,
	}
}

// searchAction is the main action function for the TUI command
func searchAction(c *cli.Context) error {
	application, err := app.FromContext(c)
	if err != nil {
		return err
	}

	loggy.Info("Starting TUI mode")

	return tui.NewService(application).Run(c.Context)
}
