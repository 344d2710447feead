package commands

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"

	"github.com/tildaslashalef/healthsearch/internal/app"
	"github.com/tildaslashalef/healthsearch/internal/mockapi"
	"github.com/tildaslashalef/healthsearch/internal/utils"
)

// DemoServerCommand returns the command serving the fixture backend
func DemoServerCommand() *cli.Command {
	return &cli.Command{
		Name:  "demo-server",
		Usage: "Serve a local demo backend from built-in fixtures",
		Description: "Serves /health and /generate_query from embedded fixtures so the " +
			"client can be tried without a vector database or an LLM key.",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "addr",
				Aliases: []string{"a"},
				Usage:   "Address to listen on (defaults to HEALTHSEARCH_DEMO_ADDR)",
			},
			&cli.DurationFlag{
				Name:  "latency",
				Usage: "Artificial delay added to every query",
			},
		},
		Action: demoServerAction,
	}
}

func demoServerAction(c *cli.Context) error {
	application, err := app.FromContext(c)
	if err != nil {
		return err
	}

	addr := c.String("addr")
	if addr == "" {
		addr = application.Config.Demo.Addr
	}

	fixtures, err := mockapi.LoadFixtures()
	if err != nil {
		return fmt.Errorf("failed to load demo fixtures: %w", err)
	}

	ctx, stop := signal.NotifyContext(c.Context, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	utils.PrintHeading("Healthsearch demo backend")
	utils.PrintInfo("Listening on " + color.YellowString("%s", addr))
	utils.PrintInfo(fmt.Sprintf("%d fixture queries, try %s", len(fixtures.Entries), color.CyanString("healthsearch query \"Helpful for joint pain\"")))

	srv := mockapi.NewServer(fixtures, mockapi.WithLatency(c.Duration("latency")))
	if err := srv.ListenAndServe(ctx, addr); err != nil {
		return err
	}

	utils.PrintSuccess(fmt.Sprintf("Demo backend stopped after %d requests", srv.Requests()))
	return nil
}
