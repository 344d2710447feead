package commands

import (
	"fmt"
	"strconv"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"

	"github.com/tildaslashalef/healthsearch/internal/app"
	"github.com/tildaslashalef/healthsearch/internal/healthsearch"
	"github.com/tildaslashalef/healthsearch/internal/loggy"
	"github.com/tildaslashalef/healthsearch/internal/search"
	"github.com/tildaslashalef/healthsearch/internal/utils"
)

// HealthCommand returns the command that checks the search backend
func HealthCommand() *cli.Command {
	return &cli.Command{
		Name:  "health",
		Usage: "Check whether the search backend is online",
		Description: "Calls the backend /health endpoint once and prints its counters. " +
			"Exits with a non-zero status when the backend is offline.",
		Action: healthAction,
	}
}

func healthAction(c *cli.Context) error {
	application, err := app.FromContext(c)
	if err != nil {
		return err
	}

	state := search.NewState(nil, application.Config.UI.PageSize, false)
	h, err := application.Client.Health(c.Context)
	state.ApplyHealth(h, err)

	utils.PrintHeading("Healthsearch backend")
	utils.PrintTable(
		[]string{"Endpoint", "Status", "Requests", "Cached"},
		[][]string{{
			application.Client.Endpoint(),
			statusText(state.APIStatus),
			strconv.Itoa(state.Requests),
			strconv.Itoa(state.Cached),
		}},
		utils.TableOptions{Title: "Health"},
	)

	if state.APIStatus == search.Offline {
		loggy.Warn("Backend offline", "endpoint", application.Client.Endpoint(), "error", err)
		utils.PrintError(offlineReason(err))
		return cli.Exit("backend is offline", 1)
	}

	if h.Message != "" {
		utils.PrintKeyValue("Message", h.Message)
	}
	if len(state.CachedQueries) > 0 {
		utils.PrintHeading("Cached queries")
		utils.PrintList(state.CachedQueries, "")
	}

	return nil
}

func statusText(s search.APIStatus) string {
	if s == search.Online {
		return color.GreenString("● %s", s)
	}
	return color.RedString("● %s", s)
}

func offlineReason(err error) string {
	if apiErr, ok := healthsearch.IsAPIError(err); ok {
		return fmt.Sprintf("Backend answered with status %d", apiErr.StatusCode)
	}
	return fmt.Sprintf("Backend unreachable: %v", err)
}
