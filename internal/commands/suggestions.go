package commands

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/tildaslashalef/healthsearch/internal/app"
	"github.com/tildaslashalef/healthsearch/internal/search"
	"github.com/tildaslashalef/healthsearch/internal/utils"
)

// SuggestionsCommand returns the command listing the query suggestions
func SuggestionsCommand() *cli.Command {
	return &cli.Command{
		Name:  "suggestions",
		Usage: "List the query suggestions page by page",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "cached",
				Aliases: []string{"c"},
				Usage:   "Also offer the queries the backend has cached",
			},
		},
		Action: suggestionsAction,
	}
}

func suggestionsAction(c *cli.Context) error {
	application, err := app.FromContext(c)
	if err != nil {
		return err
	}

	ui := application.Config.UI
	state := search.NewState(ui.Suggestions, ui.PageSize, false)

	if c.Bool("cached") {
		h, err := application.Client.Health(c.Context)
		state.ApplyHealth(h, err)
		if err != nil {
			utils.PrintWarning(fmt.Sprintf("Backend offline, showing built-in suggestions only: %v", err))
		}
	}

	w := state.Suggestions
	utils.PrintHeading(fmt.Sprintf("%d suggestions", w.Len()))
	for page := 0; page < w.Pages(); page++ {
		utils.PrintTreeList(fmt.Sprintf("Page %d/%d", page+1, w.Pages()), w.Visible())
		state.SuggestionsRight()
	}

	return nil
}
