package commands

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"

	"github.com/tildaslashalef/healthsearch/internal/annotation"
	"github.com/tildaslashalef/healthsearch/internal/app"
	"github.com/tildaslashalef/healthsearch/internal/healthsearch"
	"github.com/tildaslashalef/healthsearch/internal/loggy"
	"github.com/tildaslashalef/healthsearch/internal/search"
	"github.com/tildaslashalef/healthsearch/internal/utils"
)

// highlight marks annotated review spans in terminal output
var highlight = color.New(color.FgYellow, color.Bold)

// QueryCommand returns the non-interactive query command
func QueryCommand() *cli.Command {
	return &cli.Command{
		Name:      "query",
		Aliases:   []string{"q"},
		Usage:     "Run a single natural language query and print the results",
		ArgsUsage: "<text>",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "reviews",
				Aliases: []string{"r"},
				Usage:   "Print every review with the matching passages highlighted",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Print the raw backend response as JSON",
			},
		},
		Action: queryAction,
	}
}

func queryAction(c *cli.Context) error {
	application, err := app.FromContext(c)
	if err != nil {
		return err
	}

	text := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	if text == "" {
		return cli.Exit("a query is required, e.g. healthsearch query \"Helpful for joint pain\"", 1)
	}

	ctx := loggy.WithRequestID(c.Context, loggy.NewRequestID())
	resp, err := application.Client.GenerateQuery(ctx, text)
	if err != nil {
		return fmt.Errorf("query failed: %w", err)
	}

	if c.Bool("json") {
		out, err := json.MarshalIndent(resp, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode response: %w", err)
		}
		fmt.Fprintln(utils.Out, string(out))
		return nil
	}

	printQueryResult(application.Parser, resp, c.Bool("reviews"))
	return nil
}

// printQueryResult renders a backend answer the way the interactive client lays it out
func printQueryResult(parser *annotation.Parser, resp *healthsearch.GenerateQueryResponse, withReviews bool) {
	state := search.NewState(nil, 0, false)
	state.ApplyResult(resp)

	if state.IsEasterEgg() {
		utils.PrintHeading(strings.TrimSpace(state.TransformedQuery))
		utils.PrintInfo(state.GenerativeResult)
		return
	}

	utils.PrintHeading("📝 GraphQL Query")
	utils.PrintCode(strings.TrimSpace(state.TransformedQuery))
	fmt.Fprintln(utils.Out)

	utils.PrintHeading("🤖 Generated Product Summary")
	fmt.Fprintln(utils.Out, state.GenerativeResult)
	fmt.Fprintln(utils.Out)

	if len(state.Results) == 0 {
		utils.PrintWarning("No products found")
		return
	}

	rows := make([][]string, 0, len(state.Results))
	for i, p := range state.Results {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			orDefault(p.Brand, "No Brand"),
			orDefault(p.Name, "Product Name"),
			stars(p.Rating),
			strconv.Itoa(len(p.Reviews)),
			strconv.FormatFloat(p.Distance, 'f', 4, 64),
		})
	}
	utils.PrintTable(
		[]string{"#", "Brand", "Name", "Rating", "Reviews", "Distance"},
		rows,
		utils.TableOptions{Title: "Products", MaxColumnWidth: 40},
	)

	if !withReviews {
		return
	}

	for i, p := range state.Results {
		utils.PrintDivider()
		utils.PrintHeading(fmt.Sprintf("%d. %s - %s", i+1, orDefault(p.Brand, "No Brand"), orDefault(p.Name, "Product Name")))
		if len(p.Reviews) == 0 {
			utils.PrintInfo("No reviews")
			continue
		}
		for _, spans := range parser.ParseAll(p.Reviews) {
			fmt.Fprintln(utils.Out, "  • "+highlightSpans(spans))
		}
	}
}

// highlightSpans joins the spans of a review, coloring the annotated ones
func highlightSpans(spans []annotation.TextSpan) string {
	parts := make([]string, 0, len(spans))
	for _, s := range spans {
		if s.Text == "" {
			continue
		}
		if s.IsAnnotation {
			parts = append(parts, highlight.Sprint(s.Text))
		} else {
			parts = append(parts, s.Text)
		}
	}
	return strings.Join(parts, " ")
}

func stars(rating float64) string {
	full, half, empty := search.Stars(rating)
	return strings.Repeat("★", full) + strings.Repeat("✬", half) + strings.Repeat("☆", empty) +
		fmt.Sprintf(" %.1f", rating)
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
