package commands

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/tildaslashalef/healthsearch/internal/config"
	"github.com/tildaslashalef/healthsearch/internal/utils"
	"github.com/urfave/cli/v2"
)

// InitCommand returns the CLI command for initializing Healthsearch
func InitCommand() *cli.Command {
	return &cli.Command{
		Name:  "init",
		Usage: "Initialize the Healthsearch configuration directory",
		Description: "Creates the configuration directory (~/.healthsearch by default) and " +
			"writes a commented .env with every supported setting. An existing .env is " +
			"kept unless --force is given, in which case a dated backup is made first.",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "dir",
				Usage: "Configuration directory to initialize",
			},
			&cli.BoolFlag{
				Name:    "force",
				Aliases: []string{"f"},
				Usage:   "Overwrite an existing .env after backing it up",
			},
		},
		Action: func(c *cli.Context) error {
			utils.PrintHeading("Initializing Healthsearch")

			configDir := c.String("dir")
			if configDir == "" {
				dir, err := config.DefaultDir()
				if err != nil {
					utils.PrintError(err.Error())
					return err
				}
				configDir = dir
			}
			utils.PrintInfo("Configuration directory: " + color.YellowString("%s", configDir))

			utils.PrintInfo("Extracting default configuration file")
			configFilePath, err := config.SetupConfigDirectory(configDir, c.Bool("force"))
			if err != nil {
				utils.PrintError(fmt.Sprintf("Failed to set up configuration files: %s", err))
				return fmt.Errorf("failed to set up configuration directory: %w", err)
			}

			// Load the configuration back to make sure the written file is valid
			cfg, err := config.LoadFromEnv(configDir, configFilePath)
			if err != nil {
				utils.PrintError(fmt.Sprintf("Failed to load configuration: %s", err))
				return fmt.Errorf("failed to load configuration: %w", err)
			}

			utils.PrintSuccess("Healthsearch initialized successfully!")
			utils.PrintInfo("Configuration file: " + color.YellowString("%s", configFilePath))
			utils.PrintInfo("Backend endpoint: " + color.YellowString("%s", cfg.API.Endpoint))
			utils.PrintInfo("Log file location: " + color.YellowString("%s", cfg.Logging.Output))
			fmt.Fprintln(utils.Out)
			utils.PrintInfo("Run " + color.CyanString("healthsearch demo-server") + " to try it without a backend, then " +
				color.CyanString("healthsearch") + " to start searching.")

			return nil
		},
	}
}
