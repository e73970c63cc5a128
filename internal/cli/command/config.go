package command

import (
	"errors"
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"

	"github.com/yndnr/llmops-go/internal/cli/config"
	"github.com/yndnr/llmops-go/internal/cli/output"
)

// ConfigCommand returns the config subcommand group.
func ConfigCommand() *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "CLI configuration management",
		Subcommands: []*cli.Command{
			{
				Name:   "show",
				Usage:  "Show the effective configuration (file, environment and flags merged)",
				Action: configShow,
			},
			{
				Name:   "path",
				Usage:  "Print the configuration file path",
				Action: configPath,
			},
			{
				Name:      "validate",
				Usage:     "Validate a configuration file",
				ArgsUsage: "[FILE]",
				Action:    configValidate,
			},
			{
				Name:  "init",
				Usage: "Write a default configuration file",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:    "force",
						Aliases: []string{"f"},
						Usage:   "Overwrite an existing file",
					},
				},
				Action: configInit,
			},
		},
	}
}

func configShow(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	format, err := outputFormat(c, string(output.FormatYAML))
	if err != nil {
		return err
	}
	if format != output.FormatYAML {
		return printTo(c.App.Writer, format, false, cfg.Values())
	}

	// yaml.v3 keeps the file layout and renders durations as strings.
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	_, err = c.App.Writer.Write(data)
	return err
}

func configPath(c *cli.Context) error {
	fmt.Fprintln(c.App.Writer, ParseGlobalFlags(c).ConfigFile)
	return nil
}

func configValidate(c *cli.Context) error {
	path := c.Args().First()
	if path == "" {
		path = ParseGlobalFlags(c).ConfigFile
	}

	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		fmt.Fprintf(c.App.Writer, "No configuration file found at %s\n", path)
		fmt.Fprintf(c.App.Writer, "Using default settings.\n")
		return nil
	}

	if _, err := config.Load(path, nil); err != nil {
		return fmt.Errorf("invalid configuration %s: %w", path, err)
	}

	fmt.Fprintf(c.App.Writer, "✓ Configuration file is valid: %s\n", path)
	return nil
}

func configInit(c *cli.Context) error {
	path := ParseGlobalFlags(c).ConfigFile

	if _, err := os.Stat(path); err == nil && !c.Bool("force") {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}

	if err := config.Save(config.Default(), path); err != nil {
		return err
	}

	fmt.Fprintf(c.App.Writer, "Wrote default configuration to %s\n", path)
	return nil
}
