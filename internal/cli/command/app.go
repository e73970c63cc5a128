package command

import (
	"errors"
	"fmt"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/llmops-go/internal/cli/output"
	"github.com/yndnr/llmops-go/internal/core/domain"
)

// AppCommand returns the app subcommand group.
func AppCommand() *cli.Command {
	return &cli.Command{
		Name:  "app",
		Usage: "Work with console apps",
		Subcommands: []*cli.Command{
			{
				Name:      "debug",
				Usage:     "Send a query to an app and print its answer",
				ArgsUsage: "APP_ID QUERY...",
				Action:    appDebug,
			},
		},
	}
}

func appDebug(c *cli.Context) error {
	if c.NArg() < 2 {
		return errors.New("app ID and query required")
	}
	appID := c.Args().First()
	query := strings.Join(c.Args().Tail(), " ")

	rt, err := EnsureRuntime(c)
	if err != nil {
		return err
	}

	content, err := rt.Apps.Debug(c.Context, appID, query)
	if err != nil {
		return err
	}

	format, err := outputFormat(c, rt.Config.Output)
	if err != nil {
		return err
	}
	if format == output.FormatTable {
		fmt.Fprintln(rt.Stdout, content)
		return nil
	}
	return rt.Print(format, false, domain.DebugAppResponse{Content: content})
}
