package command

import (
	"errors"
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/llmops-go/internal/cli/output"
	"github.com/yndnr/llmops-go/internal/core/domain"
)

// APIKeyCommand returns the apikey subcommand group.
func APIKeyCommand() *cli.Command {
	keyIDArg := "KEY_ID"

	return &cli.Command{
		Name:    "apikey",
		Aliases: []string{"key"},
		Usage:   "Manage OpenAPI keys",
		Subcommands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List API keys one page at a time",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "page",
						Value: domain.DefaultCurrentPage,
						Usage: "Page number",
					},
					&cli.IntFlag{
						Name:  "page-size",
						Value: domain.DefaultPageSize,
						Usage: "Keys per page",
					},
				},
				Action: apikeyList,
			},
			{
				Name:  "create",
				Usage: "Create a new API key",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "remark",
						Aliases: []string{"r"},
						Usage:   "Key remark",
					},
					&cli.BoolFlag{
						Name:  "active",
						Value: true,
						Usage: "Create the key active",
					},
				},
				Action: apikeyCreate,
			},
			{
				Name:      "update",
				Usage:     "Update an API key's remark and state",
				ArgsUsage: keyIDArg,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "remark",
						Aliases: []string{"r"},
						Usage:   "Key remark",
					},
					&cli.BoolFlag{
						Name:  "active",
						Value: true,
						Usage: "Key state",
					},
				},
				Action: apikeyUpdate,
			},
			{
				Name:      "activate",
				Usage:     "Activate an API key",
				ArgsUsage: keyIDArg,
				Action:    apikeySetActive(true),
			},
			{
				Name:      "deactivate",
				Usage:     "Deactivate an API key",
				ArgsUsage: keyIDArg,
				Action:    apikeySetActive(false),
			},
			{
				Name:      "delete",
				Usage:     "Delete an API key",
				ArgsUsage: keyIDArg,
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:    "force",
						Aliases: []string{"f"},
						Usage:   "Skip confirmation",
					},
				},
				Action: apikeyDelete,
			},
		},
	}
}

func keyIDFrom(c *cli.Context) (string, error) {
	keyID := c.Args().First()
	if keyID == "" {
		return "", errors.New("key ID required")
	}
	return keyID, nil
}

func apikeyList(c *cli.Context) error {
	rt, err := EnsureRuntime(c)
	if err != nil {
		return err
	}

	page, err := rt.APIKeys.ListPage(c.Context, domain.PaginatorRequest{
		CurrentPage: c.Int("page"),
		PageSize:    c.Int("page-size"),
	})
	if err != nil {
		return err
	}

	format, err := outputFormat(c, rt.Config.Output)
	if err != nil {
		return err
	}
	if format != output.FormatTable {
		return rt.Print(format, c.Bool("wide"), page)
	}

	if len(page.List) == 0 {
		fmt.Fprintln(rt.Stdout, "No API keys.")
		return nil
	}
	if err := rt.Print(format, c.Bool("wide"), page.List); err != nil {
		return err
	}

	p := page.Paginator
	fmt.Fprintf(rt.Stdout, "\nPage %d/%d, %d keys total\n", p.CurrentPage, p.TotalPage, p.TotalRecord)
	return nil
}

func apikeyCreate(c *cli.Context) error {
	rt, err := EnsureRuntime(c)
	if err != nil {
		return err
	}

	msg, err := rt.APIKeys.Create(c.Context, domain.CreateAPIKeyRequest{
		IsActive: c.Bool("active"),
		Remark:   c.String("remark"),
	})
	if err != nil {
		return err
	}

	rt.Notifier.Success(msg)
	return nil
}

func apikeyUpdate(c *cli.Context) error {
	keyID, err := keyIDFrom(c)
	if err != nil {
		return err
	}

	rt, err := EnsureRuntime(c)
	if err != nil {
		return err
	}

	msg, err := rt.APIKeys.Update(c.Context, keyID, domain.UpdateAPIKeyRequest{
		IsActive: c.Bool("active"),
		Remark:   c.String("remark"),
	})
	if err != nil {
		return err
	}

	rt.Notifier.Success(msg)
	return nil
}

func apikeySetActive(active bool) cli.ActionFunc {
	return func(c *cli.Context) error {
		keyID, err := keyIDFrom(c)
		if err != nil {
			return err
		}

		rt, err := EnsureRuntime(c)
		if err != nil {
			return err
		}

		msg, err := rt.APIKeys.SetActive(c.Context, keyID, active)
		if err != nil {
			return err
		}

		rt.Notifier.Success(msg)
		return nil
	}
}

func apikeyDelete(c *cli.Context) error {
	keyID, err := keyIDFrom(c)
	if err != nil {
		return err
	}

	rt, err := EnsureRuntime(c)
	if err != nil {
		return err
	}

	if !c.Bool("force") {
		ok, err := confirm(rt, fmt.Sprintf("Are you sure you want to delete API key '%s'?", keyID))
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(rt.Stdout, "Cancelled.")
			return nil
		}
	}

	msg, err := rt.APIKeys.Delete(c.Context, keyID)
	if err != nil {
		return err
	}

	rt.Notifier.Success(msg)
	return nil
}
