package command

import (
	"errors"
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/llmops-go/internal/cli/output"
)

// LoginCommand returns the login command.
func LoginCommand() *cli.Command {
	return &cli.Command{
		Name:  "login",
		Usage: "Sign in to the console with email and password",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "email",
				Aliases: []string{"e"},
				Usage:   "Account email (prompted when omitted)",
				EnvVars: []string{"LLMOPS_EMAIL"},
			},
			&cli.StringFlag{
				Name:    "password",
				Aliases: []string{"p"},
				Usage:   "Account password (prompted without echo when omitted)",
				EnvVars: []string{"LLMOPS_PASSWORD"},
			},
		},
		Action: authLogin,
	}
}

// LogoutCommand returns the logout command.
func LogoutCommand() *cli.Command {
	return &cli.Command{
		Name:   "logout",
		Usage:  "Sign out and forget the local session",
		Action: authLogout,
	}
}

// WhoamiCommand returns the whoami command.
func WhoamiCommand() *cli.Command {
	return &cli.Command{
		Name:   "whoami",
		Usage:  "Show the signed-in account and session",
		Action: authWhoami,
	}
}

func authLogin(c *cli.Context) error {
	rt, err := EnsureRuntime(c)
	if err != nil {
		return err
	}

	email := c.String("email")
	if email == "" {
		if email, err = promptLine(rt, "Email: "); err != nil {
			return err
		}
	}
	if email == "" {
		return errors.New("email required")
	}

	password := c.String("password")
	if password == "" {
		if password, err = promptPassword(rt, "Password: "); err != nil {
			return err
		}
	}
	if password == "" {
		return errors.New("password required")
	}

	stop := startSpinner(rt, "Signing in...", rt.Auth.LoginLoading)
	session, err := rt.Auth.Login(c.Context, email, password)
	stop()
	if err != nil {
		return err
	}

	format, err := outputFormat(c, rt.Config.Output)
	if err != nil {
		return err
	}
	if format == output.FormatTable {
		fmt.Fprintf(rt.Stdout, "Logged in as %s (session expires %s)\n",
			email, session.ExpiresAtTime().Format(output.TimeLayout))
		return nil
	}
	return rt.Print(format, false, session)
}

func authLogout(c *cli.Context) error {
	rt, err := EnsureRuntime(c)
	if err != nil {
		return err
	}

	stop := startSpinner(rt, "Signing out...", rt.Auth.LogoutLoading)
	rt.Auth.Logout(c.Context)
	stop()
	return nil
}

// identity is the whoami view.
type identity struct {
	Name          string `json:"name"`
	Email         string `json:"email"`
	Authenticated bool   `json:"authenticated"`
	ExpiresAt     int64  `json:"expire_at" table:"time"`
	BaseURL       string `json:"base_url"`
}

func authWhoami(c *cli.Context) error {
	rt, err := EnsureRuntime(c)
	if err != nil {
		return err
	}

	account := rt.Accounts.Account()
	view := identity{
		Name:          account.Name,
		Email:         account.Email,
		BaseURL:       rt.Dispatcher.BaseURL(),
		Authenticated: rt.Credentials.IsAuthenticated(),
	}
	if session, ok := rt.Credentials.Current(); ok {
		view.ExpiresAt = session.ExpiresAt
	}

	return render(c, rt, view)
}
