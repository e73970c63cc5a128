// Package command provides CLI command definitions for llmops-cli.
package command

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/llmops-go/internal/cli/config"
	"github.com/yndnr/llmops-go/internal/cli/output"
	"github.com/yndnr/llmops-go/internal/core/domain"
	"github.com/yndnr/llmops-go/internal/infra/buildinfo"
)

const runtimeKey = "runtime"

// Options configures App.
type Options struct {
	IO

	// Runtime is reused instead of building one from flags (interactive mode).
	Runtime *Runtime
}

// App creates the CLI application bound to the process streams.
func App() *cli.App {
	return NewApp(Options{})
}

// NewApp creates the CLI application.
func NewApp(opts Options) *cli.App {
	streams := opts.IO.withDefaults()

	app := &cli.App{
		Name:      "llmops-cli",
		Usage:     "LLMOps console command-line client",
		Version:   buildinfo.String(),
		Flags:     globalFlags(),
		Reader:    streams.In,
		Writer:    streams.Stdout,
		ErrWriter: streams.Stderr,
		Metadata:  map[string]any{},
		Commands: []*cli.Command{
			LoginCommand(),
			LogoutCommand(),
			WhoamiCommand(),
			APIKeyCommand(),
			AppCommand(),
			ConfigCommand(),
			VersionCommand(),
			MetricsCommand(),
			ReplCommand(),
		},
		Action: func(c *cli.Context) error {
			if c.Args().Present() {
				return fmt.Errorf("unknown command %q", c.Args().First())
			}
			return cli.ShowAppHelp(c)
		},
		// Errors are reported by the caller; never exit from inside the app.
		ExitErrHandler: func(*cli.Context, error) {},
	}
	if opts.Runtime != nil {
		app.Metadata[runtimeKey] = opts.Runtime
	}

	return app
}

// globalFlags returns the global CLI flags.
func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "Configuration file",
			EnvVars: []string{"LLMOPS_CONFIG"},
			Value:   config.DefaultConfigPath(),
		},
		&cli.StringFlag{
			Name:    "base-url",
			Aliases: []string{"s"},
			Usage:   "Console API base URL (e.g., http://localhost:5000)",
		},
		&cli.DurationFlag{
			Name:  "timeout",
			Usage: "Request timeout",
		},
		&cli.StringFlag{
			Name:    "token",
			Usage:   "Access token to use instead of logging in",
			EnvVars: []string{"LLMOPS_TOKEN"},
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "Output format: table, json, yaml",
		},
		&cli.BoolFlag{
			Name:    "wide",
			Aliases: []string{"w"},
			Usage:   "Show wide output (more columns)",
		},
		&cli.StringFlag{
			Name:  "log-level",
			Usage: "Log level: debug, info, warn, error",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"V"},
			Usage:   "Enable verbose output (same as --log-level debug)",
		},
	}
}

// GlobalFlags defines flags available to all commands.
type GlobalFlags struct {
	ConfigFile string
	BaseURL    string
	Timeout    time.Duration
	Token      string

	// Output format
	Output string // table, json, yaml
	Wide   bool

	LogLevel string
	Verbose  bool
}

// ParseGlobalFlags extracts global flags from context.
func ParseGlobalFlags(c *cli.Context) *GlobalFlags {
	return &GlobalFlags{
		ConfigFile: c.String("config"),
		BaseURL:    c.String("base-url"),
		Timeout:    c.Duration("timeout"),
		Token:      c.String("token"),
		Output:     c.String("output"),
		Wide:       c.Bool("wide"),
		LogLevel:   c.String("log-level"),
		Verbose:    c.Bool("verbose"),
	}
}

// overrides maps explicitly set flags onto configuration keys.
func (f *GlobalFlags) overrides() map[string]any {
	m := make(map[string]any)
	if f.BaseURL != "" {
		m["api.base_url"] = f.BaseURL
	}
	if f.Timeout > 0 {
		m["api.timeout"] = f.Timeout.String()
	}
	if f.Output != "" {
		m["output"] = f.Output
	}
	if f.LogLevel != "" {
		m["log.level"] = f.LogLevel
	}
	if f.Verbose {
		m["log.level"] = "debug"
	}
	return m
}

// loadConfig loads the configuration selected by the flags.
func loadConfig(c *cli.Context) (*config.CLIConfig, error) {
	flags := ParseGlobalFlags(c)
	return config.Load(flags.ConfigFile, flags.overrides())
}

// GetRuntime retrieves the runtime from context.
func GetRuntime(c *cli.Context) *Runtime {
	if rt, ok := c.App.Metadata[runtimeKey].(*Runtime); ok {
		return rt
	}
	return nil
}

// EnsureRuntime returns the runtime of this app, building it from the global
// flags and configuration on first use.
func EnsureRuntime(c *cli.Context) (*Runtime, error) {
	if rt := GetRuntime(c); rt != nil {
		return rt, nil
	}

	cfg, err := loadConfig(c)
	if err != nil {
		return nil, err
	}

	rt, err := NewRuntime(cfg, IO{In: c.App.Reader, Stdout: c.App.Writer, Stderr: c.App.ErrWriter})
	if err != nil {
		return nil, err
	}

	if token := c.String("token"); token != "" {
		session := domain.NewSession(token, time.Now())
		rt.Credentials.Set(session.Token, session.ExpiresAt)
	}

	c.App.Metadata[runtimeKey] = rt
	return rt, nil
}

// outputFormat resolves the format for this invocation: the --output flag
// when given, fallback otherwise.
func outputFormat(c *cli.Context, fallback string) (output.Format, error) {
	if s := c.String("output"); s != "" {
		return output.ParseFormat(s)
	}
	return output.ParseFormat(fallback)
}

// render prints data on the runtime's stdout in the format selected for
// this invocation.
func render(c *cli.Context, rt *Runtime, data any) error {
	format, err := outputFormat(c, rt.Config.Output)
	if err != nil {
		return err
	}
	return rt.Print(format, c.Bool("wide"), data)
}

func printTo(w io.Writer, format output.Format, wide bool, data any) error {
	return output.NewFormatter(format, wide).Format(w, data)
}

// ReportError prints err unless the user has already been notified of it.
// Transport and business failures are announced by the dispatcher; timeouts
// and a login without a token are not.
func ReportError(w io.Writer, err error) {
	if err == nil {
		return
	}

	var rerr *domain.RequestError
	if errors.As(err, &rerr) {
		if rerr.Kind != domain.KindTimeout && rerr.Kind != domain.KindInconsistentSuccess {
			return
		}
		fmt.Fprintf(w, "error: %s\n", rerr.Message)
		return
	}
	fmt.Fprintf(w, "error: %v\n", err)
}
