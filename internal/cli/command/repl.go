package command

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/llmops-go/internal/cli/repl"
)

// ReplCommand returns the interactive mode command.
func ReplCommand() *cli.Command {
	return &cli.Command{
		Name:    "repl",
		Aliases: []string{"shell"},
		Usage:   "Start interactive mode; the login session lasts until exit",
		Action:  runRepl,
	}
}

func runRepl(c *cli.Context) error {
	rt, err := EnsureRuntime(c)
	if err != nil {
		return err
	}
	if !rt.interactive.CompareAndSwap(false, true) {
		return errors.New("already in interactive mode")
	}
	defer rt.interactive.Store(false)

	fmt.Fprintf(rt.Stdout, "Connected to %s. Type \"?\" for commands, \"exit\" to quit.\n", rt.Dispatcher.BaseURL())

	r := repl.New(repl.Options{
		In:  rt.In,
		Out: rt.Stdout,
		Execute: func(ctx context.Context, args []string) error {
			line := NewApp(Options{
				IO:      IO{In: rt.In, Stdout: rt.Stdout, Stderr: rt.Stderr},
				Runtime: rt,
			})
			return line.RunContext(ctx, append([]string{line.Name}, args...))
		},
		OnError:     func(err error) { ReportError(rt.Stderr, err) },
		Commands:    commandPaths(c.App.Commands),
		HistoryFile: rt.Config.History,
	})

	err = r.Run(c.Context)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// commandPaths lists every command as a space-separated path, for example
// "apikey list".
func commandPaths(cmds []*cli.Command) []string {
	var paths []string
	var walk func(prefix string, cmds []*cli.Command)
	walk = func(prefix string, cmds []*cli.Command) {
		for _, cmd := range cmds {
			if cmd.Hidden {
				continue
			}
			path := strings.TrimSpace(prefix + " " + cmd.Name)
			paths = append(paths, path)
			walk(path, cmd.Subcommands)
		}
	}
	walk("", cmds)
	sort.Strings(paths)
	return paths
}
