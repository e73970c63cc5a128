package repl

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// DefaultPrompt is printed before every line.
const DefaultPrompt = "llmops> "

// Executor runs one parsed command line.
type Executor func(ctx context.Context, args []string) error

// Options configures a REPL.
type Options struct {
	In     io.Reader
	Out    io.Writer
	Prompt string

	// Execute runs every line that is not a built-in.
	Execute Executor

	// OnError reports executor failures (default: print to Out).
	OnError func(error)

	// Commands seeds the completer.
	Commands []string

	// HistoryFile persists history between sessions (empty: memory only).
	HistoryFile string
}

// REPL represents the Read-Eval-Print Loop.
type REPL struct {
	input     *bufio.Reader
	output    io.Writer
	prompt    string
	execute   Executor
	onError   func(error)
	completer *Completer
	history   *History
}

// New creates a new REPL instance.
func New(opts Options) *REPL {
	r := &REPL{
		input:     asBufio(opts.In),
		output:    opts.Out,
		prompt:    opts.Prompt,
		execute:   opts.Execute,
		onError:   opts.OnError,
		completer: NewCompleter(opts.Commands...),
		history:   NewHistory(opts.HistoryFile),
	}
	if r.output == nil {
		r.output = os.Stdout
	}
	if r.prompt == "" {
		r.prompt = DefaultPrompt
	}
	if r.execute == nil {
		r.execute = func(context.Context, []string) error { return nil }
	}
	if r.onError == nil {
		r.onError = func(err error) { fmt.Fprintf(r.output, "Error: %v\n", err) }
	}
	return r
}

// asBufio reuses an existing buffered reader so that commands prompting
// for input mid-loop read from the same buffer.
func asBufio(in io.Reader) *bufio.Reader {
	if in == nil {
		in = os.Stdin
	}
	if br, ok := in.(*bufio.Reader); ok {
		return br
	}
	return bufio.NewReader(in)
}

// History returns the session history.
func (r *REPL) History() *History {
	return r.history
}

// Run starts the REPL loop. It returns nil on exit, quit or end of input,
// and ctx.Err() once ctx is done.
func (r *REPL) Run(ctx context.Context) error {
	if err := r.history.Load(); err != nil {
		fmt.Fprintf(r.output, "warning: history not loaded: %v\n", err)
	}
	defer func() {
		if err := r.history.Save(); err != nil {
			fmt.Fprintf(r.output, "warning: history not saved: %v\n", err)
		}
	}()

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		fmt.Fprint(r.output, r.prompt)

		line, err := r.input.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return err
		}
		atEOF := errors.Is(err, io.EOF)

		line = strings.TrimSpace(line)
		if line == "" {
			if atEOF {
				fmt.Fprintln(r.output)
				return nil
			}
			continue
		}

		r.history.Add(line)

		if done := r.dispatch(ctx, line); done || atEOF {
			return nil
		}
	}
}

// dispatch handles one non-empty line and reports whether the loop should end.
func (r *REPL) dispatch(ctx context.Context, line string) bool {
	switch {
	case line == "exit" || line == "quit":
		return true
	case line == "history":
		for i, entry := range r.history.Entries() {
			fmt.Fprintf(r.output, "%4d  %s\n", i+1, entry)
		}
		return false
	case strings.HasSuffix(line, "?"):
		prefix := strings.TrimSpace(strings.TrimSuffix(line, "?"))
		for _, s := range r.completer.Complete(prefix) {
			fmt.Fprintln(r.output, s)
		}
		return false
	}

	args, err := Split(line)
	if err != nil {
		r.onError(err)
		return false
	}

	if err := r.execute(ctx, args); err != nil {
		r.onError(err)
		if len(r.completer.Complete(args[0])) == 0 {
			fmt.Fprintf(r.output, "unknown command %q, type \"?\" to list commands\n", args[0])
		}
	}
	return false
}
