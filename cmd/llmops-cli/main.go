package main

import (
	"context"
	"os"

	"github.com/yndnr/llmops-go/internal/cli/command"
	"github.com/yndnr/llmops-go/internal/infra/shutdown"
)

func main() {
	ctx, cancel := shutdown.WithSignals(context.Background())
	defer cancel()

	app := command.App()

	if err := app.RunContext(ctx, os.Args); err != nil {
		command.ReportError(os.Stderr, err)
		cancel()
		os.Exit(1)
	}
}
