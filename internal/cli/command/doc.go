// Package command provides CLI command definitions for llmops-cli.
//
// This package defines all CLI commands using urfave/cli/v2:
//
//   - root.go: Root command, global flags, error reporting
//   - runtime.go: Shared dispatcher, stores and services
//   - auth.go: login, logout and whoami
//   - apikey.go: API key subcommand group
//   - app.go: App subcommand group
//   - config.go: Configuration subcommand group
//   - system.go: version and metrics
//   - repl.go: Interactive mode
//
// Commands follow a consistent pattern of resolving the runtime,
// calling the appropriate service, and formatting output.
package command
