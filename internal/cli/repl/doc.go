// Package repl provides the interactive mode of llmops-cli.
//
// The loop reads one line at a time, splits it into shell-like words and
// hands them to an Executor, which in practice runs the CLI command tree
// against a long-lived runtime so that a login survives across lines.
//
//   - repl.go: the read-eval-print loop
//   - split.go: quoting-aware line splitting
//   - completer.go: command suggestions for "?" lookups
//   - history.go: persistent command history
package repl
