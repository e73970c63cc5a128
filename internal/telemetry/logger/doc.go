// Package logger provides structured logging for the llmops console client.
//
// This package wraps log/slog:
//
//   - logger.go: Logger interface, handler selection and level control
//   - context.go: context propagation of the logger and request IDs
//   - redact.go: masking of credentials before they reach the output
//
// Features:
//
//   - JSON and text output formats
//   - Runtime log level adjustment
//   - Automatic masking of tokens, passwords and Authorization values
package logger
