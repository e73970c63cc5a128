// Package main provides the entry point for llmops-cli.
//
// The CLI talks to the LLMOps console backend for:
//
//   - Signing in and out (login, logout, whoami)
//   - OpenAPI key management (list, create, update, activate, delete)
//   - App debugging
//   - Local configuration
//
// Usage:
//
//	llmops-cli login --email me@example.com
//	llmops-cli -o json apikey list --page 2
//	llmops-cli repl
//
// Sessions live in memory only: a single command authenticates with --token
// or LLMOPS_TOKEN, while the interactive mode keeps a login until exit.
package main
