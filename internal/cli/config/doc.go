// Package config provides CLI configuration for llmops-cli.
//
// This package defines CLI-specific configuration:
//
//   - spec.go: CLIConfig struct (~/.llmops/cli.yaml)
//   - loader.go: layered loading via confloader, saving, validation
//
// Configuration includes the backend base URL, dispatch timeout, TLS
// material, log level and format, the default output format, and the REPL
// history file.
package config
