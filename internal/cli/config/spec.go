// Package config defines the CLI configuration structure.
package config

import "time"

// CLIConfig is the configuration for llmops-cli.
type CLIConfig struct {
	API     APIConfig `koanf:"api" yaml:"api"`
	Log     LogConfig `koanf:"log" yaml:"log"`
	Output  string    `koanf:"output" yaml:"output"` // table, json, yaml
	History string    `koanf:"history" yaml:"history"`
}

// APIConfig locates the console backend.
type APIConfig struct {
	BaseURL string        `koanf:"base_url" yaml:"base_url"`
	Timeout time.Duration `koanf:"timeout" yaml:"timeout"`

	// CAFile is a PEM file or directory trusted in addition to system roots.
	CAFile string `koanf:"ca_file" yaml:"ca_file,omitempty"`

	// ClientCert and ClientKey enable a client certificate; both or neither.
	ClientCert string `koanf:"client_cert" yaml:"client_cert,omitempty"`
	ClientKey  string `koanf:"client_key" yaml:"client_key,omitempty"`
}

// LogConfig controls diagnostic logging to stderr.
type LogConfig struct {
	Level  string `koanf:"level" yaml:"level"`
	Format string `koanf:"format" yaml:"format"` // text, json
}

// Default values.
const (
	DefaultBaseURL   = "http://localhost:5000"
	DefaultTimeout   = 100 * time.Second
	DefaultLogLevel  = "warn"
	DefaultLogFormat = "text"
	DefaultOutput    = "table"
)

// Default returns the default CLI configuration.
func Default() *CLIConfig {
	return &CLIConfig{
		API: APIConfig{
			BaseURL: DefaultBaseURL,
			Timeout: DefaultTimeout,
		},
		Log: LogConfig{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
		Output:  DefaultOutput,
		History: DefaultHistoryPath(),
	}
}

// Values renders the configuration as dotted koanf keys, the same keys
// accepted by Load overrides.
func (c *CLIConfig) Values() map[string]any {
	return map[string]any{
		"api.base_url":    c.API.BaseURL,
		"api.timeout":     c.API.Timeout.String(),
		"api.ca_file":     c.API.CAFile,
		"api.client_cert": c.API.ClientCert,
		"api.client_key":  c.API.ClientKey,
		"log.level":       c.Log.Level,
		"log.format":      c.Log.Format,
		"output":          c.Output,
		"history":         c.History,
	}
}
