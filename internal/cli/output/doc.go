// Package output renders command results for llmops-cli.
//
//   - formatter.go: Formatter interface and factory
//   - table.go: reflection-driven tables with wide columns and epoch timestamps
//   - json.go: indented JSON
//   - yaml.go: YAML keyed by the json field names
//   - spinner.go: in-flight indicator for login/logout
package output
