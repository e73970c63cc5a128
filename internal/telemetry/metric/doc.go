// Package metric provides Prometheus metrics for the llmops console client.
//
//   - prometheus.go: Registry, the concrete Prometheus collectors
//   - collector.go: Collector, the narrow recording interface the request
//     dispatcher and the auth service depend on
//
// Metrics are registered on a private prometheus.Registry so several clients
// can live in one process (and in one test binary) without duplicate
// registration panics. Handler exposes the registry in the text format.
package metric
