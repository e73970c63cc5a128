// Package tlsroots builds the client TLS configuration used to reach a
// console backend served with a private CA or requiring client certificates.
//
//   - roots.go: system roots plus custom CA files or directories
//   - client.go: client TLS config from configured file paths
package tlsroots
