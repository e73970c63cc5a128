// Package domain defines the core domain models for the llmops console client.
//
// Domain models are pure value objects without any IO dependencies or
// framework coupling. This package contains:
//
//   - Envelope: the {code, message, data} wrapper around every response body
//   - StatusCode: the fixed business status code table (20000 = success)
//   - RequestError: classified request failures (timeout, transport, business,
//     inconsistent success)
//   - Session: the client-side view of an authenticated session
//   - APIKey, Paginator, Account: payload models of the console endpoints
//
// The business status code carried by an Envelope is independent of the HTTP
// status line: a 200 OK response can still carry a failed operation.
package domain
