// Package service provides the console client's domain services.
//
// Services sit on top of the request dispatcher and own everything that
// is more than forwarding a payload:
//
//   - AuthService: login token extraction, session expiry, and the
//     unconditional local clear on logout
//   - APIKeyService: OpenAPI key management endpoints
//   - AppService: app debug endpoint
//
// All services are safe for concurrent use. Dependencies on local state are
// expressed as small interfaces so tests can substitute counting stubs.
package service
