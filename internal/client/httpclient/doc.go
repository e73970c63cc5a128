// Package httpclient dispatches requests to the llmops console backend.
//
// A Dispatcher turns a logical Descriptor (path, method, params, body,
// header overrides) into an HTTP request, races the exchange against a
// timeout, and classifies the outcome by the business status code carried in
// the response envelope rather than by the HTTP status line:
//
//   - code 20000: the call resolves with the envelope
//   - any other code: the Notifier shows the envelope message and the call
//     fails with a domain.KindBusiness error
//   - network or decoding error: the Notifier shows the error and the call
//     fails with a domain.KindTransport error
//   - timer fires first: the exchange is cancelled and the call fails with a
//     domain.KindTimeout error; nothing is shown
//
// Files:
//
//   - descriptor.go: Descriptor, Method and Response
//   - url.go: URL assembly and query parameter encoding
//   - dispatcher.go: Dispatcher construction and the timeout race
//   - generic.go: typed Dispatch/Get/Post/Put/Delete helpers
//
// Every request carries the session cookies held by the Dispatcher's jar,
// an Authorization bearer taken from the configured CredentialSource, and an
// X-Request-ID (ULID) that also tags the dispatch log lines.
package httpclient
