// Package domain defines the core domain models for the llmops console client.
package domain

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a failed request.
type ErrorKind string

const (
	// KindTimeout means the timer won the race; no partial network result is trusted.
	KindTimeout ErrorKind = "timeout"

	// KindTransport means a network-level error (DNS, connection, malformed JSON).
	KindTransport ErrorKind = "transport"

	// KindBusiness means the envelope parsed but its code is not CodeSuccess.
	KindBusiness ErrorKind = "business"

	// KindInconsistentSuccess means login returned CodeSuccess without a token.
	KindInconsistentSuccess ErrorKind = "inconsistent_success"
)

// TimeoutMessage is the literal message carried by timeout failures.
const TimeoutMessage = "request timeout"

// RequestError is a classified failure of a dispatched request.
//
// Two RequestErrors match under errors.Is when their kinds are equal, so
// callers compare against the sentinel values below:
//
//	if errors.Is(err, domain.ErrTimeout) { ... }
type RequestError struct {
	Kind    ErrorKind
	Code    int    // Business status code (KindBusiness only)
	Message string // Server-supplied or transport message
	Cause   error  // Underlying transport error (if any)
}

// Error implements the error interface.
func (e *RequestError) Error() string {
	if e.Kind == KindBusiness {
		return fmt.Sprintf("%s failure [%d]: %s", e.Kind, e.Code, e.Message)
	}
	return fmt.Sprintf("%s failure: %s", e.Kind, e.Message)
}

// Unwrap returns the underlying error for errors.Unwrap() support.
func (e *RequestError) Unwrap() error {
	return e.Cause
}

// Is implements errors.Is() support, matching on Kind.
func (e *RequestError) Is(target error) bool {
	t, ok := target.(*RequestError)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// Sentinel values for errors.Is comparisons.
var (
	ErrTimeout             = &RequestError{Kind: KindTimeout, Message: TimeoutMessage}
	ErrTransport           = &RequestError{Kind: KindTransport, Message: "transport error"}
	ErrBusiness            = &RequestError{Kind: KindBusiness, Message: "business error"}
	ErrInconsistentSuccess = &RequestError{Kind: KindInconsistentSuccess, Message: "login succeeded without access token"}
)

// NewTimeoutError returns a timeout failure.
func NewTimeoutError() *RequestError {
	return &RequestError{Kind: KindTimeout, Message: TimeoutMessage}
}

// NewTransportError wraps a network-level error.
func NewTransportError(cause error) *RequestError {
	msg := "transport error"
	if cause != nil {
		msg = cause.Error()
	}
	return &RequestError{Kind: KindTransport, Message: msg, Cause: cause}
}

// NewBusinessError returns a business failure carrying the envelope's code and message.
func NewBusinessError(code int, message string) *RequestError {
	return &RequestError{Kind: KindBusiness, Code: code, Message: message}
}

// NewInconsistentSuccessError returns the login-specific failure raised when a
// success code arrives without the expected token.
func NewInconsistentSuccessError(message string) *RequestError {
	if message == "" {
		message = ErrInconsistentSuccess.Message
	}
	return &RequestError{Kind: KindInconsistentSuccess, Code: CodeSuccess, Message: message}
}

// IsKind reports whether err is a RequestError of the given kind.
// If kind is empty, it only checks if err is a RequestError.
func IsKind(err error, kind ErrorKind) bool {
	var re *RequestError
	if errors.As(err, &re) {
		if kind == "" {
			return true
		}
		return re.Kind == kind
	}
	return false
}

// CodeOf extracts the business status code from err, or 0 if err is not a
// business failure.
func CodeOf(err error) int {
	var re *RequestError
	if errors.As(err, &re) && re.Kind == KindBusiness {
		return re.Code
	}
	return 0
}
