// Package domain defines the core domain models for the llmops console client.
package domain

// StatusCode is the application-level status carried in Envelope.Code.
type StatusCode = int

// Business status codes. The table is fixed and read-only.
const (
	// CodeSuccess is the only code that denotes usable Envelope.Data.
	CodeSuccess StatusCode = 20000

	// CodeUnauthorized indicates a missing or expired session.
	CodeUnauthorized StatusCode = 40001

	// CodeValidateError indicates the request payload failed validation.
	CodeValidateError StatusCode = 40002

	// CodeForbidden indicates the session lacks permission.
	CodeForbidden StatusCode = 40003

	// CodeNotFound indicates the requested resource does not exist.
	CodeNotFound StatusCode = 40004

	// CodeFail is the generic failure code.
	CodeFail StatusCode = 50000
)

var statusText = map[StatusCode]string{
	CodeSuccess:       "success",
	CodeUnauthorized:  "unauthorized",
	CodeValidateError: "validate_error",
	CodeForbidden:     "forbidden",
	CodeNotFound:      "not_found",
	CodeFail:          "fail",
}

// StatusText returns the symbolic name of a business status code,
// or "unknown" for codes outside the table.
func StatusText(code StatusCode) string {
	if s, ok := statusText[code]; ok {
		return s
	}
	return "unknown"
}

// Envelope is the wire shape of every response body:
//
//	{"code": 20000, "message": "...", "data": ...}
type Envelope[T any] struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    T      `json:"data"`
}

// OK reports whether the envelope carries the success code.
func (e *Envelope[T]) OK() bool {
	return e.Code == CodeSuccess
}
