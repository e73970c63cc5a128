// Package httpclient dispatches requests to the llmops console backend.
package httpclient

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/yndnr/llmops-go/internal/core/domain"
)

// Method is an HTTP method accepted by the dispatcher.
type Method string

const (
	MethodGet    Method = http.MethodGet
	MethodPost   Method = http.MethodPost
	MethodPut    Method = http.MethodPut
	MethodDelete Method = http.MethodDelete
)

// ParseMethod normalizes m, defaulting to GET when empty.
func ParseMethod(m string) (Method, error) {
	switch Method(strings.ToUpper(m)) {
	case "", MethodGet:
		return MethodGet, nil
	case MethodPost:
		return MethodPost, nil
	case MethodPut:
		return MethodPut, nil
	case MethodDelete:
		return MethodDelete, nil
	default:
		return "", fmt.Errorf("unsupported method %q", m)
	}
}

// Descriptor is the logical description of one request.
type Descriptor struct {
	// Path is appended to the dispatcher base URL; a leading "/" is added if missing.
	Path string

	// Method defaults to GET.
	Method Method

	// Params are scalar query parameters. They are only used for GET and are
	// never sent as a body.
	Params map[string]any

	// Body is JSON-serialized, except []byte, json.RawMessage and io.Reader
	// which are sent as-is.
	Body any

	// Header overrides the base headers.
	Header map[string]string

	// IncludeHeaders asks for the raw response headers on Response.Header.
	IncludeHeaders bool

	// Timeout overrides the dispatcher timeout when positive.
	Timeout time.Duration
}

// Response is the resolved value of a successful dispatch.
type Response[T any] struct {
	domain.Envelope[T]

	// Header holds the response headers when Descriptor.IncludeHeaders was set.
	Header http.Header

	// StatusCode is the HTTP status of the exchange.
	StatusCode int

	// Raw is the undecoded response body.
	Raw []byte
}
