package command

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/yndnr/llmops-go/internal/core/domain"
)

// recordedRequest is what the mock server saw.
type recordedRequest struct {
	Method        string
	Path          string
	RawQuery      string
	Authorization string
	Body          []byte
}

// mockServer is a console backend double answering with envelopes.
type mockServer struct {
	*httptest.Server

	mu       sync.Mutex
	handlers map[string]http.HandlerFunc
	requests []recordedRequest
}

// newMockServer creates a mock server closed at the end of the test.
func newMockServer(t *testing.T) *mockServer {
	t.Helper()

	m := &mockServer{handlers: make(map[string]http.HandlerFunc)}
	m.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)

		m.mu.Lock()
		m.requests = append(m.requests, recordedRequest{
			Method:        r.Method,
			Path:          r.URL.Path,
			RawQuery:      r.URL.RawQuery,
			Authorization: r.Header.Get("Authorization"),
			Body:          body,
		})
		handler, ok := m.handlers[r.Method+" "+r.URL.Path]
		m.mu.Unlock()

		if !ok {
			http.NotFound(w, r)
			return
		}
		handler(w, r)
	}))
	t.Cleanup(m.Close)
	return m
}

// handle registers a handler for "METHOD /path".
func (m *mockServer) handle(route string, handler http.HandlerFunc) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.handlers[route] = handler
}

// reply registers a handler answering with a fixed envelope.
func (m *mockServer) reply(route string, code int, message string, data any) {
	m.handle(route, func(w http.ResponseWriter, r *http.Request) {
		envelope(w, code, message, data)
	})
}

func (m *mockServer) recorded() []recordedRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]recordedRequest(nil), m.requests...)
}

// last returns the most recent request.
func (m *mockServer) last(t *testing.T) recordedRequest {
	t.Helper()
	reqs := m.recorded()
	if len(reqs) == 0 {
		t.Fatal("mock server received no request")
	}
	return reqs[len(reqs)-1]
}

// envelope writes a response envelope.
func envelope(w http.ResponseWriter, code int, message string, data any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{"code": code, "message": message, "data": data})
}

// runResult holds the captured streams of one CLI run.
type runResult struct {
	stdout string
	stderr string
	err    error
}

// runCLI runs the app against srv (nil for no backend) with stdin as input.
// The config file points into a temp dir so the user's configuration is
// never read, and logging is limited to errors so stderr carries
// notifications only.
func runCLI(t *testing.T, srv *mockServer, stdin string, args ...string) runResult {
	t.Helper()
	if os.Getenv("LLMOPS_HISTORY") == "" {
		t.Setenv("LLMOPS_HISTORY", filepath.Join(t.TempDir(), "history"))
	}

	var stdout, stderr bytes.Buffer
	app := NewApp(Options{IO: IO{
		In:     strings.NewReader(stdin),
		Stdout: &stdout,
		Stderr: &stderr,
	}})

	full := []string{app.Name, "--config", filepath.Join(t.TempDir(), "cli.yaml"), "--log-level", "error"}
	if srv != nil {
		full = append(full, "--base-url", srv.URL)
	}
	full = append(full, args...)

	err := app.RunContext(context.Background(), full)
	return runResult{stdout: stdout.String(), stderr: stderr.String(), err: err}
}

// sampleKeys returns a page of two keys.
func sampleKeys() domain.Page[domain.APIKey] {
	return domain.Page[domain.APIKey]{
		List: []domain.APIKey{
			{ID: "k1", APIKey: "llmops-v1/aaaa", IsActive: true, Remark: "ci", CreatedAt: 1700000000, UpdatedAt: 1700000100},
			{ID: "k2", APIKey: "llmops-v1/bbbb", IsActive: false, Remark: "", CreatedAt: 1700000200, UpdatedAt: 1700000300},
		},
		Paginator: domain.Paginator{TotalPage: 3, TotalRecord: 42, CurrentPage: 1, PageSize: 20},
	}
}
