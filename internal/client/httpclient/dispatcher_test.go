package httpclient

import (
	"bytes"
	"context"
	"crypto/tls"
	"crypto/x509"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yndnr/llmops-go/internal/client/notify"
	"github.com/yndnr/llmops-go/internal/core/domain"
	"github.com/yndnr/llmops-go/internal/telemetry/logger"
	"github.com/yndnr/llmops-go/internal/telemetry/metric"
)

// ---- helpers ----

type capturedRequest struct {
	Method string
	URL    string
	Query  string
	Header http.Header
	Body   string
}

// backend is an httptest server that records requests and answers with a
// configurable handler.
type backend struct {
	*httptest.Server

	mu       sync.Mutex
	requests []capturedRequest
	reply    http.HandlerFunc
}

func newBackend(t *testing.T, reply http.HandlerFunc) *backend {
	t.Helper()
	b := &backend{reply: reply}
	b.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		b.mu.Lock()
		b.requests = append(b.requests, capturedRequest{
			Method: r.Method,
			URL:    r.URL.RequestURI(),
			Query:  r.URL.RawQuery,
			Header: r.Header.Clone(),
			Body:   string(body),
		})
		b.mu.Unlock()
		r.Body = io.NopCloser(bytes.NewReader(body))
		b.reply(w, r)
	}))
	t.Cleanup(b.Close)
	return b
}

func (b *backend) last(t *testing.T) capturedRequest {
	t.Helper()
	b.mu.Lock()
	defer b.mu.Unlock()
	require.NotEmpty(t, b.requests, "backend received no request")
	return b.requests[len(b.requests)-1]
}

func writeEnvelope(w http.ResponseWriter, code int, message string, data any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{"code": code, "message": message, "data": data})
}

func okHandler(data any) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, domain.CodeSuccess, "ok", data)
	}
}

type staticToken string

func (s staticToken) Token() string { return string(s) }

func newTestDispatcher(url string, rec *notify.Recorder, opts ...Option) *Dispatcher {
	base := []Option{WithNotifier(rec), WithLogger(logger.Nop())}
	return NewDispatcher(url, append(base, opts...)...)
}

// ---- construction ----

func TestNewDispatcher_BaseURL(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"with http prefix", "http://localhost:5000", "http://localhost:5000"},
		{"with https prefix", "https://api.example.com/api", "https://api.example.com/api"},
		{"without prefix", "localhost:5000", "http://localhost:5000"},
		{"trailing slash", "http://localhost:5000/", "http://localhost:5000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewDispatcher(tt.in)
			assert.Equal(t, tt.want, d.BaseURL())
			assert.Equal(t, DefaultTimeout, d.Timeout())
		})
	}
}

func TestNewDispatcher_IgnoresNonPositiveTimeout(t *testing.T) {
	d := NewDispatcher("localhost", WithTimeout(0))
	assert.Equal(t, DefaultTimeout, d.Timeout())
}

// ---- request construction ----

func TestDispatch_GetParamsGoToQueryNotBody(t *testing.T) {
	b := newBackend(t, okHandler(nil))
	d := newTestDispatcher(b.URL, notify.NewRecorder())

	_, err := d.Do(context.Background(), Descriptor{
		Path:   "openapi/api-keys",
		Params: map[string]any{"current_page": 2, "page_size": 20, "q": "a b&c"},
	})
	require.NoError(t, err)

	req := b.last(t)
	assert.Equal(t, http.MethodGet, req.Method)
	assert.Equal(t, "/openapi/api-keys?current_page=2&page_size=20&q=a%20b%26c", req.URL)
	assert.Empty(t, req.Body)
	for _, key := range []string{"current_page", "page_size", "q"} {
		assert.Equal(t, 1, strings.Count(req.Query, key+"="), "key %s must appear once", key)
	}
}

func TestDispatch_GetParamsAppendToExistingQuery(t *testing.T) {
	b := newBackend(t, okHandler(nil))
	d := newTestDispatcher(b.URL, notify.NewRecorder())

	_, err := d.Do(context.Background(), Descriptor{
		Path:   "/apps?sort=desc",
		Params: map[string]any{"page": 1},
	})
	require.NoError(t, err)
	assert.Equal(t, "/apps?sort=desc&page=1", b.last(t).URL)
}

func TestDispatch_PostSerializesBodyAndIgnoresParams(t *testing.T) {
	b := newBackend(t, okHandler(nil))
	d := newTestDispatcher(b.URL, notify.NewRecorder())

	_, err := d.Do(context.Background(), Descriptor{
		Path:   "/auth/login",
		Method: MethodPost,
		Params: map[string]any{"leak": "yes"},
		Body:   map[string]string{"email": "user@example.com", "password": "secret"},
	})
	require.NoError(t, err)

	req := b.last(t)
	assert.Equal(t, http.MethodPost, req.Method)
	assert.Equal(t, "/auth/login", req.URL)
	assert.JSONEq(t, `{"email":"user@example.com","password":"secret"}`, req.Body)
}

func TestDispatch_RawBodyBypassesSerialization(t *testing.T) {
	b := newBackend(t, okHandler(nil))
	d := newTestDispatcher(b.URL, notify.NewRecorder())

	_, err := d.Do(context.Background(), Descriptor{
		Path:   "/upload",
		Method: MethodPut,
		Body:   []byte("raw-bytes"),
		Header: map[string]string{"Content-Type": "application/octet-stream"},
	})
	require.NoError(t, err)

	req := b.last(t)
	assert.Equal(t, "raw-bytes", req.Body)
	assert.Equal(t, "application/octet-stream", req.Header.Get("Content-Type"))
}

func TestDispatch_BaseHeaders(t *testing.T) {
	b := newBackend(t, okHandler(nil))
	d := newTestDispatcher(b.URL, notify.NewRecorder(), WithCredentials(staticToken("tok-1")))

	_, err := d.Do(context.Background(), Descriptor{Path: "/ping"})
	require.NoError(t, err)

	h := b.last(t).Header
	assert.Equal(t, "application/json", h.Get("Content-Type"))
	assert.Equal(t, DefaultUserAgent, h.Get("User-Agent"))
	assert.Equal(t, "Bearer tok-1", h.Get("Authorization"))
	assert.Len(t, h.Get(RequestIDHeader), 26, "request id should be a ULID")
}

func TestDispatch_NoBearerWhenSignedOut(t *testing.T) {
	b := newBackend(t, okHandler(nil))
	d := newTestDispatcher(b.URL, notify.NewRecorder(), WithCredentials(staticToken("")))

	_, err := d.Do(context.Background(), Descriptor{Path: "/ping"})
	require.NoError(t, err)
	assert.Empty(t, b.last(t).Header.Get("Authorization"))
}

func TestDispatch_CookiesAttached(t *testing.T) {
	b := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/auth/login" {
			http.SetCookie(w, &http.Cookie{Name: "session", Value: "abc", Path: "/"})
		}
		writeEnvelope(w, domain.CodeSuccess, "ok", nil)
	})
	d := newTestDispatcher(b.URL, notify.NewRecorder())

	_, err := d.Do(context.Background(), Descriptor{Path: "/auth/login", Method: MethodPost})
	require.NoError(t, err)
	_, err = d.Do(context.Background(), Descriptor{Path: "/openapi/api-keys"})
	require.NoError(t, err)

	assert.Contains(t, b.last(t).Header.Get("Cookie"), "session=abc")
}

func TestDispatch_UnsupportedMethod(t *testing.T) {
	rec := notify.NewRecorder()
	d := newTestDispatcher("http://127.0.0.1:1", rec)

	_, err := d.Do(context.Background(), Descriptor{Path: "/x", Method: "PATCH"})
	require.ErrorIs(t, err, domain.ErrTransport)
	assert.Equal(t, 1, rec.Count(notify.LevelError))
}

// ---- classification ----

func TestDispatch_SuccessDecodesData(t *testing.T) {
	b := newBackend(t, okHandler(map[string]any{"content": "hello"}))
	d := newTestDispatcher(b.URL, notify.NewRecorder())

	resp, err := Post[domain.DebugAppResponse](context.Background(), d, "/app/1", domain.DebugAppRequest{Query: "hi"})
	require.NoError(t, err)

	assert.Equal(t, domain.CodeSuccess, resp.Code)
	assert.Equal(t, "ok", resp.Message)
	assert.Equal(t, "hello", resp.Data.Content)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Nil(t, resp.Header, "headers are only carried on request")
	assert.NotEmpty(t, resp.Raw)
}

func TestDispatch_IncludeHeaders(t *testing.T) {
	b := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Token", "T")
		writeEnvelope(w, domain.CodeSuccess, "ok", nil)
	})
	d := newTestDispatcher(b.URL, notify.NewRecorder())

	resp, err := d.Do(context.Background(), Descriptor{Path: "/auth/login", Method: MethodPost, IncludeHeaders: true})
	require.NoError(t, err)
	assert.Equal(t, "T", resp.Header.Get("Access-Token"))
}

func TestDispatch_BusinessFailureOnHTTP200(t *testing.T) {
	b := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, domain.CodeValidateError, "remark too long", nil)
	})
	rec := notify.NewRecorder()
	d := newTestDispatcher(b.URL, rec)

	resp, err := d.Do(context.Background(), Descriptor{Path: "/openapi/api-keys", Method: MethodPost})
	require.Nil(t, resp)
	require.ErrorIs(t, err, domain.ErrBusiness)

	var re *domain.RequestError
	require.True(t, errors.As(err, &re))
	assert.Equal(t, domain.CodeValidateError, re.Code)
	assert.Equal(t, "remark too long", re.Message)
	assert.Equal(t, domain.CodeValidateError, domain.CodeOf(err))

	assert.Equal(t, []notify.Entry{{Level: notify.LevelError, Text: "remark too long"}}, rec.Entries())
}

func TestDispatch_BusinessFailureWithoutMessage(t *testing.T) {
	b := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, domain.CodeForbidden, "", nil)
	})
	rec := notify.NewRecorder()
	d := newTestDispatcher(b.URL, rec)

	_, err := d.Do(context.Background(), Descriptor{Path: "/x"})
	require.ErrorIs(t, err, domain.ErrBusiness)
	require.Len(t, rec.Entries(), 1)
	assert.Contains(t, rec.Entries()[0].Text, "40003")
}

func TestDispatch_EveryNonSuccessCodeFails(t *testing.T) {
	codes := []int{domain.CodeUnauthorized, domain.CodeValidateError, domain.CodeForbidden,
		domain.CodeNotFound, domain.CodeFail, 0, 200}

	for _, code := range codes {
		t.Run(fmt.Sprint(code), func(t *testing.T) {
			b := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
				writeEnvelope(w, code, "msg", nil)
			})
			rec := notify.NewRecorder()
			d := newTestDispatcher(b.URL, rec)

			_, err := d.Do(context.Background(), Descriptor{Path: "/x"})
			require.ErrorIs(t, err, domain.ErrBusiness)
			assert.Equal(t, 1, rec.Count(notify.LevelError))
		})
	}
}

func TestDispatch_MalformedJSONIsTransportFailure(t *testing.T) {
	b := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("<html>bad gateway</html>"))
	})
	rec := notify.NewRecorder()
	d := newTestDispatcher(b.URL, rec)

	_, err := d.Do(context.Background(), Descriptor{Path: "/x"})
	require.ErrorIs(t, err, domain.ErrTransport)
	assert.NotErrorIs(t, err, domain.ErrBusiness)
	assert.Equal(t, 1, rec.Count(notify.LevelError))
}

func TestDispatch_DataDecodeFailureIsTransportFailure(t *testing.T) {
	b := newBackend(t, okHandler("not-an-object"))
	rec := notify.NewRecorder()
	d := newTestDispatcher(b.URL, rec)

	_, err := Get[domain.Page[domain.APIKey]](context.Background(), d, "/openapi/api-keys", nil)
	require.ErrorIs(t, err, domain.ErrTransport)
	assert.Equal(t, 1, rec.Count(notify.LevelError))
}

func TestDispatch_ConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	rec := notify.NewRecorder()
	d := newTestDispatcher(url, rec)

	_, err := d.Do(context.Background(), Descriptor{Path: "/x"})
	require.ErrorIs(t, err, domain.ErrTransport)

	var re *domain.RequestError
	require.True(t, errors.As(err, &re))
	assert.NotNil(t, errors.Unwrap(err), "transport failures wrap the cause")
	assert.Equal(t, []notify.Entry{{Level: notify.LevelError, Text: re.Message}}, rec.Entries())
}

func TestWithTLSConfig_KeepsCookieJar(t *testing.T) {
	cfg := &tls.Config{MinVersion: tls.VersionTLS12}

	for _, d := range []*Dispatcher{
		NewDispatcher("localhost", WithTLSConfig(cfg), WithTimeout(time.Second)),
		NewDispatcher("localhost", WithTimeout(time.Second), WithTLSConfig(cfg)),
	} {
		require.NotNil(t, d.client.Jar)
		transport, ok := d.client.Transport.(*http.Transport)
		require.True(t, ok)
		assert.Same(t, cfg, transport.TLSClientConfig)
		assert.Equal(t, time.Second, d.Timeout())
	}

	d := NewDispatcher("localhost", WithTLSConfig(nil))
	assert.Nil(t, d.client.Transport)
}

func TestDispatch_TLSConfigTrustsPrivateCA(t *testing.T) {
	srv := httptest.NewTLSServer(okHandler(map[string]string{"k": "v"}))
	t.Cleanup(srv.Close)

	t.Run("untrusted", func(t *testing.T) {
		d := newTestDispatcher(srv.URL, notify.NewRecorder())
		_, err := d.Do(context.Background(), Descriptor{Path: "/x"})
		require.ErrorIs(t, err, domain.ErrTransport)
	})

	t.Run("trusted", func(t *testing.T) {
		pool := x509.NewCertPool()
		pool.AddCert(srv.Certificate())

		d := newTestDispatcher(srv.URL, notify.NewRecorder(), WithTLSConfig(&tls.Config{RootCAs: pool}))
		resp, err := d.Do(context.Background(), Descriptor{Path: "/x"})
		require.NoError(t, err)
		assert.JSONEq(t, `{"k":"v"}`, string(resp.Data))
	})

	t.Run("nil keeps default transport", func(t *testing.T) {
		d := newTestDispatcher(srv.URL, notify.NewRecorder(), WithTLSConfig(nil))
		assert.Nil(t, d.client.Transport)
	})
}

// ---- timeout race ----

func TestDispatch_TimeoutWinsAndCancelsExchange(t *testing.T) {
	aborted := make(chan struct{})
	release := make(chan struct{})

	b := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
			close(aborted)
		case <-release:
		}
	})
	t.Cleanup(func() { close(release) })
	rec := notify.NewRecorder()
	reg := metric.NewRegistry()
	d := newTestDispatcher(b.URL, rec, WithTimeout(50*time.Millisecond), WithMetrics(reg))

	start := time.Now()
	_, err := d.Do(context.Background(), Descriptor{Path: "/slow"})

	require.ErrorIs(t, err, domain.ErrTimeout)
	assert.NotErrorIs(t, err, domain.ErrTransport)
	assert.NotErrorIs(t, err, domain.ErrBusiness)
	assert.Less(t, time.Since(start), 2*time.Second)
	assert.Equal(t, domain.TimeoutMessage, err.(*domain.RequestError).Message)

	select {
	case <-aborted:
	case <-time.After(2 * time.Second):
		t.Fatal("slow exchange was not cancelled")
	}

	// The late loser must not surface anything.
	time.Sleep(50 * time.Millisecond)
	assert.Empty(t, rec.Entries())
}

func TestDispatch_DescriptorTimeoutOverride(t *testing.T) {
	b := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	})
	d := newTestDispatcher(b.URL, notify.NewRecorder())

	_, err := d.Do(context.Background(), Descriptor{Path: "/slow", Timeout: 30 * time.Millisecond})
	require.ErrorIs(t, err, domain.ErrTimeout)
}

func TestDispatch_FastResponseBeatsTimer(t *testing.T) {
	b := newBackend(t, okHandler(nil))
	d := newTestDispatcher(b.URL, notify.NewRecorder(), WithTimeout(5*time.Second))

	_, err := d.Do(context.Background(), Descriptor{Path: "/fast"})
	require.NoError(t, err)
}

func TestDispatch_ParentDeadlineIsTimeout(t *testing.T) {
	b := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	})
	rec := notify.NewRecorder()
	d := newTestDispatcher(b.URL, rec)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	_, err := d.Do(ctx, Descriptor{Path: "/slow"})
	require.ErrorIs(t, err, domain.ErrTimeout)
	assert.Empty(t, rec.Entries())
}

// ---- concurrency ----

func TestDispatch_ConcurrentCallsKeepOwnState(t *testing.T) {
	b := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		writeEnvelope(w, domain.CodeSuccess, "ok", map[string]string{
			"path":  r.URL.Path,
			"query": r.URL.RawQuery,
			"body":  string(body),
		})
	})
	d := newTestDispatcher(b.URL, notify.NewRecorder())

	type echo struct {
		Path  string `json:"path"`
		Query string `json:"query"`
		Body  string `json:"body"`
	}

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			path := fmt.Sprintf("/item/%d", i)

			var (
				resp *Response[echo]
				err  error
			)
			if i%2 == 0 {
				resp, err = Get[echo](context.Background(), d, path, map[string]any{"n": i})
			} else {
				resp, err = Post[echo](context.Background(), d, path, map[string]int{"n": i})
			}
			if !assert.NoError(t, err) {
				return
			}

			assert.Equal(t, path, resp.Data.Path)
			if i%2 == 0 {
				assert.Equal(t, fmt.Sprintf("n=%d", i), resp.Data.Query)
				assert.Empty(t, resp.Data.Body)
			} else {
				assert.Empty(t, resp.Data.Query)
				assert.JSONEq(t, fmt.Sprintf(`{"n":%d}`, i), resp.Data.Body)
			}
		}(i)
	}
	wg.Wait()
}

// ---- helpers API ----

func TestPutAndDelete(t *testing.T) {
	b := newBackend(t, okHandler(nil))
	d := newTestDispatcher(b.URL, notify.NewRecorder())

	_, err := Put[any](context.Background(), d, "/openapi/api-keys/k1", map[string]bool{"is_active": true})
	require.NoError(t, err)
	assert.Equal(t, http.MethodPut, b.last(t).Method)

	_, err = Delete[any](context.Background(), d, "/openapi/api-keys/k1")
	require.NoError(t, err)
	assert.Equal(t, http.MethodDelete, b.last(t).Method)
	assert.Empty(t, b.last(t).Body)
}

func TestDispatch_RecordsMetrics(t *testing.T) {
	b := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/bad" {
			writeEnvelope(w, domain.CodeFail, "nope", nil)
			return
		}
		writeEnvelope(w, domain.CodeSuccess, "ok", nil)
	})
	reg := metric.NewRegistry()
	d := newTestDispatcher(b.URL, notify.NewRecorder(), WithMetrics(reg))

	_, _ = d.Do(context.Background(), Descriptor{Path: "/good"})
	_, _ = d.Do(context.Background(), Descriptor{Path: "/bad"})

	families, err := reg.Gatherer().Gather()
	require.NoError(t, err)

	got := map[string]float64{}
	for _, mf := range families {
		if mf.GetName() != "llmops_client_requests_total" {
			continue
		}
		for _, m := range mf.GetMetric() {
			var outcome string
			for _, lp := range m.GetLabel() {
				if lp.GetName() == "outcome" {
					outcome = lp.GetValue()
				}
			}
			got[outcome] = m.GetCounter().GetValue()
		}
	}
	assert.Equal(t, map[string]float64{metric.OutcomeSuccess: 1, metric.OutcomeBusiness: 1}, got)
}
