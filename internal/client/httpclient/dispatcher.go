// Package httpclient dispatches requests to the llmops console backend.
package httpclient

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"time"

	"github.com/oklog/ulid/v2"
	"golang.org/x/net/publicsuffix"

	"github.com/yndnr/llmops-go/internal/client/notify"
	"github.com/yndnr/llmops-go/internal/core/domain"
	"github.com/yndnr/llmops-go/internal/telemetry/logger"
	"github.com/yndnr/llmops-go/internal/telemetry/metric"
)

// DefaultTimeout bounds every dispatch unless overridden.
const DefaultTimeout = 100 * time.Second

// DefaultUserAgent is sent on every request.
const DefaultUserAgent = "llmops-cli/1.0"

// RequestIDHeader carries the per-dispatch ULID.
const RequestIDHeader = "X-Request-ID"

// maxBodySize caps how much of a response body is read.
const maxBodySize = 32 << 20

// CredentialSource supplies the bearer token attached to every request.
type CredentialSource interface {
	// Token returns the current access token, or "" when signed out.
	Token() string
}

// Dispatcher builds, sends and classifies requests against one backend.
// It is safe for concurrent use; all per-call state lives on the stack.
type Dispatcher struct {
	baseURL     string
	client      *http.Client
	timeout     time.Duration
	userAgent   string
	notifier    notify.Notifier
	credentials CredentialSource
	log         logger.Logger
	metrics     metric.Collector
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithTimeout sets the default dispatch timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Dispatcher) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithNotifier sets the sink for failure notifications.
func WithNotifier(n notify.Notifier) Option {
	return func(c *Dispatcher) {
		c.notifier = n
	}
}

// WithCredentials sets the source of the Authorization bearer.
func WithCredentials(src CredentialSource) Option {
	return func(c *Dispatcher) {
		c.credentials = src
	}
}

// WithLogger sets the dispatch logger.
func WithLogger(l logger.Logger) Option {
	return func(c *Dispatcher) {
		c.log = l
	}
}

// WithMetrics sets the metrics collector.
func WithMetrics(m metric.Collector) Option {
	return func(c *Dispatcher) {
		c.metrics = m
	}
}

// WithTLSConfig sets the TLS configuration of the underlying transport.
// A nil config keeps the default transport.
func WithTLSConfig(cfg *tls.Config) Option {
	return func(c *Dispatcher) {
		if cfg == nil {
			return
		}
		transport := http.DefaultTransport.(*http.Transport).Clone()
		transport.TLSClientConfig = cfg
		c.client.Transport = transport
	}
}

// WithUserAgent overrides DefaultUserAgent.
func WithUserAgent(ua string) Option {
	return func(c *Dispatcher) {
		c.userAgent = ua
	}
}

// NewDispatcher creates a Dispatcher for baseURL. A missing scheme defaults
// to http://.
func NewDispatcher(baseURL string, opts ...Option) *Dispatcher {
	// cookiejar.New never fails.
	jar, _ := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})

	d := &Dispatcher{
		baseURL:   normalizeBaseURL(baseURL),
		client:    &http.Client{Jar: jar},
		timeout:   DefaultTimeout,
		userAgent: DefaultUserAgent,
		notifier:  notify.Nop{},
		log:       logger.Default(),
		metrics:   metric.Nop{},
	}

	for _, opt := range opts {
		opt(d)
	}

	return d
}

// BaseURL returns the normalized base URL.
func (d *Dispatcher) BaseURL() string {
	return d.baseURL
}

// Timeout returns the default dispatch timeout.
func (d *Dispatcher) Timeout() time.Duration {
	return d.timeout
}

// Do dispatches desc and returns the envelope with undecoded data.
func (d *Dispatcher) Do(ctx context.Context, desc Descriptor) (*Response[json.RawMessage], error) {
	return Dispatch[json.RawMessage](ctx, d, desc)
}

// exchangeResult is what the network goroutine hands back to the race.
type exchangeResult struct {
	status int
	header http.Header
	body   []byte
	err    error
}

// settled describes a resolved dispatch.
type settled struct {
	code    int
	message string
	status  int
	header  http.Header
	raw     []byte
}

// dispatch runs the timeout race for desc and decodes a successful envelope's
// data into out (a pointer, or nil to skip decoding).
func (d *Dispatcher) dispatch(ctx context.Context, desc Descriptor, out any) (*settled, error) {
	start := time.Now()
	reqID := ulid.Make().String()
	ctx = logger.WithRequestID(ctx, reqID)
	log := d.log.WithContext(ctx).With("request_id", reqID, "path", desc.Path)

	method, err := ParseMethod(string(desc.Method))
	if err != nil {
		return nil, d.fail(log, string(desc.Method), start, domain.NewTransportError(err))
	}
	log = log.With("method", string(method))

	timeout := desc.Timeout
	if timeout <= 0 {
		timeout = d.timeout
	}

	exchCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	req, err := d.newRequest(exchCtx, method, desc, reqID)
	if err != nil {
		return nil, d.fail(log, string(method), start, domain.NewTransportError(fmt.Errorf("build request: %w", err)))
	}

	// Buffered so a late exchange never blocks after losing the race.
	done := make(chan exchangeResult, 1)
	go func() {
		done <- d.exchange(req)
	}()

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case res := <-done:
		return d.settle(ctx, log, string(method), start, desc, res, out)
	case <-timer.C:
		cancel()
		return nil, d.fail(log, string(method), start, domain.NewTimeoutError())
	}
}

// newRequest merges desc onto the base options: GET, JSON content type,
// credentials attached.
func (d *Dispatcher) newRequest(ctx context.Context, method Method, desc Descriptor, reqID string) (*http.Request, error) {
	body, err := encodeBody(desc.Body)
	if err != nil {
		return nil, err
	}

	target := buildURL(d.baseURL, desc.Path, method, desc.Params)
	req, err := http.NewRequestWithContext(ctx, string(method), target, body)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", d.userAgent)
	req.Header.Set(RequestIDHeader, reqID)
	if d.credentials != nil {
		if token := d.credentials.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}
	for k, v := range desc.Header {
		req.Header.Set(k, v)
	}

	return req, nil
}

// encodeBody JSON-serializes body unless it is already raw bytes or a reader.
func encodeBody(body any) (io.Reader, error) {
	switch b := body.(type) {
	case nil:
		return nil, nil
	case json.RawMessage:
		return bytes.NewReader(b), nil
	case []byte:
		return bytes.NewReader(b), nil
	case io.Reader:
		return b, nil
	default:
		data, err := json.Marshal(b)
		if err != nil {
			return nil, fmt.Errorf("marshal body: %w", err)
		}
		return bytes.NewReader(data), nil
	}
}

// exchange performs the network round trip and reads the whole body.
func (d *Dispatcher) exchange(req *http.Request) exchangeResult {
	resp, err := d.client.Do(req)
	if err != nil {
		return exchangeResult{err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return exchangeResult{err: fmt.Errorf("read response: %w", err)}
	}

	return exchangeResult{status: resp.StatusCode, header: resp.Header, body: body}
}

// settle classifies a finished exchange.
func (d *Dispatcher) settle(ctx context.Context, log logger.Logger, method string, start time.Time, desc Descriptor, res exchangeResult, out any) (*settled, error) {
	if res.err != nil {
		// A parent deadline that expires first is still a timeout.
		if errors.Is(res.err, context.DeadlineExceeded) && ctx.Err() != nil {
			return nil, d.fail(log, method, start, domain.NewTimeoutError())
		}
		return nil, d.fail(log, method, start, domain.NewTransportError(res.err))
	}

	var env domain.Envelope[json.RawMessage]
	if err := json.Unmarshal(res.body, &env); err != nil {
		return nil, d.fail(log, method, start,
			domain.NewTransportError(fmt.Errorf("parse response (status %d): %w", res.status, err)))
	}

	if !env.OK() {
		message := env.Message
		if message == "" {
			message = fmt.Sprintf("request failed with code %d (%s)", env.Code, domain.StatusText(env.Code))
		}
		return nil, d.fail(log, method, start, domain.NewBusinessError(env.Code, message))
	}

	if out != nil && len(env.Data) > 0 && !bytes.Equal(env.Data, []byte("null")) {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return nil, d.fail(log, method, start, domain.NewTransportError(fmt.Errorf("decode data: %w", err)))
		}
	}

	elapsed := time.Since(start)
	d.metrics.ObserveRequest(method, metric.OutcomeSuccess, elapsed)
	log.Debug("request succeeded", "status", res.status, "duration", elapsed)

	s := &settled{
		code:    env.Code,
		message: env.Message,
		status:  res.status,
		raw:     res.body,
	}
	if desc.IncludeHeaders {
		s.header = res.header
	}
	return s, nil
}

// fail records and notifies a classified failure and returns it. Timeouts are
// not notified.
func (d *Dispatcher) fail(log logger.Logger, method string, start time.Time, rerr *domain.RequestError) error {
	elapsed := time.Since(start)
	d.metrics.ObserveRequest(method, string(rerr.Kind), elapsed)
	log.Warn("request failed", "kind", string(rerr.Kind), "code", rerr.Code, "error", rerr.Message, "duration", elapsed)

	if rerr.Kind != domain.KindTimeout {
		d.notifier.Error(rerr.Message)
	}
	return rerr
}
