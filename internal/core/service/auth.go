// Package service provides the console client's domain services.
package service

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"github.com/tidwall/gjson"

	"github.com/yndnr/llmops-go/internal/client/httpclient"
	"github.com/yndnr/llmops-go/internal/client/notify"
	"github.com/yndnr/llmops-go/internal/core/domain"
	"github.com/yndnr/llmops-go/internal/telemetry/logger"
	"github.com/yndnr/llmops-go/internal/telemetry/metric"
)

// Auth endpoint paths.
const (
	LoginPath  = "/auth/login"
	LogoutPath = "/auth/logout"
)

const bearerPrefix = "Bearer "

// LogoutFailedMessage is the notification shown when the remote logout fails.
const LogoutFailedMessage = "logout failed"

// CredentialWriter is the write side of the credential store.
type CredentialWriter interface {
	Set(token string, expiresAt int64)
	Clear()
}

// AccountWriter is the write side of the account store.
type AccountWriter interface {
	Update(patch domain.Account)
	Clear()
}

// AuthService coordinates login and logout against the console backend and
// keeps the local credential store in step with them.
type AuthService struct {
	dispatcher *httpclient.Dispatcher
	store      CredentialWriter
	accounts   AccountWriter
	notifier   notify.Notifier
	metrics    metric.Collector
	log        logger.Logger
	now        func() time.Time

	loginLoading  atomic.Bool
	logoutLoading atomic.Bool
}

// AuthServiceConfig holds optional collaborators for AuthService.
type AuthServiceConfig struct {
	// Accounts is updated on login and reset on logout (optional).
	Accounts AccountWriter

	// Notifier receives the logout outcome (default: notify.Nop). Login
	// failures are only returned.
	Notifier notify.Notifier

	// Metrics records session events (default: metric.Nop).
	Metrics metric.Collector

	// Logger defaults to logger.Default().
	Logger logger.Logger

	// Now is the clock used to compute session expiry (default: time.Now).
	Now func() time.Time
}

// DefaultAuthServiceConfig returns default configuration.
func DefaultAuthServiceConfig() *AuthServiceConfig {
	return &AuthServiceConfig{
		Notifier: notify.Nop{},
		Metrics:  metric.Nop{},
		Logger:   logger.Default(),
		Now:      time.Now,
	}
}

// NewAuthService creates a new AuthService.
func NewAuthService(d *httpclient.Dispatcher, store CredentialWriter, config *AuthServiceConfig) *AuthService {
	defaults := DefaultAuthServiceConfig()
	if config == nil {
		config = defaults
	}

	s := &AuthService{
		dispatcher: d,
		store:      store,
		accounts:   config.Accounts,
		notifier:   config.Notifier,
		metrics:    config.Metrics,
		log:        config.Logger,
		now:        config.Now,
	}
	if s.notifier == nil {
		s.notifier = defaults.Notifier
	}
	if s.metrics == nil {
		s.metrics = defaults.Metrics
	}
	if s.log == nil {
		s.log = defaults.Logger
	}
	if s.now == nil {
		s.now = defaults.Now
	}
	return s
}

// LoginLoading reports whether a login is in flight.
func (s *AuthService) LoginLoading() bool {
	return s.loginLoading.Load()
}

// LogoutLoading reports whether a logout is in flight.
func (s *AuthService) LogoutLoading() bool {
	return s.logoutLoading.Load()
}

// Login authenticates with email and password. On success the session is
// written to the credential store and returned. Dispatch failures are
// returned untouched; a success envelope without a token yields
// domain.ErrInconsistentSuccess.
func (s *AuthService) Login(ctx context.Context, email, password string) (domain.Session, error) {
	s.loginLoading.Store(true)
	defer s.loginLoading.Store(false)

	log := s.log.WithContext(ctx).With("email", email)

	resp, err := httpclient.Dispatch[json.RawMessage](ctx, s.dispatcher, httpclient.Descriptor{
		Path:           LoginPath,
		Method:         httpclient.MethodPost,
		Body:           domain.LoginRequest{Email: email, Password: password},
		IncludeHeaders: true,
	})
	if err != nil {
		s.metrics.ObserveSession(metric.EventLoginFailure)
		log.Warn("login failed", "error", err)
		return domain.Session{}, err
	}

	token := extractToken(resp.Header, resp.Raw)
	if token == "" {
		rerr := domain.NewInconsistentSuccessError("")
		s.metrics.ObserveSession(metric.EventLoginFailure)
		log.Warn("login returned no access token")
		return domain.Session{}, rerr
	}

	session := domain.NewSession(token, s.now())
	s.store.Set(session.Token, session.ExpiresAt)
	if s.accounts != nil {
		s.accounts.Update(domain.Account{Email: email})
	}

	s.metrics.ObserveSession(metric.EventLoginSuccess)
	log.Info("logged in", "expires_at", session.ExpiresAtTime())
	return session, nil
}

// Logout ends the remote session. The local credential store is cleared
// exactly once whether or not the remote call succeeds, and exactly one
// notification reports the outcome. Remote failures are not returned.
func (s *AuthService) Logout(ctx context.Context) {
	s.logoutLoading.Store(true)
	defer s.logoutLoading.Store(false)
	defer s.clearLocal()

	log := s.log.WithContext(ctx)

	resp, err := httpclient.Dispatch[json.RawMessage](ctx, s.dispatcher, httpclient.Descriptor{
		Path:   LogoutPath,
		Method: httpclient.MethodPost,
	})
	if err != nil {
		log.Warn("remote logout failed", "error", err)
		s.notifier.Error(LogoutFailedMessage)
		return
	}

	log.Info("logged out")
	s.notifier.Success(resp.Message)
}

// clearLocal drops local identity.
func (s *AuthService) clearLocal() {
	s.store.Clear()
	if s.accounts != nil {
		s.accounts.Clear()
	}
	s.metrics.ObserveSession(metric.EventLogout)
}

// extractToken finds the access token in the login response: the
// Access-Token header, then an Authorization bearer, then access_token at the
// top level of the body or under data.
func extractToken(header http.Header, body []byte) string {
	if token := strings.TrimSpace(header.Get(domain.HeaderAccessToken)); token != "" {
		return token
	}
	if auth := strings.TrimSpace(header.Get(domain.HeaderAuthorization)); len(auth) > len(bearerPrefix) &&
		strings.EqualFold(auth[:len(bearerPrefix)], bearerPrefix) {
		return strings.TrimSpace(auth[len(bearerPrefix):])
	}

	for _, path := range []string{"access_token", "data.access_token"} {
		if r := gjson.GetBytes(body, path); r.Type == gjson.String && r.Str != "" {
			return r.Str
		}
	}
	return ""
}
