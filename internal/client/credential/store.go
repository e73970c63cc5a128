// Package credential holds the process-wide local identity of the console client.
package credential

import (
	"sync"
	"time"

	"github.com/yndnr/llmops-go/internal/core/domain"
)

// Store holds the current session token and its expiry.
// It is safe for concurrent use.
type Store struct {
	mu      sync.RWMutex
	current domain.Session
}

// NewStore creates an empty credential store.
func NewStore() *Store {
	return &Store{}
}

// Set replaces the held credentials.
func (s *Store) Set(token string, expiresAt int64) {
	s.mu.Lock()
	s.current = domain.Session{Token: token, ExpiresAt: expiresAt}
	s.mu.Unlock()
}

// Clear drops the held credentials.
func (s *Store) Clear() {
	s.mu.Lock()
	s.current = domain.Session{}
	s.mu.Unlock()
}

// Current returns the held session and whether one is present.
func (s *Store) Current() (domain.Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current, !s.current.IsZero()
}

// Token returns the held access token if it has not expired, or "".
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current.IsExpired(time.Now()) {
		return ""
	}
	return s.current.Token
}

// IsAuthenticated reports whether an unexpired token is held.
func (s *Store) IsAuthenticated() bool {
	return s.Token() != ""
}
