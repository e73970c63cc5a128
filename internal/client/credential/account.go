// Package credential holds the process-wide local identity of the console client.
package credential

import (
	"sync"

	"github.com/yndnr/llmops-go/internal/core/domain"
)

// AccountStore holds the display identity of the signed-in user.
type AccountStore struct {
	mu      sync.RWMutex
	account domain.Account
}

// NewAccountStore creates a store initialized with domain.DefaultAccount.
func NewAccountStore() *AccountStore {
	return &AccountStore{account: domain.DefaultAccount()}
}

// Account returns a copy of the held account.
func (s *AccountStore) Account() domain.Account {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.account
}

// Update overwrites the fields of the held account that are non-empty in patch.
func (s *AccountStore) Update(patch domain.Account) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if patch.Name != "" {
		s.account.Name = patch.Name
	}
	if patch.Email != "" {
		s.account.Email = patch.Email
	}
	if patch.Avatar != "" {
		s.account.Avatar = patch.Avatar
	}
}

// Clear resets the held account to domain.DefaultAccount.
func (s *AccountStore) Clear() {
	s.mu.Lock()
	s.account = domain.DefaultAccount()
	s.mu.Unlock()
}
