// Package domain defines the core domain models for the llmops console client.
package domain

// Account is the locally held identity of the signed-in user.
type Account struct {
	Name   string `json:"name" yaml:"name"`
	Email  string `json:"email" yaml:"email"`
	Avatar string `json:"avatar" yaml:"avatar"`
}

// DefaultAccount returns the identity shown before anyone signs in.
func DefaultAccount() Account {
	return Account{
		Name:  "llmops",
		Email: "admin@llmops.local",
	}
}
