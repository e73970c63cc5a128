// Package domain defines the core domain models for the llmops console client.
package domain

// Token-bearing response headers probed after login, in order.
const (
	HeaderAccessToken   = "Access-Token"
	HeaderAuthorization = "Authorization"
)

// LoginRequest is the body of POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
