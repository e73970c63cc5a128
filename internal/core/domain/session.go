// Package domain defines the core domain models for the llmops console client.
package domain

import "time"

// SessionValidity is the client-side validity window applied at login.
// The backend does not report an expiry, so the client assumes 7 days.
const SessionValidity = 7 * 24 * time.Hour

// Session is the credential material produced by a successful login.
type Session struct {
	// Token is the access token returned by the backend.
	Token string `json:"access_token"`

	// ExpiresAt is the expiry as Unix epoch seconds.
	ExpiresAt int64 `json:"expire_at" table:"time"`
}

// NewSession builds a Session for token, expiring SessionValidity after now.
func NewSession(token string, now time.Time) Session {
	return Session{
		Token:     token,
		ExpiresAt: now.Add(SessionValidity).Unix(),
	}
}

// IsZero reports whether the session carries no token.
func (s Session) IsZero() bool {
	return s.Token == ""
}

// IsExpired reports whether the session has expired at now.
func (s Session) IsExpired(now time.Time) bool {
	return s.IsZero() || now.Unix() >= s.ExpiresAt
}

// ExpiresAtTime returns ExpiresAt as a time.Time.
func (s Session) ExpiresAtTime() time.Time {
	return time.Unix(s.ExpiresAt, 0)
}
