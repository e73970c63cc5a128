// Package metric provides Prometheus metrics for the llmops console client.
package metric

import "time"

// Request outcomes recorded by ObserveRequest.
const (
	OutcomeSuccess   = "success"
	OutcomeTimeout   = "timeout"
	OutcomeTransport = "transport"
	OutcomeBusiness  = "business"
)

// Session events recorded by ObserveSession.
const (
	EventLoginSuccess = "login_success"
	EventLoginFailure = "login_failure"
	EventLogout       = "logout"
)

// Collector records client-side observations.
type Collector interface {
	// ObserveRequest records one settled dispatch.
	ObserveRequest(method, outcome string, elapsed time.Duration)

	// ObserveSession records one login/logout event.
	ObserveSession(event string)
}

// Nop is a Collector that records nothing.
type Nop struct{}

func (Nop) ObserveRequest(string, string, time.Duration) {}
func (Nop) ObserveSession(string)                        {}
