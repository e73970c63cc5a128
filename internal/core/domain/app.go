// Package domain defines the core domain models for the llmops console client.
package domain

// DebugAppRequest is the body of POST /app/{id}.
type DebugAppRequest struct {
	Query string `json:"query"`
}

// DebugAppResponse is the data payload of an app debug call.
type DebugAppResponse struct {
	Content string `json:"content"`
}
