// Package service provides the console client's domain services.
package service

import (
	"context"
	"net/url"

	"github.com/yndnr/llmops-go/internal/client/httpclient"
	"github.com/yndnr/llmops-go/internal/core/domain"
)

// AppService talks to the app endpoints.
type AppService struct {
	dispatcher *httpclient.Dispatcher
}

// NewAppService creates a new AppService.
func NewAppService(d *httpclient.Dispatcher) *AppService {
	return &AppService{dispatcher: d}
}

// Debug sends query to app appID and returns the generated content.
func (s *AppService) Debug(ctx context.Context, appID, query string) (string, error) {
	resp, err := httpclient.Post[domain.DebugAppResponse](ctx, s.dispatcher,
		"/app/"+url.PathEscape(appID), domain.DebugAppRequest{Query: query})
	if err != nil {
		return "", err
	}
	return resp.Data.Content, nil
}
