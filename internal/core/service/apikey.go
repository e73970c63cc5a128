// Package service provides the console client's domain services.
package service

import (
	"context"
	"net/url"

	"github.com/yndnr/llmops-go/internal/client/httpclient"
	"github.com/yndnr/llmops-go/internal/core/domain"
)

// APIKeysPath is the collection path of OpenAPI keys.
const APIKeysPath = "/openapi/api-keys"

// APIKeyService manages OpenAPI keys.
type APIKeyService struct {
	dispatcher *httpclient.Dispatcher
}

// NewAPIKeyService creates a new APIKeyService.
func NewAPIKeyService(d *httpclient.Dispatcher) *APIKeyService {
	return &APIKeyService{dispatcher: d}
}

// ListPage returns one page of keys.
func (s *APIKeyService) ListPage(ctx context.Context, req domain.PaginatorRequest) (*domain.Page[domain.APIKey], error) {
	resp, err := httpclient.Get[domain.Page[domain.APIKey]](ctx, s.dispatcher, APIKeysPath, req.Params())
	if err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

// Create creates a key and returns the backend's confirmation message.
func (s *APIKeyService) Create(ctx context.Context, req domain.CreateAPIKeyRequest) (string, error) {
	resp, err := httpclient.Post[any](ctx, s.dispatcher, APIKeysPath, req)
	if err != nil {
		return "", err
	}
	return resp.Message, nil
}

// Update replaces the mutable fields of key id.
func (s *APIKeyService) Update(ctx context.Context, id string, req domain.UpdateAPIKeyRequest) (string, error) {
	resp, err := httpclient.Put[any](ctx, s.dispatcher, keyPath(id), req)
	if err != nil {
		return "", err
	}
	return resp.Message, nil
}

// SetActive toggles whether key id may be used.
func (s *APIKeyService) SetActive(ctx context.Context, id string, active bool) (string, error) {
	body := struct {
		IsActive bool `json:"is_active"`
	}{active}

	resp, err := httpclient.Put[any](ctx, s.dispatcher, keyPath(id)+"/is-active", body)
	if err != nil {
		return "", err
	}
	return resp.Message, nil
}

// Delete removes key id.
func (s *APIKeyService) Delete(ctx context.Context, id string) (string, error) {
	resp, err := httpclient.Delete[any](ctx, s.dispatcher, keyPath(id))
	if err != nil {
		return "", err
	}
	return resp.Message, nil
}

func keyPath(id string) string {
	return APIKeysPath + "/" + url.PathEscape(id)
}
