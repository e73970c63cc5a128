// Package httpclient dispatches requests to the llmops console backend.
package httpclient

import (
	"context"
)

// Dispatch sends desc through d and decodes the envelope data into T.
// Any non-success outcome is returned as a *domain.RequestError.
func Dispatch[T any](ctx context.Context, d *Dispatcher, desc Descriptor) (*Response[T], error) {
	resp := &Response[T]{}
	s, err := d.dispatch(ctx, desc, &resp.Data)
	if err != nil {
		return nil, err
	}

	resp.Code = s.code
	resp.Message = s.message
	resp.StatusCode = s.status
	resp.Header = s.header
	resp.Raw = s.raw
	return resp, nil
}

// Get dispatches a GET with params appended to the query string.
func Get[T any](ctx context.Context, d *Dispatcher, path string, params map[string]any) (*Response[T], error) {
	return Dispatch[T](ctx, d, Descriptor{Path: path, Method: MethodGet, Params: params})
}

// Post dispatches a POST with body serialized as JSON.
func Post[T any](ctx context.Context, d *Dispatcher, path string, body any) (*Response[T], error) {
	return Dispatch[T](ctx, d, Descriptor{Path: path, Method: MethodPost, Body: body})
}

// Put dispatches a PUT with body serialized as JSON.
func Put[T any](ctx context.Context, d *Dispatcher, path string, body any) (*Response[T], error) {
	return Dispatch[T](ctx, d, Descriptor{Path: path, Method: MethodPut, Body: body})
}

// Delete dispatches a DELETE without a body.
func Delete[T any](ctx context.Context, d *Dispatcher, path string) (*Response[T], error) {
	return Dispatch[T](ctx, d, Descriptor{Path: path, Method: MethodDelete})
}
