// Package domain defines the core domain models for the llmops console client.
package domain

// APIKey is an OpenAPI access key as listed by the console backend.
type APIKey struct {
	ID        string `json:"id"`
	APIKey    string `json:"api_key"`
	IsActive  bool   `json:"is_active"`
	Remark    string `json:"remark"`
	UpdatedAt int64  `json:"updated_at" table:"wide,time"`
	CreatedAt int64  `json:"created_at" table:"time"`
}

// CreateAPIKeyRequest is the body of POST /openapi/api-keys.
type CreateAPIKeyRequest struct {
	IsActive bool   `json:"is_active"`
	Remark   string `json:"remark"`
}

// UpdateAPIKeyRequest is the body of PUT /openapi/api-keys/{id}.
type UpdateAPIKeyRequest struct {
	IsActive bool   `json:"is_active"`
	Remark   string `json:"remark"`
}

// Paginator request defaults.
const (
	DefaultCurrentPage = 1
	DefaultPageSize    = 20
)

// PaginatorRequest selects one page of a list endpoint.
type PaginatorRequest struct {
	CurrentPage int `json:"current_page"`
	PageSize    int `json:"page_size"`
}

// Params renders the request as GET query parameters, applying defaults
// to non-positive values.
func (p PaginatorRequest) Params() map[string]any {
	page, size := p.CurrentPage, p.PageSize
	if page <= 0 {
		page = DefaultCurrentPage
	}
	if size <= 0 {
		size = DefaultPageSize
	}
	return map[string]any{
		"current_page": page,
		"page_size":    size,
	}
}

// Paginator describes the page returned by a list endpoint.
type Paginator struct {
	TotalPage   int `json:"total_page"`
	TotalRecord int `json:"total_record"`
	CurrentPage int `json:"current_page"`
	PageSize    int `json:"page_size"`
}

// Page is the data payload of a paginated list response.
type Page[T any] struct {
	List      []T       `json:"list"`
	Paginator Paginator `json:"paginator"`
}
