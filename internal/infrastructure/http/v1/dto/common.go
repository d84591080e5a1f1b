// Package dto provides Data Transfer Objects for API requests/responses.
package dto

import (
	"encoding/base64"
	"strings"

	"backroom/internal/core/apperror"
	"backroom/internal/domain/resource"
)

// --- List query ---

// ListQuery contains pagination, search and ordering query parameters.
// Out-of-range values are clamped by the domain layer, not rejected.
type ListQuery struct {
	Page   int    `form:"page"`
	Limit  int    `form:"limit"`
	Search string `form:"search"`
	Sort   string `form:"sort"`
	Order  string `form:"order"`
}

// ToParams maps the query to domain query params.
func (q ListQuery) ToParams() resource.QueryParams {
	return resource.QueryParams{
		Page:   q.Page,
		Limit:  q.Limit,
		Search: strings.TrimSpace(q.Search),
		Sort:   q.Sort,
		Order:  q.Order,
	}
}

// MetaResponse mirrors resource.Meta for list responses.
type MetaResponse struct {
	Total    int64 `json:"total"`
	Limit    int   `json:"limit"`
	Page     int   `json:"page"`
	LastPage int   `json:"lastPage"`
}

// ListResponse wraps a page of resources with pagination metadata.
type ListResponse[T any] struct {
	Data []T          `json:"data"`
	Meta MetaResponse `json:"meta"`
}

// NewListResponse maps a domain query result into a response.
func NewListResponse[T any, R any](result resource.QueryResult[T], toResponse func(T) R) ListResponse[R] {
	data := make([]R, len(result.Data))
	for i, item := range result.Data {
		data[i] = toResponse(item)
	}
	return ListResponse[R]{
		Data: data,
		Meta: MetaResponse{
			Total:    result.Meta.Total,
			Limit:    result.Meta.Limit,
			Page:     result.Meta.Page,
			LastPage: result.Meta.LastPage,
		},
	}
}

// DeleteResponse reports what a delete removed.
type DeleteResponse struct {
	ID    string `json:"id"`
	Image string `json:"image,omitempty"`
}

// --- Field normalization ---

// NormalizeName trims and lowercases a display name, mirroring how
// names are stored and compared.
func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// DecodeImage decodes an optional base64 image payload.
// Empty input means no image. Accepts an optional data URL prefix
// ("data:image/jpeg;base64,...").
func DecodeImage(encoded string) ([]byte, error) {
	if encoded == "" {
		return nil, nil
	}
	if i := strings.Index(encoded, ";base64,"); i >= 0 {
		encoded = encoded[i+len(";base64,"):]
	}
	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, apperror.NewValidation("image must be base64 encoded").WithDetail("error", err.Error())
	}
	if len(data) == 0 {
		return nil, nil
	}
	return data, nil
}
