// Package resource provides the shared lifecycle model for user-owned
// back-office resources (stores, warehouses).
//
// A resource is a slugged, optionally-imaged row that is always reached
// through an ownership join. The Service in this package orchestrates the
// create/update/delete saga across the relational store and the blob store.
package resource

import (
	"context"
	"time"

	"backroom/internal/core/id"
)

// Entity is implemented by all resource types managed by Service.
type Entity interface {
	// GetID returns the resource identifier.
	GetID() id.ID

	// GetName returns the display name (stored trimmed, lowercase).
	GetName() string

	// GetSlug returns the URL-safe identifier.
	GetSlug() string

	// SetSlug replaces the slug (regenerated when the name changes).
	SetSlug(slug string)

	// GetImage returns the image URL or empty string.
	GetImage() string

	// SetImage replaces the image URL. Empty string clears it.
	SetImage(url string)

	// Touch updates the modification timestamp.
	Touch()

	// Validate checks entity invariants without database access.
	Validate(ctx context.Context) error
}

// Base contains fields common to all resources.
// Embed in concrete resource types.
type Base struct {
	// ID is the primary key. Clients generate it so retried creates
	// stay stable (same id, same slug suffix, same object name).
	ID id.ID `db:"id" json:"id"`

	// Slug is unique per table, derived from name + id tail.
	Slug string `db:"slug" json:"slug"`

	// Name is stored trimmed and lowercase.
	Name string `db:"name" json:"name"`

	Address string `db:"address" json:"address"`

	// Image is the blob store URL, nil when the resource has no image.
	Image *string `db:"image" json:"image"`

	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// NewBase creates a Base with the given id and timestamps set to now.
func NewBase(resourceID id.ID) Base {
	now := time.Now().UTC()
	return Base{
		ID:        resourceID,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (b *Base) GetID() id.ID { return b.ID }

func (b *Base) GetName() string { return b.Name }

func (b *Base) GetSlug() string { return b.Slug }

func (b *Base) SetSlug(slug string) { b.Slug = slug }

// GetImage returns the image URL or empty string when unset.
func (b *Base) GetImage() string {
	if b.Image == nil {
		return ""
	}
	return *b.Image
}

// SetImage replaces the image URL. Empty string clears it.
func (b *Base) SetImage(url string) {
	if url == "" {
		b.Image = nil
		return
	}
	b.Image = &url
}

// Touch updates the modification timestamp.
func (b *Base) Touch() {
	b.UpdatedAt = time.Now().UTC()
}

// --- Listing ---

// Sort columns accepted by list queries. Anything else falls back to the default.
const (
	SortByName      = "name"
	SortBySlug      = "slug"
	SortByAddress   = "address"
	SortByCreatedAt = "created_at"
	SortByUpdatedAt = "updated_at"

	OrderAsc  = "asc"
	OrderDesc = "desc"

	DefaultLimit = 20
	MaxLimit     = 500
)

var sortableColumns = map[string]struct{}{
	SortByName:      {},
	SortBySlug:      {},
	SortByAddress:   {},
	SortByCreatedAt: {},
	SortByUpdatedAt: {},
}

// QueryParams contains pagination, search and ordering for list operations.
type QueryParams struct {
	Page   int
	Limit  int
	Search string
	Sort   string
	Order  string
}

// Normalize clamps values into their allowed ranges and fills defaults.
func (p QueryParams) Normalize() QueryParams {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit < 1 {
		p.Limit = DefaultLimit
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
	if _, ok := sortableColumns[p.Sort]; !ok {
		p.Sort = SortByCreatedAt
	}
	if p.Order != OrderAsc && p.Order != OrderDesc {
		p.Order = OrderDesc
	}
	return p
}

// Offset returns the row offset for the normalized page/limit pair.
func (p QueryParams) Offset() int {
	return (p.Page - 1) * p.Limit
}

// Meta describes the page of a list response.
type Meta struct {
	Total    int64 `json:"total"`
	Limit    int   `json:"limit"`
	Page     int   `json:"page"`
	LastPage int   `json:"lastPage"`
}

// QueryResult is a page of resources with pagination metadata.
type QueryResult[T any] struct {
	Data []T  `json:"data"`
	Meta Meta `json:"meta"`
}

// DeleteResult reports what a delete removed.
type DeleteResult struct {
	// ID of the removed resource.
	ID id.ID `json:"id"`

	// Image URL the resource carried, empty when it had none.
	Image string `json:"image,omitempty"`
}
