package resource

import (
	"context"

	"backroom/internal/core/id"
	"backroom/internal/domain/ownership"
)

// Repository defines storage operations for a resource table.
// All reads are scoped through the ownership join: a resource another
// user owns is indistinguishable from one that does not exist.
type Repository[T Entity] interface {
	// Insert adds a new resource row.
	// Unique violations are translated to DUPLICATE_ENTRY.
	Insert(ctx context.Context, res T) error

	// Update replaces mutable columns of an existing row (last write wins).
	Update(ctx context.Context, res T) error

	// Delete removes the row physically.
	Delete(ctx context.Context, resourceID id.ID) error

	// FindByOwner retrieves a resource the given user owns.
	// Returns NOT_FOUND when the row is absent or owned by someone else.
	FindByOwner(ctx context.Context, ownerID string, resourceID id.ID) (T, error)

	// ListByOwner retrieves a page of the user's resources.
	// Params must already be normalized.
	ListByOwner(ctx context.Context, ownerID string, params QueryParams) ([]T, error)

	// CountByOwner counts the user's resources matching the search term.
	CountByOwner(ctx context.Context, ownerID string, search string) (int64, error)

	// CountByOwnerAndName counts the user's resources whose trimmed,
	// lowercased name equals the given one. Pass id.Nil as excludeID to
	// match all rows, or a resource id to ignore that row (rename checks).
	CountByOwnerAndName(ctx context.Context, ownerID, name string, excludeID id.ID) (int64, error)
}

// OwnershipService links authenticated users to resource rows.
// Implemented by internal/domain/ownership.
type OwnershipService interface {
	// GetByUserAndResource returns the join row or NOT_FOUND.
	GetByUserAndResource(ctx context.Context, userID string, resourceID id.ID) (*ownership.Ownership, error)

	// Create inserts a join row for the pair.
	Create(ctx context.Context, userID string, resourceID id.ID) (*ownership.Ownership, error)

	// Delete removes the join row identified by the exact
	// (userID, resourceID, ownershipID) triple, NOT_FOUND otherwise.
	Delete(ctx context.Context, userID string, resourceID, ownershipID id.ID) error
}

// BlobGateway stores resource images in an external object store.
// The gateway has no transactional join with the relational store, so
// Service compensates manually when one side fails.
type BlobGateway interface {
	// Upload writes data under bucket/objectName with PUT semantics
	// (an existing object is overwritten) and returns the public URL
	// carrying a freshness token. Fails with UPLOAD_FAILED.
	Upload(ctx context.Context, bucket, objectName string, data []byte) (string, error)

	// URL returns the public URL for an object with a freshness token.
	URL(bucket, objectName string) string

	// Delete removes the object the URL points to. A missing object is
	// success, so compensations and retries are idempotent.
	// Fails with DELETE_FAILED.
	Delete(ctx context.Context, bucket, imageURL string) error
}
