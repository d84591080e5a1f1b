// Package ownership manages the join rows linking authenticated users to
// the resources they own. Every resource read and write goes through this
// link, which is what makes the platform multi-tenant.
package ownership

import (
	"context"
	"time"

	"backroom/internal/core/id"
)

// Ownership is a join row between a user and a resource.
// The same struct serves both join tables; the repository maps the
// resource foreign key column (store_id, warehouse_id) to ResourceID.
type Ownership struct {
	ID id.ID `db:"id" json:"id"`

	// UserID is the opaque subject from the identity provider.
	UserID string `db:"user_id" json:"userId"`

	ResourceID id.ID `db:"resource_id" json:"resourceId"`

	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// New creates an Ownership with a generated id and timestamps set to now.
func New(userID string, resourceID id.ID) *Ownership {
	now := time.Now().UTC()
	return &Ownership{
		ID:         id.New(),
		UserID:     userID,
		ResourceID: resourceID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// Repository defines storage operations for a single join table.
type Repository interface {
	// Insert adds a join row. Duplicate (user, resource) pairs are
	// translated to DUPLICATE_ENTRY by the unique constraint.
	Insert(ctx context.Context, own *Ownership) error

	// FindByUserAndResource returns the join row for the pair,
	// NOT_FOUND when absent.
	FindByUserAndResource(ctx context.Context, userID string, resourceID id.ID) (*Ownership, error)

	// DeleteByTriple removes the row matching all three identifiers.
	// Returns the number of rows removed (0 or 1).
	DeleteByTriple(ctx context.Context, userID string, resourceID, ownershipID id.ID) (int64, error)
}
