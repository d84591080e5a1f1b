// Package warehouse provides the Warehouse resource: a storage location
// attached to a store.
package warehouse

import (
	"context"

	"backroom/internal/core/apperror"
	"backroom/internal/core/id"
	"backroom/internal/domain/resource"
)

// Warehouse is a storage location owned by a user and attached to a store.
type Warehouse struct {
	resource.Base

	// StoreID references the store this warehouse belongs to.
	StoreID id.ID `db:"store_id" json:"storeId"`
}

// New creates a Warehouse with the given id.
func New(warehouseID, storeID id.ID, name, address string) *Warehouse {
	w := &Warehouse{
		Base:    resource.NewBase(warehouseID),
		StoreID: storeID,
	}
	w.Name = name
	w.Address = address
	return w
}

// Validate checks entity invariants.
func (w *Warehouse) Validate(ctx context.Context) error {
	if id.IsNil(w.ID) {
		return apperror.NewValidation("warehouse id is required")
	}
	if w.Name == "" {
		return apperror.NewValidation("warehouse name is required")
	}
	if len(w.Name) > 100 {
		return apperror.NewValidation("warehouse name must be at most 100 characters")
	}
	if w.Address == "" {
		return apperror.NewValidation("warehouse address is required")
	}
	if len(w.Address) > 255 {
		return apperror.NewValidation("warehouse address must be at most 255 characters")
	}
	if id.IsNil(w.StoreID) {
		return apperror.NewValidation("warehouse store id is required")
	}
	return nil
}
