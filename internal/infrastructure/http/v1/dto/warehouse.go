package dto

import (
	"strings"
	"time"

	"backroom/internal/core/apperror"
	"backroom/internal/core/id"
	"backroom/internal/domain/warehouse"
)

// CreateWarehouseRequest is the POST /warehouses body.
type CreateWarehouseRequest struct {
	ID      string `json:"id" binding:"required,uuid"`
	StoreID string `json:"storeId" binding:"required,uuid"`
	Name    string `json:"name" binding:"required,max=100"`
	Address string `json:"address" binding:"required,max=255"`
	Image   string `json:"image"`
}

// ToEntity maps the request to a warehouse entity plus decoded image bytes.
func (r CreateWarehouseRequest) ToEntity() (*warehouse.Warehouse, []byte, error) {
	warehouseID, err := id.Parse(r.ID)
	if err != nil {
		return nil, nil, apperror.NewValidation("id must be a valid uuid")
	}

	storeID, err := id.Parse(r.StoreID)
	if err != nil {
		return nil, nil, apperror.NewValidation("storeId must be a valid uuid")
	}

	image, err := DecodeImage(r.Image)
	if err != nil {
		return nil, nil, err
	}

	w := warehouse.New(warehouseID, storeID, NormalizeName(r.Name), strings.TrimSpace(r.Address))
	return w, image, nil
}

// UpdateWarehouseRequest is the PUT /warehouses/:id body. Absent fields
// keep their current values.
type UpdateWarehouseRequest struct {
	Name    *string `json:"name" binding:"omitempty,max=100"`
	Address *string `json:"address" binding:"omitempty,max=255"`
	StoreID *string `json:"storeId" binding:"omitempty,uuid"`
	Image   string  `json:"image"`
}

// Apply mutates the loaded entity with the provided fields.
func (r UpdateWarehouseRequest) Apply(w *warehouse.Warehouse) {
	if r.Name != nil {
		w.Name = NormalizeName(*r.Name)
	}
	if r.Address != nil {
		w.Address = strings.TrimSpace(*r.Address)
	}
	if r.StoreID != nil {
		if storeID, err := id.Parse(*r.StoreID); err == nil {
			w.StoreID = storeID
		}
	}
}

// WarehouseResponse is the API representation of a warehouse.
type WarehouseResponse struct {
	ID        string    `json:"id"`
	StoreID   string    `json:"storeId"`
	Slug      string    `json:"slug"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	Image     *string   `json:"image"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// FromWarehouse maps a warehouse entity to its response.
func FromWarehouse(w *warehouse.Warehouse) WarehouseResponse {
	return WarehouseResponse{
		ID:        w.ID.String(),
		StoreID:   w.StoreID.String(),
		Slug:      w.Slug,
		Name:      w.Name,
		Address:   w.Address,
		Image:     w.Image,
		CreatedAt: w.CreatedAt,
		UpdatedAt: w.UpdatedAt,
	}
}
