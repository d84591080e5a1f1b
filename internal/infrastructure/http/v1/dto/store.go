package dto

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"backroom/internal/core/apperror"
	"backroom/internal/core/id"
	"backroom/internal/domain/store"
)

// CreateStoreRequest is the POST /stores body. The client generates the
// id so retried creates stay stable.
type CreateStoreRequest struct {
	ID            string          `json:"id" binding:"required,uuid"`
	Name          string          `json:"name" binding:"required,max=100"`
	Address       string          `json:"address" binding:"required,max=255"`
	Image         string          `json:"image"`
	Discount      string          `json:"discount"`
	TotalDiscount decimal.Decimal `json:"totalDiscount"`
	Tax           string          `json:"tax"`
	TotalTax      decimal.Decimal `json:"totalTax"`
}

// ToEntity maps the request to a store entity plus decoded image bytes.
func (r CreateStoreRequest) ToEntity() (*store.Store, []byte, error) {
	storeID, err := id.Parse(r.ID)
	if err != nil {
		return nil, nil, apperror.NewValidation("id must be a valid uuid")
	}

	image, err := DecodeImage(r.Image)
	if err != nil {
		return nil, nil, err
	}

	s := store.New(storeID, NormalizeName(r.Name), strings.TrimSpace(r.Address))
	if r.Discount != "" {
		s.Discount = store.AmountType(r.Discount)
	}
	s.TotalDiscount = r.TotalDiscount
	if r.Tax != "" {
		s.Tax = store.AmountType(r.Tax)
	}
	s.TotalTax = r.TotalTax

	return s, image, nil
}

// UpdateStoreRequest is the PUT /stores/:id body. Absent fields keep
// their current values.
type UpdateStoreRequest struct {
	Name          *string          `json:"name" binding:"omitempty,max=100"`
	Address       *string          `json:"address" binding:"omitempty,max=255"`
	Image         string           `json:"image"`
	Discount      *string          `json:"discount"`
	TotalDiscount *decimal.Decimal `json:"totalDiscount"`
	Tax           *string          `json:"tax"`
	TotalTax      *decimal.Decimal `json:"totalTax"`
}

// Apply mutates the loaded entity with the provided fields.
func (r UpdateStoreRequest) Apply(s *store.Store) {
	if r.Name != nil {
		s.Name = NormalizeName(*r.Name)
	}
	if r.Address != nil {
		s.Address = strings.TrimSpace(*r.Address)
	}
	if r.Discount != nil {
		s.Discount = store.AmountType(*r.Discount)
	}
	if r.TotalDiscount != nil {
		s.TotalDiscount = *r.TotalDiscount
	}
	if r.Tax != nil {
		s.Tax = store.AmountType(*r.Tax)
	}
	if r.TotalTax != nil {
		s.TotalTax = *r.TotalTax
	}
}

// StoreResponse is the API representation of a store.
type StoreResponse struct {
	ID            string          `json:"id"`
	Slug          string          `json:"slug"`
	Name          string          `json:"name"`
	Address       string          `json:"address"`
	Image         *string         `json:"image"`
	Discount      string          `json:"discount"`
	TotalDiscount decimal.Decimal `json:"totalDiscount"`
	Tax           string          `json:"tax"`
	TotalTax      decimal.Decimal `json:"totalTax"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

// FromStore maps a store entity to its response.
func FromStore(s *store.Store) StoreResponse {
	return StoreResponse{
		ID:            s.ID.String(),
		Slug:          s.Slug,
		Name:          s.Name,
		Address:       s.Address,
		Image:         s.Image,
		Discount:      string(s.Discount),
		TotalDiscount: s.TotalDiscount,
		Tax:           string(s.Tax),
		TotalTax:      s.TotalTax,
		CreatedAt:     s.CreatedAt,
		UpdatedAt:     s.UpdatedAt,
	}
}
