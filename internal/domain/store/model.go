// Package store provides the Store resource: a retail location with
// default discount and tax settings applied at the point of sale.
package store

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"backroom/internal/core/apperror"
	"backroom/internal/core/id"
	"backroom/internal/domain/resource"
)

// AmountType describes how a discount or tax magnitude is applied.
type AmountType string

const (
	// AmountNone disables the adjustment.
	AmountNone AmountType = "NONE"

	// AmountNominal applies the magnitude as an absolute amount.
	AmountNominal AmountType = "NOMINAL"

	// AmountPercentage applies the magnitude as a percentage.
	AmountPercentage AmountType = "PERCENTAGE"
)

// Valid reports whether the value is one of the known amount types.
func (t AmountType) Valid() bool {
	switch t {
	case AmountNone, AmountNominal, AmountPercentage:
		return true
	}
	return false
}

// Store is a retail location owned by a user.
type Store struct {
	resource.Base

	// Discount and Tax configure the store-wide defaults.
	Discount      AmountType      `db:"discount" json:"discount"`
	TotalDiscount decimal.Decimal `db:"total_discount" json:"totalDiscount"`
	Tax           AmountType      `db:"tax" json:"tax"`
	TotalTax      decimal.Decimal `db:"total_tax" json:"totalTax"`
}

// New creates a Store with the given id. Name and address are expected
// to arrive already trimmed and lowercased from the request boundary.
func New(storeID id.ID, name, address string) *Store {
	s := &Store{
		Base:     resource.NewBase(storeID),
		Discount: AmountNone,
		Tax:      AmountNone,
	}
	s.Name = name
	s.Address = address
	return s
}

// Validate checks entity invariants.
func (s *Store) Validate(ctx context.Context) error {
	if id.IsNil(s.ID) {
		return apperror.NewValidation("store id is required")
	}
	if s.Name == "" {
		return apperror.NewValidation("store name is required")
	}
	if len(s.Name) > 100 {
		return apperror.NewValidation("store name must be at most 100 characters")
	}
	if s.Address == "" {
		return apperror.NewValidation("store address is required")
	}
	if len(s.Address) > 255 {
		return apperror.NewValidation("store address must be at most 255 characters")
	}
	if !s.Discount.Valid() {
		return apperror.NewValidation(fmt.Sprintf("unknown discount type %q", s.Discount))
	}
	if !s.Tax.Valid() {
		return apperror.NewValidation(fmt.Sprintf("unknown tax type %q", s.Tax))
	}
	if s.Discount != AmountNone && !s.TotalDiscount.IsPositive() {
		return apperror.NewValidation("discount amount must be positive when a discount type is set")
	}
	if s.Tax != AmountNone && !s.TotalTax.IsPositive() {
		return apperror.NewValidation("tax amount must be positive when a tax type is set")
	}
	return nil
}
