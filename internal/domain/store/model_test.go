package store

import (
	"context"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"backroom/internal/core/apperror"
	"backroom/internal/core/id"
)

func validStore() *Store {
	return New(id.New(), "main store", "1 high street")
}

func TestStoreValidate(t *testing.T) {
	require.NoError(t, validStore().Validate(context.Background()))
}

func TestStoreValidateErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(s *Store)
	}{
		{"missing id", func(s *Store) { s.ID = id.Nil }},
		{"missing name", func(s *Store) { s.Name = "" }},
		{"name too long", func(s *Store) { s.Name = strings.Repeat("x", 101) }},
		{"missing address", func(s *Store) { s.Address = "" }},
		{"address too long", func(s *Store) { s.Address = strings.Repeat("x", 256) }},
		{"unknown discount type", func(s *Store) { s.Discount = "GIFT" }},
		{"unknown tax type", func(s *Store) { s.Tax = "VAT" }},
		{"discount without amount", func(s *Store) { s.Discount = AmountPercentage }},
		{"negative tax amount", func(s *Store) {
			s.Tax = AmountNominal
			s.TotalTax = decimal.NewFromInt(-5)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := validStore()
			tt.mutate(s)
			err := s.Validate(context.Background())
			require.Error(t, err)
			appErr, ok := apperror.AsAppError(err)
			require.True(t, ok)
			assert.Equal(t, apperror.CodeValidation, appErr.Code)
		})
	}
}

func TestStoreValidateWithAmounts(t *testing.T) {
	s := validStore()
	s.Discount = AmountPercentage
	s.TotalDiscount = decimal.NewFromInt(10)
	s.Tax = AmountNominal
	s.TotalTax = decimal.NewFromFloat(1.5)
	require.NoError(t, s.Validate(context.Background()))
}

func TestAmountTypeValid(t *testing.T) {
	assert.True(t, AmountNone.Valid())
	assert.True(t, AmountNominal.Valid())
	assert.True(t, AmountPercentage.Valid())
	assert.False(t, AmountType("").Valid())
	assert.False(t, AmountType("nominal").Valid())
}
