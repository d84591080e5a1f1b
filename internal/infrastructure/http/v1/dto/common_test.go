package dto

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"backroom/internal/core/apperror"
)

func TestNormalizeName(t *testing.T) {
	assert.Equal(t, "main store", NormalizeName("  Main Store  "))
	assert.Equal(t, "depot", NormalizeName("DEPOT"))
	assert.Equal(t, "", NormalizeName("   "))
}

func TestDecodeImage(t *testing.T) {
	payload := []byte("jpeg-bytes")
	encoded := base64.StdEncoding.EncodeToString(payload)

	data, err := DecodeImage(encoded)
	require.NoError(t, err)
	assert.Equal(t, payload, data)
}

func TestDecodeImageDataURL(t *testing.T) {
	payload := []byte("jpeg-bytes")
	encoded := "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(payload)

	data, err := DecodeImage(encoded)
	require.NoError(t, err)
	assert.Equal(t, payload, data)
}

func TestDecodeImageEmpty(t *testing.T) {
	data, err := DecodeImage("")
	require.NoError(t, err)
	assert.Nil(t, data)
}

func TestDecodeImageInvalid(t *testing.T) {
	_, err := DecodeImage("not-base64!!!")
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeValidation, appErr.Code)
}

func TestListQueryToParams(t *testing.T) {
	q := ListQuery{Page: 2, Limit: 10, Search: "  depot  ", Sort: "name", Order: "asc"}
	params := q.ToParams()
	assert.Equal(t, 2, params.Page)
	assert.Equal(t, 10, params.Limit)
	assert.Equal(t, "depot", params.Search)
	assert.Equal(t, "name", params.Sort)
	assert.Equal(t, "asc", params.Order)
}
