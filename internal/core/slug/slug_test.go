package slug

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"backroom/internal/core/apperror"
)

func TestGenerate(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		opts     Options
		expected string
	}{
		{
			name:     "simple name",
			text:     "Main Street Store",
			expected: "main-street-store",
		},
		{
			name:     "already lowercase",
			text:     "warehouse",
			expected: "warehouse",
		},
		{
			name:     "diacritics folded",
			text:     "Café Ümlaut",
			expected: "cafe-umlaut",
		},
		{
			name:     "punctuation dropped",
			text:     "Bob's Shop & Co.",
			expected: "bobs-shop-co",
		},
		{
			name:     "whitespace runs collapsed",
			text:     "  too   many\tspaces  ",
			expected: "too-many-spaces",
		},
		{
			name:     "existing hyphens collapsed",
			text:     "pre--hyphenated -- name",
			expected: "pre-hyphenated-name",
		},
		{
			name:     "digits and underscore kept",
			text:     "Depot_7 north",
			expected: "depot_7-north",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Generate(tt.text, tt.opts)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestGenerateWithID(t *testing.T) {
	got, err := Generate("Main Store", Options{
		WithID: true,
		UUID:   "0bd48689-a4b8-4de5-9f16-9b2b5f2e8a11",
	})
	require.NoError(t, err)
	assert.Equal(t, "main-store-9b2b5f2e8a11", got)
}

func TestGenerateWithIDNoHyphenUUID(t *testing.T) {
	got, err := Generate("Main Store", Options{
		WithID: true,
		UUID:   "abcdef123456",
	})
	require.NoError(t, err)
	assert.Equal(t, "main-store-abcdef123456", got)
}

func TestGenerateDeterministic(t *testing.T) {
	opts := Options{WithID: true, UUID: "0bd48689-a4b8-4de5-9f16-9b2b5f2e8a11"}
	first, err := Generate("Grünes Lager #2", opts)
	require.NoError(t, err)
	second, err := Generate("Grünes Lager #2", opts)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestGenerateErrors(t *testing.T) {
	tests := []struct {
		name string
		text string
		opts Options
	}{
		{name: "empty text", text: ""},
		{name: "whitespace only", text: "   \t  "},
		{name: "symbols only", text: "!!! ***"},
		{name: "with id but no uuid", text: "valid name", opts: Options{WithID: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Generate(tt.text, tt.opts)
			require.Error(t, err)
			appErr, ok := apperror.AsAppError(err)
			require.True(t, ok)
			assert.Equal(t, apperror.CodeValidation, appErr.Code)
		})
	}
}
