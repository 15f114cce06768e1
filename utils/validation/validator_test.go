package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type titled struct {
	Title *string `json:"title" validate:"required,max=10"`
	Order int     `json:"order" validate:"gte=0"`
}

func TestValidateStructReportsJSONFieldNames(t *testing.T) {
	v := NewValidator()

	err := v.ValidateStruct(titled{Order: -1})
	require.Error(t, err)

	fields := FormatValidationErrors(err)
	assert.Equal(t, "title is required", fields["title"])
	assert.Equal(t, "order must be greater than or equal to 0", fields["order"])
}

func TestRequiredPointerAcceptsEmptyString(t *testing.T) {
	v := NewValidator()
	empty := ""

	assert.NoError(t, v.ValidateStruct(titled{Title: &empty}))
}

func TestFormatValidationErrorsIgnoresOtherErrors(t *testing.T) {
	assert.Empty(t, FormatValidationErrors(assert.AnError))
}
