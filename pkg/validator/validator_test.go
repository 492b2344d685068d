package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Name string `validate:"required"`
	Qty  int    `validate:"gt=0"`
}

func TestValidateStruct(t *testing.T) {
	assert.Empty(t, ValidateStruct(sample{Name: "cable", Qty: 1}))

	errs := ValidateStruct(sample{Qty: 0})
	require.Len(t, errs, 2)
	assert.Equal(t, "sample.Name", errs[0].FailedField)
	assert.Equal(t, "required", errs[0].Tag)
	assert.Equal(t, "gt", errs[1].Tag)
	assert.Equal(t, "0", errs[1].Value)
}

func TestFirstError(t *testing.T) {
	assert.Equal(t, "", FirstError(sample{Name: "cable", Qty: 3}))
	assert.Equal(t, "field 'sample.Qty' failed on 'gt=0'", FirstError(sample{Name: "cable"}))
}
