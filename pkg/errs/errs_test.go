package errs

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnsupportedTypeNamesOperator(t *testing.T) {
	err := ErrUnsupportedType("conv2d", "attribute", "complex64")

	assert.Equal(t, `conv2d: unsupported attribute type "complex64"`, err.Error())
}

func TestCardinalityMessage(t *testing.T) {
	assert.Equal(t,
		"relu: inputs list sizes differ (names: 2, types: 1, optionals: 2)",
		ErrCardinality("relu", "inputs", 2, 1, 2).Error(),
	)
	assert.Equal(t,
		"relu: attrs name list size (1) != type list size (0)",
		ErrCardinality("relu", "attrs", 1, 0, -1).Error(),
	)
}

func TestStructureMessage(t *testing.T) {
	assert.Equal(t, `scale: field "inputs" is missing`, ErrStructure("scale", "inputs").Error())
	assert.Equal(t,
		`<unnamed operator>: field "name" is missing (record 3)`,
		ErrStructure("", "name", "record 3").Error(),
	)
}

func TestSchemaErrorUnwraps(t *testing.T) {
	var err error = &SchemaError{Op: "scale", Err: ErrUnsupportedType("scale", "input/output", "Tensor<>")}
	err = fmt.Errorf("parse failed: %w", err)

	var unsupported *UnsupportedTypeError
	require.True(t, errors.As(err, &unsupported))
	assert.Equal(t, "Tensor<>", unsupported.Token)

	var schemaErr *SchemaError
	require.True(t, errors.As(err, &schemaErr))
	assert.Equal(t, "scale", schemaErr.Op)
	assert.Equal(t, `parse failed: invalid schema: scale: unsupported input/output type "Tensor<>"`, err.Error())
}

func TestSchemaErrorNamesOperatorForForeignCauses(t *testing.T) {
	err := &SchemaError{Op: "scale", Err: errors.New("expected a map")}

	assert.Equal(t, "invalid schema for operator scale: expected a map", err.Error())
}
