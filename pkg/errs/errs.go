package errs

import (
	"fmt"
	"strings"
)

// UnsupportedTypeError is returned if a schema type token
// has no entry in the mapping table of its category.
type UnsupportedTypeError struct {
	// Op is the short name of the operator.
	Op string

	// Category of the table that was searched (e.g. "input/output").
	Category string

	// Token is the offending type token.
	Token string
}

// ErrUnsupportedType creates an "unsupported type" error
func ErrUnsupportedType(op, category, token string) *UnsupportedTypeError {
	return &UnsupportedTypeError{
		Op:       op,
		Category: category,
		Token:    token,
	}
}

func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf(`%v: unsupported %v type "%v"`, e.Op, e.Category, e.Token)
}

// CardinalityError is returned if the parallel description
// lists of one category have unequal lengths.
type CardinalityError struct {
	Op       string
	Category string

	Names     int
	Types     int
	Optionals int
}

// ErrCardinality creates a "cardinality mismatch" error.
// A negative optionals count means the category has no optionality.
func ErrCardinality(op, category string, names, types, optionals int) *CardinalityError {
	return &CardinalityError{
		Op:        op,
		Category:  category,
		Names:     names,
		Types:     types,
		Optionals: optionals,
	}
}

func (e *CardinalityError) Error() string {
	if e.Optionals < 0 {
		return fmt.Sprintf(`%v: %v name list size (%v) != type list size (%v)`,
			e.Op, e.Category, e.Names, e.Types)
	}

	return fmt.Sprintf(`%v: %v list sizes differ (names: %v, types: %v, optionals: %v)`,
		e.Op, e.Category, e.Names, e.Types, e.Optionals)
}

// StructureError is returned if a required field
// is absent from a raw schema record.
type StructureError struct {
	Op string

	// Field is the path of the missing or malformed field, like "inputs[1].typename".
	Field string

	// Additional info
	Info []string
}

// ErrStructure creates a "schema structure" error
func ErrStructure(op, field string, info ...string) *StructureError {
	return &StructureError{
		Op:    op,
		Field: field,
		Info:  info,
	}
}

func (e *StructureError) Error() string {
	op := e.Op
	if op == "" {
		op = "<unnamed operator>"
	}

	msg := fmt.Sprintf(`%v: field "%v" is missing`, op, e.Field)
	if len(e.Info) > 0 {
		msg += " (" + strings.Join(e.Info, ", ") + ")"
	}

	return msg
}

// SchemaError wraps any error that occurred
// while normalizing an operator record.
type SchemaError struct {
	Op  string
	Err error
}

func (e *SchemaError) Error() string {
	switch e.Err.(type) {
	case *UnsupportedTypeError, *CardinalityError, *StructureError:
		// These already name the operator.
		return "invalid schema: " + e.Err.Error()
	}

	return fmt.Sprintf("invalid schema for operator %v: %v", e.Op, e.Err)
}

func (e *SchemaError) Unwrap() error {
	return e.Err
}
