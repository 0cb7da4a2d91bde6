// Package schema: sentinel error set.

package schema

import "errors"

var (
	// ErrEmptyName indicates an empty entity class or attribute name.
	ErrEmptyName = errors.New("schema: empty name")

	// ErrDuplicateAttribute indicates the same (entity class, attribute
	// name) pair was declared twice.
	ErrDuplicateAttribute = errors.New("schema: duplicate attribute")

	// ErrDimensionMismatch indicates inconsistent vector/sparse width:
	// a row whose length differs from the declared width, or a dimension
	// name list whose length differs from the width.
	ErrDimensionMismatch = errors.New("schema: dimension mismatch")

	// ErrUnsupportedValueType indicates a value type with no defined
	// storage mapping (for example, mixing text and numeric values in one
	// column).
	ErrUnsupportedValueType = errors.New("schema: unsupported value type")
)
