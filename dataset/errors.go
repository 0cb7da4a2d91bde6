// Package dataset: sentinel error set.
//
// Schema-level violations (duplicate attribute, dimension mismatch,
// unsupported value type) surface as the sentinels of package schema;
// vocabulary violations as the sentinels of package vocab.  The sentinels
// below cover the dataset-specific cases.  All are returned wrapped with
// call context and must be matched with errors.Is.

package dataset

import "errors"

var (
	// ErrUnknownClass indicates an operation referenced an entity class
	// that was never created via AddEntities.
	ErrUnknownClass = errors.New("dataset: unknown entity class")

	// ErrUnknownEntity indicates attribute or interaction data referenced
	// an identifier never registered for its entity class.
	ErrUnknownEntity = errors.New("dataset: unknown entity identifier")

	// ErrDuplicateEntity indicates one call supplied the same identifier
	// more than once with conflicting associated data.  Plain repeated
	// registration without payload is idempotent and never errors.
	ErrDuplicateEntity = errors.New("dataset: duplicate entity in call set")

	// ErrUnknownAttribute indicates a lookup for an attribute name that
	// was never declared on the entity class.
	ErrUnknownAttribute = errors.New("dataset: unknown attribute")

	// ErrLayoutMismatch indicates a layout-specific operation was invoked
	// on an attribute of a different layout (e.g. SparseMatrix on a scalar
	// attribute).  Exports never silently reinterpret layout.
	ErrLayoutMismatch = errors.New("dataset: attribute layout mismatch")

	// ErrNilInput indicates a nil matrix or data argument.
	ErrNilInput = errors.New("dataset: nil input")

	// ErrMissingValue indicates a dense export encountered absent rows for
	// a value type with no defined fill (integers without WithFill).
	ErrMissingValue = errors.New("dataset: missing value without fill policy")
)
