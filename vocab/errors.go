// Package vocab: sentinel error set.
//
// All operations return these sentinels (possibly wrapped with context via
// fmt.Errorf("...: %w", ErrX)); callers must branch with errors.Is.

package vocab

import "errors"

var (
	// ErrEmptyID indicates that an empty identifier was passed to Register.
	ErrEmptyID = errors.New("vocab: identifier is empty")

	// ErrUnknownIdentifier indicates a PositionOf lookup for an identifier
	// that was never registered.  Callers that expect absent identifiers
	// should use PositionOr / Positions with a missing sentinel instead.
	ErrUnknownIdentifier = errors.New("vocab: unknown identifier")

	// ErrOutOfRange indicates an IDAt position ≥ Len() (or < 0).
	ErrOutOfRange = errors.New("vocab: position out of range")
)
