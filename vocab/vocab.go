// File: vocab.go
// Role: Vocabulary construction, registration, and bidirectional lookup.
//
// Determinism:
//   - Positions are assigned strictly in first-seen order; no map iteration
//     order ever leaks into position assignment.
//
// Concurrency:
//   - Register mutates; all other methods are read-only.  Builders own the
//     only mutating reference; frozen snapshots (Clone) are read-only.

package vocab

import "fmt"

// ID is a domain identifier for one entity instance (a user key, an item
// key, a tag).  Numeric source identifiers are carried as their decimal
// string form; the vocabulary itself is agnostic.
type ID string

// Vocabulary is an append-only bijection ID ↔ dense position.
//
// ids holds identifiers in position order; index is the reverse map.
// Both structures always agree: index[ids[i]] == i for every i.
type Vocabulary struct {
	ids   []ID
	index map[ID]int
}

// New creates a Vocabulary, registering any provided identifiers in order.
// Empty identifiers are rejected by Register; New panics on that programmer
// error to keep the constructor chainable in tests and fixtures.
// Complexity: O(len(ids)).
func New(ids ...ID) *Vocabulary {
	v := &Vocabulary{index: make(map[ID]int, len(ids))}
	if err := v.Register(ids...); err != nil {
		panic(fmt.Sprintf("vocab.New: %v", err))
	}
	return v
}

// Register assigns fresh positions to any identifier not already present,
// in first-seen order.  Re-registering an existing identifier is a no-op,
// so overlapping registration sets union idempotently.
//
// The whole call is validated before any mutation: either every identifier
// is legal and the union is applied, or the vocabulary is left untouched.
//
// Errors:
//   - ErrEmptyID: some identifier is the empty string.
//
// Complexity: O(len(ids)) amortized.
func (v *Vocabulary) Register(ids ...ID) error {
	for _, id := range ids {
		if id == "" {
			return fmt.Errorf("Register: %w", ErrEmptyID)
		}
	}
	for _, id := range ids {
		if _, ok := v.index[id]; ok {
			continue // idempotent re-registration
		}
		v.index[id] = len(v.ids)
		v.ids = append(v.ids, id)
	}
	return nil
}

// PositionOf returns the dense position of id.  The returned position is
// stable: every call over the vocabulary's lifetime returns the same value.
//
// Errors:
//   - ErrUnknownIdentifier: id was never registered.
//
// Complexity: O(1) average.
func (v *Vocabulary) PositionOf(id ID) (int, error) {
	pos, ok := v.index[id]
	if !ok {
		return 0, fmt.Errorf("PositionOf(%q): %w", id, ErrUnknownIdentifier)
	}
	return pos, nil
}

// PositionOr returns the dense position of id, or sentinel when id is not
// registered.  This is the lookup mode for consumers translating batches
// where some identifiers are legitimately absent.
// Complexity: O(1) average.
func (v *Vocabulary) PositionOr(id ID, sentinel int) int {
	if pos, ok := v.index[id]; ok {
		return pos
	}
	return sentinel
}

// Positions translates a batch of identifiers into dense positions,
// substituting sentinel for identifiers that are not registered.  The
// result is aligned index-for-index with ids.
// Complexity: O(len(ids)).
func (v *Vocabulary) Positions(ids []ID, sentinel int) []int {
	out := make([]int, len(ids))
	for i, id := range ids {
		out[i] = v.PositionOr(id, sentinel)
	}
	return out
}

// Contains reports whether id has been registered.
// Complexity: O(1) average.
func (v *Vocabulary) Contains(id ID) bool {
	_, ok := v.index[id]
	return ok
}

// IDAt returns the identifier at the given dense position.
//
// Errors:
//   - ErrOutOfRange: pos < 0 or pos ≥ Len().
//
// Complexity: O(1).
func (v *Vocabulary) IDAt(pos int) (ID, error) {
	if pos < 0 || pos >= len(v.ids) {
		return "", fmt.Errorf("IDAt(%d): size %d: %w", pos, len(v.ids), ErrOutOfRange)
	}
	return v.ids[pos], nil
}

// Len returns the number of registered identifiers.
// Complexity: O(1).
func (v *Vocabulary) Len() int { return len(v.ids) }

// IDs returns all identifiers in vocabulary (position) order.
// The slice is a copy; mutating it does not affect the vocabulary.
// Complexity: O(n).
func (v *Vocabulary) IDs() []ID {
	out := make([]ID, len(v.ids))
	copy(out, v.ids)
	return out
}

// Clone returns an independent copy of the vocabulary.  Builders use Clone
// to freeze an immutable snapshot into a dataset while retaining their own
// mutable copy.
// Complexity: O(n).
func (v *Vocabulary) Clone() *Vocabulary {
	c := &Vocabulary{
		ids:   make([]ID, len(v.ids)),
		index: make(map[ID]int, len(v.index)),
	}
	copy(c.ids, v.ids)
	for id, pos := range v.index {
		c.index[id] = pos
	}
	return c
}
