// Package vocab maintains bidirectional vocabularies between arbitrary
// domain identifiers and dense 0-based positions.
//
// Every numeric algorithm downstream of a dataset addresses entities by
// dense integer position; every data source addresses them by domain
// identifier (a user key, a movie id).  A Vocabulary is the bijection
// between the two worlds:
//
//	v := vocab.New()
//	_ = v.Register("u1", "u7", "u3")
//	pos, _ := v.PositionOf("u7") // 1
//	id, _ := v.IDAt(1)           // "u7"
//
// Invariants:
//   - identifiers are unique; positions are contiguous integers 0..n-1
//     assigned in first-seen order;
//   - once an identifier has a position, that position never changes for
//     the lifetime of the vocabulary;
//   - re-registering an existing identifier is a no-op (idempotent union).
//
// Consumers translating heterogeneous batches — where some identifiers are
// legitimately absent — should use PositionOr or Positions with an explicit
// missing sentinel instead of handling ErrUnknownIdentifier per lookup.
//
// A Vocabulary is not safe for concurrent mutation; once frozen inside a
// built dataset it is never mutated again and is safe for unlimited
// concurrent reads.
package vocab
