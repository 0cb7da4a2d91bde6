// Package schema describes, per entity class, the set of declared
// attributes and their storage metadata: layout, value type, and — for
// vector and sparse layouts — the dimension width and optional ordered
// dimension names.
//
// Layouts form a closed set:
//
//	Scalar — one value per entity position
//	List   — a ragged, ordered sequence of values per position
//	Vector — a fixed-width dense value array per position
//	Sparse — a variable-size (dimension, value) subset of a shared
//	         dimension space per position
//
// Layout and width are immutable once an attribute is declared; the
// dataset builder enforces that invariant by funnelling every declaration
// through Entity.Add.
package schema
