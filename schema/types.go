// File: types.go
// Role: Layout and ValueType enumerations.
//
// Both enumerations are closed: every switch over them in the dataset
// package is exhaustive, which is what turns "layout mismatch" into a
// single well-defined error case instead of silent reinterpretation.

package schema

// Layout is the storage shape of an attribute column.
type Layout uint8

const (
	// Scalar stores one value (or null) per entity position.
	Scalar Layout = iota

	// List stores a variable-length ordered value sequence per position;
	// a null slot (no list) is distinct from an empty list.
	List

	// Vector stores either null or a dense value array of exactly Width
	// entries per position.
	Vector

	// Sparse stores a variable-size set of (dimension position, value)
	// pairs per position, drawn from a dimension space of size Width.
	Sparse
)

// String returns the lower-case layout name.
func (l Layout) String() string {
	switch l {
	case Scalar:
		return "scalar"
	case List:
		return "list"
	case Vector:
		return "vector"
	case Sparse:
		return "sparse"
	default:
		return "unknown"
	}
}

// ValueType is the element type of an attribute column.  Numeric source
// values are widened to a fixed-width representation (float64 / int64);
// text is kept as text.
type ValueType uint8

const (
	// Float is a 64-bit floating point element.
	Float ValueType = iota

	// Int is a 64-bit signed integer element.
	Int

	// String is a text element.
	String
)

// String returns the lower-case value type name.
func (t ValueType) String() string {
	switch t {
	case Float:
		return "float"
	case Int:
		return "int"
	case String:
		return "string"
	default:
		return "unknown"
	}
}

// Numeric reports whether the value type participates in dense numeric
// exports.
func (t ValueType) Numeric() bool { return t == Float || t == Int }
