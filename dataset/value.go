// File: value.go
// Role: tagged scalar value used when feeding attribute data to the
// builder.
//
// The store standardizes on an explicit null representation instead of
// implicit sentinel values: a missing slot is Null(), never NaN-by-
// convention or a negative index.

package dataset

import (
	"strconv"

	"github.com/katalvlaran/recdata/schema"
)

// Value is one element of attribute data: a float, an int, a string, or
// null.  Construct values with Float, Int, String, or Null; the zero Value
// is null.
type Value struct {
	vtype schema.ValueType
	set   bool
	f     float64
	i     int64
	s     string
}

// Float makes a float64 value.
func Float(v float64) Value { return Value{vtype: schema.Float, set: true, f: v} }

// Int makes an int64 value.
func Int(v int64) Value { return Value{vtype: schema.Int, set: true, i: v} }

// String makes a text value.
func String(v string) Value { return Value{vtype: schema.String, set: true, s: v} }

// Null makes an explicit null value.  In positionally aligned columns a
// null marks "no value at this position".
func Null() Value { return Value{} }

// IsNull reports whether the value is null.
func (v Value) IsNull() bool { return !v.set }

// Type returns the element type; meaningless for null values.
func (v Value) Type() schema.ValueType { return v.vtype }

// Float returns the float64 payload; for Int values the widened integer.
func (v Value) Float() float64 {
	if v.vtype == schema.Int {
		return float64(v.i)
	}
	return v.f
}

// Int returns the int64 payload.
func (v Value) Int() int64 { return v.i }

// Str returns the string payload.
func (v Value) Str() string { return v.s }

// Any returns the payload as an untyped value, or nil when null.  Used by
// labeled-table rows.
func (v Value) Any() any {
	if !v.set {
		return nil
	}
	switch v.vtype {
	case schema.Float:
		return v.f
	case schema.Int:
		return v.i
	default:
		return v.s
	}
}

// GoString renders the value for diagnostics.
func (v Value) GoString() string {
	if !v.set {
		return "null"
	}
	switch v.vtype {
	case schema.Float:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	case schema.Int:
		return strconv.FormatInt(v.i, 10)
	default:
		return strconv.Quote(v.s)
	}
}
