// File: column.go
// Role: internal columnar storage, one variant per attribute layout.
//
// The four column kinds form a closed tagged union over
// {scalar, list, vector, sparse}; every accessor operation switches
// exhaustively over them, which is what makes ErrLayoutMismatch a single
// well-defined failure case.
//
// Invariant: the number of slots in every column equals the owning entity
// vocabulary's size, and slot i corresponds to vocabulary position i.  The
// builder maintains the invariant by growing all columns of a class
// whenever the class vocabulary grows.

package dataset

import "github.com/katalvlaran/recdata/schema"

// column is the closed storage union.
type column interface {
	layout() schema.Layout
	length() int
	grow(n int) // extend to n slots; new slots are null (or empty, sparse)
	clone() column
}

// compile-time closure of the union
var (
	_ column = (*scalarColumn)(nil)
	_ column = (*listColumn)(nil)
	_ column = (*vectorColumn)(nil)
	_ column = (*sparseColumn)(nil)
)

// ---------- scalar ----------

// scalarColumn stores one value or null per position.  Numeric payloads
// live in flat typed slices so columnar exports can reuse the buffers
// without copying.
type scalarColumn struct {
	vtype  schema.ValueType
	floats []float64
	ints   []int64
	strs   []string
	valid  []bool
}

func newScalarColumn(vtype schema.ValueType, n int) *scalarColumn {
	c := &scalarColumn{vtype: vtype, valid: make([]bool, n)}
	switch vtype {
	case schema.Float:
		c.floats = make([]float64, n)
	case schema.Int:
		c.ints = make([]int64, n)
	default:
		c.strs = make([]string, n)
	}
	return c
}

func (c *scalarColumn) layout() schema.Layout { return schema.Scalar }
func (c *scalarColumn) length() int           { return len(c.valid) }

func (c *scalarColumn) grow(n int) {
	for len(c.valid) < n {
		c.valid = append(c.valid, false)
		switch c.vtype {
		case schema.Float:
			c.floats = append(c.floats, 0)
		case schema.Int:
			c.ints = append(c.ints, 0)
		default:
			c.strs = append(c.strs, "")
		}
	}
}

// set stores v at pos; null values clear the slot.
func (c *scalarColumn) set(pos int, v Value) {
	if v.IsNull() {
		c.valid[pos] = false
		return
	}
	c.valid[pos] = true
	switch c.vtype {
	case schema.Float:
		c.floats[pos] = v.Float() // widens ints
	case schema.Int:
		c.ints[pos] = v.Int()
	default:
		c.strs[pos] = v.Str()
	}
}

// value re-wraps the slot at pos as a Value.
func (c *scalarColumn) value(pos int) Value {
	if !c.valid[pos] {
		return Null()
	}
	switch c.vtype {
	case schema.Float:
		return Float(c.floats[pos])
	case schema.Int:
		return Int(c.ints[pos])
	default:
		return String(c.strs[pos])
	}
}

func (c *scalarColumn) clone() column {
	n := &scalarColumn{vtype: c.vtype, valid: append([]bool(nil), c.valid...)}
	n.floats = append([]float64(nil), c.floats...)
	n.ints = append([]int64(nil), c.ints...)
	n.strs = append([]string(nil), c.strs...)
	return n
}

// ---------- list ----------

// listColumn stores a variable-length ordered value sequence per position.
// A null slot (no list) is distinct from an empty list: valid[i] is false
// for null, true with len(cells[i]) == 0 for empty.
type listColumn struct {
	vtype schema.ValueType
	cells [][]Value
	valid []bool
}

func newListColumn(vtype schema.ValueType, n int) *listColumn {
	return &listColumn{vtype: vtype, cells: make([][]Value, n), valid: make([]bool, n)}
}

func (c *listColumn) layout() schema.Layout { return schema.List }
func (c *listColumn) length() int           { return len(c.valid) }

func (c *listColumn) grow(n int) {
	for len(c.valid) < n {
		c.valid = append(c.valid, false)
		c.cells = append(c.cells, nil)
	}
}

func (c *listColumn) set(pos int, vals []Value) {
	c.valid[pos] = true
	c.cells[pos] = append([]Value(nil), vals...)
}

func (c *listColumn) clone() column {
	n := &listColumn{
		vtype: c.vtype,
		cells: make([][]Value, len(c.cells)),
		valid: append([]bool(nil), c.valid...),
	}
	for i, cell := range c.cells {
		n.cells[i] = append([]Value(nil), cell...)
	}
	return n
}

// ---------- vector ----------

// vectorColumn stores fixed-width dense float64 rows in one flat
// row-major buffer (slot i occupies data[i*width : (i+1)*width]), so the
// columnar export can hand out the buffer without copying.
type vectorColumn struct {
	width int
	data  []float64
	valid []bool
}

func newVectorColumn(width, n int) *vectorColumn {
	return &vectorColumn{width: width, data: make([]float64, n*width), valid: make([]bool, n)}
}

func (c *vectorColumn) layout() schema.Layout { return schema.Vector }
func (c *vectorColumn) length() int           { return len(c.valid) }

func (c *vectorColumn) grow(n int) {
	for len(c.valid) < n {
		c.valid = append(c.valid, false)
		c.data = append(c.data, make([]float64, c.width)...)
	}
}

func (c *vectorColumn) set(pos int, row []float64) {
	copy(c.data[pos*c.width:(pos+1)*c.width], row)
	c.valid[pos] = true
}

// row returns the slot's backing slice; callers must not retain it across
// builder mutations.
func (c *vectorColumn) row(pos int) []float64 {
	return c.data[pos*c.width : (pos+1)*c.width]
}

func (c *vectorColumn) clone() column {
	return &vectorColumn{
		width: c.width,
		data:  append([]float64(nil), c.data...),
		valid: append([]bool(nil), c.valid...),
	}
}

// ---------- sparse ----------

// sparseEntry is one (dimension position, value) pair of a sparse row.
type sparseEntry struct {
	col int
	val float64
}

// sparseColumn stores a variable-size set of (dimension, value) pairs per
// position, drawn from a dimension space of size width.  Entry order
// within a row is preserved exactly as supplied, which is what makes the
// CSR round-trip bit-for-bit.
type sparseColumn struct {
	width int
	rows  [][]sparseEntry
}

func newSparseColumn(width, n int) *sparseColumn {
	return &sparseColumn{width: width, rows: make([][]sparseEntry, n)}
}

func (c *sparseColumn) layout() schema.Layout { return schema.Sparse }
func (c *sparseColumn) length() int           { return len(c.rows) }

func (c *sparseColumn) grow(n int) {
	for len(c.rows) < n {
		c.rows = append(c.rows, nil)
	}
}

func (c *sparseColumn) set(pos int, entries []sparseEntry) {
	c.rows[pos] = append([]sparseEntry(nil), entries...)
}

// nnz returns the total number of stored entries.
func (c *sparseColumn) nnz() int {
	total := 0
	for _, row := range c.rows {
		total += len(row)
	}
	return total
}

func (c *sparseColumn) clone() column {
	n := &sparseColumn{width: c.width, rows: make([][]sparseEntry, len(c.rows))}
	for i, row := range c.rows {
		n.rows[i] = append([]sparseEntry(nil), row...)
	}
	return n
}
