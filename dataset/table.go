// File: table.go
// Role: labeled-table export — identifiers plus attribute columns, with
// an explicit policy for entities that lack values.
//
// Column mapping: a scalar attribute contributes one column under its own
// name; a vector attribute expands to width columns named by its dim
// names ("name.dim") or indices ("name.0".."name.k-1"); a list attribute
// contributes a list column read through ListColumn.  Sparse attributes
// have their own export surface and are not table material.

package dataset

import (
	"fmt"
	"strconv"

	"github.com/katalvlaran/recdata/schema"
	"github.com/katalvlaran/recdata/vocab"
)

// MissingPolicy controls how Table treats entities without a value for
// some requested attribute.
type MissingPolicy int

const (
	// MissingFill keeps every entity row and marks absent values as null.
	MissingFill MissingPolicy = iota
	// MissingOmit drops every row that lacks a value for any requested
	// attribute.
	MissingOmit
)

// String implements fmt.Stringer.
func (p MissingPolicy) String() string {
	switch p {
	case MissingFill:
		return "fill"
	case MissingOmit:
		return "omit"
	default:
		return fmt.Sprintf("MissingPolicy(%d)", int(p))
	}
}

// Table is a labeled, row-aligned view of attributes: one row per entity,
// one column per scalar value or vector dimension, plus list columns.
type Table struct {
	class  string
	ids    []vocab.ID
	names  []string
	cols   [][]Value
	byName map[string]int
	lists  map[string][][]Value
}

// Table exports the named attributes of this view as a labeled table.
// With no names given, every scalar, vector and list attribute of the
// class is included, in declaration order.  Rows follow view order; the
// policy decides what happens to entities missing a value.
//
// Errors:
//   - ErrUnknownAttribute: a requested attribute does not exist.
//   - ErrLayoutMismatch: a requested attribute is sparse.
func (e *EntitySet) Table(policy MissingPolicy, names ...string) (*Table, error) {
	if len(names) == 0 {
		for _, name := range e.ent.AttributeNames() {
			attr, _ := e.ent.Attribute(name)
			if attr.Layout() != schema.Sparse {
				names = append(names, name)
			}
		}
	}

	ids := e.IDs()
	t := &Table{
		class: e.class,
		ids:   ids,
		lists: make(map[string][][]Value),
	}
	present := make([][]bool, 0, len(names)) // per-attribute row presence

	for _, name := range names {
		acc, err := e.Attribute(name)
		if err != nil {
			return nil, fmt.Errorf("Table(%s): %w", e.class, err)
		}
		switch acc.Layout() {
		case schema.Scalar:
			vals, verr := acc.Values()
			if verr != nil {
				return nil, fmt.Errorf("Table(%s): %w", e.class, verr)
			}
			rows := make([]bool, len(vals))
			for r, v := range vals {
				rows[r] = !v.IsNull()
			}
			t.names = append(t.names, name)
			t.cols = append(t.cols, vals)
			present = append(present, rows)
		case schema.Vector:
			cols, rows := vectorColumns(acc)
			for d, label := range vectorLabels(acc) {
				t.names = append(t.names, name+"."+label)
				t.cols = append(t.cols, cols[d])
			}
			present = append(present, rows)
		case schema.List:
			cells, rows := listCells(acc)
			t.lists[name] = cells
			present = append(present, rows)
		default:
			return nil, fmt.Errorf("Table(%s.%s): %s attribute: %w",
				e.class, name, acc.Layout(), ErrLayoutMismatch)
		}
	}

	if policy == MissingOmit {
		t.omitIncomplete(present)
	}

	t.byName = make(map[string]int, len(t.names))
	for i, name := range t.names {
		t.byName[name] = i
	}
	return t, nil
}

// vectorLabels resolves per-dimension column suffixes: declared dim names
// when present, decimal indices otherwise.
func vectorLabels(acc *AttributeAccessor) []string {
	if names := acc.Names(); names != nil {
		return names
	}
	labels := make([]string, acc.Width())
	for d := range labels {
		labels[d] = strconv.Itoa(d)
	}
	return labels
}

// vectorColumns splits a vector attribute into per-dimension value
// columns plus a row-presence mask.
func vectorColumns(acc *AttributeAccessor) ([][]Value, []bool) {
	c := acc.col.(*vectorColumn)
	pos := acc.positions()
	cols := make([][]Value, c.width)
	for d := range cols {
		cols[d] = make([]Value, len(pos))
	}
	rows := make([]bool, len(pos))
	for r, p := range pos {
		rows[r] = c.valid[p]
		for d := 0; d < c.width; d++ {
			if c.valid[p] {
				cols[d][r] = Float(c.data[p*c.width+d])
			} else {
				cols[d][r] = Null()
			}
		}
	}
	return cols, rows
}

// listCells collects list attribute cells in view order; a null slot is a
// nil cell.
func listCells(acc *AttributeAccessor) ([][]Value, []bool) {
	c := acc.col.(*listColumn)
	pos := acc.positions()
	cells := make([][]Value, len(pos))
	rows := make([]bool, len(pos))
	for r, p := range pos {
		if c.valid[p] {
			cells[r] = append([]Value{}, c.cells[p]...)
			rows[r] = true
		}
	}
	return cells, rows
}

// omitIncomplete drops every row that some requested attribute left
// without a value.
func (t *Table) omitIncomplete(present [][]bool) {
	keep := make([]bool, len(t.ids))
	for r := range keep {
		keep[r] = true
		for _, rows := range present {
			if !rows[r] {
				keep[r] = false
				break
			}
		}
	}
	ids := t.ids[:0:0]
	cols := make([][]Value, len(t.cols))
	lists := make(map[string][][]Value, len(t.lists))
	for r, ok := range keep {
		if !ok {
			continue
		}
		ids = append(ids, t.ids[r])
		for i := range t.cols {
			cols[i] = append(cols[i], t.cols[i][r])
		}
		for name := range t.lists {
			lists[name] = append(lists[name], t.lists[name][r])
		}
	}
	// an all-dropped list column must still exist afterwards
	for name := range t.lists {
		if lists[name] == nil {
			lists[name] = [][]Value{}
		}
	}
	t.ids, t.cols, t.lists = ids, cols, lists
}

// Class reports the entity class the table was exported from.
func (t *Table) Class() string { return t.class }

// Len reports the number of rows.
func (t *Table) Len() int { return len(t.ids) }

// IDs returns the identifier column.
func (t *Table) IDs() []vocab.ID { return append([]vocab.ID(nil), t.ids...) }

// ColumnNames lists the value columns in export order.  List columns are
// not included; see ListColumn.
func (t *Table) ColumnNames() []string { return append([]string(nil), t.names...) }

// Column returns one value column, row-aligned with IDs.
//
// Errors:
//   - ErrUnknownAttribute: the table has no such column.
func (t *Table) Column(name string) ([]Value, error) {
	i, ok := t.byName[name]
	if !ok {
		return nil, fmt.Errorf("Column(%s.%s): %w", t.class, name, ErrUnknownAttribute)
	}
	return append([]Value(nil), t.cols[i]...), nil
}

// ListColumn returns one list column, row-aligned with IDs; null slots
// are nil cells.
//
// Errors:
//   - ErrUnknownAttribute: the table has no such list column.
func (t *Table) ListColumn(name string) ([][]Value, error) {
	cells, ok := t.lists[name]
	if !ok {
		return nil, fmt.Errorf("ListColumn(%s.%s): %w", t.class, name, ErrUnknownAttribute)
	}
	out := make([][]Value, len(cells))
	for i, cell := range cells {
		if cell != nil {
			out[i] = append([]Value{}, cell...)
		}
	}
	return out, nil
}

// Row returns one entity row keyed by column name (value columns only).
//
// Errors:
//   - ErrUnknownEntity: the table has no row for that identifier.
func (t *Table) Row(id vocab.ID) (map[string]Value, error) {
	for r, rid := range t.ids {
		if rid == id {
			out := make(map[string]Value, len(t.names))
			for i, name := range t.names {
				out[name] = t.cols[i][r]
			}
			return out, nil
		}
	}
	return nil, fmt.Errorf("Row(%s): id %q: %w", t.class, id, ErrUnknownEntity)
}
