// File: dataset.go
// Role: the immutable product of Builder.Build — entity classes, their
// vocabularies and attribute columns, plus the frozen interaction log.
//
// Immutability contract: a Dataset never exposes interior mutable state.
// Accessors hand out copies (or freshly built export structures); the
// only shared-by-reference pieces are the frozen columns, which nothing
// in the public API can write to.

package dataset

import (
	"fmt"
	"slices"
	"sort"

	"github.com/katalvlaran/recdata/schema"
	"github.com/katalvlaran/recdata/vocab"
)

// Dataset is a frozen snapshot of entities, attributes and interactions.
// Values of this type are safe for concurrent use.
type Dataset struct {
	classes []string
	vocabs  map[string]*vocab.Vocabulary
	schemas map[string]*schema.Entity
	cols    map[string]map[string]column
	inter   *InteractionSet
}

// EntityClasses lists the entity classes in creation order.
func (d *Dataset) EntityClasses() []string {
	return append([]string(nil), d.classes...)
}

// Entities resolves the full entity set for one class.
//
// Errors:
//   - ErrUnknownClass: no such class was built.
func (d *Dataset) Entities(class string) (*EntitySet, error) {
	voc, ok := d.vocabs[class]
	if !ok {
		return nil, fmt.Errorf("Entities(%s): %w", class, ErrUnknownClass)
	}
	return &EntitySet{class: class, voc: voc, ent: d.schemas[class], cols: d.cols[class]}, nil
}

// Users is shorthand for Entities(ClassUser).
func (d *Dataset) Users() (*EntitySet, error) { return d.Entities(ClassUser) }

// Items is shorthand for Entities(ClassItem).
func (d *Dataset) Items() (*EntitySet, error) { return d.Entities(ClassItem) }

// Interactions returns the frozen interaction log (possibly empty, never
// nil).
func (d *Dataset) Interactions() *InteractionSet { return d.inter }

// EntitySet is a read-only view over one entity class: either the full
// class in vocabulary order, or an ordered subset produced by Select.
type EntitySet struct {
	class string
	voc   *vocab.Vocabulary
	ent   *schema.Entity
	cols  map[string]column
	sel   []int // nil means the full class in vocabulary order
}

// Class reports the entity class name.
func (e *EntitySet) Class() string { return e.class }

// Len reports the number of entities in this view.
func (e *EntitySet) Len() int {
	if e.sel != nil {
		return len(e.sel)
	}
	return e.voc.Len()
}

// IDs returns the identifiers of this view in view order.
func (e *EntitySet) IDs() []vocab.ID {
	if e.sel == nil {
		return e.voc.IDs()
	}
	out := make([]vocab.ID, len(e.sel))
	for i, p := range e.sel {
		id, _ := e.voc.IDAt(p)
		out[i] = id
	}
	return out
}

// Vocabulary returns an independent copy of the class vocabulary.  The
// copy always covers the full class, regardless of any Select applied to
// this view, so positions stay comparable across subsets.
func (e *EntitySet) Vocabulary() *vocab.Vocabulary { return e.voc.Clone() }

// Positions returns the underlying vocabulary positions of this view, in
// view order.
func (e *EntitySet) Positions() []int {
	if e.sel != nil {
		return append([]int(nil), e.sel...)
	}
	out := make([]int, e.voc.Len())
	for i := range out {
		out[i] = i
	}
	return out
}

// Select narrows the view to the given identifiers.  The resulting view
// follows vocabulary order, not argument order, and repeated identifiers
// collapse to one row.  Selecting from an already narrowed view resolves
// against the full class vocabulary, so the result is always well
// defined.
//
// Errors:
//   - ErrUnknownEntity: an identifier is not part of the class.
func (e *EntitySet) Select(ids ...vocab.ID) (*EntitySet, error) {
	sel := make([]int, 0, len(ids))
	for _, id := range ids {
		p, err := e.voc.PositionOf(id)
		if err != nil {
			return nil, fmt.Errorf("Select(%s): id %q: %w", e.class, id, ErrUnknownEntity)
		}
		sel = append(sel, p)
	}
	sort.Ints(sel)
	sel = slices.Compact(sel)
	return &EntitySet{class: e.class, voc: e.voc, ent: e.ent, cols: e.cols, sel: sel}, nil
}

// AttributeNames lists the attributes of this class in declaration order.
func (e *EntitySet) AttributeNames() []string { return e.ent.AttributeNames() }

// Attribute resolves the accessor for one attribute of this class.  The
// accessor inherits the view's selection, so exports from a narrowed set
// cover exactly its entities.
//
// Errors:
//   - ErrUnknownAttribute: the class has no attribute of that name.
func (e *EntitySet) Attribute(name string) (*AttributeAccessor, error) {
	attr, ok := e.ent.Attribute(name)
	if !ok {
		return nil, fmt.Errorf("Attribute(%s.%s): %w", e.class, name, ErrUnknownAttribute)
	}
	return &AttributeAccessor{
		class: e.class,
		attr:  attr,
		col:   e.cols[name],
		voc:   e.voc,
		sel:   e.sel,
	}, nil
}
