// File: schema.go
// Role: Attribute and Entity schema records.
//
// Determinism:
//   - Entity.AttributeNames preserves declaration order; no map iteration
//     order leaks into any public surface.

package schema

import "fmt"

// Attribute describes one declared attribute: its name, layout, element
// type and — for Vector/Sparse — the dimension width and optional ordered
// dimension names.  Attributes are immutable after construction.
type Attribute struct {
	name   string
	layout Layout
	vtype  ValueType
	width  int
	names  []string
}

// NewAttribute validates and constructs an attribute record.
//
// width is ignored for Scalar and List layouts.  dimNames may be nil; when
// present its length must equal width.
//
// Errors:
//   - ErrEmptyName: name is empty.
//   - ErrDimensionMismatch: Vector/Sparse width < 1, or dimNames length
//     differs from width.
func NewAttribute(name string, layout Layout, vtype ValueType, width int, dimNames []string) (*Attribute, error) {
	if name == "" {
		return nil, fmt.Errorf("NewAttribute: %w", ErrEmptyName)
	}
	switch layout {
	case Scalar, List:
		width, dimNames = 0, nil
	case Vector, Sparse:
		if width < 1 {
			return nil, fmt.Errorf("NewAttribute(%s): width %d: %w", name, width, ErrDimensionMismatch)
		}
		if dimNames != nil && len(dimNames) != width {
			return nil, fmt.Errorf("NewAttribute(%s): %d dimension names for width %d: %w",
				name, len(dimNames), width, ErrDimensionMismatch)
		}
	}
	a := &Attribute{name: name, layout: layout, vtype: vtype, width: width}
	if dimNames != nil {
		a.names = make([]string, len(dimNames))
		copy(a.names, dimNames)
	}
	return a, nil
}

// Name returns the attribute name.
func (a *Attribute) Name() string { return a.name }

// Layout returns the storage layout.
func (a *Attribute) Layout() Layout { return a.layout }

// Type returns the element value type.
func (a *Attribute) Type() ValueType { return a.vtype }

// Width returns the dimension width for Vector/Sparse layouts, 0 otherwise.
func (a *Attribute) Width() int { return a.width }

// DimNames returns the ordered dimension names, or nil when the attribute
// is unnamed or the layout has no dimensions.  The slice is a copy.
func (a *Attribute) DimNames() []string {
	if a.names == nil {
		return nil
	}
	out := make([]string, len(a.names))
	copy(out, a.names)
	return out
}

// Entity is the attribute schema for one entity class.  Attribute order is
// declaration order.
type Entity struct {
	name  string
	attrs map[string]*Attribute
	order []string
}

// NewEntity creates an empty schema for the named entity class.
func NewEntity(name string) (*Entity, error) {
	if name == "" {
		return nil, fmt.Errorf("NewEntity: %w", ErrEmptyName)
	}
	return &Entity{name: name, attrs: make(map[string]*Attribute)}, nil
}

// Name returns the entity class name.
func (e *Entity) Name() string { return e.name }

// Add declares an attribute.  Layout and width are thereby fixed for the
// lifetime of the schema.
//
// Errors:
//   - ErrDuplicateAttribute: an attribute with the same name exists.
func (e *Entity) Add(a *Attribute) error {
	if _, ok := e.attrs[a.name]; ok {
		return fmt.Errorf("Add(%s.%s): %w", e.name, a.name, ErrDuplicateAttribute)
	}
	e.attrs[a.name] = a
	e.order = append(e.order, a.name)
	return nil
}

// Attribute returns the named attribute record, with ok reporting presence.
func (e *Entity) Attribute(name string) (*Attribute, bool) {
	a, ok := e.attrs[name]
	return a, ok
}

// AttributeNames returns attribute names in declaration order.
func (e *Entity) AttributeNames() []string {
	out := make([]string, len(e.order))
	copy(out, e.order)
	return out
}

// Len returns the number of declared attributes.
func (e *Entity) Len() int { return len(e.order) }

// Clone returns an independent copy of the schema.  Attribute records are
// shared: they are immutable.
func (e *Entity) Clone() *Entity {
	c := &Entity{
		name:  e.name,
		attrs: make(map[string]*Attribute, len(e.attrs)),
		order: make([]string, len(e.order)),
	}
	for k, v := range e.attrs {
		c.attrs[k] = v
	}
	copy(c.order, e.order)
	return c
}
