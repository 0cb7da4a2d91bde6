// File: accessor.go
// Role: typed read access to one attribute of one entity class, plus the
// dense numeric export surface.
//
// Every accessor is bound to the view it was obtained from: exports from
// a narrowed EntitySet cover exactly the selected entities; row order is
// always vocabulary order.

package dataset

import (
	"fmt"
	"math"
	"runtime"

	"github.com/james-bowman/sparse"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/recdata/schema"
	"github.com/katalvlaran/recdata/vocab"
)

// AttributeAccessor reads one attribute of one entity class.  Accessors
// are cheap view objects; obtain a fresh one per view rather than caching.
type AttributeAccessor struct {
	class string
	attr  *schema.Attribute
	col   column
	voc   *vocab.Vocabulary
	sel   []int
}

// Name reports the attribute name.
func (a *AttributeAccessor) Name() string { return a.attr.Name() }

// Layout reports the storage layout.
func (a *AttributeAccessor) Layout() schema.Layout { return a.attr.Layout() }

// ValueType reports the element value type.
func (a *AttributeAccessor) ValueType() schema.ValueType { return a.attr.Type() }

// Width reports the fixed width of vector and sparse attributes, and 0
// for scalar and list layouts.
func (a *AttributeAccessor) Width() int { return a.attr.Width() }

// Names returns the ordered dimension names of a vector or sparse
// attribute, or nil when none were declared.
func (a *AttributeAccessor) Names() []string { return a.attr.DimNames() }

// IsScalar reports whether the attribute stores one value per entity.
func (a *AttributeAccessor) IsScalar() bool { return a.attr.Layout() == schema.Scalar }

// IsList reports whether the attribute stores a variable-length sequence
// per entity.
func (a *AttributeAccessor) IsList() bool { return a.attr.Layout() == schema.List }

// IsVector reports whether the attribute stores a fixed-width numeric row
// per entity.
func (a *AttributeAccessor) IsVector() bool { return a.attr.Layout() == schema.Vector }

// IsSparse reports whether the attribute stores a sparse numeric row per
// entity.
func (a *AttributeAccessor) IsSparse() bool { return a.attr.Layout() == schema.Sparse }

// Len reports the number of entities covered by this view.
func (a *AttributeAccessor) Len() int {
	if a.sel != nil {
		return len(a.sel)
	}
	return a.voc.Len()
}

// positions yields the vocabulary positions of the view in view order.
func (a *AttributeAccessor) positions() []int {
	if a.sel != nil {
		return a.sel
	}
	pos := make([]int, a.voc.Len())
	for i := range pos {
		pos[i] = i
	}
	return pos
}

// present reports whether the slot at a vocabulary position holds data.
func (a *AttributeAccessor) present(pos int) bool {
	switch c := a.col.(type) {
	case *scalarColumn:
		return c.valid[pos]
	case *listColumn:
		return c.valid[pos]
	case *vectorColumn:
		return c.valid[pos]
	case *sparseColumn:
		// sparse rows have no null state: an unnamed position is an
		// empty row, which is valid data
		return true
	}
	return false
}

// CountValid reports how many entities of this view hold a value.
func (a *AttributeAccessor) CountValid() int {
	n := 0
	for _, p := range a.positions() {
		if a.present(p) {
			n++
		}
	}
	return n
}

// Present reports whether the entity holds a value for this attribute.
//
// Errors:
//   - ErrUnknownEntity: the identifier is not part of the class.
func (a *AttributeAccessor) Present(id vocab.ID) (bool, error) {
	p, err := a.voc.PositionOf(id)
	if err != nil {
		return false, fmt.Errorf("Present(%s.%s): id %q: %w", a.class, a.attr.Name(), id, ErrUnknownEntity)
	}
	return a.present(p), nil
}

func (a *AttributeAccessor) resolve(op string, id vocab.ID, want schema.Layout) (int, error) {
	if a.attr.Layout() != want {
		return 0, fmt.Errorf("%s(%s.%s): %s attribute: %w",
			op, a.class, a.attr.Name(), a.attr.Layout(), ErrLayoutMismatch)
	}
	p, err := a.voc.PositionOf(id)
	if err != nil {
		return 0, fmt.Errorf("%s(%s.%s): id %q: %w", op, a.class, a.attr.Name(), id, ErrUnknownEntity)
	}
	return p, nil
}

// Value reads the scalar value for one entity.  A null slot is reported
// as ErrMissingValue rather than a zero value.
//
// Errors:
//   - ErrLayoutMismatch, ErrUnknownEntity, ErrMissingValue
func (a *AttributeAccessor) Value(id vocab.ID) (Value, error) {
	p, err := a.resolve("Value", id, schema.Scalar)
	if err != nil {
		return Value{}, err
	}
	c := a.col.(*scalarColumn)
	if !c.valid[p] {
		return Value{}, fmt.Errorf("Value(%s.%s): id %q: %w", a.class, a.attr.Name(), id, ErrMissingValue)
	}
	return c.value(p), nil
}

// List reads the value sequence for one entity.  A present empty list
// returns a non-nil empty slice; a null slot returns ErrMissingValue.
func (a *AttributeAccessor) List(id vocab.ID) ([]Value, error) {
	p, err := a.resolve("List", id, schema.List)
	if err != nil {
		return nil, err
	}
	c := a.col.(*listColumn)
	if !c.valid[p] {
		return nil, fmt.Errorf("List(%s.%s): id %q: %w", a.class, a.attr.Name(), id, ErrMissingValue)
	}
	return append([]Value{}, c.cells[p]...), nil
}

// Vector reads the fixed-width row for one entity as a fresh slice.
func (a *AttributeAccessor) Vector(id vocab.ID) ([]float64, error) {
	p, err := a.resolve("Vector", id, schema.Vector)
	if err != nil {
		return nil, err
	}
	c := a.col.(*vectorColumn)
	if !c.valid[p] {
		return nil, fmt.Errorf("Vector(%s.%s): id %q: %w", a.class, a.attr.Name(), id, ErrMissingValue)
	}
	return append([]float64(nil), c.row(p)...), nil
}

// SparseRow reads the sparse row for one entity as parallel dimension and
// value slices, in stored order.  An entity with an empty stored row
// returns two empty slices, not an error.
func (a *AttributeAccessor) SparseRow(id vocab.ID) ([]int, []float64, error) {
	p, err := a.resolve("SparseRow", id, schema.Sparse)
	if err != nil {
		return nil, nil, err
	}
	c := a.col.(*sparseColumn)
	dims := make([]int, len(c.rows[p]))
	vals := make([]float64, len(c.rows[p]))
	for i, e := range c.rows[p] {
		dims[i] = e.col
		vals[i] = e.val
	}
	return dims, vals, nil
}

// Values returns the scalar values of the view in view order; null slots
// appear as Null().
//
// Errors:
//   - ErrLayoutMismatch: the attribute is not scalar.
func (a *AttributeAccessor) Values() ([]Value, error) {
	if a.attr.Layout() != schema.Scalar {
		return nil, fmt.Errorf("Values(%s.%s): %s attribute: %w",
			a.class, a.attr.Name(), a.attr.Layout(), ErrLayoutMismatch)
	}
	c := a.col.(*scalarColumn)
	out := make([]Value, 0, a.Len())
	for _, p := range a.positions() {
		if c.valid[p] {
			out = append(out, c.value(p))
		} else {
			out = append(out, Null())
		}
	}
	return out, nil
}

// ExportOption configures numeric exports.
type ExportOption func(*exportConfig)

type exportConfig struct {
	fill    float64
	fillSet bool
}

// WithFill substitutes the given value for missing slots in dense numeric
// exports.  The default fill is NaN.
func WithFill(v float64) ExportOption {
	return func(c *exportConfig) { c.fill, c.fillSet = v, true }
}

func resolveExportOptions(opts []ExportOption) exportConfig {
	cfg := exportConfig{fill: math.NaN()}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// DenseVector exports a numeric scalar attribute as a float64 slice in
// view order.  Integer values widen to float64; missing float slots take
// the fill value (NaN unless WithFill overrides it).  An integer
// attribute with missing slots has no natural NaN, so it requires an
// explicit WithFill.
//
// Errors:
//   - ErrLayoutMismatch: the attribute is not scalar.
//   - schema.ErrUnsupportedValueType: the attribute holds text.
//   - ErrMissingValue: an int attribute has missing slots and no fill
//     value was given.
func (a *AttributeAccessor) DenseVector(opts ...ExportOption) ([]float64, error) {
	if a.attr.Layout() != schema.Scalar {
		return nil, fmt.Errorf("DenseVector(%s.%s): %s attribute: %w",
			a.class, a.attr.Name(), a.attr.Layout(), ErrLayoutMismatch)
	}
	if !a.attr.Type().Numeric() {
		return nil, fmt.Errorf("DenseVector(%s.%s): %s attribute: %w",
			a.class, a.attr.Name(), a.attr.Type(), schema.ErrUnsupportedValueType)
	}
	cfg := resolveExportOptions(opts)
	c := a.col.(*scalarColumn)
	pos := a.positions()
	out := make([]float64, len(pos))
	for i, p := range pos {
		if c.valid[p] {
			out[i] = c.value(p).Float()
			continue
		}
		if a.attr.Type() == schema.Int && !cfg.fillSet {
			id, _ := a.voc.IDAt(p)
			return nil, fmt.Errorf("DenseVector(%s.%s): id %q has no value and no fill was given: %w",
				a.class, a.attr.Name(), id, ErrMissingValue)
		}
		out[i] = cfg.fill
	}
	return out, nil
}

// DenseMatrix exports a vector or sparse attribute as a rows × width
// dense matrix in view order.  Vector rows with no stored data are
// filled with the fill value (NaN unless WithFill overrides it); sparse
// rows densify with zeros at unstored dimensions.  Row chunks are filled
// in parallel; the result is position-determined and therefore identical
// across runs.
//
// Errors:
//   - ErrLayoutMismatch: the attribute is scalar or list.
func (a *AttributeAccessor) DenseMatrix(opts ...ExportOption) (*mat.Dense, error) {
	if sc, ok := a.col.(*sparseColumn); ok {
		return a.denseFromSparse(sc), nil
	}
	if a.attr.Layout() != schema.Vector {
		return nil, fmt.Errorf("DenseMatrix(%s.%s): %s attribute: %w",
			a.class, a.attr.Name(), a.attr.Layout(), ErrLayoutMismatch)
	}
	cfg := resolveExportOptions(opts)
	c := a.col.(*vectorColumn)
	pos := a.positions()
	w := c.width
	data := make([]float64, len(pos)*w)

	var g errgroup.Group
	chunk := (len(pos) + runtime.NumCPU() - 1) / runtime.NumCPU()
	if chunk < 1 {
		chunk = 1
	}
	for lo := 0; lo < len(pos); lo += chunk {
		hi := lo + chunk
		if hi > len(pos) {
			hi = len(pos)
		}
		lo, hi := lo, hi
		g.Go(func() error {
			for i := lo; i < hi; i++ {
				dst := data[i*w : (i+1)*w]
				if c.valid[pos[i]] {
					copy(dst, c.row(pos[i]))
					continue
				}
				for j := range dst {
					dst[j] = cfg.fill
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return mat.NewDense(len(pos), w, data), nil
}

// denseFromSparse scatters stored sparse entries over a zero matrix.
func (a *AttributeAccessor) denseFromSparse(c *sparseColumn) *mat.Dense {
	pos := a.positions()
	data := make([]float64, len(pos)*c.width)
	for i, p := range pos {
		for _, e := range c.rows[p] {
			data[i*c.width+e.col] = e.val
		}
	}
	return mat.NewDense(len(pos), c.width, data)
}

// CSR exports a sparse attribute as raw CSR arrays in view order.  For a
// full-class view the export reproduces the block handed to
// AddSparseAttribute bit for bit: same row pointers, same column indices
// in the same in-row order, same values.
//
// Errors:
//   - ErrLayoutMismatch: the attribute is not sparse.
func (a *AttributeAccessor) CSR() (CSRData, error) {
	if a.attr.Layout() != schema.Sparse {
		return CSRData{}, fmt.Errorf("CSR(%s.%s): %s attribute: %w",
			a.class, a.attr.Name(), a.attr.Layout(), ErrLayoutMismatch)
	}
	c := a.col.(*sparseColumn)
	pos := a.positions()
	out := CSRData{
		NRows:  len(pos),
		NCols:  c.width,
		RowPtr: make([]int, len(pos)+1),
	}
	for i, p := range pos {
		for _, e := range c.rows[p] {
			out.ColInd = append(out.ColInd, e.col)
			out.Values = append(out.Values, e.val)
		}
		out.RowPtr[i+1] = len(out.ColInd)
	}
	if out.ColInd == nil {
		out.ColInd = []int{}
		out.Values = []float64{}
	}
	return out, nil
}

// SparseMatrix exports a sparse attribute as a gonum-compatible CSR
// matrix.
//
// Errors:
//   - ErrLayoutMismatch: the attribute is not sparse.
func (a *AttributeAccessor) SparseMatrix() (*sparse.CSR, error) {
	raw, err := a.CSR()
	if err != nil {
		return nil, fmt.Errorf("SparseMatrix: %w", err)
	}
	return sparse.NewCSR(raw.NRows, raw.NCols, raw.RowPtr, raw.ColInd, raw.Values), nil
}
