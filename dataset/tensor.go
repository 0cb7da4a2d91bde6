// File: tensor.go
// Role: tensor exports for numeric attributes — dense tensors for scalar
// and vector layouts, a compressed-sparse tensor for the sparse layout.

package dataset

import (
	"fmt"

	"gorgonia.org/tensor"

	"github.com/katalvlaran/recdata/schema"
)

// Tensor exports a numeric attribute as a dense tensor in view order:
// scalar attributes become a length-n vector, vector attributes an
// (n, width) matrix.  Missing slots take the fill value (NaN unless
// WithFill overrides it); integer scalars widen to float64.
//
// Errors:
//   - ErrLayoutMismatch: the attribute is a list or sparse attribute.
//   - schema.ErrUnsupportedValueType: the attribute holds text.
func (a *AttributeAccessor) Tensor(opts ...ExportOption) (tensor.Tensor, error) {
	switch a.attr.Layout() {
	case schema.Scalar:
		vals, err := a.DenseVector(opts...)
		if err != nil {
			return nil, fmt.Errorf("Tensor: %w", err)
		}
		return tensor.New(tensor.WithShape(len(vals)), tensor.WithBacking(vals)), nil
	case schema.Vector:
		m, err := a.DenseMatrix(opts...)
		if err != nil {
			return nil, fmt.Errorf("Tensor: %w", err)
		}
		r, w := m.Dims()
		return tensor.New(tensor.WithShape(r, w), tensor.WithBacking(m.RawMatrix().Data)), nil
	}
	return nil, fmt.Errorf("Tensor(%s.%s): %s attribute: %w",
		a.class, a.attr.Name(), a.attr.Layout(), ErrLayoutMismatch)
}

// SparseTensor exports a sparse attribute as a compressed-sparse-row
// tensor of shape (n, width) in view order.
//
// Errors:
//   - ErrLayoutMismatch: the attribute is not sparse.
func (a *AttributeAccessor) SparseTensor() (tensor.Tensor, error) {
	raw, err := a.CSR()
	if err != nil {
		return nil, fmt.Errorf("SparseTensor: %w", err)
	}
	xs := make([]int, raw.NNZ())
	for r := 0; r < raw.NRows; r++ {
		for k := raw.RowPtr[r]; k < raw.RowPtr[r+1]; k++ {
			xs[k] = r
		}
	}
	ys := append([]int(nil), raw.ColInd...)
	vals := append([]float64(nil), raw.Values...)
	return tensor.CSRFromCoord(tensor.Shape{raw.NRows, raw.NCols}, xs, ys, vals), nil
}
