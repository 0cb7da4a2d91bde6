// File: sparse.go
// Role: public compressed-sparse-row carrier used both for feeding sparse
// attribute data to the builder and for round-trip exact export.
//
// CSRData is a plain value type so the contract is easy to state:
// exporting a sparse attribute built from a CSRData yields row pointers,
// column indices and values identical to the originally supplied arrays
// (scattered to vocabulary order).

package dataset

import (
	"fmt"

	"github.com/katalvlaran/recdata/schema"
)

// CSRData is a compressed-sparse-row block: RowPtr has NRows+1 entries,
// row i owns ColInd/Values[RowPtr[i]:RowPtr[i+1]], and every column index
// lies in [0, NCols).
type CSRData struct {
	NRows, NCols int
	RowPtr       []int
	ColInd       []int
	Values       []float64
}

// NNZ returns the number of stored entries.
func (c CSRData) NNZ() int { return len(c.Values) }

// validate checks structural consistency: pointer monotonicity, bounds,
// and per-row duplicate dimension positions.
func (c CSRData) validate() error {
	if len(c.RowPtr) != c.NRows+1 {
		return fmt.Errorf("csr: %d row pointers for %d rows: %w",
			len(c.RowPtr), c.NRows, schema.ErrDimensionMismatch)
	}
	if c.RowPtr[0] != 0 || c.RowPtr[c.NRows] != len(c.Values) || len(c.ColInd) != len(c.Values) {
		return fmt.Errorf("csr: inconsistent pointer/index/value lengths: %w",
			schema.ErrDimensionMismatch)
	}
	seen := make(map[int]struct{})
	for i := 0; i < c.NRows; i++ {
		lo, hi := c.RowPtr[i], c.RowPtr[i+1]
		if lo > hi {
			return fmt.Errorf("csr: row %d pointers decrease: %w", i, schema.ErrDimensionMismatch)
		}
		clear(seen)
		for _, j := range c.ColInd[lo:hi] {
			if j < 0 || j >= c.NCols {
				return fmt.Errorf("csr: row %d column %d outside width %d: %w",
					i, j, c.NCols, schema.ErrDimensionMismatch)
			}
			if _, dup := seen[j]; dup {
				return fmt.Errorf("csr: row %d duplicate dimension %d: %w",
					i, j, schema.ErrDimensionMismatch)
			}
			seen[j] = struct{}{}
		}
	}
	return nil
}

// row returns the entries of row i as (column, value) pairs in supplied
// order.
func (c CSRData) row(i int) []sparseEntry {
	lo, hi := c.RowPtr[i], c.RowPtr[i+1]
	out := make([]sparseEntry, 0, hi-lo)
	for k := lo; k < hi; k++ {
		out = append(out, sparseEntry{col: c.ColInd[k], val: c.Values[k]})
	}
	return out
}
