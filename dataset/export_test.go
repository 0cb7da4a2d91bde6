// Export-surface tests: dense numeric views, labeled tables with both
// missing-value policies, bit-for-bit CSR round-trips, Arrow arrays and
// tensors.
package dataset_test

import (
	"math"
	"testing"

	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/recdata/dataset"
	"github.com/katalvlaran/recdata/vocab"
)

// buildCatalog creates ten items with a partial title map and a partial
// width-5 embedding, the shape most export tests need.
func buildCatalog(t *testing.T) *dataset.Dataset {
	t.Helper()
	b := dataset.NewBuilder()
	all := make([]vocab.ID, 10)
	for i := range all {
		all[i] = vocab.ID(rune('a' + i))
	}
	require.NoError(t, b.AddEntities("item", all))
	require.NoError(t, b.AddScalarAttribute("item", "title", map[vocab.ID]dataset.Value{
		"a": dataset.String("Heat"),
		"c": dataset.String("Alien"),
	}))
	require.NoError(t, b.AddScalarAttribute("item", "year", map[vocab.ID]dataset.Value{
		"a": dataset.Int(1995),
		"b": dataset.Int(1979),
		"c": dataset.Int(1979),
	}))
	require.NoError(t, b.AddScalarAttribute("item", "popularity", map[vocab.ID]dataset.Value{
		"a": dataset.Float(0.9),
		"d": dataset.Float(0.4),
	}))
	require.NoError(t, b.AddVectorRows("item", "embed", []vocab.ID{"b", "e"}, [][]float64{
		{1, 2, 3, 4, 5},
		{6, 7, 8, 9, 10},
	}))
	ds, err := b.Build()
	require.NoError(t, err)
	return ds
}

// TestDenseVectorFill checks NaN fill for missing float scalars, the
// WithFill override, and the explicit-fill requirement for int scalars.
func TestDenseVectorFill(t *testing.T) {
	ds := buildCatalog(t)
	items, err := ds.Entities("item")
	require.NoError(t, err)

	pop, err := items.Attribute("popularity")
	require.NoError(t, err)
	vals, err := pop.DenseVector()
	require.NoError(t, err)
	require.Len(t, vals, 10)
	require.Equal(t, 0.9, vals[0])
	require.True(t, math.IsNaN(vals[1]))

	year, err := items.Attribute("year")
	require.NoError(t, err)
	_, err = year.DenseVector() // int with holes has no natural NaN
	require.ErrorIs(t, err, dataset.ErrMissingValue)

	filled, err := year.DenseVector(dataset.WithFill(0))
	require.NoError(t, err)
	require.Equal(t, 1995.0, filled[0]) // int widened to float
	require.Equal(t, 0.0, filled[3])
}

// TestDenseMatrixShapeAndFill ensures a partial vector attribute exports a
// full (n, width) matrix with exactly the supplied values finite.
func TestDenseMatrixShapeAndFill(t *testing.T) {
	ds := buildCatalog(t)
	items, err := ds.Entities("item")
	require.NoError(t, err)
	embed, err := items.Attribute("embed")
	require.NoError(t, err)

	m, err := embed.DenseMatrix()
	require.NoError(t, err)
	r, c := m.Dims()
	require.Equal(t, 10, r)
	require.Equal(t, 5, c)

	finite := 0
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			if !math.IsNaN(m.At(i, j)) {
				finite++
			}
		}
	}
	require.Equal(t, 10, finite) // exactly the two supplied rows
	require.Equal(t, 1.0, m.At(1, 0))
	require.Equal(t, 10.0, m.At(4, 4))
}

// TestTableFillAndOmit contrasts the two missing-value policies over the
// same partial attributes.
func TestTableFillAndOmit(t *testing.T) {
	ds := buildCatalog(t)
	items, err := ds.Entities("item")
	require.NoError(t, err)

	full, err := items.Table(dataset.MissingFill, "title", "year")
	require.NoError(t, err)
	require.Equal(t, 10, full.Len()) // every entity row kept
	titles, err := full.Column("title")
	require.NoError(t, err)
	require.True(t, titles[1].IsNull()) // "b" has no title
	require.Equal(t, "Alien", titles[2].Str())

	tight, err := items.Table(dataset.MissingOmit, "title", "year")
	require.NoError(t, err)
	require.Equal(t, 2, tight.Len()) // only "a" and "c" are complete
	require.Equal(t, []vocab.ID{"a", "c"}, tight.IDs())

	row, err := tight.Row("c")
	require.NoError(t, err)
	require.Equal(t, int64(1979), row["year"].Int())
}

// TestTableVectorExpansion ensures vector attributes expand to one
// column per dimension, using dim names when declared.
func TestTableVectorExpansion(t *testing.T) {
	ds := buildCatalog(t)
	items, err := ds.Entities("item")
	require.NoError(t, err)

	tab, err := items.Table(dataset.MissingFill, "embed")
	require.NoError(t, err)
	require.Equal(t, []string{"embed.0", "embed.1", "embed.2", "embed.3", "embed.4"},
		tab.ColumnNames())
	col, err := tab.Column("embed.2")
	require.NoError(t, err)
	require.Equal(t, 3.0, col[1].Float()) // row "b"
	require.True(t, col[0].IsNull())      // row "a" has no embedding

	tight, err := items.Table(dataset.MissingOmit, "embed")
	require.NoError(t, err)
	require.Equal(t, []vocab.ID{"b", "e"}, tight.IDs())
}

// TestTableNamedDims ensures declared dim names label the expanded
// columns.
func TestTableNamedDims(t *testing.T) {
	b := dataset.NewBuilder()
	require.NoError(t, b.AddEntities("item", ids("i1")))
	require.NoError(t, b.AddVectorRows("item", "pos", ids("i1"), [][]float64{{1, 2}},
		dataset.WithDimNames([]string{"x", "y"})))
	ds, err := b.Build()
	require.NoError(t, err)
	items, err := ds.Entities("item")
	require.NoError(t, err)

	tab, err := items.Table(dataset.MissingFill, "pos")
	require.NoError(t, err)
	require.Equal(t, []string{"pos.x", "pos.y"}, tab.ColumnNames())
}

// TestTableListColumn ensures list attributes ride along as list columns
// and participate in the omit policy.
func TestTableListColumn(t *testing.T) {
	b := dataset.NewBuilder()
	require.NoError(t, b.AddEntities("item", ids("i1", "i2")))
	require.NoError(t, b.AddListAttribute("item", "genres", map[vocab.ID][]dataset.Value{
		"i1": {dataset.String("Drama")},
	}))
	ds, err := b.Build()
	require.NoError(t, err)
	items, err := ds.Entities("item")
	require.NoError(t, err)

	tab, err := items.Table(dataset.MissingFill)
	require.NoError(t, err)
	cells, err := tab.ListColumn("genres")
	require.NoError(t, err)
	require.Len(t, cells, 2)
	require.Equal(t, "Drama", cells[0][0].Str())
	require.Nil(t, cells[1]) // null slot

	tight, err := items.Table(dataset.MissingOmit)
	require.NoError(t, err)
	require.Equal(t, 1, tight.Len())
}

// TestDenseMatrixFromSparse ensures a sparse attribute densifies with
// zeros at unstored dimensions.
func TestDenseMatrixFromSparse(t *testing.T) {
	b := dataset.NewBuilder()
	require.NoError(t, b.AddEntities("item", ids("i1", "i2")))
	require.NoError(t, b.AddSparseAttribute("item", "tags", ids("i1", "i2"), dataset.CSRData{
		NRows: 2, NCols: 3,
		RowPtr: []int{0, 1, 2},
		ColInd: []int{2, 0},
		Values: []float64{7, 9},
	}))
	ds, err := b.Build()
	require.NoError(t, err)
	items, err := ds.Entities("item")
	require.NoError(t, err)
	tags, err := items.Attribute("tags")
	require.NoError(t, err)

	m, err := tags.DenseMatrix()
	require.NoError(t, err)
	r, c := m.Dims()
	require.Equal(t, 2, r)
	require.Equal(t, 3, c)
	require.Equal(t, 7.0, m.At(0, 2))
	require.Equal(t, 0.0, m.At(0, 0))
	require.Equal(t, 9.0, m.At(1, 0))
}

// TestSelectSubsetExports ensures a narrowed view follows vocabulary
// order regardless of argument order and exports exactly its entities.
func TestSelectSubsetExports(t *testing.T) {
	ds := buildCatalog(t)
	items, err := ds.Entities("item")
	require.NoError(t, err)
	sub, err := items.Select("e", "b")
	require.NoError(t, err)
	require.Equal(t, []vocab.ID{"b", "e"}, sub.IDs()) // vocabulary order wins

	embed, err := sub.Attribute("embed")
	require.NoError(t, err)
	m, err := embed.DenseMatrix()
	require.NoError(t, err)
	r, _ := m.Dims()
	require.Equal(t, 2, r)
	require.Equal(t, 1.0, m.At(0, 0)) // "b" row first
	require.Equal(t, 6.0, m.At(1, 0))

	_, err = items.Select("ghost")
	require.ErrorIs(t, err, dataset.ErrUnknownEntity)
}

// TestCSRRoundTrip ensures exporting a sparse attribute reproduces the
// supplied CSR block bit for bit, including in-row entry order.
func TestCSRRoundTrip(t *testing.T) {
	b := dataset.NewBuilder()
	require.NoError(t, b.AddEntities("item", ids("i1", "i2", "i3")))
	in := dataset.CSRData{
		NRows: 3, NCols: 6,
		RowPtr: []int{0, 2, 2, 5},
		ColInd: []int{4, 1, 5, 0, 2}, // deliberately unsorted in-row
		Values: []float64{0.5, 1.5, 2.5, 3.5, 4.5},
	}
	require.NoError(t, b.AddSparseAttribute("item", "genres", ids("i1", "i2", "i3"), in))

	ds, err := b.Build()
	require.NoError(t, err)
	items, err := ds.Entities("item")
	require.NoError(t, err)
	acc, err := items.Attribute("genres")
	require.NoError(t, err)

	out, err := acc.CSR()
	require.NoError(t, err)
	require.Equal(t, in.RowPtr, out.RowPtr)
	require.Equal(t, in.ColInd, out.ColInd) // order preserved exactly
	require.Equal(t, in.Values, out.Values)

	csr, err := acc.SparseMatrix()
	require.NoError(t, err)
	rr, cc := csr.Dims()
	require.Equal(t, 3, rr)
	require.Equal(t, 6, cc)
	require.Equal(t, 1.5, csr.At(0, 1))
}

// TestListRoundTrip checks that list cells survive intact and that an
// empty list stays distinct from a null slot.
func TestListRoundTrip(t *testing.T) {
	b := dataset.NewBuilder()
	require.NoError(t, b.AddEntities("item", ids("i1", "i2", "i3")))
	require.NoError(t, b.AddListAttribute("item", "genres", map[vocab.ID][]dataset.Value{
		"i1": {dataset.String("Action"), dataset.String("Crime")},
		"i2": {}, // present but empty
	}))

	ds, err := b.Build()
	require.NoError(t, err)
	items, err := ds.Entities("item")
	require.NoError(t, err)
	acc, err := items.Attribute("genres")
	require.NoError(t, err)

	cell, err := acc.List("i1")
	require.NoError(t, err)
	require.Len(t, cell, 2)
	require.Equal(t, "Crime", cell[1].Str())

	empty, err := acc.List("i2")
	require.NoError(t, err)
	require.NotNil(t, empty)
	require.Empty(t, empty)

	_, err = acc.List("i3") // never supplied
	require.ErrorIs(t, err, dataset.ErrMissingValue)
}

// TestLayoutMismatch ensures exports refuse attributes of the wrong layout.
func TestLayoutMismatch(t *testing.T) {
	ds := buildCatalog(t)
	items, err := ds.Entities("item")
	require.NoError(t, err)

	title, err := items.Attribute("title")
	require.NoError(t, err)
	_, err = title.DenseMatrix()
	require.ErrorIs(t, err, dataset.ErrLayoutMismatch)
	_, err = title.CSR()
	require.ErrorIs(t, err, dataset.ErrLayoutMismatch)

	embed, err := items.Attribute("embed")
	require.NoError(t, err)
	_, err = embed.Value("a")
	require.ErrorIs(t, err, dataset.ErrLayoutMismatch)
}

// TestArrowScalarExport checks values and null accounting of the columnar
// scalar export.
func TestArrowScalarExport(t *testing.T) {
	ds := buildCatalog(t)
	items, err := ds.Entities("item")
	require.NoError(t, err)
	year, err := items.Attribute("year")
	require.NoError(t, err)

	arr, err := year.Arrow(memory.DefaultAllocator)
	require.NoError(t, err)
	defer arr.Release()

	col := arr.(*array.Int64)
	require.Equal(t, 10, col.Len())
	require.Equal(t, 7, col.NullN())
	require.Equal(t, int64(1995), col.Value(0))
	require.True(t, col.IsNull(3))
}

// TestArrowVectorExport checks the fixed-size-list layout of the vector
// export.
func TestArrowVectorExport(t *testing.T) {
	ds := buildCatalog(t)
	items, err := ds.Entities("item")
	require.NoError(t, err)
	embed, err := items.Attribute("embed")
	require.NoError(t, err)

	arr, err := embed.Arrow(memory.DefaultAllocator)
	require.NoError(t, err)
	defer arr.Release()

	fsl := arr.(*array.FixedSizeList)
	require.Equal(t, 10, fsl.Len())
	require.Equal(t, 8, fsl.NullN())
	require.False(t, fsl.IsNull(1)) // "b" has an embedding

	values := fsl.ListValues().(*array.Float64)
	require.Equal(t, 50, values.Len())
	require.Equal(t, 1.0, values.Value(5)) // row "b" starts at offset 5
}

// TestArrowListAndSparseExport smoke-tests the builder-based exports.
func TestArrowListAndSparseExport(t *testing.T) {
	b := dataset.NewBuilder()
	require.NoError(t, b.AddEntities("item", ids("i1", "i2")))
	require.NoError(t, b.AddListAttribute("item", "genres", map[vocab.ID][]dataset.Value{
		"i1": {dataset.String("Action")},
	}))
	require.NoError(t, b.AddSparseAttribute("item", "tags", ids("i1", "i2"), dataset.CSRData{
		NRows: 2, NCols: 3,
		RowPtr: []int{0, 1, 3},
		ColInd: []int{2, 0, 1},
		Values: []float64{1, 2, 3},
	}))
	ds, err := b.Build()
	require.NoError(t, err)
	items, err := ds.Entities("item")
	require.NoError(t, err)

	genres, err := items.Attribute("genres")
	require.NoError(t, err)
	garr, err := genres.Arrow(nil)
	require.NoError(t, err)
	defer garr.Release()
	glist := garr.(*array.List)
	require.Equal(t, 2, glist.Len())
	require.True(t, glist.IsNull(1))

	tags, err := items.Attribute("tags")
	require.NoError(t, err)
	tarr, err := tags.Arrow(nil)
	require.NoError(t, err)
	defer tarr.Release()
	tlist := tarr.(*array.List)
	require.Equal(t, 2, tlist.Len())
	start, end := tlist.ValueOffsets(1)
	require.Equal(t, int64(1), start)
	require.Equal(t, int64(3), end)
}

// TestTensorExports checks tensor shapes for scalar, vector and sparse
// attributes.
func TestTensorExports(t *testing.T) {
	ds := buildCatalog(t)
	items, err := ds.Entities("item")
	require.NoError(t, err)

	year, err := items.Attribute("year")
	require.NoError(t, err)
	tv, err := year.Tensor(dataset.WithFill(0))
	require.NoError(t, err)
	require.Equal(t, []int{10}, []int(tv.Shape()))

	embed, err := items.Attribute("embed")
	require.NoError(t, err)
	tm, err := embed.Tensor()
	require.NoError(t, err)
	require.Equal(t, []int{10, 5}, []int(tm.Shape()))

	b := dataset.NewBuilder()
	require.NoError(t, b.AddEntities("item", ids("i1", "i2")))
	require.NoError(t, b.AddSparseAttribute("item", "tags", ids("i1", "i2"), dataset.CSRData{
		NRows: 2, NCols: 4,
		RowPtr: []int{0, 1, 2},
		ColInd: []int{3, 1},
		Values: []float64{1, 2},
	}))
	sd, err := b.Build()
	require.NoError(t, err)
	sitems, err := sd.Entities("item")
	require.NoError(t, err)
	tags, err := sitems.Attribute("tags")
	require.NoError(t, err)
	ts, err := tags.SparseTensor()
	require.NoError(t, err)
	require.Equal(t, []int{2, 4}, []int(ts.Shape()))
}
