// File: arrow.go
// Role: columnar (Apache Arrow) exports for attribute accessors and the
// interaction log.
//
// Zero-copy policy: full-class numeric exports wrap the frozen storage
// buffers directly (the column layout already is the Arrow layout); any
// subset view, and every text, list or sparse export, goes through Arrow
// builders.  Layout mapping:
//
//	scalar float/int  -> float64 / int64
//	scalar string     -> utf8
//	list              -> list<element>
//	vector            -> fixed_size_list<float64>[width]
//	sparse            -> list<struct<index: int32, value: float64>>

package dataset

import (
	"fmt"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/bitutil"
	"github.com/apache/arrow-go/v18/arrow/memory"

	"github.com/katalvlaran/recdata/schema"
)

// SparseFieldIndex and SparseFieldValue name the struct members of the
// sparse Arrow layout.
const (
	SparseFieldIndex = "index"
	SparseFieldValue = "value"
)

// SparseArrowType is the Arrow type of a sparse attribute export.
func SparseArrowType() arrow.DataType {
	return arrow.ListOf(arrow.StructOf(
		arrow.Field{Name: SparseFieldIndex, Type: arrow.PrimitiveTypes.Int32},
		arrow.Field{Name: SparseFieldValue, Type: arrow.PrimitiveTypes.Float64},
	))
}

// Arrow exports the attribute as an Arrow array in view order.  The
// caller owns the result and must Release it.
func (a *AttributeAccessor) Arrow(mem memory.Allocator) (arrow.Array, error) {
	if mem == nil {
		mem = memory.DefaultAllocator
	}
	switch c := a.col.(type) {
	case *scalarColumn:
		return a.arrowScalar(mem, c)
	case *listColumn:
		return a.arrowList(mem, c)
	case *vectorColumn:
		return a.arrowVector(mem, c), nil
	case *sparseColumn:
		return a.arrowSparse(mem, c), nil
	}
	return nil, fmt.Errorf("Arrow(%s.%s): %w", a.class, a.attr.Name(), ErrLayoutMismatch)
}

// validityBitmap packs the per-position validity of a view into an Arrow
// bitmap buffer.  A fully valid view yields a nil buffer.
func validityBitmap(valid []bool, pos []int) (*memory.Buffer, int) {
	nulls := 0
	for _, p := range pos {
		if !valid[p] {
			nulls++
		}
	}
	if nulls == 0 {
		return nil, 0
	}
	bits := make([]byte, bitutil.BytesForBits(int64(len(pos))))
	for i, p := range pos {
		if valid[p] {
			bitutil.SetBit(bits, i)
		}
	}
	return memory.NewBufferBytes(bits), nulls
}

func (a *AttributeAccessor) arrowScalar(mem memory.Allocator, c *scalarColumn) (arrow.Array, error) {
	pos := a.positions()
	switch a.attr.Type() {
	case schema.Float:
		vals := c.floats
		if a.sel != nil {
			vals = make([]float64, len(pos))
			for i, p := range pos {
				vals[i] = c.floats[p]
			}
		}
		validity, nulls := validityBitmap(c.valid, pos)
		data := array.NewData(arrow.PrimitiveTypes.Float64, len(pos),
			[]*memory.Buffer{validity, memory.NewBufferBytes(arrow.Float64Traits.CastToBytes(vals))},
			nil, nulls, 0)
		defer data.Release()
		return array.NewFloat64Data(data), nil
	case schema.Int:
		vals := c.ints
		if a.sel != nil {
			vals = make([]int64, len(pos))
			for i, p := range pos {
				vals[i] = c.ints[p]
			}
		}
		validity, nulls := validityBitmap(c.valid, pos)
		data := array.NewData(arrow.PrimitiveTypes.Int64, len(pos),
			[]*memory.Buffer{validity, memory.NewBufferBytes(arrow.Int64Traits.CastToBytes(vals))},
			nil, nulls, 0)
		defer data.Release()
		return array.NewInt64Data(data), nil
	case schema.String:
		b := array.NewStringBuilder(mem)
		defer b.Release()
		for _, p := range pos {
			if c.valid[p] {
				b.Append(c.strs[p])
			} else {
				b.AppendNull()
			}
		}
		return b.NewStringArray(), nil
	}
	return nil, fmt.Errorf("Arrow(%s.%s): %s: %w",
		a.class, a.attr.Name(), a.attr.Type(), schema.ErrUnsupportedValueType)
}

func (a *AttributeAccessor) arrowList(mem memory.Allocator, c *listColumn) (arrow.Array, error) {
	var elem arrow.DataType
	switch c.vtype {
	case schema.Float:
		elem = arrow.PrimitiveTypes.Float64
	case schema.Int:
		elem = arrow.PrimitiveTypes.Int64
	case schema.String:
		elem = arrow.BinaryTypes.String
	default:
		return nil, fmt.Errorf("Arrow(%s.%s): %s: %w",
			a.class, a.attr.Name(), c.vtype, schema.ErrUnsupportedValueType)
	}
	b := array.NewListBuilder(mem, elem)
	defer b.Release()
	for _, p := range a.positions() {
		if !c.valid[p] {
			b.AppendNull()
			continue
		}
		b.Append(true)
		for _, v := range c.cells[p] {
			switch c.vtype {
			case schema.Float:
				b.ValueBuilder().(*array.Float64Builder).Append(v.Float())
			case schema.Int:
				b.ValueBuilder().(*array.Int64Builder).Append(v.Int())
			case schema.String:
				b.ValueBuilder().(*array.StringBuilder).Append(v.Str())
			}
		}
	}
	return b.NewListArray(), nil
}

// arrowVector assembles the fixed-size-list export directly from the flat
// row-major storage, wrapping it without a copy for full-class views.
func (a *AttributeAccessor) arrowVector(_ memory.Allocator, c *vectorColumn) arrow.Array {
	pos := a.positions()
	vals := c.data
	if a.sel != nil {
		vals = make([]float64, len(pos)*c.width)
		for i, p := range pos {
			copy(vals[i*c.width:(i+1)*c.width], c.data[p*c.width:(p+1)*c.width])
		}
	}
	child := array.NewData(arrow.PrimitiveTypes.Float64, len(pos)*c.width,
		[]*memory.Buffer{nil, memory.NewBufferBytes(arrow.Float64Traits.CastToBytes(vals))},
		nil, 0, 0)
	defer child.Release()
	validity, nulls := validityBitmap(c.valid, pos)
	data := array.NewData(arrow.FixedSizeListOf(int32(c.width), arrow.PrimitiveTypes.Float64),
		len(pos), []*memory.Buffer{validity}, []arrow.ArrayData{child}, nulls, 0)
	defer data.Release()
	return array.NewFixedSizeListData(data)
}

func (a *AttributeAccessor) arrowSparse(mem memory.Allocator, c *sparseColumn) arrow.Array {
	st := arrow.StructOf(
		arrow.Field{Name: SparseFieldIndex, Type: arrow.PrimitiveTypes.Int32},
		arrow.Field{Name: SparseFieldValue, Type: arrow.PrimitiveTypes.Float64},
	)
	b := array.NewListBuilder(mem, st)
	defer b.Release()
	sb := b.ValueBuilder().(*array.StructBuilder)
	idxB := sb.FieldBuilder(0).(*array.Int32Builder)
	valB := sb.FieldBuilder(1).(*array.Float64Builder)
	for _, p := range a.positions() {
		b.Append(true)
		for _, e := range c.rows[p] {
			sb.Append(true)
			idxB.Append(int32(e.col))
			valB.Append(e.val)
		}
	}
	return b.NewListArray()
}

// interactionSchema is the Arrow schema of the interaction log export:
// vocabulary positions rather than raw identifiers, so the record lines
// up with the rating matrix axes.
var interactionSchema = arrow.NewSchema([]arrow.Field{
	{Name: "user_pos", Type: arrow.PrimitiveTypes.Int32},
	{Name: "item_pos", Type: arrow.PrimitiveTypes.Int32},
	{Name: "rating", Type: arrow.PrimitiveTypes.Float64, Nullable: true},
	{Name: "timestamp", Type: arrow.PrimitiveTypes.Int64},
}, nil)

// Arrow exports the canonically ordered interaction log as an Arrow
// record with columns user_pos, item_pos, rating (null for implicit
// feedback) and timestamp.  The caller owns the record and must Release
// it.
func (s *InteractionSet) Arrow(mem memory.Allocator) arrow.Record {
	if mem == nil {
		mem = memory.DefaultAllocator
	}
	b := array.NewRecordBuilder(mem, interactionSchema)
	defer b.Release()
	users := b.Field(0).(*array.Int32Builder)
	items := b.Field(1).(*array.Int32Builder)
	ratings := b.Field(2).(*array.Float64Builder)
	stamps := b.Field(3).(*array.Int64Builder)
	for i, rec := range s.recs {
		users.Append(int32(s.upos[i]))
		items.Append(int32(s.ipos[i]))
		if rec.HasRating {
			ratings.Append(rec.Rating)
		} else {
			ratings.AppendNull()
		}
		stamps.Append(rec.Timestamp)
	}
	return b.NewRecord()
}
