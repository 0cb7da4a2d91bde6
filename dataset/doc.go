// Package dataset implements the entity-attribute store at the heart of
// recdata: a mutable Builder that accumulates, validates and aligns
// entities, attributes and interactions, and an immutable Dataset that
// re-exposes every attribute through several external representations
// without rebuilding the data.
//
// 🚀 The shape of the thing
//
//	b := dataset.NewBuilder()
//	_ = b.AddEntities("item", []vocab.ID{"1", "2", "3", "4", "5"})
//	_ = b.AddScalarAttribute("item", "title", map[vocab.ID]dataset.Value{
//		"1": dataset.String("A"),
//		"2": dataset.String("B"),
//	})
//	ds, _ := b.Build()
//
//	items, _ := ds.Entities("item")
//	tbl, _ := items.Table(dataset.MissingFill, "title") // 5 rows, 3 of them null
//
// Attributes live under one of four storage layouts (see package schema):
// scalar, list, vector, sparse.  Each layout maps onto each export surface
// with a single, explicit missing-value policy:
//
//	Arrow()        — columnar array (zero-copy over the storage buffers
//	                 whenever the memory layout permits)
//	DenseVector()  — []float64, scalar attributes
//	DenseMatrix()  — gonum *mat.Dense, vector/sparse attributes
//	Table()        — identifier-indexed table (fill or omit policy)
//	SparseMatrix() — CSR matrix, sparse attributes (round-trip exact)
//	Tensor()       — dense tensor mirroring the dense exports
//
// Failure semantics are strict and immediate: every builder-time schema
// violation is reported by the call that introduced it (never deferred to
// Build), layout-mismatched exports fail with ErrLayoutMismatch, and no
// error is ever converted to a default value except where a missing-value
// policy explicitly requests filling.  The only soft failure is a
// structured warning for statistically degenerate attribute data.
//
// Concurrency: a Builder must not be mutated concurrently.  A built
// Dataset and all of its accessors are immutable and safe for unlimited
// concurrent reads.
package dataset
