// File: builder.go
// Role: validated accumulation of entities, attributes and interactions;
// the single source of truth for schema correctness before freezing.
//
// Design contract (strict):
//   - Fail-fast: every schema violation is reported by the call that
//     introduced it; a failed call leaves the builder state untouched.
//   - Distinct entry points per input shape: identifier-keyed maps
//     (AddScalarAttribute), positionally aligned columns
//     (AddScalarColumn), dense matrices (AddVectorAttribute), raw rows
//     (AddVectorRows), and CSR blocks (AddSparseAttribute) — no runtime
//     type inspection.
//   - Build() snapshots; it is not a one-shot consuming operation, and the
//     builder keeps accepting mutations afterwards.
//
// Concurrency:
//   - A Builder owns exclusive, single-threaded mutation rights over its
//     storage; wrap it in external locking if you must share it.

package dataset

import (
	"fmt"
	"math"

	"github.com/rs/zerolog"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/recdata/logging"
	"github.com/katalvlaran/recdata/schema"
	"github.com/katalvlaran/recdata/vocab"
)

// Entity class names used by the interaction table.
const (
	ClassUser = "user"
	ClassItem = "item"
)

// degenerateEps bounds |v - mean| under which a numeric attribute is
// considered variance-free after centering.
const degenerateEps = 1e-12

// Builder accumulates and validates entities, attributes and interactions,
// and freezes them into immutable Datasets.
type Builder struct {
	classes []string
	vocabs  map[string]*vocab.Vocabulary
	schemas map[string]*schema.Entity
	cols    map[string]map[string]column
	inter   []Interaction
	log     zerolog.Logger
}

// BuilderOption configures a Builder at construction time.
type BuilderOption func(*Builder)

// WithLogger routes the builder's structured warning events (degenerate
// attribute data) to the given logger instead of the package default.
func WithLogger(l zerolog.Logger) BuilderOption {
	return func(b *Builder) { b.log = l }
}

// NewBuilder creates an empty Builder.
func NewBuilder(opts ...BuilderOption) *Builder {
	b := &Builder{
		vocabs:  make(map[string]*vocab.Vocabulary),
		schemas: make(map[string]*schema.Entity),
		cols:    make(map[string]map[string]column),
		log:     logging.WithComponent("dataset"),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// AddEntities registers ids into the vocabulary for the entity class,
// creating the class on first use.  Registration is an idempotent union:
// overlapping or repeated identifier sets merge in first-seen order, and
// attribute data already stored for existing positions is preserved.
//
// Errors:
//   - schema.ErrEmptyName: class is empty.
//   - vocab.ErrEmptyID: some identifier is empty (nothing applied).
func (b *Builder) AddEntities(class string, ids []vocab.ID) error {
	if class == "" {
		return fmt.Errorf("AddEntities: %w", schema.ErrEmptyName)
	}
	voc, ok := b.vocabs[class]
	if !ok {
		ent, err := schema.NewEntity(class)
		if err != nil {
			return fmt.Errorf("AddEntities(%s): %w", class, err)
		}
		voc = vocab.New()
		b.vocabs[class] = voc
		b.schemas[class] = ent
		b.cols[class] = make(map[string]column)
		b.classes = append(b.classes, class)
	}
	if err := voc.Register(ids...); err != nil {
		return fmt.Errorf("AddEntities(%s): %w", class, err)
	}
	// keep the size invariant: every column spans the whole vocabulary
	for _, col := range b.cols[class] {
		col.grow(voc.Len())
	}
	return nil
}

// EntityClasses returns the classes created so far, in creation order.
func (b *Builder) EntityClasses() []string {
	out := make([]string, len(b.classes))
	copy(out, b.classes)
	return out
}

// classState resolves the mutable state triple for one entity class.
func (b *Builder) classState(op, class string) (*vocab.Vocabulary, *schema.Entity, map[string]column, error) {
	voc, ok := b.vocabs[class]
	if !ok {
		return nil, nil, nil, fmt.Errorf("%s(%s): %w", op, class, ErrUnknownClass)
	}
	return voc, b.schemas[class], b.cols[class], nil
}

// declare validates the (class, name) pair and records the attribute.
// It must run only after all data validation has passed, so a failing call
// cannot leave a declared-but-empty attribute behind.
func (b *Builder) declare(ent *schema.Entity, op string, layout schema.Layout,
	vtype schema.ValueType, name string, width int, dimNames []string) (*schema.Attribute, error) {
	attr, err := schema.NewAttribute(name, layout, vtype, width, dimNames)
	if err != nil {
		return nil, fmt.Errorf("%s(%s.%s): %w", op, ent.Name(), name, err)
	}
	if err = ent.Add(attr); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return attr, nil
}

// AddScalarAttribute declares a scalar attribute from an identifier-keyed
// map.  Positions with no supplied value are stored null.  The value type
// is inferred from the data: all-int stays int, mixed int/float widens to
// float, text stays text; mixing text and numeric fails.
//
// Errors:
//   - ErrUnknownClass, ErrUnknownEntity
//   - schema.ErrDuplicateAttribute, schema.ErrUnsupportedValueType
func (b *Builder) AddScalarAttribute(class, name string, vals map[vocab.ID]Value) error {
	const op = "AddScalarAttribute"
	voc, ent, cols, err := b.classState(op, class)
	if err != nil {
		return err
	}
	vtype, err := inferMapType(op, class, name, vals)
	if err != nil {
		return err
	}
	pos := make(map[vocab.ID]int, len(vals))
	for id := range vals {
		p, perr := voc.PositionOf(id)
		if perr != nil {
			return fmt.Errorf("%s(%s.%s): id %q: %w", op, class, name, id, ErrUnknownEntity)
		}
		pos[id] = p
	}
	attr, err := b.declare(ent, op, schema.Scalar, vtype, name, 0, nil)
	if err != nil {
		return err
	}
	col := newScalarColumn(vtype, voc.Len())
	for id, v := range vals {
		col.set(pos[id], v)
	}
	cols[attr.Name()] = col
	b.checkScalarVariance(class, name, col)
	return nil
}

// AddScalarColumn declares a scalar attribute from an array positionally
// aligned to the current vocabulary order.  Null values mark positions
// without data.
//
// Errors:
//   - ErrUnknownClass
//   - schema.ErrDimensionMismatch: len(vals) differs from the vocabulary
//     size.
//   - schema.ErrDuplicateAttribute, schema.ErrUnsupportedValueType
func (b *Builder) AddScalarColumn(class, name string, vals []Value) error {
	const op = "AddScalarColumn"
	voc, ent, cols, err := b.classState(op, class)
	if err != nil {
		return err
	}
	if len(vals) != voc.Len() {
		return fmt.Errorf("%s(%s.%s): %d values for %d entities: %w",
			op, class, name, len(vals), voc.Len(), schema.ErrDimensionMismatch)
	}
	vtype, err := inferSliceType(op, class, name, vals)
	if err != nil {
		return err
	}
	attr, err := b.declare(ent, op, schema.Scalar, vtype, name, 0, nil)
	if err != nil {
		return err
	}
	col := newScalarColumn(vtype, voc.Len())
	for i, v := range vals {
		col.set(i, v)
	}
	cols[attr.Name()] = col
	b.checkScalarVariance(class, name, col)
	return nil
}

// AddListAttribute declares a list attribute from an identifier-keyed map
// of value sequences.  An empty sequence is stored as an empty list,
// distinct from the null stored at positions with no entry at all.
func (b *Builder) AddListAttribute(class, name string, vals map[vocab.ID][]Value) error {
	const op = "AddListAttribute"
	voc, ent, cols, err := b.classState(op, class)
	if err != nil {
		return err
	}
	vtype, err := inferListsType(op, class, name, func(yield func([]Value) bool) {
		for _, cell := range vals {
			if !yield(cell) {
				return
			}
		}
	})
	if err != nil {
		return err
	}
	pos := make(map[vocab.ID]int, len(vals))
	for id := range vals {
		p, perr := voc.PositionOf(id)
		if perr != nil {
			return fmt.Errorf("%s(%s.%s): id %q: %w", op, class, name, id, ErrUnknownEntity)
		}
		pos[id] = p
	}
	attr, err := b.declare(ent, op, schema.List, vtype, name, 0, nil)
	if err != nil {
		return err
	}
	col := newListColumn(vtype, voc.Len())
	for id, cell := range vals {
		col.set(pos[id], cell)
	}
	cols[attr.Name()] = col
	return nil
}

// AddListColumn declares a list attribute from a positionally aligned
// column of value sequences.  A nil slice is a null slot; a non-nil empty
// slice is an empty list.
func (b *Builder) AddListColumn(class, name string, vals [][]Value) error {
	const op = "AddListColumn"
	voc, ent, cols, err := b.classState(op, class)
	if err != nil {
		return err
	}
	if len(vals) != voc.Len() {
		return fmt.Errorf("%s(%s.%s): %d rows for %d entities: %w",
			op, class, name, len(vals), voc.Len(), schema.ErrDimensionMismatch)
	}
	vtype, err := inferListsType(op, class, name, func(yield func([]Value) bool) {
		for _, cell := range vals {
			if cell == nil {
				continue
			}
			if !yield(cell) {
				return
			}
		}
	})
	if err != nil {
		return err
	}
	attr, err := b.declare(ent, op, schema.List, vtype, name, 0, nil)
	if err != nil {
		return err
	}
	col := newListColumn(vtype, voc.Len())
	for i, cell := range vals {
		if cell != nil {
			col.set(i, cell)
		}
	}
	cols[attr.Name()] = col
	return nil
}

// AttrOption configures dimensioned attribute declarations.
type AttrOption func(*attrConfig)

type attrConfig struct {
	dimNames []string
}

// WithDimNames attaches ordered dimension names to a vector or sparse
// attribute; the length must equal the attribute width.
func WithDimNames(names []string) AttrOption {
	return func(c *attrConfig) { c.dimNames = names }
}

func resolveAttrOptions(opts []AttrOption) attrConfig {
	var cfg attrConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// AddVectorAttribute declares a fixed-width vector attribute from a dense
// matrix whose rows align one-for-one with ids.  Vocabulary positions not
// named in ids are stored null.
//
// Errors:
//   - ErrUnknownClass, ErrUnknownEntity, ErrNilInput
//   - ErrDuplicateEntity: ids repeats an identifier with differing rows.
//   - schema.ErrDimensionMismatch: row count differs from len(ids), or
//     the dimension name count differs from the matrix width.
//   - schema.ErrDuplicateAttribute
func (b *Builder) AddVectorAttribute(class, name string, ids []vocab.ID, m *mat.Dense, opts ...AttrOption) error {
	const op = "AddVectorAttribute"
	if m == nil {
		return fmt.Errorf("%s(%s.%s): %w", op, class, name, ErrNilInput)
	}
	r, w := m.Dims()
	if r != len(ids) {
		return fmt.Errorf("%s(%s.%s): %d rows for %d ids: %w",
			op, class, name, r, len(ids), schema.ErrDimensionMismatch)
	}
	rows := make([][]float64, r)
	for i := 0; i < r; i++ {
		rows[i] = mat.Row(nil, i, m)
	}
	return b.addVector(op, class, name, ids, rows, w, opts)
}

// AddVectorRows declares a fixed-width vector attribute from raw rows
// aligned one-for-one with ids.  The width is the length of the first
// row; any row of a different length fails with DimensionMismatch and
// leaves the builder untouched.
func (b *Builder) AddVectorRows(class, name string, ids []vocab.ID, rows [][]float64, opts ...AttrOption) error {
	const op = "AddVectorRows"
	if len(rows) != len(ids) {
		return fmt.Errorf("%s(%s.%s): %d rows for %d ids: %w",
			op, class, name, len(rows), len(ids), schema.ErrDimensionMismatch)
	}
	if len(rows) == 0 {
		return fmt.Errorf("%s(%s.%s): no rows: %w", op, class, name, schema.ErrDimensionMismatch)
	}
	w := len(rows[0])
	for i, row := range rows {
		if len(row) != w {
			return fmt.Errorf("%s(%s.%s): row %d has width %d, want %d: %w",
				op, class, name, i, len(row), w, schema.ErrDimensionMismatch)
		}
	}
	return b.addVector(op, class, name, ids, rows, w, opts)
}

// addVector is the shared tail of the two vector entry points.
func (b *Builder) addVector(op, class, name string, ids []vocab.ID, rows [][]float64, width int, opts []AttrOption) error {
	voc, ent, cols, err := b.classState(op, class)
	if err != nil {
		return err
	}
	if width < 1 {
		return fmt.Errorf("%s(%s.%s): zero width: %w", op, class, name, schema.ErrDimensionMismatch)
	}
	cfg := resolveAttrOptions(opts)

	pos, err := resolveRowIDs(op, class, name, voc, ids, func(i, j int) bool {
		return floatRowsEqual(rows[i], rows[j])
	})
	if err != nil {
		return err
	}
	attr, err := b.declare(ent, op, schema.Vector, schema.Float, name, width, cfg.dimNames)
	if err != nil {
		return err
	}
	col := newVectorColumn(width, voc.Len())
	for i, p := range pos {
		col.set(p, rows[i])
	}
	cols[attr.Name()] = col
	b.checkVectorVariance(class, name, col)
	return nil
}

// AddSparseAttribute declares a sparse attribute from a row-aligned CSR
// block: row i of csr belongs to ids[i].  Vocabulary positions not named
// in ids are stored with empty rows.  Duplicate dimension positions within
// one row are rejected.
//
// Errors:
//   - ErrUnknownClass, ErrUnknownEntity, ErrDuplicateEntity
//   - schema.ErrDimensionMismatch: structural CSR inconsistency, row count
//     vs ids, duplicate dimension in a row, or dimension name count vs
//     width.
//   - schema.ErrDuplicateAttribute
func (b *Builder) AddSparseAttribute(class, name string, ids []vocab.ID, csr CSRData, opts ...AttrOption) error {
	const op = "AddSparseAttribute"
	voc, ent, cols, err := b.classState(op, class)
	if err != nil {
		return err
	}
	if csr.NRows != len(ids) {
		return fmt.Errorf("%s(%s.%s): %d rows for %d ids: %w",
			op, class, name, csr.NRows, len(ids), schema.ErrDimensionMismatch)
	}
	if err = csr.validate(); err != nil {
		return fmt.Errorf("%s(%s.%s): %w", op, class, name, err)
	}
	cfg := resolveAttrOptions(opts)

	pos, err := resolveRowIDs(op, class, name, voc, ids, func(i, j int) bool {
		return sparseRowsEqual(csr, i, j)
	})
	if err != nil {
		return err
	}
	attr, err := b.declare(ent, op, schema.Sparse, schema.Float, name, csr.NCols, cfg.dimNames)
	if err != nil {
		return err
	}
	col := newSparseColumn(csr.NCols, voc.Len())
	for i, p := range pos {
		col.set(p, csr.row(i))
	}
	cols[attr.Name()] = col
	return nil
}

// AddInteractions appends interaction records (user, item, optional rating,
// timestamp).  Both identifiers must already be registered under the
// "user" and "item" entity classes.
//
// Errors:
//   - ErrUnknownClass: the user or item class does not exist yet.
//   - ErrUnknownEntity: a record references an unregistered identifier.
func (b *Builder) AddInteractions(recs []Interaction) error {
	const op = "AddInteractions"
	users, ok := b.vocabs[ClassUser]
	if !ok {
		return fmt.Errorf("%s: class %q: %w", op, ClassUser, ErrUnknownClass)
	}
	items, ok := b.vocabs[ClassItem]
	if !ok {
		return fmt.Errorf("%s: class %q: %w", op, ClassItem, ErrUnknownClass)
	}
	for i, rec := range recs {
		if !users.Contains(rec.User) {
			return fmt.Errorf("%s: record %d user %q: %w", op, i, rec.User, ErrUnknownEntity)
		}
		if !items.Contains(rec.Item) {
			return fmt.Errorf("%s: record %d item %q: %w", op, i, rec.Item, ErrUnknownEntity)
		}
	}
	b.inter = append(b.inter, recs...)
	return nil
}

// Build validates global consistency and freezes the accumulated state
// into an immutable Dataset.  Each call is independent: the builder keeps
// accepting mutations, and previously built datasets never observe them.
func (b *Builder) Build() (*Dataset, error) {
	for class, cols := range b.cols {
		n := b.vocabs[class].Len()
		for name, col := range cols {
			if col.length() != n {
				return nil, fmt.Errorf("Build: column %s.%s has %d slots for %d entities: %w",
					class, name, col.length(), n, schema.ErrDimensionMismatch)
			}
		}
	}

	ds := &Dataset{
		classes: append([]string(nil), b.classes...),
		vocabs:  make(map[string]*vocab.Vocabulary, len(b.vocabs)),
		schemas: make(map[string]*schema.Entity, len(b.schemas)),
		cols:    make(map[string]map[string]column, len(b.cols)),
	}
	for class, voc := range b.vocabs {
		ds.vocabs[class] = voc.Clone()
		ds.schemas[class] = b.schemas[class].Clone()
		frozen := make(map[string]column, len(b.cols[class]))
		for name, col := range b.cols[class] {
			frozen[name] = col.clone()
		}
		ds.cols[class] = frozen
	}
	ds.inter = freezeInteractions(b.inter, ds.vocabs[ClassUser], ds.vocabs[ClassItem])
	return ds, nil
}

// ---------- helpers ----------

// resolveRowIDs maps ids to vocabulary positions, enforcing the duplicate
// rule: a repeated identifier is tolerated only when its associated rows
// are identical (sameRow reports row equality by input index).
func resolveRowIDs(op, class, name string, voc *vocab.Vocabulary, ids []vocab.ID, sameRow func(i, j int) bool) ([]int, error) {
	pos := make([]int, len(ids))
	first := make(map[vocab.ID]int, len(ids))
	for i, id := range ids {
		p, err := voc.PositionOf(id)
		if err != nil {
			return nil, fmt.Errorf("%s(%s.%s): id %q: %w", op, class, name, id, ErrUnknownEntity)
		}
		pos[i] = p
		if j, seen := first[id]; seen {
			if !sameRow(i, j) {
				return nil, fmt.Errorf("%s(%s.%s): id %q rows %d and %d conflict: %w",
					op, class, name, id, j, i, ErrDuplicateEntity)
			}
			continue
		}
		first[id] = i
	}
	return pos, nil
}

func floatRowsEqual(a, b []float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func sparseRowsEqual(csr CSRData, i, j int) bool {
	li, hi := csr.RowPtr[i], csr.RowPtr[i+1]
	lj, hj := csr.RowPtr[j], csr.RowPtr[j+1]
	if hi-li != hj-lj {
		return false
	}
	for k := 0; k < hi-li; k++ {
		if csr.ColInd[li+k] != csr.ColInd[lj+k] || csr.Values[li+k] != csr.Values[lj+k] {
			return false
		}
	}
	return true
}

// inferMapType resolves the element type of an identifier-keyed scalar map.
func inferMapType(op, class, name string, vals map[vocab.ID]Value) (schema.ValueType, error) {
	return inferType(op, class, name, func(yield func(Value) bool) {
		for _, v := range vals {
			if !yield(v) {
				return
			}
		}
	})
}

// inferSliceType resolves the element type of an aligned scalar column.
func inferSliceType(op, class, name string, vals []Value) (schema.ValueType, error) {
	return inferType(op, class, name, func(yield func(Value) bool) {
		for _, v := range vals {
			if !yield(v) {
				return
			}
		}
	})
}

// inferListsType resolves the shared element type across list cells.
func inferListsType(op, class, name string, cells func(yield func([]Value) bool)) (schema.ValueType, error) {
	return inferType(op, class, name, func(yield func(Value) bool) {
		cells(func(cell []Value) bool {
			for _, v := range cell {
				if !yield(v) {
					return false
				}
			}
			return true
		})
	})
}

// inferType folds value types: all-int stays Int, mixed int/float widens
// to Float, text stays String; mixing text and numeric — or data with no
// non-null values at all — has no defined storage mapping.
func inferType(op, class, name string, values func(yield func(Value) bool)) (schema.ValueType, error) {
	var (
		sawAny           bool
		sawNum, sawFloat bool
		sawText          bool
		failed           error
	)
	values(func(v Value) bool {
		if v.IsNull() {
			return true
		}
		sawAny = true
		switch v.Type() {
		case schema.Float:
			sawNum, sawFloat = true, true
		case schema.Int:
			sawNum = true
		case schema.String:
			sawText = true
		}
		if sawText && sawNum {
			failed = fmt.Errorf("%s(%s.%s): mixed text and numeric values: %w",
				op, class, name, schema.ErrUnsupportedValueType)
			return false
		}
		return true
	})
	if failed != nil {
		return 0, failed
	}
	switch {
	case !sawAny:
		return 0, fmt.Errorf("%s(%s.%s): no non-null values to infer a type from: %w",
			op, class, name, schema.ErrUnsupportedValueType)
	case sawText:
		return schema.String, nil
	case sawFloat:
		return schema.Float, nil
	default:
		return schema.Int, nil
	}
}

// checkScalarVariance emits a structured warning (never an error) when a
// numeric scalar attribute shows no variance after centering.
func (b *Builder) checkScalarVariance(class, name string, col *scalarColumn) {
	if !col.vtype.Numeric() {
		return
	}
	var vals []float64
	for i, ok := range col.valid {
		if ok {
			vals = append(vals, col.value(i).Float())
		}
	}
	b.warnIfFlat(class, name, vals)
}

// checkVectorVariance does the same over all present vector cells.
func (b *Builder) checkVectorVariance(class, name string, col *vectorColumn) {
	var vals []float64
	for i, ok := range col.valid {
		if ok {
			vals = append(vals, col.row(i)...)
		}
	}
	b.warnIfFlat(class, name, vals)
}

func (b *Builder) warnIfFlat(class, name string, vals []float64) {
	if len(vals) < 2 {
		return
	}
	mean := 0.0
	for _, v := range vals {
		mean += v
	}
	mean /= float64(len(vals))
	for _, v := range vals {
		if math.Abs(v-mean) > degenerateEps {
			return
		}
	}
	b.log.Warn().
		Str("class", class).
		Str("attribute", name).
		Float64("value", mean).
		Msg("attribute values show no variance after centering")
}
