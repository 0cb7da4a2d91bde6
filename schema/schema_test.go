// Package schema_test contains unit tests for attribute and entity schemas.
package schema_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/recdata/schema"
)

// TestNewAttributeScalar verifies scalar declaration and that width and
// dimension names are dropped for widthless layouts.
func TestNewAttributeScalar(t *testing.T) {
	a, err := schema.NewAttribute("title", schema.Scalar, schema.String, 7, []string{"x"})
	require.NoError(t, err)

	require.Equal(t, "title", a.Name())
	require.Equal(t, schema.Scalar, a.Layout())
	require.Equal(t, schema.String, a.Type())
	require.Equal(t, 0, a.Width())
	require.Nil(t, a.DimNames())
}

// TestNewAttributeVectorNames verifies width/name validation for
// dimensioned layouts.
func TestNewAttributeVectorNames(t *testing.T) {
	names := []string{"apple", "banana", "orange"}
	a, err := schema.NewAttribute("embedding", schema.Vector, schema.Float, 3, names)
	require.NoError(t, err)
	require.Equal(t, 3, a.Width())
	require.Equal(t, names, a.DimNames())

	// dimension name count must match width
	_, err = schema.NewAttribute("embedding", schema.Vector, schema.Float, 2, names)
	require.ErrorIs(t, err, schema.ErrDimensionMismatch)

	// width must be positive
	_, err = schema.NewAttribute("embedding", schema.Sparse, schema.Float, 0, nil)
	require.ErrorIs(t, err, schema.ErrDimensionMismatch)
}

// TestNewAttributeEmptyName verifies name validation.
func TestNewAttributeEmptyName(t *testing.T) {
	_, err := schema.NewAttribute("", schema.Scalar, schema.Float, 0, nil)
	require.ErrorIs(t, err, schema.ErrEmptyName)
}

// TestEntityAddDuplicate verifies that re-declaring an attribute fails and
// the original declaration survives.
func TestEntityAddDuplicate(t *testing.T) {
	e, err := schema.NewEntity("item")
	require.NoError(t, err)

	a1, err := schema.NewAttribute("genres", schema.List, schema.String, 0, nil)
	require.NoError(t, err)
	require.NoError(t, e.Add(a1))

	a2, err := schema.NewAttribute("genres", schema.Scalar, schema.String, 0, nil)
	require.NoError(t, err)
	require.ErrorIs(t, e.Add(a2), schema.ErrDuplicateAttribute)

	got, ok := e.Attribute("genres")
	require.True(t, ok)
	require.Equal(t, schema.List, got.Layout())
}

// TestEntityAttributeOrder verifies declaration-order enumeration.
func TestEntityAttributeOrder(t *testing.T) {
	e, err := schema.NewEntity("item")
	require.NoError(t, err)

	for _, name := range []string{"title", "genres", "embedding"} {
		a, aerr := schema.NewAttribute(name, schema.Scalar, schema.String, 0, nil)
		require.NoError(t, aerr)
		require.NoError(t, e.Add(a))
	}
	require.Equal(t, []string{"title", "genres", "embedding"}, e.AttributeNames())
	require.Equal(t, 3, e.Len())
}

// TestLayoutStrings pins the human-readable enum names used in logs and
// error messages.
func TestLayoutStrings(t *testing.T) {
	require.Equal(t, "scalar", schema.Scalar.String())
	require.Equal(t, "list", schema.List.String())
	require.Equal(t, "vector", schema.Vector.String())
	require.Equal(t, "sparse", schema.Sparse.String())
	require.Equal(t, "float", schema.Float.String())
	require.Equal(t, "int", schema.Int.String())
	require.Equal(t, "string", schema.String.String())
	require.True(t, schema.Float.Numeric())
	require.False(t, schema.String.Numeric())
}
