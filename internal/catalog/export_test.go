package catalog

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuiltinTypes(t *testing.T) {
	types := BuiltinTypes()
	require.Contains(t, types, "football")
	require.Contains(t, types, "baseball")
	require.IsIncreasing(t, types)
}

func TestExportRoundTrip(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, Export(dir, "football"))

	loaded, err := DirLoader{Dir: dir}.Load("football")
	require.NoError(t, err)

	builtin, err := Builtin().Load("football")
	require.NoError(t, err)
	require.Equal(t, builtin.Templates, loaded.Templates)
	require.Equal(t, builtin.TotalWeight, loaded.TotalWeight)
}

func TestExportUnknownType(t *testing.T) {
	err := Export(t.TempDir(), "cricket")
	require.ErrorIs(t, err, ErrCatalogNotFound)
}
