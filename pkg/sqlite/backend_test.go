package sqlite_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/semprops/internal/registry"
	"github.com/mesh-intelligence/semprops/pkg/semprops"
	"github.com/mesh-intelligence/semprops/pkg/sqlite"
	"github.com/mesh-intelligence/semprops/pkg/types"
)

func TestNewBackendStoresBufferedValues(t *testing.T) {
	reg, err := registry.Default()
	require.NoError(t, err)

	store := sqlite.NewBackend(sqlite.WithProperties(reg))
	require.NoError(t, store.Attach(types.Config{Backend: types.BackendSQLite, DataDir: t.TempDir()}))
	defer store.Detach()

	engine := semprops.New(reg, nil)
	buf := engine.NewBuffer()
	require.NoError(t, buf.AddValue("Modification date", "2024-01-01"))
	require.NoError(t, buf.AddValue("Has author", []any{"Ann", 3}))

	subject := types.Subject{Page: types.Page{Title: "Main page"}}
	require.NoError(t, buf.MoveTo(subject, store))
	assert.Zero(t, buf.Len())

	sts, err := store.Values(subject)
	require.NoError(t, err)
	require.Len(t, sts, 2)
	assert.Equal(t, "_MDAT", sts[0].PropertyID)
	assert.Equal(t, "Has_author", sts[1].PropertyID)
	assert.Equal(t, "Ann;3", sts[1].Value)
}

func TestNewBackendDetached(t *testing.T) {
	store := sqlite.NewBackend()
	_, err := store.Values(types.Subject{Page: types.Page{Title: "X"}})
	assert.ErrorIs(t, err, types.ErrDetached)
	assert.NoError(t, store.Detach())
}
