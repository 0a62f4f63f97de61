package semprops_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/semprops/internal/namespace"
	"github.com/mesh-intelligence/semprops/internal/registry"
	"github.com/mesh-intelligence/semprops/pkg/semprops"
	"github.com/mesh-intelligence/semprops/pkg/types"
)

func newCapitalizingEngine(t *testing.T) (*semprops.Engine, *registry.Registry) {
	t.Helper()
	reg, err := registry.Default()
	require.NoError(t, err)
	require.NoError(t, reg.Register("_IPM", registry.WithLabel("iPhone model"), registry.WithAliases("eBook reader")))

	ns, err := namespace.New(namespace.Options{CapitalLinks: true})
	require.NoError(t, err)
	return semprops.New(reg, ns), reg
}

func TestLowercaseLabelRoundTrip(t *testing.T) {
	engine, _ := newCapitalizingEngine(t)

	label := engine.ResolveLabel("_IPM", true)
	assert.Equal(t, "iPhone model", label)
	assert.Equal(t, "_IPM", engine.ResolveID(label))
	assert.Equal(t, "_IPM", engine.ResolveID("Property:iPhone_model"))
	assert.Equal(t, "_IPM", engine.ResolveID("eBook reader"))
	assert.Equal(t, "iPhone model", engine.ResolveLabel("eBook reader", false))

	ref, err := engine.Resolver().Resolve("iPhone model")
	require.NoError(t, err)
	assert.Equal(t, types.PropertyRef{ID: "_IPM", Label: "iPhone model"}, ref)
}

func TestLowercaseLabelInBuild(t *testing.T) {
	engine, _ := newCapitalizingEngine(t)

	got, err := engine.BuildAssignments(types.AssignmentArray{}.
		Add("iPhone model", "X").
		Add("Other prop", "y"), "", "")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "_IPM", got[0].PropertyID)
	assert.Equal(t, "Other_prop", got[1].PropertyID)
}

func TestEveryLabelRoundTrips(t *testing.T) {
	engine, reg := newCapitalizingEngine(t)

	for _, def := range reg.Properties() {
		label := engine.ResolveLabel(def.ID, true)
		if def.Label == "" {
			assert.Equal(t, def.ID, label)
			continue
		}
		assert.Equal(t, def.ID, engine.ResolveID(label), "label %q", label)
	}
}
