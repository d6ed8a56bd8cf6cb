package actions

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForNodeFind_CapsEntitySuggestions(t *testing.T) {
	ids := []int64{1, 2, 3, 4, 5, 6, 7}

	out := ForNodeFind("Person", ids)

	// Five entity-specific suggestions plus the fixed create suggestion.
	require.Len(t, out, MaxEntitySuggestions+1)
	assert.Equal(t, "lowmain node get 1", out[0].Command)
	assert.Equal(t, "lowmain node get 5", out[4].Command)
	assert.Equal(t, "lowmain node create --label=Person", out[5].Command)
}

func TestForNodeFind_FewResults(t *testing.T) {
	out := ForNodeFind("Person", []int64{10})

	require.Len(t, out, 2)
	assert.Equal(t, "lowmain node get 10", out[0].Command)

	create := out[1]
	require.Len(t, create.Params, 1)
	assert.Equal(t, "--props", create.Params[0].Name)
	assert.True(t, create.Params[0].Required)
}

func TestForNodeGet_ReferencesConcreteID(t *testing.T) {
	out := ForNodeGet(42)

	require.Len(t, out, 5)
	for _, a := range out {
		assert.Contains(t, a.Command, "42")
	}

	relCreate := out[4]
	require.Len(t, relCreate.Params, 2)
	assert.Equal(t, "--to", relCreate.Params[0].Name)
	assert.Equal(t, "--type", relCreate.Params[1].Name)
}

func TestForPing_GenericSuggestions(t *testing.T) {
	out := ForPing()

	require.NotEmpty(t, out)
	assert.Equal(t, "lowmain schema", out[0].Command)
	for _, a := range out {
		assert.True(t, strings.HasPrefix(a.Command, "lowmain "), "command %q must target this surface", a.Command)
	}
}

func TestForSchemaOverview_LabelEnum(t *testing.T) {
	labels := []string{"Person", "City"}

	out := ForSchemaOverview(labels)

	// One find per label, then create with enum labels, then raw query.
	require.Len(t, out, 4)
	assert.Equal(t, "lowmain node find --label=Person", out[0].Command)
	assert.Equal(t, "lowmain node find --label=City", out[1].Command)

	create := out[2]
	require.Len(t, create.Params, 2)
	assert.Equal(t, "--label", create.Params[0].Name)
	assert.Equal(t, labels, create.Params[0].Enum)
}

func TestForRelCreate_ReferencesEndpoints(t *testing.T) {
	out := ForRelCreate(1, 2, 33)

	require.Len(t, out, 3)
	assert.Equal(t, "lowmain node get 1", out[0].Command)
	assert.Equal(t, "lowmain node get 2", out[1].Command)
	assert.Equal(t, "lowmain rel delete 33", out[2].Command)
}

func TestEveryGeneratorTargetsThisSurface(t *testing.T) {
	lists := [][]NextAction{
		ForPing(),
		ForNodeFind("L", []int64{1}),
		ForNodeGet(1),
		ForNodeCreate(1, "L"),
		ForNodeUpdate(1),
		ForNodeDelete(),
		ForRelFind(),
		ForRelCreate(1, 2, 3),
		ForRelDelete(),
		ForQueryRead(),
		ForQueryWrite(),
		ForSchemaLabels([]string{"L"}),
		ForSchemaTypes([]string{"T"}),
		ForSchemaIndexes(),
		ForSchemaConstraints(),
		ForSchemaCount(),
		ForSchemaOverview([]string{"L"}),
	}

	for _, list := range lists {
		for _, a := range list {
			assert.True(t, strings.HasPrefix(a.Command, "lowmain "), "command %q", a.Command)
			assert.NotEmpty(t, a.Label)
		}
	}
}
