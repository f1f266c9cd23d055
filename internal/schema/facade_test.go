package schema

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFacadeOperations(t *testing.T) {
	sch := buildTestSchema(t)

	typ, ok := sch.LookupType("Node")
	require.True(t, ok)
	require.Equal(t, TypeKindInterface, typ.Kind)

	ft, ok := sch.FieldType("Character", "name")
	require.True(t, ok)
	require.Equal(t, "String", ft.GetNamedType())

	args, ok := sch.FieldArguments("Query", "character")
	require.True(t, ok)
	require.Len(t, args, 1)

	require.True(t, sch.IsLeaf("String"))
	require.False(t, sch.IsLeaf("Character"))

	possible := sch.PossibleTypes("Node")
	require.Contains(t, possible, "Character")

	require.Equal(t, sch.QueryType, sch.RootOperation(RootQuery))
	require.Equal(t, "", sch.RootOperation(RootMutation))
}
