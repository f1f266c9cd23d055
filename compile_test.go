package qgraphql

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/quithub/qgraphql/internal/elaborate"
	"github.com/quithub/qgraphql/internal/query"
	"github.com/quithub/qgraphql/internal/schema"
)

const compileTestSDL = `
type Character {
  id: ID!
  name: String!
}

type Query {
  character(id: ID!): Character
}
`

func compileTestSchema(t *testing.T) *schema.Schema {
	t.Helper()
	sch, err := schema.BuildFromSDL(compileTestSDL)
	require.NoError(t, err)
	return sch
}

func TestCompileTextSuccess(t *testing.T) {
	sch := compileTestSchema(t)
	ctx := &elaborate.Context{Schema: sch}

	res := Compile(ctx, `{ character(id: "1000") { name } }`, "")
	require.True(t, res.IsSuccess(), res.Problems())

	op, ok := res.Value()
	require.True(t, ok)
	require.Equal(t, "Query", op.ResultType.GetNamedType())
}

func TestCompileTextSyntaxErrorReportsLocation(t *testing.T) {
	sch := compileTestSchema(t)
	ctx := &elaborate.Context{Schema: sch}

	res := Compile(ctx, `{ character(id: "1000") { name`, "")
	require.True(t, res.IsFailure())
	require.Len(t, res.Problems(), 1)

	p := res.Problems()[0]
	require.Equal(t, "ParseError", p.Kind)
	require.NotZero(t, p.Line)
	require.Contains(t, p.Message, "Parse error at line")
}

func TestCompileTextNoOperationsFails(t *testing.T) {
	sch := compileTestSchema(t)
	ctx := &elaborate.Context{Schema: sch}

	res := Compile(ctx, `fragment F on Character { name }`, "")
	require.True(t, res.IsFailure())
	require.Equal(t, "NoOperations", res.Problems()[0].Kind)
}

// TestCompileIntrospectionWorksWithoutCallerExtendingSchema asserts
// that the one documented entry point hoists __schema/__type on its
// own — a caller that only calls schema.BuildFromSDL, never
// schema.WithIntrospection, still gets a working introspection query.
func TestCompileIntrospectionWorksWithoutCallerExtendingSchema(t *testing.T) {
	sch := compileTestSchema(t)
	ctx := &elaborate.Context{Schema: sch}

	res := Compile(ctx, `{ __schema { queryType { name } } }`, "")
	require.True(t, res.IsSuccess(), res.Problems())

	op, ok := res.Value()
	require.True(t, ok)
	require.Equal(t, query.KindIntrospect, op.Root.Kind)
}
