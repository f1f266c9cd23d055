package elaborate

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/quithub/qgraphql/internal/gvalue"
	"github.com/quithub/qgraphql/internal/query"
	"github.com/quithub/qgraphql/internal/result"
)

func TestResolveValueResolvesNestedListAndObjectVariables(t *testing.T) {
	ctx := &Context{Variables: map[string]gvalue.Value{"x": gvalue.NewInt(7)}}
	defs := map[string]query.VarDef{"x": {Name: "x"}}
	var probs result.Problems

	list := gvalue.NewList(gvalue.NewString("a"), gvalue.NewUntypedVariable("x"))
	resolved := resolveValue(ctx, defs, list, &probs)
	require.Empty(t, probs)
	require.Equal(t, gvalue.NewInt(7), resolved.List[1])

	obj := gvalue.NewObject(gvalue.Field{Name: "n", Value: gvalue.NewUntypedVariable("x")})
	resolved = resolveValue(ctx, defs, obj, &probs)
	require.Empty(t, probs)
	require.Equal(t, gvalue.NewInt(7), resolved.Fields[0].Value)
}

func TestResolveValueReportsUnknownNestedVariable(t *testing.T) {
	ctx := &Context{}
	defs := map[string]query.VarDef{}
	var probs result.Problems

	list := gvalue.NewList(gvalue.NewUntypedVariable("missing"))
	resolveValue(ctx, defs, list, &probs)
	require.Len(t, probs, 1)
	require.Equal(t, "UnknownVariable", probs[0].Kind)
}
