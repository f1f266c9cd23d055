package query_test

import (
	"testing"

	"github.com/quithub/qgraphql/internal/gvalue"
	"github.com/quithub/qgraphql/internal/predicate"
	"github.com/quithub/qgraphql/internal/query"
	"github.com/stretchr/testify/require"
)

func TestRenderSelectWithArgs(t *testing.T) {
	args := gvalue.Bindings{{Name: "id", Value: gvalue.NewID("42")}}
	sel := query.Select("hero", args, query.Select("name", nil, nil))
	require.Equal(t, `hero(id: "42"){ name }`, sel.Render())
}

func TestRenderGroup(t *testing.T) {
	g := query.Group(
		query.Select("a", nil, nil),
		query.Select("b", nil, nil),
	)
	require.Equal(t, "{ a, b }", g.Render())
}

func TestRenderRenameAndNarrow(t *testing.T) {
	renamed := query.Rename("heroAlias", query.Select("hero", nil, nil))
	require.Equal(t, "<rename: heroAlias hero>", renamed.Render())
}

func TestRenderSkipIncludeVerb(t *testing.T) {
	cond := predicate.Field("$skipIt")
	skip := query.Skip(true, cond, query.Select("x", nil, nil))
	include := query.Skip(false, cond, query.Select("x", nil, nil))
	require.Equal(t, "<skip: x>", skip.Render())
	require.Equal(t, "<include: x>", include.Render())
}

func TestRenderLimitOffsetCount(t *testing.T) {
	q := query.Limit(10, query.Offset(5, query.Count("total", query.Select("x", nil, nil))))
	require.Equal(t, "<limit: 10 <offset: 5 <count: total x>>>", q.Render())
}

func TestRenderSkippedAndEmpty(t *testing.T) {
	require.Equal(t, "<skipped>", query.Skipped().Render())
	require.Equal(t, "<empty>", query.Empty().Render())
}

func TestQueryStringDelegatesToRender(t *testing.T) {
	sel := query.Select("x", nil, nil)
	require.Equal(t, sel.Render(), sel.String())
}
