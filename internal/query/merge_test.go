package query_test

import (
	"testing"

	"github.com/quithub/qgraphql/internal/gvalue"
	"github.com/quithub/qgraphql/internal/query"
	"github.com/stretchr/testify/require"
)

func TestMergeIdenticalSelectionsCollapse(t *testing.T) {
	a := query.Select("a", nil, nil)
	b := query.Select("a", nil, nil)
	merged := query.MergeQueries([]*query.Query{a, b})
	out, ok := merged.Value()
	require.True(t, ok)
	require.Equal(t, query.Select("a", nil, nil).Render(), out.Render())
}

func TestMergeUnionsChildren(t *testing.T) {
	a := query.Select("hero", nil, query.Select("name", nil, nil))
	b := query.Select("hero", nil, query.Select("id", nil, nil))
	merged := query.MergeQueries([]*query.Query{a, b})
	out, ok := merged.Value()
	require.True(t, ok)
	require.True(t, query.HasField(out, "hero"))
	kids := query.Children(out)
	require.Len(t, kids, 2)
}

func TestMergeRespectsAliasBuckets(t *testing.T) {
	a := query.Rename("x", query.Select("hero", nil, query.Select("name", nil, nil)))
	b := query.Select("hero", nil, query.Select("id", nil, nil))
	merged := query.MergeQueries([]*query.Query{a, b})
	out, ok := merged.Value()
	require.True(t, ok)
	require.True(t, query.HasField(out, "hero"))
	alias, ok := query.FieldAlias(out, "hero")
	require.True(t, ok)
	require.Equal(t, "x", alias)
}

func TestMergeAmbiguousArgsFails(t *testing.T) {
	a := query.Select("hero", gvalue.Bindings{{Name: "id", Value: gvalue.NewID("1")}}, nil)
	b := query.Select("hero", gvalue.Bindings{{Name: "id", Value: gvalue.NewID("2")}}, nil)
	merged := query.MergeQueries([]*query.Query{a, b})
	require.True(t, merged.IsFailure())
	require.Equal(t, "AmbiguousMerge", merged.Problems()[0].Kind)
}

func TestMergeDropsEmptyAndPassesThroughRest(t *testing.T) {
	other := query.Limit(1, query.Select("z", nil, nil))
	merged := query.MergeQueries([]*query.Query{query.Empty(), other})
	out, ok := merged.Value()
	require.True(t, ok)
	require.Equal(t, other.Render(), out.Render())
}

func TestMatchPossiblyRenamedSelect(t *testing.T) {
	sel := query.Select("a", nil, nil)
	_, alias, ok := query.MatchPossiblyRenamedSelect(sel)
	require.True(t, ok)
	require.Equal(t, "", alias)

	renamed := query.Rename("b", sel)
	_, alias, ok = query.MatchPossiblyRenamedSelect(renamed)
	require.True(t, ok)
	require.Equal(t, "b", alias)

	_, _, ok = query.MatchPossiblyRenamedSelect(query.Limit(1, sel))
	require.False(t, ok)
}
