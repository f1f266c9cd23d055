package query_test

import (
	"testing"

	"github.com/quithub/qgraphql/internal/query"
	"github.com/quithub/qgraphql/internal/result"
	"github.com/stretchr/testify/require"
)

func TestUngroupFlattensAndHandlesEmpty(t *testing.T) {
	require.Nil(t, query.Ungroup(query.Empty()))
	sel := query.Select("a", nil, nil)
	require.Equal(t, []*query.Query{sel}, query.Ungroup(sel))

	g := query.Group(sel, query.Select("b", nil, nil))
	require.Len(t, query.Ungroup(g), 2)
}

func TestChildrenPeelsTransparentWrappers(t *testing.T) {
	inner := query.Select("a", nil, nil)
	wrapped := query.Environment(query.NewEnv(), query.Select("root", nil, inner))
	kids := query.Children(wrapped)
	require.Len(t, kids, 1)
	require.Equal(t, "a", kids[0].Name)
}

func TestHasFieldAndFieldAlias(t *testing.T) {
	q := query.Group(
		query.Select("name", nil, nil),
		query.Rename("aka", query.Select("nickname", nil, nil)),
	)
	require.True(t, query.HasField(q, "name"))
	require.True(t, query.HasField(q, "nickname"))
	require.False(t, query.HasField(q, "missing"))

	alias, ok := query.FieldAlias(q, "nickname")
	require.True(t, ok)
	require.Equal(t, "aka", alias)

	_, ok = query.FieldAlias(q, "name")
	require.False(t, ok)
}

func TestRootNameSingleSelection(t *testing.T) {
	q := query.Rename("heroAlias", query.Select("hero", nil, nil))
	name, alias, ok := query.RootName(q)
	require.True(t, ok)
	require.Equal(t, "hero", name)
	require.Equal(t, "heroAlias", alias)
}

func TestRootNameFailsOnMultipleEntries(t *testing.T) {
	q := query.Group(query.Select("a", nil, nil), query.Select("b", nil, nil))
	_, _, ok := query.RootName(q)
	require.False(t, ok)
}

func TestRenameRoot(t *testing.T) {
	q := query.Select("hero", nil, nil)
	renamed, ok := query.RenameRoot(q, "protagonist")
	require.True(t, ok)
	name, alias, ok := query.RootName(renamed)
	require.True(t, ok)
	require.Equal(t, "hero", name)
	require.Equal(t, "protagonist", alias)
}

func TestMapFieldsAppliesInOrderAndPropagatesFailure(t *testing.T) {
	q := query.Group(query.Select("a", nil, nil), query.Select("b", nil, nil))
	renamed := query.MapFields(q, func(e *query.Query) result.Result[*query.Query] {
		return result.Success(query.Rename("x_"+e.Name, e))
	})
	out, ok := renamed.Value()
	require.True(t, ok)
	require.True(t, query.HasField(out, "a"))
	alias, ok := query.FieldAlias(out, "a")
	require.True(t, ok)
	require.Equal(t, "x_a", alias)

	failed := query.MapFields(q, func(e *query.Query) result.Result[*query.Query] {
		return result.Failure[*query.Query](result.Problems{{Kind: "boom", Message: "nope"}})
	})
	require.True(t, failed.IsFailure())
}

func TestMkPathQuerySharesPrefixes(t *testing.T) {
	q := query.MkPathQuery([][]string{
		{"a", "b"},
		{"a", "c"},
		{"d"},
	})
	require.True(t, query.HasField(q, "a"))
	require.True(t, query.HasField(q, "d"))
	entries := query.Ungroup(q)
	require.Len(t, entries, 2)
}
