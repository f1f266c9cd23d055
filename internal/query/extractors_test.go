package query_test

import (
	"testing"

	"github.com/quithub/qgraphql/internal/predicate"
	"github.com/quithub/qgraphql/internal/query"
	"github.com/quithub/qgraphql/internal/schema"
	"github.com/stretchr/testify/require"
)

func TestTypeCasePartitionsBySubtype(t *testing.T) {
	human := schema.NamedType("Human")
	droid := schema.NamedType("Droid")

	q := query.Group(
		query.Select("id", nil, nil),
		query.Narrow(human, query.Select("homePlanet", nil, nil)),
		query.Narrow(droid, query.Select("primaryFunction", nil, nil)),
		query.Narrow(human, query.Select("name", nil, nil)),
	)

	def, narrows, ok := query.TypeCase(q)
	require.True(t, ok)
	require.True(t, query.HasField(def, "id"))
	require.Len(t, narrows, 2)

	var humanBody *query.Query
	for _, n := range narrows {
		if n.Subtype.GetNamedType() == "Human" {
			humanBody = n.Child
		}
	}
	require.NotNil(t, humanBody)
	require.True(t, query.HasField(humanBody, "homePlanet"))
	require.True(t, query.HasField(humanBody, "name"))
}

func TestTypeCaseNoNarrowsReportsFalse(t *testing.T) {
	q := query.Select("id", nil, nil)
	_, _, ok := query.TypeCase(q)
	require.False(t, ok)
}

func TestFilterOrderByOffsetLimitRoundTrip(t *testing.T) {
	child := query.Select("x", nil, nil)
	pred := predicate.Eql(predicate.Field("status"), predicate.Const("ACTIVE"))
	selections := []predicate.OrderSelection{{Term: predicate.Field("name"), Ascending: true}}

	built := query.BuildFilterOrderByOffsetLimit(query.FilterOrderByOffsetLimit{
		Limit:     intPtr(10),
		Offset:    intPtr(5),
		OrderBy:   selections,
		Filter:    pred,
		HasFilter: true,
		Child:     child,
	})

	matched := query.MatchFilterOrderByOffsetLimit(built)
	require.NotNil(t, matched.Limit)
	require.Equal(t, 10, *matched.Limit)
	require.NotNil(t, matched.Offset)
	require.Equal(t, 5, *matched.Offset)
	require.Len(t, matched.OrderBy, 1)
	require.True(t, matched.HasFilter)
	require.Equal(t, child.Render(), matched.Child.Render())
}

func TestMatchFilterOrderByOffsetLimitPartial(t *testing.T) {
	child := query.Select("x", nil, nil)
	q := query.Limit(3, child)
	matched := query.MatchFilterOrderByOffsetLimit(q)
	require.NotNil(t, matched.Limit)
	require.Nil(t, matched.Offset)
	require.False(t, matched.HasFilter)
	require.Equal(t, child.Render(), matched.Child.Render())
}

func intPtr(n int) *int { return &n }
