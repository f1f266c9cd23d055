package query_test

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/quithub/qgraphql/internal/gvalue"
	"github.com/quithub/qgraphql/internal/predicate"
	"github.com/quithub/qgraphql/internal/query"
	"github.com/quithub/qgraphql/internal/schema"
)

// TestRenderGoldenFixtures checks built-by-hand plan trees against
// checked-in testdata/*.txt snapshots of their rendered form, the same
// snapshot-vs-fixture convention used elsewhere in this codebase for
// build-time artifacts, applied here to the plan-tree algebra.
func TestRenderGoldenFixtures(t *testing.T) {
	for _, tc := range []struct {
		name     string
		snapshot string
		build    func() *query.Query
	}{
		{
			name:     "select_unique_filter",
			snapshot: "testdata/select_unique_filter.txt",
			build: func() *query.Query {
				args := gvalue.Bindings{{Name: "id", Value: gvalue.NewID("1000")}}
				return query.Select("character", args,
					query.Unique(query.Filter(predicate.Field("$eq"), query.Select("name", nil, nil))))
			},
		},
		{
			name:     "group_limit_offset_count",
			snapshot: "testdata/group_limit_offset_count.txt",
			build: func() *query.Query {
				return query.Group(
					query.Limit(10, query.Offset(5, query.Count("total", query.Select("x", nil, nil)))),
					query.Select("y", nil, nil),
				)
			},
		},
		{
			name:     "narrow_and_rename",
			snapshot: "testdata/narrow_and_rename.txt",
			build: func() *query.Query {
				return query.Narrow(schema.NamedType("Robot"), query.Rename("alias", query.Select("field", nil, nil)))
			},
		},
		{
			name:     "skip_include_env",
			snapshot: "testdata/skip_include_env.txt",
			build: func() *query.Query {
				cond := predicate.Field("$skipIt")
				return query.Group(
					query.Skip(true, cond, query.Select("x", nil, nil)),
					query.Environment(query.NewEnv(), query.Select("y", nil, nil)),
				)
			},
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			got := tc.build().Render()
			want, err := os.ReadFile(tc.snapshot)
			require.NoError(t, err)
			require.Equal(t, string(want), got)
		})
	}
}
