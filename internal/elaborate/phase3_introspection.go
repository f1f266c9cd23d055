package elaborate

import (
	"github.com/quithub/qgraphql/internal/query"
	"github.com/quithub/qgraphql/internal/result"
	"github.com/quithub/qgraphql/internal/schema"
)

// phaseIntrospectionHoisting wraps any top-level selection rooted at
// __schema or __type in Introspect(schema, …): from that point on,
// schema metadata is the evaluation focus for the subtree rather than
// live data. Hoisting never fails — an absent __schema/__type
// selection simply leaves the tree untouched.
func phaseIntrospectionHoisting(ctx *Context, op *query.UntypedOperation) result.Result[*query.UntypedOperation] {
	entries := query.Ungroup(op.Root)
	hoisted := make([]*query.Query, len(entries))
	for i, e := range entries {
		hoisted[i] = hoistIntrospection(ctx.Schema, e)
	}
	next := &query.UntypedOperation{
		Kind:      op.Kind,
		Name:      op.Name,
		Root:      query.Group(hoisted...),
		Variables: op.Variables,
	}
	return result.Success(next)
}

func hoistIntrospection(sch *schema.Schema, q *query.Query) *query.Query {
	target := q
	if target.Kind == query.KindRename {
		target = target.Child
	}
	if target == nil || target.Kind != query.KindSelect || !schema.IsIntrospectionRoot(target.Name) {
		return q
	}
	return query.Introspect(sch, q)
}
