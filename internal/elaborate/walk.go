package elaborate

import "github.com/quithub/qgraphql/internal/query"

// walk rebuilds q bottom-up: every child is walked and rebuilt first,
// then f is applied to the node with its rebuilt children already in
// place. Phases that rewrite node shapes without needing top-down type
// context (variable binding, type-refinement normalization, skip/include
// folding) share this single traversal instead of each hand-rolling
// their own recursive switch; phase 2's per-type Select elaboration
// cannot use it, since it must know a Select's parent type before
// descending into its child.
func walk(q *query.Query, f func(*query.Query) *query.Query) *query.Query {
	if q == nil {
		return f(nil)
	}
	switch q.Kind {
	case query.KindGroup:
		children := make([]*query.Query, len(q.Children))
		for i, c := range q.Children {
			children[i] = walk(c, f)
		}
		return f(query.Group(children...))
	case query.KindSelect:
		child := walk(q.Child, f)
		return f(query.Select(q.Name, q.Args, child))
	case query.KindUnique:
		return f(query.Unique(walk(q.Child, f)))
	case query.KindFilter:
		return f(query.Filter(q.Pred, walk(q.Child, f)))
	case query.KindComponent:
		return f(query.Component(q.Mapping, q.Join, walk(q.Child, f)))
	case query.KindEffect:
		return f(query.Effect(q.Handler, walk(q.Child, f)))
	case query.KindIntrospect:
		return f(query.Introspect(q.Schema, walk(q.Child, f)))
	case query.KindEnvironment:
		return f(query.Environment(q.Env, walk(q.Child, f)))
	case query.KindWrap:
		return f(query.Wrap(q.Name, walk(q.Child, f)))
	case query.KindRename:
		return f(query.Rename(q.Name, walk(q.Child, f)))
	case query.KindUntypedNarrow:
		return f(query.UntypedNarrow(q.Name, walk(q.Child, f)))
	case query.KindNarrow:
		return f(query.Narrow(q.Subtype, walk(q.Child, f)))
	case query.KindSkip:
		return f(query.Skip(q.Sense, q.Pred, walk(q.Child, f)))
	case query.KindLimit:
		return f(query.Limit(q.N, walk(q.Child, f)))
	case query.KindOffset:
		return f(query.Offset(q.N, walk(q.Child, f)))
	case query.KindOrderBy:
		return f(query.OrderBy(q.Selections, walk(q.Child, f)))
	case query.KindCount:
		return f(query.Count(q.Name, walk(q.Child, f)))
	case query.KindTransformCursor:
		return f(query.TransformCursor(q.Transform, walk(q.Child, f)))
	case query.KindSkipped, query.KindEmpty:
		return f(q)
	default:
		return f(q)
	}
}
