package elaborate

import (
	"github.com/quithub/qgraphql/internal/query"
	"github.com/quithub/qgraphql/internal/result"
)

// phaseMerge applies mergeQueries throughout the tree, not only at the
// root: mergeDeep recurses into every child-bearing node except
// Environment and TransformCursor first, then merges each Group's own
// children, so duplicate selections nested under a Select/Wrap/
// Component/etc. are unified just as much as top-level duplicates.
func phaseMerge(ctx *Context, op *query.UntypedOperation) result.Result[*query.UntypedOperation] {
	root, probs := mergeDeep(op.Root)
	next := &query.UntypedOperation{Kind: op.Kind, Name: op.Name, Root: root, Variables: op.Variables}
	return result.Warning(probs, next)
}

func mergeDeep(q *query.Query) (*query.Query, result.Problems) {
	if q == nil {
		return q, nil
	}
	switch q.Kind {
	case query.KindGroup:
		children := make([]*query.Query, len(q.Children))
		var probs result.Problems
		for i, c := range q.Children {
			mc, p := mergeDeep(c)
			children[i] = mc
			probs = append(probs, p...)
		}
		merged := query.MergeQueries(children)
		probs = append(probs, merged.Problems()...)
		v, ok := merged.Value()
		if !ok {
			return query.Group(children...), probs
		}
		return v, probs
	case query.KindSelect:
		child, probs := mergeDeep(q.Child)
		return query.Select(q.Name, q.Args, child), probs
	case query.KindRename:
		child, probs := mergeDeep(q.Child)
		return query.Rename(q.Name, child), probs
	case query.KindSkip:
		child, probs := mergeDeep(q.Child)
		return query.Skip(q.Sense, q.Pred, child), probs
	case query.KindUnique:
		child, probs := mergeDeep(q.Child)
		return query.Unique(child), probs
	case query.KindFilter:
		child, probs := mergeDeep(q.Child)
		return query.Filter(q.Pred, child), probs
	case query.KindComponent:
		child, probs := mergeDeep(q.Child)
		return query.Component(q.Mapping, q.Join, child), probs
	case query.KindEffect:
		child, probs := mergeDeep(q.Child)
		return query.Effect(q.Handler, child), probs
	case query.KindIntrospect:
		child, probs := mergeDeep(q.Child)
		return query.Introspect(q.Schema, child), probs
	case query.KindWrap:
		child, probs := mergeDeep(q.Child)
		return query.Wrap(q.Name, child), probs
	case query.KindNarrow:
		child, probs := mergeDeep(q.Child)
		return query.Narrow(q.Subtype, child), probs
	case query.KindLimit:
		child, probs := mergeDeep(q.Child)
		return query.Limit(q.N, child), probs
	case query.KindOffset:
		child, probs := mergeDeep(q.Child)
		return query.Offset(q.N, child), probs
	case query.KindOrderBy:
		child, probs := mergeDeep(q.Child)
		return query.OrderBy(q.Selections, child), probs
	case query.KindCount:
		child, probs := mergeDeep(q.Child)
		return query.Count(q.Name, child), probs
	// Environment and TransformCursor are open questions: mergeQueries
	// treats them as transparent for rootName/children/hasField but does
	// not merge through them, so their subtrees are left untouched here
	// too rather than recursed into.
	default:
		return q, nil
	}
}
