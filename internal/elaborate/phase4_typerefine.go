package elaborate

import (
	"github.com/quithub/qgraphql/internal/query"
	"github.com/quithub/qgraphql/internal/result"
	"github.com/quithub/qgraphql/internal/schema"
)

// phaseTypeRefinement rewrites every UntypedNarrow(typeName, child) into
// Narrow(schema.LookupType(typeName), child); an unresolvable type name
// accumulates an UnknownType problem and the narrow degrades to its
// bare child so the rest of the tree can still be checked.
func phaseTypeRefinement(ctx *Context, op *query.UntypedOperation) result.Result[*query.UntypedOperation] {
	var probs result.Problems
	root := walk(op.Root, func(q *query.Query) *query.Query {
		if q == nil || q.Kind != query.KindUntypedNarrow {
			return q
		}
		if _, ok := ctx.Schema.LookupType(q.Name); !ok {
			probs = append(probs, unknownType(q.Name)...)
			return q.Child
		}
		return query.Narrow(schema.NamedType(q.Name), q.Child)
	})
	next := &query.UntypedOperation{Kind: op.Kind, Name: op.Name, Root: root, Variables: op.Variables}
	return result.Warning(probs, next)
}
