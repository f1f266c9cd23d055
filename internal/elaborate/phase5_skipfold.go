package elaborate

import (
	"github.com/quithub/qgraphql/internal/query"
	"github.com/quithub/qgraphql/internal/result"
)

// phaseSkipIncludeFolding collapses every Skip node whose condition is
// a constant boolean into either its child (selection proceeds) or
// Skipped (selection suppressed). A variable-valued condition is left
// in place for the runtime interpreter to evaluate.
func phaseSkipIncludeFolding(ctx *Context, op *query.UntypedOperation) result.Result[*query.UntypedOperation] {
	root := walk(op.Root, func(q *query.Query) *query.Query {
		if q == nil || q.Kind != query.KindSkip {
			return q
		}
		raw, ok := q.Pred.IsConst()
		if !ok {
			return q
		}
		cond, _ := raw.(bool)
		if cond == q.Sense {
			return query.Skipped()
		}
		return q.Child
	})
	next := &query.UntypedOperation{Kind: op.Kind, Name: op.Name, Root: root, Variables: op.Variables}
	return result.Success(next)
}
