package elaborate

import (
	"github.com/quithub/qgraphql/internal/query"
	"github.com/quithub/qgraphql/internal/result"
)

// phaseValidation is the final read-only pass checking the structural
// invariants from the data model (P4/P5): no Group directly containing
// a Group or an Empty, no pre-elaboration node kind reachable, no
// untyped argument value left unresolved.
func phaseValidation(ctx *Context, op *query.UntypedOperation) result.Result[*query.UntypedOperation] {
	var probs result.Problems
	validateNode(op.Root, &probs)
	return result.Warning(probs, op)
}

func validateNode(q *query.Query, probs *result.Problems) {
	if q == nil {
		return
	}
	switch q.Kind {
	case query.KindGroup:
		for _, c := range q.Children {
			if c.Kind == query.KindGroup {
				*probs = append(*probs, internalInvariant("nested Group survived rewriting")...)
			}
			if c.Kind == query.KindEmpty {
				*probs = append(*probs, internalInvariant("Empty element survived inside Group")...)
			}
			validateNode(c, probs)
		}
	case query.KindUntypedNarrow:
		*probs = append(*probs, internalInvariant("UntypedNarrow node survived elaboration")...)
		validateNode(q.Child, probs)
	case query.KindSelect:
		for _, b := range q.Args {
			if b.Value.IsUntyped() {
				*probs = append(*probs, internalInvariant("untyped argument value survived elaboration for "+b.Name)...)
			}
		}
		validateNode(q.Child, probs)
	default:
		validateNode(q.Child, probs)
	}
}
