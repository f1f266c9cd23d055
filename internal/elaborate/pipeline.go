package elaborate

import (
	"github.com/quithub/qgraphql/internal/query"
	"github.com/quithub/qgraphql/internal/result"
	"github.com/quithub/qgraphql/internal/schema"
)

// Compile runs the eight elaboration phases over op in order, chained
// through FlatMap so phases 2-5 and 7-8 keep accumulating problems
// even once one of them has found something wrong, while phases 1 and
// 6 short-circuit the whole chain. Compile's own contract is binary —
// Success(Operation) or Failure(problems) — so any Warning the chain
// is still carrying once phase 8 completes is turned into a Failure
// here: partial results never escape the elaborator.
func Compile(ctx *Context, op *query.UntypedOperation) result.Result[*query.Operation] {
	phases := []struct {
		name string
		run  func(*Context, *query.UntypedOperation) result.Result[*query.UntypedOperation]
	}{
		{"variable-binding", phaseVariableBinding},
		{"select-elaboration", phaseSelectElaboration},
		{"introspection-hoisting", phaseIntrospectionHoisting},
		{"type-refinement", phaseTypeRefinement},
		{"skip-include-folding", phaseSkipIncludeFolding},
		{"component-elaboration", phaseComponentElaboration},
		{"merge", phaseMerge},
		{"validation", phaseValidation},
	}

	chained := result.Success(op)
	for _, p := range phases {
		chained = result.FlatMap(chained, func(o *query.UntypedOperation) result.Result[*query.UntypedOperation] {
			next := p.run(ctx, o)
			ctx.notifyPhase(p.name, next.Problems())
			return next
		})
		if chained.IsFailure() {
			break
		}
	}

	if chained.IsFailure() {
		return result.Failure[*query.Operation](chained.Problems())
	}
	final, _ := chained.Value()
	op2 := &query.Operation{
		Kind:       final.Kind,
		Name:       final.Name,
		Root:       final.Root,
		ResultType: schema.NamedType(rootTypeName(ctx.Schema, final.Kind)),
	}
	if chained.IsWarning() {
		return result.Failure[*query.Operation](chained.Problems())
	}
	return result.Success(op2)
}
