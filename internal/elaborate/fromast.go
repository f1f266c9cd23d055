package elaborate

import (
	"github.com/quithub/qgraphql/internal/gvalue"
	"github.com/quithub/qgraphql/internal/language"
	"github.com/quithub/qgraphql/internal/predicate"
	"github.com/quithub/qgraphql/internal/query"
	"github.com/quithub/qgraphql/internal/result"
	"github.com/quithub/qgraphql/internal/schema"
)

// FromDocument selects the operation named name from doc — or the
// document's sole operation when name is empty and there is exactly
// one — and converts it into an UntypedOperation: a root query node in
// which only pre-elaboration node kinds are reachable, ready for
// Compile. This is the boundary named in the external-interfaces
// section: the parser supplies an UntypedOperation, it never builds
// one of the elaborated node kinds itself.
func FromDocument(doc *language.QueryDocument, name string) result.Result[*query.UntypedOperation] {
	opDef := doc.Operations.ForName(name)
	if opDef == nil && name == "" && len(doc.Operations) == 1 {
		opDef = doc.Operations[0]
	}
	if opDef == nil {
		return result.Failure[*query.UntypedOperation](noOperations("at least one operation required"))
	}

	kind := query.OperationQuery
	switch opDef.Operation {
	case language.Mutation:
		kind = query.OperationMutation
	case language.Subscription:
		kind = query.OperationSubscription
	}

	vars := make([]query.VarDef, 0, len(opDef.VariableDefinitions))
	for _, vd := range opDef.VariableDefinitions {
		v := query.VarDef{Name: vd.Variable, Type: fromASTType(vd.Type)}
		if vd.DefaultValue != nil {
			v.Default = gvalue.FromAST(vd.DefaultValue)
			v.HasDefault = true
		}
		vars = append(vars, v)
	}

	return result.Success(&query.UntypedOperation{
		Kind:      kind,
		Name:      opDef.Name,
		Root:      fromSelectionSet(opDef.SelectionSet),
		Variables: vars,
	})
}

func fromASTType(t *language.Type) *schema.TypeRef {
	if t == nil {
		return nil
	}
	if t.NonNull {
		unwrapped := *t
		unwrapped.NonNull = false
		return schema.NonNullType(fromASTType(&unwrapped))
	}
	if t.Elem != nil {
		return schema.ListType(fromASTType(t.Elem))
	}
	return schema.NamedType(t.NamedType)
}

func fromSelectionSet(set language.SelectionSet) *query.Query {
	children := make([]*query.Query, 0, len(set))
	for _, sel := range set {
		children = append(children, fromSelection(sel))
	}
	return query.Group(children...)
}

func fromSelection(sel language.Selection) *query.Query {
	switch s := sel.(type) {
	case *language.Field:
		return fromField(s)
	case *language.InlineFragment:
		body := fromSelectionSet(s.SelectionSet)
		q := body
		if s.TypeCondition != "" {
			q = query.UntypedNarrow(s.TypeCondition, body)
		}
		return wrapSkipInclude(s.Directives, q)
	case *language.FragmentSpread:
		frag := s.Definition
		body := fromSelectionSet(frag.SelectionSet)
		q := query.UntypedNarrow(frag.TypeCondition, body)
		return wrapSkipInclude(s.Directives, q)
	default:
		return query.Empty()
	}
}

func fromField(f *language.Field) *query.Query {
	args := make(gvalue.Bindings, 0, len(f.Arguments))
	for _, a := range f.Arguments {
		args = append(args, gvalue.Binding{Name: a.Name, Value: gvalue.FromAST(a.Value)})
	}
	var child *query.Query
	if len(f.SelectionSet) > 0 {
		child = fromSelectionSet(f.SelectionSet)
	}
	sel := query.Select(f.Name, args, child)
	var q *query.Query = sel
	if f.Alias != "" && f.Alias != f.Name {
		q = query.Rename(f.Alias, sel)
	}
	return wrapSkipInclude(f.Directives, q)
}

// wrapSkipInclude wraps q in Skip nodes for @skip/@include, in the
// order gqlparser's validator guarantees them unambiguous (both may be
// present; @skip takes precedence when both conditions are true, which
// falls out naturally from applying @skip last so it wraps outermost).
func wrapSkipInclude(dirs language.DirectiveList, q *query.Query) *query.Query {
	if include := dirs.ForName("include"); include != nil {
		if cond, ok := skipCond(include); ok {
			q = query.Skip(false, cond, q)
		}
	}
	if skip := dirs.ForName("skip"); skip != nil {
		if cond, ok := skipCond(skip); ok {
			q = query.Skip(true, cond, q)
		}
	}
	return q
}

func skipCond(dir *language.Directive) (predicate.Term, bool) {
	arg := dir.Arguments.ForName("if")
	if arg == nil {
		return predicate.Term{}, false
	}
	v := gvalue.FromAST(arg.Value)
	switch v.Kind {
	case gvalue.Boolean:
		return predicate.Const(v.Bool), true
	case gvalue.Variable, gvalue.UntypedVariable:
		return predicate.Field("$" + v.Str), true
	default:
		return predicate.Term{}, false
	}
}
