package elaborate

import (
	"github.com/quithub/qgraphql/internal/gvalue"
	"github.com/quithub/qgraphql/internal/query"
	"github.com/quithub/qgraphql/internal/result"
	"github.com/quithub/qgraphql/internal/schema"
)

// phaseSelectElaboration walks op.Root top-down, starting at the root
// type for op.Kind, checking each Select against the schema and
// consulting ctx.Elaborator for per-type rewriting. Unlike walk, this
// cannot be a generic bottom-up rewrite: a Select's child must be
// checked against the field's own resolved type, which is only known
// once this node's own checks have passed — the parent type threads
// top-down, not bottom-up.
func phaseSelectElaboration(ctx *Context, op *query.UntypedOperation) result.Result[*query.UntypedOperation] {
	rootType := rootTypeName(ctx.Schema, op.Kind)
	root, probs := elaborateNode(ctx, op.Root, rootType)
	next := &query.UntypedOperation{Kind: op.Kind, Name: op.Name, Root: root, Variables: op.Variables}
	return result.Warning(probs, next)
}

func rootTypeName(sch *schema.Schema, kind query.OperationKind) string {
	switch kind {
	case query.OperationMutation:
		return sch.RootOperation(schema.RootMutation)
	case query.OperationSubscription:
		return sch.RootOperation(schema.RootSubscription)
	default:
		return sch.RootOperation(schema.RootQuery)
	}
}

// elaborateNode dispatches on q's pre-phase-2 reachable kind. Only
// Group, Select, Rename, Skip, UntypedNarrow and Empty can appear here:
// phases 3-8 introduce every other kind.
func elaborateNode(ctx *Context, q *query.Query, parentType string) (*query.Query, result.Problems) {
	if q == nil {
		return q, nil
	}
	switch q.Kind {
	case query.KindGroup:
		children := make([]*query.Query, len(q.Children))
		var probs result.Problems
		for i, c := range q.Children {
			ec, p := elaborateNode(ctx, c, parentType)
			children[i] = ec
			probs = append(probs, p...)
		}
		return query.Group(children...), probs
	case query.KindRename:
		child, probs := elaborateNode(ctx, q.Child, parentType)
		return query.Rename(q.Name, child), probs
	case query.KindSkip:
		child, probs := elaborateNode(ctx, q.Child, parentType)
		return query.Skip(q.Sense, q.Pred, child), probs
	case query.KindUntypedNarrow:
		narrowType := parentType
		var probs result.Problems
		if _, ok := ctx.Schema.LookupType(q.Name); ok {
			narrowType = q.Name
		} else {
			probs = append(probs, unknownType(q.Name)...)
		}
		child, cp := elaborateNode(ctx, q.Child, narrowType)
		probs = append(probs, cp...)
		return query.UntypedNarrow(q.Name, child), probs
	case query.KindSelect:
		return elaborateSelect(ctx, q, parentType)
	case query.KindEmpty:
		return q, nil
	default:
		return q, nil
	}
}

func elaborateSelect(ctx *Context, sel *query.Query, parentType string) (*query.Query, result.Problems) {
	var probs result.Problems

	fieldType, ok := ctx.Schema.FieldType(parentType, sel.Name)
	if !ok {
		probs = append(probs, unknownField(parentType, sel.Name)...)
		return sel, probs
	}

	declared, _ := ctx.Schema.FieldArguments(parentType, sel.Name)
	for _, b := range sel.Args {
		d, ok := findInputValue(declared, b.Name)
		if !ok {
			probs = append(probs, unknownArgument(sel.Name, b.Name)...)
			continue
		}
		probs = append(probs, coercionProblems(d.Type, b.Value)...)
	}
	for _, d := range declared {
		if !d.Type.IsNonNull() || d.DefaultValue != nil {
			continue
		}
		v, has := sel.Args.Get(d.Name)
		if !has || v.Kind == gvalue.Absent || v.Kind == gvalue.Null {
			probs = append(probs, missingRequired(d.Name)...)
		}
	}

	childType := fieldType.GetNamedType()
	isLeaf := ctx.Schema.IsLeaf(childType)
	isEmptyChild := sel.Child == nil || sel.Child.Kind == query.KindEmpty
	switch {
	case isLeaf && !isEmptyChild:
		probs = append(probs, leafSubselection(sel.Name, childType)...)
	case !isLeaf && isEmptyChild:
		probs = append(probs, nonLeafSubselection(sel.Name, childType)...)
	}

	child, cp := elaborateNode(ctx, sel.Child, childType)
	probs = append(probs, cp...)
	rebuilt := query.Select(sel.Name, sel.Args, child)

	handler, ok := ctx.Elaborator.lookup(parentType)
	if !ok {
		return rebuilt, probs
	}
	handled := handler(rebuilt, fieldType)
	probs = append(probs, handled.Problems()...)
	if v, ok := handled.Value(); ok {
		return v, probs
	}
	return rebuilt, probs
}

func findInputValue(declared []*schema.InputValue, name string) (*schema.InputValue, bool) {
	for _, d := range declared {
		if d.Name == name {
			return d, true
		}
	}
	return nil, false
}

// coercionProblems checks a literal argument value against the
// built-in scalars' shape. List, Object, Enum and custom scalar values
// are left to the per-type handler and runtime, which are better
// placed to coerce them; a variable reference has already been
// resolved to a concrete value by phase 1, so it is checked the same
// as any literal.
func coercionProblems(declared *schema.TypeRef, v gvalue.Value) result.Problems {
	if declared == nil || declared.IsList() {
		return nil
	}
	switch v.Kind {
	case gvalue.Null, gvalue.Absent, gvalue.List, gvalue.Object, gvalue.Enum, gvalue.UntypedEnum:
		return nil
	}
	named := declared.GetNamedType()
	switch named {
	case "Int":
		if v.Kind != gvalue.Int {
			return typeMismatch("Int", v.Kind.String())
		}
	case "Float":
		if v.Kind != gvalue.Float && v.Kind != gvalue.Int {
			return typeMismatch("Float", v.Kind.String())
		}
	case "String":
		if v.Kind != gvalue.String {
			return typeMismatch("String", v.Kind.String())
		}
	case "Boolean":
		if v.Kind != gvalue.Boolean {
			return typeMismatch("Boolean", v.Kind.String())
		}
	case "ID":
		if v.Kind != gvalue.ID && v.Kind != gvalue.String && v.Kind != gvalue.Int {
			return typeMismatch("ID", v.Kind.String())
		}
	}
	return nil
}
