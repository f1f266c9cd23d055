package elaborate

import (
	"github.com/quithub/qgraphql/internal/gvalue"
	"github.com/quithub/qgraphql/internal/query"
	"github.com/quithub/qgraphql/internal/result"
)

// phaseVariableBinding resolves every UntypedVariable argument value
// against the operation's declared variables and ctx.Variables, the
// caller-supplied values. A declared variable with no supplied value
// falls back to its default, or to Absent when it has none, so no Select
// argument carries a variable reference past this phase; Skip conditions
// are not touched here. Every undeclared variable found in the tree is
// reported, and the phase then fails, since nothing downstream can
// recover a reference to a variable that doesn't exist.
func phaseVariableBinding(ctx *Context, op *query.UntypedOperation) result.Result[*query.UntypedOperation] {
	defs := make(map[string]query.VarDef, len(op.Variables))
	for _, vd := range op.Variables {
		defs[vd.Name] = vd
	}

	var probs result.Problems
	root := walk(op.Root, func(q *query.Query) *query.Query {
		if q == nil || q.Kind != query.KindSelect || len(q.Args) == 0 {
			return q
		}
		args := make(gvalue.Bindings, len(q.Args))
		for i, b := range q.Args {
			args[i] = gvalue.Binding{Name: b.Name, Value: resolveValue(ctx, defs, b.Value, &probs)}
		}
		return query.Select(q.Name, args, q.Child)
	})

	if len(probs) > 0 {
		return result.Failure[*query.UntypedOperation](probs)
	}
	return result.Success(&query.UntypedOperation{
		Kind:      op.Kind,
		Name:      op.Name,
		Root:      root,
		Variables: op.Variables,
	})
}

// resolveValue resolves a variable reference anywhere in v — at the top
// level or nested inside a List/Object — against defs/ctx.Variables, and
// turns every UntypedEnum literal it meets into a typed Enum value. Every
// other scalar shape is returned unchanged.
func resolveValue(ctx *Context, defs map[string]query.VarDef, v gvalue.Value, probs *result.Problems) gvalue.Value {
	switch v.Kind {
	case gvalue.UntypedVariable:
		name := v.Str
		vd, ok := defs[name]
		if !ok {
			*probs = append(*probs, unknownVariable(name)...)
			return v
		}
		return resolveVariable(ctx, vd)
	case gvalue.UntypedEnum:
		return gvalue.NewEnum(v.Str)
	case gvalue.List:
		elems := make([]gvalue.Value, len(v.List))
		for i, e := range v.List {
			elems[i] = resolveValue(ctx, defs, e, probs)
		}
		return gvalue.NewList(elems...)
	case gvalue.Object:
		fields := make([]gvalue.Field, len(v.Fields))
		for i, f := range v.Fields {
			fields[i] = gvalue.Field{Name: f.Name, Value: resolveValue(ctx, defs, f.Value, probs)}
		}
		return gvalue.NewObject(fields...)
	default:
		return v
	}
}

func resolveVariable(ctx *Context, vd query.VarDef) gvalue.Value {
	if ctx != nil && ctx.Variables != nil {
		if v, ok := ctx.Variables[vd.Name]; ok {
			return v
		}
	}
	if vd.HasDefault {
		return vd.Default
	}
	return gvalue.NewAbsent()
}
