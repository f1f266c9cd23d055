package elaborate

import (
	"github.com/quithub/qgraphql/internal/mapping"
	"github.com/quithub/qgraphql/internal/query"
	"github.com/quithub/qgraphql/internal/result"
)

// phaseComponentElaboration inserts Wrap(name, Component(other, join,
// child)) boundaries around every field whose owning type's mapping
// declares it as a Delegate. It short-circuits on the first problem:
// a field mapping inconsistent with the already-elaborated tree (an
// InternalInvariant) means the rest of the tree cannot be trusted
// either, since component boundaries determine where the runtime
// interpreter's cursor changes backend.
func phaseComponentElaboration(ctx *Context, op *query.UntypedOperation) result.Result[*query.UntypedOperation] {
	rootType := rootTypeName(ctx.Schema, op.Kind)
	root, probs := insertComponents(ctx, op.Root, rootType)
	if len(probs) > 0 {
		return result.Failure[*query.UntypedOperation](probs)
	}
	next := &query.UntypedOperation{Kind: op.Kind, Name: op.Name, Root: root, Variables: op.Variables}
	return result.Success(next)
}

func insertComponents(ctx *Context, q *query.Query, parentType string) (*query.Query, result.Problems) {
	if q == nil {
		return q, nil
	}
	switch q.Kind {
	case query.KindGroup:
		children := make([]*query.Query, len(q.Children))
		var probs result.Problems
		for i, c := range q.Children {
			ic, p := insertComponents(ctx, c, parentType)
			children[i] = ic
			probs = append(probs, p...)
		}
		return query.Group(children...), probs
	case query.KindRename:
		child, probs := insertComponents(ctx, q.Child, parentType)
		return query.Rename(q.Name, child), probs
	case query.KindSkip:
		child, probs := insertComponents(ctx, q.Child, parentType)
		return query.Skip(q.Sense, q.Pred, child), probs
	case query.KindNarrow:
		child, probs := insertComponents(ctx, q.Child, q.Subtype.GetNamedType())
		return query.Narrow(q.Subtype, child), probs
	case query.KindIntrospect:
		// introspection subtrees resolve against schema metadata, never
		// against a mapped backend, and so never cross a component boundary.
		return q, nil
	case query.KindSelect:
		return insertComponentSelect(ctx, q, parentType)
	default:
		return q, nil
	}
}

func insertComponentSelect(ctx *Context, sel *query.Query, parentType string) (*query.Query, result.Problems) {
	childType := ""
	if ft, ok := ctx.Schema.FieldType(parentType, sel.Name); ok {
		childType = ft.GetNamedType()
	}
	child, probs := insertComponents(ctx, sel.Child, childType)
	rebuilt := query.Select(sel.Name, sel.Args, child)

	m, ok := ctx.mappingFor(parentType)
	if !ok {
		return rebuilt, probs
	}
	fm, ok := m.Lookup(sel.Name)
	if !ok {
		return rebuilt, probs
	}
	delegate, ok := fm.(mapping.Delegate)
	if !ok {
		return rebuilt, probs
	}
	return query.Wrap(sel.Name, query.Component(delegate.Other, query.TrivialJoin, rebuilt)), probs
}
