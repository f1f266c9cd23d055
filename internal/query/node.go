// Package query implements the plan-tree algebra: the compiled,
// typed representation of a GraphQL operation, plus the plan-rewriting
// utilities downstream interpreters rely on (merging, regrouping, path
// extraction, type-case partitioning).
//
// Query is represented as a single Kind-tagged struct with ~20 arms,
// following the same tagged-struct idiom schema.TypeRef and gvalue.Value
// use, rather than an interface implemented by twenty node types.
// Traversal is a single recursive switch per function over Kind, with no
// open recursion or virtual dispatch. The compiler does not check these
// switches for exhaustiveness.
package query

import (
	"github.com/google/uuid"

	"github.com/quithub/qgraphql/internal/gvalue"
	"github.com/quithub/qgraphql/internal/mapping"
	"github.com/quithub/qgraphql/internal/predicate"
	"github.com/quithub/qgraphql/internal/schema"
)

type Kind int

const (
	KindSelect Kind = iota
	KindGroup
	KindUnique
	KindFilter
	KindComponent
	KindEffect
	KindIntrospect
	KindEnvironment
	KindWrap
	KindRename
	KindUntypedNarrow
	KindNarrow
	KindSkip
	KindLimit
	KindOffset
	KindOrderBy
	KindCount
	KindTransformCursor
	KindSkipped
	KindEmpty
)

func (k Kind) String() string {
	switch k {
	case KindSelect:
		return "Select"
	case KindGroup:
		return "Group"
	case KindUnique:
		return "Unique"
	case KindFilter:
		return "Filter"
	case KindComponent:
		return "Component"
	case KindEffect:
		return "Effect"
	case KindIntrospect:
		return "Introspect"
	case KindEnvironment:
		return "Environment"
	case KindWrap:
		return "Wrap"
	case KindRename:
		return "Rename"
	case KindUntypedNarrow:
		return "UntypedNarrow"
	case KindNarrow:
		return "Narrow"
	case KindSkip:
		return "Skip"
	case KindLimit:
		return "Limit"
	case KindOffset:
		return "Offset"
	case KindOrderBy:
		return "OrderBy"
	case KindCount:
		return "Count"
	case KindTransformCursor:
		return "TransformCursor"
	case KindSkipped:
		return "Skipped"
	case KindEmpty:
		return "Empty"
	default:
		return "Unknown"
	}
}

// Join is the strategy for threading a cursor across a Component
// boundary. TrivialJoin (pass cursor through unchanged) is the default;
// named joins are opaque markers the runtime interpreter interprets.
type Join struct {
	Name string
}

var TrivialJoin = Join{Name: "TrivialJoin"}

// Env is an ordered stack of (name -> value) frames. Lookup walks from
// innermost outward; Extend pushes a new frame onto a cloned copy,
// leaving the original valid — environments are cloned on extension
// per the data model's lifecycle rule.
type Env struct {
	frames []map[string]gvalue.Value
}

func NewEnv() *Env { return &Env{} }

func (e *Env) Extend(name string, v gvalue.Value) *Env {
	frames := make([]map[string]gvalue.Value, len(e.frames), len(e.frames)+1)
	copy(frames, e.frames)
	frames = append(frames, map[string]gvalue.Value{name: v})
	return &Env{frames: frames}
}

func (e *Env) Lookup(name string) (gvalue.Value, bool) {
	for i := len(e.frames) - 1; i >= 0; i-- {
		if v, ok := e.frames[i][name]; ok {
			return v, true
		}
	}
	return gvalue.Value{}, false
}

// Query is a frozen plan-tree node. The smart constructors below enforce
// the structural invariants from the data model at construction time.
// The fields are exported, so a struct literal bypasses those checks.
type Query struct {
	Kind Kind

	// Select, Wrap, Rename, Count, UntypedNarrow
	Name string
	// Select
	Args gvalue.Bindings
	// Group
	Children []*Query
	// Select, Unique, Filter, Component, Effect, Introspect, Environment,
	// Wrap, Rename, UntypedNarrow, Narrow, Skip, Limit, Offset, OrderBy,
	// Count, TransformCursor share a single child.
	Child *Query

	// Filter, Skip
	Pred predicate.Predicate
	// Skip
	Sense bool

	// Component
	Mapping *mapping.ObjectMapping
	Join    Join
	// BoundaryID is a synthetic join key identifying this Component
	// crossing, stable for the lifetime of the compiled plan. A runtime
	// interpreter that fans a delegated sub-plan out to another backend
	// uses it to correlate the dispatched request with the cursor it
	// joins back against; the compiler itself never reads it.
	BoundaryID string

	// Effect — handler is an opaque EffectHandler[F]; Query itself is not
	// generic over F, so it is stored as any and type-asserted by callers
	// that know the concrete F.
	Handler any

	// Introspect
	Schema *schema.Schema

	// Environment
	Env *Env

	// Narrow
	Subtype *schema.TypeRef

	// Limit, Offset
	N int

	// OrderBy
	Selections []predicate.OrderSelection

	// TransformCursor
	Transform func(predicate.Cursor) (predicate.Cursor, error)
}

func Select(name string, args gvalue.Bindings, child *Query) *Query {
	if name == "" {
		panic("query: Select requires a non-empty name")
	}
	if child == nil {
		child = Empty()
	}
	return &Query{Kind: KindSelect, Name: name, Args: args, Child: child}
}

// Group builds a Group node from children, flattening any Group and
// dropping Empty children at construction time per the "Group(children):
// len>=2; no nested Group; no Empty element" invariant. Fewer than two
// surviving children collapses: zero -> Empty, one -> that child.
func Group(children ...*Query) *Query {
	flat := flattenGroupChildren(children)
	switch len(flat) {
	case 0:
		return Empty()
	case 1:
		return flat[0]
	default:
		return &Query{Kind: KindGroup, Children: flat}
	}
}

func flattenGroupChildren(children []*Query) []*Query {
	flat := make([]*Query, 0, len(children))
	for _, c := range children {
		if c == nil || c.Kind == KindEmpty {
			continue
		}
		if c.Kind == KindGroup {
			flat = append(flat, flattenGroupChildren(c.Children)...)
			continue
		}
		flat = append(flat, c)
	}
	return flat
}

func Unique(child *Query) *Query { return &Query{Kind: KindUnique, Child: child} }

func Filter(pred predicate.Predicate, child *Query) *Query {
	return &Query{Kind: KindFilter, Pred: pred, Child: child}
}

func Component(m *mapping.ObjectMapping, join Join, child *Query) *Query {
	return &Query{Kind: KindComponent, Mapping: m, Join: join, Child: child, BoundaryID: uuid.NewString()}
}

func Effect(handler any, child *Query) *Query {
	return &Query{Kind: KindEffect, Handler: handler, Child: child}
}

func Introspect(sch *schema.Schema, child *Query) *Query {
	return &Query{Kind: KindIntrospect, Schema: sch, Child: child}
}

func Environment(env *Env, child *Query) *Query {
	return &Query{Kind: KindEnvironment, Env: env, Child: child}
}

func Wrap(name string, child *Query) *Query {
	return &Query{Kind: KindWrap, Name: name, Child: child}
}

func Rename(name string, child *Query) *Query {
	return &Query{Kind: KindRename, Name: name, Child: child}
}

// UntypedNarrow is a pre-elaboration node; phase 4 rewrites it away into
// Narrow. It must never be reachable after a successful compile.
func UntypedNarrow(typeName string, child *Query) *Query {
	return &Query{Kind: KindUntypedNarrow, Name: typeName, Child: child}
}

func Narrow(subtype *schema.TypeRef, child *Query) *Query {
	return &Query{Kind: KindNarrow, Subtype: subtype, Child: child}
}

func Skip(sense bool, cond predicate.Term, child *Query) *Query {
	return &Query{Kind: KindSkip, Sense: sense, Pred: cond, Child: child}
}

func Limit(n int, child *Query) *Query {
	if n < 0 {
		panic("query: Limit requires n >= 0")
	}
	return &Query{Kind: KindLimit, N: n, Child: child}
}

func Offset(n int, child *Query) *Query {
	if n < 0 {
		panic("query: Offset requires n >= 0")
	}
	return &Query{Kind: KindOffset, N: n, Child: child}
}

func OrderBy(selections []predicate.OrderSelection, child *Query) *Query {
	if len(selections) == 0 {
		panic("query: OrderBy requires at least one selection")
	}
	return &Query{Kind: KindOrderBy, Selections: selections, Child: child}
}

func Count(name string, child *Query) *Query {
	return &Query{Kind: KindCount, Name: name, Child: child}
}

func TransformCursor(f func(predicate.Cursor) (predicate.Cursor, error), child *Query) *Query {
	return &Query{Kind: KindTransformCursor, Transform: f, Child: child}
}

var skipped = &Query{Kind: KindSkipped}
var empty = &Query{Kind: KindEmpty}

// Skipped is the sentinel placeholder for a suppressed subtree.
func Skipped() *Query { return skipped }

// Empty is the sentinel identity element under merge.
func Empty() *Query { return empty }

// Concat is `~`: composes two queries, flattening adjacent Groups.
// Unlike Group, Concat does not drop Empty operands — `~` leaves Empty
// in place and only MergeQueries filters it out, per the merge algebra.
func Concat(a, b *Query) *Query {
	children := flattenConcatChildren([]*Query{a, b})
	switch len(children) {
	case 0:
		return Empty()
	case 1:
		return children[0]
	default:
		return &Query{Kind: KindGroup, Children: children}
	}
}

func flattenConcatChildren(children []*Query) []*Query {
	flat := make([]*Query, 0, len(children))
	for _, c := range children {
		if c == nil {
			continue
		}
		if c.Kind == KindGroup {
			flat = append(flat, flattenConcatChildren(c.Children)...)
			continue
		}
		flat = append(flat, c)
	}
	return flat
}

func (q *Query) String() string { return q.Render() }
