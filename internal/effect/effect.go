// Package effect defines the sole effectful seam between the compiler
// and an external scheduler: EffectHandler. The core is generic over an
// abstract effect context F (a task scheduler, a cancellation-aware
// future) without committing to any concrete concurrency primitive —
// a small interface the core calls through and never implements, generic
// where a concrete Runtime implementation would not need to be, because
// effect polymorphism is a requirement here a fixed Runtime type never had.
package effect

import (
	"context"

	"github.com/quithub/qgraphql/internal/predicate"
	"github.com/quithub/qgraphql/internal/query"
	"github.com/quithub/qgraphql/internal/result"
)

// Pair associates a Query with the Cursor its effectful evaluation
// produced.
type Pair struct {
	Query  *query.Query
	Cursor predicate.Cursor
}

// EffectHandler is the only point where the core yields to an external
// scheduler. Implementations own scheduling, batching, and
// cancellation; cancellation is cooperative — the handler observes it
// from ctx, the compiler itself has no cancellation points.
type EffectHandler[F any] interface {
	// RunEffects schedules queries for effectful evaluation and returns
	// F, an abstract handle the caller's scheduler understands — F
	// ultimately yields result.Result[[]Pair] once resolved, but how
	// that resolution happens (synchronous call, goroutine, RPC) is
	// entirely up to the implementation.
	RunEffects(ctx context.Context, queries []*query.Query) F
}

// SyncHandler is a trivial EffectHandler for effect contexts that are
// just a synchronous function call — F collapses to
// result.Result[[]Pair] itself. Useful for tests and for embedding the
// compiler in a caller that has no scheduler of its own.
type SyncHandler func(ctx context.Context, queries []*query.Query) result.Result[[]Pair]

func (h SyncHandler) RunEffects(ctx context.Context, queries []*query.Query) result.Result[[]Pair] {
	return h(ctx, queries)
}
