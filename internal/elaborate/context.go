// Package elaborate implements the multi-phase elaborator pipeline:
// the schema-directed rewrite that turns an UntypedOperation into a
// typed Operation, or an accumulated failure. Each phase is a pure
// function over (*Context, *query.UntypedOperation), chained by
// Compile in pipeline.go — the same "named, ordered private methods
// called in sequence from one orchestrating function" shape the
// teacher's ir/build.go uses for its own multi-pass builder.
package elaborate

import (
	"github.com/quithub/qgraphql/internal/gvalue"
	"github.com/quithub/qgraphql/internal/mapping"
	"github.com/quithub/qgraphql/internal/query"
	"github.com/quithub/qgraphql/internal/result"
	"github.com/quithub/qgraphql/internal/schema"
)

// SelectHandler performs per-type, domain-specific rewriting of a
// Select node once phase 2's core structural checks — field existence,
// argument validation, leaf/non-leaf shape — have already passed. A
// handler typically introduces a Unique(Filter(...)) wrapper around an
// id-keyed lookup; it receives the already-checked Select and its
// resolved field type.
type SelectHandler func(sel *query.Query, fieldType *schema.TypeRef) result.Result[*query.Query]

// SelectElaborator is the per-type dispatch table phase 2 consults,
// keyed by the nominal name of the Select's parent type. Lookup falls
// back to an identity rewrite when a type has no registered handler.
type SelectElaborator struct {
	handlers map[string]SelectHandler
}

func NewSelectElaborator() *SelectElaborator {
	return &SelectElaborator{handlers: map[string]SelectHandler{}}
}

// On registers h for typeName and returns the elaborator, so handlers
// compose by chaining: NewSelectElaborator().On("Query", a).On("Mutation", b).
func (e *SelectElaborator) On(typeName string, h SelectHandler) *SelectElaborator {
	e.handlers[typeName] = h
	return e
}

func (e *SelectElaborator) lookup(typeName string) (SelectHandler, bool) {
	if e == nil {
		return nil, false
	}
	h, ok := e.handlers[typeName]
	return h, ok
}

// Context carries the per-compile configuration threaded through all
// eight phases.
type Context struct {
	// Schema is consulted by every phase that resolves names.
	Schema *schema.Schema
	// Elaborator is phase 2's per-type dispatch table; nil is
	// equivalent to an elaborator with no registered handlers.
	Elaborator *SelectElaborator
	// Mappings declares, per object type name, where its fields
	// resolve; phase 6 consults Delegate entries to insert Component
	// boundaries. A type absent from Mappings has no delegated fields.
	Mappings map[string]*mapping.ObjectMapping
	// Variables holds the user-supplied values for the operation's
	// declared variables, keyed by name without the leading "$".
	Variables map[string]gvalue.Value
	// PhaseObserver, when set, is called after every phase of Compile
	// runs, naming the phase and any problems it accumulated. It lets a
	// caller (internal/server, the CLI) emit per-phase telemetry
	// without this package depending on an event bus itself.
	PhaseObserver func(phase string, problems result.Problems)
}

func (c *Context) mappingFor(typeName string) (*mapping.ObjectMapping, bool) {
	if c == nil || c.Mappings == nil {
		return nil, false
	}
	m, ok := c.Mappings[typeName]
	return m, ok
}

func (c *Context) notifyPhase(phase string, problems result.Problems) {
	if c == nil || c.PhaseObserver == nil {
		return
	}
	c.PhaseObserver(phase, problems)
}
