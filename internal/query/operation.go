package query

import (
	"github.com/quithub/qgraphql/internal/gvalue"
	"github.com/quithub/qgraphql/internal/schema"
)

// OperationKind tags the three kinds of operation a document can
// declare, mirroring language.Operation's three string constants with a
// closed Go type instead.
type OperationKind int

const (
	OperationQuery OperationKind = iota
	OperationMutation
	OperationSubscription
)

func (k OperationKind) String() string {
	switch k {
	case OperationMutation:
		return "Mutation"
	case OperationSubscription:
		return "Subscription"
	default:
		return "Query"
	}
}

// VarDef is an operation variable declaration, with its astType already
// resolved into a schema.TypeRef and its default (if any) carried as a
// pre-elaboration gvalue.Value. Before phase 1 runs, Default may still
// hold an Untyped* variant.
type VarDef struct {
	Name       string
	Type       *schema.TypeRef
	Default    gvalue.Value
	HasDefault bool
}

// UntypedOperation is what the parser (or any other frontend) hands to
// the elaborator: a root query node in which only pre-elaboration node
// kinds are reachable (Select/Group/UntypedNarrow/Skip/…, arguments
// carrying Untyped* gvalue variants), plus its declared variables.
type UntypedOperation struct {
	Kind      OperationKind
	Name      string
	Root      *Query
	Variables []VarDef
}

// Operation is the elaborator's successful output: a fully typed plan
// tree plus the root type it was elaborated against.
type Operation struct {
	Kind       OperationKind
	Name       string
	Root       *Query
	ResultType *schema.TypeRef
}
