// Package qgraphql is the compiler's external entry point: parse GraphQL
// operation text, run it through the elaborator pipeline, and hand back
// either a typed plan tree or the accumulated list of problems. Nothing
// under internal/ is reachable from outside this module — this file is
// the one door in.
package qgraphql

import (
	"fmt"
	"strings"

	"github.com/vektah/gqlparser/v2/gqlerror"

	"github.com/quithub/qgraphql/internal/elaborate"
	"github.com/quithub/qgraphql/internal/language"
	"github.com/quithub/qgraphql/internal/query"
	"github.com/quithub/qgraphql/internal/result"
	"github.com/quithub/qgraphql/internal/schema"
)

// Compile parses text as a GraphQL document, selects the operation
// named operationName (or the document's sole operation when
// operationName is empty), and elaborates it against ctx. A syntax
// error short-circuits with a single ParseError problem carrying a
// caret-pointed snippet; everything past parsing is elaborate.Compile's
// contract.
func Compile(ctx *elaborate.Context, text, operationName string) result.Result[*query.Operation] {
	doc, err := language.ParseQuery(text)
	if err != nil {
		return result.Failure[*query.Operation](parseErrorProblems(text, err))
	}
	untyped := elaborate.FromDocument(doc, operationName)
	if untyped.IsFailure() {
		return result.Failure[*query.Operation](untyped.Problems())
	}
	op, _ := untyped.Value()
	return elaborate.Compile(withIntrospection(ctx), op)
}

// CompileOperation elaborates an already-parsed operation, for callers
// that build an UntypedOperation themselves (a federation gateway
// splicing fragments across services, say) rather than starting from
// source text.
func CompileOperation(ctx *elaborate.Context, op *query.UntypedOperation) result.Result[*query.Operation] {
	return elaborate.Compile(withIntrospection(ctx), op)
}

// withIntrospection returns ctx, extending its Schema with the
// __schema/__type root fields and introspection types first if the
// schema doesn't already carry them. This is the one place every
// documented entry point (text and pre-parsed) funnels through, so
// phase 3's introspection hoisting always has a __schema/__type root to
// recognize regardless of how the caller built its schema.
func withIntrospection(ctx *elaborate.Context) *elaborate.Context {
	if ctx == nil || ctx.Schema == nil {
		return ctx
	}
	if _, ok := ctx.Schema.FieldType(ctx.Schema.RootOperation(schema.RootQuery), "__schema"); ok {
		return ctx
	}
	extended := *ctx
	extended.Schema = ctx.Schema.WithIntrospection()
	return &extended
}

func parseErrorProblems(text string, err error) result.Problems {
	gerr, ok := err.(*gqlerror.Error)
	if !ok || len(gerr.Locations) == 0 {
		return result.Problems{{Kind: "ParseError", Message: err.Error()}}
	}
	loc := gerr.Locations[0]
	return result.Problems{{
		Kind:    "ParseError",
		Message: formatParseError(text, loc.Line, loc.Column, gerr.Message),
		Line:    loc.Line,
		Column:  loc.Column,
	}}
}

func formatParseError(text string, line, column int, message string) string {
	lines := strings.Split(text, "\n")
	snippet := ""
	if line-1 >= 0 && line-1 < len(lines) {
		snippet = lines[line-1]
	}
	caret := strings.Repeat(" ", max(column-1, 0)) + "^"
	return fmt.Sprintf("Parse error at line %d column %d: %s\n%s\n%s", line, column, message, snippet, caret)
}
