package language

import (
	gqlparser "github.com/vektah/gqlparser/v2"
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/parser"
)

// ResolvedSchema is gqlparser's fully validated, merged schema — the
// schema-loading external collaborator the compiler never re-derives;
// it only reads from it.
type ResolvedSchema = ast.Schema

func ParseQuery(source string) (*QueryDocument, error) {
	doc, err := parser.ParseQuery(&ast.Source{Input: source})
	if err != nil {
		return nil, err
	}
	return doc, nil
}

func ParseSchema(name, source string) (*SchemaDocument, error) {
	doc, err := parser.ParseSchema(&ast.Source{Name: name, Input: source})
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// LoadSchema parses and validates SDL text into a fully resolved schema.
func LoadSchema(name, source string) (*ResolvedSchema, error) {
	return gqlparser.LoadSchema(&ast.Source{Name: name, Input: source})
}
