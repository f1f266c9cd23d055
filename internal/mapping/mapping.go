// Package mapping is the façade consumed by backend-specific object
// mappings (SQL mappings are the illustrative example). It has no
// backend code of its own: FieldMapping's non-Delegate variants are
// opaque markers the elaborator treats as leaves, following a field's
// resolution strategy being a per-field tag one layer up the stack
// from a gRPC-backed field dispatcher.
package mapping

import "github.com/quithub/qgraphql/internal/schema"

// ObjectMapping describes how one GraphQL object type's fields resolve.
type ObjectMapping struct {
	TypeRef       *schema.TypeRef
	FieldMappings []FieldMapping
}

func (m *ObjectMapping) Lookup(fieldName string) (FieldMapping, bool) {
	for _, fm := range m.FieldMappings {
		if fm.Field() == fieldName {
			return fm, true
		}
	}
	return nil, false
}

// FieldMapping is the per-field resolution strategy. Delegate is the
// only variant the elaborator acts on (it triggers phase 6's component
// boundary insertion); SqlField/SqlObject/SqlRoot are opaque leaves.
type FieldMapping interface {
	Field() string
	isFieldMapping()
}

// Delegate marks a field whose selection lives in a different
// interpreter, reached through Other.
type Delegate struct {
	FieldName string
	Other     *ObjectMapping
}

func (d Delegate) Field() string  { return d.FieldName }
func (Delegate) isFieldMapping()  {}

// SqlField is an opaque leaf naming a backend column.
type SqlField struct {
	FieldName string
	Column    string
}

func (s SqlField) Field() string { return s.FieldName }
func (SqlField) isFieldMapping() {}

// SqlObject is an opaque leaf naming a backend table/relation a nested
// object selection resolves against.
type SqlObject struct {
	FieldName string
	Table     string
}

func (s SqlObject) Field() string { return s.FieldName }
func (SqlObject) isFieldMapping() {}

// SqlRoot is an opaque leaf marking a root-level query field backed by
// a top-level backend query.
type SqlRoot struct {
	FieldName string
	Table     string
}

func (s SqlRoot) Field() string { return s.FieldName }
func (SqlRoot) isFieldMapping() {}
