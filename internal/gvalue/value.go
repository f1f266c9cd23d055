// Package gvalue models GraphQL argument values: the tagged union of
// literal scalars, the pre-elaboration "untyped" variants a parsed
// document can carry, and the variable references elaboration resolves
// away.
package gvalue

import (
	"fmt"
	"strings"
)

// Kind tags a Value's concrete shape.
type Kind int

const (
	Int Kind = iota
	Float
	String
	Boolean
	ID
	Enum
	Null
	Absent
	List
	Object
	Variable
	UntypedEnum
	UntypedVariable
)

func (k Kind) String() string {
	switch k {
	case Int:
		return "Int"
	case Float:
		return "Float"
	case String:
		return "String"
	case Boolean:
		return "Boolean"
	case ID:
		return "ID"
	case Enum:
		return "Enum"
	case Null:
		return "Null"
	case Absent:
		return "Absent"
	case List:
		return "List"
	case Object:
		return "Object"
	case Variable:
		return "Variable"
	case UntypedEnum:
		return "UntypedEnumValue"
	case UntypedVariable:
		return "UntypedVariableValue"
	default:
		return "Unknown"
	}
}

// Field is one (name, Value) pair of an Object value. Order is
// significant for rendering and is preserved from the source document.
type Field struct {
	Name  string
	Value Value
}

// Value is a closed tagged union, following the same Kind-tagged struct
// idiom schema.TypeRef uses rather than an interface hierarchy — there
// are no behavioral differences between variants, only shape.
type Value struct {
	Kind   Kind
	Int    int64
	Float  float64
	Str    string // String, ID, Enum name, Variable/UntypedVariable name, UntypedEnum name
	Bool   bool
	List   []Value
	Fields []Field // Object
}

func NewInt(v int64) Value     { return Value{Kind: Int, Int: v} }
func NewFloat(v float64) Value { return Value{Kind: Float, Float: v} }
func NewString(v string) Value { return Value{Kind: String, Str: v} }
func NewBoolean(v bool) Value  { return Value{Kind: Boolean, Bool: v} }
func NewID(v string) Value     { return Value{Kind: ID, Str: v} }
func NewEnum(name string) Value {
	return Value{Kind: Enum, Str: name}
}
func NewNull() Value   { return Value{Kind: Null} }
func NewAbsent() Value { return Value{Kind: Absent} }
func NewList(vs ...Value) Value {
	return Value{Kind: List, List: vs}
}
func NewObject(fields ...Field) Value {
	return Value{Kind: Object, Fields: fields}
}
func NewVariable(name string) Value {
	return Value{Kind: Variable, Str: name}
}
func NewUntypedEnum(name string) Value {
	return Value{Kind: UntypedEnum, Str: name}
}
func NewUntypedVariable(name string) Value {
	return Value{Kind: UntypedVariable, Str: name}
}

// IsUntyped reports whether v still carries a pre-elaboration variant
// reachable only before variable-binding and literal-coercion phases have run.
func (v Value) IsUntyped() bool {
	switch v.Kind {
	case UntypedEnum, UntypedVariable:
		return true
	case List:
		for _, e := range v.List {
			if e.IsUntyped() {
				return true
			}
		}
		return false
	case Object:
		for _, f := range v.Fields {
			if f.Value.IsUntyped() {
				return true
			}
		}
		return false
	default:
		return false
	}
}

func (f Field) get(name string) (Value, bool) {
	if f.Name == name {
		return f.Value, true
	}
	return Value{}, false
}

// ObjectField looks up a field by name in an Object value.
func (v Value) ObjectField(name string) (Value, bool) {
	if v.Kind != Object {
		return Value{}, false
	}
	for _, f := range v.Fields {
		if val, ok := f.get(name); ok {
			return val, true
		}
	}
	return Value{}, false
}

// Render produces the canonical GraphQL literal text for v, used by
// query.Select's argument rendering.
func (v Value) Render() string {
	switch v.Kind {
	case Int:
		return fmt.Sprintf("%d", v.Int)
	case Float:
		return fmt.Sprintf("%g", v.Float)
	case String, ID:
		return fmt.Sprintf("%q", v.Str)
	case Boolean:
		if v.Bool {
			return "true"
		}
		return "false"
	case Enum, UntypedEnum:
		return v.Str
	case Null:
		return "null"
	case Absent:
		return "<absent>"
	case Variable, UntypedVariable:
		return "$" + v.Str
	case List:
		parts := make([]string, len(v.List))
		for i, e := range v.List {
			parts[i] = e.Render()
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case Object:
		parts := make([]string, len(v.Fields))
		for i, f := range v.Fields {
			parts[i] = f.Name + ": " + f.Value.Render()
		}
		return "{" + strings.Join(parts, ", ") + "}"
	default:
		return "?"
	}
}

// Binding is a single (name, value) argument to a field selection.
// Duplicates are forbidden by construction; order carries no semantic
// weight.
type Binding struct {
	Name  string
	Value Value
}

// Bindings is an ordered list of Binding, preserving source order for
// rendering while supporting name-based lookup.
type Bindings []Binding

// Get returns the value bound to name, if any.
func (bs Bindings) Get(name string) (Value, bool) {
	for _, b := range bs {
		if b.Name == name {
			return b.Value, true
		}
	}
	return Value{}, false
}

// Has reports whether name is bound.
func (bs Bindings) Has(name string) bool {
	_, ok := bs.Get(name)
	return ok
}

// Validate forbids duplicate binding names, a construction-time
// invariant.
func (bs Bindings) Validate() error {
	seen := make(map[string]struct{}, len(bs))
	for _, b := range bs {
		if _, dup := seen[b.Name]; dup {
			return fmt.Errorf("duplicate argument %q", b.Name)
		}
		seen[b.Name] = struct{}{}
	}
	return nil
}

// Render renders bindings in source order as "(a: 1, b: $x)", or "" when
// empty.
func (bs Bindings) Render() string {
	if len(bs) == 0 {
		return ""
	}
	parts := make([]string, len(bs))
	for i, b := range bs {
		parts[i] = b.Name + ": " + b.Value.Render()
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// Equal reports whether two Bindings sets are equal as sets of
// (name, value) pairs — used by MergeQueries to decide whether two
// selections of the same aliased field are compatible.
func (bs Bindings) Equal(other Bindings) bool {
	if len(bs) != len(other) {
		return false
	}
	for _, b := range bs {
		ov, ok := other.Get(b.Name)
		if !ok || ov.Render() != b.Value.Render() {
			return false
		}
	}
	return true
}
