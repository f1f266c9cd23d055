package gvalue

import (
	"strconv"

	language "github.com/quithub/qgraphql/internal/language"
)

// FromAST converts a parsed literal/variable AST node into a pre-elaboration
// Value. Enum and Variable references stay in their Untyped* form; the
// elaborator's variable-binding phase replaces each variable reference with
// its bound value (or reports UnknownVariable) and turns each enum literal
// into a typed Enum value.
func FromAST(node *language.Value) Value {
	if node == nil {
		return NewNull()
	}
	switch node.Kind {
	case language.Variable:
		return NewUntypedVariable(node.Raw)
	case language.IntValue:
		n, _ := strconv.ParseInt(node.Raw, 10, 64)
		return Value{Kind: Int, Int: n}
	case language.FloatValue:
		f, _ := strconv.ParseFloat(node.Raw, 64)
		return Value{Kind: Float, Float: f}
	case language.StringValue, language.BlockValue:
		return NewString(node.Raw)
	case language.BooleanValue:
		return NewBoolean(node.Raw == "true")
	case language.NullValue:
		return NewNull()
	case language.EnumValue:
		return NewUntypedEnum(node.Raw)
	case language.ListValue:
		items := make([]Value, 0, len(node.Children))
		for _, child := range node.Children {
			items = append(items, FromAST(child.Value))
		}
		return NewList(items...)
	case language.ObjectValue:
		fields := make([]Field, 0, len(node.Children))
		for _, child := range node.Children {
			fields = append(fields, Field{Name: child.Name, Value: FromAST(child.Value)})
		}
		return NewObject(fields...)
	default:
		return NewNull()
	}
}

