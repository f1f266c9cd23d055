package elaborate

import (
	"fmt"

	"github.com/quithub/qgraphql/internal/result"
)

func problems(kind, message string) result.Problems {
	return result.Problems{{Kind: kind, Message: message}}
}

func unknownField(parentType, name string) result.Problems {
	return problems("UnknownField", fmt.Sprintf("field %q is not defined on type %q", name, parentType))
}

func unknownArgument(field, argName string) result.Problems {
	return problems("UnknownArgument", fmt.Sprintf("unknown argument %q on field %q", argName, field))
}

func unknownType(name string) result.Problems {
	return problems("UnknownType", fmt.Sprintf("unknown type %q", name))
}

func unknownVariable(name string) result.Problems {
	return problems("UnknownVariable", fmt.Sprintf("undeclared variable %q", name))
}

func typeMismatch(expected, actual string) result.Problems {
	return problems("TypeMismatch", fmt.Sprintf("expected %s, got %s", expected, actual))
}

func missingRequired(argName string) result.Problems {
	return problems("MissingRequired", fmt.Sprintf("missing required argument %q", argName))
}

func leafSubselection(field, typeName string) result.Problems {
	return problems("LeafSubselection", fmt.Sprintf("field %q of leaf type %q cannot have a subselection", field, typeName))
}

func nonLeafSubselection(field, typeName string) result.Problems {
	return problems("NonLeafSubselection", fmt.Sprintf("field %q of type %q requires a subselection", field, typeName))
}

func internalInvariant(message string) result.Problems {
	return problems("InternalInvariant", message)
}

func noOperations(message string) result.Problems {
	return problems("NoOperations", message)
}
