package schema

// WithIntrospection returns a copy of sch extended with the standard
// introspection types (__Schema, __Type, __Field, …) and the __schema/
// __type root fields. The elaborator's introspection-hoisting phase
// uses the result as the evaluation focus for any subtree rooted at
// __schema or __type; nothing here resolves a query against live data.
func (sch *Schema) WithIntrospection() *Schema {
	extended := &Schema{
		QueryType:        sch.QueryType,
		MutationType:     sch.MutationType,
		SubscriptionType: sch.SubscriptionType,
		Types:            make(map[string]*Type, len(sch.Types)+8),
		Directives:       sch.Directives,
		Description:      sch.Description,
	}
	for name, typ := range sch.Types {
		extended.Types[name] = typ
	}
	addIntrospectionTypes(extended)

	if queryType := extended.GetQueryType(); queryType != nil {
		queryTypeCopy := &Type{
			Name:        queryType.Name,
			Kind:        queryType.Kind,
			Description: queryType.Description,
			Fields:      make([]*Field, len(queryType.Fields), len(queryType.Fields)+2),
			Interfaces:  queryType.Interfaces,
		}
		copy(queryTypeCopy.Fields, queryType.Fields)
		queryTypeCopy.Fields = append(queryTypeCopy.Fields,
			&Field{
				Name:        "__schema",
				Description: "Access the current type schema of this server.",
				Type:        NonNullType(NamedType("__Schema")),
			},
			&Field{
				Name:        "__type",
				Description: "Request the type information of a single type.",
				Arguments: []*InputValue{
					{
						Name:        "name",
						Description: "The name of the type to look up.",
						Type:        NonNullType(NamedType("String")),
					},
				},
				Type: NamedType("__Type"),
			},
		)
		extended.Types[queryType.Name] = queryTypeCopy
	}

	return extended
}

// IsIntrospectionRoot reports whether field is one of the introspection
// root selections the elaborator hoists under Introspect.
func IsIntrospectionRoot(field string) bool {
	return field == "__schema" || field == "__type"
}

func addIntrospectionTypes(sch *Schema) {
	sch.Types["__Schema"] = introspectionSchemaType()
	sch.Types["__Type"] = introspectionTypeType()
	sch.Types["__Field"] = introspectionFieldType()
	sch.Types["__InputValue"] = introspectionInputValueType()
	sch.Types["__EnumValue"] = introspectionEnumValueType()
	sch.Types["__Directive"] = introspectionDirectiveType()
	sch.Types["__TypeKind"] = introspectionTypeKindEnum()
	sch.Types["__DirectiveLocation"] = introspectionDirectiveLocationEnum()
}

func introspectionSchemaType() *Type {
	return &Type{
		Name:        "__Schema",
		Kind:        TypeKindObject,
		Description: "A GraphQL Schema defines the capabilities of a GraphQL server.",
		Fields: []*Field{
			{Name: "types", Description: "A list of all types supported by this server.",
				Type: NonNullType(ListType(NonNullType(NamedType("__Type"))))},
			{Name: "queryType", Description: "The type that query operations will be rooted at.",
				Type: NonNullType(NamedType("__Type"))},
			{Name: "mutationType", Description: "If this server supports mutation, the type that mutation operations will be rooted at.",
				Type: NamedType("__Type")},
			{Name: "subscriptionType", Description: "If this server support subscription, the type that subscription operations will be rooted at.",
				Type: NamedType("__Type")},
			{Name: "directives", Description: "A list of all directives supported by this server.",
				Type: NonNullType(ListType(NonNullType(NamedType("__Directive"))))},
			{Name: "description", Description: "A description of the schema.", Type: NamedType("String")},
		},
	}
}

func introspectionTypeType() *Type {
	includeDeprecated := []*InputValue{{Name: "includeDeprecated", Type: NamedType("Boolean"), DefaultValue: false}}
	return &Type{
		Name:        "__Type",
		Kind:        TypeKindObject,
		Description: "The fundamental unit of any GraphQL Schema is the type.",
		Fields: []*Field{
			{Name: "kind", Type: NonNullType(NamedType("__TypeKind"))},
			{Name: "name", Type: NamedType("String")},
			{Name: "description", Type: NamedType("String")},
			{Name: "fields", Arguments: includeDeprecated, Type: ListType(NonNullType(NamedType("__Field")))},
			{Name: "interfaces", Type: ListType(NonNullType(NamedType("__Type")))},
			{Name: "possibleTypes", Type: ListType(NonNullType(NamedType("__Type")))},
			{Name: "enumValues", Arguments: includeDeprecated, Type: ListType(NonNullType(NamedType("__EnumValue")))},
			{Name: "inputFields", Arguments: includeDeprecated, Type: ListType(NonNullType(NamedType("__InputValue")))},
			{Name: "ofType", Type: NamedType("__Type")},
			{Name: "specifiedByURL", Type: NamedType("String")},
			{Name: "isOneOf", Type: NamedType("Boolean")},
		},
	}
}

func introspectionFieldType() *Type {
	return &Type{
		Name: "__Field",
		Kind: TypeKindObject,
		Fields: []*Field{
			{Name: "name", Type: NonNullType(NamedType("String"))},
			{Name: "description", Type: NamedType("String")},
			{Name: "args", Arguments: []*InputValue{{Name: "includeDeprecated", Type: NamedType("Boolean"), DefaultValue: false}},
				Type: NonNullType(ListType(NonNullType(NamedType("__InputValue"))))},
			{Name: "type", Type: NonNullType(NamedType("__Type"))},
			{Name: "isDeprecated", Type: NonNullType(NamedType("Boolean"))},
			{Name: "deprecationReason", Type: NamedType("String")},
		},
	}
}

func introspectionInputValueType() *Type {
	return &Type{
		Name: "__InputValue",
		Kind: TypeKindObject,
		Fields: []*Field{
			{Name: "name", Type: NonNullType(NamedType("String"))},
			{Name: "description", Type: NamedType("String")},
			{Name: "type", Type: NonNullType(NamedType("__Type"))},
			{Name: "defaultValue", Type: NamedType("String")},
			{Name: "isDeprecated", Type: NonNullType(NamedType("Boolean"))},
			{Name: "deprecationReason", Type: NamedType("String")},
		},
	}
}

func introspectionEnumValueType() *Type {
	return &Type{
		Name: "__EnumValue",
		Kind: TypeKindObject,
		Fields: []*Field{
			{Name: "name", Type: NonNullType(NamedType("String"))},
			{Name: "description", Type: NamedType("String")},
			{Name: "isDeprecated", Type: NonNullType(NamedType("Boolean"))},
			{Name: "deprecationReason", Type: NamedType("String")},
		},
	}
}

func introspectionDirectiveType() *Type {
	return &Type{
		Name: "__Directive",
		Kind: TypeKindObject,
		Fields: []*Field{
			{Name: "name", Type: NonNullType(NamedType("String"))},
			{Name: "description", Type: NamedType("String")},
			{Name: "isRepeatable", Type: NonNullType(NamedType("Boolean"))},
			{Name: "locations", Type: NonNullType(ListType(NonNullType(NamedType("__DirectiveLocation"))))},
			{Name: "args", Arguments: []*InputValue{{Name: "includeDeprecated", Type: NamedType("Boolean"), DefaultValue: false}},
				Type: NonNullType(ListType(NonNullType(NamedType("__InputValue"))))},
		},
	}
}

func introspectionTypeKindEnum() *Type {
	return &Type{
		Name: "__TypeKind",
		Kind: TypeKindEnum,
		EnumValues: []*EnumValue{
			{Name: "SCALAR"}, {Name: "OBJECT"}, {Name: "INTERFACE"}, {Name: "UNION"},
			{Name: "ENUM"}, {Name: "INPUT_OBJECT"}, {Name: "LIST"}, {Name: "NON_NULL"},
		},
	}
}

func introspectionDirectiveLocationEnum() *Type {
	return &Type{
		Name: "__DirectiveLocation",
		Kind: TypeKindEnum,
		EnumValues: []*EnumValue{
			{Name: "QUERY"}, {Name: "MUTATION"}, {Name: "SUBSCRIPTION"}, {Name: "FIELD"},
			{Name: "FRAGMENT_DEFINITION"}, {Name: "FRAGMENT_SPREAD"}, {Name: "INLINE_FRAGMENT"},
			{Name: "VARIABLE_DEFINITION"}, {Name: "SCHEMA"}, {Name: "SCALAR"}, {Name: "OBJECT"},
			{Name: "FIELD_DEFINITION"}, {Name: "ARGUMENT_DEFINITION"}, {Name: "INTERFACE"},
			{Name: "UNION"}, {Name: "ENUM"}, {Name: "ENUM_VALUE"}, {Name: "INPUT_OBJECT"},
			{Name: "INPUT_FIELD_DEFINITION"},
		},
	}
}
