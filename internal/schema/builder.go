package schema

import (
	"sort"
	"strings"

	language "github.com/quithub/qgraphql/internal/language"
)

// BuildFromSDL parses and validates SDL text — via gqlparser's own schema
// loader, the "schema loader" external collaborator — and adapts the
// result into the façade the elaborator consults. A bare "type Query"
// definition with no explicit schema block is given a default root.
func BuildFromSDL(sdl string) (*Schema, error) {
	if !strings.Contains(sdl, "schema {") && !strings.Contains(sdl, "schema{") {
		sdl = "schema { query: Query }\n" + sdl
	}
	resolved, err := language.LoadSchema("schema.graphql", sdl)
	if err != nil {
		return nil, err
	}
	return FromResolved(resolved)
}

// FromResolved adapts a gqlparser ResolvedSchema into the façade's Schema
// representation. Nothing here re-derives validation, merging, or
// interface/union possible-type computation — that is gqlparser's job;
// this is strictly a translation layer.
func FromResolved(resolved *language.ResolvedSchema) (*Schema, error) {
	sch := &Schema{Types: make(map[string]*Type, len(resolved.Types))}
	if resolved.Query != nil {
		sch.QueryType = resolved.Query.Name
	}
	if resolved.Mutation != nil {
		sch.MutationType = resolved.Mutation.Name
	}
	if resolved.Subscription != nil {
		sch.SubscriptionType = resolved.Subscription.Name
	}

	names := make([]string, 0, len(resolved.Types))
	for name := range resolved.Types {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		def := resolved.Types[name]
		switch def.Kind {
		case language.Scalar:
			sch.Types[name] = buildScalar(def)
		case language.Enum:
			sch.Types[name] = buildEnum(def)
		case language.InputObject:
			sch.Types[name] = buildInput(def)
		case language.Object:
			sch.Types[name] = buildObject(def)
		case language.Interface:
			sch.Types[name] = buildInterface(def, resolved)
		case language.Union:
			sch.Types[name] = buildUnion(def, resolved)
		}
	}

	dnames := make([]string, 0, len(resolved.Directives))
	for name := range resolved.Directives {
		dnames = append(dnames, name)
	}
	sort.Strings(dnames)
	if len(dnames) > 0 {
		sch.Directives = make(map[string]*Directive, len(dnames))
		for _, name := range dnames {
			sch.Directives[name] = buildDirective(resolved.Directives[name])
		}
	}

	return sch, nil
}

func buildScalar(def *language.Definition) *Type {
	switch def.Name {
	case "String":
		return stringType
	case "Int":
		return intType
	case "Float":
		return floatType
	case "Boolean":
		return booleanType
	case "ID":
		return idType
	}
	return &Type{Name: def.Name, Kind: TypeKindScalar, Description: def.Description}
}

func buildEnum(def *language.Definition) *Type {
	t := &Type{Name: def.Name, Kind: TypeKindEnum, Description: def.Description}
	for _, v := range def.EnumValues {
		ev := &EnumValue{Name: v.Name, Description: v.Description}
		if reason, ok := deprecationReason(v.Directives); ok {
			ev.IsDeprecated = true
			ev.DeprecationReason = reason
		}
		t.EnumValues = append(t.EnumValues, ev)
	}
	return t
}

func buildInput(def *language.Definition) *Type {
	t := &Type{Name: def.Name, Kind: TypeKindInputObject, Description: def.Description}
	for _, f := range def.Fields {
		t.InputFields = append(t.InputFields, buildInputValueField(f))
	}
	return t
}

func buildObject(def *language.Definition) *Type {
	t := &Type{
		Name:        def.Name,
		Kind:        TypeKindObject,
		Description: def.Description,
		Interfaces:  append([]string(nil), def.Interfaces...),
	}
	for _, f := range def.Fields {
		t.Fields = append(t.Fields, buildField(f))
	}
	return t
}

func buildInterface(def *language.Definition, resolved *language.ResolvedSchema) *Type {
	t := &Type{
		Name:        def.Name,
		Kind:        TypeKindInterface,
		Description: def.Description,
		Interfaces:  append([]string(nil), def.Interfaces...),
	}
	for _, f := range def.Fields {
		t.Fields = append(t.Fields, buildField(f))
	}
	for _, p := range resolved.PossibleTypes[def.Name] {
		t.PossibleTypes = append(t.PossibleTypes, p.Name)
	}
	return t
}

func buildUnion(def *language.Definition, resolved *language.ResolvedSchema) *Type {
	t := &Type{Name: def.Name, Kind: TypeKindUnion, Description: def.Description}
	for _, p := range resolved.PossibleTypes[def.Name] {
		t.PossibleTypes = append(t.PossibleTypes, p.Name)
	}
	return t
}

func buildField(node *language.FieldDefinition) *Field {
	f := &Field{
		Name:        node.Name,
		Description: node.Description,
		Type:        buildTypeRef(node.Type),
	}
	if reason, ok := deprecationReason(node.Directives); ok {
		f.IsDeprecated = true
		f.DeprecationReason = reason
	}
	for _, arg := range node.Arguments {
		f.Arguments = append(f.Arguments, buildInputValue(arg))
	}
	return f
}

func buildInputValue(node *language.ArgumentDefinition) *InputValue {
	in := &InputValue{
		Name:        node.Name,
		Description: node.Description,
		Type:        buildTypeRef(node.Type),
	}
	if node.DefaultValue != nil {
		if v, err := node.DefaultValue.Value(nil); err == nil {
			in.DefaultValue = v
		}
	}
	if reason, ok := deprecationReason(node.Directives); ok {
		in.IsDeprecated = true
		in.DeprecationReason = reason
	}
	return in
}

func buildInputValueField(node *language.FieldDefinition) *InputValue {
	in := &InputValue{
		Name:        node.Name,
		Description: node.Description,
		Type:        buildTypeRef(node.Type),
	}
	if node.DefaultValue != nil {
		if v, err := node.DefaultValue.Value(nil); err == nil {
			in.DefaultValue = v
		}
	}
	if reason, ok := deprecationReason(node.Directives); ok {
		in.IsDeprecated = true
		in.DeprecationReason = reason
	}
	return in
}

func buildDirective(dir *language.DirectiveDefinition) *Directive {
	switch dir.Name {
	case "include":
		return includeDirective
	case "skip":
		return skipDirective
	}
	d := &Directive{
		Name:         dir.Name,
		Description:  dir.Description,
		IsRepeatable: dir.IsRepeatable,
	}
	for _, loc := range dir.Locations {
		d.Locations = append(d.Locations, string(loc))
	}
	for _, arg := range dir.Arguments {
		d.Arguments = append(d.Arguments, buildInputValue(arg))
	}
	return d
}

func buildTypeRef(t *language.Type) *TypeRef {
	if t.NonNull {
		inner := *t
		inner.NonNull = false
		return NonNullType(buildTypeRef(&inner))
	}
	if t.Elem != nil {
		return ListType(buildTypeRef(t.Elem))
	}
	return NamedType(t.NamedType)
}

func deprecationReason(dirs language.DirectiveList) (string, bool) {
	for _, d := range dirs {
		if d.Name != "deprecated" {
			continue
		}
		reason := "No longer supported"
		for _, a := range d.Arguments {
			if a.Name != "reason" {
				continue
			}
			if v, err := a.Value.Value(nil); err == nil {
				if s, ok := v.(string); ok {
					reason = s
				}
			}
		}
		return reason, true
	}
	return "", false
}
