package gvalue_test

import (
	"testing"

	"github.com/quithub/qgraphql/internal/gvalue"
	language "github.com/quithub/qgraphql/internal/language"
)

func TestRender(t *testing.T) {
	cases := []struct {
		name string
		v    gvalue.Value
		want string
	}{
		{"int", gvalue.NewInt(42), "42"},
		{"string", gvalue.NewString("hi"), `"hi"`},
		{"bool", gvalue.NewBoolean(true), "true"},
		{"null", gvalue.NewNull(), "null"},
		{"enum", gvalue.NewEnum("RED"), "RED"},
		{"variable", gvalue.NewVariable("x"), "$x"},
		{"list", gvalue.NewList(gvalue.NewInt(1), gvalue.NewInt(2)), "[1, 2]"},
		{"object", gvalue.NewObject(gvalue.Field{Name: "a", Value: gvalue.NewInt(1)}), "{a: 1}"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.v.Render(); got != tc.want {
				t.Fatalf("Render() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestIsUntyped(t *testing.T) {
	if !gvalue.NewUntypedEnum("RED").IsUntyped() {
		t.Fatal("untyped enum should be untyped")
	}
	if !gvalue.NewUntypedVariable("x").IsUntyped() {
		t.Fatal("untyped variable should be untyped")
	}
	if gvalue.NewInt(1).IsUntyped() {
		t.Fatal("typed int should not be untyped")
	}
	nested := gvalue.NewList(gvalue.NewInt(1), gvalue.NewUntypedVariable("x"))
	if !nested.IsUntyped() {
		t.Fatal("list containing untyped element should be untyped")
	}
	nestedObj := gvalue.NewObject(gvalue.Field{Name: "a", Value: gvalue.NewUntypedEnum("RED")})
	if !nestedObj.IsUntyped() {
		t.Fatal("object containing untyped field should be untyped")
	}
}

func TestBindingsValidateAndEqual(t *testing.T) {
	bs := gvalue.Bindings{{Name: "a", Value: gvalue.NewInt(1)}, {Name: "a", Value: gvalue.NewInt(2)}}
	if err := bs.Validate(); err == nil {
		t.Fatal("expected duplicate argument error")
	}

	a := gvalue.Bindings{{Name: "x", Value: gvalue.NewInt(1)}, {Name: "y", Value: gvalue.NewString("s")}}
	b := gvalue.Bindings{{Name: "y", Value: gvalue.NewString("s")}, {Name: "x", Value: gvalue.NewInt(1)}}
	if !a.Equal(b) {
		t.Fatal("expected equal bindings regardless of order")
	}

	c := gvalue.Bindings{{Name: "x", Value: gvalue.NewInt(2)}}
	if a.Equal(c) {
		t.Fatal("expected unequal bindings for differing values")
	}
}

func TestFromAST(t *testing.T) {
	doc, err := language.ParseQuery(`{ f(a: 1, b: "s", c: $v, d: RED, e: [1,2], g: {x: 1}) }`)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	args := doc.Operations[0].SelectionSet[0].(*language.Field).Arguments
	got := map[string]gvalue.Value{}
	for _, a := range args {
		got[a.Name] = gvalue.FromAST(a.Value)
	}
	if got["a"].Kind != gvalue.Int || got["a"].Int != 1 {
		t.Fatalf("a = %+v", got["a"])
	}
	if got["b"].Kind != gvalue.String || got["b"].Str != "s" {
		t.Fatalf("b = %+v", got["b"])
	}
	if got["c"].Kind != gvalue.UntypedVariable || got["c"].Str != "v" {
		t.Fatalf("c = %+v", got["c"])
	}
	if got["d"].Kind != gvalue.UntypedEnum || got["d"].Str != "RED" {
		t.Fatalf("d = %+v", got["d"])
	}
	if got["e"].Kind != gvalue.List || len(got["e"].List) != 2 {
		t.Fatalf("e = %+v", got["e"])
	}
	if got["g"].Kind != gvalue.Object || len(got["g"].Fields) != 1 {
		t.Fatalf("g = %+v", got["g"])
	}
}
