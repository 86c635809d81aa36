package parser_test

import (
	"testing"

	gojson "github.com/goccy/go-json"

	js2e "github.com/albertored/json-schema-to-elm"
	"github.com/albertored/json-schema-to-elm/parser"
)

func doc(t *testing.T, uri, raw string) js2e.Document {
	t.Helper()
	var v any
	if err := gojson.Unmarshal([]byte(raw), &v); err != nil {
		t.Fatalf("fixture is not valid JSON: %v", err)
	}
	return js2e.Document{URI: uri, Value: v}
}

func parseOne(t *testing.T, uri, raw string) (*js2e.SchemaDefinition, parser.Result) {
	t.Helper()
	return parser.ParseSchema(doc(t, uri, raw))
}

func TestParseSchema_RootPrimitive(t *testing.T) {
	schema, res := parseOne(t, "http://example.com/n.json", `{"title":"N","type":"number"}`)
	if len(res.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", res.Errors)
	}
	node, ok := schema.NodeAt("#")
	if !ok {
		t.Fatalf("no node registered under #")
	}
	prim, ok := node.(*js2e.Primitive)
	if !ok || prim.BaseType != "number" {
		t.Fatalf("expected number primitive at root, got %#v", node)
	}
	// the root also registers under the absolute schema URI
	alias, ok := schema.NodeAt("http://example.com/n.json")
	if !ok || alias != node {
		t.Fatalf("root not registered under its absolute URI")
	}
	if schema.Title != "N" {
		t.Fatalf("title: got %q", schema.Title)
	}
}

func TestParseSchema_ClassifierOrder(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		kind js2e.Kind
	}{
		{"allOf wins over enum", `{"allOf":[{"type":"string"}],"enum":["a"]}`, js2e.KindAllOf},
		{"anyOf", `{"anyOf":[{"type":"string"}]}`, js2e.KindAnyOf},
		{"oneOf", `{"oneOf":[{"type":"string"}]}`, js2e.KindOneOf},
		{"enum wins over type", `{"enum":["a"],"type":"string"}`, js2e.KindEnum},
		{"items list means tuple", `{"type":"array","items":[{"type":"number"}]}`, js2e.KindTuple},
		{"items object means array", `{"type":"array","items":{"type":"number"}}`, js2e.KindArray},
		{"object by type", `{"type":"object"}`, js2e.KindObject},
		{"object by properties", `{"properties":{"a":{"type":"string"}}}`, js2e.KindObject},
		{"type list means union", `{"type":["string","null"]}`, js2e.KindUnion},
		{"primitive", `{"type":"boolean"}`, js2e.KindPrimitive},
		{"ref", `{"$ref":"#/definitions/a"}`, js2e.KindTypeReference},
		{"root definitions", `{"definitions":{"a":{"type":"string"}}}`, js2e.KindDefinitions},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			schema, _ := parseOne(t, "http://example.com/s.json", tc.raw)
			node, ok := schema.NodeAt("#")
			if !ok {
				t.Fatalf("no root node")
			}
			if node.Kind() != tc.kind {
				t.Fatalf("classified as %v, want %v", node.Kind(), tc.kind)
			}
		})
	}
}

func TestParseSchema_UnclassifiableRoot(t *testing.T) {
	schema, res := parseOne(t, "http://example.com/x.json", `{"format":"who-knows"}`)
	if schema != nil {
		// root node itself was unclassifiable; no definition comes back
		if _, ok := schema.NodeAt("#"); ok {
			t.Fatalf("expected no root node")
		}
	}
	if len(res.Errors) != 1 || res.Errors[0].Kind != js2e.KindUnknownNodeType {
		t.Fatalf("expected one unknown_node_type, got %v", res.Errors)
	}
}

func TestParseSchema_ArrayWithoutItemsIsUnknown(t *testing.T) {
	_, res := parseOne(t, "http://example.com/x.json", `{"type":"array"}`)
	if len(res.Errors) != 1 || res.Errors[0].Kind != js2e.KindUnknownNodeType {
		t.Fatalf("expected unknown_node_type, got %v", res.Errors)
	}
}

func TestParseSchema_Enum(t *testing.T) {
	schema, res := parseOne(t, "http://example.com/color.json",
		`{"title":"Color","type":"string","enum":["red","yellow","green","blue"]}`)
	if len(res.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", res.Errors)
	}
	node, _ := schema.NodeAt("#")
	enum, ok := node.(*js2e.Enum)
	if !ok {
		t.Fatalf("expected enum, got %#v", node)
	}
	if enum.BaseType != "string" || len(enum.Values) != 4 || enum.Values[0] != "red" {
		t.Fatalf("enum parsed wrong: %#v", enum)
	}
}

func TestParseSchema_EnumDefaultsToString(t *testing.T) {
	schema, _ := parseOne(t, "http://example.com/e.json", `{"enum":["a","b"]}`)
	node, _ := schema.NodeAt("#")
	if enum := node.(*js2e.Enum); enum.BaseType != "string" {
		t.Fatalf("expected string base, got %q", enum.BaseType)
	}
}

func TestParseSchema_EnumValueValidation(t *testing.T) {
	cases := []struct {
		name string
		raw  string
	}{
		{"type mismatch", `{"type":"string","enum":["a",1]}`},
		{"duplicate value", `{"type":"string","enum":["a","a"]}`},
		{"empty", `{"type":"string","enum":[]}`},
		{"fractional integer", `{"type":"integer","enum":[1.5]}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, res := parseOne(t, "http://example.com/e.json", tc.raw)
			if len(res.Errors) == 0 {
				t.Fatalf("expected invalid_enum_value")
			}
			if res.Errors[0].Kind != js2e.KindInvalidEnumValue {
				t.Fatalf("wrong kind: %v", res.Errors[0])
			}
		})
	}
}

func TestParseSchema_ObjectRequiredAndChildren(t *testing.T) {
	schema, res := parseOne(t, "http://example.com/point.json",
		`{"title":"Point","type":"object","properties":{"y":{"type":"number"},"x":{"type":"number"}},"required":["x"]}`)
	if len(res.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", res.Errors)
	}
	node, _ := schema.NodeAt("#")
	obj := node.(*js2e.Object)
	// properties come back sorted by name
	if len(obj.Properties) != 2 || obj.Properties[0].Name != "x" || obj.Properties[1].Name != "y" {
		t.Fatalf("properties not sorted: %#v", obj.Properties)
	}
	if !obj.IsRequired("x") || obj.IsRequired("y") {
		t.Fatalf("required set wrong: %v", obj.Required)
	}
	// children registered under their own paths, holding Paths not values
	child, ok := schema.NodeAt("#/x")
	if !ok {
		t.Fatalf("child x not registered")
	}
	if !obj.Properties[0].Type.Equal(child.TypePath()) {
		t.Fatalf("property path does not match child registration")
	}
}

func TestParseSchema_RequiredWithoutProperty(t *testing.T) {
	_, res := parseOne(t, "http://example.com/p.json",
		`{"type":"object","properties":{"x":{"type":"number"}},"required":["x","z"]}`)
	if len(res.Errors) != 1 || res.Errors[0].Kind != js2e.KindMissingRequiredPropertyTarget {
		t.Fatalf("expected missing_required_property_target, got %v", res.Errors)
	}
}

func TestParseSchema_TupleChildrenByIndex(t *testing.T) {
	schema, _ := parseOne(t, "http://example.com/t.json",
		`{"title":"Pair","type":"array","items":[{"type":"number"},{"type":"string"}]}`)
	node, _ := schema.NodeAt("#")
	tuple := node.(*js2e.Tuple)
	if len(tuple.Items) != 2 || tuple.Items[0].String() != "#/0" || tuple.Items[1].String() != "#/1" {
		t.Fatalf("tuple items wrong: %#v", tuple.Items)
	}
	if _, ok := schema.NodeAt("#/1"); !ok {
		t.Fatalf("tuple child not registered")
	}
}

func TestParseSchema_CompositeAlternatives(t *testing.T) {
	schema, _ := parseOne(t, "http://example.com/s.json",
		`{"title":"Shape","oneOf":[{"$ref":"#/definitions/a"},{"type":"string"}]}`)
	node, _ := schema.NodeAt("#")
	comp := node.(*js2e.Composite)
	if comp.Comp != js2e.KindOneOf || len(comp.Alternatives) != 2 {
		t.Fatalf("composite wrong: %#v", comp)
	}
	if comp.Alternatives[0].String() != "#/0" {
		t.Fatalf("alternatives named by index, got %v", comp.Alternatives[0])
	}
}

func TestParseSchema_RefTargets(t *testing.T) {
	schema, _ := parseOne(t, "http://example.com/s.json",
		`{"type":"object","properties":{
			"a":{"$ref":"#/definitions/point"},
			"b":{"$ref":"http://example.com/definitions.json#point"},
			"c":{"$ref":"#color"}}}`)

	a, _ := schema.NodeAt("#/a")
	if tr := a.(*js2e.TypeReference); tr.Target.IsURI() || tr.Target.Path.String() != "#/definitions/point" {
		t.Fatalf("pointer ref should store a Path, got %#v", tr.Target)
	}
	b, _ := schema.NodeAt("#/b")
	if tr := b.(*js2e.TypeReference); !tr.Target.IsURI() || tr.Target.URI.Fragment != "point" {
		t.Fatalf("absolute ref should store a URI, got %#v", tr.Target)
	}
	c, _ := schema.NodeAt("#/c")
	if tr := c.(*js2e.TypeReference); !tr.Target.IsURI() || tr.Target.URI.Fragment != "color" {
		t.Fatalf("fragment-only ref should store a URI, got %#v", tr.Target)
	}
}

func TestParseSchema_DefinitionsAndIDAliases(t *testing.T) {
	schema, res := parseOne(t, "http://example.com/definitions.json", `{
		"id": "http://example.com/definitions.json",
		"title": "Definitions",
		"definitions": {
			"point": {
				"id": "#point",
				"type": "object",
				"properties": {"x": {"type": "number"}},
				"required": ["x"]
			}
		}
	}`)
	if len(res.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", res.Errors)
	}

	point, ok := schema.NodeAt("#/definitions/point")
	if !ok {
		t.Fatalf("point not registered under its path")
	}
	alias, ok := schema.NodeAt("http://example.com/definitions.json#point")
	if !ok {
		t.Fatalf("point not registered under its URI alias")
	}
	if alias != point {
		t.Fatalf("alias points at a different node")
	}
	// URI alias invariant: last path segment matches the fragment
	if alias.TypePath().Name() != "point" {
		t.Fatalf("alias path name: got %q", alias.TypePath().Name())
	}
	if root, ok := schema.NodeAt("http://example.com/definitions.json"); !ok || !root.TypePath().IsRoot() {
		t.Fatalf("root not registered under bare schema URI")
	}
}

func TestParseSchema_NestedDefinitionsInsideObject(t *testing.T) {
	schema, _ := parseOne(t, "http://example.com/s.json", `{
		"type": "object",
		"properties": {"a": {"type": "string"}},
		"definitions": {"helper": {"type": "number"}}
	}`)
	if _, ok := schema.NodeAt("#/definitions/helper"); !ok {
		t.Fatalf("object-level definitions member not registered")
	}
	obj, _ := schema.NodeAt("#")
	if len(obj.(*js2e.Object).Properties) != 1 {
		t.Fatalf("definitions must not leak into properties")
	}
}

func TestParseSchema_SiblingErrorsAllReported(t *testing.T) {
	_, res := parseOne(t, "http://example.com/s.json", `{
		"type": "object",
		"properties": {
			"good": {"type": "string"},
			"bad1": {"format": "junk"},
			"bad2": {"also": "junk"}
		}
	}`)
	if len(res.Errors) != 2 {
		t.Fatalf("expected both sibling errors, got %v", res.Errors)
	}
	// the good sibling and the object itself still parsed
	if _, ok := res.Types["#/good"]; !ok {
		t.Fatalf("good sibling missing from partial dictionary")
	}
	if _, ok := res.Types["#"]; !ok {
		t.Fatalf("object missing from partial dictionary")
	}
}

func TestParseSchemas_DuplicateID(t *testing.T) {
	docs := []js2e.Document{
		doc(t, "http://example.com/a.json", `{"id":"http://example.com/shared.json","title":"First","type":"number"}`),
		doc(t, "http://example.com/b.json", `{"id":"http://example.com/shared.json","title":"Second","type":"string"}`),
	}
	schemas, res := parser.ParseSchemas(docs)
	dups := 0
	for _, e := range res.Errors {
		if e.Kind == js2e.KindDuplicateTypeKey {
			dups++
		}
	}
	if dups != 1 {
		t.Fatalf("expected exactly one duplicate_type_key, got %v", res.Errors)
	}
	kept := schemas["http://example.com/shared.json"]
	if kept == nil || kept.Title != "First" {
		t.Fatalf("first-seen schema should win, got %+v", kept)
	}
}

func TestParseSchemas_MissingTitleFallback(t *testing.T) {
	schemas, res := parser.ParseSchemas([]js2e.Document{
		doc(t, "http://example.com/point.json", `{"type":"object","properties":{"x":{"type":"number"}}}`),
	})
	warned := false
	for _, w := range res.Warnings {
		if w.Kind == js2e.KindMissingSchemaTitle {
			warned = true
		}
	}
	if !warned {
		t.Fatalf("expected missing_schema_title warning, got %v", res.Warnings)
	}
	schema := schemas["http://example.com/point.json"]
	if schema.Title != "Point" {
		t.Fatalf("fallback title: got %q", schema.Title)
	}
}

func TestParseSchema_Deterministic(t *testing.T) {
	raw := `{"title":"S","type":"object","properties":{"b":{"type":"string"},"a":{"enum":["x","y"]}}}`
	s1, _ := parseOne(t, "http://example.com/s.json", raw)
	s2, _ := parseOne(t, "http://example.com/s.json", raw)
	k1 := s1.Types.SortedKeys()
	k2 := s2.Types.SortedKeys()
	if len(k1) != len(k2) {
		t.Fatalf("key sets differ: %v vs %v", k1, k2)
	}
	for i := range k1 {
		if k1[i] != k2[i] {
			t.Fatalf("key %d differs: %q vs %q", i, k1[i], k2[i])
		}
	}
	if len(s1.DeclOrder) != len(s2.DeclOrder) {
		t.Fatalf("decl order length differs")
	}
	for i := range s1.DeclOrder {
		if s1.DeclOrder[i] != s2.DeclOrder[i] {
			t.Fatalf("decl order %d differs: %q vs %q", i, s1.DeclOrder[i], s2.DeclOrder[i])
		}
	}
}

func TestParseSchema_URNIDUsedAsIs(t *testing.T) {
	schema, res := parseOne(t, "http://example.com/u.json",
		`{"id":"urn:example:thing","title":"Thing","type":"number"}`)
	if len(res.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", res.Errors)
	}
	if schema.ID.String() != "urn:example:thing" {
		t.Fatalf("urn id should be kept as-is, got %q", schema.ID)
	}
}

func TestParseSchema_RelativeIDMergesOntoParent(t *testing.T) {
	schema, _ := parseOne(t, "http://example.com/dir/s.json",
		`{"id":"other.json","title":"Other","type":"number"}`)
	if schema.ID.String() != "http://example.com/dir/other.json" {
		t.Fatalf("relative id merge: got %q", schema.ID)
	}
}
