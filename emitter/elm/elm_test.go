package elm_test

import (
	"testing"

	gojson "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	js2e "github.com/albertored/json-schema-to-elm"
	"github.com/albertored/json-schema-to-elm/emitter/elm"
	"github.com/albertored/json-schema-to-elm/parser"
)

func render(t *testing.T, uri, raw string, opts js2e.Options) (string, js2e.Diagnostics) {
	t.Helper()
	var v any
	require.NoError(t, gojson.Unmarshal([]byte(raw), &v))
	schemas, res := parser.ParseSchemas([]js2e.Document{{URI: uri, Value: v}})
	require.Empty(t, res.Errors)
	require.Len(t, schemas, 1)
	schema := schemas[uri]
	require.NotNil(t, schema)
	return elm.New().RenderSchema(schema, schemas, opts)
}

func TestRenderSchema_RootPrimitiveHasNoAlias(t *testing.T) {
	src, diags := render(t, "http://example.com/n.json", `{"title":"N","type":"number"}`, js2e.Options{})
	assert.Empty(t, diags)
	assert.Contains(t, src, "module N exposing (..)")
	assert.NotContains(t, src, "type alias")
	assert.NotContains(t, src, "type N")
}

func TestRenderSchema_Enum(t *testing.T) {
	src, diags := render(t, "http://example.com/color.json",
		`{"title":"Color","type":"string","enum":["red","yellow","green","blue"]}`, js2e.Options{})
	assert.Empty(t, diags)

	assert.Contains(t, src, "type Color\n    = Red\n    | Yellow\n    | Green\n    | Blue")
	assert.Contains(t, src, "colorDecoder : Decode.Decoder Color")
	assert.Contains(t, src, `Decode.fail <| "Unknown color type: " ++ color`)
	assert.Contains(t, src, "\"red\" ->\n                        Decode.succeed Red")
	assert.Contains(t, src, "encodeColor : Color -> Encode.Value")
	assert.Contains(t, src, "Red ->\n            Encode.string \"red\"")
}

func TestRenderSchema_ObjectRequiredAndOptional(t *testing.T) {
	src, diags := render(t, "http://example.com/point.json",
		`{"title":"Point","type":"object","properties":{"x":{"type":"number"},"y":{"type":"number"}},"required":["x"]}`,
		js2e.Options{})
	assert.Empty(t, diags)

	assert.Contains(t, src, "type alias Point =\n    { x : Float\n    , y : Maybe Float\n    }")
	assert.Contains(t, src, "pointDecoder =\n    decode Point\n        |> required \"x\" Decode.float\n        |> optional \"y\" (Decode.nullable Decode.float) Nothing")
	assert.Contains(t, src, `[ ( "x", Encode.float point.x ) ]`)
	assert.Contains(t, src, "case point.y of\n                Just y ->")
	assert.Contains(t, src, "Nothing ->\n                    []")
	assert.Contains(t, src, "Encode.object <|\n            x ++ y")
}

func TestRenderSchema_EnumPropertyDecodesViaInterpreter(t *testing.T) {
	src, diags := render(t, "http://example.com/s.json", `{
		"title": "Light",
		"type": "object",
		"properties": {"state": {"type": "string", "enum": ["on", "off"]}},
		"required": ["state"]
	}`, js2e.Options{})
	assert.Empty(t, diags)

	// the enum child declares its own interpreter decoder, and the
	// object pipeline uses it
	assert.Contains(t, src, "type State\n    = On\n    | Off")
	assert.Contains(t, src, `|> required "state" stateDecoder`)
	assert.Contains(t, src, `Decode.fail <| "Unknown state type: " ++ state`)
}

func TestRenderSchema_ArrayAlias(t *testing.T) {
	src, diags := render(t, "http://example.com/l.json",
		`{"title":"Scores","type":"array","items":{"type":"integer"}}`, js2e.Options{})
	assert.Empty(t, diags)

	assert.Contains(t, src, "type alias Scores =\n    List Int")
	assert.Contains(t, src, "scoresDecoder =\n    Decode.list Decode.int")
	assert.Contains(t, src, "encodeScores scores =\n    Encode.list <| List.map Encode.int scores")
}

func TestRenderSchema_TupleByIndex(t *testing.T) {
	src, diags := render(t, "http://example.com/t.json",
		`{"title":"Pair","type":"array","items":[{"type":"number"},{"type":"string"}]}`, js2e.Options{})
	assert.Empty(t, diags)

	assert.Contains(t, src, "type alias Pair =\n    { item0 : Float\n    , item1 : String\n    }")
	assert.Contains(t, src, "|> custom (Decode.index 0 Decode.float)")
	assert.Contains(t, src, "|> custom (Decode.index 1 Decode.string)")
	assert.Contains(t, src, "Encode.float pair.item0")
}

func TestRenderSchema_UnionOfPrimitives(t *testing.T) {
	src, diags := render(t, "http://example.com/u.json",
		`{"title":"Id","type":["string","integer","null"]}`, js2e.Options{})
	assert.Empty(t, diags)

	assert.Contains(t, src, "type Id\n    = IdString String\n    | IdInt Int\n    | IdNull")
	assert.Contains(t, src, "Decode.map IdString Decode.string")
	assert.Contains(t, src, "Decode.null IdNull")
	assert.Contains(t, src, "IdNull ->\n            Encode.null")
}

func TestRenderSchema_OneOf(t *testing.T) {
	src, diags := render(t, "http://example.com/o.json", `{
		"title": "Value",
		"oneOf": [
			{"type": "object", "properties": {"a": {"type": "string"}}},
			{"type": "string"}
		]
	}`, js2e.Options{})
	assert.Empty(t, diags)

	assert.Contains(t, src, "Decode.oneOf")
	assert.Contains(t, src, "type Value\n    = ValueItem0 Item0\n    | ValueString String")
	assert.Contains(t, src, "Decode.map ValueItem0 item0Decoder")
}

func TestRenderSchema_AllOfFlattens(t *testing.T) {
	src, diags := render(t, "http://example.com/f.json", `{
		"title": "Fancy",
		"allOf": [
			{"type": "object", "properties": {"a": {"type": "string"}}, "required": ["a"]},
			{"type": "object", "properties": {"b": {"type": "integer"}}}
		]
	}`, js2e.Options{})
	assert.Empty(t, diags)

	assert.Contains(t, src, "type alias Fancy =\n    { a : String\n    , b : Maybe Int\n    }")
	assert.Contains(t, src, `|> required "a" Decode.string`)
	assert.Contains(t, src, `|> optional "b" (Decode.nullable Decode.int) Nothing`)
}

func TestRenderSchema_DescriptionBecomesDocComment(t *testing.T) {
	src, _ := render(t, "http://example.com/d.json",
		`{"title":"Doc","description":"A documented schema.","type":"object","properties":{"x":{"type":"string"}}}`,
		js2e.Options{})
	assert.Contains(t, src, "{-| A documented schema.")
}

func TestRenderSchema_DeterministicOutput(t *testing.T) {
	raw := `{"title":"S","type":"object","properties":{"b":{"type":"string"},"a":{"type":"integer"}}}`
	a, _ := render(t, "http://example.com/s.json", raw, js2e.Options{})
	b, _ := render(t, "http://example.com/s.json", raw, js2e.Options{})
	assert.Equal(t, a, b)
}

func TestFileName(t *testing.T) {
	schema := &js2e.SchemaDefinition{Title: "Circle Shape!"}
	assert.Equal(t, "CircleShape.elm", elm.New().FileName(schema, ""))
	assert.Equal(t, "Domain/CircleShape.elm", elm.New().FileName(schema, "Domain"))
	assert.Equal(t, "A/B/CircleShape.elm", elm.New().FileName(schema, "A.B"))
}
