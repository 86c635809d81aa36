package elm

import (
	"fmt"
	"strings"
)

// elmPrimitives maps JSON base types onto Elm types and their codec
// expressions.
var elmPrimitives = map[string]struct {
	typ     string
	decoder string
	encoder string
}{
	"string":  {"String", "Decode.string", "Encode.string"},
	"integer": {"Int", "Decode.int", "Encode.int"},
	"number":  {"Float", "Decode.float", "Encode.float"},
	"boolean": {"Bool", "Decode.bool", "Encode.bool"},
	"null":    {"()", "(Decode.null ())", "(\\_ -> Encode.null)"},
}

// normalizeIdent keeps only alphanumerics so schema names become valid
// Elm identifiers. A leading digit gets an "Item" prefix (tuple and
// composition children are named "0", "1", ...).
func normalizeIdent(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		}
	}
	out := b.String()
	if out == "" {
		return "Unnamed"
	}
	if out[0] >= '0' && out[0] <= '9' {
		out = "Item" + out
	}
	return out
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}

// moduleTitle normalizes a schema title into an Elm module segment.
func moduleTitle(title string) string {
	return capitalize(normalizeIdent(title))
}

// moduleName joins the root module prefix and the schema title into a
// dotted Elm module name.
func moduleName(rootModule, title string) string {
	t := moduleTitle(title)
	if rootModule == "" {
		return t
	}
	return rootModule + "." + t
}

// typeIdent derives the declared Elm type name from a node name.
func typeIdent(name string) string {
	return capitalize(normalizeIdent(name))
}

// fieldIdent derives an Elm record field name from a property name.
func fieldIdent(name string) string {
	out := lowerFirst(normalizeIdent(name))
	if out[0] >= '0' && out[0] <= '9' {
		out = "field" + out
	}
	return out
}

func decoderIdent(typeName string) string {
	return lowerFirst(typeName) + "Decoder"
}

func encoderIdent(typeName string) string {
	return "encode" + typeName
}

// enumCtor derives a constructor name for one enum value.
func enumCtor(typeName string, value any) string {
	switch v := value.(type) {
	case string:
		return capitalize(normalizeIdent(v))
	case bool:
		if v {
			return typeName + "True"
		}
		return typeName + "False"
	case nil:
		return typeName + "Null"
	default:
		return typeName + normalizeIdent(fmt.Sprintf("%v", v))
	}
}

// enumLiteral renders an enum value as Elm source for the matching
// decode branch and encoder.
func enumLiteral(base string, value any) string {
	if base == "string" {
		return fmt.Sprintf("%q", value)
	}
	return fmt.Sprintf("%v", value)
}
