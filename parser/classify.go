package parser

import (
	"fmt"
	"sort"
	"strings"

	js2e "github.com/albertored/json-schema-to-elm"
)

// primitiveTypes is the set of JSON Schema base type names.
var primitiveTypes = map[string]bool{
	"string":  true,
	"integer": true,
	"number":  true,
	"boolean": true,
	"null":    true,
}

// classify decides which IR kind a raw schema node parses as. The
// checks run in a fixed order so ambiguous nodes resolve the same way
// every time. isRoot gates the definitions-group case, which only
// applies to a document root.
func classify(v any, isRoot bool) (js2e.Kind, bool) {
	node, ok := v.(map[string]any)
	if !ok {
		return 0, false
	}
	switch {
	case hasKey(node, "allOf"):
		return js2e.KindAllOf, true
	case hasKey(node, "anyOf"):
		return js2e.KindAnyOf, true
	case hasKey(node, "oneOf"):
		return js2e.KindOneOf, true
	case hasKey(node, "enum"):
		return js2e.KindEnum, true
	}
	if node["type"] == "array" {
		switch node["items"].(type) {
		case []any:
			return js2e.KindTuple, true
		case map[string]any:
			return js2e.KindArray, true
		}
		// "type": "array" without items falls through and fails
		// classification below.
	}
	if node["type"] == "object" || hasKey(node, "properties") {
		return js2e.KindObject, true
	}
	if types, ok := node["type"].([]any); ok && allStrings(types) {
		return js2e.KindUnion, true
	}
	if t, ok := node["type"].(string); ok && primitiveTypes[t] {
		return js2e.KindPrimitive, true
	}
	if hasKey(node, "$ref") {
		return js2e.KindTypeReference, true
	}
	if isRoot && hasKey(node, "definitions") {
		return js2e.KindDefinitions, true
	}
	return 0, false
}

func hasKey(node map[string]any, key string) bool {
	_, ok := node[key]
	return ok
}

func allStrings(vs []any) bool {
	for _, v := range vs {
		if _, ok := v.(string); !ok {
			return false
		}
	}
	return len(vs) > 0
}

// fingerprint summarizes an unclassifiable node for diagnostics.
func fingerprint(v any) string {
	node, ok := v.(map[string]any)
	if !ok {
		return fmt.Sprintf("%T", v)
	}
	keys := make([]string, 0, len(node))
	for k := range node {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return "{" + strings.Join(keys, ",") + "}"
}
