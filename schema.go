package js2e

import (
	"net/url"
	"sort"
)

// TypeDict maps identifier strings to IR nodes. Every node appears at
// least under its Path string; a non-root node that carries its own id
// also appears under the "<id>#<name>" alias, and the schema root under
// the bare "<id>". Alias entries point at the same node value.
type TypeDict map[string]Type

// SortedKeys returns the dictionary keys in lexicographic order.
// Emission iterates this, never the raw map, so output is stable.
func (d TypeDict) SortedKeys() []string {
	keys := make([]string, 0, len(d))
	for k := range d {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// SchemaDefinition is the parsed form of one input document.
type SchemaDefinition struct {
	// ID is the schema's absolute URI, from its id member or the
	// supplied document URI.
	ID          *url.URL
	Title       string
	Description string
	Types       TypeDict
	// DeclOrder lists the dictionary keys in registration (DFS)
	// order, for emitters running with declaration_order sorting.
	DeclOrder []string
}

// NodeAt looks up an identifier string in the type dictionary.
func (s *SchemaDefinition) NodeAt(key string) (Type, bool) {
	t, ok := s.Types[key]
	return t, ok
}

// SchemaDict is the whole-program namespace: absolute schema URI
// string -> definition. Built once by parsing, read-only afterwards.
type SchemaDict map[string]*SchemaDefinition

// SortedURIs returns the schema URIs in lexicographic order.
func (d SchemaDict) SortedURIs() []string {
	uris := make([]string, 0, len(d))
	for u := range d {
		uris = append(uris, u)
	}
	sort.Strings(uris)
	return uris
}

// SchemaResult is the output of a whole-program run: emitted files
// keyed by relative output path, plus accumulated diagnostics.
type SchemaResult struct {
	Files    map[string]string
	Errors   Diagnostics
	Warnings Diagnostics
}

// SortedFileNames returns the emitted file keys in lexicographic order.
func (r SchemaResult) SortedFileNames() []string {
	names := make([]string, 0, len(r.Files))
	for n := range r.Files {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
