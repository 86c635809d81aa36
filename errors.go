package js2e

import (
	"errors"
	"fmt"
	"strings"
)

// Diagnostic kinds (exported consts for IDE completion and type safety
// by convention).
const (
	KindUnknownNodeType               = "unknown_node_type"
	KindDuplicateTypeKey              = "duplicate_type_key"
	KindUnresolvedReference           = "unresolved_reference"
	KindCyclicReference               = "cyclic_reference"
	KindInvalidEnumValue              = "invalid_enum_value"
	KindInvalidIDURI                  = "invalid_id_uri"
	KindMissingRequiredPropertyTarget = "missing_required_property_target"
	// Warning-only kinds.
	KindMissingSchemaTitle = "missing_schema_title"
)

// Diagnostic is a single parse or emit finding.
type Diagnostic struct {
	Kind       string // One of the kinds listed above.
	Identifier string // Path or URI string of the offending node.
	Message    string
	// Params carries structured parameters (e.g. {"fingerprint": "..."})
	// for rendering and observability.
	Params map[string]any
}

// Diagnostics is an ordered collection that implements error. Ordering
// is stable: schema processing order, then DFS order within a schema.
type Diagnostics []Diagnostic

// Error summarizes the first few diagnostics.
func (ds Diagnostics) Error() string {
	if len(ds) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(ds)
	lim := n
	if lim > maxShown {
		lim = maxShown
	}
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		d := ds[i]
		// e.g. unresolved_reference at #/circle/color
		fmt.Fprintf(b, "%s at %s", d.Kind, d.Identifier)
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// AppendDiagnostics appends to the destination, initializing the slice
// when needed.
func AppendDiagnostics(dst Diagnostics, more ...Diagnostic) Diagnostics {
	if dst == nil {
		dst = Diagnostics{}
	}
	dst = append(dst, more...)
	return dst
}

// AsDiagnostics extracts Diagnostics from an error using errors.As
// internally.
func AsDiagnostics(err error) (Diagnostics, bool) {
	if err == nil {
		return nil, false
	}
	var ds Diagnostics
	if errors.As(err, &ds) {
		return ds, true
	}
	return nil, false
}

// NewDiagnostic builds a Diagnostic from alternating key/value params.
func NewDiagnostic(kind, identifier, msg string, kv ...any) Diagnostic {
	var m map[string]any
	if len(kv) > 0 {
		m = make(map[string]any, len(kv)/2)
		for i := 0; i+1 < len(kv); i += 2 {
			m[fmt.Sprint(kv[i])] = kv[i+1]
		}
	}
	return Diagnostic{Kind: kind, Identifier: identifier, Message: msg, Params: m}
}
