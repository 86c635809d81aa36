package parser

import (
	"fmt"

	js2e "github.com/albertored/json-schema-to-elm"
)

// Result is what every sub-parser returns: the type dictionary
// fragment produced by the node and its descendants, plus ordered
// warning and error lists. Sibling results merge by dictionary union
// and list concatenation; a duplicate dictionary key is itself an
// error.
type Result struct {
	Types js2e.TypeDict
	// Order records dictionary keys in registration order.
	Order    []string
	Warnings js2e.Diagnostics
	Errors   js2e.Diagnostics
}

func newResult() Result {
	return Result{Types: js2e.TypeDict{}}
}

// register stores a node under key, recording a duplicate_type_key
// error when the key is already taken. First registration wins.
func (r *Result) register(key string, t js2e.Type) {
	if _, exists := r.Types[key]; exists {
		r.Errors = js2e.AppendDiagnostics(r.Errors, js2e.NewDiagnostic(
			js2e.KindDuplicateTypeKey, key,
			fmt.Sprintf("type already registered under %q", key)))
		return
	}
	r.Types[key] = t
	r.Order = append(r.Order, key)
}

// merge folds another result into this one, preserving the other's
// registration order.
func (r *Result) merge(other Result) {
	for _, key := range other.Order {
		r.register(key, other.Types[key])
	}
	r.Warnings = js2e.AppendDiagnostics(r.Warnings, other.Warnings...)
	r.Errors = js2e.AppendDiagnostics(r.Errors, other.Errors...)
}

func (r *Result) warnf(kind, identifier, format string, args ...any) {
	r.Warnings = js2e.AppendDiagnostics(r.Warnings,
		js2e.NewDiagnostic(kind, identifier, fmt.Sprintf(format, args...)))
}

func (r *Result) errorf(kind, identifier, format string, args ...any) {
	r.Errors = js2e.AppendDiagnostics(r.Errors,
		js2e.NewDiagnostic(kind, identifier, fmt.Sprintf(format, args...)))
}
