// Package emitter defines the target-language backend surface. The
// parser side of the pipeline never depends on a concrete target; new
// languages register an Emitter and everything upstream stays as is.
package emitter

import (
	"fmt"
	"sort"
	"sync"

	js2e "github.com/albertored/json-schema-to-elm"
)

// Emitter renders resolved schemas into target-language source.
type Emitter interface {
	// FileName derives the output file key for a schema under the
	// configured root module, e.g. "Domain/Circle.elm".
	FileName(schema *js2e.SchemaDefinition, rootModule string) string
	// RenderSchema produces the source text for one schema. Emission
	// never fails hard: dangling references render a placeholder and
	// come back as diagnostics.
	RenderSchema(schema *js2e.SchemaDefinition, schemas js2e.SchemaDict, opts js2e.Options) (string, js2e.Diagnostics)
}

var (
	mu       sync.RWMutex
	registry = map[string]Emitter{}
)

// Register makes an emitter available under a target name ("elm").
// Registering the same name twice panics; it is a wiring bug.
func Register(name string, e Emitter) {
	mu.Lock()
	defer mu.Unlock()
	if _, dup := registry[name]; dup {
		panic(fmt.Sprintf("emitter: %q registered twice", name))
	}
	registry[name] = e
}

// Lookup returns the emitter registered under name.
func Lookup(name string) (Emitter, bool) {
	mu.RLock()
	defer mu.RUnlock()
	e, ok := registry[name]
	return e, ok
}

// Names lists the registered target names in sorted order.
func Names() []string {
	mu.RLock()
	defer mu.RUnlock()
	names := make([]string, 0, len(registry))
	for n := range registry {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
