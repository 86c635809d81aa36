package js2e

import (
	"fmt"
	"net/url"
)

// Resolution is a successfully resolved identifier: the concrete node
// plus the schema whose dictionary it lives in (emitters need the
// owning schema to qualify cross-schema names).
type Resolution struct {
	Node   Type
	Schema *SchemaDefinition
}

// Resolve chases an identifier to a concrete IR node. Paths are looked
// up in the current schema; URIs are split into base and fragment and
// looked up across the schema dictionary. TypeReference nodes are
// followed transitively. A missing key or a reference cycle yields a
// Diagnostic instead of a Resolution.
func Resolve(id TypeIdentifier, current *SchemaDefinition, schemas SchemaDict) (Resolution, *Diagnostic) {
	r := resolver{schemas: schemas, visited: map[string]bool{}}
	return r.resolve(id, current)
}

type resolver struct {
	schemas SchemaDict
	visited map[string]bool
}

func (r *resolver) resolve(id TypeIdentifier, current *SchemaDefinition) (Resolution, *Diagnostic) {
	key := visitKey(id, current)
	if r.visited[key] {
		d := NewDiagnostic(KindCyclicReference, id.String(),
			fmt.Sprintf("reference cycle through %q", id.String()))
		return Resolution{}, &d
	}
	r.visited[key] = true

	if id.IsURI() && id.URI.Scheme != "" {
		return r.resolveURI(id.URI)
	}
	return r.resolvePath(id, current)
}

func (r *resolver) resolvePath(id TypeIdentifier, current *SchemaDefinition) (Resolution, *Diagnostic) {
	if current == nil {
		d := NewDiagnostic(KindUnresolvedReference, id.String(), "no current schema for local reference")
		return Resolution{}, &d
	}
	lookup := id.Path.String()
	if id.IsURI() {
		// A fragment-only URI such as "#point" names a node inside
		// the current document; try its absolute-URI alias first,
		// then the root-child path form.
		frag := id.URI.Fragment
		if frag == "" {
			lookup = RootSegment
		} else {
			if sid := schemaID(current); sid != "" {
				if node, ok := current.NodeAt(sid + "#" + frag); ok {
					return r.chase(node, current)
				}
			}
			lookup = RootSegment + "/" + frag
		}
	}
	node, ok := current.NodeAt(lookup)
	if !ok {
		d := NewDiagnostic(KindUnresolvedReference, id.String(),
			fmt.Sprintf("no type registered at %q in schema %s", lookup, schemaID(current)))
		return Resolution{}, &d
	}
	return r.chase(node, current)
}

func (r *resolver) resolveURI(u *url.URL) (Resolution, *Diagnostic) {
	base := *u
	base.Fragment = ""
	target, ok := r.schemas[base.String()]
	if !ok {
		d := NewDiagnostic(KindUnresolvedReference, u.String(),
			fmt.Sprintf("no schema registered under %q", base.String()))
		return Resolution{}, &d
	}
	lookup := base.String()
	if u.Fragment != "" {
		lookup = base.String() + "#" + u.Fragment
	}
	node, ok := target.NodeAt(lookup)
	if !ok {
		d := NewDiagnostic(KindUnresolvedReference, u.String(),
			fmt.Sprintf("no type registered at %q in schema %s", lookup, schemaID(target)))
		return Resolution{}, &d
	}
	return r.chase(node, target)
}

// chase follows TypeReference nodes until a concrete node is reached.
func (r *resolver) chase(node Type, owner *SchemaDefinition) (Resolution, *Diagnostic) {
	ref, ok := node.(*TypeReference)
	if !ok {
		return Resolution{Node: node, Schema: owner}, nil
	}
	return r.resolve(ref.Target, owner)
}

func visitKey(id TypeIdentifier, current *SchemaDefinition) string {
	return schemaID(current) + "|" + id.String()
}

func schemaID(s *SchemaDefinition) string {
	if s == nil || s.ID == nil {
		return ""
	}
	return s.ID.String()
}
