package js2e

import "net/url"

// Kind identifies an IR node variant.
type Kind int

const (
	KindPrimitive Kind = iota
	KindEnum
	KindObject
	KindArray
	KindTuple
	KindUnion
	KindOneOf
	KindAnyOf
	KindAllOf
	KindTypeReference
	KindDefinitions
)

// String returns the JSON Schema facing name of the kind.
func (k Kind) String() string {
	switch k {
	case KindPrimitive:
		return "primitive"
	case KindEnum:
		return "enum"
	case KindObject:
		return "object"
	case KindArray:
		return "array"
	case KindTuple:
		return "tuple"
	case KindUnion:
		return "union"
	case KindOneOf:
		return "oneOf"
	case KindAnyOf:
		return "anyOf"
	case KindAllOf:
		return "allOf"
	case KindTypeReference:
		return "$ref"
	case KindDefinitions:
		return "definitions"
	}
	return "unknown"
}

// Type is the closed IR node interface. Concrete variants are the
// structs below; dispatch over Kind() is expected to be exhaustive.
type Type interface {
	Kind() Kind
	TypeName() string
	TypePath() Path
}

// TypeIdentifier points at a type either by intra-document Path or by
// absolute URI. Exactly one of the two is set.
type TypeIdentifier struct {
	Path Path
	URI  *url.URL
}

// IsURI reports whether the identifier is a URI rather than a Path:
// either absolute, or fragment-only ("#point") naming an id alias in
// the current document.
func (id TypeIdentifier) IsURI() bool { return id.URI != nil }

// String renders the lookup key form of the identifier.
func (id TypeIdentifier) String() string {
	if id.URI != nil {
		return id.URI.String()
	}
	return id.Path.String()
}

// PathIdentifier wraps a Path as a TypeIdentifier.
func PathIdentifier(p Path) TypeIdentifier { return TypeIdentifier{Path: p} }

// URIIdentifier wraps a URI as a TypeIdentifier.
func URIIdentifier(u *url.URL) TypeIdentifier { return TypeIdentifier{URI: u} }

// Primitive is a leaf node for the JSON base types. Primitives carry
// no standalone emitted declaration; they are inlined at use sites.
type Primitive struct {
	Name        string
	Path        Path
	BaseType    string // "string" | "integer" | "number" | "boolean" | "null"
	Description string
}

func (p *Primitive) Kind() Kind       { return KindPrimitive }
func (p *Primitive) TypeName() string { return p.Name }
func (p *Primitive) TypePath() Path   { return p.Path }

// Enum restricts a primitive base type to a fixed list of literals.
// Values keep the document order and are pairwise distinct.
type Enum struct {
	Name        string
	Path        Path
	BaseType    string
	Values      []any
	Description string
}

func (e *Enum) Kind() Kind       { return KindEnum }
func (e *Enum) TypeName() string { return e.Name }
func (e *Enum) TypePath() Path   { return e.Path }

// Property maps a JSON member name to the Path of its parsed child
// type. Objects store properties sorted by name so that iteration is
// deterministic.
type Property struct {
	Name string
	Type Path
}

// Object is a record-like node. Required holds the subset of property
// names that must be present; properties reference children by Path
// only, never by inlined node value.
type Object struct {
	Name        string
	Path        Path
	Properties  []Property
	Required    []string
	Description string
}

func (o *Object) Kind() Kind       { return KindObject }
func (o *Object) TypeName() string { return o.Name }
func (o *Object) TypePath() Path   { return o.Path }

// IsRequired reports whether the named property is in the required set.
func (o *Object) IsRequired(name string) bool {
	for _, r := range o.Required {
		if r == name {
			return true
		}
	}
	return false
}

// Array is a homogeneous list whose single item type lives at Items.
type Array struct {
	Name        string
	Path        Path
	Items       Path
	Description string
}

func (a *Array) Kind() Kind       { return KindArray }
func (a *Array) TypeName() string { return a.Name }
func (a *Array) TypePath() Path   { return a.Path }

// Tuple is a positional list; children are named "0", "1", ...
type Tuple struct {
	Name        string
	Path        Path
	Items       []Path
	Description string
}

func (t *Tuple) Kind() Kind       { return KindTuple }
func (t *Tuple) TypeName() string { return t.Name }
func (t *Tuple) TypePath() Path   { return t.Path }

// Union is a choice between primitive base types ("type": ["...", ...]).
type Union struct {
	Name        string
	Path        Path
	Types       []string
	Description string
}

func (u *Union) Kind() Kind       { return KindUnion }
func (u *Union) TypeName() string { return u.Name }
func (u *Union) TypePath() Path   { return u.Path }

// Composite covers the oneOf/anyOf/allOf keywords. Comp is one of
// KindOneOf, KindAnyOf, KindAllOf; alternatives reference positional
// children by Path.
type Composite struct {
	Name         string
	Path         Path
	Comp         Kind
	Alternatives []Path
	Description  string
}

func (c *Composite) Kind() Kind       { return c.Comp }
func (c *Composite) TypeName() string { return c.Name }
func (c *Composite) TypePath() Path   { return c.Path }

// TypeReference carries a $ref target. It produces no declaration of
// its own; use sites chase the target through the resolver.
type TypeReference struct {
	Name   string
	Path   Path
	Target TypeIdentifier
}

func (r *TypeReference) Kind() Kind       { return KindTypeReference }
func (r *TypeReference) TypeName() string { return r.Name }
func (r *TypeReference) TypePath() Path   { return r.Path }

// Definitions is a transparent grouping node. Its children register in
// the type dictionary but the node itself emits nothing.
type Definitions struct {
	Name        string
	Path        Path
	Children    []Path
	Description string
}

func (d *Definitions) Kind() Kind       { return KindDefinitions }
func (d *Definitions) TypeName() string { return d.Name }
func (d *Definitions) TypePath() Path   { return d.Path }
