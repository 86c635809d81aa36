// Package elm is the reference emitter. It renders each schema into
// one Elm module holding type aliases, Json.Decode.Pipeline decoders
// and Json.Encode encoders, in the style of the classic
// json-schema-to-elm output.
package elm

import (
	"strings"

	js2e "github.com/albertored/json-schema-to-elm"
	"github.com/albertored/json-schema-to-elm/emitter"
)

// Emitter implements emitter.Emitter for Elm.
type Emitter struct{}

// New returns the Elm emitter.
func New() *Emitter { return &Emitter{} }

func init() {
	emitter.Register("elm", New())
}

// FileName places the module under the root module directory, one file
// per schema: "Domain/Circle.elm".
func (e *Emitter) FileName(schema *js2e.SchemaDefinition, rootModule string) string {
	name := moduleTitle(schema.Title) + ".elm"
	if rootModule == "" {
		return name
	}
	return strings.ReplaceAll(rootModule, ".", "/") + "/" + name
}

// RenderSchema walks the schema's type dictionary in the configured
// order and renders a declaration, decoder and encoder for every node
// that owns a declaration. Alias keys (absolute-URI duplicates) are
// skipped so nothing is emitted twice.
func (e *Emitter) RenderSchema(schema *js2e.SchemaDefinition, schemas js2e.SchemaDict, opts js2e.Options) (string, js2e.Diagnostics) {
	r := &renderer{
		schema:  schema,
		schemas: schemas,
		opts:    opts,
		seen:    map[string]bool{},
	}

	keys := schema.Types.SortedKeys()
	if opts.EmitSort == js2e.EmitSortDeclarationOrder {
		keys = schema.DeclOrder
	}

	var blocks []string
	for _, key := range keys {
		node := schema.Types[key]
		if key != node.TypePath().String() {
			continue // URI alias of a node already walked
		}
		if b := r.renderNode(node); b != "" {
			blocks = append(blocks, b)
		}
	}

	var b strings.Builder
	b.WriteString("module " + moduleName(opts.RootModule, schema.Title) + " exposing (..)\n")
	if schema.Description != "" {
		b.WriteString("\n{-| " + schema.Description + "\n-}\n")
	}
	b.WriteString("\nimport Json.Decode as Decode\n")
	b.WriteString("import Json.Decode.Pipeline\n    exposing\n        ( custom\n        , decode\n        , optional\n        , required\n        )\n")
	b.WriteString("import Json.Encode as Encode\n")
	for _, imp := range r.imports {
		b.WriteString("import " + imp + "\n")
	}
	for _, block := range blocks {
		b.WriteString("\n\n" + block + "\n")
	}
	return b.String(), r.diags
}

// renderer accumulates cross-schema imports and emission diagnostics
// while walking one schema.
type renderer struct {
	schema  *js2e.SchemaDefinition
	schemas js2e.SchemaDict
	opts    js2e.Options
	imports []string // first-occurrence order
	seen    map[string]bool
	diags   js2e.Diagnostics
}

func (r *renderer) addImport(module string) {
	if r.seen[module] {
		return
	}
	r.seen[module] = true
	r.imports = append(r.imports, module)
}

func (r *renderer) diag(d js2e.Diagnostic) {
	r.diags = js2e.AppendDiagnostics(r.diags, d)
}

// ref is everything a use site needs to mention a type: its Elm type
// expression, decoder and encoder expressions, and the bare name used
// when deriving constructor names.
type ref struct {
	typ     string
	decoder string
	encoder string
	bare    string
}

var unknownRef = ref{
	typ:     "Unknown",
	decoder: `(Decode.fail "unresolved reference")`,
	encoder: "(\\_ -> Encode.null)",
	bare:    "Unknown",
}

// refOf renders the use-site reference for the type at path p in the
// current schema. A missing node yields the Unknown placeholder plus
// one diagnostic.
func (r *renderer) refOf(p js2e.Path) ref {
	return r.refOfPathIn(r.schema, p)
}

// refOfPathIn is refOf against an explicit owning schema; allOf
// flattening needs it when merged properties live in another document.
func (r *renderer) refOfPathIn(owner *js2e.SchemaDefinition, p js2e.Path) ref {
	node, ok := owner.Types[p.String()]
	if !ok {
		r.diag(js2e.NewDiagnostic(js2e.KindUnresolvedReference, p.String(),
			"no type registered at "+p.String()))
		return unknownRef
	}
	return r.refOfNode(node, owner)
}

// refOfNode renders a reference to a concrete node owned by a given
// schema, chasing TypeReferences and qualifying cross-schema names
// with their module.
func (r *renderer) refOfNode(node js2e.Type, owner *js2e.SchemaDefinition) ref {
	switch n := node.(type) {
	case *js2e.Primitive:
		p := elmPrimitives[n.BaseType]
		return ref{typ: p.typ, decoder: p.decoder, encoder: p.encoder, bare: p.typ}
	case *js2e.TypeReference:
		res, d := js2e.Resolve(n.Target, owner, r.schemas)
		if d != nil {
			r.diag(*d)
			return unknownRef
		}
		return r.refOfNode(res.Node, res.Schema)
	}

	name := r.declName(node, owner)
	if !sameSchema(owner, r.schema) {
		module := moduleName(r.opts.RootModule, owner.Title)
		r.addImport(module)
		return ref{
			typ:     module + "." + name,
			decoder: module + "." + decoderIdent(name),
			encoder: module + "." + encoderIdent(name),
			bare:    name,
		}
	}
	return ref{
		typ:     name,
		decoder: decoderIdent(name),
		encoder: encoderIdent(name),
		bare:    name,
	}
}

// declName is the Elm type name a node declares: the schema title for
// the root node, its own (capitalized) name otherwise.
func (r *renderer) declName(node js2e.Type, owner *js2e.SchemaDefinition) string {
	if node.TypePath().IsRoot() {
		return moduleTitle(owner.Title)
	}
	return typeIdent(node.TypeName())
}

func sameSchema(a, b *js2e.SchemaDefinition) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil || a.ID == nil || b.ID == nil {
		return false
	}
	return a.ID.String() == b.ID.String()
}
