// Package parser turns raw JSON Schema documents into the IR type
// dictionaries consumed by emitters. Classification, identity and
// registration follow draft-04 semantics for the keyword subset the
// generator supports.
package parser

import (
	"fmt"
	"net/url"
	"path"
	"sort"
	"strconv"
	"strings"

	js2e "github.com/albertored/json-schema-to-elm"
)

// nodeCtx is the identity a parent threads into each child: the
// nearest ancestor's absolute URI, the child's canonical Path and its
// name (the last path segment).
type nodeCtx struct {
	parentURI *url.URL
	path      js2e.Path
	name      string
}

// ParseSchema parses one document into a SchemaDefinition. The
// returned Result carries the warnings and errors collected across the
// whole traversal; a partial dictionary is still returned so sibling
// errors surface in one run. The schema is nil only when the root node
// itself cannot be classified.
func ParseSchema(doc js2e.Document) (*js2e.SchemaDefinition, Result) {
	res := newResult()
	root, ok := doc.Value.(map[string]any)
	if !ok {
		res.errorf(js2e.KindUnknownNodeType, doc.URI,
			"schema root is not an object (%s)", fingerprint(doc.Value))
		return nil, res
	}

	docURI, err := url.Parse(doc.URI)
	if err != nil {
		res.errorf(js2e.KindInvalidIDURI, doc.URI, "document URI is not parseable: %v", err)
		docURI = nil
	}

	ctx := nodeCtx{parentURI: docURI, path: js2e.RootPath(), name: js2e.RootSegment}
	nodeRes := parseNode(root, ctx, true)
	res.merge(nodeRes)
	if _, ok := classify(root, true); !ok {
		return nil, res
	}

	schema := &js2e.SchemaDefinition{
		ID:          effectiveID(root, docURI),
		Title:       stringField(root, "title"),
		Description: stringField(root, "description"),
		Types:       res.Types,
		DeclOrder:   res.Order,
	}
	return schema, res
}

// ParseSchemas runs ParseSchema over every input in order and builds
// the whole-program schema dictionary. Two documents asserting the
// same id produce one duplicate_type_key diagnostic; the first-seen
// schema is retained.
func ParseSchemas(docs []js2e.Document) (js2e.SchemaDict, Result) {
	res := newResult()
	schemas := js2e.SchemaDict{}
	for i, doc := range docs {
		schema, r := ParseSchema(doc)
		res.Warnings = js2e.AppendDiagnostics(res.Warnings, r.Warnings...)
		res.Errors = js2e.AppendDiagnostics(res.Errors, r.Errors...)
		if schema == nil {
			continue
		}
		if schema.Title == "" {
			schema.Title = fallbackTitle(schema.ID, i)
			res.warnf(js2e.KindMissingSchemaTitle, schemaKey(schema, doc),
				"schema has no title; using %q", schema.Title)
		}
		key := schemaKey(schema, doc)
		if _, exists := schemas[key]; exists {
			res.errorf(js2e.KindDuplicateTypeKey, key,
				"another schema already registered under %q; keeping the first", key)
			continue
		}
		schemas[key] = schema
	}
	return schemas, res
}

// parseNode classifies a raw node and dispatches to the matching
// sub-parser. Every sub-parser produces the node itself plus the
// merged results of its children; parseNode then registers the node
// under its Path string and, when it carries an id, under the
// absolute-URI alias as well.
func parseNode(v any, ctx nodeCtx, isRoot bool) Result {
	res := newResult()
	kind, ok := classify(v, isRoot)
	if !ok {
		res.errorf(js2e.KindUnknownNodeType, ctx.path.String(),
			"could not classify node %q (%s)", ctx.name, fingerprint(v))
		return res
	}
	node := v.(map[string]any)

	ownID, childParent := nodeIdentity(node, ctx, &res)
	childCtx := func(name string) nodeCtx {
		return nodeCtx{parentURI: childParent, path: ctx.path.Child(name), name: name}
	}

	var t js2e.Type
	switch kind {
	case js2e.KindPrimitive:
		t = parsePrimitive(node, ctx)
	case js2e.KindEnum:
		t = parseEnum(node, ctx, &res)
	case js2e.KindObject:
		t = parseObject(node, ctx, childParent, childCtx, &res)
	case js2e.KindArray:
		t = parseArray(node, ctx, childCtx, &res)
	case js2e.KindTuple:
		t = parseTuple(node, ctx, childCtx, &res)
	case js2e.KindUnion:
		t = parseUnion(node, ctx, &res)
	case js2e.KindOneOf, js2e.KindAnyOf, js2e.KindAllOf:
		t = parseComposite(node, kind, ctx, childCtx, &res)
	case js2e.KindTypeReference:
		t = parseTypeReference(node, ctx, &res)
	case js2e.KindDefinitions:
		t = parseDefinitions(node, ctx, childParent, &res)
	}
	if t == nil {
		return res
	}

	res.register(ctx.path.String(), t)
	switch {
	case isRoot:
		// The root's id is in effect even when inherited from the
		// document URI; register the bare absolute key so URI lookups
		// with an empty fragment land here.
		if id := firstNonNil(ownID, ctx.parentURI); id != nil && id.String() != "" {
			res.register(id.String(), t)
		}
	case ownID != nil:
		res.register(aliasKey(ownID, ctx.name), t)
	}
	return res
}

// nodeIdentity applies the id rules: a urn id is used as-is, any other
// id merges onto the inherited parent URI, and children inherit the
// node's own id when it has a non-urn scheme.
func nodeIdentity(node map[string]any, ctx nodeCtx, res *Result) (ownID, childParent *url.URL) {
	childParent = ctx.parentURI
	raw, ok := node["id"].(string)
	if !ok || raw == "" {
		return nil, childParent
	}
	u, err := url.Parse(raw)
	if err != nil {
		res.errorf(js2e.KindInvalidIDURI, ctx.path.String(), "id %q is not a valid URI: %v", raw, err)
		return nil, childParent
	}
	if u.Scheme == "urn" {
		return u, childParent
	}
	if ctx.parentURI != nil {
		u = ctx.parentURI.ResolveReference(u)
	}
	if u.Scheme != "" {
		childParent = u
	}
	return u, childParent
}

func parsePrimitive(node map[string]any, ctx nodeCtx) js2e.Type {
	return &js2e.Primitive{
		Name:        ctx.name,
		Path:        ctx.path,
		BaseType:    node["type"].(string),
		Description: stringField(node, "description"),
	}
}

func parseEnum(node map[string]any, ctx nodeCtx, res *Result) js2e.Type {
	base := stringField(node, "type")
	if base == "" {
		base = "string"
	}
	values, ok := node["enum"].([]any)
	if !ok || len(values) == 0 {
		res.errorf(js2e.KindInvalidEnumValue, ctx.path.String(),
			"enum %q has no values", ctx.name)
	}
	seen := map[string]bool{}
	for _, v := range values {
		if !enumValueMatches(base, v) {
			res.errorf(js2e.KindInvalidEnumValue, ctx.path.String(),
				"enum %q value %v does not match base type %s", ctx.name, v, base)
		}
		key := fmt.Sprintf("%v", v)
		if seen[key] {
			res.errorf(js2e.KindInvalidEnumValue, ctx.path.String(),
				"enum %q value %v occurs more than once", ctx.name, v)
		}
		seen[key] = true
	}
	return &js2e.Enum{
		Name:        ctx.name,
		Path:        ctx.path,
		BaseType:    base,
		Values:      values,
		Description: stringField(node, "description"),
	}
}

func enumValueMatches(base string, v any) bool {
	switch base {
	case "string":
		_, ok := v.(string)
		return ok
	case "integer":
		f, ok := v.(float64)
		return ok && f == float64(int64(f))
	case "number":
		_, ok := v.(float64)
		return ok
	case "boolean":
		_, ok := v.(bool)
		return ok
	case "null":
		return v == nil
	}
	return false
}

func parseObject(node map[string]any, ctx nodeCtx, childParent *url.URL, child func(string) nodeCtx, res *Result) js2e.Type {
	props, _ := node["properties"].(map[string]any)
	names := make([]string, 0, len(props))
	for name := range props {
		names = append(names, name)
	}
	sort.Strings(names)

	properties := make([]js2e.Property, 0, len(names))
	for _, name := range names {
		cctx := child(name)
		res.merge(parseNode(props[name], cctx, false))
		properties = append(properties, js2e.Property{Name: name, Type: cctx.path})
	}

	var required []string
	if raw, ok := node["required"].([]any); ok {
		for _, rv := range raw {
			name, ok := rv.(string)
			if !ok {
				continue
			}
			required = append(required, name)
			if _, present := props[name]; !present {
				res.errorf(js2e.KindMissingRequiredPropertyTarget, ctx.path.String(),
					"required property %q is not declared in properties", name)
			}
		}
	}

	// Objects may carry a local definitions block; its members are
	// registered so pointer references into them resolve, but they are
	// not properties.
	parseDefinitionsMembers(node, ctx, childParent, res)

	return &js2e.Object{
		Name:        ctx.name,
		Path:        ctx.path,
		Properties:  properties,
		Required:    required,
		Description: stringField(node, "description"),
	}
}

func parseArray(node map[string]any, ctx nodeCtx, child func(string) nodeCtx, res *Result) js2e.Type {
	items := node["items"].(map[string]any)
	cctx := child("items")
	res.merge(parseNode(items, cctx, false))
	return &js2e.Array{
		Name:        ctx.name,
		Path:        ctx.path,
		Items:       cctx.path,
		Description: stringField(node, "description"),
	}
}

func parseTuple(node map[string]any, ctx nodeCtx, child func(string) nodeCtx, res *Result) js2e.Type {
	items := node["items"].([]any)
	paths := make([]js2e.Path, 0, len(items))
	for i, item := range items {
		cctx := child(strconv.Itoa(i))
		res.merge(parseNode(item, cctx, false))
		paths = append(paths, cctx.path)
	}
	return &js2e.Tuple{
		Name:        ctx.name,
		Path:        ctx.path,
		Items:       paths,
		Description: stringField(node, "description"),
	}
}

func parseUnion(node map[string]any, ctx nodeCtx, res *Result) js2e.Type {
	raw := node["type"].([]any)
	types := make([]string, 0, len(raw))
	for _, v := range raw {
		name := v.(string)
		if !primitiveTypes[name] {
			res.errorf(js2e.KindUnknownNodeType, ctx.path.String(),
				"union member %q is not a primitive base type", name)
			continue
		}
		types = append(types, name)
	}
	return &js2e.Union{
		Name:        ctx.name,
		Path:        ctx.path,
		Types:       types,
		Description: stringField(node, "description"),
	}
}

func parseComposite(node map[string]any, kind js2e.Kind, ctx nodeCtx, child func(string) nodeCtx, res *Result) js2e.Type {
	keyword := kind.String()
	list, ok := node[keyword].([]any)
	if !ok {
		res.errorf(js2e.KindUnknownNodeType, ctx.path.String(),
			"%s of %q is not a list", keyword, ctx.name)
		return nil
	}
	alts := make([]js2e.Path, 0, len(list))
	for i, alt := range list {
		cctx := child(strconv.Itoa(i))
		res.merge(parseNode(alt, cctx, false))
		alts = append(alts, cctx.path)
	}
	return &js2e.Composite{
		Name:         ctx.name,
		Path:         ctx.path,
		Comp:         kind,
		Alternatives: alts,
		Description:  stringField(node, "description"),
	}
}

// parseTypeReference stores the $ref target without recursing. A ref
// with a scheme is kept as a URI; a fragment-only ref ("#point") is
// kept as a URI too so the resolver can try the id alias; a JSON
// pointer ("#/definitions/point") becomes a Path.
func parseTypeReference(node map[string]any, ctx nodeCtx, res *Result) js2e.Type {
	raw, _ := node["$ref"].(string)
	u, err := url.Parse(raw)
	if err != nil {
		res.errorf(js2e.KindUnresolvedReference, ctx.path.String(),
			"$ref %q is not a valid reference: %v", raw, err)
		return nil
	}
	var target js2e.TypeIdentifier
	switch {
	case u.Scheme != "":
		target = js2e.URIIdentifier(u)
	case strings.HasPrefix(raw, "#") && !strings.HasPrefix(raw, "#/"):
		target = js2e.URIIdentifier(u)
	default:
		target = js2e.PathIdentifier(js2e.PathFromString(raw))
	}
	return &js2e.TypeReference{Name: ctx.name, Path: ctx.path, Target: target}
}

func parseDefinitions(node map[string]any, ctx nodeCtx, childParent *url.URL, res *Result) js2e.Type {
	children := parseDefinitionsMembers(node, ctx, childParent, res)
	return &js2e.Definitions{
		Name:        ctx.name,
		Path:        ctx.path,
		Children:    children,
		Description: stringField(node, "description"),
	}
}

// parseDefinitionsMembers walks a definitions map, registering each
// member under #/.../definitions/<key>. Returns the child paths in key
// order.
func parseDefinitionsMembers(node map[string]any, ctx nodeCtx, childParent *url.URL, res *Result) []js2e.Path {
	defs, ok := node["definitions"].(map[string]any)
	if !ok {
		return nil
	}
	keys := make([]string, 0, len(defs))
	for k := range defs {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	base := ctx.path.Child("definitions")
	children := make([]js2e.Path, 0, len(keys))
	for _, key := range keys {
		cctx := nodeCtx{parentURI: childParent, path: base.Child(key), name: key}
		res.merge(parseNode(defs[key], cctx, false))
		children = append(children, cctx.path)
	}
	return children
}

// effectiveID computes the schema's absolute id: the root's explicit
// id merged per the identity rules, or the document URI. An
// unparseable id is already reported by parseNode's identity pass.
func effectiveID(root map[string]any, docURI *url.URL) *url.URL {
	raw, ok := root["id"].(string)
	if !ok || raw == "" {
		return docURI
	}
	u, err := url.Parse(raw)
	if err != nil {
		return docURI
	}
	if u.Scheme == "urn" {
		return u
	}
	if docURI != nil {
		return docURI.ResolveReference(u)
	}
	return u
}

// aliasKey builds the absolute-URI dictionary alias for a non-root
// node: the id with its fragment replaced by the node's name.
func aliasKey(id *url.URL, name string) string {
	base := *id
	base.Fragment = ""
	return base.String() + "#" + name
}

func fallbackTitle(id *url.URL, index int) string {
	if id != nil {
		base := path.Base(id.Path)
		base = strings.TrimSuffix(base, path.Ext(base))
		if base != "" && base != "." && base != "/" {
			return strings.ToUpper(base[:1]) + base[1:]
		}
	}
	return fmt.Sprintf("Schema%d", index+1)
}

func schemaKey(schema *js2e.SchemaDefinition, doc js2e.Document) string {
	if schema.ID != nil {
		return schema.ID.String()
	}
	return doc.URI
}

func firstNonNil(us ...*url.URL) *url.URL {
	for _, u := range us {
		if u != nil {
			return u
		}
	}
	return nil
}

func stringField(node map[string]any, key string) string {
	s, _ := node[key].(string)
	return s
}
