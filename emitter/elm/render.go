package elm

import (
	"fmt"
	"strings"

	js2e "github.com/albertored/json-schema-to-elm"
)

// renderNode produces the declaration + decoder + encoder block for
// one IR node, or "" for kinds that declare nothing standalone
// (primitives inline, type references defer to their target, the
// definitions group is transparent).
func (r *renderer) renderNode(node js2e.Type) string {
	switch n := node.(type) {
	case *js2e.Enum:
		return r.renderEnum(n)
	case *js2e.Object:
		return r.renderObject(n)
	case *js2e.Array:
		return r.renderArray(n)
	case *js2e.Tuple:
		return r.renderTuple(n)
	case *js2e.Union:
		return r.renderUnion(n)
	case *js2e.Composite:
		return r.renderComposite(n)
	}
	return ""
}

func block(parts ...string) string {
	return strings.Join(parts, "\n\n\n")
}

func description(text string) string {
	if text == "" {
		return ""
	}
	return "{-| " + text + "\n-}\n"
}

// ---- enum ----

func (r *renderer) renderEnum(e *js2e.Enum) string {
	name := r.declName(e, r.schema)
	arg := lowerFirst(name)

	var decl strings.Builder
	decl.WriteString(description(e.Description))
	decl.WriteString("type " + name)
	for i, v := range e.Values {
		sep := "    | "
		if i == 0 {
			sep = "    = "
		}
		decl.WriteString("\n" + sep + enumCtor(name, v))
	}

	prim := elmPrimitives[e.BaseType]
	shown := arg
	if e.BaseType != "string" {
		shown = "toString " + arg
	}
	var dec strings.Builder
	fmt.Fprintf(&dec, "%s : Decode.Decoder %s\n", decoderIdent(name), name)
	fmt.Fprintf(&dec, "%s =\n", decoderIdent(name))
	fmt.Fprintf(&dec, "    %s\n", prim.decoder)
	dec.WriteString("        |> Decode.andThen\n")
	fmt.Fprintf(&dec, "            (\\%s ->\n", arg)
	fmt.Fprintf(&dec, "                case %s of\n", arg)
	for _, v := range e.Values {
		fmt.Fprintf(&dec, "                    %s ->\n", enumLiteral(e.BaseType, v))
		fmt.Fprintf(&dec, "                        Decode.succeed %s\n\n", enumCtor(name, v))
	}
	dec.WriteString("                    _ ->\n")
	fmt.Fprintf(&dec, "                        Decode.fail <| \"Unknown %s type: \" ++ %s\n", arg, shown)
	dec.WriteString("            )")

	var enc strings.Builder
	fmt.Fprintf(&enc, "%s : %s -> Encode.Value\n", encoderIdent(name), name)
	fmt.Fprintf(&enc, "%s %s =\n", encoderIdent(name), arg)
	fmt.Fprintf(&enc, "    case %s of\n", arg)
	for i, v := range e.Values {
		if i > 0 {
			enc.WriteString("\n")
		}
		fmt.Fprintf(&enc, "        %s ->\n", enumCtor(name, v))
		if v == nil {
			enc.WriteString("            Encode.null\n")
			continue
		}
		fmt.Fprintf(&enc, "            %s %s\n", prim.encoder, enumLiteral(e.BaseType, v))
	}

	return block(strings.TrimRight(decl.String(), "\n"),
		strings.TrimRight(dec.String(), "\n"),
		strings.TrimRight(enc.String(), "\n"))
}

// ---- object ----

type objField struct {
	name     string
	ref      ref
	required bool
}

func (r *renderer) renderObject(o *js2e.Object) string {
	fields := make([]objField, 0, len(o.Properties))
	for _, p := range o.Properties {
		fields = append(fields, objField{
			name:     p.Name,
			ref:      r.refOf(p.Type),
			required: o.IsRequired(p.Name),
		})
	}
	return r.renderRecord(r.declName(o, r.schema), o.Description, fields)
}

// renderRecord emits a type alias plus pipeline decoder and encoder
// for a flat field list; shared between objects and allOf merges.
func (r *renderer) renderRecord(name, desc string, fields []objField) string {
	arg := lowerFirst(name)

	var decl strings.Builder
	decl.WriteString(description(desc))
	decl.WriteString("type alias " + name + " =\n")
	if len(fields) == 0 {
		decl.WriteString("    {}")
	}
	for i, f := range fields {
		sep := "    , "
		if i == 0 {
			sep = "    { "
		}
		typ := f.ref.typ
		if !f.required {
			typ = "Maybe " + maybeParens(typ)
		}
		fmt.Fprintf(&decl, "%s%s : %s\n", sep, fieldIdent(f.name), typ)
	}
	if len(fields) > 0 {
		decl.WriteString("    }")
	}

	var dec strings.Builder
	fmt.Fprintf(&dec, "%s : Decode.Decoder %s\n", decoderIdent(name), name)
	fmt.Fprintf(&dec, "%s =\n", decoderIdent(name))
	fmt.Fprintf(&dec, "    decode %s", name)
	for _, f := range fields {
		if f.required {
			fmt.Fprintf(&dec, "\n        |> required %q %s", f.name, f.ref.decoder)
		} else {
			fmt.Fprintf(&dec, "\n        |> optional %q (Decode.nullable %s) Nothing", f.name, f.ref.decoder)
		}
	}

	var enc strings.Builder
	fmt.Fprintf(&enc, "%s : %s -> Encode.Value\n", encoderIdent(name), name)
	fmt.Fprintf(&enc, "%s %s =\n", encoderIdent(name), arg)
	if len(fields) == 0 {
		enc.WriteString("    Encode.object []")
		return block(decl.String(), dec.String(), strings.TrimRight(enc.String(), "\n"))
	}
	enc.WriteString("    let\n")
	parts := make([]string, 0, len(fields))
	for i, f := range fields {
		if i > 0 {
			enc.WriteString("\n")
		}
		fv := fieldIdent(f.name)
		parts = append(parts, fv)
		fmt.Fprintf(&enc, "        %s =\n", fv)
		if f.required {
			fmt.Fprintf(&enc, "            [ ( %q, %s %s.%s ) ]\n", f.name, f.ref.encoder, arg, fv)
			continue
		}
		fmt.Fprintf(&enc, "            case %s.%s of\n", arg, fv)
		fmt.Fprintf(&enc, "                Just %s ->\n", fv)
		fmt.Fprintf(&enc, "                    [ ( %q, %s %s ) ]\n\n", f.name, f.ref.encoder, fv)
		enc.WriteString("                Nothing ->\n")
		enc.WriteString("                    []\n")
	}
	enc.WriteString("    in\n")
	enc.WriteString("        Encode.object <|\n")
	enc.WriteString("            " + strings.Join(parts, " ++ "))

	return block(decl.String(), dec.String(), enc.String())
}

// ---- array ----

func (r *renderer) renderArray(a *js2e.Array) string {
	name := r.declName(a, r.schema)
	arg := lowerFirst(name)
	item := r.refOf(a.Items)

	decl := description(a.Description) +
		"type alias " + name + " =\n    List " + maybeParens(item.typ)

	dec := fmt.Sprintf("%s : Decode.Decoder %s\n%s =\n    Decode.list %s",
		decoderIdent(name), name, decoderIdent(name), item.decoder)

	enc := fmt.Sprintf("%s : %s -> Encode.Value\n%s %s =\n    Encode.list <| List.map %s %s",
		encoderIdent(name), name, encoderIdent(name), arg, item.encoder, arg)

	return block(decl, dec, enc)
}

// ---- tuple ----

func (r *renderer) renderTuple(t *js2e.Tuple) string {
	name := r.declName(t, r.schema)
	arg := lowerFirst(name)

	var decl strings.Builder
	decl.WriteString(description(t.Description))
	decl.WriteString("type alias " + name + " =\n")
	refs := make([]ref, len(t.Items))
	for i, item := range t.Items {
		refs[i] = r.refOf(item)
		sep := "    , "
		if i == 0 {
			sep = "    { "
		}
		fmt.Fprintf(&decl, "%sitem%d : %s\n", sep, i, refs[i].typ)
	}
	if len(t.Items) == 0 {
		decl.WriteString("    {}")
	} else {
		decl.WriteString("    }")
	}

	var dec strings.Builder
	fmt.Fprintf(&dec, "%s : Decode.Decoder %s\n", decoderIdent(name), name)
	fmt.Fprintf(&dec, "%s =\n", decoderIdent(name))
	fmt.Fprintf(&dec, "    decode %s", name)
	for i, rf := range refs {
		fmt.Fprintf(&dec, "\n        |> custom (Decode.index %d %s)", i, rf.decoder)
	}

	var enc strings.Builder
	fmt.Fprintf(&enc, "%s : %s -> Encode.Value\n", encoderIdent(name), name)
	fmt.Fprintf(&enc, "%s %s =\n", encoderIdent(name), arg)
	enc.WriteString("    Encode.list")
	for i, rf := range refs {
		sep := "        , "
		if i == 0 {
			sep = "\n        [ "
		}
		fmt.Fprintf(&enc, "%s%s %s.item%d\n", sep, rf.encoder, arg, i)
	}
	if len(refs) == 0 {
		enc.WriteString(" []")
	} else {
		enc.WriteString("        ]")
	}

	return block(strings.TrimRight(decl.String(), "\n"), dec.String(), strings.TrimRight(enc.String(), "\n"))
}

// ---- union ----

// unionMember names the constructor suffix of each primitive choice.
func unionMember(base string) (suffix, payload string) {
	switch base {
	case "null":
		return "Null", ""
	default:
		p := elmPrimitives[base]
		return p.typ, p.typ
	}
}

func (r *renderer) renderUnion(u *js2e.Union) string {
	name := r.declName(u, r.schema)
	arg := lowerFirst(name)

	var decl strings.Builder
	decl.WriteString(description(u.Description))
	decl.WriteString("type " + name)
	for i, base := range u.Types {
		suffix, payload := unionMember(base)
		sep := "    | "
		if i == 0 {
			sep = "    = "
		}
		decl.WriteString("\n" + sep + name + suffix)
		if payload != "" {
			decl.WriteString(" " + payload)
		}
	}

	var dec strings.Builder
	fmt.Fprintf(&dec, "%s : Decode.Decoder %s\n", decoderIdent(name), name)
	fmt.Fprintf(&dec, "%s =\n", decoderIdent(name))
	dec.WriteString("    Decode.oneOf")
	for i, base := range u.Types {
		suffix, payload := unionMember(base)
		sep := "        , "
		if i == 0 {
			sep = "\n        [ "
		}
		if payload == "" {
			fmt.Fprintf(&dec, "%sDecode.null %s%s\n", sep, name, suffix)
		} else {
			fmt.Fprintf(&dec, "%sDecode.map %s%s %s\n", sep, name, suffix, elmPrimitives[base].decoder)
		}
	}
	dec.WriteString("        ]")

	var enc strings.Builder
	fmt.Fprintf(&enc, "%s : %s -> Encode.Value\n", encoderIdent(name), name)
	fmt.Fprintf(&enc, "%s %s =\n", encoderIdent(name), arg)
	fmt.Fprintf(&enc, "    case %s of\n", arg)
	for i, base := range u.Types {
		suffix, payload := unionMember(base)
		if i > 0 {
			enc.WriteString("\n")
		}
		if payload == "" {
			fmt.Fprintf(&enc, "        %s%s ->\n            Encode.null\n", name, suffix)
			continue
		}
		v := lowerFirst(payload)
		fmt.Fprintf(&enc, "        %s%s %s ->\n            %s %s\n", name, suffix, v, elmPrimitives[base].encoder, v)
	}

	return block(strings.TrimRight(decl.String(), "\n"), dec.String(), strings.TrimRight(enc.String(), "\n"))
}

// ---- oneOf / anyOf / allOf ----

func (r *renderer) renderComposite(c *js2e.Composite) string {
	if c.Comp == js2e.KindAllOf {
		return r.renderAllOf(c)
	}
	name := r.declName(c, r.schema)
	arg := lowerFirst(name)

	refs := make([]ref, len(c.Alternatives))
	for i, alt := range c.Alternatives {
		refs[i] = r.refOf(alt)
	}

	var decl strings.Builder
	decl.WriteString(description(c.Description))
	decl.WriteString("type " + name)
	for i, rf := range refs {
		sep := "    | "
		if i == 0 {
			sep = "    = "
		}
		fmt.Fprintf(&decl, "\n%s%s%s %s", sep, name, typeIdent(rf.bare), maybeParens(rf.typ))
	}

	var dec strings.Builder
	fmt.Fprintf(&dec, "%s : Decode.Decoder %s\n", decoderIdent(name), name)
	fmt.Fprintf(&dec, "%s =\n", decoderIdent(name))
	dec.WriteString("    Decode.oneOf")
	for i, rf := range refs {
		sep := "        , "
		if i == 0 {
			sep = "\n        [ "
		}
		fmt.Fprintf(&dec, "%sDecode.map %s%s %s\n", sep, name, typeIdent(rf.bare), rf.decoder)
	}
	dec.WriteString("        ]")

	var enc strings.Builder
	fmt.Fprintf(&enc, "%s : %s -> Encode.Value\n", encoderIdent(name), name)
	fmt.Fprintf(&enc, "%s %s =\n", encoderIdent(name), arg)
	fmt.Fprintf(&enc, "    case %s of\n", arg)
	for i, rf := range refs {
		if i > 0 {
			enc.WriteString("\n")
		}
		v := lowerFirst(normalizeIdent(rf.bare))
		fmt.Fprintf(&enc, "        %s%s %s ->\n            %s %s\n", name, typeIdent(rf.bare), v, rf.encoder, v)
	}

	return block(strings.TrimRight(decl.String(), "\n"), dec.String(), strings.TrimRight(enc.String(), "\n"))
}

// renderAllOf flattens the alternatives' object properties into one
// record, the way the classic generator does. Alternatives that do not
// resolve to objects are reported and skipped.
func (r *renderer) renderAllOf(c *js2e.Composite) string {
	var fields []objField
	seen := map[string]bool{}
	for _, alt := range c.Alternatives {
		node, ok := r.schema.Types[alt.String()]
		if !ok {
			r.diag(js2e.NewDiagnostic(js2e.KindUnresolvedReference, alt.String(),
				"no type registered at "+alt.String()))
			continue
		}
		owner := r.schema
		if tr, isRef := node.(*js2e.TypeReference); isRef {
			res, d := js2e.Resolve(tr.Target, owner, r.schemas)
			if d != nil {
				r.diag(*d)
				continue
			}
			node, owner = res.Node, res.Schema
		}
		obj, isObj := node.(*js2e.Object)
		if !isObj {
			r.diag(js2e.NewDiagnostic(js2e.KindUnknownNodeType, alt.String(),
				"allOf alternative does not resolve to an object"))
			continue
		}
		for _, p := range obj.Properties {
			if seen[p.Name] {
				continue
			}
			seen[p.Name] = true
			fields = append(fields, objField{
				name:     p.Name,
				ref:      r.refOfPathIn(owner, p.Type),
				required: obj.IsRequired(p.Name),
			})
		}
	}
	return r.renderRecord(r.declName(c, r.schema), c.Description, fields)
}

// maybeParens wraps multi-word type expressions for use as a type
// argument.
func maybeParens(typ string) string {
	if strings.ContainsRune(typ, ' ') {
		return "(" + typ + ")"
	}
	return typ
}
