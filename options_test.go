package js2e_test

import (
	"os"
	"path/filepath"
	"testing"

	js2e "github.com/albertored/json-schema-to-elm"
)

func TestOptions_NormalizeDefaults(t *testing.T) {
	o, err := js2e.Options{}.Normalize()
	if err != nil {
		t.Fatalf("normalize zero value: %v", err)
	}
	if o.EmitSort != js2e.EmitSortLexicographic {
		t.Fatalf("expected lexicographic default, got %q", o.EmitSort)
	}

	if _, err := (js2e.Options{EmitSort: "random"}).Normalize(); err == nil {
		t.Fatalf("expected error for unknown emit_sort")
	}
}

func TestLoadOptions_YAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "js2e.yaml")
	data := []byte("root_module: Domain\nemit_sort: declaration_order\nstrict: true\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	o, err := js2e.LoadOptions(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if o.RootModule != "Domain" || o.EmitSort != js2e.EmitSortDeclarationOrder || !o.Strict {
		t.Fatalf("unexpected options: %+v", o)
	}

	if _, err := js2e.LoadOptions(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestDecodeDocument(t *testing.T) {
	doc, err := js2e.DecodeDocument("http://example.com/a.json", []byte(`{"type":"number","title":"N"}`))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	m, ok := doc.Value.(map[string]any)
	if !ok || m["type"] != "number" {
		t.Fatalf("unexpected value: %#v", doc.Value)
	}

	if _, err := js2e.DecodeDocument("x", []byte("{")); err == nil {
		t.Fatalf("expected error for invalid JSON")
	}
}
