package i18n

import "testing"

func TestTranslator_DefaultAndItalian(t *testing.T) {
	// default is en
	if msg := T("unresolved_reference", nil); msg == "unresolved_reference" || msg == "" {
		t.Fatalf("expected a human message, got %q", msg)
	}

	SetLanguage("it")
	if msg := T("unresolved_reference", nil); msg == "unresolved reference" {
		t.Fatalf("expected italian message, got %q", msg)
	}

	// reset to en
	SetLanguage("en")

	// unknown kinds echo back
	if msg := T("nope", nil); msg != "nope" {
		t.Fatalf("expected passthrough for unknown kind, got %q", msg)
	}
}
