package i18n

// Translator retrieves localized messages for diagnostic kinds.
// data provides optional metadata to embed in the message (for
// example, "identifier" or "fingerprint").
type Translator interface {
	Message(kind string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

func (t dictTranslator) Message(kind string, data map[string]string) string {
	switch t.lang {
	case "it":
		switch kind {
		case "unknown_node_type":
			return "nodo dello schema non classificabile"
		case "duplicate_type_key":
			return "chiave di tipo duplicata"
		case "unresolved_reference":
			return "riferimento non risolto"
		case "cyclic_reference":
			return "riferimento ciclico"
		case "invalid_enum_value":
			return "valore enum non valido"
		case "invalid_id_uri":
			return "id non interpretabile come URI"
		case "missing_required_property_target":
			return "proprietà richiesta non dichiarata"
		case "missing_schema_title":
			return "schema senza titolo"
		}
	default: // "en"
		switch kind {
		case "unknown_node_type":
			return "schema node could not be classified"
		case "duplicate_type_key":
			return "duplicate type dictionary key"
		case "unresolved_reference":
			return "unresolved reference"
		case "cyclic_reference":
			return "cyclic reference"
		case "invalid_enum_value":
			return "invalid enum value"
		case "invalid_id_uri":
			return "id is not a parseable URI"
		case "missing_required_property_target":
			return "required property is not declared"
		case "missing_schema_title":
			return "schema has no title"
		}
	}
	return kind
}

var currentTranslator Translator = dictTranslator{lang: "en"}

// SetLanguage switches the built-in Translator language ("en"/"it").
func SetLanguage(lang string) {
	if lang != "it" {
		lang = "en"
	}
	currentTranslator = dictTranslator{lang: lang}
}

// SetTranslator replaces the Translator implementation (not limited to
// the dictionary version).
func SetTranslator(tr Translator) {
	if tr == nil {
		currentTranslator = dictTranslator{lang: "en"}
		return
	}
	currentTranslator = tr
}

// T fetches a message for the given kind using the current Translator.
func T(kind string, data map[string]string) string { return currentTranslator.Message(kind, data) }
