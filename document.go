package js2e

import (
	"fmt"

	gojson "github.com/goccy/go-json"
)

// Document is one raw schema input: a source URI and the already
// decoded JSON value. JSON parsing itself is a collaborator concern;
// DecodeDocument is the convenience path for callers holding bytes.
type Document struct {
	URI   string
	Value any
}

// DecodeDocument decodes raw JSON bytes into a Document.
func DecodeDocument(uri string, data []byte) (Document, error) {
	var v any
	if err := gojson.Unmarshal(data, &v); err != nil {
		return Document{}, fmt.Errorf("js2e: decode %s: %w", uri, err)
	}
	return Document{URI: uri, Value: v}, nil
}
