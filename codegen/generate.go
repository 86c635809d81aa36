// Package codegen is the whole-program driver: it parses every input
// document, runs the configured emitter over the resolved schemas and
// assembles the output file dictionary plus diagnostics.
package codegen

import (
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	js2e "github.com/albertored/json-schema-to-elm"
	"github.com/albertored/json-schema-to-elm/emitter"
	"github.com/albertored/json-schema-to-elm/parser"
)

// Generate runs parse then emit over the given documents. The error
// return covers configuration misuse only; schema problems come back
// as diagnostics on the result, next to whatever files could still be
// produced. With opts.Strict set, every warning is escalated into the
// error list.
func Generate(docs []js2e.Document, em emitter.Emitter, opts js2e.Options) (js2e.SchemaResult, error) {
	opts, err := opts.Normalize()
	if err != nil {
		return js2e.SchemaResult{}, err
	}

	runLog := log.WithFields(log.Fields{
		"run_id":  uuid.New().String(),
		"schemas": len(docs),
	})
	runLog.Debug("parsing schema documents")

	schemas, parseRes := parser.ParseSchemas(docs)
	result := js2e.SchemaResult{
		Files:    map[string]string{},
		Errors:   parseRes.Errors,
		Warnings: parseRes.Warnings,
	}

	for _, uri := range schemas.SortedURIs() {
		schema := schemas[uri]
		name := em.FileName(schema, opts.RootModule)
		source, diags := em.RenderSchema(schema, schemas, opts)
		result.Files[name] = source
		result.Errors = js2e.AppendDiagnostics(result.Errors, diags...)
		runLog.WithFields(log.Fields{
			"schema":      uri,
			"file":        name,
			"diagnostics": len(diags),
		}).Debug("rendered schema")
	}

	if opts.Strict {
		result.Errors = js2e.AppendDiagnostics(result.Errors, result.Warnings...)
		result.Warnings = nil
	}

	runLog.WithFields(log.Fields{
		"files":    len(result.Files),
		"errors":   len(result.Errors),
		"warnings": len(result.Warnings),
	}).Info("generation finished")
	return result, nil
}
