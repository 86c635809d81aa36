package js2e

// Package js2e turns JSON Schema documents into typed target-language
// modules with matching decoders and encoders.
//
// The pipeline has two stages. The parser (package parser) classifies
// every schema node into a small intermediate representation, assigns
// it a canonical Path, and builds per-schema type dictionaries keyed
// by both path and absolute URI. The emitter (package emitter, with
// the Elm reference implementation in emitter/elm) walks the resolved
// dictionaries and renders one source module per schema.
//
// This root package holds what both stages share: the Path machinery,
// the IR variants, the schema dictionaries, the reference resolver and
// the diagnostic model. Package codegen ties the stages together for
// whole-program runs; cmd/js2e is the command-line surface.
