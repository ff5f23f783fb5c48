// Package modelgen infers typed record schemas from a single example JSON or
// YAML document and renders them as Pydantic models or other formats.
//
// Quick start:
//
//	out, err := modelgen.Generate(ctx, sample.SourceFromFile("user.json"), "UserModel", "")
//
// The orchestrator package exposes every pipeline stage for customisation.
package modelgen
