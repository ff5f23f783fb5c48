package modelgen

import (
	"context"

	"github.com/goliatone/go-modelgen/pkg/jsonvalue"
	"github.com/goliatone/go-modelgen/pkg/model"
	"github.com/goliatone/go-modelgen/pkg/orchestrator"
	"github.com/goliatone/go-modelgen/pkg/render"
	"github.com/goliatone/go-modelgen/pkg/sample"
)

// RenderOptions describes per-request data renderers can use, such as the
// source location or a document title.
type RenderOptions = render.RenderOptions

// Schema aliases the inferred schema type for callers of Infer.
type Schema = model.Schema

// NewOrchestrator exposes the orchestrator constructor from the top-level
// module.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// Generate loads the sample at source, infers its schema with rootName as the
// top-level record, and renders it with the named renderer (pydantic when
// empty).
func Generate(ctx context.Context, source sample.Source, rootName, rendererName string, options ...orchestrator.Option) ([]byte, error) {
	gen := orchestrator.New(options...)
	return gen.Generate(ctx, orchestrator.Request{
		Source:   source,
		RootName: rootName,
		Renderer: rendererName,
	})
}

// GenerateFromDocument renders a pre-loaded document, bypassing the loader.
func GenerateFromDocument(ctx context.Context, doc sample.Document, rootName, rendererName string, options ...orchestrator.Option) ([]byte, error) {
	gen := orchestrator.New(options...)
	return gen.Generate(ctx, orchestrator.Request{
		Document: &doc,
		RootName: rootName,
		Renderer: rendererName,
	})
}

// GenerateFromJSON infers and renders a schema from raw JSON bytes.
func GenerateFromJSON(ctx context.Context, data []byte, rootName, rendererName string, options ...orchestrator.Option) ([]byte, error) {
	value, err := jsonvalue.Parse(data)
	if err != nil {
		return nil, err
	}
	gen := orchestrator.New(options...)
	return gen.Generate(ctx, orchestrator.Request{
		Value:    &value,
		RootName: rootName,
		Renderer: rendererName,
	})
}

// Infer returns the schema inferred from source without rendering it.
func Infer(ctx context.Context, source sample.Source, rootName string, options ...orchestrator.Option) (Schema, error) {
	gen := orchestrator.New(options...)
	return gen.Infer(ctx, orchestrator.Request{
		Source:   source,
		RootName: rootName,
	})
}
