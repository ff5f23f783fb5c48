package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	internalLoader "github.com/goliatone/go-modelgen/internal/sample/loader"
	"github.com/goliatone/go-modelgen/pkg/jsonvalue"
	"github.com/goliatone/go-modelgen/pkg/model"
	"github.com/goliatone/go-modelgen/pkg/render"
	"github.com/goliatone/go-modelgen/pkg/renderers/jsonschema"
	"github.com/goliatone/go-modelgen/pkg/renderers/openapi"
	"github.com/goliatone/go-modelgen/pkg/renderers/preview"
	"github.com/goliatone/go-modelgen/pkg/renderers/pydantic"
	"github.com/goliatone/go-modelgen/pkg/sample"
)

// DefaultRendererName is used when neither the request nor WithDefaultRenderer
// names a renderer.
const DefaultRendererName = pydantic.Name

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithLoader injects a custom sample loader.
func WithLoader(loader sample.Loader) Option {
	return func(o *Orchestrator) {
		o.loader = loader
	}
}

// WithModelBuilder injects a custom schema builder.
func WithModelBuilder(builder model.Builder) Option {
	return func(o *Orchestrator) {
		o.builder = builder
	}
}

// WithRegistry injects a renderer registry.
func WithRegistry(registry *render.Registry) Option {
	return func(o *Orchestrator) {
		o.registry = registry
	}
}

// WithDefaultRenderer overrides the renderer used when a request omits an
// explicit Renderer field.
func WithDefaultRenderer(name string) Option {
	return func(o *Orchestrator) {
		o.defaultRenderer = strings.TrimSpace(name)
	}
}

// WithSchemaTransformer registers a Transformer that runs after building and
// before decorators.
func WithSchemaTransformer(t Transformer) Option {
	return func(o *Orchestrator) {
		o.transformer = t
	}
}

// WithDecorators registers decorators that run against the inferred schema
// before rendering, in the order given.
func WithDecorators(decorators ...model.Decorator) Option {
	return func(o *Orchestrator) {
		if len(decorators) == 0 {
			return
		}
		o.decorators = append(o.decorators, decorators...)
	}
}

// WithLogger routes pipeline diagnostics to logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *Orchestrator) {
		o.logger = logger
	}
}

// Orchestrator coordinates the pipeline from sample document to rendered
// output. Missing dependencies default to the built-in loader, builder and a
// registry holding every bundled renderer.
type Orchestrator struct {
	loader          sample.Loader
	builder         model.Builder
	registry        *render.Registry
	defaultRenderer string
	transformer     Transformer
	decorators      []model.Decorator
	logger          *slog.Logger
	initialiseErr   error
	defaultsApplied bool
}

// New constructs an Orchestrator applying any provided options.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{
		defaultRenderer: DefaultRendererName,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	o.applyDefaults()
	return o
}

// Request describes one generation run. Exactly one of Value, Document or
// Source is consulted, in that order of preference.
type Request struct {
	// Source identifies where the sample lives. Optional when Document or Value
	// is supplied.
	Source sample.Source

	// Document bypasses the loader when the caller already holds the payload.
	Document *sample.Document

	// Value bypasses loading and decoding entirely.
	Value *jsonvalue.Value

	// Format overrides the format detected from the source location.
	Format sample.Format

	// Select is a jq path expression (".data.items[0]") narrowing the sample
	// to the value the root record is inferred from.
	Select string

	// RootName names the top-level record. Defaults to model.DefaultRootName.
	RootName string

	// Renderer names the renderer to use. If empty, the orchestrator falls back
	// to the configured default renderer.
	Renderer string

	// RenderOptions carries per-request data for renderers. SourceLocation is
	// filled from the resolved document when left empty.
	RenderOptions render.RenderOptions
}

// Generate runs the full pipeline and returns the rendered bytes (Pydantic
// source for the default renderer).
func (o *Orchestrator) Generate(ctx context.Context, req Request) ([]byte, error) {
	schema, location, err := o.infer(ctx, req)
	if err != nil {
		return nil, err
	}

	renderer, err := o.rendererFor(req.Renderer)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	options := req.RenderOptions
	if options.SourceLocation == "" {
		options.SourceLocation = location
	}

	output, err := renderer.Render(ctx, schema, options)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: render output: %w", err)
	}
	o.logger.Debug("schema rendered",
		slog.String("renderer", renderer.Name()),
		slog.Int("bytes", len(output)),
	)
	return output, nil
}

// Infer runs the pipeline up to and including decorators and returns the
// schema without rendering it.
func (o *Orchestrator) Infer(ctx context.Context, req Request) (model.Schema, error) {
	schema, _, err := o.infer(ctx, req)
	return schema, err
}

// Renderers lists the names of the registered renderers.
func (o *Orchestrator) Renderers() []string {
	if o.registry == nil {
		return nil
	}
	return o.registry.List()
}

// Registry exposes the renderer registry in use.
func (o *Orchestrator) Registry() *render.Registry {
	return o.registry
}

func (o *Orchestrator) infer(ctx context.Context, req Request) (model.Schema, string, error) {
	if ctx == nil {
		return model.Schema{}, "", errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return model.Schema{}, "", err
	}
	if err := o.initialiseErr; err != nil {
		return model.Schema{}, "", err
	}
	if !o.defaultsApplied {
		o.applyDefaults()
		if err := o.initialiseErr; err != nil {
			return model.Schema{}, "", err
		}
	}

	value, location, err := o.resolveValue(ctx, req)
	if err != nil {
		return model.Schema{}, "", err
	}
	if err := ctx.Err(); err != nil {
		return model.Schema{}, "", err
	}
	if req.Select != "" {
		selected, path, err := jsonvalue.Select(value, req.Select)
		if err != nil {
			return model.Schema{}, "", fmt.Errorf("orchestrator: select sample: %w", err)
		}
		o.logger.Debug("sample narrowed", slog.String("selector", req.Select), slog.String("path", path))
		value = selected
	}

	schema := o.builder.Build(value, req.RootName)
	o.logger.Debug("schema built",
		slog.String("source", location),
		slog.String("root", schema.Root),
		slog.Int("records", len(schema.Records)),
	)

	if err := o.applyTransformer(ctx, &schema); err != nil {
		return model.Schema{}, "", err
	}
	if err := o.applyDecorators(&schema); err != nil {
		return model.Schema{}, "", err
	}
	return schema, location, nil
}

func (o *Orchestrator) resolveValue(ctx context.Context, req Request) (jsonvalue.Value, string, error) {
	if req.Value != nil {
		location := ""
		if req.Source != nil {
			location = req.Source.Location()
		}
		return *req.Value, location, nil
	}

	doc, err := o.resolveDocument(ctx, req)
	if err != nil {
		return jsonvalue.Value{}, "", err
	}
	if req.Format != "" {
		doc = doc.WithFormat(req.Format)
	}

	value, err := doc.Decode()
	if err != nil {
		return jsonvalue.Value{}, "", fmt.Errorf("orchestrator: decode sample: %w", err)
	}
	return value, doc.Location(), nil
}

func (o *Orchestrator) resolveDocument(ctx context.Context, req Request) (sample.Document, error) {
	if req.Document != nil {
		return *req.Document, nil
	}
	if req.Source == nil {
		return sample.Document{}, errors.New("orchestrator: source, document or value is required")
	}
	doc, err := o.loader.Load(ctx, req.Source)
	if err != nil {
		return sample.Document{}, fmt.Errorf("orchestrator: load sample: %w", err)
	}
	return doc, nil
}

func (o *Orchestrator) rendererFor(name string) (render.Renderer, error) {
	if o.registry == nil {
		return nil, errors.New("orchestrator: renderer registry is nil")
	}

	target := strings.TrimSpace(name)
	if target == "" {
		target = o.defaultRenderer
	}

	if target != "" {
		renderer, err := o.registry.Get(target)
		if err == nil {
			return renderer, nil
		}
		if name != "" {
			return nil, fmt.Errorf("orchestrator: renderer %q: %w", name, err)
		}
	}

	names := o.registry.List()
	if len(names) == 0 {
		return nil, errors.New("orchestrator: no renderers registered")
	}

	renderer, err := o.registry.Get(names[0])
	if err != nil {
		return nil, fmt.Errorf("orchestrator: renderer %q: %w", names[0], err)
	}
	return renderer, nil
}

func (o *Orchestrator) applyDecorators(schema *model.Schema) error {
	for _, decorator := range o.decorators {
		if decorator == nil {
			continue
		}
		if err := decorator.Decorate(schema); err != nil {
			return fmt.Errorf("orchestrator: decorate schema: %w", err)
		}
	}
	return nil
}

func (o *Orchestrator) applyTransformer(ctx context.Context, schema *model.Schema) error {
	if o.transformer == nil {
		return nil
	}
	if err := o.transformer.Transform(ctx, schema); err != nil {
		return fmt.Errorf("orchestrator: transform schema: %w", err)
	}
	return nil
}

func (o *Orchestrator) applyDefaults() {
	if o.defaultsApplied {
		return
	}

	if o.logger == nil {
		o.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if o.loader == nil {
		o.loader = internalLoader.New(sample.NewLoaderOptions())
	}
	if o.builder == nil {
		o.builder = model.NewBuilder(model.WithLogger(o.logger))
	}
	if o.registry == nil {
		registry, err := DefaultRegistry()
		if err != nil {
			o.initialiseErr = err
		}
		o.registry = registry
	}
	if o.defaultRenderer == "" {
		o.defaultRenderer = DefaultRendererName
	}

	o.defaultsApplied = true
}

// RegistryOption customises the renderers built by DefaultRegistry.
type RegistryOption func(*registryConfig)

type registryConfig struct {
	templatesDir string
}

// WithTemplatesDir overlays the template-backed renderers (pydantic and
// preview) with templates from dir.
func WithTemplatesDir(dir string) RegistryOption {
	return func(cfg *registryConfig) {
		cfg.templatesDir = strings.TrimSpace(dir)
	}
}

// DefaultRegistry returns a registry holding the bundled renderers: pydantic,
// jsonschema, openapi and preview.
func DefaultRegistry(options ...RegistryOption) (*render.Registry, error) {
	var cfg registryConfig
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}

	registry := render.NewRegistry()

	var pyOptions []pydantic.Option
	var pageOptions []preview.Option
	if cfg.templatesDir != "" {
		pyOptions = append(pyOptions, pydantic.WithTemplatesDir(cfg.templatesDir))
		pageOptions = append(pageOptions, preview.WithTemplatesDir(cfg.templatesDir))
	}

	py, err := pydantic.New(pyOptions...)
	if err != nil {
		return registry, fmt.Errorf("orchestrator: default renderer: %w", err)
	}
	page, err := preview.New(pageOptions...)
	if err != nil {
		return registry, fmt.Errorf("orchestrator: preview renderer: %w", err)
	}

	for _, renderer := range []render.Renderer{py, jsonschema.New(), openapi.New(), page} {
		if err := registry.Register(renderer); err != nil {
			return registry, fmt.Errorf("orchestrator: register %s: %w", renderer.Name(), err)
		}
	}
	return registry, nil
}
