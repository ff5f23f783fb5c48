// Package preview renders inferred schemas as a standalone HTML page that
// lists every record with its fields, aliases, types and sample values.
package preview

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/goliatone/go-modelgen/pkg/model"
	"github.com/goliatone/go-modelgen/pkg/naming"
	"github.com/goliatone/go-modelgen/pkg/render"
	rendertemplate "github.com/goliatone/go-modelgen/pkg/render/template"
	gotemplate "github.com/goliatone/go-modelgen/pkg/render/template/gotemplate"
)

// Name is the registry name of the renderer.
const Name = "preview"

// Generator is written to the page's generator meta tag.
const Generator = "go-modelgen"

type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateDir      string
	templateRenderer rendertemplate.TemplateRenderer
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir overlays templates from a directory on disk. The directory
// mirrors the bundle layout; files it lacks fall back to the bundle.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		cfg.templateDir = strings.TrimSpace(path)
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

type Renderer struct {
	templates rendertemplate.TemplateRenderer
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the preview renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{templateFS: TemplatesFS()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}

	renderer := cfg.templateRenderer
	if renderer == nil {
		engine, err := gotemplate.New(
			gotemplate.WithBaseDir(cfg.templateDir),
			gotemplate.WithFS(cfg.templateFS),
			gotemplate.WithExtension(".tmpl"),
			gotemplate.WithTemplateFunc(map[string]any{"label": naming.ToLabel}),
			gotemplate.WithGlobalData(map[string]any{"generator": Generator}),
		)
		if err != nil {
			return nil, fmt.Errorf("preview renderer: configure template renderer: %w", err)
		}
		renderer = engine
	}

	return &Renderer{templates: renderer}, nil
}

func (r *Renderer) Name() string {
	return Name
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

func (r *Renderer) FileExtension() string {
	return ".html"
}

func (r *Renderer) Render(_ context.Context, schema model.Schema, options render.RenderOptions) ([]byte, error) {
	if r.templates == nil {
		return nil, errors.New("preview renderer: template renderer is nil")
	}

	result, err := r.templates.RenderTemplate(PageTemplate, newPage(schema, options))
	if err != nil {
		return nil, fmt.Errorf("preview renderer: render template: %w", err)
	}
	return []byte(result), nil
}
