package pydantic

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/goliatone/go-modelgen/pkg/model"
	"github.com/goliatone/go-modelgen/pkg/render"
	rendertemplate "github.com/goliatone/go-modelgen/pkg/render/template"
	gotemplate "github.com/goliatone/go-modelgen/pkg/render/template/gotemplate"
)

// Name is the registry name of the renderer.
const Name = "pydantic"

type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateDir      string
	templateRenderer rendertemplate.TemplateRenderer
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS. The bundle
// must contain templates/document.tmpl.
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

// New constructs the Pydantic renderer applying any provided options.
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
		)
		if err != nil {
			return nil, fmt.Errorf("pydantic renderer: configure template renderer: %w", err)
		}
		renderer = engine
	}

	return &Renderer{templates: renderer}, nil
}

func (r *Renderer) Name() string {
	return Name
}

func (r *Renderer) ContentType() string {
	return "text/x-python; charset=utf-8"
}

func (r *Renderer) FileExtension() string {
	return ".py"
}

func (r *Renderer) Render(_ context.Context, schema model.Schema, options render.RenderOptions) ([]byte, error) {
	if r.templates == nil {
		return nil, errors.New("pydantic renderer: template renderer is nil")
	}

	result, err := r.templates.RenderTemplate(DocumentTemplate, map[string]any{
		"preamble": Preamble,
		"records":  Views(schema.Records),
		"root":     schema.Root,
		"source":   options.SourceLocation,
		"title":    options.TitleFor(schema.Root),
	})
	if err != nil {
		return nil, fmt.Errorf("pydantic renderer: render template: %w", err)
	}
	return []byte(result), nil
}
