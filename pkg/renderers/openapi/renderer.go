// Package openapi renders inferred schemas as an OpenAPI 3 document whose
// components.schemas section holds one schema per record.
package openapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-modelgen/pkg/model"
	"github.com/goliatone/go-modelgen/pkg/render"
)

// Name is the registry name of the renderer.
const Name = "openapi"

const (
	componentsPrefix = "#/components/schemas/"
	// PropertyOrderExtension lists property names in sample order since
	// properties are encoded as a sorted map.
	PropertyOrderExtension = "x-property-order"
)

type Option func(*Renderer)

// WithVersion sets the info.version of generated documents.
func WithVersion(version string) Option {
	return func(r *Renderer) {
		if version != "" {
			r.version = version
		}
	}
}

// WithoutValidation skips the load and validate pass run before output.
func WithoutValidation() Option {
	return func(r *Renderer) {
		r.validate = false
	}
}

type Renderer struct {
	version  string
	validate bool
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the OpenAPI renderer.
func New(options ...Option) *Renderer {
	r := &Renderer{version: "1.0.0", validate: true}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	return r
}

func (r *Renderer) Name() string {
	return Name
}

func (r *Renderer) ContentType() string {
	return "application/vnd.oai.openapi+json"
}

func (r *Renderer) FileExtension() string {
	return ".openapi.json"
}

func (r *Renderer) Render(ctx context.Context, schema model.Schema, options render.RenderOptions) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("openapi renderer: context is nil")
	}
	doc := Build(schema, options, r.version)

	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("openapi renderer: marshal: %w", err)
	}
	if r.validate {
		if err := Validate(ctx, out); err != nil {
			return nil, err
		}
	}
	return append(out, '\n'), nil
}

// Build converts a Schema into an OpenAPI document with no paths.
func Build(schema model.Schema, options render.RenderOptions, version string) *openapi3.T {
	info := &openapi3.Info{
		Title:   options.TitleFor(schema.Root),
		Version: version,
	}
	if options.SourceLocation != "" {
		info.Description = "Schemas inferred from " + options.SourceLocation
	}

	schemas := make(openapi3.Schemas, len(schema.Records))
	for _, rec := range schema.Records {
		schemas[ComponentName(rec.Name)] = openapi3.NewSchemaRef("", RecordSchema(rec))
	}

	return &openapi3.T{
		OpenAPI: "3.0.3",
		Info:    info,
		Paths:   openapi3.NewPaths(),
		Components: &openapi3.Components{
			Schemas: schemas,
		},
	}
}

// RecordSchema returns the component schema for one record. Opaque records
// accept any value.
func RecordSchema(rec model.RecordDefinition) *openapi3.Schema {
	if rec.Opaque {
		out := openapi3.NewSchema()
		out.Title = rec.Name
		return out
	}

	out := openapi3.NewObjectSchema()
	out.Title = rec.Name
	order := make([]string, 0, len(rec.Fields))
	for _, field := range rec.Fields {
		out.Properties[field.WireName] = fieldSchema(field)
		order = append(order, field.WireName)
	}
	if len(order) > 0 {
		out.Extensions = map[string]any{PropertyOrderExtension: order}
	}
	return out
}

// fieldSchema marks every inferred property nullable. A $ref cannot carry
// siblings in OpenAPI 3.0, so references are wrapped in allOf.
func fieldSchema(field model.FieldDescriptor) *openapi3.SchemaRef {
	if field.Type.Kind == model.TypeRecord && field.Type.Record != "" {
		wrapper := openapi3.NewSchema()
		wrapper.AllOf = openapi3.SchemaRefs{TypeSchema(field.Type)}
		wrapper.Nullable = field.Optional
		return openapi3.NewSchemaRef("", wrapper)
	}

	ref := TypeSchema(field.Type)
	ref.Value.Nullable = field.Optional
	if example, ok := exampleValue(field); ok {
		ref.Value.Example = example
	}
	return ref
}

// TypeSchema maps a type descriptor to a schema reference. Record types
// become component references.
func TypeSchema(ref model.TypeRef) *openapi3.SchemaRef {
	switch ref.Kind {
	case model.TypeString:
		return openapi3.NewSchemaRef("", openapi3.NewStringSchema())
	case model.TypeNumber:
		return openapi3.NewSchemaRef("", openapi3.NewFloat64Schema())
	case model.TypeBool:
		return openapi3.NewSchemaRef("", openapi3.NewBoolSchema())
	case model.TypeList:
		items := openapi3.NewSchemaRef("", openapi3.NewSchema())
		if ref.Elem != nil {
			items = TypeSchema(*ref.Elem)
		}
		out := openapi3.NewArraySchema()
		out.Items = items
		return openapi3.NewSchemaRef("", out)
	case model.TypeRecord:
		if ref.Record == "" {
			return openapi3.NewSchemaRef("", openapi3.NewSchema())
		}
		return openapi3.NewSchemaRef(componentsPrefix+ComponentName(ref.Record), nil)
	default:
		return openapi3.NewSchemaRef("", openapi3.NewSchema())
	}
}

// ComponentName maps a record name onto the component key alphabet
// [a-zA-Z0-9._-], replacing anything else with an underscore.
func ComponentName(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	if b.Len() == 0 {
		return "_"
	}
	return b.String()
}

func exampleValue(field model.FieldDescriptor) (any, bool) {
	if field.Example == "" {
		return nil, false
	}
	switch field.Type.Kind {
	case model.TypeString:
		return field.Example, true
	case model.TypeNumber:
		return json.Number(field.Example), true
	case model.TypeBool:
		return field.Example == "true", true
	default:
		return nil, false
	}
}
