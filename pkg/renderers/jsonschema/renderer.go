// Package jsonschema renders inferred schemas as a JSON Schema (draft 2020-12)
// document. Each record becomes an entry under $defs, the root schema
// references the root record, and every property accepts null alongside its
// inferred type.
package jsonschema

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"

	"github.com/goliatone/go-modelgen/pkg/model"
	"github.com/goliatone/go-modelgen/pkg/render"
)

// Name is the registry name of the renderer.
const Name = "jsonschema"

const defsPrefix = "#/$defs/"

type Option func(*Renderer)

// WithID sets the $id of generated documents.
func WithID(id string) Option {
	return func(r *Renderer) {
		r.id = id
	}
}

// WithIndent overrides the JSON indentation. An empty string produces compact
// output.
func WithIndent(indent string) Option {
	return func(r *Renderer) {
		r.indent = indent
	}
}

// WithAdditionalProperties closes (false) or opens (true) every record schema.
// Unset leaves additionalProperties out of the document.
func WithAdditionalProperties(allowed bool) Option {
	return func(r *Renderer) {
		r.additional = &allowed
	}
}

type Renderer struct {
	id         string
	indent     string
	additional *bool
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the JSON Schema renderer.
func New(options ...Option) *Renderer {
	r := &Renderer{indent: "  "}
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
	return "application/schema+json"
}

func (r *Renderer) FileExtension() string {
	return ".json"
}

func (r *Renderer) Render(_ context.Context, schema model.Schema, options render.RenderOptions) ([]byte, error) {
	doc := Build(schema, options)
	if r.id != "" {
		doc.ID = jsonschema.ID(r.id)
	}
	if r.additional != nil {
		for _, def := range doc.Definitions {
			if def.Type != "object" {
				continue
			}
			if *r.additional {
				def.AdditionalProperties = jsonschema.TrueSchema
			} else {
				def.AdditionalProperties = jsonschema.FalseSchema
			}
		}
	}

	var (
		out []byte
		err error
	)
	if r.indent == "" {
		out, err = json.Marshal(doc)
	} else {
		out, err = json.MarshalIndent(doc, "", r.indent)
	}
	if err != nil {
		return nil, fmt.Errorf("jsonschema renderer: marshal: %w", err)
	}
	return append(out, '\n'), nil
}

// Build converts a Schema into a JSON Schema document without encoding it.
func Build(schema model.Schema, options render.RenderOptions) *jsonschema.Schema {
	doc := &jsonschema.Schema{
		Version:     jsonschema.Version,
		Title:       options.TitleFor(schema.Root),
		Definitions: make(jsonschema.Definitions, len(schema.Records)),
	}
	if options.SourceLocation != "" {
		doc.Comments = "inferred from " + options.SourceLocation
	}
	if schema.Root != "" {
		doc.Ref = defsPrefix + schema.Root
	}
	for _, rec := range schema.Records {
		doc.Definitions[rec.Name] = RecordSchema(rec)
	}
	return doc
}

// RecordSchema returns the object schema for one record. Opaque records
// accept any value.
func RecordSchema(rec model.RecordDefinition) *jsonschema.Schema {
	if rec.Opaque {
		return &jsonschema.Schema{Title: rec.Name}
	}

	out := &jsonschema.Schema{
		Type:       "object",
		Title:      rec.Name,
		Properties: jsonschema.NewProperties(),
	}
	for _, field := range rec.Fields {
		out.Properties.Set(field.WireName, fieldSchema(field))
	}
	return out
}

func fieldSchema(field model.FieldDescriptor) *jsonschema.Schema {
	typed := TypeSchema(field.Type)
	if field.Optional && field.Type.Kind != model.TypeAny {
		typed = &jsonschema.Schema{
			AnyOf: []*jsonschema.Schema{typed, {Type: "null"}},
		}
	}
	if example, ok := exampleValue(field); ok {
		typed.Examples = []any{example}
	}
	return typed
}

// exampleValue converts a field's sample text back into a JSON value of the
// field's type. Only scalar fields carry examples.
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

// TypeSchema maps a type descriptor to its JSON Schema. Any maps to the empty
// schema.
func TypeSchema(ref model.TypeRef) *jsonschema.Schema {
	switch ref.Kind {
	case model.TypeString:
		return &jsonschema.Schema{Type: "string"}
	case model.TypeNumber:
		return &jsonschema.Schema{Type: "number"}
	case model.TypeBool:
		return &jsonschema.Schema{Type: "boolean"}
	case model.TypeList:
		out := &jsonschema.Schema{Type: "array"}
		if ref.Elem != nil {
			out.Items = TypeSchema(*ref.Elem)
		}
		return out
	case model.TypeRecord:
		if ref.Record == "" {
			return &jsonschema.Schema{}
		}
		return &jsonschema.Schema{Ref: defsPrefix + ref.Record}
	default:
		return &jsonschema.Schema{}
	}
}
