package orchestrator

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-modelgen/pkg/model"
)

// Transformer mutates a Schema before decorators run. Implementations can
// rename records or fields, or perform arbitrary rewrites.
type Transformer interface {
	Transform(ctx context.Context, schema *model.Schema) error
}

// TransformerFunc adapts plain functions to the Transformer interface.
type TransformerFunc func(ctx context.Context, schema *model.Schema) error

// Transform executes the wrapped function when non-nil.
func (fn TransformerFunc) Transform(ctx context.Context, schema *model.Schema) error {
	if fn == nil {
		return nil
	}
	return fn(ctx, schema)
}

// PresetTransformer applies declarative overrides loaded from a YAML or JSON
// document. Field keys are "<Record>.<wireName>"; values replace the local
// identifier:
//
//	records:
//	  Users: User
//	fields:
//	  Model.class: class_
//
// Field overrides address records by their inferred names and apply before
// record renames.
type PresetTransformer struct {
	document presetDocument
}

type presetDocument struct {
	Records map[string]string `yaml:"records" json:"records"`
	Fields  map[string]string `yaml:"fields" json:"fields"`
}

// NewPresetTransformer constructs a transformer from raw YAML or JSON bytes.
func NewPresetTransformer(data []byte) (*PresetTransformer, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, errors.New("preset transformer: document is empty")
	}
	var document presetDocument
	if err := yaml.Unmarshal(data, &document); err != nil {
		return nil, fmt.Errorf("preset transformer: parse document: %w", err)
	}
	return &PresetTransformer{document: document}, nil
}

// NewPresetTransformerFromFS loads a preset document from the provided
// filesystem path.
func NewPresetTransformerFromFS(fsys fs.FS, path string) (*PresetTransformer, error) {
	if fsys == nil {
		return nil, errors.New("preset transformer: filesystem is nil")
	}
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("preset transformer: path is required")
	}
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("preset transformer: read %s: %w", path, err)
	}
	return NewPresetTransformer(data)
}

// Transform applies the declarative patches onto the supplied schema.
func (t *PresetTransformer) Transform(ctx context.Context, schema *model.Schema) error {
	if schema == nil {
		return errors.New("preset transformer: schema is nil")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	for path, local := range t.document.Fields {
		field := findField(schema, path)
		if field == nil {
			return fmt.Errorf("preset transformer: field %q not found", path)
		}
		if trimmed := strings.TrimSpace(local); trimmed != "" {
			field.LocalName = trimmed
		}
	}

	if len(t.document.Records) > 0 {
		if err := model.RenameRecords(t.document.Records).Decorate(schema); err != nil {
			return fmt.Errorf("preset transformer: %w", err)
		}
	}
	return nil
}

// findField resolves "<Record>.<wireName>". Wire names may contain dots, so
// only the first separator splits the path. The first matching record wins.
func findField(schema *model.Schema, path string) *model.FieldDescriptor {
	record, wire, ok := strings.Cut(strings.TrimSpace(path), ".")
	if !ok || record == "" {
		return nil
	}
	for i := range schema.Records {
		rec := &schema.Records[i]
		if rec.Name != record {
			continue
		}
		for j := range rec.Fields {
			if rec.Fields[j].WireName == wire {
				return &rec.Fields[j]
			}
		}
	}
	return nil
}
