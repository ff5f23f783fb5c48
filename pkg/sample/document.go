package sample

import (
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/goliatone/go-modelgen/pkg/jsonvalue"
)

// Format names the encoding of a sample payload.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ErrUnsupportedFormat reports a format other than json or yaml.
var ErrUnsupportedFormat = errors.New("sample: unsupported format")

// ParseFormat validates a textual format. Empty input returns "" so callers
// can fall back to detection.
func ParseFormat(raw string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "":
		return "", nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, raw)
	}
}

// DetectFormat guesses the format from a location's extension, defaulting to
// JSON.
func DetectFormat(location string) Format {
	trimmed := location
	if idx := strings.IndexAny(trimmed, "?#"); idx >= 0 {
		trimmed = trimmed[:idx]
	}
	switch strings.ToLower(path.Ext(trimmed)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Document wraps the raw sample payload, its origin and its format.
type Document struct {
	source Source
	raw    []byte
	format Format
}

// NewDocument constructs a Document wrapper while validating the inputs. The
// format is detected from the source location.
func NewDocument(src Source, raw []byte) (Document, error) {
	if src == nil {
		return Document{}, errors.New("sample: source is required")
	}
	if len(raw) == 0 {
		return Document{}, errors.New("sample: raw document is empty")
	}

	clone := append([]byte(nil), raw...)
	return Document{source: src, raw: clone, format: DetectFormat(src.Location())}, nil
}

// MustNewDocument panics if the document cannot be created. Useful for tests.
func MustNewDocument(src Source, raw []byte) Document {
	doc, err := NewDocument(src, raw)
	if err != nil {
		panic(err)
	}
	return doc
}

// WithFormat returns a copy of the document using an explicit format.
func (d Document) WithFormat(format Format) Document {
	if format != "" {
		d.format = format
	}
	return d
}

// Source returns the origin metadata for the document.
func (d Document) Source() Source {
	return d.source
}

// Raw returns a copy of the payload.
func (d Document) Raw() []byte {
	return append([]byte(nil), d.raw...)
}

// Format reports the encoding used to decode the payload.
func (d Document) Format() Format {
	if d.format == "" {
		return FormatJSON
	}
	return d.format
}

// Location returns the string identifier for the origin.
func (d Document) Location() string {
	if d.source == nil {
		return ""
	}
	return d.source.Location()
}

// Decode parses the payload into a value tree according to its format.
func (d Document) Decode() (jsonvalue.Value, error) {
	var (
		value jsonvalue.Value
		err   error
	)
	switch d.Format() {
	case FormatJSON:
		value, err = jsonvalue.Parse(d.raw)
	case FormatYAML:
		value, err = jsonvalue.ParseYAML(d.raw)
	default:
		return jsonvalue.Value{}, fmt.Errorf("%w: %q", ErrUnsupportedFormat, d.format)
	}
	if err != nil {
		return jsonvalue.Value{}, fmt.Errorf("sample: decode %s: %w", d.Location(), err)
	}
	return value, nil
}
