package testsupport

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-modelgen/pkg/jsonvalue"
	"github.com/goliatone/go-modelgen/pkg/sample"
)

// LoadSample reads a sample fixture and decodes it into a value tree. The
// format follows the file extension.
func LoadSample(t *testing.T, path string) jsonvalue.Value {
	t.Helper()

	value, err := LoadSampleFromPath(path)
	if err != nil {
		t.Fatalf("load sample: %v", err)
	}
	return value
}

// LoadSampleFromPath returns a decoded sample without requiring testing.T.
func LoadSampleFromPath(path string) (jsonvalue.Value, error) {
	doc, err := LoadDocumentFromPath(path)
	if err != nil {
		return jsonvalue.Value{}, err
	}
	value, err := doc.Decode()
	if err != nil {
		return jsonvalue.Value{}, fmt.Errorf("testsupport: decode sample: %w", err)
	}
	return value, nil
}

// LoadDocumentFromPath wraps a fixture file in a sample.Document.
func LoadDocumentFromPath(path string) (sample.Document, error) {
	if path == "" {
		return sample.Document{}, errors.New("testsupport: sample path is required")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return sample.Document{}, fmt.Errorf("testsupport: read sample: %w", err)
	}
	doc, err := sample.NewDocument(sample.SourceFromFile(path), data)
	if err != nil {
		return sample.Document{}, fmt.Errorf("testsupport: new document: %w", err)
	}
	return doc, nil
}

// WriteMaybeGolden updates a golden file when UPDATE_GOLDENS is set. Returns
// true if the golden was written (test should exit early).
func WriteMaybeGolden(t *testing.T, path string, data []byte) bool {
	t.Helper()
	if os.Getenv("UPDATE_GOLDENS") == "" {
		return false
	}
	writeFile(t, path, data)
	return true
}

func writeFile(t *testing.T, path string, data []byte) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
}

// CompareGolden returns a diff string if the values differ.
func CompareGolden(want, got any) string {
	return cmp.Diff(want, got)
}

// MustReadGolden reads a golden file and returns its raw bytes.
func MustReadGolden(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return data
}

// MustReadGoldenString reads a golden file and returns its string content.
func MustReadGoldenString(t *testing.T, path string) string {
	t.Helper()
	return string(MustReadGolden(t, path))
}

// CaptureTemplateOutput runs a render function that also writes to an
// io.Writer and returns both the result and what was written.
func CaptureTemplateOutput(t *testing.T, render func(io.Writer) (string, error)) (string, string) {
	t.Helper()

	var buf bytes.Buffer
	out, err := render(&buf)
	if err != nil {
		t.Fatalf("render template: %v", err)
	}

	return out, buf.String()
}
