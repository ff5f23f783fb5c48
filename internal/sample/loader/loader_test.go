package loader_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/goliatone/go-modelgen/internal/sample/loader"
	pkgsample "github.com/goliatone/go-modelgen/pkg/sample"
)

func TestLoader_File(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "user.yaml")
	if err := os.WriteFile(path, []byte("name: Ada\n"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	l := loader.New(pkgsample.NewLoaderOptions())
	doc, err := l.Load(context.Background(), pkgsample.SourceFromFile(path))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if doc.Format() != pkgsample.FormatYAML {
		t.Fatalf("format = %q, want yaml", doc.Format())
	}
	if string(doc.Raw()) != "name: Ada\n" {
		t.Fatalf("raw = %q", doc.Raw())
	}
}

func TestLoader_FS(t *testing.T) {
	files := fstest.MapFS{
		"samples/user.json": {Data: []byte(`{"name": "Ada"}`)},
	}
	l := loader.New(pkgsample.NewLoaderOptions(pkgsample.WithFileSystem(files)))

	doc, err := l.Load(context.Background(), pkgsample.SourceFromFS("samples/user.json"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if doc.Location() != "samples/user.json" || doc.Format() != pkgsample.FormatJSON {
		t.Fatalf("unexpected document %q (%s)", doc.Location(), doc.Format())
	}

	if _, err := loader.New(pkgsample.NewLoaderOptions()).Load(context.Background(), pkgsample.SourceFromFS("samples/user.json")); err == nil {
		t.Fatalf("expected error without filesystem")
	}
}

func TestLoader_HTTP(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/ok.json":
			_, _ = w.Write([]byte(`{"id": 1}`))
		case "/big.json":
			_, _ = w.Write([]byte(`{"payload": "` + strings.Repeat("x", 64) + `"}`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	ctx := context.Background()

	disabled := loader.New(pkgsample.NewLoaderOptions())
	if _, err := disabled.Load(ctx, pkgsample.SourceFromURL(server.URL+"/ok.json")); err == nil || !strings.Contains(err.Error(), "http support disabled") {
		t.Fatalf("expected http disabled error, got %v", err)
	}

	l := loader.New(pkgsample.NewLoaderOptions(
		pkgsample.WithHTTPClient(server.Client()),
		pkgsample.WithMaxBytes(32),
	))
	doc, err := l.Load(ctx, pkgsample.SourceFromURL(server.URL+"/ok.json"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if string(doc.Raw()) != `{"id": 1}` {
		t.Fatalf("raw = %q", doc.Raw())
	}

	if _, err := l.Load(ctx, pkgsample.SourceFromURL(server.URL+"/missing")); err == nil {
		t.Fatalf("expected status error")
	}
	if _, err := l.Load(ctx, pkgsample.SourceFromURL(server.URL+"/big.json")); err == nil || !strings.Contains(err.Error(), "exceeds") {
		t.Fatalf("expected size limit error, got %v", err)
	}
}

func TestLoader_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	l := loader.New(pkgsample.NewLoaderOptions())
	if _, err := l.Load(ctx, pkgsample.SourceFromFile("does-not-matter.json")); err == nil {
		t.Fatalf("expected context error")
	}
	if _, err := l.Load(context.Background(), nil); err == nil {
		t.Fatalf("expected nil source error")
	}
}
