package preview_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goliatone/go-modelgen/pkg/jsonvalue"
	"github.com/goliatone/go-modelgen/pkg/model"
	"github.com/goliatone/go-modelgen/pkg/render"
	"github.com/goliatone/go-modelgen/pkg/renderers/preview"
)

func renderPage(t *testing.T, raw string, opts render.RenderOptions) string {
	t.Helper()
	renderer, err := preview.New()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	schema := model.NewBuilder().Build(jsonvalue.MustParse(raw), "Model")
	out, err := renderer.Render(context.Background(), schema, opts)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	return string(out)
}

func TestRenderer_ListsRecordsAndFields(t *testing.T) {
	page := renderPage(t, `{"userName":"ada","address":{"city":"Paris"},"users":[{"id":1}]}`,
		render.RenderOptions{SourceLocation: "user.json"})

	for _, want := range []string{
		"<title>Model</title>",
		"Inferred from <code>user.json</code>",
		`<section id="record-Address">`,
		`<section id="record-Users">`,
		`<section id="record-Model">`,
		"<h2>Model <small>(root)</small></h2>",
		"<td><code>user_name</code></td>",
		"<td><code>userName</code></td>",
		"<td>string</td>",
		"<td>ada</td>",
		`<a href="#record-Address">Address</a>`,
		`<a href="#record-Users">list of Users</a>`,
		"<code>$.users[0]</code>",
		`<tr title="User Name">`,
		`<meta name="generator" content="go-modelgen">`,
	} {
		if !strings.Contains(page, want) {
			t.Errorf("page missing %q", want)
		}
	}

	if strings.Index(page, "record-Address") > strings.Index(page, `<section id="record-Model">`) {
		t.Errorf("child records should be listed before the root")
	}
}

func TestRenderer_EscapesSampleContent(t *testing.T) {
	page := renderPage(t, `{"<b>key</b>":"<script>alert(1)</script>hello"}`, render.RenderOptions{})

	if strings.Contains(page, "<script>") {
		t.Fatalf("script tag leaked into page")
	}
	if strings.Contains(page, "<b>key</b>") {
		t.Fatalf("field name was not escaped")
	}
	if !strings.Contains(page, "&lt;b&gt;key&lt;/b&gt;") {
		t.Fatalf("escaped field name missing")
	}
	if !strings.Contains(page, "<td>hello</td>") {
		t.Fatalf("sanitised example missing")
	}
}

func TestRenderer_OpaqueRoot(t *testing.T) {
	page := renderPage(t, `"just text"`, render.RenderOptions{Title: "Blob"})
	if !strings.Contains(page, "<h1>Blob</h1>") {
		t.Fatalf("title override missing")
	}
	if !strings.Contains(page, "Accepts any value.") {
		t.Fatalf("opaque placeholder missing")
	}
}

func TestRenderer_Metadata(t *testing.T) {
	renderer, err := preview.New()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	if renderer.Name() != "preview" || renderer.FileExtension() != ".html" {
		t.Fatalf("metadata: %s %s", renderer.Name(), renderer.FileExtension())
	}
}

func TestRenderer_TemplatesDirOverlay(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "templates"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	custom := "{% for record in records %}{{ record.name }}:{% for field in record.fields %}{{ label(field.wire) }};{% endfor %}{% endfor %}"
	if err := os.WriteFile(filepath.Join(dir, "templates", "page.tmpl"), []byte(custom), 0o644); err != nil {
		t.Fatalf("write template: %v", err)
	}

	renderer, err := preview.New(preview.WithTemplatesDir(dir))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	schema := model.NewBuilder().Build(jsonvalue.MustParse(`{"streetName":"x"}`), "Model")
	out, err := renderer.Render(context.Background(), schema, render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got := string(out); got != "Model:Street Name;" {
		t.Fatalf("custom template output = %q", got)
	}
}
